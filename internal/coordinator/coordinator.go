package coordinator

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/phinix/phinix-downloader/internal/model"
	"github.com/phinix/phinix-downloader/internal/platform"
	"github.com/phinix/phinix-downloader/internal/progress"
	"github.com/phinix/phinix-downloader/internal/resolver"
	"github.com/phinix/phinix-downloader/internal/thumbnail"
)

// control tracks cancellation for one running task
type control struct {
	cancel    context.CancelFunc
	cancelled atomic.Bool
}

// Coordinator runs at most one task per kind on a background worker and
// publishes every task state change to subscribed observers in order.
type Coordinator struct {
	res resolver.Resolver

	mu        sync.RWMutex
	tasks     map[string]*model.Task
	slots     map[model.TaskKind]string
	controls  map[string]*control
	observers []func(model.Task)

	// Unbounded delivery queue. Observers run on the dispatch goroutine and
	// may start or cancel tasks from their callbacks, so publish must never
	// block on the dispatcher's own backlog.
	queueMu     sync.Mutex
	queueCond   *sync.Cond
	queue       []model.Task
	queueClosed bool

	dispatch sync.WaitGroup
	workers  sync.WaitGroup
}

// New creates a coordinator over the given resolver and starts its dispatch
// goroutine.
func New(res resolver.Resolver) *Coordinator {
	c := &Coordinator{
		res:      res,
		tasks:    make(map[string]*model.Task),
		slots:    make(map[model.TaskKind]string),
		controls: make(map[string]*control),
	}
	c.queueCond = sync.NewCond(&c.queueMu)

	c.dispatch.Add(1)
	go c.dispatchLoop()
	return c
}

// Subscribe registers an observer invoked on every task state or progress
// change. Observers run sequentially on the dispatch goroutine, so they need
// no locking of their own, and must marshal to their UI thread themselves.
func (c *Coordinator) Subscribe(fn func(model.Task)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observers = append(c.observers, fn)
}

// Task returns a snapshot of the task with the given id
func (c *Coordinator) Task(id string) (model.Task, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	t, ok := c.tasks[id]
	if !ok {
		return model.Task{}, false
	}
	return *t, true
}

// FetchMetadata starts a metadata-fetch task for url. It fails fast with
// ErrInvalidInput on an empty URL and ErrSlotBusy while another metadata
// fetch is active; no worker is spawned in either case.
func (c *Coordinator) FetchMetadata(url string) (model.Task, error) {
	if strings.TrimSpace(url) == "" {
		return model.Task{}, fmt.Errorf("%w: URL is empty", ErrInvalidInput)
	}

	task, ctx, ctl, err := c.begin(model.Task{
		Kind: model.KindMetadataFetch,
		URL:  url,
	})
	if err != nil {
		return model.Task{}, err
	}

	c.workers.Add(1)
	go func() {
		defer c.workers.Done()
		c.setRunning(task.ID, ctl)

		meta, err := c.res.ExtractMetadata(ctx, task.URL)
		if err == nil {
			c.updateTask(task.ID, func(t *model.Task) {
				t.Metadata = &meta
			})
		}
		c.finish(task.ID, ctl, err)
	}()

	return task, nil
}

// StartDownload starts a download task. It fails fast with ErrInvalidInput on
// an empty URL or a missing output directory and ErrSlotBusy while another
// download is active; no worker is spawned and no state changes in either
// case.
func (c *Coordinator) StartDownload(url, outputDir, formatSelector string, audioOnly bool) (model.Task, error) {
	if strings.TrimSpace(url) == "" {
		return model.Task{}, fmt.Errorf("%w: URL is empty", ErrInvalidInput)
	}
	if err := platform.ValidateOutputDir(outputDir); err != nil {
		return model.Task{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	task, ctx, ctl, err := c.begin(model.Task{
		Kind:           model.KindDownload,
		URL:            url,
		OutputDir:      outputDir,
		FormatSelector: formatSelector,
		AudioOnly:      audioOnly,
	})
	if err != nil {
		return model.Task{}, err
	}

	c.workers.Add(1)
	go func() {
		defer c.workers.Done()
		c.setRunning(task.ID, ctl)

		opts := resolver.DownloadOptions{
			OutputDir:      task.OutputDir,
			FormatSelector: task.FormatSelector,
			AudioOnly:      task.AudioOnly,
		}

		path, err := c.res.Download(ctx, task.URL, opts, func(ev progress.RawEvent) {
			// Callbacks after cancellation are dropped; the worker still runs
			// until the resolver call returns.
			p := progress.Normalize(ev)
			c.publishUpdate(task.ID, ctl, func(t *model.Task) {
				t.Progress = p
				if ev.Filename != "" {
					t.OutputPath = ev.Filename
				}
			})
		})

		if err == nil && path != "" {
			c.updateTask(task.ID, func(t *model.Task) {
				t.OutputPath = path
			})
		}
		c.finish(task.ID, ctl, err)
	}()

	return task, nil
}

// FetchThumbnail starts a thumbnail-fetch task for the given image URL. The
// result bytes are carried on the completed task snapshot.
func (c *Coordinator) FetchThumbnail(url string) (model.Task, error) {
	if strings.TrimSpace(url) == "" {
		return model.Task{}, fmt.Errorf("%w: thumbnail URL is empty", ErrInvalidInput)
	}

	task, ctx, ctl, err := c.begin(model.Task{
		Kind: model.KindThumbnailFetch,
		URL:  url,
	})
	if err != nil {
		return model.Task{}, err
	}

	c.workers.Add(1)
	go func() {
		defer c.workers.Done()
		c.setRunning(task.ID, ctl)

		data, err := thumbnail.Fetch(ctx, task.URL)
		if err == nil {
			c.updateTask(task.ID, func(t *model.Task) {
				t.Thumbnail = data
			})
		}
		c.finish(task.ID, ctl, err)
	}()

	return task, nil
}

// Cancel requests cooperative cancellation of an active task. Progress
// callbacks observed after this call are dropped and the task reaches
// Cancelled exactly once, as its last event, when the worker returns. The
// slot stays occupied until then.
func (c *Coordinator) Cancel(id string) error {
	c.mu.Lock()
	t, ok := c.tasks[id]
	if !ok {
		c.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	ctl, active := c.controls[id]
	if !active || t.State.IsTerminal() {
		c.mu.Unlock()
		return fmt.Errorf("%w: %s is %s", ErrNotActive, id, t.State)
	}
	ctl.cancelled.Store(true)
	c.mu.Unlock()

	ctl.cancel()
	return nil
}

// Close waits for running workers to reach their terminal states and stops
// event delivery. No task may be started concurrently with or after Close.
func (c *Coordinator) Close() {
	c.workers.Wait()

	c.queueMu.Lock()
	c.queueClosed = true
	c.queueMu.Unlock()
	c.queueCond.Broadcast()

	c.dispatch.Wait()
}

// begin claims the slot for task.Kind and registers the task as Pending. The
// returned snapshot already carries the assigned id.
func (c *Coordinator) begin(task model.Task) (model.Task, context.Context, *control, error) {
	c.mu.Lock()

	if runningID, busy := c.slots[task.Kind]; busy {
		c.mu.Unlock()
		return model.Task{}, nil, nil, fmt.Errorf("%w: %s task %s is still active", ErrSlotBusy, task.Kind, runningID)
	}

	task.ID = uuid.NewString()
	task.State = model.StatePending
	task.StartedAt = time.Now()
	task.Progress = model.Progress{ETASeconds: -1}

	ctx, cancel := context.WithCancel(context.Background())
	ctl := &control{cancel: cancel}

	stored := task
	c.tasks[task.ID] = &stored
	c.slots[task.Kind] = task.ID
	c.controls[task.ID] = ctl
	c.mu.Unlock()

	c.publish(task)
	return task, ctx, ctl, nil
}

// setRunning marks the Pending -> Running transition. A task cancelled while
// still Pending skips the transition and goes straight to Cancelled.
func (c *Coordinator) setRunning(id string, ctl *control) {
	c.publishUpdate(id, ctl, func(t *model.Task) {
		t.State = model.StateRunning
	})
}

// finish moves the task to its terminal state, frees the slot, and publishes
// the last event for the task. Every worker path ends here so no slot can
// stay occupied after its worker terminates.
func (c *Coordinator) finish(id string, ctl *control, err error) {
	ctl.cancel()

	c.mu.Lock()
	t := c.tasks[id]
	switch {
	case ctl.cancelled.Load():
		t.State = model.StateCancelled
	case err != nil:
		t.State = model.StateFailed
		t.Err = err.Error()
	default:
		t.State = model.StateCompleted
	}
	t.FinishedAt = time.Now()
	delete(c.slots, t.Kind)
	delete(c.controls, id)
	snap := *t
	c.mu.Unlock()

	c.publish(snap)
	log.Printf("task %s (%s) finished: %s", snap.ID, snap.Kind, snap.State)
}

// updateTask mutates the stored record under the lock and returns a snapshot
func (c *Coordinator) updateTask(id string, mutate func(*model.Task)) model.Task {
	c.mu.Lock()
	defer c.mu.Unlock()

	t, ok := c.tasks[id]
	if !ok {
		return model.Task{}
	}
	mutate(t)
	return *t
}

// publishUpdate mutates the stored record and publishes the snapshot unless
// the task was already cancelled. The flag is read under the same lock Cancel
// sets it under, so once Cancel has returned no further non-terminal event for
// the task is produced.
func (c *Coordinator) publishUpdate(id string, ctl *control, mutate func(*model.Task)) {
	c.mu.Lock()
	t, ok := c.tasks[id]
	if !ok || ctl.cancelled.Load() {
		c.mu.Unlock()
		return
	}
	mutate(t)
	snap := *t
	c.mu.Unlock()

	c.publish(snap)
}

// publish appends one snapshot to the delivery queue. Each task's events
// originate from a single goroutine, so per-task ordering is preserved by the
// FIFO. The queue is unbounded: publish never blocks, which keeps observers
// free to start or cancel tasks from inside their callbacks.
func (c *Coordinator) publish(t model.Task) {
	c.queueMu.Lock()
	c.queue = append(c.queue, t)
	c.queueMu.Unlock()
	c.queueCond.Signal()
}

func (c *Coordinator) dispatchLoop() {
	defer c.dispatch.Done()

	for {
		c.queueMu.Lock()
		for len(c.queue) == 0 && !c.queueClosed {
			c.queueCond.Wait()
		}
		if len(c.queue) == 0 {
			c.queueMu.Unlock()
			return
		}
		t := c.queue[0]
		c.queue = c.queue[1:]
		c.queueMu.Unlock()

		c.mu.RLock()
		observers := make([]func(model.Task), len(c.observers))
		copy(observers, c.observers)
		c.mu.RUnlock()

		for _, fn := range observers {
			fn(t)
		}
	}
}
