package ui

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/phinix/phinix-downloader/internal/config"
	"github.com/phinix/phinix-downloader/internal/coordinator"
	"github.com/phinix/phinix-downloader/internal/model"
	"github.com/phinix/phinix-downloader/internal/platform"
	"github.com/phinix/phinix-downloader/internal/progress"
)

// UI constants
const (
	// MetadataDebounce is how long URL edits must settle before a fetch starts
	MetadataDebounce = 500 * time.Millisecond

	ThumbnailWidth  = 400
	ThumbnailHeight = 225
)

// RootUI represents the main window contents
type RootUI struct {
	window   fyne.Window
	coord    *coordinator.Coordinator
	settings *config.Settings

	urlEntry      *widget.Entry
	pathBtn       *widget.Button
	downloadBtn   *widget.Button
	cancelBtn     *widget.Button
	audioOnly     *widget.Check
	autoReveal    *widget.Check
	thumbImage    *canvas.Image
	titleLabel    *widget.Label
	uploaderLabel *widget.Label
	durationLabel *widget.Label
	viewsLabel    *widget.Label
	statusLabel   *widget.Label
	progressBar   *widget.ProgressBar

	mu             sync.Mutex
	debounce       *time.Timer
	currentURL     string
	metaTaskID     string
	thumbTaskID    string
	downloadTaskID string
}

// NewRootUI creates and initializes the main UI
func NewRootUI(window fyne.Window, app fyne.App, coord *coordinator.Coordinator) *RootUI {
	ui := &RootUI{
		window:   window,
		coord:    coord,
		settings: config.NewSettings(app),
	}

	coord.Subscribe(ui.onTaskUpdate)
	ui.setupUI()
	return ui
}

// setupUI creates and arranges all widgets
func (ui *RootUI) setupUI() {
	ui.urlEntry = widget.NewEntry()
	ui.urlEntry.SetPlaceHolder("Paste video URL")
	ui.urlEntry.OnChanged = ui.onURLChanged
	ui.urlEntry.OnSubmitted = func(string) {
		ui.onDownloadClick()
	}

	ui.pathBtn = widget.NewButton("Select Download Folder", ui.onSelectPath)

	ui.downloadBtn = widget.NewButton("Download", ui.onDownloadClick)
	ui.cancelBtn = widget.NewButton("Cancel", ui.onCancelClick)
	ui.cancelBtn.Disable()

	ui.audioOnly = widget.NewCheck("Audio only", func(checked bool) {
		ui.settings.SetAudioOnly(checked)
	})
	ui.audioOnly.SetChecked(ui.settings.GetAudioOnly())

	ui.autoReveal = widget.NewCheck("Show in folder when done", func(checked bool) {
		ui.settings.SetAutoRevealOnComplete(checked)
	})
	ui.autoReveal.SetChecked(ui.settings.GetAutoRevealOnComplete())

	ui.thumbImage = &canvas.Image{FillMode: canvas.ImageFillContain}
	ui.thumbImage.SetMinSize(fyne.NewSize(ThumbnailWidth, ThumbnailHeight))

	ui.titleLabel = widget.NewLabel("")
	ui.titleLabel.TextStyle = fyne.TextStyle{Bold: true}
	ui.titleLabel.Wrapping = fyne.TextWrapWord
	ui.uploaderLabel = widget.NewLabel("")
	ui.durationLabel = widget.NewLabel("")
	ui.viewsLabel = widget.NewLabel("")

	ui.statusLabel = widget.NewLabel("Status: Ready")
	ui.progressBar = widget.NewProgressBar()

	topPanel := container.NewBorder(nil, nil, widget.NewLabel("Paste Video URL:"), ui.pathBtn, ui.urlEntry)

	infoPanel := container.NewVBox(
		ui.titleLabel,
		ui.uploaderLabel,
		container.NewHBox(ui.durationLabel, ui.viewsLabel),
	)

	bottomPanel := container.NewVBox(
		ui.progressBar,
		container.NewHBox(ui.downloadBtn, ui.cancelBtn, ui.audioOnly, ui.autoReveal),
		ui.statusLabel,
	)

	content := container.NewBorder(
		topPanel,
		bottomPanel,
		nil,
		nil,
		container.NewVBox(container.NewCenter(ui.thumbImage), infoPanel),
	)
	ui.window.SetContent(content)
}

// onURLChanged restarts the debounce timer on every edit so the metadata
// fetch only fires once typing settles.
func (ui *RootUI) onURLChanged(url string) {
	ui.mu.Lock()
	defer ui.mu.Unlock()

	if url == ui.currentURL {
		return
	}
	ui.currentURL = url

	if ui.debounce != nil {
		ui.debounce.Stop()
	}
	ui.debounce = time.AfterFunc(MetadataDebounce, ui.fetchMetadata)
}

// fetchMetadata runs on the debounce timer goroutine
func (ui *RootUI) fetchMetadata() {
	ui.mu.Lock()
	url := ui.currentURL
	staleID := ui.metaTaskID
	ui.mu.Unlock()

	if url == "" {
		fyne.Do(func() {
			ui.clearMetadata()
			ui.statusLabel.SetText("Status: Ready")
		})
		return
	}

	// A previous fetch for an outdated URL may still hold the slot
	if staleID != "" {
		_ = ui.coord.Cancel(staleID)
	}

	task, err := ui.coord.FetchMetadata(url)
	if errors.Is(err, coordinator.ErrSlotBusy) {
		// Slot frees once the cancelled worker terminates; try again shortly
		ui.mu.Lock()
		ui.debounce = time.AfterFunc(MetadataDebounce, ui.fetchMetadata)
		ui.mu.Unlock()
		return
	}
	if err != nil {
		fyne.Do(func() {
			ui.statusLabel.SetText(fmt.Sprintf("Error: %v", err))
		})
		return
	}

	ui.mu.Lock()
	ui.metaTaskID = task.ID
	ui.mu.Unlock()

	fyne.Do(func() {
		ui.clearMetadata()
		ui.statusLabel.SetText("Fetching video info...")
	})
}

// onTaskUpdate receives every coordinator event on the dispatch goroutine
func (ui *RootUI) onTaskUpdate(task model.Task) {
	switch task.Kind {
	case model.KindMetadataFetch:
		ui.onMetadataUpdate(task)
	case model.KindThumbnailFetch:
		ui.onThumbnailUpdate(task)
	case model.KindDownload:
		ui.onDownloadUpdate(task)
	}
}

func (ui *RootUI) onMetadataUpdate(task model.Task) {
	ui.mu.Lock()
	current := ui.metaTaskID == task.ID
	if current && task.State.IsTerminal() {
		ui.metaTaskID = ""
	}
	ui.mu.Unlock()

	if !current {
		return
	}

	switch task.State {
	case model.StateCompleted:
		meta := task.Metadata
		fyne.Do(func() {
			ui.titleLabel.SetText(meta.Title)
			ui.uploaderLabel.SetText(meta.Uploader)
			ui.durationLabel.SetText(meta.DurationClock())
			ui.viewsLabel.SetText(progress.FormatViews(meta.ViewCount) + " views")
			ui.statusLabel.SetText("Status: Ready")
		})
		ui.fetchThumbnail(meta.ThumbnailURL)
	case model.StateFailed:
		fyne.Do(func() {
			ui.statusLabel.SetText(fmt.Sprintf("Could not fetch video info: %s", task.Err))
		})
	}
	// Cancelled fetches belong to an outdated URL; nothing to render
}

func (ui *RootUI) fetchThumbnail(url string) {
	ui.mu.Lock()
	staleID := ui.thumbTaskID
	ui.mu.Unlock()

	if staleID != "" {
		_ = ui.coord.Cancel(staleID)
	}
	if url == "" {
		fyne.Do(func() {
			ui.setThumbnail(nil)
		})
		return
	}

	task, err := ui.coord.FetchThumbnail(url)
	if err != nil {
		log.Printf("thumbnail fetch rejected: %v", err)
		return
	}

	ui.mu.Lock()
	ui.thumbTaskID = task.ID
	ui.mu.Unlock()
}

func (ui *RootUI) onThumbnailUpdate(task model.Task) {
	ui.mu.Lock()
	current := ui.thumbTaskID == task.ID
	if current && task.State.IsTerminal() {
		ui.thumbTaskID = ""
	}
	ui.mu.Unlock()

	if !current || task.State != model.StateCompleted {
		return
	}

	img, _, err := image.Decode(bytes.NewReader(task.Thumbnail))
	if err != nil {
		log.Printf("invalid thumbnail image: %v", err)
		return
	}
	fyne.Do(func() {
		ui.setThumbnail(img)
	})
}

func (ui *RootUI) onDownloadUpdate(task model.Task) {
	ui.mu.Lock()
	current := ui.downloadTaskID == task.ID
	if current && task.State.IsTerminal() {
		ui.downloadTaskID = ""
	}
	ui.mu.Unlock()

	if !current {
		return
	}

	switch task.State {
	case model.StateRunning:
		p := task.Progress
		fyne.Do(func() {
			ui.progressBar.SetValue(float64(p.Percent) / 100)
			ui.statusLabel.SetText(downloadStatusText(p))
		})
	case model.StateCompleted:
		// Reveal runs a file manager process, so it stays off the fyne thread
		if ui.settings.GetAutoRevealOnComplete() {
			if err := platform.RevealInManager(task.OutputPath); err != nil {
				log.Printf("reveal downloaded file: %v", err)
			}
		}
		fyne.Do(func() {
			ui.progressBar.SetValue(1)
			ui.statusLabel.SetText(fmt.Sprintf("Done! Saved %s to: %s", task.DisplayTitle(), task.OutputPath))
			ui.setDownloading(false)
		})
	case model.StateFailed:
		fyne.Do(func() {
			ui.statusLabel.SetText(fmt.Sprintf("Error: %s", task.Err))
			ui.setDownloading(false)
		})
	case model.StateCancelled:
		fyne.Do(func() {
			ui.statusLabel.SetText("Download cancelled")
			ui.setDownloading(false)
		})
	}
}

// downloadStatusText renders one progress record for the status line
func downloadStatusText(p model.Progress) string {
	if p.Phase == model.PhaseMerging {
		return "Merging..."
	}

	text := fmt.Sprintf("Downloading... %d%%", p.Percent)
	if speed := progress.FormatSpeed(p.SpeedBPS); speed != "" {
		text += " " + speed
	}
	if p.ETASeconds >= 0 {
		text += " ETA " + progress.FormatETA(p.ETASeconds)
	}
	return text
}

func (ui *RootUI) onSelectPath() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		ui.settings.SetDownloadDirectory(uri.Path())
		ui.statusLabel.SetText(fmt.Sprintf("Selected Path: %s", uri.Path()))
	}, ui.window)
}

// onDownloadClick runs on the fyne main thread
func (ui *RootUI) onDownloadClick() {
	url := ui.urlEntry.Text
	dir := ui.settings.GetDownloadDirectory()

	task, err := ui.coord.StartDownload(url, dir, ui.settings.GetFormatSelector(), ui.settings.GetAudioOnly())
	if err != nil {
		ui.statusLabel.SetText(fmt.Sprintf("Error: %v", err))
		return
	}

	ui.mu.Lock()
	ui.downloadTaskID = task.ID
	ui.mu.Unlock()

	ui.progressBar.SetValue(0)
	ui.statusLabel.SetText("Download started...")
	ui.setDownloading(true)
}

func (ui *RootUI) onCancelClick() {
	ui.mu.Lock()
	id := ui.downloadTaskID
	ui.mu.Unlock()

	if id == "" {
		return
	}
	if err := ui.coord.Cancel(id); err != nil {
		log.Printf("cancel download: %v", err)
		return
	}
	ui.statusLabel.SetText("Cancelling...")
}

// setDownloading toggles the controls between idle and downloading states
func (ui *RootUI) setDownloading(active bool) {
	if active {
		ui.downloadBtn.Disable()
		ui.cancelBtn.Enable()
		return
	}
	ui.downloadBtn.Enable()
	ui.cancelBtn.Disable()
}

func (ui *RootUI) setThumbnail(img image.Image) {
	ui.thumbImage.Image = img
	ui.thumbImage.Refresh()
}

func (ui *RootUI) clearMetadata() {
	ui.titleLabel.SetText("")
	ui.uploaderLabel.SetText("")
	ui.durationLabel.SetText("")
	ui.viewsLabel.SetText("")
	ui.setThumbnail(nil)
}
