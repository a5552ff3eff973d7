package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/phinix/phinix-downloader/internal/coordinator"
	"github.com/phinix/phinix-downloader/internal/model"
	"github.com/phinix/phinix-downloader/internal/progress"
)

func newFetchCommand(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "fetch URL",
		Short: "Fetch video metadata without downloading",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFetch(app, args[0])
		},
	}
}

func runFetch(app *AppContext, url string) error {
	coord := coordinator.New(app.resolverOrDefault())
	defer coord.Close()

	done := make(chan model.Task, 1)
	coord.Subscribe(func(t model.Task) {
		if t.Kind == model.KindMetadataFetch && t.State.IsTerminal() {
			done <- t
		}
	})

	if _, err := coord.FetchMetadata(url); err != nil {
		return err
	}

	task := <-done
	if task.State != model.StateCompleted {
		return errors.New(task.Err)
	}

	meta := task.Metadata
	fmt.Fprintf(app.IO.Out, "Title:     %s\n", meta.Title)
	fmt.Fprintf(app.IO.Out, "Uploader:  %s\n", meta.Uploader)
	fmt.Fprintf(app.IO.Out, "Duration:  %s\n", meta.DurationClock())
	fmt.Fprintf(app.IO.Out, "Views:     %s\n", progress.FormatViews(meta.ViewCount))
	if meta.ThumbnailURL != "" {
		fmt.Fprintf(app.IO.Out, "Thumbnail: %s\n", meta.ThumbnailURL)
	}
	return nil
}
