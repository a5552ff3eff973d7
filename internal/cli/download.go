package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/phinix/phinix-downloader/internal/config"
	"github.com/phinix/phinix-downloader/internal/coordinator"
	"github.com/phinix/phinix-downloader/internal/model"
	"github.com/phinix/phinix-downloader/internal/platform"
	"github.com/phinix/phinix-downloader/internal/progress"
)

func newDownloadCommand(app *AppContext) *cobra.Command {
	var outputDir string
	var format string
	var audioOnly bool
	var reveal bool

	cmd := &cobra.Command{
		Use:   "download URL",
		Short: "Download a video with live progress",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDownload(app, args[0], outputDir, format, audioOnly, reveal)
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "Output directory (default: the home Downloads folder)")
	cmd.Flags().StringVarP(&format, "format", "f", config.DefaultFormatSelector, "Format selector passed to the resolver")
	cmd.Flags().BoolVar(&audioOnly, "audio-only", false, "Extract audio only")
	cmd.Flags().BoolVar(&reveal, "reveal", false, "Open the file manager on the saved file")
	return cmd
}

func runDownload(app *AppContext, url, outputDir, format string, audioOnly, reveal bool) error {
	if outputDir == "" {
		dir, err := platform.GetHomeDownloadsDir()
		if err != nil {
			return err
		}
		outputDir = dir
	}
	if err := platform.EnsureDir(outputDir); err != nil {
		return err
	}

	coord := coordinator.New(app.resolverOrDefault())
	defer coord.Close()

	done := make(chan model.Task, 1)
	coord.Subscribe(func(t model.Task) {
		if t.Kind != model.KindDownload {
			return
		}
		if t.State.IsTerminal() {
			done <- t
			return
		}
		if t.State == model.StateRunning && t.Progress.Phase != "" {
			fmt.Fprintf(app.IO.Out, "\r%-60s", progressLine(t.Progress))
		}
	})

	task, err := coord.StartDownload(url, outputDir, format, audioOnly)
	if err != nil {
		return err
	}

	// Ctrl-C requests cooperative cancellation instead of killing the process
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	go func() {
		<-ctx.Done()
		_ = coord.Cancel(task.ID)
	}()

	result := <-done
	fmt.Fprintln(app.IO.Out)

	switch result.State {
	case model.StateCompleted:
		fmt.Fprintf(app.IO.Out, "Saved %s to %s\n", result.DisplayTitle(), result.OutputPath)
		if reveal {
			if err := app.revealOrDefault()(result.OutputPath); err != nil {
				fmt.Fprintln(app.IO.ErrOut, "WARN: could not open file manager:", err)
			}
		}
		return nil
	case model.StateCancelled:
		return errors.New("download cancelled")
	default:
		return errors.New(result.Err)
	}
}

func progressLine(p model.Progress) string {
	if p.Phase == model.PhaseMerging {
		return "Merging..."
	}

	line := fmt.Sprintf("Downloading %3d%%", p.Percent)
	if speed := progress.FormatSpeed(p.SpeedBPS); speed != "" {
		line += "  " + speed
	}
	if p.ETASeconds >= 0 {
		line += "  ETA " + progress.FormatETA(p.ETASeconds)
	}
	return line
}
