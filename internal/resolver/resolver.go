package resolver

import (
	"context"

	"github.com/phinix/phinix-downloader/internal/model"
	"github.com/phinix/phinix-downloader/internal/progress"
)

// ProgressFunc receives raw progress events on the worker goroutine that runs
// the download. Implementations must not block.
type ProgressFunc func(progress.RawEvent)

// DownloadOptions configures a single download invocation
type DownloadOptions struct {
	OutputDir      string
	FormatSelector string
	AudioOnly      bool
}

// Resolver turns a video URL into metadata or a downloaded media file. Both
// calls are long-running and blocking; they honor context cancellation only as
// far as the underlying library does.
type Resolver interface {
	ExtractMetadata(ctx context.Context, url string) (model.VideoMetadata, error)
	Download(ctx context.Context, url string, opts DownloadOptions, fn ProgressFunc) (string, error)
}
