package resolver

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/lrstanley/go-ytdlp"

	"github.com/phinix/phinix-downloader/internal/model"
	"github.com/phinix/phinix-downloader/internal/progress"
)

// Progress callback interval for yt-dlp downloads
const DefaultProgressInterval = 500 * time.Millisecond

// Output template handed to yt-dlp, relative to the output directory
const OutputTemplate = "%(title)s.%(ext)s"

// YTDLP resolves URLs through the yt-dlp binary via go-ytdlp
type YTDLP struct {
	progressInterval time.Duration
}

// NewYTDLP creates a yt-dlp backed resolver
func NewYTDLP() *YTDLP {
	return &YTDLP{
		progressInterval: DefaultProgressInterval,
	}
}

// ExtractMetadata resolves a URL into video metadata without downloading
func (y *YTDLP) ExtractMetadata(ctx context.Context, url string) (model.VideoMetadata, error) {
	dl := ytdlp.New().SkipDownload()

	result, err := dl.Run(ctx, url)
	if err != nil {
		return model.VideoMetadata{}, fmt.Errorf("extract metadata: %w", err)
	}

	info, err := result.GetExtractedInfo()
	if err != nil {
		return model.VideoMetadata{}, fmt.Errorf("read extracted info: %w", err)
	}
	if len(info) == 0 {
		return model.VideoMetadata{}, fmt.Errorf("no metadata returned for %s", url)
	}

	first := info[0]
	meta := model.VideoMetadata{
		Title:           strVal(first.Title),
		DurationSeconds: int(floatVal(first.Duration)),
		Uploader:        strVal(first.Uploader),
		ViewCount:       int64(floatVal(first.ViewCount)),
		ThumbnailURL:    strVal(first.Thumbnail),
	}
	return meta, nil
}

// Download fetches the media file behind a URL into opts.OutputDir, reporting
// raw progress events to fn. Returns the final file path.
func (y *YTDLP) Download(ctx context.Context, url string, opts DownloadOptions, fn ProgressFunc) (string, error) {
	dl := ytdlp.New().
		ForceOverwrites().
		RestrictFilenames().
		Output(filepath.Join(opts.OutputDir, OutputTemplate))

	if opts.FormatSelector != "" {
		dl = dl.Format(opts.FormatSelector)
	}
	if opts.AudioOnly {
		dl = dl.ExtractAudio()
	}

	if fn != nil {
		dl.ProgressFunc(y.progressInterval, func(update ytdlp.ProgressUpdate) {
			fn(rawEventFrom(update))
		})
	}

	result, err := dl.Run(ctx, url)
	if err != nil {
		// Pass the library error through verbatim; the coordinator surfaces
		// its message as the task's terminal failure.
		return "", err
	}

	return outputPathFrom(result, url)
}

// rawEventFrom maps one go-ytdlp progress update to the resolver contract.
// yt-dlp does not report an instantaneous speed here, so speed is derived from
// bytes over elapsed time since the download started.
func rawEventFrom(update ytdlp.ProgressUpdate) progress.RawEvent {
	ev := progress.RawEvent{
		Status:          string(update.Status),
		DownloadedBytes: int64(update.DownloadedBytes),
		TotalBytes:      int64(update.TotalBytes),
		ETASeconds:      -1,
		Filename:        update.Filename,
	}

	if !update.Started.IsZero() {
		if elapsed := time.Since(update.Started).Seconds(); elapsed > 0 {
			ev.SpeedBPS = float64(update.DownloadedBytes) / elapsed
		}
	}

	if eta := update.ETA(); eta > 0 {
		ev.ETASeconds = int(eta.Seconds())
	}

	return ev
}

// outputPathFrom extracts the downloaded file path from a yt-dlp result
func outputPathFrom(result *ytdlp.Result, url string) (string, error) {
	info, err := result.GetExtractedInfo()
	if err != nil {
		return "", fmt.Errorf("read extracted info: %w", err)
	}
	for _, entry := range info {
		if entry.Filename != nil && *entry.Filename != "" {
			return *entry.Filename, nil
		}
	}
	return "", fmt.Errorf("no output file reported for %s", url)
}

func strVal(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func floatVal(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}
