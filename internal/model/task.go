package model

import (
	"fmt"
	"strings"
	"time"
)

// TaskKind identifies which coordinator slot a task occupies
type TaskKind string

const (
	// KindMetadataFetch resolves a URL into VideoMetadata
	KindMetadataFetch TaskKind = "MetadataFetch"

	// KindDownload downloads the media file behind a URL
	KindDownload TaskKind = "Download"

	// KindThumbnailFetch retrieves the thumbnail image for a video
	KindThumbnailFetch TaskKind = "ThumbnailFetch"
)

// Task represents a single in-flight operation. The coordinator owns the
// mutable record; everything handed to observers or returned from accessors
// is a value copy keyed by ID.
type Task struct {
	ID             string
	Kind           TaskKind
	URL            string
	OutputDir      string // Download only
	FormatSelector string
	AudioOnly      bool
	State          TaskState
	Progress       Progress
	Metadata       *VideoMetadata // set on MetadataFetch completion
	Thumbnail      []byte         // set on ThumbnailFetch completion
	OutputPath     string         // path to the downloaded file
	Err            string         // terminal error message if State == StateFailed
	StartedAt      time.Time
	FinishedAt     time.Time
}

// DisplayTitle returns the video title, the output filename, or the URL in
// order of preference.
func (t *Task) DisplayTitle() string {
	if t.Metadata != nil && t.Metadata.Title != "" {
		return t.Metadata.Title
	}

	if t.OutputPath != "" {
		parts := strings.FieldsFunc(t.OutputPath, func(r rune) bool {
			return r == '/' || r == '\\'
		})
		if len(parts) > 0 {
			filename := parts[len(parts)-1]
			if idx := strings.LastIndex(filename, "."); idx > 0 {
				filename = filename[:idx]
			}
			return filename
		}
	}

	return t.URL
}

// FormatClock renders a duration in seconds as MM:SS, or HH:MM:SS once the
// value reaches a full hour. Negative values are treated as zero.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}

	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	secs := seconds % 60

	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, secs)
	}
	return fmt.Sprintf("%02d:%02d", minutes, secs)
}
