package model

// VideoMetadata describes a resolved video. It is immutable once fetched and
// replaced wholesale on re-fetch.
type VideoMetadata struct {
	Title           string
	DurationSeconds int
	Uploader        string
	ViewCount       int64
	ThumbnailURL    string
}

// DurationClock returns the video duration as MM:SS (or HH:MM:SS)
func (m *VideoMetadata) DurationClock() string {
	return FormatClock(m.DurationSeconds)
}
