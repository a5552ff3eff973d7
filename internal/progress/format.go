package progress

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/phinix/phinix-downloader/internal/model"
)

const bytesPerKB = 1024

// FormatSpeed renders a raw bytes-per-second value with the largest unit that
// keeps the number at or above one (B/s, KB/s, MB/s). Returns an empty string
// when the speed is unknown.
func FormatSpeed(bps float64) string {
	switch {
	case bps <= 0:
		return ""
	case bps > bytesPerKB*bytesPerKB:
		return fmt.Sprintf("%.2f MB/s", bps/(bytesPerKB*bytesPerKB))
	case bps > bytesPerKB:
		return fmt.Sprintf("%.2f KB/s", bps/bytesPerKB)
	default:
		return fmt.Sprintf("%.0f B/s", bps)
	}
}

// FormatETA renders an ETA in seconds as MM:SS, or "—" if unknown
func FormatETA(seconds int) string {
	if seconds < 0 {
		return "—"
	}
	return model.FormatClock(seconds)
}

// FormatViews renders a view count with thousands separators
func FormatViews(count int64) string {
	return humanize.Comma(count)
}
