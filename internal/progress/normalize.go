package progress

import (
	"strconv"
	"strings"

	"github.com/phinix/phinix-downloader/internal/model"
)

// Raw event statuses as reported by the resolver
const (
	StatusDownloading = "downloading"
	StatusMerging     = "merging"
	StatusFinished    = "finished"
)

// RawEvent is one progress callback from the resolver, before normalization.
// Byte counts take precedence over PercentString when TotalBytes is known.
type RawEvent struct {
	Status          string
	DownloadedBytes int64
	TotalBytes      int64
	PercentString   string  // fallback such as " 42.5%" when byte counts are missing
	SpeedBPS        float64 // bytes per second, 0 if unknown
	ETASeconds      int     // -1 if unknown
	Filename        string  // final file path, usually only on finished events
}

// Normalize converts a raw event into a canonical progress record. It never
// fails: malformed input degrades to a zero percent rather than failing the
// task. A finished event forces percent 100 regardless of prior values.
func Normalize(ev RawEvent) model.Progress {
	p := model.Progress{
		Percent:    percentOf(ev),
		SpeedBPS:   ev.SpeedBPS,
		ETASeconds: ev.ETASeconds,
		Phase:      phaseOf(ev.Status),
	}

	if p.Phase == model.PhaseFinished {
		p.Percent = 100
	}
	return p
}

func percentOf(ev RawEvent) int {
	if ev.TotalBytes > 0 {
		return clampPercent(int(ev.DownloadedBytes * 100 / ev.TotalBytes))
	}

	s := strings.TrimSpace(ev.PercentString)
	s = strings.TrimSpace(strings.TrimSuffix(s, "%"))
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return clampPercent(int(f))
}

func clampPercent(percent int) int {
	if percent < 0 {
		return 0
	}
	if percent > 100 {
		return 100
	}
	return percent
}

func phaseOf(status string) model.Phase {
	switch status {
	case StatusFinished:
		return model.PhaseFinished
	case StatusMerging, "post_processing":
		return model.PhaseMerging
	default:
		// Unknown statuses degrade to the downloading phase
		return model.PhaseDownloading
	}
}
