package progress

import (
	"testing"

	"github.com/phinix/phinix-downloader/internal/model"
)

func TestNormalizeBytePairs(t *testing.T) {
	tests := []struct {
		downloaded int64
		total      int64
		want       int
	}{
		{0, 100, 0},
		{1, 100, 1},
		{50, 100, 50},
		{99, 100, 99},
		{100, 100, 100},
		{1, 3, 33},      // floor, not round
		{2, 3, 66},      // floor, not round
		{333, 1000, 33}, // floor of 33.3
		{999, 1000, 99}, // floor of 99.9
		{200, 100, 100}, // clamped above
		{-10, 100, 0},   // clamped below
		{7, 1 << 40, 0}, // large totals do not overflow into garbage
		{1 << 39, 1 << 40, 50},
	}

	for _, tt := range tests {
		p := Normalize(RawEvent{Status: StatusDownloading, DownloadedBytes: tt.downloaded, TotalBytes: tt.total})
		if p.Percent != tt.want {
			t.Errorf("Normalize(%d/%d).Percent = %d, want %d", tt.downloaded, tt.total, p.Percent, tt.want)
		}
		if p.Percent < 0 || p.Percent > 100 {
			t.Errorf("Normalize(%d/%d).Percent = %d out of range", tt.downloaded, tt.total, p.Percent)
		}
		if p.Phase != model.PhaseDownloading {
			t.Errorf("Expected downloading phase, got %s", p.Phase)
		}
	}
}

func TestNormalizePercentStringFallback(t *testing.T) {
	tests := []struct {
		percentString string
		want          int
	}{
		{"42.7%", 42},
		{" 85.0% ", 85},
		{"100%", 100},
		{"0.4%", 0},
		{"250%", 100}, // clamped
		{"-5%", 0},    // clamped
		{"abc%", 0},   // malformed degrades to zero
		{"", 0},
		{"%", 0},
	}

	for _, tt := range tests {
		p := Normalize(RawEvent{Status: StatusDownloading, PercentString: tt.percentString})
		if p.Percent != tt.want {
			t.Errorf("Normalize(%q).Percent = %d, want %d", tt.percentString, p.Percent, tt.want)
		}
	}
}

func TestNormalizeBytesTakePrecedenceOverPercentString(t *testing.T) {
	p := Normalize(RawEvent{
		Status:          StatusDownloading,
		DownloadedBytes: 25,
		TotalBytes:      100,
		PercentString:   "90%",
	})
	if p.Percent != 25 {
		t.Errorf("Expected byte counts to win, got %d", p.Percent)
	}
}

func TestNormalizeFinishedForcesCompletion(t *testing.T) {
	p := Normalize(RawEvent{Status: StatusFinished, DownloadedBytes: 10, TotalBytes: 1000})
	if p.Percent != 100 {
		t.Errorf("Expected finished percent 100, got %d", p.Percent)
	}
	if p.Phase != model.PhaseFinished {
		t.Errorf("Expected finished phase, got %s", p.Phase)
	}

	// Finished wins even with a malformed percent string and no byte counts
	p = Normalize(RawEvent{Status: StatusFinished, PercentString: "abc%"})
	if p.Percent != 100 || p.Phase != model.PhaseFinished {
		t.Errorf("Expected 100/Finished, got %d/%s", p.Percent, p.Phase)
	}
}

func TestNormalizePhases(t *testing.T) {
	tests := []struct {
		status string
		want   model.Phase
	}{
		{StatusDownloading, model.PhaseDownloading},
		{StatusMerging, model.PhaseMerging},
		{"post_processing", model.PhaseMerging},
		{StatusFinished, model.PhaseFinished},
		{"starting", model.PhaseDownloading},
		{"", model.PhaseDownloading},
	}

	for _, tt := range tests {
		if p := Normalize(RawEvent{Status: tt.status}); p.Phase != tt.want {
			t.Errorf("Normalize(status=%q).Phase = %s, want %s", tt.status, p.Phase, tt.want)
		}
	}
}

func TestNormalizeCarriesSpeedAndETA(t *testing.T) {
	p := Normalize(RawEvent{
		Status:          StatusDownloading,
		DownloadedBytes: 50,
		TotalBytes:      100,
		SpeedBPS:        1536.5,
		ETASeconds:      125,
	})
	if p.SpeedBPS != 1536.5 {
		t.Errorf("Expected raw speed carried through, got %f", p.SpeedBPS)
	}
	if p.ETASeconds != 125 {
		t.Errorf("Expected ETA carried through, got %d", p.ETASeconds)
	}

	p = Normalize(RawEvent{Status: StatusDownloading, ETASeconds: -1})
	if p.ETASeconds != -1 {
		t.Errorf("Expected unknown ETA preserved as -1, got %d", p.ETASeconds)
	}
}
