package progress

import "testing"

func TestFormatSpeed(t *testing.T) {
	tests := []struct {
		bps  float64
		want string
	}{
		{0, ""},
		{-1, ""},
		{512, "512 B/s"},
		{1024, "1024 B/s"}, // unit switches strictly above 1 KB/s
		{2048, "2.00 KB/s"},
		{1536, "1.50 KB/s"},
		{3 * 1024 * 1024, "3.00 MB/s"},
		{2621440, "2.50 MB/s"},
	}

	for _, tt := range tests {
		if got := FormatSpeed(tt.bps); got != tt.want {
			t.Errorf("FormatSpeed(%f) = %q, want %q", tt.bps, got, tt.want)
		}
	}
}

func TestFormatETA(t *testing.T) {
	if got := FormatETA(-1); got != "—" {
		t.Errorf("Expected em dash for unknown ETA, got %q", got)
	}
	if got := FormatETA(125); got != "02:05" {
		t.Errorf("Expected 02:05, got %q", got)
	}
	if got := FormatETA(3725); got != "01:02:05" {
		t.Errorf("Expected 01:02:05, got %q", got)
	}
}

func TestFormatViews(t *testing.T) {
	if got := FormatViews(1500); got != "1,500" {
		t.Errorf("Expected 1,500, got %q", got)
	}
	if got := FormatViews(42); got != "42" {
		t.Errorf("Expected 42, got %q", got)
	}
}
