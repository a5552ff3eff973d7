package model

import "testing"

func TestTaskStateIsActive(t *testing.T) {
	active := []TaskState{StatePending, StateRunning}
	for _, state := range active {
		if !state.IsActive() {
			t.Errorf("Expected %s to be active", state)
		}
	}

	inactive := []TaskState{StateCompleted, StateFailed, StateCancelled}
	for _, state := range inactive {
		if state.IsActive() {
			t.Errorf("Expected %s to not be active", state)
		}
	}
}

func TestTaskStateIsTerminal(t *testing.T) {
	terminal := []TaskState{StateCompleted, StateFailed, StateCancelled}
	for _, state := range terminal {
		if !state.IsTerminal() {
			t.Errorf("Expected %s to be terminal", state)
		}
	}

	nonTerminal := []TaskState{StatePending, StateRunning}
	for _, state := range nonTerminal {
		if state.IsTerminal() {
			t.Errorf("Expected %s to not be terminal", state)
		}
	}
}

func TestFormatClock(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{0, "00:00"},
		{5, "00:05"},
		{125, "02:05"},
		{3599, "59:59"},
		{3600, "01:00:00"},
		{3725, "01:02:05"},
		{-10, "00:00"},
	}

	for _, tt := range tests {
		if got := FormatClock(tt.seconds); got != tt.want {
			t.Errorf("FormatClock(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestDurationClock(t *testing.T) {
	meta := &VideoMetadata{Title: "T", DurationSeconds: 125}
	if got := meta.DurationClock(); got != "02:05" {
		t.Errorf("Expected duration 02:05, got %s", got)
	}
}

func TestDisplayTitle(t *testing.T) {
	task := &Task{URL: "https://example.com/watch?v=abc"}
	if got := task.DisplayTitle(); got != task.URL {
		t.Errorf("Expected URL fallback, got %q", got)
	}

	task.OutputPath = "/downloads/Some Video.mp4"
	if got := task.DisplayTitle(); got != "Some Video" {
		t.Errorf("Expected filename without extension, got %q", got)
	}

	task.Metadata = &VideoMetadata{Title: "Some Title"}
	if got := task.DisplayTitle(); got != "Some Title" {
		t.Errorf("Expected metadata title, got %q", got)
	}
}
