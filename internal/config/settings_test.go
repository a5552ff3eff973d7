package config

import (
	"testing"

	"fyne.io/fyne/v2/test"
)

func TestNewSettings(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if settings.app != app {
		t.Error("Settings app reference should match provided app")
	}
}

func TestDownloadDirectory(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	// Test default value
	dir := settings.GetDownloadDirectory()
	if dir == "" {
		t.Error("Download directory should not be empty")
	}

	// Test setting custom value
	customDir := "/custom/downloads"
	settings.SetDownloadDirectory(customDir)

	if got := settings.GetDownloadDirectory(); got != customDir {
		t.Errorf("Expected download directory %s, got %s", customDir, got)
	}
}

func TestFormatSelector(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if got := settings.GetFormatSelector(); got != DefaultFormatSelector {
		t.Errorf("Expected default selector %s, got %s", DefaultFormatSelector, got)
	}

	settings.SetFormatSelector("best")
	if got := settings.GetFormatSelector(); got != "best" {
		t.Errorf("Expected selector best, got %s", got)
	}

	// Empty selector resets to the default
	settings.SetFormatSelector("")
	if got := settings.GetFormatSelector(); got != DefaultFormatSelector {
		t.Errorf("Expected default selector %s, got %s", DefaultFormatSelector, got)
	}
}

func TestAudioOnly(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if settings.GetAudioOnly() != DefaultAudioOnly {
		t.Errorf("Expected default audio-only %v", DefaultAudioOnly)
	}

	settings.SetAudioOnly(true)
	if !settings.GetAudioOnly() {
		t.Error("Expected audio-only to be true after set")
	}
}

func TestAutoRevealOnComplete(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if settings.GetAutoRevealOnComplete() != DefaultAutoReveal {
		t.Errorf("Expected default auto-reveal %v", DefaultAutoReveal)
	}

	settings.SetAutoRevealOnComplete(false)
	if settings.GetAutoRevealOnComplete() {
		t.Error("Expected auto-reveal to be false after set")
	}
}
