package config

import (
	"fyne.io/fyne/v2"

	"github.com/phinix/phinix-downloader/internal/platform"
)

// Settings keys for Fyne preferences
const (
	KeyDownloadDir    = "download_directory"
	KeyFormatSelector = "format_selector"
	KeyAudioOnly      = "audio_only"
	KeyAutoReveal     = "auto_reveal_on_complete"
)

// Default values
const (
	// DefaultFormatSelector asks yt-dlp for the best video+audio combination
	DefaultFormatSelector = "bestvideo+bestaudio/best"

	DefaultAudioOnly = false

	// DefaultAutoReveal opens the file manager on the finished download
	DefaultAutoReveal = true

	// FallbackDownloadDir is used when the home directory cannot be resolved
	FallbackDownloadDir = "/tmp/downloads"
)

// Settings manages application configuration
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetDownloadDirectory returns the configured download directory
func (s *Settings) GetDownloadDirectory() string {
	dir := s.app.Preferences().String(KeyDownloadDir)
	if dir == "" {
		defaultDir, err := platform.GetHomeDownloadsDir()
		if err != nil {
			defaultDir = FallbackDownloadDir
		}
		s.SetDownloadDirectory(defaultDir)
		return defaultDir
	}
	return dir
}

// SetDownloadDirectory sets the download directory
func (s *Settings) SetDownloadDirectory(dir string) {
	s.app.Preferences().SetString(KeyDownloadDir, dir)
}

// GetFormatSelector returns the yt-dlp format selector
func (s *Settings) GetFormatSelector() string {
	selector := s.app.Preferences().String(KeyFormatSelector)
	if selector == "" {
		s.SetFormatSelector(DefaultFormatSelector)
		return DefaultFormatSelector
	}
	return selector
}

// SetFormatSelector sets the yt-dlp format selector
func (s *Settings) SetFormatSelector(selector string) {
	if selector == "" {
		selector = DefaultFormatSelector
	}
	s.app.Preferences().SetString(KeyFormatSelector, selector)
}

// GetAudioOnly returns whether downloads extract audio only
func (s *Settings) GetAudioOnly() bool {
	return s.app.Preferences().BoolWithFallback(KeyAudioOnly, DefaultAudioOnly)
}

// SetAudioOnly sets whether downloads extract audio only
func (s *Settings) SetAudioOnly(audioOnly bool) {
	s.app.Preferences().SetBool(KeyAudioOnly, audioOnly)
}

// GetAutoRevealOnComplete returns whether a finished download is revealed in
// the system file manager
func (s *Settings) GetAutoRevealOnComplete() bool {
	return s.app.Preferences().BoolWithFallback(KeyAutoReveal, DefaultAutoReveal)
}

// SetAutoRevealOnComplete sets whether a finished download is revealed in the
// system file manager
func (s *Settings) SetAutoRevealOnComplete(enabled bool) {
	s.app.Preferences().SetBool(KeyAutoReveal, enabled)
}
