package main

import (
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/phinix/phinix-downloader/internal/config"
	"github.com/phinix/phinix-downloader/internal/coordinator"
	"github.com/phinix/phinix-downloader/internal/platform"
	"github.com/phinix/phinix-downloader/internal/resolver"
	"github.com/phinix/phinix-downloader/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.phinix.downloader"
	AppName = "Phinix Downloader"

	WindowWidth  = 700
	WindowHeight = 450
)

func main() {
	log.Printf("%s v%s starting...", AppName, version)

	myApp := app.NewWithID(AppID)
	myWindow := myApp.NewWindow(AppName)
	myWindow.Resize(fyne.NewSize(WindowWidth, WindowHeight))

	settings := config.NewSettings(myApp)
	downloadsDir := settings.GetDownloadDirectory()
	if err := platform.EnsureDir(downloadsDir); err != nil {
		log.Printf("failed to ensure downloads dir: %v", err)
	}

	coord := coordinator.New(resolver.NewYTDLP())
	ui.NewRootUI(myWindow, myApp, coord)

	myWindow.ShowAndRun()
	coord.Close()
}
