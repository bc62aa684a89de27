//go:build !nogui

// Package gui is the fyne desktop front-end: a toolbar, a file explorer, an info
// panel with system metrics and the central text editor.
package gui

import (
	"fyne.io/fyne/v2/app"
)

// AppID identifies the application to fyne's preferences and storage.
const AppID = "io.github.flutteredit"

// Run opens the main window and blocks until it is closed.
func Run(deps Deps) error {
	guiApp := NewApp(app.NewWithID(AppID), deps)
	guiApp.Run()
	return nil
}

// IsGUIAvailable returns whether the GUI is available in this build
func IsGUIAvailable() bool {
	return true
}
