//go:build nogui

package gui

import (
	"flutteredit/internal/config"
	"flutteredit/internal/errors"
	"flutteredit/internal/metrics"
	"flutteredit/internal/terminal"
	"flutteredit/internal/watch"
	"flutteredit/internal/workspace"
)

// Deps mirrors the GUI build so callers compile unchanged.
type Deps struct {
	Config    *config.Config
	Workspace *workspace.Workspace
	Metrics   *metrics.Reader
	Launcher  *terminal.Launcher
	Watcher   *watch.Watcher
	Picker    workspace.Picker
}

// Run is a stub implementation for builds with GUI disabled
func Run(Deps) error {
	return errors.New("GUI not available in this build; use the tui command")
}

// IsGUIAvailable returns whether the GUI is available in this build
func IsGUIAvailable() bool {
	return false
}
