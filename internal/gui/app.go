//go:build !nogui

package gui

import (
	"fmt"
	"path/filepath"
	"slices"
	"time"

	"flutteredit/internal/config"
	"flutteredit/internal/log"
	"flutteredit/internal/metrics"
	"flutteredit/internal/terminal"
	"flutteredit/internal/watch"
	"flutteredit/internal/workspace"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// Deps are the collaborators the window drives.
type Deps struct {
	Config    *config.Config
	Workspace *workspace.Workspace
	Metrics   *metrics.Reader
	Launcher  *terminal.Launcher
	Watcher   *watch.Watcher   // optional
	Picker    workspace.Picker // optional, defaults to fyne dialogs
}

// App is the GUI application
type App struct {
	fyneApp    fyne.App
	mainWindow fyne.Window
	cfg        *config.Config
	ws         *workspace.Workspace
	actions    *workspace.Actions
	metrics    *metrics.Reader
	launcher   *terminal.Launcher
	watcher    *watch.Watcher

	// Top bar
	menuButtons    []*widget.Button
	terminalButton *widget.Button

	// Left panel
	openFileButton   *widget.Button
	saveFileButton   *widget.Button
	openFolderButton *widget.Button
	folderLabel      *widget.Label
	entryBox         *fyne.Container
	entryButtons     []*widget.Button
	shownFolder      string
	shownEntries     []string

	// Right panel
	processLabel *widget.Label
	memoryLabel  *widget.Label
	diskLabel    *widget.Label

	// Center and bottom
	editor      *widget.Entry
	statusLabel *widget.Label

	stop chan struct{}
}

// NewApp creates the main window on fyneApp. The window content is built
// immediately so it can be inspected before Run.
func NewApp(fyneApp fyne.App, deps Deps) *App {
	cfg := deps.Config
	if cfg == nil {
		cfg = config.New()
	}

	a := &App{
		fyneApp:  fyneApp,
		cfg:      cfg,
		ws:       deps.Workspace,
		metrics:  deps.Metrics,
		launcher: deps.Launcher,
		watcher:  deps.Watcher,
		stop:     make(chan struct{}),
	}

	a.mainWindow = fyneApp.NewWindow(cfg.Window.Title)
	a.mainWindow.Resize(fyne.NewSize(float32(cfg.Window.Width), float32(cfg.Window.Height)))

	picker := deps.Picker
	if picker == nil {
		picker = newDialogPicker(a.mainWindow, a.ws)
	}
	a.actions = workspace.NewActions(a.ws, picker, a)
	a.actions.OnChange(a.renderFrame)

	a.setupMainWindow()
	a.renderFrame()
	return a
}

// GetMainWindow returns the main window instance
func (a *App) GetMainWindow() fyne.Window {
	return a.mainWindow
}

// Run shows the window and blocks until the application quits.
func (a *App) Run() {
	a.mainWindow.SetOnClosed(a.shutdown)
	go a.frameTicker(a.cfg.RefreshInterval())
	if a.watcher != nil {
		go a.forwardChanges()
	}
	a.mainWindow.ShowAndRun()
}

func (a *App) shutdown() {
	select {
	case <-a.stop:
	default:
		close(a.stop)
	}
	if a.watcher != nil {
		if err := a.watcher.Close(); err != nil {
			log.LogWithError(err).Warn("closing watcher")
		}
	}
}

// frameTicker drives renderFrame on the UI goroutine.
func (a *App) frameTicker(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			fyne.Do(a.renderFrame)
		case <-a.stop:
			return
		}
	}
}

func (a *App) forwardChanges() {
	for change := range a.watcher.Changes() {
		fyne.Do(func() {
			a.reportExternalChange(change)
		})
	}
}

func (a *App) reportExternalChange(change watch.Change) {
	if change.Path != a.ws.FilePath() {
		return
	}
	if change.Removed {
		a.ShowStatus(fmt.Sprintf("%s was removed from disk", filepath.Base(change.Path)))
		return
	}
	a.ShowStatus(fmt.Sprintf("%s changed on disk", filepath.Base(change.Path)))
}

// renderFrame samples metrics and brings every widget in line with the state.
func (a *App) renderFrame() {
	a.metrics.Refresh()
	a.processLabel.SetText(a.metrics.ProcessMemorySummary())
	a.memoryLabel.SetText("Memory: " + a.metrics.MemorySummary())
	a.diskLabel.SetText("Disk: " + a.metrics.DiskSummary())

	if a.editor.Text != a.ws.Text() {
		a.editor.SetText(a.ws.Text())
	}

	a.syncExplorer()
	a.syncTerminalButton()
	a.syncWatcher()
	a.syncTitle()
}

func (a *App) syncExplorer() {
	folder := a.ws.FolderPath()
	entries := a.ws.Files()
	if folder == a.shownFolder && slices.Equal(entries, a.shownEntries) {
		return
	}

	a.shownFolder = folder
	a.shownEntries = append([]string(nil), entries...)

	if folder == "" {
		a.folderLabel.SetText("")
		a.folderLabel.Hide()
	} else {
		a.folderLabel.SetText("Files in: " + folder)
		a.folderLabel.Show()
	}

	a.entryButtons = a.entryButtons[:0]
	objects := make([]fyne.CanvasObject, 0, len(entries))
	for _, name := range entries {
		btn := widget.NewButton(name, func() {
			a.actions.OpenFileFromFolder(name)
		})
		btn.Alignment = widget.ButtonAlignLeading
		btn.Importance = widget.LowImportance
		a.entryButtons = append(a.entryButtons, btn)
		objects = append(objects, btn)
	}
	a.entryBox.Objects = objects
	a.entryBox.Refresh()
}

func (a *App) syncTerminalButton() {
	switch a.launcher.State() {
	case terminal.Started:
		a.terminalButton.SetText("Terminal Running")
		a.terminalButton.Disable()
	case terminal.Failed:
		a.terminalButton.SetText("Retry Terminal")
		a.terminalButton.Enable()
	default:
		a.terminalButton.SetText("Open Terminal")
		a.terminalButton.Enable()
	}
}

func (a *App) syncWatcher() {
	if a.watcher == nil {
		return
	}
	if err := a.watcher.Track(a.ws.FilePath()); err != nil {
		log.LogWithError(err).Warn("cannot watch active file")
	}
}

func (a *App) syncTitle() {
	title := a.cfg.Window.Title
	if path := a.ws.FilePath(); path != "" {
		title = filepath.Base(path) + " - " + title
	}
	a.mainWindow.SetTitle(title)
}

// launchTerminal handles the top bar button.
func (a *App) launchTerminal() {
	if err := a.launcher.Launch(); err != nil {
		a.ShowError("Could not open terminal", err)
	} else if a.launcher.State() == terminal.Started {
		a.ShowStatus("Terminal started: " + a.launcher.Command())
	}
	a.renderFrame()
}

// ShowError displays an error message
func (a *App) ShowError(message string, err error) {
	log.LogError(err, message)
	a.statusLabel.SetText(message)
	dialog.ShowError(fmt.Errorf("%s: %w", message, err), a.mainWindow)
}

// ShowStatus puts a transient notice in the status bar.
func (a *App) ShowStatus(message string) {
	log.Debug(message)
	a.statusLabel.SetText(message)
}
