//go:build !nogui

package gui

import (
	"path/filepath"

	"flutteredit/internal/log"
	"flutteredit/internal/workspace"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
)

// dialogPicker implements workspace.Picker with fyne's file dialogs. The dialogs
// start in the folder being browsed, or next to the active file.
type dialogPicker struct {
	window fyne.Window
	ws     *workspace.Workspace
}

func newDialogPicker(window fyne.Window, ws *workspace.Workspace) *dialogPicker {
	return &dialogPicker{window: window, ws: ws}
}

func (p *dialogPicker) PickFile(done func(string, bool)) {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			p.cancelled("open file", err, done)
			return
		}
		path := reader.URI().Path()
		if cerr := reader.Close(); cerr != nil {
			log.LogWithError(cerr).Debug("closing picked file")
		}
		done(path, true)
	}, p.window)
	p.show(d)
}

func (p *dialogPicker) PickFolder(done func(string, bool)) {
	d := dialog.NewFolderOpen(func(dir fyne.ListableURI, err error) {
		if err != nil || dir == nil {
			p.cancelled("open folder", err, done)
			return
		}
		done(dir.Path(), true)
	}, p.window)
	p.show(d)
}

func (p *dialogPicker) SaveFileAs(done func(string, bool)) {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			p.cancelled("save as", err, done)
			return
		}
		path := writer.URI().Path()
		// The buffer is written by the workspace; the dialog's writer only reserved the name
		if cerr := writer.Close(); cerr != nil {
			log.LogWithError(cerr).Debug("closing save target")
		}
		done(path, true)
	}, p.window)
	d.SetFileName("untitled.txt")
	p.show(d)
}

func (p *dialogPicker) show(d *dialog.FileDialog) {
	if dir := p.startDir(); dir != "" {
		if lister, err := storage.ListerForURI(storage.NewFileURI(dir)); err == nil {
			d.SetLocation(lister)
		}
	}
	d.Resize(fyne.NewSize(720, 480))
	d.Show()
}

func (p *dialogPicker) startDir() string {
	if folder := p.ws.FolderPath(); folder != "" {
		return folder
	}
	if file := p.ws.FilePath(); file != "" {
		return filepath.Dir(file)
	}
	return ""
}

func (p *dialogPicker) cancelled(action string, err error, done func(string, bool)) {
	if err != nil {
		log.LogWithError(err).With(log.F("action", action)).Warn("file dialog failed")
	}
	done("", false)
}
