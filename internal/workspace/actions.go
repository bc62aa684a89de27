package workspace

import (
	"flutteredit/internal/errors"
	"flutteredit/internal/log"
)

// Picker is the file-dialog collaborator. Each call presents a dialog and later
// invokes done exactly once; ok is false when the user cancelled.
type Picker interface {
	PickFile(done func(path string, ok bool))
	PickFolder(done func(path string, ok bool))
	SaveFileAs(done func(path string, ok bool))
}

// Notifier surfaces the outcome of an action to the user.
type Notifier interface {
	ShowError(message string, err error)
	ShowStatus(message string)
}

// Actions are the user-facing editor commands: each one may present a dialog, then
// mutates the Workspace. Failures never escape; they are reported through the
// Notifier and leave the state as it was.
type Actions struct {
	ws       *Workspace
	picker   Picker
	notifier Notifier
	onChange func()
}

// NewActions binds the commands to a workspace and its collaborators.
func NewActions(ws *Workspace, picker Picker, notifier Notifier) *Actions {
	return &Actions{ws: ws, picker: picker, notifier: notifier}
}

// Workspace returns the workspace the actions mutate.
func (a *Actions) Workspace() *Workspace {
	return a.ws
}

// OnChange registers fn to run after every action finishes, cancelled or not.
func (a *Actions) OnChange(fn func()) {
	a.onChange = fn
}

// OpenFile asks for a file and loads it into the buffer.
func (a *Actions) OpenFile() {
	a.picker.PickFile(func(path string, ok bool) {
		defer a.changed()
		if err := picked(ok); err != nil {
			a.fail("open file cancelled", err)
			return
		}
		if err := a.ws.LoadFile(path); err != nil {
			a.fail("Could not open file", err)
			return
		}
		a.notifier.ShowStatus("Opened " + path)
	})
}

// SaveFile writes the buffer to its file, asking for a destination when the buffer
// has none.
func (a *Actions) SaveFile() {
	err := a.ws.Save()
	switch {
	case err == nil:
		a.notifier.ShowStatus("Saved " + a.ws.FilePath())
		a.changed()
		return
	case errors.KindOf(err) != errors.NoActiveFile:
		a.fail("Could not save file", err)
		a.changed()
		return
	}

	a.picker.SaveFileAs(func(path string, ok bool) {
		defer a.changed()
		if err := picked(ok); err != nil {
			a.fail("save as cancelled", err)
			return
		}
		if err := a.ws.SaveAs(path); err != nil {
			a.fail("Could not save file", err)
			return
		}
		a.notifier.ShowStatus("Saved " + path)
	})
}

// OpenFolder asks for a folder and lists its entries.
func (a *Actions) OpenFolder() {
	a.picker.PickFolder(func(path string, ok bool) {
		defer a.changed()
		if err := picked(ok); err != nil {
			a.fail("open folder cancelled", err)
			return
		}
		a.ws.OpenFolder(path)
		a.notifier.ShowStatus("Browsing " + path)
	})
}

// OpenFileFromFolder loads the named entry of the open folder.
func (a *Actions) OpenFileFromFolder(name string) {
	defer a.changed()
	if err := a.ws.LoadFromFolder(name); err != nil {
		a.fail("Could not open file", err)
		return
	}
	a.notifier.ShowStatus("Opened " + a.ws.FilePath())
}

// picked turns a dismissed dialog into ErrCancelled.
func picked(ok bool) error {
	if !ok {
		return errors.ErrCancelled
	}
	return nil
}

// fail reports err through the Notifier. Cancellations are only logged.
func (a *Actions) fail(message string, err error) {
	if errors.IsCancelled(err) {
		log.LogWithError(err).Debug(message)
		return
	}
	if reason := reasonOf(err); reason != "" {
		message += " (" + reason + ")"
	}
	a.notifier.ShowError(message, err)
}

// reasonOf names the common file failures in words a user recognises.
func reasonOf(err error) string {
	switch {
	case errors.IsFileNotFound(err):
		return "file not found"
	case errors.IsFileAccessDenied(err):
		return "permission denied"
	case errors.IsNotText(err):
		return "not a text file"
	}
	return ""
}

func (a *Actions) changed() {
	if a.onChange != nil {
		a.onChange()
	}
}
