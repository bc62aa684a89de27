// Package workspace holds the editor's application state (the text buffer, the file
// it belongs to and the folder being browsed) and the whole-file I/O that mutates it.
//
// A Workspace is owned by a single UI goroutine and is not safe for concurrent use.
package workspace

import (
	"os"
	"path/filepath"
	"sort"
	"unicode/utf8"

	"flutteredit/internal/errors"
	"flutteredit/internal/log"

	"github.com/gobwas/glob"
)

// State is a point-in-time copy of the workspace.
type State struct {
	EditorText    string
	FilePath      string   // empty when the buffer has no file
	FolderPath    string   // empty when no folder is open
	FilesInFolder []string // entry names of FolderPath, replaced wholesale on each open
}

// Option configures a Workspace.
type Option func(*Workspace)

// WithHidePatterns leaves entries whose name matches any pattern out of folder listings.
func WithHidePatterns(patterns []glob.Glob) Option {
	return func(w *Workspace) {
		w.hide = patterns
	}
}

// WithSortedListing sorts folder listings by name.
func WithSortedListing(sorted bool) Option {
	return func(w *Workspace) {
		w.sorted = sorted
	}
}

// WithBeforeWrite registers fn to run just before the buffer is written to path.
func WithBeforeWrite(fn func(path string)) Option {
	return func(w *Workspace) {
		w.beforeWrite = fn
	}
}

// Workspace owns the editor State and performs the file and folder operations on it.
type Workspace struct {
	state       State
	hide        []glob.Glob
	sorted      bool
	beforeWrite func(path string)
}

// New creates an empty Workspace.
func New(opts ...Option) *Workspace {
	w := &Workspace{}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// State returns a copy of the current state.
func (w *Workspace) State() State {
	s := w.state
	if w.state.FilesInFolder != nil {
		s.FilesInFolder = append([]string(nil), w.state.FilesInFolder...)
	}
	return s
}

func (w *Workspace) Text() string       { return w.state.EditorText }
func (w *Workspace) FilePath() string   { return w.state.FilePath }
func (w *Workspace) FolderPath() string { return w.state.FolderPath }

// Files returns the cached folder listing. Callers must not modify it.
func (w *Workspace) Files() []string { return w.state.FilesInFolder }

// SetText replaces the buffer. Every edit goes through here.
func (w *Workspace) SetText(text string) {
	w.state.EditorText = text
}

// LoadFile reads path into the buffer and makes it the active file. On failure the
// state is left untouched.
func (w *Workspace) LoadFile(path string) error {
	text, err := readText(path)
	if err != nil {
		return err
	}
	w.state.EditorText = text
	w.state.FilePath = path
	log.LogWithFields(log.F("path", path), log.F("bytes", len(text))).Debug("file loaded")
	return nil
}

// Save overwrites the active file with the buffer. It returns ErrNoActiveFile when the
// buffer has no file yet.
func (w *Workspace) Save() error {
	if w.state.FilePath == "" {
		return errors.ErrNoActiveFile
	}
	return w.write(w.state.FilePath)
}

// SaveAs writes the buffer to path and, on success, makes it the active file.
func (w *Workspace) SaveAs(path string) error {
	if err := w.write(path); err != nil {
		return err
	}
	w.state.FilePath = path
	return nil
}

func (w *Workspace) write(path string) error {
	if w.beforeWrite != nil {
		w.beforeWrite(path)
	}
	return writeText(path, w.state.EditorText)
}

// OpenFolder lists the immediate entries of path and makes it the browsed folder.
// A directory that cannot be read yields an empty listing.
func (w *Workspace) OpenFolder(path string) {
	names, err := listNames(path)
	if err != nil {
		log.LogWithError(err).Warn("folder listing incomplete")
	}
	if names == nil {
		names = []string{}
	}

	names = w.filter(names)
	if w.sorted {
		sort.Strings(names)
	}

	w.state.FolderPath = path
	w.state.FilesInFolder = names
}

// LoadFromFolder loads the entry name of the open folder.
func (w *Workspace) LoadFromFolder(name string) error {
	if w.state.FolderPath == "" {
		return errors.ErrNoActiveFolder
	}
	if err := w.LoadFile(filepath.Join(w.state.FolderPath, name)); err != nil {
		return errors.Wrapf(err, "folder entry %s", name)
	}
	return nil
}

func (w *Workspace) filter(names []string) []string {
	if len(w.hide) == 0 {
		return names
	}
	kept := names[:0]
	for _, name := range names {
		if !w.hidden(name) {
			kept = append(kept, name)
		}
	}
	return kept
}

func (w *Workspace) hidden(name string) bool {
	for _, g := range w.hide {
		if g.Match(name) {
			return true
		}
	}
	return false
}

// listNames returns entry names in directory order. Names that are not valid UTF-8
// are dropped.
func listNames(dir string) ([]string, error) {
	f, err := os.Open(dir)
	if err != nil {
		return nil, errors.FromOSError("cannot open folder", dir, errors.DirectoryReadFailed, err)
	}
	defer f.Close()

	entries, err := f.ReadDir(-1)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !utf8.ValidString(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}
	if err != nil {
		return names, errors.FromOSError("cannot read folder", dir, errors.DirectoryReadFailed, err)
	}
	return names, nil
}
