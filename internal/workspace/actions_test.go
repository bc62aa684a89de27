package workspace

import (
	"os"
	"path/filepath"
	"testing"

	"flutteredit/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubPicker answers every dialog immediately with a fixed result.
type stubPicker struct {
	path      string
	ok        bool
	fileCalls int
	dirCalls  int
	saveCalls int
}

func (p *stubPicker) PickFile(done func(string, bool)) {
	p.fileCalls++
	done(p.path, p.ok)
}

func (p *stubPicker) PickFolder(done func(string, bool)) {
	p.dirCalls++
	done(p.path, p.ok)
}

func (p *stubPicker) SaveFileAs(done func(string, bool)) {
	p.saveCalls++
	done(p.path, p.ok)
}

type recordingNotifier struct {
	errs     []error
	messages []string
	statuses []string
}

func (n *recordingNotifier) ShowError(msg string, err error) {
	n.messages = append(n.messages, msg)
	n.errs = append(n.errs, err)
}

func (n *recordingNotifier) ShowStatus(msg string) { n.statuses = append(n.statuses, msg) }

func newActions(picker *stubPicker) (*Actions, *recordingNotifier, *int) {
	n := &recordingNotifier{}
	a := NewActions(New(), picker, n)
	changes := 0
	a.OnChange(func() { changes++ })
	return a, n, &changes
}

// populated returns actions whose workspace has every state field set.
func populated(t *testing.T, picker *stubPicker) (*Actions, *recordingNotifier) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(path, []byte("alpha"), 0644))

	a, n, _ := newActions(picker)
	a.Workspace().OpenFolder(dir)
	require.NoError(t, a.Workspace().LoadFromFolder("a.txt"))
	a.Workspace().SetText("edited alpha")
	return a, n
}

func TestOpenFileAction(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.txt")
	require.NoError(t, os.WriteFile(path, []byte("document"), 0644))

	picker := &stubPicker{path: path, ok: true}
	a, n, changes := newActions(picker)
	a.OpenFile()

	assert.Equal(t, 1, picker.fileCalls)
	assert.Equal(t, "document", a.Workspace().Text())
	assert.Equal(t, path, a.Workspace().FilePath())
	assert.Empty(t, n.errs)
	assert.Equal(t, 1, *changes)
}

func TestOpenFileActionReportsErrors(t *testing.T) {
	picker := &stubPicker{path: filepath.Join(t.TempDir(), "missing.txt"), ok: true}
	a, n, _ := newActions(picker)
	a.Workspace().SetText("unsaved")
	before := a.Workspace().State()

	assert.NotPanics(t, a.OpenFile)
	require.Len(t, n.errs, 1)
	assert.True(t, errors.IsFileNotFound(n.errs[0]))
	assert.Equal(t, []string{"Could not open file (file not found)"}, n.messages)
	assert.Equal(t, before, a.Workspace().State())
}

func TestOpenFileActionNamesBinaryFiles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blob.bin")
	require.NoError(t, os.WriteFile(path, []byte{0xff, 0xfe, 0x00, 0x81}, 0644))

	a, n, _ := newActions(&stubPicker{path: path, ok: true})
	a.OpenFile()

	require.Len(t, n.errs, 1)
	assert.Equal(t, []string{"Could not open file (not a text file)"}, n.messages)
	assert.Empty(t, a.Workspace().FilePath())
}

func TestPickedMapsDismissalToCancelled(t *testing.T) {
	assert.NoError(t, picked(true))
	assert.True(t, errors.IsCancelled(picked(false)))
}

func TestCancelledDialogsLeaveStateUnchanged(t *testing.T) {
	picker := &stubPicker{ok: false}
	a, n := populated(t, picker)
	before := a.Workspace().State()

	a.OpenFile()
	a.OpenFolder()
	assert.Equal(t, before, a.Workspace().State())

	fresh, freshN, changes := newActions(picker)
	fresh.Workspace().SetText("never saved")
	freshBefore := fresh.Workspace().State()
	fresh.SaveFile()

	assert.Equal(t, 1, picker.saveCalls)
	assert.Equal(t, freshBefore, fresh.Workspace().State())
	assert.Empty(t, fresh.Workspace().FilePath())
	assert.Empty(t, freshN.errs)
	assert.Empty(t, n.errs)
	assert.Equal(t, 1, *changes)
}

func TestSaveFileWithActivePathSkipsDialog(t *testing.T) {
	picker := &stubPicker{ok: true}
	a, n := populated(t, picker)
	a.SaveFile()

	assert.Zero(t, picker.saveCalls)
	got, err := os.ReadFile(a.Workspace().FilePath())
	require.NoError(t, err)
	assert.Equal(t, "edited alpha", string(got))
	assert.Empty(t, n.errs)
}

func TestSaveFileWithoutPathAsksForOne(t *testing.T) {
	target := filepath.Join(t.TempDir(), "saved.txt")
	picker := &stubPicker{path: target, ok: true}
	a, n, _ := newActions(picker)
	a.Workspace().SetText("brand new")

	a.SaveFile()
	assert.Equal(t, 1, picker.saveCalls)
	assert.Equal(t, target, a.Workspace().FilePath())
	got, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "brand new", string(got))
	assert.Equal(t, []string{"Saved " + target}, n.statuses)

	// Second save reuses the recorded path
	a.SaveFile()
	assert.Equal(t, 1, picker.saveCalls)
}

func TestSaveFileWriteFailure(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gone", "x.txt")
	picker := &stubPicker{path: path, ok: true}
	a, n, _ := newActions(picker)
	a.Workspace().SetText("data")

	a.SaveFile()
	require.Len(t, n.errs, 1)
	assert.Empty(t, a.Workspace().FilePath())
}

func TestOpenFolderAndFileFromFolder(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("alpha"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), []byte("beta"), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0755))

	picker := &stubPicker{path: dir, ok: true}
	a, n, _ := newActions(picker)
	a.OpenFolder()

	assert.Equal(t, dir, a.Workspace().FolderPath())
	assert.ElementsMatch(t, []string{"a.txt", "b.txt", "sub"}, a.Workspace().Files())

	a.OpenFileFromFolder("a.txt")
	assert.Equal(t, filepath.Join(dir, "a.txt"), a.Workspace().FilePath())
	assert.Equal(t, "alpha", a.Workspace().Text())

	// Subdirectories are listed but cannot be loaded as text
	before := a.Workspace().State()
	a.OpenFileFromFolder("sub")
	require.Len(t, n.errs, 1)
	assert.Equal(t, before, a.Workspace().State())
}

func TestOpenFileFromFolderWithoutFolder(t *testing.T) {
	a, n, _ := newActions(&stubPicker{})
	a.OpenFileFromFolder("a.txt")
	require.Len(t, n.errs, 1)
	assert.ErrorIs(t, n.errs[0], errors.ErrNoActiveFolder)
}
