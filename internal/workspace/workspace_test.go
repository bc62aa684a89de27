package workspace

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"flutteredit/internal/errors"

	"github.com/gobwas/glob"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	writeFile(t, path, "hola\nmundo ✓\n")

	ws := New()
	require.NoError(t, ws.LoadFile(path))
	assert.Equal(t, "hola\nmundo ✓\n", ws.Text())
	assert.Equal(t, path, ws.FilePath())
}

func TestLoadFileFailureLeavesStateUnchanged(t *testing.T) {
	dir := t.TempDir()
	original := filepath.Join(dir, "original.txt")
	writeFile(t, original, "keep me")

	binary := filepath.Join(dir, "image.png")
	require.NoError(t, os.WriteFile(binary, []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0xff, 0xfe, 0x00}, 0644))

	ws := New()
	require.NoError(t, ws.LoadFile(original))
	before := ws.State()

	t.Run("missing file", func(t *testing.T) {
		err := ws.LoadFile(filepath.Join(dir, "absent.txt"))
		require.Error(t, err)
		assert.True(t, errors.IsFileNotFound(err))
		assert.Equal(t, before, ws.State())
	})

	t.Run("not utf8", func(t *testing.T) {
		err := ws.LoadFile(binary)
		require.Error(t, err)
		assert.True(t, errors.IsNotText(err))
		assert.Contains(t, err.Error(), "image/png")
		assert.Equal(t, before, ws.State())
	})

	t.Run("directory", func(t *testing.T) {
		err := ws.LoadFile(dir)
		require.Error(t, err)
		assert.Equal(t, before, ws.State())
	})
}

func TestSaveRequiresActiveFile(t *testing.T) {
	ws := New()
	ws.SetText("draft")
	err := ws.Save()
	assert.ErrorIs(t, err, errors.ErrNoActiveFile)
	assert.Empty(t, ws.FilePath())
}

func TestSaveRoundTripIsByteIdentical(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.txt")
	original := "line one\r\nline two\n\ttabbed ünïcode\n\n"
	writeFile(t, path, original)

	ws := New()
	require.NoError(t, ws.LoadFile(path))
	require.NoError(t, ws.Save())

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte(original), got)
}

func TestSaveTruncates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "long.txt")
	writeFile(t, path, "a much longer original body")

	ws := New()
	require.NoError(t, ws.LoadFile(path))
	ws.SetText("short")
	require.NoError(t, ws.Save())

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "short", string(got))
}

func TestSaveAs(t *testing.T) {
	dir := t.TempDir()
	ws := New()
	ws.SetText("fresh buffer")

	target := filepath.Join(dir, "new.txt")
	require.NoError(t, ws.SaveAs(target))
	assert.Equal(t, target, ws.FilePath())

	got, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "fresh buffer", string(got))

	bad := filepath.Join(dir, "missing-dir", "x.txt")
	err = ws.SaveAs(bad)
	require.Error(t, err)
	assert.Equal(t, errors.FileNotFound, errors.KindOf(err))
	assert.Equal(t, target, ws.FilePath(), "failed save-as keeps the previous path")
}

func TestOpenFolder(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.txt"), "alpha")
	writeFile(t, filepath.Join(dir, "b.txt"), "beta")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0755))

	ws := New()
	ws.OpenFolder(dir)

	assert.Equal(t, dir, ws.FolderPath())
	assert.ElementsMatch(t, []string{"a.txt", "b.txt", "sub"}, ws.Files())
}

func TestOpenFolderReplacesListingWholesale(t *testing.T) {
	first := t.TempDir()
	writeFile(t, filepath.Join(first, "one.txt"), "1")
	second := t.TempDir()
	writeFile(t, filepath.Join(second, "two.txt"), "2")

	ws := New()
	ws.OpenFolder(first)
	writeFile(t, filepath.Join(first, "late.txt"), "late")
	assert.Equal(t, []string{"one.txt"}, ws.Files(), "listing is a snapshot")

	ws.OpenFolder(second)
	assert.Equal(t, second, ws.FolderPath())
	assert.Equal(t, []string{"two.txt"}, ws.Files())
}

func TestOpenFolderReadFailureYieldsEmptyList(t *testing.T) {
	ws := New()
	missing := filepath.Join(t.TempDir(), "nope")
	ws.OpenFolder(missing)

	assert.Equal(t, missing, ws.FolderPath())
	assert.NotNil(t, ws.Files())
	assert.Empty(t, ws.Files())
}

func TestOpenFolderDropsNonUTF8Names(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("arbitrary byte file names need a Linux filesystem")
	}
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "ok.txt"), "ok")
	if err := os.WriteFile(filepath.Join(dir, "bad\xff.txt"), []byte("x"), 0644); err != nil {
		t.Skipf("filesystem rejected invalid name: %v", err)
	}

	ws := New()
	ws.OpenFolder(dir)
	assert.Equal(t, []string{"ok.txt"}, ws.Files())
}

func TestOpenFolderHideAndSort(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"zeta.go", "alpha.go", "notes.swp", ".git"} {
		writeFile(t, filepath.Join(dir, name), name)
	}

	ws := New(
		WithHidePatterns([]glob.Glob{glob.MustCompile("*.swp"), glob.MustCompile(".git")}),
		WithSortedListing(true),
	)
	ws.OpenFolder(dir)
	assert.Equal(t, []string{"alpha.go", "zeta.go"}, ws.Files())
}

func TestLoadFromFolder(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.txt"), "alpha contents")

	ws := New()
	assert.ErrorIs(t, ws.LoadFromFolder("a.txt"), errors.ErrNoActiveFolder)

	ws.OpenFolder(dir)
	require.NoError(t, ws.LoadFromFolder("a.txt"))
	assert.Equal(t, filepath.Join(dir, "a.txt"), ws.FilePath())
	assert.Equal(t, "alpha contents", ws.Text())
}

func TestStateReturnsCopy(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.txt"), "a")

	ws := New()
	ws.OpenFolder(dir)
	s := ws.State()
	s.FilesInFolder[0] = "mutated"
	assert.Equal(t, []string{"a.txt"}, ws.Files())
}

func TestBeforeWriteHook(t *testing.T) {
	var seen []string
	ws := New(WithBeforeWrite(func(path string) { seen = append(seen, path) }))
	ws.SetText("x")

	target := filepath.Join(t.TempDir(), "hook.txt")
	require.NoError(t, ws.SaveAs(target))
	require.NoError(t, ws.Save())
	assert.Equal(t, []string{target, target}, seen)
}

func TestLoadFromFolderMissingEntryKeepsKind(t *testing.T) {
	ws := New()
	ws.OpenFolder(t.TempDir())

	err := ws.LoadFromFolder("gone.txt")
	require.Error(t, err)
	assert.True(t, errors.IsFileNotFound(err))
	assert.Contains(t, err.Error(), "folder entry gone.txt")
}
