package tui

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// PickFile implements workspace.Picker with a path prompt.
func (m *Model) PickFile(done func(path string, ok bool)) {
	m.ask("Open file: ", m.startPath(false), done)
}

// PickFolder implements workspace.Picker
func (m *Model) PickFolder(done func(path string, ok bool)) {
	m.ask("Open folder: ", m.startPath(true), done)
}

// SaveFileAs implements workspace.Picker
func (m *Model) SaveFileAs(done func(path string, ok bool)) {
	start := m.startPath(true)
	if start != "" {
		start = filepath.Join(start, "untitled.txt")
	}
	m.ask("Save as: ", start, done)
}

func (m *Model) ask(label, initial string, done func(path string, ok bool)) {
	m.promptLabel = label
	m.pending = done
	m.prompt.Prompt = ""
	m.prompt.SetValue(initial)
	m.prompt.CursorEnd()
	m.prompt.Focus()
	m.editor.Blur()
}

// startPath suggests where a prompt begins: the open folder, or the active
// file (or its directory when dirOnly).
func (m *Model) startPath(dirOnly bool) string {
	if folder := m.ws.FolderPath(); folder != "" {
		return folder + string(filepath.Separator)
	}
	if file := m.ws.FilePath(); file != "" {
		if dirOnly {
			return filepath.Dir(file)
		}
		return file
	}
	return ""
}

func (m *Model) promptCmd() tea.Cmd {
	if m.pending == nil {
		return nil
	}
	return textinput.Blink
}

func (m *Model) handlePromptKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		return m, m.answer("", false)
	case key.Matches(msg, m.keys.Open):
		path := expandPath(strings.TrimSpace(m.prompt.Value()))
		return m, m.answer(path, path != "")
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

// answer closes the prompt and hands the result to the waiting action. The
// action may open another prompt, as saving an untitled buffer does.
func (m *Model) answer(path string, ok bool) tea.Cmd {
	done := m.pending
	m.pending = nil
	m.promptLabel = ""
	m.prompt.Blur()
	m.prompt.SetValue("")

	done(path, ok)

	if m.pending != nil {
		return textinput.Blink
	}
	if m.focus == editorPane {
		return m.editor.Focus()
	}
	return nil
}

func expandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}
