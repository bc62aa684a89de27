package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"flutteredit/internal/log"
	"flutteredit/internal/metrics"
	"flutteredit/internal/terminal"
	"flutteredit/internal/watch"
	"flutteredit/internal/workspace"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
)

// Deps are the collaborators the terminal front-end drives.
type Deps struct {
	Workspace *workspace.Workspace
	Metrics   *metrics.Reader
	Launcher  *terminal.Launcher
	Watcher   *watch.Watcher // optional
	Refresh   time.Duration
}

type pane int

const (
	editorPane pane = iota
	explorerPane
)

// readOnlyNotice explains why edits are refused. The textarea expands tabs and
// drops carriage returns, so edits would rewrite the rest of the file.
const readOnlyNotice = "Read-only in the terminal editor: the file has tabs or carriage returns"

type tickMsg time.Time

type changeMsg watch.Change

// Model is the bubbletea model of the editor. It doubles as the Picker and
// Notifier for the shared workspace actions.
type Model struct {
	ws       *workspace.Workspace
	actions  *workspace.Actions
	metrics  *metrics.Reader
	launcher *terminal.Launcher
	watcher  *watch.Watcher
	refresh  time.Duration

	editor textarea.Model
	// shownText is the workspace text last pushed into the editor.
	shownText string
	// readOnly is set when the editor cannot show shownText verbatim.
	readOnly bool

	prompt      textinput.Model
	promptLabel string
	pending     func(path string, ok bool)

	keys keyMap
	help help.Model

	focus  pane
	cursor int
	sizes  map[string]string
	listed string

	status    string
	statusErr bool

	width  int
	height int
}

// New builds the model and takes a first metrics sample.
func New(deps Deps) *Model {
	refresh := deps.Refresh
	if refresh <= 0 {
		refresh = time.Second
	}

	editor := textarea.New()
	editor.CharLimit = 0
	editor.MaxHeight = 0
	editor.ShowLineNumbers = true
	editor.Placeholder = "Open a file or start typing..."
	editor.Focus()

	prompt := textinput.New()
	prompt.CharLimit = 4096

	m := &Model{
		ws:       deps.Workspace,
		metrics:  deps.Metrics,
		launcher: deps.Launcher,
		watcher:  deps.Watcher,
		refresh:  refresh,
		editor:   editor,
		prompt:   prompt,
		keys:     defaultKeyMap(),
		help:     help.New(),
		sizes:    make(map[string]string),
		width:    100,
		height:   30,
	}
	m.actions = workspace.NewActions(m.ws, m, m)
	m.actions.OnChange(m.sync)

	m.metrics.Refresh()
	m.sync()
	m.layout()
	return m
}

// Run starts the program on the alternate screen and blocks until quit.
func Run(deps Deps) error {
	m := New(deps)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	if m.watcher != nil {
		if cerr := m.watcher.Close(); cerr != nil {
			log.LogWithError(cerr).Warn("closing watcher")
		}
	}
	return err
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.tick(), textarea.Blink, m.waitForChange())
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(m.refresh, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *Model) waitForChange() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	changes := m.watcher.Changes()
	return func() tea.Msg {
		change, ok := <-changes
		if !ok {
			return nil
		}
		return changeMsg(change)
	}
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		return m, nil
	case tickMsg:
		m.metrics.Refresh()
		return m, m.tick()
	case changeMsg:
		m.reportExternalChange(watch.Change(msg))
		return m, m.waitForChange()
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	var cmd tea.Cmd
	if m.pending != nil {
		m.prompt, cmd = m.prompt.Update(msg)
	} else {
		m.editor, cmd = m.editor.Update(msg)
	}
	return m, cmd
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.pending != nil {
		return m.handlePromptKeys(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.OpenFile):
		m.actions.OpenFile()
		return m, m.promptCmd()
	case key.Matches(msg, m.keys.Save):
		m.actions.SaveFile()
		return m, m.promptCmd()
	case key.Matches(msg, m.keys.OpenFolder):
		m.actions.OpenFolder()
		return m, m.promptCmd()
	case key.Matches(msg, m.keys.Terminal):
		m.launchTerminal()
		return m, nil
	case key.Matches(msg, m.keys.Focus):
		return m, m.toggleFocus()
	}

	if m.focus == explorerPane {
		m.handleExplorerKeys(msg)
		return m, nil
	}

	if m.readOnly {
		return m, m.updateReadOnly(msg)
	}

	before := m.editor.Value()
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	if text := m.editor.Value(); text != before {
		m.shownText = text
		m.ws.SetText(text)
	}
	return m, cmd
}

// updateReadOnly lets cursor movement through and refuses everything else.
func (m *Model) updateReadOnly(msg tea.KeyMsg) tea.Cmd {
	km := m.editor.KeyMap
	if !key.Matches(msg,
		km.CharacterForward, km.CharacterBackward,
		km.WordForward, km.WordBackward,
		km.LineNext, km.LinePrevious,
		km.LineStart, km.LineEnd,
		km.InputBegin, km.InputEnd,
	) {
		m.ShowStatus(readOnlyNotice)
		return nil
	}
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return cmd
}

func (m *Model) handleExplorerKeys(msg tea.KeyMsg) {
	files := m.ws.Files()
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(files)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Open):
		if m.cursor < len(files) {
			m.actions.OpenFileFromFolder(files[m.cursor])
		}
	}
}

func (m *Model) toggleFocus() tea.Cmd {
	if m.focus == editorPane {
		m.focus = explorerPane
		m.editor.Blur()
		return nil
	}
	m.focus = editorPane
	return m.editor.Focus()
}

func (m *Model) launchTerminal() {
	if err := m.launcher.Launch(); err != nil {
		m.ShowError("Could not open terminal", err)
		return
	}
	if m.launcher.State() == terminal.Started {
		m.ShowStatus("Terminal started: " + m.launcher.Command())
	}
}

func (m *Model) reportExternalChange(change watch.Change) {
	if change.Path != m.ws.FilePath() {
		return
	}
	if change.Removed {
		m.ShowStatus(fmt.Sprintf("%s was removed from disk", filepath.Base(change.Path)))
		return
	}
	m.ShowStatus(fmt.Sprintf("%s changed on disk", filepath.Base(change.Path)))
}

// sync brings the widgets in line with the workspace after an action.
func (m *Model) sync() {
	if text := m.ws.Text(); text != m.shownText {
		m.editor.SetValue(text)
		m.shownText = text
		m.readOnly = m.editor.Value() != text
		if m.readOnly {
			m.ShowStatus(readOnlyNotice)
		}
	}

	files := m.ws.Files()
	if m.cursor >= len(files) {
		m.cursor = max(len(files)-1, 0)
	}
	folder := m.ws.FolderPath()
	if folder != m.listed {
		m.listed = folder
		m.cursor = 0
	}
	m.sizes = entrySizes(folder, files)

	if m.watcher != nil {
		if err := m.watcher.Track(m.ws.FilePath()); err != nil {
			log.LogWithError(err).Warn("cannot watch active file")
		}
	}
}

// entrySizes stats each listed entry. Entries that vanished since the listing get no size.
func entrySizes(folder string, files []string) map[string]string {
	sizes := make(map[string]string, len(files))
	for _, name := range files {
		info, err := os.Stat(filepath.Join(folder, name))
		if err != nil {
			continue
		}
		if info.IsDir() {
			sizes[name] = "dir"
			continue
		}
		sizes[name] = humanize.Bytes(uint64(info.Size()))
	}
	return sizes
}

// ShowError implements workspace.Notifier
func (m *Model) ShowError(message string, err error) {
	log.LogError(err, message)
	m.status = fmt.Sprintf("%s: %v", message, err)
	m.statusErr = true
}

// ShowStatus implements workspace.Notifier
func (m *Model) ShowStatus(message string) {
	log.Debug(message)
	m.status = message
	m.statusErr = false
}

// Status returns the last notice shown in the status line.
func (m *Model) Status() string { return m.status }

func (m *Model) Cursor() int        { return m.cursor }
func (m *Model) Prompting() bool    { return m.pending != nil }
func (m *Model) ReadOnly() bool     { return m.readOnly }
func (m *Model) EditorText() string { return m.editor.Value() }
