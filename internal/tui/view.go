package tui

import (
	"strings"

	"flutteredit/internal/terminal"

	"github.com/charmbracelet/lipgloss"
)

const (
	explorerWidth = 28
	infoWidth     = 44
	// top bar, status line and help line
	chromeHeight = 3
)

// layout sizes the editor to whatever the side panes leave over.
func (m *Model) layout() {
	frameW, frameH := PaneStyle.GetFrameSize()
	w := m.width - explorerWidth - infoWidth - 3*frameW
	h := m.height - chromeHeight - frameH - 1
	m.editor.SetWidth(max(w, 10))
	m.editor.SetHeight(max(h, 3))
	m.help.Width = m.width
	m.prompt.Width = max(m.width-20, 10)
}

// View implements tea.Model
func (m *Model) View() string {
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		m.explorerView(),
		m.editorView(),
		m.infoView(),
	)
	return lipgloss.JoinVertical(lipgloss.Left,
		m.topBarView(),
		body,
		m.statusView(),
		m.help.View(m.keys),
	)
}

func (m *Model) topBarView() string {
	menus := make([]string, 0, 5)
	for _, name := range []string{"File", "Edit", "View", "Help"} {
		menus = append(menus, MenuStyle.Render(name))
	}
	menus = append(menus, m.terminalButtonView())
	return lipgloss.JoinHorizontal(lipgloss.Top, menus...)
}

func (m *Model) terminalButtonView() string {
	switch m.launcher.State() {
	case terminal.Started:
		return TerminalRunningStyle.Render("Terminal Running")
	case terminal.Failed:
		return TerminalButtonStyle.Render("Retry Terminal (ctrl+t)")
	default:
		return TerminalButtonStyle.Render("Open Terminal (ctrl+t)")
	}
}

func (m *Model) explorerView() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("File Explorer"))
	b.WriteString("\n")

	if folder := m.ws.FolderPath(); folder != "" {
		b.WriteString(StatusStyle.Render("Files in: " + folder))
		b.WriteString("\n")
	}
	for i, name := range m.ws.Files() {
		entry := EntryStyle.Render(name)
		if i == m.cursor && m.focus == explorerPane {
			entry = SelectedStyle.Render(name)
		}
		b.WriteString(entry)
		if size, ok := m.sizes[name]; ok {
			b.WriteString(" " + SizeStyle.Render(size))
		}
		b.WriteString("\n")
	}

	style := PaneStyle
	if m.focus == explorerPane {
		style = FocusedPaneStyle
	}
	return style.Width(explorerWidth).Render(strings.TrimRight(b.String(), "\n"))
}

func (m *Model) editorView() string {
	title := "Text Editor"
	if path := m.ws.FilePath(); path != "" {
		title += " - " + path
	}
	if m.readOnly {
		title += " [read-only]"
	}

	content := m.editor.View()
	if m.pending != nil {
		content = PromptStyle.Render(m.promptLabel) + m.prompt.View() + "\n" + content
	}

	style := PaneStyle
	if m.focus == editorPane {
		style = FocusedPaneStyle
	}
	return style.Render(TitleStyle.Render(title) + "\n" + content)
}

func (m *Model) infoView() string {
	lines := []string{
		TitleStyle.Render("Terminal"),
		m.metrics.ProcessMemorySummary(),
		StatusStyle.Render("The terminal runs in a separate window."),
		"",
		TitleStyle.Render("System"),
		"Memory: " + m.metrics.MemorySummary(),
		"Disk: " + m.metrics.DiskSummary(),
	}
	return PaneStyle.Width(infoWidth).Render(strings.Join(lines, "\n"))
}

func (m *Model) statusView() string {
	if m.status == "" {
		return StatusStyle.Render("Ready")
	}
	if m.statusErr {
		return ErrorStyle.Render(m.status)
	}
	return StatusStyle.Render(m.status)
}
