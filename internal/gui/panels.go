//go:build !nogui

package gui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

const (
	leftPanelMinWidth  = 200
	rightPanelMinWidth = 300
	topBarMinHeight    = 30
)

// setupMainWindow lays out the four fixed panels around the editor.
func (a *App) setupMainWindow() {
	top := a.createTopBar()
	left := a.createExplorerPanel()
	right := a.createInfoPanel()
	center := a.createEditorPanel()

	a.statusLabel = widget.NewLabel("Ready")
	a.statusLabel.Truncation = fyne.TextTruncateEllipsis

	content := container.NewBorder(
		top,
		container.NewVBox(widget.NewSeparator(), a.statusLabel),
		left,
		right,
		center,
	)
	a.mainWindow.SetContent(content)

	saveShortcut := &desktop.CustomShortcut{KeyName: fyne.KeyS, Modifier: fyne.KeyModifierShortcutDefault}
	a.mainWindow.Canvas().AddShortcut(saveShortcut, func(fyne.Shortcut) {
		a.actions.SaveFile()
	})
}

func (a *App) createTopBar() fyne.CanvasObject {
	// Menu entries are placeholders
	objects := []fyne.CanvasObject{}
	for _, label := range []string{"File", "Edit", "View", "Help"} {
		btn := widget.NewButton(label, func() {})
		btn.Importance = widget.LowImportance
		a.menuButtons = append(a.menuButtons, btn)
		objects = append(objects, btn)
	}

	a.terminalButton = widget.NewButton("Open Terminal", a.launchTerminal)
	a.terminalButton.Importance = widget.HighImportance
	objects = append(objects, widget.NewSeparator(), a.terminalButton)

	bar := container.NewHBox(objects...)
	return container.NewVBox(withMinSize(bar, fyne.NewSize(0, topBarMinHeight)), widget.NewSeparator())
}

func (a *App) createExplorerPanel() fyne.CanvasObject {
	heading := widget.NewLabelWithStyle("File Explorer", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})

	a.openFileButton = widget.NewButton("Open File", a.actions.OpenFile)
	a.saveFileButton = widget.NewButton("Save File", a.actions.SaveFile)
	a.openFolderButton = widget.NewButton("Open Folder", a.actions.OpenFolder)

	a.folderLabel = widget.NewLabel("")
	a.folderLabel.Wrapping = fyne.TextWrapBreak
	a.folderLabel.Hide()

	a.entryBox = container.NewVBox()

	header := container.NewVBox(
		heading,
		a.openFileButton,
		a.saveFileButton,
		a.openFolderButton,
		a.folderLabel,
	)
	panel := container.NewBorder(header, nil, nil, nil, container.NewVScroll(a.entryBox))
	return container.NewHBox(withMinSize(panel, fyne.NewSize(leftPanelMinWidth, 0)), widget.NewSeparator())
}

func (a *App) createInfoPanel() fyne.CanvasObject {
	heading := widget.NewLabelWithStyle("Terminal", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})

	a.processLabel = widget.NewLabel("")
	a.memoryLabel = widget.NewLabel("")
	a.diskLabel = widget.NewLabel("")
	note := widget.NewLabel("The terminal runs in a separate window.")
	note.Wrapping = fyne.TextWrapWord

	panel := container.NewVBox(
		heading,
		a.processLabel,
		note,
		widget.NewSeparator(),
		widget.NewLabelWithStyle("System", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		a.memoryLabel,
		a.diskLabel,
	)
	return container.NewHBox(widget.NewSeparator(), withMinSize(panel, fyne.NewSize(rightPanelMinWidth, 0)))
}

func (a *App) createEditorPanel() fyne.CanvasObject {
	heading := widget.NewLabelWithStyle("Text Editor", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})

	a.editor = widget.NewMultiLineEntry()
	a.editor.Wrapping = fyne.TextWrapOff
	a.editor.OnChanged = a.ws.SetText

	return container.NewBorder(heading, nil, nil, nil, a.editor)
}

// withMinSize pads obj so the layout never shrinks it below size.
func withMinSize(obj fyne.CanvasObject, size fyne.Size) fyne.CanvasObject {
	spacer := canvas.NewRectangle(color.Transparent)
	spacer.SetMinSize(size)
	return container.NewStack(spacer, obj)
}
