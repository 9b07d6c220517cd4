package tui

import (
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/notemancy-pkm/kantui/internal/app"
)

// View handles view.
func (m Model) View() tea.View {
	if !m.ready {
		v := tea.NewView("loading...")
		v.AltScreen = true
		return v
	}

	accent := lipgloss.Color("62")
	muted := lipgloss.Color("241")
	dim := lipgloss.Color("239")

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252"))
	statusStyle := lipgloss.NewStyle().Foreground(dim)

	board := m.board
	header := titleStyle.Render("kantui") + "  " + board.Title
	header += statusStyle.Render("  [" + board.InputMode.String() + "]")
	if m.chord != "" {
		header += statusStyle.Render("  " + m.chord + "…")
	}
	if board.FilePath == "" {
		header += statusStyle.Render("  (in memory)")
	}

	body := m.renderColumns(accent, muted, dim)

	sections := []string{header, "", body}
	if strings.TrimSpace(m.status) != "" && m.status != "ready" {
		sections = append(sections, statusStyle.Render(m.status))
	}
	content := strings.Join(sections, "\n")

	helpBubble := m.help
	helpBubble.ShowAll = false
	helpBubble.SetWidth(max(0, m.width-2))
	helpLine := lipgloss.NewStyle().
		Foreground(muted).
		BorderTop(true).
		BorderForeground(dim).
		Padding(0, 1).
		Width(max(0, m.width)).
		Render(helpBubble.View(m.keys))

	if m.height > 0 {
		helpHeight := lipgloss.Height(helpLine)
		content = fitLines(content, max(0, m.height-helpHeight))
	}
	fullContent := content + "\n" + helpLine

	overlay := m.renderModeOverlay(accent, muted, m.width-8)
	if m.showHelp {
		overlay = m.renderHelpOverlay(accent, m.width-8)
	}
	if overlay != "" {
		overlayHeight := lipgloss.Height(fullContent)
		if m.height > 0 {
			overlayHeight = m.height
		}
		fullContent = overlayOnContent(fullContent, overlay, max(1, m.width), max(1, overlayHeight))
	}

	v := tea.NewView(fullContent)
	v.AltScreen = true
	return v
}

// renderColumns renders the board columns side by side.
func (m Model) renderColumns(accent, muted, dim color.Color) string {
	board := m.board
	if len(board.Columns) == 0 {
		return lipgloss.NewStyle().Foreground(muted).
			Render("No columns yet.\nPress ac to add a column, b to pick a board, q to quit.")
	}

	colWidth := m.columnWidthFor(m.width)
	colHeight := m.columnHeight()
	baseColStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(dim).
		Padding(1, 2).
		MarginRight(1).
		Width(colWidth)
	selColStyle := baseColStyle.BorderForeground(accent)
	colTitle := lipgloss.NewStyle().Bold(true).Foreground(accent)
	emptyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	selectedTaskStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	metaStyle := lipgloss.NewStyle().Foreground(muted)
	labelStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))

	columnViews := make([]string, 0, len(board.Columns))
	for colIdx, column := range board.Columns {
		counter := fmt.Sprintf("(%d)", len(column.Tasks))
		if column.Selected >= 0 {
			counter = fmt.Sprintf("(%d/%d)", column.Selected+1, len(column.Tasks))
		}
		headerLine := colTitle.Render(fmt.Sprintf("%s %s", column.Title, counter))

		taskLines := make([]string, 0, max(1, len(column.Tasks)*2))
		selectedLine := -1
		if len(column.Tasks) == 0 {
			taskLines = append(taskLines, emptyStyle.Render("(empty)"))
		} else {
			for taskIdx, task := range column.Tasks {
				selected := colIdx == board.ActiveColumn && taskIdx == column.Selected

				prefix := "   "
				if selected {
					prefix = "│  "
				}
				if board.InputMode == app.ModeJumpToTask {
					if label, ok := board.JumpLabelForTask(colIdx, taskIdx); ok {
						prefix = labelStyle.Render(string(label)) + "  "
					}
				}

				line := prefix + truncate(task.Title, max(1, colWidth-10))
				if task.Priority != nil {
					line += metaStyle.Render(fmt.Sprintf(" p%d", *task.Priority))
				}
				if selected {
					line = selectedTaskStyle.Render(line)
					selectedLine = len(taskLines)
				}
				taskLines = append(taskLines, line)
			}
		}

		innerHeight := max(1, colHeight-4)
		windowHeight := max(1, innerHeight-1)
		scrollTop := 0
		if colIdx == board.ActiveColumn && selectedLine >= 0 {
			if selectedLine >= windowHeight {
				scrollTop = selectedLine - windowHeight + 1
			}
		}
		maxScrollTop := max(0, len(taskLines)-windowHeight)
		scrollTop = clamp(scrollTop, 0, maxScrollTop)
		if len(taskLines) > windowHeight {
			taskLines = taskLines[scrollTop : scrollTop+windowHeight]
		}

		lines := append([]string{headerLine}, taskLines...)
		content := fitLines(strings.Join(lines, "\n"), innerHeight)
		if colIdx == board.ActiveColumn {
			columnViews = append(columnViews, selColStyle.Render(content))
		} else {
			columnViews = append(columnViews, baseColStyle.Render(content))
		}
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, columnViews...)
}

// renderModeOverlay renders the centered popup for the active input mode.
func (m Model) renderModeOverlay(accent, muted color.Color, maxWidth int) string {
	board := m.board

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Padding(0, 1)
	if maxWidth > 0 {
		boxStyle = boxStyle.Width(clamp(maxWidth, 28, 56))
	}
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(accent)
	hintStyle := lipgloss.NewStyle().Foreground(muted)

	switch board.InputMode {
	case app.ModeAddingColumn, app.ModeAddingTask, app.ModeRenamingColumn,
		app.ModeRenamingTask, app.ModeAddingBoard:
		titles := map[app.InputMode]string{
			app.ModeAddingColumn:   "New Column",
			app.ModeAddingTask:     "New Task",
			app.ModeRenamingColumn: "Rename Column",
			app.ModeRenamingTask:   "Rename Task",
			app.ModeAddingBoard:    "New Board",
		}
		lines := []string{
			titleStyle.Render(titles[board.InputMode]),
			"> " + board.InputText + "█",
			hintStyle.Render("enter confirm • esc cancel"),
		}
		return boxStyle.Render(strings.Join(lines, "\n"))

	case app.ModeBoardSelection:
		lines := []string{titleStyle.Render("Boards")}
		if len(board.AvailableBoards) == 0 {
			lines = append(lines, hintStyle.Render("(no boards found)"))
		}
		for idx, name := range board.AvailableBoards {
			prefix := "  "
			if idx == board.SelectedBoard {
				prefix = "│ "
			}
			lines = append(lines, prefix+truncate(name, 42))
		}
		lines = append(lines, hintStyle.Render("j/k choose • enter open • esc back • q quit"))
		return boxStyle.Render(strings.Join(lines, "\n"))

	case app.ModeConfirmDeleteColumn:
		name := ""
		if board.ActiveColumn < len(board.Columns) {
			name = board.Columns[board.ActiveColumn].Title
		}
		lines := []string{
			titleStyle.Render("Delete Column"),
			fmt.Sprintf("Delete %q and all of its tasks?", truncate(name, 32)),
			hintStyle.Render("y delete • n/esc cancel"),
		}
		return boxStyle.Render(strings.Join(lines, "\n"))

	case app.ModeColumnSelection, app.ModeMove, app.ModeJumpToColumn:
		title := map[app.InputMode]string{
			app.ModeColumnSelection: "Move Task To",
			app.ModeMove:            "Move Task",
			app.ModeJumpToColumn:    "Jump To Column",
		}[board.InputMode]
		lines := []string{titleStyle.Render(title)}
		for idx, column := range board.Columns {
			if idx > 8 {
				break
			}
			marker := "  "
			if idx == board.ActiveColumn {
				marker = "│ "
			}
			lines = append(lines, fmt.Sprintf("%s%d. %s", marker, idx+1, truncate(column.Title, 32)))
		}
		lines = append(lines, hintStyle.Render("press a number • esc cancel"))
		return boxStyle.Render(strings.Join(lines, "\n"))

	default:
		return ""
	}
}

// renderHelpOverlay renders the full key reference through glamour.
func (m Model) renderHelpOverlay(accent color.Color, maxWidth int) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Padding(0, 1)
	width := clamp(maxWidth, 40, 72)
	if maxWidth > 0 {
		boxStyle = boxStyle.Width(width)
	}
	renderer := m.markdown
	return boxStyle.Render(renderer.render(helpMarkdown, width-4))
}

// columnWidthFor returns column width.
func (m Model) columnWidthFor(boardWidth int) int {
	if len(m.board.Columns) == 0 {
		return 24
	}
	w := 28
	if boardWidth > 0 {
		// Per-column overhead: left/right border (2), horizontal padding (4), margin-right (1)
		const colOverhead = 7
		usable := boardWidth - len(m.board.Columns)*colOverhead
		candidate := usable / len(m.board.Columns)
		if candidate > 0 {
			w = candidate
		}
	}
	if w < 24 {
		return 24
	}
	if w > 42 {
		return 42
	}
	return w
}

// columnHeight returns column height.
func (m Model) columnHeight() int {
	headerLines := 3
	footerLines := 3
	h := m.height - headerLines - footerLines
	if h < 12 {
		return 12
	}
	return h
}

// clamp clamps the requested operation.
func clamp(v, minV, maxV int) int {
	if maxV < minV {
		return minV
	}
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}

// max returns max.
func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// fitLines fits lines.
func fitLines(content string, maxLines int) string {
	if maxLines <= 0 {
		return ""
	}
	lines := strings.Split(content, "\n")
	switch {
	case len(lines) > maxLines:
		if maxLines == 1 {
			lines = []string{"…"}
		} else {
			lines = append(lines[:maxLines-1], "…")
		}
	case len(lines) < maxLines:
		padding := make([]string, maxLines-len(lines))
		lines = append(lines, padding...)
	}
	return strings.Join(lines, "\n")
}

// overlayOnContent overlays on content.
func overlayOnContent(base, overlay string, width, height int) string {
	if width <= 0 || height <= 0 {
		if strings.TrimSpace(overlay) == "" {
			return base
		}
		return overlay + "\n\n" + base
	}

	base = fitLines(base, height)
	canvas := lipgloss.NewCanvas(width, height)
	baseLayer := lipgloss.NewLayer(base).X(0).Y(0).Z(0)
	centeredOverlay := lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		overlay,
	)
	overlayLayer := lipgloss.NewLayer(centeredOverlay).X(0).Y(0).Z(10)

	canvas.Compose(baseLayer)
	canvas.Compose(overlayLayer)
	return canvas.Render()
}

// truncate truncates the requested operation.
func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	rs := []rune(s)
	if len(rs) <= max {
		return s
	}
	if max <= 1 {
		return string(rs[:max])
	}
	return string(rs[:max-1]) + "…"
}
