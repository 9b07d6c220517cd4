package tui

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// markdownRenderer renders markdown for terminal views and recreates the renderer when wrap width changes.
type markdownRenderer struct {
	width    int
	renderer *glamour.TermRenderer
}

// render converts markdown input into ANSI-styled terminal text with the requested wrap width.
func (r *markdownRenderer) render(markdown string, width int) string {
	markdown = strings.TrimSpace(markdown)
	if markdown == "" {
		return ""
	}

	wrapWidth := width
	if wrapWidth < 24 {
		wrapWidth = 24
	}

	if r.renderer == nil || r.width != wrapWidth {
		renderer, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle("dark"),
			glamour.WithWordWrap(wrapWidth),
		)
		if err != nil {
			return markdown
		}
		r.renderer = renderer
		r.width = wrapWidth
	}

	rendered, err := r.renderer.Render(markdown)
	if err != nil {
		return markdown
	}
	return strings.TrimRight(rendered, "\n")
}

// helpMarkdown is the full key reference shown behind the ? overlay.
const helpMarkdown = `# kantui keys

## Navigation

| Key | Action |
|-----|--------|
| h / ← | previous column |
| l / → | next column |
| j / ↓ | next task |
| k / ↑ | previous task |
| gc | jump to column by number |
| gt | jump to task by label |

## Editing

| Key | Action |
|-----|--------|
| ac | add column |
| at | add task |
| rc | rename column |
| rt | rename task |
| dt | delete selected task |
| dc / dd | delete column (confirm) |

## Moving and boards

| Key | Action |
|-----|--------|
| ctrl+k | move task (then 0-9) |
| m | move task to column 1-9 |
| b | board selection |
| ctrl+s | save board |
| y | yank task title |
| ? | toggle this help |
| q | quit |
`
