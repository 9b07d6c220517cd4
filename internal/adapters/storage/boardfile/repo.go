// Package boardfile persists board records as line-oriented text files.
// The format is deliberately plain so board files stay readable and
// hand-editable; it has no escaping, so titles and column names must not
// contain "|", "==", or newlines.
package boardfile

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/notemancy-pkm/kantui/internal/domain"
)

const header = "# TUI Kanban Board:"

// Encode renders the board record in the board file format.
func Encode(b domain.Board) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s\n", header, b.Name)
	fmt.Fprintf(&sb, "Date: %s\n", b.Date)
	fmt.Fprintf(&sb, "Description: %s\n", b.Description)
	sb.WriteString("\n")
	for _, column := range b.Columns {
		fmt.Fprintf(&sb, "== %s ==\n", column.Name)
		for _, task := range column.Tasks {
			sb.WriteString(encodeTask(task))
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func encodeTask(task domain.Task) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "* [ID:%d] %s", task.ID, task.Title)
	if task.Priority != nil {
		fmt.Fprintf(&sb, " | Impact: %d", task.Priority.Impact)
		fmt.Fprintf(&sb, " | Urgency: %d", task.Priority.Urgency)
		fmt.Fprintf(&sb, " | Effort: %d", task.Priority.Effort)
		if computed, ok := task.Priority.Computed(); ok {
			fmt.Fprintf(&sb, " | Computed: %.2f", computed)
		}
	}
	if len(task.Tags) > 0 {
		fmt.Fprintf(&sb, " | Tags: %s", strings.Join(task.Tags, ","))
	}
	if task.Created != "" {
		fmt.Fprintf(&sb, " | Created: %s", task.Created)
	}
	return sb.String()
}

// Parse reads a board record from the board file format. Parsing is
// tolerant: blank lines and lines outside the known prefixes are skipped,
// a malformed or missing [ID:...] segment falls back to id 0 while keeping
// the surrounding text as the title, and a "Computed:" field
// is ignored because it is derived data, recomputed on the next encode.
func Parse(input string) domain.Board {
	var board domain.Board
	var current *domain.Column

	for _, raw := range strings.Split(input, "\n") {
		line := strings.TrimSpace(raw)
		switch {
		case line == "":
			continue
		case strings.HasPrefix(line, "#"):
			if idx := strings.Index(line, "TUI Kanban Board:"); idx >= 0 {
				board.Name = strings.TrimSpace(line[idx+len("TUI Kanban Board:"):])
			}
		case strings.HasPrefix(line, "Date:"):
			board.Date = strings.TrimSpace(line[len("Date:"):])
		case strings.HasPrefix(line, "Description:"):
			board.Description = strings.TrimSpace(line[len("Description:"):])
		case strings.HasPrefix(line, "==") && strings.HasSuffix(line, "=="):
			if current != nil {
				board.Columns = append(board.Columns, *current)
			}
			name := strings.TrimSpace(strings.Trim(line, "="))
			current = &domain.Column{Name: name}
		case strings.HasPrefix(line, "*"):
			if current != nil {
				current.Tasks = append(current.Tasks, parseTask(line))
			}
		}
	}
	if current != nil {
		board.Columns = append(board.Columns, *current)
	}
	return board
}

func parseTask(line string) domain.Task {
	parts := strings.Split(line, "|")
	first := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(parts[0]), "*"))

	var task domain.Task
	if idx := strings.Index(first, "[ID:"); idx >= 0 {
		idStart := idx + len("[ID:")
		idEnd := strings.Index(first, "]")
		if idEnd < 0 {
			idEnd = len(first)
		}
		if idStart <= idEnd {
			task.ID, _ = strconv.Atoi(first[idStart:idEnd])
		}
		if idEnd+1 < len(first) {
			task.Title = strings.TrimSpace(first[idEnd+1:])
		}
	} else {
		// No id marker: the whole remainder is the title, id stays 0.
		task.Title = strings.TrimSpace(first)
	}

	var impact, urgency, effort *int
	for _, part := range parts[1:] {
		field := strings.TrimSpace(part)
		switch {
		case strings.HasPrefix(field, "Impact:"):
			impact = parseScore(field[len("Impact:"):])
		case strings.HasPrefix(field, "Urgency:"):
			urgency = parseScore(field[len("Urgency:"):])
		case strings.HasPrefix(field, "Effort:"):
			effort = parseScore(field[len("Effort:"):])
		case strings.HasPrefix(field, "Tags:"):
			for _, tag := range strings.Split(strings.TrimSpace(field[len("Tags:"):]), ",") {
				task.Tags = append(task.Tags, strings.TrimSpace(tag))
			}
		case strings.HasPrefix(field, "Created:"):
			task.Created = strings.TrimSpace(field[len("Created:"):])
		}
	}
	if impact != nil && urgency != nil && effort != nil {
		task.Priority = &domain.Priority{Impact: *impact, Urgency: *urgency, Effort: *effort}
	}
	return task
}

func parseScore(s string) *int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return nil
	}
	return &n
}

// Save writes the encoded board to path, replacing any existing file.
func Save(path string, b domain.Board) error {
	if err := os.WriteFile(path, []byte(Encode(b)), 0o644); err != nil {
		return fmt.Errorf("write board file: %w", err)
	}
	return nil
}

// Load reads and parses the board file at path.
func Load(path string) (domain.Board, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Board{}, fmt.Errorf("read board file: %w", err)
	}
	return Parse(string(data)), nil
}

// Delete removes the board file at path.
func Delete(path string) error {
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("delete board file: %w", err)
	}
	return nil
}
