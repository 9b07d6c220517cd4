// Package app owns the in-memory board and every structural operation on
// it. The presentation layer reads this state and routes key events into
// the operations; persistence runs synchronously inside each mutating
// operation and failures never unwind the caller.
package app

import (
	"time"

	"github.com/notemancy-pkm/kantui/internal/adapters/storage/boardfile"
)

// InputMode represents a selectable input mode.
type InputMode int

// ModeNormal and related constants define the input modes.
const (
	ModeNormal InputMode = iota
	ModeAddingColumn
	ModeAddingTask
	ModeRenamingColumn
	ModeRenamingTask
	ModeMove
	ModeConfirmDeleteColumn
	ModeColumnSelection
	ModeJumpToColumn
	ModeJumpToTask
	ModeBoardSelection
	ModeAddingBoard
)

// String returns a short label for the mode, used in the header line.
func (m InputMode) String() string {
	switch m {
	case ModeNormal:
		return "NORMAL"
	case ModeAddingColumn:
		return "ADD COLUMN"
	case ModeAddingTask:
		return "ADD TASK"
	case ModeRenamingColumn:
		return "RENAME COLUMN"
	case ModeRenamingTask:
		return "RENAME TASK"
	case ModeMove:
		return "MOVE"
	case ModeConfirmDeleteColumn:
		return "CONFIRM DELETE"
	case ModeColumnSelection:
		return "SELECT COLUMN"
	case ModeJumpToColumn:
		return "JUMP TO COLUMN"
	case ModeJumpToTask:
		return "JUMP TO TASK"
	case ModeBoardSelection:
		return "SELECT BOARD"
	case ModeAddingBoard:
		return "NEW BOARD"
	default:
		return "UNKNOWN"
	}
}

// Task represents one task on the board. Priority is the impact score
// (0-10); nil means unscored. ID comes from the board's monotonic counter
// and is stable for the lifetime of the loaded board.
type Task struct {
	ID          int
	Title       string
	Description string
	Priority    *int
}

// Column represents one column and its tasks. Selected is the index of the
// selected task, -1 when none; only the active column holds a selection.
type Column struct {
	Title    string
	Tasks    []Task
	Selected int
}

// Board is the interactive model: the live columns plus the modal input
// state and the board-selection list the presentation reads.
type Board struct {
	Title        string
	Columns      []Column
	ActiveColumn int
	InputMode    InputMode
	InputText    string
	FilePath     string

	AvailableBoards []string
	SelectedBoard   int

	store      *boardfile.Store
	nextID     int
	now        func() time.Time
	seedTitles []string
}

// Option configures a Board.
type Option func(*Board)

// WithSeedTasks overrides the titles seeded into a fresh board's first
// column.
func WithSeedTasks(titles []string) Option {
	return func(b *Board) {
		if len(titles) > 0 {
			b.seedTitles = titles
		}
	}
}

// WithClock overrides the time source used for dates written to disk.
func WithClock(now func() time.Time) Option {
	return func(b *Board) {
		if now != nil {
			b.now = now
		}
	}
}

// New constructs a board with the default "To Do" column and seed tasks,
// starting in board-selection mode. The store decides whether persistence
// is available; an unconfigured store leaves the session in-memory only.
func New(title string, store *boardfile.Store, opts ...Option) *Board {
	b := &Board{
		Title:         title,
		InputMode:     ModeBoardSelection,
		SelectedBoard: 0,
		store:         store,
		nextID:        1,
		now:           time.Now,
		seedTitles:    []string{"Implement UI", "Add task functionality"},
	}
	for _, opt := range opts {
		opt(b)
	}

	column := Column{Title: "To Do", Selected: -1}
	for _, seed := range b.seedTitles {
		priority := 5
		column.Tasks = append(column.Tasks, Task{
			ID:       b.takeID(),
			Title:    seed,
			Priority: &priority,
		})
	}
	if len(column.Tasks) > 0 {
		column.Selected = 0
	}
	b.Columns = []Column{column}

	b.ScanAvailableBoards()
	return b
}

func (b *Board) takeID() int {
	id := b.nextID
	b.nextID++
	return id
}

// activeColumn returns the active column, or nil when the board has no
// columns.
func (b *Board) activeColumn() *Column {
	if b.ActiveColumn < 0 || b.ActiveColumn >= len(b.Columns) {
		return nil
	}
	return &b.Columns[b.ActiveColumn]
}

// SelectedTask returns the selected task of the active column.
func (b *Board) SelectedTask() (Task, bool) {
	column := b.activeColumn()
	if column == nil || column.Selected < 0 || column.Selected >= len(column.Tasks) {
		return Task{}, false
	}
	return column.Tasks[column.Selected], true
}

// TotalTaskCount returns the number of tasks across all columns.
func (b *Board) TotalTaskCount() int {
	total := 0
	for _, column := range b.Columns {
		total += len(column.Tasks)
	}
	return total
}
