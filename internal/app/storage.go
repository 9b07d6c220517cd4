package app

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/notemancy-pkm/kantui/internal/adapters/storage/boardfile"
	"github.com/notemancy-pkm/kantui/internal/domain"
)

const dateLayout = "2006-01-02"

// Bridging defaults applied when writing the minimal in-memory task shape
// into the full on-disk record.
const (
	defaultImpact  = 5
	defaultUrgency = 5
	defaultEffort  = 3
)

// persist saves the board and swallows the failure. Structural operations
// call this after every mutation; a broken or disabled store must never
// stop the session.
func (b *Board) persist() {
	if err := b.Save(); err != nil {
		if b.FilePath == "" {
			log.Debug("board not persisted", "reason", "no file path")
			return
		}
		log.Error("board not persisted", "path", b.FilePath, "err", err)
	}
}

// Save writes the board to its backing file.
func (b *Board) Save() error {
	if b.FilePath == "" {
		return ErrNoFilePath
	}
	return boardfile.Save(b.FilePath, b.record())
}

// Load replaces the in-memory state with the contents of the backing file.
func (b *Board) Load() error {
	if b.FilePath == "" {
		return ErrNoFilePath
	}
	record, err := boardfile.Load(b.FilePath)
	if err != nil {
		return err
	}
	b.applyRecord(record)
	return nil
}

// InitializeStorage derives the backing file path from the board title,
// then loads the file when it exists or saves the current state when it
// does not.
func (b *Board) InitializeStorage() error {
	if !b.store.Configured() {
		return boardfile.ErrNotConfigured
	}
	b.FilePath = b.store.PathFor(b.Title)
	if _, err := os.Stat(b.FilePath); err == nil {
		return b.Load()
	}
	return b.Save()
}

// record bridges the in-memory board into the on-disk schema. The task
// priority becomes the impact score with fixed default urgency and effort;
// dates are stamped with the current day.
func (b *Board) record() domain.Board {
	today := b.now().Format(dateLayout)
	board := domain.NewBoard(b.Title, today, "TUI Kanban Board")
	for _, column := range b.Columns {
		board.AddColumn(column.Title)
		for _, task := range column.Tasks {
			impact := defaultImpact
			if task.Priority != nil {
				impact = *task.Priority
			}
			record := domain.Task{
				ID:    task.ID,
				Title: task.Title,
				Priority: &domain.Priority{
					Impact:  impact,
					Urgency: defaultUrgency,
					Effort:  defaultEffort,
				},
				Created: today,
			}
			if err := board.AddTask(column.Title, record); err != nil {
				log.Warn("task dropped from record", "column", column.Title, "err", err)
			}
		}
	}
	return board
}

// applyRecord bridges an on-disk record back into the in-memory board.
// Task ids are reassigned from the board counter, the active column is
// restored by title when it survives, and the selection lands on the
// active column's first task.
func (b *Board) applyRecord(record domain.Board) {
	activeTitle := ""
	if column := b.activeColumn(); column != nil {
		activeTitle = column.Title
	}

	b.nextID = 1
	b.Columns = b.Columns[:0]
	for _, recordColumn := range record.Columns {
		column := Column{Title: recordColumn.Name, Selected: -1}
		for _, recordTask := range recordColumn.Tasks {
			task := Task{ID: b.takeID(), Title: recordTask.Title}
			if recordTask.Priority != nil {
				impact := recordTask.Priority.Impact
				task.Priority = &impact
			}
			column.Tasks = append(column.Tasks, task)
		}
		b.Columns = append(b.Columns, column)
	}

	if activeTitle != "" {
		for i, column := range b.Columns {
			if column.Title == activeTitle {
				b.ActiveColumn = i
				break
			}
		}
	}
	if len(b.Columns) == 0 {
		b.ActiveColumn = 0
	} else if b.ActiveColumn >= len(b.Columns) {
		b.ActiveColumn = len(b.Columns) - 1
	}

	for i := range b.Columns {
		if i == b.ActiveColumn && len(b.Columns[i].Tasks) > 0 {
			b.Columns[i].Selected = 0
		} else {
			b.Columns[i].Selected = -1
		}
	}
}

// ScanAvailableBoards refreshes the board-selection list from the store.
// When the store is unconfigured the list degrades to the create-new
// sentinel alone and the session stays in-memory only.
func (b *Board) ScanAvailableBoards() error {
	names, err := b.store.Scan()
	if err != nil {
		b.AvailableBoards = []string{boardfile.CreateNewBoardEntry}
		b.SelectedBoard = 0
		return fmt.Errorf("scan boards: %w", err)
	}
	b.AvailableBoards = names
	b.SelectedBoard = 0
	return nil
}

// SelectPrevBoard moves the board-selection cursor up.
func (b *Board) SelectPrevBoard() {
	if b.SelectedBoard > 0 {
		b.SelectedBoard--
	}
}

// SelectNextBoard moves the board-selection cursor down.
func (b *Board) SelectNextBoard() {
	if b.SelectedBoard < len(b.AvailableBoards)-1 {
		b.SelectedBoard++
	}
}

// LoadSelectedBoard resolves the highlighted board-list entry. The
// create-new sentinel switches to board-creation mode; a board name loads
// that board and enters normal mode.
func (b *Board) LoadSelectedBoard() error {
	if b.SelectedBoard < 0 || b.SelectedBoard >= len(b.AvailableBoards) {
		return nil
	}
	name := b.AvailableBoards[b.SelectedBoard]
	if boardfile.IsCreateNew(name) {
		b.InputMode = ModeAddingBoard
		b.InputText = ""
		return nil
	}

	b.Title = name
	if b.store.Configured() {
		b.FilePath = b.store.PathFor(name)
		if err := b.Load(); err != nil {
			return fmt.Errorf("load board %q: %w", name, err)
		}
	}
	b.InputMode = ModeNormal
	return nil
}

// CreateNewBoard resets to a fresh single-column board under the given
// title and saves it when persistence is available.
func (b *Board) CreateNewBoard(title string) error {
	b.Title = title
	b.Columns = []Column{{Title: "To Do", Selected: -1}}
	b.ActiveColumn = 0
	b.nextID = 1

	if !b.store.Configured() {
		return boardfile.ErrNotConfigured
	}
	b.FilePath = b.store.PathFor(title)
	if err := b.Save(); err != nil {
		return fmt.Errorf("create board %q: %w", title, err)
	}
	return nil
}
