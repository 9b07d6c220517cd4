package tui

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"github.com/atotto/clipboard"

	"github.com/notemancy-pkm/kantui/internal/app"
)

// chordTable holds the two-character normal-mode commands. A first
// character that starts an entry is buffered; the next key either
// completes a command or resets the buffer.
var chordTable = map[string]bool{
	"ac": true, "at": true,
	"rc": true, "rt": true,
	"dt": true, "dc": true, "dd": true,
	"gc": true, "gt": true,
}

// chordStarter reports whether text opens a pending chord.
func chordStarter(text string) bool {
	for chord := range chordTable {
		if strings.HasPrefix(chord, text) && text != "" {
			return true
		}
	}
	return false
}

// Model represents model data used by this package.
type Model struct {
	board *app.Board

	ready  bool
	width  int
	height int

	status string
	chord  string

	// hasBoard flips once a board has been loaded or created; it decides
	// whether esc in board selection quits or returns to the board.
	hasBoard bool
	showHelp bool

	defaultBoardTitle string

	help     help.Model
	keys     keyMap
	markdown markdownRenderer
}

// Option defines a functional option for model configuration.
type Option func(*Model)

// WithDefaultBoardTitle overrides the title used when a new board is
// created with an empty name.
func WithDefaultBoardTitle(title string) Option {
	return func(m *Model) {
		if strings.TrimSpace(title) != "" {
			m.defaultBoardTitle = title
		}
	}
}

// NewModel constructs a new value for this package.
func NewModel(board *app.Board, opts ...Option) Model {
	h := help.New()
	h.ShowAll = false
	m := Model{
		board:             board,
		status:            "select a board",
		defaultBoardTitle: "My Kanban Board",
		help:              h,
		keys:              newKeyMap(),
	}
	if board != nil && board.InputMode == app.ModeNormal {
		// A board handed over already open skips board selection.
		m.hasBoard = true
		m.status = "ready"
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&m)
		}
	}
	return m
}

// Init handles init.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update updates state for the requested operation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		switch m.board.InputMode {
		case app.ModeNormal:
			return m.handleNormalModeKey(msg)
		case app.ModeAddingColumn, app.ModeAddingTask, app.ModeRenamingColumn,
			app.ModeRenamingTask, app.ModeAddingBoard:
			return m.handleTextEntryKey(msg)
		case app.ModeMove:
			return m.handleMoveModeKey(msg)
		case app.ModeConfirmDeleteColumn:
			return m.handleConfirmDeleteKey(msg)
		case app.ModeColumnSelection:
			return m.handleColumnSelectionKey(msg)
		case app.ModeJumpToColumn:
			return m.handleJumpToColumnKey(msg)
		case app.ModeJumpToTask:
			return m.handleJumpToTaskKey(msg)
		case app.ModeBoardSelection:
			return m.handleBoardSelectionKey(msg)
		default:
			return m, nil
		}

	default:
		return m, nil
	}
}

func (m Model) handleNormalModeKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	board := m.board

	if m.chord != "" {
		candidate := m.chord + msg.Text
		m.chord = ""
		if chordTable[candidate] {
			return m.runChord(candidate)
		}
		// Unmatched chord: the buffer resets and the key is handled alone.
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.toggleHelp):
		m.showHelp = !m.showHelp
		if m.showHelp {
			m.status = "help"
		} else {
			m.status = "ready"
		}
		return m, nil

	case msg.String() == "esc":
		m.chord = ""
		if m.showHelp {
			m.showHelp = false
			m.status = "ready"
		}
		return m, nil

	case key.Matches(msg, m.keys.moveLeft):
		board.SelectPrevColumn()
		return m, nil

	case key.Matches(msg, m.keys.moveRight):
		board.SelectNextColumn()
		return m, nil

	case key.Matches(msg, m.keys.moveDown):
		board.SelectNextTask()
		return m, nil

	case key.Matches(msg, m.keys.moveUp):
		board.SelectPrevTask()
		return m, nil

	case key.Matches(msg, m.keys.moveTask):
		board.InputMode = app.ModeMove
		m.status = "move: press 0-9 for the target column"
		return m, nil

	case key.Matches(msg, m.keys.selectCol):
		if _, ok := board.SelectedTask(); !ok {
			m.status = "no task selected"
			return m, nil
		}
		board.InputMode = app.ModeColumnSelection
		m.status = "move to column: press 1-9"
		return m, nil

	case key.Matches(msg, m.keys.boards):
		if err := board.ScanAvailableBoards(); err != nil {
			m.status = "persistence disabled: " + err.Error()
		} else {
			m.status = "select a board"
		}
		board.InputMode = app.ModeBoardSelection
		return m, nil

	case key.Matches(msg, m.keys.save):
		if err := board.Save(); err != nil {
			m.status = "save failed: " + err.Error()
		} else {
			m.status = "saved"
		}
		return m, nil

	case key.Matches(msg, m.keys.yank):
		task, ok := board.SelectedTask()
		if !ok {
			m.status = "no task selected"
			return m, nil
		}
		if err := clipboard.WriteAll(task.Title); err != nil {
			m.status = "yank failed: " + err.Error()
		} else {
			m.status = fmt.Sprintf("yanked %q", truncate(task.Title, 28))
		}
		return m, nil

	default:
		if chordStarter(msg.Text) {
			m.chord = msg.Text
		}
		return m, nil
	}
}

func (m Model) runChord(chord string) (tea.Model, tea.Cmd) {
	board := m.board
	switch chord {
	case "ac":
		board.InputMode = app.ModeAddingColumn
		board.InputText = ""
		m.status = "new column name"

	case "at":
		if len(board.Columns) == 0 {
			m.status = "add a column first"
			return m, nil
		}
		board.InputMode = app.ModeAddingTask
		board.InputText = ""
		m.status = "new task title"

	case "rc":
		if len(board.Columns) == 0 {
			m.status = "no column to rename"
			return m, nil
		}
		board.InputMode = app.ModeRenamingColumn
		board.InputText = board.Columns[board.ActiveColumn].Title
		m.status = "edit column name"

	case "rt":
		task, ok := board.SelectedTask()
		if !ok {
			m.status = "no task selected"
			return m, nil
		}
		board.InputMode = app.ModeRenamingTask
		board.InputText = task.Title
		m.status = "edit task title"

	case "dt":
		board.DeleteCurrentTask()
		m.status = "task deleted"

	case "dc", "dd":
		if len(board.Columns) == 0 {
			m.status = "no column to delete"
			return m, nil
		}
		board.InputMode = app.ModeConfirmDeleteColumn
		m.status = "confirm delete column"

	case "gc":
		board.InputMode = app.ModeJumpToColumn
		m.status = "jump: press 1-9"

	case "gt":
		if board.TotalTaskCount() == 0 {
			m.status = "no tasks to jump to"
			return m, nil
		}
		board.InputMode = app.ModeJumpToTask
		m.status = "jump: press a task label"
	}
	return m, nil
}

func (m Model) handleTextEntryKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	board := m.board

	switch msg.String() {
	case "enter":
		return m.commitTextEntry()

	case "esc":
		if board.InputMode == app.ModeAddingBoard {
			board.InputMode = app.ModeBoardSelection
		} else {
			board.InputMode = app.ModeNormal
		}
		board.InputText = ""
		return m, nil

	case "backspace":
		if board.InputText != "" {
			runes := []rune(board.InputText)
			board.InputText = string(runes[:len(runes)-1])
		}
		return m, nil

	default:
		if msg.Text != "" {
			board.InputText += msg.Text
		}
		return m, nil
	}
}

func (m Model) commitTextEntry() (tea.Model, tea.Cmd) {
	board := m.board
	text := board.InputText

	switch board.InputMode {
	case app.ModeAddingColumn:
		if text == "" {
			text = "New Column"
		}
		board.AddColumn(text)
		m.status = "column added"

	case app.ModeAddingTask:
		if text == "" {
			text = "New Task"
		}
		board.AddTask(text)
		m.status = "task added"

	case app.ModeRenamingColumn:
		if strings.TrimSpace(text) == "" {
			text = "Unnamed Column"
		}
		board.RenameCurrentColumn(text)
		m.status = "column renamed"

	case app.ModeRenamingTask:
		if strings.TrimSpace(text) == "" {
			text = "Unnamed Task"
		}
		board.RenameCurrentTask(text)
		m.status = "task renamed"

	case app.ModeAddingBoard:
		if text == "" {
			text = m.defaultBoardTitle
		}
		err := board.CreateNewBoard(text)
		board.InputMode = app.ModeNormal
		board.InputText = ""
		m.hasBoard = true
		if err != nil {
			m.status = "board not persisted: " + err.Error()
		} else {
			m.status = fmt.Sprintf("created board %q", text)
		}
	}
	return m, nil
}

func (m Model) handleMoveModeKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	board := m.board
	if msg.String() == "esc" {
		board.InputMode = app.ModeNormal
		return m, nil
	}
	if d, ok := digitFor(msg.Text); ok {
		board.JumpToColumn(d)
	}
	return m, nil
}

func (m Model) handleConfirmDeleteKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	board := m.board
	switch msg.String() {
	case "y":
		board.DeleteCurrentColumn()
		board.InputMode = app.ModeNormal
		m.status = "column deleted"
	case "n", "esc":
		board.InputMode = app.ModeNormal
	}
	return m, nil
}

func (m Model) handleColumnSelectionKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	board := m.board
	if msg.String() == "esc" {
		board.InputMode = app.ModeNormal
		return m, nil
	}
	if d, ok := digitFor(msg.Text); ok && d >= 1 {
		target := d - 1
		if target < len(board.Columns) && target != board.ActiveColumn {
			board.MoveTaskToColumn(target)
		}
		board.InputMode = app.ModeNormal
	}
	return m, nil
}

func (m Model) handleJumpToColumnKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	board := m.board
	if d, ok := digitFor(msg.Text); ok && d >= 1 {
		board.SetActiveColumn(d - 1)
	}
	// Any key resolves this mode.
	board.InputMode = app.ModeNormal
	return m, nil
}

func (m Model) handleJumpToTaskKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	board := m.board
	if msg.String() == "esc" {
		board.InputMode = app.ModeNormal
		return m, nil
	}
	runes := []rune(msg.Text)
	if len(runes) != 1 {
		return m, nil
	}
	if col, task, ok := board.TaskByJumpLabel(runes[0]); ok {
		board.JumpToTask(col, task)
		m.status = "ready"
	}
	// Unmatched labels keep the mode active for another try.
	return m, nil
}

func (m Model) handleBoardSelectionKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	board := m.board
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "esc":
		if m.hasBoard {
			board.InputMode = app.ModeNormal
			return m, nil
		}
		return m, tea.Quit

	case "k", "up":
		board.SelectPrevBoard()
		return m, nil

	case "j", "down":
		board.SelectNextBoard()
		return m, nil

	case "enter":
		if err := board.LoadSelectedBoard(); err != nil {
			m.status = "load failed: " + err.Error()
			return m, nil
		}
		if board.InputMode == app.ModeNormal {
			m.hasBoard = true
			m.status = "ready"
		}
		return m, nil

	default:
		return m, nil
	}
}

// digitFor maps a single-character key text to its digit value.
func digitFor(text string) (int, bool) {
	if len(text) != 1 || text[0] < '0' || text[0] > '9' {
		return 0, false
	}
	return int(text[0] - '0'), true
}
