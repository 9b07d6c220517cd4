package tui

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/notemancy-pkm/kantui/internal/adapters/storage/boardfile"
	"github.com/notemancy-pkm/kantui/internal/app"
)

func newNormalModel(t *testing.T) Model {
	t.Helper()
	board := app.New("My Kanban Board", boardfile.NewStore(""))
	board.InputMode = app.ModeNormal
	m := NewModel(board)
	m.hasBoard = true
	return loadReadyModel(t, m)
}

func TestChordOpensAddColumnEntry(t *testing.T) {
	m := newNormalModel(t)

	m = applyMsg(t, m, keyRune('a'))
	if m.chord != "a" {
		t.Fatalf("expected pending chord %q, got %q", "a", m.chord)
	}
	m = applyMsg(t, m, keyRune('c'))
	if m.board.InputMode != app.ModeAddingColumn {
		t.Fatalf("expected adding-column mode, got %v", m.board.InputMode)
	}
	if m.board.InputText != "" {
		t.Fatalf("expected empty input text, got %q", m.board.InputText)
	}
}

func TestUnmatchedChordFallsThroughToSingleKey(t *testing.T) {
	m := newNormalModel(t)
	if m.board.Columns[0].Selected != 0 {
		t.Fatalf("expected first task selected, got %d", m.board.Columns[0].Selected)
	}

	m = applyMsg(t, m, keyRune('a'))
	m = applyMsg(t, m, keyRune('j'))
	if m.chord != "" {
		t.Fatalf("expected chord buffer cleared, got %q", m.chord)
	}
	if m.board.InputMode != app.ModeNormal {
		t.Fatalf("expected normal mode, got %v", m.board.InputMode)
	}
	if m.board.Columns[0].Selected != 1 {
		t.Fatalf("expected j to advance the selection, got %d", m.board.Columns[0].Selected)
	}
}

func TestTextEntryCommitUsesDefaultTitle(t *testing.T) {
	m := newNormalModel(t)

	m = applyMsg(t, m, keyRune('a'))
	m = applyMsg(t, m, keyRune('t'))
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})

	col := m.board.Columns[0]
	if got := col.Tasks[len(col.Tasks)-1].Title; got != "New Task" {
		t.Fatalf("expected default task title, got %q", got)
	}
	if col.Selected != len(col.Tasks)-1 {
		t.Fatalf("expected new task selected, got %d", col.Selected)
	}
	if m.board.InputMode != app.ModeNormal {
		t.Fatalf("expected normal mode after commit, got %v", m.board.InputMode)
	}
}

func TestTextEntryTypingAndBackspace(t *testing.T) {
	m := newNormalModel(t)

	m = applyMsg(t, m, keyRune('a'))
	m = applyMsg(t, m, keyRune('t'))
	for _, r := range "docs" {
		m = applyMsg(t, m, keyRune(r))
	}
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyBackspace})
	if m.board.InputText != "doc" {
		t.Fatalf("expected input %q, got %q", "doc", m.board.InputText)
	}
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})

	col := m.board.Columns[0]
	if got := col.Tasks[len(col.Tasks)-1].Title; got != "doc" {
		t.Fatalf("expected typed title, got %q", got)
	}
}

func TestTextEntryEscapeDiscardsInput(t *testing.T) {
	m := newNormalModel(t)
	before := len(m.board.Columns)

	m = applyMsg(t, m, keyRune('a'))
	m = applyMsg(t, m, keyRune('c'))
	m = applyMsg(t, m, keyRune('x'))
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyEscape})

	if len(m.board.Columns) != before {
		t.Fatalf("expected no column added, got %d", len(m.board.Columns))
	}
	if m.board.InputMode != app.ModeNormal || m.board.InputText != "" {
		t.Fatalf("expected cleared normal mode, got %v %q", m.board.InputMode, m.board.InputText)
	}
}

func TestRenameTaskPrefillsCurrentTitle(t *testing.T) {
	m := newNormalModel(t)
	want := m.board.Columns[0].Tasks[0].Title

	m = applyMsg(t, m, keyRune('r'))
	m = applyMsg(t, m, keyRune('t'))
	if m.board.InputMode != app.ModeRenamingTask {
		t.Fatalf("expected renaming-task mode, got %v", m.board.InputMode)
	}
	if m.board.InputText != want {
		t.Fatalf("expected prefilled input %q, got %q", want, m.board.InputText)
	}
}

func TestRenameColumnEmptyCommitsDefault(t *testing.T) {
	m := newNormalModel(t)

	m = applyMsg(t, m, keyRune('r'))
	m = applyMsg(t, m, keyRune('c'))
	for n := len([]rune(m.board.InputText)); n > 0; n-- {
		m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyBackspace})
	}
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})

	if got := m.board.Columns[0].Title; got != "Unnamed Column" {
		t.Fatalf("expected default column title, got %q", got)
	}
	if m.board.InputMode != app.ModeNormal || m.board.InputText != "" {
		t.Fatalf("expected cleared normal mode, got %v %q", m.board.InputMode, m.board.InputText)
	}
}

func TestRenameTaskEmptyCommitsDefault(t *testing.T) {
	m := newNormalModel(t)

	m = applyMsg(t, m, keyRune('r'))
	m = applyMsg(t, m, keyRune('t'))
	for n := len([]rune(m.board.InputText)); n > 0; n-- {
		m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyBackspace})
	}
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})

	if got := m.board.Columns[0].Tasks[0].Title; got != "Unnamed Task" {
		t.Fatalf("expected default task title, got %q", got)
	}
	if m.board.InputMode != app.ModeNormal {
		t.Fatalf("expected normal mode after commit, got %v", m.board.InputMode)
	}
}

func TestDeleteColumnRequiresConfirmation(t *testing.T) {
	m := newNormalModel(t)

	m = applyMsg(t, m, keyRune('d'))
	m = applyMsg(t, m, keyRune('c'))
	if m.board.InputMode != app.ModeConfirmDeleteColumn {
		t.Fatalf("expected confirm mode, got %v", m.board.InputMode)
	}
	m = applyMsg(t, m, keyRune('n'))
	if len(m.board.Columns) != 1 {
		t.Fatalf("expected column kept on n, got %d columns", len(m.board.Columns))
	}

	m = applyMsg(t, m, keyRune('d'))
	m = applyMsg(t, m, keyRune('d'))
	m = applyMsg(t, m, keyRune('y'))
	if len(m.board.Columns) != 0 {
		t.Fatalf("expected column deleted on y, got %d columns", len(m.board.Columns))
	}
	if m.board.InputMode != app.ModeNormal {
		t.Fatalf("expected normal mode, got %v", m.board.InputMode)
	}
}

func TestMoveModeDigitJumpsColumn(t *testing.T) {
	m := newNormalModel(t)
	m.board.AddColumn("Doing")

	m = applyMsg(t, m, tea.KeyPressMsg{Code: 'k', Mod: tea.ModCtrl})
	if m.board.InputMode != app.ModeMove {
		t.Fatalf("expected move mode, got %v", m.board.InputMode)
	}
	m = applyMsg(t, m, keyRune('2'))
	if m.board.ActiveColumn != 1 {
		t.Fatalf("expected column 1 active, got %d", m.board.ActiveColumn)
	}
	if m.board.InputMode != app.ModeNormal {
		t.Fatalf("expected normal mode, got %v", m.board.InputMode)
	}
}

func TestMoveModeEscapeCancels(t *testing.T) {
	m := newNormalModel(t)

	m = applyMsg(t, m, tea.KeyPressMsg{Code: 'k', Mod: tea.ModCtrl})
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyEscape})
	if m.board.InputMode != app.ModeNormal {
		t.Fatalf("expected normal mode, got %v", m.board.InputMode)
	}
}

func TestColumnSelectionMovesSelectedTask(t *testing.T) {
	m := newNormalModel(t)
	m.board.AddColumn("Doing")
	m.board.SetActiveColumn(0)
	want := m.board.Columns[0].Tasks[0].Title

	m = applyMsg(t, m, keyRune('m'))
	if m.board.InputMode != app.ModeColumnSelection {
		t.Fatalf("expected column-selection mode, got %v", m.board.InputMode)
	}
	m = applyMsg(t, m, keyRune('2'))
	if m.board.InputMode != app.ModeNormal {
		t.Fatalf("expected normal mode, got %v", m.board.InputMode)
	}
	doing := m.board.Columns[1]
	if len(doing.Tasks) != 1 || doing.Tasks[0].Title != want {
		t.Fatalf("expected task moved to Doing, got %+v", doing.Tasks)
	}
}

func TestColumnSelectionIgnoresActiveColumnDigit(t *testing.T) {
	m := newNormalModel(t)
	m.board.AddColumn("Doing")
	m.board.SetActiveColumn(0)
	before := len(m.board.Columns[0].Tasks)

	m = applyMsg(t, m, keyRune('m'))
	m = applyMsg(t, m, keyRune('1'))
	if len(m.board.Columns[0].Tasks) != before {
		t.Fatalf("expected no move, got %d tasks", len(m.board.Columns[0].Tasks))
	}
	if m.board.InputMode != app.ModeNormal {
		t.Fatalf("expected normal mode, got %v", m.board.InputMode)
	}
}

func TestJumpToColumnResolvesOnAnyKey(t *testing.T) {
	m := newNormalModel(t)
	m.board.AddColumn("Doing")
	m.board.SetActiveColumn(0)

	m = applyMsg(t, m, keyRune('g'))
	m = applyMsg(t, m, keyRune('c'))
	if m.board.InputMode != app.ModeJumpToColumn {
		t.Fatalf("expected jump-to-column mode, got %v", m.board.InputMode)
	}
	m = applyMsg(t, m, keyRune('2'))
	if m.board.ActiveColumn != 1 {
		t.Fatalf("expected column 1 active, got %d", m.board.ActiveColumn)
	}

	m = applyMsg(t, m, keyRune('g'))
	m = applyMsg(t, m, keyRune('c'))
	m = applyMsg(t, m, keyRune('x'))
	if m.board.InputMode != app.ModeNormal {
		t.Fatalf("expected non-digit to resolve the mode, got %v", m.board.InputMode)
	}
	if m.board.ActiveColumn != 1 {
		t.Fatalf("expected active column unchanged, got %d", m.board.ActiveColumn)
	}
}

func TestJumpToTaskSelectsLabeledTask(t *testing.T) {
	m := newNormalModel(t)

	m = applyMsg(t, m, keyRune('g'))
	m = applyMsg(t, m, keyRune('t'))
	if m.board.InputMode != app.ModeJumpToTask {
		t.Fatalf("expected jump-to-task mode, got %v", m.board.InputMode)
	}

	m = applyMsg(t, m, keyRune('Z'))
	if m.board.InputMode != app.ModeJumpToTask {
		t.Fatalf("expected unmatched label to keep the mode, got %v", m.board.InputMode)
	}

	m = applyMsg(t, m, keyRune('b'))
	if m.board.InputMode != app.ModeNormal {
		t.Fatalf("expected normal mode, got %v", m.board.InputMode)
	}
	if m.board.Columns[0].Selected != 1 {
		t.Fatalf("expected second task selected, got %d", m.board.Columns[0].Selected)
	}
}

func TestBoardSelectionFlow(t *testing.T) {
	dir := t.TempDir()
	store := boardfile.NewStore(dir)

	seed := app.New("Project X", store)
	if err := seed.InitializeStorage(); err != nil {
		t.Fatalf("InitializeStorage() error = %v", err)
	}

	board := app.New("My Kanban Board", store)
	m := loadReadyModel(t, NewModel(board))
	if m.board.InputMode != app.ModeBoardSelection {
		t.Fatalf("expected board selection on startup, got %v", m.board.InputMode)
	}

	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})
	if m.board.InputMode != app.ModeNormal {
		t.Fatalf("expected normal mode after load, got %v", m.board.InputMode)
	}
	if m.board.Title != "project x" {
		t.Fatalf("expected loaded board title, got %q", m.board.Title)
	}
	if !m.hasBoard {
		t.Fatal("expected hasBoard after load")
	}

	m = applyMsg(t, m, keyRune('b'))
	if m.board.InputMode != app.ModeBoardSelection {
		t.Fatalf("expected board selection after b, got %v", m.board.InputMode)
	}
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyEscape})
	if m.board.InputMode != app.ModeNormal {
		t.Fatalf("expected esc to return to the board, got %v", m.board.InputMode)
	}
}

func TestBoardSelectionEscapeQuitsWithoutBoard(t *testing.T) {
	board := app.New("My Kanban Board", boardfile.NewStore(""))
	m := loadReadyModel(t, NewModel(board))

	updated, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if updated == nil {
		t.Fatal("expected model return value")
	}
	if cmd == nil {
		t.Fatal("expected quit cmd")
	}
}

func TestBoardSelectionSentinelOpensNameEntry(t *testing.T) {
	dir := t.TempDir()
	board := app.New("My Kanban Board", boardfile.NewStore(dir))
	m := loadReadyModel(t, NewModel(board, WithDefaultBoardTitle("Team Board")))

	for i := 0; i < len(m.board.AvailableBoards); i++ {
		if m.board.AvailableBoards[m.board.SelectedBoard] == boardfile.CreateNewBoardEntry {
			break
		}
		m = applyMsg(t, m, keyRune('j'))
	}
	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})
	if m.board.InputMode != app.ModeAddingBoard {
		t.Fatalf("expected adding-board mode, got %v", m.board.InputMode)
	}

	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})
	if m.board.Title != "Team Board" {
		t.Fatalf("expected default board title, got %q", m.board.Title)
	}
	if m.board.InputMode != app.ModeNormal || !m.hasBoard {
		t.Fatalf("expected loaded board, got %v hasBoard=%v", m.board.InputMode, m.hasBoard)
	}
}

func TestAddingBoardEscapeReturnsToSelection(t *testing.T) {
	board := app.New("My Kanban Board", boardfile.NewStore(""))
	board.InputMode = app.ModeAddingBoard
	m := loadReadyModel(t, NewModel(board))

	m = applyMsg(t, m, tea.KeyPressMsg{Code: tea.KeyEscape})
	if m.board.InputMode != app.ModeBoardSelection {
		t.Fatalf("expected board selection, got %v", m.board.InputMode)
	}
}

func TestHelpToggle(t *testing.T) {
	m := newNormalModel(t)

	m = applyMsg(t, m, keyRune('?'))
	if !m.showHelp {
		t.Fatal("expected help shown")
	}
	m = applyMsg(t, m, keyRune('?'))
	if m.showHelp {
		t.Fatal("expected help hidden")
	}
}

func TestQuitKey(t *testing.T) {
	m := newNormalModel(t)
	updated, cmd := m.Update(tea.KeyPressMsg{Code: 'q', Text: "q"})
	if updated == nil {
		t.Fatal("expected model return value")
	}
	if cmd == nil {
		t.Fatal("expected quit cmd")
	}
}

func TestViewStates(t *testing.T) {
	board := app.New("My Kanban Board", boardfile.NewStore(""))
	board.InputMode = app.ModeNormal
	m := NewModel(board)

	v := m.View()
	if v.Content == nil || !v.AltScreen {
		t.Fatal("expected loading view in alt screen")
	}

	m = loadReadyModel(t, m)
	v = m.View()
	if v.Content == nil {
		t.Fatal("expected board view content")
	}
}

func loadReadyModel(t *testing.T, m Model) Model {
	t.Helper()
	return applyMsg(t, applyCmd(t, m, m.Init()), tea.WindowSizeMsg{Width: 120, Height: 40})
}

func applyMsg(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	updated, cmd := m.Update(msg)
	out, ok := updated.(Model)
	if !ok {
		t.Fatalf("expected Model, got %T", updated)
	}
	return applyCmd(t, out, cmd)
}

func applyCmd(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	out := m
	currentCmd := cmd
	for i := 0; i < 6 && currentCmd != nil; i++ {
		msg := currentCmd()
		updated, nextCmd := out.Update(msg)
		casted, ok := updated.(Model)
		if !ok {
			t.Fatalf("expected Model, got %T", updated)
		}
		out = casted
		currentCmd = nextCmd
	}
	return out
}

func keyRune(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}
