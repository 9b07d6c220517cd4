package tui

import "charm.land/bubbles/v2/key"

// keyMap represents key map data used by this package.
type keyMap struct {
	quit       key.Binding
	toggleHelp key.Binding
	moveLeft   key.Binding
	moveRight  key.Binding
	moveUp     key.Binding
	moveDown   key.Binding
	moveTask   key.Binding
	selectCol  key.Binding
	boards     key.Binding
	save       key.Binding
	yank       key.Binding

	// Two-character chords are matched through the pending-chord buffer;
	// these bindings only feed the help views.
	addColumn    key.Binding
	addTask      key.Binding
	renameColumn key.Binding
	renameTask   key.Binding
	deleteTask   key.Binding
	deleteColumn key.Binding
	jumpColumn   key.Binding
	jumpTask     key.Binding
}

// newKeyMap constructs key map.
func newKeyMap() keyMap {
	return keyMap{
		quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		toggleHelp: key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle help")),
		moveLeft:   key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("h/←", "column left")),
		moveRight:  key.NewBinding(key.WithKeys("l", "right"), key.WithHelp("l/→", "column right")),
		moveUp:     key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "task up")),
		moveDown:   key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "task down")),
		moveTask:   key.NewBinding(key.WithKeys("ctrl+k"), key.WithHelp("ctrl+k", "move task")),
		selectCol:  key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "move to column #")),
		boards:     key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "boards")),
		save:       key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		yank:       key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "yank task title")),

		addColumn:    key.NewBinding(key.WithKeys("ac"), key.WithHelp("ac", "add column")),
		addTask:      key.NewBinding(key.WithKeys("at"), key.WithHelp("at", "add task")),
		renameColumn: key.NewBinding(key.WithKeys("rc"), key.WithHelp("rc", "rename column")),
		renameTask:   key.NewBinding(key.WithKeys("rt"), key.WithHelp("rt", "rename task")),
		deleteTask:   key.NewBinding(key.WithKeys("dt"), key.WithHelp("dt", "delete task")),
		deleteColumn: key.NewBinding(key.WithKeys("dc"), key.WithHelp("dc", "delete column")),
		jumpColumn:   key.NewBinding(key.WithKeys("gc"), key.WithHelp("gc", "jump to column")),
		jumpTask:     key.NewBinding(key.WithKeys("gt"), key.WithHelp("gt", "jump to task")),
	}
}

// ShortHelp handles short help.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.addTask, k.addColumn, k.moveTask, k.jumpTask, k.boards, k.toggleHelp, k.quit,
	}
}

// FullHelp handles full help.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.moveLeft, k.moveRight, k.moveUp, k.moveDown, k.jumpColumn, k.jumpTask},
		{k.addColumn, k.addTask, k.renameColumn, k.renameTask, k.deleteTask, k.deleteColumn},
		{k.moveTask, k.selectCol, k.yank, k.save, k.boards, k.toggleHelp, k.quit},
	}
}
