package app

import "fmt"

// AddColumn appends an empty column, de-duplicating the title by appending
// " (n)" with increasing n until it is unique, then persists and returns
// to normal mode.
func (b *Board) AddColumn(title string) {
	b.Columns = append(b.Columns, Column{
		Title:    b.uniqueColumnTitle(title, -1),
		Selected: -1,
	})
	b.persist()
	b.InputMode = ModeNormal
	b.InputText = ""
}

// uniqueColumnTitle resolves title against the existing column titles,
// skipping the column at index ignore (-1 to consider all).
func (b *Board) uniqueColumnTitle(title string, ignore int) string {
	unique := title
	counter := 1
	for {
		taken := false
		for i, column := range b.Columns {
			if i != ignore && column.Title == unique {
				taken = true
				break
			}
		}
		if !taken {
			return unique
		}
		unique = fmt.Sprintf("%s (%d)", title, counter)
		counter++
	}
}

// AddTask appends a task with a default priority of 5 to the active column
// and selects it, then persists and returns to normal mode.
func (b *Board) AddTask(title string) {
	column := b.activeColumn()
	if column == nil {
		return
	}
	priority := 5
	column.Tasks = append(column.Tasks, Task{
		ID:       b.takeID(),
		Title:    title,
		Priority: &priority,
	})
	column.Selected = len(column.Tasks) - 1
	b.persist()
	b.InputMode = ModeNormal
	b.InputText = ""
}

// RenameCurrentColumn retitles the active column, de-duplicating against
// the other columns, then persists and returns to normal mode.
func (b *Board) RenameCurrentColumn(title string) {
	column := b.activeColumn()
	if column == nil {
		return
	}
	column.Title = b.uniqueColumnTitle(title, b.ActiveColumn)
	b.persist()
	b.InputMode = ModeNormal
	b.InputText = ""
}

// RenameCurrentTask retitles the selected task, then persists and returns
// to normal mode.
func (b *Board) RenameCurrentTask(title string) {
	column := b.activeColumn()
	if column == nil || column.Selected < 0 || column.Selected >= len(column.Tasks) {
		return
	}
	column.Tasks[column.Selected].Title = title
	b.persist()
	b.InputMode = ModeNormal
	b.InputText = ""
}

// DeleteCurrentTask removes the selected task from the active column and
// re-clamps the selection.
func (b *Board) DeleteCurrentTask() {
	column := b.activeColumn()
	if column == nil || column.Selected < 0 || column.Selected >= len(column.Tasks) {
		return
	}
	idx := column.Selected
	column.Tasks = append(column.Tasks[:idx], column.Tasks[idx+1:]...)
	if len(column.Tasks) == 0 {
		column.Selected = -1
	} else if idx >= len(column.Tasks) {
		column.Selected = len(column.Tasks) - 1
	}
	b.persist()
}

// DeleteCurrentColumn removes the active column and re-clamps the active
// index. Deleting the last column leaves the board with no columns.
func (b *Board) DeleteCurrentColumn() {
	if len(b.Columns) == 0 {
		return
	}
	b.Columns = append(b.Columns[:b.ActiveColumn], b.Columns[b.ActiveColumn+1:]...)
	if b.ActiveColumn >= len(b.Columns) && len(b.Columns) > 0 {
		b.ActiveColumn = len(b.Columns) - 1
	}
	b.persist()
}

// SelectPrevColumn moves the active column left by one.
func (b *Board) SelectPrevColumn() {
	if b.ActiveColumn > 0 {
		b.ActiveColumn--
		b.clearInactiveSelections()
	}
}

// SelectNextColumn moves the active column right by one.
func (b *Board) SelectNextColumn() {
	if b.ActiveColumn < len(b.Columns)-1 {
		b.ActiveColumn++
		b.clearInactiveSelections()
	}
}

// clearInactiveSelections enforces the invariant that only the active
// column holds a task selection.
func (b *Board) clearInactiveSelections() {
	for i := range b.Columns {
		if i != b.ActiveColumn {
			b.Columns[i].Selected = -1
		}
	}
}

// SelectPrevTask moves the selection up within the active column. Entering
// an unselected column selects the last task; at the top it is a no-op.
func (b *Board) SelectPrevTask() {
	column := b.activeColumn()
	if column == nil {
		return
	}
	if len(column.Tasks) == 0 {
		column.Selected = -1
		return
	}
	switch {
	case column.Selected > 0:
		column.Selected--
	case column.Selected < 0:
		column.Selected = len(column.Tasks) - 1
	}
}

// SelectNextTask moves the selection down within the active column.
// Entering an unselected column selects the first task; at the bottom it
// is a no-op.
func (b *Board) SelectNextTask() {
	column := b.activeColumn()
	if column == nil {
		return
	}
	if len(column.Tasks) == 0 {
		column.Selected = -1
		return
	}
	switch {
	case column.Selected < 0:
		column.Selected = 0
	case column.Selected < len(column.Tasks)-1:
		column.Selected++
	}
}

// JumpToColumn activates the column for a digit key: 0 maps to the first
// column, 1-9 map to columns one through nine. Out-of-range digits are
// ignored. On a jump the board returns to normal mode and persists.
func (b *Board) JumpToColumn(index int) {
	target := 0
	if index > 0 {
		target = index - 1
	}
	if target >= len(b.Columns) {
		return
	}
	b.ActiveColumn = target
	b.clearInactiveSelections()
	b.InputMode = ModeNormal
	b.persist()
}

// SetActiveColumn activates the column at idx without persisting or
// changing mode.
func (b *Board) SetActiveColumn(idx int) {
	if idx < 0 || idx >= len(b.Columns) {
		return
	}
	b.ActiveColumn = idx
	b.clearInactiveSelections()
}

// MoveTaskToColumn moves the selected task of the active column to the end
// of the target column, re-clamping the source selection.
func (b *Board) MoveTaskToColumn(target int) {
	if target < 0 || target >= len(b.Columns) || target == b.ActiveColumn {
		return
	}
	source := b.activeColumn()
	if source == nil || source.Selected < 0 || source.Selected >= len(source.Tasks) {
		return
	}
	idx := source.Selected
	task := source.Tasks[idx]
	source.Tasks = append(source.Tasks[:idx], source.Tasks[idx+1:]...)
	if len(source.Tasks) == 0 {
		source.Selected = -1
	} else if idx >= len(source.Tasks) {
		source.Selected = len(source.Tasks) - 1
	}

	dest := &b.Columns[target]
	dest.Tasks = append(dest.Tasks, task)
	if b.ActiveColumn == target {
		// Only reselect when the target is also the active column.
		dest.Selected = len(dest.Tasks) - 1
	}
	b.persist()
}

// jumpLabelAlphabet omits 'l' and 'o', which read as digits in most
// terminal fonts.
const jumpLabelAlphabet = "abcdefghijkmnpqrstuvwxyz"

// JumpLabels returns the label sequence for jump-to-task mode, extended
// with capital letters when the lowercase set cannot cover every task.
func (b *Board) JumpLabels() []rune {
	labels := []rune(jumpLabelAlphabet)
	if b.TotalTaskCount() > len(labels) {
		labels = append(labels, []rune("ABCDEFGHIJKLMNOPQRSTUVWXYZ")...)
	}
	return labels
}

// JumpLabelForTask returns the label shown next to the task at the given
// column and task index, or false when the task is beyond the label set.
func (b *Board) JumpLabelForTask(colIdx, taskIdx int) (rune, bool) {
	labels := b.JumpLabels()
	global := 0
	for c, column := range b.Columns {
		for t := range column.Tasks {
			if c == colIdx && t == taskIdx {
				if global < len(labels) {
					return labels[global], true
				}
				return 0, false
			}
			global++
		}
	}
	return 0, false
}

// TaskByJumpLabel resolves a label back to its column and task indexes.
func (b *Board) TaskByJumpLabel(label rune) (colIdx, taskIdx int, ok bool) {
	labels := b.JumpLabels()
	labelIdx := -1
	for i, l := range labels {
		if l == label {
			labelIdx = i
			break
		}
	}
	if labelIdx < 0 {
		return 0, 0, false
	}
	global := 0
	for c, column := range b.Columns {
		for t := range column.Tasks {
			if global == labelIdx {
				return c, t, true
			}
			global++
		}
	}
	return 0, 0, false
}

// JumpToTask activates the column at colIdx and selects the task at
// taskIdx, then returns to normal mode and persists.
func (b *Board) JumpToTask(colIdx, taskIdx int) {
	if colIdx < 0 || colIdx >= len(b.Columns) {
		return
	}
	b.ActiveColumn = colIdx
	b.clearInactiveSelections()
	column := &b.Columns[colIdx]
	if taskIdx >= 0 && taskIdx < len(column.Tasks) {
		column.Selected = taskIdx
	}
	b.InputMode = ModeNormal
	b.persist()
}
