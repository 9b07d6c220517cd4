package domain

// Priority breaks a task's priority into impact, urgency, and effort,
// each scored 0-10.
type Priority struct {
	Impact  int
	Urgency int
	Effort  int
}

// Computed normalizes the raw (impact+urgency)/effort ratio onto a 1-10
// scale. The 0.2 and 19.8 calibration constants are part of the file format
// and must stay exact for compatibility. Reports false when effort is zero.
func (p Priority) Computed() (float64, bool) {
	if p.Effort == 0 {
		return 0, false
	}
	base := (float64(p.Impact) + float64(p.Urgency)) / float64(p.Effort)
	return 1.0 + 9.0*((base-0.2)/19.8), true
}

// Task represents one task record in a board file. Created is kept as the
// literal date string from disk so records round-trip byte for byte.
type Task struct {
	ID       int
	Title    string
	Priority *Priority
	Tags     []string
	Created  string
}

// Column represents one named column record and its ordered tasks.
type Column struct {
	Name  string
	Tasks []Task
}

// Board represents one board record: metadata plus ordered columns. This is
// the on-disk schema; the interactive model in internal/app keeps its own
// representation and bridges to this one on save/load.
type Board struct {
	Name        string
	Date        string
	Description string
	Columns     []Column
}

// NewBoard constructs a board record with no columns.
func NewBoard(name, date, description string) Board {
	return Board{
		Name:        name,
		Date:        date,
		Description: description,
	}
}

// AddColumn appends a new empty column to the board.
func (b *Board) AddColumn(name string) {
	b.Columns = append(b.Columns, Column{Name: name})
}

// AddTask appends a task to the named column.
func (b *Board) AddTask(columnName string, task Task) error {
	for i := range b.Columns {
		if b.Columns[i].Name == columnName {
			b.Columns[i].Tasks = append(b.Columns[i].Tasks, task)
			return nil
		}
	}
	return ErrColumnNotFound
}

// UpdateTask replaces the task with the given id in the named column.
func (b *Board) UpdateTask(columnName string, taskID int, updated Task) error {
	for i := range b.Columns {
		if b.Columns[i].Name != columnName {
			continue
		}
		for j := range b.Columns[i].Tasks {
			if b.Columns[i].Tasks[j].ID == taskID {
				b.Columns[i].Tasks[j] = updated
				return nil
			}
		}
		return ErrTaskNotFound
	}
	return ErrColumnNotFound
}

// DeleteTask removes every task with the given id from the named column.
func (b *Board) DeleteTask(columnName string, taskID int) error {
	for i := range b.Columns {
		if b.Columns[i].Name != columnName {
			continue
		}
		kept := b.Columns[i].Tasks[:0]
		for _, task := range b.Columns[i].Tasks {
			if task.ID != taskID {
				kept = append(kept, task)
			}
		}
		if len(kept) == len(b.Columns[i].Tasks) {
			return ErrTaskNotFound
		}
		b.Columns[i].Tasks = kept
		return nil
	}
	return ErrColumnNotFound
}

// TaskCount returns the number of tasks across all columns.
func (b Board) TaskCount() int {
	total := 0
	for _, column := range b.Columns {
		total += len(column.Tasks)
	}
	return total
}
