package model

import (
	"errors"

	"github.com/google/uuid"
)

var ErrTaskNotFound = errors.New("model: task not found")

type Task struct {
	ID      string
	Text    string
	Checked bool
}

// TaskList is the ordered checklist shown above the timer. Order is display
// order. Every successful mutation notifies subscribers; the list itself never
// touches storage.
type TaskList struct {
	items     []Task
	listeners []func()
}

func NewTaskList() *TaskList {
	return &TaskList{items: make([]Task, 0)}
}

func (l *TaskList) Subscribe(fn func()) {
	if fn == nil {
		return
	}
	l.listeners = append(l.listeners, fn)
}

func (l *TaskList) Add(text string, checked bool) Task {
	task := Task{ID: uuid.NewString(), Text: text, Checked: checked}
	l.items = append(l.items, task)
	l.changed()
	return task
}

// Delete is a silent no-op for unknown ids.
func (l *TaskList) Delete(id string) bool {
	idx := l.indexOf(id)
	if idx < 0 {
		return false
	}
	l.items = append(l.items[:idx], l.items[idx+1:]...)
	l.changed()
	return true
}

func (l *TaskList) SetChecked(id string, checked bool) bool {
	idx := l.indexOf(id)
	if idx < 0 {
		return false
	}
	l.items[idx].Checked = checked
	l.changed()
	return true
}

// SetText fires on every call, even when the text is unchanged; callers
// invoke it per keystroke.
func (l *TaskList) SetText(id string, text string) bool {
	idx := l.indexOf(id)
	if idx < 0 {
		return false
	}
	l.items[idx].Text = text
	l.changed()
	return true
}

func (l *TaskList) Get(id string) (Task, error) {
	idx := l.indexOf(id)
	if idx < 0 {
		return Task{}, ErrTaskNotFound
	}
	return l.items[idx], nil
}

func (l *TaskList) Tasks() []Task {
	out := make([]Task, len(l.items))
	copy(out, l.items)
	return out
}

func (l *TaskList) Len() int {
	return len(l.items)
}

// Restore replaces the list without notifying. Used once at startup so a
// load does not immediately rewrite the file it came from.
func (l *TaskList) Restore(tasks []Task) {
	l.items = make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if t.ID == "" {
			t.ID = uuid.NewString()
		}
		l.items = append(l.items, t)
	}
}

func (l *TaskList) indexOf(id string) int {
	for i := range l.items {
		if l.items[i].ID == id {
			return i
		}
	}
	return -1
}

func (l *TaskList) changed() {
	for _, fn := range l.listeners {
		fn()
	}
}
