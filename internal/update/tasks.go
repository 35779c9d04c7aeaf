package update

import (
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) handleTasksKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	tasks := m.State.Tasks.Tasks()
	m.TaskCursor = clamp(m.TaskCursor, 0, len(tasks)-1)
	switch msg.String() {
	case "a":
		t := m.State.Tasks.Add("", false)
		m.TaskCursor = m.State.Tasks.Len() - 1
		m.beginTaskEdit(t.ID, t.Text)
	case "enter":
		if len(tasks) == 0 {
			return m, nil
		}
		t := tasks[m.TaskCursor]
		m.beginTaskEdit(t.ID, t.Text)
	case " ":
		if len(tasks) == 0 {
			return m, nil
		}
		t := tasks[m.TaskCursor]
		m.State.Tasks.SetChecked(t.ID, !t.Checked)
	case "x":
		if len(tasks) == 0 {
			return m, nil
		}
		m.State.Tasks.Delete(tasks[m.TaskCursor].ID)
		m.TaskCursor = clamp(m.TaskCursor, 0, m.State.Tasks.Len()-1)
		m.Status = StatusBar{Text: "task deleted"}
	case "j", "down":
		m.TaskCursor = clamp(m.TaskCursor+1, 0, len(tasks)-1)
	case "k", "up":
		m.TaskCursor = clamp(m.TaskCursor-1, 0, len(tasks)-1)
	}
	return m, nil
}

func (m *Model) beginTaskEdit(id, text string) {
	m.editingID = id
	m.openPrompt(promptEditTask, "task> ", text)
}

// applyTaskEdit writes the editor contents through on every keystroke.
func (m *Model) applyTaskEdit() {
	if m.editingID == "" {
		return
	}
	t, err := m.State.Tasks.Get(m.editingID)
	if err != nil {
		m.closePrompt()
		return
	}
	if value := m.promptInput.Value(); value != t.Text {
		m.State.Tasks.SetText(m.editingID, value)
	}
}
