package update

import (
	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) openPrompt(kind promptKind, label, value string) {
	m.prompt = kind
	m.promptInput.Prompt = label
	m.promptInput.SetValue(value)
	m.promptInput.CursorEnd()
	m.promptInput.Focus()
}

func (m *Model) closePrompt() {
	m.prompt = promptNone
	m.editingID = ""
	m.promptInput.SetValue("")
	m.promptInput.Blur()
}

func (m Model) handlePromptKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closePrompt()
		return m, nil
	case "enter":
		switch m.prompt {
		case promptMinutes:
			return m.submitMinutes()
		case promptFolder:
			return m.submitFolder()
		default:
			m.closePrompt()
			return m, nil
		}
	}

	if msg.Type == tea.KeyRunes {
		if m.prompt == promptMinutes && !digitsOnly(msg.Runes) {
			return m, nil
		}
		m.promptInput.SetValue(m.promptInput.Value() + string(msg.Runes))
		m.promptInput.CursorEnd()
	} else {
		var cmd tea.Cmd
		m.promptInput, cmd = m.promptInput.Update(msg)
		_ = cmd
	}
	if m.prompt == promptEditTask {
		m.applyTaskEdit()
	}
	return m, nil
}
