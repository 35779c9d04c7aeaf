package update

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) handleTimerKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "s":
		if m.State.StartTimer() {
			m.Status = StatusBar{Text: "timer running"}
			m.anchorTick()
		} else {
			m.Status = StatusBar{Text: "timer already running"}
		}
	case "p":
		if m.State.Timer.Pause() {
			m.Status = StatusBar{Text: "timer paused"}
		}
	case "r":
		if m.State.Timer.Resume() {
			m.Status = StatusBar{Text: "timer resumed"}
			m.anchorTick()
		}
	case "R":
		m.State.ResetTimer()
		m.Status = StatusBar{Text: "timer reset"}
		return m, statsCmd(m.State)
	case "e":
		m.openPrompt(promptMinutes, "minutes> ", strconv.Itoa(m.State.Timer.TotalSeconds/60))
	}
	return m, nil
}

func (m Model) submitMinutes() (Model, tea.Cmd) {
	raw := strings.TrimSpace(m.promptInput.Value())
	m.closePrompt()
	minutes, err := strconv.Atoi(raw)
	if err != nil {
		m.Status = StatusBar{Text: fmt.Sprintf("invalid minutes: %q", raw), IsError: true}
		return m, nil
	}
	if err := m.State.SetDuration(minutes); err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}
	m.Status = StatusBar{Text: fmt.Sprintf("timer set to %d minutes", minutes)}
	return m, statsCmd(m.State)
}

// anchorTick restarts the one-second tick so the first decrement lands a full
// second after start or resume.
func (m *Model) anchorTick() {
	if m.Scheduler == nil {
		return
	}
	if err := m.Scheduler.ScheduleRepeating(JobTimerTick, time.Second); err != nil {
		m.Status = StatusBar{Text: fmt.Sprintf("timer tick: %v", err), IsError: true}
		m.LastError = err
	}
}

func digitsOnly(runes []rune) bool {
	for _, r := range runes {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
