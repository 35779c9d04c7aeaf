package update

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/temporizador/internal/model"
	"github.com/sandeepkv93/temporizador/internal/views"
)

func (m Model) Init() tea.Cmd {
	var cmds []tea.Cmd
	if m.Scheduler != nil {
		cmds = append(cmds, waitForFireCmd(m.Scheduler.C()))
	}
	cmds = append(cmds, statsCmd(m.State))
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	next.syncBubbleData()
	return next, cmd
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(typed)
	case PollMsg:
		if m.State.OnPlaylistPoll() && !m.State.Player.Playing() {
			m.Status = StatusBar{Text: "playlist finished"}
		}
		return m, m.rearm()
	case TimerTickMsg:
		if m.State.OnTimerTick() {
			m.Status = StatusBar{Text: "timer finished"}
			return m, tea.Batch(m.rearm(), statsCmd(m.State))
		}
		return m, m.rearm()
	case FireMsg:
		return m, m.rearm()
	case spinner.TickMsg:
		if m.spinnerActive && m.State.Player.Playing() {
			var cmd tea.Cmd
			m.playingSpinner, cmd = m.playingSpinner.Update(typed)
			return m, cmd
		}
		m.spinnerActive = false
		return m, nil
	case StatsMsg:
		if typed.Err != nil {
			m.Status = StatusBar{Text: fmt.Sprintf("history unavailable: %v", typed.Err), IsError: true}
			return m, nil
		}
		m.CompletedToday = typed.CompletedToday
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	keyStr := msg.String()
	if keyStr == "ctrl+c" {
		return m.quit()
	}

	if m.State.AlarmActive() {
		switch keyStr {
		case "enter", "esc":
			m.State.DismissCompletion()
			m.Status = StatusBar{Text: "timer dismissed"}
		}
		return m, nil
	}
	if m.Palette.Active {
		return m.handlePaletteKey(msg)
	}
	if m.prompt != promptNone {
		return m.handlePromptKey(msg)
	}

	switch keyStr {
	case m.Keys.NextPane:
		m.CurrentPane = nextPane(m.CurrentPane)
		return m, nil
	case m.Keys.Palette:
		m.Palette.Active = true
		m.Palette.Input = ""
		m.commandInput.SetValue("")
		m.commandInput.Focus()
		m.Status = StatusBar{Text: "command palette active"}
		return m, nil
	case m.Keys.Help:
		m.HelpVisible = !m.HelpVisible
		if m.HelpVisible {
			m.helpViewport.SetContent(views.RenderMarkdown(m.helpMarkdown()))
			m.Status = StatusBar{Text: "help shown"}
		} else {
			m.Status = StatusBar{Text: "help hidden"}
		}
		return m, nil
	case m.Keys.Quit:
		return m.quit()
	}

	switch m.CurrentPane {
	case PaneTasks:
		return m.handleTasksKey(msg)
	case PaneTimer:
		return m.handleTimerKey(msg)
	case PanePlaylist:
		return m.handlePlaylistKey(msg)
	}
	return m, nil
}

func (m Model) quit() (Model, tea.Cmd) {
	m.Quitting = true
	m.State.DismissCompletion()
	m.State.Player.Stop()
	return m, tea.Quit
}

func (m Model) rearm() tea.Cmd {
	if m.Scheduler == nil {
		return nil
	}
	return waitForFireCmd(m.Scheduler.C())
}

func (m Model) View() string {
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}

	modal := ""
	if m.State.AlarmActive() {
		modal = views.RenderCompletionModal(m.State.Timer.TotalSeconds / 60)
	}

	side := strings.TrimSpace(strings.Join([]string{
		m.renderCommandPalette(),
		m.renderHelpIfVisible(),
	}, "\n"))

	return views.RenderApp(views.AppData{
		Header: fmt.Sprintf("temporizador | pane: %s | %s | completed today: %d",
			m.CurrentPane, model.FormatClock(m.State.Timer.RemainingSeconds), m.CompletedToday),
		Panes: []views.PaneData{
			{Title: string(PaneTasks), Body: m.renderTasksView(), Focused: m.CurrentPane == PaneTasks},
			{Title: string(PaneTimer), Body: m.renderTimerView(), Focused: m.CurrentPane == PaneTimer},
			{Title: string(PanePlaylist), Body: m.renderPlaylistView(), Focused: m.CurrentPane == PanePlaylist},
		},
		Side:       side,
		Modal:      modal,
		StatusLine: status,
		Footer: fmt.Sprintf("keys: %s pane | %s cmd | %s help | %s quit",
			m.Keys.NextPane, m.Keys.Palette, m.Keys.Help, m.Keys.Quit),
	})
}

func nextPane(p Pane) Pane {
	for i, candidate := range paneOrder {
		if candidate == p {
			return paneOrder[(i+1)%len(paneOrder)]
		}
	}
	return PaneTasks
}
