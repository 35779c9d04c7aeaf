package update

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/temporizador/internal/app"
	"github.com/sandeepkv93/temporizador/internal/commands"
	"github.com/sandeepkv93/temporizador/internal/model"
	"github.com/sandeepkv93/temporizador/internal/playlist"
	"github.com/sandeepkv93/temporizador/internal/storage"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closePalette()
		m.Status = StatusBar{Text: "command palette closed"}
		return m, nil
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		return m.executePaletteCommand()
	}
	if msg.Type == tea.KeyRunes {
		m.commandInput.SetValue(m.commandInput.Value() + string(msg.Runes))
		m.commandInput.CursorEnd()
	} else {
		var cmd tea.Cmd
		m.commandInput, cmd = m.commandInput.Update(msg)
		_ = cmd
	}
	m.Palette.Input = m.commandInput.Value()
	return m, nil
}

func (m *Model) closePalette() {
	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Blur()
}

func (m Model) executePaletteCommand() (Model, tea.Cmd) {
	raw := strings.TrimSpace(m.Palette.Input)
	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.closePalette()
		return m, nil
	}

	var follow tea.Cmd
	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			m.State.Tasks.Add(a.Text, false)
			m.TaskCursor = m.State.Tasks.Len() - 1
			m.CurrentPane = PaneTasks
			return commands.Result{Message: fmt.Sprintf("added task: %s", a.Text)}, nil
		},
		Folder: func(f commands.FolderArgs) (commands.Result, error) {
			if err := m.chooseFolder(f.Path); err != nil {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: err.Error()}
			}
			m.CurrentPane = PanePlaylist
			return commands.Result{Message: fmt.Sprintf("loaded %d tracks", len(m.State.Player.Entries()))}, nil
		},
		Duration: func(d commands.DurationArgs) (commands.Result, error) {
			if err := m.State.SetDuration(d.Minutes); err != nil {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: err.Error()}
			}
			follow = statsCmd(m.State)
			return commands.Result{Message: fmt.Sprintf("timer set to %d minutes", d.Minutes)}, nil
		},
		Volume: func(v commands.VolumeArgs) (commands.Result, error) {
			if err := m.State.Player.SetVolume(v.Entry, v.Percent); err != nil {
				return commands.Result{}, entryError(err)
			}
			e := m.State.Player.Entries()[v.Entry]
			return commands.Result{Message: fmt.Sprintf("%s volume %d%%", e.Name(), e.VolumePercent)}, nil
		},
		Loop: func(l commands.LoopArgs) (commands.Result, error) {
			if err := m.State.Player.SetLoop(l.Entry, l.On); err != nil {
				return commands.Result{}, entryError(err)
			}
			state := "off"
			if l.On {
				state = "on"
			}
			return commands.Result{Message: fmt.Sprintf("loop %s for track %d", state, l.Entry+1)}, nil
		},
		History: func(h commands.HistoryArgs) (commands.Result, error) {
			ctx := context.Background()
			if h.Clear {
				if err := m.State.ClearHistory(ctx); err != nil {
					return commands.Result{}, historyError(err)
				}
				follow = statsCmd(m.State)
				return commands.Result{Message: "session history cleared"}, nil
			}
			sessions, err := m.State.RecentSessions(ctx, h.Limit)
			if err != nil {
				return commands.Result{}, historyError(err)
			}
			return commands.Result{Message: formatSessions(sessions)}, nil
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.LastError = err
	} else {
		m.Status = StatusBar{Text: res.Message}
	}
	m.closePalette()
	return m, follow
}

func entryError(err error) error {
	if errors.Is(err, playlist.ErrIndexOutOfRange) {
		return &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "no such track"}
	}
	return err
}

func historyError(err error) error {
	if errors.Is(err, app.ErrHistoryDisabled) {
		return &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "session history is disabled"}
	}
	return err
}

func formatSessions(sessions []storage.Session) string {
	if len(sessions) == 0 {
		return "no sessions recorded"
	}
	parts := make([]string, 0, len(sessions))
	for _, s := range sessions {
		parts = append(parts, fmt.Sprintf("%s %s %s/%s",
			s.EndedAt.Local().Format("Jan 2 15:04"), s.Outcome,
			model.FormatClock(s.ElapsedSeconds), model.FormatClock(s.TotalSeconds)))
	}
	return strings.Join(parts, " | ")
}
