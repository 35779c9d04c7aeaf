package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

const volumeStep = 5

func (m Model) handlePlaylistKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	player := m.State.Player
	entries := player.Entries()
	m.PlaylistCursor = clamp(m.PlaylistCursor, 0, len(entries)-1)
	switch msg.String() {
	case "o":
		m.openPrompt(promptFolder, "folder> ", player.Folder())
	case "P":
		if len(entries) == 0 {
			m.Status = StatusBar{Text: "nothing to play", IsError: true}
			return m, nil
		}
		player.Play()
		cmd := m.startSpinner()
		return m, cmd
	case "S":
		player.Stop()
		m.Status = StatusBar{Text: "playback stopped"}
	case "n":
		if !player.Next() {
			m.Status = StatusBar{Text: "no next track"}
		}
	case "b":
		if !player.Previous() {
			m.Status = StatusBar{Text: "no previous track"}
		}
	case "l":
		if len(entries) == 0 {
			return m, nil
		}
		e := entries[m.PlaylistCursor]
		if err := player.SetLoop(m.PlaylistCursor, !e.Loop); err != nil {
			m.Status = StatusBar{Text: err.Error(), IsError: true}
		}
	case "+", "=":
		m.nudgeVolume(volumeStep)
	case "-":
		m.nudgeVolume(-volumeStep)
	case "j", "down":
		m.PlaylistCursor = clamp(m.PlaylistCursor+1, 0, len(entries)-1)
	case "k", "up":
		m.PlaylistCursor = clamp(m.PlaylistCursor-1, 0, len(entries)-1)
	}
	return m, nil
}

func (m *Model) nudgeVolume(delta int) {
	entries := m.State.Player.Entries()
	if len(entries) == 0 {
		return
	}
	e := entries[m.PlaylistCursor]
	if err := m.State.Player.SetVolume(m.PlaylistCursor, e.VolumePercent+delta); err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
	}
}

func (m *Model) chooseFolder(dir string) error {
	if err := m.State.ChooseFolder(dir); err != nil {
		return err
	}
	m.PlaylistCursor = 0
	return nil
}

func (m Model) submitFolder() (Model, tea.Cmd) {
	dir := strings.TrimSpace(m.promptInput.Value())
	m.closePrompt()
	if err := m.chooseFolder(dir); err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}
	n := len(m.State.Player.Entries())
	if n == 0 {
		m.Status = StatusBar{Text: "no audio files found"}
	} else {
		m.Status = StatusBar{Text: fmt.Sprintf("loaded %d tracks", n)}
	}
	return m, nil
}

func (m *Model) startSpinner() tea.Cmd {
	if m.spinnerActive || !m.State.Player.Playing() {
		return nil
	}
	m.spinnerActive = true
	return m.playingSpinner.Tick
}
