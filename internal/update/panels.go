package update

import (
	"github.com/sandeepkv93/temporizador/internal/model"
	"github.com/sandeepkv93/temporizador/internal/views"
)

func (m Model) renderCommandPalette() string {
	if !m.Palette.Active {
		return ""
	}
	return views.RenderCommandPalette(true, m.commandInput.View())
}

func (m Model) renderTasksView() string {
	tasks := m.State.Tasks.Tasks()
	rows := make([]views.TaskRowData, 0, len(tasks))
	for i, t := range tasks {
		rows = append(rows, views.TaskRowData{
			Text:     t.Text,
			Checked:  t.Checked,
			Selected: m.CurrentPane == PaneTasks && i == m.TaskCursor,
			Editing:  m.prompt == promptEditTask && t.ID == m.editingID,
		})
	}
	return views.RenderTasksPanel(views.TasksPanelData{
		Rows:       rows,
		EditorView: m.promptInput.View(),
	})
}

func (m Model) renderTimerView() string {
	t := m.State.Timer
	progress := t.Progress()
	prompt := ""
	if m.prompt == promptMinutes {
		prompt = m.promptInput.View()
	}
	return views.RenderTimerPanel(views.TimerPanelData{
		Clock:        model.FormatClock(t.RemainingSeconds),
		Phase:        string(t.Phase()),
		ProgressView: m.timerProgress.ViewAs(progress),
		ProgressPct:  int(progress * 100),
		Minutes:      t.TotalSeconds / 60,
		PromptView:   prompt,
	})
}

func (m Model) renderPlaylistView() string {
	player := m.State.Player
	nowPlaying := ""
	if e, ok := player.Current(); ok && player.Playing() {
		nowPlaying = e.Name()
	}
	prompt := ""
	if m.prompt == promptFolder {
		prompt = m.promptInput.View()
	}
	return views.RenderPlaylistPanel(views.PlaylistPanelData{
		Folder:      player.Folder(),
		TableView:   m.playlistTable.View(),
		Empty:       len(player.Entries()) == 0,
		NowPlaying:  nowPlaying,
		SpinnerView: m.playingSpinner.View(),
		PromptView:  prompt,
	})
}
