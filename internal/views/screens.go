package views

import (
	"fmt"
	"strings"
)

type TaskRowData struct {
	Text     string
	Checked  bool
	Selected bool
	Editing  bool
}

type TasksPanelData struct {
	Rows       []TaskRowData
	EditorView string
}

type TimerPanelData struct {
	Clock        string
	Phase        string
	ProgressView string
	ProgressPct  int
	Minutes      int
	PromptView   string
}

type PlaylistPanelData struct {
	Folder      string
	TableView   string
	Empty       bool
	NowPlaying  string
	SpinnerView string
	PromptView  string
}

type HelpPanelData struct {
	Pane     string
	Markdown string
	HelpView string
}

func RenderTasksPanel(data TasksPanelData) string {
	var b strings.Builder
	b.WriteString("actions: [a]add [enter]edit [space]toggle [x]delete [j/k]move\n")
	if len(data.Rows) == 0 {
		b.WriteString("(no tasks)")
		return b.String()
	}
	for _, row := range data.Rows {
		cursor := " "
		if row.Selected {
			cursor = ">"
		}
		box := "[ ]"
		if row.Checked {
			box = "[x]"
		}
		if row.Editing {
			b.WriteString(fmt.Sprintf("%s %s %s\n", cursor, box, data.EditorView))
			continue
		}
		text := row.Text
		if text == "" {
			text = "(empty)"
		}
		b.WriteString(fmt.Sprintf("%s %s %s\n", cursor, box, text))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func RenderTimerPanel(data TimerPanelData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("timer: %s  (%s, %dm)\n", data.Clock, strings.ToUpper(data.Phase), data.Minutes))
	b.WriteString(fmt.Sprintf("progress: %s %d%%\n", data.ProgressView, data.ProgressPct))
	b.WriteString("actions: [s]start [p]pause [r]resume [R]reset [e]minutes")
	if data.PromptView != "" {
		b.WriteString("\n" + data.PromptView)
	}
	return b.String()
}

func RenderPlaylistPanel(data PlaylistPanelData) string {
	var b strings.Builder
	folder := data.Folder
	if folder == "" {
		folder = "(none, press o)"
	}
	b.WriteString(fmt.Sprintf("folder: %s\n", folder))
	if data.PromptView != "" {
		b.WriteString(data.PromptView + "\n")
	}
	if data.NowPlaying != "" {
		b.WriteString(fmt.Sprintf("%s ▶ %s\n", data.SpinnerView, data.NowPlaying))
	} else {
		b.WriteString("stopped\n")
	}
	b.WriteString("actions: [o]folder [P]play [S]stop [n/b]next/prev [l]loop [+/-]volume\n")
	switch {
	case data.Folder != "" && data.Empty:
		b.WriteString("no audio files found")
	case data.Folder != "":
		b.WriteString(data.TableView)
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help (%s):\n%s\n\n%s",
		strings.ToLower(data.Pane),
		data.Markdown,
		data.HelpView,
	)
}

func RenderCompletionModal(minutes int) string {
	return fmt.Sprintf("Time's up!\n\n%d minute timer finished.\n\n[enter]/[esc] dismiss", minutes)
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: %s", input)
}
