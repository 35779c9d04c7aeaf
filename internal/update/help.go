package update

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/sandeepkv93/temporizador/internal/views"
)

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	bindings := m.helpBindings()
	return views.RenderHelpPanel(views.HelpPanelData{
		Pane:     string(m.CurrentPane),
		Markdown: m.helpViewport.View(),
		HelpView: m.helpModel.View(helpKeyMap{
			short: bindings,
			full:  [][]key.Binding{bindings},
		}),
	})
}

// helpMarkdown lists global and pane bindings plus the palette commands.
func (m Model) helpMarkdown() string {
	var b strings.Builder
	b.WriteString("## Keys\n\n")
	for _, kb := range m.globalBindings() {
		b.WriteString(fmt.Sprintf("- `%s` %s\n", kb.Key, kb.Action))
	}
	b.WriteString(fmt.Sprintf("\n## %s\n\n", m.CurrentPane))
	for _, kb := range m.paneBindings() {
		b.WriteString(fmt.Sprintf("- `%s` %s\n", kb.Key, kb.Action))
	}
	b.WriteString("\n## Commands\n\n")
	for _, c := range []string{"add <text>", "folder <path>", "duration <minutes>", "volume <n> <percent>", "loop <n> on|off", "history [n|clear]"} {
		b.WriteString(fmt.Sprintf("- `/%s`\n", c))
	}
	return b.String()
}

func (m Model) globalBindings() []KeyBinding {
	return []KeyBinding{
		{Key: m.Keys.NextPane, Action: "next pane"},
		{Key: m.Keys.Palette, Action: "open command palette"},
		{Key: m.Keys.Help, Action: "toggle help panel"},
		{Key: m.Keys.Quit, Action: "quit app"},
	}
}

func (m Model) paneBindings() []KeyBinding {
	switch m.CurrentPane {
	case PaneTasks:
		return []KeyBinding{
			{Key: "a", Action: "add task"},
			{Key: "enter", Action: "edit task text"},
			{Key: "space", Action: "toggle done"},
			{Key: "x", Action: "delete task"},
			{Key: "j/k", Action: "move cursor"},
		}
	case PaneTimer:
		return []KeyBinding{
			{Key: "s", Action: "start timer"},
			{Key: "p/r", Action: "pause / resume"},
			{Key: "R", Action: "reset timer"},
			{Key: "e", Action: "edit minutes"},
		}
	case PanePlaylist:
		return []KeyBinding{
			{Key: "o", Action: "choose folder"},
			{Key: "P/S", Action: "play / stop"},
			{Key: "n/b", Action: "next / previous track"},
			{Key: "l", Action: "toggle loop"},
			{Key: "+/-", Action: "volume up / down"},
			{Key: "j/k", Action: "move cursor"},
		}
	default:
		return []KeyBinding{{Key: "-", Action: "no contextual bindings"}}
	}
}

func (m Model) helpBindings() []key.Binding {
	out := make([]key.Binding, 0, len(m.globalBindings())+len(m.paneBindings()))
	for _, kb := range m.globalBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	for _, kb := range m.paneBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	return out
}
