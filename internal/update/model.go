package update

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/temporizador/internal/app"
	"github.com/sandeepkv93/temporizador/internal/scheduler"
)

const (
	JobPlaylistPoll = "playlist-poll"
	JobTimerTick    = "timer-tick"
)

type Pane string

const (
	PaneTasks    Pane = "Tasks"
	PaneTimer    Pane = "Timer"
	PanePlaylist Pane = "Playlist"
)

var paneOrder = []Pane{PaneTasks, PaneTimer, PanePlaylist}

type promptKind int

const (
	promptNone promptKind = iota
	promptEditTask
	promptMinutes
	promptFolder
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	NextPane string
	Palette  string
	Help     string
	Quit     string
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type Model struct {
	State          *app.State
	Scheduler      *scheduler.Engine
	CurrentPane    Pane
	TaskCursor     int
	PlaylistCursor int
	Palette        CommandPaletteState
	HelpVisible    bool
	CompletedToday int
	Status         StatusBar
	Keys           GlobalKeyMap
	Quitting       bool
	LastError      error

	prompt         promptKind
	editingID      string
	promptInput    textinput.Model
	commandInput   textinput.Model
	playlistTable  table.Model
	timerProgress  progress.Model
	playingSpinner spinner.Model
	spinnerActive  bool
	helpModel      help.Model
	helpViewport   viewport.Model
}

// PollMsg asks the playlist to check whether the current track has ended.
type PollMsg struct {
	At time.Time
}

type TimerTickMsg struct {
	At time.Time
}

// FireMsg carries scheduler fires for jobs the UI does not know about.
type FireMsg struct {
	Fire scheduler.Fire
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

type StatsMsg struct {
	CompletedToday int
	Err            error
}

func NewModel(state *app.State, engine *scheduler.Engine) Model {
	m := Model{
		State:       state,
		Scheduler:   engine,
		CurrentPane: PaneTasks,
		Keys: GlobalKeyMap{
			NextPane: "tab",
			Palette:  "/",
			Help:     "?",
			Quit:     "q",
		},
	}
	m.initBubbleComponents()
	m.syncBubbleData()
	return m
}

// ScheduleJobs registers the periodic playlist poll and the one-second timer
// tick that drive the UI.
func ScheduleJobs(engine *scheduler.Engine, cfg RuntimeConfig) error {
	if err := engine.ScheduleRepeating(JobPlaylistPoll, cfg.PollInterval()); err != nil {
		return fmt.Errorf("schedule playlist poll: %w", err)
	}
	if err := engine.ScheduleRepeating(JobTimerTick, time.Second); err != nil {
		return fmt.Errorf("schedule timer tick: %w", err)
	}
	return nil
}

func (m *Model) initBubbleComponents() {
	m.promptInput = textinput.New()
	m.promptInput.CharLimit = 512
	m.promptInput.Width = 48

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 512
	m.commandInput.Width = 48

	cols := []table.Column{
		{Title: "", Width: 2},
		{Title: "#", Width: 3},
		{Title: "Track", Width: 32},
		{Title: "Loop", Width: 5},
		{Title: "Vol", Width: 5},
	}
	m.playlistTable = table.New(table.WithColumns(cols), table.WithRows([]table.Row{}), table.WithFocused(true), table.WithHeight(8))

	m.timerProgress = progress.New(progress.WithDefaultGradient(), progress.WithWidth(40))

	m.playingSpinner = spinner.New()
	m.playingSpinner.Spinner = spinner.Dot

	m.helpModel = help.New()
	m.helpViewport = viewport.New(50, 16)
}

func (m *Model) syncBubbleData() {
	if m.State == nil {
		return
	}
	m.TaskCursor = clamp(m.TaskCursor, 0, m.State.Tasks.Len()-1)

	entries := m.State.Player.Entries()
	st := m.State.Player.State()
	m.PlaylistCursor = clamp(m.PlaylistCursor, 0, len(entries)-1)
	rows := make([]table.Row, 0, len(entries))
	for i, e := range entries {
		mark := ""
		if st.Playing && st.Current == i {
			mark = "▶"
		}
		loop := "off"
		if e.Loop {
			loop = "on"
		}
		rows = append(rows, table.Row{mark, fmt.Sprintf("%d", i+1), e.Name(), loop, fmt.Sprintf("%d%%", e.VolumePercent)})
	}
	m.playlistTable.SetRows(rows)
	if len(rows) > 0 {
		m.playlistTable.SetCursor(m.PlaylistCursor)
	}

	if m.Palette.Active {
		m.commandInput.Focus()
	}
	_ = m.timerProgress.SetPercent(m.State.Timer.Progress())
}

func waitForFireCmd(ch <-chan scheduler.Fire) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		f, ok := <-ch
		if !ok {
			return nil
		}
		switch f.JobID {
		case JobPlaylistPoll:
			return PollMsg{At: f.At}
		case JobTimerTick:
			return TimerTickMsg{At: f.At}
		default:
			return FireMsg{Fire: f}
		}
	}
}

func statsCmd(state *app.State) tea.Cmd {
	if state == nil {
		return nil
	}
	return func() tea.Msg {
		n, err := state.CompletedToday(context.Background())
		return StatsMsg{CompletedToday: n, Err: err}
	}
}
