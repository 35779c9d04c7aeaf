package update

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/temporizador/internal/app"
	"github.com/sandeepkv93/temporizador/internal/playlist"
	"github.com/sandeepkv93/temporizador/internal/scheduler"
	"github.com/sandeepkv93/temporizador/internal/storage"
)

type fakeSound struct{ path string }

func (s fakeSound) Path() string { return s.path }

type fakeChannel struct{ busy bool }

func (c *fakeChannel) Busy() bool        { return c.busy }
func (c *fakeChannel) Stop()             { c.busy = false }
func (c *fakeChannel) SetVolume(float64) {}

type fakeBackend struct{ last *fakeChannel }

func (b *fakeBackend) Decode(path string) (playlist.Sound, error) {
	return fakeSound{path: path}, nil
}

func (b *fakeBackend) Play(playlist.Sound, int, float64) (playlist.Channel, error) {
	if b.last != nil {
		b.last.Stop()
	}
	b.last = &fakeChannel{busy: true}
	return b.last, nil
}

func newTestModel(t *testing.T) (Model, *storage.ConfigStore, *fakeBackend) {
	t.Helper()
	store := storage.NewConfigStore(filepath.Join(t.TempDir(), storage.ConfigFileName))
	backend := &fakeBackend{}
	state := app.New(app.Deps{Store: store, Backend: backend, Minutes: 25, Volume: 70})
	return NewModel(state, nil), store, backend
}

func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		updated, _ := m.Update(msg)
		m = updated.(Model)
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewModelDefaults(t *testing.T) {
	m, _, _ := newTestModel(t)
	if m.CurrentPane != PaneTasks {
		t.Fatalf("expected default pane %q, got %q", PaneTasks, m.CurrentPane)
	}
	if m.Keys.Quit != "q" || m.Keys.NextPane != "tab" {
		t.Fatalf("unexpected keys: %+v", m.Keys)
	}
}

func TestTabCyclesPanes(t *testing.T) {
	m, _, _ := newTestModel(t)
	tab := tea.KeyMsg{Type: tea.KeyTab}
	want := []Pane{PaneTimer, PanePlaylist, PaneTasks}
	for _, pane := range want {
		m = send(t, m, tab)
		if m.CurrentPane != pane {
			t.Fatalf("expected pane %q, got %q", pane, m.CurrentPane)
		}
	}
}

func TestTaskEditWritesEveryKeystroke(t *testing.T) {
	m, store, _ := newTestModel(t)
	m = send(t, m, runes("a"))
	if m.State.Tasks.Len() != 1 || m.prompt != promptEditTask {
		t.Fatalf("expected new task in edit mode, len=%d prompt=%d", m.State.Tasks.Len(), m.prompt)
	}

	typed := ""
	for _, r := range "milk" {
		m = send(t, m, runes(string(r)))
		typed += string(r)
		doc, err := store.Load()
		if err != nil {
			t.Fatalf("load: %v", err)
		}
		if len(doc.Tasks) != 1 || doc.Tasks[0].Text != typed {
			t.Fatalf("expected persisted text %q, got %#v", typed, doc.Tasks)
		}
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	if got := m.State.Tasks.Tasks()[0].Text; got != "mil" {
		t.Fatalf("expected backspace to edit text, got %q", got)
	}
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.prompt != promptNone {
		t.Fatal("expected editor closed on enter")
	}
}

func TestToggleAndDeleteTask(t *testing.T) {
	m, store, _ := newTestModel(t)
	m.State.Tasks.Add("one", false)
	m.State.Tasks.Add("two", false)

	m = send(t, m, runes("j"), tea.KeyMsg{Type: tea.KeySpace})
	tasks := m.State.Tasks.Tasks()
	if tasks[0].Checked || !tasks[1].Checked {
		t.Fatalf("expected second task checked, got %#v", tasks)
	}

	m = send(t, m, runes("x"))
	if m.State.Tasks.Len() != 1 || m.TaskCursor != 0 {
		t.Fatalf("expected one task and cursor 0, len=%d cursor=%d", m.State.Tasks.Len(), m.TaskCursor)
	}
	doc, _ := store.Load()
	if len(doc.Tasks) != 1 || doc.Tasks[0].Text != "one" {
		t.Fatalf("unexpected persisted tasks: %#v", doc.Tasks)
	}
}

func TestTimerCompletionModal(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = send(t, m, runes("/"), runes("duration 1"), tea.KeyMsg{Type: tea.KeyEnter})
	if m.State.Timer.TotalSeconds != 60 {
		t.Fatalf("expected 60s timer, got %d (status %+v)", m.State.Timer.TotalSeconds, m.Status)
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab}, runes("s"))
	for i := 0; i < 60; i++ {
		m = send(t, m, TimerTickMsg{})
	}
	if !m.State.AlarmActive() {
		t.Fatal("expected completion alarm")
	}
	if !strings.Contains(m.View(), "Time's up!") {
		t.Fatal("expected completion modal in view")
	}

	m = send(t, m, runes("q"))
	if m.Quitting {
		t.Fatal("expected keys other than enter/esc to be ignored by the modal")
	}
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.State.AlarmActive() || strings.Contains(m.View(), "Time's up!") {
		t.Fatal("expected modal dismissed")
	}
}

func TestMinutesPromptRejectsZero(t *testing.T) {
	m, _, _ := newTestModel(t)
	back := tea.KeyMsg{Type: tea.KeyBackspace}
	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab}, runes("e"), back, back, runes("x"), runes("0"), tea.KeyMsg{Type: tea.KeyEnter})
	if !m.Status.IsError {
		t.Fatalf("expected error status, got %+v", m.Status)
	}
	if m.State.Timer.TotalSeconds != 25*60 {
		t.Fatalf("expected duration unchanged, got %d", m.State.Timer.TotalSeconds)
	}
}

func TestTimerPauseResumeKeys(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab}, runes("s"), TimerTickMsg{}, runes("p"), TimerTickMsg{})
	if m.State.Timer.RemainingSeconds != 25*60-1 {
		t.Fatalf("expected paused timer to hold, got %d", m.State.Timer.RemainingSeconds)
	}
	m = send(t, m, runes("r"), TimerTickMsg{}, runes("R"))
	if m.State.Timer.RemainingSeconds != 25*60 || m.State.Timer.Running {
		t.Fatalf("expected reset timer, got %+v", *m.State.Timer)
	}
}

func TestTimerStartWaitsFullSecondForFirstTick(t *testing.T) {
	m, _, _ := newTestModel(t)
	engine := scheduler.NewEngine(4)
	engine.Start()
	t.Cleanup(engine.Stop)
	cfg := DefaultRuntimeConfig()
	cfg.PlaylistPollMS = 60000
	if err := ScheduleJobs(engine, cfg); err != nil {
		t.Fatalf("schedule jobs: %v", err)
	}
	m.Scheduler = engine

	time.Sleep(600 * time.Millisecond)
	pressed := time.Now()
	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab}, runes("s"))
	if !m.State.Timer.Running {
		t.Fatal("expected timer running")
	}

	select {
	case f := <-engine.C():
		if f.JobID != JobTimerTick {
			t.Fatalf("unexpected job %q", f.JobID)
		}
		if gap := f.At.Sub(pressed); gap < 900*time.Millisecond {
			t.Fatalf("first tick %v after start, expected about one second", gap)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for timer tick")
	}
}

func TestTimerStartReportsStoppedScheduler(t *testing.T) {
	m, _, _ := newTestModel(t)
	engine := scheduler.NewEngine(1)
	engine.Start()
	engine.Stop()
	m.Scheduler = engine

	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab}, runes("s"))
	if !m.State.Timer.Running {
		t.Fatal("expected timer running")
	}
	if !m.Status.IsError || !strings.Contains(m.Status.Text, "engine stopped") {
		t.Fatalf("expected tick scheduling error, got %+v", m.Status)
	}
}

func TestPlaylistFolderPromptAndPlayback(t *testing.T) {
	m, store, backend := newTestModel(t)
	dir := t.TempDir()
	for _, name := range []string{"b.mp3", "a.wav", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}

	tab := tea.KeyMsg{Type: tea.KeyTab}
	m = send(t, m, tab, tab, runes("o"), runes(dir), tea.KeyMsg{Type: tea.KeyEnter})
	if n := len(m.State.Player.Entries()); n != 2 {
		t.Fatalf("expected 2 tracks, got %d (status %+v)", n, m.Status)
	}
	doc, _ := store.Load()
	if doc.Folder() != dir {
		t.Fatalf("expected folder persisted, got %q", doc.Folder())
	}

	updated, cmd := m.Update(runes("P"))
	m = updated.(Model)
	if !m.State.Player.Playing() || cmd == nil {
		t.Fatal("expected playback started with spinner")
	}
	if !strings.Contains(m.View(), "▶ a.wav") {
		t.Fatalf("expected now playing label in view: %q", m.View())
	}

	backend.last.busy = false
	m = send(t, m, PollMsg{})
	if cur, ok := m.State.Player.Current(); !ok || cur.Name() != "b.mp3" {
		t.Fatalf("expected advance to b.mp3, got %+v %v", cur, ok)
	}

	m = send(t, m, runes("+"), runes("l"))
	e := m.State.Player.Entries()[0]
	if e.VolumePercent != 75 || !e.Loop {
		t.Fatalf("expected row volume 75 and loop on, got %+v", e)
	}

	m = send(t, m, runes("S"))
	if m.State.Player.Playing() {
		t.Fatal("expected playback stopped")
	}
}

func TestEmptyFolderMessage(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = send(t, m, runes("/"), runes("folder "+t.TempDir()), tea.KeyMsg{Type: tea.KeyEnter})
	if m.Status.IsError {
		t.Fatalf("unexpected error: %+v", m.Status)
	}
	if !strings.Contains(m.View(), "no audio files found") {
		t.Fatal("expected empty folder message in view")
	}
}

func TestPaletteReportsCommandErrors(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = send(t, m, runes("/"), runes("volume 9 50"), tea.KeyMsg{Type: tea.KeyEnter})
	if !m.Status.IsError || !strings.Contains(m.Status.Text, "no such track") {
		t.Fatalf("expected track error, got %+v", m.Status)
	}
	if m.Palette.Active {
		t.Fatal("expected palette closed after execute")
	}

	m = send(t, m, runes("/"), runes("folder /definitely/not/here"), tea.KeyMsg{Type: tea.KeyEnter})
	if !m.Status.IsError || !strings.Contains(m.Status.Text, "invalid_argument") {
		t.Fatalf("expected invalid folder error, got %+v", m.Status)
	}
}

func TestPaletteAddTask(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = send(t, m, runes("/"), runes("add call mom"), tea.KeyMsg{Type: tea.KeyEnter})
	tasks := m.State.Tasks.Tasks()
	if len(tasks) != 1 || tasks[0].Text != "call mom" || tasks[0].Checked {
		t.Fatalf("unexpected tasks: %#v", tasks)
	}
}

func TestHelpToggle(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = send(t, m, runes("?"))
	if !m.HelpVisible || !strings.Contains(m.View(), "help (tasks)") {
		t.Fatal("expected help panel visible")
	}
	m = send(t, m, runes("?"))
	if m.HelpVisible {
		t.Fatal("expected help hidden")
	}
}

func TestQuitKey(t *testing.T) {
	m, _, _ := newTestModel(t)
	updated, cmd := m.Update(runes("q"))
	next := updated.(Model)
	if !next.Quitting {
		t.Fatal("expected quitting flag true")
	}
	if cmd == nil {
		t.Fatal("expected quit command")
	}
}

func TestStatsMsgUpdatesHeader(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = send(t, m, StatsMsg{CompletedToday: 3})
	if !strings.Contains(m.View(), "completed today: 3") {
		t.Fatal("expected completed count in header")
	}
}

func TestPaletteHistoryListsAndClears(t *testing.T) {
	store := storage.NewConfigStore(filepath.Join(t.TempDir(), storage.ConfigFileName))
	history, err := storage.OpenHistory(filepath.Join(t.TempDir(), storage.HistoryFileName))
	if err != nil {
		t.Fatalf("open history: %v", err)
	}
	t.Cleanup(func() { _ = history.Close() })
	state := app.New(app.Deps{Store: store, Backend: &fakeBackend{}, History: history, Minutes: 1})
	m := NewModel(state, nil)
	enter := tea.KeyMsg{Type: tea.KeyEnter}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab}, runes("s"), TimerTickMsg{}, TimerTickMsg{}, runes("R"))
	m = send(t, m, runes("/"), runes("history"), enter)
	if m.Status.IsError || !strings.Contains(m.Status.Text, "reset 00:02/01:00") {
		t.Fatalf("expected reset session listed, got %+v", m.Status)
	}

	m = send(t, m, runes("/"), runes("history clear"), enter)
	if m.Status.Text != "session history cleared" {
		t.Fatalf("expected clear confirmation, got %+v", m.Status)
	}
	m = send(t, m, runes("/"), runes("history 3"), enter)
	if m.Status.Text != "no sessions recorded" {
		t.Fatalf("expected empty history, got %+v", m.Status)
	}
}

func TestPaletteHistoryDisabled(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = send(t, m, runes("/"), runes("history"), tea.KeyMsg{Type: tea.KeyEnter})
	if !m.Status.IsError || !strings.Contains(m.Status.Text, "disabled") {
		t.Fatalf("expected disabled history error, got %+v", m.Status)
	}
}
