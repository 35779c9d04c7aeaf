package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sandeepkv93/temporizador/internal/model"
	"github.com/sandeepkv93/temporizador/internal/playlist"
	"github.com/sandeepkv93/temporizador/internal/storage"
)

const DefaultHistoryLimit = 5

var (
	ErrInvalidFolder   = errors.New("app: invalid folder")
	ErrHistoryDisabled = errors.New("app: session history disabled")
)

// Notifier plays the looping completion sound.
type Notifier interface {
	PlayNotification(path string) error
	StopNotification()
}

type noopNotifier struct{}

func (noopNotifier) PlayNotification(string) error { return nil }
func (noopNotifier) StopNotification()             {}

type Deps struct {
	Store       *storage.ConfigStore
	Backend     playlist.Backend
	Notifier    Notifier
	History     storage.History
	Logger      *log.Logger
	FinishSound string
	Minutes     int
	Volume      int
	Now         func() time.Time
}

// State is the single application state, built once at startup and handed to
// the presentation layer.
type State struct {
	Tasks  *model.TaskList
	Timer  *model.Timer
	Player *playlist.Player

	store       *storage.ConfigStore
	notifier    Notifier
	history     storage.History
	logger      *log.Logger
	finishSound string
	now         func() time.Time
	restoring   bool
	runStarted  time.Time
	alarmOn     bool
}

func New(deps Deps) *State {
	logger := deps.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	notifier := deps.Notifier
	if notifier == nil {
		notifier = noopNotifier{}
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	s := &State{
		Tasks:       model.NewTaskList(),
		Timer:       model.NewTimer(deps.Minutes),
		Player:      playlist.NewPlayer(deps.Backend, playlist.Options{DefaultVolume: deps.Volume, Logger: logger}),
		store:       deps.Store,
		notifier:    notifier,
		history:     deps.History,
		logger:      logger,
		finishSound: deps.FinishSound,
		now:         now,
	}
	s.Tasks.Subscribe(s.persist)
	s.Player.Subscribe(s.persist)
	return s
}

// Snapshot is the document that matches current in-memory state.
func (s *State) Snapshot() storage.Document {
	tasks := s.Tasks.Tasks()
	doc := storage.Document{Tasks: make([]storage.TaskRecord, 0, len(tasks))}
	for _, t := range tasks {
		doc.Tasks = append(doc.Tasks, storage.TaskRecord{Text: t.Text, Checked: t.Checked})
	}
	if folder := s.Player.Folder(); folder != "" {
		doc.AudioFolder = &folder
	}
	return doc
}

func (s *State) persist() {
	if s.restoring || s.store == nil {
		return
	}
	if err := s.store.Save(s.Snapshot()); err != nil {
		s.logger.Printf("save config: %v", err)
	}
}

// Restore loads saved tasks and the audio folder. Problems are logged and the
// app starts from whatever could be recovered.
func (s *State) Restore() {
	if s.store == nil {
		return
	}
	doc, err := s.store.Load()
	if err != nil {
		s.logger.Printf("load config: %v", err)
	}

	s.restoring = true
	defer func() { s.restoring = false }()

	tasks := make([]model.Task, 0, len(doc.Tasks))
	for _, rec := range doc.Tasks {
		tasks = append(tasks, model.Task{Text: rec.Text, Checked: rec.Checked})
	}
	s.Tasks.Restore(tasks)

	folder := doc.Folder()
	if folder == "" || !isDir(folder) {
		return
	}
	if err := s.Player.LoadFolder(folder); err != nil {
		s.logger.Printf("restore playlist: %v", err)
	}
}

// ChooseFolder validates dir before touching the playlist; an invalid choice
// leaves everything as it was.
func (s *State) ChooseFolder(dir string) error {
	dir = strings.TrimSpace(dir)
	if dir == "" || !isDir(dir) {
		return fmt.Errorf("%w: %q", ErrInvalidFolder, dir)
	}
	if err := s.Player.LoadFolder(dir); err != nil {
		s.logger.Printf("load playlist: %v", err)
		return err
	}
	return nil
}

func (s *State) StartTimer() bool {
	if !s.Timer.Start() {
		return false
	}
	if s.Timer.ElapsedSeconds() == 0 {
		s.runStarted = s.now()
	}
	return true
}

func (s *State) ResetTimer() {
	s.recordAbandoned()
	s.Timer.Reset()
}

func (s *State) SetDuration(minutes int) error {
	if minutes < 1 {
		return s.Timer.SetDuration(minutes)
	}
	s.recordAbandoned()
	return s.Timer.SetDuration(minutes)
}

// OnTimerTick advances the countdown by one second and reports whether the
// run just finished.
func (s *State) OnTimerTick() bool {
	res := s.Timer.Tick()
	if !res.Finished {
		return false
	}
	s.record(storage.OutcomeCompleted)
	s.startAlarm()
	return true
}

func (s *State) AlarmActive() bool {
	return s.alarmOn
}

// DismissCompletion silences the completion sound.
func (s *State) DismissCompletion() {
	if !s.alarmOn {
		return
	}
	s.alarmOn = false
	s.notifier.StopNotification()
}

func (s *State) OnPlaylistPoll() bool {
	return s.Player.Poll()
}

func (s *State) CompletedToday(ctx context.Context) (int, error) {
	if s.history == nil {
		return 0, nil
	}
	now := s.now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return s.history.CountCompleted(ctx, midnight)
}

// RecentSessions returns up to limit recorded runs, newest first.
func (s *State) RecentSessions(ctx context.Context, limit int) ([]storage.Session, error) {
	if s.history == nil {
		return nil, ErrHistoryDisabled
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return s.history.ListSessions(ctx, storage.SessionFilter{Limit: limit})
}

func (s *State) ClearHistory(ctx context.Context) error {
	if s.history == nil {
		return ErrHistoryDisabled
	}
	return s.history.Clear(ctx)
}

func (s *State) startAlarm() {
	s.alarmOn = true
	if s.finishSound == "" {
		return
	}
	if err := s.notifier.PlayNotification(s.finishSound); err != nil {
		s.logger.Printf("play completion sound: %v", err)
	}
}

func (s *State) recordAbandoned() {
	if s.Timer.ElapsedSeconds() <= 0 || s.Timer.RemainingSeconds <= 0 {
		return
	}
	s.record(storage.OutcomeReset)
}

func (s *State) record(outcome storage.SessionOutcome) {
	if s.history == nil {
		return
	}
	ended := s.now()
	started := s.runStarted
	if started.IsZero() {
		started = ended.Add(-time.Duration(s.Timer.ElapsedSeconds()) * time.Second)
	}
	err := s.history.RecordSession(context.Background(), storage.Session{
		ID:             uuid.NewString(),
		TotalSeconds:   s.Timer.TotalSeconds,
		ElapsedSeconds: s.Timer.ElapsedSeconds(),
		Outcome:        outcome,
		StartedAt:      started,
		EndedAt:        ended,
	})
	if err != nil {
		s.logger.Printf("record session: %v", err)
	}
	s.runStarted = time.Time{}
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
