package model

import (
	"errors"
	"fmt"
)

var ErrInvalidDuration = errors.New("model: invalid duration")

const DefaultTimerMinutes = 25

type TimerPhase string

const (
	TimerPhaseIdle     TimerPhase = "idle"
	TimerPhaseRunning  TimerPhase = "running"
	TimerPhasePaused   TimerPhase = "paused"
	TimerPhaseFinished TimerPhase = "finished"
)

type Timer struct {
	TotalSeconds     int
	RemainingSeconds int
	Running          bool
	Paused           bool
	finished         bool
}

type TickResult struct {
	Decremented bool
	Finished    bool
}

func NewTimer(minutes int) *Timer {
	if minutes < 1 {
		minutes = DefaultTimerMinutes
	}
	total := minutes * 60
	return &Timer{TotalSeconds: total, RemainingSeconds: total}
}

func (t *Timer) Phase() TimerPhase {
	switch {
	case t.Running && t.Paused:
		return TimerPhasePaused
	case t.Running:
		return TimerPhaseRunning
	case t.finished:
		return TimerPhaseFinished
	default:
		return TimerPhaseIdle
	}
}

func (t *Timer) Start() bool {
	if t.Running {
		return false
	}
	if t.RemainingSeconds <= 0 {
		t.RemainingSeconds = t.TotalSeconds
	}
	t.finished = false
	t.Running = true
	t.Paused = false
	return true
}

func (t *Timer) Pause() bool {
	if !t.Running || t.Paused {
		return false
	}
	t.Paused = true
	return true
}

func (t *Timer) Resume() bool {
	if !t.Running || !t.Paused {
		return false
	}
	t.Paused = false
	return true
}

func (t *Timer) Reset() {
	t.Running = false
	t.Paused = false
	t.finished = false
	t.RemainingSeconds = t.TotalSeconds
}

func (t *Timer) SetDuration(minutes int) error {
	if minutes < 1 {
		return fmt.Errorf("%w: %d minutes", ErrInvalidDuration, minutes)
	}
	t.Running = false
	t.Paused = false
	t.finished = false
	t.TotalSeconds = minutes * 60
	t.RemainingSeconds = t.TotalSeconds
	return nil
}

// The tick that reaches zero is the only one reporting Finished.
func (t *Timer) Tick() TickResult {
	if !t.Running || t.Paused || t.RemainingSeconds <= 0 {
		return TickResult{}
	}
	t.RemainingSeconds--
	if t.RemainingSeconds > 0 {
		return TickResult{Decremented: true}
	}
	t.Running = false
	t.Paused = false
	t.finished = true
	return TickResult{Decremented: true, Finished: true}
}

func (t *Timer) ElapsedSeconds() int {
	return t.TotalSeconds - t.RemainingSeconds
}

func (t *Timer) Progress() float64 {
	if t.TotalSeconds <= 0 {
		return 0
	}
	p := float64(t.ElapsedSeconds()) / float64(t.TotalSeconds)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

func FormatClock(totalSec int) string {
	if totalSec < 0 {
		totalSec = 0
	}
	mins, secs := totalSec/60, totalSec%60
	hours, mins := mins/60, mins%60
	days, hours := hours/24, hours%24
	switch {
	case days > 0:
		return fmt.Sprintf("%dd %02d:%02d:%02d", days, hours, mins, secs)
	case hours > 0:
		return fmt.Sprintf("%02d:%02d:%02d", hours, mins, secs)
	default:
		return fmt.Sprintf("%02d:%02d", mins, secs)
	}
}
