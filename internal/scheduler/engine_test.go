package scheduler

import (
	"errors"
	"testing"
	"time"
)

func TestEngineFiresRepeatingJobs(t *testing.T) {
	engine := NewEngine(16)
	engine.Start()
	defer engine.Stop()

	if err := engine.ScheduleRepeating("poll", 20*time.Millisecond); err != nil {
		t.Fatalf("schedule poll: %v", err)
	}

	for i := 0; i < 3; i++ {
		f := waitFire(t, engine.C(), time.Second)
		if f.JobID != "poll" {
			t.Fatalf("unexpected job id: %s", f.JobID)
		}
	}
}

func TestEngineOrdersByInterval(t *testing.T) {
	engine := NewEngine(16)
	engine.Start()
	defer engine.Stop()

	if err := engine.ScheduleRepeating("slow", 150*time.Millisecond); err != nil {
		t.Fatalf("schedule slow: %v", err)
	}
	if err := engine.ScheduleRepeating("fast", 20*time.Millisecond); err != nil {
		t.Fatalf("schedule fast: %v", err)
	}

	first := waitFire(t, engine.C(), time.Second)
	if first.JobID != "fast" {
		t.Fatalf("expected fast job first, got %s", first.JobID)
	}
}

func TestEngineCancelStopsFires(t *testing.T) {
	engine := NewEngine(16)
	engine.Start()
	defer engine.Stop()

	if err := engine.ScheduleRepeating("tick", 15*time.Millisecond); err != nil {
		t.Fatalf("schedule: %v", err)
	}
	waitFire(t, engine.C(), time.Second)
	if !engine.Cancel("tick") {
		t.Fatal("expected cancel to find job")
	}
	if engine.Cancel("tick") {
		t.Fatal("expected second cancel to report missing job")
	}

	// drain anything emitted before cancel landed
	drain := time.After(40 * time.Millisecond)
	for done := false; !done; {
		select {
		case <-engine.C():
		case <-drain:
			done = true
		}
	}
	select {
	case f := <-engine.C():
		t.Fatalf("unexpected fire after cancel: %+v", f)
	case <-time.After(60 * time.Millisecond):
	}
}

func TestScheduleValidatesInterval(t *testing.T) {
	engine := NewEngine(1)
	for _, d := range []time.Duration{0, -time.Second} {
		if err := engine.ScheduleRepeating("bad", d); !errors.Is(err, ErrInvalidInterval) {
			t.Fatalf("expected ErrInvalidInterval for %s, got %v", d, err)
		}
	}
}

func TestScheduleAfterStop(t *testing.T) {
	engine := NewEngine(1)
	engine.Start()
	engine.Stop()
	if err := engine.ScheduleRepeating("late", time.Second); !errors.Is(err, ErrStopped) {
		t.Fatalf("expected ErrStopped, got %v", err)
	}
	if _, ok := <-engine.C(); ok {
		t.Fatal("expected output channel closed after stop")
	}
}

func TestPopDueSkipsMissedFires(t *testing.T) {
	engine := NewEngine(1)
	base := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	engine.now = func() time.Time { return base }
	if err := engine.ScheduleRepeating("tick", time.Second); err != nil {
		t.Fatalf("schedule: %v", err)
	}

	late := base.Add(10 * time.Second)
	fires := engine.popDue(late)
	if len(fires) != 1 {
		t.Fatalf("expected a single fire after a stall, got %d", len(fires))
	}
	next, ok := engine.peek()
	if !ok || !next.Equal(late.Add(time.Second)) {
		t.Fatalf("expected next fire one interval after now, got %v", next)
	}
}

func TestRescheduleRestartsPhase(t *testing.T) {
	engine := NewEngine(1)
	base := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	engine.now = func() time.Time { return base }
	if err := engine.ScheduleRepeating("tick", time.Second); err != nil {
		t.Fatalf("schedule: %v", err)
	}

	later := base.Add(700 * time.Millisecond)
	engine.now = func() time.Time { return later }
	if err := engine.ScheduleRepeating("tick", time.Second); err != nil {
		t.Fatalf("reschedule: %v", err)
	}
	next, ok := engine.peek()
	if !ok || !next.Equal(later.Add(time.Second)) {
		t.Fatalf("expected next fire one interval after reschedule, got %v", next)
	}
	if len(engine.queue) != 1 {
		t.Fatalf("expected reschedule to replace the job, got %d queued", len(engine.queue))
	}
}

func waitFire(t *testing.T, ch <-chan Fire, timeout time.Duration) Fire {
	t.Helper()
	select {
	case f := <-ch:
		return f
	case <-time.After(timeout):
		t.Fatalf("timed out waiting for fire")
		return Fire{}
	}
}
