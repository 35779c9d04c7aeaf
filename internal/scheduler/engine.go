package scheduler

import (
	"container/heap"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

var (
	ErrInvalidInterval = errors.New("scheduler: invalid interval")
	ErrStopped         = errors.New("scheduler: engine stopped")
)

type Fire struct {
	JobID string
	At    time.Time
}

type job struct {
	id       string
	interval time.Duration
	next     time.Time
	index    int
}

type jobQueue []*job

func (q jobQueue) Len() int { return len(q) }

func (q jobQueue) Less(i, j int) bool {
	return q[i].next.Before(q[j].next)
}

func (q jobQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *jobQueue) Push(x any) {
	item := x.(*job)
	item.index = len(*q)
	*q = append(*q, item)
}

func (q *jobQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*q = old[0 : n-1]
	return item
}

type Engine struct {
	mu      sync.Mutex
	queue   jobQueue
	jobs    map[string]*job
	now     func() time.Time
	out     chan Fire
	wakeup  chan struct{}
	stopCh  chan struct{}
	doneCh  chan struct{}
	started bool
	stopped bool
	dropped uint64
}

func NewEngine(bufferSize int) *Engine {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	return &Engine{
		queue:  make(jobQueue, 0),
		jobs:   make(map[string]*job),
		now:    time.Now,
		out:    make(chan Fire, bufferSize),
		wakeup: make(chan struct{}, 1),
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}
}

func (e *Engine) C() <-chan Fire {
	return e.out
}

func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.started {
		return
	}
	e.started = true
	heap.Init(&e.queue)
	go e.loop()
}

func (e *Engine) Stop() {
	e.mu.Lock()
	if !e.started || e.stopped {
		e.mu.Unlock()
		return
	}
	e.stopped = true
	close(e.stopCh)
	e.mu.Unlock()
	<-e.doneCh
}

// Re-scheduling an existing id restarts its phase from now.
func (e *Engine) ScheduleRepeating(id string, interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("%w: %s", ErrInvalidInterval, interval)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stopped {
		return ErrStopped
	}

	next := e.now().Add(interval)
	if existing, ok := e.jobs[id]; ok {
		existing.interval = interval
		existing.next = next
		heap.Fix(&e.queue, existing.index)
	} else {
		item := &job{id: id, interval: interval, next: next}
		e.jobs[id] = item
		heap.Push(&e.queue, item)
	}
	e.signalWakeup()
	return nil
}

func (e *Engine) Cancel(id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	item, ok := e.jobs[id]
	if !ok {
		return false
	}
	heap.Remove(&e.queue, item.index)
	delete(e.jobs, id)
	e.signalWakeup()
	return true
}

func (e *Engine) Dropped() uint64 {
	return atomic.LoadUint64(&e.dropped)
}

func (e *Engine) loop() {
	defer close(e.doneCh)
	defer close(e.out)

	var timer *time.Timer
	for {
		next, hasNext := e.peek()
		if !hasNext {
			select {
			case <-e.wakeup:
				continue
			case <-e.stopCh:
				return
			}
		}

		wait := next.Sub(e.now())
		if wait < 0 {
			wait = 0
		}
		timer = resetTimer(timer, wait)

		select {
		case <-timer.C:
			for _, f := range e.popDue(e.now()) {
				select {
				case e.out <- f:
				default:
					atomic.AddUint64(&e.dropped, 1)
				}
			}
		case <-e.wakeup:
			continue
		case <-e.stopCh:
			stopTimer(timer)
			return
		}
	}
}

func (e *Engine) signalWakeup() {
	select {
	case e.wakeup <- struct{}{}:
	default:
	}
}

func (e *Engine) peek() (time.Time, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.queue) == 0 {
		return time.Time{}, false
	}
	return e.queue[0].next, true
}

// popDue collects every due job and pushes each one interval past now, so a
// stalled engine does not burst through missed fires.
func (e *Engine) popDue(now time.Time) []Fire {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]Fire, 0)
	for len(e.queue) > 0 {
		head := e.queue[0]
		if head.next.After(now) {
			break
		}
		out = append(out, Fire{JobID: head.id, At: now})
		head.next = head.next.Add(head.interval)
		if !head.next.After(now) {
			head.next = now.Add(head.interval)
		}
		heap.Fix(&e.queue, 0)
	}
	return out
}

func resetTimer(timer *time.Timer, d time.Duration) *time.Timer {
	if timer == nil {
		return time.NewTimer(d)
	}
	stopTimer(timer)
	timer.Reset(d)
	return timer
}

func stopTimer(timer *time.Timer) {
	if timer == nil {
		return
	}
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
}
