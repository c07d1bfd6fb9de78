package schedule

import (
	"sync"
	"time"
)

// Manual is a deterministic scheduler driven by Advance. Jobs run on the
// caller's goroutine, in due-time order, ties broken by scheduling order.
type Manual struct {
	mu    sync.Mutex
	now   time.Duration
	seq   int
	tasks []*manualTask
}

var _ Scheduler = (*Manual)(nil)

// NewManual returns a scheduler whose clock starts at zero.
func NewManual() *Manual {
	return &Manual{}
}

type manualTask struct {
	owner    *Manual
	seq      int
	interval time.Duration
	due      time.Duration
	fn       func()
	stopped  bool
}

// Every schedules fn to run every interval of virtual time from now.
func (m *Manual) Every(interval time.Duration, fn func()) Task {
	if fn == nil || interval <= 0 {
		return stoppedTask{}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	task := &manualTask{
		owner:    m,
		seq:      m.seq,
		interval: interval,
		due:      m.now + interval,
		fn:       fn,
	}
	m.tasks = append(m.tasks, task)
	return task
}

func (t *manualTask) Stop() {
	t.owner.mu.Lock()
	defer t.owner.mu.Unlock()
	if t.stopped {
		return
	}
	t.stopped = true
	live := t.owner.tasks[:0]
	for _, task := range t.owner.tasks {
		if task != t {
			live = append(live, task)
		}
	}
	t.owner.tasks = live
}

// Advance moves the clock forward by d, firing every job that falls due and
// returning how many runs happened.
func (m *Manual) Advance(d time.Duration) int {
	m.mu.Lock()
	target := m.now + d
	fired := 0
	for {
		next := m.nextDue(target)
		if next == nil {
			break
		}
		m.now = next.due
		next.due += next.interval
		fn := next.fn
		m.mu.Unlock()
		fn()
		fired++
		m.mu.Lock()
	}
	m.now = target
	m.mu.Unlock()
	return fired
}

func (m *Manual) nextDue(limit time.Duration) *manualTask {
	var best *manualTask
	for _, task := range m.tasks {
		if task.stopped || task.due > limit {
			continue
		}
		if best == nil || task.due < best.due || (task.due == best.due && task.seq < best.seq) {
			best = task
		}
	}
	return best
}

// Pending reports how many jobs are still scheduled.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tasks)
}

// Now returns the virtual time elapsed since construction.
func (m *Manual) Now() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}
