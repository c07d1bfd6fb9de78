package schedule

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Task is a handle to a repeating job. Stop is idempotent and safe to call
// from within the job itself.
type Task interface {
	Stop()
}

// Scheduler starts repeating jobs.
type Scheduler interface {
	Every(interval time.Duration, fn func()) Task
}

// Cron runs repeating jobs on a robfig/cron runner. Every job is its own
// entry, so stopping one task never affects another. Intervals are kept to
// the nanosecond; the first run is one full interval after Every.
type Cron struct {
	once   sync.Once
	runner *cron.Cron
}

var _ Scheduler = (*Cron)(nil)

// NewCron constructs a scheduler. The runner starts lazily on the first Every
// call.
func NewCron(options ...cron.Option) *Cron {
	return &Cron{runner: cron.New(options...)}
}

// Every schedules fn at a constant interval measured from now.
func (c *Cron) Every(interval time.Duration, fn func()) Task {
	if fn == nil || interval <= 0 {
		return stoppedTask{}
	}
	c.once.Do(c.runner.Start)
	id := c.runner.Schedule(constantDelay(interval), cron.FuncJob(fn))
	return &cronTask{runner: c.runner, id: id}
}

// Entries reports how many jobs are currently scheduled.
func (c *Cron) Entries() int {
	return len(c.runner.Entries())
}

// Close stops the runner. The returned context is done once running jobs
// have completed.
func (c *Cron) Close() context.Context {
	return c.runner.Stop()
}

// constantDelay fires every interval after the previous activation. Unlike
// cron.Every it does not truncate to whole seconds or align to the clock.
type constantDelay time.Duration

func (d constantDelay) Next(t time.Time) time.Time {
	return t.Add(time.Duration(d))
}

type cronTask struct {
	once   sync.Once
	runner *cron.Cron
	id     cron.EntryID
}

func (t *cronTask) Stop() {
	t.once.Do(func() {
		t.runner.Remove(t.id)
	})
}

type stoppedTask struct{}

func (stoppedTask) Stop() {}

var (
	sharedOnce sync.Once
	shared     *Cron
)

// Shared returns a process-wide cron scheduler used when callers do not
// supply their own.
func Shared() *Cron {
	sharedOnce.Do(func() {
		shared = NewCron()
	})
	return shared
}
