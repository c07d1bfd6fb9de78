package carousel

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/goliatone/go-cardkit/pkg/box"
	"github.com/goliatone/go-cardkit/pkg/schedule"
)

// Opacity applied to navigation buttons.
const (
	disabledOpacity = "0.3"
	enabledOpacity  = "1"
)

// Controls are the rendered boxes a Navigator keeps in sync. Any of them may
// be absent.
type Controls struct {
	Wrappers   []*box.Box
	Indicators []*box.Box
	Prev       *box.Box
	Next       *box.Box
}

// Navigator is the page state machine of one rendered carousel. Timer ticks
// arrive from the scheduler, so every transition holds the mutex; a tick
// scheduled before the latest restart is ignored.
type Navigator struct {
	mu sync.Mutex

	pageCount int
	current   int
	loop      bool
	interval  time.Duration
	scheduler schedule.Scheduler
	controls  Controls
	onChange  func(index int)
	logger    *log.Logger

	task       schedule.Task
	generation uint64
	closed     bool
}

// NavigatorOption customises a Navigator.
type NavigatorOption func(*Navigator)

// WithLoop lets Next and Prev wrap around.
func WithLoop(loop bool) NavigatorOption {
	return func(n *Navigator) {
		n.loop = loop
	}
}

// WithAutoAdvance enables timed advancing on scheduler.
func WithAutoAdvance(interval time.Duration, scheduler schedule.Scheduler) NavigatorOption {
	return func(n *Navigator) {
		n.interval = interval
		n.scheduler = scheduler
	}
}

// WithControls binds the rendered boxes to the navigator.
func WithControls(controls Controls) NavigatorOption {
	return func(n *Navigator) {
		n.controls = controls
	}
}

// WithPageChange registers a callback invoked with the new index after every
// successful transition. It runs with the navigator locked and must not call
// back into it.
func WithPageChange(fn func(index int)) NavigatorOption {
	return func(n *Navigator) {
		n.onChange = fn
	}
}

// WithNavigatorLogger overrides the debug logger.
func WithNavigatorLogger(logger *log.Logger) NavigatorOption {
	return func(n *Navigator) {
		if logger != nil {
			n.logger = logger
		}
	}
}

// NewNavigator creates a navigator positioned at current. current is not
// clamped; an out-of-range index leaves no page visible until a transition.
func NewNavigator(pageCount, current int, options ...NavigatorOption) *Navigator {
	n := &Navigator{
		pageCount: pageCount,
		current:   current,
		logger:    log.Default(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(n)
	}
	n.mu.Lock()
	n.syncLocked()
	n.mu.Unlock()
	return n
}

// Start begins auto-advance when an interval is configured and there is more
// than one page.
func (n *Navigator) Start() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed {
		return
	}
	n.startLocked()
}

// Current returns the current page index.
func (n *Navigator) Current() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}

// PageCount returns the number of pages.
func (n *Navigator) PageCount() int {
	return n.pageCount
}

// Loop reports whether navigation wraps.
func (n *Navigator) Loop() bool {
	return n.loop
}

// TimerActive reports whether an auto-advance task is outstanding.
func (n *Navigator) TimerActive() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.task != nil
}

// GoTo shows page index. Out-of-range indexes are ignored. A successful move
// restarts the auto-advance clock.
func (n *Navigator) GoTo(index int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.goToLocked(index)
}

// Next moves forward one page, wrapping to the first page when looping.
func (n *Navigator) Next() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.nextLocked()
}

// Prev moves back one page, wrapping to the last page when looping.
func (n *Navigator) Prev() {
	n.mu.Lock()
	defer n.mu.Unlock()
	index := n.current - 1
	if index < 0 {
		if !n.loop {
			return
		}
		index = n.pageCount - 1
	}
	n.goToLocked(index)
}

// StopAutoAdvance cancels the auto-advance task. Safe to call at any time.
func (n *Navigator) StopAutoAdvance() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.stopLocked()
}

// Close stops auto-advance for good. Later transitions are ignored.
func (n *Navigator) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.stopLocked()
	n.closed = true
}

func (n *Navigator) nextLocked() {
	index := n.current + 1
	if index >= n.pageCount {
		if !n.loop {
			return
		}
		index = 0
	}
	n.goToLocked(index)
}

func (n *Navigator) goToLocked(index int) {
	if n.closed || index < 0 || index >= n.pageCount {
		return
	}
	n.stopLocked()
	n.current = index
	n.syncLocked()
	if n.onChange != nil {
		n.onChange(index)
	}
	n.startLocked()
}

func (n *Navigator) startLocked() {
	n.stopLocked()
	if n.interval <= 0 || n.pageCount <= 1 || n.scheduler == nil {
		return
	}
	generation := n.generation
	n.task = n.scheduler.Every(n.interval, func() { n.tick(generation) })
	n.logger.Debug("carousel auto-advance scheduled", "interval", n.interval, "page", n.current)
}

func (n *Navigator) stopLocked() {
	n.generation++
	if n.task == nil {
		return
	}
	n.task.Stop()
	n.task = nil
}

func (n *Navigator) tick(generation uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed || generation != n.generation {
		return
	}
	n.nextLocked()
}

// syncLocked brings page wrappers, indicators and buttons in line with the
// current index.
func (n *Navigator) syncLocked() {
	for idx, wrapper := range n.controls.Wrappers {
		if idx == n.current {
			wrapper.SetStyle("display", "block")
		} else {
			wrapper.SetStyle("display", "none")
		}
	}
	for idx, indicator := range n.controls.Indicators {
		if idx == n.current {
			indicator.AddClass("active")
			indicator.SetAttr("aria-current", "true")
		} else {
			indicator.RemoveClass("active")
			indicator.RemoveAttr("aria-current")
		}
	}
	if n.controls.Prev == nil || n.controls.Next == nil {
		return
	}
	setEnabled(n.controls.Prev, n.loop || n.current != 0)
	setEnabled(n.controls.Next, n.loop || n.current != n.pageCount-1)
}

func setEnabled(button *box.Box, enabled bool) {
	button.SetDisabled(!enabled)
	if enabled {
		button.SetStyle("opacity", enabledOpacity)
		return
	}
	button.SetStyle("opacity", disabledOpacity)
}
