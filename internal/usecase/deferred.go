package usecase

import (
	"sync"
	"time"

	"github.com/coder/quartz"
)

// Deferred runs one task after a fixed delay. It has a single slot: while a
// task is pending, further Schedule calls are ignored.
type Deferred struct {
	clock quartz.Clock
	delay time.Duration
	tags  []string

	mu    sync.Mutex
	timer *quartz.Timer
}

func NewDeferred(clock quartz.Clock, delay time.Duration, tags ...string) *Deferred {
	return &Deferred{
		clock: clock,
		delay: delay,
		tags:  tags,
	}
}

// Schedule arms the slot with task and reports whether it did.
func (that *Deferred) Schedule(task func()) bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.timer != nil {
		return false
	}

	var timer *quartz.Timer
	timer = that.clock.AfterFunc(that.delay, func() {
		that.mu.Lock()
		if that.timer != timer {
			that.mu.Unlock()
			return
		}
		that.timer = nil
		that.mu.Unlock()

		task()
	}, that.tags...)
	that.timer = timer

	return true
}

func (that *Deferred) Pending() bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.timer != nil
}

// Cancel drops the pending task, if any.
func (that *Deferred) Cancel() {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.timer == nil {
		return
	}

	that.timer.Stop()
	that.timer = nil
}
