// Package timer schedules deferred one-shot actions on frame time.
package timer

import (
	"sort"
	"time"
)

// Handle refers to a scheduled action. The zero Handle refers to nothing.
type Handle struct {
	t *task
}

// Pending reports whether the action is still waiting to fire.
func (h Handle) Pending() bool {
	return h.t != nil && !h.t.fired && !h.t.cancelled
}

// Cancel prevents the action from firing. It returns false if the action has
// already fired or been cancelled, so cancelling twice is harmless.
func (h Handle) Cancel() bool {
	if !h.Pending() {
		return false
	}
	h.t.cancelled = true
	return true
}

type task struct {
	due       time.Duration
	seq       uint64
	fn        func()
	fired     bool
	cancelled bool
}

// Scheduler runs actions once the accumulated frame time reaches their due time.
// It is not safe for concurrent use; drive it from the frame loop.
type Scheduler struct {
	now   time.Duration
	seq   uint64
	tasks []*task
}

// NewScheduler returns a scheduler whose clock starts at zero.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// After schedules fn to run delay from now. A zero delay fires on the next Advance.
func (s *Scheduler) After(delay time.Duration, fn func()) Handle {
	if delay < 0 {
		delay = 0
	}
	s.seq++
	t := &task{due: s.now + delay, seq: s.seq, fn: fn}
	s.tasks = append(s.tasks, t)
	return Handle{t: t}
}

// Advance moves the clock forward by dt and fires every due action in due order.
// Actions scheduled by a firing action run on a later Advance, even with zero delay.
func (s *Scheduler) Advance(dt time.Duration) {
	if dt > 0 {
		s.now += dt
	}
	var due []*task
	kept := s.tasks[:0]
	for _, t := range s.tasks {
		switch {
		case t.cancelled:
		case t.due <= s.now:
			due = append(due, t)
		default:
			kept = append(kept, t)
		}
	}
	for i := len(kept); i < len(s.tasks); i++ {
		s.tasks[i] = nil
	}
	s.tasks = kept

	sort.Slice(due, func(i, j int) bool {
		if due[i].due != due[j].due {
			return due[i].due < due[j].due
		}
		return due[i].seq < due[j].seq
	})
	for _, t := range due {
		// an earlier action in this batch may have cancelled a later one
		if t.cancelled {
			continue
		}
		t.fired = true
		if t.fn != nil {
			t.fn()
		}
	}
}

// Now returns the scheduler clock.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// Len returns the number of pending actions.
func (s *Scheduler) Len() int {
	n := 0
	for _, t := range s.tasks {
		if !t.cancelled {
			n++
		}
	}
	return n
}
