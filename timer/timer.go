// Package timer provides periodic callbacks driven by the game loop. Timers
// never fire on their own, a Scheduler must be advanced once per frame.
package timer

import "time"

// Forever makes a timer repeat until it is stopped.
const Forever = -1

type Timer struct {
	callback func(*Timer)
	period   time.Duration
	loops    int

	running bool
	next    time.Duration
	count   int
}

// New returns a stopped timer that calls fn every period, loops times or
// Forever.
func New(fn func(*Timer), period time.Duration, loops int) *Timer {
	return &Timer{callback: fn, period: period, loops: loops}
}

// Start (re)starts the timer at time now. The first callback happens one
// period later.
func (t *Timer) Start(now time.Duration) {
	t.running = true
	t.count = 0
	t.next = now + t.period
}

func (t *Timer) Stop() {
	t.running = false
}

func (t *Timer) Running() bool {
	return t.running
}

// Count returns how often the timer fired since the last Start.
func (t *Timer) Count() int {
	return t.count
}

// fire calls the callback for every period that elapsed until now.
func (t *Timer) fire(now time.Duration) {
	for t.running && t.next <= now {
		t.count++
		if t.loops != Forever && t.count >= t.loops {
			t.running = false
		}
		t.callback(t)
		if t.period <= 0 {
			t.next = now + 1
		} else {
			t.next += t.period
		}
	}
}

// Scheduler drives a set of timers.
type Scheduler struct {
	timers []*Timer
}

func (s *Scheduler) Add(timers ...*Timer) {
	s.timers = append(s.timers, timers...)
}

// Advance fires all timers that are due at time now.
func (s *Scheduler) Advance(now time.Duration) {
	for _, t := range s.timers {
		t.fire(now)
	}
}
