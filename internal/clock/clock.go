// Package clock provides an injectable timer source for game logic.
// Timers fire only when the owner advances the clock, so scheduling code
// stays single-threaded and deterministic under test.
package clock

import (
	"container/heap"
	"time"
)

// Clock schedules callbacks relative to a monotonic virtual time.
type Clock interface {
	// Now returns the elapsed virtual time since the clock was created.
	Now() time.Duration

	// AfterFunc calls f once, d after the current time.
	AfterFunc(d time.Duration, f func()) Timer

	// Every calls f repeatedly with period d, the first call d from now.
	Every(d time.Duration, f func()) Timer
}

// Timer is a handle to a scheduled callback.
type Timer interface {
	// Stop cancels the timer. It returns false if the timer already fired
	// (one-shot) or was already stopped.
	Stop() bool
}

// Virtual is a manually advanced Clock. It is not safe for concurrent use.
type Virtual struct {
	now     time.Duration
	seq     uint64
	pending timerHeap
}

// NewVirtual creates a virtual clock starting at zero.
func NewVirtual() *Virtual {
	return &Virtual{}
}

// Now returns the current virtual time.
func (v *Virtual) Now() time.Duration {
	return v.now
}

// AfterFunc schedules a one-shot callback.
func (v *Virtual) AfterFunc(d time.Duration, f func()) Timer {
	return v.schedule(d, 0, f)
}

// Every schedules a periodic callback. Non-positive periods are treated as
// one nanosecond so Advance always makes progress.
func (v *Virtual) Every(d time.Duration, f func()) Timer {
	if d <= 0 {
		d = time.Nanosecond
	}
	return v.schedule(d, d, f)
}

func (v *Virtual) schedule(d, period time.Duration, f func()) *timer {
	if d < 0 {
		d = 0
	}
	v.seq++
	t := &timer{
		clock:  v,
		due:    v.now + d,
		period: period,
		seq:    v.seq,
		fn:     f,
	}
	heap.Push(&v.pending, t)
	return t
}

// Advance moves virtual time forward by d, firing every timer that comes due
// in order of due time (ties in scheduling order). Callbacks may schedule or
// stop other timers; timers scheduled for within the window fire in the same
// call.
func (v *Virtual) Advance(d time.Duration) {
	if d < 0 {
		return
	}
	target := v.now + d
	for len(v.pending) > 0 {
		next := v.pending[0]
		if next.due > target {
			break
		}
		v.now = next.due
		if next.period > 0 {
			next.due += next.period
			v.seq++
			next.seq = v.seq
			heap.Fix(&v.pending, next.index)
		} else {
			heap.Pop(&v.pending)
		}
		next.fn()
	}
	v.now = target
}

// Pending returns the number of timers that are still scheduled.
func (v *Virtual) Pending() int {
	return len(v.pending)
}

// timer is a scheduled callback owned by a Virtual clock.
type timer struct {
	clock  *Virtual
	due    time.Duration
	period time.Duration
	seq    uint64
	fn     func()
	index  int // position in the heap, -1 once removed
}

// Stop removes the timer from its clock.
func (t *timer) Stop() bool {
	if t.index < 0 {
		return false
	}
	heap.Remove(&t.clock.pending, t.index)
	return true
}

// timerHeap orders timers by due time, then by scheduling sequence.
type timerHeap []*timer

func (h timerHeap) Len() int { return len(h) }

func (h timerHeap) Less(i, j int) bool {
	if h[i].due != h[j].due {
		return h[i].due < h[j].due
	}
	return h[i].seq < h[j].seq
}

func (h timerHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *timerHeap) Push(x any) {
	t := x.(*timer)
	t.index = len(*h)
	*h = append(*h, t)
}

func (h *timerHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*h = old[:n-1]
	return t
}
