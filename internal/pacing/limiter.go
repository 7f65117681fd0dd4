package pacing

import "time"

// Limiter spaces frames to a target rate when vsync is off
type Limiter struct {
	next time.Time

	now   func() time.Time
	sleep func(time.Duration)
}

// NewLimiter creates a limiter using the wall clock
func NewLimiter() *Limiter {
	return &Limiter{now: time.Now, sleep: time.Sleep}
}

// Wait blocks until the next frame slot for fps frames per second.
// fps <= 0 disables limiting. A frame that overran by more than one slot
// resynchronises instead of rushing to catch up.
func (l *Limiter) Wait(fps int) {
	if fps <= 0 {
		l.next = time.Time{}
		return
	}
	slot := time.Second / time.Duration(fps)

	if l.next.IsZero() {
		l.next = l.now().Add(slot)
	} else {
		l.next = l.next.Add(slot)
	}

	if remaining := l.next.Sub(l.now()); remaining > 0 {
		l.sleep(remaining)
	}

	if late := l.now().Sub(l.next); late > slot {
		l.next = l.now().Add(slot)
	}
}
