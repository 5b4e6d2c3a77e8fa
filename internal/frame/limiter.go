package frame

import "time"

// Limiter paces a render loop at a fixed frame rate. It sleeps most of the
// frame budget and spins the last stretch, which holds the cadence much
// tighter than a bare time.Sleep at high caps.
type Limiter struct {
	limit int
	next  time.Time
}

// NewLimiter returns a limiter capped at limit frames per second. A limit
// of 0 or less disables pacing.
func NewLimiter(limit int) *Limiter {
	return &Limiter{limit: limit}
}

// SetLimit changes the cap and resets the schedule.
func (l *Limiter) SetLimit(limit int) {
	l.limit = limit
	l.next = time.Time{}
}

// Wait blocks until the next frame slot.
func (l *Limiter) Wait() {
	if l.limit <= 0 {
		l.next = time.Time{}
		return
	}

	target := time.Second / time.Duration(l.limit)
	if l.next.IsZero() {
		l.next = time.Now().Add(target)
	} else {
		l.next = l.next.Add(target)
	}

	for {
		remaining := time.Until(l.next)
		if remaining <= 0 {
			break
		}
		if remaining > 200*time.Microsecond {
			time.Sleep(remaining - 200*time.Microsecond)
		}
		// spin out the final microseconds
		if time.Until(l.next) <= 0 {
			break
		}
	}

	// After a hitch, resync instead of chasing the missed slots.
	if late := -time.Until(l.next); late > target {
		l.next = time.Now().Add(target)
	}
}
