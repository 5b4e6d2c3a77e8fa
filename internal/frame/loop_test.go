package frame

import (
	"testing"
	"time"
)

func TestLoopSubscribeOrder(t *testing.T) {
	l := NewLoop()
	var calls []int

	l.Subscribe(func(dt float64) { calls = append(calls, 1) })
	l.Subscribe(func(dt float64) { calls = append(calls, 2) })
	l.Subscribe(func(dt float64) { calls = append(calls, 3) })

	l.Tick(0.016)

	if len(calls) != 3 || calls[0] != 1 || calls[1] != 2 || calls[2] != 3 {
		t.Errorf("expected calls [1 2 3], got %v", calls)
	}
}

func TestLoopUnsubscribe(t *testing.T) {
	l := NewLoop()
	count := 0

	token := l.Subscribe(func(dt float64) { count++ })
	l.Tick(0)
	l.Unsubscribe(token)
	l.Tick(0)

	if count != 1 {
		t.Errorf("expected 1 call after unsubscribe, got %d", count)
	}
	if l.Len() != 0 {
		t.Errorf("expected empty loop, got %d subscribers", l.Len())
	}

	// Unknown and repeated tokens are silently ignored.
	l.Unsubscribe(token)
	l.Unsubscribe(9999)
}

func TestLoopTokensUnique(t *testing.T) {
	l := NewLoop()
	a := l.Subscribe(func(dt float64) {})
	l.Unsubscribe(a)
	b := l.Subscribe(func(dt float64) {})
	if a == b {
		t.Errorf("token reused after unsubscribe: %d", a)
	}
}

func TestLoopDeltaPassedThrough(t *testing.T) {
	l := NewLoop()
	var got float64
	l.Subscribe(func(dt float64) { got = dt })
	l.Tick(0.25)
	if got != 0.25 {
		t.Errorf("expected dt 0.25, got %v", got)
	}
}

func TestLimiterDisabledReturnsImmediately(t *testing.T) {
	l := NewLimiter(0)
	start := time.Now()
	for i := 0; i < 100; i++ {
		l.Wait()
	}
	if elapsed := time.Since(start); elapsed > 50*time.Millisecond {
		t.Errorf("disabled limiter blocked for %v", elapsed)
	}
}

func TestCounterMeasuresWindow(t *testing.T) {
	c := NewCounter()
	now := time.Unix(0, 0)
	c.now = func() time.Time { return now }
	c.windowEnd = now.Add(time.Second)

	// 60 frames over exactly one second.
	for i := 0; i < 60; i++ {
		now = now.Add(time.Second / 60)
		c.Frame()
	}

	got := c.CurrentFPS()
	if got < 59 || got > 61 {
		t.Errorf("CurrentFPS = %v, want ~60", got)
	}
}
