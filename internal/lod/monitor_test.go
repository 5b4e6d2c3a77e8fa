package lod

import (
	"testing"
	"time"
)

// fakeClock lets tests march the monitor's notion of time forward.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newAdaptiveSystem(t *testing.T, cfg Config) (*System, *fakeScheduler, *fakeFPS, *fakeClock) {
	t.Helper()
	cfg.AdaptiveQuality = true
	sched := newFakeScheduler()
	fps := &fakeFPS{fps: cfg.TargetFramerate}
	s, err := New(cfg, sched, fps)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	clock := &fakeClock{t: time.Unix(0, 0)}
	s.mon.now = clock.Now
	s.mon.lastCheck = clock.t
	return s, sched, fps, clock
}

func TestMonitorDegradesUnderLoad(t *testing.T) {
	s, sched, fps, clock := newAdaptiveSystem(t, DefaultConfig())
	fps.fps = 30

	clock.Advance(time.Second)
	sched.Tick(1.0 / 30)

	if got := s.PerformanceOffset(); got != 1 {
		t.Errorf("offset after one slow check = %d, want 1", got)
	}

	// The offset feeds straight into selection: a near chunk drops a tier.
	if lvl := s.LevelFor(origin, vec(100, 0, 0), 0); lvl != 1 {
		t.Errorf("LevelFor after degradation = %d, want 1", lvl)
	}
}

func TestMonitorRecoversAboveTarget(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PerformanceLevel = 3
	s, sched, fps, clock := newAdaptiveSystem(t, cfg)
	fps.fps = 144

	clock.Advance(time.Second)
	sched.Tick(1.0 / 144)

	if got := s.PerformanceOffset(); got != 2 {
		t.Errorf("offset after one fast check = %d, want 2", got)
	}
}

func TestMonitorHoldsAtTarget(t *testing.T) {
	s, sched, fps, clock := newAdaptiveSystem(t, DefaultConfig())
	fps.fps = 60 // exactly on target

	clock.Advance(time.Second)
	sched.Tick(1.0 / 60)

	if got := s.PerformanceOffset(); got != 0 {
		t.Errorf("offset at target framerate = %d, want 0", got)
	}
}

func TestMonitorRespectsCheckInterval(t *testing.T) {
	s, sched, fps, clock := newAdaptiveSystem(t, DefaultConfig())
	fps.fps = 10

	// Many frames inside one interval adjust at most once.
	for i := 0; i < 10; i++ {
		clock.Advance(100 * time.Millisecond)
		sched.Tick(0.1)
	}

	if got := s.PerformanceOffset(); got != 1 {
		t.Errorf("offset after 1s of slow frames = %d, want 1 (single check)", got)
	}
}

func TestMonitorClampsToLevelRange(t *testing.T) {
	s, sched, fps, clock := newAdaptiveSystem(t, DefaultConfig())

	fps.fps = 10
	for i := 0; i < 10; i++ {
		clock.Advance(time.Second)
		sched.Tick(1.0)
	}
	if got := s.PerformanceOffset(); got != 4 {
		t.Errorf("offset under sustained load = %d, want clamp at MaxLevel 4", got)
	}

	fps.fps = 300
	for i := 0; i < 10; i++ {
		clock.Advance(time.Second)
		sched.Tick(1.0)
	}
	if got := s.PerformanceOffset(); got != 0 {
		t.Errorf("offset after sustained headroom = %d, want clamp at 0", got)
	}
}

func TestMonitorAdaptationSpeed(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AdaptationSpeed = 2
	s, sched, fps, clock := newAdaptiveSystem(t, cfg)
	fps.fps = 20

	clock.Advance(time.Second)
	sched.Tick(1.0)

	if got := s.PerformanceOffset(); got != 2 {
		t.Errorf("offset with AdaptationSpeed 2 = %d, want 2", got)
	}
}

func TestMonitorInertWithoutAdaptiveQuality(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PerformanceLevel = 1
	s, sched := newTestSystem(t, cfg)

	// Even with ticks flowing, a non-adaptive config keeps its configured
	// offset.
	for i := 0; i < 100; i++ {
		sched.Tick(1.0)
	}

	if got := s.PerformanceOffset(); got != 1 {
		t.Errorf("non-adaptive offset drifted to %d, want 1", got)
	}
}

func TestMonitorStopsAfterDispose(t *testing.T) {
	s, sched, fps, clock := newAdaptiveSystem(t, DefaultConfig())
	fps.fps = 10

	s.Dispose()

	clock.Advance(time.Minute)
	sched.Tick(1.0)

	if got := s.PerformanceOffset(); got != 0 {
		t.Errorf("offset moved after Dispose, got %d, want 0", got)
	}
}
