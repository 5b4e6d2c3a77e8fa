// Package lod selects per-chunk terrain detail levels. Each query maps an
// observer position and a chunk bounding sphere to an integer level in
// [0, MaxLevel], where 0 is full detail and each step halves vertex
// density. An optional feedback loop watches the host framerate and
// degrades quality under load.
//
// The package is single-threaded by contract: the performance loop runs
// inside the host's frame callback and queries are expected from that same
// goroutine. Hosts with multi-threaded render paths must serialize access
// themselves.
package lod

// FrameScheduler is the host capability the system uses to run its
// per-frame work. Subscribe registers a callback invoked once per frame
// with the frame delta in seconds and returns a token; Unsubscribe with
// that token stops further invocations. The system keeps only the token,
// never the host.
type FrameScheduler interface {
	Subscribe(fn func(dt float64)) uint64
	Unsubscribe(token uint64)
}

// FramerateSource reports the host's measured frames per second. Sampled
// by the adaptive loop at most once per check interval.
type FramerateSource interface {
	CurrentFPS() float64
}

// System owns the LOD selection state: the validated config, the adaptive
// performance monitor, and the frame subscription that drives it.
type System struct {
	cfg      Config
	sched    FrameScheduler
	token    uint64
	disposed bool
	mon      monitor
}

// New validates cfg and registers the system with the host frame
// scheduler. Construction is atomic: on any validation failure the
// returned error is a *ConfigError and nothing was subscribed. src may be
// nil when AdaptiveQuality is off.
func New(cfg Config, sched FrameScheduler, src FramerateSource) (*System, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if sched == nil {
		return nil, &ConfigError{Field: "FrameScheduler", Reason: "must not be nil"}
	}
	if cfg.AdaptiveQuality && src == nil {
		return nil, &ConfigError{Field: "FramerateSource", Reason: "required when AdaptiveQuality is on"}
	}

	// Private copy of the threshold table; the caller keeps its slice.
	cfg.Distances = append([]float32(nil), cfg.Distances...)

	s := &System{
		cfg:   cfg,
		sched: sched,
		mon:   newMonitor(&cfg, src),
	}
	s.token = sched.Subscribe(s.tick)
	return s, nil
}

// tick is the per-frame hook: it advances the performance monitor before
// any level queries issued later in the same frame.
func (s *System) tick(dt float64) {
	s.mon.tick()
}

// SetEnabled toggles selection without touching the performance offset, so
// re-enabling resumes from the current adaptive state.
func (s *System) SetEnabled(enabled bool) {
	s.cfg.Enabled = enabled
}

// Enabled reports whether selection is active.
func (s *System) Enabled() bool {
	return s.cfg.Enabled
}

// PerformanceOffset returns the current adaptive offset. Informational;
// LevelFor already applies it.
func (s *System) PerformanceOffset() int {
	return s.mon.offset
}

// Dispose unregisters the frame callback. Idempotent: only the first call
// unsubscribes. LevelFor and LevelInfoFor remain usable afterwards as pure
// functions over the last-known config; only the automatic ticks stop.
func (s *System) Dispose() {
	if s.disposed {
		return
	}
	s.disposed = true
	s.sched.Unsubscribe(s.token)
}
