package lod

import "time"

// monitor is the adaptive-quality feedback loop. Once per check interval
// it compares the host's measured framerate against the target and moves
// the performance offset by AdaptationSpeed levels in the direction that
// closes the gap: below target degrades quality, above target restores it.
// The offset stays within [0, MaxLevel].
//
// All reads and writes happen on the frame-callback path, so no locking;
// see the package doc for the single-threaded contract.
type monitor struct {
	adaptive  bool
	target    float64
	speed     int
	interval  time.Duration
	maxLevel  int
	src       FramerateSource
	offset    int
	lastCheck time.Time
	now       func() time.Time
}

func newMonitor(cfg *Config, src FramerateSource) monitor {
	m := monitor{
		adaptive: cfg.AdaptiveQuality,
		target:   cfg.TargetFramerate,
		speed:    cfg.AdaptationSpeed,
		interval: cfg.PerformanceCheckInterval,
		maxLevel: cfg.MaxLevel,
		src:      src,
		offset:   cfg.PerformanceLevel,
		now:      time.Now,
	}
	m.lastCheck = m.now()
	return m
}

// tick runs one check. Called from the frame callback before any level
// queries in the same frame, so consumers always see the fresh offset.
func (m *monitor) tick() {
	if !m.adaptive || m.src == nil {
		return
	}
	t := m.now()
	if t.Sub(m.lastCheck) < m.interval {
		return
	}
	m.lastCheck = t

	current := m.src.CurrentFPS()
	if current <= 0 {
		// Host has no measurement yet.
		return
	}
	switch {
	case current < m.target:
		m.offset += m.speed
	case current > m.target:
		m.offset -= m.speed
	}
	if m.offset < 0 {
		m.offset = 0
	}
	if m.offset > m.maxLevel {
		m.offset = m.maxLevel
	}
}
