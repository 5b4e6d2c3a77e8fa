package lod

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// LevelInfo describes one selectable detail tier.
type LevelInfo struct {
	Level int
	// Reduction is the vertex-count divisor at this level (1 << Level).
	Reduction int
}

// LevelFor maps an observer/chunk pair to a discrete LOD level in
// [0, Config.MaxLevel]. Level 0 is full detail. Thresholds are inclusive:
// an effective distance exactly equal to Distances[i] still selects level
// i. The current performance offset is added on top and the result is
// clamped, so for a fixed configuration the level never decreases as the
// raw distance grows.
func (s *System) LevelFor(observer, center mgl32.Vec3, radius float32) int {
	if !s.cfg.Enabled {
		return 0
	}

	eff := EffectiveDistance(observer, center, radius, s.cfg.Bias)
	if math.IsNaN(float64(eff)) {
		// Garbage input reads as infinitely far.
		return s.cfg.MaxLevel
	}

	level := s.cfg.MaxLevel
	for i, threshold := range s.cfg.Distances {
		if eff <= threshold {
			level = i
			break
		}
	}

	level += s.mon.offset
	if level < 0 {
		level = 0
	}
	if level > s.cfg.MaxLevel {
		level = s.cfg.MaxLevel
	}
	return level
}

// LevelInfoFor returns the metadata for a level, or nil when the level is
// outside [0, MaxLevel]. Out-of-range queries are expected from callers
// probing neighbor tiers; they are not errors.
func (s *System) LevelInfoFor(level int) *LevelInfo {
	if level < 0 || level > s.cfg.MaxLevel {
		return nil
	}
	return &LevelInfo{Level: level, Reduction: 1 << level}
}
