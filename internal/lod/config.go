package lod

import (
	"fmt"
	"time"
)

// Config holds the tunables for LOD selection. Start from DefaultConfig,
// override fields, and pass the result to New, which validates it. After
// construction the system owns its copy; callers mutate behavior only
// through the System setters.
type Config struct {
	// Enabled gates selection entirely. When false every query returns
	// level 0 (full detail) regardless of distance.
	Enabled bool

	// MaxLevel is the coarsest selectable level. Levels run 0..MaxLevel.
	MaxLevel int

	// Distances maps levels to thresholds: level i is chosen for effective
	// distances up to and including Distances[i]. Must be strictly
	// ascending with len(Distances) == MaxLevel; anything beyond the last
	// threshold selects MaxLevel.
	Distances []float32

	// Bias scales how much a chunk's bounding radius offsets its raw
	// distance. Larger chunks read as closer, keeping them detailed
	// longer. Must be > 0.
	Bias float32

	// TransitionSize is reserved for geomorph blending between adjacent
	// levels. It does not affect level selection.
	TransitionSize float32

	// AdaptiveQuality enables the framerate feedback loop that raises the
	// performance offset under load.
	AdaptiveQuality bool

	// TargetFramerate is the FPS the adaptive loop steers toward.
	TargetFramerate float64

	// PerformanceLevel is the starting performance offset. With
	// AdaptiveQuality off it stays fixed at this value.
	PerformanceLevel int

	// AdaptationSpeed is how many levels the offset moves per check.
	AdaptationSpeed int

	// PerformanceCheckInterval is the minimum time between framerate
	// samples.
	PerformanceCheckInterval time.Duration
}

// DefaultConfig returns the deployment defaults: four levels with
// thresholds at 500/1000/2000/4000 world units, neutral bias, adaptive
// quality off with a 60 FPS target checked once per second.
func DefaultConfig() Config {
	return Config{
		Enabled:                  true,
		MaxLevel:                 4,
		Distances:                []float32{500, 1000, 2000, 4000},
		Bias:                     1.0,
		TransitionSize:           0,
		AdaptiveQuality:          false,
		TargetFramerate:          60,
		PerformanceLevel:         0,
		AdaptationSpeed:          1,
		PerformanceCheckInterval: time.Second,
	}
}

func (c *Config) validate() error {
	if c.MaxLevel < 0 {
		return &ConfigError{Field: "MaxLevel", Reason: "must be >= 0"}
	}
	if len(c.Distances) != c.MaxLevel {
		return &ConfigError{
			Field:  "Distances",
			Reason: fmt.Sprintf("length %d does not match MaxLevel %d", len(c.Distances), c.MaxLevel),
		}
	}
	for i := 1; i < len(c.Distances); i++ {
		if c.Distances[i] <= c.Distances[i-1] {
			return &ConfigError{
				Field:  "Distances",
				Reason: fmt.Sprintf("not strictly ascending at index %d (%v <= %v)", i, c.Distances[i], c.Distances[i-1]),
			}
		}
	}
	if c.Bias <= 0 {
		return &ConfigError{Field: "Bias", Reason: "must be > 0"}
	}
	if c.TransitionSize < 0 {
		return &ConfigError{Field: "TransitionSize", Reason: "must be >= 0"}
	}
	if c.TargetFramerate <= 0 {
		return &ConfigError{Field: "TargetFramerate", Reason: "must be > 0"}
	}
	if c.AdaptationSpeed <= 0 {
		return &ConfigError{Field: "AdaptationSpeed", Reason: "must be > 0"}
	}
	if c.PerformanceCheckInterval <= 0 {
		return &ConfigError{Field: "PerformanceCheckInterval", Reason: "must be > 0"}
	}
	return nil
}
