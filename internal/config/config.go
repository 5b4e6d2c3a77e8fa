// Package config holds process-wide viewer settings with clamped,
// thread-safe accessors.
package config

import "sync"

// ViewerSettings holds the demo viewers' runtime knobs.
type ViewerSettings struct {
	mu         sync.RWMutex
	fpsLimit   int // frames per second, 0 = uncapped
	viewRadius int // in chunks around the observer
}

var globalViewerSettings = &ViewerSettings{
	fpsLimit:   120,
	viewRadius: 12,
}

// GetFPSLimit returns the current frame rate cap (0 means uncapped).
func GetFPSLimit() int {
	globalViewerSettings.mu.RLock()
	defer globalViewerSettings.mu.RUnlock()
	return globalViewerSettings.fpsLimit
}

// SetFPSLimit sets the frame rate cap.
func SetFPSLimit(limit int) {
	globalViewerSettings.mu.Lock()
	defer globalViewerSettings.mu.Unlock()

	if limit < 0 {
		limit = 0
	}
	if limit > 1000 {
		limit = 1000
	}

	globalViewerSettings.fpsLimit = limit
}

// GetViewRadius returns the chunk radius kept resident around the
// observer.
func GetViewRadius() int {
	globalViewerSettings.mu.RLock()
	defer globalViewerSettings.mu.RUnlock()
	return globalViewerSettings.viewRadius
}

// SetViewRadius sets the resident chunk radius.
func SetViewRadius(radius int) {
	globalViewerSettings.mu.Lock()
	defer globalViewerSettings.mu.Unlock()

	// Clamp to reasonable values
	if radius < 2 {
		radius = 2
	}
	if radius > 64 {
		radius = 64
	}

	globalViewerSettings.viewRadius = radius
}

// GetEvictRadius returns the radius beyond which chunks are discarded
// (larger than the resident radius to avoid thrash at the boundary).
func GetEvictRadius() int {
	return GetViewRadius() + 2
}
