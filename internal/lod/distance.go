package lod

import (
	"github.com/go-gl/mathgl/mgl32"
)

// EffectiveDistance returns the bias-adjusted distance between an observer
// and a chunk's bounding sphere. The raw Euclidean distance is reduced by
// radius*bias so that larger chunks read as closer and hold detail longer
// at the same separation. The result never goes below 0. A negative radius
// is treated as 0.
func EffectiveDistance(observer, center mgl32.Vec3, radius, bias float32) float32 {
	if radius < 0 {
		radius = 0
	}
	d := observer.Sub(center).Len() - radius*bias
	if d < 0 {
		return 0
	}
	return d
}
