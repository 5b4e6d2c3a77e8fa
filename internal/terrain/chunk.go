package terrain

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	// ChunkSize is the world-unit extent of one terrain tile side.
	ChunkSize = 256.0

	// BaseResolution is the quad count per tile side at level 0. Each LOD
	// level divides it by the level's reduction factor.
	BaseResolution = 64
)

// Chunk is one heightfield tile. Level and Mesh are rebuilt whenever the
// LOD system assigns the tile a different level.
type Chunk struct {
	X, Z  int // tile coordinates (world position = coordinate * ChunkSize)
	Level int // current mesh level, -1 until the first build lands

	// Mesh is a triangle list of interleaved xyz positions in world
	// space.
	Mesh []float32
}

// GridResolution returns the quad count per side for a level, never below
// 1.
func GridResolution(level int) int {
	res := BaseResolution >> level
	if res < 1 {
		res = 1
	}
	return res
}

// Center returns the tile's bounding-sphere center. maxHeight is the
// generator's height ceiling; the sphere is centered halfway up it.
func (c *Chunk) Center(maxHeight float32) mgl32.Vec3 {
	return mgl32.Vec3{
		(float32(c.X) + 0.5) * ChunkSize,
		maxHeight * 0.5,
		(float32(c.Z) + 0.5) * ChunkSize,
	}
}

// Radius returns the tile's bounding-sphere radius: half the diagonal of
// the ChunkSize x maxHeight x ChunkSize box.
func (c *Chunk) Radius(maxHeight float32) float32 {
	hx := float64(ChunkSize) * 0.5
	hy := float64(maxHeight) * 0.5
	return float32(math.Sqrt(hx*hx + hy*hy + hx*hx))
}

// BuildMesh samples gen across the tile at the given level's resolution
// and returns the triangle list. Vertex count shrinks by 4x per level
// step, matching the LOD reduction law along each axis.
func BuildMesh(gen *Generator, tileX, tileZ, level int) []float32 {
	res := GridResolution(level)
	step := float64(ChunkSize) / float64(res)
	baseX := float64(tileX) * ChunkSize
	baseZ := float64(tileZ) * ChunkSize

	// Sample the (res+1)^2 corner grid once.
	heights := make([]float32, (res+1)*(res+1))
	for gz := 0; gz <= res; gz++ {
		for gx := 0; gx <= res; gx++ {
			heights[gz*(res+1)+gx] = gen.HeightAt(baseX+float64(gx)*step, baseZ+float64(gz)*step)
		}
	}

	corner := func(gx, gz int) (float32, float32, float32) {
		return float32(baseX + float64(gx)*step), heights[gz*(res+1)+gx], float32(baseZ + float64(gz)*step)
	}

	// Two triangles per quad, three floats per vertex.
	mesh := make([]float32, 0, res*res*6*3)
	push := func(gx, gz int) {
		x, y, z := corner(gx, gz)
		mesh = append(mesh, x, y, z)
	}
	for gz := 0; gz < res; gz++ {
		for gx := 0; gx < res; gx++ {
			push(gx, gz)
			push(gx+1, gz)
			push(gx+1, gz+1)

			push(gx, gz)
			push(gx+1, gz+1)
			push(gx, gz+1)
		}
	}
	return mesh
}
