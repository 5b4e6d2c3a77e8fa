package terrain

// Generator produces the demo heightfield the LOD-driven tiles sample.
type Generator struct {
	seed        int64
	scale       float64
	amp         float64
	octaves     int
	persistence float64
	lacunarity  float64
}

// NewGenerator creates a generator with default settings for the given
// seed.
func NewGenerator(seed int64) *Generator {
	return &Generator{
		seed:        seed,
		scale:       1.0 / 512.0,
		amp:         96,
		octaves:     4,
		persistence: 0.5,
		lacunarity:  2.0,
	}
}

// HeightAt returns the surface height at world (x, z), in [0, MaxHeight].
func (g *Generator) HeightAt(x, z float64) float32 {
	n := fbm2(x*g.scale, z*g.scale, g.seed, g.octaves, g.persistence, g.lacunarity)
	return float32(n * g.amp)
}

// MaxHeight is the upper bound of HeightAt, used for bounding spheres.
func (g *Generator) MaxHeight() float32 {
	return float32(g.amp)
}
