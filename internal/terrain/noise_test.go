package terrain

import (
	"math/rand"
	"testing"
)

func TestNoise2Deterministic(t *testing.T) {
	a := noise2(12.34, -56.78, 42)
	for i := 0; i < 100; i++ {
		if b := noise2(12.34, -56.78, 42); b != a {
			t.Fatalf("noise2 not deterministic: %v != %v", b, a)
		}
	}
}

func TestNoise2Range(t *testing.T) {
	rng := rand.New(rand.NewSource(12345))
	for i := 0; i < 1000; i++ {
		x := rng.Float64()*200 - 100
		z := rng.Float64()*200 - 100
		v := noise2(x, z, 42)
		if v < 0 || v > 1 {
			t.Errorf("noise2(%f, %f) = %f, expected in [0,1]", x, z, v)
		}
	}
}

func TestNoise2SeedSensitivity(t *testing.T) {
	if noise2(1.5, 2.5, 100) == noise2(1.5, 2.5, 200) {
		t.Errorf("noise2 should differ across seeds")
	}
}

func TestFbm2Range(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 1000; i++ {
		x := rng.Float64()*1000 - 500
		z := rng.Float64()*1000 - 500
		v := fbm2(x, z, 42, 4, 0.5, 2.0)
		if v < 0 || v > 1 {
			t.Errorf("fbm2(%f, %f) = %f, expected in [0,1]", x, z, v)
		}
	}
}

func TestGeneratorHeightBounds(t *testing.T) {
	g := NewGenerator(42)
	rng := rand.New(rand.NewSource(99))
	for i := 0; i < 1000; i++ {
		x := rng.Float64()*10000 - 5000
		z := rng.Float64()*10000 - 5000
		h := g.HeightAt(x, z)
		if h < 0 || h > g.MaxHeight() {
			t.Errorf("HeightAt(%f, %f) = %f, expected in [0, %f]", x, z, h, g.MaxHeight())
		}
	}
}

func TestGeneratorSeedChangesTerrain(t *testing.T) {
	a := NewGenerator(1)
	b := NewGenerator(2)
	same := 0
	for i := 0; i < 32; i++ {
		x := float64(i) * 37.5
		if a.HeightAt(x, x) == b.HeightAt(x, x) {
			same++
		}
	}
	if same == 32 {
		t.Errorf("different seeds produced identical heightfields")
	}
}
