package terrain

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"terralod/internal/frame"
	"terralod/internal/lod"
)

func newTestManager(t *testing.T) (*Manager, *lod.System) {
	t.Helper()
	sys, err := lod.New(lod.DefaultConfig(), frame.NewLoop(), nil)
	if err != nil {
		t.Fatalf("lod.New failed: %v", err)
	}
	m := NewManager(sys, NewGenerator(42), 1)
	t.Cleanup(m.Close)
	return m, sys
}

func TestUpdateSyncPopulatesResidentTiles(t *testing.T) {
	m, _ := newTestManager(t)
	observer := mgl32.Vec3{ChunkSize / 2, 50, ChunkSize / 2}

	m.UpdateSync(observer, 2)

	if got := m.Len(); got != 25 {
		t.Fatalf("resident tiles = %d, want 25 (5x5)", got)
	}
	for _, view := range m.Snapshot() {
		if view.Level < 0 || view.Level > 4 {
			t.Errorf("tile (%d,%d) level %d outside [0,4]", view.X, view.Z, view.Level)
		}
		if len(view.Mesh) == 0 {
			t.Errorf("tile (%d,%d) has no mesh", view.X, view.Z)
		}
	}
}

func TestUpdateSyncAssignsCoarserLevelsFarther(t *testing.T) {
	m, _ := newTestManager(t)
	observer := mgl32.Vec3{ChunkSize / 2, 50, ChunkSize / 2}

	m.UpdateSync(observer, 16)

	levelAt := func(x, z int) int {
		t.Helper()
		for _, v := range m.Snapshot() {
			if v.X == x && v.Z == z {
				return v.Level
			}
		}
		t.Fatalf("tile (%d,%d) not resident", x, z)
		return -1
	}

	near := levelAt(0, 0)
	far := levelAt(15, 0)
	if near > far {
		t.Errorf("near tile level %d coarser than far tile level %d", near, far)
	}
	if near != 0 {
		t.Errorf("observer's own tile has level %d, want 0", near)
	}
	// ~3840 units out, effective distance lands in the last band.
	if far != 3 {
		t.Errorf("tile 15 tiles out has level %d, want 3", far)
	}
}

func TestUpdateSyncRemeshesOnObserverMove(t *testing.T) {
	m, _ := newTestManager(t)
	home := mgl32.Vec3{ChunkSize / 2, 50, ChunkSize / 2}

	m.UpdateSync(home, 4)
	before := map[[2]int]int{}
	for _, v := range m.Snapshot() {
		before[[2]int{v.X, v.Z}] = v.Level
	}

	// Step six tiles away: tiles near the old position should coarsen.
	away := mgl32.Vec3{ChunkSize * 6.5, 50, ChunkSize / 2}
	m.UpdateSync(away, 4)

	coarsened := false
	for _, v := range m.Snapshot() {
		if prev, ok := before[[2]int{v.X, v.Z}]; ok && v.Level > prev {
			coarsened = true
			break
		}
	}
	if !coarsened {
		t.Errorf("no tile coarsened after the observer moved away")
	}
}

func TestUpdateEvictsFarTiles(t *testing.T) {
	m, _ := newTestManager(t)
	home := mgl32.Vec3{ChunkSize / 2, 50, ChunkSize / 2}

	m.UpdateSync(home, 2)
	if m.Len() != 25 {
		t.Fatalf("resident tiles = %d, want 25", m.Len())
	}

	// Update (the evicting path) far from home drops everything around
	// the old position.
	away := mgl32.Vec3{ChunkSize * 100, 50, ChunkSize * 100}
	m.Update(away, 2)

	for _, v := range m.Snapshot() {
		if abs(v.X-100) > 4 || abs(v.Z-100) > 4 {
			t.Errorf("tile (%d,%d) survived eviction", v.X, v.Z)
		}
	}
}

func TestDisabledSystemKeepsEverythingFullDetail(t *testing.T) {
	m, sys := newTestManager(t)
	sys.SetEnabled(false)
	observer := mgl32.Vec3{0, 50, 0}

	m.UpdateSync(observer, 8)

	for _, v := range m.Snapshot() {
		if v.Level != 0 {
			t.Errorf("tile (%d,%d) level %d with selection disabled, want 0", v.X, v.Z, v.Level)
		}
	}
}

func TestLevelCounts(t *testing.T) {
	m, _ := newTestManager(t)
	m.UpdateSync(mgl32.Vec3{0, 50, 0}, 6)

	counts := m.LevelCounts(4)
	total := 0
	for _, n := range counts {
		total += n
	}
	if total != m.Len() {
		t.Errorf("LevelCounts sum %d != resident tiles %d", total, m.Len())
	}
}
