package terrain

import (
	"math"
	"runtime"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/time/rate"

	"terralod/internal/lod"
	"terralod/internal/profiling"
)

// remeshBudgetPerSecond caps how many level-change rebuilds the manager
// queues per second, so a fast-moving observer cannot flood the workers.
// Initial builds of missing tiles are not throttled.
const remeshBudgetPerSecond = 256

type buildJob struct {
	key   [2]int
	level int
}

// Manager keeps the heightfield tiles around an observer resident and
// meshed at the level the LOD system assigns them. Rebuilds run on a
// worker pool; Update and Snapshot are meant for the frame goroutine.
type Manager struct {
	sys *lod.System
	gen *Generator

	mu      sync.RWMutex
	chunks  map[[2]int]*Chunk
	pending map[[2]int]int // tile -> level currently queued

	jobs    chan buildJob
	limiter *rate.Limiter
}

// NewManager starts workers background mesh builders (NumCPU when
// workers <= 0).
func NewManager(sys *lod.System, gen *Generator, workers int) *Manager {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	m := &Manager{
		sys:     sys,
		gen:     gen,
		chunks:  make(map[[2]int]*Chunk),
		pending: make(map[[2]int]int),
		jobs:    make(chan buildJob, 1024),
		limiter: rate.NewLimiter(rate.Limit(remeshBudgetPerSecond), remeshBudgetPerSecond),
	}
	for i := 0; i < workers; i++ {
		go m.worker()
	}
	return m
}

// Close stops the background builders.
func (m *Manager) Close() {
	close(m.jobs)
}

func (m *Manager) worker() {
	for job := range m.jobs {
		mesh := BuildMesh(m.gen, job.key[0], job.key[1], job.level)
		m.install(job.key, job.level, mesh)
	}
}

func (m *Manager) install(key [2]int, level int, mesh []float32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.chunks[key]
	if !ok {
		// Evicted while the build was in flight.
		delete(m.pending, key)
		return
	}
	if want, ok := m.pending[key]; ok && want == level {
		delete(m.pending, key)
	}
	c.Level = level
	c.Mesh = mesh
}

// Update makes one frame's pass: ensure tiles within radius of the
// observer exist, requeue any tile whose assigned LOD level changed, and
// drop tiles outside radius+2. Levels are queried once per tile per call.
func (m *Manager) Update(observer mgl32.Vec3, radius int) {
	defer profiling.Track("terrain.Update")()

	cx := tileCoord(observer.X())
	cz := tileCoord(observer.Z())
	maxHeight := m.gen.MaxHeight()

	m.mu.Lock()
	for dz := -radius; dz <= radius; dz++ {
		for dx := -radius; dx <= radius; dx++ {
			key := [2]int{cx + dx, cz + dz}
			c, ok := m.chunks[key]
			if !ok {
				c = &Chunk{X: key[0], Z: key[1], Level: -1}
				m.chunks[key] = c
			}

			level := m.sys.LevelFor(observer, c.Center(maxHeight), c.Radius(maxHeight))
			if level == c.Level {
				continue
			}
			if queued, ok := m.pending[key]; ok && queued == level {
				continue
			}

			// First build is never throttled; level changes are.
			if c.Level >= 0 && !m.limiter.Allow() {
				continue
			}

			select {
			case m.jobs <- buildJob{key: key, level: level}:
				m.pending[key] = level
			default:
				// queue full, retry next frame
			}
		}
	}

	evict := radius + 2
	for key := range m.chunks {
		if abs(key[0]-cx) > evict || abs(key[1]-cz) > evict {
			delete(m.chunks, key)
			delete(m.pending, key)
		}
	}
	m.mu.Unlock()
}

// UpdateSync is Update with in-place mesh builds, used by tests and to
// prime the first frame. It bypasses the worker pool and the remesh
// budget.
func (m *Manager) UpdateSync(observer mgl32.Vec3, radius int) {
	cx := tileCoord(observer.X())
	cz := tileCoord(observer.Z())
	maxHeight := m.gen.MaxHeight()

	m.mu.Lock()
	defer m.mu.Unlock()
	for dz := -radius; dz <= radius; dz++ {
		for dx := -radius; dx <= radius; dx++ {
			key := [2]int{cx + dx, cz + dz}
			c, ok := m.chunks[key]
			if !ok {
				c = &Chunk{X: key[0], Z: key[1], Level: -1}
				m.chunks[key] = c
			}
			level := m.sys.LevelFor(observer, c.Center(maxHeight), c.Radius(maxHeight))
			if level != c.Level {
				c.Mesh = BuildMesh(m.gen, key[0], key[1], level)
				c.Level = level
				delete(m.pending, key)
			}
		}
	}
}

// ChunkView is a render-ready copy of one tile's state. Mesh aliases the
// manager's slice; builds replace rather than mutate meshes, so a view
// stays coherent for the frame it was taken.
type ChunkView struct {
	X, Z  int
	Level int
	Mesh  []float32
}

// Snapshot returns the resident tiles that have a mesh.
func (m *Manager) Snapshot() []ChunkView {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]ChunkView, 0, len(m.chunks))
	for _, c := range m.chunks {
		if c.Level < 0 {
			continue
		}
		out = append(out, ChunkView{X: c.X, Z: c.Z, Level: c.Level, Mesh: c.Mesh})
	}
	return out
}

// LevelCounts returns how many meshed tiles sit at each level, indexed by
// level up to maxLevel. Used by the demo HUDs.
func (m *Manager) LevelCounts(maxLevel int) []int {
	counts := make([]int, maxLevel+1)
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, c := range m.chunks {
		if c.Level >= 0 && c.Level <= maxLevel {
			counts[c.Level]++
		}
	}
	return counts
}

// Len reports the number of resident tiles.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.chunks)
}

func tileCoord(v float32) int {
	return int(math.Floor(float64(v) / ChunkSize))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
