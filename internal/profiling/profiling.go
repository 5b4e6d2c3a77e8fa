// Package profiling is a lightweight per-frame CPU profiler for
// tick-level insights.
package profiling

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

var (
	mu          sync.Mutex
	frameTotals = make(map[string]time.Duration)
)

// Track returns a stop function that records the elapsed time under the
// given name. Usage: defer profiling.Track("terrain.Update")()
func Track(name string) func() {
	start := time.Now()
	return func() {
		d := time.Since(start)
		mu.Lock()
		frameTotals[name] += d
		mu.Unlock()
	}
}

// ResetFrame clears the current totals. Call at the start of each frame.
func ResetFrame() {
	mu.Lock()
	clear(frameTotals)
	mu.Unlock()
}

// Snapshot returns a copy of the current per-frame totals.
func Snapshot() map[string]time.Duration {
	mu.Lock()
	defer mu.Unlock()
	out := make(map[string]time.Duration, len(frameTotals))
	for k, v := range frameTotals {
		out[k] = v
	}
	return out
}

// TopN formats the N largest entries of the current frame, e.g.
// "terrain.Remesh:4.2ms, lod.Tick:0.1ms".
func TopN(n int) string {
	ss := Snapshot()
	type entry struct {
		name string
		dur  time.Duration
	}
	list := make([]entry, 0, len(ss))
	for k, v := range ss {
		list = append(list, entry{name: k, dur: v})
	}
	sort.Slice(list, func(i, j int) bool { return list[i].dur > list[j].dur })
	if n > len(list) {
		n = len(list)
	}
	parts := make([]string, 0, n)
	for _, e := range list[:n] {
		parts = append(parts, fmt.Sprintf("%s:%.1fms", e.name, float64(e.dur.Microseconds())/1000.0))
	}
	return strings.Join(parts, ", ")
}
