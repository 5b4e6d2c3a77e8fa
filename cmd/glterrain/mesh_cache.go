package main

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"terralod/internal/terrain"
)

type meshEntry struct {
	vao   uint32
	vbo   uint32
	count int32
	level int
}

// meshCache keeps one VAO/VBO pair per resident tile and re-uploads a
// tile's vertices when its LOD level changes.
type meshCache struct {
	entries map[[2]int]*meshEntry
	seen    map[[2]int]bool
}

func newMeshCache() *meshCache {
	return &meshCache{
		entries: make(map[[2]int]*meshEntry),
		seen:    make(map[[2]int]bool),
	}
}

// upload returns the GPU entry for a tile, refreshing the buffer if the
// tile was remeshed since the last frame.
func (mc *meshCache) upload(v terrain.ChunkView) *meshEntry {
	key := [2]int{v.X, v.Z}
	mc.seen[key] = true

	entry, ok := mc.entries[key]
	if ok && entry.level == v.Level {
		return entry
	}

	if !ok {
		entry = &meshEntry{level: -1}
		gl.GenVertexArrays(1, &entry.vao)
		gl.GenBuffers(1, &entry.vbo)

		gl.BindVertexArray(entry.vao)
		gl.BindBuffer(gl.ARRAY_BUFFER, entry.vbo)
		gl.EnableVertexAttribArray(0)
		gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 0, gl.PtrOffset(0))
		mc.entries[key] = entry
	} else {
		gl.BindVertexArray(entry.vao)
		gl.BindBuffer(gl.ARRAY_BUFFER, entry.vbo)
	}

	if len(v.Mesh) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(v.Mesh)*4, gl.Ptr(v.Mesh), gl.DYNAMIC_DRAW)
	}
	entry.count = int32(len(v.Mesh) / 3)
	entry.level = v.Level

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
	return entry
}

// Sweep drops GPU buffers for tiles that were not drawn this frame (the
// manager evicted them). Call once per frame after rendering.
func (mc *meshCache) Sweep() {
	for key, entry := range mc.entries {
		if mc.seen[key] {
			continue
		}
		gl.DeleteBuffers(1, &entry.vbo)
		gl.DeleteVertexArrays(1, &entry.vao)
		delete(mc.entries, key)
	}
	clear(mc.seen)
}

// Release frees every cached buffer.
func (mc *meshCache) Release() {
	for key, entry := range mc.entries {
		gl.DeleteBuffers(1, &entry.vbo)
		gl.DeleteVertexArrays(1, &entry.vao)
		delete(mc.entries, key)
	}
	clear(mc.seen)
}
