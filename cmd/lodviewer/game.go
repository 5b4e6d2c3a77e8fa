package main

import (
	"fmt"
	"image/color"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"terralod/internal/config"
	"terralod/internal/frame"
	"terralod/internal/lod"
	"terralod/internal/profiling"
	"terralod/internal/terrain"
)

const (
	screenWidth  = 960
	screenHeight = 720

	// tilePixels is the on-screen size of one terrain tile in the
	// top-down map.
	tilePixels = 24

	observerSpeed = 900.0 // world units per second
)

var hudFont = text.NewGoXFace(basicfont.Face7x13)

// levelColors maps LOD levels to map colors, full detail green through
// coarsest red.
var levelColors = []color.RGBA{
	{46, 160, 67, 255},
	{132, 180, 57, 255},
	{201, 175, 46, 255},
	{219, 109, 40, 255},
	{207, 34, 46, 255},
}

// ebitenFPS adapts ebiten's framerate reading to lod.FramerateSource.
type ebitenFPS struct{}

func (ebitenFPS) CurrentFPS() float64 { return ebiten.ActualFPS() }

// Game is the top-down LOD map viewer: tiles colored by their current
// level, observer moved with the arrow keys or WASD.
type Game struct {
	sys      *lod.System
	mgr      *terrain.Manager
	loop     *frame.Loop
	observer mgl32.Vec3
	lastTick time.Time
}

func newGame(seed int64, adaptive bool, targetFPS float64) (*Game, error) {
	cfg := lod.DefaultConfig()
	cfg.AdaptiveQuality = adaptive
	cfg.TargetFramerate = targetFPS

	g := &Game{
		observer: mgl32.Vec3{terrain.ChunkSize / 2, 0, terrain.ChunkSize / 2},
		lastTick: time.Now(),
	}

	// Ebiten owns the real frame loop; Update forwards each frame into
	// this bus, which carries the system's subscription.
	loop := frame.NewLoop()
	sys, err := lod.New(cfg, loop, ebitenFPS{})
	if err != nil {
		return nil, err
	}
	g.sys = sys
	g.loop = loop

	g.mgr = terrain.NewManager(sys, terrain.NewGenerator(seed), 0)
	g.mgr.UpdateSync(g.observer, 2) // prime the area around the spawn

	return g, nil
}

func (g *Game) Close() {
	g.mgr.Close()
	g.sys.Dispose()
}

func (g *Game) Update() error {
	profiling.ResetFrame()
	now := time.Now()
	dt := now.Sub(g.lastTick).Seconds()
	g.lastTick = now

	g.handleInput(dt)

	// Drive the LOD system first so this frame's queries see the fresh
	// performance offset.
	g.loop.Tick(dt)
	g.mgr.Update(g.observer, config.GetViewRadius())

	return nil
}

func (g *Game) handleInput(dt float64) {
	step := float32(observerSpeed * dt)
	if ebiten.IsKeyPressed(ebiten.KeyShiftLeft) {
		step *= 4
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA) {
		g.observer[0] -= step
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD) {
		g.observer[0] += step
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) || ebiten.IsKeyPressed(ebiten.KeyW) {
		g.observer[2] -= step
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) || ebiten.IsKeyPressed(ebiten.KeyS) {
		g.observer[2] += step
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyE) {
		g.sys.SetEnabled(!g.sys.Enabled())
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	defer profiling.Track("viewer.Draw")()
	screen.Fill(color.RGBA{16, 18, 24, 255})

	scale := float32(tilePixels) / terrain.ChunkSize
	toScreenX := func(worldX float32) float32 {
		return screenWidth/2 + (worldX-g.observer.X())*scale
	}
	toScreenY := func(worldZ float32) float32 {
		return screenHeight/2 + (worldZ-g.observer.Z())*scale
	}

	for _, view := range g.mgr.Snapshot() {
		px := toScreenX(float32(view.X) * terrain.ChunkSize)
		py := toScreenY(float32(view.Z) * terrain.ChunkSize)
		if px < -tilePixels || px > screenWidth || py < -tilePixels || py > screenHeight {
			continue
		}
		c := levelColors[len(levelColors)-1]
		if view.Level < len(levelColors) {
			c = levelColors[view.Level]
		}
		vector.DrawFilledRect(screen, px, py, tilePixels-1, tilePixels-1, c, false)
	}

	// Observer marker.
	vector.DrawFilledCircle(screen, screenWidth/2, screenHeight/2, 4, color.RGBA{255, 255, 255, 255}, false)

	g.drawHUD(screen)
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	counts := g.mgr.LevelCounts(len(levelColors) - 1)
	status := "on"
	if !g.sys.Enabled() {
		status = "off (E toggles)"
	}
	msg := fmt.Sprintf(
		"fps %.0f  offset %d  lod %s\ntiles %d  levels %v\npos %.0f,%.0f",
		ebiten.ActualFPS(), g.sys.PerformanceOffset(), status,
		g.mgr.Len(), counts,
		g.observer.X(), g.observer.Z(),
	)
	options := &text.DrawOptions{}
	options.GeoM.Translate(8, 8)
	options.ColorScale.ScaleWithColor(color.White)
	text.Draw(screen, msg, hudFont, options)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}
