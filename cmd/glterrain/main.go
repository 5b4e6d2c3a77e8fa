// glterrain renders the LOD-managed heightfield in 3D. Tiles are drawn
// in wireframe and tinted by level, which makes the triangle density
// falloff and the adaptive degradation directly visible.
package main

import (
	"flag"
	"fmt"
	"log"
	"runtime"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/xlab/closer"

	"terralod/internal/config"
	"terralod/internal/frame"
	"terralod/internal/lod"
	"terralod/internal/profiling"
	"terralod/internal/terrain"
)

const (
	windowWidth  = 1280
	windowHeight = 800

	observerSpeed = 600.0 // world units per second
)

func init() {
	runtime.LockOSThread()
}

func main() {
	seed := flag.Int64("seed", 42, "terrain seed")
	radius := flag.Int("radius", 10, "resident chunk radius around the observer")
	adaptive := flag.Bool("adaptive", true, "enable framerate-adaptive quality")
	target := flag.Float64("target-fps", 60, "target framerate for adaptive quality")
	fpsLimit := flag.Int("fps-limit", 0, "frame rate cap, 0 = uncapped")
	wireframe := flag.Bool("wireframe", true, "draw tiles as wireframe")
	flag.Parse()

	config.SetViewRadius(*radius)
	config.SetFPSLimit(*fpsLimit)

	if err := glfw.Init(); err != nil {
		panic(err)
	}
	closer.Bind(glfw.Terminate)

	window, err := setupWindow()
	if err != nil {
		panic(err)
	}

	if err := gl.Init(); err != nil {
		panic(err)
	}

	program, err := newProgram(vertexShaderSrc, fragmentShaderSrc)
	if err != nil {
		panic(err)
	}
	defer gl.DeleteProgram(program)

	cfg := lod.DefaultConfig()
	cfg.AdaptiveQuality = *adaptive
	cfg.TargetFramerate = *target

	loop := frame.NewLoop()
	counter := frame.NewCounter()
	sys, err := lod.New(cfg, loop, counter)
	if err != nil {
		log.Fatalf("lod setup failed: %v", err)
	}
	closer.Bind(sys.Dispose)

	mgr := terrain.NewManager(sys, terrain.NewGenerator(*seed), 0)
	closer.Bind(mgr.Close)

	observer := mgl32.Vec3{terrain.ChunkSize / 2, 0, terrain.ChunkSize / 2}
	mgr.UpdateSync(observer, 2)

	meshes := newMeshCache()
	defer meshes.Release()

	limiter := frame.NewLimiter(config.GetFPSLimit())
	lastTime := time.Now()

	gl.Enable(gl.DEPTH_TEST)
	if *wireframe {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	}

	for !window.ShouldClose() {
		profiling.ResetFrame()
		startTick := time.Now()
		now := time.Now()
		dt := now.Sub(lastTime).Seconds()
		lastTime = now

		glfw.PollEvents()
		observer = moveObserver(window, observer, dt)
		if window.GetKey(glfw.KeyEscape) == glfw.Press {
			window.SetShouldClose(true)
		}

		// Performance loop first, then tile levels, then drawing, so the
		// frame renders what this frame's offset selected.
		loop.Tick(dt)
		mgr.Update(observer, config.GetViewRadius())

		render(program, meshes, mgr, observer)
		meshes.Sweep()
		window.SwapBuffers()

		counter.Frame()

		if processingDuration := time.Since(startTick); processingDuration > 16*time.Millisecond {
			log.Printf("Slow frame: %v. Top tasks: %s", processingDuration, profiling.TopN(5))
		}

		limiter.Wait()
	}

	closer.Close()
}

func setupWindow() (*glfw.Window, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.False)

	window, err := glfw.CreateWindow(windowWidth, windowHeight, "terralod", nil, nil)
	if err != nil {
		return nil, fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(0)
	return window, nil
}

func moveObserver(window *glfw.Window, observer mgl32.Vec3, dt float64) mgl32.Vec3 {
	step := float32(observerSpeed * dt)
	if window.GetKey(glfw.KeyLeftShift) == glfw.Press {
		step *= 4
	}
	if window.GetKey(glfw.KeyA) == glfw.Press {
		observer[0] -= step
	}
	if window.GetKey(glfw.KeyD) == glfw.Press {
		observer[0] += step
	}
	if window.GetKey(glfw.KeyW) == glfw.Press {
		observer[2] -= step
	}
	if window.GetKey(glfw.KeyS) == glfw.Press {
		observer[2] += step
	}
	return observer
}

// levelTints colors tiles full-detail green through coarsest red.
var levelTints = []mgl32.Vec3{
	{0.18, 0.63, 0.26},
	{0.52, 0.71, 0.22},
	{0.79, 0.69, 0.18},
	{0.86, 0.43, 0.16},
	{0.81, 0.13, 0.18},
}

func render(program uint32, meshes *meshCache, mgr *terrain.Manager, observer mgl32.Vec3) {
	defer profiling.Track("glterrain.Render")()

	gl.ClearColor(0.06, 0.07, 0.09, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	gl.UseProgram(program)

	eye := observer.Add(mgl32.Vec3{0, 900, 1100})
	proj := mgl32.Perspective(mgl32.DegToRad(60.0), float32(windowWidth)/float32(windowHeight), 1.0, 20000.0)
	view := mgl32.LookAtV(eye, observer, mgl32.Vec3{0, 1, 0})

	projLoc := gl.GetUniformLocation(program, gl.Str("proj\x00"))
	viewLoc := gl.GetUniformLocation(program, gl.Str("view\x00"))
	colorLoc := gl.GetUniformLocation(program, gl.Str("color\x00"))
	gl.UniformMatrix4fv(projLoc, 1, false, &proj[0])
	gl.UniformMatrix4fv(viewLoc, 1, false, &view[0])

	for _, v := range mgr.Snapshot() {
		entry := meshes.upload(v)
		if entry.count == 0 {
			continue
		}
		tint := levelTints[len(levelTints)-1]
		if v.Level < len(levelTints) {
			tint = levelTints[v.Level]
		}
		gl.Uniform3f(colorLoc, tint.X(), tint.Y(), tint.Z())
		gl.BindVertexArray(entry.vao)
		gl.DrawArrays(gl.TRIANGLES, 0, entry.count)
	}
	gl.BindVertexArray(0)
}

var vertexShaderSrc = `#version 410 core
layout(location = 0) in vec3 position;
uniform mat4 proj;
uniform mat4 view;
out float height;
void main() {
	height = position.y;
	gl_Position = proj * view * vec4(position, 1.0);
}` + "\x00"

var fragmentShaderSrc = `#version 410 core
in float height;
uniform vec3 color;
out vec4 fragColor;
void main() {
	float shade = 0.55 + 0.45 * clamp(height / 96.0, 0.0, 1.0);
	fragColor = vec4(color * shade, 1.0);
}` + "\x00"

// newProgram compiles shaders and links them into a program.
func newProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	v, err := compileShader(vertexSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	f, err := compileShader(fragmentSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, err
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, v)
	gl.AttachShader(program, f)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		infoLog := make([]byte, logLength+1)
		gl.GetProgramInfoLog(program, logLength, nil, &infoLog[0])
		return 0, fmt.Errorf("program link error: %s", string(infoLog))
	}

	// shaders can be deleted after linking
	gl.DeleteShader(v)
	gl.DeleteShader(f)
	return program, nil
}

func compileShader(src string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csrc, free := gl.Strs(src)
	gl.ShaderSource(shader, 1, csrc, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		infoLog := make([]byte, logLength+1)
		gl.GetShaderInfoLog(shader, logLength, nil, &infoLog[0])
		return 0, fmt.Errorf("shader compile error: %s", string(infoLog))
	}
	return shader, nil
}
