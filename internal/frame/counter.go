package frame

import "time"

// Counter measures frames per second over a sliding one-second window.
// It doubles as a lod.FramerateSource for hosts like GLFW that do not
// report their own framerate.
type Counter struct {
	frames    int
	fps       float64
	windowEnd time.Time
	now       func() time.Time
}

func NewCounter() *Counter {
	c := &Counter{now: time.Now}
	c.windowEnd = c.now().Add(time.Second)
	return c
}

// Frame records one rendered frame.
func (c *Counter) Frame() {
	c.frames++
	t := c.now()
	if t.Before(c.windowEnd) {
		return
	}
	elapsed := time.Second + t.Sub(c.windowEnd)
	c.fps = float64(c.frames) / elapsed.Seconds()
	c.frames = 0
	c.windowEnd = t.Add(time.Second)
}

// CurrentFPS returns the framerate measured over the last completed
// window; 0 until the first window closes.
func (c *Counter) CurrentFPS() float64 {
	return c.fps
}
