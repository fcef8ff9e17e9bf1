package timeline

import "time"

// Clock is the single time authority for a playback or capture session.
// Exactly one clock drives a session at a time.
type Clock interface {
	// Now returns the current transcript position in seconds.
	Now() float64
}

// WallClock is a free-running clock for audio-less preview sessions. It
// reports elapsed time since Start, excluding paused spans.
type WallClock struct {
	now     func() time.Time
	started time.Time
	accrued time.Duration
	running bool
}

func NewWallClock() *WallClock {
	return &WallClock{now: time.Now}
}

func (c *WallClock) Start() {
	if c.running {
		return
	}
	c.started = c.now()
	c.running = true
}

func (c *WallClock) Pause() {
	if !c.running {
		return
	}
	c.accrued += c.now().Sub(c.started)
	c.running = false
}

func (c *WallClock) Now() float64 {
	elapsed := c.accrued
	if c.running {
		elapsed += c.now().Sub(c.started)
	}
	return elapsed.Seconds()
}

// FrameClock advances in fixed steps of 1/fps seconds. The capture pipeline
// uses it so frames land on exact timestamps regardless of host timing.
type FrameClock struct {
	frame int
	fps   float64
}

func NewFrameClock(fps float64) *FrameClock {
	if fps <= 0 {
		fps = 30
	}
	return &FrameClock{fps: fps}
}

func (c *FrameClock) Now() float64 {
	return float64(c.frame) / c.fps
}

// Frame returns the zero-based index of the frame at the current position.
func (c *FrameClock) Frame() int {
	return c.frame
}

// Advance moves the clock forward one frame and returns the new position.
func (c *FrameClock) Advance() float64 {
	c.frame++
	return c.Now()
}

// FuncClock adapts an external position source, such as an audio player's
// playback position, into a Clock.
type FuncClock func() float64

func (f FuncClock) Now() float64 { return f() }
