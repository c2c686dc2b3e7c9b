// Package sim is a desktop runtime backend for development and demos: an
// ebiten window stands in for the headset, the mouse drives the right hand,
// and geometry is software-rendered into an RGB565 framebuffer.
package sim

import (
	"stepkit/maths"
	"stepkit/rt"
)

// Config controls the simulator.
type Config struct {
	Width  int
	Height int
	Title  string
	// Mobile makes the simulator report a standalone-headset platform, which
	// lets the application loop exercise its sleep path.
	Mobile bool
}

func (c *Config) defaults() {
	if c.Width <= 0 {
		c.Width = 640
	}
	if c.Height <= 0 {
		c.Height = 640
	}
	if c.Title == "" {
		c.Title = "stepkit sim"
	}
}

// Sim implements rt.Runtime on the desktop. One instance per process.
type Sim struct {
	cfg    Config
	fb     *framebuffer
	input  *simInput
	draw   *softDraw
	sound  *sounds
	assets *assetStore
	time   *frameTime
	log    rt.Logger

	quit    bool
	focused bool
}

// New creates a simulator runtime.
func New(cfg Config) *Sim {
	cfg.defaults()
	logger := newLogger()
	fb := newFramebuffer(cfg.Width, cfg.Height)
	s := &Sim{
		cfg:     cfg,
		fb:      fb,
		input:   newSimInput(cfg.Width, cfg.Height),
		sound:   newSounds(logger),
		assets:  newAssetStore(logger),
		time:    &frameTime{},
		log:     logger,
		focused: true,
	}
	s.draw = newSoftDraw(fb, s.input)
	return s
}

// Step advances one simulator frame: the timebase ticks and the framebuffer
// is cleared for this frame's draw calls.
func (s *Sim) Step() bool {
	if s.quit {
		return false
	}
	s.time.step()
	s.fb.clear(rgb565(0x10, 0x12, 0x18))
	return true
}

// Quit makes the next Step report a stop request.
func (s *Sim) Quit() { s.quit = true }

func (s *Sim) Input() rt.Input   { return s.input }
func (s *Sim) Draw() rt.Draw     { return s.draw }
func (s *Sim) Sound() rt.Sound   { return s.sound }
func (s *Sim) Assets() rt.Assets { return s.assets }
func (s *Sim) Time() rt.Time     { return s.time }
func (s *Sim) Log() rt.Logger    { return s.log }

func (s *Sim) Backend() rt.Backend { return rt.BackendSimulator }

func (s *Sim) Focus() rt.AppFocus {
	if s.focused {
		return rt.FocusActive
	}
	return rt.FocusHidden
}

func (s *Sim) IsMobile() bool { return s.cfg.Mobile }

// RegisterMaterial makes a named material resolvable through Assets.
func (s *Sim) RegisterMaterial(name string, tint rt.Color) {
	s.assets.register(name, tint)
}

// Head returns the simulated head pose: origin, looking down -Z.
func (s *Sim) Head() maths.Pose { return s.input.Head() }
