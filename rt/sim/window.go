package sim

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"

	"stepkit/internal/buildinfo"
	"stepkit/rt"
)

// RunWindow opens a desktop window backed by a Sim runtime and drives the
// application from ebiten's game loop. newApp receives the runtime and
// returns the per-frame callback plus a shutdown hook that runs once the
// window closes. Blocks until the window closes or frame reports an error.
func RunWindow(cfg Config, newApp func(rt.Runtime) (frame func() error, shutdown func())) error {
	s := New(cfg)
	frame, shutdown := newApp(s)

	g := &simGame{s: s, frame: frame}
	ebiten.SetWindowTitle(s.cfg.Title + " (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(s.cfg.Width*2, s.cfg.Height*2)
	ebiten.SetTPS(60)
	err := ebiten.RunGame(g)
	if shutdown != nil {
		shutdown()
	}
	if err == ebiten.Termination {
		return nil
	}
	return err
}

type simGame struct {
	s       *Sim
	frame   func() error
	img     *image.RGBA
	fbImg   *ebiten.Image
	scratch []byte
}

func (g *simGame) Update() error {
	g.s.focused = ebiten.IsFocused()
	g.s.input.poll()
	if g.frame != nil {
		if err := g.frame(); err != nil {
			return err
		}
	}
	if g.s.quit {
		return ebiten.Termination
	}
	return nil
}

func (g *simGame) Draw(screen *ebiten.Image) {
	fb := g.s.fb
	if g.img == nil {
		g.img = image.NewRGBA(image.Rect(0, 0, fb.width, fb.height))
		g.scratch = make([]byte, len(fb.buf))
		g.fbImg = ebiten.NewImage(fb.width, fb.height)
	}

	fb.snapshot(g.scratch)

	src := g.scratch
	dst := g.img.Pix
	for i := 0; i+1 < len(src) && i/2*4+3 < len(dst); i += 2 {
		r, gg, b := rgb888From565(uint16(src[i]) | uint16(src[i+1])<<8)
		j := (i / 2) * 4
		dst[j+0] = r
		dst[j+1] = gg
		dst[j+2] = b
		dst[j+3] = 0xFF
	}

	g.fbImg.WritePixels(g.img.Pix)
	screen.DrawImage(g.fbImg, nil)
}

func (g *simGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.s.fb.width, g.s.fb.height
}
