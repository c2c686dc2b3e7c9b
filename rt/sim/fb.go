package sim

import (
	"image/color"
	"sync"
)

// framebuffer is an RGB565 pixel buffer. Draw writes happen on the main
// thread; the window's Draw callback snapshots under the mutex.
type framebuffer struct {
	mu     sync.Mutex
	width  int
	height int
	stride int
	buf    []byte
}

func newFramebuffer(width, height int) *framebuffer {
	stride := width * 2
	return &framebuffer{
		width:  width,
		height: height,
		stride: stride,
		buf:    make([]byte, stride*height),
	}
}

func rgb565(r, g, b uint8) uint16 {
	return uint16(r>>3)<<11 | uint16(g>>2)<<5 | uint16(b>>3)
}

func rgb888From565(p uint16) (r, g, b uint8) {
	r = uint8(((p >> 11) & 0x1F) << 3)
	g = uint8(((p >> 5) & 0x3F) << 2)
	b = uint8((p & 0x1F) << 3)
	return r, g, b
}

func (f *framebuffer) clear(pixel uint16) {
	f.mu.Lock()
	defer f.mu.Unlock()
	lo := byte(pixel)
	hi := byte(pixel >> 8)
	for i := 0; i < len(f.buf); i += 2 {
		f.buf[i] = lo
		f.buf[i+1] = hi
	}
}

func (f *framebuffer) setPixel(x, y int, pixel uint16) {
	if x < 0 || y < 0 || x >= f.width || y >= f.height {
		return
	}
	off := y*f.stride + x*2
	f.buf[off] = byte(pixel)
	f.buf[off+1] = byte(pixel >> 8)
}

func (f *framebuffer) snapshot(dst []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	copy(dst, f.buf)
}

// fbDisplayer adapts the framebuffer to tinyfont's display contract.
type fbDisplayer struct {
	fb *framebuffer
}

func (d *fbDisplayer) Size() (x, y int16) {
	return int16(d.fb.width), int16(d.fb.height)
}

func (d *fbDisplayer) SetPixel(x, y int16, c color.RGBA) {
	if c.A == 0 {
		return
	}
	d.fb.setPixel(int(x), int(y), rgb565(c.R, c.G, c.B))
}

func (d *fbDisplayer) Display() error { return nil }
