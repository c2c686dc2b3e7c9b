package sim

import (
	"image/color"
	"math"

	"tinygo.org/x/tinyfont"

	"stepkit/maths"
	"stepkit/rt"
)

const (
	fovYRad float32 = 1.0
	nearZ   float32 = 0.02
)

// softDraw is a minimal software rasterizer: perspective projection from the
// simulated head, flat triangle fill, 1px lines, tinyfont labels. Menus are
// planar and sparse, so there is no depth buffer; submission order wins.
type softDraw struct {
	fb   *framebuffer
	in   *simInput
	font tinyfont.Fonter
}

func newSoftDraw(fb *framebuffer, in *simInput) *softDraw {
	return &softDraw{fb: fb, in: in, font: &tinyfont.TomThumb}
}

// project maps a world point to screen coordinates. ok is false behind the
// near plane.
func (d *softDraw) project(world maths.Vec3) (x, y float32, ok bool) {
	local := d.in.Head().ToLocal(world)
	depth := -local.Z
	if depth < nearZ {
		return 0, 0, false
	}
	tan := float32(math.Tan(float64(fovYRad) / 2))
	aspect := float32(d.fb.width) / float32(d.fb.height)
	nx := local.X / (depth * tan * aspect)
	ny := local.Y / (depth * tan)
	x = (nx + 1) / 2 * float32(d.fb.width)
	y = (1 - ny) / 2 * float32(d.fb.height)
	return x, y, true
}

func mulTint(a, b rt.Color) rt.Color {
	mix := func(x, y uint8) uint8 { return uint8(uint16(x) * uint16(y) / 255) }
	return rt.Color{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}

func (d *softDraw) Mesh(_ *rt.MainThreadToken, m *rt.Mesh, mat *rt.Material, transform maths.Matrix, tint rt.Color) {
	if m == nil || len(m.Indices) < 3 {
		return
	}
	c := tint
	if mat != nil {
		c = mulTint(mat.Tint, tint)
	}
	pixel := rgb565(c.R, c.G, c.B)

	d.fb.mu.Lock()
	defer d.fb.mu.Unlock()
	for i := 0; i+2 < len(m.Indices); i += 3 {
		i0, i1, i2 := m.Indices[i], m.Indices[i+1], m.Indices[i+2]
		if int(i0) >= len(m.Vertices) || int(i1) >= len(m.Vertices) || int(i2) >= len(m.Vertices) {
			continue
		}
		x0, y0, ok0 := d.project(transform.TransformPoint(m.Vertices[i0].Pos))
		x1, y1, ok1 := d.project(transform.TransformPoint(m.Vertices[i1].Pos))
		x2, y2, ok2 := d.project(transform.TransformPoint(m.Vertices[i2].Pos))
		if !ok0 || !ok1 || !ok2 {
			continue
		}
		d.fillTriangle(x0, y0, x1, y1, x2, y2, pixel)
	}
}

// fillTriangle rasterizes with edge functions over the bounding box. Both
// windings fill; back-face culling buys nothing on a planar menu.
func (d *softDraw) fillTriangle(x0, y0, x1, y1, x2, y2 float32, pixel uint16) {
	minX := int(math.Floor(float64(min3(x0, x1, x2))))
	maxX := int(math.Ceil(float64(max3(x0, x1, x2))))
	minY := int(math.Floor(float64(min3(y0, y1, y2))))
	maxY := int(math.Ceil(float64(max3(y0, y1, y2))))
	if minX < 0 {
		minX = 0
	}
	if minY < 0 {
		minY = 0
	}
	if maxX >= d.fb.width {
		maxX = d.fb.width - 1
	}
	if maxY >= d.fb.height {
		maxY = d.fb.height - 1
	}

	edge := func(ax, ay, bx, by, px, py float32) float32 {
		return (bx-ax)*(py-ay) - (by-ay)*(px-ax)
	}
	area := edge(x0, y0, x1, y1, x2, y2)
	if area == 0 {
		return
	}

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			px, py := float32(x)+0.5, float32(y)+0.5
			w0 := edge(x1, y1, x2, y2, px, py)
			w1 := edge(x2, y2, x0, y0, px, py)
			w2 := edge(x0, y0, x1, y1, px, py)
			if (w0 >= 0 && w1 >= 0 && w2 >= 0) || (w0 <= 0 && w1 <= 0 && w2 <= 0) {
				d.fb.setPixel(x, y, pixel)
			}
		}
	}
}

func (d *softDraw) Line(_ *rt.MainThreadToken, from, to maths.Vec3, tint rt.Color, _ float32) {
	x0, y0, ok0 := d.project(from)
	x1, y1, ok1 := d.project(to)
	if !ok0 || !ok1 {
		return
	}
	pixel := rgb565(tint.R, tint.G, tint.B)

	d.fb.mu.Lock()
	defer d.fb.mu.Unlock()
	// Bresenham.
	ix0, iy0, ix1, iy1 := int(x0), int(y0), int(x1), int(y1)
	dx := abs(ix1 - ix0)
	dy := -abs(iy1 - iy0)
	sx, sy := 1, 1
	if ix0 > ix1 {
		sx = -1
	}
	if iy0 > iy1 {
		sy = -1
	}
	err := dx + dy
	for {
		d.fb.setPixel(ix0, iy0, pixel)
		if ix0 == ix1 && iy0 == iy1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			ix0 += sx
		}
		if e2 <= dx {
			err += dx
			iy0 += sy
		}
	}
}

func (d *softDraw) Text(_ *rt.MainThreadToken, text string, transform maths.Matrix, tint rt.Color, align rt.TextAlign) {
	x, y, ok := d.project(transform.TransformPoint(maths.Vec3{}))
	if !ok || text == "" {
		return
	}
	c := color.RGBA{R: tint.R, G: tint.G, B: tint.B, A: tint.A}

	sx, sy := int16(x), int16(y)
	if align == rt.AlignCenter {
		_, w := tinyfont.LineWidth(d.font, text)
		sx -= int16(w / 2)
	}

	d.fb.mu.Lock()
	defer d.fb.mu.Unlock()
	tinyfont.WriteLine(&fbDisplayer{fb: d.fb}, d.font, sx, sy, text, c)
}

func min3(a, b, c float32) float32 { return maths.Min(maths.Min(a, b), c) }

func max3(a, b, c float32) float32 {
	m := a
	if b > m {
		m = b
	}
	if c > m {
		m = c
	}
	return m
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
