package rt

import "stepkit/maths"

// Color is an RGBA color in 8-bit channels.
type Color struct {
	R, G, B, A uint8
}

func RGB(r, g, b uint8) Color { return Color{R: r, G: g, B: b, A: 0xFF} }

// Lerp interpolates toward another color.
func (c Color) Lerp(o Color, t float32) Color {
	t = maths.Clamp01(t)
	mix := func(a, b uint8) uint8 {
		return uint8(float32(a) + (float32(b)-float32(a))*t)
	}
	return Color{mix(c.R, o.R), mix(c.G, o.G), mix(c.B, o.B), mix(c.A, o.A)}
}

// Theme colors used by the built-in UI steppers.
var (
	ColorWhite   = RGB(0xFF, 0xFF, 0xFF)
	ColorPrimary = RGB(0x2D, 0x9C, 0xDB)
	ColorDim     = RGB(0x50, 0x50, 0x58)
)

// Vertex is a mesh vertex.
type Vertex struct {
	Pos    maths.Vec3
	Normal maths.Vec3
}

// Mesh is a triangle-list mesh. Vertex data may be replaced between frames.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
}

// SetData replaces the mesh contents.
func (m *Mesh) SetData(verts []Vertex, inds []uint32) {
	m.Vertices = verts
	m.Indices = inds
}

// Material is an opaque surface handle resolved through Assets.
type Material struct {
	Name string
	Tint Color
}

// Assets resolves named runtime assets. Lookup failures return a usable
// default, never an error: a menu must not refuse to open over a missing icon.
type Assets interface {
	Material(name string) *Material
}

// TextAlign positions text relative to its transform origin.
type TextAlign uint8

const (
	AlignCenter TextAlign = iota
	AlignTopLeft
)

// Draw submits geometry for the current frame. Every call requires the frame's
// MainThreadToken, which only the application loop produces.
type Draw interface {
	Mesh(t *MainThreadToken, m *Mesh, mat *Material, transform maths.Matrix, tint Color)
	Text(t *MainThreadToken, text string, transform maths.Matrix, tint Color, align TextAlign)
	Line(t *MainThreadToken, from, to maths.Vec3, tint Color, thickness float32)
}
