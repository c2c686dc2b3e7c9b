package handmenu

import (
	"math"

	"stepkit/maths"
	"stepkit/rt"
)

// generateSliceMesh builds a flat ring segment in the local XY plane, starting
// at angle 0 and spanning angleDeg counter-clockwise. gap is a tangential
// margin converted to an angular inset of gap/r at each radius, so slice edges
// stay parallel instead of wedging together at the center.
//
// Vertices alternate inner/outer along the arc; indices are a one-sided
// triangle list with consistent winding, normal +Z.
func generateSliceMesh(angleDeg, rInner, rOuter, gap float32) *rt.Mesh {
	if angleDeg <= 0 || rOuter <= rInner || rInner < 0 {
		return &rt.Mesh{}
	}

	// Arc subdivision proportional to the angular span.
	segments := int(math.Ceil(float64(angleDeg) / 6))
	if segments < 1 {
		segments = 1
	}
	count := segments + 1

	span := angleDeg * maths.DegToRad
	var insetInner float32
	if rInner > 0 {
		insetInner = gap / rInner
	}
	insetOuter := gap / rOuter
	spanInner := span - 2*insetInner
	spanOuter := span - 2*insetOuter
	if spanInner < 0 || spanOuter < 0 {
		return &rt.Mesh{}
	}

	verts := make([]rt.Vertex, 0, count*2)
	normal := maths.V3(0, 0, 1)
	for i := 0; i < count; i++ {
		t := float32(i) / float32(count-1)
		aIn := insetInner + t*spanInner
		aOut := insetOuter + t*spanOuter
		verts = append(verts,
			rt.Vertex{Pos: maths.V3(cosf(aIn)*rInner, sinf(aIn)*rInner, 0), Normal: normal},
			rt.Vertex{Pos: maths.V3(cosf(aOut)*rOuter, sinf(aOut)*rOuter, 0), Normal: normal},
		)
	}

	inds := make([]uint32, 0, segments*6)
	for i := 0; i < segments; i++ {
		in0 := uint32(i * 2)
		out0 := in0 + 1
		in1 := in0 + 2
		out1 := in0 + 3
		inds = append(inds,
			in0, out0, in1,
			out0, out1, in1,
		)
	}

	m := &rt.Mesh{}
	m.SetData(verts, inds)
	return m
}

func cosf(rad float32) float32 { return float32(math.Cos(float64(rad))) }
func sinf(rad float32) float32 { return float32(math.Sin(float64(rad))) }
