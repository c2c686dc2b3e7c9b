package handmenu

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSliceMeshShape(t *testing.T) {
	m := generateSliceMesh(72, 0.03, 0.10, 0)

	segments := int(math.Ceil(72.0 / 6))
	require.Len(t, m.Vertices, (segments+1)*2)
	require.Len(t, m.Indices, segments*6)

	for _, v := range m.Vertices {
		r := math.Hypot(float64(v.Pos.X), float64(v.Pos.Y))
		assert.InDelta(t, 0, float64(v.Pos.Z), 1e-6)
		assert.GreaterOrEqual(t, r, 0.03-1e-6)
		assert.LessOrEqual(t, r, 0.10+1e-6)
	}
	for _, i := range m.Indices {
		assert.Less(t, int(i), len(m.Vertices))
	}
}

func TestSliceMeshGapInsetsEdges(t *testing.T) {
	gapped := generateSliceMesh(72, 0.03, 0.10, 0.002)
	flush := generateSliceMesh(72, 0.03, 0.10, 0)

	// First inner vertex sits at the angular inset gap/rInner, the flush
	// mesh starts at angle zero.
	assert.InDelta(t, 0, math.Atan2(float64(flush.Vertices[0].Pos.Y), float64(flush.Vertices[0].Pos.X)), 1e-5)
	inner := math.Atan2(float64(gapped.Vertices[0].Pos.Y), float64(gapped.Vertices[0].Pos.X))
	assert.InDelta(t, 0.002/0.03, inner, 1e-5)

	// The outer edge uses a smaller angular inset so the gap stays a
	// constant width across the ring.
	outer := math.Atan2(float64(gapped.Vertices[1].Pos.Y), float64(gapped.Vertices[1].Pos.X))
	assert.InDelta(t, 0.002/0.10, outer, 1e-5)
	assert.Less(t, outer, inner)
}

func TestSliceMeshFullRing(t *testing.T) {
	m := generateSliceMesh(360, 0.016, 0.02, 0)
	require.NotEmpty(t, m.Vertices)

	last := m.Vertices[len(m.Vertices)-2].Pos // last inner vertex
	first := m.Vertices[0].Pos
	assert.InDelta(t, float64(first.X), float64(last.X), 1e-5)
	assert.InDelta(t, float64(first.Y), float64(last.Y), 1e-5)
}

func TestSliceMeshRejectsDegenerateInput(t *testing.T) {
	assert.Empty(t, generateSliceMesh(0, 0.03, 0.10, 0).Vertices)
	assert.Empty(t, generateSliceMesh(-10, 0.03, 0.10, 0).Vertices)
	assert.Empty(t, generateSliceMesh(72, 0.10, 0.03, 0).Vertices)
	assert.Empty(t, generateSliceMesh(72, -0.01, 0.10, 0).Vertices)
	// A gap wider than the slice collapses it.
	assert.Empty(t, generateSliceMesh(1, 0.03, 0.10, 0.01).Vertices)
}
