package handmenu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackAngleFromBackItem(t *testing.T) {
	l := NewLayer("Tools", 0,
		NewItem("Ruler", nil, nil, Callback()),
		NewItem("Marker", nil, nil, Callback()),
		NewItem("Back", nil, nil, Back()),
	)
	// Slice 2 of 3, centered at (2 + 0.5) * 120.
	assert.InDelta(t, 300, float64(l.BackAngle()), 1e-4)
}

func TestBackAngleZeroWithoutBackItem(t *testing.T) {
	l := NewLayer("Root", 0,
		NewItem("A", nil, nil, Callback()),
		NewItem("B", nil, nil, Callback()),
	)
	assert.Zero(t, l.BackAngle())
}

func TestBackAngleTracksMutation(t *testing.T) {
	l := NewLayer("Tools", 0,
		NewItem("Back", nil, nil, Back()),
		NewItem("Ruler", nil, nil, Callback()),
	)
	assert.InDelta(t, 90, float64(l.BackAngle()), 1e-4) // slice 0 of 2

	l.AddItem(NewItem("Marker", nil, nil, Callback()))
	assert.InDelta(t, 60, float64(l.BackAngle()), 1e-4) // slice 0 of 3

	require.True(t, l.RemoveItem("Back"))
	assert.Zero(t, l.BackAngle())
}

func TestAddChildSetsParent(t *testing.T) {
	root := NewLayer("Root", 0)
	child := NewLayer("Tools", 0, NewItem("Back", nil, nil, Back()))
	root.AddChild(child)

	assert.Equal(t, "Root", child.Parent())
	assert.Len(t, root.Items(), 1)
}

func TestFindChildSearchesSubtree(t *testing.T) {
	root := NewLayer("Root", 0)
	mid := NewLayer("Mid", 0)
	leaf := NewLayer("Leaf", 0)
	mid.AddChild(leaf)
	root.AddChild(mid)

	assert.Same(t, mid, root.FindChild("Mid"))
	assert.Same(t, leaf, root.FindChild("Leaf"))
	assert.Nil(t, root.FindChild("Missing"))
}

func TestFindItemIsShallow(t *testing.T) {
	inner := NewItem("Inner", nil, nil, Callback())
	child := NewLayer("Child", 0, inner)
	root := NewLayer("Root", 0, NewItem("Outer", nil, nil, Callback()))
	root.AddChild(child)

	assert.NotNil(t, root.FindItem("Outer"))
	assert.Nil(t, root.FindItem("Inner"), "FindItem does not recurse")
	assert.Same(t, inner, child.FindItem("Inner"))
}

func TestRemoveChildByName(t *testing.T) {
	root := NewLayer("Root", 0)
	root.AddChild(NewLayer("Tools", 0))
	require.True(t, root.RemoveChild("Tools"))
	assert.False(t, root.RemoveChild("Tools"))
	assert.Empty(t, root.Items())
}

func TestRemoveItemSkipsLayers(t *testing.T) {
	root := NewLayer("Root", 0)
	root.AddChild(NewLayer("Tools", 0))
	assert.False(t, root.RemoveItem("Tools"), "RemoveItem only matches leaves")
	assert.Len(t, root.Items(), 1)
}
