package sim

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"stepkit/maths"
	"stepkit/rt"
)

// handDepth is how far in front of the head the mouse-driven hand floats.
const handDepth float32 = 0.35

// simInput derives XR-ish input from the desktop: the mouse ray positions the
// right hand's index tip, mouse buttons drive pinch and grip, F1 is the
// simulator menu key and Tab the controller menu button. poll runs once per
// window update; between polls all state is frame-stable.
type simInput struct {
	width  int
	height int

	head  maths.Pose
	right rt.Hand
	left  rt.Hand

	menuButton rt.BtnState
	keys       map[rt.Key]rt.BtnState
}

func newSimInput(width, height int) *simInput {
	in := &simInput{
		width:  width,
		height: height,
		head:   maths.PoseIdentity(),
		keys:   make(map[rt.Key]rt.BtnState),
	}
	in.right.Tracked = rt.Active
	return in
}

var simKeys = map[rt.Key]ebiten.Key{
	rt.KeyF1:     ebiten.KeyF1,
	rt.KeyEscape: ebiten.KeyEscape,
	rt.KeySpace:  ebiten.KeySpace,
	rt.KeyTab:    ebiten.KeyTab,
}

// poll refreshes input state from ebiten. Window update thread only.
func (in *simInput) poll() {
	mx, my := ebiten.CursorPosition()
	tip := in.unproject(mx, my)

	in.right.Tracked = rt.BtnStateFrom(in.right.Tracked.IsActive(), true)
	in.right.IndexTip = tip
	// Palm trails the tip slightly and faces the head, so the facing checks
	// used by palm-up affordances succeed under the mouse.
	palmAt := tip.Add(maths.V3(0, -0.02, 0))
	in.right.Palm = maths.PoseLookAt(palmAt, in.head.Position)
	in.right.Pinch = rt.BtnStateFrom(
		in.right.Pinch.IsActive(),
		ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft))
	in.right.Grip = rt.BtnStateFrom(
		in.right.Grip.IsActive(),
		ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight))

	in.left = rt.Hand{} // untracked in the simulator

	for k, ek := range simKeys {
		in.keys[k] = rt.BtnStateFrom(in.keys[k].IsActive(), ebiten.IsKeyPressed(ek))
	}
	in.menuButton = rt.BtnStateFrom(
		in.menuButton.IsActive(),
		inpututil.KeyPressDuration(ebiten.KeyTab) > 0)
}

// unproject maps a window coordinate to a world point at handDepth in front
// of the head.
func (in *simInput) unproject(mx, my int) maths.Vec3 {
	nx := (2*float32(mx)/float32(in.width) - 1)
	ny := (1 - 2*float32(my)/float32(in.height))
	tan := float32(math.Tan(float64(fovYRad) / 2))
	aspect := float32(in.width) / float32(in.height)
	dir := maths.V3(nx*tan*aspect, ny*tan, -1).Normalize()
	return in.head.ToWorld(dir.Scale(handDepth))
}

func (in *simInput) Hand(h rt.Handed) rt.Hand {
	if h == rt.Right {
		return in.right
	}
	return in.left
}

func (in *simInput) Controller(h rt.Handed) rt.Controller {
	hand := in.Hand(h)
	return rt.Controller{
		Tracked: hand.Tracked,
		Aim:     maths.Pose{Position: hand.IndexTip, Orientation: hand.Palm.Orientation},
	}
}

func (in *simInput) Head() maths.Pose { return in.head }

func (in *simInput) ControllerMenuButton() rt.BtnState { return in.menuButton }

func (in *simInput) Key(k rt.Key) rt.BtnState { return in.keys[k] }
