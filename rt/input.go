package rt

import "stepkit/maths"

// Handed selects one of the user's hands.
type Handed uint8

const (
	Left Handed = iota
	Right
)

func (h Handed) String() string {
	if h == Left {
		return "left"
	}
	return "right"
}

// BtnState describes a button or tracking state for the current frame.
type BtnState uint8

const (
	Inactive     BtnState = 0
	Active       BtnState = 1 << 0
	JustActive   BtnState = 1 << 1
	JustInactive BtnState = 1 << 2
)

func (s BtnState) IsActive() bool       { return s&Active != 0 }
func (s BtnState) IsJustActive() bool   { return s&JustActive != 0 }
func (s BtnState) IsJustInactive() bool { return s&JustInactive != 0 }

// BtnStateFrom derives edge flags from the previous and current pressed state.
func BtnStateFrom(was, is bool) BtnState {
	var s BtnState
	if is {
		s |= Active
	}
	if is && !was {
		s |= JustActive
	}
	if !is && was {
		s |= JustInactive
	}
	return s
}

// Key is a keyboard key, available on simulator backends only.
type Key uint16

const (
	KeyNone Key = iota
	KeyF1
	KeyEscape
	KeySpace
	KeyTab
)

// Hand is the per-frame state of one tracked hand.
//
// Palm forward (-Z of the palm pose) points out of the palm.
type Hand struct {
	Tracked  BtnState
	Palm     maths.Pose
	IndexTip maths.Vec3
	Pinch    BtnState
	Grip     BtnState
}

// Controller is the per-frame state of one motion controller.
type Controller struct {
	Tracked BtnState
	Aim     maths.Pose
	Stick   maths.Vec2
	X1      BtnState
	X2      BtnState
}

// Input exposes per-frame input state. Poll-style: values are stable for the
// duration of one frame.
type Input interface {
	Hand(h Handed) Hand
	Controller(h Handed) Controller
	Head() maths.Pose
	// ControllerMenuButton is the edge-triggered system menu button.
	ControllerMenuButton() BtnState
	// Key reports keyboard state. Non-simulator backends return Inactive.
	Key(k Key) BtnState
}
