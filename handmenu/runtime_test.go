package handmenu

import (
	"stepkit/maths"
	"stepkit/rt"
)

// fakeRuntime scripts the hand and keyboard state the menu samples each frame.
type fakeRuntime struct {
	input    *fakeInput
	time     *fakeTime
	backend  rt.Backend
	clicks   int
	unclicks int
}

func newFakeRuntime() *fakeRuntime {
	return &fakeRuntime{
		input:   newFakeInput(),
		time:    &fakeTime{dt: 1.0 / 60},
		backend: rt.BackendXR,
	}
}

func (f *fakeRuntime) Step() bool          { return true }
func (f *fakeRuntime) Quit()               {}
func (f *fakeRuntime) Input() rt.Input     { return f.input }
func (f *fakeRuntime) Draw() rt.Draw       { return nopDraw{} }
func (f *fakeRuntime) Sound() rt.Sound     { return f }
func (f *fakeRuntime) Assets() rt.Assets   { return fakeAssets{} }
func (f *fakeRuntime) Time() rt.Time       { return f.time }
func (f *fakeRuntime) Log() rt.Logger      { return nopLogger{} }
func (f *fakeRuntime) Backend() rt.Backend { return f.backend }
func (f *fakeRuntime) Focus() rt.AppFocus  { return rt.FocusActive }
func (f *fakeRuntime) IsMobile() bool      { return false }

func (f *fakeRuntime) Click(maths.Vec3)   { f.clicks++ }
func (f *fakeRuntime) Unclick(maths.Vec3) { f.unclicks++ }

type fakeInput struct {
	head       maths.Pose
	hands      map[rt.Handed]rt.Hand
	keys       map[rt.Key]rt.BtnState
	menuButton rt.BtnState
}

func newFakeInput() *fakeInput {
	return &fakeInput{
		head:  maths.PoseIdentity(),
		hands: map[rt.Handed]rt.Hand{},
		keys:  map[rt.Key]rt.BtnState{},
	}
}

func (in *fakeInput) Hand(h rt.Handed) rt.Hand { return in.hands[h] }

func (in *fakeInput) Controller(h rt.Handed) rt.Controller {
	return rt.Controller{Tracked: rt.Active, Aim: maths.Pose{Position: in.hands[h].IndexTip}}
}

func (in *fakeInput) Head() maths.Pose { return in.head }

func (in *fakeInput) ControllerMenuButton() rt.BtnState { return in.menuButton }

func (in *fakeInput) Key(k rt.Key) rt.BtnState { return in.keys[k] }

// press marks a key just-pressed for exactly one frame.
func (in *fakeInput) press(k rt.Key) { in.keys[k] = rt.Active | rt.JustActive }

func (in *fakeInput) release(k rt.Key) { in.keys[k] = rt.Inactive }

func (in *fakeInput) trackHand(h rt.Handed, tip maths.Vec3) {
	in.hands[h] = rt.Hand{
		Tracked:  rt.Active,
		Palm:     maths.Pose{Position: tip, Orientation: maths.QuatIdentity()},
		IndexTip: tip,
	}
}

// trackHandFacing tracks a hand with the palm turned toward the head, the
// posture the XR open affordance looks for, with a scripted grip state.
func (in *fakeInput) trackHandFacing(h rt.Handed, tip maths.Vec3, grip rt.BtnState) {
	in.hands[h] = rt.Hand{
		Tracked:  rt.Active,
		Palm:     maths.PoseLookAt(tip, in.head.Position),
		IndexTip: tip,
		Grip:     grip,
	}
}

type fakeTime struct {
	dt    float64
	total float64
}

func (t *fakeTime) StepUnscaled() float64  { return t.dt }
func (t *fakeTime) TotalUnscaled() float64 { return t.total }

type nopLogger struct{}

func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}
func (nopLogger) Diag(string, ...any)  {}

type nopDraw struct{}

func (nopDraw) Mesh(*rt.MainThreadToken, *rt.Mesh, *rt.Material, maths.Matrix, rt.Color) {}
func (nopDraw) Text(*rt.MainThreadToken, string, maths.Matrix, rt.Color, rt.TextAlign)   {}
func (nopDraw) Line(*rt.MainThreadToken, maths.Vec3, maths.Vec3, rt.Color, float32)      {}

type fakeAssets struct{}

func (fakeAssets) Material(name string) *rt.Material { return &rt.Material{Name: name} }
