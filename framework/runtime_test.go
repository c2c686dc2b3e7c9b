package framework

import (
	"stepkit/maths"
	"stepkit/rt"
)

// fakeRuntime is a scriptable rt.Runtime for registry and loop tests.
type fakeRuntime struct {
	stepOK  bool
	quit    bool
	steps   int
	focus   rt.AppFocus
	mobile  bool
	backend rt.Backend
	time    *fakeTime
	log     nopLogger
}

func newFakeRuntime() *fakeRuntime {
	return &fakeRuntime{
		stepOK:  true,
		focus:   rt.FocusActive,
		backend: rt.BackendSimulator,
		time:    &fakeTime{dt: 1.0 / 60},
	}
}

func (f *fakeRuntime) Step() bool {
	f.steps++
	if f.quit {
		return false
	}
	f.time.total += f.time.dt
	return f.stepOK
}

func (f *fakeRuntime) Quit() { f.quit = true }

func (f *fakeRuntime) Input() rt.Input     { return nopInput{} }
func (f *fakeRuntime) Draw() rt.Draw       { return nopDraw{} }
func (f *fakeRuntime) Sound() rt.Sound     { return nopSound{} }
func (f *fakeRuntime) Assets() rt.Assets   { return nopAssets{} }
func (f *fakeRuntime) Time() rt.Time       { return f.time }
func (f *fakeRuntime) Log() rt.Logger      { return f.log }
func (f *fakeRuntime) Backend() rt.Backend { return f.backend }
func (f *fakeRuntime) Focus() rt.AppFocus  { return f.focus }
func (f *fakeRuntime) IsMobile() bool      { return f.mobile }

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

type nopInput struct{}

func (nopInput) Hand(rt.Handed) rt.Hand             { return rt.Hand{} }
func (nopInput) Controller(rt.Handed) rt.Controller { return rt.Controller{} }
func (nopInput) Head() maths.Pose                   { return maths.PoseIdentity() }
func (nopInput) ControllerMenuButton() rt.BtnState  { return rt.Inactive }
func (nopInput) Key(rt.Key) rt.BtnState             { return rt.Inactive }

type nopDraw struct{}

func (nopDraw) Mesh(*rt.MainThreadToken, *rt.Mesh, *rt.Material, maths.Matrix, rt.Color) {}
func (nopDraw) Text(*rt.MainThreadToken, string, maths.Matrix, rt.Color, rt.TextAlign)   {}
func (nopDraw) Line(*rt.MainThreadToken, maths.Vec3, maths.Vec3, rt.Color, float32)      {}

type nopSound struct{}

func (nopSound) Click(maths.Vec3)   {}
func (nopSound) Unclick(maths.Vec3) {}

type nopAssets struct{}

func (nopAssets) Material(string) *rt.Material { return &rt.Material{Name: "default"} }

// recorder is a minimal stepper that records its lifecycle.
type recorder struct {
	id        StepperID
	info      *Info
	initOK    bool
	inits     int
	steps     int
	shutdowns int
	onStep    func(*recorder, *rt.MainThreadToken)
}

func newRecorder() *recorder { return &recorder{initOK: true} }

func (r *recorder) Initialize(id StepperID, info *Info) bool {
	r.inits++
	r.id = id
	r.info = info
	return r.initOK
}

func (r *recorder) Step(token *rt.MainThreadToken) {
	r.steps++
	if r.onStep != nil {
		r.onStep(r, token)
	}
}

func (r *recorder) Shutdown() { r.shutdowns++ }

// pollingStepper defers its running and removed transitions behind flags.
type pollingStepper struct {
	recorder
	initDone     bool
	shutdownDone bool
}

func (p *pollingStepper) InitializeDone() bool { return p.initDone }
func (p *pollingStepper) ShutdownDone() bool   { return p.shutdownDone }

// gatedStepper is skipped while disabled but stays registered.
type gatedStepper struct {
	recorder
	enabled bool
}

func (g *gatedStepper) Enabled() bool { return g.enabled }
