package framework

import (
	"context"
	"sync"
	"time"

	"stepkit/rt"
)

// SleepPhase tracks the loop's focus/sleep state.
type SleepPhase uint8

const (
	PhaseWakingUp SleepPhase = iota + 1
	PhaseWokeUp
	PhaseSleeping
	PhaseStopping
)

func (p SleepPhase) String() string {
	switch p {
	case PhaseWakingUp:
		return "waking_up"
	case PhaseWokeUp:
		return "woke_up"
	case PhaseSleeping:
		return "sleeping"
	case PhaseStopping:
		return "stopping"
	default:
		return "unknown"
	}
}

const sleepingNap = 200 * time.Millisecond

// Hooks are the user-supplied loop callbacks. All fields are optional.
type Hooks struct {
	// OnStep runs once per frame, after the registry has stepped.
	OnStep func(token *rt.MainThreadToken)
	// OnSleeping runs between naps while the XR session is hidden.
	OnSleeping func()
	// OnShutdown runs once with the quit reason, after the registry has
	// shut down.
	OnShutdown func(reason string)
}

// Loop binds an OS event loop to the stepper registry: it owns the frame
// cadence, the per-frame MainThreadToken, sleep/wake transitions tied to XR
// focus, and the channel through which other threads feed actions in.
//
// Hosts drive it through the event callbacks (UserEvent, FocusGained,
// CloseRequested, AboutToWait); Run is a self-driving host for windowless use.
type Loop struct {
	runtime  rt.Runtime
	info     *Info
	steppers *Steppers
	hooks    Hooks

	token rt.MainThreadToken
	phase SleepPhase

	mu        sync.Mutex
	mainQueue []func()

	stopped    bool
	quitReason string
}

// NewLoop wires a runtime, a fresh registry, and the user hooks together.
func NewLoop(runtime rt.Runtime, hooks Hooks) *Loop {
	info := NewInfo(runtime)
	return &Loop{
		runtime:  runtime,
		info:     info,
		steppers: NewSteppers(info),
		hooks:    hooks,
		phase:    PhaseWakingUp,
	}
}

// Info returns the shared handle passed to steppers.
func (l *Loop) Info() *Info { return l.info }

// Steppers returns the registry driven by this loop.
func (l *Loop) Steppers() *Steppers { return l.steppers }

// Phase returns the current sleep phase.
func (l *Loop) Phase() SleepPhase { return l.phase }

// Stopped reports whether the loop has shut down.
func (l *Loop) Stopped() bool { return l.stopped }

// QuitReason returns the reason passed to the shutdown hook, if any.
func (l *Loop) QuitReason() string { return l.quitReason }

// RunOnMain queues fn to run on the main thread at the end of the current or
// next frame. Safe from any goroutine.
func (l *Loop) RunOnMain(fn func()) {
	l.mu.Lock()
	l.mainQueue = append(l.mainQueue, fn)
	l.mu.Unlock()
}

// UserEvent forwards an action arriving from the OS event loop into the
// registry's queue. Main thread only; other threads use Info().Proxy().
func (l *Loop) UserEvent(a StepperAction) {
	l.steppers.Send(a)
}

// FocusGained marks the session visible again; the next frame runs in the
// waking-up phase. Also used for redraw-requested host events.
func (l *Loop) FocusGained() {
	if l.phase != PhaseStopping {
		l.phase = PhaseWakingUp
	}
}

// CloseRequested shuts the registry down, runs the shutdown hook, and stops
// the loop. Idempotent.
func (l *Loop) CloseRequested(reason string) {
	if l.stopped {
		return
	}
	l.stopped = true
	l.quitReason = reason
	l.phase = PhaseStopping
	l.info.Proxy().close()
	l.steppers.Shutdown()
	if l.hooks.OnShutdown != nil {
		l.hooks.OnShutdown(reason)
	}
	l.runtime.Log().Info("loop stopped", "reason", reason)
}

// AboutToWait is the per-tick entry point: the host calls it whenever the OS
// event loop is about to go idle. It advances the sleep phase machine and
// runs at most one frame.
func (l *Loop) AboutToWait() {
	// Cross-thread producers are appended to the registry FIFO before the
	// frame's action drain.
	l.info.Proxy().drain(l.UserEvent)

	if l.runtime.Focus() == rt.FocusHidden && l.phase == PhaseWokeUp && l.runtime.IsMobile() {
		l.runtime.Log().Info("session hidden, sleeping")
		l.phase = PhaseSleeping
	}

	switch l.phase {
	case PhaseWokeUp:
		l.frame()
	case PhaseWakingUp:
		l.frame()
		if l.runtime.Focus() != rt.FocusHidden && l.phase == PhaseWakingUp {
			l.phase = PhaseWokeUp
		}
	case PhaseSleeping:
		time.Sleep(sleepingNap)
		if l.hooks.OnSleeping != nil {
			l.hooks.OnSleeping()
		}
		if !l.runtime.IsMobile() && l.runtime.Focus() == rt.FocusActive {
			l.phase = PhaseWakingUp
		}
	case PhaseStopping:
	}
}

// frame runs one frame to completion. Nothing inside it suspends.
func (l *Loop) frame() {
	if !l.runtime.Step() {
		l.CloseRequested("runtime requested stop")
		return
	}
	if !l.steppers.Step(&l.token) {
		// A Quit action was drained: ask the runtime to stop, then finish
		// the current frame normally.
		l.runtime.Quit()
	}
	l.drainMainQueue()
	if l.hooks.OnStep != nil {
		l.hooks.OnStep(&l.token)
	}
	l.token.ClearEvents()
}

func (l *Loop) drainMainQueue() {
	l.mu.Lock()
	queued := l.mainQueue
	l.mainQueue = nil
	l.mu.Unlock()
	for _, fn := range queued {
		fn()
	}
}

// Run drives the loop without a host window at the given cadence until the
// context is canceled or the loop stops. A zero hz defaults to 60.
func (l *Loop) Run(ctx context.Context, hz int) error {
	if hz <= 0 {
		hz = 60
	}
	t := time.NewTicker(time.Second / time.Duration(hz))
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			l.CloseRequested("context canceled")
			return ctx.Err()
		case <-t.C:
			l.AboutToWait()
			if l.stopped {
				return nil
			}
		}
	}
}
