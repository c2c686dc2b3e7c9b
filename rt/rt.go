// Package rt defines the runtime capability boundary: the set of interfaces the
// application framework consumes from a mixed-reality runtime.
//
// The framework never links a concrete runtime. Backends (an OpenXR binding, the
// desktop simulator in rt/sim, in-memory fakes in tests) provide an implementation
// of Runtime and the framework drives it one frame at a time.
package rt

import (
	"errors"

	"stepkit/maths"
)

var ErrNotImplemented = errors.New("not implemented")

// Backend identifies the class of runtime behind the interface.
type Backend uint8

const (
	BackendSimulator Backend = iota + 1
	BackendXR
)

// AppFocus is the runtime's session focus state.
type AppFocus uint8

const (
	FocusActive AppFocus = iota + 1
	FocusBackground
	FocusHidden
)

// Time provides the frame timebase, in seconds.
type Time interface {
	// StepUnscaled returns the duration of the last frame.
	StepUnscaled() float64
	// TotalUnscaled returns monotonic time since runtime start.
	TotalUnscaled() float64
}

// Sound plays the built-in UI sounds at a world position.
type Sound interface {
	Click(at maths.Vec3)
	Unclick(at maths.Vec3)
}

// Logger writes structured log lines. Implementations must be safe for
// concurrent use: runtime log callbacks may fire from worker threads.
type Logger interface {
	Info(msg string, keyvals ...any)
	Warn(msg string, keyvals ...any)
	Error(msg string, keyvals ...any)
	Diag(msg string, keyvals ...any)
}

// Runtime is the only contact point between the framework and the runtime.
type Runtime interface {
	// Step advances one runtime frame. A false return means the runtime asks
	// the application to stop.
	Step() bool
	// Quit asks the runtime to stop at its next step.
	Quit()

	Input() Input
	Draw() Draw
	Sound() Sound
	Assets() Assets
	Time() Time
	Log() Logger

	Backend() Backend
	Focus() AppFocus
	// IsMobile reports whether the platform suspends rendering when the
	// session loses focus (standalone headsets).
	IsMobile() bool
}
