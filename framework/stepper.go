// Package framework provides the cooperative, main-thread-pinned lifecycle
// manager for application components ("steppers").
//
// Steppers are created on any thread, handed to the registry through a
// StepperAction, initialized on the main thread, stepped once per frame while
// running, and shut down in registration order. All per-frame work happens
// while holding the frame's rt.MainThreadToken.
package framework

import (
	"reflect"

	"github.com/google/uuid"

	"stepkit/rt"
)

// StepperID is a human-readable stepper identifier. IDs are unique within a
// registry snapshot by convention, and reusable after removal.
type StepperID string

// GenerateID returns a fresh id with the given prefix for callers that do not
// care about the name.
func GenerateID(prefix string) StepperID {
	return StepperID(prefix + "-" + uuid.NewString()[:8])
}

// TypeTag identifies a stepper's concrete type. Tags are stable within a
// process and comparable in O(1); they drive bulk removal.
type TypeTag = reflect.Type

// TagOf returns the type tag for a stepper instance.
func TagOf(s Stepper) TypeTag { return reflect.TypeOf(s) }

// Stepper is the capability set implemented by every application component.
//
// Initialize is called on the main thread exactly once. Returning false aborts
// the registration (logged, no Shutdown call). Initialize must not block the
// frame: spread long work over frames via the InitializePoller extension.
//
// Step runs once per frame while the stepper is running and enabled.
// Shutdown is called exactly once when the stepper leaves the registry.
type Stepper interface {
	Initialize(id StepperID, info *Info) bool
	Step(token *rt.MainThreadToken)
	Shutdown()
}

// InitializePoller defers the transition to running. The registry polls
// InitializeDone each frame after Initialize returned true; the stepper starts
// stepping the frame it first reports true. Steppers without this extension
// run immediately.
type InitializePoller interface {
	InitializeDone() bool
}

// Enabler gates step dispatch. A disabled stepper is skipped but stays
// registered. Steppers without this extension are always enabled.
type Enabler interface {
	Enabled() bool
}

// ShutdownPoller defers removal after Shutdown. The registry polls
// ShutdownDone each frame; the handler is removed the frame it first reports
// true. Steppers without this extension are removed immediately.
type ShutdownPoller interface {
	ShutdownDone() bool
}

func initializeDone(s Stepper) bool {
	if p, ok := s.(InitializePoller); ok {
		return p.InitializeDone()
	}
	return true
}

func stepperEnabled(s Stepper) bool {
	if e, ok := s.(Enabler); ok {
		return e.Enabled()
	}
	return true
}

func shutdownDone(s Stepper) bool {
	if p, ok := s.(ShutdownPoller); ok {
		return p.ShutdownDone()
	}
	return true
}
