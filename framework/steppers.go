package framework

import (
	"time"

	"stepkit/rt"
)

// StepperState is the registry-side lifecycle state of one handler.
// Transitions are one-way: Initializing → Running → Closing → removed.
// A stepper is never reinitialized in place; re-adding needs a new instance.
type StepperState uint8

const (
	StateInitializing StepperState = iota + 1
	StateRunning
	StateClosing
)

func (s StepperState) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateRunning:
		return "running"
	case StateClosing:
		return "closing"
	default:
		return "unknown"
	}
}

// stepperHandler is the registry's unit of ownership: exactly one per live
// stepper. Closing handlers are no longer stepped but keep being polled for
// shutdown completion.
type stepperHandler struct {
	id      StepperID
	tag     TypeTag
	stepper Stepper
	state   StepperState
	remove  bool
}

// Steppers owns the live steppers and the FIFO of pending actions, and
// advances both one frame at a time. Not safe for concurrent use: everything
// here runs on the main thread. Cross-thread producers go through Proxy.
type Steppers struct {
	info     *Info
	handlers []*stepperHandler
	queue    []StepperAction
}

// NewSteppers creates a registry bound to the shared handle.
func NewSteppers(info *Info) *Steppers {
	s := &Steppers{info: info}
	info.steppers = s
	return s
}

// Send enqueues an action. It is observed at the start of the next frame's
// action drain, never during the current frame.
func (s *Steppers) Send(a StepperAction) {
	s.queue = append(s.queue, a)
}

// Len returns the number of live handlers (any state).
func (s *Steppers) Len() int { return len(s.handlers) }

// StateOf reports the state of the first handler with the given id.
func (s *Steppers) StateOf(id StepperID) (StepperState, bool) {
	for _, h := range s.handlers {
		if h.id == id {
			return h.state, true
		}
	}
	return 0, false
}

// Step advances the registry one frame: drain queued actions in enqueue
// order, advance per-handler lifecycle, prune, then step running handlers in
// registration order. Returns false when a Quit action was drained; the
// remaining frame work is skipped and the caller shuts the application down.
func (s *Steppers) Step(token *rt.MainThreadToken) bool {
	// Only actions enqueued before this frame are drained; anything posted
	// while draining or stepping is observed next frame.
	pending := s.queue
	s.queue = nil

	for n, a := range pending {
		switch a.Kind {
		case ActionAdd:
			s.add(a)
		case ActionRemove:
			s.close(func(h *stepperHandler) bool { return h.id == a.ID })
		case ActionRemoveAll:
			s.close(func(h *stepperHandler) bool { return h.tag == a.Tag })
		case ActionQuit:
			s.info.Log().Info("quit requested", "origin", string(a.ID), "reason", a.Value)
			// Keep undrained actions queued; the caller stops the frame here.
			s.queue = append(pending[n+1:], s.queue...)
			return false
		case ActionEvent:
			token.AddEvent(rt.Event{Origin: string(a.ID), Key: a.Key, Value: a.Value})
		default:
			s.info.Log().Warn("unknown stepper action", "kind", a.Kind.String())
		}
	}

	for _, h := range s.handlers {
		switch h.state {
		case StateInitializing:
			if initializeDone(h.stepper) {
				h.state = StateRunning
				token.AddEvent(rt.Event{Origin: string(h.id), Key: EventKeyRunning, Value: "true"})
			}
		case StateClosing:
			if shutdownDone(h.stepper) {
				token.AddEvent(rt.Event{Origin: string(h.id), Key: EventKeyRemoved, Value: "true"})
				h.remove = true
			}
		}
	}

	s.prune()

	for _, h := range s.handlers {
		if h.state == StateRunning && stepperEnabled(h.stepper) {
			h.stepper.Step(token)
		}
	}
	return true
}

func (s *Steppers) add(a StepperAction) {
	if !a.Stepper.Initialize(a.ID, s.info) {
		s.info.Log().Warn("stepper failed to initialize, dropping", "id", string(a.ID))
		return
	}
	s.handlers = append(s.handlers, &stepperHandler{
		id:      a.ID,
		tag:     a.Tag,
		stepper: a.Stepper,
		state:   StateInitializing,
	})
}

func (s *Steppers) close(match func(*stepperHandler) bool) {
	for _, h := range s.handlers {
		if h.state == StateClosing || !match(h) {
			continue
		}
		h.stepper.Shutdown()
		h.state = StateClosing
	}
}

func (s *Steppers) prune() {
	kept := s.handlers[:0]
	for _, h := range s.handlers {
		if !h.remove {
			kept = append(kept, h)
		}
	}
	s.handlers = kept
}

const (
	shutdownPolls    = 50
	shutdownPollWait = 100 * time.Millisecond
)

// Shutdown forces every handler through the closing state with a bounded
// wait: pending actions are discarded, non-closing handlers get their
// Shutdown call in registration order, then ShutdownDone is polled until all
// handlers drain or the budget expires. Stragglers are dropped with a warning.
func (s *Steppers) Shutdown() {
	s.queue = nil
	s.close(func(*stepperHandler) bool { return true })

	for poll := 0; poll < shutdownPolls; poll++ {
		for _, h := range s.handlers {
			if shutdownDone(h.stepper) {
				h.remove = true
			}
		}
		s.prune()
		if len(s.handlers) == 0 {
			return
		}
		time.Sleep(shutdownPollWait)
	}

	for _, h := range s.handlers {
		s.info.Log().Warn("stepper did not finish shutdown, dropping", "id", string(h.id))
	}
	s.handlers = nil
}
