package framework

import (
	"sync"

	"stepkit/rt"
)

// Info is the shared handle steppers receive at initialization. It exposes the
// runtime capabilities and two ways to emit actions back into the registry:
// Send for main-thread callers and Proxy for arbitrary threads.
type Info struct {
	runtime  rt.Runtime
	steppers *Steppers
	proxy    *Proxy
}

// NewInfo creates a standalone handle around a runtime. The registry binds
// itself when created; the loop adapter attaches its proxy.
func NewInfo(runtime rt.Runtime) *Info {
	return &Info{runtime: runtime, proxy: newProxy(runtime.Log())}
}

// Runtime returns the runtime capability set.
func (i *Info) Runtime() rt.Runtime { return i.runtime }

// Log is a shortcut for the runtime logger.
func (i *Info) Log() rt.Logger { return i.runtime.Log() }

// Send enqueues an action into the registry FIFO. Main thread only; it is
// observed at the next frame's action drain.
func (i *Info) Send(a StepperAction) {
	if i.steppers == nil {
		i.Log().Warn("action dropped, no registry bound", "kind", a.Kind.String())
		return
	}
	i.steppers.Send(a)
}

// Proxy returns the cross-thread action channel into the event loop.
func (i *Info) Proxy() *Proxy { return i.proxy }

// Proxy delivers StepperActions from arbitrary threads to the event loop.
// Sends are totally ordered once enqueued; a single producer's sends are
// observed in send order.
type Proxy struct {
	mu     sync.Mutex
	ch     chan StepperAction
	closed bool
	log    rt.Logger
}

const proxyCapacity = 256

func newProxy(log rt.Logger) *Proxy {
	return &Proxy{ch: make(chan StepperAction, proxyCapacity), log: log}
}

// Send delivers an action to the event loop. Returns false when the loop has
// exited or the queue overflows; the caller must tolerate either (the loop may
// stop at any time).
func (p *Proxy) Send(a StepperAction) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		p.log.Error("action send after loop exit", "kind", a.Kind.String(), "origin", string(a.ID))
		return false
	}
	select {
	case p.ch <- a:
		return true
	default:
		p.log.Warn("action queue full, dropping", "kind", a.Kind.String(), "origin", string(a.ID))
		return false
	}
}

// drain hands every pending action to fn. Main thread only.
func (p *Proxy) drain(fn func(StepperAction)) {
	for {
		select {
		case a := <-p.ch:
			fn(a)
		default:
			return
		}
	}
}

func (p *Proxy) close() {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()
}
