package framework

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stepkit/rt"
)

func newTestRegistry() (*Steppers, *Info) {
	info := NewInfo(newFakeRuntime())
	return NewSteppers(info), info
}

func TestAddRunsNextFrame(t *testing.T) {
	s, _ := newTestRegistry()
	r := newRecorder()
	var token rt.MainThreadToken

	s.Send(Add(r, "rec"))
	require.Equal(t, 0, r.inits, "actions are deferred until the next frame")

	require.True(t, s.Step(&token))
	assert.Equal(t, 1, r.inits)
	assert.Equal(t, 1, r.steps)

	state, ok := s.StateOf("rec")
	require.True(t, ok)
	assert.Equal(t, StateRunning, state)

	report := token.EventReport()
	require.Len(t, report, 1)
	assert.Equal(t, EventKeyRunning, report[0].Key)
	assert.Equal(t, "rec", report[0].Origin)
}

func TestRemoveShutsDownOnce(t *testing.T) {
	s, _ := newTestRegistry()
	r := newRecorder()
	var token rt.MainThreadToken

	s.Send(Add(r, "rec"))
	require.True(t, s.Step(&token))
	token.ClearEvents()

	s.Send(Remove("rec"))
	s.Send(Remove("rec"))
	require.True(t, s.Step(&token))

	assert.Equal(t, 1, r.shutdowns, "duplicate removes shut down once")
	assert.Equal(t, 0, s.Len())

	report := token.EventReport()
	require.Len(t, report, 1)
	assert.Equal(t, EventKeyRemoved, report[0].Key)
	assert.Equal(t, "rec", report[0].Origin)
}

func TestRemoveUnknownIDIsNoop(t *testing.T) {
	s, _ := newTestRegistry()
	var token rt.MainThreadToken

	s.Send(Remove("nobody"))
	require.True(t, s.Step(&token))
	assert.Empty(t, token.EventReport())
}

func TestDuplicateIDsRemovedTogether(t *testing.T) {
	s, _ := newTestRegistry()
	a, b := newRecorder(), newRecorder()
	var token rt.MainThreadToken

	s.Send(Add(a, "twin"))
	s.Send(Add(b, "twin"))
	require.True(t, s.Step(&token))
	require.Equal(t, 2, s.Len())

	s.Send(Remove("twin"))
	require.True(t, s.Step(&token))
	assert.Equal(t, 1, a.shutdowns)
	assert.Equal(t, 1, b.shutdowns)
	assert.Equal(t, 0, s.Len())
}

func TestInitializeFalseDropsRegistration(t *testing.T) {
	s, _ := newTestRegistry()
	r := newRecorder()
	r.initOK = false
	var token rt.MainThreadToken

	s.Send(Add(r, "rec"))
	require.True(t, s.Step(&token))

	assert.Equal(t, 1, r.inits)
	assert.Equal(t, 0, r.steps)
	assert.Equal(t, 0, r.shutdowns, "a dropped registration is never shut down")
	assert.Equal(t, 0, s.Len())
	assert.Empty(t, token.EventReport())
}

func TestDeferredInitialize(t *testing.T) {
	s, _ := newTestRegistry()
	p := &pollingStepper{recorder: *newRecorder(), shutdownDone: true}
	var token rt.MainThreadToken

	s.Send(Add(p, "poll"))
	require.True(t, s.Step(&token))
	assert.Equal(t, 0, p.steps)
	assert.Empty(t, token.EventReport())

	require.True(t, s.Step(&token))
	assert.Equal(t, 0, p.steps, "still pending")

	p.initDone = true
	require.True(t, s.Step(&token))
	assert.Equal(t, 1, p.steps)

	report := token.EventReport()
	require.Len(t, report, 1)
	assert.Equal(t, EventKeyRunning, report[0].Key)

	state, ok := s.StateOf("poll")
	require.True(t, ok)
	assert.Equal(t, StateRunning, state)
}

func TestDeferredShutdown(t *testing.T) {
	s, _ := newTestRegistry()
	p := &pollingStepper{recorder: *newRecorder(), initDone: true}
	var token rt.MainThreadToken

	s.Send(Add(p, "poll"))
	require.True(t, s.Step(&token))
	token.ClearEvents()

	s.Send(Remove("poll"))
	require.True(t, s.Step(&token))
	assert.Equal(t, 1, p.shutdowns)
	assert.Equal(t, 1, s.Len(), "closing handler stays until done")
	assert.Empty(t, token.EventReport())

	steps := p.steps
	require.True(t, s.Step(&token))
	assert.Equal(t, steps, p.steps, "closing handlers are not stepped")

	p.shutdownDone = true
	require.True(t, s.Step(&token))
	assert.Equal(t, 0, s.Len())
	report := token.EventReport()
	require.Len(t, report, 1)
	assert.Equal(t, EventKeyRemoved, report[0].Key)
}

func TestRemoveAllByType(t *testing.T) {
	s, _ := newTestRegistry()
	a, b, c := newRecorder(), newRecorder(), newRecorder()
	g := &gatedStepper{recorder: *newRecorder(), enabled: true}
	var token rt.MainThreadToken

	s.Send(Add(a, "a"))
	s.Send(Add(b, "b"))
	s.Send(Add(c, "c"))
	s.Send(Add(g, "g"))
	require.True(t, s.Step(&token))
	require.Equal(t, 4, s.Len())

	s.Send(RemoveAll(TagOf(a)))
	require.True(t, s.Step(&token))

	assert.Equal(t, 1, a.shutdowns)
	assert.Equal(t, 1, b.shutdowns)
	assert.Equal(t, 1, c.shutdowns)
	assert.Equal(t, 0, g.shutdowns, "other types survive")
	assert.Equal(t, 1, s.Len())
}

func TestDisabledStepperSkipped(t *testing.T) {
	s, _ := newTestRegistry()
	g := &gatedStepper{recorder: *newRecorder()}
	var token rt.MainThreadToken

	s.Send(Add(g, "g"))
	require.True(t, s.Step(&token))
	assert.Equal(t, 0, g.steps)
	assert.Equal(t, 1, s.Len())

	g.enabled = true
	require.True(t, s.Step(&token))
	assert.Equal(t, 1, g.steps)
}

func TestStepOrderFollowsRegistration(t *testing.T) {
	s, _ := newTestRegistry()
	var order []string
	mk := func(name string) *recorder {
		r := newRecorder()
		r.onStep = func(*recorder, *rt.MainThreadToken) { order = append(order, name) }
		return r
	}
	var token rt.MainThreadToken

	s.Send(Add(mk("first"), "first"))
	s.Send(Add(mk("second"), "second"))
	s.Send(Add(mk("third"), "third"))
	require.True(t, s.Step(&token))

	assert.Equal(t, []string{"first", "second", "third"}, order)
}

func TestActionsPostedDuringStepSeenNextFrame(t *testing.T) {
	s, info := newTestRegistry()
	late := newRecorder()
	poster := newRecorder()
	posted := false
	poster.onStep = func(r *recorder, _ *rt.MainThreadToken) {
		if !posted {
			posted = true
			info.Send(Add(late, "late"))
		}
	}
	var token rt.MainThreadToken

	s.Send(Add(poster, "poster"))
	require.True(t, s.Step(&token))
	assert.Equal(t, 0, late.inits, "mid-frame action is not drained this frame")

	require.True(t, s.Step(&token))
	assert.Equal(t, 1, late.inits)
	assert.Equal(t, 1, late.steps)
}

func TestEventVisibleToAllSteppersOneFrame(t *testing.T) {
	s, _ := newTestRegistry()
	var seen []string
	r := newRecorder()
	r.onStep = func(_ *recorder, token *rt.MainThreadToken) {
		for _, ev := range token.EventReport() {
			if ev.Key == "ping" {
				seen = append(seen, ev.Value)
			}
		}
	}
	var token rt.MainThreadToken

	s.Send(Add(r, "rec"))
	require.True(t, s.Step(&token))
	token.ClearEvents()

	s.Send(Event("tester", "ping", "one"))
	require.True(t, s.Step(&token))
	token.ClearEvents()
	require.True(t, s.Step(&token))

	assert.Equal(t, []string{"one"}, seen, "events last exactly one frame")
}

func TestQuitStopsDrainKeepsRemainder(t *testing.T) {
	s, _ := newTestRegistry()
	r := newRecorder()
	var token rt.MainThreadToken

	s.Send(Add(r, "rec"))
	require.True(t, s.Step(&token))
	token.ClearEvents()
	steps := r.steps

	s.Send(Event("tester", "before", ""))
	s.Send(Quit("tester", "test over"))
	s.Send(Event("tester", "after", ""))

	require.False(t, s.Step(&token))
	report := token.EventReport()
	require.Len(t, report, 1)
	assert.Equal(t, "before", report[0].Key)
	assert.Equal(t, steps, r.steps, "quit frame skips stepping")
	token.ClearEvents()

	// The undrained remainder is observed on the following frame.
	require.True(t, s.Step(&token))
	report = token.EventReport()
	require.Len(t, report, 1)
	assert.Equal(t, "after", report[0].Key)
}

func TestShutdownDrainsAndDiscardsQueue(t *testing.T) {
	s, _ := newTestRegistry()
	a := newRecorder()
	p := &pollingStepper{recorder: *newRecorder(), initDone: true}
	var token rt.MainThreadToken

	s.Send(Add(a, "a"))
	s.Send(Add(p, "p"))
	require.True(t, s.Step(&token))

	p.shutdownDone = true
	never := newRecorder()
	s.Send(Add(never, "never"))
	s.Shutdown()

	assert.Equal(t, 1, a.shutdowns)
	assert.Equal(t, 1, p.shutdowns)
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, 0, never.inits, "pending actions are discarded")
}
