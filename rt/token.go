package rt

// Event is one key/value broadcast visible to every stepper for one frame.
type Event struct {
	Origin string
	Key    string
	Value  string
}

// MainThreadToken proves the caller is on the render thread for the current
// frame. The application loop produces exactly one per frame and lends it by
// reference to step callbacks; nothing else may construct or retain one.
//
// It also carries the frame's accumulated event report.
type MainThreadToken struct {
	noCopy noCopy

	events []Event
}

// EventReport returns the events accumulated for the current frame.
func (t *MainThreadToken) EventReport() []Event { return t.events }

// AddEvent appends to the frame's event report. Loop and registry use only.
func (t *MainThreadToken) AddEvent(ev Event) { t.events = append(t.events, ev) }

// ClearEvents resets the report at the end of the frame. Loop use only.
func (t *MainThreadToken) ClearEvents() { t.events = t.events[:0] }

// noCopy triggers `go vet` copylocks on pass-by-value.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}
