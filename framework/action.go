package framework

// ActionKind tags a StepperAction variant.
type ActionKind uint8

const (
	ActionAdd ActionKind = iota + 1
	ActionRemove
	ActionRemoveAll
	ActionQuit
	ActionEvent
)

func (k ActionKind) String() string {
	switch k {
	case ActionAdd:
		return "add"
	case ActionRemove:
		return "remove"
	case ActionRemoveAll:
		return "remove_all"
	case ActionQuit:
		return "quit"
	case ActionEvent:
		return "event"
	default:
		return "unknown"
	}
}

// Event keys emitted by the registry itself.
const (
	// EventKeyRunning fires once when a stepper transitions to running.
	EventKeyRunning = "IStepper_Running"
	// EventKeyRemoved fires once when a stepper is removed.
	EventKeyRemoved = "IStepper_Removed"
)

// StepperAction is a lifecycle command or broadcast routed through the
// registry. Construct values with the Add/Remove/RemoveAll/Quit/Event helpers;
// the zero value is not a valid action.
type StepperAction struct {
	Kind ActionKind

	// ID is the target id for Add/Remove, the origin id for Quit/Event.
	ID StepperID
	// Tag is set for Add and RemoveAll.
	Tag TypeTag
	// Stepper carries the instance for Add; the registry owns it on acceptance.
	Stepper Stepper

	// Key/Value carry the Event payload. Value holds the reason for Quit.
	Key   string
	Value string
}

// Add registers a stepper under the given id. An empty id gets a generated one.
func Add(s Stepper, id StepperID) StepperAction {
	if id == "" {
		id = GenerateID(TagOf(s).String())
	}
	return StepperAction{Kind: ActionAdd, ID: id, Tag: TagOf(s), Stepper: s}
}

// Remove asks every stepper with the given id to shut down gracefully.
func Remove(id StepperID) StepperAction {
	return StepperAction{Kind: ActionRemove, ID: id}
}

// RemoveAll asks every stepper with the given type tag to shut down gracefully.
func RemoveAll(tag TypeTag) StepperAction {
	return StepperAction{Kind: ActionRemoveAll, Tag: tag}
}

// Quit asks the whole registry to stop this frame.
func Quit(origin StepperID, reason string) StepperAction {
	return StepperAction{Kind: ActionQuit, ID: origin, Value: reason}
}

// Event broadcasts a key/value pair to all running steppers for one frame.
func Event(origin StepperID, key, value string) StepperAction {
	return StepperAction{Kind: ActionEvent, ID: origin, Key: key, Value: value}
}
