package button

import (
	"fmt"
	"time"
)

// Input is a physical control on the prop. The declaration order is the priority in which simultaneous
// transitions are reported.
type Input int

const (
	Power Input = iota
	Reload
	Trigger
	Mode
	inputCount
)

// Inputs lists every input in priority order.
func Inputs() []Input {
	return []Input{Power, Reload, Trigger, Mode}
}

func (i Input) String() string {
	switch i {
	case Power:
		return "power"
	case Reload:
		return "reload"
	case Trigger:
		return "trigger"
	case Mode:
		return "mode"
	}
	return "N/A"
}

type Kind int

const (
	TriggerPressed Kind = iota
	TriggerReleased
	ModePressed
	ReloadPressed
	PowerToggled
	InputFault
)

func (k Kind) String() string {
	switch k {
	case TriggerPressed:
		return "TriggerPressed"
	case TriggerReleased:
		return "TriggerReleased"
	case ModePressed:
		return "ModePressed"
	case ReloadPressed:
		return "ReloadPressed"
	case PowerToggled:
		return "PowerToggled"
	case InputFault:
		return "InputFault"
	}
	return "N/A"
}

type Event struct {
	Kind  Kind
	Input Input
	At    time.Time
}

func (e Event) String() string {
	if e.Kind == InputFault {
		return fmt.Sprintf("Input %v is stuck", e.Input)
	}
	return fmt.Sprintf("%v (%v)", e.Kind, e.Input)
}

// edge maps a debounced level change of an input to the event it produces, if any.
func edge(in Input, active bool) (Kind, bool) {
	switch {
	case in == Trigger && active:
		return TriggerPressed, true
	case in == Trigger:
		return TriggerReleased, true
	case !active:
		return 0, false
	case in == Mode:
		return ModePressed, true
	case in == Reload:
		return ReloadPressed, true
	case in == Power:
		return PowerToggled, true
	}
	return 0, false
}
