// Package fsm is the lifecycle of one provider editor.
package fsm

import (
	"errors"
	"fmt"
)

type State string

type Event string

const (
	StateIdle    State = "idle"
	StateTesting State = "testing"
	StateSaving  State = "saving"
)

const (
	EventTest  Event = "test"
	EventDone  Event = "done"
	EventSave  Event = "save"
	EventSaved Event = "saved"
)

// ErrInvalidTransition marks an event the current state does not accept.
var ErrInvalidTransition = errors.New("invalid transition")

func Transition(current State, event Event) (State, error) {
	switch current {
	case StateIdle:
		switch event {
		case EventTest:
			return StateTesting, nil
		case EventSave:
			return StateSaving, nil
		default:
			return current, invalidTransition(current, event)
		}
	case StateTesting:
		switch event {
		case EventDone:
			return StateIdle, nil
		default:
			return current, invalidTransition(current, event)
		}
	case StateSaving:
		switch event {
		case EventSaved:
			return StateIdle, nil
		default:
			return current, invalidTransition(current, event)
		}
	default:
		return current, fmt.Errorf("unknown state %q", current)
	}
}

func invalidTransition(state State, event Event) error {
	return fmt.Errorf("%w: %s --(%s)--> ?", ErrInvalidTransition, state, event)
}
