// Package fsm models whether the daemon is producing sounds.
package fsm

import "fmt"

type State string

type Event string

const (
	StateStopped   State = "stopped"
	StateListening State = "listening"
	StateMuted     State = "muted"
)

const (
	EventStart  Event = "start"
	EventToggle Event = "toggle"
	EventStop   Event = "stop"
)

// Initial returns the state a freshly started daemon enters for the enabled setting.
func Initial(enabled bool) State {
	if enabled {
		return StateListening
	}
	return StateMuted
}

func Transition(current State, event Event) (State, error) {
	switch current {
	case StateStopped:
		switch event {
		case EventStart:
			return StateListening, nil
		default:
			return current, invalidTransition(current, event)
		}
	case StateListening:
		switch event {
		case EventToggle:
			return StateMuted, nil
		case EventStop:
			return StateStopped, nil
		default:
			return current, invalidTransition(current, event)
		}
	case StateMuted:
		switch event {
		case EventToggle:
			return StateListening, nil
		case EventStop:
			return StateStopped, nil
		default:
			return current, invalidTransition(current, event)
		}
	default:
		return current, fmt.Errorf("unknown state %q", current)
	}
}

func invalidTransition(state State, event Event) error {
	return fmt.Errorf("invalid transition: %s --(%s)--> ?", state, event)
}
