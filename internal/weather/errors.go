package weather

import (
	"errors"
	"fmt"
)

var (
	// ErrTransport covers network failures: DNS, connection reset, timeouts.
	ErrTransport = errors.New("weather transport error")
	// ErrDecode covers payloads that cannot be turned into a Model.
	ErrDecode = errors.New("weather decode error")
	// ErrURLConstruction is returned when a query cannot be turned into a request URL.
	// No network call is made in that case.
	ErrURLConstruction = errors.New("weather url construction error")

	ErrEmptyConditions = fmt.Errorf("%w: empty condition list", ErrDecode)
)

// State is the progress of a single fetch attempt.
type State int32

const (
	StateIdle State = iota
	StateRequesting
	StateSucceeded
	StateFailedTransport
	StateFailedDecode
	StateFailedURL
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRequesting:
		return "requesting"
	case StateSucceeded:
		return "succeeded"
	case StateFailedTransport:
		return "failed(transport)"
	case StateFailedDecode:
		return "failed(decode)"
	case StateFailedURL:
		return "failed(url)"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}

// Terminal reports whether no further transition can happen.
func (s State) Terminal() bool {
	return s >= StateSucceeded
}

// StateFor returns the terminal state matching the outcome err.
func StateFor(err error) State {
	switch {
	case err == nil:
		return StateSucceeded
	case errors.Is(err, ErrURLConstruction):
		return StateFailedURL
	case errors.Is(err, ErrDecode):
		return StateFailedDecode
	default:
		return StateFailedTransport
	}
}
