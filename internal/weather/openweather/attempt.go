package openweather

import (
	"github.com/google/uuid"
	"go.uber.org/atomic"

	"github.com/i474232898/clima/internal/weather"
)

// Attempt tracks one fire-and-forget fetch. It cannot be cancelled.
type Attempt struct {
	id    uuid.UUID
	query weather.Query
	state *atomic.Int32

	err  error // set before done is closed
	done chan struct{}
}

func newAttempt(q weather.Query) *Attempt {
	return &Attempt{
		id:    uuid.New(),
		query: q,
		state: atomic.NewInt32(int32(weather.StateIdle)),
		done:  make(chan struct{}),
	}
}

func (a *Attempt) ID() uuid.UUID        { return a.id }
func (a *Attempt) Query() weather.Query { return a.query }

func (a *Attempt) State() weather.State {
	return weather.State(a.state.Load())
}

// Done is closed after the observer has been notified.
func (a *Attempt) Done() <-chan struct{} {
	return a.done
}

// Err returns the failure of a finished attempt, or nil while it is still running.
func (a *Attempt) Err() error {
	select {
	case <-a.done:
		return a.err
	default:
		return nil
	}
}

func (a *Attempt) requesting() {
	a.state.Store(int32(weather.StateRequesting))
}

func (a *Attempt) finish(err error) {
	a.err = err
	a.state.Store(int32(weather.StateFor(err)))
}
