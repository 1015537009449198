// Package usecase contains the request-understanding pipeline: query
// validation, search dispatch, result formatting, and the orchestrator that
// sequences them per incoming message.
package usecase

import (
	"github.com/fly4less/flight-chat-assistant/internal/domain"
	"github.com/fly4less/flight-chat-assistant/internal/infrastructure/timeutil"
)

// QueryValidator checks extracted queries for completeness and internal
// consistency before any search is attempted. It performs no I/O; the only
// injected dependency is the clock anchoring the "not in the past" rule.
type QueryValidator struct {
	clock timeutil.Clock
}

// NewQueryValidator creates a QueryValidator using the given clock.
// A nil clock falls back to the system clock.
func NewQueryValidator(clock timeutil.Clock) *QueryValidator {
	if clock == nil {
		clock = timeutil.NewRealClock()
	}
	return &QueryValidator{clock: clock}
}

// Validate returns the query unchanged when it is valid, and a wrapped
// domain.ErrInvalidQuery otherwise. A query that passes here is fully
// populated and internally consistent; nothing partially valid reaches the
// search dispatcher.
func (v *QueryValidator) Validate(q domain.FlightQuery) (domain.FlightQuery, error) {
	if err := q.Validate(v.clock.Now()); err != nil {
		return domain.FlightQuery{}, err
	}
	return q, nil
}
