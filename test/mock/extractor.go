package mock

import (
	"context"
	"sync"

	"github.com/fly4less/flight-chat-assistant/internal/domain"
)

// Extractor is a configurable mock implementation of domain.IntentExtractor.
// It returns a fixed query or error, with optional initial failures to
// exercise retry behavior.
type Extractor struct {
	query     domain.FlightQuery
	err       error
	failFirst int
	callCount int
	mu        sync.Mutex
}

// NewExtractor creates a new mock extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// WithQuery configures the extractor to return the given query.
func (e *Extractor) WithQuery(q domain.FlightQuery) *Extractor {
	e.query = q
	return e
}

// WithError configures the extractor to fail every call with err.
func (e *Extractor) WithError(err error) *Extractor {
	e.err = err
	return e
}

// FailingFirst configures the extractor to fail the first n calls with err
// and succeed afterwards.
func (e *Extractor) FailingFirst(n int, err error) *Extractor {
	e.failFirst = n
	e.err = err
	return e
}

// Extract implements domain.IntentExtractor.Extract.
func (e *Extractor) Extract(ctx context.Context, rawText string) (domain.FlightQuery, error) {
	if ctx.Err() != nil {
		return domain.FlightQuery{}, ctx.Err()
	}

	e.mu.Lock()
	e.callCount++
	call := e.callCount
	e.mu.Unlock()

	if e.failFirst > 0 {
		if call <= e.failFirst {
			return domain.FlightQuery{}, e.err
		}
		return e.query, nil
	}

	if e.err != nil {
		return domain.FlightQuery{}, e.err
	}
	return e.query, nil
}

// CallCount returns the number of times Extract was called.
func (e *Extractor) CallCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.callCount
}

// Ensure Extractor implements domain.IntentExtractor at compile time.
var _ domain.IntentExtractor = (*Extractor)(nil)
