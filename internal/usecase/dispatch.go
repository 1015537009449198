package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/fly4less/flight-chat-assistant/internal/domain"
)

// DefaultSearchTimeout bounds a single provider call when no timeout is configured.
const DefaultSearchTimeout = 10 * time.Second

// SearchDispatcher maps a validated query onto provider calls: always one for
// the outbound leg, plus one for the return leg on round trips. The legs are
// queried concurrently; each call is bounded by the configured timeout.
type SearchDispatcher struct {
	provider domain.FlightProvider
	timeout  time.Duration
	log      zerolog.Logger
}

// NewSearchDispatcher creates a SearchDispatcher for the given provider.
func NewSearchDispatcher(provider domain.FlightProvider, timeout time.Duration, log zerolog.Logger) *SearchDispatcher {
	if timeout <= 0 {
		timeout = DefaultSearchTimeout
	}
	return &SearchDispatcher{
		provider: provider,
		timeout:  timeout,
		log:      log,
	}
}

// legResult holds the outcome of one provider call.
type legResult struct {
	leg     domain.Leg
	options []domain.FlightOption
	err     error
}

// Search executes the provider calls for every leg of the query and collects
// the options into a SearchResult. Any failed or empty expected leg is
// terminal for the whole query: a round trip never degrades to one-way, so a
// half-populated result can never reach the formatter.
func (d *SearchDispatcher) Search(ctx context.Context, q domain.FlightQuery) (domain.SearchResult, error) {
	legs := q.Legs()

	resultsChan := make(chan legResult, len(legs))
	var wg sync.WaitGroup

	for _, leg := range legs {
		wg.Add(1)
		go func(lq domain.LegQuery) {
			defer wg.Done()
			d.queryLeg(ctx, lq, resultsChan)
		}(leg)
	}

	go func() {
		wg.Wait()
		close(resultsChan)
	}()

	optionsByLeg := make(map[domain.Leg][]domain.FlightOption, len(legs))
	errByLeg := make(map[domain.Leg]error, len(legs))

	for result := range resultsChan {
		if result.err != nil {
			errByLeg[result.leg] = result.err
			continue
		}
		optionsByLeg[result.leg] = result.options
	}

	// Report the outbound failure first so the outcome is deterministic when
	// both legs fail.
	for _, leg := range []domain.Leg{domain.LegOutbound, domain.LegReturn} {
		if err := errByLeg[leg]; err != nil {
			d.log.Warn().
				Str("provider", d.provider.Name()).
				Str("leg", string(leg)).
				Err(err).
				Msg("Leg search failed, discarding all results")
			return domain.SearchResult{}, err
		}
	}

	return domain.NewSearchResult(q, optionsByLeg[domain.LegOutbound], optionsByLeg[domain.LegReturn]), nil
}

// queryLeg runs a single provider call with timeout and panic recovery, and
// tags the leg on every returned option so downstream consumers can separate
// outbound from return without re-querying.
func (d *SearchDispatcher) queryLeg(ctx context.Context, lq domain.LegQuery, results chan<- legResult) {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			results <- legResult{
				leg: lq.Leg,
				err: domain.NewSearchError(lq.Leg, fmt.Errorf("provider panic: %v", r)),
			}
		}
	}()

	start := time.Now()
	options, err := d.provider.Search(ctx, lq)
	if err != nil {
		results <- legResult{leg: lq.Leg, err: domain.NewSearchError(lq.Leg, err)}
		return
	}
	if len(options) == 0 {
		results <- legResult{leg: lq.Leg, err: domain.NewEmptyLegError(lq.Leg)}
		return
	}

	for i := range options {
		options[i].Leg = lq.Leg
	}

	d.log.Debug().
		Str("provider", d.provider.Name()).
		Str("leg", string(lq.Leg)).
		Int("options", len(options)).
		Dur("duration", time.Since(start)).
		Msg("Leg search completed")

	results <- legResult{leg: lq.Leg, options: options}
}
