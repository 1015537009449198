// Package mock provides test doubles for the chat assistant pipeline.
// These mocks are designed for integration testing where we need
// configurable behavior (delays, errors, specific responses).
package mock

import (
	"context"
	"sync"
	"time"

	"github.com/fly4less/flight-chat-assistant/internal/domain"
)

// Provider is a configurable mock implementation of domain.FlightProvider.
// It supports per-leg options, errors, and delays for testing various
// scenarios including timeouts and partial leg failures.
type Provider struct {
	name      string
	options   map[domain.Leg][]domain.FlightOption
	errs      map[domain.Leg]error
	delay     time.Duration
	callCount int
	mu        sync.Mutex
}

// NewProvider creates a new mock provider with the given name.
// The provider is configured using the builder pattern methods.
func NewProvider(name string) *Provider {
	return &Provider{
		name:    name,
		options: make(map[domain.Leg][]domain.FlightOption),
		errs:    make(map[domain.Leg]error),
	}
}

// WithOptions configures the provider to return the given options for a leg.
func (p *Provider) WithOptions(leg domain.Leg, options []domain.FlightOption) *Provider {
	p.options[leg] = options
	return p
}

// WithError configures the provider to fail calls for the given leg.
func (p *Provider) WithError(leg domain.Leg, err error) *Provider {
	p.errs[leg] = err
	return p
}

// WithDelay configures the provider to wait the given duration before
// responding. This is useful for testing timeout behavior.
func (p *Provider) WithDelay(d time.Duration) *Provider {
	p.delay = d
	return p
}

// Name returns the provider's unique identifier.
func (p *Provider) Name() string {
	return p.name
}

// Search implements domain.FlightProvider.Search. It respects context
// cancellation, applies the configured delay, and returns the options or
// error configured for the requested leg.
func (p *Provider) Search(ctx context.Context, leg domain.LegQuery) ([]domain.FlightOption, error) {
	p.mu.Lock()
	p.callCount++
	p.mu.Unlock()

	if p.delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(p.delay):
		}
	}

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	if err := p.errs[leg.Leg]; err != nil {
		return nil, err
	}

	return p.options[leg.Leg], nil
}

// CallCount returns the number of times Search was called.
func (p *Provider) CallCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.callCount
}

// Reset resets the call count to zero.
func (p *Provider) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.callCount = 0
}

// Ensure Provider implements domain.FlightProvider at compile time.
var _ domain.FlightProvider = (*Provider)(nil)

// SampleOptions returns count flight options with realistic values, priced
// in ascending 50-unit steps starting at basePrice.
func SampleOptions(carrier string, count int, basePrice float64) []domain.FlightOption {
	options := make([]domain.FlightOption, count)

	baseTime := time.Date(2026, 10, 2, 8, 0, 0, 0, time.UTC)

	for i := 0; i < count; i++ {
		departTime := baseTime.Add(time.Duration(i*2) * time.Hour)

		options[i] = domain.FlightOption{
			Carrier:    carrier,
			Price:      domain.PriceInfo{Amount: basePrice + float64(i*50), Currency: "USD"},
			DepartTime: departTime,
			ArriveTime: departTime.Add(9*time.Hour + 15*time.Minute),
			Duration:   domain.NewDurationInfo(555),
			Stops:      i % 2,
		}
	}

	return options
}
