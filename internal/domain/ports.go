package domain

import "context"

//go:generate mockgen -source=ports.go -destination=mock_ports.go -package=domain

// IntentExtractor converts raw user text into a structured FlightQuery by
// consulting an external natural-language understanding service.
//
// Implementations make exactly one outbound call per invocation and perform
// no retries; retry policy belongs to the pipeline orchestrator.
type IntentExtractor interface {
	// Extract sends rawText to the NLU service and parses its response.
	// Fails with an *ExtractionError when the service is unreachable, returns
	// malformed JSON, or omits a required field.
	Extract(ctx context.Context, rawText string) (FlightQuery, error)
}

// FlightProvider is the external flight-search data source. The dispatcher
// issues one call per leg and does not alter the provider's own ranking.
type FlightProvider interface {
	// Name returns the provider's unique identifier for logging.
	Name() string

	// Search returns the raw flight options for one leg, normalized into
	// domain FlightOptions. The returned options are not yet leg-tagged;
	// the dispatcher records the leg on every option.
	Search(ctx context.Context, leg LegQuery) ([]FlightOption, error)
}
