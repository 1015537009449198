package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the pipeline error taxonomy. Stage-specific error types
// below wrap these so callers can classify failures with errors.Is without
// inspecting error strings.
var (
	// ErrNLUUnavailable indicates the NLU service could not be reached or
	// returned a transport-level failure (including timeouts).
	ErrNLUUnavailable = errors.New("nlu service unavailable")

	// ErrMalformedExtraction indicates the NLU service replied with a payload
	// that could not be parsed as the requested JSON shape.
	ErrMalformedExtraction = errors.New("nlu response malformed")

	// ErrIncompleteExtraction indicates the NLU service replied with parseable
	// JSON that omits one or more required fields.
	ErrIncompleteExtraction = errors.New("nlu response incomplete")

	// ErrInvalidQuery indicates an extracted query failed validation.
	ErrInvalidQuery = errors.New("invalid flight query")

	// ErrProviderUnavailable indicates the search provider could not be
	// reached or returned a transport-level failure.
	ErrProviderUnavailable = errors.New("flight provider unavailable")

	// ErrNoOptions indicates the search succeeded but returned zero options
	// for an expected leg.
	ErrNoOptions = errors.New("no flight options for leg")

	// ErrDeliveryFailed indicates a reply could not be delivered to the user.
	// Not recoverable by the pipeline.
	ErrDeliveryFailed = errors.New("reply delivery failed")
)

// ExtractionError describes a failure to turn raw user text into a FlightQuery.
// It wraps one of the extraction sentinels and, for incomplete extractions,
// names the missing fields.
type ExtractionError struct {
	// Err is the underlying extraction sentinel (possibly wrapped further)
	Err error

	// MissingFields lists the required fields the NLU response omitted.
	// Only set for incomplete extractions.
	MissingFields []string
}

// Error implements the error interface.
func (e *ExtractionError) Error() string {
	if len(e.MissingFields) > 0 {
		return fmt.Sprintf("extraction failed: %v (missing: %s)", e.Err, strings.Join(e.MissingFields, ", "))
	}
	return fmt.Sprintf("extraction failed: %v", e.Err)
}

// Unwrap returns the underlying error for errors.Is/errors.As support.
func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// NewNLUUnavailableError creates an ExtractionError for an unreachable NLU service.
func NewNLUUnavailableError(cause error) *ExtractionError {
	return &ExtractionError{Err: fmt.Errorf("%w: %w", ErrNLUUnavailable, cause)}
}

// NewMalformedExtractionError creates an ExtractionError for an unparseable NLU response.
func NewMalformedExtractionError(cause error) *ExtractionError {
	if cause == nil {
		return &ExtractionError{Err: ErrMalformedExtraction}
	}
	return &ExtractionError{Err: fmt.Errorf("%w: %w", ErrMalformedExtraction, cause)}
}

// NewIncompleteExtractionError creates an ExtractionError naming the missing fields.
func NewIncompleteExtractionError(missingFields []string) *ExtractionError {
	return &ExtractionError{
		Err:           ErrIncompleteExtraction,
		MissingFields: missingFields,
	}
}

// IsExtractionError reports whether err is any extraction failure.
func IsExtractionError(err error) bool {
	var extractionErr *ExtractionError
	return errors.As(err, &extractionErr)
}

// SearchError describes a failed provider call or an empty expected leg.
// A round-trip query with one failed leg is a terminal failure for the whole
// query; outbound results are discarded, not partially returned.
type SearchError struct {
	// Leg is the leg whose provider call failed
	Leg Leg

	// Err is the underlying cause
	Err error
}

// Error implements the error interface.
func (e *SearchError) Error() string {
	return fmt.Sprintf("search failed for %s leg: %v", e.Leg, e.Err)
}

// Unwrap returns the underlying error for errors.Is/errors.As support.
func (e *SearchError) Unwrap() error {
	return e.Err
}

// NewSearchError creates a SearchError for the given leg and cause.
func NewSearchError(leg Leg, cause error) *SearchError {
	return &SearchError{Leg: leg, Err: cause}
}

// NewEmptyLegError creates a SearchError for a leg that returned zero options.
func NewEmptyLegError(leg Leg) *SearchError {
	return &SearchError{Leg: leg, Err: ErrNoOptions}
}

// IsSearchError reports whether err is any search failure.
func IsSearchError(err error) bool {
	var searchErr *SearchError
	return errors.As(err, &searchErr)
}

// IsInvalidQuery reports whether err is a query validation failure.
func IsInvalidQuery(err error) bool {
	return errors.Is(err, ErrInvalidQuery)
}

// IsNoOptions reports whether err means the search itself succeeded but an
// expected leg had no inventory. Distinguishes "no inventory" from "search failed".
func IsNoOptions(err error) bool {
	return errors.Is(err, ErrNoOptions)
}
