// Package domain contains the core entities and rules for the flight chat assistant.
// These entities are transport- and provider-agnostic; every other layer is built on them.
package domain

import (
	"fmt"
	"regexp"
	"time"

	"github.com/fly4less/flight-chat-assistant/internal/infrastructure/timeutil"
)

// TripType identifies whether a query asks for one-way or round-trip travel.
type TripType string

// Supported trip types.
const (
	// TripOneWay is a single outbound journey.
	TripOneWay TripType = "one_way"

	// TripRoundTrip is an outbound journey plus a return journey.
	TripRoundTrip TripType = "round_trip"
)

// Leg identifies one direction of travel within a flight query.
type Leg string

// Supported legs.
const (
	// LegOutbound is the origin-to-destination direction.
	LegOutbound Leg = "outbound"

	// LegReturn is the destination-to-origin direction. It exists only
	// for round-trip queries.
	LegReturn Leg = "return"
)

// airportCodeRegex matches valid IATA-style airport/city codes (3 uppercase letters).
var airportCodeRegex = regexp.MustCompile(`^[A-Z]{3}$`)

// FlightQuery is the canonical structured flight request produced by the
// intent extractor. A query that reaches the search dispatcher has passed
// Validate; there is no partially-valid state past that point.
type FlightQuery struct {
	// TripType is one_way or round_trip
	TripType TripType `json:"tripType"`

	// Origin is the IATA-style code of the departure airport/city (e.g., "JFK")
	Origin string `json:"origin"`

	// Destination is the IATA-style code of the arrival airport/city (e.g., "LAX")
	Destination string `json:"destination"`

	// DepartDate is the departure date in YYYY-MM-DD format
	DepartDate string `json:"departDate"`

	// ReturnDate is the return date in YYYY-MM-DD format.
	// Present if and only if TripType is round_trip.
	ReturnDate string `json:"returnDate,omitempty"`
}

// LegQuery is the unit of work handed to a flight provider: one directed
// route on one date, tagged with the leg it belongs to.
type LegQuery struct {
	// Origin is the IATA-style code of the departure airport/city
	Origin string `json:"origin"`

	// Destination is the IATA-style code of the arrival airport/city
	Destination string `json:"destination"`

	// Date is the travel date in YYYY-MM-DD format
	Date string `json:"date"`

	// Leg tags which direction of the trip this query covers
	Leg Leg `json:"leg"`
}

// IsRoundTrip reports whether the query asks for round-trip travel.
func (q FlightQuery) IsRoundTrip() bool {
	return q.TripType == TripRoundTrip
}

// Legs expands the query into the provider calls it requires: always the
// outbound leg, plus the reversed return leg for round trips.
func (q FlightQuery) Legs() []LegQuery {
	legs := []LegQuery{{
		Origin:      q.Origin,
		Destination: q.Destination,
		Date:        q.DepartDate,
		Leg:         LegOutbound,
	}}

	if q.IsRoundTrip() {
		legs = append(legs, LegQuery{
			Origin:      q.Destination,
			Destination: q.Origin,
			Date:        q.ReturnDate,
			Leg:         LegReturn,
		})
	}

	return legs
}

// Validate checks the query for completeness and internal consistency.
// The now argument anchors the "not in the past" rule so validation stays a
// pure function of its inputs.
// Returns a wrapped ErrInvalidQuery error if validation fails.
func (q FlightQuery) Validate(now time.Time) error {
	if q.Origin == "" {
		return fmt.Errorf("%w: origin is required", ErrInvalidQuery)
	}
	if !airportCodeRegex.MatchString(q.Origin) {
		return fmt.Errorf("%w: origin must be a 3-letter code, got %q", ErrInvalidQuery, q.Origin)
	}

	if q.Destination == "" {
		return fmt.Errorf("%w: destination is required", ErrInvalidQuery)
	}
	if !airportCodeRegex.MatchString(q.Destination) {
		return fmt.Errorf("%w: destination must be a 3-letter code, got %q", ErrInvalidQuery, q.Destination)
	}

	if q.Origin == q.Destination {
		return fmt.Errorf("%w: origin and destination must be different", ErrInvalidQuery)
	}

	departDate, err := timeutil.ParseDate(q.DepartDate)
	if err != nil {
		return fmt.Errorf("%w: departDate must be a valid YYYY-MM-DD date, got %q", ErrInvalidQuery, q.DepartDate)
	}
	// Compare calendar dates lexically so the outcome depends on now's local
	// calendar day, not on the offset between its zone and UTC.
	if q.DepartDate < timeutil.FormatDate(now) {
		return fmt.Errorf("%w: departDate %s is in the past", ErrInvalidQuery, q.DepartDate)
	}

	switch q.TripType {
	case TripOneWay:
		if q.ReturnDate != "" {
			return fmt.Errorf("%w: one-way trip must not have a return date", ErrInvalidQuery)
		}
	case TripRoundTrip:
		if q.ReturnDate == "" {
			return fmt.Errorf("%w: round trip requires a return date", ErrInvalidQuery)
		}
		returnDate, err := timeutil.ParseDate(q.ReturnDate)
		if err != nil {
			return fmt.Errorf("%w: returnDate must be a valid YYYY-MM-DD date, got %q", ErrInvalidQuery, q.ReturnDate)
		}
		if !returnDate.After(departDate) {
			return fmt.Errorf("%w: returnDate %s must be after departDate %s", ErrInvalidQuery, q.ReturnDate, q.DepartDate)
		}
	default:
		return fmt.Errorf("%w: unknown trip type %q", ErrInvalidQuery, q.TripType)
	}

	return nil
}
