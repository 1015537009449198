package gemini

import (
	"encoding/json"
	"strings"

	"github.com/fly4less/flight-chat-assistant/internal/domain"
	"github.com/fly4less/flight-chat-assistant/internal/infrastructure/timeutil"
)

// OutcomeKind tags the result of parsing the service's free-form JSON output.
// Modeling the boundary as an explicit variant keeps the loosely-typed
// response testable instead of trusting field presence.
type OutcomeKind int

const (
	// OutcomeParsed means a complete FlightQuery was extracted.
	OutcomeParsed OutcomeKind = iota

	// OutcomeMalformed means the payload was not the requested JSON shape.
	OutcomeMalformed

	// OutcomeIncomplete means the payload parsed but omits required fields.
	OutcomeIncomplete
)

// ParseOutcome is the tagged result of parsing an NLU response payload.
type ParseOutcome struct {
	// Kind tags which variant this outcome is
	Kind OutcomeKind

	// Query is the extracted query. Set only for OutcomeParsed.
	Query domain.FlightQuery

	// MissingFields names the required fields the payload omitted.
	// Set only for OutcomeIncomplete.
	MissingFields []string

	// Err is the parse failure. Set only for OutcomeMalformed.
	Err error
}

// Parse converts the text part of an NLU response into a tagged outcome.
// Markdown code fences around the JSON are stripped first; models routinely
// wrap their output in them despite instructions.
func Parse(text string) ParseOutcome {
	cleaned := stripCodeFences(text)

	var payload extractionPayload
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return ParseOutcome{Kind: OutcomeMalformed, Err: err}
	}

	payload.Origin = strings.ToUpper(strings.TrimSpace(payload.Origin))
	payload.Destination = strings.ToUpper(strings.TrimSpace(payload.Destination))
	payload.DepartDate = strings.TrimSpace(payload.DepartDate)
	payload.ReturnDate = normalizeNullable(payload.ReturnDate)

	var missing []string
	if payload.Origin == "" {
		missing = append(missing, "origin")
	}
	if payload.Destination == "" {
		missing = append(missing, "destination")
	}
	if payload.DepartDate == "" {
		missing = append(missing, "depart_date")
	}
	if len(missing) > 0 {
		return ParseOutcome{Kind: OutcomeIncomplete, MissingFields: missing}
	}

	query := domain.FlightQuery{
		TripType:    domain.TripOneWay,
		Origin:      payload.Origin,
		Destination: payload.Destination,
		DepartDate:  payload.DepartDate,
	}

	// Round trip if and only if a return date is present and parses to a
	// valid date; an unparseable return date degrades to one-way.
	if payload.ReturnDate != "" {
		if _, err := timeutil.ParseDate(payload.ReturnDate); err == nil {
			query.TripType = domain.TripRoundTrip
			query.ReturnDate = payload.ReturnDate
		}
	}

	return ParseOutcome{Kind: OutcomeParsed, Query: query}
}

// stripCodeFences removes a surrounding markdown code fence, with or without
// a language tag, and returns the trimmed inner text.
func stripCodeFences(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}

	trimmed = strings.TrimPrefix(trimmed, "```")
	if idx := strings.Index(trimmed, "\n"); idx >= 0 {
		// Drop the language tag line (e.g. "json").
		trimmed = trimmed[idx+1:]
	}
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")

	return strings.TrimSpace(trimmed)
}

// normalizeNullable maps the textual nulls models produce to an empty string.
func normalizeNullable(value string) string {
	v := strings.TrimSpace(value)
	switch strings.ToLower(v) {
	case "null", "none", "n/a":
		return ""
	}
	return v
}
