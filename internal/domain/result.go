package domain

// SearchResult aggregates the flight options found for one query, partitioned
// by leg. It is created fresh per pipeline run and discarded after formatting;
// nothing is cached or persisted.
type SearchResult struct {
	// Query is the validated query that produced this result
	Query FlightQuery `json:"query"`

	// Outbound contains the options for the outbound leg
	Outbound []FlightOption `json:"outbound"`

	// Return contains the options for the return leg.
	// Populated only when Query is a round trip.
	Return []FlightOption `json:"return,omitempty"`
}

// NewSearchResult builds a SearchResult from per-leg option lists.
// Return options are dropped for one-way queries so a stray RETURN-tagged
// option can never reach the formatter.
func NewSearchResult(query FlightQuery, outbound, returnOptions []FlightOption) SearchResult {
	if outbound == nil {
		outbound = []FlightOption{}
	}

	result := SearchResult{
		Query:    query,
		Outbound: outbound,
	}
	if query.IsRoundTrip() {
		result.Return = returnOptions
	}

	return result
}

// OptionsFor returns the options for the given leg.
func (r SearchResult) OptionsFor(leg Leg) []FlightOption {
	if leg == LegReturn {
		return r.Return
	}
	return r.Outbound
}

// HasReturn reports whether the result carries a return leg.
func (r SearchResult) HasReturn() bool {
	return r.Query.IsRoundTrip()
}

// TotalOptions returns the number of options across all legs.
func (r SearchResult) TotalOptions() int {
	return len(r.Outbound) + len(r.Return)
}
