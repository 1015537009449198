package usecase

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fly4less/flight-chat-assistant/internal/domain"
	"github.com/fly4less/flight-chat-assistant/internal/infrastructure/timeutil"
)

// DefaultMaxOptionsPerLeg is how many options the formatter displays per leg
// when no cap is configured.
const DefaultMaxOptionsPerLeg = 3

// NoOptionsMessage is the fixed reply for a leg whose option list is empty
// even though the search itself succeeded. It is a message, not an error:
// "no inventory" is a different outcome than "search failed".
const NoOptionsMessage = "No flight options found for these dates. Try different dates or nearby airports."

// ResultFormatter reduces raw flight options into a concise, ranked,
// human-readable summary. Formatting is a pure function of its input, so
// calling it twice on the same result yields identical output.
type ResultFormatter struct {
	maxPerLeg int
}

// NewResultFormatter creates a ResultFormatter displaying at most maxPerLeg
// options per leg. Values below 1 fall back to the default cap.
func NewResultFormatter(maxPerLeg int) *ResultFormatter {
	if maxPerLeg < 1 {
		maxPerLeg = DefaultMaxOptionsPerLeg
	}
	return &ResultFormatter{maxPerLeg: maxPerLeg}
}

// Format renders the search result grouped by leg, each leg sorted by price
// ascending with ties broken by fewer stops, then earlier departure.
func (f *ResultFormatter) Format(r domain.SearchResult) string {
	if r.TotalOptions() == 0 {
		return NoOptionsMessage
	}

	var b strings.Builder

	heading := fmt.Sprintf("Outbound %s → %s (%s)", r.Query.Origin, r.Query.Destination, r.Query.DepartDate)
	f.renderLeg(&b, heading, r.OptionsFor(domain.LegOutbound))

	if r.HasReturn() {
		b.WriteString("\n")
		heading = fmt.Sprintf("Return %s → %s (%s)", r.Query.Destination, r.Query.Origin, r.Query.ReturnDate)
		f.renderLeg(&b, heading, r.OptionsFor(domain.LegReturn))
	}

	return strings.TrimRight(b.String(), "\n")
}

// renderLeg writes one leg section: a heading followed by up to maxPerLeg
// option lines.
func (f *ResultFormatter) renderLeg(b *strings.Builder, heading string, options []domain.FlightOption) {
	b.WriteString(heading)
	b.WriteString("\n")

	if len(options) == 0 {
		b.WriteString(NoOptionsMessage)
		b.WriteString("\n")
		return
	}

	sorted := sortOptions(options)
	if len(sorted) > f.maxPerLeg {
		sorted = sorted[:f.maxPerLeg]
	}

	for i, opt := range sorted {
		fmt.Fprintf(b, "%d. %s — %s — %s — %s → %s (%s)\n",
			i+1,
			opt.Carrier,
			opt.Price,
			stopsLabel(opt.Stops),
			timeutil.FormatClock(opt.DepartTime),
			timeutil.FormatClock(opt.ArriveTime),
			opt.Duration.Formatted,
		)
	}
}

// sortOptions returns a price-ascending copy of options; ties are broken by
// fewer stops, then by earlier departure time. The input is not mutated.
func sortOptions(options []domain.FlightOption) []domain.FlightOption {
	sorted := make([]domain.FlightOption, len(options))
	copy(sorted, options)

	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Price.Amount != sorted[j].Price.Amount {
			return sorted[i].Price.Amount < sorted[j].Price.Amount
		}
		if sorted[i].Stops != sorted[j].Stops {
			return sorted[i].Stops < sorted[j].Stops
		}
		return sorted[i].DepartTime.Before(sorted[j].DepartTime)
	})

	return sorted
}

// stopsLabel formats a stop count for display.
func stopsLabel(stops int) string {
	switch stops {
	case 0:
		return "direct"
	case 1:
		return "1 stop"
	default:
		return fmt.Sprintf("%d stops", stops)
	}
}
