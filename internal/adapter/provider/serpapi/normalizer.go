package serpapi

import (
	"fmt"
	"time"

	"github.com/fly4less/flight-chat-assistant/internal/domain"
)

// timeLayout is the local-time format SerpAPI uses for segment times.
const timeLayout = "2006-01-02 15:04"

// normalize converts the response's flight groups into domain FlightOptions.
// Groups that cannot be normalized are skipped rather than failing the whole
// search; a single bad record should not hide the rest of the inventory.
func normalize(resp searchResponse, currency string) []domain.FlightOption {
	groups := make([]flightGroup, 0, len(resp.BestFlights)+len(resp.OtherFlights))
	groups = append(groups, resp.BestFlights...)
	groups = append(groups, resp.OtherFlights...)

	options := make([]domain.FlightOption, 0, len(groups))
	for _, group := range groups {
		option, err := normalizeGroup(group, currency)
		if err != nil {
			continue
		}
		options = append(options, option)
	}

	return options
}

// normalizeGroup converts a single itinerary group into a FlightOption.
// The departure time comes from the first segment and the arrival time from
// the last; the stop count is the number of layovers.
func normalizeGroup(group flightGroup, currency string) (domain.FlightOption, error) {
	if len(group.Flights) == 0 {
		return domain.FlightOption{}, fmt.Errorf("group has no flight segments")
	}
	if group.Price < 0 {
		return domain.FlightOption{}, fmt.Errorf("group has negative price %v", group.Price)
	}

	first := group.Flights[0]
	last := group.Flights[len(group.Flights)-1]

	departTime, err := parseSegmentTime(first.DepartureAirport.Time)
	if err != nil {
		return domain.FlightOption{}, fmt.Errorf("parse departure time: %w", err)
	}
	arriveTime, err := parseSegmentTime(last.ArrivalAirport.Time)
	if err != nil {
		return domain.FlightOption{}, fmt.Errorf("parse arrival time: %w", err)
	}

	carrier := first.Airline
	if carrier == "" {
		carrier = "Unknown"
	}

	return domain.FlightOption{
		Carrier: carrier,
		Price: domain.PriceInfo{
			Amount:   group.Price,
			Currency: currency,
		},
		DepartTime: departTime,
		ArriveTime: arriveTime,
		Duration:   domain.NewDurationInfo(group.TotalDuration),
		Stops:      len(group.Layovers),
	}, nil
}

// parseSegmentTime parses a SerpAPI segment time, accepting the documented
// "YYYY-MM-DD HH:MM" layout and RFC 3339 as a fallback.
func parseSegmentTime(value string) (time.Time, error) {
	t, err := time.Parse(timeLayout, value)
	if err == nil {
		return t, nil
	}

	t, err = time.Parse(time.RFC3339, value)
	if err == nil {
		return t, nil
	}

	return time.Time{}, fmt.Errorf("unable to parse time %q", value)
}
