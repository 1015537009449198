package domain

import (
	"fmt"
	"time"
)

// FlightOption represents one itinerary returned by the search provider,
// normalized from provider-specific field names.
type FlightOption struct {
	// Carrier is the operating airline identifier (e.g., "Garuda Indonesia")
	Carrier string `json:"carrier"`

	// Price contains the total itinerary price
	Price PriceInfo `json:"price"`

	// DepartTime is the scheduled departure time of the first segment
	DepartTime time.Time `json:"departTime"`

	// ArriveTime is the scheduled arrival time of the last segment
	ArriveTime time.Time `json:"arriveTime"`

	// Duration is the total travel duration including layovers
	Duration DurationInfo `json:"duration"`

	// Stops is the number of connections (0 = direct)
	Stops int `json:"stops"`

	// Leg tags which direction of the trip this option serves
	Leg Leg `json:"leg"`
}

// PriceInfo is a non-negative amount with its currency unit.
type PriceInfo struct {
	// Amount is the numeric price value
	Amount float64 `json:"amount"`

	// Currency is the ISO 4217 currency code (e.g., "USD")
	Currency string `json:"currency"`
}

// String formats the price as "USD 320".
func (p PriceInfo) String() string {
	if p.Amount == float64(int64(p.Amount)) {
		return fmt.Sprintf("%s %d", p.Currency, int64(p.Amount))
	}
	return fmt.Sprintf("%s %.2f", p.Currency, p.Amount)
}

// DurationInfo contains total travel duration information.
type DurationInfo struct {
	// TotalMinutes is the total duration in minutes
	TotalMinutes int `json:"totalMinutes"`

	// Formatted is a human-readable duration string (e.g., "2h 30m")
	Formatted string `json:"formatted"`
}

// NewDurationInfo creates a DurationInfo from total minutes and formats it.
func NewDurationInfo(totalMinutes int) DurationInfo {
	hours := totalMinutes / 60
	mins := totalMinutes % 60

	var formatted string
	switch {
	case hours > 0 && mins > 0:
		formatted = fmt.Sprintf("%dh %dm", hours, mins)
	case hours > 0:
		formatted = fmt.Sprintf("%dh", hours)
	default:
		formatted = fmt.Sprintf("%dm", mins)
	}

	return DurationInfo{
		TotalMinutes: totalMinutes,
		Formatted:    formatted,
	}
}
