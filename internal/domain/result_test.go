package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOption(carrier string, leg Leg) FlightOption {
	return FlightOption{
		Carrier:    carrier,
		Price:      PriceInfo{Amount: 250, Currency: "USD"},
		DepartTime: time.Date(2026, 10, 2, 8, 0, 0, 0, time.UTC),
		ArriveTime: time.Date(2026, 10, 2, 12, 30, 0, 0, time.UTC),
		Duration:   NewDurationInfo(270),
		Stops:      0,
		Leg:        leg,
	}
}

func TestNewSearchResult(t *testing.T) {
	t.Run("one-way result drops return options", func(t *testing.T) {
		result := NewSearchResult(validOneWay(),
			[]FlightOption{testOption("Lufthansa", LegOutbound)},
			[]FlightOption{testOption("Lufthansa", LegReturn)})

		assert.Len(t, result.Outbound, 1)
		assert.Empty(t, result.Return)
		assert.False(t, result.HasReturn())
		assert.Equal(t, 1, result.TotalOptions())
	})

	t.Run("round-trip result keeps both legs", func(t *testing.T) {
		result := NewSearchResult(validRoundTrip(),
			[]FlightOption{testOption("Air Canada", LegOutbound)},
			[]FlightOption{testOption("Air Canada", LegReturn), testOption("Delta", LegReturn)})

		assert.Len(t, result.Outbound, 1)
		assert.Len(t, result.Return, 2)
		assert.True(t, result.HasReturn())
		assert.Equal(t, 3, result.TotalOptions())
	})

	t.Run("nil outbound becomes empty slice", func(t *testing.T) {
		result := NewSearchResult(validOneWay(), nil, nil)

		require.NotNil(t, result.Outbound)
		assert.Empty(t, result.Outbound)
	})
}

func TestSearchResultOptionsFor(t *testing.T) {
	outbound := []FlightOption{testOption("KLM", LegOutbound)}
	returnOpts := []FlightOption{testOption("KLM", LegReturn)}
	result := NewSearchResult(validRoundTrip(), outbound, returnOpts)

	assert.Equal(t, outbound, result.OptionsFor(LegOutbound))
	assert.Equal(t, returnOpts, result.OptionsFor(LegReturn))
}
