package serpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fly4less/flight-chat-assistant/internal/domain"
)

func outboundLeg() domain.LegQuery {
	return domain.LegQuery{
		Origin:      "HYD",
		Destination: "BER",
		Date:        "2026-10-02",
		Leg:         domain.LegOutbound,
	}
}

func newTestAdapter(baseURL string) *Adapter {
	return NewAdapter(Config{
		APIKey:   "test-key",
		BaseURL:  baseURL,
		Currency: "USD",
	})
}

func TestAdapterSearchSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/search.json", r.URL.Path)

		q := r.URL.Query()
		assert.Equal(t, "google_flights", q.Get("engine"))
		assert.Equal(t, "HYD", q.Get("departure_id"))
		assert.Equal(t, "BER", q.Get("arrival_id"))
		assert.Equal(t, "2026-10-02", q.Get("outbound_date"))
		assert.Equal(t, "2", q.Get("type"))
		assert.Equal(t, "USD", q.Get("currency"))
		assert.Equal(t, "test-key", q.Get("api_key"))

		resp := searchResponse{
			BestFlights: []flightGroup{
				directGroup("Lufthansa", 420, "2026-10-02 08:30", "2026-10-02 17:45"),
			},
		}
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	defer server.Close()

	adapter := newTestAdapter(server.URL)
	options, err := adapter.Search(context.Background(), outboundLeg())

	require.NoError(t, err)
	require.Len(t, options, 1)
	assert.Equal(t, "Lufthansa", options[0].Carrier)
	assert.Equal(t, "USD 420", options[0].Price.String())
}

func TestAdapterSearchEmptyInventory(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"best_flights": [], "other_flights": []}`)
	}))
	defer server.Close()

	adapter := newTestAdapter(server.URL)
	options, err := adapter.Search(context.Background(), outboundLeg())

	// No inventory is not an adapter failure; classification happens upstream.
	require.NoError(t, err)
	assert.Empty(t, options)
}

func TestAdapterSearchProviderErrorField(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"error": "Invalid API key"}`)
	}))
	defer server.Close()

	adapter := newTestAdapter(server.URL)
	_, err := adapter.Search(context.Background(), outboundLeg())

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrProviderUnavailable))
	assert.Contains(t, err.Error(), "Invalid API key")
}

func TestAdapterSearchHTTPFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	adapter := newTestAdapter(server.URL)
	_, err := adapter.Search(context.Background(), outboundLeg())

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrProviderUnavailable))
}

func TestAdapterSearchUnreachableHost(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close()

	adapter := newTestAdapter(server.URL)
	_, err := adapter.Search(context.Background(), outboundLeg())

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrProviderUnavailable))
}

func TestAdapterSearchGarbageBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, "<html>rate limited</html>")
	}))
	defer server.Close()

	adapter := newTestAdapter(server.URL)
	_, err := adapter.Search(context.Background(), outboundLeg())

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrProviderUnavailable))
}

func TestAdapterName(t *testing.T) {
	assert.Equal(t, ProviderName, newTestAdapter("http://localhost").Name())
}

func TestNewAdapterDefaults(t *testing.T) {
	adapter := NewAdapter(Config{APIKey: "k"})

	assert.Equal(t, DefaultBaseURL, adapter.baseURL)
	assert.Equal(t, DefaultCurrency, adapter.currency)
	assert.Equal(t, DefaultTimeout, adapter.httpClient.Timeout)
}
