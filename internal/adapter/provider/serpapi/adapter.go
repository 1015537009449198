// Package serpapi implements the flight provider against the SerpAPI Google
// Flights engine. Each leg query is one GET request; the adapter normalizes
// the provider's field names into domain FlightOptions and imposes no cap or
// reordering of its own.
package serpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/fly4less/flight-chat-assistant/internal/domain"
)

// ProviderName is the unique identifier for this provider.
const ProviderName = "serpapi_google_flights"

// Default adapter settings.
const (
	DefaultBaseURL  = "https://serpapi.com"
	DefaultTimeout  = 10 * time.Second
	DefaultCurrency = "USD"
)

// oneWayType is the SerpAPI trip type for a single directed leg. The
// dispatcher owns round trips by issuing one call per leg, so every call
// from this adapter is one-way.
const oneWayType = "2"

// maxResponseBytes caps how much of the provider response is read.
const maxResponseBytes = 4 << 20

// Config holds the adapter construction options.
type Config struct {
	// APIKey is the SerpAPI credential (required).
	APIKey string

	// BaseURL overrides the API endpoint (for tests).
	BaseURL string

	// Timeout bounds each search call.
	Timeout time.Duration

	// Currency is the ISO 4217 code prices are requested in.
	Currency string
}

// Adapter queries the SerpAPI Google Flights engine for one leg at a time.
// It implements domain.FlightProvider.
type Adapter struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	currency   string
}

// NewAdapter creates an Adapter with the given configuration, filling
// defaults for any zero-valued optional field.
func NewAdapter(cfg Config) *Adapter {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Currency == "" {
		cfg.Currency = DefaultCurrency
	}

	return &Adapter{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		currency:   cfg.Currency,
	}
}

// Name returns the provider's unique identifier.
func (a *Adapter) Name() string {
	return ProviderName
}

// Search fetches the raw option records for one leg and normalizes them.
// It returns the provider's own ordering untouched and an empty slice when
// the provider has no inventory; classifying an empty expected leg as a
// failure is the dispatcher's concern.
func (a *Adapter) Search(ctx context.Context, leg domain.LegQuery) ([]domain.FlightOption, error) {
	endpoint, err := a.buildURL(leg)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrProviderUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrProviderUnavailable, err)
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d", domain.ErrProviderUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrProviderUnavailable, err)
	}

	var searchResp searchResponse
	if err := json.Unmarshal(body, &searchResp); err != nil {
		return nil, fmt.Errorf("%w: decode response: %w", domain.ErrProviderUnavailable, err)
	}
	if searchResp.Error != "" {
		return nil, fmt.Errorf("%w: provider error: %s", domain.ErrProviderUnavailable, searchResp.Error)
	}

	return normalize(searchResp, a.currency), nil
}

// buildURL assembles the search URL for one leg.
func (a *Adapter) buildURL(leg domain.LegQuery) (string, error) {
	base, err := url.Parse(a.baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid base URL %q: %w", a.baseURL, err)
	}
	base.Path = "/search.json"

	params := url.Values{}
	params.Set("engine", "google_flights")
	params.Set("departure_id", leg.Origin)
	params.Set("arrival_id", leg.Destination)
	params.Set("outbound_date", leg.Date)
	params.Set("type", oneWayType)
	params.Set("currency", a.currency)
	params.Set("api_key", a.apiKey)
	base.RawQuery = params.Encode()

	return base.String(), nil
}

// Ensure Adapter implements domain.FlightProvider at compile time.
var _ domain.FlightProvider = (*Adapter)(nil)
