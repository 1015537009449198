// Package gemini implements the intent extractor against a Gemini-style
// generateContent REST endpoint. It makes exactly one outbound call per
// extraction and never retries; retry policy lives in the pipeline.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/fly4less/flight-chat-assistant/internal/domain"
	"github.com/fly4less/flight-chat-assistant/internal/infrastructure/timeutil"
)

// Default client settings.
const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com"
	DefaultModel   = "gemini-2.0-flash"
	DefaultTimeout = 15 * time.Second
)

// maxResponseBytes caps how much of the service response is read.
const maxResponseBytes = 1 << 20

// Config holds the client construction options.
type Config struct {
	// APIKey is the NLU service credential (required).
	APIKey string

	// Model is the model identifier to query.
	Model string

	// BaseURL overrides the service endpoint (for tests).
	BaseURL string

	// Timeout bounds each extraction call.
	Timeout time.Duration

	// Clock anchors the "today" reference in the prompt.
	Clock timeutil.Clock
}

// Client calls the NLU service and parses its structured response into a
// typed FlightQuery. It implements domain.IntentExtractor.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
	clock      timeutil.Clock
}

// NewClient creates a Client with the given configuration, filling defaults
// for any zero-valued optional field.
func NewClient(cfg Config) *Client {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Clock == nil {
		cfg.Clock = timeutil.NewRealClock()
	}

	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		clock:      cfg.Clock,
	}
}

// Extract sends rawText plus the fixed schema hint to the NLU service and
// parses the response into a FlightQuery. Failures are reported as
// *domain.ExtractionError wrapping the matching sentinel.
func (c *Client) Extract(ctx context.Context, rawText string) (domain.FlightQuery, error) {
	reqBody := generateRequest{
		Contents: []content{{
			Parts: []part{{Text: buildPrompt(rawText, c.clock.Now())}},
		}},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return domain.FlightQuery{}, domain.NewMalformedExtractionError(err)
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		c.baseURL, c.model, url.QueryEscape(c.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return domain.FlightQuery{}, domain.NewNLUUnavailableError(err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.FlightQuery{}, domain.NewNLUUnavailableError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.FlightQuery{}, domain.NewNLUUnavailableError(
			fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return domain.FlightQuery{}, domain.NewNLUUnavailableError(err)
	}

	var genResp generateResponse
	if err := json.Unmarshal(body, &genResp); err != nil {
		return domain.FlightQuery{}, domain.NewMalformedExtractionError(err)
	}

	text := firstText(genResp)
	if text == "" {
		return domain.FlightQuery{}, domain.NewMalformedExtractionError(
			fmt.Errorf("response contains no text candidate"))
	}

	outcome := Parse(text)
	switch outcome.Kind {
	case OutcomeParsed:
		return outcome.Query, nil
	case OutcomeIncomplete:
		return domain.FlightQuery{}, domain.NewIncompleteExtractionError(outcome.MissingFields)
	default:
		return domain.FlightQuery{}, domain.NewMalformedExtractionError(outcome.Err)
	}
}

// firstText returns the text of the first candidate part, or "".
func firstText(resp generateResponse) string {
	for _, cand := range resp.Candidates {
		for _, p := range cand.Content.Parts {
			if p.Text != "" {
				return p.Text
			}
		}
	}
	return ""
}

// Ensure Client implements domain.IntentExtractor at compile time.
var _ domain.IntentExtractor = (*Client)(nil)
