// Package integration provides helpers and integration tests for the chat
// assistant. Integration tests verify that the pipeline, HTTP handler, and
// mock adapters work together correctly.
package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/labstack/echo/v4"

	httpAdapter "github.com/fly4less/flight-chat-assistant/internal/adapter/http"
	"github.com/fly4less/flight-chat-assistant/internal/domain"
	"github.com/fly4less/flight-chat-assistant/internal/infrastructure/logger"
	"github.com/fly4less/flight-chat-assistant/internal/infrastructure/retry"
	"github.com/fly4less/flight-chat-assistant/internal/infrastructure/timeutil"
	"github.com/fly4less/flight-chat-assistant/internal/usecase"
)

// Today is the fixed "now" all integration tests validate against.
const Today = "2026-01-15"

// CreatePipeline wires a full pipeline around the given extractor and
// provider, with fast retries and no log output.
func CreatePipeline(extractor domain.IntentExtractor, provider domain.FlightProvider) *usecase.Pipeline {
	retryCfg := retry.Config{
		MaxAttempts:  2,
		InitialDelay: time.Millisecond,
		MaxDelay:     time.Millisecond,
		Multiplier:   1.0,
	}

	return usecase.NewPipeline(
		extractor,
		usecase.NewQueryValidator(timeutil.NewMockClockFromDate(Today)),
		usecase.NewSearchDispatcher(provider, time.Second, logger.Nop()),
		usecase.NewResultFormatter(3),
		retryCfg,
		logger.Nop(),
	)
}

// OneWayQuery returns a valid one-way query relative to Today.
func OneWayQuery() domain.FlightQuery {
	return domain.FlightQuery{
		TripType:    domain.TripOneWay,
		Origin:      "HYD",
		Destination: "BER",
		DepartDate:  "2026-10-02",
	}
}

// RoundTripQuery returns a valid round-trip query relative to Today.
func RoundTripQuery() domain.FlightQuery {
	return domain.FlightQuery{
		TripType:    domain.TripRoundTrip,
		Origin:      "YTO",
		Destination: "NYC",
		DepartDate:  "2026-10-10",
		ReturnDate:  "2026-10-20",
	}
}

// TestServer wraps an Echo instance for HTTP integration testing.
type TestServer struct {
	Echo *echo.Echo
}

// NewTestServer creates a test server routing chat requests to handler.
func NewTestServer(handler httpAdapter.MessageHandler) *TestServer {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	httpAdapter.RegisterRoutes(e, httpAdapter.NewChatHandler(handler))

	return &TestServer{Echo: e}
}

// Response represents a test HTTP response.
type Response struct {
	Code int
	Body []byte
}

// Chat performs a POST /api/v1/chat with the given body.
func (ts *TestServer) Chat(body interface{}) Response {
	bodyBytes, _ := json.Marshal(body)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat", bytes.NewReader(bodyBytes))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

	rec := httptest.NewRecorder()
	ts.Echo.ServeHTTP(rec, req)

	return Response{Code: rec.Code, Body: rec.Body.Bytes()}
}

// Health performs a GET /health.
func (ts *TestServer) Health() Response {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	ts.Echo.ServeHTTP(rec, req)

	return Response{Code: rec.Code, Body: rec.Body.Bytes()}
}

// ParseReply extracts the reply text from a chat response envelope.
func (r Response) ParseReply() (string, error) {
	var envelope struct {
		Success bool `json:"success"`
		Data    struct {
			Reply string `json:"reply"`
		} `json:"data"`
	}
	if err := json.Unmarshal(r.Body, &envelope); err != nil {
		return "", err
	}
	return envelope.Data.Reply, nil
}
