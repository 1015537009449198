package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fly4less/flight-chat-assistant/internal/adapter/http/response"
)

// stubHandler returns a canned reply and records the text it received.
type stubHandler struct {
	reply    string
	received string
}

func (s *stubHandler) Handle(_ context.Context, rawText string) string {
	s.received = rawText
	return s.reply
}

func performChat(t *testing.T, handler *ChatHandler, body string) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, handler.Chat(c))
	return rec
}

func TestChatSuccess(t *testing.T) {
	stub := &stubHandler{reply: "Outbound HYD → BER (2026-10-02)\n1. Lufthansa — USD 420 — direct — 09:00 → 17:45 (9h 15m)"}
	handler := NewChatHandler(stub)

	rec := performChat(t, handler, `{"message": "flight from HYD to BER on Oct 2"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "flight from HYD to BER on Oct 2", stub.received)

	var resp response.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Nil(t, resp.Error)

	data, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var chatResp ChatResponse
	require.NoError(t, json.Unmarshal(data, &chatResp))
	assert.Contains(t, chatResp.Reply, "Lufthansa")
}

func TestChatMalformedBody(t *testing.T) {
	handler := NewChatHandler(&stubHandler{})

	rec := performChat(t, handler, `{"message": `)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp response.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, response.CodeInvalidRequest, resp.Error.Code)
}

func TestChatEmptyMessage(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "missing field", body: `{}`},
		{name: "empty string", body: `{"message": ""}`},
		{name: "blank string", body: `{"message": "   "}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := performChat(t, NewChatHandler(&stubHandler{}), tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)

			var resp response.Response
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, response.CodeValidationError, resp.Error.Code)
		})
	}
}

func TestChatMessageTooLong(t *testing.T) {
	body, err := json.Marshal(ChatRequest{Message: strings.Repeat("x", maxMessageLength+1)})
	require.NoError(t, err)

	rec := performChat(t, NewChatHandler(&stubHandler{}), string(body))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealth(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, NewChatHandler(&stubHandler{}).Health(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}

func TestChatRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		message string
		wantErr bool
	}{
		{name: "valid", message: "flight from HYD to BER on Oct 2", wantErr: false},
		{name: "empty", message: "", wantErr: true},
		{name: "whitespace only", message: "\t \n", wantErr: true},
		{name: "at length cap", message: strings.Repeat("x", maxMessageLength), wantErr: false},
		{name: "over length cap", message: strings.Repeat("x", maxMessageLength+1), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := ChatRequest{Message: tt.message}
			err := req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
