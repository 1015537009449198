// Package http exposes the chat pipeline over HTTP as an alternative to the
// Telegram transport. It handles request parsing, validation, and response
// formatting; all flight logic stays in the pipeline.
package http

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/fly4less/flight-chat-assistant/internal/adapter/http/response"
)

// MessageHandler processes one raw user message and returns the reply.
// The pipeline orchestrator implements it.
type MessageHandler interface {
	Handle(ctx context.Context, rawText string) string
}

// ChatHandler handles HTTP requests for the chat endpoint.
type ChatHandler struct {
	handler MessageHandler
}

// NewChatHandler creates a ChatHandler delegating to the given handler.
func NewChatHandler(handler MessageHandler) *ChatHandler {
	return &ChatHandler{handler: handler}
}

// Chat handles POST /api/v1/chat
//
// @Summary Submit a travel request
// @Description Converts a free-text travel request into a formatted flight summary
// @Tags chat
// @Accept json
// @Produce json
// @Param request body ChatRequest true "Travel request"
// @Success 200 {object} response.Response{data=ChatResponse}
// @Failure 400 {object} response.Response "Malformed or empty request"
// @Router /chat [post]
func (h *ChatHandler) Chat(c echo.Context) error {
	var req ChatRequest
	if err := c.Bind(&req); err != nil {
		return response.InvalidRequestBody(c)
	}

	if err := req.Validate(); err != nil {
		return response.ValidationError(c, err.Error())
	}

	// The pipeline maps every failure to a fixed reply, so this never errors.
	reply := h.handler.Handle(c.Request().Context(), req.Message)

	return response.OK(c, ChatResponse{Reply: reply})
}

// Health handles GET /health
// Simple health check endpoint for load balancers.
func (h *ChatHandler) Health(c echo.Context) error {
	return response.Health(c)
}
