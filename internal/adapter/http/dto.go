package http

import (
	"fmt"
	"strings"
)

// maxMessageLength bounds the accepted request text. Telegram caps messages
// at 4096 characters; the HTTP surface mirrors that.
const maxMessageLength = 4096

// ChatRequest is the request body for the chat endpoint.
type ChatRequest struct {
	// Message is the raw free-text travel request (e.g., "flight from HYD to BER on Oct 2")
	Message string `json:"message" example:"flight from HYD to BER on Oct 2"`
}

// Validate checks the request for usability before it reaches the pipeline.
func (r *ChatRequest) Validate() error {
	if strings.TrimSpace(r.Message) == "" {
		return fmt.Errorf("message is required")
	}
	if len(r.Message) > maxMessageLength {
		return fmt.Errorf("message must not exceed %d characters", maxMessageLength)
	}
	return nil
}

// ChatResponse is the response body for the chat endpoint.
type ChatResponse struct {
	// Reply is the formatted flight summary or a fixed failure message
	Reply string `json:"reply"`
}
