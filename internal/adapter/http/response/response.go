// Package response provides standardized HTTP response builders for the chat
// API. It centralizes response formatting so all endpoints stay consistent.
package response

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Response is the standardized API response envelope.
type Response struct {
	// Success indicates whether the request was handled successfully
	Success bool `json:"success"`

	// Data contains the response payload (for successful responses)
	Data interface{} `json:"data,omitempty"`

	// Error contains error details (for error responses)
	Error *ErrorDetail `json:"error,omitempty"`
}

// ErrorDetail contains structured error information.
type ErrorDetail struct {
	// Code is a machine-readable error code
	Code string `json:"code"`

	// Message is a human-readable error message
	Message string `json:"message"`
}

// Error codes used in API responses.
const (
	CodeInvalidRequest  = "invalid_request"
	CodeValidationError = "validation_error"
	CodeInternalError   = "internal_error"
)

// Error messages used in API responses.
const (
	MsgInvalidRequestBody = "Failed to parse request body"
	MsgInternalError      = "An unexpected error occurred"
)

// OK writes a 200 OK response wrapping data in the success envelope.
func OK(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, &Response{
		Success: true,
		Data:    data,
	})
}

// InvalidRequestBody writes a 400 Bad Request response for malformed bodies.
func InvalidRequestBody(c echo.Context) error {
	return failure(c, http.StatusBadRequest, CodeInvalidRequest, MsgInvalidRequestBody)
}

// ValidationError writes a 400 Bad Request response with the given message.
func ValidationError(c echo.Context, message string) error {
	return failure(c, http.StatusBadRequest, CodeValidationError, message)
}

// InternalServerError writes a 500 Internal Server Error response.
func InternalServerError(c echo.Context) error {
	return failure(c, http.StatusInternalServerError, CodeInternalError, MsgInternalError)
}

// Health writes the health check payload.
func Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// failure writes an error envelope with the given status, code, and message.
func failure(c echo.Context, status int, code, message string) error {
	return c.JSON(status, &Response{
		Success: false,
		Error: &ErrorDetail{
			Code:    code,
			Message: message,
		},
	})
}
