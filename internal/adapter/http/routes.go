package http

import (
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// RegisterRoutes wires the chat API routes onto the Echo instance.
// The health endpoint stays at the root level for load balancers.
func RegisterRoutes(e *echo.Echo, handler *ChatHandler) {
	e.GET("/health", handler.Health)

	api := e.Group("/api/v1")
	api.POST("/chat", handler.Chat)

	e.GET("/swagger/*", echoSwagger.WrapHandler)
}
