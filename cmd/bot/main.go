// Package main is the entry point for the flight chat assistant.
//
//	@title						Flight Chat Assistant API
//	@version					1.0.0
//	@description				Turns free-text travel requests into structured flight searches and formatted summaries.
//
//	@host						localhost:8080
//	@BasePath					/api/v1
//
//	@schemes					http
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	// Import generated docs for swagger
	_ "github.com/fly4less/flight-chat-assistant/docs"

	chathttp "github.com/fly4less/flight-chat-assistant/internal/adapter/http"
	"github.com/fly4less/flight-chat-assistant/internal/adapter/nlu/gemini"
	"github.com/fly4less/flight-chat-assistant/internal/adapter/provider/serpapi"
	"github.com/fly4less/flight-chat-assistant/internal/adapter/telegram"
	"github.com/fly4less/flight-chat-assistant/internal/config"
	"github.com/fly4less/flight-chat-assistant/internal/infrastructure/logger"
	"github.com/fly4less/flight-chat-assistant/internal/infrastructure/retry"
	"github.com/fly4less/flight-chat-assistant/internal/infrastructure/timeutil"
	"github.com/fly4less/flight-chat-assistant/internal/usecase"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.MustLoad()

	log := logger.New(logger.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		ServiceName: "flight-chat-assistant",
	})

	log.Info().
		Str("env", cfg.App.Env).
		Bool("telegram", cfg.Telegram.Enabled).
		Bool("http", cfg.Server.Enabled).
		Msg("Configuration loaded")

	pipeline := buildPipeline(cfg, log)

	// Root context cancelled on interrupt; transports drop in-flight replies
	// once it is gone.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var e *echo.Echo
	if cfg.Server.Enabled {
		e = buildServer(cfg, pipeline, log)
		go func() {
			addr := fmt.Sprintf(":%d", cfg.Server.Port)
			log.Info().Str("address", addr).Msg("Starting HTTP server")
			if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Fatal().Err(err).Msg("Failed to start HTTP server")
			}
		}()
	}

	if cfg.Telegram.Enabled {
		client := telegram.NewClient(telegram.Config{
			Token:   cfg.Telegram.BotToken,
			BaseURL: cfg.Telegram.BaseURL,
		})
		poller := telegram.NewPoller(client, pipeline, cfg.Telegram.PollTimeout, log)
		go func() {
			if err := poller.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error().Err(err).Msg("Telegram poller stopped")
			}
		}()
	}

	<-ctx.Done()
	log.Info().Msg("Shutting down")

	if e != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Error during server shutdown")
		}
	}

	log.Info().Msg("Stopped")
}

// buildPipeline wires the four pipeline components from configuration.
// Collaborators are passed in explicitly so each component stays testable
// with substituted doubles.
func buildPipeline(cfg *config.Config, log zerolog.Logger) *usecase.Pipeline {
	clock := timeutil.NewRealClock()

	extractor := gemini.NewClient(gemini.Config{
		APIKey:  cfg.NLU.APIKey,
		Model:   cfg.NLU.Model,
		BaseURL: cfg.NLU.BaseURL,
		Timeout: cfg.NLU.Timeout,
		Clock:   clock,
	})

	provider := serpapi.NewAdapter(serpapi.Config{
		APIKey:   cfg.Search.APIKey,
		BaseURL:  cfg.Search.BaseURL,
		Timeout:  cfg.Search.Timeout,
		Currency: cfg.Search.Currency,
	})

	validator := usecase.NewQueryValidator(clock)
	dispatcher := usecase.NewSearchDispatcher(provider, cfg.Search.Timeout, log)
	formatter := usecase.NewResultFormatter(cfg.Pipeline.MaxOptionsPerLeg)
	retryCfg := retry.DefaultConfig.WithMaxAttempts(cfg.Pipeline.RetryMaxAttempts)

	return usecase.NewPipeline(extractor, validator, dispatcher, formatter, retryCfg, log)
}

// buildServer assembles the Echo instance with middleware and routes.
func buildServer(cfg *config.Config, pipeline *usecase.Pipeline, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Info().
				Str("request_id", v.RequestID).
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Msg("HTTP request")
			return nil
		},
	}))

	handler := chathttp.NewChatHandler(pipeline)
	chathttp.RegisterRoutes(e, handler)

	return e
}
