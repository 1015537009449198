package telegram

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Greeting is the fixed reply to the /start command.
const Greeting = "Hi! Tell me where you want to fly, and I'll help you find the cheapest tickets!"

// errorBackoff is how long the poll loop waits after a failed getUpdates
// before trying again.
const errorBackoff = 3 * time.Second

// Handler processes one raw user message and returns the reply to deliver.
// The pipeline orchestrator implements it.
type Handler interface {
	Handle(ctx context.Context, rawText string) string
}

// Poller drives the long-poll loop: it fetches updates and runs each message
// through the handler in its own goroutine, so requests from distinct users
// are in flight concurrently while each run stays sequential internally.
type Poller struct {
	client      *Client
	handler     Handler
	pollTimeout time.Duration
	log         zerolog.Logger
}

// NewPoller creates a Poller delivering updates to the given handler.
func NewPoller(client *Client, handler Handler, pollTimeout time.Duration, log zerolog.Logger) *Poller {
	return &Poller{
		client:      client,
		handler:     handler,
		pollTimeout: pollTimeout,
		log:         log,
	}
}

// Run polls for updates until the context is cancelled.
func (p *Poller) Run(ctx context.Context) error {
	p.log.Info().Dur("poll_timeout", p.pollTimeout).Msg("Starting Telegram poller")

	var offset int64
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		updates, err := p.client.GetUpdates(ctx, offset, p.pollTimeout)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			p.log.Warn().Err(err).Msg("getUpdates failed, backing off")
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(errorBackoff):
			}
			continue
		}

		for _, update := range updates {
			if update.UpdateID >= offset {
				offset = update.UpdateID + 1
			}
			go p.process(ctx, update)
		}
	}
}

// process handles a single update end to end. If the context is gone by the
// time a reply is ready, the reply is dropped rather than delivered late.
func (p *Poller) process(ctx context.Context, update Update) {
	if update.Message == nil || strings.TrimSpace(update.Message.Text) == "" {
		return
	}

	chatID := update.Message.Chat.ID
	text := update.Message.Text

	var reply string
	if isStartCommand(text) {
		reply = Greeting
	} else {
		reply = p.handler.Handle(ctx, text)
	}

	if ctx.Err() != nil {
		p.log.Info().Int64("chat_id", chatID).Msg("Context gone, dropping reply")
		return
	}

	if err := p.client.SendMessage(ctx, chatID, reply); err != nil {
		p.log.Error().Int64("chat_id", chatID).Err(err).Msg("Failed to deliver reply")
	}
}

// isStartCommand reports whether text is the /start command, with or without
// a bot-name suffix.
func isStartCommand(text string) bool {
	trimmed := strings.TrimSpace(text)
	return trimmed == "/start" || strings.HasPrefix(trimmed, "/start@")
}
