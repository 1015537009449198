package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/fly4less/flight-chat-assistant/internal/domain"
	"github.com/fly4less/flight-chat-assistant/internal/infrastructure/retry"
)

// Fixed user-facing replies, one per failure class. Raw service or provider
// error text is never surfaced to the user.
const (
	// MsgCannotUnderstand is the reply for extraction failures.
	MsgCannotUnderstand = "I couldn't understand that request. Tell me where you're flying from, where to, and when."

	// MsgInvalidTrip is the reply for validation failures.
	MsgInvalidTrip = "That doesn't look like a valid trip (check your dates/cities)."

	// MsgNoFlights is the reply for search failures and empty legs.
	MsgNoFlights = "I couldn't find flights for that route/date."

	// MsgSomethingWrong is the reply for everything else.
	MsgSomethingWrong = "Something went wrong, please try again."
)

// pipeline stages, in processing order. A run moves strictly forward through
// them; any failure transitions to stageFailed and resolves to a fixed reply.
type stage string

const (
	stageReceived   stage = "received"
	stageExtracting stage = "extracting"
	stageValidating stage = "validating"
	stageSearching  stage = "searching"
	stageFormatting stage = "formatting"
	stageReplied    stage = "replied"
	stageFailed     stage = "failed"
)

// Pipeline sequences the four processing steps per incoming message and maps
// failures at any stage to a user-facing reply. Each message is processed
// independently and statelessly; runs for distinct messages may execute
// concurrently because no state is shared between them.
type Pipeline struct {
	extractor  domain.IntentExtractor
	validator  *QueryValidator
	dispatcher *SearchDispatcher
	formatter  *ResultFormatter
	retryCfg   retry.Config
	log        zerolog.Logger
}

// NewPipeline wires the pipeline components together. The retry configuration
// is applied uniformly to the NLU and search stages; validation and
// formatting never retry.
func NewPipeline(
	extractor domain.IntentExtractor,
	validator *QueryValidator,
	dispatcher *SearchDispatcher,
	formatter *ResultFormatter,
	retryCfg retry.Config,
	log zerolog.Logger,
) *Pipeline {
	return &Pipeline{
		extractor:  extractor,
		validator:  validator,
		dispatcher: dispatcher,
		formatter:  formatter,
		retryCfg:   retryCfg.WithRetryIf(retry.SkipPermanent),
		log:        log,
	}
}

// Handle processes one raw user message and always resolves to a reply;
// nothing in the pipeline is fatal to the process.
func (p *Pipeline) Handle(ctx context.Context, rawText string) string {
	reply, err := p.run(ctx, rawText)
	if err != nil {
		return UserMessage(err)
	}
	return reply
}

// run executes the stage chain for one message and returns the formatted
// reply or the first stage error.
func (p *Pipeline) run(ctx context.Context, rawText string) (string, error) {
	runID := uuid.NewString()
	log := p.log.With().Str("run_id", runID).Logger()
	start := time.Now()

	log.Debug().Str("stage", string(stageReceived)).Int("text_len", len(rawText)).Msg("Message received")

	log.Debug().Str("stage", string(stageExtracting)).Msg("Extracting intent")
	query, err := retry.DoWithResult(ctx, func() (domain.FlightQuery, error) {
		q, extractErr := p.extractor.Extract(ctx, rawText)
		if extractErr != nil && !errors.Is(extractErr, domain.ErrNLUUnavailable) {
			// Malformed or incomplete responses will not improve on retry.
			return q, retry.NewPermanent(extractErr)
		}
		return q, extractErr
	}, p.retryCfg)
	if err != nil {
		return "", p.fail(log, stageExtracting, err)
	}

	log.Debug().Str("stage", string(stageValidating)).
		Str("origin", query.Origin).
		Str("destination", query.Destination).
		Msg("Validating query")
	query, err = p.validator.Validate(query)
	if err != nil {
		return "", p.fail(log, stageValidating, err)
	}

	log.Debug().Str("stage", string(stageSearching)).Str("trip_type", string(query.TripType)).Msg("Dispatching search")
	result, err := retry.DoWithResult(ctx, func() (domain.SearchResult, error) {
		r, searchErr := p.dispatcher.Search(ctx, query)
		if searchErr != nil && domain.IsNoOptions(searchErr) {
			// Empty inventory will not change between attempts.
			return r, retry.NewPermanent(searchErr)
		}
		return r, searchErr
	}, p.retryCfg)
	if err != nil {
		return "", p.fail(log, stageSearching, err)
	}

	log.Debug().Str("stage", string(stageFormatting)).Int("options", result.TotalOptions()).Msg("Formatting reply")
	reply := p.formatter.Format(result)

	log.Info().
		Str("stage", string(stageReplied)).
		Str("origin", query.Origin).
		Str("destination", query.Destination).
		Str("trip_type", string(query.TripType)).
		Int("options", result.TotalOptions()).
		Dur("duration", time.Since(start)).
		Msg("Pipeline run completed")

	return reply, nil
}

// fail logs the terminal failure and returns the stage error unchanged.
func (p *Pipeline) fail(log zerolog.Logger, failedAt stage, err error) error {
	log.Warn().
		Str("stage", string(stageFailed)).
		Str("failed_at", string(failedAt)).
		Err(err).
		Msg("Pipeline run failed")
	return err
}

// UserMessage maps a pipeline error to its fixed user-facing reply class.
func UserMessage(err error) string {
	switch {
	case domain.IsExtractionError(err):
		return MsgCannotUnderstand
	case domain.IsInvalidQuery(err):
		return MsgInvalidTrip
	case domain.IsSearchError(err):
		return MsgNoFlights
	default:
		return MsgSomethingWrong
	}
}
