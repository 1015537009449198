package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/fly4less/flight-chat-assistant/internal/domain"
	"github.com/fly4less/flight-chat-assistant/internal/infrastructure/logger"
	"github.com/fly4less/flight-chat-assistant/internal/infrastructure/retry"
	"github.com/fly4less/flight-chat-assistant/internal/infrastructure/timeutil"
)

// fastRetry keeps retry semantics but with negligible delays.
func fastRetry() retry.Config {
	return retry.Config{
		MaxAttempts:  2,
		InitialDelay: time.Millisecond,
		MaxDelay:     time.Millisecond,
		Multiplier:   1.0,
	}
}

func newTestPipeline(t *testing.T, extractor domain.IntentExtractor, provider domain.FlightProvider) *Pipeline {
	t.Helper()
	return NewPipeline(
		extractor,
		NewQueryValidator(timeutil.NewMockClockFromDate("2026-01-15")),
		NewSearchDispatcher(provider, time.Second, logger.Nop()),
		NewResultFormatter(3),
		fastRetry(),
		logger.Nop(),
	)
}

func TestPipelineHappyPath(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	extractor := domain.NewMockIntentExtractor(ctrl)
	extractor.EXPECT().
		Extract(gomock.Any(), "flight from hyderabad to berlin on oct 2").
		Return(oneWayQuery(), nil)

	provider := domain.NewMockFlightProvider(ctrl)
	provider.EXPECT().Name().Return("test_provider").AnyTimes()
	provider.EXPECT().
		Search(gomock.Any(), gomock.Any()).
		Return([]domain.FlightOption{makeOption("Lufthansa", 420)}, nil)

	pipeline := newTestPipeline(t, extractor, provider)
	reply := pipeline.Handle(context.Background(), "flight from hyderabad to berlin on oct 2")

	assert.Contains(t, reply, "Outbound HYD → BER (2026-10-02)")
	assert.Contains(t, reply, "Lufthansa")
}

func TestPipelineMalformedExtractionIsNotRetried(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	extractor := domain.NewMockIntentExtractor(ctrl)
	// Exactly one attempt: a malformed response will not improve on retry.
	extractor.EXPECT().
		Extract(gomock.Any(), gomock.Any()).
		Return(domain.FlightQuery{}, domain.NewMalformedExtractionError(errors.New("not json"))).
		Times(1)

	provider := domain.NewMockFlightProvider(ctrl)
	provider.EXPECT().Name().Return("test_provider").AnyTimes()

	pipeline := newTestPipeline(t, extractor, provider)
	reply := pipeline.Handle(context.Background(), "gibberish")

	assert.Equal(t, MsgCannotUnderstand, reply)
}

func TestPipelineIncompleteExtraction(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	extractor := domain.NewMockIntentExtractor(ctrl)
	extractor.EXPECT().
		Extract(gomock.Any(), gomock.Any()).
		Return(domain.FlightQuery{}, domain.NewIncompleteExtractionError([]string{"depart_date"})).
		Times(1)

	provider := domain.NewMockFlightProvider(ctrl)
	provider.EXPECT().Name().Return("test_provider").AnyTimes()

	pipeline := newTestPipeline(t, extractor, provider)
	reply := pipeline.Handle(context.Background(), "flight to berlin")

	assert.Equal(t, MsgCannotUnderstand, reply)
}

func TestPipelineRetriesTransientNLUFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	extractor := domain.NewMockIntentExtractor(ctrl)
	gomock.InOrder(
		extractor.EXPECT().
			Extract(gomock.Any(), gomock.Any()).
			Return(domain.FlightQuery{}, domain.NewNLUUnavailableError(errors.New("timeout"))),
		extractor.EXPECT().
			Extract(gomock.Any(), gomock.Any()).
			Return(oneWayQuery(), nil),
	)

	provider := domain.NewMockFlightProvider(ctrl)
	provider.EXPECT().Name().Return("test_provider").AnyTimes()
	provider.EXPECT().
		Search(gomock.Any(), gomock.Any()).
		Return([]domain.FlightOption{makeOption("Lufthansa", 420)}, nil)

	pipeline := newTestPipeline(t, extractor, provider)
	reply := pipeline.Handle(context.Background(), "hyd to ber oct 2")

	assert.Contains(t, reply, "Lufthansa")
}

func TestPipelineExhaustedNLURetries(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	extractor := domain.NewMockIntentExtractor(ctrl)
	extractor.EXPECT().
		Extract(gomock.Any(), gomock.Any()).
		Return(domain.FlightQuery{}, domain.NewNLUUnavailableError(errors.New("timeout"))).
		Times(2)

	provider := domain.NewMockFlightProvider(ctrl)
	provider.EXPECT().Name().Return("test_provider").AnyTimes()

	pipeline := newTestPipeline(t, extractor, provider)
	reply := pipeline.Handle(context.Background(), "hyd to ber oct 2")

	assert.Equal(t, MsgCannotUnderstand, reply)
}

func TestPipelineInvalidQuery(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	extractor := domain.NewMockIntentExtractor(ctrl)
	pastTrip := oneWayQuery()
	pastTrip.DepartDate = "2025-01-01"
	extractor.EXPECT().
		Extract(gomock.Any(), gomock.Any()).
		Return(pastTrip, nil)

	provider := domain.NewMockFlightProvider(ctrl)
	provider.EXPECT().Name().Return("test_provider").AnyTimes()

	pipeline := newTestPipeline(t, extractor, provider)
	reply := pipeline.Handle(context.Background(), "hyd to ber last january")

	assert.Equal(t, MsgInvalidTrip, reply)
}

func TestPipelineEmptyInventoryIsNotRetried(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	extractor := domain.NewMockIntentExtractor(ctrl)
	extractor.EXPECT().
		Extract(gomock.Any(), gomock.Any()).
		Return(oneWayQuery(), nil)

	provider := domain.NewMockFlightProvider(ctrl)
	provider.EXPECT().Name().Return("test_provider").AnyTimes()
	// Exactly one search: empty inventory is permanent.
	provider.EXPECT().
		Search(gomock.Any(), gomock.Any()).
		Return([]domain.FlightOption{}, nil).
		Times(1)

	pipeline := newTestPipeline(t, extractor, provider)
	reply := pipeline.Handle(context.Background(), "hyd to ber oct 2")

	assert.Equal(t, MsgNoFlights, reply)
}

func TestPipelineRetriesTransientSearchFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	extractor := domain.NewMockIntentExtractor(ctrl)
	extractor.EXPECT().
		Extract(gomock.Any(), gomock.Any()).
		Return(oneWayQuery(), nil)

	provider := domain.NewMockFlightProvider(ctrl)
	provider.EXPECT().Name().Return("test_provider").AnyTimes()
	gomock.InOrder(
		provider.EXPECT().
			Search(gomock.Any(), gomock.Any()).
			Return(nil, domain.ErrProviderUnavailable),
		provider.EXPECT().
			Search(gomock.Any(), gomock.Any()).
			Return([]domain.FlightOption{makeOption("Lufthansa", 420)}, nil),
	)

	pipeline := newTestPipeline(t, extractor, provider)
	reply := pipeline.Handle(context.Background(), "hyd to ber oct 2")

	assert.Contains(t, reply, "Lufthansa")
}

func TestPipelineExhaustedSearchRetries(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	extractor := domain.NewMockIntentExtractor(ctrl)
	extractor.EXPECT().
		Extract(gomock.Any(), gomock.Any()).
		Return(oneWayQuery(), nil)

	provider := domain.NewMockFlightProvider(ctrl)
	provider.EXPECT().Name().Return("test_provider").AnyTimes()
	provider.EXPECT().
		Search(gomock.Any(), gomock.Any()).
		Return(nil, domain.ErrProviderUnavailable).
		Times(2)

	pipeline := newTestPipeline(t, extractor, provider)
	reply := pipeline.Handle(context.Background(), "hyd to ber oct 2")

	assert.Equal(t, MsgNoFlights, reply)
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "malformed extraction",
			err:      domain.NewMalformedExtractionError(errors.New("bad json")),
			expected: MsgCannotUnderstand,
		},
		{
			name:     "incomplete extraction",
			err:      domain.NewIncompleteExtractionError([]string{"origin"}),
			expected: MsgCannotUnderstand,
		},
		{
			name:     "nlu unavailable",
			err:      domain.NewNLUUnavailableError(errors.New("503")),
			expected: MsgCannotUnderstand,
		},
		{
			name:     "invalid query",
			err:      domain.ErrInvalidQuery,
			expected: MsgInvalidTrip,
		},
		{
			name:     "search failure",
			err:      domain.NewSearchError(domain.LegOutbound, errors.New("boom")),
			expected: MsgNoFlights,
		},
		{
			name:     "empty leg",
			err:      domain.NewEmptyLegError(domain.LegReturn),
			expected: MsgNoFlights,
		},
		{
			name:     "unknown error",
			err:      errors.New("surprise"),
			expected: MsgSomethingWrong,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, UserMessage(tt.err))
		})
	}
}
