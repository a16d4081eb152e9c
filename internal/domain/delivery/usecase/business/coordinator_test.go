package business

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Conte777/GateFlow/config"
	contentEntities "github.com/Conte777/GateFlow/internal/domain/content/entities"
	contenterrors "github.com/Conte777/GateFlow/internal/domain/content/errors"
	"github.com/Conte777/GateFlow/internal/domain/delivery/deps"
	"github.com/Conte777/GateFlow/internal/domain/delivery/dto"
	"github.com/Conte777/GateFlow/internal/domain/delivery/entities"
	deliveryerrors "github.com/Conte777/GateFlow/internal/domain/delivery/errors"
	"github.com/Conte777/GateFlow/internal/domain/delivery/repository/postgres"
	"github.com/Conte777/GateFlow/internal/domain/transport"
	"github.com/Conte777/GateFlow/internal/infrastructure/database/dbtest"
	"github.com/Conte777/GateFlow/pkg/clock"
	pkgerrors "github.com/Conte777/GateFlow/pkg/errors"
)

const (
	userID         int64 = 42
	contentChannel int64 = -1003872857468
)

var start = time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC)

type fakeResolver map[string]*contentEntities.ContentDescriptor

func (f fakeResolver) Resolve(_ context.Context, id string) (*contentEntities.ContentDescriptor, error) {
	if c, ok := f[id]; ok {
		return c, nil
	}
	return nil, contenterrors.ErrContentNotFound
}

type copyCall struct {
	to, from int64
	msgID    int
	protect  bool
}

type fakeTransport struct {
	copyErrs []error
	sendErrs []error
	copies   []copyCall
	sent     []*entities.OutgoingMessage
	nextRef  int
}

func (f *fakeTransport) CopyMessage(_ context.Context, to, from int64, msgID int, protect bool) (int, error) {
	f.copies = append(f.copies, copyCall{to, from, msgID, protect})
	if len(f.copyErrs) > 0 {
		err := f.copyErrs[0]
		f.copyErrs = f.copyErrs[1:]
		if err != nil {
			return 0, err
		}
	}
	f.nextRef++
	return 100 + f.nextRef, nil
}

func (f *fakeTransport) SendMessage(_ context.Context, msg *entities.OutgoingMessage) (int, error) {
	if len(f.sendErrs) > 0 {
		err := f.sendErrs[0]
		f.sendErrs = f.sendErrs[1:]
		if err != nil {
			return 0, err
		}
	}
	f.sent = append(f.sent, msg)
	f.nextRef++
	return 100 + f.nextRef, nil
}

type fakePublisher struct {
	delivered   []*dto.ContentDeliveredEvent
	unavailable []*dto.ContentUnavailableEvent
}

func (f *fakePublisher) PublishDelivered(_ context.Context, e *dto.ContentDeliveredEvent) error {
	f.delivered = append(f.delivered, e)
	return nil
}

func (f *fakePublisher) PublishUnavailable(_ context.Context, e *dto.ContentUnavailableEvent) error {
	f.unavailable = append(f.unavailable, e)
	return nil
}

func (f *fakePublisher) Close() error { return nil }

type brokenLedgerRepo struct{}

func (brokenLedgerRepo) Exists(context.Context, int64, string) (bool, error) {
	return false, deliveryerrors.ErrDatabaseOperation
}
func (brokenLedgerRepo) Upsert(context.Context, *entities.DeliveryRecord) error {
	return deliveryerrors.ErrDatabaseOperation
}
func (brokenLedgerRepo) Delete(context.Context, int64, string) (bool, error) {
	return false, deliveryerrors.ErrDatabaseOperation
}
func (brokenLedgerRepo) DeleteAllButLatest(context.Context, int64, int) (int64, error) {
	return 0, deliveryerrors.ErrDatabaseOperation
}
func (brokenLedgerRepo) UsersOver(context.Context, int) ([]int64, error) {
	return nil, deliveryerrors.ErrDatabaseOperation
}
func (brokenLedgerRepo) Stats(context.Context) (*entities.Stats, error) {
	return nil, deliveryerrors.ErrDatabaseOperation
}

type harness struct {
	coordinator *Coordinator
	ledger      *Ledger
	transport   *fakeTransport
	publisher   *fakePublisher
	clock       *clock.Fake
}

func newHarness(t *testing.T, repo deps.LedgerRepository) *harness {
	t.Helper()
	if repo == nil {
		repo = postgres.NewRepository(dbtest.Open(t))
	}

	clk := clock.NewFake(start)
	tr := &fakeTransport{}
	pub := &fakePublisher{}
	ledger := NewLedger(repo, clk, nil, zerolog.Nop())
	resolver := fakeResolver{
		"abc123": {
			ID:    "abc123",
			Type:  contentEntities.ContentTypeVideo,
			Media: &contentEntities.MediaRef{ChannelID: contentChannel, MessageID: 77},
		},
		"yt1": {
			ID:   "yt1",
			Type: contentEntities.ContentTypeLink,
			URL:  "https://youtu.be/dQw4w9WgXcQ",
		},
	}

	coordinator := NewCoordinator(resolver, tr, ledger, pub, &config.TelegramConfig{ProtectContent: true}, clk, nil, zerolog.Nop())
	return &harness{coordinator: coordinator, ledger: ledger, transport: tr, publisher: pub, clock: clk}
}

func TestCoordinator_VideoDeliveredThenRedelivered(t *testing.T) {
	h := newHarness(t, nil)
	ctx := context.Background()

	first := h.coordinator.Deliver(ctx, userID, "abc123")
	require.Equal(t, entities.OutcomeDelivered, first.Outcome)
	assert.False(t, first.Redelivered)
	assert.Equal(t, 101, first.MessageRef)
	assert.Equal(t, copyCall{to: userID, from: contentChannel, msgID: 77, protect: true}, h.transport.copies[0])

	delivered, err := h.ledger.HasDelivered(ctx, userID, "abc123")
	require.NoError(t, err)
	assert.True(t, delivered)

	h.clock.Advance(time.Minute)
	second := h.coordinator.Deliver(ctx, userID, "abc123")
	require.Equal(t, entities.OutcomeDelivered, second.Outcome)
	assert.True(t, second.Redelivered)
	assert.NotEqual(t, first.MessageRef, second.MessageRef)

	stats, err := h.ledger.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Deliveries, "one record per user and content")

	require.Len(t, h.transport.sent, 2, "a confirmation per video delivery")
	require.Len(t, h.publisher.delivered, 2)
	assert.True(t, h.publisher.delivered[1].Redelivered)
}

func TestCoordinator_LinkPresentation(t *testing.T) {
	h := newHarness(t, nil)

	res := h.coordinator.Deliver(context.Background(), userID, "yt1")
	require.Equal(t, entities.OutcomeDelivered, res.Outcome)
	assert.Equal(t, LabelYouTube, res.Label)

	require.Len(t, h.transport.sent, 1, "links carry no separate confirmation")
	msg := h.transport.sent[0]
	assert.Equal(t, userID, msg.ChatID)
	assert.True(t, msg.DisablePreview)
	require.NotNil(t, msg.Button)
	assert.Equal(t, "🔗 Open YouTube Video", msg.Button.Text)
	assert.Equal(t, "https://youtu.be/dQw4w9WgXcQ", msg.Button.URL)
	assert.Contains(t, msg.Text, "YouTube Video")
	assert.Empty(t, h.transport.copies)
}

func TestCoordinator_LinkDeliveredThenRedelivered(t *testing.T) {
	h := newHarness(t, nil)
	h.coordinator = NewCoordinator(fakeResolver{
		"abc123": {ID: "abc123", Type: contentEntities.ContentTypeLink, URL: "https://youtu.be/xyz"},
	}, h.transport, h.ledger, h.publisher, &config.TelegramConfig{ProtectContent: true}, h.clock, nil, zerolog.Nop())
	ctx := context.Background()

	first := h.coordinator.Deliver(ctx, userID, "abc123")
	require.Equal(t, entities.OutcomeDelivered, first.Outcome)
	assert.Equal(t, LabelYouTube, first.Label)
	assert.False(t, first.Redelivered)
	require.Len(t, h.transport.sent, 1)
	assert.Contains(t, h.transport.sent[0].Text, "YouTube Video")
	assert.Equal(t, "https://youtu.be/xyz", h.transport.sent[0].Button.URL)
	assert.Empty(t, h.transport.copies)

	h.clock.Advance(time.Minute)
	second := h.coordinator.Deliver(ctx, userID, "abc123")
	require.Equal(t, entities.OutcomeDelivered, second.Outcome)
	assert.True(t, second.Redelivered)
	assert.Len(t, h.transport.sent, 2)

	stats, err := h.ledger.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Deliveries)
}

func TestCoordinator_NotFound(t *testing.T) {
	h := newHarness(t, nil)

	res := h.coordinator.Deliver(context.Background(), userID, "zzz999")
	assert.Equal(t, entities.OutcomeNotFound, res.Outcome)
	assert.Empty(t, h.transport.copies)
	assert.Empty(t, h.transport.sent)
	assert.Empty(t, h.publisher.delivered)
}

func TestCoordinator_SingleBackoffRetry(t *testing.T) {
	h := newHarness(t, nil)
	h.transport.copyErrs = []error{pkgerrors.NewRateLimitError(5 * time.Second), nil}

	res := h.coordinator.Deliver(context.Background(), userID, "abc123")
	require.Equal(t, entities.OutcomeDelivered, res.Outcome)
	assert.Equal(t, []time.Duration{5 * time.Second}, h.clock.Sleeps())
	assert.Len(t, h.transport.copies, 2)
}

func TestCoordinator_RateLimitExhausted(t *testing.T) {
	h := newHarness(t, nil)
	h.transport.copyErrs = []error{
		pkgerrors.NewRateLimitError(5 * time.Second),
		pkgerrors.NewRateLimitError(7 * time.Second),
		nil,
	}

	res := h.coordinator.Deliver(context.Background(), userID, "abc123")
	assert.Equal(t, entities.OutcomeRateLimitedExhausted, res.Outcome)
	assert.Equal(t, []time.Duration{5 * time.Second}, h.clock.Sleeps())
	assert.Len(t, h.transport.copies, 2, "no call after the second rate limit")
	assert.Empty(t, h.transport.sent)

	delivered, err := h.ledger.HasDelivered(context.Background(), userID, "abc123")
	require.NoError(t, err)
	assert.False(t, delivered)
}

func TestCoordinator_SleepInterruptedFails(t *testing.T) {
	h := newHarness(t, nil)
	h.transport.copyErrs = []error{pkgerrors.NewRateLimitError(time.Second)}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := h.coordinator.Deliver(ctx, userID, "abc123")
	assert.Equal(t, entities.OutcomeFailed, res.Outcome)
}

func TestCoordinator_UnavailableMedia(t *testing.T) {
	for _, cause := range []error{transport.ErrMediaMissing, transport.ErrInvalidReference} {
		t.Run(cause.Error(), func(t *testing.T) {
			h := newHarness(t, nil)
			h.transport.copyErrs = []error{cause}

			res := h.coordinator.Deliver(context.Background(), userID, "abc123")
			assert.Equal(t, entities.OutcomeUnavailable, res.Outcome)
			assert.Len(t, h.transport.copies, 1, "not retried")
			require.Len(t, h.publisher.unavailable, 1)
			assert.Equal(t, 77, h.publisher.unavailable[0].MessageID)
			assert.Empty(t, h.publisher.delivered)
		})
	}
}

func TestCoordinator_OtherTransportErrorFails(t *testing.T) {
	h := newHarness(t, nil)
	h.transport.sendErrs = []error{errors.New("connection reset")}

	res := h.coordinator.Deliver(context.Background(), userID, "yt1")
	assert.Equal(t, entities.OutcomeFailed, res.Outcome)
}

func TestCoordinator_LedgerFailureKeepsOutcome(t *testing.T) {
	h := newHarness(t, brokenLedgerRepo{})

	res := h.coordinator.Deliver(context.Background(), userID, "abc123")
	assert.Equal(t, entities.OutcomeDelivered, res.Outcome)
	assert.False(t, res.Redelivered)
}

func TestCoordinator_ConfirmationFailureIsBestEffort(t *testing.T) {
	h := newHarness(t, nil)
	h.transport.sendErrs = []error{transport.ErrUserBlocked}

	res := h.coordinator.Deliver(context.Background(), userID, "abc123")
	assert.Equal(t, entities.OutcomeDelivered, res.Outcome)
}
