package business

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Conte777/GateFlow/config"
	contentEntities "github.com/Conte777/GateFlow/internal/domain/content/entities"
	contenterrors "github.com/Conte777/GateFlow/internal/domain/content/errors"
	"github.com/Conte777/GateFlow/internal/domain/delivery/deps"
	"github.com/Conte777/GateFlow/internal/domain/delivery/dto"
	"github.com/Conte777/GateFlow/internal/domain/delivery/entities"
	deliveryerrors "github.com/Conte777/GateFlow/internal/domain/delivery/errors"
	"github.com/Conte777/GateFlow/internal/domain/transport"
	"github.com/Conte777/GateFlow/internal/infrastructure/metrics"
	"github.com/Conte777/GateFlow/pkg/clock"
	pkgerrors "github.com/Conte777/GateFlow/pkg/errors"
)

// maxRateLimitRetries bounds how often a send is repeated after a platform requested wait
const maxRateLimitRetries = 1

// Coordinator resolves content, sends it and records the delivery
type Coordinator struct {
	resolver  deps.ContentResolver
	transport deps.Transport
	ledger    *Ledger
	publisher deps.EventPublisher
	clock     clock.Clock
	protect   bool
	metrics   *metrics.Metrics
	logger    zerolog.Logger
}

// NewCoordinator creates a new Coordinator instance
func NewCoordinator(
	resolver deps.ContentResolver,
	transport deps.Transport,
	ledger *Ledger,
	publisher deps.EventPublisher,
	cfg *config.TelegramConfig,
	clk clock.Clock,
	m *metrics.Metrics,
	logger zerolog.Logger,
) *Coordinator {
	return &Coordinator{
		resolver:  resolver,
		transport: transport,
		ledger:    ledger,
		publisher: publisher,
		clock:     clk,
		protect:   cfg.ProtectContent,
		metrics:   m,
		logger:    logger.With().Str("component", "delivery-coordinator").Logger(),
	}
}

// Deliver sends contentID to userID. It never returns a transport error,
// failures are reported through Result.Outcome.
func (c *Coordinator) Deliver(ctx context.Context, userID int64, contentID string) *entities.Result {
	start := c.clock.Now()
	result := c.deliver(ctx, userID, contentID)
	c.metrics.RecordDelivery(string(result.Outcome), result.Redelivered, c.clock.Now().Sub(start).Seconds())

	c.logger.Info().
		Int64("user_id", userID).
		Str("content_id", contentID).
		Str("outcome", string(result.Outcome)).
		Bool("redelivered", result.Redelivered).
		Int("message_id", result.MessageRef).
		Msg("Delivery finished")

	return result
}

func (c *Coordinator) deliver(ctx context.Context, userID int64, contentID string) *entities.Result {
	result := &entities.Result{ContentID: contentID}

	content, err := c.resolver.Resolve(ctx, contentID)
	if err != nil {
		if errors.Is(err, contenterrors.ErrContentNotFound) {
			result.Outcome = entities.OutcomeNotFound
			return result
		}
		c.logger.Error().Err(err).Str("content_id", contentID).Msg("Failed to resolve content")
		result.Outcome = entities.OutcomeFailed
		return result
	}
	result.ContentType = string(content.Type)

	var send func(ctx context.Context) (int, error)
	switch content.Type {
	case contentEntities.ContentTypeVideo:
		send = func(ctx context.Context) (int, error) {
			return c.transport.CopyMessage(ctx, userID, content.OwnerChannel(), content.Media.MessageID, c.protect)
		}
	case contentEntities.ContentTypeLink:
		result.Label = ClassifyLink(content.URL)
		msg := linkPresentation(userID, content.URL, result.Label)
		send = func(ctx context.Context) (int, error) {
			return c.transport.SendMessage(ctx, msg)
		}
	default:
		c.logger.Error().
			Err(deliveryerrors.ErrUnsupportedContent).
			Str("content_id", contentID).
			Str("content_type", string(content.Type)).
			Msg("Cannot deliver content")
		result.Outcome = entities.OutcomeFailed
		return result
	}

	messageRef, err := c.dispatch(ctx, send)
	if err != nil {
		result.Outcome = c.classifyFailure(ctx, content, err)
		return result
	}

	result.Outcome = entities.OutcomeDelivered
	result.MessageRef = messageRef
	result.Redelivered = c.record(ctx, userID, contentID, messageRef)

	if content.Type == contentEntities.ContentTypeVideo {
		if _, err := c.transport.SendMessage(ctx, videoConfirmation(userID)); err != nil {
			c.logger.Warn().Err(err).Int64("user_id", userID).Msg("Failed to send delivery confirmation")
		}
	}

	c.publishDelivered(ctx, userID, result)
	return result
}

// dispatch runs send, waiting out at most maxRateLimitRetries platform requested backoffs
func (c *Coordinator) dispatch(ctx context.Context, send func(ctx context.Context) (int, error)) (int, error) {
	for attempt := 0; ; attempt++ {
		messageRef, err := send(ctx)
		rl, limited := pkgerrors.AsRateLimitError(err)
		if !limited {
			return messageRef, err
		}
		if attempt >= maxRateLimitRetries {
			return 0, fmt.Errorf("%w: %w", deliveryerrors.ErrRateLimitExhausted, err)
		}

		c.metrics.RecordRateLimitWait("delivery")
		c.logger.Warn().Dur("retry_after", rl.RetryAfter).Msg("Delivery rate limited, waiting")

		if err := c.clock.Sleep(ctx, rl.RetryAfter); err != nil {
			return 0, err
		}
	}
}

func (c *Coordinator) classifyFailure(ctx context.Context, content *contentEntities.ContentDescriptor, err error) entities.Outcome {
	switch {
	case errors.Is(err, deliveryerrors.ErrRateLimitExhausted):
		c.logger.Warn().Err(err).Str("content_id", content.ID).Msg("Delivery still rate limited after retry")
		return entities.OutcomeRateLimitedExhausted
	case errors.Is(err, transport.ErrMediaMissing), errors.Is(err, transport.ErrInvalidReference):
		c.logger.Error().Err(err).Str("content_id", content.ID).Msg("Source media unavailable")
		c.publishUnavailable(ctx, content, err)
		return entities.OutcomeUnavailable
	default:
		c.logger.Error().Err(err).Str("content_id", content.ID).Msg("Content delivery failed")
		return entities.OutcomeFailed
	}
}

// record invalidates an earlier delivery and stores the new one. Ledger
// failures are logged only.
func (c *Coordinator) record(ctx context.Context, userID int64, contentID string, messageRef int) bool {
	had, err := c.ledger.HasDelivered(ctx, userID, contentID)
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to check previous delivery")
	}

	if had {
		if _, err := c.ledger.Clear(ctx, userID, contentID); err != nil {
			c.logger.Error().Err(err).Msg("Failed to invalidate previous delivery")
		}
	}

	if _, err := c.ledger.Upsert(ctx, userID, contentID, messageRef); err != nil {
		c.logger.Error().Err(err).Msg("Failed to record delivery")
	}

	return had
}

func (c *Coordinator) publishDelivered(ctx context.Context, userID int64, result *entities.Result) {
	event := &dto.ContentDeliveredEvent{
		UserID:      userID,
		ContentID:   result.ContentID,
		ContentType: result.ContentType,
		MessageID:   result.MessageRef,
		Redelivered: result.Redelivered,
		DeliveredAt: c.clock.Now(),
	}
	if err := c.publisher.PublishDelivered(ctx, event); err != nil {
		c.logger.Warn().Err(err).Str("content_id", result.ContentID).Msg("Failed to publish delivered event")
	}
}

func (c *Coordinator) publishUnavailable(ctx context.Context, content *contentEntities.ContentDescriptor, cause error) {
	event := &dto.ContentUnavailableEvent{
		ContentID:  content.ID,
		ChannelID:  content.OwnerChannel(),
		Reason:     cause.Error(),
		DetectedAt: c.clock.Now(),
	}
	if content.Media != nil {
		event.MessageID = content.Media.MessageID
	}
	if err := c.publisher.PublishUnavailable(ctx, event); err != nil {
		c.logger.Warn().Err(err).Str("content_id", content.ID).Msg("Failed to publish unavailable event")
	}
}
