// Package business contains delivery ledger and coordination logic
package business

import (
	"context"
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"github.com/Conte777/GateFlow/internal/domain/delivery/deps"
	"github.com/Conte777/GateFlow/internal/domain/delivery/entities"
	deliveryerrors "github.com/Conte777/GateFlow/internal/domain/delivery/errors"
	"github.com/Conte777/GateFlow/internal/infrastructure/metrics"
	"github.com/Conte777/GateFlow/pkg/clock"
)

// Ledger tracks the latest delivery per user and content
type Ledger struct {
	repo    deps.LedgerRepository
	clock   clock.Clock
	metrics *metrics.Metrics
	logger  zerolog.Logger
}

// NewLedger creates a new Ledger instance
func NewLedger(repo deps.LedgerRepository, clk clock.Clock, m *metrics.Metrics, logger zerolog.Logger) *Ledger {
	return &Ledger{
		repo:    repo,
		clock:   clk,
		metrics: m,
		logger:  logger.With().Str("component", "delivery-ledger").Logger(),
	}
}

// HasDelivered reports whether the user already holds a delivery of the content
func (l *Ledger) HasDelivered(ctx context.Context, userID int64, contentID string) (bool, error) {
	ok, err := l.repo.Exists(ctx, userID, contentID)
	if err != nil {
		return false, fmt.Errorf("check delivery %d/%s: %w", userID, contentID, err)
	}
	return ok, nil
}

// Upsert records messageRef as the current delivery, replacing any earlier one
func (l *Ledger) Upsert(ctx context.Context, userID int64, contentID string, messageRef int) (*entities.DeliveryRecord, error) {
	record := &entities.DeliveryRecord{
		UserID:      userID,
		ContentID:   contentID,
		MessageRef:  messageRef,
		DeliveredAt: l.clock.Now(),
	}

	if err := l.repo.Upsert(ctx, record); err != nil {
		return nil, fmt.Errorf("record delivery %d/%s: %w", userID, contentID, err)
	}

	l.logger.Debug().
		Int64("user_id", userID).
		Str("content_id", contentID).
		Int("message_id", messageRef).
		Msg("Delivery tracked")

	return record, nil
}

// Clear invalidates the current delivery, reporting whether one existed
func (l *Ledger) Clear(ctx context.Context, userID int64, contentID string) (bool, error) {
	removed, err := l.repo.Delete(ctx, userID, contentID)
	if err != nil {
		return false, fmt.Errorf("clear delivery %d/%s: %w", userID, contentID, err)
	}

	if removed {
		l.logger.Info().
			Int64("user_id", userID).
			Str("content_id", contentID).
			Msg("Previous delivery invalidated")
	}
	return removed, nil
}

// RetentionSweep keeps the keepLast most recent records of the user
func (l *Ledger) RetentionSweep(ctx context.Context, userID int64, keepLast int) (int64, error) {
	if keepLast < 1 {
		return 0, deliveryerrors.ErrInvalidKeepLast
	}

	deleted, err := l.repo.DeleteAllButLatest(ctx, userID, keepLast)
	if err != nil {
		return 0, fmt.Errorf("sweep deliveries of %d: %w", userID, err)
	}

	if deleted > 0 {
		l.metrics.RecordSwept(deleted)
		l.logger.Info().
			Int64("user_id", userID).
			Int64("deleted", deleted).
			Int("keep_last", keepLast).
			Msg("Old delivery records cleaned up")
	}
	return deleted, nil
}

// SweepAll applies RetentionSweep to every user above keepLast
func (l *Ledger) SweepAll(ctx context.Context, keepLast int) (int64, error) {
	if keepLast < 1 {
		return 0, deliveryerrors.ErrInvalidKeepLast
	}

	users, err := l.repo.UsersOver(ctx, keepLast)
	if err != nil {
		return 0, fmt.Errorf("find users over retention: %w", err)
	}

	var total int64
	for _, userID := range users {
		if ctx.Err() != nil {
			return total, ctx.Err()
		}
		deleted, err := l.RetentionSweep(ctx, userID, keepLast)
		if err != nil {
			l.logger.Error().Err(err).Int64("user_id", userID).Msg("Retention sweep failed for user")
			continue
		}
		total += deleted
	}
	return total, nil
}

// Stats returns ledger totals with the average rounded to two decimals
func (l *Ledger) Stats(ctx context.Context) (*entities.Stats, error) {
	stats, err := l.repo.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("ledger stats: %w", err)
	}

	if stats.UniqueUsers > 0 {
		avg := float64(stats.Deliveries) / float64(stats.UniqueUsers)
		stats.AvgPerUser = math.Round(avg*100) / 100
	}
	return stats, nil
}
