// Package business contains content resolution and ingestion logic
package business

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Conte777/GateFlow/internal/domain/content/deps"
	"github.com/Conte777/GateFlow/internal/domain/content/entities"
	contenterrors "github.com/Conte777/GateFlow/internal/domain/content/errors"
	"github.com/Conte777/GateFlow/pkg/clock"
)

// contentIDLength is the length of generated content IDs
const contentIDLength = 8

// Resolver maps content IDs to descriptors. Every call reads the store.
type Resolver struct {
	store  deps.ContentStore
	clock  clock.Clock
	logger zerolog.Logger
}

// NewResolver creates a new Resolver instance
func NewResolver(store deps.ContentStore, clk clock.Clock, logger zerolog.Logger) *Resolver {
	return &Resolver{
		store:  store,
		clock:  clk,
		logger: logger.With().Str("component", "content-resolver").Logger(),
	}
}

// NewContentID returns a short random content ID
func NewContentID() string {
	return uuid.NewString()[:contentIDLength]
}

// Resolve returns the descriptor for contentID or ErrContentNotFound
func (r *Resolver) Resolve(ctx context.Context, contentID string) (*entities.ContentDescriptor, error) {
	if contentID == "" {
		return nil, contenterrors.ErrContentNotFound
	}

	content, err := r.store.Get(ctx, contentID)
	if err != nil {
		if errors.Is(err, contenterrors.ErrContentNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("resolve content %s: %w", contentID, err)
	}

	return content, nil
}

// Ingest validates and stores content, generating an ID when none is set.
// Re-ingesting an existing ID overwrites it.
func (r *Resolver) Ingest(ctx context.Context, content *entities.ContentDescriptor) (*entities.ContentDescriptor, error) {
	if content.ID == "" {
		content.ID = NewContentID()
	}
	if content.CreatedAt.IsZero() {
		content.CreatedAt = r.clock.Now()
	}

	if err := content.Validate(); err != nil {
		return nil, err
	}

	if err := r.store.Put(ctx, content); err != nil {
		return nil, fmt.Errorf("store content %s: %w", content.ID, err)
	}

	r.logger.Info().
		Str("content_id", content.ID).
		Str("content_type", string(content.Type)).
		Msg("Content saved")

	return content, nil
}

// Remove deletes content, reporting whether it existed
func (r *Resolver) Remove(ctx context.Context, contentID string) (bool, error) {
	removed, err := r.store.Delete(ctx, contentID)
	if err != nil {
		return false, fmt.Errorf("remove content %s: %w", contentID, err)
	}

	if removed {
		r.logger.Info().Str("content_id", contentID).Msg("Content removed")
	}
	return removed, nil
}

// Counts returns the number of stored videos and links
func (r *Resolver) Counts(ctx context.Context) (*entities.Counts, error) {
	byType, err := r.store.CountByType(ctx)
	if err != nil {
		return nil, fmt.Errorf("count contents: %w", err)
	}

	counts := &entities.Counts{
		Videos: byType[entities.ContentTypeVideo],
		Links:  byType[entities.ContentTypeLink],
	}
	for _, n := range byType {
		counts.Total += n
	}
	return counts, nil
}
