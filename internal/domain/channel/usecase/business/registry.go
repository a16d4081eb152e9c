// Package business contains the channel registry logic
package business

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Conte777/GateFlow/config"
	"github.com/Conte777/GateFlow/internal/domain/channel/deps"
	"github.com/Conte777/GateFlow/internal/domain/channel/entities"
	chanerrors "github.com/Conte777/GateFlow/internal/domain/channel/errors"
	"github.com/Conte777/GateFlow/pkg/clock"
)

// Registry owns the set of channels a user must join. The mandatory channel
// comes from configuration, extra channels are stored.
type Registry struct {
	repo      deps.ChannelRepository
	mandatory int64
	clock     clock.Clock
	logger    zerolog.Logger
}

// NewRegistry creates a new Registry instance
func NewRegistry(repo deps.ChannelRepository, cfg *config.TelegramConfig, clk clock.Clock, logger zerolog.Logger) *Registry {
	return &Registry{
		repo:      repo,
		mandatory: cfg.ForceJoinChannelID,
		clock:     clk,
		logger:    logger.With().Str("component", "channel-registry").Logger(),
	}
}

// Mandatory returns the statically configured channel
func (r *Registry) Mandatory() int64 {
	return r.mandatory
}

// ListRequired returns the mandatory channel followed by active extra channels
// in the order they were added. It never fails: a store error degrades to the
// mandatory channel alone.
func (r *Registry) ListRequired(ctx context.Context) []int64 {
	required := []int64{r.mandatory}

	extras, err := r.repo.ListActive(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("Failed to load extra channels, using mandatory channel only")
		return required
	}

	seen := map[int64]struct{}{r.mandatory: {}}
	for _, ch := range extras {
		if _, ok := seen[ch.ChannelID]; ok {
			continue
		}
		seen[ch.ChannelID] = struct{}{}
		required = append(required, ch.ChannelID)
	}

	return required
}

// Add registers or re-activates an extra channel
func (r *Registry) Add(ctx context.Context, channelID int64, displayName string) error {
	if channelID == 0 {
		return chanerrors.ErrInvalidChannelID
	}
	if channelID == r.mandatory {
		return chanerrors.ErrMandatoryChannel
	}

	channel := &entities.RequiredChannel{
		ChannelID:   channelID,
		DisplayName: displayName,
		Active:      true,
		AddedAt:     r.clock.Now(),
	}
	if err := r.repo.Upsert(ctx, channel); err != nil {
		return fmt.Errorf("add channel %d: %w", channelID, err)
	}

	r.logger.Info().
		Int64("channel_id", channelID).
		Str("channel_name", displayName).
		Msg("Extra channel added")

	return nil
}

// Remove deletes an extra channel, reporting whether it existed
func (r *Registry) Remove(ctx context.Context, channelID int64) (bool, error) {
	removed, err := r.repo.Delete(ctx, channelID)
	if err != nil {
		return false, fmt.Errorf("remove channel %d: %w", channelID, err)
	}

	if removed {
		r.logger.Info().Int64("channel_id", channelID).Msg("Extra channel removed")
	}
	return removed, nil
}

// SetActive toggles an extra channel, reporting whether anything changed
func (r *Registry) SetActive(ctx context.Context, channelID int64, active bool) (bool, error) {
	changed, err := r.repo.SetActive(ctx, channelID, active)
	if err != nil {
		return false, fmt.Errorf("set channel %d active=%t: %w", channelID, active, err)
	}

	if changed {
		r.logger.Info().
			Int64("channel_id", channelID).
			Bool("active", active).
			Msg("Extra channel status changed")
	}
	return changed, nil
}

// List returns every extra channel with its status
func (r *Registry) List(ctx context.Context) ([]entities.RequiredChannel, error) {
	channels, err := r.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list channels: %w", err)
	}
	return channels, nil
}
