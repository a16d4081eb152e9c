// Package deps contains interface definitions for the channel domain dependencies
package deps

import (
	"context"

	"github.com/Conte777/GateFlow/internal/domain/channel/entities"
)

// ChannelRepository defines data access for extra required channels
type ChannelRepository interface {
	// Upsert inserts the channel or refreshes name, status and addition time
	Upsert(ctx context.Context, channel *entities.RequiredChannel) error

	// Delete removes the channel, reporting whether a record existed
	Delete(ctx context.Context, channelID int64) (bool, error)

	// SetActive changes the status, reporting whether a record was modified
	SetActive(ctx context.Context, channelID int64, active bool) (bool, error)

	// ListActive returns active channels ordered by addition time
	ListActive(ctx context.Context) ([]entities.RequiredChannel, error)

	// ListAll returns every channel ordered by addition time
	ListAll(ctx context.Context) ([]entities.RequiredChannel, error)
}
