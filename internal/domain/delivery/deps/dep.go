// Package deps contains interface definitions for the delivery domain dependencies
package deps

import (
	"context"

	contentEntities "github.com/Conte777/GateFlow/internal/domain/content/entities"
	"github.com/Conte777/GateFlow/internal/domain/delivery/dto"
	"github.com/Conte777/GateFlow/internal/domain/delivery/entities"
)

// LedgerRepository defines data access for delivery records
type LedgerRepository interface {
	// Exists reports whether a record exists for the key
	Exists(ctx context.Context, userID int64, contentID string) (bool, error)

	// Upsert atomically inserts or replaces the record for the key
	Upsert(ctx context.Context, record *entities.DeliveryRecord) error

	// Delete removes the record, reporting whether it existed
	Delete(ctx context.Context, userID int64, contentID string) (bool, error)

	// DeleteAllButLatest keeps the keep most recent records of the user
	DeleteAllButLatest(ctx context.Context, userID int64, keep int) (int64, error)

	// UsersOver returns users holding more than limit records
	UsersOver(ctx context.Context, limit int) ([]int64, error)

	// Stats aggregates the whole ledger
	Stats(ctx context.Context) (*entities.Stats, error)
}

// Transport is the part of the messaging transport used to deliver content
type Transport interface {
	// CopyMessage copies a channel message into the user's chat and returns the new message ID
	CopyMessage(ctx context.Context, toChatID, fromChatID int64, messageID int, protect bool) (int, error)

	// SendMessage sends a text message and returns its message ID
	SendMessage(ctx context.Context, msg *entities.OutgoingMessage) (int, error)
}

// ContentResolver resolves content IDs
type ContentResolver interface {
	Resolve(ctx context.Context, contentID string) (*contentEntities.ContentDescriptor, error)
}

// EventPublisher publishes delivery events
type EventPublisher interface {
	PublishDelivered(ctx context.Context, event *dto.ContentDeliveredEvent) error
	PublishUnavailable(ctx context.Context, event *dto.ContentUnavailableEvent) error
	Close() error
}
