// Package deps contains interface definitions for the content domain dependencies
package deps

import (
	"context"

	"github.com/Conte777/GateFlow/internal/domain/content/entities"
)

// ContentStore is the persistent content table
type ContentStore interface {
	// Get returns ErrContentNotFound when no content has the ID
	Get(ctx context.Context, contentID string) (*entities.ContentDescriptor, error)

	// Put inserts or overwrites the content
	Put(ctx context.Context, content *entities.ContentDescriptor) error

	// Delete removes the content, reporting whether it existed
	Delete(ctx context.Context, contentID string) (bool, error)

	// CountByType returns the number of stored contents per type
	CountByType(ctx context.Context) (map[entities.ContentType]int64, error)
}
