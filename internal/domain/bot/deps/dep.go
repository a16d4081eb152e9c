// Package deps contains interface definitions for the bot domain dependencies
package deps

import (
	"context"

	accessEntities "github.com/Conte777/GateFlow/internal/domain/access/entities"
	"github.com/Conte777/GateFlow/internal/domain/bot/entities"
	channelEntities "github.com/Conte777/GateFlow/internal/domain/channel/entities"
	contentEntities "github.com/Conte777/GateFlow/internal/domain/content/entities"
	deliveryEntities "github.com/Conte777/GateFlow/internal/domain/delivery/entities"
)

// AccessGate decides whether a user may receive content
type AccessGate interface {
	Check(ctx context.Context, userID int64) (*accessEntities.Decision, error)
	BuildPrompt(ctx context.Context, unjoined []int64, contentID string) *accessEntities.Prompt
}

// Deliverer sends content to a user
type Deliverer interface {
	Deliver(ctx context.Context, userID int64, contentID string) *deliveryEntities.Result
}

// ChannelRegistry manages the required channels
type ChannelRegistry interface {
	Mandatory() int64
	Add(ctx context.Context, channelID int64, displayName string) error
	Remove(ctx context.Context, channelID int64) (bool, error)
	SetActive(ctx context.Context, channelID int64, active bool) (bool, error)
	List(ctx context.Context) ([]channelEntities.RequiredChannel, error)
}

// ContentCatalog stores deliverable content
type ContentCatalog interface {
	Ingest(ctx context.Context, content *contentEntities.ContentDescriptor) (*contentEntities.ContentDescriptor, error)
	Remove(ctx context.Context, contentID string) (bool, error)
	Counts(ctx context.Context) (*contentEntities.Counts, error)
}

// LedgerStats reports delivery ledger statistics
type LedgerStats interface {
	Stats(ctx context.Context) (*deliveryEntities.Stats, error)
}

// ChatDirectory looks up chats the bot can see
type ChatDirectory interface {
	DescribeChat(ctx context.Context, chatID int64) (*entities.ChatInfo, error)
}

// Notifier sends service messages
type Notifier interface {
	SendMessage(ctx context.Context, msg *deliveryEntities.OutgoingMessage) (int, error)
}
