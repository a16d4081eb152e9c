// Package business contains business logic for the bot domain
package business

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Conte777/GateFlow/config"
	"github.com/Conte777/GateFlow/internal/domain/bot/deps"
	"github.com/Conte777/GateFlow/internal/domain/bot/entities"
	boterrors "github.com/Conte777/GateFlow/internal/domain/bot/errors"
	contentEntities "github.com/Conte777/GateFlow/internal/domain/content/entities"
)

// maxTitleLength bounds titles taken from channel post captions
const maxTitleLength = 120

// UseCase contains business logic for bot operations
type UseCase struct {
	gate      deps.AccessGate
	deliverer deps.Deliverer
	registry  deps.ChannelRegistry
	catalog   deps.ContentCatalog
	ledger    deps.LedgerStats
	chats     deps.ChatDirectory
	notifier  deps.Notifier
	cfg       *config.TelegramConfig
	logger    zerolog.Logger
}

// NewUseCase creates a new UseCase instance
func NewUseCase(
	gate deps.AccessGate,
	deliverer deps.Deliverer,
	registry deps.ChannelRegistry,
	catalog deps.ContentCatalog,
	ledger deps.LedgerStats,
	chats deps.ChatDirectory,
	notifier deps.Notifier,
	cfg *config.TelegramConfig,
	logger zerolog.Logger,
) *UseCase {
	return &UseCase{
		gate:      gate,
		deliverer: deliverer,
		registry:  registry,
		catalog:   catalog,
		ledger:    ledger,
		chats:     chats,
		notifier:  notifier,
		cfg:       cfg,
		logger:    logger.With().Str("component", "bot-usecase").Logger(),
	}
}

// IsAdmin reports whether userID is the configured admin
func (uc *UseCase) IsAdmin(userID int64) bool {
	return userID == uc.cfg.AdminID
}

// ChannelUsername returns the public handle of the official channel
func (uc *UseCase) ChannelUsername() string {
	return uc.cfg.ChannelUsername
}

// RequestContent gates the user and delivers contentID when access is granted
func (uc *UseCase) RequestContent(ctx context.Context, userID int64, contentID string) (*entities.ContentReply, error) {
	reply, err := uc.checkAccess(ctx, userID, contentID)
	if err != nil {
		return nil, err
	}
	if !reply.Granted() || contentID == "" {
		return reply, nil
	}

	reply.Result = uc.deliverer.Deliver(ctx, userID, contentID)
	return reply, nil
}

// Recheck re-runs the gate after the user claims to have joined. The pending
// content, if any, is delivered right away.
func (uc *UseCase) Recheck(ctx context.Context, userID int64, contentID string) (*entities.ContentReply, error) {
	uc.logger.Debug().Int64("user_id", userID).Str("content_id", contentID).Msg("Membership re-check requested")
	return uc.RequestContent(ctx, userID, contentID)
}

func (uc *UseCase) checkAccess(ctx context.Context, userID int64, contentID string) (*entities.ContentReply, error) {
	decision, err := uc.gate.Check(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("check access for user %d: %w", userID, err)
	}

	if decision.Allowed {
		return &entities.ContentReply{}, nil
	}

	uc.logger.Info().
		Int64("user_id", userID).
		Str("content_id", contentID).
		Int("unjoined", len(decision.Unjoined)).
		Msg("User has not joined required channels")

	return &entities.ContentReply{Prompt: uc.gate.BuildPrompt(ctx, decision.Unjoined, contentID)}, nil
}

// AddChannel verifies the bot can read channelID and requires it from now on
func (uc *UseCase) AddChannel(ctx context.Context, adminID, channelID int64) (*entities.ChatInfo, error) {
	if err := uc.authorize(adminID); err != nil {
		return nil, err
	}

	info, err := uc.chats.DescribeChat(ctx, channelID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", boterrors.ErrChannelInaccessible, err)
	}

	if err := uc.registry.Add(ctx, channelID, info.Title); err != nil {
		return nil, err
	}

	uc.logger.Info().Int64("channel_id", channelID).Str("title", info.Title).Msg("Admin added required channel")
	return info, nil
}

// RemoveChannel deletes an extra channel, reporting whether it existed
func (uc *UseCase) RemoveChannel(ctx context.Context, adminID, channelID int64) (bool, error) {
	if err := uc.authorize(adminID); err != nil {
		return false, err
	}
	return uc.registry.Remove(ctx, channelID)
}

// SetChannelActive toggles whether an extra channel is required
func (uc *UseCase) SetChannelActive(ctx context.Context, adminID, channelID int64, active bool) (bool, error) {
	if err := uc.authorize(adminID); err != nil {
		return false, err
	}
	return uc.registry.SetActive(ctx, channelID, active)
}

// ListChannels returns the mandatory channel and every extra channel
func (uc *UseCase) ListChannels(ctx context.Context, adminID int64) (*entities.ChannelListing, error) {
	if err := uc.authorize(adminID); err != nil {
		return nil, err
	}

	listing := &entities.ChannelListing{
		Mandatory: entities.ChatInfo{ID: uc.registry.Mandatory()},
		Username:  uc.cfg.ChannelUsername,
	}
	if info, err := uc.chats.DescribeChat(ctx, listing.Mandatory.ID); err == nil {
		listing.Mandatory = *info
	} else {
		uc.logger.Warn().Err(err).Int64("channel_id", listing.Mandatory.ID).Msg("Failed to describe mandatory channel")
	}

	channels, err := uc.registry.List(ctx)
	if err != nil {
		return nil, err
	}

	for _, ch := range channels {
		listed := entities.ListedChannel{RequiredChannel: ch}
		if info, err := uc.chats.DescribeChat(ctx, ch.ChannelID); err == nil {
			listed.Reachable = true
			listed.Username = info.Username
			if info.Title != "" {
				listed.DisplayName = info.Title
			}
		}
		listing.Extra = append(listing.Extra, listed)
	}

	return listing, nil
}

// Statistics aggregates content, ledger and registry counters
func (uc *UseCase) Statistics(ctx context.Context, adminID int64) (*entities.Statistics, error) {
	if err := uc.authorize(adminID); err != nil {
		return nil, err
	}

	counts, err := uc.catalog.Counts(ctx)
	if err != nil {
		return nil, err
	}

	ledger, err := uc.ledger.Stats(ctx)
	if err != nil {
		return nil, err
	}

	channels, err := uc.registry.List(ctx)
	if err != nil {
		return nil, err
	}

	stats := &entities.Statistics{
		Videos:           counts.Videos,
		Links:            counts.Links,
		Contents:         counts.Total,
		Deliveries:       ledger.Deliveries,
		UniqueUsers:      ledger.UniqueUsers,
		AvgPerUser:       ledger.AvgPerUser,
		MandatoryChannel: uc.registry.Mandatory(),
		ExtraChannels:    len(channels),
		Notifications:    uc.cfg.EnableNotifications,
	}
	for _, ch := range channels {
		if ch.Active {
			stats.ActiveChannels++
		}
	}

	return stats, nil
}

// DeleteContent removes content, reporting whether it existed
func (uc *UseCase) DeleteContent(ctx context.Context, adminID int64, contentID string) (bool, error) {
	if err := uc.authorize(adminID); err != nil {
		return false, err
	}

	contentID = strings.TrimSpace(contentID)
	if contentID == "" {
		return false, boterrors.ErrInvalidArgument
	}

	return uc.catalog.Remove(ctx, contentID)
}

// RegisterTestContent stores a test video (by content channel message id) or link
func (uc *UseCase) RegisterTestContent(ctx context.Context, adminID int64, kind, arg string) (*contentEntities.ContentDescriptor, error) {
	if err := uc.authorize(adminID); err != nil {
		return nil, err
	}

	content := &contentEntities.ContentDescriptor{ID: "test_" + uuid.NewString()[:6]}

	switch contentEntities.ContentType(strings.ToLower(kind)) {
	case contentEntities.ContentTypeVideo:
		messageID, err := strconv.Atoi(arg)
		if err != nil || messageID <= 0 {
			return nil, boterrors.ErrInvalidArgument
		}
		content.Type = contentEntities.ContentTypeVideo
		content.Media = &contentEntities.MediaRef{ChannelID: uc.cfg.ContentChannelID, MessageID: messageID}
	case contentEntities.ContentTypeLink:
		if arg == "" {
			return nil, boterrors.ErrInvalidArgument
		}
		content.Type = contentEntities.ContentTypeLink
		content.URL = arg
	default:
		return nil, boterrors.ErrInvalidArgument
	}

	return uc.catalog.Ingest(ctx, content)
}

// IngestChannelPost turns a content channel post into deliverable content.
// Posts without media or links are ignored and return nil.
func (uc *UseCase) IngestChannelPost(ctx context.Context, post *entities.ChannelPost) (*contentEntities.ContentDescriptor, error) {
	if post.ChannelID != uc.cfg.ContentChannelID {
		return nil, nil
	}

	content := &contentEntities.ContentDescriptor{Title: titleFromCaption(post.Caption)}

	switch {
	case post.HasMedia:
		content.Type = contentEntities.ContentTypeVideo
		content.Media = &contentEntities.MediaRef{ChannelID: post.ChannelID, MessageID: post.MessageID}
	case len(post.URLs) > 0:
		content.Type = contentEntities.ContentTypeLink
		content.URL = post.URLs[0]
	default:
		return nil, nil
	}

	saved, err := uc.catalog.Ingest(ctx, content)
	if err != nil {
		return nil, err
	}

	uc.logger.Info().
		Str("content_id", saved.ID).
		Str("content_type", string(saved.Type)).
		Int("message_id", post.MessageID).
		Msg("Content captured from channel")

	if uc.cfg.EnableNotifications {
		uc.notifyAdmin(ctx, newContentNotification(uc.cfg.AdminID, saved, uc.cfg.ContentChannelID))
	}

	return saved, nil
}

func (uc *UseCase) notifyAdmin(ctx context.Context, msg *outgoing) {
	if _, err := uc.notifier.SendMessage(ctx, msg); err != nil {
		uc.logger.Warn().Err(err).Msg("Failed to notify admin")
	}
}

func (uc *UseCase) authorize(userID int64) error {
	if !uc.IsAdmin(userID) {
		uc.logger.Warn().Int64("user_id", userID).Msg("Unauthorized admin operation")
		return boterrors.ErrUnauthorized
	}
	return nil
}

func titleFromCaption(caption string) string {
	title, _, _ := strings.Cut(strings.TrimSpace(caption), "\n")
	title = strings.TrimSpace(title)

	runes := []rune(title)
	if len(runes) > maxTitleLength {
		return string(runes[:maxTitleLength])
	}
	return title
}
