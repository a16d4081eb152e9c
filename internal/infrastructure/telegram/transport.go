package telegram

import (
	"context"
	"strings"
	"time"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog"

	accessEntities "github.com/Conte777/GateFlow/internal/domain/access/entities"
	botEntities "github.com/Conte777/GateFlow/internal/domain/bot/entities"
	deliveryEntities "github.com/Conte777/GateFlow/internal/domain/delivery/entities"
	"github.com/Conte777/GateFlow/internal/domain/transport"
)

// RequestTimeout bounds a single Bot API call
const RequestTimeout = 30 * time.Second

const publicLinkPrefix = "https://t.me/"

// botAPI is the subset of *tgbot.Bot used by Transport
type botAPI interface {
	GetChatMember(ctx context.Context, params *tgbot.GetChatMemberParams) (*models.ChatMember, error)
	GetChat(ctx context.Context, params *tgbot.GetChatParams) (*models.ChatFullInfo, error)
	ExportChatInviteLink(ctx context.Context, params *tgbot.ExportChatInviteLinkParams) (string, error)
	CopyMessage(ctx context.Context, params *tgbot.CopyMessageParams) (*models.MessageID, error)
	SendMessage(ctx context.Context, params *tgbot.SendMessageParams) (*models.Message, error)
}

// Transport adapts the Bot API to the membership and delivery contracts
type Transport struct {
	api    botAPI
	logger zerolog.Logger
}

// NewTransport creates a Transport on top of the running bot
func NewTransport(bot *Bot, logger zerolog.Logger) *Transport {
	return newTransport(bot.Raw(), logger)
}

func newTransport(api botAPI, logger zerolog.Logger) *Transport {
	return &Transport{
		api:    api,
		logger: logger.With().Str("component", "telegram-transport").Logger(),
	}
}

// GetMembership returns the user's status in channelID
func (t *Transport) GetMembership(ctx context.Context, channelID, userID int64) (*accessEntities.Membership, error) {
	reqCtx, cancel := context.WithTimeout(ctx, RequestTimeout)
	defer cancel()

	member, err := t.api.GetChatMember(reqCtx, &tgbot.GetChatMemberParams{
		ChatID: channelID,
		UserID: userID,
	})
	if err != nil {
		return nil, classifyError("get chat member", err)
	}

	return toMembership(member), nil
}

func toMembership(member *models.ChatMember) *accessEntities.Membership {
	switch member.Type {
	case models.ChatMemberTypeOwner:
		return &accessEntities.Membership{Status: accessEntities.StatusCreator}
	case models.ChatMemberTypeAdministrator:
		return &accessEntities.Membership{Status: accessEntities.StatusAdministrator}
	case models.ChatMemberTypeMember:
		return &accessEntities.Membership{Status: accessEntities.StatusMember}
	case models.ChatMemberTypeRestricted:
		m := &accessEntities.Membership{Status: accessEntities.StatusRestricted}
		if member.Restricted != nil {
			m.IsMember = member.Restricted.IsMember
		}
		return m
	case models.ChatMemberTypeBanned:
		return &accessEntities.Membership{Status: accessEntities.StatusKicked}
	default:
		return &accessEntities.Membership{Status: accessEntities.StatusLeft}
	}
}

// ResolveJoinTarget prefers the public handle, then the chat's primary invite
// link, then a freshly exported one
func (t *Transport) ResolveJoinTarget(ctx context.Context, channelID int64) (*accessEntities.JoinTarget, error) {
	reqCtx, cancel := context.WithTimeout(ctx, RequestTimeout)
	defer cancel()

	chat, err := t.api.GetChat(reqCtx, &tgbot.GetChatParams{ChatID: channelID})
	if err != nil {
		return nil, classifyError("get chat", err)
	}

	target := &accessEntities.JoinTarget{ChannelID: channelID, Title: chat.Title}

	switch {
	case chat.Username != "":
		target.URL = publicLinkPrefix + strings.TrimPrefix(chat.Username, "@")
	case chat.InviteLink != "":
		target.URL = chat.InviteLink
	default:
		link, err := t.api.ExportChatInviteLink(reqCtx, &tgbot.ExportChatInviteLinkParams{ChatID: channelID})
		if err != nil {
			t.logger.Warn().Err(err).Int64("channel_id", channelID).Msg("Failed to export invite link")
			return nil, transport.ErrJoinTargetUnavailable
		}
		if link == "" {
			return nil, transport.ErrJoinTargetUnavailable
		}
		target.URL = link
	}

	if target.Title == "" {
		target.Title = target.URL
	}

	return target, nil
}

// DescribeChat returns the title and public handle of a chat
func (t *Transport) DescribeChat(ctx context.Context, chatID int64) (*botEntities.ChatInfo, error) {
	reqCtx, cancel := context.WithTimeout(ctx, RequestTimeout)
	defer cancel()

	chat, err := t.api.GetChat(reqCtx, &tgbot.GetChatParams{ChatID: chatID})
	if err != nil {
		return nil, classifyError("get chat", err)
	}

	return &botEntities.ChatInfo{ID: chatID, Title: chat.Title, Username: chat.Username}, nil
}

// CopyMessage copies a channel post into the user's chat
func (t *Transport) CopyMessage(ctx context.Context, toChatID, fromChatID int64, messageID int, protect bool) (int, error) {
	reqCtx, cancel := context.WithTimeout(ctx, RequestTimeout)
	defer cancel()

	copied, err := t.api.CopyMessage(reqCtx, &tgbot.CopyMessageParams{
		ChatID:         toChatID,
		FromChatID:     fromChatID,
		MessageID:      messageID,
		ProtectContent: protect,
	})
	if err != nil {
		return 0, classifyError("copy message", err)
	}

	t.logger.Debug().
		Int64("user_id", toChatID).
		Int64("from_chat_id", fromChatID).
		Int("source_message_id", messageID).
		Int("message_id", copied.ID).
		Msg("Message copied")

	return copied.ID, nil
}

// SendMessage sends an HTML text message with an optional URL button
func (t *Transport) SendMessage(ctx context.Context, msg *deliveryEntities.OutgoingMessage) (int, error) {
	reqCtx, cancel := context.WithTimeout(ctx, RequestTimeout)
	defer cancel()

	params := &tgbot.SendMessageParams{
		ChatID:    msg.ChatID,
		Text:      msg.Text,
		ParseMode: models.ParseModeHTML,
	}
	if msg.DisablePreview {
		params.LinkPreviewOptions = &models.LinkPreviewOptions{IsDisabled: tgbot.True()}
	}
	if msg.Button != nil {
		params.ReplyMarkup = &models.InlineKeyboardMarkup{
			InlineKeyboard: [][]models.InlineKeyboardButton{
				{{Text: msg.Button.Text, URL: msg.Button.URL}},
			},
		}
	}

	sent, err := t.api.SendMessage(reqCtx, params)
	if err != nil {
		return 0, classifyError("send message", err)
	}

	return sent.ID, nil
}
