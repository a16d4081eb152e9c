package telegram

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/Conte777/GateFlow/internal/domain/bot/consts"
	boterrors "github.com/Conte777/GateFlow/internal/domain/bot/errors"
	channelerrors "github.com/Conte777/GateFlow/internal/domain/channel/errors"
	contentBusiness "github.com/Conte777/GateFlow/internal/domain/content/usecase/business"
)

const invalidChannelIDText = "❌ Invalid channel ID. Must be a number (e.g., -1001234567890)"

// HandleAdmin shows the admin panel
func (h *Handlers) HandleAdmin(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
	msg := update.Message
	if !isPrivate(msg) {
		return
	}

	if !h.uc.IsAdmin(msg.From.ID) {
		h.reply(ctx, bot, msg.Chat.ID, unauthorizedText, nil)
		return
	}

	h.reply(ctx, bot, msg.Chat.ID, adminPanelText(), adminKeyboard())
}

// HandleAddChannel handles /addchannel <id>
func (h *Handlers) HandleAddChannel(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
	msg := update.Message
	if !isPrivate(msg) {
		return
	}
	adminID, command := msg.From.ID, "/"+consts.CommandAddChannel.Name

	args := commandArgs(msg.Text)
	if len(args) == 0 {
		h.reply(ctx, bot, msg.Chat.ID, "📢 <b>Add Force Join Channel</b>\n\n"+
			usageText(consts.CommandAddChannel.Name, "CHANNEL_ID", "-1001234567890")+
			"\n\n💡 <b>Note:</b> Bot must be admin in the channel!", nil)
		return
	}

	channelID, err := parseChannelID(args[0])
	if err != nil {
		h.reply(ctx, bot, msg.Chat.ID, invalidChannelIDText, nil)
		return
	}

	info, err := h.uc.AddChannel(ctx, adminID, channelID)
	switch {
	case err == nil:
		h.reply(ctx, bot, msg.Chat.ID, channelAddedText(info), nil)
		h.logCommand(adminID, command, fmt.Sprintf("added %d", channelID))
	case errors.Is(err, boterrors.ErrChannelInaccessible):
		h.logError(adminID, command, err)
		h.reply(ctx, bot, msg.Chat.ID, channelAccessFailedText(), nil)
	default:
		h.replyAdminError(ctx, bot, msg.Chat.ID, command, adminID, err, "⚠️ Failed to add channel to database.")
	}
}

// HandleRemoveChannel handles /removechannel <id>
func (h *Handlers) HandleRemoveChannel(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
	msg := update.Message
	if !isPrivate(msg) {
		return
	}
	adminID, command := msg.From.ID, "/"+consts.CommandRemoveChannel.Name

	args := commandArgs(msg.Text)
	if len(args) == 0 {
		listing, err := h.uc.ListChannels(ctx, adminID)
		if err != nil {
			h.replyAdminError(ctx, bot, msg.Chat.ID, command, adminID, err, "⚠️ Failed to fetch channel list.")
			return
		}
		h.reply(ctx, bot, msg.Chat.ID, channelListText(listing)+"\n\n"+
			usageText(consts.CommandRemoveChannel.Name, "CHANNEL_ID", "-1001234567890"), nil)
		return
	}

	channelID, err := parseChannelID(args[0])
	if err != nil {
		h.reply(ctx, bot, msg.Chat.ID, invalidChannelIDText, nil)
		return
	}

	removed, err := h.uc.RemoveChannel(ctx, adminID, channelID)
	if err != nil {
		h.replyAdminError(ctx, bot, msg.Chat.ID, command, adminID, err, "⚠️ Failed to remove channel.")
		return
	}
	if !removed {
		h.reply(ctx, bot, msg.Chat.ID, "⚠️ Channel not found in database.", nil)
		return
	}

	h.reply(ctx, bot, msg.Chat.ID, fmt.Sprintf("✅ <b>Channel Removed Successfully!</b>\n\n"+
		"🆔 <b>ID:</b> <code>%d</code>\n\n"+
		"This channel is no longer required for force join.", channelID), nil)
	h.logCommand(adminID, command, fmt.Sprintf("removed %d", channelID))
}

// HandleEnableChannel handles /enablechannel <id>
func (h *Handlers) HandleEnableChannel(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
	h.handleSetActive(ctx, bot, update, consts.CommandEnableChannel.Name, true)
}

// HandleDisableChannel handles /disablechannel <id>
func (h *Handlers) HandleDisableChannel(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
	h.handleSetActive(ctx, bot, update, consts.CommandDisableChannel.Name, false)
}

func (h *Handlers) handleSetActive(ctx context.Context, bot *tgbot.Bot, update *models.Update, name string, active bool) {
	msg := update.Message
	if !isPrivate(msg) {
		return
	}
	adminID, command := msg.From.ID, "/"+name

	args := commandArgs(msg.Text)
	if len(args) == 0 {
		h.reply(ctx, bot, msg.Chat.ID, usageText(name, "CHANNEL_ID", "-1001234567890"), nil)
		return
	}

	channelID, err := parseChannelID(args[0])
	if err != nil {
		h.reply(ctx, bot, msg.Chat.ID, invalidChannelIDText, nil)
		return
	}

	changed, err := h.uc.SetChannelActive(ctx, adminID, channelID, active)
	if err != nil {
		h.replyAdminError(ctx, bot, msg.Chat.ID, command, adminID, err, "⚠️ Failed to update channel.")
		return
	}
	if !changed {
		h.reply(ctx, bot, msg.Chat.ID, "ℹ️ Channel not found or already in that state.", nil)
		return
	}

	state := "disabled"
	if active {
		state = "enabled"
	}
	h.reply(ctx, bot, msg.Chat.ID, fmt.Sprintf("✅ Channel <code>%d</code> %s.", channelID, state), nil)
	h.logCommand(adminID, command, fmt.Sprintf("%s %d", state, channelID))
}

// HandleListChannels handles /listchannels
func (h *Handlers) HandleListChannels(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
	msg := update.Message
	if !isPrivate(msg) {
		return
	}
	h.sendChannelList(ctx, bot, msg.Chat.ID, msg.From.ID)
}

func (h *Handlers) sendChannelList(ctx context.Context, bot *tgbot.Bot, chatID, adminID int64) {
	listing, err := h.uc.ListChannels(ctx, adminID)
	if err != nil {
		h.replyAdminError(ctx, bot, chatID, "/"+consts.CommandListChannels.Name, adminID, err, "⚠️ Failed to fetch channel list.")
		return
	}
	h.reply(ctx, bot, chatID, channelListText(listing), nil)
}

// HandleStats handles /stats
func (h *Handlers) HandleStats(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
	msg := update.Message
	if !isPrivate(msg) {
		return
	}

	stats, err := h.uc.Statistics(ctx, msg.From.ID)
	if err != nil {
		h.replyAdminError(ctx, bot, msg.Chat.ID, "/"+consts.CommandStats.Name, msg.From.ID, err, "⚠️ Failed to fetch statistics. Please try again.")
		return
	}

	h.reply(ctx, bot, msg.Chat.ID, statsText(stats), backKeyboard())
}

// HandleDelContent handles /delcontent <copy_id>
func (h *Handlers) HandleDelContent(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
	msg := update.Message
	if !isPrivate(msg) {
		return
	}
	adminID, command := msg.From.ID, "/"+consts.CommandDelContent.Name

	args := commandArgs(msg.Text)
	if len(args) == 0 {
		h.reply(ctx, bot, msg.Chat.ID, usageText(consts.CommandDelContent.Name, "COPY_ID", "a1b2c3d4"), nil)
		return
	}

	removed, err := h.uc.DeleteContent(ctx, adminID, args[0])
	if err != nil {
		h.replyAdminError(ctx, bot, msg.Chat.ID, command, adminID, err, "⚠️ Failed to delete content.")
		return
	}
	if !removed {
		h.reply(ctx, bot, msg.Chat.ID, "⚠️ Content not found.", nil)
		return
	}

	h.reply(ctx, bot, msg.Chat.ID, fmt.Sprintf("🗑 Content <code>%s</code> deleted.", html.EscapeString(args[0])), nil)
	h.logCommand(adminID, command, "deleted "+args[0])
}

// HandleTestContent handles /testcontent [video MESSAGE_ID | link URL | generate]
func (h *Handlers) HandleTestContent(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
	msg := update.Message
	if !isPrivate(msg) {
		return
	}
	adminID, command := msg.From.ID, "/"+consts.CommandTestContent.Name

	if !h.uc.IsAdmin(adminID) {
		h.reply(ctx, bot, msg.Chat.ID, unauthorizedText, nil)
		return
	}

	args := commandArgs(msg.Text)
	if len(args) == 0 {
		h.reply(ctx, bot, msg.Chat.ID, testContentHelpText(), nil)
		return
	}

	if strings.EqualFold(args[0], "generate") {
		h.reply(ctx, bot, msg.Chat.ID, fmt.Sprintf("🆔 <b>Test Copy ID Generated:</b>\n\n<code>%s</code>\n\n"+
			"You can use this in your Mini App for testing.", contentBusiness.NewContentID()), nil)
		return
	}

	if len(args) < 2 {
		h.reply(ctx, bot, msg.Chat.ID, testContentHelpText(), nil)
		return
	}

	content, err := h.uc.RegisterTestContent(ctx, adminID, args[0], args[1])
	if err != nil {
		if errors.Is(err, boterrors.ErrInvalidArgument) {
			h.reply(ctx, bot, msg.Chat.ID, testContentHelpText(), nil)
			return
		}
		h.replyAdminError(ctx, bot, msg.Chat.ID, command, adminID, err, "⚠️ Failed to save test content.")
		return
	}

	h.reply(ctx, bot, msg.Chat.ID, testContentSavedText(content, deepLink(h.botUsername(ctx, bot), content.ID)), nil)
	h.logCommand(adminID, command, "saved "+content.ID)
}

// HandleAdminCallback handles the admin panel buttons
func (h *Handlers) HandleAdminCallback(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
	cq := update.CallbackQuery
	if !h.uc.IsAdmin(cq.From.ID) {
		h.answer(ctx, bot, cq.ID, "❌ Unauthorized!", true)
		return
	}
	h.answer(ctx, bot, cq.ID, "", false)

	msg := cq.Message.Message
	if msg == nil {
		return
	}

	switch strings.TrimPrefix(cq.Data, consts.CallbackAdminPrefix) {
	case "stats":
		stats, err := h.uc.Statistics(ctx, cq.From.ID)
		if err != nil {
			h.logError(cq.From.ID, cq.Data, err)
			h.edit(ctx, bot, msg, "⚠️ Failed to fetch statistics. Please try again.", backKeyboard())
			return
		}
		h.edit(ctx, bot, msg, statsText(stats), backKeyboard())
	case "channels":
		listing, err := h.uc.ListChannels(ctx, cq.From.ID)
		if err != nil {
			h.logError(cq.From.ID, cq.Data, err)
			h.edit(ctx, bot, msg, "⚠️ Failed to fetch channel list.", backKeyboard())
			return
		}
		h.edit(ctx, bot, msg, channelListText(listing), backKeyboard())
	case "back":
		h.edit(ctx, bot, msg, adminPanelText(), adminKeyboard())
	case "close":
		msgCtx, cancel := context.WithTimeout(ctx, RequestTimeout)
		defer cancel()
		if _, err := bot.DeleteMessage(msgCtx, &tgbot.DeleteMessageParams{ChatID: msg.Chat.ID, MessageID: msg.ID}); err != nil {
			h.logger.Debug().Err(err).Msg("Failed to close admin panel")
		}
	}
}

func (h *Handlers) replyAdminError(ctx context.Context, bot *tgbot.Bot, chatID int64, command string, adminID int64, err error, fallback string) {
	switch {
	case errors.Is(err, boterrors.ErrUnauthorized):
		h.reply(ctx, bot, chatID, unauthorizedText, nil)
	case errors.Is(err, channelerrors.ErrMandatoryChannel):
		h.reply(ctx, bot, chatID, "ℹ️ This is the main channel, it is always required.", nil)
	case errors.Is(err, channelerrors.ErrInvalidChannelID), errors.Is(err, boterrors.ErrInvalidArgument):
		h.reply(ctx, bot, chatID, invalidChannelIDText, nil)
	default:
		h.logError(adminID, command, err)
		h.reply(ctx, bot, chatID, fallback, nil)
	}
}

func (h *Handlers) botUsername(ctx context.Context, bot *tgbot.Bot) string {
	msgCtx, cancel := context.WithTimeout(ctx, RequestTimeout)
	defer cancel()

	me, err := bot.GetMe(msgCtx)
	if err != nil {
		h.logger.Warn().Err(err).Msg("Failed to get bot profile")
		return ""
	}
	return me.Username
}
