// Package telegram contains Telegram delivery layer
package telegram

import (
	"context"
	"errors"
	"time"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog"

	accessEntities "github.com/Conte777/GateFlow/internal/domain/access/entities"
	accesserrors "github.com/Conte777/GateFlow/internal/domain/access/errors"
	"github.com/Conte777/GateFlow/internal/domain/bot/consts"
	"github.com/Conte777/GateFlow/internal/domain/bot/usecase/business"
	deliveryEntities "github.com/Conte777/GateFlow/internal/domain/delivery/entities"
)

// RequestTimeout bounds a single reply to the user
const RequestTimeout = 30 * time.Second

// Handlers handles Telegram updates
type Handlers struct {
	uc     *business.UseCase
	logger zerolog.Logger
}

// NewHandlers creates new Telegram handlers
func NewHandlers(uc *business.UseCase, logger zerolog.Logger) *Handlers {
	return &Handlers{
		uc:     uc,
		logger: logger.With().Str("component", "telegram-handlers").Logger(),
	}
}

// HandleStart handles /start with or without a content deep link
func (h *Handlers) HandleStart(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
	msg := update.Message
	if !isPrivate(msg) {
		return
	}
	userID := msg.From.ID

	if contentID, ok := contentIDFromStart(msg.Text); ok {
		h.logCommand(userID, "/start", "deep link "+contentID)
		h.handleContentRequest(ctx, bot, msg, contentID)
		return
	}

	h.reply(ctx, bot, msg.Chat.ID, welcomeText(h.uc.ChannelUsername()), startKeyboard(h.uc.ChannelUsername()))
	h.logCommand(userID, "/start", "welcome")
}

// HandleHelp handles /help command
func (h *Handlers) HandleHelp(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
	msg := update.Message
	if !isPrivate(msg) {
		return
	}

	h.reply(ctx, bot, msg.Chat.ID, helpText(h.uc.ChannelUsername()), helpKeyboard(h.uc.ChannelUsername()))
	h.logCommand(msg.From.ID, "/help", "success")
}

func (h *Handlers) handleContentRequest(ctx context.Context, bot *tgbot.Bot, msg *models.Message, contentID string) {
	userID := msg.From.ID

	reply, err := h.uc.RequestContent(ctx, userID, contentID)
	if err != nil {
		h.logError(userID, "/start", err)
		h.reply(ctx, bot, msg.Chat.ID, requestErrorText(err), nil)
		return
	}

	if !reply.Granted() {
		h.sendPrompt(ctx, bot, msg.Chat.ID, msg.From.FirstName, reply.Prompt)
		return
	}

	h.renderResult(ctx, bot, msg.Chat.ID, reply.Result)
}

// HandleCheckMembership handles the "I've Joined" button
func (h *Handlers) HandleCheckMembership(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
	cq := update.CallbackQuery
	userID := cq.From.ID
	contentID := contentIDFromRecheck(cq.Data)
	prompt := cq.Message.Message

	reply, err := h.uc.Recheck(ctx, userID, contentID)
	if err != nil {
		h.logError(userID, "check_membership", err)
		h.answer(ctx, bot, cq.ID, checkErrorAlert, true)
		return
	}

	if !reply.Granted() {
		h.answer(ctx, bot, cq.ID, notJoinedAlert, true)
		if prompt != nil {
			h.editMarkup(ctx, bot, prompt, joinKeyboard(reply.Prompt))
		}
		h.logCommand(userID, "check_membership", "still unjoined")
		return
	}

	h.answer(ctx, bot, cq.ID, verifiedAlert, true)

	if reply.Result == nil {
		if prompt != nil {
			h.edit(ctx, bot, prompt, verifiedText, nil)
		}
		h.logCommand(userID, "check_membership", "verified")
		return
	}

	if prompt != nil {
		h.edit(ctx, bot, prompt, verifiedDeliveringText, nil)
	}
	h.renderResult(ctx, bot, userID, reply.Result)
	h.logCommand(userID, "check_membership", "verified, "+string(reply.Result.Outcome))
}

// HandleInfoCallback handles the help, about and back buttons of the welcome screen
func (h *Handlers) HandleInfoCallback(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
	cq := update.CallbackQuery
	h.answer(ctx, bot, cq.ID, "", false)

	msg := cq.Message.Message
	if msg == nil {
		return
	}

	channel := h.uc.ChannelUsername()
	switch cq.Data {
	case consts.CallbackHowToUse:
		h.edit(ctx, bot, msg, helpText(channel), helpKeyboard(channel))
	case consts.CallbackAbout:
		h.edit(ctx, bot, msg, aboutText(channel), helpKeyboard(channel))
	case consts.CallbackBackToStart:
		h.edit(ctx, bot, msg, welcomeText(channel), startKeyboard(channel))
	}
}

func (h *Handlers) sendPrompt(ctx context.Context, bot *tgbot.Bot, chatID int64, firstName string, prompt *accessEntities.Prompt) {
	if len(prompt.Omitted) > 0 {
		h.logger.Warn().Ints64("channel_ids", prompt.Omitted).Msg("Join prompt omits channels without a join link")
	}
	h.reply(ctx, bot, chatID, joinRequiredText(firstName, h.uc.ChannelUsername(), prompt), joinKeyboard(prompt))
}

// renderResult tells the user about failed deliveries. Successful ones were
// already sent by the coordinator.
func (h *Handlers) renderResult(ctx context.Context, bot *tgbot.Bot, chatID int64, result *deliveryEntities.Result) {
	if text := outcomeText(result.Outcome); text != "" {
		h.reply(ctx, bot, chatID, text, nil)
	}
}

func outcomeText(outcome deliveryEntities.Outcome) string {
	switch outcome {
	case deliveryEntities.OutcomeDelivered:
		return ""
	case deliveryEntities.OutcomeNotFound:
		return contentNotFoundText
	case deliveryEntities.OutcomeUnavailable:
		return contentUnavailableText
	case deliveryEntities.OutcomeRateLimitedExhausted:
		return busyText
	default:
		return deliveryFailedText
	}
}

func requestErrorText(err error) string {
	if errors.Is(err, accesserrors.ErrRateLimitExhausted) {
		return busyText
	}
	return genericErrorText
}

func isPrivate(msg *models.Message) bool {
	return msg != nil && msg.From != nil && msg.Chat.Type == models.ChatTypePrivate
}

// reply sends an HTML message, markup may be nil
func (h *Handlers) reply(ctx context.Context, bot *tgbot.Bot, chatID int64, text string, markup models.ReplyMarkup) {
	msgCtx, cancel := context.WithTimeout(ctx, RequestTimeout)
	defer cancel()

	params := &tgbot.SendMessageParams{
		ChatID:             chatID,
		Text:               text,
		ParseMode:          models.ParseModeHTML,
		LinkPreviewOptions: &models.LinkPreviewOptions{IsDisabled: tgbot.True()},
	}
	if markup != nil {
		params.ReplyMarkup = markup
	}

	if _, err := bot.SendMessage(msgCtx, params); err != nil {
		h.logger.Error().Int64("chat_id", chatID).Err(err).Msg("Failed to send Telegram response")
	}
}

func (h *Handlers) edit(ctx context.Context, bot *tgbot.Bot, msg *models.Message, text string, markup models.ReplyMarkup) {
	msgCtx, cancel := context.WithTimeout(ctx, RequestTimeout)
	defer cancel()

	params := &tgbot.EditMessageTextParams{
		ChatID:             msg.Chat.ID,
		MessageID:          msg.ID,
		Text:               text,
		ParseMode:          models.ParseModeHTML,
		LinkPreviewOptions: &models.LinkPreviewOptions{IsDisabled: tgbot.True()},
	}
	if markup != nil {
		params.ReplyMarkup = markup
	}

	if _, err := bot.EditMessageText(msgCtx, params); err != nil {
		h.logger.Debug().Int64("chat_id", msg.Chat.ID).Err(err).Msg("Failed to edit message")
	}
}

func (h *Handlers) editMarkup(ctx context.Context, bot *tgbot.Bot, msg *models.Message, markup models.ReplyMarkup) {
	msgCtx, cancel := context.WithTimeout(ctx, RequestTimeout)
	defer cancel()

	_, err := bot.EditMessageReplyMarkup(msgCtx, &tgbot.EditMessageReplyMarkupParams{
		ChatID:      msg.Chat.ID,
		MessageID:   msg.ID,
		ReplyMarkup: markup,
	})
	if err != nil {
		// unchanged markup is reported as an error too
		h.logger.Debug().Int64("chat_id", msg.Chat.ID).Err(err).Msg("Failed to edit reply markup")
	}
}

func (h *Handlers) answer(ctx context.Context, bot *tgbot.Bot, callbackID, text string, alert bool) {
	msgCtx, cancel := context.WithTimeout(ctx, RequestTimeout)
	defer cancel()

	_, err := bot.AnswerCallbackQuery(msgCtx, &tgbot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
		ShowAlert:       alert,
	})
	if err != nil {
		h.logger.Warn().Err(err).Msg("Failed to answer callback query")
	}
}

// logCommand logs command execution
func (h *Handlers) logCommand(userID int64, command, result string) {
	h.logger.Info().Int64("user_id", userID).Str("command", command).Str("result", result).Msg("Telegram command processed")
}

// logError logs command errors
func (h *Handlers) logError(userID int64, command string, err error) {
	h.logger.Error().Int64("user_id", userID).Str("command", command).Err(err).Msg("Telegram command failed")
}
