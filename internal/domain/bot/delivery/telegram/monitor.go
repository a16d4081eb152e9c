package telegram

import (
	"context"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// HandleChannelPost captures new posts of the content channel
func (h *Handlers) HandleChannelPost(ctx context.Context, _ *tgbot.Bot, update *models.Update) {
	post := channelPost(update.ChannelPost)

	content, err := h.uc.IngestChannelPost(ctx, post)
	if err != nil {
		h.logger.Error().
			Err(err).
			Int64("channel_id", post.ChannelID).
			Int("message_id", post.MessageID).
			Msg("Failed to capture channel post")
		return
	}

	if content == nil {
		h.logger.Debug().
			Int64("channel_id", post.ChannelID).
			Int("message_id", post.MessageID).
			Msg("Channel post ignored")
	}
}
