package telegram

import (
	"context"
	"strings"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog"

	"github.com/Conte777/GateFlow/config"
	"github.com/Conte777/GateFlow/internal/domain/bot/consts"
)

// Router registers Telegram bot handlers
type Router struct {
	handlers *Handlers
	cfg      *config.TelegramConfig
	logger   zerolog.Logger
}

// NewRouter creates new Telegram router
func NewRouter(handlers *Handlers, cfg *config.TelegramConfig, logger zerolog.Logger) *Router {
	return &Router{
		handlers: handlers,
		cfg:      cfg,
		logger:   logger,
	}
}

// RegisterRoutes registers all update handlers on the bot
func (r *Router) RegisterRoutes(bot *tgbot.Bot) {
	h := r.handlers

	commands := []struct {
		cmd     consts.Command
		handler tgbot.HandlerFunc
	}{
		{consts.CommandStart, h.HandleStart},
		{consts.CommandHelp, h.HandleHelp},
		{consts.CommandAdmin, h.HandleAdmin},
		{consts.CommandAddChannel, h.HandleAddChannel},
		{consts.CommandRemoveChannel, h.HandleRemoveChannel},
		{consts.CommandEnableChannel, h.HandleEnableChannel},
		{consts.CommandDisableChannel, h.HandleDisableChannel},
		{consts.CommandListChannels, h.HandleListChannels},
		{consts.CommandStats, h.HandleStats},
		{consts.CommandDelContent, h.HandleDelContent},
		{consts.CommandTestContent, h.HandleTestContent},
	}
	for _, c := range commands {
		bot.RegisterHandlerMatchFunc(matchCommand(c.cmd.Name), c.handler)
	}

	bot.RegisterHandler(tgbot.HandlerTypeCallbackQueryData, consts.CallbackCheckMembership, tgbot.MatchTypePrefix, h.HandleCheckMembership)
	bot.RegisterHandler(tgbot.HandlerTypeCallbackQueryData, consts.CallbackHowToUse, tgbot.MatchTypeExact, h.HandleInfoCallback)
	bot.RegisterHandler(tgbot.HandlerTypeCallbackQueryData, consts.CallbackAbout, tgbot.MatchTypeExact, h.HandleInfoCallback)
	bot.RegisterHandler(tgbot.HandlerTypeCallbackQueryData, consts.CallbackBackToStart, tgbot.MatchTypeExact, h.HandleInfoCallback)
	bot.RegisterHandler(tgbot.HandlerTypeCallbackQueryData, consts.CallbackAdminPrefix, tgbot.MatchTypePrefix, h.HandleAdminCallback)

	bot.RegisterHandlerMatchFunc(matchContentChannelPost(r.cfg.ContentChannelID), h.HandleChannelPost)

	r.logger.Info().Int("commands", len(commands)).Msg("All Telegram handlers registered successfully")
}

// SyncCommands publishes the command menus, the admin gets the full list
func (r *Router) SyncCommands(ctx context.Context, bot *tgbot.Bot) {
	if _, err := bot.SetMyCommands(ctx, &tgbot.SetMyCommandsParams{
		Commands: botCommands(consts.AllCommands),
	}); err != nil {
		r.logger.Warn().Err(err).Msg("Failed to set default command menu")
	}

	if _, err := bot.SetMyCommands(ctx, &tgbot.SetMyCommandsParams{
		Commands: botCommands(consts.AdminCommands),
		Scope:    &models.BotCommandScopeChat{ChatID: r.cfg.AdminID},
	}); err != nil {
		r.logger.Warn().Err(err).Msg("Failed to set admin command menu")
	}
}

func botCommands(commands []consts.Command) []models.BotCommand {
	out := make([]models.BotCommand, 0, len(commands))
	for _, c := range commands {
		out = append(out, models.BotCommand{Command: c.Name, Description: c.Description})
	}
	return out
}

func matchCommand(name string) tgbot.MatchFunc {
	return func(update *models.Update) bool {
		return update.Message != nil && commandName(update.Message.Text) == strings.ToLower(name)
	}
}

func matchContentChannelPost(channelID int64) tgbot.MatchFunc {
	return func(update *models.Update) bool {
		return update.ChannelPost != nil && update.ChannelPost.Chat.ID == channelID
	}
}
