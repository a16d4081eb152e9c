// Package telegram contains Telegram bot infrastructure
package telegram

import (
	"context"

	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"github.com/Conte777/GateFlow/config"
	accessDeps "github.com/Conte777/GateFlow/internal/domain/access/deps"
	botDeps "github.com/Conte777/GateFlow/internal/domain/bot/deps"
	deliveryDeps "github.com/Conte777/GateFlow/internal/domain/delivery/deps"
)

// Module provides Telegram bot and transport for fx dependency injection
var Module = fx.Module("telegram",
	fx.Provide(provideBot),
	fx.Provide(NewTransport),
	fx.Provide(
		func(t *Transport) accessDeps.MembershipTransport { return t },
		func(t *Transport) deliveryDeps.Transport { return t },
		func(t *Transport) botDeps.ChatDirectory { return t },
		func(t *Transport) botDeps.Notifier { return t },
	),
	fx.Invoke(registerLifecycle),
)

// provideBot creates Telegram bot from config
func provideBot(cfg *config.TelegramConfig, logger zerolog.Logger) (*Bot, error) {
	return NewBot(cfg.BotToken, logger)
}

// registerLifecycle registers bot lifecycle hooks
func registerLifecycle(lc fx.Lifecycle, bot *Bot) {
	var cancel context.CancelFunc

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			var ctx context.Context
			ctx, cancel = context.WithCancel(context.Background())

			// Start is blocking
			go func() {
				_ = bot.Start(ctx)
			}()
			return nil
		},
		OnStop: func(_ context.Context) error {
			if cancel != nil {
				cancel()
			}
			return bot.Stop()
		},
	})
}
