// Package bot contains the bot domain module
package bot

import (
	"context"

	"go.uber.org/fx"

	accessBusiness "github.com/Conte777/GateFlow/internal/domain/access/usecase/business"
	telegramDelivery "github.com/Conte777/GateFlow/internal/domain/bot/delivery/telegram"
	"github.com/Conte777/GateFlow/internal/domain/bot/deps"
	"github.com/Conte777/GateFlow/internal/domain/bot/usecase/business"
	channelBusiness "github.com/Conte777/GateFlow/internal/domain/channel/usecase/business"
	contentBusiness "github.com/Conte777/GateFlow/internal/domain/content/usecase/business"
	deliveryBusiness "github.com/Conte777/GateFlow/internal/domain/delivery/usecase/business"
	"github.com/Conte777/GateFlow/internal/infrastructure/telegram"
)

// Module provides bot domain components for fx dependency injection
var Module = fx.Module("bot",
	// Capabilities of the other domains
	fx.Provide(
		func(g *accessBusiness.Gate) deps.AccessGate { return g },
		func(c *deliveryBusiness.Coordinator) deps.Deliverer { return c },
		func(r *channelBusiness.Registry) deps.ChannelRegistry { return r },
		func(r *contentBusiness.Resolver) deps.ContentCatalog { return r },
		func(l *deliveryBusiness.Ledger) deps.LedgerStats { return l },
	),

	// UseCase
	fx.Provide(business.NewUseCase),

	// Delivery - Telegram
	fx.Provide(telegramDelivery.NewHandlers),
	fx.Provide(telegramDelivery.NewRouter),

	fx.Invoke(registerRoutes),
)

// registerRoutes registers handlers before the bot starts polling
func registerRoutes(lc fx.Lifecycle, router *telegramDelivery.Router, bot *telegram.Bot) {
	router.RegisterRoutes(bot.Raw())

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go router.SyncCommands(context.Background(), bot.Raw())
			return nil
		},
	})
}
