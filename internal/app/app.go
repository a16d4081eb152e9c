// Package app contains application bootstrap
package app

import (
	"go.uber.org/fx"

	"github.com/Conte777/GateFlow/config"
	httpDelivery "github.com/Conte777/GateFlow/internal/delivery/http"
	"github.com/Conte777/GateFlow/internal/domain"
	"github.com/Conte777/GateFlow/internal/infrastructure"
)

// CreateApp creates fx application with all modules
func CreateApp() fx.Option {
	return fx.Options(
		// Configuration
		fx.Provide(config.Out),

		// Infrastructure (logger, metrics, database, telegram bot, http server)
		infrastructure.Module,

		// Domain (registry, gate, content, delivery, bot surface)
		domain.Module,

		// Health endpoint
		httpDelivery.Module,
	)
}
