// Package infrastructure contains infrastructure layer components
package infrastructure

import (
	"go.uber.org/fx"

	"github.com/Conte777/GateFlow/internal/infrastructure/database"
	"github.com/Conte777/GateFlow/internal/infrastructure/http"
	"github.com/Conte777/GateFlow/internal/infrastructure/logger"
	"github.com/Conte777/GateFlow/internal/infrastructure/metrics"
	"github.com/Conte777/GateFlow/internal/infrastructure/telegram"
	"github.com/Conte777/GateFlow/pkg/clock"
)

// Module provides all infrastructure components for fx dependency injection
var Module = fx.Module("infrastructure",
	fx.Provide(clock.Real),
	logger.Module,
	metrics.Module,
	database.Module,
	telegram.Module,
	http.Module,
)
