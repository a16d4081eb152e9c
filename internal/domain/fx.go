// Package domain contains all domain modules
package domain

import (
	"go.uber.org/fx"

	"github.com/Conte777/GateFlow/internal/domain/access"
	"github.com/Conte777/GateFlow/internal/domain/bot"
	"github.com/Conte777/GateFlow/internal/domain/channel"
	"github.com/Conte777/GateFlow/internal/domain/content"
	"github.com/Conte777/GateFlow/internal/domain/delivery"
)

// Module aggregates all domain modules for fx dependency injection
var Module = fx.Module("domain",
	channel.Module,
	access.Module,
	content.Module,
	delivery.Module,
	bot.Module,
)
