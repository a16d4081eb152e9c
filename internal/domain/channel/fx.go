// Package channel contains the channel registry module
package channel

import (
	"go.uber.org/fx"

	"github.com/Conte777/GateFlow/internal/domain/channel/repository/postgres"
	"github.com/Conte777/GateFlow/internal/domain/channel/usecase/business"
)

// Module provides channel registry components for fx dependency injection
var Module = fx.Module("channel",
	fx.Provide(postgres.NewRepository),
	fx.Provide(business.NewRegistry),
)
