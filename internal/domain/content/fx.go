// Package content contains the content resolver module
package content

import (
	"go.uber.org/fx"

	kafkaDelivery "github.com/Conte777/GateFlow/internal/domain/content/delivery/kafka"
	"github.com/Conte777/GateFlow/internal/domain/content/repository/postgres"
	"github.com/Conte777/GateFlow/internal/domain/content/usecase/business"
	"github.com/Conte777/GateFlow/internal/domain/content/workers"
)

// Module provides content components for fx dependency injection
var Module = fx.Module("content",
	fx.Provide(postgres.NewRepository),
	fx.Provide(business.NewResolver),
	fx.Provide(kafkaDelivery.NewHandlers),
	workers.Module,
)
