// Package delivery contains the delivery ledger and coordinator module
package delivery

import (
	"context"

	"go.uber.org/fx"

	contentBusiness "github.com/Conte777/GateFlow/internal/domain/content/usecase/business"
	"github.com/Conte777/GateFlow/internal/domain/delivery/deps"
	kafkaRepo "github.com/Conte777/GateFlow/internal/domain/delivery/repository/kafka"
	"github.com/Conte777/GateFlow/internal/domain/delivery/repository/postgres"
	"github.com/Conte777/GateFlow/internal/domain/delivery/usecase/business"
	"github.com/Conte777/GateFlow/internal/domain/delivery/workers"
)

// Module provides delivery components for fx dependency injection
var Module = fx.Module("delivery",
	// Repository
	fx.Provide(postgres.NewRepository),
	fx.Provide(kafkaRepo.NewPublisher),
	fx.Provide(
		func(r *contentBusiness.Resolver) deps.ContentResolver { return r },
	),

	// UseCase
	fx.Provide(business.NewLedger),
	fx.Provide(business.NewCoordinator),

	// Workers
	workers.Module,

	fx.Invoke(registerPublisherLifecycle),
)

func registerPublisherLifecycle(lc fx.Lifecycle, publisher deps.EventPublisher) {
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return publisher.Close()
		},
	})
}
