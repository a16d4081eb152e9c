package workers

import (
	"context"

	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"github.com/Conte777/GateFlow/config"
	kafkaHandlers "github.com/Conte777/GateFlow/internal/domain/content/delivery/kafka"
)

// Module provides workers for fx dependency injection
var Module = fx.Module("content-workers",
	fx.Invoke(registerIngestConsumer),
)

// registerIngestConsumer starts the ingest consumer when Kafka is enabled
func registerIngestConsumer(
	lc fx.Lifecycle,
	cfg *config.KafkaConfig,
	handlers *kafkaHandlers.Handlers,
	logger zerolog.Logger,
) {
	if !cfg.Enabled {
		logger.Info().Msg("Kafka disabled, content ingestion limited to the content channel")
		return
	}

	consumer := NewIngestConsumer(cfg, handlers, logger)
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			consumer.Start()
			return nil
		},
		OnStop: func(_ context.Context) error {
			return consumer.Stop()
		},
	})
}
