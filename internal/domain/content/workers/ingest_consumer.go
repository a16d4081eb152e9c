// Package workers contains background workers for the content domain
package workers

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"

	"github.com/Conte777/GateFlow/config"
	kafkaHandlers "github.com/Conte777/GateFlow/internal/domain/content/delivery/kafka"
	"github.com/Conte777/GateFlow/internal/domain/content/dto"
	kafkaInfra "github.com/Conte777/GateFlow/internal/infrastructure/kafka"
)

// IngestConsumer consumes content ingestion events from Kafka
type IngestConsumer struct {
	reader   *kafka.Reader
	handlers *kafkaHandlers.Handlers
	logger   zerolog.Logger
	stop     sync.Once
	stopErr  error
	ctx      context.Context
	cancel   context.CancelFunc
}

// NewIngestConsumer creates a Kafka consumer subscribed to both ingestion topics
func NewIngestConsumer(cfg *config.KafkaConfig, handlers *kafkaHandlers.Handlers, logger zerolog.Logger) *IngestConsumer {
	topics := []string{dto.TopicContentIngested, dto.TopicContentDeleted}

	reader := kafkaInfra.NewGroupReader(cfg, topics...)

	logger = logger.With().Str("component", "ingest-consumer").Logger()
	logger.Info().
		Strs("brokers", cfg.Brokers).
		Str("group_id", cfg.GroupID).
		Strs("topics", topics).
		Msg("Kafka ingest consumer initialized")

	ctx, cancel := context.WithCancel(context.Background())

	return &IngestConsumer{
		reader:   reader,
		handlers: handlers,
		logger:   logger,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start starts consuming messages from Kafka
func (c *IngestConsumer) Start() {
	c.logger.Info().Msg("Starting Kafka ingest consumer...")

	go func() {
		for {
			select {
			case <-c.ctx.Done():
				return
			default:
				msg, err := c.reader.ReadMessage(c.ctx)
				if err != nil {
					if c.ctx.Err() != nil {
						return
					}
					c.logger.Error().Err(err).Msg("Failed to read message from Kafka")
					continue
				}

				c.logger.Debug().
					Str("topic", msg.Topic).
					Int("partition", msg.Partition).
					Int64("offset", msg.Offset).
					Msg("Received message from Kafka")

				if err := c.handlers.Handle(c.ctx, msg.Topic, msg.Value); err != nil {
					c.logger.Error().Err(err).Str("topic", msg.Topic).Msg("Failed to handle ingest event")
				}
			}
		}
	}()
}

// Stop stops the consumer gracefully
func (c *IngestConsumer) Stop() error {
	c.stop.Do(func() {
		c.logger.Info().Msg("Stopping Kafka ingest consumer...")
		c.cancel()

		if err := c.reader.Close(); err != nil {
			c.logger.Error().Err(err).Msg("Failed to close Kafka reader")
			c.stopErr = err
		}
	})
	return c.stopErr
}
