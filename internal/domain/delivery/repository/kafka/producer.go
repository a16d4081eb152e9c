// Package kafka contains Kafka repository implementations
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/IBM/sarama"
	"github.com/rs/zerolog"

	"github.com/Conte777/GateFlow/config"
	"github.com/Conte777/GateFlow/internal/domain/delivery/deps"
	"github.com/Conte777/GateFlow/internal/domain/delivery/dto"
	kafkaInfra "github.com/Conte777/GateFlow/internal/infrastructure/kafka"
	"github.com/Conte777/GateFlow/internal/infrastructure/metrics"
)

// Producer implements deps.EventPublisher
type Producer struct {
	producer sarama.SyncProducer
	metrics  *metrics.Metrics
	logger   zerolog.Logger
}

// NewProducer creates a new Kafka producer
func NewProducer(cfg *config.KafkaConfig, m *metrics.Metrics, logger zerolog.Logger) (*Producer, error) {
	producer, err := kafkaInfra.NewSyncProducer(cfg)
	if err != nil {
		return nil, err
	}

	logger.Info().Strs("brokers", cfg.Brokers).Msg("Kafka producer initialized successfully")

	return NewProducerWith(producer, m, logger), nil
}

// NewProducerWith wraps an existing sarama producer
func NewProducerWith(producer sarama.SyncProducer, m *metrics.Metrics, logger zerolog.Logger) *Producer {
	return &Producer{
		producer: producer,
		metrics:  m,
		logger:   logger.With().Str("component", "delivery-producer").Logger(),
	}
}

// PublishDelivered sends a content delivered event keyed by user
func (p *Producer) PublishDelivered(ctx context.Context, event *dto.ContentDeliveredEvent) error {
	return p.sendEvent(ctx, dto.TopicContentDelivered, strconv.FormatInt(event.UserID, 10), event)
}

// PublishUnavailable sends a content unavailable event keyed by content
func (p *Producer) PublishUnavailable(ctx context.Context, event *dto.ContentUnavailableEvent) error {
	return p.sendEvent(ctx, dto.TopicContentUnavailable, event.ContentID, event)
}

func (p *Producer) sendEvent(_ context.Context, topic, key string, event any) error {
	jsonData, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event to JSON: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic: topic,
		Key:   sarama.StringEncoder(key),
		Value: sarama.ByteEncoder(jsonData),
	}

	partition, offset, err := p.producer.SendMessage(message)
	if err != nil {
		p.metrics.RecordKafkaError(topic)
		p.logger.Error().Err(err).Str("topic", topic).Msg("Failed to send Kafka message")
		return err
	}

	p.metrics.RecordKafkaMessage()
	p.logger.Debug().
		Str("topic", topic).
		Int32("partition", partition).
		Int64("offset", offset).
		Msg("Kafka message sent")

	return nil
}

// Close closes the Kafka producer
func (p *Producer) Close() error {
	if p.producer == nil {
		return nil
	}
	if err := p.producer.Close(); err != nil {
		p.logger.Error().Err(err).Msg("Failed to close Kafka producer")
		return err
	}
	p.logger.Info().Msg("Kafka producer closed successfully")
	return nil
}

// NopPublisher drops every event, used when Kafka is disabled
type NopPublisher struct{}

func (NopPublisher) PublishDelivered(context.Context, *dto.ContentDeliveredEvent) error {
	return nil
}

func (NopPublisher) PublishUnavailable(context.Context, *dto.ContentUnavailableEvent) error {
	return nil
}

func (NopPublisher) Close() error { return nil }

// NewPublisher returns a Kafka backed publisher when Kafka is enabled
func NewPublisher(cfg *config.KafkaConfig, m *metrics.Metrics, logger zerolog.Logger) (deps.EventPublisher, error) {
	if !cfg.Enabled {
		logger.Info().Msg("Kafka disabled, delivery events are not published")
		return NopPublisher{}, nil
	}
	return NewProducer(cfg, m, logger)
}
