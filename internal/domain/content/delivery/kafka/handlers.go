// Package kafka contains Kafka delivery handlers for content ingestion
package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Conte777/GateFlow/internal/domain/content/dto"
	"github.com/Conte777/GateFlow/internal/domain/content/entities"
	"github.com/Conte777/GateFlow/internal/domain/content/usecase/business"
	"github.com/Conte777/GateFlow/internal/infrastructure/metrics"
)

// Handlers contains Kafka message handlers
type Handlers struct {
	resolver *business.Resolver
	metrics  *metrics.Metrics
	logger   zerolog.Logger
}

// NewHandlers creates new Kafka handlers
func NewHandlers(resolver *business.Resolver, m *metrics.Metrics, logger zerolog.Logger) *Handlers {
	return &Handlers{
		resolver: resolver,
		metrics:  m,
		logger:   logger.With().Str("component", "content-kafka-handlers").Logger(),
	}
}

// Handle dispatches a message by topic
func (h *Handlers) Handle(ctx context.Context, topic string, data []byte) error {
	var err error
	switch topic {
	case dto.TopicContentIngested:
		err = h.HandleIngested(ctx, data)
	case dto.TopicContentDeleted:
		err = h.HandleDeleted(ctx, data)
	default:
		err = fmt.Errorf("unexpected topic %q", topic)
	}

	h.metrics.RecordKafkaConsumed(topic, err == nil)
	return err
}

// HandleIngested stores content announced by the ingestion collaborator
func (h *Handlers) HandleIngested(ctx context.Context, data []byte) error {
	var event dto.ContentIngestedEvent
	if err := json.Unmarshal(data, &event); err != nil {
		h.logger.Error().Err(err).Str("data", string(data)).Msg("Failed to unmarshal content ingested event")
		return err
	}

	content := &entities.ContentDescriptor{
		ID:    event.ContentID,
		Type:  entities.ContentType(event.Type),
		Title: event.Title,
		URL:   event.URL,
	}
	if content.Type == entities.ContentTypeVideo {
		content.Media = &entities.MediaRef{ChannelID: event.ChannelID, MessageID: event.MessageID}
	}

	if _, err := h.resolver.Ingest(ctx, content); err != nil {
		h.logger.Error().Err(err).Str("content_id", event.ContentID).Msg("Failed to ingest content")
		return err
	}
	return nil
}

// HandleDeleted removes content announced as deleted
func (h *Handlers) HandleDeleted(ctx context.Context, data []byte) error {
	var event dto.ContentDeletedEvent
	if err := json.Unmarshal(data, &event); err != nil {
		h.logger.Error().Err(err).Str("data", string(data)).Msg("Failed to unmarshal content deleted event")
		return err
	}

	removed, err := h.resolver.Remove(ctx, event.ContentID)
	if err != nil {
		h.logger.Error().Err(err).Str("content_id", event.ContentID).Msg("Failed to remove content")
		return err
	}
	if !removed {
		h.logger.Debug().Str("content_id", event.ContentID).Msg("Deleted content was not stored")
	}
	return nil
}
