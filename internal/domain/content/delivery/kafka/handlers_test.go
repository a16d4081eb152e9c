package kafka

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Conte777/GateFlow/internal/domain/content/dto"
	"github.com/Conte777/GateFlow/internal/domain/content/entities"
	contenterrors "github.com/Conte777/GateFlow/internal/domain/content/errors"
	"github.com/Conte777/GateFlow/internal/domain/content/repository/postgres"
	"github.com/Conte777/GateFlow/internal/domain/content/usecase/business"
	"github.com/Conte777/GateFlow/internal/infrastructure/database/dbtest"
	"github.com/Conte777/GateFlow/pkg/clock"
	pkgerrors "github.com/Conte777/GateFlow/pkg/errors"
)

func newHandlers(t *testing.T) (*Handlers, *business.Resolver) {
	t.Helper()
	resolver := business.NewResolver(
		postgres.NewRepository(dbtest.Open(t)),
		clock.NewFake(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)),
		zerolog.Nop(),
	)
	return NewHandlers(resolver, nil, zerolog.Nop()), resolver
}

func TestHandlers_IngestVideo(t *testing.T) {
	h, resolver := newHandlers(t)
	ctx := context.Background()

	payload := []byte(`{"content_id":"abc123","content_type":"video","channel_id":-1003872857468,"message_id":55}`)
	require.NoError(t, h.Handle(ctx, dto.TopicContentIngested, payload))

	got, err := resolver.Resolve(ctx, "abc123")
	require.NoError(t, err)
	assert.Equal(t, entities.ContentTypeVideo, got.Type)
	assert.Equal(t, 55, got.Media.MessageID)
}

func TestHandlers_IngestRejectsInvalid(t *testing.T) {
	h, _ := newHandlers(t)

	err := h.Handle(context.Background(), dto.TopicContentIngested, []byte(`{"content_id":"l1","content_type":"link"}`))
	assert.True(t, pkgerrors.IsValidationError(err))

	err = h.Handle(context.Background(), dto.TopicContentIngested, []byte(`not json`))
	assert.Error(t, err)
}

func TestHandlers_Deleted(t *testing.T) {
	h, resolver := newHandlers(t)
	ctx := context.Background()
	require.NoError(t, h.Handle(ctx, dto.TopicContentIngested, []byte(`{"content_id":"l1","content_type":"link","link":"https://youtu.be/x"}`)))

	require.NoError(t, h.Handle(ctx, dto.TopicContentDeleted, []byte(`{"content_id":"l1"}`)))
	_, err := resolver.Resolve(ctx, "l1")
	assert.ErrorIs(t, err, contenterrors.ErrContentNotFound)

	require.NoError(t, h.Handle(ctx, dto.TopicContentDeleted, []byte(`{"content_id":"l1"}`)))
}

func TestHandlers_UnknownTopic(t *testing.T) {
	h, _ := newHandlers(t)
	assert.Error(t, h.Handle(context.Background(), "news.deliver", []byte(`{}`)))
}
