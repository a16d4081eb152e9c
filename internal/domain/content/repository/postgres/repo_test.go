package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Conte777/GateFlow/internal/domain/content/entities"
	contenterrors "github.com/Conte777/GateFlow/internal/domain/content/errors"
	"github.com/Conte777/GateFlow/internal/infrastructure/database/dbtest"
)

func TestRepository_PutAndGetVideo(t *testing.T) {
	repo := NewRepository(dbtest.Open(t))
	ctx := context.Background()
	created := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Put(ctx, &entities.ContentDescriptor{
		ID:        "abc123",
		Type:      entities.ContentTypeVideo,
		Title:     "Episode 1",
		Media:     &entities.MediaRef{ChannelID: -1003872857468, MessageID: 77},
		CreatedAt: created,
	}))

	got, err := repo.Get(ctx, "abc123")
	require.NoError(t, err)
	assert.Equal(t, entities.ContentTypeVideo, got.Type)
	assert.Equal(t, &entities.MediaRef{ChannelID: -1003872857468, MessageID: 77}, got.Media)
	assert.Equal(t, int64(-1003872857468), got.OwnerChannel())
	assert.Empty(t, got.URL)
}

func TestRepository_GetIsCaseSensitive(t *testing.T) {
	repo := NewRepository(dbtest.Open(t))
	ctx := context.Background()
	require.NoError(t, repo.Put(ctx, &entities.ContentDescriptor{ID: "AbC", Type: entities.ContentTypeLink, URL: "https://x.com/a", CreatedAt: time.Now()}))

	_, err := repo.Get(ctx, "abc")
	assert.ErrorIs(t, err, contenterrors.ErrContentNotFound)
}

func TestRepository_PutOverwrites(t *testing.T) {
	repo := NewRepository(dbtest.Open(t))
	ctx := context.Background()

	require.NoError(t, repo.Put(ctx, &entities.ContentDescriptor{ID: "x1", Type: entities.ContentTypeLink, URL: "https://a.example", CreatedAt: time.Now()}))
	require.NoError(t, repo.Put(ctx, &entities.ContentDescriptor{ID: "x1", Type: entities.ContentTypeVideo, Media: &entities.MediaRef{ChannelID: -5, MessageID: 9}, CreatedAt: time.Now()}))

	got, err := repo.Get(ctx, "x1")
	require.NoError(t, err)
	assert.Equal(t, entities.ContentTypeVideo, got.Type)
	assert.Equal(t, 9, got.Media.MessageID)

	counts, err := repo.CountByType(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[entities.ContentType]int64{entities.ContentTypeVideo: 1}, counts)
}

func TestRepository_Delete(t *testing.T) {
	repo := NewRepository(dbtest.Open(t))
	ctx := context.Background()
	require.NoError(t, repo.Put(ctx, &entities.ContentDescriptor{ID: "d1", Type: entities.ContentTypeLink, URL: "https://a.example", CreatedAt: time.Now()}))

	removed, err := repo.Delete(ctx, "d1")
	require.NoError(t, err)
	assert.True(t, removed)

	_, err = repo.Get(ctx, "d1")
	assert.ErrorIs(t, err, contenterrors.ErrContentNotFound)
}
