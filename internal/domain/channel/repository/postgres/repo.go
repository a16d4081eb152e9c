package postgres

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Conte777/GateFlow/internal/domain/channel/deps"
	"github.com/Conte777/GateFlow/internal/domain/channel/entities"
	chanerrors "github.com/Conte777/GateFlow/internal/domain/channel/errors"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) deps.ChannelRepository {
	return &Repository{db: db}
}

func (r *Repository) Upsert(ctx context.Context, channel *entities.RequiredChannel) error {
	model := entities.NewChannelModel(channel)
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "channel_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"channel_name", "is_active", "added_at", "updated_at"}),
		}).
		Create(model)

	if result.Error != nil {
		return chanerrors.ErrDatabaseOperation
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, channelID int64) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("channel_id = ?", channelID).
		Delete(&entities.ChannelModel{})

	if result.Error != nil {
		return false, chanerrors.ErrDatabaseOperation
	}
	return result.RowsAffected > 0, nil
}

// SetActive only touches rows whose status differs, so RowsAffected reports a real change
func (r *Repository) SetActive(ctx context.Context, channelID int64, active bool) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&entities.ChannelModel{}).
		Where("channel_id = ? AND is_active <> ?", channelID, active).
		Update("is_active", active)

	if result.Error != nil {
		return false, chanerrors.ErrDatabaseOperation
	}
	return result.RowsAffected > 0, nil
}

func (r *Repository) ListActive(ctx context.Context) ([]entities.RequiredChannel, error) {
	return r.list(r.db.WithContext(ctx).Where("is_active = ?", true))
}

func (r *Repository) ListAll(ctx context.Context) ([]entities.RequiredChannel, error) {
	return r.list(r.db.WithContext(ctx))
}

func (r *Repository) list(q *gorm.DB) ([]entities.RequiredChannel, error) {
	var models []entities.ChannelModel
	result := q.Order("added_at ASC").Order("channel_id ASC").Find(&models)
	if result.Error != nil {
		return nil, chanerrors.ErrDatabaseOperation
	}

	channels := make([]entities.RequiredChannel, 0, len(models))
	for i := range models {
		channels = append(channels, models[i].ToEntity())
	}
	return channels, nil
}
