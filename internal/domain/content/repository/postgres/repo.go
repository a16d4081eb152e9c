package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Conte777/GateFlow/internal/domain/content/deps"
	"github.com/Conte777/GateFlow/internal/domain/content/entities"
	contenterrors "github.com/Conte777/GateFlow/internal/domain/content/errors"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) deps.ContentStore {
	return &Repository{db: db}
}

func (r *Repository) Get(ctx context.Context, contentID string) (*entities.ContentDescriptor, error) {
	var model entities.ContentModel
	result := r.db.WithContext(ctx).
		Where("copy_id = ?", contentID).
		First(&model)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, contenterrors.ErrContentNotFound
		}
		return nil, contenterrors.ErrDatabaseOperation
	}

	return model.ToEntity(), nil
}

func (r *Repository) Put(ctx context.Context, content *entities.ContentDescriptor) error {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "copy_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"type", "title", "channel_id", "message_id", "link", "created_at"}),
		}).
		Create(entities.NewContentModel(content))

	if result.Error != nil {
		return contenterrors.ErrDatabaseOperation
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, contentID string) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("copy_id = ?", contentID).
		Delete(&entities.ContentModel{})

	if result.Error != nil {
		return false, contenterrors.ErrDatabaseOperation
	}
	return result.RowsAffected > 0, nil
}

func (r *Repository) CountByType(ctx context.Context) (map[entities.ContentType]int64, error) {
	var rows []struct {
		Type  string
		Count int64
	}
	result := r.db.WithContext(ctx).
		Model(&entities.ContentModel{}).
		Select("type, COUNT(*) AS count").
		Group("type").
		Scan(&rows)

	if result.Error != nil {
		return nil, contenterrors.ErrDatabaseOperation
	}

	counts := make(map[entities.ContentType]int64, len(rows))
	for _, row := range rows {
		counts[entities.ContentType(row.Type)] = row.Count
	}
	return counts, nil
}
