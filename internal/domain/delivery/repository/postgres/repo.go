package postgres

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Conte777/GateFlow/internal/domain/delivery/deps"
	"github.com/Conte777/GateFlow/internal/domain/delivery/entities"
	deliveryerrors "github.com/Conte777/GateFlow/internal/domain/delivery/errors"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) deps.LedgerRepository {
	return &Repository{db: db}
}

func (r *Repository) Exists(ctx context.Context, userID int64, contentID string) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&entities.DeliveryModel{}).
		Where("user_id = ? AND copy_id = ?", userID, contentID).
		Count(&count)

	if result.Error != nil {
		return false, deliveryerrors.ErrDatabaseOperation
	}
	return count > 0, nil
}

func (r *Repository) Upsert(ctx context.Context, record *entities.DeliveryRecord) error {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "copy_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"message_id", "delivered_at"}),
		}).
		Create(entities.NewDeliveryModel(record))

	if result.Error != nil {
		return deliveryerrors.ErrDatabaseOperation
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, userID int64, contentID string) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND copy_id = ?", userID, contentID).
		Delete(&entities.DeliveryModel{})

	if result.Error != nil {
		return false, deliveryerrors.ErrDatabaseOperation
	}
	return result.RowsAffected > 0, nil
}

// DeleteAllButLatest orders by delivered_at then copy_id, both descending
func (r *Repository) DeleteAllButLatest(ctx context.Context, userID int64, keep int) (int64, error) {
	latest := r.db.
		Model(&entities.DeliveryModel{}).
		Select("copy_id").
		Where("user_id = ?", userID).
		Order("delivered_at DESC").
		Order("copy_id DESC").
		Limit(keep)

	result := r.db.WithContext(ctx).
		Where("user_id = ? AND copy_id NOT IN (?)", userID, latest).
		Delete(&entities.DeliveryModel{})

	if result.Error != nil {
		return 0, deliveryerrors.ErrDatabaseOperation
	}
	return result.RowsAffected, nil
}

func (r *Repository) UsersOver(ctx context.Context, limit int) ([]int64, error) {
	var users []int64
	result := r.db.WithContext(ctx).
		Model(&entities.DeliveryModel{}).
		Group("user_id").
		Having("COUNT(*) > ?", limit).
		Pluck("user_id", &users)

	if result.Error != nil {
		return nil, deliveryerrors.ErrDatabaseOperation
	}
	return users, nil
}

func (r *Repository) Stats(ctx context.Context) (*entities.Stats, error) {
	var row struct {
		Deliveries     int64
		UniqueUsers    int64
		UniqueContents int64
	}
	result := r.db.WithContext(ctx).
		Model(&entities.DeliveryModel{}).
		Select("COUNT(*) AS deliveries, COUNT(DISTINCT user_id) AS unique_users, COUNT(DISTINCT copy_id) AS unique_contents").
		Scan(&row)

	if result.Error != nil {
		return nil, deliveryerrors.ErrDatabaseOperation
	}

	return &entities.Stats{
		Deliveries:     row.Deliveries,
		UniqueUsers:    row.UniqueUsers,
		UniqueContents: row.UniqueContents,
	}, nil
}
