// Package entities contains delivery entities
package entities

import "time"

// DeliveryRecord is the latest delivery of one content to one user
type DeliveryRecord struct {
	UserID      int64
	ContentID   string
	MessageRef  int
	DeliveredAt time.Time
}

// DeliveryModel is a GORM model for user_deliveries table
type DeliveryModel struct {
	UserID      int64     `gorm:"primaryKey;autoIncrement:false"`
	CopyID      string    `gorm:"column:copy_id;primaryKey;size:64"`
	MessageID   int       `gorm:"not null;default:0"`
	DeliveredAt time.Time `gorm:"not null;index"`
}

func (DeliveryModel) TableName() string {
	return "user_deliveries"
}

// ToEntity converts DB model to domain entity
func (m *DeliveryModel) ToEntity() *DeliveryRecord {
	return &DeliveryRecord{
		UserID:      m.UserID,
		ContentID:   m.CopyID,
		MessageRef:  m.MessageID,
		DeliveredAt: m.DeliveredAt,
	}
}

// NewDeliveryModel converts domain entity to DB model
func NewDeliveryModel(r *DeliveryRecord) *DeliveryModel {
	return &DeliveryModel{
		UserID:      r.UserID,
		CopyID:      r.ContentID,
		MessageID:   r.MessageRef,
		DeliveredAt: r.DeliveredAt,
	}
}

// Stats summarizes the delivery ledger
type Stats struct {
	Deliveries     int64
	UniqueUsers    int64
	UniqueContents int64
	AvgPerUser     float64
}
