// Package entities contains channel registry entities
package entities

import "time"

// RequiredChannel is an admin-managed channel users must join besides the mandatory one
type RequiredChannel struct {
	ChannelID   int64     `json:"channelId"`
	DisplayName string    `json:"displayName"`
	Active      bool      `json:"active"`
	AddedAt     time.Time `json:"addedAt"`
}

// ChannelModel is a GORM model for extra_channels table
type ChannelModel struct {
	ChannelID   int64     `gorm:"primaryKey;autoIncrement:false"`
	ChannelName string    `gorm:"size:255;not null;default:''"`
	IsActive    bool      `gorm:"not null;default:true;index"`
	AddedAt     time.Time `gorm:"not null;index"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (ChannelModel) TableName() string {
	return "extra_channels"
}

// ToEntity converts DB model to domain entity
func (m *ChannelModel) ToEntity() RequiredChannel {
	return RequiredChannel{
		ChannelID:   m.ChannelID,
		DisplayName: m.ChannelName,
		Active:      m.IsActive,
		AddedAt:     m.AddedAt,
	}
}

// NewChannelModel converts domain entity to DB model
func NewChannelModel(ch *RequiredChannel) *ChannelModel {
	return &ChannelModel{
		ChannelID:   ch.ChannelID,
		ChannelName: ch.DisplayName,
		IsActive:    ch.Active,
		AddedAt:     ch.AddedAt,
	}
}
