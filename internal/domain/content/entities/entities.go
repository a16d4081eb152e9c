// Package entities contains content entities
package entities

import (
	"time"

	contenterrors "github.com/Conte777/GateFlow/internal/domain/content/errors"
)

// ContentType tags the closed set of deliverable content kinds
type ContentType string

const (
	ContentTypeVideo ContentType = "video"
	ContentTypeLink  ContentType = "link"
)

// MediaRef points at the source message holding a video
type MediaRef struct {
	ChannelID int64
	MessageID int
}

// ContentDescriptor describes one deliverable piece of content. Video content
// carries Media, link content carries URL.
type ContentDescriptor struct {
	ID        string
	Type      ContentType
	Title     string
	Media     *MediaRef
	URL       string
	CreatedAt time.Time
}

// Validate checks that the payload matches the content type
func (c *ContentDescriptor) Validate() error {
	if c.ID == "" {
		return contenterrors.ErrEmptyContentID
	}

	switch c.Type {
	case ContentTypeVideo:
		if c.Media == nil || c.Media.ChannelID == 0 || c.Media.MessageID <= 0 {
			return contenterrors.ErrInvalidMediaRef
		}
		if c.URL != "" {
			return contenterrors.ErrAmbiguousPayload
		}
	case ContentTypeLink:
		if c.URL == "" {
			return contenterrors.ErrMissingURL
		}
		if c.Media != nil {
			return contenterrors.ErrAmbiguousPayload
		}
	default:
		return contenterrors.ErrUnknownContentType
	}

	return nil
}

// OwnerChannel returns the channel the media lives in, zero for links
func (c *ContentDescriptor) OwnerChannel() int64 {
	if c.Media == nil {
		return 0
	}
	return c.Media.ChannelID
}

// ContentModel is a GORM model for contents table
type ContentModel struct {
	CopyID    string    `gorm:"column:copy_id;primaryKey;size:64"`
	Type      string    `gorm:"size:16;not null"`
	Title     string    `gorm:"size:512;not null;default:''"`
	ChannelID int64     `gorm:"not null;default:0"`
	MessageID int       `gorm:"not null;default:0"`
	Link      string    `gorm:"not null;default:''"`
	CreatedAt time.Time `gorm:"not null"`
}

func (ContentModel) TableName() string {
	return "contents"
}

// ToEntity converts DB model to domain entity
func (m *ContentModel) ToEntity() *ContentDescriptor {
	d := &ContentDescriptor{
		ID:        m.CopyID,
		Type:      ContentType(m.Type),
		Title:     m.Title,
		CreatedAt: m.CreatedAt,
	}
	if d.Type == ContentTypeVideo {
		d.Media = &MediaRef{ChannelID: m.ChannelID, MessageID: m.MessageID}
	} else {
		d.URL = m.Link
	}
	return d
}

// NewContentModel converts domain entity to DB model
func NewContentModel(d *ContentDescriptor) *ContentModel {
	m := &ContentModel{
		CopyID:    d.ID,
		Type:      string(d.Type),
		Title:     d.Title,
		Link:      d.URL,
		CreatedAt: d.CreatedAt,
	}
	if d.Media != nil {
		m.ChannelID = d.Media.ChannelID
		m.MessageID = d.Media.MessageID
	}
	return m
}

// Counts summarizes stored content
type Counts struct {
	Videos int64
	Links  int64
	Total  int64
}
