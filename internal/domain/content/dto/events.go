// Package dto contains data transfer objects for content ingestion
package dto

// Kafka topics consumed by the content domain
const (
	TopicContentIngested = "content.ingested"
	TopicContentDeleted  = "content.deleted"
)

// ContentIngestedEvent is published by an external ingestion collaborator
type ContentIngestedEvent struct {
	ContentID string `json:"content_id"`
	Type      string `json:"content_type"`
	Title     string `json:"title,omitempty"`
	ChannelID int64  `json:"channel_id,omitempty"`
	MessageID int    `json:"message_id,omitempty"`
	URL       string `json:"link,omitempty"`
}

// ContentDeletedEvent removes content by ID
type ContentDeletedEvent struct {
	ContentID string `json:"content_id"`
}
