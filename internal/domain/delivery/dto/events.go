// Package dto contains data transfer objects for delivery events
package dto

import "time"

// Kafka topics produced by the delivery domain
const (
	TopicContentDelivered   = "content.delivered"
	TopicContentUnavailable = "content.unavailable"
)

// ContentDeliveredEvent is published after a successful delivery
type ContentDeliveredEvent struct {
	UserID      int64     `json:"user_id"`
	ContentID   string    `json:"content_id"`
	ContentType string    `json:"content_type"`
	MessageID   int       `json:"message_id"`
	Redelivered bool      `json:"redelivered"`
	DeliveredAt time.Time `json:"delivered_at"`
}

// ContentUnavailableEvent flags content whose source media is gone
type ContentUnavailableEvent struct {
	ContentID  string    `json:"content_id"`
	ChannelID  int64     `json:"channel_id"`
	MessageID  int       `json:"message_id"`
	Reason     string    `json:"reason"`
	DetectedAt time.Time `json:"detected_at"`
}
