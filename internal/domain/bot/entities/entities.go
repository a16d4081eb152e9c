// Package entities contains bot domain entities
package entities

import (
	accessEntities "github.com/Conte777/GateFlow/internal/domain/access/entities"
	channelEntities "github.com/Conte777/GateFlow/internal/domain/channel/entities"
	deliveryEntities "github.com/Conte777/GateFlow/internal/domain/delivery/entities"
)

// ChatInfo is what the bot can see of a chat
type ChatInfo struct {
	ID       int64
	Title    string
	Username string
}

// ContentReply is the answer to a content request
type ContentReply struct {
	// Prompt is set when the user still has to join channels
	Prompt *accessEntities.Prompt
	// Result is set when delivery was attempted
	Result *deliveryEntities.Result
}

// Granted reports whether the gate let the request through
func (r *ContentReply) Granted() bool {
	return r != nil && r.Prompt == nil
}

// ChannelListing is the admin view of every required channel
type ChannelListing struct {
	Mandatory ChatInfo
	Username  string
	Extra     []ListedChannel
}

// ListedChannel is an extra channel with what the bot currently sees of it
type ListedChannel struct {
	channelEntities.RequiredChannel
	Username string
	// Reachable is false when the bot could not read the chat
	Reachable bool
}

// Statistics aggregates content, delivery and channel counters
type Statistics struct {
	Videos           int64
	Links            int64
	Contents         int64
	Deliveries       int64
	UniqueUsers      int64
	AvgPerUser       float64
	MandatoryChannel int64
	ExtraChannels    int
	ActiveChannels   int
	Notifications    bool
}

// ChannelPost is a post observed in the content channel
type ChannelPost struct {
	ChannelID int64
	MessageID int
	// HasMedia is set for video and document posts
	HasMedia bool
	Caption  string
	URLs     []string
}
