// Package deps contains interface definitions for the access domain dependencies
package deps

import (
	"context"

	"github.com/Conte777/GateFlow/internal/domain/access/entities"
)

// MembershipTransport is the part of the messaging transport the gate needs
type MembershipTransport interface {
	// GetMembership returns the user's status in the channel
	GetMembership(ctx context.Context, channelID, userID int64) (*entities.Membership, error)

	// ResolveJoinTarget returns a public or invite link for the channel
	ResolveJoinTarget(ctx context.Context, channelID int64) (*entities.JoinTarget, error)
}

// ChannelLister provides the ordered list of channels to check
type ChannelLister interface {
	ListRequired(ctx context.Context) []int64
}
