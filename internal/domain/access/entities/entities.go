// Package entities contains access gate entities
package entities

// MemberStatus is the membership status reported by the platform
type MemberStatus string

const (
	StatusCreator       MemberStatus = "creator"
	StatusAdministrator MemberStatus = "administrator"
	StatusMember        MemberStatus = "member"
	StatusRestricted    MemberStatus = "restricted"
	StatusLeft          MemberStatus = "left"
	StatusKicked        MemberStatus = "kicked"
)

// Membership describes a user's standing in one channel
type Membership struct {
	Status MemberStatus
	// IsMember is only meaningful for restricted users
	IsMember bool
}

// Joined reports whether the membership satisfies the gate
func (m *Membership) Joined() bool {
	if m == nil {
		return false
	}
	switch m.Status {
	case StatusCreator, StatusAdministrator, StatusMember:
		return true
	case StatusRestricted:
		return m.IsMember
	default:
		return false
	}
}

// Decision is the outcome of a gate check
type Decision struct {
	Allowed bool
	// Unjoined lists channels the user is confirmed not to be a member of
	Unjoined []int64
	// Excused lists channels skipped because the bot could not inspect them
	Excused []int64
}

// JoinTarget is a link a user can follow to join a channel
type JoinTarget struct {
	ChannelID int64
	Title     string
	URL       string
}

// Prompt asks the user to join the listed channels and then re-check
type Prompt struct {
	Targets   []JoinTarget
	ContentID string
	// Omitted lists channels for which no join link could be resolved
	Omitted []int64
}
