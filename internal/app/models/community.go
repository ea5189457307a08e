package models

import "time"

// Community represents a hobby community that events belong to
type Community struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`

	// Related entities
	Events      []*Event `json:"events,omitempty"`
	MemberCount int      `json:"memberCount,omitempty"`
}

// CommunityMembership represents the derived "user is currently a member"
// row for a (user, community) pair. Existence-only: the row is present
// exactly while the user holds at least one joined event in the community.
type CommunityMembership struct {
	ID          int64     `json:"id" db:"id"`
	UserID      int64     `json:"userId" db:"user_id"`
	CommunityID int64     `json:"communityId" db:"community_id"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`

	// Related entities
	Community *Community `json:"community,omitempty"`
}
