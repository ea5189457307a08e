package models

import "time"

// Event represents a scheduled community event
type Event struct {
	ID           int64     `json:"id" db:"id"`
	CommunityID  int64     `json:"communityId" db:"community_id"`
	Title        string    `json:"title" db:"title"`
	Location     string    `json:"location" db:"location"`
	PointsReward int       `json:"pointsReward" db:"points_reward"`
	StartsAt     time.Time `json:"startsAt" db:"starts_at"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`

	// Related entities
	Community *Community `json:"community,omitempty"`
}
