package dto

import "time"

// ParticipationRequest is the body of the join and leave endpoints.
// The user id is client-supplied; a session token, when present, must
// agree with it.
type ParticipationRequest struct {
	UserID  int64 `json:"user_id" binding:"required,gt=0" example:"7"`
	EventID int64 `json:"event_id" binding:"required,gt=0" example:"3"`
}

// JoinResponse is the wire response of a successful join
type JoinResponse struct {
	Success      bool   `json:"success" example:"true"`
	Message      string `json:"message" example:"Joined event successfully"`
	PointsEarned int    `json:"points_earned" example:"15"`
}

// LeaveResponse is the wire response of a successful leave
type LeaveResponse struct {
	Success        bool   `json:"success" example:"true"`
	Message        string `json:"message" example:"Left event successfully"`
	PointsDeducted int    `json:"points_deducted" example:"15"`
}

// JoinedEventResponse is one currently joined event with its metadata
type JoinedEventResponse struct {
	EventID      int64     `json:"eventId" example:"3"`
	CommunityID  int64     `json:"communityId" example:"2"`
	Title        string    `json:"title" example:"Board Game Night"`
	Location     string    `json:"location" example:"Community Hall"`
	PointsReward int       `json:"pointsReward" example:"15"`
	StartsAt     time.Time `json:"startsAt"`
	JoinedAt     time.Time `json:"joinedAt"`
}

// JoinedEventListResponse is the participation query response
type JoinedEventListResponse struct {
	Events []JoinedEventResponse `json:"events"`
}
