package dto

import "time"

// EventResponse represents an event in API responses
type EventResponse struct {
	ID           int64     `json:"id" example:"3"`
	CommunityID  int64     `json:"communityId" example:"2"`
	Title        string    `json:"title" example:"Board Game Night"`
	Location     string    `json:"location" example:"Community Hall"`
	PointsReward int       `json:"pointsReward" example:"15"`
	StartsAt     time.Time `json:"startsAt"`
	CreatedAt    time.Time `json:"createdAt"`
}

// EventListResponse is a paginated list of events
type EventListResponse struct {
	Events         []EventResponse `json:"events"`
	PaginationInfo PaginationInfo  `json:"pagination"`
}

// CreateEventRequest creates a new event through the administrative path
type CreateEventRequest struct {
	CommunityID  int64     `json:"communityId" binding:"required,gt=0"`
	Title        string    `json:"title" binding:"required,min=3,max=120"`
	Location     string    `json:"location" binding:"max=200"`
	PointsReward int       `json:"pointsReward" binding:"gte=0"`
	StartsAt     time.Time `json:"startsAt" binding:"required"`
}
