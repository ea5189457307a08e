package dto

import "time"

// CommunityResponse represents a community in API responses
type CommunityResponse struct {
	ID          int64     `json:"id" example:"2"`
	Name        string    `json:"name" example:"Tabletop Guild"`
	Description string    `json:"description" example:"Board games and pen-and-paper evenings"`
	MemberCount int       `json:"memberCount" example:"12"`
	CreatedAt   time.Time `json:"createdAt"`
}

// CommunityListResponse is a paginated list of communities
type CommunityListResponse struct {
	Communities    []CommunityResponse `json:"communities"`
	PaginationInfo PaginationInfo      `json:"pagination"`
}

// UserCommunityResponse is one community the user is currently a member of
type UserCommunityResponse struct {
	CommunityID int64     `json:"communityId" example:"2"`
	Name        string    `json:"name" example:"Tabletop Guild"`
	MemberSince time.Time `json:"memberSince"`
}

// UserCommunitiesResponse is the membership query response
type UserCommunitiesResponse struct {
	Communities []UserCommunityResponse `json:"communities"`
}
