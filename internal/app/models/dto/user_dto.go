package dto

import "time"

// RegisterUserRequest creates a new player account. The password is
// optional: quiz players can stay nickname-only guests.
type RegisterUserRequest struct {
	Nickname string `json:"nickname" binding:"required,min=2,max=40,nickname"`
	Password string `json:"password" binding:"omitempty,min=8,max=72"`
}

// UserResponse represents a user profile with the derived score
type UserResponse struct {
	ID        int64     `json:"id" example:"7"`
	Nickname  string    `json:"nickname" example:"quizfox"`
	Score     int64     `json:"score" example:"25"`
	CreatedAt time.Time `json:"createdAt"`
}

// LedgerEntryResponse is one score ledger entry
type LedgerEntryResponse struct {
	EventID   int64     `json:"eventId" example:"3"`
	Direction string    `json:"direction" example:"CREDIT"`
	Delta     int       `json:"delta" example:"15"`
	CreatedAt time.Time `json:"createdAt"`
}

// LedgerResponse is the user's score history
type LedgerResponse struct {
	UserID  int64                 `json:"userId" example:"7"`
	Score   int64                 `json:"score" example:"25"`
	Entries []LedgerEntryResponse `json:"entries"`
}

// LeaderboardEntry is one row of the score leaderboard
type LeaderboardEntry struct {
	Rank     int    `json:"rank" example:"1"`
	UserID   int64  `json:"userId" example:"7"`
	Nickname string `json:"nickname" example:"quizfox"`
	Score    int64  `json:"score" example:"25"`
}

// LeaderboardResponse is the leaderboard query response
type LeaderboardResponse struct {
	Entries []LeaderboardEntry `json:"entries"`
}
