package dto

// SessionRequest asks for a session token for an existing user
type SessionRequest struct {
	UserID   int64  `json:"user_id" binding:"required,gt=0" example:"7"`
	Password string `json:"password" binding:"omitempty,max=72"`
}

// SessionResponse carries the issued session token
type SessionResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expiresIn" example:"86400"`
}
