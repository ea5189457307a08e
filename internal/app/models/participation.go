package models

import "time"

// ParticipationStatus is the status of a (user, event) participation row
type ParticipationStatus string

const (
	// ParticipationJoined means the user currently participates in the event
	ParticipationJoined ParticipationStatus = "JOINED"
	// ParticipationCancelled means the user joined once and has since left
	ParticipationCancelled ParticipationStatus = "CANCELLED"
)

// Participation represents one row per (user, event) pair. Rows are never
// deleted; leave/rejoin cycles flip the status on the same row. JoinCount
// counts how many times the row has entered JOINED and pins ledger entries
// to their join/leave cycle.
type Participation struct {
	ID        int64               `json:"id" db:"id"`
	UserID    int64               `json:"userId" db:"user_id"`
	EventID   int64               `json:"eventId" db:"event_id"`
	Status    ParticipationStatus `json:"status" db:"status"`
	JoinCount int                 `json:"joinCount" db:"join_count"`
	CreatedAt time.Time           `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time           `json:"updatedAt" db:"updated_at"`

	// Related entities
	Event *Event `json:"event,omitempty"`
}

// IsJoined reports whether the row is currently in the JOINED state
func (p *Participation) IsJoined() bool {
	return p != nil && p.Status == ParticipationJoined
}
