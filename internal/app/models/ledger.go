package models

import "time"

// LedgerDirection marks a score ledger entry as a credit or a debit
type LedgerDirection string

const (
	// LedgerCredit is points awarded on join
	LedgerCredit LedgerDirection = "CREDIT"
	// LedgerDebit is points taken back on leave
	LedgerDebit LedgerDirection = "DEBIT"
)

// LedgerEntry is one immutable row in the append-only score ledger.
// Delta is signed (positive for credits, negative for debits); a user's
// score is the sum of their deltas. The (user, event, direction, cycle)
// tuple is unique, so a replayed request cannot double-book a cycle while
// a genuine rejoin (new cycle) still credits.
type LedgerEntry struct {
	ID        int64           `json:"id" db:"id"`
	UserID    int64           `json:"userId" db:"user_id"`
	EventID   int64           `json:"eventId" db:"event_id"`
	Direction LedgerDirection `json:"direction" db:"direction"`
	Cycle     int             `json:"cycle" db:"cycle"`
	Delta     int             `json:"delta" db:"delta"`
	CreatedAt time.Time       `json:"createdAt" db:"created_at"`
}
