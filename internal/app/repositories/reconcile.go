package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/seda/hobbyhive/internal/app/models"
	"github.com/seda/hobbyhive/internal/db"
)

// ReconcileTx is the storage surface available to one reconcile unit of
// work. All of its calls run on the same database transaction, so the
// participation flip, the membership derivation and the ledger append
// commit or roll back together.
type ReconcileTx interface {
	// ParticipationForUpdate reads the (user, event) row with a row lock,
	// or nil when no row exists yet
	ParticipationForUpdate(ctx context.Context, userID, eventID int64) (*models.Participation, error)
	// InsertJoined creates the first JOINED row and returns its cycle
	InsertJoined(ctx context.Context, userID, eventID int64) (int, error)
	// MarkJoined flips a CANCELLED row to JOINED and returns the new cycle
	MarkJoined(ctx context.Context, userID, eventID int64) (int, error)
	// MarkCancelled flips a JOINED row to CANCELLED
	MarkCancelled(ctx context.Context, userID, eventID int64) error
	// EnsureMembership inserts the membership row if absent
	EnsureMembership(ctx context.Context, userID, communityID int64) error
	// RemoveMembership deletes the membership row
	RemoveMembership(ctx context.Context, userID, communityID int64) error
	// CountJoinedInCommunity re-scans the user's JOINED participations
	// across all events of the community
	CountJoinedInCommunity(ctx context.Context, userID, communityID int64) (int, error)
	// AppendLedger books one score delta for the cycle
	AppendLedger(ctx context.Context, entry *models.LedgerEntry) error
}

// ReconcileStore runs reconcile units of work atomically
type ReconcileStore interface {
	Reconcile(ctx context.Context, fn func(ctx context.Context, tx ReconcileTx) error) error
}

// participationStore is the PostgreSQL ReconcileStore
type participationStore struct {
	database *db.PostgresDB
}

// Reconcile opens a transaction and hands fn a tx-bound storage surface
func (s *participationStore) Reconcile(ctx context.Context, fn func(ctx context.Context, tx ReconcileTx) error) error {
	return s.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		return fn(ctx, &reconcileTx{
			participations: NewParticipationRepository(tx),
			memberships:    NewMembershipRepository(tx),
			ledger:         NewLedgerRepository(tx),
		})
	})
}

// reconcileTx adapts the tx-bound repositories to the ReconcileTx surface
type reconcileTx struct {
	participations *ParticipationRepository
	memberships    *MembershipRepository
	ledger         *LedgerRepository
}

func (t *reconcileTx) ParticipationForUpdate(ctx context.Context, userID, eventID int64) (*models.Participation, error) {
	return t.participations.GetForUpdate(ctx, userID, eventID)
}

func (t *reconcileTx) InsertJoined(ctx context.Context, userID, eventID int64) (int, error) {
	return t.participations.InsertJoined(ctx, userID, eventID)
}

func (t *reconcileTx) MarkJoined(ctx context.Context, userID, eventID int64) (int, error) {
	return t.participations.MarkJoined(ctx, userID, eventID)
}

func (t *reconcileTx) MarkCancelled(ctx context.Context, userID, eventID int64) error {
	return t.participations.MarkCancelled(ctx, userID, eventID)
}

func (t *reconcileTx) EnsureMembership(ctx context.Context, userID, communityID int64) error {
	return t.memberships.Ensure(ctx, userID, communityID)
}

func (t *reconcileTx) RemoveMembership(ctx context.Context, userID, communityID int64) error {
	return t.memberships.Delete(ctx, userID, communityID)
}

func (t *reconcileTx) CountJoinedInCommunity(ctx context.Context, userID, communityID int64) (int, error) {
	return t.participations.CountJoinedInCommunity(ctx, userID, communityID)
}

func (t *reconcileTx) AppendLedger(ctx context.Context, entry *models.LedgerEntry) error {
	return t.ledger.Append(ctx, entry)
}
