package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/seda/hobbyhive/internal/db"
)

// Querier is the subset of pgx operations shared by *pgxpool.Pool and
// pgx.Tx. Repositories are built on it so the same query code runs both
// standalone and inside a reconciler transaction.
type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repositories bundles all repository instances
type Repositories struct {
	UserRepository          *UserRepository
	CommunityRepository     *CommunityRepository
	EventRepository         *EventRepository
	ParticipationRepository *ParticipationRepository
	MembershipRepository    *MembershipRepository
	LedgerRepository        *LedgerRepository
}

// NewRepositories creates all repositories sharing one connection pool
func NewRepositories(pool *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:          NewUserRepository(pool),
		CommunityRepository:     NewCommunityRepository(pool),
		EventRepository:         NewEventRepository(pool),
		ParticipationRepository: NewParticipationRepository(pool),
		MembershipRepository:    NewMembershipRepository(pool),
		LedgerRepository:        NewLedgerRepository(pool),
	}
}

// NewReconcileStore wires the transactional reconcile surface on top of the
// shared database handle.
func NewReconcileStore(database *db.PostgresDB) ReconcileStore {
	return &participationStore{database: database}
}
