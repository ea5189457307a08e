package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/seda/hobbyhive/internal/app/models"
)

// ParticipationRepository handles database operations for the one-row-per-
// (user, event) participation records. Rows are never deleted: join/leave
// cycles only flip the status column.
type ParticipationRepository struct {
	db Querier
}

// NewParticipationRepository creates a new ParticipationRepository
func NewParticipationRepository(db Querier) *ParticipationRepository {
	return &ParticipationRepository{db: db}
}

// participationColumns are the scan targets shared by the lookup queries
const participationColumns = "id, user_id, event_id, status, join_count, created_at, updated_at"

func scanParticipation(row pgx.Row) (*models.Participation, error) {
	var p models.Participation
	err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.EventID,
		&p.Status,
		&p.JoinCount,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error scanning participation: %w", err)
	}
	return &p, nil
}

// Get retrieves the participation row for a (user, event) pair, or nil
func (r *ParticipationRepository) Get(ctx context.Context, userID, eventID int64) (*models.Participation, error) {
	sql := fmt.Sprintf("SELECT %s FROM event_participations WHERE user_id = $1 AND event_id = $2", participationColumns)
	return scanParticipation(r.db.QueryRow(ctx, sql, userID, eventID))
}

// GetForUpdate retrieves the participation row with a row lock. Concurrent
// reconcile calls for the same pair serialize here.
func (r *ParticipationRepository) GetForUpdate(ctx context.Context, userID, eventID int64) (*models.Participation, error) {
	sql := fmt.Sprintf("SELECT %s FROM event_participations WHERE user_id = $1 AND event_id = $2 FOR UPDATE", participationColumns)
	return scanParticipation(r.db.QueryRow(ctx, sql, userID, eventID))
}

// InsertJoined creates the first JOINED row for a pair and returns its join
// cycle (always 1). A unique violation on the pair means a concurrent join
// won the race; callers degrade that to an already-joined outcome.
func (r *ParticipationRepository) InsertJoined(ctx context.Context, userID, eventID int64) (int, error) {
	query := squirrel.Insert("event_participations").
		Columns("user_id", "event_id", "status", "join_count").
		Values(userID, eventID, models.ParticipationJoined, 1).
		Suffix("RETURNING join_count").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var cycle int
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&cycle); err != nil {
		return 0, fmt.Errorf("error inserting participation: %w", err)
	}

	return cycle, nil
}

// MarkJoined flips a CANCELLED row back to JOINED, starts a new join cycle
// and returns it
func (r *ParticipationRepository) MarkJoined(ctx context.Context, userID, eventID int64) (int, error) {
	query := squirrel.Update("event_participations").
		Set("status", models.ParticipationJoined).
		Set("join_count", squirrel.Expr("join_count + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where("user_id = ? AND event_id = ?", userID, eventID).
		Suffix("RETURNING join_count").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var cycle int
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&cycle); err != nil {
		return 0, fmt.Errorf("error updating participation: %w", err)
	}

	return cycle, nil
}

// MarkCancelled flips a JOINED row to CANCELLED
func (r *ParticipationRepository) MarkCancelled(ctx context.Context, userID, eventID int64) error {
	query := squirrel.Update("event_participations").
		Set("status", models.ParticipationCancelled).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where("user_id = ? AND event_id = ?", userID, eventID).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating participation: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("no rows affected")
	}

	return nil
}

// CountJoinedInCommunity counts the user's JOINED participations across all
// events of a community. The membership derivation re-scans through here
// instead of keeping a counter.
func (r *ParticipationRepository) CountJoinedInCommunity(ctx context.Context, userID, communityID int64) (int, error) {
	query := squirrel.Select("COUNT(*)").
		From("event_participations ep").
		Join("events e ON e.id = ep.event_id").
		Where("ep.user_id = ? AND e.community_id = ? AND ep.status = ?",
			userID, communityID, models.ParticipationJoined).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var count int
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("error executing query: %w", err)
	}

	return count, nil
}

// JoinedEventsByUser retrieves all JOINED participations of a user together
// with event metadata for display
func (r *ParticipationRepository) JoinedEventsByUser(ctx context.Context, userID int64) ([]*models.Participation, error) {
	query := squirrel.Select(
		"ep.id", "ep.user_id", "ep.event_id", "ep.status", "ep.join_count",
		"ep.created_at", "ep.updated_at",
		"e.id", "e.community_id", "e.title", "e.location", "e.points_reward",
		"e.starts_at", "e.created_at",
	).
		From("event_participations ep").
		Join("events e ON e.id = ep.event_id").
		Where("ep.user_id = ? AND ep.status = ?", userID, models.ParticipationJoined).
		OrderBy("e.starts_at ASC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var participations []*models.Participation
	for rows.Next() {
		var p models.Participation
		var e models.Event
		err := rows.Scan(
			&p.ID, &p.UserID, &p.EventID, &p.Status, &p.JoinCount,
			&p.CreatedAt, &p.UpdatedAt,
			&e.ID, &e.CommunityID, &e.Title, &e.Location, &e.PointsReward,
			&e.StartsAt, &e.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		p.Event = &e
		participations = append(participations, &p)
	}

	return participations, nil
}
