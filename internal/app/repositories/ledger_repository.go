package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/seda/hobbyhive/internal/app/models"
)

// LedgerRepository handles database operations for the append-only score
// ledger. Entries are immutable; a user's score is the sum of their deltas.
type LedgerRepository struct {
	db Querier
}

// NewLedgerRepository creates a new LedgerRepository
func NewLedgerRepository(db Querier) *LedgerRepository {
	return &LedgerRepository{db: db}
}

// Append inserts one ledger entry. The unique
// (user_id, event_id, direction, cycle) constraint rejects a duplicate
// booking for the same join/leave cycle; callers detect that via
// dberrors.IsUniqueViolation.
func (r *LedgerRepository) Append(ctx context.Context, entry *models.LedgerEntry) error {
	query := squirrel.Insert("score_ledger").
		Columns("user_id", "event_id", "direction", "cycle", "delta").
		Values(entry.UserID, entry.EventID, entry.Direction, entry.Cycle, entry.Delta).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error appending ledger entry: %w", err)
	}

	return nil
}

// ScoreByUser derives the user's score by summing their ledger deltas
func (r *LedgerRepository) ScoreByUser(ctx context.Context, userID int64) (int64, error) {
	query := squirrel.Select("COALESCE(SUM(delta), 0)").
		From("score_ledger").
		Where("user_id = ?", userID).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var score int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&score); err != nil {
		return 0, fmt.Errorf("error executing query: %w", err)
	}

	return score, nil
}

// EntriesByUser retrieves a user's ledger entries, newest first
func (r *LedgerRepository) EntriesByUser(ctx context.Context, userID int64) ([]*models.LedgerEntry, error) {
	query := squirrel.Select("id", "user_id", "event_id", "direction", "cycle", "delta", "created_at").
		From("score_ledger").
		Where("user_id = ?", userID).
		OrderBy("created_at DESC").
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

	var entries []*models.LedgerEntry
	for rows.Next() {
		var entry models.LedgerEntry
		err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.EventID,
			&entry.Direction,
			&entry.Cycle,
			&entry.Delta,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		entries = append(entries, &entry)
	}

	return entries, nil
}

// LeaderboardRow is one aggregated leaderboard entry
type LeaderboardRow struct {
	UserID   int64
	Nickname string
	Score    int64
}

// Leaderboard retrieves the top scorers by summed ledger delta
func (r *LedgerRepository) Leaderboard(ctx context.Context, limit int) ([]LeaderboardRow, error) {
	query := squirrel.Select("u.id", "u.nickname", "COALESCE(SUM(sl.delta), 0) AS score").
		From("users u").
		LeftJoin("score_ledger sl ON sl.user_id = u.id").
		GroupBy("u.id", "u.nickname").
		OrderBy("score DESC", "u.id ASC").
		Limit(uint64(limit)).
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

	var board []LeaderboardRow
	for rows.Next() {
		var row LeaderboardRow
		if err := rows.Scan(&row.UserID, &row.Nickname, &row.Score); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		board = append(board, row)
	}

	return board, nil
}
