package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/seda/hobbyhive/internal/app/models"
)

// MembershipRepository handles database operations for the derived
// community membership rows. A row exists exactly while its user holds at
// least one JOINED participation in the community; the reconciler is the
// only writer.
type MembershipRepository struct {
	db Querier
}

// NewMembershipRepository creates a new MembershipRepository
func NewMembershipRepository(db Querier) *MembershipRepository {
	return &MembershipRepository{db: db}
}

// Ensure inserts the membership row if absent. Inserting when already
// present is not an error.
func (r *MembershipRepository) Ensure(ctx context.Context, userID, communityID int64) error {
	query := squirrel.Insert("community_memberships").
		Columns("user_id", "community_id").
		Values(userID, communityID).
		Suffix("ON CONFLICT (user_id, community_id) DO NOTHING").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error upserting membership: %w", err)
	}

	return nil
}

// Delete removes the membership row. Deleting an absent row is a no-op.
func (r *MembershipRepository) Delete(ctx context.Context, userID, communityID int64) error {
	query := squirrel.Delete("community_memberships").
		Where("user_id = ? AND community_id = ?", userID, communityID).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error deleting membership: %w", err)
	}

	return nil
}

// Exists checks whether a membership row is present for the pair
func (r *MembershipRepository) Exists(ctx context.Context, userID, communityID int64) (bool, error) {
	query := squirrel.Select("1").
		From("community_memberships").
		Where("user_id = ? AND community_id = ?", userID, communityID).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return false, fmt.Errorf("error building SQL: %w", err)
	}

	var exists int
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&exists); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("error executing query: %w", err)
	}

	return true, nil
}

// CommunitiesByUser retrieves the communities a user is currently a member
// of, with community metadata
func (r *MembershipRepository) CommunitiesByUser(ctx context.Context, userID int64) ([]*models.CommunityMembership, error) {
	query := squirrel.Select(
		"cm.id", "cm.user_id", "cm.community_id", "cm.created_at",
		"c.id", "c.name", "c.description", "c.created_at",
	).
		From("community_memberships cm").
		Join("communities c ON c.id = cm.community_id").
		Where("cm.user_id = ?", userID).
		OrderBy("c.name ASC").
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

	var memberships []*models.CommunityMembership
	for rows.Next() {
		var m models.CommunityMembership
		var c models.Community
		err := rows.Scan(
			&m.ID, &m.UserID, &m.CommunityID, &m.CreatedAt,
			&c.ID, &c.Name, &c.Description, &c.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		m.Community = &c
		memberships = append(memberships, &m)
	}

	return memberships, nil
}

// MemberCountsByCommunityIDs retrieves membership counts for multiple communities
func (r *MembershipRepository) MemberCountsByCommunityIDs(ctx context.Context, communityIDs []int64) (map[int64]int, error) {
	if len(communityIDs) == 0 {
		return make(map[int64]int), nil
	}

	query := squirrel.Select("community_id", "COUNT(*)").
		From("community_memberships").
		Where(squirrel.Eq{"community_id": communityIDs}).
		GroupBy("community_id").
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

	counts := make(map[int64]int)
	for rows.Next() {
		var communityID int64
		var count int
		if err := rows.Scan(&communityID, &count); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		counts[communityID] = count
	}

	return counts, nil
}

// MembershipKey identifies one (user, community) pair in audit queries
type MembershipKey struct {
	UserID      int64
	CommunityID int64
}

// MissingMemberships finds (user, community) pairs that have a JOINED
// participation but no membership row. Used by the reconciliation sweep.
func (r *MembershipRepository) MissingMemberships(ctx context.Context) ([]MembershipKey, error) {
	sql := `
	SELECT DISTINCT ep.user_id, e.community_id
	FROM event_participations ep
	JOIN events e ON e.id = ep.event_id
	WHERE ep.status = $1
	AND NOT EXISTS (
		SELECT 1 FROM community_memberships cm
		WHERE cm.user_id = ep.user_id AND cm.community_id = e.community_id
	)`

	return r.queryKeys(ctx, sql, models.ParticipationJoined)
}

// OrphanedMemberships finds membership rows whose user no longer has any
// JOINED participation in the community. Used by the reconciliation sweep.
func (r *MembershipRepository) OrphanedMemberships(ctx context.Context) ([]MembershipKey, error) {
	sql := `
	SELECT cm.user_id, cm.community_id
	FROM community_memberships cm
	WHERE NOT EXISTS (
		SELECT 1 FROM event_participations ep
		JOIN events e ON e.id = ep.event_id
		WHERE ep.user_id = cm.user_id
		AND e.community_id = cm.community_id
		AND ep.status = $1
	)`

	return r.queryKeys(ctx, sql, models.ParticipationJoined)
}

func (r *MembershipRepository) queryKeys(ctx context.Context, sql string, args ...any) ([]MembershipKey, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var keys []MembershipKey
	for rows.Next() {
		var key MembershipKey
		if err := rows.Scan(&key.UserID, &key.CommunityID); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		keys = append(keys, key)
	}

	return keys, nil
}
