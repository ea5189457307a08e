package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/seda/hobbyhive/internal/app/models"
)

// EventRepository handles database operations for the event catalog
type EventRepository struct {
	db Querier
}

// NewEventRepository creates a new EventRepository
func NewEventRepository(db Querier) *EventRepository {
	return &EventRepository{db: db}
}

// GetByID retrieves a single event, or nil when it does not exist
func (r *EventRepository) GetByID(ctx context.Context, id int64) (*models.Event, error) {
	query := squirrel.Select(
		"id", "community_id", "title", "location", "points_reward", "starts_at", "created_at",
	).
		From("events").
		Where("id = ?", id).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	var event models.Event
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&event.ID,
		&event.CommunityID,
		&event.Title,
		&event.Location,
		&event.PointsReward,
		&event.StartsAt,
		&event.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return &event, nil
}

// GetAll retrieves events ordered by start time with pagination
func (r *EventRepository) GetAll(ctx context.Context, communityID int64, offset uint64, limit int) ([]*models.Event, int64, error) {
	base := squirrel.Select(
		"id", "community_id", "title", "location", "points_reward", "starts_at", "created_at",
	).
		From("events").
		OrderBy("starts_at ASC").
		Offset(offset).
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar)

	countQuery := squirrel.Select("COUNT(*)").
		From("events").
		PlaceholderFormat(squirrel.Dollar)

	if communityID > 0 {
		base = base.Where("community_id = ?", communityID)
		countQuery = countQuery.Where("community_id = ?", communityID)
	}

	sql, args, err := base.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var events []*models.Event
	for rows.Next() {
		var event models.Event
		err := rows.Scan(
			&event.ID,
			&event.CommunityID,
			&event.Title,
			&event.Location,
			&event.PointsReward,
			&event.StartsAt,
			&event.CreatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning row: %w", err)
		}
		events = append(events, &event)
	}

	countSQL, countArgs, err := countQuery.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building count SQL: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error executing count query: %w", err)
	}

	return events, total, nil
}

// Create inserts a new event and returns its id
func (r *EventRepository) Create(ctx context.Context, event *models.Event) (int64, error) {
	query := squirrel.Insert("events").
		Columns("community_id", "title", "location", "points_reward", "starts_at").
		Values(event.CommunityID, event.Title, event.Location, event.PointsReward, event.StartsAt).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("error executing query: %w", err)
	}

	return id, nil
}
