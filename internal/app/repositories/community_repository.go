package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/seda/hobbyhive/internal/app/models"
	"github.com/seda/hobbyhive/internal/pkg/apperrors"
	"github.com/seda/hobbyhive/internal/pkg/dberrors"
)

// CommunityRepository handles database operations for communities
type CommunityRepository struct {
	db Querier
}

// NewCommunityRepository creates a new CommunityRepository
func NewCommunityRepository(db Querier) *CommunityRepository {
	return &CommunityRepository{db: db}
}

// GetByID retrieves a single community, or nil when it does not exist
func (r *CommunityRepository) GetByID(ctx context.Context, id int64) (*models.Community, error) {
	query := squirrel.Select("id", "name", "description", "created_at").
		From("communities").
		Where("id = ?", id).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	var community models.Community
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&community.ID,
		&community.Name,
		&community.Description,
		&community.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return &community, nil
}

// GetByName retrieves a community by its unique name, or nil when it does not exist
func (r *CommunityRepository) GetByName(ctx context.Context, name string) (*models.Community, error) {
	query := squirrel.Select("id", "name", "description", "created_at").
		From("communities").
		Where("name = ?", name).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	var community models.Community
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&community.ID,
		&community.Name,
		&community.Description,
		&community.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return &community, nil
}

// Create inserts a new community and returns its id
func (r *CommunityRepository) Create(ctx context.Context, community *models.Community) (int64, error) {
	query := squirrel.Insert("communities").
		Columns("name", "description").
		Values(community.Name, community.Description).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "communities_name_key") {
			return 0, apperrors.ErrConflict
		}
		return 0, fmt.Errorf("error executing query: %w", err)
	}

	return id, nil
}

// GetAll retrieves communities with pagination
func (r *CommunityRepository) GetAll(ctx context.Context, offset uint64, limit int) ([]*models.Community, int64, error) {
	query := squirrel.Select("id", "name", "description", "created_at").
		From("communities").
		OrderBy("name ASC").
		Offset(offset).
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var communities []*models.Community
	for rows.Next() {
		var community models.Community
		err := rows.Scan(
			&community.ID,
			&community.Name,
			&community.Description,
			&community.CreatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning row: %w", err)
		}
		communities = append(communities, &community)
	}

	var total int64
	countSQL, countArgs, err := squirrel.Select("COUNT(*)").
		From("communities").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building count SQL: %w", err)
	}
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error executing count query: %w", err)
	}

	return communities, total, nil
}
