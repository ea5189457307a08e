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

// UserRepository handles database operations for users
type UserRepository struct {
	db Querier
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db Querier) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user and returns its id
func (r *UserRepository) Create(ctx context.Context, user *models.User) (int64, error) {
	query := squirrel.Insert("users").
		Columns("nickname", "password_hash").
		Values(user.Nickname, user.PasswordHash).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "users_nickname_key") {
			return 0, apperrors.ErrNicknameExists
		}
		return 0, fmt.Errorf("error executing query: %w", err)
	}

	return id, nil
}

// FindByID retrieves a user by id, or nil when it does not exist
func (r *UserRepository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	query := squirrel.Select("id", "nickname", "password_hash", "created_at").
		From("users").
		Where("id = ?", id).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	var user models.User
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&user.ID,
		&user.Nickname,
		&user.PasswordHash,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return &user, nil
}

// FindByNickname retrieves a user by nickname, or nil when it does not exist
func (r *UserRepository) FindByNickname(ctx context.Context, nickname string) (*models.User, error) {
	query := squirrel.Select("id", "nickname", "password_hash", "created_at").
		From("users").
		Where("nickname = ?", nickname).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	var user models.User
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&user.ID,
		&user.Nickname,
		&user.PasswordHash,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return &user, nil
}
