package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/seda/hobbyhive/internal/app/models"
	"github.com/seda/hobbyhive/internal/app/models/dto"
	"github.com/seda/hobbyhive/internal/app/repositories"
	"github.com/seda/hobbyhive/internal/pkg/apperrors"
	pkgauth "github.com/seda/hobbyhive/internal/pkg/auth"
)

// DefaultLeaderboardSize caps the leaderboard length
const DefaultLeaderboardSize = 20

// UserService defines the interface for user operations
type UserService interface {
	Register(ctx context.Context, req *dto.RegisterUserRequest) (*dto.UserResponse, error)
	GetProfile(ctx context.Context, id int64) (*dto.UserResponse, error)
	GetLedger(ctx context.Context, id int64) (*dto.LedgerResponse, error)
	GetLeaderboard(ctx context.Context, limit int) (*dto.LeaderboardResponse, error)
}

// userServiceImpl implements UserService
type userServiceImpl struct {
	userRepo   *repositories.UserRepository
	ledgerRepo *repositories.LedgerRepository
	logger     zerolog.Logger
}

// NewUserService creates a new UserService
func NewUserService(
	userRepo *repositories.UserRepository,
	ledgerRepo *repositories.LedgerRepository,
	logger zerolog.Logger,
) UserService {
	return &userServiceImpl{
		userRepo:   userRepo,
		ledgerRepo: ledgerRepo,
		logger:     logger,
	}
}

// Register creates a new player account. The password is optional; guests
// play with a nickname only.
func (s *userServiceImpl) Register(ctx context.Context, req *dto.RegisterUserRequest) (*dto.UserResponse, error) {
	user := &models.User{Nickname: req.Nickname}

	if req.Password != "" {
		hash, err := pkgauth.HashPassword(req.Password)
		if err != nil {
			s.logger.Error().Err(err).Msg("Failed to hash password")
			return nil, fmt.Errorf("error hashing password: %w", err)
		}
		user.PasswordHash = &hash
	}

	id, err := s.userRepo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, apperrors.ErrNicknameExists) {
			return nil, err
		}
		s.logger.Error().Err(err).Str("nickname", req.Nickname).Msg("Failed to create user")
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	created, err := s.userRepo.FindByID(ctx, id)
	if err != nil || created == nil {
		return nil, fmt.Errorf("error reading created user: %w", err)
	}

	s.logger.Info().Int64("userID", id).Str("nickname", req.Nickname).Msg("User registered")

	return &dto.UserResponse{
		ID:        created.ID,
		Nickname:  created.Nickname,
		Score:     0,
		CreatedAt: created.CreatedAt,
	}, nil
}

// GetProfile retrieves a user with their ledger-derived score
func (s *userServiceImpl) GetProfile(ctx context.Context, id int64) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("userID", id).Msg("Failed to get user")
		return nil, fmt.Errorf("error getting user: %w", err)
	}
	if user == nil {
		return nil, apperrors.ErrUserNotFound
	}

	score, err := s.ledgerRepo.ScoreByUser(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("userID", id).Msg("Failed to get score")
		return nil, fmt.Errorf("error getting score: %w", err)
	}

	return &dto.UserResponse{
		ID:        user.ID,
		Nickname:  user.Nickname,
		Score:     score,
		CreatedAt: user.CreatedAt,
	}, nil
}

// GetLedger retrieves a user's score history
func (s *userServiceImpl) GetLedger(ctx context.Context, id int64) (*dto.LedgerResponse, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("userID", id).Msg("Failed to get user")
		return nil, fmt.Errorf("error getting user: %w", err)
	}
	if user == nil {
		return nil, apperrors.ErrUserNotFound
	}

	entries, err := s.ledgerRepo.EntriesByUser(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("userID", id).Msg("Failed to get ledger entries")
		return nil, fmt.Errorf("error getting ledger entries: %w", err)
	}

	response := &dto.LedgerResponse{UserID: id, Entries: []dto.LedgerEntryResponse{}}
	for _, entry := range entries {
		response.Score += int64(entry.Delta)
		response.Entries = append(response.Entries, dto.LedgerEntryResponse{
			EventID:   entry.EventID,
			Direction: string(entry.Direction),
			Delta:     entry.Delta,
			CreatedAt: entry.CreatedAt,
		})
	}

	return response, nil
}

// GetLeaderboard retrieves the top scorers
func (s *userServiceImpl) GetLeaderboard(ctx context.Context, limit int) (*dto.LeaderboardResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = DefaultLeaderboardSize
	}

	rows, err := s.ledgerRepo.Leaderboard(ctx, limit)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to get leaderboard")
		return nil, fmt.Errorf("error getting leaderboard: %w", err)
	}

	response := &dto.LeaderboardResponse{Entries: []dto.LeaderboardEntry{}}
	for i, row := range rows {
		response.Entries = append(response.Entries, dto.LeaderboardEntry{
			Rank:     i + 1,
			UserID:   row.UserID,
			Nickname: row.Nickname,
			Score:    row.Score,
		})
	}

	return response, nil
}
