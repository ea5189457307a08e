package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/seda/hobbyhive/internal/app/models/dto"
	"github.com/seda/hobbyhive/internal/app/repositories"
	"github.com/seda/hobbyhive/internal/pkg/apperrors"
	pkgauth "github.com/seda/hobbyhive/internal/pkg/auth"
)

// AuthService issues session tokens. The UI keeps the token in local
// storage and reconstructs the session on every screen.
type AuthService interface {
	CreateSession(ctx context.Context, req *dto.SessionRequest) (*dto.SessionResponse, error)
}

// authServiceImpl implements AuthService
type authServiceImpl struct {
	userRepo   *repositories.UserRepository
	jwtService *pkgauth.JWTService
	logger     zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo *repositories.UserRepository,
	jwtService *pkgauth.JWTService,
	logger zerolog.Logger,
) AuthService {
	return &authServiceImpl{
		userRepo:   userRepo,
		jwtService: jwtService,
		logger:     logger,
	}
}

// CreateSession validates the user and issues a signed session token.
// Accounts registered with a password require it; guest accounts don't.
func (s *authServiceImpl) CreateSession(ctx context.Context, req *dto.SessionRequest) (*dto.SessionResponse, error) {
	user, err := s.userRepo.FindByID(ctx, req.UserID)
	if err != nil {
		s.logger.Error().Err(err).Int64("userID", req.UserID).Msg("Failed to get user")
		return nil, fmt.Errorf("error getting user: %w", err)
	}
	if user == nil {
		return nil, apperrors.ErrUserNotFound
	}

	if user.PasswordHash != nil {
		if !pkgauth.CheckPassword(*user.PasswordHash, req.Password) {
			return nil, apperrors.ErrInvalidCredentials
		}
	}

	token, expiresIn, err := s.jwtService.GenerateSessionToken(user)
	if err != nil {
		s.logger.Error().Err(err).Int64("userID", req.UserID).Msg("Failed to generate session token")
		return nil, fmt.Errorf("error generating session token: %w", err)
	}

	s.logger.Info().Int64("userID", req.UserID).Msg("Session created")

	return &dto.SessionResponse{Token: token, ExpiresIn: expiresIn}, nil
}
