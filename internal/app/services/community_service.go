package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/seda/hobbyhive/internal/app/models/dto"
	"github.com/seda/hobbyhive/internal/app/repositories"
	"github.com/seda/hobbyhive/internal/pkg/apperrors"
	"github.com/seda/hobbyhive/internal/pkg/helpers"
)

// CommunityService defines the interface for community operations
type CommunityService interface {
	GetAllCommunities(ctx context.Context, page, size int) (*dto.CommunityListResponse, error)
	GetCommunityByID(ctx context.Context, id int64) (*dto.CommunityResponse, error)
	GetUserCommunities(ctx context.Context, userID int64) (*dto.UserCommunitiesResponse, error)
}

// communityServiceImpl implements CommunityService
type communityServiceImpl struct {
	communityRepo  *repositories.CommunityRepository
	membershipRepo *repositories.MembershipRepository
	userRepo       *repositories.UserRepository
	logger         zerolog.Logger
}

// NewCommunityService creates a new CommunityService
func NewCommunityService(
	communityRepo *repositories.CommunityRepository,
	membershipRepo *repositories.MembershipRepository,
	userRepo *repositories.UserRepository,
	logger zerolog.Logger,
) CommunityService {
	return &communityServiceImpl{
		communityRepo:  communityRepo,
		membershipRepo: membershipRepo,
		userRepo:       userRepo,
		logger:         logger,
	}
}

// GetAllCommunities retrieves communities with member counts and pagination
func (s *communityServiceImpl) GetAllCommunities(ctx context.Context, page, size int) (*dto.CommunityListResponse, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	communities, total, err := s.communityRepo.GetAll(ctx, offset, limit)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to get communities")
		return nil, fmt.Errorf("error getting communities: %w", err)
	}

	ids := make([]int64, 0, len(communities))
	for _, community := range communities {
		ids = append(ids, community.ID)
	}

	counts, err := s.membershipRepo.MemberCountsByCommunityIDs(ctx, ids)
	if err != nil {
		// Member counts are display-only, degrade to zero
		s.logger.Error().Err(err).Msg("Failed to get member counts")
		counts = map[int64]int{}
	}

	response := &dto.CommunityListResponse{
		Communities:    make([]dto.CommunityResponse, 0, len(communities)),
		PaginationInfo: helpers.NewPaginationInfo(total, page, limit),
	}
	for _, community := range communities {
		response.Communities = append(response.Communities, dto.CommunityResponse{
			ID:          community.ID,
			Name:        community.Name,
			Description: community.Description,
			MemberCount: counts[community.ID],
			CreatedAt:   community.CreatedAt,
		})
	}

	return response, nil
}

// GetCommunityByID retrieves a single community with its member count
func (s *communityServiceImpl) GetCommunityByID(ctx context.Context, id int64) (*dto.CommunityResponse, error) {
	community, err := s.communityRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("communityID", id).Msg("Failed to get community")
		return nil, fmt.Errorf("error getting community: %w", err)
	}
	if community == nil {
		return nil, apperrors.ErrCommunityNotFound
	}

	counts, err := s.membershipRepo.MemberCountsByCommunityIDs(ctx, []int64{id})
	if err != nil {
		s.logger.Error().Err(err).Int64("communityID", id).Msg("Failed to get member count")
		counts = map[int64]int{}
	}

	return &dto.CommunityResponse{
		ID:          community.ID,
		Name:        community.Name,
		Description: community.Description,
		MemberCount: counts[id],
		CreatedAt:   community.CreatedAt,
	}, nil
}

// GetUserCommunities returns the communities the user is currently a
// member of. Membership is the derived set maintained by the reconciler;
// this is a pure read used to render "My Communities".
func (s *communityServiceImpl) GetUserCommunities(ctx context.Context, userID int64) (*dto.UserCommunitiesResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Int64("userID", userID).Msg("Failed to get user")
		return nil, fmt.Errorf("error checking user: %w", err)
	}
	if user == nil {
		return nil, apperrors.ErrUserNotFound
	}

	memberships, err := s.membershipRepo.CommunitiesByUser(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Int64("userID", userID).Msg("Failed to get memberships")
		return nil, fmt.Errorf("error getting memberships: %w", err)
	}

	response := &dto.UserCommunitiesResponse{Communities: []dto.UserCommunityResponse{}}
	for _, m := range memberships {
		if m.Community == nil {
			continue
		}
		response.Communities = append(response.Communities, dto.UserCommunityResponse{
			CommunityID: m.CommunityID,
			Name:        m.Community.Name,
			MemberSince: m.CreatedAt,
		})
	}

	return response, nil
}
