package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/seda/hobbyhive/internal/app/models"
	"github.com/seda/hobbyhive/internal/app/models/dto"
	"github.com/seda/hobbyhive/internal/app/repositories"
	"github.com/seda/hobbyhive/internal/pkg/apperrors"
	"github.com/seda/hobbyhive/internal/pkg/helpers"
)

// EventService defines the interface for event catalog operations
type EventService interface {
	GetAllEvents(ctx context.Context, communityID int64, page, size int) (*dto.EventListResponse, error)
	GetEventByID(ctx context.Context, id int64) (*dto.EventResponse, error)
	CreateEvent(ctx context.Context, req *dto.CreateEventRequest) (*dto.EventResponse, error)
}

// eventServiceImpl implements EventService
type eventServiceImpl struct {
	eventRepo     *repositories.EventRepository
	communityRepo *repositories.CommunityRepository
	logger        zerolog.Logger
}

// NewEventService creates a new EventService
func NewEventService(
	eventRepo *repositories.EventRepository,
	communityRepo *repositories.CommunityRepository,
	logger zerolog.Logger,
) EventService {
	return &eventServiceImpl{
		eventRepo:     eventRepo,
		communityRepo: communityRepo,
		logger:        logger,
	}
}

// GetAllEvents retrieves events with optional community filtering and pagination
func (s *eventServiceImpl) GetAllEvents(ctx context.Context, communityID int64, page, size int) (*dto.EventListResponse, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	events, total, err := s.eventRepo.GetAll(ctx, communityID, offset, limit)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to get events")
		return nil, fmt.Errorf("error getting events: %w", err)
	}

	response := &dto.EventListResponse{
		Events:         make([]dto.EventResponse, 0, len(events)),
		PaginationInfo: helpers.NewPaginationInfo(total, page, limit),
	}
	for _, event := range events {
		response.Events = append(response.Events, toEventResponse(event))
	}

	return response, nil
}

// GetEventByID retrieves a single event
func (s *eventServiceImpl) GetEventByID(ctx context.Context, id int64) (*dto.EventResponse, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("eventID", id).Msg("Failed to get event")
		return nil, fmt.Errorf("error getting event: %w", err)
	}
	if event == nil {
		return nil, apperrors.ErrEventNotFound
	}

	response := toEventResponse(event)
	return &response, nil
}

// CreateEvent creates a new event through the administrative path
func (s *eventServiceImpl) CreateEvent(ctx context.Context, req *dto.CreateEventRequest) (*dto.EventResponse, error) {
	community, err := s.communityRepo.GetByID(ctx, req.CommunityID)
	if err != nil {
		s.logger.Error().Err(err).Int64("communityID", req.CommunityID).Msg("Failed to get community")
		return nil, fmt.Errorf("error getting community: %w", err)
	}
	if community == nil {
		return nil, apperrors.ErrCommunityNotFound
	}

	event := &models.Event{
		CommunityID:  req.CommunityID,
		Title:        req.Title,
		Location:     req.Location,
		PointsReward: req.PointsReward,
		StartsAt:     req.StartsAt,
	}

	id, err := s.eventRepo.Create(ctx, event)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to create event")
		return nil, fmt.Errorf("error creating event: %w", err)
	}

	created, err := s.eventRepo.GetByID(ctx, id)
	if err != nil || created == nil {
		return nil, fmt.Errorf("error reading created event: %w", err)
	}

	s.logger.Info().Int64("eventID", id).Int64("communityID", req.CommunityID).Msg("Event created")

	response := toEventResponse(created)
	return &response, nil
}

func toEventResponse(event *models.Event) dto.EventResponse {
	return dto.EventResponse{
		ID:           event.ID,
		CommunityID:  event.CommunityID,
		Title:        event.Title,
		Location:     event.Location,
		PointsReward: event.PointsReward,
		StartsAt:     event.StartsAt,
		CreatedAt:    event.CreatedAt,
	}
}
