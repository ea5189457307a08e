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
	"github.com/seda/hobbyhive/internal/pkg/dberrors"
)

// EventReader resolves events for the reconciler
type EventReader interface {
	GetByID(ctx context.Context, id int64) (*models.Event, error)
}

// UserReader resolves users for the reconciler
type UserReader interface {
	FindByID(ctx context.Context, id int64) (*models.User, error)
}

// ParticipationReader serves the participation read path
type ParticipationReader interface {
	JoinedEventsByUser(ctx context.Context, userID int64) ([]*models.Participation, error)
}

// ParticipationService is the reconciler: it owns the join/leave sequence
// and keeps the derived membership set and the score ledger consistent
// with the participation records.
type ParticipationService interface {
	Join(ctx context.Context, userID, eventID int64) (int, error)
	Leave(ctx context.Context, userID, eventID int64) (int, error)
	GetJoinedEvents(ctx context.Context, userID int64) (*dto.JoinedEventListResponse, error)
}

// participationServiceImpl implements ParticipationService
type participationServiceImpl struct {
	store  repositories.ReconcileStore
	events EventReader
	users  UserReader
	reads  ParticipationReader
	logger zerolog.Logger
}

// NewParticipationService creates a new ParticipationService
func NewParticipationService(
	store repositories.ReconcileStore,
	events EventReader,
	users UserReader,
	reads ParticipationReader,
	logger zerolog.Logger,
) ParticipationService {
	return &participationServiceImpl{
		store:  store,
		events: events,
		users:  users,
		reads:  reads,
		logger: logger,
	}
}

// Join records the user's participation in the event, derives membership
// and credits the event's point reward, as one transaction. Joining an
// event twice is an idempotency guard (ErrAlreadyJoined) with no side
// effects; a lost insert race against a concurrent join degrades to the
// same outcome.
func (s *participationServiceImpl) Join(ctx context.Context, userID, eventID int64) (int, error) {
	s.logger.Debug().
		Int64("userID", userID).
		Int64("eventID", eventID).
		Msg("User joining event")

	if userID <= 0 || eventID <= 0 {
		return 0, apperrors.NewBadRequestError("user id and event id must be positive")
	}

	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		s.logger.Error().Err(err).Int64("eventID", eventID).Msg("Failed to get event")
		return 0, fmt.Errorf("error getting event: %w", err)
	}
	if event == nil {
		return 0, apperrors.ErrEventNotFound
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Int64("userID", userID).Msg("Failed to get user")
		return 0, fmt.Errorf("error checking user: %w", err)
	}
	if user == nil {
		return 0, apperrors.ErrUserNotFound
	}

	err = s.store.Reconcile(ctx, func(ctx context.Context, tx repositories.ReconcileTx) error {
		existing, err := tx.ParticipationForUpdate(ctx, userID, eventID)
		if err != nil {
			return fmt.Errorf("error reading participation: %w", err)
		}

		var cycle int
		switch {
		case existing.IsJoined():
			// Duplicate client retry, nothing to do
			return apperrors.ErrAlreadyJoined
		case existing != nil:
			cycle, err = tx.MarkJoined(ctx, userID, eventID)
			if err != nil {
				return fmt.Errorf("error rejoining event: %w", err)
			}
		default:
			cycle, err = tx.InsertJoined(ctx, userID, eventID)
			if err != nil {
				if dberrors.IsUniqueViolation(err) {
					// A concurrent join won the insert race; the unique
					// (user, event) constraint is the arbiter
					return apperrors.ErrAlreadyJoined
				}
				return fmt.Errorf("error inserting participation: %w", err)
			}
		}

		if err := tx.EnsureMembership(ctx, userID, event.CommunityID); err != nil {
			return fmt.Errorf("error ensuring membership: %w", err)
		}

		entry := &models.LedgerEntry{
			UserID:    userID,
			EventID:   eventID,
			Direction: models.LedgerCredit,
			Cycle:     cycle,
			Delta:     event.PointsReward,
		}
		if err := tx.AppendLedger(ctx, entry); err != nil {
			if dberrors.IsUniqueViolation(err) {
				// This cycle is already credited
				return apperrors.ErrAlreadyJoined
			}
			return fmt.Errorf("error crediting points: %w", err)
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrAlreadyJoined) {
			return 0, err
		}
		s.logger.Error().Err(err).
			Int64("userID", userID).
			Int64("eventID", eventID).
			Msg("Join reconcile failed")
		return 0, err
	}

	s.logger.Info().
		Int64("userID", userID).
		Int64("eventID", eventID).
		Int("points", event.PointsReward).
		Msg("User joined event")

	return event.PointsReward, nil
}

// Leave cancels the user's participation, re-derives membership and debits
// the event's point reward, as one transaction. Leaving an event the user
// never joined, or leaving twice, is an idempotency guard (ErrNotJoined)
// with no side effects.
func (s *participationServiceImpl) Leave(ctx context.Context, userID, eventID int64) (int, error) {
	s.logger.Debug().
		Int64("userID", userID).
		Int64("eventID", eventID).
		Msg("User leaving event")

	if userID <= 0 || eventID <= 0 {
		return 0, apperrors.NewBadRequestError("user id and event id must be positive")
	}

	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		s.logger.Error().Err(err).Int64("eventID", eventID).Msg("Failed to get event")
		return 0, fmt.Errorf("error getting event: %w", err)
	}
	if event == nil {
		return 0, apperrors.ErrEventNotFound
	}

	err = s.store.Reconcile(ctx, func(ctx context.Context, tx repositories.ReconcileTx) error {
		existing, err := tx.ParticipationForUpdate(ctx, userID, eventID)
		if err != nil {
			return fmt.Errorf("error reading participation: %w", err)
		}
		if !existing.IsJoined() {
			// No row, or already cancelled by an earlier call
			return apperrors.ErrNotJoined
		}

		if err := tx.MarkCancelled(ctx, userID, eventID); err != nil {
			return fmt.Errorf("error cancelling participation: %w", err)
		}

		// Membership is derived, not decremented: re-scan the whole
		// community so a user joined to several of its events keeps the
		// row until the last one is left
		remaining, err := tx.CountJoinedInCommunity(ctx, userID, event.CommunityID)
		if err != nil {
			return fmt.Errorf("error counting joined events: %w", err)
		}
		if remaining == 0 {
			if err := tx.RemoveMembership(ctx, userID, event.CommunityID); err != nil {
				return fmt.Errorf("error removing membership: %w", err)
			}
		}

		entry := &models.LedgerEntry{
			UserID:    userID,
			EventID:   eventID,
			Direction: models.LedgerDebit,
			Cycle:     existing.JoinCount,
			Delta:     -event.PointsReward,
		}
		if err := tx.AppendLedger(ctx, entry); err != nil {
			if dberrors.IsUniqueViolation(err) {
				// This cycle is already debited
				return apperrors.ErrNotJoined
			}
			return fmt.Errorf("error debiting points: %w", err)
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrNotJoined) {
			return 0, err
		}
		s.logger.Error().Err(err).
			Int64("userID", userID).
			Int64("eventID", eventID).
			Msg("Leave reconcile failed")
		return 0, err
	}

	s.logger.Info().
		Int64("userID", userID).
		Int64("eventID", eventID).
		Int("points", event.PointsReward).
		Msg("User left event")

	return event.PointsReward, nil
}

// GetJoinedEvents returns the user's currently joined events with event
// metadata. Pure read, no side effects.
func (s *participationServiceImpl) GetJoinedEvents(ctx context.Context, userID int64) (*dto.JoinedEventListResponse, error) {
	participations, err := s.reads.JoinedEventsByUser(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Int64("userID", userID).Msg("Failed to get joined events")
		return nil, fmt.Errorf("error getting joined events: %w", err)
	}

	response := &dto.JoinedEventListResponse{Events: []dto.JoinedEventResponse{}}
	for _, p := range participations {
		if p.Event == nil {
			continue
		}
		response.Events = append(response.Events, dto.JoinedEventResponse{
			EventID:      p.EventID,
			CommunityID:  p.Event.CommunityID,
			Title:        p.Event.Title,
			Location:     p.Event.Location,
			PointsReward: p.Event.PointsReward,
			StartsAt:     p.Event.StartsAt,
			JoinedAt:     p.UpdatedAt,
		})
	}

	return response, nil
}
