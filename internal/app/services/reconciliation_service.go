package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/seda/hobbyhive/internal/app/repositories"
)

// MembershipAuditor exposes the audit queries and repairs the sweep needs
type MembershipAuditor interface {
	MissingMemberships(ctx context.Context) ([]repositories.MembershipKey, error)
	OrphanedMemberships(ctx context.Context) ([]repositories.MembershipKey, error)
	Ensure(ctx context.Context, userID, communityID int64) error
	Delete(ctx context.Context, userID, communityID int64) error
}

// ReconciliationService periodically re-derives the membership set from
// the participation records. The write path already keeps the two in sync
// transactionally; the sweep exists to absorb drift introduced outside the
// API and to surface it as reconciliation debt in the logs.
type ReconciliationService struct {
	auditor  MembershipAuditor
	interval time.Duration
	logger   zerolog.Logger
}

// NewReconciliationService creates a new ReconciliationService
func NewReconciliationService(auditor MembershipAuditor, interval time.Duration, logger zerolog.Logger) *ReconciliationService {
	return &ReconciliationService{
		auditor:  auditor,
		interval: interval,
		logger:   logger,
	}
}

// Run sweeps on the configured interval until the context is cancelled
func (s *ReconciliationService) Run(ctx context.Context) {
	s.logger.Info().Dur("interval", s.interval).Msg("Starting membership reconciliation sweep")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("Membership reconciliation sweep stopped")
			return
		case <-ticker.C:
			if err := s.SweepOnce(ctx); err != nil {
				s.logger.Error().Err(err).Msg("Membership reconciliation sweep failed")
			}
		}
	}
}

// SweepOnce re-derives membership once: inserts rows owed by JOINED
// participations and deletes rows with no JOINED participation left.
// Every repair is logged as reconciliation debt.
func (s *ReconciliationService) SweepOnce(ctx context.Context) error {
	missing, err := s.auditor.MissingMemberships(ctx)
	if err != nil {
		return fmt.Errorf("error finding missing memberships: %w", err)
	}
	for _, key := range missing {
		if err := s.auditor.Ensure(ctx, key.UserID, key.CommunityID); err != nil {
			return fmt.Errorf("error repairing missing membership: %w", err)
		}
		s.logger.Warn().
			Int64("userID", key.UserID).
			Int64("communityID", key.CommunityID).
			Msg("Reconciliation debt: membership row was missing, inserted")
	}

	orphaned, err := s.auditor.OrphanedMemberships(ctx)
	if err != nil {
		return fmt.Errorf("error finding orphaned memberships: %w", err)
	}
	for _, key := range orphaned {
		if err := s.auditor.Delete(ctx, key.UserID, key.CommunityID); err != nil {
			return fmt.Errorf("error repairing orphaned membership: %w", err)
		}
		s.logger.Warn().
			Int64("userID", key.UserID).
			Int64("communityID", key.CommunityID).
			Msg("Reconciliation debt: membership row was orphaned, deleted")
	}

	if len(missing) == 0 && len(orphaned) == 0 {
		s.logger.Debug().Msg("Membership reconciliation sweep found no drift")
	}

	return nil
}
