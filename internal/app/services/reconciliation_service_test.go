package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seda/hobbyhive/internal/app/repositories"
)

type fakeAuditor struct {
	missing  []repositories.MembershipKey
	orphaned []repositories.MembershipKey

	ensured []repositories.MembershipKey
	deleted []repositories.MembershipKey

	missingErr error
}

func (a *fakeAuditor) MissingMemberships(ctx context.Context) ([]repositories.MembershipKey, error) {
	return a.missing, a.missingErr
}

func (a *fakeAuditor) OrphanedMemberships(ctx context.Context) ([]repositories.MembershipKey, error) {
	return a.orphaned, nil
}

func (a *fakeAuditor) Ensure(ctx context.Context, userID, communityID int64) error {
	a.ensured = append(a.ensured, repositories.MembershipKey{UserID: userID, CommunityID: communityID})
	return nil
}

func (a *fakeAuditor) Delete(ctx context.Context, userID, communityID int64) error {
	a.deleted = append(a.deleted, repositories.MembershipKey{UserID: userID, CommunityID: communityID})
	return nil
}

func TestSweepRepairsDrift(t *testing.T) {
	auditor := &fakeAuditor{
		missing:  []repositories.MembershipKey{{UserID: 7, CommunityID: 2}},
		orphaned: []repositories.MembershipKey{{UserID: 9, CommunityID: 1}},
	}
	svc := NewReconciliationService(auditor, time.Minute, zerolog.Nop())

	require.NoError(t, svc.SweepOnce(context.Background()))

	require.Len(t, auditor.ensured, 1)
	assert.Equal(t, repositories.MembershipKey{UserID: 7, CommunityID: 2}, auditor.ensured[0])
	require.Len(t, auditor.deleted, 1)
	assert.Equal(t, repositories.MembershipKey{UserID: 9, CommunityID: 1}, auditor.deleted[0])
}

func TestSweepNoDriftIsANoop(t *testing.T) {
	auditor := &fakeAuditor{}
	svc := NewReconciliationService(auditor, time.Minute, zerolog.Nop())

	require.NoError(t, svc.SweepOnce(context.Background()))
	assert.Empty(t, auditor.ensured)
	assert.Empty(t, auditor.deleted)
}

func TestSweepPropagatesAuditErrors(t *testing.T) {
	auditor := &fakeAuditor{missingErr: assert.AnError}
	svc := NewReconciliationService(auditor, time.Minute, zerolog.Nop())

	err := svc.SweepOnce(context.Background())
	assert.ErrorIs(t, err, assert.AnError)
}

func TestRunStopsOnContextCancel(t *testing.T) {
	auditor := &fakeAuditor{}
	svc := NewReconciliationService(auditor, 10*time.Millisecond, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		svc.Run(ctx)
		close(done)
	}()

	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after context cancellation")
	}
}
