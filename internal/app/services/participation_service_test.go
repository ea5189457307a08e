package services

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seda/hobbyhive/internal/app/models"
	"github.com/seda/hobbyhive/internal/app/repositories"
	"github.com/seda/hobbyhive/internal/pkg/apperrors"
)

type partKey struct {
	userID  int64
	eventID int64
}

type memberKey struct {
	userID      int64
	communityID int64
}

type ledgerKey struct {
	userID    int64
	eventID   int64
	direction models.LedgerDirection
	cycle     int
}

// reconcileState is the in-memory image of the three reconciled tables
type reconcileState struct {
	participations map[partKey]models.Participation
	memberships    map[memberKey]bool
	ledger         []models.LedgerEntry
}

func newReconcileState() *reconcileState {
	return &reconcileState{
		participations: make(map[partKey]models.Participation),
		memberships:    make(map[memberKey]bool),
	}
}

func (s *reconcileState) clone() *reconcileState {
	c := newReconcileState()
	for k, v := range s.participations {
		c.participations[k] = v
	}
	for k, v := range s.memberships {
		c.memberships[k] = v
	}
	c.ledger = append(c.ledger, s.ledger...)
	return c
}

func (s *reconcileState) score(userID int64) int {
	total := 0
	for _, e := range s.ledger {
		if e.UserID == userID {
			total += e.Delta
		}
	}
	return total
}

// fakeStore implements repositories.ReconcileStore with snapshot/commit
// semantics: a failed unit of work leaves the prior state untouched.
type fakeStore struct {
	state  *reconcileState
	events map[int64]*models.Event

	failInsertJoined bool
}

func newFakeStore(events ...*models.Event) *fakeStore {
	s := &fakeStore{
		state:  newReconcileState(),
		events: make(map[int64]*models.Event),
	}
	for _, e := range events {
		s.events[e.ID] = e
	}
	return s
}

func (s *fakeStore) Reconcile(ctx context.Context, fn func(ctx context.Context, tx repositories.ReconcileTx) error) error {
	working := s.state.clone()
	if err := fn(ctx, &fakeTx{state: working, store: s}); err != nil {
		return err
	}
	s.state = working
	return nil
}

func uniqueViolation(constraint string) error {
	return &pgconn.PgError{Code: "23505", ConstraintName: constraint}
}

type fakeTx struct {
	state *reconcileState
	store *fakeStore
}

func (t *fakeTx) ParticipationForUpdate(ctx context.Context, userID, eventID int64) (*models.Participation, error) {
	if p, ok := t.state.participations[partKey{userID, eventID}]; ok {
		copied := p
		return &copied, nil
	}
	return nil, nil
}

func (t *fakeTx) InsertJoined(ctx context.Context, userID, eventID int64) (int, error) {
	if t.store.failInsertJoined {
		return 0, uniqueViolation("event_participations_user_event_key")
	}
	key := partKey{userID, eventID}
	if _, ok := t.state.participations[key]; ok {
		return 0, uniqueViolation("event_participations_user_event_key")
	}
	t.state.participations[key] = models.Participation{
		UserID:    userID,
		EventID:   eventID,
		Status:    models.ParticipationJoined,
		JoinCount: 1,
	}
	return 1, nil
}

func (t *fakeTx) MarkJoined(ctx context.Context, userID, eventID int64) (int, error) {
	key := partKey{userID, eventID}
	p, ok := t.state.participations[key]
	if !ok {
		return 0, assert.AnError
	}
	p.Status = models.ParticipationJoined
	p.JoinCount++
	t.state.participations[key] = p
	return p.JoinCount, nil
}

func (t *fakeTx) MarkCancelled(ctx context.Context, userID, eventID int64) error {
	key := partKey{userID, eventID}
	p, ok := t.state.participations[key]
	if !ok {
		return assert.AnError
	}
	p.Status = models.ParticipationCancelled
	t.state.participations[key] = p
	return nil
}

func (t *fakeTx) EnsureMembership(ctx context.Context, userID, communityID int64) error {
	t.state.memberships[memberKey{userID, communityID}] = true
	return nil
}

func (t *fakeTx) RemoveMembership(ctx context.Context, userID, communityID int64) error {
	delete(t.state.memberships, memberKey{userID, communityID})
	return nil
}

func (t *fakeTx) CountJoinedInCommunity(ctx context.Context, userID, communityID int64) (int, error) {
	count := 0
	for key, p := range t.state.participations {
		if key.userID != userID || p.Status != models.ParticipationJoined {
			continue
		}
		if event, ok := t.store.events[key.eventID]; ok && event.CommunityID == communityID {
			count++
		}
	}
	return count, nil
}

func (t *fakeTx) AppendLedger(ctx context.Context, entry *models.LedgerEntry) error {
	key := ledgerKey{entry.UserID, entry.EventID, entry.Direction, entry.Cycle}
	for _, existing := range t.state.ledger {
		if (ledgerKey{existing.UserID, existing.EventID, existing.Direction, existing.Cycle}) == key {
			return uniqueViolation("score_ledger_idempotency_key")
		}
	}
	t.state.ledger = append(t.state.ledger, *entry)
	return nil
}

// fakeCatalog serves the event and user lookups outside the transaction
type fakeCatalog struct {
	events map[int64]*models.Event
	users  map[int64]*models.User
}

func (c *fakeCatalog) GetByID(ctx context.Context, id int64) (*models.Event, error) {
	return c.events[id], nil
}

func (c *fakeCatalog) FindByID(ctx context.Context, id int64) (*models.User, error) {
	return c.users[id], nil
}

// fakeReads serves GetJoinedEvents from the store state
type fakeReads struct {
	store *fakeStore
}

func (r *fakeReads) JoinedEventsByUser(ctx context.Context, userID int64) ([]*models.Participation, error) {
	var result []*models.Participation
	for key, p := range r.store.state.participations {
		if key.userID != userID || p.Status != models.ParticipationJoined {
			continue
		}
		copied := p
		copied.Event = r.store.events[key.eventID]
		result = append(result, &copied)
	}
	return result, nil
}

func newTestService(store *fakeStore, users ...*models.User) ParticipationService {
	catalog := &fakeCatalog{events: store.events, users: make(map[int64]*models.User)}
	for _, u := range users {
		catalog.users[u.ID] = u
	}
	return NewParticipationService(store, catalog, catalog, &fakeReads{store: store}, zerolog.Nop())
}

func testEvent(id, communityID int64, reward int) *models.Event {
	return &models.Event{
		ID:           id,
		CommunityID:  communityID,
		Title:        "Board Game Night",
		Location:     "Community Hall",
		PointsReward: reward,
		StartsAt:     time.Now().Add(24 * time.Hour),
	}
}

func testUser(id int64) *models.User {
	return &models.User{ID: id, Nickname: "quizfox"}
}

func TestJoinCreditsPointsAndDerivesMembership(t *testing.T) {
	store := newFakeStore(testEvent(3, 2, 15))
	svc := newTestService(store, testUser(7))

	points, err := svc.Join(context.Background(), 7, 3)
	require.NoError(t, err)
	assert.Equal(t, 15, points)

	p := store.state.participations[partKey{7, 3}]
	assert.Equal(t, models.ParticipationJoined, p.Status)
	assert.Equal(t, 1, p.JoinCount)
	assert.True(t, store.state.memberships[memberKey{7, 2}])
	assert.Equal(t, 15, store.state.score(7))
}

func TestJoinTwiceIsGuardedWithoutSideEffects(t *testing.T) {
	store := newFakeStore(testEvent(3, 2, 15))
	svc := newTestService(store, testUser(7))

	_, err := svc.Join(context.Background(), 7, 3)
	require.NoError(t, err)

	points, err := svc.Join(context.Background(), 7, 3)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyJoined)
	assert.Zero(t, points)

	// Guard must not double-credit or touch the row
	assert.Equal(t, 15, store.state.score(7))
	assert.Len(t, store.state.ledger, 1)
	assert.Equal(t, 1, store.state.participations[partKey{7, 3}].JoinCount)
}

func TestLeaveWithoutJoinIsGuarded(t *testing.T) {
	store := newFakeStore(testEvent(3, 2, 15))
	svc := newTestService(store, testUser(7))

	points, err := svc.Leave(context.Background(), 7, 3)
	assert.ErrorIs(t, err, apperrors.ErrNotJoined)
	assert.Zero(t, points)
	assert.Empty(t, store.state.ledger)
}

func TestLeaveTwiceIsGuarded(t *testing.T) {
	store := newFakeStore(testEvent(3, 2, 15))
	svc := newTestService(store, testUser(7))

	_, err := svc.Join(context.Background(), 7, 3)
	require.NoError(t, err)
	_, err = svc.Leave(context.Background(), 7, 3)
	require.NoError(t, err)

	_, err = svc.Leave(context.Background(), 7, 3)
	assert.ErrorIs(t, err, apperrors.ErrNotJoined)
	assert.Len(t, store.state.ledger, 2)
}

func TestJoinLeaveRoundTripRestoresState(t *testing.T) {
	store := newFakeStore(testEvent(3, 2, 15))
	svc := newTestService(store, testUser(7))

	_, err := svc.Join(context.Background(), 7, 3)
	require.NoError(t, err)

	points, err := svc.Leave(context.Background(), 7, 3)
	require.NoError(t, err)
	assert.Equal(t, 15, points)

	// Score back to zero, membership gone, both bookings kept in the ledger
	assert.Equal(t, 0, store.state.score(7))
	assert.False(t, store.state.memberships[memberKey{7, 2}])
	assert.Len(t, store.state.ledger, 2)
	assert.Equal(t, models.ParticipationCancelled, store.state.participations[partKey{7, 3}].Status)
}

func TestLeaveKeepsMembershipWhileAnotherEventRemains(t *testing.T) {
	// Two events in community 2; leaving one of them must not drop the
	// membership derived from the other
	store := newFakeStore(testEvent(3, 2, 15), testEvent(9, 2, 10))
	svc := newTestService(store, testUser(7))

	_, err := svc.Join(context.Background(), 7, 3)
	require.NoError(t, err)
	_, err = svc.Join(context.Background(), 7, 9)
	require.NoError(t, err)
	assert.Equal(t, 25, store.state.score(7))

	_, err = svc.Leave(context.Background(), 7, 3)
	require.NoError(t, err)
	assert.True(t, store.state.memberships[memberKey{7, 2}], "membership must survive while event 9 is joined")
	assert.Equal(t, 10, store.state.score(7))

	_, err = svc.Leave(context.Background(), 7, 9)
	require.NoError(t, err)
	assert.False(t, store.state.memberships[memberKey{7, 2}])
	assert.Equal(t, 0, store.state.score(7))
}

func TestRejoinCreditsANewCycle(t *testing.T) {
	store := newFakeStore(testEvent(3, 2, 15))
	svc := newTestService(store, testUser(7))

	_, err := svc.Join(context.Background(), 7, 3)
	require.NoError(t, err)
	_, err = svc.Leave(context.Background(), 7, 3)
	require.NoError(t, err)

	points, err := svc.Join(context.Background(), 7, 3)
	require.NoError(t, err)
	assert.Equal(t, 15, points)

	assert.Equal(t, 15, store.state.score(7))
	assert.Equal(t, 2, store.state.participations[partKey{7, 3}].JoinCount)
	assert.True(t, store.state.memberships[memberKey{7, 2}])
	require.Len(t, store.state.ledger, 3)
	last := store.state.ledger[2]
	assert.Equal(t, models.LedgerCredit, last.Direction)
	assert.Equal(t, 2, last.Cycle)
}

func TestJoinUnknownEvent(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, testUser(7))

	_, err := svc.Join(context.Background(), 7, 42)
	assert.ErrorIs(t, err, apperrors.ErrEventNotFound)
}

func TestJoinUnknownUser(t *testing.T) {
	store := newFakeStore(testEvent(3, 2, 15))
	svc := newTestService(store)

	_, err := svc.Join(context.Background(), 7, 3)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestLeaveUnknownEvent(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, testUser(7))

	_, err := svc.Leave(context.Background(), 7, 42)
	assert.ErrorIs(t, err, apperrors.ErrEventNotFound)
}

func TestJoinRejectsNonPositiveIDs(t *testing.T) {
	store := newFakeStore(testEvent(3, 2, 15))
	svc := newTestService(store, testUser(7))

	_, err := svc.Join(context.Background(), 0, 3)
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
	_, err = svc.Join(context.Background(), 7, -1)
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestJoinInsertRaceDegradesToAlreadyJoined(t *testing.T) {
	// A concurrent join wins the insert on the unique (user, event)
	// constraint; the loser must surface the guard, not a 500
	store := newFakeStore(testEvent(3, 2, 15))
	store.failInsertJoined = true
	svc := newTestService(store, testUser(7))

	_, err := svc.Join(context.Background(), 7, 3)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyJoined)
	assert.Empty(t, store.state.ledger)
	assert.Empty(t, store.state.memberships)
}

func TestGetJoinedEvents(t *testing.T) {
	store := newFakeStore(testEvent(3, 2, 15), testEvent(9, 2, 10))
	svc := newTestService(store, testUser(7))

	_, err := svc.Join(context.Background(), 7, 3)
	require.NoError(t, err)
	_, err = svc.Join(context.Background(), 7, 9)
	require.NoError(t, err)
	_, err = svc.Leave(context.Background(), 7, 9)
	require.NoError(t, err)

	response, err := svc.GetJoinedEvents(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, response.Events, 1)
	assert.Equal(t, int64(3), response.Events[0].EventID)
	assert.Equal(t, int64(2), response.Events[0].CommunityID)
	assert.Equal(t, 15, response.Events[0].PointsReward)
}
