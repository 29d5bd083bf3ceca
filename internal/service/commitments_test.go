package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripfront/internal/models"
	"tripfront/internal/store"
)

func newCommitFixture(t *testing.T, maxParticipants int) (*CommitmentService, *models.Trip) {
	t.Helper()
	mem := store.NewMemoryStore()

	trips := NewTripService(mem)
	trip, err := trips.Create(context.Background(), CreateTripInput{
		Name:            "Road trip",
		GoalAmount:      300,
		MaxParticipants: maxParticipants,
		Details:         "Fuel and snacks.",
		Deadline:        time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC),
	}, "creator")
	require.NoError(t, err)

	return NewCommitmentService(mem), trip
}

func TestCommitNewParticipant(t *testing.T) {
	svc, trip := newCommitFixture(t, 3)

	c, outcome, err := svc.Commit(context.Background(), trip, "Alice", 10, "actor-a")
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, OutcomeCreated, outcome)
	assert.Equal(t, "Alice", c.Name)
	assert.Equal(t, 10.0, c.Amount)
	assert.Equal(t, "actor-a", c.UserID)
	assert.NotZero(t, c.ID)

	summary, err := svc.Summarize(context.Background(), trip.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.NumParticipants)
}

func TestCommitSameNameUpdatesAmount(t *testing.T) {
	svc, trip := newCommitFixture(t, 3)

	first, outcome, err := svc.Commit(context.Background(), trip, "Alice", 10, "actor-a")
	require.NoError(t, err)
	require.Equal(t, OutcomeCreated, outcome)

	second, outcome, err := svc.Commit(context.Background(), trip, "Alice", 25, "actor-b")
	require.NoError(t, err)
	assert.Equal(t, OutcomeUpdated, outcome)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 25.0, second.Amount)

	summary, err := svc.Summarize(context.Background(), trip.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.NumParticipants)
	assert.Equal(t, 25.0, summary.TotalCommitted)
	// first write's creation time survives the update
	assert.Equal(t, first.CreatedAt, summary.Commitments[0].CreatedAt)
}

func TestCommitNamesAreCaseSensitive(t *testing.T) {
	svc, trip := newCommitFixture(t, 3)

	_, outcome, err := svc.Commit(context.Background(), trip, "alice", 10, "actor-a")
	require.NoError(t, err)
	require.Equal(t, OutcomeCreated, outcome)

	_, outcome, err = svc.Commit(context.Background(), trip, "Alice", 20, "actor-a")
	require.NoError(t, err)
	assert.Equal(t, OutcomeCreated, outcome, "different case is a different participant")

	summary, err := svc.Summarize(context.Background(), trip.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.NumParticipants)
}

func TestCommitRejectsWhenFull(t *testing.T) {
	svc, trip := newCommitFixture(t, 2)

	_, outcome, err := svc.Commit(context.Background(), trip, "Alice", 10, "a")
	require.NoError(t, err)
	require.Equal(t, OutcomeCreated, outcome)
	_, outcome, err = svc.Commit(context.Background(), trip, "Bob", 20, "b")
	require.NoError(t, err)
	require.Equal(t, OutcomeCreated, outcome)

	c, outcome, err := svc.Commit(context.Background(), trip, "Carol", 5, "c")
	require.NoError(t, err)
	assert.Equal(t, OutcomeTripFull, outcome)
	assert.Nil(t, c)

	summary, err := svc.Summarize(context.Background(), trip.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.NumParticipants, "rejected commit must not create a row")
}

func TestCommitUpdateIgnoresCap(t *testing.T) {
	svc, trip := newCommitFixture(t, 2)

	_, _, err := svc.Commit(context.Background(), trip, "Alice", 10, "a")
	require.NoError(t, err)
	_, _, err = svc.Commit(context.Background(), trip, "Bob", 20, "b")
	require.NoError(t, err)

	// Trip is full; Alice can still revise her amount.
	_, outcome, err := svc.Commit(context.Background(), trip, "Alice", 15, "a")
	require.NoError(t, err)
	assert.Equal(t, OutcomeUpdated, outcome)

	summary, err := svc.Summarize(context.Background(), trip.ID)
	require.NoError(t, err)
	assert.Equal(t, 35.0, summary.TotalCommitted)
}

func TestCommitScenarioCapTwo(t *testing.T) {
	// Full walk of the cap scenario: Alice 10, Bob 20, Carol rejected,
	// Alice revised to 15, total 35.
	svc, trip := newCommitFixture(t, 2)
	ctx := context.Background()

	_, outcome, err := svc.Commit(ctx, trip, "Alice", 10, "a")
	require.NoError(t, err)
	assert.Equal(t, OutcomeCreated, outcome)

	_, outcome, err = svc.Commit(ctx, trip, "Bob", 20, "b")
	require.NoError(t, err)
	assert.Equal(t, OutcomeCreated, outcome)

	_, outcome, err = svc.Commit(ctx, trip, "Carol", 5, "c")
	require.NoError(t, err)
	assert.Equal(t, OutcomeTripFull, outcome)

	_, outcome, err = svc.Commit(ctx, trip, "Alice", 15, "a")
	require.NoError(t, err)
	assert.Equal(t, OutcomeUpdated, outcome)

	summary, err := svc.Summarize(ctx, trip.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.NumParticipants)
	assert.Equal(t, 35.0, summary.TotalCommitted)
}

// racingStore simulates losing the insert race: the first InsertBelowCap
// behaves as if a concurrent request created the same (trip, name) row a
// moment earlier.
type racingStore struct {
	*store.MemoryStore
	raced bool
}

func (r *racingStore) InsertBelowCap(ctx context.Context, c *models.Commitment, maxParticipants int) error {
	if !r.raced {
		r.raced = true
		winner := *c
		winner.UserID = "winner"
		winner.Amount = 99
		if err := r.MemoryStore.InsertBelowCap(ctx, &winner, maxParticipants); err != nil {
			return err
		}
		return store.ErrDuplicateName
	}
	return r.MemoryStore.InsertBelowCap(ctx, c, maxParticipants)
}

func TestCommitRetriesLostInsertRace(t *testing.T) {
	mem := store.NewMemoryStore()
	trips := NewTripService(mem)
	trip, err := trips.Create(context.Background(), CreateTripInput{
		Name:            "Race",
		GoalAmount:      100,
		MaxParticipants: 5,
		Details:         "d",
		Deadline:        time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC),
	}, "creator")
	require.NoError(t, err)

	svc := NewCommitmentService(&racingStore{MemoryStore: mem})

	c, outcome, err := svc.Commit(context.Background(), trip, "Alice", 10, "loser")
	require.NoError(t, err)
	assert.Equal(t, OutcomeUpdated, outcome, "lost race resolves as an update")
	assert.Equal(t, 10.0, c.Amount, "the retried write wins")

	summary, err := svc.Summarize(context.Background(), trip.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.NumParticipants)
	assert.Equal(t, 10.0, summary.TotalCommitted)
}

func TestSummarizeOrdersByNameCaseInsensitive(t *testing.T) {
	svc, trip := newCommitFixture(t, 10)
	ctx := context.Background()

	for _, name := range []string{"zoe", "Adam", "mike", "Bella", "adam"} {
		_, _, err := svc.Commit(ctx, trip, name, 1, "x")
		require.NoError(t, err)
	}

	summary, err := svc.Summarize(ctx, trip.ID)
	require.NoError(t, err)

	got := make([]string, 0, len(summary.Commitments))
	for _, c := range summary.Commitments {
		got = append(got, c.Name)
	}
	// "Adam" and "adam" compare equal case-insensitively; insertion order
	// breaks the tie.
	assert.Equal(t, []string{"Adam", "adam", "Bella", "mike", "zoe"}, got)
}

func TestSummarizeEmptyTrip(t *testing.T) {
	svc, trip := newCommitFixture(t, 2)

	summary, err := svc.Summarize(context.Background(), trip.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.NumParticipants)
	assert.Equal(t, 0.0, summary.TotalCommitted)
	assert.Empty(t, summary.Commitments)
}

func TestCommitAcceptsZeroAndNegativeAmounts(t *testing.T) {
	// No lower bound is enforced on amounts.
	svc, trip := newCommitFixture(t, 3)
	ctx := context.Background()

	_, outcome, err := svc.Commit(ctx, trip, "Alice", 0, "a")
	require.NoError(t, err)
	assert.Equal(t, OutcomeCreated, outcome)

	_, outcome, err = svc.Commit(ctx, trip, "Bob", -5, "b")
	require.NoError(t, err)
	assert.Equal(t, OutcomeCreated, outcome)

	summary, err := svc.Summarize(ctx, trip.ID)
	require.NoError(t, err)
	assert.Equal(t, -5.0, summary.TotalCommitted)
}
