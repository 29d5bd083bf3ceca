package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripfront/internal/models"
)

func memTrip(t *testing.T, m *MemoryStore, code string) *models.Trip {
	t.Helper()
	trip := &models.Trip{
		Name:            "Trip",
		Code:            code,
		GoalAmount:      100,
		MaxParticipants: 2,
		Details:         "d",
		Deadline:        time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		CreatedAt:       time.Now(),
		CreatorID:       "creator",
	}
	require.NoError(t, m.Insert(context.Background(), trip))
	return trip
}

func TestMemoryTripCodeIsUnique(t *testing.T) {
	m := NewMemoryStore()
	memTrip(t, m, "abc12345")

	err := m.Insert(context.Background(), &models.Trip{Code: "abc12345"})
	assert.Error(t, err, "duplicate code must fail like the unique index would")
}

func TestMemoryInsertBelowCap(t *testing.T) {
	m := NewMemoryStore()
	trip := memTrip(t, m, "abc12345")
	ctx := context.Background()

	a := &models.Commitment{TripID: trip.ID, UserID: "u", Name: "Alice", Amount: 1, CreatedAt: time.Now()}
	require.NoError(t, m.InsertBelowCap(ctx, a, trip.MaxParticipants))
	assert.NotZero(t, a.ID)

	dup := &models.Commitment{TripID: trip.ID, UserID: "u", Name: "Alice", Amount: 2, CreatedAt: time.Now()}
	assert.ErrorIs(t, m.InsertBelowCap(ctx, dup, trip.MaxParticipants), ErrDuplicateName)

	b := &models.Commitment{TripID: trip.ID, UserID: "u", Name: "Bob", Amount: 1, CreatedAt: time.Now()}
	require.NoError(t, m.InsertBelowCap(ctx, b, trip.MaxParticipants))

	c := &models.Commitment{TripID: trip.ID, UserID: "u", Name: "Carol", Amount: 1, CreatedAt: time.Now()}
	assert.ErrorIs(t, m.InsertBelowCap(ctx, c, trip.MaxParticipants), ErrTripFull)
}

func TestMemoryCommitmentsScopedByTrip(t *testing.T) {
	m := NewMemoryStore()
	one := memTrip(t, m, "code0001")
	two := memTrip(t, m, "code0002")
	ctx := context.Background()

	require.NoError(t, m.InsertBelowCap(ctx, &models.Commitment{TripID: one.ID, Name: "Alice", Amount: 1}, 2))
	require.NoError(t, m.InsertBelowCap(ctx, &models.Commitment{TripID: two.ID, Name: "Alice", Amount: 2}, 2))

	_, err := m.FindByTripAndName(ctx, one.ID, "Bob")
	assert.ErrorIs(t, err, ErrNotFound)

	got, err := m.FindByTripAndName(ctx, two.ID, "Alice")
	require.NoError(t, err)
	assert.Equal(t, 2.0, got.Amount)

	list, err := m.ListByTrip(ctx, one.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
