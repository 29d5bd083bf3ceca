package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tripfront/internal/models"
	"tripfront/internal/store"
)

// Outcome classifies the result of a commit.
type Outcome int

const (
	// OutcomeCreated means a new participant joined the trip.
	OutcomeCreated Outcome = iota
	// OutcomeUpdated means an existing participant revised their amount.
	OutcomeUpdated
	// OutcomeTripFull means the participant cap rejected a new entry.
	OutcomeTripFull
)

// TripSummary aggregates a trip's commitments for display.
type TripSummary struct {
	TotalCommitted  float64
	NumParticipants int
	Commitments     []models.Commitment
}

// CommitmentService applies the upsert-by-name contribution rule.
type CommitmentService struct {
	commitments store.CommitmentStore
	now         func() time.Time
}

// NewCommitmentService creates a CommitmentService
func NewCommitmentService(commitments store.CommitmentStore) *CommitmentService {
	return &CommitmentService{commitments: commitments, now: time.Now}
}

// Commit records a contribution of amount under the given participant name.
// The name is the upsert key, compared case-sensitively: a name that
// already has a commitment on the trip gets its amount overwritten in
// place, regardless of the participant cap. A new name is admitted only
// while the trip has room; otherwise nothing is written and the outcome is
// OutcomeTripFull. An insert that loses the race against a concurrent
// commit under the same name is retried once as an update.
func (s *CommitmentService) Commit(ctx context.Context, trip *models.Trip, name string, amount float64, actorID string) (*models.Commitment, Outcome, error) {
	existing, err := s.commitments.FindByTripAndName(ctx, trip.ID, name)
	switch {
	case err == nil:
		return s.revise(ctx, existing, amount)
	case !errors.Is(err, store.ErrNotFound):
		return nil, 0, fmt.Errorf("look up commitment: %w", err)
	}

	commitment := &models.Commitment{
		TripID:    trip.ID,
		UserID:    actorID,
		Name:      name,
		Amount:    amount,
		CreatedAt: s.now(),
	}
	err = s.commitments.InsertBelowCap(ctx, commitment, trip.MaxParticipants)
	switch {
	case err == nil:
		return commitment, OutcomeCreated, nil
	case errors.Is(err, store.ErrTripFull):
		return nil, OutcomeTripFull, nil
	case errors.Is(err, store.ErrDuplicateName):
		// Lost the insert race; the row exists now, so revise it.
		existing, err := s.commitments.FindByTripAndName(ctx, trip.ID, name)
		if err != nil {
			return nil, 0, fmt.Errorf("look up commitment after conflict: %w", err)
		}
		return s.revise(ctx, existing, amount)
	}
	return nil, 0, fmt.Errorf("insert commitment: %w", err)
}

func (s *CommitmentService) revise(ctx context.Context, existing *models.Commitment, amount float64) (*models.Commitment, Outcome, error) {
	if err := s.commitments.UpdateAmount(ctx, existing.ID, amount); err != nil {
		return nil, 0, fmt.Errorf("update commitment: %w", err)
	}
	existing.Amount = amount
	return existing, OutcomeUpdated, nil
}

// Summarize returns the aggregate view of a trip's commitments: the full
// list ordered by case-insensitive name, the participant count, and the
// total committed amount.
func (s *CommitmentService) Summarize(ctx context.Context, tripID int64) (*TripSummary, error) {
	commitments, err := s.commitments.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("list commitments: %w", err)
	}

	total := 0.0
	for _, c := range commitments {
		total += c.Amount
	}
	return &TripSummary{
		TotalCommitted:  total,
		NumParticipants: len(commitments),
		Commitments:     commitments,
	}, nil
}
