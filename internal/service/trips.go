package service

import (
	"context"
	"time"

	"tripfront/internal/models"
	"tripfront/internal/store"
	"tripfront/internal/utils"
)

// CreateTripInput holds the already-parsed fields for a new trip.
type CreateTripInput struct {
	Name            string
	GoalAmount      float64
	MaxParticipants int
	Details         string
	Deadline        time.Time
}

// TripService creates trips and resolves join codes.
type TripService struct {
	trips store.TripStore
	now   func() time.Time
}

// NewTripService creates a TripService
func NewTripService(trips store.TripStore) *TripService {
	return &TripService{trips: trips, now: time.Now}
}

// Create persists a new trip with a generated join code. actorID is the
// opaque identity of the creating visitor. A code collision is not
// retried; the storage unique index surfaces it as an error.
func (s *TripService) Create(ctx context.Context, in CreateTripInput, actorID string) (*models.Trip, error) {
	code, err := utils.GenerateCode()
	if err != nil {
		return nil, err
	}

	trip := &models.Trip{
		Name:            in.Name,
		Code:            code,
		GoalAmount:      in.GoalAmount,
		MaxParticipants: in.MaxParticipants,
		Details:         in.Details,
		Deadline:        in.Deadline,
		CreatedAt:       s.now(),
		CreatorID:       actorID,
	}
	if err := s.trips.Insert(ctx, trip); err != nil {
		return nil, err
	}
	return trip, nil
}

// FindByCode returns the trip with the given join code, or
// store.ErrNotFound when the code was never issued.
func (s *TripService) FindByCode(ctx context.Context, code string) (*models.Trip, error) {
	return s.trips.FindByCode(ctx, code)
}
