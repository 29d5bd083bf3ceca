package store

import (
	"context"
	"errors"

	"tripfront/internal/models"
)

var (
	// ErrNotFound signals a lookup that matched no row.
	ErrNotFound = errors.New("not found")
	// ErrTripFull signals a conditional insert rejected by the participant cap.
	ErrTripFull = errors.New("trip full")
	// ErrDuplicateName signals an insert that lost the race against another
	// commitment with the same (trip_id, name) key.
	ErrDuplicateName = errors.New("duplicate participant name")
)

// TripStore persists trips and resolves join codes.
type TripStore interface {
	// Insert persists a new trip and sets its storage-assigned ID.
	// A join-code collision surfaces as an error from the unique index.
	Insert(ctx context.Context, trip *models.Trip) error
	// FindByCode returns the trip with the given join code, or ErrNotFound.
	FindByCode(ctx context.Context, code string) (*models.Trip, error)
}

// CommitmentStore persists participant contributions.
type CommitmentStore interface {
	// FindByTripAndName returns the commitment for an exact participant
	// name on a trip, or ErrNotFound.
	FindByTripAndName(ctx context.Context, tripID int64, name string) (*models.Commitment, error)
	// UpdateAmount overwrites the amount of an existing commitment.
	// CreatedAt is left untouched.
	UpdateAmount(ctx context.Context, id int64, amount float64) error
	// InsertBelowCap persists a new commitment only while the trip's
	// commitment count is below maxParticipants, setting its ID on
	// success. Returns ErrTripFull when the cap is reached and
	// ErrDuplicateName when the (trip_id, name) key already exists.
	InsertBelowCap(ctx context.Context, commitment *models.Commitment, maxParticipants int) error
	// ListByTrip returns all commitments for a trip ordered by
	// case-insensitive name ascending, ties by insertion order.
	ListByTrip(ctx context.Context, tripID int64) ([]models.Commitment, error)
}
