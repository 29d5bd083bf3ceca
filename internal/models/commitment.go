package models

import (
	"time"
)

// Commitment represents one participant's pledged contribution to a trip.
// The participant display name is the upsert key within a trip: committing
// again under the same name overwrites the amount in place. UserID is the
// opaque actor token of the committing visitor, kept for tracking only.
type Commitment struct {
	ID        int64     `json:"id" db:"id"`
	TripID    int64     `json:"trip_id" db:"trip_id"`
	UserID    string    `json:"user_id" db:"user_id"`
	Name      string    `json:"name" db:"name"`
	Amount    float64   `json:"amount" db:"amount"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
