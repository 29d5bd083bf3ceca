package models

import (
	"time"
)

// Trip represents a group funding pool for a trip. A trip is created once
// and never edited or deleted; the short code is its public lookup key.
type Trip struct {
	ID              int64     `json:"id" db:"id"`
	Name            string    `json:"name" db:"name"`
	Code            string    `json:"code" db:"code"`
	GoalAmount      float64   `json:"goal_amount" db:"goal_amount"`
	MaxParticipants int       `json:"max_participants" db:"max_participants"`
	Details         string    `json:"details" db:"details"`
	Deadline        time.Time `json:"deadline" db:"deadline"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	CreatorID       string    `json:"creator_id" db:"creator_id"`
}
