package store

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"tripfront/internal/models"
)

// MemoryStore is an in-memory TripStore and CommitmentStore with the same
// semantics as the Postgres implementation, including the unique keys on
// trips.code and (trip_id, name). Used by tests.
type MemoryStore struct {
	mu           sync.Mutex
	nextTripID   int64
	nextCommitID int64
	trips        []models.Trip
	commitments  []models.Commitment
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{nextTripID: 1, nextCommitID: 1}
}

func (m *MemoryStore) Insert(ctx context.Context, trip *models.Trip) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, t := range m.trips {
		if t.Code == trip.Code {
			return fmt.Errorf("trip code %q already exists", trip.Code)
		}
	}
	trip.ID = m.nextTripID
	m.nextTripID++
	m.trips = append(m.trips, *trip)
	return nil
}

func (m *MemoryStore) FindByCode(ctx context.Context, code string) (*models.Trip, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, t := range m.trips {
		if t.Code == code {
			found := t
			return &found, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) FindByTripAndName(ctx context.Context, tripID int64, name string) (*models.Commitment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, c := range m.commitments {
		if c.TripID == tripID && c.Name == name {
			found := c
			return &found, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) UpdateAmount(ctx context.Context, id int64, amount float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.commitments {
		if m.commitments[i].ID == id {
			m.commitments[i].Amount = amount
			return nil
		}
	}
	return ErrNotFound
}

func (m *MemoryStore) InsertBelowCap(ctx context.Context, commitment *models.Commitment, maxParticipants int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	count := 0
	for _, c := range m.commitments {
		if c.TripID == commitment.TripID {
			if c.Name == commitment.Name {
				return ErrDuplicateName
			}
			count++
		}
	}
	if count >= maxParticipants {
		return ErrTripFull
	}
	commitment.ID = m.nextCommitID
	m.nextCommitID++
	m.commitments = append(m.commitments, *commitment)
	return nil
}

func (m *MemoryStore) ListByTrip(ctx context.Context, tripID int64) ([]models.Commitment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]models.Commitment, 0)
	for _, c := range m.commitments {
		if c.TripID == tripID {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		ni, nj := strings.ToLower(out[i].Name), strings.ToLower(out[j].Name)
		if ni != nj {
			return ni < nj
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}
