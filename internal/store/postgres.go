package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"tripfront/internal/models"
)

// uniqueViolation is the Postgres SQLSTATE for unique-constraint conflicts.
const uniqueViolation = "23505"

// PostgresTripStore is the pgx-backed TripStore.
type PostgresTripStore struct {
	db *pgxpool.Pool
}

// NewPostgresTripStore creates a PostgresTripStore
func NewPostgresTripStore(db *pgxpool.Pool) *PostgresTripStore {
	return &PostgresTripStore{db: db}
}

func (s *PostgresTripStore) Insert(ctx context.Context, trip *models.Trip) error {
	return s.db.QueryRow(ctx,
		`INSERT INTO trips (name, code, goal_amount, max_participants, details, deadline, created_at, creator_id)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
         RETURNING id`,
		trip.Name, trip.Code, trip.GoalAmount, trip.MaxParticipants, trip.Details, trip.Deadline, trip.CreatedAt, trip.CreatorID,
	).Scan(&trip.ID)
}

func (s *PostgresTripStore) FindByCode(ctx context.Context, code string) (*models.Trip, error) {
	var t models.Trip
	err := s.db.QueryRow(ctx,
		`SELECT id, name, code, goal_amount, max_participants, details, deadline, created_at, creator_id
           FROM trips WHERE code = $1`, code).Scan(
		&t.ID, &t.Name, &t.Code, &t.GoalAmount, &t.MaxParticipants, &t.Details, &t.Deadline, &t.CreatedAt, &t.CreatorID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

// PostgresCommitmentStore is the pgx-backed CommitmentStore.
type PostgresCommitmentStore struct {
	db *pgxpool.Pool
}

// NewPostgresCommitmentStore creates a PostgresCommitmentStore
func NewPostgresCommitmentStore(db *pgxpool.Pool) *PostgresCommitmentStore {
	return &PostgresCommitmentStore{db: db}
}

func (s *PostgresCommitmentStore) FindByTripAndName(ctx context.Context, tripID int64, name string) (*models.Commitment, error) {
	var c models.Commitment
	err := s.db.QueryRow(ctx,
		`SELECT id, trip_id, user_id, name, amount, created_at
           FROM commitments WHERE trip_id = $1 AND name = $2`, tripID, name).Scan(
		&c.ID, &c.TripID, &c.UserID, &c.Name, &c.Amount, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (s *PostgresCommitmentStore) UpdateAmount(ctx context.Context, id int64, amount float64) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE commitments SET amount = $1 WHERE id = $2`, amount, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// InsertBelowCap is a single conditional write: the row is inserted only
// while the trip's current commitment count is below the cap, so two
// concurrent final-slot requests cannot both get in. The unique index on
// (trip_id, name) turns a lost upsert race into ErrDuplicateName for the
// caller to retry as an update.
func (s *PostgresCommitmentStore) InsertBelowCap(ctx context.Context, commitment *models.Commitment, maxParticipants int) error {
	err := s.db.QueryRow(ctx,
		`INSERT INTO commitments (trip_id, user_id, name, amount, created_at)
         SELECT $1, $2, $3, $4, $5
          WHERE (SELECT COUNT(*) FROM commitments WHERE trip_id = $1) < $6
         RETURNING id`,
		commitment.TripID, commitment.UserID, commitment.Name, commitment.Amount, commitment.CreatedAt, maxParticipants,
	).Scan(&commitment.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrTripFull
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrDuplicateName
		}
		return err
	}
	return nil
}

func (s *PostgresCommitmentStore) ListByTrip(ctx context.Context, tripID int64) ([]models.Commitment, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, trip_id, user_id, name, amount, created_at
           FROM commitments
          WHERE trip_id = $1
          ORDER BY LOWER(name) ASC, id ASC`, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	commitments := make([]models.Commitment, 0)
	for rows.Next() {
		var c models.Commitment
		if err := rows.Scan(&c.ID, &c.TripID, &c.UserID, &c.Name, &c.Amount, &c.CreatedAt); err != nil {
			return nil, err
		}
		commitments = append(commitments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return commitments, nil
}
