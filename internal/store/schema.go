package store

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS trips (
        id               BIGSERIAL PRIMARY KEY,
        name             TEXT NOT NULL,
        code             TEXT NOT NULL,
        goal_amount      DOUBLE PRECISION NOT NULL,
        max_participants INTEGER NOT NULL,
        details          TEXT NOT NULL,
        deadline         DATE NOT NULL,
        created_at       TIMESTAMPTZ NOT NULL,
        creator_id       TEXT NOT NULL
    )`,
	`CREATE UNIQUE INDEX IF NOT EXISTS trips_code_idx ON trips (code)`,
	`CREATE TABLE IF NOT EXISTS commitments (
        id         BIGSERIAL PRIMARY KEY,
        trip_id    BIGINT NOT NULL REFERENCES trips (id),
        user_id    TEXT NOT NULL,
        name       TEXT NOT NULL,
        amount     DOUBLE PRECISION NOT NULL,
        created_at TIMESTAMPTZ NOT NULL
    )`,
	`CREATE UNIQUE INDEX IF NOT EXISTS commitments_trip_name_idx ON commitments (trip_id, name)`,
}

var dropStatements = []string{
	`DROP TABLE IF EXISTS commitments`,
	`DROP TABLE IF EXISTS trips`,
}

// EnsureSchema creates the trips and commitments tables if they do not
// exist. When reset is true the tables are dropped first, starting the
// process from an empty state; this is a development convenience and must
// stay off in production.
func EnsureSchema(ctx context.Context, db *pgxpool.Pool, reset bool) error {
	if reset {
		log.Println("DB_RESET_ON_START is set: dropping all tables")
		for _, stmt := range dropStatements {
			if _, err := db.Exec(ctx, stmt); err != nil {
				return fmt.Errorf("reset schema: %w", err)
			}
		}
	}
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
