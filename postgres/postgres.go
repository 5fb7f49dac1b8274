package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGStore implements catbook.Store using PostgreSQL via pgx.
type PGStore struct {
	db *pgxpool.Pool
}

// New creates a new PGStore backed by the given pgx connection pool.
func New(db *pgxpool.Pool) *PGStore {
	return &PGStore{db: db}
}

// isNoRows checks if the error is a "no rows" error from pgx.
func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
