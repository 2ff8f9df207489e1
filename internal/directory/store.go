// Package directory is the Postgres-backed provider directory: doctor
// lookup by specialty and the append-only symptom-session log.
package directory

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store wraps the connection pool. Every query runs under the configured
// per-call timeout.
type Store struct {
	pool    *pgxpool.Pool
	timeout time.Duration
}

func New(pool *pgxpool.Pool, timeout time.Duration) *Store {
	return &Store{pool: pool, timeout: timeout}
}

// Connect opens and pings a pgx pool.
func Connect(ctx context.Context, url string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("parse db url: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}

	return pool, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *Store) Close() {
	s.pool.Close()
}

func (s *Store) queryCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.timeout)
}

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS specialties (
		id SERIAL PRIMARY KEY,
		name TEXT NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS doctors (
		id SERIAL PRIMARY KEY,
		full_name TEXT NOT NULL,
		clinic_name TEXT,
		experience DOUBLE PRECISION NOT NULL DEFAULT 0,
		phone TEXT,
		consultation_fee DOUBLE PRECISION,
		latitude DOUBLE PRECISION,
		longitude DOUBLE PRECISION,
		is_active BOOLEAN NOT NULL DEFAULT TRUE
	)`,
	`CREATE TABLE IF NOT EXISTS doctor_specialties (
		doctor_id INTEGER NOT NULL REFERENCES doctors(id),
		specialty_id INTEGER NOT NULL REFERENCES specialties(id),
		PRIMARY KEY (doctor_id, specialty_id)
	)`,
	`CREATE TABLE IF NOT EXISTS patients (
		id UUID PRIMARY KEY,
		auth_id TEXT NOT NULL UNIQUE,
		full_name TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS symptom_sessions (
		id UUID PRIMARY KEY,
		patient_id UUID NOT NULL REFERENCES patients(id),
		symptoms TEXT[] NOT NULL,
		personal_info JSONB,
		location JSONB,
		analysis_result JSONB,
		recommended_doctors JSONB,
		started_at TIMESTAMPTZ NOT NULL,
		ended_at TIMESTAMPTZ NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	)`,
}

// EnsureSchema creates the directory tables when they do not exist yet.
// Supabase-managed deployments already have them; self-hosted Postgres
// needs this at startup.
func (s *Store) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
