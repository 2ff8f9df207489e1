package directory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// SessionRecord is one append-only symptom-session row. Snapshot fields are
// stored as jsonb.
type SessionRecord struct {
	PatientID    uuid.UUID
	Symptoms     []string
	PersonalInfo map[string]any
	Location     map[string]any
	Analysis     map[string]any
	Doctors      []Doctor
	StartedAt    time.Time
	EndedAt      time.Time
	CreatedAt    time.Time
}

// ResolvePatient maps an auth subject to a patient id. A missing patient is
// not an error; the bool reports whether one was found.
func (s *Store) ResolvePatient(ctx context.Context, authID string) (uuid.UUID, bool, error) {
	qCtx, cancel := s.queryCtx(ctx)
	defer cancel()

	var id uuid.UUID
	err := s.pool.QueryRow(qCtx, `SELECT id FROM patients WHERE auth_id = $1`, authID).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return uuid.Nil, false, nil
	}
	if err != nil {
		return uuid.Nil, false, fmt.Errorf("resolve patient: %w", err)
	}
	return id, true, nil
}

// InsertSession persists one completed analysis.
func (s *Store) InsertSession(ctx context.Context, rec SessionRecord) error {
	qCtx, cancel := s.queryCtx(ctx)
	defer cancel()

	_, err := s.pool.Exec(qCtx, `
		INSERT INTO symptom_sessions
			(id, patient_id, symptoms, personal_info, location, analysis_result,
			 recommended_doctors, started_at, ended_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		uuid.New(), rec.PatientID, rec.Symptoms,
		rec.PersonalInfo, rec.Location, rec.Analysis, rec.Doctors,
		rec.StartedAt, rec.EndedAt, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert symptom session: %w", err)
	}
	return nil
}
