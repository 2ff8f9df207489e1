package directory

import (
	"context"
	"fmt"
	"math"
)

// Doctor is one directory match returned to the pipeline.
type Doctor struct {
	FullName        string   `json:"full_name"`
	ClinicName      string   `json:"clinic_name"`
	Experience      float64  `json:"experience"`
	Phone           string   `json:"phone"`
	ConsultationFee *float64 `json:"consultation_fee"`
}

// latDelta approximates 2 km of latitude in degrees.
const latDelta = 0.018

// lngDelta widens the longitude window with latitude. Latitude 0 keeps the
// plain latitude delta; the box is approximate either way.
func lngDelta(lat float64) float64 {
	if lat == 0 {
		return latDelta
	}
	return latDelta / math.Cos(lat*math.Pi/180)
}

// FindDoctors returns active doctors whose specialty name contains the
// recommendation, optionally narrowed to an approximate 2 km bounding box,
// ordered by experience descending and capped at 3.
func (s *Store) FindDoctors(ctx context.Context, specialty string, lat, lng *float64) ([]Doctor, error) {
	query := `
		SELECT DISTINCT d.full_name, COALESCE(d.clinic_name, ''), d.experience,
			COALESCE(d.phone, ''), d.consultation_fee
		FROM doctors d
		JOIN doctor_specialties ds ON ds.doctor_id = d.id
		JOIN specialties sp ON sp.id = ds.specialty_id
		WHERE d.is_active AND sp.name ILIKE '%' || $1 || '%'`
	args := []any{specialty}

	if lat != nil && lng != nil {
		dLng := lngDelta(*lat)
		query += `
		AND d.latitude BETWEEN $2 AND $3
		AND d.longitude BETWEEN $4 AND $5`
		args = append(args, *lat-latDelta, *lat+latDelta, *lng-dLng, *lng+dLng)
	}

	query += `
		ORDER BY d.experience DESC
		LIMIT 3`

	qCtx, cancel := s.queryCtx(ctx)
	defer cancel()

	rows, err := s.pool.Query(qCtx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query doctors: %w", err)
	}
	defer rows.Close()

	doctors := []Doctor{}
	for rows.Next() {
		var d Doctor
		if err := rows.Scan(&d.FullName, &d.ClinicName, &d.Experience, &d.Phone, &d.ConsultationFee); err != nil {
			return nil, fmt.Errorf("scan doctor: %w", err)
		}
		doctors = append(doctors, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read doctors: %w", err)
	}
	return doctors, nil
}
