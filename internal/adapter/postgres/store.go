// Package postgres implements the report store on PostgreSQL via pgx.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/savannawatch/climate-watch-api/internal/domain"
	"github.com/savannawatch/climate-watch-api/internal/report"
)

// Store implements report.Store backed by a pgx connection pool.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore creates a Store around an existing pool. The pool's lifecycle is
// owned by the caller.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

const reportColumns = `id, county_id, latitude, longitude, location_name,
	event_type, severity, description, reporter_phone, reporter_name, image_url,
	verification_status, trust_score, verification_method,
	event_date, reported_at, verified_at`

// Insert atomically creates a new report row.
func (s *Store) Insert(ctx context.Context, r *domain.Report) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO community_reports (`+reportColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`,
		r.ID, r.CountyID, r.Latitude, r.Longitude, r.LocationName,
		r.EventType, r.Severity, r.Description,
		nullIfEmpty(r.ReporterPhone), nullIfEmpty(r.ReporterName), nullIfEmpty(r.ImageURL),
		r.VerificationStatus, r.TrustScore, nullIfEmpty(r.VerificationMethod),
		r.EventDate, r.ReportedAt, r.VerifiedAt,
	)
	if err != nil {
		return fmt.Errorf("insert report: %w", err)
	}
	return nil
}

// GetByID returns the report or report.ErrNotFound.
func (s *Store) GetByID(ctx context.Context, id uuid.UUID) (domain.Report, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+reportColumns+` FROM community_reports WHERE id = $1`, id)

	r, err := scanReport(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Report{}, report.ErrNotFound
		}
		return domain.Report{}, fmt.Errorf("get report: %w", err)
	}
	return r, nil
}

// CountNearbySameType counts same-type reports inside the degree box around
// the center point, reported at or after since, excluding excludeID. The
// tolerance applies independently to latitude and longitude; great-circle
// distance is intentionally not computed.
func (s *Store) CountNearbySameType(ctx context.Context, eventType string, lat, lon, tolerance float64, since time.Time, excludeID uuid.UUID) (int, error) {
	var count int
	err := s.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM community_reports
		WHERE event_type = $1
		  AND reported_at >= $2
		  AND id <> $3
		  AND ABS(latitude - $4) <= $6
		  AND ABS(longitude - $5) <= $6`,
		eventType, since, excludeID, lat, lon, tolerance,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count nearby reports: %w", err)
	}
	return count, nil
}

// UpdateVerification atomically updates a report's verification fields.
func (s *Store) UpdateVerification(ctx context.Context, id uuid.UUID, upd report.VerificationUpdate) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE community_reports
		SET verification_status = $2, trust_score = $3, verification_method = $4, verified_at = $5
		WHERE id = $1`,
		id, upd.Status, upd.TrustScore, upd.Method, upd.VerifiedAt,
	)
	if err != nil {
		return fmt.Errorf("update verification: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return report.ErrNotFound
	}
	return nil
}

// ListByFilters returns reports matching the filters, ordered by reported_at
// descending.
func (s *Store) ListByFilters(ctx context.Context, f report.Filters) ([]domain.Report, error) {
	var (
		conds []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.CountyID > 0 {
		conds = append(conds, "county_id = "+arg(f.CountyID))
	}
	if f.EventType != "" {
		conds = append(conds, "event_type = "+arg(f.EventType))
	}
	if f.Status != "" {
		conds = append(conds, "verification_status = "+arg(f.Status))
	}

	query := "SELECT " + reportColumns + " FROM community_reports"
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY reported_at DESC LIMIT " + arg(f.Limit) + " OFFSET " + arg(f.Offset)

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	defer rows.Close()

	return collectReports(rows)
}

// ListSince returns reports with reported_at >= since, optionally restricted
// to a county.
func (s *Store) ListSince(ctx context.Context, since time.Time, countyID int) ([]domain.Report, error) {
	query := "SELECT " + reportColumns + " FROM community_reports WHERE reported_at >= $1"
	args := []any{since}
	if countyID > 0 {
		query += " AND county_id = $2"
		args = append(args, countyID)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list reports since: %w", err)
	}
	defer rows.Close()

	return collectReports(rows)
}

// Ping verifies the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func collectReports(rows pgx.Rows) ([]domain.Report, error) {
	var reports []domain.Report
	for rows.Next() {
		r, err := scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("scan report: %w", err)
		}
		reports = append(reports, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reports: %w", err)
	}
	return reports, nil
}

func scanReport(row pgx.Row) (domain.Report, error) {
	var (
		r                     domain.Report
		phone, name, imageURL *string
		method                *string
	)
	err := row.Scan(
		&r.ID, &r.CountyID, &r.Latitude, &r.Longitude, &r.LocationName,
		&r.EventType, &r.Severity, &r.Description, &phone, &name, &imageURL,
		&r.VerificationStatus, &r.TrustScore, &method,
		&r.EventDate, &r.ReportedAt, &r.VerifiedAt,
	)
	if err != nil {
		return domain.Report{}, err
	}
	r.ReporterPhone = deref(phone)
	r.ReporterName = deref(name)
	r.ImageURL = deref(imageURL)
	r.VerificationMethod = deref(method)
	return r, nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
