// Package report implements the intake service and verification engine for
// community climate reports.
package report

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/savannawatch/climate-watch-api/internal/domain"
	"github.com/savannawatch/climate-watch-api/internal/observability"
)

// ErrNotFound is returned by Store implementations when no report matches
// the requested id.
var ErrNotFound = errors.New("report not found")

// Store is the durable report store.
type Store interface {
	// Insert atomically creates a new report row.
	Insert(ctx context.Context, r *domain.Report) error

	// GetByID returns the report or ErrNotFound.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Report, error)

	// CountNearbySameType counts reports of the given event type reported at
	// or after since, whose latitude and longitude each lie within tolerance
	// degrees of the center point, excluding excludeID.
	CountNearbySameType(ctx context.Context, eventType string, lat, lon, tolerance float64, since time.Time, excludeID uuid.UUID) (int, error)

	// UpdateVerification atomically updates a report's verification fields.
	UpdateVerification(ctx context.Context, id uuid.UUID, upd VerificationUpdate) error

	// ListByFilters returns reports matching the filters, ordered by
	// reported_at descending.
	ListByFilters(ctx context.Context, f Filters) ([]domain.Report, error)

	// ListSince returns reports with reported_at >= since, optionally
	// restricted to a county (countyID > 0).
	ListSince(ctx context.Context, since time.Time, countyID int) ([]domain.Report, error)

	// Ping verifies the backing store is reachable.
	Ping(ctx context.Context) error
}

// VerificationUpdate is the partial update applied by a verification pass.
type VerificationUpdate struct {
	Status     string
	TrustScore float64
	Method     string
	VerifiedAt *time.Time
}

// Filters narrows a report listing. Zero values mean "no filter".
type Filters struct {
	CountyID  int
	EventType string
	Status    string
	Limit     int
	Offset    int
}

// AlertDelivery is the result of one dispatch call.
type AlertDelivery struct {
	Success   bool `json:"success"`
	SentCount int  `json:"sent_count"`
}

// AlertDispatcher delivers a message to all active subscribers of a county
// whose subscription covers the alert type. Zero matching subscribers is a
// successful delivery, not an error.
type AlertDispatcher interface {
	SendWeatherAlert(ctx context.Context, countyID int, alertType, message string) (AlertDelivery, error)
}

// EventPublisher pushes verified reports onto a stream for downstream
// consumers. A nil publisher disables publishing.
type EventPublisher interface {
	PublishVerified(ctx context.Context, r domain.Report, outcome VerificationOutcome) error
}

// VerificationOutcome is the audit-friendly result of one verification pass.
type VerificationOutcome struct {
	ReportID           uuid.UUID `json:"report_id"`
	VerificationStatus string    `json:"verification_status"`
	TrustScore         float64   `json:"trust_score"`
	VerificationMethod string    `json:"verification_method"`
	NearbyReports      int       `json:"nearby_reports"`
}

// SubmitResult is the intake response. Outcome is nil when the inline
// verification pass failed after a successful insert; the report is then
// persisted in its pre-verification state.
type SubmitResult struct {
	ReportID uuid.UUID
	Outcome  *VerificationOutcome
}

// Service is the report intake service and verification engine.
type Service struct {
	store      Store
	dispatcher AlertDispatcher
	publisher  EventPublisher
	locator    domain.CountyLocator
	logger     *slog.Logger
	metrics    *observability.Metrics

	// fallbackCounty is assigned when coordinates resolve to no county.
	fallbackCounty int
}

// New creates a Service. publisher may be nil to disable stream publishing;
// locator may be nil to always assign the fallback county.
func New(store Store, dispatcher AlertDispatcher, publisher EventPublisher, locator domain.CountyLocator,
	logger *slog.Logger, metrics *observability.Metrics, fallbackCounty int) *Service {
	return &Service{
		store:          store,
		dispatcher:     dispatcher,
		publisher:      publisher,
		locator:        locator,
		logger:         logger,
		metrics:        metrics,
		fallbackCounty: fallbackCounty,
	}
}

// Submit validates and persists a new report, then runs the verification
// pass inline. Validation failures reject the request before any write.
// A verification failure after a successful insert is logged and swallowed:
// the stored report is the intake outcome, scoring is not.
func (s *Service) Submit(ctx context.Context, p domain.SubmitParams) (SubmitResult, error) {
	const op = "report.submit"

	eventDate, err := p.Validate()
	if err != nil {
		return SubmitResult{}, err
	}

	countyID, ok := s.locateCounty(p.Latitude, p.Longitude)
	if !ok {
		countyID = s.fallbackCounty
		s.logger.Debug("county resolution failed, using fallback",
			"lat", p.Latitude, "lon", p.Longitude, "fallback_county", countyID)
	}

	r := &domain.Report{
		ID:                 uuid.New(),
		CountyID:           countyID,
		Latitude:           p.Latitude,
		Longitude:          p.Longitude,
		LocationName:       p.LocationName,
		EventType:          p.EventType,
		Severity:           p.Severity,
		Description:        p.Description,
		ReporterPhone:      p.ReporterPhone,
		ReporterName:       p.ReporterName,
		ImageURL:           p.ImageURL,
		VerificationStatus: domain.StatusUnverified,
		TrustScore:         0.0,
		EventDate:          eventDate,
		ReportedAt:         domain.Now().UTC(),
	}

	if err := s.store.Insert(ctx, r); err != nil {
		return SubmitResult{}, domain.WrapStorage(err, op, "failed to store report")
	}
	s.metrics.ReportsSubmitted.WithLabelValues(r.EventType).Inc()

	outcome, err := s.Verify(ctx, r.ID)
	if err != nil {
		s.logger.Error("verification failed after intake, report kept unverified",
			"report_id", r.ID, "error", err)
		return SubmitResult{ReportID: r.ID}, nil
	}

	return SubmitResult{ReportID: r.ID, Outcome: &outcome}, nil
}

func (s *Service) locateCounty(lat, lon float64) (int, bool) {
	if s.locator == nil {
		return 0, false
	}
	return s.locator.LocateCounty(lat, lon)
}

// Get returns a single report by id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (domain.Report, error) {
	const op = "report.get"

	r, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return domain.Report{}, domain.NotFound(op, "report", id.String())
		}
		return domain.Report{}, domain.WrapStorage(err, op, "failed to load report")
	}
	return r, nil
}

// List returns reports matching the filters, most recent first.
func (s *Service) List(ctx context.Context, f Filters) ([]domain.Report, error) {
	const op = "report.list"

	if f.Limit <= 0 {
		f.Limit = 50
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	reports, err := s.store.ListByFilters(ctx, f)
	if err != nil {
		return nil, domain.WrapStorage(err, op, "failed to list reports")
	}
	return reports, nil
}

// CheckReadiness reports whether the backing store is reachable.
func (s *Service) CheckReadiness(ctx context.Context) error {
	return s.store.Ping(ctx)
}
