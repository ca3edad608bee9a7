package report

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/savannawatch/climate-watch-api/internal/domain"
)

// Verify re-evaluates a report against the clustering policy and persists
// the outcome. It is a re-evaluation, not a cache: repeated calls may change
// the outcome as corroborating reports arrive. When the new status is
// verified, an alert is dispatched and the report is published downstream;
// failures in either side effect are logged but never unwind the persisted
// outcome.
func (s *Service) Verify(ctx context.Context, id uuid.UUID) (VerificationOutcome, error) {
	const op = "report.verify"

	r, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return VerificationOutcome{}, domain.NotFound(op, "report", id.String())
		}
		return VerificationOutcome{}, domain.WrapStorage(err, op, "failed to load report")
	}

	now := domain.Now().UTC()
	since := now.Add(-domain.ClusterWindow)

	nearby, err := s.store.CountNearbySameType(ctx, r.EventType, r.Latitude, r.Longitude,
		domain.ProximityToleranceDegrees, since, r.ID)
	if err != nil {
		return VerificationOutcome{}, domain.WrapStorage(err, op, "clustering query failed")
	}

	decision := domain.DecideVerification(nearby, r.ReporterPhone, r.Description)

	upd := VerificationUpdate{
		Status:     decision.Status,
		TrustScore: decision.TrustScore,
		Method:     decision.Method,
	}
	if decision.Status == domain.StatusVerified {
		verifiedAt := now
		upd.VerifiedAt = &verifiedAt
	}

	if err := s.store.UpdateVerification(ctx, r.ID, upd); err != nil {
		return VerificationOutcome{}, domain.WrapStorage(err, op, "failed to update verification state")
	}

	s.metrics.VerificationOutcomes.WithLabelValues(decision.Status).Inc()
	s.metrics.NearbyReports.Observe(float64(nearby))

	outcome := VerificationOutcome{
		ReportID:           r.ID,
		VerificationStatus: decision.Status,
		TrustScore:         decision.TrustScore,
		VerificationMethod: decision.Method,
		NearbyReports:      nearby,
	}

	if decision.Status == domain.StatusVerified {
		r.VerificationStatus = decision.Status
		r.TrustScore = decision.TrustScore
		r.VerificationMethod = decision.Method
		r.VerifiedAt = upd.VerifiedAt

		s.dispatchAlert(ctx, r)
		s.publishVerified(ctx, r, outcome)
	}

	return outcome, nil
}

// dispatchAlert sends the county-wide SMS alert for a verified report.
// Dispatch runs after the status update has been persisted, so failures are
// logged and counted but never surfaced to the caller.
func (s *Service) dispatchAlert(ctx context.Context, r domain.Report) {
	if s.dispatcher == nil {
		return
	}

	delivery, err := s.dispatcher.SendWeatherAlert(ctx, r.CountyID, r.EventType, domain.AlertMessage(r))
	if err != nil {
		s.metrics.AlertFailures.Inc()
		s.logger.Error("alert dispatch failed",
			"report_id", r.ID, "county_id", r.CountyID, "alert_type", r.EventType, "error", err)
		return
	}

	s.metrics.AlertsSent.Add(float64(delivery.SentCount))
	s.logger.Info("alert dispatched",
		"report_id", r.ID, "county_id", r.CountyID, "alert_type", r.EventType,
		"sent_count", delivery.SentCount)
}

func (s *Service) publishVerified(ctx context.Context, r domain.Report, outcome VerificationOutcome) {
	if s.publisher == nil {
		return
	}

	if err := s.publisher.PublishVerified(ctx, r, outcome); err != nil {
		s.logger.Warn("verified event publish failed", "report_id", r.ID, "error", err)
		return
	}
	s.metrics.EventsPublished.Inc()
}
