package report

import (
	"context"
	"time"

	"github.com/savannawatch/climate-watch-api/internal/domain"
)

// Stats aggregates report counts over a trailing window.
type Stats struct {
	TotalReports      int            `json:"total_reports"`
	VerifiedReports   int            `json:"verified_reports"`
	PendingReports    int            `json:"pending_reports"`
	UnverifiedReports int            `json:"unverified_reports"`
	ByEventType       map[string]int `json:"by_event_type"`
	BySeverity        map[string]int `json:"by_severity"`
	AverageTrustScore float64        `json:"average_trust_score"`
}

// Summarize aggregates reports from the trailing number of days, optionally
// restricted to a county (countyID > 0).
func (s *Service) Summarize(ctx context.Context, countyID, days int) (Stats, error) {
	const op = "report.stats"

	if days <= 0 {
		days = 30
	}
	since := domain.Now().UTC().Add(-time.Duration(days) * 24 * time.Hour)

	reports, err := s.store.ListSince(ctx, since, countyID)
	if err != nil {
		return Stats{}, domain.WrapStorage(err, op, "failed to load reports for stats")
	}

	stats := Stats{
		TotalReports: len(reports),
		ByEventType:  make(map[string]int),
		BySeverity:   make(map[string]int),
	}

	var trustSum float64
	for _, r := range reports {
		switch r.VerificationStatus {
		case domain.StatusVerified:
			stats.VerifiedReports++
		case domain.StatusPending:
			stats.PendingReports++
		case domain.StatusUnverified:
			stats.UnverifiedReports++
		}
		stats.ByEventType[r.EventType]++
		stats.BySeverity[r.Severity]++
		trustSum += r.TrustScore
	}

	if len(reports) > 0 {
		stats.AverageTrustScore = trustSum / float64(len(reports))
	}

	return stats, nil
}
