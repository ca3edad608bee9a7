// Command seed populates a development database with demo community reports
// clustered around county centers, plus a handful of alert subscriptions per
// county, then runs a verification pass over each report so that the
// clustering branches are all represented.
//
// Usage:
//
//	go run ./cmd/seed -database-url postgres://localhost:5432/climate_watch -per-county 4
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/savannawatch/climate-watch-api/internal/adapter/counties"
	"github.com/savannawatch/climate-watch-api/internal/adapter/postgres"
	"github.com/savannawatch/climate-watch-api/internal/domain"
	"github.com/savannawatch/climate-watch-api/internal/observability"
	"github.com/savannawatch/climate-watch-api/internal/report"
)

var eventTypes = []string{
	domain.EventFlood, domain.EventDrought, domain.EventCropDamage,
	domain.EventStorm, domain.EventHeatwave,
}

var severities = []string{
	domain.SeverityLow, domain.SeverityMedium, domain.SeverityHigh, domain.SeverityCritical,
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	databaseURL := flag.String("database-url", os.Getenv("DATABASE_URL"), "postgres connection string")
	perCounty := flag.Int("per-county", 4, "reports to create per county")
	seed := flag.Int64("seed", time.Now().UnixNano(), "random seed")
	flag.Parse()

	if *databaseURL == "" {
		return fmt.Errorf("-database-url or DATABASE_URL is required")
	}

	if err := postgres.Migrate(*databaseURL); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, *databaseURL)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer pool.Close()

	store := postgres.NewStore(pool)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := report.New(store, nil, nil, counties.NewLocator(),
		logger, observability.NewMetricsForTesting(), 1)

	rng := rand.New(rand.NewSource(*seed))
	now := time.Now().UTC()
	created := 0
	reachable := 0

	for _, county := range counties.All {
		centerLat := (county.North + county.South) / 2
		centerLon := (county.East + county.West) / 2

		// Same event type within a county so some clusters cross the
		// verification threshold.
		eventType := eventTypes[rng.Intn(len(eventTypes))]

		for _, sub := range demoSubscriptions(county.ID, rng) {
			if err := store.InsertSubscription(ctx, sub); err != nil {
				return fmt.Errorf("insert demo subscription: %w", err)
			}
			if sub.Wants(eventType) {
				reachable++
			}
		}

		for i := 0; i < *perCounty; i++ {
			r := &domain.Report{
				ID:           uuid.New(),
				CountyID:     county.ID,
				Latitude:     centerLat + (rng.Float64()-0.5)*0.1,
				Longitude:    centerLon + (rng.Float64()-0.5)*0.1,
				LocationName: county.Capital,
				EventType:    eventType,
				Severity:     severities[rng.Intn(len(severities))],
				Description: fmt.Sprintf("Demo %s report near %s generated by cmd/seed for clustering experiments.",
					eventType, county.Capital),
				ReporterPhone:      fmt.Sprintf("+2547%08d", rng.Intn(100000000)),
				VerificationStatus: domain.StatusUnverified,
				EventDate:          now.Add(-time.Duration(rng.Intn(12)) * time.Hour),
				ReportedAt:         now.Add(-time.Duration(rng.Intn(12)) * time.Hour),
			}
			if err := store.Insert(ctx, r); err != nil {
				return fmt.Errorf("insert demo report: %w", err)
			}
			created++

			if _, err := service.Verify(ctx, r.ID); err != nil {
				return fmt.Errorf("verify demo report: %w", err)
			}
		}
	}

	fmt.Printf("seeded %d reports across %d counties (%d subscribers reachable by the chosen alert types)\n",
		created, len(counties.All), reachable)
	return nil
}

// demoSubscriptions returns a small mixed set of subscriptions for a county:
// one wildcard, one typed, and one inactive number.
func demoSubscriptions(countyID int, rng *rand.Rand) []domain.Subscription {
	phone := func() string { return fmt.Sprintf("+2547%08d", rng.Intn(100000000)) }
	return []domain.Subscription{
		{PhoneNumber: phone(), CountyID: countyID, AlertTypes: []string{domain.AlertTypeAll}, Active: true},
		{PhoneNumber: phone(), CountyID: countyID, AlertTypes: []string{eventTypes[rng.Intn(len(eventTypes))]}, Active: true},
		{PhoneNumber: phone(), CountyID: countyID, AlertTypes: []string{domain.AlertTypeAll}, Active: false},
	}
}
