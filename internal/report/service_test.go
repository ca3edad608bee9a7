package report

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/savannawatch/climate-watch-api/internal/domain"
	"github.com/savannawatch/climate-watch-api/internal/observability"
)

// fakeStore is an in-memory Store. CountNearbySameType evaluates the real
// proximity predicate against the stored reports unless nearbyOverride is
// set, so clustering tests exercise the same box/window semantics as the
// SQL store.
type fakeStore struct {
	mu      sync.Mutex
	reports map[uuid.UUID]domain.Report

	nearbyOverride *int

	insertErr error
	getErr    error
	countErr  error
	updateErr error
	listErr   error
	pingErr   error

	updates []VerificationUpdate

	lastCountSince     time.Time
	lastCountTolerance float64
	lastCountExclude   uuid.UUID
}

func newFakeStore() *fakeStore {
	return &fakeStore{reports: make(map[uuid.UUID]domain.Report)}
}

func (f *fakeStore) Insert(_ context.Context, r *domain.Report) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reports[r.ID] = *r
	return nil
}

func (f *fakeStore) GetByID(_ context.Context, id uuid.UUID) (domain.Report, error) {
	if f.getErr != nil {
		return domain.Report{}, f.getErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.reports[id]
	if !ok {
		return domain.Report{}, ErrNotFound
	}
	return r, nil
}

func (f *fakeStore) CountNearbySameType(_ context.Context, eventType string, lat, lon, tolerance float64, since time.Time, excludeID uuid.UUID) (int, error) {
	if f.countErr != nil {
		return 0, f.countErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastCountSince = since
	f.lastCountTolerance = tolerance
	f.lastCountExclude = excludeID

	if f.nearbyOverride != nil {
		return *f.nearbyOverride, nil
	}
	count := 0
	for _, r := range f.reports {
		if r.ID == excludeID || r.EventType != eventType {
			continue
		}
		if r.ReportedAt.Before(since) {
			continue
		}
		if math.Abs(r.Latitude-lat) > tolerance || math.Abs(r.Longitude-lon) > tolerance {
			continue
		}
		count++
	}
	return count, nil
}

func (f *fakeStore) UpdateVerification(_ context.Context, id uuid.UUID, upd VerificationUpdate) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.reports[id]
	if !ok {
		return ErrNotFound
	}
	r.VerificationStatus = upd.Status
	r.TrustScore = upd.TrustScore
	r.VerificationMethod = upd.Method
	r.VerifiedAt = upd.VerifiedAt
	f.reports[id] = r
	f.updates = append(f.updates, upd)
	return nil
}

func (f *fakeStore) ListByFilters(_ context.Context, fl Filters) ([]domain.Report, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Report
	for _, r := range f.reports {
		if fl.CountyID > 0 && r.CountyID != fl.CountyID {
			continue
		}
		if fl.EventType != "" && r.EventType != fl.EventType {
			continue
		}
		if fl.Status != "" && r.VerificationStatus != fl.Status {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeStore) ListSince(_ context.Context, since time.Time, countyID int) ([]domain.Report, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Report
	for _, r := range f.reports {
		if r.ReportedAt.Before(since) {
			continue
		}
		if countyID > 0 && r.CountyID != countyID {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeStore) Ping(context.Context) error { return f.pingErr }

func (f *fakeStore) get(t *testing.T, id uuid.UUID) domain.Report {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.reports[id]
	require.True(t, ok, "report %s not stored", id)
	return r
}

type alertCall struct {
	countyID  int
	alertType string
	message   string
}

type fakeDispatcher struct {
	mu       sync.Mutex
	calls    []alertCall
	delivery AlertDelivery
	err      error
}

func (f *fakeDispatcher) SendWeatherAlert(_ context.Context, countyID int, alertType, message string) (AlertDelivery, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, alertCall{countyID: countyID, alertType: alertType, message: message})
	if f.err != nil {
		return AlertDelivery{}, f.err
	}
	return f.delivery, nil
}

type fakePublisher struct {
	mu        sync.Mutex
	published []VerificationOutcome
	err       error
}

func (f *fakePublisher) PublishVerified(_ context.Context, _ domain.Report, outcome VerificationOutcome) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.published = append(f.published, outcome)
	return f.err
}

type fixedLocator struct {
	countyID int
	ok       bool
}

func (l fixedLocator) LocateCounty(float64, float64) (int, bool) { return l.countyID, l.ok }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestService(store Store, dispatcher AlertDispatcher, publisher EventPublisher, locator domain.CountyLocator) *Service {
	return New(store, dispatcher, publisher, locator, discardLogger(), observability.NewMetricsForTesting(), 1)
}

func freezeTime(t *testing.T, at time.Time) {
	t.Helper()
	domain.SetClock(clockwork.NewFakeClockAt(at))
	t.Cleanup(func() { domain.SetClock(nil) })
}

func floodParams() domain.SubmitParams {
	return domain.SubmitParams{
		EventType:    domain.EventFlood,
		Severity:     domain.SeverityHigh,
		Description:  "Water levels rising fast",
		Latitude:     0.05,
		Longitude:    34.1,
		LocationName: "Budalangi",
	}
}

func TestSubmit(t *testing.T) {
	now := time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)

	t.Run("persists intake state before verification", func(t *testing.T) {
		freezeTime(t, now)
		store := newFakeStore()
		svc := newTestService(store, nil, nil, fixedLocator{countyID: 39, ok: true})

		result, err := svc.Submit(context.Background(), floodParams())

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, result.ReportID)
		require.NotNil(t, result.Outcome)

		stored := store.get(t, result.ReportID)
		assert.Equal(t, 39, stored.CountyID)
		assert.Equal(t, now, stored.ReportedAt)
		assert.Equal(t, now, stored.EventDate)

		// A lone report without a phone stays unverified at zero trust.
		assert.Equal(t, domain.StatusUnverified, stored.VerificationStatus)
		assert.Equal(t, 0.0, stored.TrustScore)
		assert.Equal(t, domain.StatusUnverified, result.Outcome.VerificationStatus)
		assert.Equal(t, 0, result.Outcome.NearbyReports)
	})

	t.Run("falls back when coordinates resolve to no county", func(t *testing.T) {
		store := newFakeStore()
		svc := newTestService(store, nil, nil, fixedLocator{ok: false})

		result, err := svc.Submit(context.Background(), floodParams())

		require.NoError(t, err)
		assert.Equal(t, 1, store.get(t, result.ReportID).CountyID)
	})

	t.Run("nil locator always assigns fallback", func(t *testing.T) {
		store := newFakeStore()
		svc := newTestService(store, nil, nil, nil)

		result, err := svc.Submit(context.Background(), floodParams())

		require.NoError(t, err)
		assert.Equal(t, 1, store.get(t, result.ReportID).CountyID)
	})

	t.Run("validation failure writes nothing", func(t *testing.T) {
		store := newFakeStore()
		svc := newTestService(store, nil, nil, nil)
		p := floodParams()
		p.EventType = "tsunami"

		_, err := svc.Submit(context.Background(), p)

		require.Error(t, err)
		assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
		assert.Empty(t, store.reports)
	})

	t.Run("insert failure surfaces as storage error", func(t *testing.T) {
		store := newFakeStore()
		store.insertErr = errors.New("pool exhausted")
		svc := newTestService(store, nil, nil, nil)

		_, err := svc.Submit(context.Background(), floodParams())

		require.Error(t, err)
		assert.Equal(t, domain.ESTORAGE, domain.ErrorCode(err))
	})

	t.Run("verification failure after insert is swallowed", func(t *testing.T) {
		store := newFakeStore()
		store.countErr = errors.New("query timeout")
		svc := newTestService(store, nil, nil, nil)

		result, err := svc.Submit(context.Background(), floodParams())

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, result.ReportID)
		assert.Nil(t, result.Outcome)

		stored := store.get(t, result.ReportID)
		assert.Equal(t, domain.StatusUnverified, stored.VerificationStatus)
		assert.Equal(t, 0.0, stored.TrustScore)
	})
}

func seedReport(t *testing.T, store *fakeStore, r domain.Report) domain.Report {
	t.Helper()
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.VerificationStatus == "" {
		r.VerificationStatus = domain.StatusUnverified
	}
	require.NoError(t, store.Insert(context.Background(), &r))
	return r
}

func TestVerify(t *testing.T) {
	now := time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)
	freezeTime(t, now)

	nearbyBase := domain.Report{
		CountyID:   39,
		EventType:  domain.EventFlood,
		Severity:   domain.SeverityHigh,
		Latitude:   0.05,
		Longitude:  34.1,
		ReportedAt: now.Add(-1 * time.Hour),
	}

	t.Run("three nearby reports verify by clustering", func(t *testing.T) {
		store := newFakeStore()
		dispatcher := &fakeDispatcher{delivery: AlertDelivery{Success: true, SentCount: 12}}
		publisher := &fakePublisher{}
		svc := newTestService(store, dispatcher, publisher, nil)

		subject := seedReport(t, store, domain.Report{
			CountyID:     39,
			EventType:    domain.EventFlood,
			Severity:     domain.SeverityHigh,
			Description:  "Water levels rising fast",
			LocationName: "Budalangi",
			Latitude:     0.05,
			Longitude:    34.1,
			ReportedAt:   now,
		})
		for i := 0; i < 3; i++ {
			seedReport(t, store, nearbyBase)
		}

		outcome, err := svc.Verify(context.Background(), subject.ID)

		require.NoError(t, err)
		assert.Equal(t, domain.StatusVerified, outcome.VerificationStatus)
		assert.Equal(t, 0.8, outcome.TrustScore)
		assert.Equal(t, domain.MethodClustering, outcome.VerificationMethod)
		assert.Equal(t, 3, outcome.NearbyReports)

		stored := store.get(t, subject.ID)
		assert.Equal(t, domain.StatusVerified, stored.VerificationStatus)
		require.NotNil(t, stored.VerifiedAt)
		assert.Equal(t, now, *stored.VerifiedAt)

		require.Len(t, dispatcher.calls, 1)
		call := dispatcher.calls[0]
		assert.Equal(t, 39, call.countyID)
		assert.Equal(t, domain.EventFlood, call.alertType)
		assert.Contains(t, call.message, "FLOOD")
		assert.Contains(t, call.message, "HIGH")
		assert.Contains(t, call.message, "Budalangi")

		require.Len(t, publisher.published, 1)
		assert.Equal(t, subject.ID, publisher.published[0].ReportID)
	})

	t.Run("clustering query uses window, tolerance, and self-exclusion", func(t *testing.T) {
		store := newFakeStore()
		svc := newTestService(store, nil, nil, nil)
		subject := seedReport(t, store, nearbyBase)

		_, err := svc.Verify(context.Background(), subject.ID)

		require.NoError(t, err)
		assert.Equal(t, now.Add(-24*time.Hour), store.lastCountSince)
		assert.Equal(t, 0.1, store.lastCountTolerance)
		assert.Equal(t, subject.ID, store.lastCountExclude)
	})

	t.Run("two nearby with phone and detailed description go pending", func(t *testing.T) {
		store := newFakeStore()
		dispatcher := &fakeDispatcher{}
		svc := newTestService(store, dispatcher, nil, nil)

		subject := seedReport(t, store, domain.Report{
			CountyID:      39,
			EventType:     domain.EventFlood,
			Description:   strings.Repeat("flood water has covered the access road ", 2),
			ReporterPhone: "+254712345678",
			Latitude:      0.05,
			Longitude:     34.1,
			ReportedAt:    domain.Now().UTC(),
		})
		seedReport(t, store, nearbyBase)
		seedReport(t, store, nearbyBase)

		outcome, err := svc.Verify(context.Background(), subject.ID)

		require.NoError(t, err)
		assert.Equal(t, domain.StatusPending, outcome.VerificationStatus)
		assert.Equal(t, 0.6, outcome.TrustScore)
		assert.Equal(t, domain.MethodManualReview, outcome.VerificationMethod)
		assert.Equal(t, 2, outcome.NearbyReports)

		assert.Nil(t, store.get(t, subject.ID).VerifiedAt)
		assert.Empty(t, dispatcher.calls, "pending reports never trigger alerts")
	})

	t.Run("no corroboration stays unverified", func(t *testing.T) {
		store := newFakeStore()
		dispatcher := &fakeDispatcher{}
		publisher := &fakePublisher{}
		svc := newTestService(store, dispatcher, publisher, nil)
		subject := seedReport(t, store, nearbyBase)

		outcome, err := svc.Verify(context.Background(), subject.ID)

		require.NoError(t, err)
		assert.Equal(t, domain.StatusUnverified, outcome.VerificationStatus)
		assert.Equal(t, 0.0, outcome.TrustScore)
		assert.Empty(t, dispatcher.calls)
		assert.Empty(t, publisher.published)
	})

	t.Run("unknown report id", func(t *testing.T) {
		svc := newTestService(newFakeStore(), nil, nil, nil)

		_, err := svc.Verify(context.Background(), uuid.New())

		require.Error(t, err)
		assert.Equal(t, domain.ENOTFOUND, domain.ErrorCode(err))
	})

	t.Run("clustering query failure aborts without update", func(t *testing.T) {
		store := newFakeStore()
		subject := seedReport(t, store, nearbyBase)
		store.countErr = errors.New("query timeout")
		svc := newTestService(store, nil, nil, nil)

		_, err := svc.Verify(context.Background(), subject.ID)

		require.Error(t, err)
		assert.Equal(t, domain.ESTORAGE, domain.ErrorCode(err))
		assert.Empty(t, store.updates)
	})

	t.Run("update failure surfaces as storage error", func(t *testing.T) {
		store := newFakeStore()
		subject := seedReport(t, store, nearbyBase)
		store.updateErr = errors.New("write conflict")
		svc := newTestService(store, nil, nil, nil)

		_, err := svc.Verify(context.Background(), subject.ID)

		require.Error(t, err)
		assert.Equal(t, domain.ESTORAGE, domain.ErrorCode(err))
	})

	t.Run("dispatch failure never unwinds the persisted outcome", func(t *testing.T) {
		store := newFakeStore()
		dispatcher := &fakeDispatcher{err: errors.New("gateway unreachable")}
		svc := newTestService(store, dispatcher, nil, nil)

		subject := seedReport(t, store, nearbyBase)
		for i := 0; i < 3; i++ {
			seedReport(t, store, nearbyBase)
		}

		outcome, err := svc.Verify(context.Background(), subject.ID)

		require.NoError(t, err)
		assert.Equal(t, domain.StatusVerified, outcome.VerificationStatus)
		assert.Equal(t, domain.StatusVerified, store.get(t, subject.ID).VerificationStatus)
		assert.Len(t, dispatcher.calls, 1)
	})

	t.Run("publish failure never unwinds the persisted outcome", func(t *testing.T) {
		store := newFakeStore()
		publisher := &fakePublisher{err: errors.New("broker down")}
		svc := newTestService(store, nil, publisher, nil)

		subject := seedReport(t, store, nearbyBase)
		for i := 0; i < 3; i++ {
			seedReport(t, store, nearbyBase)
		}

		outcome, err := svc.Verify(context.Background(), subject.ID)

		require.NoError(t, err)
		assert.Equal(t, domain.StatusVerified, outcome.VerificationStatus)
	})

	t.Run("repeated passes with stable inputs agree", func(t *testing.T) {
		store := newFakeStore()
		svc := newTestService(store, nil, nil, nil)
		subject := seedReport(t, store, nearbyBase)
		seedReport(t, store, nearbyBase)

		first, err := svc.Verify(context.Background(), subject.ID)
		require.NoError(t, err)
		second, err := svc.Verify(context.Background(), subject.ID)
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})

	t.Run("later corroboration upgrades an unverified report", func(t *testing.T) {
		store := newFakeStore()
		svc := newTestService(store, nil, nil, nil)
		subject := seedReport(t, store, nearbyBase)
		seedReport(t, store, nearbyBase)
		seedReport(t, store, nearbyBase)

		outcome, err := svc.Verify(context.Background(), subject.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusUnverified, outcome.VerificationStatus)

		seedReport(t, store, nearbyBase)

		outcome, err = svc.Verify(context.Background(), subject.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusVerified, outcome.VerificationStatus)
		assert.Equal(t, 0.8, outcome.TrustScore)
	})

	t.Run("automatic passes never mark a report false", func(t *testing.T) {
		store := newFakeStore()
		svc := newTestService(store, nil, nil, nil)
		subject := seedReport(t, store, nearbyBase)

		for i := 0; i < 5; i++ {
			outcome, err := svc.Verify(context.Background(), subject.ID)
			require.NoError(t, err)
			assert.NotEqual(t, domain.StatusFalse, outcome.VerificationStatus)
			seedReport(t, store, nearbyBase)
		}
		for _, upd := range store.updates {
			assert.NotEqual(t, domain.StatusFalse, upd.Status)
		}
	})

	t.Run("distant same-type reports do not corroborate", func(t *testing.T) {
		store := newFakeStore()
		svc := newTestService(store, nil, nil, nil)
		subject := seedReport(t, store, nearbyBase)

		far := nearbyBase
		far.Latitude = nearbyBase.Latitude + 0.2
		for i := 0; i < 3; i++ {
			seedReport(t, store, far)
		}

		outcome, err := svc.Verify(context.Background(), subject.ID)

		require.NoError(t, err)
		assert.Equal(t, domain.StatusUnverified, outcome.VerificationStatus)
		assert.Equal(t, 0, outcome.NearbyReports)
	})

	t.Run("stale reports outside the window do not corroborate", func(t *testing.T) {
		store := newFakeStore()
		svc := newTestService(store, nil, nil, nil)
		subject := seedReport(t, store, domain.Report{
			EventType: domain.EventFlood, Latitude: 0.05, Longitude: 34.1, ReportedAt: now,
		})

		stale := nearbyBase
		stale.ReportedAt = now.Add(-25 * time.Hour)
		for i := 0; i < 3; i++ {
			seedReport(t, store, stale)
		}

		outcome, err := svc.Verify(context.Background(), subject.ID)

		require.NoError(t, err)
		assert.Equal(t, 0, outcome.NearbyReports)
		assert.Equal(t, domain.StatusUnverified, outcome.VerificationStatus)
	})
}

// TestFloodClusterScenario walks the canonical intake sequence: three flood
// reports arrive in the same area within hours; the third submission tips
// the earlier two over the threshold when re-verified, and only verified
// reports trigger alerts.
func TestFloodClusterScenario(t *testing.T) {
	now := time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)
	freezeTime(t, now)

	store := newFakeStore()
	dispatcher := &fakeDispatcher{delivery: AlertDelivery{Success: true, SentCount: 40}}
	svc := newTestService(store, dispatcher, nil, fixedLocator{countyID: 39, ok: true})

	submit := func(lat, lon float64) SubmitResult {
		p := floodParams()
		p.Latitude, p.Longitude = lat, lon
		result, err := svc.Submit(context.Background(), p)
		require.NoError(t, err)
		return result
	}

	a := submit(0.05, 34.10)
	b := submit(0.06, 34.11)
	c := submit(0.04, 34.09)

	// Each report only sees the ones submitted before it.
	assert.Equal(t, 0, a.Outcome.NearbyReports)
	assert.Equal(t, domain.StatusUnverified, a.Outcome.VerificationStatus)
	assert.Equal(t, 1, b.Outcome.NearbyReports)
	assert.Equal(t, 2, c.Outcome.NearbyReports)
	assert.Empty(t, dispatcher.calls)

	// A fourth report sees the other three, verifies itself at submit time,
	// and fires the first alert.
	d := submit(0.05, 34.105)
	assert.Equal(t, 3, d.Outcome.NearbyReports)
	assert.Equal(t, domain.StatusVerified, d.Outcome.VerificationStatus)
	require.Len(t, dispatcher.calls, 1)

	// Re-verifying A now clears the threshold too and fires a second alert.
	outcome, err := svc.Verify(context.Background(), a.ReportID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusVerified, outcome.VerificationStatus)
	assert.Equal(t, 3, outcome.NearbyReports)

	require.Len(t, dispatcher.calls, 2)
	assert.Equal(t, 39, dispatcher.calls[len(dispatcher.calls)-1].countyID)
}

func TestGet(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, nil, nil, nil)
	stored := seedReport(t, store, domain.Report{EventType: domain.EventDrought})

	t.Run("found", func(t *testing.T) {
		got, err := svc.Get(context.Background(), stored.ID)
		require.NoError(t, err)
		assert.Equal(t, stored.ID, got.ID)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := svc.Get(context.Background(), uuid.New())
		require.Error(t, err)
		assert.Equal(t, domain.ENOTFOUND, domain.ErrorCode(err))
	})
}

func TestList(t *testing.T) {
	t.Run("defaults limit and offset", func(t *testing.T) {
		var captured Filters
		store := &capturingStore{fakeStore: newFakeStore(), captured: &captured}
		svc := newTestService(store, nil, nil, nil)

		_, err := svc.List(context.Background(), Filters{Offset: -2})

		require.NoError(t, err)
		assert.Equal(t, 50, captured.Limit)
		assert.Equal(t, 0, captured.Offset)
	})

	t.Run("storage failure", func(t *testing.T) {
		store := newFakeStore()
		store.listErr = errors.New("down")
		svc := newTestService(store, nil, nil, nil)

		_, err := svc.List(context.Background(), Filters{})
		require.Error(t, err)
		assert.Equal(t, domain.ESTORAGE, domain.ErrorCode(err))
	})
}

type capturingStore struct {
	*fakeStore
	captured *Filters
}

func (c *capturingStore) ListByFilters(ctx context.Context, f Filters) ([]domain.Report, error) {
	*c.captured = f
	return c.fakeStore.ListByFilters(ctx, f)
}

func TestSummarize(t *testing.T) {
	now := time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)
	freezeTime(t, now)

	store := newFakeStore()
	svc := newTestService(store, nil, nil, nil)

	seedReport(t, store, domain.Report{
		CountyID: 39, EventType: domain.EventFlood, Severity: domain.SeverityHigh,
		VerificationStatus: domain.StatusVerified, TrustScore: 0.8,
		ReportedAt: now.Add(-time.Hour),
	})
	seedReport(t, store, domain.Report{
		CountyID: 39, EventType: domain.EventFlood, Severity: domain.SeverityMedium,
		VerificationStatus: domain.StatusPending, TrustScore: 0.6,
		ReportedAt: now.Add(-2 * time.Hour),
	})
	seedReport(t, store, domain.Report{
		CountyID: 23, EventType: domain.EventDrought, Severity: domain.SeverityLow,
		VerificationStatus: domain.StatusUnverified, TrustScore: 0.0,
		ReportedAt: now.Add(-3 * time.Hour),
	})
	// Outside the default 30-day window.
	seedReport(t, store, domain.Report{
		CountyID: 39, EventType: domain.EventStorm,
		VerificationStatus: domain.StatusVerified, TrustScore: 0.8,
		ReportedAt: now.Add(-31 * 24 * time.Hour),
	})

	t.Run("all counties, default window", func(t *testing.T) {
		stats, err := svc.Summarize(context.Background(), 0, 0)

		require.NoError(t, err)
		assert.Equal(t, 3, stats.TotalReports)
		assert.Equal(t, 1, stats.VerifiedReports)
		assert.Equal(t, 1, stats.PendingReports)
		assert.Equal(t, 1, stats.UnverifiedReports)
		assert.Equal(t, map[string]int{domain.EventFlood: 2, domain.EventDrought: 1}, stats.ByEventType)
		assert.Equal(t, map[string]int{
			domain.SeverityHigh: 1, domain.SeverityMedium: 1, domain.SeverityLow: 1,
		}, stats.BySeverity)
		assert.InDelta(t, (0.8+0.6+0.0)/3, stats.AverageTrustScore, 1e-9)
	})

	t.Run("county filter", func(t *testing.T) {
		stats, err := svc.Summarize(context.Background(), 23, 30)

		require.NoError(t, err)
		assert.Equal(t, 1, stats.TotalReports)
		assert.Equal(t, map[string]int{domain.EventDrought: 1}, stats.ByEventType)
	})

	t.Run("empty window", func(t *testing.T) {
		stats, err := svc.Summarize(context.Background(), 47, 30)

		require.NoError(t, err)
		assert.Equal(t, 0, stats.TotalReports)
		assert.Equal(t, 0.0, stats.AverageTrustScore)
	})
}
