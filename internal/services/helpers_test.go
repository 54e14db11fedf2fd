package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/content"
	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/store"
	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/testutil"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
)

var fixedNow = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

// fixture wires the services over a fresh SQLite database.
type fixture struct {
	db         *gorm.DB
	registry   *content.Registry
	reports    *store.ReportStore
	metrics    *metrics.Metrics
	notifier   *recordingSink
	ingest     *ReportService
	aggregator *ReportAggregator
	engine     *ModerationService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := testutil.SetupTestDB(t)
	f := &fixture{
		db:       db,
		registry: testutil.Registry(db),
		reports:  store.NewReportStore(db),
		metrics:  metrics.New(prometheus.NewRegistry()),
		notifier: &recordingSink{},
	}
	users := store.NewUserStore(db)

	f.ingest = NewReportService(f.reports, users, f.metrics)
	f.ingest.now = func() time.Time { return fixedNow }
	f.aggregator = NewReportAggregator(f.reports, f.registry, 1)
	f.engine = NewModerationService(db, f.reports, users, store.NewSanctionStore(db), f.registry, f.notifier, f.metrics)
	f.engine.now = func() time.Time { return fixedNow }
	return f
}

func (f *fixture) user(t *testing.T, id int64, username string) *models.User {
	t.Helper()
	u := &models.User{ID: id, Username: username, Email: username + "@example.com", Role: models.RoleUser}
	if err := f.db.Create(u).Error; err != nil {
		t.Fatalf("create user %d: %s", id, err)
	}
	return u
}

func (f *fixture) post(t *testing.T, id, authorID int64) *models.Post {
	t.Helper()
	p := &models.Post{ID: id, AuthorID: authorID, Text: "buy followers now"}
	if err := f.db.Create(p).Error; err != nil {
		t.Fatalf("create post %d: %s", id, err)
	}
	return p
}

func (f *fixture) report(t *testing.T, id int64, targetType models.TargetType, targetID int64, status models.ReportStatus) *models.Report {
	t.Helper()
	r := &models.Report{
		ID:          id,
		ReporterID:  1,
		TargetType:  targetType,
		TargetID:    targetID,
		Reason:      "abusive",
		Status:      status,
		ActionTaken: models.ActionNone,
	}
	if err := f.db.Create(r).Error; err != nil {
		t.Fatalf("create report: %s", err)
	}
	return r
}

func (f *fixture) reload(t *testing.T, id int64) *models.Report {
	t.Helper()
	return testutil.ReloadReport(t, f.db, id)
}

type notification struct {
	userID  int64
	event   string
	payload map[string]interface{}
}

type recordingSink struct {
	mu   sync.Mutex
	sent []notification
}

func (s *recordingSink) Notify(_ context.Context, userID int64, eventType string, payload map[string]interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, notification{userID: userID, event: eventType, payload: payload})
}

func (s *recordingSink) events() []notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]notification(nil), s.sent...)
}

// failingSource wraps a real source and fails every delete.
type failingSource struct {
	content.Source
}

var errDeleteFailed = errors.New("disk on fire")

func (failingSource) Delete(context.Context, int64) error {
	return errDeleteFailed
}

// brokenSanctions records nothing and always fails.
type brokenSanctions struct{}

var errSanctionFailed = errors.New("sanction store offline")

func (brokenSanctions) ApplyBan(context.Context, int64, int64, string, time.Time) error {
	return errSanctionFailed
}

func (brokenSanctions) ApplySuspension(context.Context, int64, int64, string, int, time.Time) error {
	return errSanctionFailed
}

// failReportUpdates makes every UPDATE against the reports table fail.
func failReportUpdates(t *testing.T, db *gorm.DB) {
	t.Helper()
	err := db.Callback().Update().Before("gorm:update").Register("test:fail_reports", func(tx *gorm.DB) {
		if tx.Statement.Table == "reports" {
			_ = tx.AddError(errors.New("reports table locked"))
		}
	})
	if err != nil {
		t.Fatalf("register callback: %s", err)
	}
}
