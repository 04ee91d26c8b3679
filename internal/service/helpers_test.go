package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/msomdec/family-events/internal/domain"
	"github.com/msomdec/family-events/internal/fixtures"
	"github.com/msomdec/family-events/internal/repository/sqlite"
	"github.com/msomdec/family-events/internal/service"
	"github.com/prometheus/client_golang/prometheus"
)

const testSecret = "test-secret-key-for-unit-tests-0123456789"

// fixedNow sits between the seeded events of May and June 2025.
var fixedNow = time.Date(2025, 5, 12, 9, 0, 0, 0, time.UTC)

type testEnv struct {
	db       *sqlite.DB
	session  *service.Session
	identity *service.IdentityService
	events   *service.EventService
	notices  *service.Recorder
	metrics  *service.Metrics
}

// newTestEnv returns services over a fresh in-memory database seeded with
// the demo fixtures and nobody signed in.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := sqlite.New(sqlite.MemoryPath)
	if err != nil {
		t.Fatalf("New DB: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	if err := db.Migrate(ctx); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	set, err := fixtures.Default(time.UTC)
	if err != nil {
		t.Fatalf("fixtures: %v", err)
	}
	if err := set.Apply(ctx, db.Users(), db.Events(), db.Guests()); err != nil {
		t.Fatalf("seed: %v", err)
	}

	env := &testEnv{
		db:      db,
		session: service.NewSession(),
		notices: &service.Recorder{},
		metrics: service.NewMetrics(prometheus.NewRegistry()),
	}
	env.identity = service.NewIdentityService(db.Users(), env.session, testSecret, time.Hour, env.notices, env.metrics)
	env.events = service.NewEventService(db.Events(), db.Guests(), db.Users(), env.session, service.Options{
		Notifier: env.notices,
		Metrics:  env.metrics,
		Location: time.UTC,
		Now:      func() time.Time { return fixedNow },
	})
	return env
}

// signIn authenticates as the seeded user with the given email and clears
// the login notice.
func (e *testEnv) signIn(t *testing.T, email string) *domain.User {
	t.Helper()
	u, err := e.identity.Authenticate(context.Background(), email, "")
	if err != nil {
		t.Fatalf("Authenticate(%s): %v", email, err)
	}
	e.notices.Drain()
	return u
}

func (e *testEnv) event(t *testing.T, id string) *domain.Event {
	t.Helper()
	ev, err := e.db.Events().GetByID(context.Background(), id)
	if err != nil {
		t.Fatalf("GetByID(%s): %v", id, err)
	}
	return ev
}

func (e *testEnv) lastNotice(t *testing.T) service.Notice {
	t.Helper()
	n, ok := e.notices.Last()
	if !ok {
		t.Fatal("expected a notice")
	}
	return n
}

func sameEvent(a, b *domain.Event) bool {
	return a.ID == b.ID && a.Title == b.Title && a.DateTime.Equal(b.DateTime) &&
		a.Location == b.Location && a.Type == b.Type && a.Description == b.Description &&
		a.CreatorID == b.CreatorID && a.HostID == b.HostID && a.Status == b.Status &&
		a.CreatedAt.Equal(b.CreatedAt)
}

func ptr[T any](v T) *T { return &v }
