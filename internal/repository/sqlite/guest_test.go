package sqlite_test

import (
	"context"
	"errors"
	"testing"

	"github.com/msomdec/family-events/internal/domain"
)

func TestGuestRepository_Add(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	e := seedEvent(t, db, "2", "3", domain.EventStatusPending)

	g := &domain.EventGuest{EventID: e.ID, UserID: "4"}
	if err := db.Guests().Add(ctx, g); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if g.ID == "" {
		t.Fatal("expected generated id")
	}
	if g.Status != domain.GuestStatusPending {
		t.Fatalf("expected pending, got %s", g.Status)
	}

	got, err := db.Guests().GetByID(ctx, g.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if *got != *g {
		t.Fatalf("expected %+v, got %+v", g, got)
	}
}

func TestGuestRepository_AddTwiceReturnsExisting(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	e := seedEvent(t, db, "2", "3", domain.EventStatusPending)

	first := &domain.EventGuest{EventID: e.ID, UserID: "4"}
	if err := db.Guests().Add(ctx, first); err != nil {
		t.Fatalf("first Add: %v", err)
	}
	second := &domain.EventGuest{EventID: e.ID, UserID: "4"}
	if err := db.Guests().Add(ctx, second); err != nil {
		t.Fatalf("second Add: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("expected existing guest %s, got %s", first.ID, second.ID)
	}

	guests, err := db.Guests().ListByEvent(ctx, e.ID)
	if err != nil {
		t.Fatalf("ListByEvent: %v", err)
	}
	if len(guests) != 1 {
		t.Fatalf("expected a single guest record, got %d", len(guests))
	}
}

func TestGuestRepository_AddUnknownEvent(t *testing.T) {
	db := newTestDB(t)
	err := db.Guests().Add(context.Background(), &domain.EventGuest{EventID: "missing", UserID: "4"})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGuestRepository_SetStatus(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	e := seedEvent(t, db, "2", "3", domain.EventStatusPending)
	g := &domain.EventGuest{EventID: e.ID, UserID: "4"}
	if err := db.Guests().Add(ctx, g); err != nil {
		t.Fatalf("Add: %v", err)
	}

	got, err := db.Guests().SetStatus(ctx, g.ID, domain.GuestStatusConfirmed)
	if err != nil {
		t.Fatalf("SetStatus: %v", err)
	}
	if got.Status != domain.GuestStatusConfirmed {
		t.Fatalf("expected confirmed, got %s", got.Status)
	}

	if _, err := db.Guests().SetStatus(ctx, "missing", domain.GuestStatusDeclined); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := db.Guests().SetStatus(ctx, g.ID, domain.GuestStatus("maybe")); !errors.Is(err, domain.ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestGuestRepository_DeleteIdempotent(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	e := seedEvent(t, db, "2", "3", domain.EventStatusPending)
	g := &domain.EventGuest{EventID: e.ID, UserID: "4"}
	if err := db.Guests().Add(ctx, g); err != nil {
		t.Fatalf("Add: %v", err)
	}

	for i := 0; i < 2; i++ {
		if err := db.Guests().Delete(ctx, g.ID); err != nil {
			t.Fatalf("Delete #%d: %v", i+1, err)
		}
	}
	if _, err := db.Guests().GetByID(ctx, g.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
