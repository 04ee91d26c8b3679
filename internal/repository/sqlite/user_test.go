package sqlite_test

import (
	"context"
	"errors"
	"testing"

	"github.com/msomdec/family-events/internal/domain"
)

func TestUserRepository_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	repo := db.Users()
	ctx := context.Background()

	user := &domain.User{ID: "2", Name: "João Silva", Email: "joao@example.com", Phone: "(11) 88888-8888"}
	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if user.Role != domain.RoleUser {
		t.Fatalf("expected default role user, got %q", user.Role)
	}

	got, err := repo.GetByID(ctx, "2")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if *got != *user {
		t.Fatalf("expected %+v, got %+v", user, got)
	}

	got, err = repo.GetByEmail(ctx, "joao@example.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if got.ID != "2" {
		t.Fatalf("expected id 2, got %s", got.ID)
	}
}

func TestUserRepository_GeneratesID(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	user := &domain.User{Name: "Ana", Email: "ana@example.com"}
	if err := db.Users().Create(ctx, user); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if user.ID == "" {
		t.Fatal("expected generated id")
	}
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	repo := db.Users()
	ctx := context.Background()

	if err := repo.Create(ctx, &domain.User{ID: "1", Name: "A", Email: "dup@example.com"}); err != nil {
		t.Fatalf("first Create: %v", err)
	}
	err := repo.Create(ctx, &domain.User{ID: "2", Name: "B", Email: "dup@example.com"})
	if !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestUserRepository_NotFound(t *testing.T) {
	db := newTestDB(t)
	repo := db.Users()
	ctx := context.Background()

	if _, err := repo.GetByID(ctx, "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := repo.GetByEmail(ctx, "nobody@example.com"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUserRepository_ListSortedByName(t *testing.T) {
	db := newTestDB(t)
	repo := db.Users()
	ctx := context.Background()

	for _, u := range []domain.User{
		{ID: "3", Name: "Maria", Email: "maria@example.com"},
		{ID: "1", Name: "Admin", Email: "admin@example.com", Role: domain.RoleAdmin},
	} {
		if err := repo.Create(ctx, &u); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	users, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(users) != 2 || users[0].Name != "Admin" || users[1].Name != "Maria" {
		t.Fatalf("unexpected order: %+v", users)
	}
}
