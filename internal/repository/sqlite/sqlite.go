package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/msomdec/family-events/internal/domain"
	"github.com/msomdec/family-events/internal/repository/sqlite/migrations"

	_ "modernc.org/sqlite"
)

// MemoryPath opens a private in-memory database that lives as long as the DB.
const MemoryPath = ":memory:"

// DB wraps a SQLite handle and hands out the repositories built on it.
type DB struct {
	SqlDB *sql.DB
}

// New opens a SQLite database at the given path and configures it for use.
// It enables foreign keys and pins the pool to a single connection, which
// keeps a ":memory:" database alive and serializes writes.
func New(dbPath string) (*DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// A single connection is required for ":memory:"; every new connection
	// would otherwise see an empty database.
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	if _, err := db.ExecContext(context.Background(), "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	if err := db.PingContext(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &DB{SqlDB: db}, nil
}

// Migrate applies the embedded schema migrations.
func (d *DB) Migrate(ctx context.Context) error {
	applied, err := migrations.Run(ctx, d.SqlDB)
	if err != nil {
		return err
	}
	if len(applied) > 0 {
		slog.Info("database migrations applied", "count", len(applied))
	}
	return nil
}

// Close releases the database. For ":memory:" this discards all state.
func (d *DB) Close() error {
	return d.SqlDB.Close()
}

// Users returns the user repository.
func (d *DB) Users() domain.UserRepository {
	return NewUserRepository(d)
}

// Events returns the event repository.
func (d *DB) Events() domain.EventRepository {
	return &eventRepo{db: d.SqlDB}
}

// Guests returns the guest repository.
func (d *DB) Guests() domain.GuestRepository {
	return &guestRepo{db: d.SqlDB}
}
