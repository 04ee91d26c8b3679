package domain

import "context"

// Database defines lifecycle operations for the backing store.
// The store owns its schema and seed data; callers only see the
// repository interfaces.
type Database interface {
	Migrate(ctx context.Context) error
	Close() error
}
