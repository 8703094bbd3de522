// Package store persists anonymous users and their assessment snapshots.
package store

import (
	"context"
	"time"

	"github.com/ashureev/cemas/internal/domain"
	"github.com/ashureev/cemas/internal/progress"
)

// Repository defines the interface for persisting users and snapshots.
type Repository interface {
	// GetUser retrieves a user by id. It returns nil, nil when absent.
	GetUser(ctx context.Context, userID string) (*domain.User, error)

	// UpsertUser creates or updates a user record.
	UpsertUser(ctx context.Context, user *domain.User) error

	// UpdateLastSeen updates the last_seen_at timestamp for a user.
	UpdateLastSeen(ctx context.Context, userID string, lastSeen time.Time) error

	// GetSnapshot returns the stored snapshot. It returns nil, nil when the
	// user has none.
	GetSnapshot(ctx context.Context, userID string) (*progress.Snapshot, error)

	// SaveSnapshot replaces the user's snapshot. Saving the same snapshot
	// twice leaves the store unchanged.
	SaveSnapshot(ctx context.Context, userID string, snap progress.Snapshot) error

	// DeleteSnapshot removes the user's snapshot.
	DeleteSnapshot(ctx context.Context, userID string) error

	// CleanupStaleUsers removes users unseen for longer than ttl together
	// with their snapshots and returns how many users were removed.
	CleanupStaleUsers(ctx context.Context, ttl time.Duration) (int64, error)

	// Ping verifies the backend is reachable.
	Ping(ctx context.Context) error

	// Close releases the backend.
	Close() error
}
