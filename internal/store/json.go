package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/ashureev/cemas/internal/domain"
	"github.com/ashureev/cemas/internal/progress"
)

// jsonState is the on-disk layout of the JSON store.
type jsonState struct {
	Users     map[string]domain.User       `json:"users"`
	Snapshots map[string]progress.Snapshot `json:"snapshots"`
}

// JSONStore implements Repository as a single JSON file, rewritten atomically
// on every change. It suits single-instance and development use.
type JSONStore struct {
	filePath string
	mu       sync.RWMutex
	state    jsonState
}

// NewJSON opens or creates the JSON store at filePath.
func NewJSON(filePath string) (*JSONStore, error) {
	s := &JSONStore{
		filePath: filePath,
		state: jsonState{
			Users:     make(map[string]domain.User),
			Snapshots: make(map[string]progress.Snapshot),
		},
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Ping reports whether the store directory is reachable.
func (s *JSONStore) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := os.Stat(filepath.Dir(s.filePath)); err != nil {
		return fmt.Errorf("stat store dir: %w", err)
	}
	return nil
}

// GetUser retrieves a user by id.
func (s *JSONStore) GetUser(_ context.Context, userID string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.state.Users[userID]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

// UpsertUser creates or updates a user, keeping the original created_at.
func (s *JSONStore) UpsertUser(_ context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := *user
	if existing, ok := s.state.Users[u.UserID]; ok {
		u.CreatedAt = existing.CreatedAt
	}
	s.state.Users[u.UserID] = u
	return s.persistLocked()
}

// UpdateLastSeen updates the last seen time of an existing user.
func (s *JSONStore) UpdateLastSeen(_ context.Context, userID string, lastSeen time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.state.Users[userID]
	if !ok {
		return nil
	}
	u.LastSeenAt = lastSeen
	u.UpdatedAt = time.Now()
	s.state.Users[userID] = u
	return s.persistLocked()
}

// GetSnapshot returns the stored snapshot for a user.
func (s *JSONStore) GetSnapshot(_ context.Context, userID string) (*progress.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap, ok := s.state.Snapshots[userID]
	if !ok {
		return nil, nil
	}
	out := snap.Clone()
	return &out, nil
}

// SaveSnapshot replaces the snapshot for a user.
func (s *JSONStore) SaveSnapshot(_ context.Context, userID string, snap progress.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Snapshots[userID] = snap.Clone()
	return s.persistLocked()
}

// DeleteSnapshot removes the snapshot for a user.
func (s *JSONStore) DeleteSnapshot(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.state.Snapshots[userID]; !ok {
		return nil
	}
	delete(s.state.Snapshots, userID)
	return s.persistLocked()
}

// CleanupStaleUsers removes users unseen for longer than ttl and their
// snapshots.
func (s *JSONStore) CleanupStaleUsers(_ context.Context, ttl time.Duration) (int64, error) {
	threshold := time.Now().Add(-ttl)

	s.mu.Lock()
	defer s.mu.Unlock()

	var removed int64
	for id, u := range s.state.Users {
		if u.LastSeenAt.Before(threshold) {
			delete(s.state.Users, id)
			delete(s.state.Snapshots, id)
			removed++
		}
	}
	if removed == 0 {
		return 0, nil
	}
	return removed, s.persistLocked()
}

// Close is a no-op; every change is already on disk.
func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read store file: %w", err)
	}
	var state jsonState
	if err := json.Unmarshal(data, &state); err != nil {
		return fmt.Errorf("decode store file: %w", err)
	}
	if state.Users == nil {
		state.Users = make(map[string]domain.User)
	}
	if state.Snapshots == nil {
		state.Snapshots = make(map[string]progress.Snapshot)
	}
	s.state = state
	return nil
}

func (s *JSONStore) persistLocked() error {
	if err := os.MkdirAll(filepath.Dir(s.filePath), 0o755); err != nil {
		return fmt.Errorf("create store dir: %w", err)
	}
	data, err := json.MarshalIndent(s.state, "", "  ")
	if err != nil {
		return fmt.Errorf("encode store: %w", err)
	}

	tmpPath := s.filePath + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("write store: %w", err)
	}
	return os.Rename(tmpPath, s.filePath)
}

// Ensure both backends implement Repository.
var (
	_ Repository = (*SQLiteStore)(nil)
	_ Repository = (*JSONStore)(nil)
)
