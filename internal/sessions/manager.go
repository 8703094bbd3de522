// Package sessions keeps live assessment sessions in memory, loading them from
// the store on first use and writing every persisted change back.
package sessions

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ashureev/cemas/internal/progress"
	"github.com/ashureev/cemas/internal/store"
)

const defaultWriteTimeout = 5 * time.Second

var timeNow = time.Now

type entry struct {
	sess     *progress.Session
	lastUsed time.Time
	ready    chan struct{}
	err      error
}

// Manager owns one progress.Session per user.
type Manager struct {
	repo         store.Repository
	idleTTL      time.Duration
	writeTimeout time.Duration

	mu      sync.Mutex
	entries map[string]*entry
}

// NewManager returns a manager backed by repo. Sessions idle for longer than
// idleTTL are dropped from memory by the eviction worker.
func NewManager(repo store.Repository, idleTTL time.Duration) *Manager {
	return &Manager{
		repo:         repo,
		idleTTL:      idleTTL,
		writeTimeout: defaultWriteTimeout,
		entries:      make(map[string]*entry),
	}
}

// Get returns the live session for userID, restoring it from the store the
// first time it is asked for.
func (m *Manager) Get(ctx context.Context, userID string) (*progress.Session, error) {
	if userID == "" {
		return nil, fmt.Errorf("get session: empty user id")
	}

	m.mu.Lock()
	e, ok := m.entries[userID]
	if ok {
		e.lastUsed = timeNow()
		m.mu.Unlock()
		select {
		case <-e.ready:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		if e.err != nil {
			return nil, e.err
		}
		return e.sess, nil
	}
	e = &entry{lastUsed: timeNow(), ready: make(chan struct{})}
	m.entries[userID] = e
	m.mu.Unlock()

	e.sess, e.err = m.load(ctx, userID)
	close(e.ready)

	if e.err != nil {
		m.mu.Lock()
		if m.entries[userID] == e {
			delete(m.entries, userID)
		}
		m.mu.Unlock()
		return nil, e.err
	}
	return e.sess, nil
}

func (m *Manager) load(ctx context.Context, userID string) (*progress.Session, error) {
	sess := progress.New()

	snap, err := m.repo.GetSnapshot(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load snapshot for %s: %w", userID, err)
	}
	if snap != nil {
		if err := sess.Restore(*snap); err != nil {
			// Unreadable snapshots are dropped and the user starts over.
			slog.Warn("discarding unreadable snapshot", "user_id", userID, "error", err)
			if delErr := m.repo.DeleteSnapshot(ctx, userID); delErr != nil {
				slog.Error("failed to delete unreadable snapshot", "user_id", userID, "error", delErr)
			}
		}
	}

	sess.OnChange(func(s progress.Snapshot) {
		m.persist(userID, s)
	})
	slog.Debug("session loaded", "user_id", userID, "restored", snap != nil, "stage", sess.Stage())
	return sess, nil
}

// persist runs under the session lock, so writes for one user land in
// mutation order.
func (m *Manager) persist(userID string, snap progress.Snapshot) {
	ctx, cancel := context.WithTimeout(context.Background(), m.writeTimeout)
	defer cancel()
	if err := m.repo.SaveSnapshot(ctx, userID, snap); err != nil {
		slog.Error("failed to persist session snapshot", "user_id", userID, "stage", snap.CurrentStep, "error", err)
	}
}

// Len returns the number of sessions held in memory.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// EvictIdle drops sessions unused since before now minus the idle TTL and
// returns how many were dropped. Their state stays in the store.
func (m *Manager) EvictIdle(now time.Time) int {
	if m.idleTTL <= 0 {
		return 0
	}
	cutoff := now.Add(-m.idleTTL)

	m.mu.Lock()
	defer m.mu.Unlock()

	evicted := 0
	for id, e := range m.entries {
		select {
		case <-e.ready:
		default:
			continue
		}
		if e.lastUsed.Before(cutoff) {
			delete(m.entries, id)
			evicted++
		}
	}
	return evicted
}
