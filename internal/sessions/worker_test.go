package sessions

import (
	"context"
	"testing"
	"time"
)

type cleanupRepo struct {
	*fakeRepo
	calls   int
	lastTTL time.Duration
}

func (c *cleanupRepo) CleanupStaleUsers(_ context.Context, ttl time.Duration) (int64, error) {
	c.calls++
	c.lastTTL = ttl
	return 2, nil
}

func TestSweepEvictsAndCleansUp(t *testing.T) {
	repo := &cleanupRepo{fakeRepo: newFakeRepo()}
	mgr := NewManager(repo, time.Minute)
	if _, err := mgr.Get(context.Background(), "u1"); err != nil {
		t.Fatalf("Get error = %v", err)
	}

	orig := timeNow
	t.Cleanup(func() { timeNow = orig })
	timeNow = func() time.Time { return orig().Add(time.Hour) }

	sweep(context.Background(), mgr, repo, 0)
	if mgr.Len() != 0 {
		t.Fatalf("Len = %d after sweep, want 0", mgr.Len())
	}
	if repo.calls != 0 {
		t.Fatalf("cleanup ran with zero retention")
	}

	sweep(context.Background(), mgr, repo, 30*24*time.Hour)
	if repo.calls != 1 || repo.lastTTL != 30*24*time.Hour {
		t.Fatalf("cleanup calls = %d ttl = %v", repo.calls, repo.lastTTL)
	}
}
