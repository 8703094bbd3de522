//nolint:revive // "api" package name is intentionally concise for this layer.
package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ashureev/cemas/internal/agent"
	"github.com/ashureev/cemas/internal/domain"
	"github.com/ashureev/cemas/internal/identity"
	"github.com/ashureev/cemas/internal/progress"
	"github.com/ashureev/cemas/internal/sessions"
)

type fakeRepo struct {
	mu        sync.Mutex
	users     map[string]*domain.User
	snapshots map[string]progress.Snapshot
	pingErr   error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		users:     make(map[string]*domain.User),
		snapshots: make(map[string]progress.Snapshot),
	}
}

func (f *fakeRepo) GetUser(_ context.Context, userID string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user := f.users[userID]
	if user == nil {
		return nil, nil
	}
	copy := *user
	return &copy, nil
}

func (f *fakeRepo) UpsertUser(_ context.Context, user *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copy := *user
	f.users[user.UserID] = &copy
	return nil
}

func (f *fakeRepo) GetSnapshot(_ context.Context, userID string) (*progress.Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	snap, ok := f.snapshots[userID]
	if !ok {
		return nil, nil
	}
	out := snap.Clone()
	return &out, nil
}

func (f *fakeRepo) SaveSnapshot(_ context.Context, userID string, snap progress.Snapshot) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.snapshots[userID] = snap.Clone()
	return nil
}

func (f *fakeRepo) snapshot(userID string) (progress.Snapshot, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	snap, ok := f.snapshots[userID]
	return snap, ok
}

func (f *fakeRepo) Ping(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pingErr
}

func (f *fakeRepo) UpdateLastSeen(_ context.Context, _ string, _ time.Time) error { return nil }
func (f *fakeRepo) DeleteSnapshot(_ context.Context, _ string) error              { return nil }
func (f *fakeRepo) Close() error                                                  { return nil }
func (f *fakeRepo) CleanupStaleUsers(_ context.Context, _ time.Duration) (int64, error) {
	return 0, nil
}

var errProviderDown = errors.New("provider down")

// testClient drives a router while carrying the anonymous identity cookie.
type testClient struct {
	t      *testing.T
	router http.Handler
	cookie *http.Cookie
}

type serverOptions struct {
	replier      agent.Replier
	limiter      *agent.RateLimiter
	catalogDelay time.Duration
}

func newTestServer(t *testing.T, repo *fakeRepo, opts serverOptions) *testClient {
	t.Helper()
	if opts.replier == nil {
		opts.replier = agent.NewCannedReplier(0, func(int) int { return 0 })
	}
	chat := agent.NewService(opts.replier, opts.limiter, nil)
	mgr := sessions.NewManager(repo, time.Hour)
	h := NewHandler(repo, mgr, nil, chat, opts.catalogDelay)

	r := chi.NewRouter()
	r.Use(identity.Middleware(repo, true))
	h.RegisterRoutes(r)
	return &testClient{t: t, router: r}
}

func (c *testClient) do(method, path, body string) *httptest.ResponseRecorder {
	c.t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if c.cookie != nil {
		req.AddCookie(c.cookie)
	}
	rec := httptest.NewRecorder()
	c.router.ServeHTTP(rec, req)
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == identity.AnonCookieName {
			c.cookie = ck
		}
	}
	return rec
}

func (c *testClient) userID() string {
	if c.cookie == nil {
		return ""
	}
	return c.cookie.Value
}
