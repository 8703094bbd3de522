package identity

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/ashureev/cemas/internal/store"
)

func newTestStore(t *testing.T) store.Repository {
	t.Helper()
	repo, err := store.NewJSON(filepath.Join(t.TempDir(), "cemas.json"))
	if err != nil {
		t.Fatalf("NewJSON error = %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestAnonIDValidation(t *testing.T) {
	t.Parallel()

	id := generateAnonID()
	if !isValidAnonID(id) {
		t.Fatalf("generated id %q is not valid", id)
	}
	for _, bad := range []string{"", "anon_", "anon_xyz", "user_" + id[len(anonPrefix):], id + "0"} {
		if isValidAnonID(bad) {
			t.Errorf("isValidAnonID(%q) = true", bad)
		}
	}
}

func TestMiddlewareIssuesAndReusesCookie(t *testing.T) {
	t.Parallel()

	repo := newTestStore(t)
	var seen []string
	h := Middleware(repo, true)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, UserIDFromContext(r.Context()))
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/session", nil))
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != AnonCookieName {
		t.Fatalf("expected %s cookie, got %v", AnonCookieName, cookies)
	}
	if !cookies[0].HttpOnly || cookies[0].Secure {
		t.Fatalf("unexpected cookie flags in dev mode: %+v", cookies[0])
	}

	req := httptest.NewRequest(http.MethodGet, "/api/session", nil)
	req.AddCookie(cookies[0])
	h.ServeHTTP(httptest.NewRecorder(), req)

	if len(seen) != 2 || seen[0] == "" || seen[0] != seen[1] {
		t.Fatalf("user ids = %v, want the same id twice", seen)
	}

	user, err := repo.GetUser(context.Background(), seen[0])
	if err != nil || user == nil {
		t.Fatalf("GetUser = %v, %v", user, err)
	}
	if user.Username != deriveUsername(seen[0]) {
		t.Fatalf("username = %q", user.Username)
	}
}

func TestMiddlewareReplacesForgedCookie(t *testing.T) {
	t.Parallel()

	repo := newTestStore(t)
	var got string
	h := Middleware(repo, false)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = UserIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: AnonCookieName, Value: "../../etc/passwd"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if !isValidAnonID(got) {
		t.Fatalf("expected a fresh anon id, got %q", got)
	}
	if c := rec.Result().Cookies(); len(c) != 1 || !c[0].Secure {
		t.Fatalf("expected secure cookie outside dev, got %v", c)
	}
}

func TestEnsureUserThrottlesLastSeen(t *testing.T) {
	repo := newTestStore(t)
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	orig := timeNow
	t.Cleanup(func() { timeNow = orig })

	ctx := context.Background()
	timeNow = func() time.Time { return base }
	if err := ensureUser(ctx, repo, "anon_x"); err != nil {
		t.Fatalf("ensureUser error = %v", err)
	}

	timeNow = func() time.Time { return base.Add(30 * time.Second) }
	if err := ensureUser(ctx, repo, "anon_x"); err != nil {
		t.Fatalf("ensureUser error = %v", err)
	}
	user, _ := repo.GetUser(ctx, "anon_x")
	if !user.LastSeenAt.Equal(base) {
		t.Fatalf("last seen moved within the throttle window: %v", user.LastSeenAt)
	}

	later := base.Add(2 * time.Minute)
	timeNow = func() time.Time { return later }
	if err := ensureUser(ctx, repo, "anon_x"); err != nil {
		t.Fatalf("ensureUser error = %v", err)
	}
	user, _ = repo.GetUser(ctx, "anon_x")
	if !user.LastSeenAt.Equal(later) {
		t.Fatalf("last seen = %v, want %v", user.LastSeenAt, later)
	}
}

func TestUserIDFromContextEmpty(t *testing.T) {
	t.Parallel()

	if got := UserIDFromContext(context.Background()); got != "" {
		t.Fatalf("UserIDFromContext = %q", got)
	}
	if got := UserIDFromContext(WithUserID(context.Background(), "u1")); got != "u1" {
		t.Fatalf("UserIDFromContext = %q", got)
	}
}
