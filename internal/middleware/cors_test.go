package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCORS(t *testing.T) {
	t.Parallel()

	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	tests := []struct {
		name        string
		allowed     []string
		origin      string
		method      string
		wantOrigin  string
		wantCreds   string
		wantMethods string
		wantStatus  int
	}{
		{name: "explicit origin", allowed: []string{"http://app.test"}, origin: "http://app.test", method: http.MethodGet, wantOrigin: "http://app.test", wantCreds: "true", wantStatus: http.StatusTeapot},
		{name: "second listed origin", allowed: []string{"http://app.test", "http://admin.test"}, origin: "http://admin.test", method: http.MethodDelete, wantOrigin: "http://admin.test", wantCreds: "true", wantStatus: http.StatusTeapot},
		{name: "wildcard has no credentials", allowed: []string{"*"}, origin: "http://evil.test", method: http.MethodGet, wantOrigin: "http://evil.test", wantStatus: http.StatusTeapot},
		{name: "named origin beside wildcard keeps credentials", allowed: []string{"*", "http://app.test"}, origin: "http://app.test", method: http.MethodGet, wantOrigin: "http://app.test", wantCreds: "true", wantStatus: http.StatusTeapot},
		{name: "unknown origin", allowed: []string{"http://app.test"}, origin: "http://evil.test", method: http.MethodGet, wantStatus: http.StatusTeapot},
		{name: "no origin", allowed: []string{"*"}, method: http.MethodPost, wantStatus: http.StatusTeapot},
		{name: "preflight short circuits", allowed: []string{"http://app.test"}, origin: "http://app.test", method: http.MethodOptions, wantOrigin: "http://app.test", wantCreds: "true", wantMethods: corsAllowMethods, wantStatus: http.StatusNoContent},
		{name: "preflight from unknown origin", allowed: []string{"http://app.test"}, origin: "http://evil.test", method: http.MethodOptions, wantStatus: http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(tt.method, "/api/chat", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			rec := httptest.NewRecorder()
			CORS(tt.allowed)(next).ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.wantOrigin {
				t.Fatalf("allow origin = %q, want %q", got, tt.wantOrigin)
			}
			if got := rec.Header().Get("Access-Control-Allow-Credentials"); got != tt.wantCreds {
				t.Fatalf("allow credentials = %q, want %q", got, tt.wantCreds)
			}
			if got := rec.Header().Get("Access-Control-Allow-Methods"); got != tt.wantMethods {
				t.Fatalf("allow methods = %q, want %q", got, tt.wantMethods)
			}
			if got := rec.Header().Get("Vary"); got != "Origin" {
				t.Fatalf("vary = %q, want Origin", got)
			}
		})
	}
}
