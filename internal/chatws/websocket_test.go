package chatws

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/ashureev/cemas/internal/agent"
	"github.com/ashureev/cemas/internal/identity"
	"github.com/ashureev/cemas/internal/sessions"
	"github.com/ashureev/cemas/internal/store"
)

func newTestServer(t *testing.T, allowedOrigins []string, isDev bool) (*httptest.Server, *sessions.Manager) {
	t.Helper()
	repo, err := store.NewJSON(filepath.Join(t.TempDir(), "cemas.json"))
	if err != nil {
		t.Fatalf("NewJSON error = %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })

	mgr := sessions.NewManager(repo, time.Hour)
	chat := agent.NewService(agent.NewCannedReplier(0, func(int) int { return 1 }), nil, nil)
	h := NewHandler(mgr, chat, allowedOrigins, isDev)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.ServeHTTP(w, r.WithContext(identity.WithUserID(r.Context(), "anon_test")))
	}))
	t.Cleanup(srv.Close)
	return srv, mgr
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		t.Fatalf("Dial error = %v", err)
	}
	t.Cleanup(func() { _ = conn.Close(websocket.StatusNormalClosure, "") })
	return conn
}

func roundTrip(t *testing.T, conn *websocket.Conn, msg clientMessage) serverMessage {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := wsjson.Write(ctx, conn, msg); err != nil {
		t.Fatalf("write error = %v", err)
	}
	var resp serverMessage
	if err := wsjson.Read(ctx, conn, &resp); err != nil {
		t.Fatalf("read error = %v", err)
	}
	return resp
}

func TestChatSocketMessageClearPing(t *testing.T) {
	t.Parallel()

	srv, mgr := newTestServer(t, nil, true)
	conn := dial(t, srv)

	resp := roundTrip(t, conn, clientMessage{Type: typePing})
	if resp.Type != typePong {
		t.Fatalf("ping reply type = %q", resp.Type)
	}

	resp = roundTrip(t, conn, clientMessage{Type: typeMessage, Content: "Where do I start?"})
	if resp.Type != typeMessage || resp.Message == nil || resp.UserMessage == nil {
		t.Fatalf("unexpected reply: %+v", resp)
	}
	if resp.Message.Content != agent.CannedReplies()[1] || resp.UserMessage.Content != "Where do I start?" {
		t.Fatalf("reply content = %q / %q", resp.Message.Content, resp.UserMessage.Content)
	}

	sess, err := mgr.Get(context.Background(), "anon_test")
	if err != nil {
		t.Fatalf("Get error = %v", err)
	}
	if n := len(sess.Chat()); n != 2 {
		t.Fatalf("transcript length = %d, want 2", n)
	}

	resp = roundTrip(t, conn, clientMessage{Type: typeClear})
	if resp.Type != typeCleared {
		t.Fatalf("clear reply type = %q", resp.Type)
	}
	if n := len(sess.Chat()); n != 0 {
		t.Fatalf("transcript length after clear = %d", n)
	}
}

func TestChatSocketErrors(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t, nil, true)
	conn := dial(t, srv)

	if resp := roundTrip(t, conn, clientMessage{Type: typeMessage, Content: "   "}); resp.Type != typeError {
		t.Fatalf("empty message reply = %+v", resp)
	}
	if resp := roundTrip(t, conn, clientMessage{Type: "resize"}); resp.Type != typeError {
		t.Fatalf("unknown type reply = %+v", resp)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := conn.Write(ctx, websocket.MessageText, []byte("not json")); err != nil {
		t.Fatalf("write error = %v", err)
	}
	var resp serverMessage
	if err := wsjson.Read(ctx, conn, &resp); err != nil || resp.Type != typeError {
		t.Fatalf("invalid frame reply = %+v, %v", resp, err)
	}
}

func TestCheckOrigin(t *testing.T) {
	t.Parallel()

	h := NewHandler(nil, nil, []string{"https://app.example", "https://admin.example"}, false)
	tests := []struct {
		origin string
		want   bool
	}{
		{origin: "", want: true},
		{origin: "https://app.example", want: true},
		{origin: "https://admin.example", want: true},
		{origin: "https://evil.example", want: false},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/ws/chat", nil)
		if tt.origin != "" {
			req.Header.Set("Origin", tt.origin)
		}
		if got := h.checkOrigin(req); got != tt.want {
			t.Errorf("checkOrigin(%q) = %v, want %v", tt.origin, got, tt.want)
		}
	}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://evil.example")
	if !NewHandler(nil, nil, []string{"https://app.example"}, true).checkOrigin(req) {
		t.Error("dev mode should allow any origin")
	}
	if !NewHandler(nil, nil, []string{"*"}, false).checkOrigin(req) {
		t.Error("wildcard should allow any origin")
	}
}

func TestChatSocketFollowsEvictedSession(t *testing.T) {
	t.Parallel()

	srv, mgr := newTestServer(t, nil, true)
	conn := dial(t, srv)

	if resp := roundTrip(t, conn, clientMessage{Type: typeMessage, Content: "first"}); resp.Type != typeMessage {
		t.Fatalf("first reply = %+v", resp)
	}
	if n := mgr.EvictIdle(time.Now().Add(2 * time.Hour)); n != 1 {
		t.Fatalf("evicted = %d, want 1", n)
	}
	if resp := roundTrip(t, conn, clientMessage{Type: typeMessage, Content: "second"}); resp.Type != typeMessage {
		t.Fatalf("second reply = %+v", resp)
	}

	sess, err := mgr.Get(context.Background(), "anon_test")
	if err != nil {
		t.Fatalf("Get error = %v", err)
	}
	chat := sess.Chat()
	if len(chat) != 2 || chat[0].Content != "second" {
		t.Fatalf("manager transcript = %+v, want the frame sent after eviction", chat)
	}
}
