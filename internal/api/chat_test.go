//nolint:revive // "api" package name is intentionally concise for this layer.
package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/ashureev/cemas/internal/agent"
	"github.com/ashureev/cemas/internal/domain"
)

func TestChatSendHistoryAndClear(t *testing.T) {
	repo := newFakeRepo()
	c := newTestServer(t, repo, serverOptions{})

	rec := c.do(http.MethodPost, "/api/chat", `{"message":"  What suits me?  "}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("send: status %d body %s", rec.Code, rec.Body.String())
	}
	var resp agent.ChatResponse
	decodeBody(t, rec, &resp)
	if resp.UserMessage.Content != "What suits me?" {
		t.Fatalf("user message = %q", resp.UserMessage.Content)
	}
	if resp.Reply.Role != domain.RoleAssistant || resp.Reply.Content != agent.CannedReplies()[0] {
		t.Fatalf("reply = %+v", resp.Reply)
	}

	rec = c.do(http.MethodGet, "/api/chat", "")
	var history struct {
		Messages []domain.ChatMessage `json:"messages"`
	}
	decodeBody(t, rec, &history)
	if len(history.Messages) != 2 {
		t.Fatalf("history length = %d, want 2", len(history.Messages))
	}

	if snap, ok := repo.snapshot(c.userID()); ok && snap.CurrentStep != domain.StageOnboarding {
		t.Fatalf("chat changed persisted stage: %q", snap.CurrentStep)
	}

	if rec := c.do(http.MethodDelete, "/api/chat", ""); rec.Code != http.StatusOK {
		t.Fatalf("clear: status %d", rec.Code)
	}
	rec = c.do(http.MethodGet, "/api/chat", "")
	decodeBody(t, rec, &history)
	if len(history.Messages) != 0 {
		t.Fatalf("history after clear = %d", len(history.Messages))
	}
}

func TestChatProviderFailureStillReplies(t *testing.T) {
	failing := agent.ReplierFunc(func(context.Context, string, []domain.ChatMessage) (string, error) {
		return "", errProviderDown
	})
	c := newTestServer(t, newFakeRepo(), serverOptions{replier: failing})

	rec := c.do(http.MethodPost, "/api/chat", `{"message":"hello"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp agent.ChatResponse
	decodeBody(t, rec, &resp)
	if !resp.Fallback || resp.Reply.Content != agent.FallbackReply {
		t.Fatalf("expected fallback reply, got %+v", resp)
	}
}

func TestChatRejectsEmptyAndRateLimits(t *testing.T) {
	c := newTestServer(t, newFakeRepo(), serverOptions{limiter: agent.NewRateLimiter(1, 1)})

	if rec := c.do(http.MethodPost, "/api/chat", `{"message":"   "}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("empty message: status %d", rec.Code)
	}
	if rec := c.do(http.MethodPost, "/api/chat", `{"message":"one"}`); rec.Code != http.StatusOK {
		t.Fatalf("first send: status %d", rec.Code)
	}
	if rec := c.do(http.MethodPost, "/api/chat", `{"message":"two"}`); rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second send: status %d, want 429", rec.Code)
	}
}

func TestChatPrompts(t *testing.T) {
	c := newTestServer(t, newFakeRepo(), serverOptions{})

	rec := c.do(http.MethodGet, "/api/chat/prompts", "")
	var body struct {
		Prompts []string `json:"prompts"`
	}
	decodeBody(t, rec, &body)
	if len(body.Prompts) != len(agent.SuggestedPrompts()) || len(body.Prompts) == 0 {
		t.Fatalf("prompts = %v", body.Prompts)
	}
}
