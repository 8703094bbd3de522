package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/ashureev/cemas/internal/agent"
)

// ChatHandler serves the coach chat over HTTP.
type ChatHandler struct {
	*Handler
}

// NewChatHandler creates a new chat handler.
func NewChatHandler(base *Handler) *ChatHandler {
	return &ChatHandler{Handler: base}
}

func (h *ChatHandler) registerRoutes(r chi.Router) {
	r.Get("/chat", h.History)
	r.Post("/chat", h.Send)
	r.Delete("/chat", h.Clear)
	r.Get("/chat/prompts", h.Prompts)
}

// History returns the caller's transcript.
func (h *ChatHandler) History(w http.ResponseWriter, r *http.Request) {
	sess, _, err := h.session(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	JSON(w, http.StatusOK, map[string]interface{}{"messages": sess.Chat()})
}

// Send appends the caller's message and the coach's reply.
func (h *ChatHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req agent.ChatRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	sess, userID, err := h.session(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	req.UserID = userID
	req.Channel = agent.ChannelHTTP
	req.RequestID = chiMiddleware.GetReqID(r.Context())

	resp, err := h.chat.Send(r.Context(), sess, req)
	if err != nil {
		if errors.Is(err, agent.ErrRateLimited) {
			slog.Warn("chat rate limited", "user_id", userID)
		}
		writeError(w, r, err)
		return
	}
	JSON(w, http.StatusOK, resp)
}

// Clear empties the caller's transcript.
func (h *ChatHandler) Clear(w http.ResponseWriter, r *http.Request) {
	sess, userID, err := h.session(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	h.chat.Clear(userID, sess)
	JSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

// Prompts returns the suggested conversation starters.
func (h *ChatHandler) Prompts(w http.ResponseWriter, _ *http.Request) {
	JSON(w, http.StatusOK, map[string]interface{}{"prompts": agent.SuggestedPrompts()})
}
