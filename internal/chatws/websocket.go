// Package chatws serves the coach chat over a WebSocket.
package chatws

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/coder/websocket"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/ashureev/cemas/internal/agent"
	"github.com/ashureev/cemas/internal/domain"
	"github.com/ashureev/cemas/internal/identity"
	"github.com/ashureev/cemas/internal/sessions"
)

const (
	writeTimeout   = 10 * time.Second
	maxMessageSize = 32 << 10
)

// Client message types.
const (
	typeMessage = "message"
	typeClear   = "clear"
	typePing    = "ping"
)

// Server message types.
const (
	typeCleared = "cleared"
	typePong    = "pong"
	typeError   = "error"
)

type clientMessage struct {
	Type    string `json:"type"`
	Content string `json:"content,omitempty"`
}

type serverMessage struct {
	Type        string              `json:"type"`
	Message     *domain.ChatMessage `json:"message,omitempty"`
	UserMessage *domain.ChatMessage `json:"userMessage,omitempty"`
	Fallback    bool                `json:"fallback,omitempty"`
	Error       string              `json:"error,omitempty"`
}

// Handler upgrades chat connections and runs one read loop per socket.
type Handler struct {
	sessions       *sessions.Manager
	chat           *agent.Service
	allowedOrigins []string
	isDev          bool
}

// NewHandler creates a new WebSocket chat handler. An empty origin list or a
// "*" entry accepts any origin.
func NewHandler(mgr *sessions.Manager, chat *agent.Service, allowedOrigins []string, isDev bool) *Handler {
	return &Handler{
		sessions:       mgr,
		chat:           chat,
		allowedOrigins: allowedOrigins,
		isDev:          isDev,
	}
}

// ServeHTTP implements http.Handler for WebSocket upgrade.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID := identity.UserIDFromContext(r.Context())
	slog.Info("Chat WebSocket connection request", "user_id", userID, "ip", r.RemoteAddr)

	if !h.checkOrigin(r) {
		http.Error(w, "origin not allowed", http.StatusForbidden)
		return
	}

	// Loaded up front so a broken store fails the upgrade. Frames look the
	// session up again, which keeps it from idling out of the manager.
	if _, err := h.sessions.Get(r.Context(), userID); err != nil {
		slog.Error("Failed to load session for chat socket", "error", err, "user_id", userID)
		http.Error(w, "session unavailable", http.StatusInternalServerError)
		return
	}

	ws, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		slog.Error("Failed to accept WebSocket", "error", err, "user_id", userID)
		return
	}
	defer func() {
		if closeErr := ws.Close(websocket.StatusNormalClosure, "chat ended"); closeErr != nil {
			slog.Debug("Failed to close websocket", "error", closeErr, "user_id", userID)
		}
	}()
	ws.SetReadLimit(maxMessageSize)

	requestID := chiMiddleware.GetReqID(r.Context())
	ctx := r.Context()
	for {
		_, data, err := ws.Read(ctx)
		if err != nil {
			if websocket.CloseStatus(err) != -1 {
				slog.Debug("WebSocket closed by client", "user_id", userID)
			} else if !errors.Is(err, context.Canceled) {
				slog.Warn("WebSocket read error", "error", err, "user_id", userID)
			}
			return
		}

		var msg clientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			h.writeError(ctx, ws, userID, "invalid message")
			continue
		}

		switch msg.Type {
		case typeMessage:
			sess, err := h.sessions.Get(ctx, userID)
			if err != nil {
				slog.Error("Failed to load session for chat frame", "error", err, "user_id", userID)
				h.writeError(ctx, ws, userID, "session unavailable")
				continue
			}
			resp, err := h.chat.Send(ctx, sess, agent.ChatRequest{
				Message:   msg.Content,
				UserID:    userID,
				Channel:   agent.ChannelWebSocket,
				RequestID: requestID,
			})
			if err != nil {
				h.writeError(ctx, ws, userID, err.Error())
				continue
			}
			if err := h.writeJSON(ctx, ws, serverMessage{
				Type:        typeMessage,
				Message:     &resp.Reply,
				UserMessage: &resp.UserMessage,
				Fallback:    resp.Fallback,
			}); err != nil {
				slog.Debug("Failed to send chat reply", "error", err, "user_id", userID)
				return
			}
		case typeClear:
			sess, err := h.sessions.Get(ctx, userID)
			if err != nil {
				slog.Error("Failed to load session for chat frame", "error", err, "user_id", userID)
				h.writeError(ctx, ws, userID, "session unavailable")
				continue
			}
			h.chat.Clear(userID, sess)
			if err := h.writeJSON(ctx, ws, serverMessage{Type: typeCleared}); err != nil {
				slog.Debug("Failed to send cleared acknowledgment", "error", err)
				return
			}
		case typePing:
			if err := h.writeJSON(ctx, ws, serverMessage{Type: typePong}); err != nil {
				slog.Debug("Failed to send pong", "error", err)
				return
			}
		default:
			h.writeError(ctx, ws, userID, "unknown message type: "+msg.Type)
		}
	}
}

func (h *Handler) checkOrigin(r *http.Request) bool {
	if h.isDev {
		return true
	}
	origin := r.Header.Get("Origin")
	if origin == "" || len(h.allowedOrigins) == 0 {
		return true
	}
	for _, allowed := range h.allowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	slog.Warn("WebSocket origin rejected", "origin", origin, "allowed", h.allowedOrigins)
	return false
}

func (h *Handler) writeError(ctx context.Context, ws *websocket.Conn, userID, message string) {
	if err := h.writeJSON(ctx, ws, serverMessage{Type: typeError, Error: message}); err != nil {
		slog.Debug("Failed to send error frame", "error", err, "user_id", userID)
	}
}

func (h *Handler) writeJSON(ctx context.Context, ws *websocket.Conn, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	return ws.Write(ctx, websocket.MessageText, data)
}
