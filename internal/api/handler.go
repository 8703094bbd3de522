// Package api provides HTTP handlers for the Cemas API.
//
//nolint:revive // "api" package name is intentionally concise for this layer.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ashureev/cemas/internal/agent"
	"github.com/ashureev/cemas/internal/assessment"
	"github.com/ashureev/cemas/internal/domain"
	"github.com/ashureev/cemas/internal/identity"
	"github.com/ashureev/cemas/internal/progress"
	"github.com/ashureev/cemas/internal/sessions"
	"github.com/ashureev/cemas/internal/store"
)

const maxBodyBytes = 64 << 10

// errBadRequest marks malformed request bodies.
var errBadRequest = errors.New("bad request")

// Handler provides common handler utilities.
type Handler struct {
	repo         store.Repository
	sessions     *sessions.Manager
	synth        assessment.Synthesizer
	chat         *agent.Service
	catalogDelay time.Duration
}

// NewHandler creates a new Handler with common dependencies.
func NewHandler(repo store.Repository, mgr *sessions.Manager, synth assessment.Synthesizer, chat *agent.Service, catalogDelay time.Duration) *Handler {
	if synth == nil {
		synth = assessment.StaticSynthesizer{}
	}
	return &Handler{
		repo:         repo,
		sessions:     mgr,
		synth:        synth,
		chat:         chat,
		catalogDelay: catalogDelay,
	}
}

// RegisterRoutes registers the health check and every /api route.
func (h *Handler) RegisterRoutes(r chi.Router) {
	NewHealthHandler(h.repo, h.sessions).RegisterHealth(r)
	r.Route("/api", func(r chi.Router) {
		NewAssessmentHandler(h).registerRoutes(r)
		if h.chat != nil {
			NewChatHandler(h).registerRoutes(r)
		}
	})
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, `{"error": "failed to encode response"}`, http.StatusInternalServerError)
	}
}

// Error writes a JSON error response.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}

// errorStatus maps domain errors onto HTTP status codes.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, errBadRequest),
		errors.Is(err, assessment.ErrInvalidAnswer),
		errors.Is(err, domain.ErrInvalidProfile),
		errors.Is(err, domain.ErrInvalidStage),
		errors.Is(err, domain.ErrInvalidMessage),
		errors.Is(err, agent.ErrEmptyMessage):
		return http.StatusBadRequest
	case errors.Is(err, assessment.ErrIncompleteInput):
		return http.StatusUnprocessableEntity
	case errors.Is(err, assessment.ErrSynthesisPrecondition):
		return http.StatusConflict
	case errors.Is(err, agent.ErrRateLimited):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// writeError writes err with its mapped status. Server errors are logged and
// their detail is withheld from the client.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errorStatus(err)
	if status >= http.StatusInternalServerError {
		slog.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"user_id", identity.UserIDFromContext(r.Context()),
			"error", err,
		)
		Error(w, status, "internal error")
		return
	}

	var incomplete *assessment.IncompleteError
	if errors.As(err, &incomplete) {
		JSON(w, status, map[string]interface{}{
			"error":      err.Error(),
			"instrument": incomplete.Instrument,
			"missing":    incomplete.Missing,
		})
		return
	}
	Error(w, status, err.Error())
}

func errBadRequestf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{errBadRequest}, args...)...)
}

// decodeJSON reads a single JSON object from the request body into v.
func decodeJSON(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: invalid JSON body: %v", errBadRequest, err)
	}
	return nil
}

// session returns the caller's live session.
func (h *Handler) session(r *http.Request) (*progress.Session, string, error) {
	userID := identity.UserIDFromContext(r.Context())
	sess, err := h.sessions.Get(r.Context(), userID)
	if err != nil {
		return nil, userID, err
	}
	return sess, userID, nil
}
