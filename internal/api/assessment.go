package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ashureev/cemas/internal/assessment"
	"github.com/ashureev/cemas/internal/domain"
	"github.com/ashureev/cemas/internal/progress"
)

// AssessmentHandler serves the questionnaires and the progression flow.
type AssessmentHandler struct {
	*Handler
}

// NewAssessmentHandler creates a new assessment handler.
func NewAssessmentHandler(base *Handler) *AssessmentHandler {
	return &AssessmentHandler{Handler: base}
}

// registerRoutes registers assessment routes on the /api sub-router.
func (h *AssessmentHandler) registerRoutes(r chi.Router) {
	r.Get("/questions/ikigai", h.IkigaiQuestions)
	r.Get("/questions/mbti", h.MBTIQuestions)

	r.Get("/session", h.GetSession)
	r.Post("/onboarding", h.Onboarding)
	r.Put("/answers/ikigai/{id}", h.AnswerIkigai)
	r.Put("/answers/mbti/{id}", h.AnswerMBTI)
	r.Post("/ikigai/submit", h.SubmitIkigai)
	r.Post("/mbti/submit", h.SubmitMBTI)

	r.Get("/stages/{stage}/guard", h.Guard)
	r.Post("/stages/{stage}", h.EnterStage)
	r.Post("/reset", h.Reset)
}

// sessionResponse is the dashboard view of a session.
type sessionResponse struct {
	progress.Snapshot
	Progress   int                  `json:"progress"`
	NextAction progress.NextAction  `json:"nextAction"`
	Chat       []domain.ChatMessage `json:"chat"`
}

func newSessionResponse(sess *progress.Session) sessionResponse {
	snap := sess.Snapshot()
	return sessionResponse{
		Snapshot:   snap,
		Progress:   progress.ProgressPercent(snap.CurrentStep),
		NextAction: progress.NextActionFor(snap),
		Chat:       sess.Chat(),
	}
}

// waitCatalog simulates catalog fetch latency.
func (h *AssessmentHandler) waitCatalog(ctx context.Context) error {
	if h.catalogDelay <= 0 {
		return nil
	}
	timer := time.NewTimer(h.catalogDelay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// IkigaiQuestions returns the Ikigai catalog.
func (h *AssessmentHandler) IkigaiQuestions(w http.ResponseWriter, r *http.Request) {
	if err := h.waitCatalog(r.Context()); err != nil {
		slog.Debug("catalog request canceled", "error", err)
		return
	}
	JSON(w, http.StatusOK, map[string]interface{}{"questions": assessment.IkigaiQuestions()})
}

// MBTIQuestions returns the MBTI catalog.
func (h *AssessmentHandler) MBTIQuestions(w http.ResponseWriter, r *http.Request) {
	if err := h.waitCatalog(r.Context()); err != nil {
		slog.Debug("catalog request canceled", "error", err)
		return
	}
	JSON(w, http.StatusOK, map[string]interface{}{"questions": assessment.MBTIQuestions()})
}

// GetSession returns the caller's snapshot, progress, next action and chat.
func (h *AssessmentHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	sess, _, err := h.session(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	JSON(w, http.StatusOK, newSessionResponse(sess))
}

// Onboarding stores the profile and moves the caller to the Ikigai stage.
func (h *AssessmentHandler) Onboarding(w http.ResponseWriter, r *http.Request) {
	var profile domain.UserProfile
	if err := decodeJSON(r, &profile); err != nil {
		writeError(w, r, err)
		return
	}
	sess, userID, err := h.session(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := sess.CompleteOnboarding(profile); err != nil {
		writeError(w, r, err)
		return
	}
	slog.Info("onboarding completed", "user_id", userID, "main_goal", profile.MainGoal)
	JSON(w, http.StatusOK, newSessionResponse(sess))
}

type answerRequest struct {
	Value *int `json:"value"`
}

func (h *AssessmentHandler) answer(w http.ResponseWriter, r *http.Request, record func(*progress.Session, string, int) error, source func(*progress.Session) assessment.AnswerMap) {
	var req answerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if req.Value == nil {
		writeError(w, r, errBadRequestf("value is required"))
		return
	}
	sess, _, err := h.session(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := record(sess, chi.URLParam(r, "id"), *req.Value); err != nil {
		writeError(w, r, err)
		return
	}
	answers := source(sess)
	JSON(w, http.StatusOK, map[string]interface{}{
		"answers":  answers,
		"answered": len(answers),
	})
}

// AnswerIkigai records one Ikigai answer.
func (h *AssessmentHandler) AnswerIkigai(w http.ResponseWriter, r *http.Request) {
	h.answer(w, r, (*progress.Session).RecordIkigaiAnswer, (*progress.Session).IkigaiAnswers)
}

// AnswerMBTI records one MBTI answer.
func (h *AssessmentHandler) AnswerMBTI(w http.ResponseWriter, r *http.Request) {
	h.answer(w, r, (*progress.Session).RecordMBTIAnswer, (*progress.Session).MBTIAnswers)
}

// SubmitIkigai scores the Ikigai answers and moves the caller on.
func (h *AssessmentHandler) SubmitIkigai(w http.ResponseWriter, r *http.Request) {
	sess, userID, err := h.session(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	result, err := sess.SubmitIkigai()
	if err != nil {
		writeError(w, r, err)
		return
	}
	slog.Info("ikigai submitted", "user_id", userID)
	JSON(w, http.StatusOK, map[string]interface{}{
		"result":      result,
		"currentStep": sess.Stage(),
	})
}

// SubmitMBTI scores the MBTI answers, synthesizes the combined profile and
// moves the caller to results.
func (h *AssessmentHandler) SubmitMBTI(w http.ResponseWriter, r *http.Request) {
	sess, userID, err := h.session(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	combined, err := sess.SubmitMBTI(h.synth)
	if err != nil {
		writeError(w, r, err)
		return
	}
	slog.Info("mbti submitted", "user_id", userID, "type", combined.MBTI.Type)
	JSON(w, http.StatusOK, map[string]interface{}{
		"result":      combined,
		"currentStep": sess.Stage(),
	})
}

type guardResponse struct {
	Requested domain.Stage `json:"requested"`
	Required  domain.Stage `json:"required"`
	Allowed   bool         `json:"allowed"`
}

// Guard reports where a request for a stage would land without moving the
// caller.
func (h *AssessmentHandler) Guard(w http.ResponseWriter, r *http.Request) {
	target, err := domain.ParseStage(chi.URLParam(r, "stage"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	sess, _, err := h.session(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	required := sess.RequiredStage(target)
	JSON(w, http.StatusOK, guardResponse{Requested: target, Required: required, Allowed: required == target})
}

// EnterStage moves the caller to a stage when its prerequisites are met.
// Otherwise the stage is left alone and the redirect target is returned.
func (h *AssessmentHandler) EnterStage(w http.ResponseWriter, r *http.Request) {
	target, err := domain.ParseStage(chi.URLParam(r, "stage"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	sess, userID, err := h.session(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	landed, err := sess.Enter(target)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if landed != target {
		slog.Info("stage entry redirected", "user_id", userID, "requested", target, "required", landed)
	}
	JSON(w, http.StatusOK, guardResponse{Requested: target, Required: landed, Allowed: landed == target})
}

// Reset clears answers, results and chat, keeping the profile.
func (h *AssessmentHandler) Reset(w http.ResponseWriter, r *http.Request) {
	sess, userID, err := h.session(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if h.chat != nil {
		h.chat.Reset(userID, sess)
	} else {
		sess.Reset()
	}
	slog.Info("session reset", "user_id", userID)
	JSON(w, http.StatusOK, newSessionResponse(sess))
}
