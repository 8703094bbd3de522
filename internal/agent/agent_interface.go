package agent

import (
	"context"
	"fmt"

	"github.com/ashureev/cemas/internal/assessment"
	"github.com/ashureev/cemas/internal/domain"
)

// Replier produces the coach's answer to message given the transcript that
// preceded it.
type Replier interface {
	Reply(ctx context.Context, message string, history []domain.ChatMessage) (string, error)
}

// ReplierFunc adapts a function to Replier.
type ReplierFunc func(ctx context.Context, message string, history []domain.ChatMessage) (string, error)

// Reply calls f.
func (f ReplierFunc) Reply(ctx context.Context, message string, history []domain.ChatMessage) (string, error) {
	return f(ctx, message, history)
}

// CoachContext is what the coach knows about the user beyond the transcript.
type CoachContext struct {
	Profile  *domain.UserProfile
	Combined *assessment.CombinedResult
}

type coachContextKey struct{}

// WithCoachContext attaches cc to ctx for backends that personalise replies.
func WithCoachContext(ctx context.Context, cc CoachContext) context.Context {
	return context.WithValue(ctx, coachContextKey{}, cc)
}

// CoachContextFrom returns the CoachContext attached to ctx, if any.
func CoachContextFrom(ctx context.Context) (CoachContext, bool) {
	cc, ok := ctx.Value(coachContextKey{}).(CoachContext)
	return cc, ok
}

// NewReplier builds the backend named by cfg.Backend.
func NewReplier(cfg Config) (Replier, error) {
	switch cfg.Backend {
	case "", BackendCanned:
		return NewCannedReplier(cfg.ReplyDelay, nil), nil
	case BackendOpenAI:
		return NewOpenAIReplier(cfg)
	default:
		return nil, fmt.Errorf("unknown reply backend %q", cfg.Backend)
	}
}

// Ensure backends implement Replier.
var (
	_ Replier = (*CannedReplier)(nil)
	_ Replier = (*OpenAIReplier)(nil)
)
