package agent

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/ashureev/cemas/internal/domain"
	"github.com/ashureev/cemas/internal/progress"
)

// Service runs chat sends against a session transcript.
type Service struct {
	replier Replier
	limiter *RateLimiter
	log     ConversationLogger
	locks   keyedMutex
}

// NewService wires a reply backend. limiter and log may be nil.
func NewService(replier Replier, limiter *RateLimiter, log ConversationLogger) *Service {
	if log == nil {
		log = noopConversationLogger{}
	}
	return &Service{
		replier: replier,
		limiter: limiter,
		log:     log,
		locks:   keyedMutex{locks: make(map[string]*refMutex)},
	}
}

// Send appends the user's message and the coach's reply to sess. A failing
// backend is logged and answered with FallbackReply, so the only errors are
// ErrEmptyMessage, ErrRateLimited and transcript validation errors. Sends for
// the same user run one at a time, in arrival order of the lock.
func (s *Service) Send(ctx context.Context, sess *progress.Session, req ChatRequest) (ChatResponse, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return ChatResponse{}, ErrEmptyMessage
	}
	if !s.limiter.Allow(req.UserID) {
		return ChatResponse{}, ErrRateLimited
	}

	unlock := s.locks.lock(req.UserID)
	defer unlock()

	history := sess.Chat()
	userMsg, err := sess.AppendChatMessage(domain.ChatMessage{Role: domain.RoleUser, Content: message})
	if err != nil {
		return ChatResponse{}, err
	}
	s.logMessage(req, userMsg, "outbound", "chat_user_message", nil)

	ctx = WithCoachContext(ctx, coachContextOf(sess))
	start := time.Now()
	content, replyErr := s.reply(ctx, message, history)
	fallback := replyErr != nil
	if fallback {
		slog.Error("chat reply failed, using fallback",
			"user_id", req.UserID,
			"channel", req.Channel,
			"error", replyErr,
		)
		content = FallbackReply
	}

	reply, err := sess.AppendChatMessage(domain.ChatMessage{Role: domain.RoleAssistant, Content: content})
	if err != nil {
		return ChatResponse{}, err
	}

	meta := map[string]any{
		"latency_ms": time.Since(start).Milliseconds(),
		"fallback":   fallback,
	}
	if replyErr != nil {
		meta["error"] = replyErr.Error()
	}
	s.logMessage(req, reply, "inbound", "chat_assistant_message", meta)

	slog.Info("chat reply appended",
		"user_id", req.UserID,
		"channel", req.Channel,
		"message_length", len(message),
		"fallback", fallback,
	)
	return ChatResponse{UserMessage: userMsg, Reply: reply, Fallback: fallback}, nil
}

// Clear empties the transcript, waiting for any in-flight send to finish.
func (s *Service) Clear(userID string, sess *progress.Session) {
	unlock := s.locks.lock(userID)
	defer unlock()
	sess.ClearChat()
}

// Reset restarts the assessment in sess. Like Clear it waits for any
// in-flight send, so no reply lands in the reset transcript.
func (s *Service) Reset(userID string, sess *progress.Session) {
	unlock := s.locks.lock(userID)
	defer unlock()
	sess.Reset()
}

// Close releases the conversation log.
func (s *Service) Close() error {
	return s.log.Close()
}

func (s *Service) reply(ctx context.Context, message string, history []domain.ChatMessage) (string, error) {
	content, err := s.replier.Reply(ctx, message, history)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrReplyProvider, err)
	}
	if strings.TrimSpace(content) == "" {
		return "", fmt.Errorf("%w: empty reply", ErrReplyProvider)
	}
	return content, nil
}

func (s *Service) logMessage(req ChatRequest, m domain.ChatMessage, direction, eventType string, meta map[string]any) {
	if req.RequestID != "" {
		if meta == nil {
			meta = map[string]any{}
		}
		meta["request_id"] = req.RequestID
	}
	s.log.Log(ConversationLogEvent{
		Timestamp:  m.Timestamp.UTC().Format(time.RFC3339Nano),
		UserID:     req.UserID,
		Channel:    req.Channel,
		Direction:  direction,
		EventType:  eventType,
		MessageID:  m.ID,
		ContentRaw: m.Content,
		Meta:       meta,
	})
}

func coachContextOf(sess *progress.Session) CoachContext {
	var cc CoachContext
	if p, ok := sess.Profile(); ok {
		cc.Profile = &p
	}
	if c, ok := sess.CombinedResult(); ok {
		cc.Combined = &c
	}
	return cc
}

type refMutex struct {
	sync.Mutex
	refs int
}

// keyedMutex hands out one mutex per key and forgets it once unused.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*refMutex
}

func (k *keyedMutex) lock(key string) func() {
	k.mu.Lock()
	m, ok := k.locks[key]
	if !ok {
		m = &refMutex{}
		k.locks[key] = m
	}
	m.refs++
	k.mu.Unlock()

	m.Lock()
	return func() {
		m.Unlock()
		k.mu.Lock()
		m.refs--
		if m.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}
