// Package agent implements the coaching chat: reply backends, the send
// pipeline that keeps the transcript consistent, and its HTTP surface.
package agent

import (
	"errors"
	"time"

	"github.com/ashureev/cemas/internal/domain"
)

var (
	// ErrEmptyMessage is returned when a chat message is blank after trimming.
	ErrEmptyMessage = errors.New("message is required")
	// ErrRateLimited is returned when a user exceeds the chat rate limit.
	ErrRateLimited = errors.New("rate limit exceeded")
	// ErrReplyProvider wraps reply backend failures. It is logged and
	// replaced by FallbackReply, never returned from Send.
	ErrReplyProvider = errors.New("reply provider failed")
)

// FallbackReply is appended in place of a failed reply.
const FallbackReply = "I'm sorry, I'm having trouble responding right now. Please try again."

// Backend names accepted by NewReplier.
const (
	BackendCanned = "canned"
	BackendOpenAI = "openai"
)

// Conversation log channels.
const (
	ChannelHTTP      = "chat_http"
	ChannelWebSocket = "chat_ws"
)

// ChatRequest is a user message to the coach.
type ChatRequest struct {
	Message   string `json:"message"`
	UserID    string `json:"-"`
	Channel   string `json:"-"`
	RequestID string `json:"-"`
}

// ChatResponse carries both transcript entries produced by one send.
type ChatResponse struct {
	UserMessage domain.ChatMessage `json:"userMessage"`
	Reply       domain.ChatMessage `json:"reply"`
	Fallback    bool               `json:"fallback"`
}

// Config holds reply backend configuration.
type Config struct {
	Backend     string
	ReplyDelay  time.Duration
	APIKey      string
	BaseURL     string
	Model       string
	Timeout     time.Duration
	Temperature float64
	MaxTokens   int
}

// DefaultConfig returns the offline configuration.
func DefaultConfig() Config {
	return Config{
		Backend:     BackendCanned,
		ReplyDelay:  1500 * time.Millisecond,
		BaseURL:     "https://api.groq.com/openai/v1",
		Model:       "meta-llama/llama-4-maverick-17b-128e-instruct",
		Timeout:     30 * time.Second,
		Temperature: 0.7,
		MaxTokens:   4096,
	}
}
