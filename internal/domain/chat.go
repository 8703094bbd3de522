package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidMessage is returned for chat messages with an unknown role.
var ErrInvalidMessage = errors.New("invalid chat message")

// Role identifies the author of a chat message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Validate returns an error if r is not a known role.
func (r Role) Validate() error {
	switch r {
	case RoleUser, RoleAssistant:
		return nil
	}
	return fmt.Errorf("%w: role %q", ErrInvalidMessage, r)
}

// ChatMessage is a single transcript entry. Transcripts are append-only and
// ordered by append.
type ChatMessage struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}
