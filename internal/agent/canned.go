package agent

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/ashureev/cemas/internal/domain"
)

// cannedReplies is the offline response pool.
var cannedReplies = []string{
	"Based on your Ikigai and personality results, I'd recommend starting with small steps that align with your passions. What specific area interests you most?",
	"Your ENFP personality suggests you thrive in collaborative environments. Consider projects that involve working with others and making a positive impact.",
	"Given your strong passion scores, focus on activities that energize you. This is where you'll find your greatest motivation and success.",
	"Your results show great potential for creative careers. What skills would you like to develop first to move in that direction?",
	"I notice your mission scores are strong. How can you incorporate more purpose-driven activities into your daily routine?",
}

// Picker returns an index in [0, n).
type Picker func(n int) int

// CannedReplier answers with a uniformly chosen canned response after a
// simulated delay. It ignores the message and history.
type CannedReplier struct {
	responses []string
	pick      Picker
	delay     time.Duration
}

// NewCannedReplier returns a canned backend. A nil pick uses math/rand/v2.
func NewCannedReplier(delay time.Duration, pick Picker) *CannedReplier {
	if pick == nil {
		pick = rand.IntN
	}
	return &CannedReplier{responses: CannedReplies(), pick: pick, delay: delay}
}

// CannedReplies returns the response pool.
func CannedReplies() []string {
	out := make([]string, len(cannedReplies))
	copy(out, cannedReplies)
	return out
}

// Reply implements Replier.
func (c *CannedReplier) Reply(ctx context.Context, _ string, _ []domain.ChatMessage) (string, error) {
	if c.delay > 0 {
		timer := time.NewTimer(c.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-timer.C:
		}
	}
	return c.responses[c.pick(len(c.responses))], nil
}
