package agent

// suggestedPrompts seed the chat for users who do not know where to start.
var suggestedPrompts = []string{
	"What should be my first step this week?",
	"How can I better align my work with my passions?",
	"What careers would suit my personality type?",
	"How do I overcome my identified blind spots?",
	"What habits should I develop for growth?",
}

// SuggestedPrompts returns the starter prompts in display order.
func SuggestedPrompts() []string {
	out := make([]string, len(suggestedPrompts))
	copy(out, suggestedPrompts)
	return out
}
