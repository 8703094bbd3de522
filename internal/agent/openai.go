package agent

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/ashureev/cemas/internal/domain"
)

const coachPersona = "You are Cemas, a supportive career and life coach. " +
	"Ground your advice in the user's Ikigai and personality results when they are available. " +
	"Keep answers concise and practical, and end with a question when it helps the user reflect."

// OpenAIReplier answers through an OpenAI-compatible chat completions API.
type OpenAIReplier struct {
	client      *openai.Client
	model       string
	temperature float64
	maxTokens   int
}

// NewOpenAIReplier builds a client from cfg. BaseURL and Model are required.
func NewOpenAIReplier(cfg Config) (*OpenAIReplier, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, errors.New("openai replier: base URL is required")
	}
	if strings.TrimSpace(cfg.Model) == "" {
		return nil, errors.New("openai replier: model is required")
	}

	httpClient := &http.Client{Timeout: cfg.Timeout}
	reqOpts := []option.RequestOption{
		option.WithBaseURL(baseURL),
		option.WithHTTPClient(httpClient),
	}
	if cfg.APIKey != "" {
		reqOpts = append(reqOpts, option.WithAPIKey(cfg.APIKey))
	}
	client := openai.NewClient(reqOpts...)

	return &OpenAIReplier{
		client:      &client,
		model:       strings.TrimSpace(cfg.Model),
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
	}, nil
}

// Reply implements Replier.
func (o *OpenAIReplier) Reply(ctx context.Context, message string, history []domain.ChatMessage) (string, error) {
	cc, _ := CoachContextFrom(ctx)

	params := openai.ChatCompletionNewParams{
		Model:    o.model,
		Messages: buildMessages(systemPrompt(cc), message, history),
	}
	if o.temperature > 0 {
		params.Temperature = openai.Opt(o.temperature)
	}
	if o.maxTokens > 0 {
		params.MaxCompletionTokens = openai.Opt(int64(o.maxTokens))
	}

	resp, err := o.client.Chat.Completions.New(ctx, params)
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			return "", fmt.Errorf("chat completion failed (status=%d): %s", apiErr.StatusCode, strings.TrimSpace(apiErr.Message))
		}
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if resp == nil || len(resp.Choices) == 0 {
		return "", errors.New("chat completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

func buildMessages(system, message string, history []domain.ChatMessage) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(history)+2)
	out = append(out, openai.SystemMessage(system))
	for _, m := range history {
		switch m.Role {
		case domain.RoleAssistant:
			out = append(out, openai.AssistantMessage(m.Content))
		default:
			out = append(out, openai.UserMessage(m.Content))
		}
	}
	out = append(out, openai.UserMessage(message))
	return out
}

func systemPrompt(cc CoachContext) string {
	var b strings.Builder
	b.WriteString(coachPersona)

	if p := cc.Profile; p != nil {
		fmt.Fprintf(&b, "\n\nUser: %s, age %d. Main goal: %s.", p.Name, p.Age, p.MainGoal)
	}
	if c := cc.Combined; c != nil {
		s := c.Ikigai.Scores
		fmt.Fprintf(&b, "\nIkigai scores: passion %.0f, mission %.0f, profession %.0f, vocation %.0f.",
			s.Passion, s.Mission, s.Profession, s.Vocation)
		if c.MBTI.Type != "" {
			fmt.Fprintf(&b, "\nPersonality type: %s. %s", c.MBTI.Type, c.MBTI.Description)
		}
		if len(c.Careers) > 0 {
			fmt.Fprintf(&b, "\nSuggested careers: %s.", strings.Join(c.Careers, ", "))
		}
		if len(c.Blindspots) > 0 {
			fmt.Fprintf(&b, "\nBlind spots: %s.", strings.Join(c.Blindspots, "; "))
		}
	}
	return b.String()
}
