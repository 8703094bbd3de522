package mcptools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ashureev/cemas/internal/assessment"
)

// IkigaiScoreTool handles the ikigai_score MCP tool.
type IkigaiScoreTool struct{}

// NewIkigaiScoreTool creates an IkigaiScoreTool.
func NewIkigaiScoreTool() *IkigaiScoreTool {
	return &IkigaiScoreTool{}
}

// Definition returns the MCP tool definition for ikigai_score.
func (t *IkigaiScoreTool) Definition() mcp.Tool {
	return mcp.NewTool("ikigai_score",
		mcp.WithDescription(
			"Score a complete Ikigai answer set. Returns per-domain scores and one insight per domain.",
		),
		mcp.WithString("answers",
			mcp.Required(),
			mcp.Description(`JSON object mapping every Ikigai question id to a 1-5 value, e.g. {"p1":4,"p2":5,...}`),
		),
	)
}

// Handle processes the ikigai_score tool call.
func (t *IkigaiScoreTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	answers, err := answersArg(req, "answers")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	result, err := assessment.ScoreIkigai(answers)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to score ikigai: %v", err)), nil
	}
	return jsonResult(result)
}

// MBTIScoreTool handles the mbti_score MCP tool.
type MBTIScoreTool struct {
	synth assessment.Synthesizer
}

// NewMBTIScoreTool creates an MBTIScoreTool that synthesizes with synth.
func NewMBTIScoreTool(synth assessment.Synthesizer) *MBTIScoreTool {
	if synth == nil {
		synth = assessment.StaticSynthesizer{}
	}
	return &MBTIScoreTool{synth: synth}
}

// Definition returns the MCP tool definition for mbti_score.
func (t *MBTIScoreTool) Definition() mcp.Tool {
	return mcp.NewTool("mbti_score",
		mcp.WithDescription(
			"Score a complete personality answer set into a four-letter type with dimension percentages. "+
				"With synthesize=true and ikigai_answers, also returns the combined profile: "+
				"careers, optimal work, blind spots and a 1 week / 1 month / 3 month action plan.",
		),
		mcp.WithString("answers",
			mcp.Required(),
			mcp.Description(`JSON object mapping every personality question id to a 1-5 value, e.g. {"ei1":2,...}`),
		),
		mcp.WithBoolean("synthesize",
			mcp.Description("If true, also synthesize the combined profile (default: false)"),
		),
		mcp.WithString("ikigai_answers",
			mcp.Description("Complete Ikigai answers as JSON. Required when synthesize is true."),
		),
	)
}

// Handle processes the mbti_score tool call.
func (t *MBTIScoreTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	answers, err := answersArg(req, "answers")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	mbti, err := assessment.ScoreMBTI(answers)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to score mbti: %v", err)), nil
	}
	if !boolArg(req, "synthesize", false) {
		return jsonResult(mbti)
	}

	ikigaiAnswers, err := answersArg(req, "ikigai_answers")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("synthesis needs ikigai answers: %v", err)), nil
	}
	ikigai, err := assessment.ScoreIkigai(ikigaiAnswers)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to score ikigai: %v", err)), nil
	}
	combined, err := t.synth.Synthesize(ikigai, mbti)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to synthesize: %v", err)), nil
	}
	return jsonResult(combined)
}
