package mcptools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ashureev/cemas/internal/assessment"
)

// IkigaiQuestionsTool handles the ikigai_questions MCP tool.
type IkigaiQuestionsTool struct{}

// NewIkigaiQuestionsTool creates an IkigaiQuestionsTool.
func NewIkigaiQuestionsTool() *IkigaiQuestionsTool {
	return &IkigaiQuestionsTool{}
}

// Definition returns the MCP tool definition for ikigai_questions.
func (t *IkigaiQuestionsTool) Definition() mcp.Tool {
	return mcp.NewTool("ikigai_questions",
		mcp.WithDescription(
			"List the 20 Ikigai questions (5 per domain: passion, mission, profession, vocation). "+
				"Each is answered on a 1-5 agreement scale.",
		),
	)
}

// Handle processes the ikigai_questions tool call.
func (t *IkigaiQuestionsTool) Handle(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(map[string]interface{}{"questions": assessment.IkigaiQuestions()})
}

// MBTIQuestionsTool handles the mbti_questions MCP tool.
type MBTIQuestionsTool struct{}

// NewMBTIQuestionsTool creates an MBTIQuestionsTool.
func NewMBTIQuestionsTool() *MBTIQuestionsTool {
	return &MBTIQuestionsTool{}
}

// Definition returns the MCP tool definition for mbti_questions.
func (t *MBTIQuestionsTool) Definition() mcp.Tool {
	return mcp.NewTool("mbti_questions",
		mcp.WithDescription(
			"List the 20 personality questions (5 per dimension: EI, SN, TF, JP). "+
				"Reverse-keyed items are flagged and inverted during scoring.",
		),
	)
}

// Handle processes the mbti_questions tool call.
func (t *MBTIQuestionsTool) Handle(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(map[string]interface{}{"questions": assessment.MBTIQuestions()})
}
