package mcptools

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/ashureev/cemas/internal/assessment"
)

// Version is reported to MCP clients.
const Version = "0.1.0"

// NewServer returns an MCP server with every assessment tool registered.
func NewServer(synth assessment.Synthesizer) *server.MCPServer {
	s := server.NewMCPServer(
		"cemas",
		Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(instructions),
	)

	ikigaiQuestions := NewIkigaiQuestionsTool()
	s.AddTool(ikigaiQuestions.Definition(), ikigaiQuestions.Handle)

	mbtiQuestions := NewMBTIQuestionsTool()
	s.AddTool(mbtiQuestions.Definition(), mbtiQuestions.Handle)

	ikigaiScore := NewIkigaiScoreTool()
	s.AddTool(ikigaiScore.Definition(), ikigaiScore.Handle)

	mbtiScore := NewMBTIScoreTool(synth)
	s.AddTool(mbtiScore.Definition(), mbtiScore.Handle)

	return s
}

const instructions = `Cemas scores Ikigai and personality questionnaires.
Fetch questions with ikigai_questions and mbti_questions, collect a 1-5 answer for
every id, then call ikigai_score and mbti_score. Pass synthesize=true with
ikigai_answers to mbti_score for the combined profile and action plan.`
