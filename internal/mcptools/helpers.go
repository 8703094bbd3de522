// Package mcptools exposes the questionnaires and the stateless scorers as
// MCP tools.
//
// Each tool follows the same shape:
// - A struct with its dependencies injected via constructor
// - Definition() returns the mcp.Tool schema
// - Handle() processes the request and returns a result
//
// Tools hold no session state. Callers pass the full answer set on each call.
package mcptools

import (
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ashureev/cemas/internal/assessment"
)

// boolArg extracts a boolean argument from a tool request.
func boolArg(req mcp.CallToolRequest, key string, defaultVal bool) bool {
	v, ok := req.GetArguments()[key].(bool)
	if !ok {
		return defaultVal
	}
	return v
}

// answersArg decodes a JSON object of question id to 1-5 value.
func answersArg(req mcp.CallToolRequest, key string) (assessment.AnswerMap, error) {
	raw := req.GetString(key, "")
	if raw == "" {
		return nil, fmt.Errorf("'%s' is required", key)
	}
	var answers assessment.AnswerMap
	if err := json.Unmarshal([]byte(raw), &answers); err != nil {
		return nil, fmt.Errorf("'%s' must be a JSON object of question id to value: %w", key, err)
	}
	return answers, nil
}

// jsonResult renders v as an indented JSON text result.
func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
