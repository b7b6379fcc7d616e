// Package prompts implements MCP prompt handlers for roadmap planning.
//
// MCP prompts are user-triggered workflows (like slash commands) that
// instruct the AI to execute a specific sequence of tool calls. Unlike
// tools (which the AI calls), prompts are initiated by the user.
package prompts

import (
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// arg returns a prompt argument or def when it is missing or empty.
func arg(req mcp.GetPromptRequest, key, def string) string {
	if v, ok := req.Params.Arguments[key]; ok && v != "" {
		return v
	}
	return def
}

// scope describes which projects a prompt should look at.
func scope(projectID string) string {
	if projectID == "" {
		return "Run `list_projects` and consider every active project."
	}
	return fmt.Sprintf("Focus on project `%s` (use `get_project` with projectId=%q).", projectID, projectID)
}

func userMessage(description, text string) *mcp.GetPromptResult {
	return &mcp.GetPromptResult{
		Description: description,
		Messages: []mcp.PromptMessage{
			{
				Role:    mcp.RoleUser,
				Content: mcp.NewTextContent(text),
			},
		},
	}
}
