package prompts

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// EnhanceTaskDetailsPrompt handles the enhanceTaskDetails MCP prompt.
type EnhanceTaskDetailsPrompt struct{}

// NewEnhanceTaskDetailsPrompt creates an EnhanceTaskDetailsPrompt.
func NewEnhanceTaskDetailsPrompt() *EnhanceTaskDetailsPrompt {
	return &EnhanceTaskDetailsPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *EnhanceTaskDetailsPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("enhanceTaskDetails",
		mcp.WithPromptDescription("Flesh out a task with a clearer description, acceptance criteria and sensible tags."),
		mcp.WithArgument("taskId",
			mcp.ArgumentDescription("ID of the task to enhance"),
			mcp.RequiredArgument(),
		),
	)
}

// Handle processes the enhanceTaskDetails prompt request.
func (p *EnhanceTaskDetailsPrompt) Handle(_ context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	taskID := arg(req, "taskId", "")
	if taskID == "" {
		return nil, fmt.Errorf("taskId is required")
	}

	return userMessage(fmt.Sprintf("Enhance task %s", taskID), fmt.Sprintf(
		"Improve the details of task `%s`.\n\n"+
			"1. Find it with `search_tasks` (includeCompleted=true) and note its project\n"+
			"2. Run `list_tags` for that project\n"+
			"3. Draft a better description: the goal, the steps involved, and a short list of acceptance criteria\n"+
			"4. Suggest existing tags that fit, and a priority and due date if they are missing\n"+
			"5. Show me the draft and, once I approve, save it with `update_task`",
		taskID,
	)), nil
}
