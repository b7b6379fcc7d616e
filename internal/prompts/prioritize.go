package prompts

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// AutoPrioritizePrompt handles the autoPrioritize MCP prompt.
type AutoPrioritizePrompt struct{}

// NewAutoPrioritizePrompt creates an AutoPrioritizePrompt.
func NewAutoPrioritizePrompt() *AutoPrioritizePrompt {
	return &AutoPrioritizePrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *AutoPrioritizePrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("autoPrioritize",
		mcp.WithPromptDescription("Review open tasks and propose priority changes, applied in one batch after confirmation."),
		mcp.WithArgument("projectId",
			mcp.ArgumentDescription("Project to re-prioritize (default: all active projects)"),
		),
	)
}

// Handle processes the autoPrioritize prompt request.
func (p *AutoPrioritizePrompt) Handle(_ context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	return userMessage("Auto-prioritize tasks", fmt.Sprintf(
		"Review the priorities of my open tasks.\n\n"+
			"%s\n\n"+
			"Then:\n"+
			"1. Run `list_tasks` for the open tasks and read the `roadmap://project/{projectId}/progress` resource "+
			"to see overdue work and how much time is left\n"+
			"2. Propose a new priority (low, medium, high, critical) for each task whose current one looks wrong. "+
			"Overdue tasks and tasks that block others should move up; nice-to-haves with distant dates should move down\n"+
			"3. Show the proposal as a table: task, current priority, proposed priority, reason\n"+
			"4. After I confirm, apply the changes with `batch_update_tasks`, grouping tasks that get the same priority",
		scope(arg(req, "projectId", "")),
	)), nil
}
