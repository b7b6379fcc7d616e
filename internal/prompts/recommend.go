package prompts

import (
	"context"
	"fmt"
	"strconv"

	"github.com/mark3labs/mcp-go/mcp"
)

const defaultRecommendLimit = 3

// RecommendNextTasksPrompt handles the recommendNextTasks MCP prompt.
// It asks the AI to pick the most valuable tasks to work on next.
type RecommendNextTasksPrompt struct{}

// NewRecommendNextTasksPrompt creates a RecommendNextTasksPrompt.
func NewRecommendNextTasksPrompt() *RecommendNextTasksPrompt {
	return &RecommendNextTasksPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *RecommendNextTasksPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("recommendNextTasks",
		mcp.WithPromptDescription("Recommend which open tasks to tackle next, based on priority, due dates and work in progress."),
		mcp.WithArgument("projectId",
			mcp.ArgumentDescription("Limit the recommendation to one project (default: all active projects)"),
		),
		mcp.WithArgument("limit",
			mcp.ArgumentDescription("How many tasks to recommend (default: 3)"),
		),
	)
}

// Handle processes the recommendNextTasks prompt request.
func (p *RecommendNextTasksPrompt) Handle(_ context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	projectID := arg(req, "projectId", "")
	limit := defaultRecommendLimit
	if n, err := strconv.Atoi(arg(req, "limit", "")); err == nil && n > 0 {
		limit = n
	}

	return userMessage("Recommend next tasks", fmt.Sprintf(
		"Help me decide what to work on next.\n\n"+
			"%s\n\n"+
			"Then:\n"+
			"1. Run `list_tasks` (add projectId if given) to get every open task\n"+
			"2. Rank them: critical and high priority first, then tasks that are overdue or due soonest, "+
			"and prefer finishing in-progress or review work over starting new work\n"+
			"3. Recommend the top %d tasks. For each one give the title, project, priority, due date "+
			"and one sentence on why it should come next\n"+
			"4. Offer to move the first recommendation to in-progress with `update_task`",
		scope(projectID), limit,
	)), nil
}
