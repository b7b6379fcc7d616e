package prompts

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// QuickCapturePrompt handles the quickCapture MCP prompt.
// It turns a one-line idea into a well-formed task.
type QuickCapturePrompt struct{}

// NewQuickCapturePrompt creates a QuickCapturePrompt.
func NewQuickCapturePrompt() *QuickCapturePrompt {
	return &QuickCapturePrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *QuickCapturePrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("quickCapture",
		mcp.WithPromptDescription("Capture a quick idea as a task, picking the project, priority and tags for you."),
		mcp.WithArgument("idea",
			mcp.ArgumentDescription("The idea or todo, in your own words"),
			mcp.RequiredArgument(),
		),
		mcp.WithArgument("projectId",
			mcp.ArgumentDescription("Project to add it to (default: best match among active projects)"),
		),
	)
}

// Handle processes the quickCapture prompt request.
func (p *QuickCapturePrompt) Handle(_ context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	idea := arg(req, "idea", "")
	if idea == "" {
		return nil, fmt.Errorf("idea is required")
	}

	target := "Pick the active project from `list_projects` that fits best, and ask me if none does."
	if projectID := arg(req, "projectId", ""); projectID != "" {
		target = fmt.Sprintf("Add it to project `%s`.", projectID)
	}

	return userMessage("Quick capture", fmt.Sprintf(
		"Capture this idea as a task: %q\n\n"+
			"%s\n\n"+
			"1. Turn the idea into a short action-oriented title and a one-paragraph description\n"+
			"2. Run `list_tags` and choose matching tags; create a new tag with `create_tag` only if nothing fits\n"+
			"3. Choose a priority (default medium)\n"+
			"4. Create it with `create_task` and reply with a one-line confirmation",
		idea, target,
	)), nil
}
