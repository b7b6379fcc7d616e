package prompts

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getPrompt(t *testing.T, handle func(context.Context, mcp.GetPromptRequest) (*mcp.GetPromptResult, error), args map[string]string) string {
	t.Helper()
	req := mcp.GetPromptRequest{}
	req.Params.Arguments = args
	result, err := handle(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, result.Messages, 1)
	assert.Equal(t, mcp.RoleUser, result.Messages[0].Role)

	text, ok := result.Messages[0].Content.(mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestDefinitions(t *testing.T) {
	names := []string{
		NewRecommendNextTasksPrompt().Definition().Name,
		NewAutoPrioritizePrompt().Definition().Name,
		NewEnhanceTaskDetailsPrompt().Definition().Name,
		NewQuickCapturePrompt().Definition().Name,
	}
	assert.Equal(t, []string{"recommendNextTasks", "autoPrioritize", "enhanceTaskDetails", "quickCapture"}, names)
}

func TestRecommendNextTasks(t *testing.T) {
	p := NewRecommendNextTasksPrompt()

	text := getPrompt(t, p.Handle, nil)
	assert.Contains(t, text, "list_projects")
	assert.Contains(t, text, "top 3 tasks")

	text = getPrompt(t, p.Handle, map[string]string{"projectId": "proj_1", "limit": "5"})
	assert.Contains(t, text, "proj_1")
	assert.Contains(t, text, "top 5 tasks")

	text = getPrompt(t, p.Handle, map[string]string{"limit": "many"})
	assert.Contains(t, text, "top 3 tasks")
}

func TestAutoPrioritize(t *testing.T) {
	text := getPrompt(t, NewAutoPrioritizePrompt().Handle, map[string]string{"projectId": "proj_9"})
	assert.Contains(t, text, "proj_9")
	assert.Contains(t, text, "batch_update_tasks")
}

func TestEnhanceTaskDetails(t *testing.T) {
	p := NewEnhanceTaskDetailsPrompt()
	text := getPrompt(t, p.Handle, map[string]string{"taskId": "task_42"})
	assert.Contains(t, text, "task_42")
	assert.Contains(t, text, "update_task")

	_, err := p.Handle(context.Background(), mcp.GetPromptRequest{})
	assert.Error(t, err)
}

func TestQuickCapture(t *testing.T) {
	p := NewQuickCapturePrompt()
	text := getPrompt(t, p.Handle, map[string]string{"idea": "add dark mode"})
	assert.Contains(t, text, `"add dark mode"`)
	assert.Contains(t, text, "list_projects")

	text = getPrompt(t, p.Handle, map[string]string{"idea": "x", "projectId": "proj_2"})
	assert.Contains(t, text, "proj_2")

	_, err := p.Handle(context.Background(), mcp.GetPromptRequest{})
	assert.Error(t, err)
}
