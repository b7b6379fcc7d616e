package tools

import (
	"context"
	"time"

	"github.com/HendryAvila/roadmap-skill/internal/roadmap"
	"github.com/HendryAvila/roadmap-skill/internal/templates"
	"github.com/mark3labs/mcp-go/mcp"
)

// today returns the local calendar date used for template defaults.
var today = func() string { return time.Now().Format("2006-01-02") }

// ListTemplatesTool handles the list_templates MCP tool.
type ListTemplatesTool struct {
	lib *templates.Library
}

// NewListTemplatesTool creates a ListTemplatesTool.
func NewListTemplatesTool(lib *templates.Library) *ListTemplatesTool {
	return &ListTemplatesTool{lib: lib}
}

// Definition returns the MCP tool definition for list_templates.
func (t *ListTemplatesTool) Definition() mcp.Tool {
	return mcp.NewTool("list_templates",
		mcp.WithDescription("List the project templates that apply_template can use."),
	)
}

// Handle processes the list_templates tool call.
func (t *ListTemplatesTool) Handle(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	list, err := t.lib.List()
	if err != nil {
		return failure(err)
	}
	return success(list)
}

// GetTemplateTool handles the get_template MCP tool.
type GetTemplateTool struct {
	lib *templates.Library
}

// NewGetTemplateTool creates a GetTemplateTool.
func NewGetTemplateTool(lib *templates.Library) *GetTemplateTool {
	return &GetTemplateTool{lib: lib}
}

// Definition returns the MCP tool definition for get_template.
func (t *GetTemplateTool) Definition() mcp.Tool {
	return mcp.NewTool("get_template",
		mcp.WithDescription("Show a template's tags and tasks."),
		mcp.WithString("templateName", mcp.Required(), mcp.Description("Template key, e.g. web-app")),
	)
}

// Handle processes the get_template tool call.
func (t *GetTemplateTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := requiredString(req, "templateName")
	if err != nil {
		return failure(err)
	}
	tpl, err := t.lib.Get(name)
	if err != nil {
		return failure(err)
	}
	return success(tpl)
}

// ApplyTemplateTool handles the apply_template MCP tool.
type ApplyTemplateTool struct {
	lib  *templates.Library
	repo *roadmap.Repository
}

// NewApplyTemplateTool creates an ApplyTemplateTool.
func NewApplyTemplateTool(lib *templates.Library, repo *roadmap.Repository) *ApplyTemplateTool {
	return &ApplyTemplateTool{lib: lib, repo: repo}
}

// Definition returns the MCP tool definition for apply_template.
func (t *ApplyTemplateTool) Definition() mcp.Tool {
	return mcp.NewTool("apply_template",
		mcp.WithDescription("Create a new project pre-filled with a template's tags and tasks."),
		mcp.WithString("templateName", mcp.Required(), mcp.Description("Template key, e.g. web-app")),
		mcp.WithString("projectName", mcp.Required(), mcp.Description("Name of the new project")),
		mcp.WithString("description", mcp.Description("Project description (default: the template's)")),
		mcp.WithString("startDate", mcp.Description("Start date (YYYY-MM-DD, default: today)")),
		mcp.WithString("targetDate", mcp.Description("Target date (YYYY-MM-DD, default: today)")),
	)
}

// Handle processes the apply_template tool call.
func (t *ApplyTemplateTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := requiredString(req, "templateName")
	if err != nil {
		return failure(err)
	}
	result, err := t.lib.Apply(t.repo, templates.ApplyInput{
		TemplateName: name,
		ProjectName:  req.GetString("projectName", ""),
		Description:  req.GetString("description", ""),
		StartDate:    req.GetString("startDate", ""),
		TargetDate:   req.GetString("targetDate", ""),
	}, today())
	if err != nil {
		return failure(err)
	}
	return success(result)
}
