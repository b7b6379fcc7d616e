package tools

import (
	"context"

	"github.com/HendryAvila/roadmap-skill/internal/roadmap"
	"github.com/mark3labs/mcp-go/mcp"
)

// CreateTagTool handles the create_tag MCP tool.
type CreateTagTool struct {
	tags *roadmap.TagService
}

// NewCreateTagTool creates a CreateTagTool.
func NewCreateTagTool(tags *roadmap.TagService) *CreateTagTool {
	return &CreateTagTool{tags: tags}
}

// Definition returns the MCP tool definition for create_tag.
func (t *CreateTagTool) Definition() mcp.Tool {
	return mcp.NewTool("create_tag",
		mcp.WithDescription("Create a tag in a project. Names are unique per project ignoring case; the color is derived from the name when omitted."),
		mcp.WithString("projectId", mcp.Required(), mcp.Description("Project ID")),
		mcp.WithString("name", mcp.Required(), mcp.Description("Tag name")),
		mcp.WithString("color", mcp.Description("Hex color like #FF5733")),
		mcp.WithString("description", mcp.Description("What the tag means")),
	)
}

// Handle processes the create_tag tool call.
func (t *CreateTagTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projectID, err := requiredString(req, "projectId")
	if err != nil {
		return failure(err)
	}
	tag, err := t.tags.Create(projectID, roadmap.CreateTagInput{
		Name:        req.GetString("name", ""),
		Color:       req.GetString("color", ""),
		Description: req.GetString("description", ""),
	})
	if err != nil {
		return failure(err)
	}
	return success(tag)
}

// ListTagsTool handles the list_tags MCP tool.
type ListTagsTool struct {
	tags *roadmap.TagService
}

// NewListTagsTool creates a ListTagsTool.
func NewListTagsTool(tags *roadmap.TagService) *ListTagsTool {
	return &ListTagsTool{tags: tags}
}

// Definition returns the MCP tool definition for list_tags.
func (t *ListTagsTool) Definition() mcp.Tool {
	return mcp.NewTool("list_tags",
		mcp.WithDescription("List a project's tags with the number of tasks using each."),
		mcp.WithString("projectId", mcp.Required(), mcp.Description("Project ID")),
	)
}

// Handle processes the list_tags tool call.
func (t *ListTagsTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projectID, err := requiredString(req, "projectId")
	if err != nil {
		return failure(err)
	}
	tags, err := t.tags.List(projectID)
	if err != nil {
		return failure(err)
	}
	return success(tags)
}

// UpdateTagTool handles the update_tag MCP tool.
type UpdateTagTool struct {
	tags *roadmap.TagService
}

// NewUpdateTagTool creates an UpdateTagTool.
func NewUpdateTagTool(tags *roadmap.TagService) *UpdateTagTool {
	return &UpdateTagTool{tags: tags}
}

// Definition returns the MCP tool definition for update_tag.
func (t *UpdateTagTool) Definition() mcp.Tool {
	return mcp.NewTool("update_tag",
		mcp.WithDescription("Rename a tag or change its color or description."),
		mcp.WithString("projectId", mcp.Required(), mcp.Description("Project ID")),
		mcp.WithString("tagId", mcp.Required(), mcp.Description("Tag ID")),
		mcp.WithString("name", mcp.Description("New name")),
		mcp.WithString("color", mcp.Description("New hex color")),
		mcp.WithString("description", mcp.Description("New description")),
	)
}

// Handle processes the update_tag tool call.
func (t *UpdateTagTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projectID, err := requiredString(req, "projectId")
	if err != nil {
		return failure(err)
	}
	tagID, err := requiredString(req, "tagId")
	if err != nil {
		return failure(err)
	}
	tag, err := t.tags.Update(projectID, tagID, roadmap.UpdateTagInput{
		Name:        optionalString(req, "name"),
		Color:       optionalString(req, "color"),
		Description: optionalString(req, "description"),
	})
	if err != nil {
		return failure(err)
	}
	return success(tag)
}

// DeleteTagTool handles the delete_tag MCP tool.
type DeleteTagTool struct {
	tags *roadmap.TagService
}

// NewDeleteTagTool creates a DeleteTagTool.
func NewDeleteTagTool(tags *roadmap.TagService) *DeleteTagTool {
	return &DeleteTagTool{tags: tags}
}

// Definition returns the MCP tool definition for delete_tag.
func (t *DeleteTagTool) Definition() mcp.Tool {
	return mcp.NewTool("delete_tag",
		mcp.WithDescription("Delete a tag and remove it from every task in the project."),
		mcp.WithString("projectId", mcp.Required(), mcp.Description("Project ID")),
		mcp.WithString("tagId", mcp.Required(), mcp.Description("Tag ID")),
	)
}

// Handle processes the delete_tag tool call.
func (t *DeleteTagTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projectID, err := requiredString(req, "projectId")
	if err != nil {
		return failure(err)
	}
	tagID, err := requiredString(req, "tagId")
	if err != nil {
		return failure(err)
	}
	result, err := t.tags.Delete(projectID, tagID)
	if err != nil {
		return failure(err)
	}
	return success(result)
}

// GetTasksByTagTool handles the get_tasks_by_tag MCP tool.
type GetTasksByTagTool struct {
	tags *roadmap.TagService
}

// NewGetTasksByTagTool creates a GetTasksByTagTool.
func NewGetTasksByTagTool(tags *roadmap.TagService) *GetTasksByTagTool {
	return &GetTasksByTagTool{tags: tags}
}

// Definition returns the MCP tool definition for get_tasks_by_tag.
func (t *GetTasksByTagTool) Definition() mcp.Tool {
	return mcp.NewTool("get_tasks_by_tag",
		mcp.WithDescription("Get every task carrying a tag, looked up by name (case-insensitive)."),
		mcp.WithString("projectId", mcp.Required(), mcp.Description("Project ID")),
		mcp.WithString("tagName", mcp.Required(), mcp.Description("Tag name")),
	)
}

// Handle processes the get_tasks_by_tag tool call.
func (t *GetTasksByTagTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projectID, err := requiredString(req, "projectId")
	if err != nil {
		return failure(err)
	}
	tagName, err := requiredString(req, "tagName")
	if err != nil {
		return failure(err)
	}
	result, err := t.tags.TasksByTag(projectID, tagName)
	if err != nil {
		return failure(err)
	}
	return success(result)
}
