package tools

import (
	"context"

	"github.com/HendryAvila/roadmap-skill/internal/roadmap"
	"github.com/mark3labs/mcp-go/mcp"
)

// CreateProjectTool handles the create_project MCP tool.
type CreateProjectTool struct {
	repo *roadmap.Repository
}

// NewCreateProjectTool creates a CreateProjectTool.
func NewCreateProjectTool(repo *roadmap.Repository) *CreateProjectTool {
	return &CreateProjectTool{repo: repo}
}

// Definition returns the MCP tool definition for create_project.
func (t *CreateProjectTool) Definition() mcp.Tool {
	return mcp.NewTool("create_project",
		mcp.WithDescription("Create a new project (roadmap, skill tree or kanban board) with empty tasks, tags and milestones."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Project name")),
		mcp.WithString("description", mcp.Required(), mcp.Description("What the project is about")),
		mcp.WithString("projectType", mcp.Required(),
			mcp.Description("Kind of project"),
			mcp.Enum(projectTypes...),
		),
		mcp.WithString("startDate", mcp.Required(), mcp.Description("Start date (YYYY-MM-DD)")),
		mcp.WithString("targetDate", mcp.Required(), mcp.Description("Target completion date (YYYY-MM-DD)")),
	)
}

// Handle processes the create_project tool call.
func (t *CreateProjectTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	doc, err := t.repo.Create(roadmap.CreateProjectInput{
		Name:        req.GetString("name", ""),
		Description: req.GetString("description", ""),
		ProjectType: roadmap.ProjectType(req.GetString("projectType", "")),
		StartDate:   req.GetString("startDate", ""),
		TargetDate:  req.GetString("targetDate", ""),
	})
	if err != nil {
		return failure(err)
	}
	return success(doc)
}

// ListProjectsTool handles the list_projects MCP tool.
type ListProjectsTool struct {
	repo *roadmap.Repository
}

// NewListProjectsTool creates a ListProjectsTool.
func NewListProjectsTool(repo *roadmap.Repository) *ListProjectsTool {
	return &ListProjectsTool{repo: repo}
}

// Definition returns the MCP tool definition for list_projects.
func (t *ListProjectsTool) Definition() mcp.Tool {
	return mcp.NewTool("list_projects",
		mcp.WithDescription("List all projects with task and milestone counts, most recently updated first."),
	)
}

// Handle processes the list_projects tool call.
func (t *ListProjectsTool) Handle(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projects, err := t.repo.List()
	if err != nil {
		return failure(err)
	}
	return success(projects)
}

// GetProjectTool handles the get_project MCP tool.
type GetProjectTool struct {
	repo *roadmap.Repository
}

// NewGetProjectTool creates a GetProjectTool.
func NewGetProjectTool(repo *roadmap.Repository) *GetProjectTool {
	return &GetProjectTool{repo: repo}
}

// Definition returns the MCP tool definition for get_project.
func (t *GetProjectTool) Definition() mcp.Tool {
	return mcp.NewTool("get_project",
		mcp.WithDescription("Get a full project document: project header, milestones, tasks and tags."),
		mcp.WithString("projectId", mcp.Required(), mcp.Description("Project ID")),
	)
}

// Handle processes the get_project tool call.
func (t *GetProjectTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projectID, err := requiredString(req, "projectId")
	if err != nil {
		return failure(err)
	}
	doc, err := t.repo.Require(projectID)
	if err != nil {
		return failure(err)
	}
	return success(doc)
}

// UpdateProjectTool handles the update_project MCP tool.
type UpdateProjectTool struct {
	repo *roadmap.Repository
}

// NewUpdateProjectTool creates an UpdateProjectTool.
func NewUpdateProjectTool(repo *roadmap.Repository) *UpdateProjectTool {
	return &UpdateProjectTool{repo: repo}
}

// Definition returns the MCP tool definition for update_project.
func (t *UpdateProjectTool) Definition() mcp.Tool {
	return mcp.NewTool("update_project",
		mcp.WithDescription("Update project fields. Only the supplied fields change; at least one is required."),
		mcp.WithString("projectId", mcp.Required(), mcp.Description("Project ID")),
		mcp.WithString("name", mcp.Description("New name")),
		mcp.WithString("description", mcp.Description("New description")),
		mcp.WithString("projectType", mcp.Description("New project type"), mcp.Enum(projectTypes...)),
		mcp.WithString("status", mcp.Description("New project status"), mcp.Enum(projectStatus...)),
		mcp.WithString("startDate", mcp.Description("New start date (YYYY-MM-DD)")),
		mcp.WithString("targetDate", mcp.Description("New target date (YYYY-MM-DD)")),
	)
}

// Handle processes the update_project tool call.
func (t *UpdateProjectTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projectID, err := requiredString(req, "projectId")
	if err != nil {
		return failure(err)
	}

	in := roadmap.UpdateProjectInput{
		Name:        optionalString(req, "name"),
		Description: optionalString(req, "description"),
		StartDate:   optionalString(req, "startDate"),
		TargetDate:  optionalString(req, "targetDate"),
	}
	if v := optionalString(req, "projectType"); v != nil {
		pt := roadmap.ProjectType(*v)
		in.ProjectType = &pt
	}
	if v := optionalString(req, "status"); v != nil {
		st := roadmap.ProjectStatus(*v)
		in.Status = &st
	}
	if in.IsEmpty() {
		return failure(roadmap.Validationf("At least one field to update is required"))
	}

	doc, err := t.repo.Update(projectID, in)
	if err != nil {
		return failure(err)
	}
	if doc == nil {
		return failure(roadmap.NotFoundf("Project with ID '%s' not found", projectID))
	}
	return success(doc)
}

// DeleteProjectTool handles the delete_project MCP tool.
type DeleteProjectTool struct {
	repo *roadmap.Repository
}

// NewDeleteProjectTool creates a DeleteProjectTool.
func NewDeleteProjectTool(repo *roadmap.Repository) *DeleteProjectTool {
	return &DeleteProjectTool{repo: repo}
}

// Definition returns the MCP tool definition for delete_project.
func (t *DeleteProjectTool) Definition() mcp.Tool {
	return mcp.NewTool("delete_project",
		mcp.WithDescription("Permanently delete a project and everything in it."),
		mcp.WithString("projectId", mcp.Required(), mcp.Description("Project ID")),
	)
}

// Handle processes the delete_project tool call.
func (t *DeleteProjectTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projectID, err := requiredString(req, "projectId")
	if err != nil {
		return failure(err)
	}
	deleted, err := t.repo.Delete(projectID)
	if err != nil {
		return failure(err)
	}
	if !deleted {
		return failure(roadmap.NotFoundf("Project with ID '%s' not found", projectID))
	}
	return success(map[string]any{"deleted": true, "projectId": projectID})
}
