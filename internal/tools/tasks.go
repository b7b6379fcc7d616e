package tools

import (
	"context"

	"github.com/HendryAvila/roadmap-skill/internal/roadmap"
	"github.com/mark3labs/mcp-go/mcp"
)

// filterOptions declares the task filter arguments shared by list_tasks
// and search_tasks.
func filterOptions() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithString("status", mcp.Description("Only tasks with this status"), mcp.Enum(taskStatuses...)),
		mcp.WithString("priority", mcp.Description("Only tasks with this priority"), mcp.Enum(taskPriorities...)),
		mcp.WithArray("tags",
			mcp.Description("Tag IDs; a task matches if it carries any of them"),
			mcp.WithStringItems(),
		),
		mcp.WithString("assignee", mcp.Description("Only tasks assigned to this person")),
		mcp.WithString("dueBefore", mcp.Description("Due on or before this date (YYYY-MM-DD); undated tasks pass")),
		mcp.WithString("dueAfter", mcp.Description("Due on or after this date (YYYY-MM-DD); undated tasks pass")),
		mcp.WithString("searchText", mcp.Description("Case-insensitive text matched against title and description")),
		mcp.WithBoolean("includeCompleted", mcp.Description("Include done tasks (default: false)")),
	}
}

// CreateTaskTool handles the create_task MCP tool.
type CreateTaskTool struct {
	tasks *roadmap.TaskService
}

// NewCreateTaskTool creates a CreateTaskTool.
func NewCreateTaskTool(tasks *roadmap.TaskService) *CreateTaskTool {
	return &CreateTaskTool{tasks: tasks}
}

// Definition returns the MCP tool definition for create_task.
func (t *CreateTaskTool) Definition() mcp.Tool {
	return mcp.NewTool("create_task",
		mcp.WithDescription("Create a task in a project. New tasks start as todo."),
		mcp.WithString("projectId", mcp.Required(), mcp.Description("Project ID")),
		mcp.WithString("title", mcp.Required(), mcp.Description("Task title")),
		mcp.WithString("description", mcp.Required(), mcp.Description("Task description")),
		mcp.WithString("priority", mcp.Description("Priority (default: medium)"), mcp.Enum(taskPriorities...)),
		mcp.WithArray("tags", mcp.Description("Tag IDs from this project"), mcp.WithStringItems()),
		mcp.WithString("dueDate", mcp.Description("Due date (YYYY-MM-DD)")),
		mcp.WithString("assignee", mcp.Description("Person responsible")),
	)
}

// Handle processes the create_task tool call.
func (t *CreateTaskTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projectID, err := requiredString(req, "projectId")
	if err != nil {
		return failure(err)
	}
	tags, _ := stringSliceArg(req, "tags")
	task, err := t.tasks.Create(projectID, roadmap.CreateTaskInput{
		Title:       req.GetString("title", ""),
		Description: req.GetString("description", ""),
		Priority:    roadmap.TaskPriority(req.GetString("priority", "")),
		Tags:        tags,
		DueDate:     optionalString(req, "dueDate"),
		Assignee:    optionalString(req, "assignee"),
	})
	if err != nil {
		return failure(err)
	}
	return success(task)
}

// ListTasksTool handles the list_tasks MCP tool.
type ListTasksTool struct {
	tasks *roadmap.TaskService
}

// NewListTasksTool creates a ListTasksTool.
func NewListTasksTool(tasks *roadmap.TaskService) *ListTasksTool {
	return &ListTasksTool{tasks: tasks}
}

// Definition returns the MCP tool definition for list_tasks.
func (t *ListTasksTool) Definition() mcp.Tool {
	opts := []mcp.ToolOption{
		mcp.WithDescription("List tasks matching the given filters. Done tasks are hidden unless includeCompleted is true or status is done."),
		mcp.WithString("projectId", mcp.Description("Restrict to one project")),
	}
	return mcp.NewTool("list_tasks", append(opts, filterOptions()...)...)
}

// Handle processes the list_tasks tool call.
func (t *ListTasksTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	filters := searchFilters(req)
	if err := validateFilters(filters); err != nil {
		return failure(err)
	}
	tasks, err := t.tasks.List(filters)
	if err != nil {
		return failure(err)
	}
	return success(tasks)
}

// SearchTasksTool handles the search_tasks MCP tool.
type SearchTasksTool struct {
	repo *roadmap.Repository
}

// NewSearchTasksTool creates a SearchTasksTool.
func NewSearchTasksTool(repo *roadmap.Repository) *SearchTasksTool {
	return &SearchTasksTool{repo: repo}
}

// Definition returns the MCP tool definition for search_tasks.
func (t *SearchTasksTool) Definition() mcp.Tool {
	opts := []mcp.ToolOption{
		mcp.WithDescription("Search tasks across all projects. Each hit includes its project."),
		mcp.WithString("projectId", mcp.Description("Restrict to one project")),
	}
	return mcp.NewTool("search_tasks", append(opts, filterOptions()...)...)
}

// Handle processes the search_tasks tool call.
func (t *SearchTasksTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	filters := searchFilters(req)
	if err := validateFilters(filters); err != nil {
		return failure(err)
	}
	hits, err := t.repo.SearchTasks(filters)
	if err != nil {
		return failure(err)
	}
	return success(roadmap.ExcludeCompleted(hits, filters))
}

// GetTaskTool handles the get_task MCP tool.
type GetTaskTool struct {
	tasks *roadmap.TaskService
}

// NewGetTaskTool creates a GetTaskTool.
func NewGetTaskTool(tasks *roadmap.TaskService) *GetTaskTool {
	return &GetTaskTool{tasks: tasks}
}

// Definition returns the MCP tool definition for get_task.
func (t *GetTaskTool) Definition() mcp.Tool {
	return mcp.NewTool("get_task",
		mcp.WithDescription("Get one task by ID."),
		mcp.WithString("projectId", mcp.Required(), mcp.Description("Project ID")),
		mcp.WithString("taskId", mcp.Required(), mcp.Description("Task ID")),
	)
}

// Handle processes the get_task tool call.
func (t *GetTaskTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projectID, err := requiredString(req, "projectId")
	if err != nil {
		return failure(err)
	}
	taskID, err := requiredString(req, "taskId")
	if err != nil {
		return failure(err)
	}
	task, err := t.tasks.Get(projectID, taskID)
	if err != nil {
		return failure(err)
	}
	return success(task)
}

// UpdateTaskTool handles the update_task MCP tool.
type UpdateTaskTool struct {
	tasks *roadmap.TaskService
}

// NewUpdateTaskTool creates an UpdateTaskTool.
func NewUpdateTaskTool(tasks *roadmap.TaskService) *UpdateTaskTool {
	return &UpdateTaskTool{tasks: tasks}
}

// Definition returns the MCP tool definition for update_task.
func (t *UpdateTaskTool) Definition() mcp.Tool {
	return mcp.NewTool("update_task",
		mcp.WithDescription(
			"Update task fields. Moving a task to done records completedAt; moving it out of done clears it. "+
				"Pass null for dueDate or assignee to clear them.",
		),
		mcp.WithString("projectId", mcp.Required(), mcp.Description("Project ID")),
		mcp.WithString("taskId", mcp.Required(), mcp.Description("Task ID")),
		mcp.WithString("title", mcp.Description("New title")),
		mcp.WithString("description", mcp.Description("New description")),
		mcp.WithString("status", mcp.Description("New status"), mcp.Enum(taskStatuses...)),
		mcp.WithString("priority", mcp.Description("New priority"), mcp.Enum(taskPriorities...)),
		mcp.WithArray("tags", mcp.Description("Replacement tag IDs"), mcp.WithStringItems()),
		mcp.WithString("dueDate", mcp.Description("New due date (YYYY-MM-DD), or null to clear")),
		mcp.WithString("assignee", mcp.Description("New assignee, or null to clear")),
	)
}

// Handle processes the update_task tool call.
func (t *UpdateTaskTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projectID, err := requiredString(req, "projectId")
	if err != nil {
		return failure(err)
	}
	taskID, err := requiredString(req, "taskId")
	if err != nil {
		return failure(err)
	}

	in := roadmap.UpdateTaskInput{
		Title:       optionalString(req, "title"),
		Description: optionalString(req, "description"),
	}
	if v := optionalString(req, "status"); v != nil {
		st := roadmap.TaskStatus(*v)
		in.Status = &st
	}
	if v := optionalString(req, "priority"); v != nil {
		p := roadmap.TaskPriority(*v)
		in.Priority = &p
	}
	in.Tags, in.SetTags = stringSliceArg(req, "tags")
	if v, present := nullableString(req, "dueDate"); present {
		in.DueDate = v
		in.ClearDueDate = v == nil
	}
	if v, present := nullableString(req, "assignee"); present {
		in.Assignee = v
		in.ClearAssignee = v == nil
	}

	task, err := t.tasks.Update(projectID, taskID, in)
	if err != nil {
		return failure(err)
	}
	return success(task)
}

// DeleteTaskTool handles the delete_task MCP tool.
type DeleteTaskTool struct {
	tasks *roadmap.TaskService
}

// NewDeleteTaskTool creates a DeleteTaskTool.
func NewDeleteTaskTool(tasks *roadmap.TaskService) *DeleteTaskTool {
	return &DeleteTaskTool{tasks: tasks}
}

// Definition returns the MCP tool definition for delete_task.
func (t *DeleteTaskTool) Definition() mcp.Tool {
	return mcp.NewTool("delete_task",
		mcp.WithDescription("Delete a task from a project."),
		mcp.WithString("projectId", mcp.Required(), mcp.Description("Project ID")),
		mcp.WithString("taskId", mcp.Required(), mcp.Description("Task ID")),
	)
}

// Handle processes the delete_task tool call.
func (t *DeleteTaskTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projectID, err := requiredString(req, "projectId")
	if err != nil {
		return failure(err)
	}
	taskID, err := requiredString(req, "taskId")
	if err != nil {
		return failure(err)
	}
	task, err := t.tasks.Delete(projectID, taskID)
	if err != nil {
		return failure(err)
	}
	return success(map[string]any{"deleted": true, "task": task})
}

// BatchUpdateTasksTool handles the batch_update_tasks MCP tool.
type BatchUpdateTasksTool struct {
	tasks *roadmap.TaskService
}

// NewBatchUpdateTasksTool creates a BatchUpdateTasksTool.
func NewBatchUpdateTasksTool(tasks *roadmap.TaskService) *BatchUpdateTasksTool {
	return &BatchUpdateTasksTool{tasks: tasks}
}

// Definition returns the MCP tool definition for batch_update_tasks.
func (t *BatchUpdateTasksTool) Definition() mcp.Tool {
	return mcp.NewTool("batch_update_tasks",
		mcp.WithDescription(
			"Apply the same status, priority or tag change to several tasks in one write. "+
				"Unknown task IDs are reported in notFoundIds.",
		),
		mcp.WithString("projectId", mcp.Required(), mcp.Description("Project ID")),
		mcp.WithArray("taskIds", mcp.Required(),
			mcp.Description("Task IDs to update (at least one)"),
			mcp.WithStringItems(),
			mcp.MinItems(1),
		),
		mcp.WithString("status", mcp.Description("New status"), mcp.Enum(taskStatuses...)),
		mcp.WithString("priority", mcp.Description("New priority"), mcp.Enum(taskPriorities...)),
		mcp.WithArray("tags", mcp.Description("Tag IDs"), mcp.WithStringItems()),
		mcp.WithString("tagOperation",
			mcp.Description("How tags are applied (default: replace)"),
			mcp.Enum(string(roadmap.TagAdd), string(roadmap.TagRemove), string(roadmap.TagReplace)),
		),
	)
}

// Handle processes the batch_update_tasks tool call.
func (t *BatchUpdateTasksTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projectID, err := requiredString(req, "projectId")
	if err != nil {
		return failure(err)
	}
	taskIDs, _ := stringSliceArg(req, "taskIds")

	in := roadmap.BatchUpdateInput{
		TagOperation: roadmap.TagOperation(req.GetString("tagOperation", "")),
	}
	if v := optionalString(req, "status"); v != nil {
		st := roadmap.TaskStatus(*v)
		in.Status = &st
	}
	if v := optionalString(req, "priority"); v != nil {
		p := roadmap.TaskPriority(*v)
		in.Priority = &p
	}
	in.Tags, in.SetTags = stringSliceArg(req, "tags")

	result, err := t.tasks.BatchUpdate(projectID, taskIDs, in)
	if err != nil {
		return failure(err)
	}
	return success(result)
}
