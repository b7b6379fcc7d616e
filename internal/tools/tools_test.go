package tools

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/HendryAvila/roadmap-skill/internal/roadmap"
	"github.com/HendryAvila/roadmap-skill/internal/templates"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Test helpers ---

type fixture struct {
	repo  *roadmap.Repository
	tasks *roadmap.TaskService
	tags  *roadmap.TagService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	repo := roadmap.NewRepository(roadmap.NewFileStore(t.TempDir()))
	return &fixture{
		repo:  repo,
		tasks: roadmap.NewTaskService(repo),
		tags:  roadmap.NewTagService(repo),
	}
}

func (f *fixture) project(t *testing.T) string {
	t.Helper()
	doc, err := f.repo.Create(roadmap.CreateProjectInput{
		Name:        "Launch",
		Description: "Ship v1",
		ProjectType: roadmap.TypeRoadmap,
		StartDate:   "2026-01-01",
		TargetDate:  "2026-12-31",
	})
	require.NoError(t, err)
	return doc.Project.ID
}

type handler interface {
	Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error)
}

func call(t *testing.T, h handler, args map[string]interface{}) *mcp.CallToolResult {
	t.Helper()
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	result, err := h.Handle(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, result)
	return result
}

type decoded struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *roadmap.Error  `json:"error"`
}

func decode(t *testing.T, result *mcp.CallToolResult) decoded {
	t.Helper()
	var d decoded
	require.NoError(t, json.Unmarshal([]byte(getResultText(result)), &d), getResultText(result))
	return d
}

// callOK runs a tool, asserts success and unmarshals data into out.
func callOK(t *testing.T, h handler, args map[string]interface{}, out any) {
	t.Helper()
	result := call(t, h, args)
	require.False(t, isErrorResult(result), getResultText(result))
	d := decode(t, result)
	require.True(t, d.Success)
	if out != nil {
		require.NoError(t, json.Unmarshal(d.Data, out))
	}
}

// callErr runs a tool and returns the error envelope.
func callErr(t *testing.T, h handler, args map[string]interface{}) *roadmap.Error {
	t.Helper()
	result := call(t, h, args)
	require.True(t, isErrorResult(result), getResultText(result))
	d := decode(t, result)
	require.False(t, d.Success)
	require.NotNil(t, d.Error)
	return d.Error
}

// isErrorResult checks if a CallToolResult represents an error.
func isErrorResult(result *mcp.CallToolResult) bool {
	return result != nil && result.IsError
}

// getResultText extracts the text content from a CallToolResult.
func getResultText(result *mcp.CallToolResult) string {
	if result == nil || len(result.Content) == 0 {
		return ""
	}
	for _, c := range result.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

// --- Envelope ---

func TestFailure_NonDomainErrorIsInternal(t *testing.T) {
	result, err := failure(errors.New("disk on fire"))
	require.NoError(t, err)
	d := decode(t, result)
	assert.Equal(t, roadmap.CodeInternal, d.Error.Code)
}

// --- Projects ---

func TestCreateProjectTool_Handle(t *testing.T) {
	f := newFixture(t)

	var doc roadmap.ProjectData
	callOK(t, NewCreateProjectTool(f.repo), map[string]interface{}{
		"name":        "Learn Go",
		"description": "Idiomatic Go",
		"projectType": "skill-tree",
		"startDate":   "2026-02-01",
		"targetDate":  "2026-06-01",
	}, &doc)

	assert.Equal(t, "Learn Go", doc.Project.Name)
	assert.Equal(t, roadmap.ProjectActive, doc.Project.Status)
	assert.Empty(t, doc.Tasks)

	var got roadmap.ProjectData
	callOK(t, NewGetProjectTool(f.repo), map[string]interface{}{"projectId": doc.Project.ID}, &got)
	assert.Equal(t, doc.Project, got.Project)
}

func TestCreateProjectTool_Handle_BadDate(t *testing.T) {
	f := newFixture(t)
	e := callErr(t, NewCreateProjectTool(f.repo), map[string]interface{}{
		"name":        "X",
		"description": "",
		"projectType": "roadmap",
		"startDate":   "01/02/2026",
		"targetDate":  "2026-06-01",
	})
	assert.Equal(t, roadmap.CodeValidation, e.Code)
}

func TestUpdateProjectTool_Handle(t *testing.T) {
	f := newFixture(t)
	pid := f.project(t)
	tool := NewUpdateProjectTool(f.repo)

	e := callErr(t, tool, map[string]interface{}{"projectId": pid})
	assert.Equal(t, roadmap.CodeValidation, e.Code)
	assert.Equal(t, "At least one field to update is required", e.Message)

	e = callErr(t, tool, map[string]interface{}{"projectId": "proj_missing", "name": "Y"})
	assert.Equal(t, roadmap.CodeNotFound, e.Code)
	assert.Equal(t, "Project with ID 'proj_missing' not found", e.Message)

	var doc roadmap.ProjectData
	callOK(t, tool, map[string]interface{}{"projectId": pid, "status": "completed"}, &doc)
	assert.Equal(t, roadmap.ProjectCompleted, doc.Project.Status)
	assert.Equal(t, "Launch", doc.Project.Name)
}

func TestDeleteProjectTool_Handle(t *testing.T) {
	f := newFixture(t)
	pid := f.project(t)
	tool := NewDeleteProjectTool(f.repo)

	callOK(t, tool, map[string]interface{}{"projectId": pid}, nil)
	e := callErr(t, tool, map[string]interface{}{"projectId": pid})
	assert.Equal(t, roadmap.CodeNotFound, e.Code)

	var list []roadmap.ProjectSummary
	callOK(t, NewListProjectsTool(f.repo), nil, &list)
	assert.Empty(t, list)
}

func TestGetProjectTool_Handle_MissingID(t *testing.T) {
	f := newFixture(t)
	e := callErr(t, NewGetProjectTool(f.repo), map[string]interface{}{})
	assert.Equal(t, roadmap.CodeValidation, e.Code)
}

// --- Tasks ---

func TestCreateTaskTool_Handle_WithTags(t *testing.T) {
	f := newFixture(t)
	pid := f.project(t)
	tag, err := f.tags.Create(pid, roadmap.CreateTagInput{Name: "bug"})
	require.NoError(t, err)

	var task roadmap.Task
	callOK(t, NewCreateTaskTool(f.tasks), map[string]interface{}{
		"projectId":   pid,
		"title":       "Fix login",
		"description": "500 on submit",
		"priority":    "high",
		"tags":        []interface{}{tag.ID, tag.ID},
		"dueDate":     "2026-03-01",
	}, &task)

	assert.Equal(t, roadmap.PriorityHigh, task.Priority)
	assert.Equal(t, []string{tag.ID}, task.Tags)
	require.NotNil(t, task.DueDate)
	assert.Equal(t, "2026-03-01", *task.DueDate)

	e := callErr(t, NewCreateTaskTool(f.tasks), map[string]interface{}{
		"projectId": pid,
		"title":     "Other",
		"tags":      []interface{}{"tag_nope"},
	})
	assert.Equal(t, roadmap.CodeValidation, e.Code)
	assert.Contains(t, e.Message, "tag_nope")
}

func TestListTasksTool_Handle_IncludeCompleted(t *testing.T) {
	f := newFixture(t)
	pid := f.project(t)
	open, err := f.tasks.Create(pid, roadmap.CreateTaskInput{Title: "open"})
	require.NoError(t, err)
	closed, err := f.tasks.Create(pid, roadmap.CreateTaskInput{Title: "closed"})
	require.NoError(t, err)
	done := roadmap.StatusDone
	_, err = f.tasks.Update(pid, closed.ID, roadmap.UpdateTaskInput{Status: &done})
	require.NoError(t, err)

	tool := NewListTasksTool(f.tasks)
	tests := []struct {
		name string
		args map[string]interface{}
		want []string
	}{
		{"default hides done", map[string]interface{}{"projectId": pid}, []string{open.ID}},
		{"includeCompleted", map[string]interface{}{"projectId": pid, "includeCompleted": true}, []string{open.ID, closed.ID}},
		{"explicit done status", map[string]interface{}{"projectId": pid, "status": "done"}, []string{closed.ID}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var tasks []roadmap.Task
			callOK(t, tool, tt.args, &tasks)
			ids := make([]string, 0, len(tasks))
			for _, task := range tasks {
				ids = append(ids, task.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestListTasksTool_Handle_InvalidFilter(t *testing.T) {
	f := newFixture(t)
	e := callErr(t, NewListTasksTool(f.tasks), map[string]interface{}{"dueBefore": "soon"})
	assert.Equal(t, roadmap.CodeValidation, e.Code)
}

func TestSearchTasksTool_Handle_CrossProject(t *testing.T) {
	f := newFixture(t)
	a := f.project(t)
	b := f.project(t)
	_, err := f.tasks.Create(a, roadmap.CreateTaskInput{Title: "Deploy API"})
	require.NoError(t, err)
	_, err = f.tasks.Create(b, roadmap.CreateTaskInput{Title: "Write docs", Description: "api reference"})
	require.NoError(t, err)
	_, err = f.tasks.Create(b, roadmap.CreateTaskInput{Title: "Unrelated"})
	require.NoError(t, err)

	var hits []roadmap.TaskWithProject
	callOK(t, NewSearchTasksTool(f.repo), map[string]interface{}{"searchText": "API"}, &hits)
	require.Len(t, hits, 2)
	projects := []string{hits[0].Project.ID, hits[1].Project.ID}
	assert.ElementsMatch(t, []string{a, b}, projects)
}

func TestUpdateTaskTool_Handle_NullClearsFields(t *testing.T) {
	f := newFixture(t)
	pid := f.project(t)
	due, who := "2026-04-01", "sam"
	task, err := f.tasks.Create(pid, roadmap.CreateTaskInput{Title: "x", DueDate: &due, Assignee: &who})
	require.NoError(t, err)

	var updated roadmap.Task
	callOK(t, NewUpdateTaskTool(f.tasks), map[string]interface{}{
		"projectId": pid,
		"taskId":    task.ID,
		"dueDate":   nil,
		"assignee":  nil,
		"status":    "done",
	}, &updated)

	assert.Nil(t, updated.DueDate)
	assert.Nil(t, updated.Assignee)
	assert.Equal(t, roadmap.StatusDone, updated.Status)
	assert.NotNil(t, updated.CompletedAt)
}

func TestUpdateTaskTool_Handle_Errors(t *testing.T) {
	f := newFixture(t)
	pid := f.project(t)
	task, err := f.tasks.Create(pid, roadmap.CreateTaskInput{Title: "x"})
	require.NoError(t, err)
	tool := NewUpdateTaskTool(f.tasks)

	e := callErr(t, tool, map[string]interface{}{"projectId": pid, "taskId": task.ID})
	assert.Equal(t, roadmap.CodeValidation, e.Code)

	e = callErr(t, tool, map[string]interface{}{"projectId": pid, "taskId": "task_nope", "title": "y"})
	assert.Equal(t, roadmap.CodeNotFound, e.Code)

	e = callErr(t, tool, map[string]interface{}{"projectId": pid, "taskId": task.ID, "status": "blocked"})
	assert.Equal(t, roadmap.CodeValidation, e.Code)
}

func TestDeleteTaskTool_Handle(t *testing.T) {
	f := newFixture(t)
	pid := f.project(t)
	task, err := f.tasks.Create(pid, roadmap.CreateTaskInput{Title: "x"})
	require.NoError(t, err)
	tool := NewDeleteTaskTool(f.tasks)

	callOK(t, tool, map[string]interface{}{"projectId": pid, "taskId": task.ID}, nil)
	e := callErr(t, NewGetTaskTool(f.tasks), map[string]interface{}{"projectId": pid, "taskId": task.ID})
	assert.Equal(t, roadmap.CodeNotFound, e.Code)
}

func TestBatchUpdateTasksTool_Handle(t *testing.T) {
	f := newFixture(t)
	pid := f.project(t)
	tag, err := f.tags.Create(pid, roadmap.CreateTagInput{Name: "urgent"})
	require.NoError(t, err)
	t1, err := f.tasks.Create(pid, roadmap.CreateTaskInput{Title: "one"})
	require.NoError(t, err)
	t2, err := f.tasks.Create(pid, roadmap.CreateTaskInput{Title: "two"})
	require.NoError(t, err)

	var result roadmap.BatchUpdateResult
	callOK(t, NewBatchUpdateTasksTool(f.tasks), map[string]interface{}{
		"projectId":    pid,
		"taskIds":      []interface{}{t1.ID, t2.ID, "task_ghost"},
		"priority":     "critical",
		"tags":         []interface{}{tag.ID},
		"tagOperation": "add",
	}, &result)

	assert.Equal(t, 2, result.UpdatedCount)
	assert.Equal(t, []string{"task_ghost"}, result.NotFoundIDs)
	for _, task := range result.UpdatedTasks {
		assert.Equal(t, roadmap.PriorityCritical, task.Priority)
		assert.Equal(t, []string{tag.ID}, task.Tags)
	}

	e := callErr(t, NewBatchUpdateTasksTool(f.tasks), map[string]interface{}{
		"projectId": pid,
		"taskIds":   []interface{}{},
		"status":    "done",
	})
	assert.Equal(t, roadmap.CodeValidation, e.Code)
}

// --- Tags ---

func TestTagTools_Lifecycle(t *testing.T) {
	f := newFixture(t)
	pid := f.project(t)

	var tag roadmap.Tag
	callOK(t, NewCreateTagTool(f.tags), map[string]interface{}{"projectId": pid, "name": "Bug"}, &tag)
	assert.Equal(t, "#55A3FF", tag.Color)

	e := callErr(t, NewCreateTagTool(f.tags), map[string]interface{}{"projectId": pid, "name": "bug"})
	assert.Equal(t, roadmap.CodeDuplicate, e.Code)

	_, err := f.tasks.Create(pid, roadmap.CreateTaskInput{Title: "crash", Tags: []string{tag.ID}})
	require.NoError(t, err)

	var byTag roadmap.TasksByTag
	callOK(t, NewGetTasksByTagTool(f.tags), map[string]interface{}{"projectId": pid, "tagName": "BUG"}, &byTag)
	assert.Equal(t, 1, byTag.Count)

	var updated roadmap.Tag
	callOK(t, NewUpdateTagTool(f.tags), map[string]interface{}{
		"projectId": pid, "tagId": tag.ID, "color": "#000000",
	}, &updated)
	assert.Equal(t, "#000000", updated.Color)

	var list []roadmap.TagWithCount
	callOK(t, NewListTagsTool(f.tags), map[string]interface{}{"projectId": pid}, &list)
	require.Len(t, list, 1)
	assert.Equal(t, 1, list[0].TaskCount)

	var deleted roadmap.DeleteTagResult
	callOK(t, NewDeleteTagTool(f.tags), map[string]interface{}{"projectId": pid, "tagId": tag.ID}, &deleted)
	assert.True(t, deleted.Deleted)
	assert.Equal(t, 1, deleted.TasksUpdated)
}

func TestUpdateTagTool_Handle_BadColor(t *testing.T) {
	f := newFixture(t)
	pid := f.project(t)
	tag, err := f.tags.Create(pid, roadmap.CreateTagInput{Name: "docs"})
	require.NoError(t, err)

	e := callErr(t, NewUpdateTagTool(f.tags), map[string]interface{}{
		"projectId": pid, "tagId": tag.ID, "color": "red",
	})
	assert.Equal(t, roadmap.CodeValidation, e.Code)
}

// --- Templates ---

func TestTemplateTools(t *testing.T) {
	f := newFixture(t)
	lib := templates.NewLibrary(t.TempDir())

	orig := today
	today = func() string { return "2026-05-01" }
	t.Cleanup(func() { today = orig })

	var list []templates.Summary
	callOK(t, NewListTemplatesTool(lib), nil, &list)
	assert.GreaterOrEqual(t, len(list), 3)

	var result templates.ApplyResult
	callOK(t, NewApplyTemplateTool(lib, f.repo), map[string]interface{}{
		"templateName": "kanban-sprint",
		"projectName":  "Sprint 12",
	}, &result)
	assert.Equal(t, "Sprint 12", result.Project.Project.Name)
	assert.Equal(t, "2026-05-01", result.Project.Project.StartDate)
	assert.Equal(t, len(result.Project.Tasks), result.TasksCreated)
	assert.Equal(t, 3, result.TagsCreated)

	e := callErr(t, NewGetTemplateTool(lib), map[string]interface{}{"templateName": "nope"})
	assert.Equal(t, roadmap.CodeNotFound, e.Code)
	assert.Equal(t, "Template 'nope' not found", e.Message)
}

// --- Web ---

type fakeWeb struct {
	running bool
	port    int
}

func (w *fakeWeb) Start(port int) (string, bool, error) {
	already := w.running
	if !already {
		w.running, w.port = true, port
	}
	return "http://127.0.0.1:1234", already, nil
}

func (w *fakeWeb) Stop(context.Context) (bool, error) {
	was := w.running
	w.running = false
	return was, nil
}

func TestWebTools(t *testing.T) {
	web := &fakeWeb{}
	open := NewOpenWebInterfaceTool(web, 7860)

	var started struct {
		URL            string `json:"url"`
		AlreadyRunning bool   `json:"alreadyRunning"`
	}
	callOK(t, open, nil, &started)
	assert.False(t, started.AlreadyRunning)
	assert.Equal(t, 7860, web.port)

	callOK(t, open, map[string]interface{}{"port": float64(9000)}, &started)
	assert.True(t, started.AlreadyRunning)
	assert.Equal(t, 7860, web.port)

	var stopped struct {
		Stopped bool `json:"stopped"`
	}
	callOK(t, NewCloseWebInterfaceTool(web), nil, &stopped)
	assert.True(t, stopped.Stopped)
	callOK(t, NewCloseWebInterfaceTool(web), nil, &stopped)
	assert.False(t, stopped.Stopped)
}
