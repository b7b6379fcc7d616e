// Package resources implements MCP resource handlers for roadmap projects.
//
// Resources provide read-only data that the host can consume for context.
// They use URI-based addressing (roadmap://...) following MCP conventions.
package resources

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"time"

	"github.com/HendryAvila/roadmap-skill/internal/roadmap"
	"github.com/mark3labs/mcp-go/mcp"
)

const (
	projectsURI = "roadmap://projects"
	mimeJSON    = "application/json"
)

// projectURIRe splits roadmap://project/{id}[/tasks|/progress].
var projectURIRe = regexp.MustCompile(`^roadmap://project/([^/]+)(?:/(tasks|progress))?$`)

var timeNow = time.Now

// Handler manages roadmap resource endpoints.
type Handler struct {
	repo *roadmap.Repository
}

// NewHandler creates a resource Handler with its dependencies.
func NewHandler(repo *roadmap.Repository) *Handler {
	return &Handler{repo: repo}
}

// ProjectsResource returns the MCP resource definition for the project list.
func (h *Handler) ProjectsResource() mcp.Resource {
	return mcp.NewResource(
		projectsURI,
		"All Projects",
		mcp.WithResourceDescription("Every project with task and milestone counts"),
		mcp.WithMIMEType(mimeJSON),
	)
}

// ProjectTemplate returns the resource template for one full project.
func (h *Handler) ProjectTemplate() mcp.ResourceTemplate {
	return mcp.NewResourceTemplate(
		"roadmap://project/{projectId}",
		"Project Details",
		mcp.WithTemplateDescription("A project with its milestones, tasks, tags and summary stats"),
		mcp.WithTemplateMIMEType(mimeJSON),
	)
}

// TasksTemplate returns the resource template for a project's tasks.
func (h *Handler) TasksTemplate() mcp.ResourceTemplate {
	return mcp.NewResourceTemplate(
		"roadmap://project/{projectId}/tasks",
		"Project Tasks",
		mcp.WithTemplateDescription("A project's tasks grouped by status"),
		mcp.WithTemplateMIMEType(mimeJSON),
	)
}

// ProgressTemplate returns the resource template for project statistics.
func (h *Handler) ProgressTemplate() mcp.ResourceTemplate {
	return mcp.NewResourceTemplate(
		"roadmap://project/{projectId}/progress",
		"Project Progress",
		mcp.WithTemplateDescription("Completion, milestone, overdue and priority statistics for a project"),
		mcp.WithTemplateMIMEType(mimeJSON),
	)
}

type projectListItem struct {
	ID             string                `json:"id"`
	Name           string                `json:"name"`
	Description    string                `json:"description"`
	Status         roadmap.ProjectStatus `json:"status"`
	ProjectType    roadmap.ProjectType   `json:"projectType"`
	TaskCount      int                   `json:"taskCount"`
	MilestoneCount int                   `json:"milestoneCount"`
	UpdatedAt      string                `json:"updatedAt"`
}

// HandleProjects returns every project as JSON.
func (h *Handler) HandleProjects(_ context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	summaries, err := h.repo.List()
	if err != nil {
		return nil, err
	}
	items := make([]projectListItem, 0, len(summaries))
	for _, s := range summaries {
		items = append(items, projectListItem{
			ID:             s.Project.ID,
			Name:           s.Project.Name,
			Description:    s.Project.Description,
			Status:         s.Project.Status,
			ProjectType:    s.Project.ProjectType,
			TaskCount:      s.TaskCount,
			MilestoneCount: s.MilestoneCount,
			UpdatedAt:      s.Project.UpdatedAt,
		})
	}
	return jsonResource(req.Params.URI, map[string]any{
		"projects":   items,
		"totalCount": len(items),
	})
}

// HandleProject returns a full project document with summary stats.
func (h *Handler) HandleProject(_ context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	doc, err := h.load(req.Params.URI, "")
	if err != nil {
		return nil, err
	}
	counts := roadmap.CountStatuses(doc.Tasks)
	return jsonResource(req.Params.URI, map[string]any{
		"project":    doc.Project,
		"milestones": doc.Milestones,
		"tasks":      doc.Tasks,
		"tags":       doc.Tags,
		"stats": map[string]int{
			"taskCount":       len(doc.Tasks),
			"milestoneCount":  len(doc.Milestones),
			"tagCount":        len(doc.Tags),
			"completedTasks":  counts.Done,
			"inProgressTasks": counts.InProgress,
		},
	})
}

// HandleTasks returns a project's tasks, also grouped by status.
func (h *Handler) HandleTasks(_ context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	doc, err := h.load(req.Params.URI, "tasks")
	if err != nil {
		return nil, err
	}
	byStatus := make(map[roadmap.TaskStatus][]roadmap.Task, len(roadmap.TaskStatuses))
	for _, st := range roadmap.TaskStatuses {
		byStatus[st] = []roadmap.Task{}
	}
	for _, t := range doc.Tasks {
		byStatus[t.Status] = append(byStatus[t.Status], t)
	}
	return jsonResource(req.Params.URI, map[string]any{
		"projectId":     doc.Project.ID,
		"tasks":         doc.Tasks,
		"tasksByStatus": byStatus,
		"summary":       roadmap.CountStatuses(doc.Tasks),
	})
}

// HandleProgress returns project statistics.
func (h *Handler) HandleProgress(_ context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	doc, err := h.load(req.Params.URI, "progress")
	if err != nil {
		return nil, err
	}
	return jsonResource(req.Params.URI, roadmap.ComputeProgress(doc, timeNow()))
}

// load resolves the project named in uri. suffix is the expected path
// segment after the project ID, or empty for the project itself.
func (h *Handler) load(uri, suffix string) (*roadmap.ProjectData, error) {
	m := projectURIRe.FindStringSubmatch(uri)
	if m == nil || m[2] != suffix {
		return nil, roadmap.Validationf("invalid resource URI '%s'", uri)
	}
	return h.repo.Require(m[1])
}

func jsonResource(uri string, v any) ([]mcp.ResourceContents, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling resource %s: %w", uri, err)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: mimeJSON,
			Text:     string(data),
		},
	}, nil
}
