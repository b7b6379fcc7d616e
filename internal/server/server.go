// Package server wires all MCP components and creates the server instance.
//
// This is the composition root: it opens the configured store, builds the
// roadmap services and injects them into the tools, prompts, resources
// and web interface. No business logic lives here, only wiring.
package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/HendryAvila/roadmap-skill/internal/config"
	"github.com/HendryAvila/roadmap-skill/internal/prompts"
	"github.com/HendryAvila/roadmap-skill/internal/resources"
	"github.com/HendryAvila/roadmap-skill/internal/roadmap"
	"github.com/HendryAvila/roadmap-skill/internal/sqlstore"
	"github.com/HendryAvila/roadmap-skill/internal/templates"
	"github.com/HendryAvila/roadmap-skill/internal/tools"
	"github.com/HendryAvila/roadmap-skill/internal/web"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Version is set at build time via ldflags.
var Version = "dev"

// App holds the services shared by the MCP server, the web interface and
// the CLI.
type App struct {
	Config    *config.Config
	Repo      *roadmap.Repository
	Tasks     *roadmap.TaskService
	Tags      *roadmap.TagService
	Templates *templates.Library
	Web       *web.Manager
}

// Open builds an App on the storage backend selected by cfg.
//
// The returned cleanup function stops the web interface and closes the
// database connection. It is always non-nil and safe to call even if
// Open failed.
func Open(cfg *config.Config) (*App, func(), error) {
	store, closeStore, err := openStore(cfg)
	if err != nil {
		return nil, noop, err
	}

	repo := roadmap.NewRepository(store)
	app := &App{
		Config:    cfg,
		Repo:      repo,
		Tasks:     roadmap.NewTaskService(repo),
		Tags:      roadmap.NewTagService(repo),
		Templates: templates.NewLibrary(cfg.TemplatesPath()),
	}
	app.Web = web.NewManager(app.Handler(), cfg.Web.Host, true)

	cleanup := func() {
		_, _ = app.Web.Stop(context.Background())
		closeStore()
	}
	return app, cleanup, nil
}

// Handler returns the web interface handler for this App.
func (a *App) Handler() http.Handler {
	return web.NewServer(a.Repo, a.Tasks, a.Tags)
}

func openStore(cfg *config.Config) (roadmap.Store, func(), error) {
	switch cfg.Storage.Backend {
	case config.BackendSQLite, config.BackendPostgres:
		sc := sqlstore.Config{Driver: sqlstore.DriverSQLite, DSN: cfg.SQLiteDSN()}
		if cfg.Storage.Backend == config.BackendPostgres {
			sc = sqlstore.Config{Driver: sqlstore.DriverPostgres, DSN: cfg.Storage.DSN}
		}
		st, err := sqlstore.New(sc)
		if err != nil {
			return nil, noop, fmt.Errorf("opening %s store: %w", cfg.Storage.Backend, err)
		}
		return st, func() { _ = st.Close() }, nil
	default:
		return roadmap.NewFileStore(cfg.ProjectsDir()), noop, nil
	}
}

// New creates and configures the MCP server with all tools, prompts,
// and resources registered.
func New(app *App) *server.MCPServer {
	s := server.NewMCPServer(
		"roadmap-skill",
		Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithPromptCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	// --- Projects ---
	addTools(s,
		tools.NewCreateProjectTool(app.Repo),
		tools.NewListProjectsTool(app.Repo),
		tools.NewGetProjectTool(app.Repo),
		tools.NewUpdateProjectTool(app.Repo),
		tools.NewDeleteProjectTool(app.Repo),
	)

	// --- Tasks ---
	addTools(s,
		tools.NewCreateTaskTool(app.Tasks),
		tools.NewListTasksTool(app.Tasks),
		tools.NewSearchTasksTool(app.Repo),
		tools.NewGetTaskTool(app.Tasks),
		tools.NewUpdateTaskTool(app.Tasks),
		tools.NewDeleteTaskTool(app.Tasks),
		tools.NewBatchUpdateTasksTool(app.Tasks),
	)

	// --- Tags ---
	addTools(s,
		tools.NewCreateTagTool(app.Tags),
		tools.NewListTagsTool(app.Tags),
		tools.NewUpdateTagTool(app.Tags),
		tools.NewDeleteTagTool(app.Tags),
		tools.NewGetTasksByTagTool(app.Tags),
	)

	// --- Templates and web ---
	addTools(s,
		tools.NewListTemplatesTool(app.Templates),
		tools.NewGetTemplateTool(app.Templates),
		tools.NewApplyTemplateTool(app.Templates, app.Repo),
		tools.NewOpenWebInterfaceTool(app.Web, app.Config.Web.Port),
		tools.NewCloseWebInterfaceTool(app.Web),
	)

	// --- Prompts ---
	recommend := prompts.NewRecommendNextTasksPrompt()
	s.AddPrompt(recommend.Definition(), recommend.Handle)

	prioritize := prompts.NewAutoPrioritizePrompt()
	s.AddPrompt(prioritize.Definition(), prioritize.Handle)

	enhance := prompts.NewEnhanceTaskDetailsPrompt()
	s.AddPrompt(enhance.Definition(), enhance.Handle)

	capture := prompts.NewQuickCapturePrompt()
	s.AddPrompt(capture.Definition(), capture.Handle)

	// --- Resources ---
	rh := resources.NewHandler(app.Repo)
	s.AddResource(rh.ProjectsResource(), rh.HandleProjects)
	s.AddResourceTemplate(rh.ProjectTemplate(), rh.HandleProject)
	s.AddResourceTemplate(rh.TasksTemplate(), rh.HandleTasks)
	s.AddResourceTemplate(rh.ProgressTemplate(), rh.HandleProgress)

	return s
}

type tool interface {
	Definition() mcp.Tool
	Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error)
}

func addTools(s *server.MCPServer, ts ...tool) {
	for _, t := range ts {
		s.AddTool(t.Definition(), t.Handle)
	}
}

func noop() {}

func serverInstructions() string {
	return `You have access to roadmap-skill, a local project planner that keeps
roadmaps, skill trees and kanban boards as JSON documents.

## WHEN TO USE IT

Use roadmap-skill when the user:
- Wants to plan a project, a learning path or a sprint
- Mentions a todo, idea or follow-up worth remembering ("remind me to...", "we should...")
- Asks what to work on next, or how a project is going

## HOW THE DATA IS SHAPED

- A project owns its tasks, tags and milestones. Every task and tag call needs a projectId.
- Task status moves todo → in-progress → review → done. Moving a task to done records completedAt.
- Tags are per project and referenced by ID on tasks. Look them up with list_tags;
  get_tasks_by_tag takes a tag name instead.
- Dates are YYYY-MM-DD.

## WORKING STYLE

- Start with list_projects. Do not guess IDs.
- list_tasks and search_tasks hide done tasks unless includeCompleted=true or status=done.
- Prefer batch_update_tasks over many update_task calls when changing several tasks.
- For a new project, check list_templates first; apply_template sets up tags and starter tasks in one step.
- Read roadmap://project/{projectId}/progress for completion, overdue work and days remaining.
- open_web_interface starts a local board the user can edit in the browser.

## ERRORS

Every tool returns {"success": true, "data": ...} or
{"success": false, "error": {"code": ..., "message": ...}}.
Codes: NOT_FOUND, VALIDATION_ERROR, DUPLICATE_ERROR, INTERNAL_ERROR.
On VALIDATION_ERROR fix the arguments and retry; on NOT_FOUND re-list before retrying.`
}
