// Package web serves the browser interface and its JSON API.
package web

import (
	"embed"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/HendryAvila/roadmap-skill/internal/roadmap"
)

//go:embed static/index.html
var staticFS embed.FS

const maxBackupBytes = 32 << 20

// Server routes the JSON API onto the roadmap services.
type Server struct {
	repo  *roadmap.Repository
	tasks *roadmap.TaskService
	tags  *roadmap.TagService
}

// NewServer returns the web interface handler. Backup export and import
// go through repo.
func NewServer(repo *roadmap.Repository, tasks *roadmap.TaskService, tags *roadmap.TagService) http.Handler {
	s := &Server{repo: repo, tasks: tasks, tags: tags}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/projects", s.listProjects)
	mux.HandleFunc("GET /api/projects/{id}", s.getProject)
	mux.HandleFunc("POST /api/projects", s.createProject)
	mux.HandleFunc("PUT /api/projects", s.updateProject)
	mux.HandleFunc("DELETE /api/projects", s.deleteProject)

	mux.HandleFunc("GET /api/tasks", s.searchTasks)
	mux.HandleFunc("POST /api/tasks", s.createTask)
	mux.HandleFunc("PUT /api/tasks", s.updateTask)
	mux.HandleFunc("DELETE /api/tasks", s.deleteTask)

	mux.HandleFunc("GET /api/projects/{pid}/tags", s.listTags)
	mux.HandleFunc("POST /api/projects/{pid}/tags", s.createTag)
	mux.HandleFunc("PUT /api/projects/{pid}/tags/{tagId}", s.updateTag)
	mux.HandleFunc("DELETE /api/projects/{pid}/tags/{tagId}", s.deleteTag)

	mux.HandleFunc("GET /api/backup", s.exportBackup)
	mux.HandleFunc("POST /api/backup", s.importBackup)

	mux.HandleFunc("/api/", func(w http.ResponseWriter, r *http.Request) {
		writeError(w, roadmap.NotFoundf("API not found: %s %s", r.Method, r.URL.Path))
	})
	mux.HandleFunc("GET /{$}", s.index)

	return withRequestLog(mux)
}

func (s *Server) index(w http.ResponseWriter, _ *http.Request) {
	page, err := staticFS.ReadFile("static/index.html")
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(page)
}

// --- Projects ---

func (s *Server) listProjects(w http.ResponseWriter, _ *http.Request) {
	projects, err := s.repo.List()
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, projects)
}

func (s *Server) getProject(w http.ResponseWriter, r *http.Request) {
	doc, err := s.repo.Require(r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, doc)
}

func (s *Server) createProject(w http.ResponseWriter, r *http.Request) {
	var in roadmap.CreateProjectInput
	if err := decodeBody(r, &in); err != nil {
		writeError(w, err)
		return
	}
	doc, err := s.repo.Create(in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, doc)
}

type projectUpdateBody struct {
	ID        string `json:"id"`
	ProjectID string `json:"projectId"`
	roadmap.UpdateProjectInput
}

func (s *Server) updateProject(w http.ResponseWriter, r *http.Request) {
	var body projectUpdateBody
	if err := decodeBody(r, &body); err != nil {
		writeError(w, err)
		return
	}
	id := body.ID
	if id == "" {
		id = body.ProjectID
	}
	if id == "" {
		writeError(w, roadmap.Validationf("id is required"))
		return
	}
	if body.IsEmpty() {
		writeError(w, roadmap.Validationf("At least one field to update is required"))
		return
	}

	doc, err := s.repo.Update(id, body.UpdateProjectInput)
	if err != nil {
		writeError(w, err)
		return
	}
	if doc == nil {
		writeError(w, roadmap.NotFoundf("Project with ID '%s' not found", id))
		return
	}
	writeData(w, doc)
}

func (s *Server) deleteProject(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	id := q.Get("id")
	if id == "" {
		id = q.Get("projectId")
	}
	if id == "" {
		writeError(w, roadmap.Validationf("id is required"))
		return
	}
	deleted, err := s.repo.Delete(id)
	if err != nil {
		writeError(w, err)
		return
	}
	if !deleted {
		writeError(w, roadmap.NotFoundf("Project with ID '%s' not found", id))
		return
	}
	writeData(w, map[string]any{"deleted": true, "projectId": id})
}

// --- Tasks ---

func (s *Server) searchTasks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filters := roadmap.SearchFilters{
		ProjectID:  q.Get("projectId"),
		Status:     roadmap.TaskStatus(q.Get("status")),
		Priority:   roadmap.TaskPriority(q.Get("priority")),
		Tags:       q["tags"],
		Assignee:   q.Get("assignee"),
		DueBefore:  q.Get("dueBefore"),
		DueAfter:   q.Get("dueAfter"),
		SearchText: q.Get("searchText"),
	}
	filters.IncludeCompleted, _ = strconv.ParseBool(q.Get("includeCompleted"))

	hits, err := s.repo.SearchTasks(filters)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, roadmap.ExcludeCompleted(hits, filters))
}

type taskCreateBody struct {
	ProjectID string `json:"projectId"`
	roadmap.CreateTaskInput
}

func (s *Server) createTask(w http.ResponseWriter, r *http.Request) {
	var body taskCreateBody
	if err := decodeBody(r, &body); err != nil {
		writeError(w, err)
		return
	}
	task, err := s.tasks.Create(body.ProjectID, body.CreateTaskInput)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, task)
}

type taskUpdateBody struct {
	ProjectID   string                `json:"projectId"`
	TaskID      string                `json:"taskId"`
	Title       *string               `json:"title"`
	Description *string               `json:"description"`
	Status      *roadmap.TaskStatus   `json:"status"`
	Priority    *roadmap.TaskPriority `json:"priority"`
	Tags        *[]string             `json:"tags"`
	DueDate     optional[string]      `json:"dueDate"`
	Assignee    optional[string]      `json:"assignee"`
}

func (b taskUpdateBody) input() roadmap.UpdateTaskInput {
	in := roadmap.UpdateTaskInput{
		Title:       b.Title,
		Description: b.Description,
		Status:      b.Status,
		Priority:    b.Priority,
	}
	if b.Tags != nil {
		in.Tags, in.SetTags = *b.Tags, true
	}
	if b.DueDate.Set {
		in.DueDate = b.DueDate.Value
		in.ClearDueDate = b.DueDate.Value == nil
	}
	if b.Assignee.Set {
		in.Assignee = b.Assignee.Value
		in.ClearAssignee = b.Assignee.Value == nil
	}
	return in
}

func (s *Server) updateTask(w http.ResponseWriter, r *http.Request) {
	var body taskUpdateBody
	if err := decodeBody(r, &body); err != nil {
		writeError(w, err)
		return
	}
	task, err := s.tasks.Update(body.ProjectID, body.TaskID, body.input())
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, task)
}

func (s *Server) deleteTask(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	task, err := s.tasks.Delete(q.Get("projectId"), q.Get("taskId"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, map[string]any{"deleted": true, "task": task})
}

// --- Tags ---

func (s *Server) listTags(w http.ResponseWriter, r *http.Request) {
	tags, err := s.tags.List(r.PathValue("pid"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, tags)
}

func (s *Server) createTag(w http.ResponseWriter, r *http.Request) {
	var in roadmap.CreateTagInput
	if err := decodeBody(r, &in); err != nil {
		writeError(w, err)
		return
	}
	tag, err := s.tags.Create(r.PathValue("pid"), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, tag)
}

func (s *Server) updateTag(w http.ResponseWriter, r *http.Request) {
	var in roadmap.UpdateTagInput
	if err := decodeBody(r, &in); err != nil {
		writeError(w, err)
		return
	}
	tag, err := s.tags.Update(r.PathValue("pid"), r.PathValue("tagId"), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, tag)
}

func (s *Server) deleteTag(w http.ResponseWriter, r *http.Request) {
	result, err := s.tags.Delete(r.PathValue("pid"), r.PathValue("tagId"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, result)
}

// --- Backup ---

// exportBackup serves the raw backup document as a download.
func (s *Server) exportBackup(w http.ResponseWriter, _ *http.Request) {
	backup, err := s.repo.Export()
	if err != nil {
		writeError(w, err)
		return
	}
	name := fmt.Sprintf("roadmap-skill-backup-%s.json", time.Now().UTC().Format("2006-01-02"))
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, name))
	writeJSON(w, http.StatusOK, backup)
}

func (s *Server) importBackup(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxBackupBytes))
	if err != nil {
		writeError(w, roadmap.Validationf("reading backup: %v", err))
		return
	}
	backup, err := roadmap.ParseBackup(data)
	if err != nil {
		writeError(w, err)
		return
	}
	overwrite, _ := strconv.ParseBool(r.URL.Query().Get("overwrite"))
	result, err := s.repo.Import(backup, overwrite)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, result)
}
