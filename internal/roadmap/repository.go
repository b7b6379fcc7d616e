package roadmap

import (
	"sort"
	"sync"
)

// Repository owns project lifecycle and is the only writer of project
// documents. Writes to the same project are serialized in-process, so the
// MCP server and the web server can share one Repository safely.
type Repository struct {
	store Store

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewRepository creates a Repository on top of a Store.
func NewRepository(store Store) *Repository {
	return &Repository{
		store: store,
		locks: make(map[string]*sync.Mutex),
	}
}

// lock acquires the write lock for a project and returns its release func.
func (r *Repository) lock(projectID string) func() {
	r.mu.Lock()
	l, ok := r.locks[projectID]
	if !ok {
		l = &sync.Mutex{}
		r.locks[projectID] = l
	}
	r.mu.Unlock()

	l.Lock()
	return l.Unlock
}

// Create stores a new active project with empty collections.
func (r *Repository) Create(in CreateProjectInput) (*ProjectData, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	doc := newDocument(in, timestamp())
	if err := r.store.Write(doc); err != nil {
		return nil, AsError(err)
	}
	return doc, nil
}

func newDocument(in CreateProjectInput, now string) *ProjectData {
	return &ProjectData{
		Version: SchemaVersion,
		Project: Project{
			ID:          newID("proj"),
			Name:        in.Name,
			Description: in.Description,
			ProjectType: in.ProjectType,
			Status:      ProjectActive,
			StartDate:   in.StartDate,
			TargetDate:  in.TargetDate,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		Milestones: []Milestone{},
		Tasks:      []Task{},
		Tags:       []Tag{},
	}
}

// Get returns the project document, or (nil, nil) if it does not exist.
func (r *Repository) Get(projectID string) (*ProjectData, error) {
	doc, err := r.store.Read(projectID)
	if err != nil {
		return nil, AsError(err)
	}
	return doc, nil
}

// Require is Get with a NOT_FOUND error for a missing project.
func (r *Repository) Require(projectID string) (*ProjectData, error) {
	doc, err := r.Get(projectID)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, projectNotFound(projectID)
	}
	return doc, nil
}

// Update merges the supplied fields into the project header.
// It returns (nil, nil) if the project does not exist. Rejecting an empty
// update is left to callers.
func (r *Repository) Update(projectID string, in UpdateProjectInput) (*ProjectData, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	unlock := r.lock(projectID)
	defer unlock()

	doc, err := r.store.Read(projectID)
	if err != nil {
		return nil, AsError(err)
	}
	if doc == nil {
		return nil, nil
	}

	in.apply(&doc.Project)
	doc.Project.UpdatedAt = timestamp()

	if err := r.store.Write(doc); err != nil {
		return nil, AsError(err)
	}
	return doc, nil
}

// Delete removes a project. It reports false if the project was absent.
func (r *Repository) Delete(projectID string) (bool, error) {
	unlock := r.lock(projectID)
	defer unlock()

	ok, err := r.store.Delete(projectID)
	if err != nil {
		return false, AsError(err)
	}
	return ok, nil
}

// List summarizes every readable project, most recently updated first.
func (r *Repository) List() ([]ProjectSummary, error) {
	docs, err := r.store.ListAll()
	if err != nil {
		return nil, AsError(err)
	}

	result := make([]ProjectSummary, 0, len(docs))
	for _, doc := range docs {
		result = append(result, ProjectSummary{
			Project:        doc.Project,
			TaskCount:      len(doc.Tasks),
			MilestoneCount: len(doc.Milestones),
		})
	}

	sort.SliceStable(result, func(i, j int) bool {
		return newerThan(result[i].Project.UpdatedAt, result[j].Project.UpdatedAt)
	})
	return result, nil
}

// All returns every readable document without summarizing it.
func (r *Repository) All() ([]*ProjectData, error) {
	docs, err := r.store.ListAll()
	if err != nil {
		return nil, AsError(err)
	}
	return docs, nil
}

// mutate runs fn on the current document of projectID under the project's
// write lock and persists the result. fn receives the mutation timestamp;
// the project's updatedAt is set to it. Nothing is written if fn fails.
func (r *Repository) mutate(projectID string, fn func(doc *ProjectData, now string) error) (*ProjectData, error) {
	unlock := r.lock(projectID)
	defer unlock()

	doc, err := r.store.Read(projectID)
	if err != nil {
		return nil, AsError(err)
	}
	if doc == nil {
		return nil, projectNotFound(projectID)
	}

	now := timestamp()
	if err := fn(doc, now); err != nil {
		return nil, AsError(err)
	}
	doc.Project.UpdatedAt = now

	if err := r.store.Write(doc); err != nil {
		return nil, AsError(err)
	}
	return doc, nil
}

// put stores a whole document as-is under the project's write lock.
func (r *Repository) put(doc *ProjectData) error {
	unlock := r.lock(doc.Project.ID)
	defer unlock()
	if err := r.store.Write(doc); err != nil {
		return AsError(err)
	}
	return nil
}

// newerThan orders timestamps descending, falling back to string order
// when either value does not parse.
func newerThan(a, b string) bool {
	ta, okA := parseTimestamp(a)
	tb, okB := parseTimestamp(b)
	if okA && okB {
		return ta.After(tb)
	}
	return a > b
}
