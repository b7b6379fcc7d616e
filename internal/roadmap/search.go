package roadmap

import "strings"

// SearchFilters narrows a task scan. Zero values mean "no constraint" and
// all present constraints must hold.
//
// IncludeCompleted is not enforced by SearchTasks. TaskService.List and
// ExcludeCompleted apply it.
type SearchFilters struct {
	ProjectID        string       `json:"projectId,omitempty"`
	Status           TaskStatus   `json:"status,omitempty"`
	Priority         TaskPriority `json:"priority,omitempty"`
	Tags             []string     `json:"tags,omitempty"`
	Assignee         string       `json:"assignee,omitempty"`
	DueBefore        string       `json:"dueBefore,omitempty"`
	DueAfter         string       `json:"dueAfter,omitempty"`
	SearchText       string       `json:"searchText,omitempty"`
	IncludeCompleted bool         `json:"includeCompleted,omitempty"`
}

// SearchTasks scans stored projects and returns every task matching filters
// together with its project. Unreadable documents are skipped.
func (r *Repository) SearchTasks(filters SearchFilters) ([]TaskWithProject, error) {
	var docs []*ProjectData
	if filters.ProjectID != "" {
		doc, err := r.store.Read(filters.ProjectID)
		if err != nil {
			// A single corrupt document yields no results, same as a scan.
			if CodeOf(err) == CodeValidation {
				return nil, err
			}
			return []TaskWithProject{}, nil
		}
		if doc != nil {
			docs = append(docs, doc)
		}
	} else {
		all, err := r.store.ListAll()
		if err != nil {
			return nil, AsError(err)
		}
		docs = all
	}

	m := newMatcher(filters)
	result := []TaskWithProject{}
	for _, doc := range docs {
		for _, task := range doc.Tasks {
			if m.match(&task) {
				result = append(result, TaskWithProject{Task: task, Project: doc.Project})
			}
		}
	}
	return result, nil
}

// ExcludeCompleted drops done tasks unless the filters ask for them,
// either through IncludeCompleted or an explicit done status.
func ExcludeCompleted(hits []TaskWithProject, filters SearchFilters) []TaskWithProject {
	if filters.IncludeCompleted || filters.Status == StatusDone {
		return hits
	}
	out := make([]TaskWithProject, 0, len(hits))
	for _, hit := range hits {
		if hit.Task.Status != StatusDone {
			out = append(out, hit)
		}
	}
	return out
}

type matcher struct {
	f    SearchFilters
	tags tagSet
	text string
}

func newMatcher(f SearchFilters) *matcher {
	m := &matcher{f: f, text: strings.ToLower(f.SearchText)}
	if len(f.Tags) > 0 {
		m.tags = newTagSet(f.Tags)
	}
	return m
}

func (m *matcher) match(t *Task) bool {
	if m.f.Status != "" && t.Status != m.f.Status {
		return false
	}
	if m.f.Priority != "" && t.Priority != m.f.Priority {
		return false
	}
	if m.f.Assignee != "" && (t.Assignee == nil || *t.Assignee != m.f.Assignee) {
		return false
	}
	if m.tags != nil && !m.anyTag(t.Tags) {
		return false
	}
	if t.DueDate != nil {
		if m.f.DueBefore != "" && *t.DueDate > m.f.DueBefore {
			return false
		}
		if m.f.DueAfter != "" && *t.DueDate < m.f.DueAfter {
			return false
		}
	}
	if m.text != "" &&
		!strings.Contains(strings.ToLower(t.Title), m.text) &&
		!strings.Contains(strings.ToLower(t.Description), m.text) {
		return false
	}
	return true
}

func (m *matcher) anyTag(ids []string) bool {
	for _, id := range ids {
		if m.tags.has(id) {
			return true
		}
	}
	return false
}
