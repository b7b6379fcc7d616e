package roadmap

import "strings"

// SeedTask is a task described by tag names instead of tag IDs.
type SeedTask struct {
	Title       string
	Description string
	Priority    TaskPriority
	TagNames    []string
}

// Seed describes a project created together with its tags and tasks.
type Seed struct {
	Project CreateProjectInput
	Tags    []CreateTagInput
	Tasks   []SeedTask
}

// CreateSeeded creates a project with its tags and tasks in a single write.
// Tags with an invalid color get the derived color. Repeated tag names are
// skipped and task tag names that match no tag are dropped.
func (r *Repository) CreateSeeded(seed Seed) (*ProjectData, error) {
	if err := seed.Project.Validate(); err != nil {
		return nil, err
	}

	now := timestamp()
	doc := newDocument(seed.Project, now)
	byName := make(map[string]string, len(seed.Tags))
	for _, in := range seed.Tags {
		key := strings.ToLower(strings.TrimSpace(in.Name))
		if key == "" {
			continue
		}
		if _, dup := byName[key]; dup {
			continue
		}
		color := in.Color
		if ValidateColor(color) != nil {
			color = DefaultTagColor(in.Name)
		}
		tag := Tag{
			ID:          newID("tag"),
			Name:        in.Name,
			Color:       color,
			Description: in.Description,
			CreatedAt:   now,
		}
		doc.Tags = append(doc.Tags, tag)
		byName[key] = tag.ID
	}

	for _, st := range seed.Tasks {
		priority := st.Priority
		if ValidateTaskPriority(priority) != nil {
			priority = PriorityMedium
		}
		ids := []string{}
		for _, name := range st.TagNames {
			if id, ok := byName[strings.ToLower(strings.TrimSpace(name))]; ok {
				ids = append(ids, id)
			}
		}
		doc.Tasks = append(doc.Tasks, Task{
			ID:          newID("task"),
			ProjectID:   doc.Project.ID,
			Title:       st.Title,
			Description: st.Description,
			Status:      StatusTodo,
			Priority:    priority,
			Tags:        uniqueTags(ids),
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}

	if err := r.store.Write(doc); err != nil {
		return nil, AsError(err)
	}
	return doc, nil
}
