package roadmap

import "strings"

// TagService implements tag operations inside project documents.
type TagService struct {
	repo *Repository
}

// NewTagService creates a TagService writing through repo.
func NewTagService(repo *Repository) *TagService {
	return &TagService{repo: repo}
}

// findTagByName looks a tag up ignoring case. skipID excludes one tag,
// used when renaming.
func findTagByName(doc *ProjectData, name, skipID string) int {
	for i := range doc.Tags {
		if doc.Tags[i].ID != skipID && strings.EqualFold(doc.Tags[i].Name, name) {
			return i
		}
	}
	return -1
}

// Create adds a tag. The color defaults to one derived from the name.
func (s *TagService) Create(projectID string, in CreateTagInput) (*Tag, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, Validationf("Tag name is required")
	}

	var created Tag
	_, err := s.repo.mutate(projectID, func(doc *ProjectData, now string) error {
		if findTagByName(doc, in.Name, "") >= 0 {
			return Duplicatef("Tag with name '%s' already exists in this project", in.Name)
		}
		color := in.Color
		if color == "" {
			color = DefaultTagColor(in.Name)
		} else if err := ValidateColor(color); err != nil {
			return err
		}
		created = Tag{
			ID:          newID("tag"),
			Name:        in.Name,
			Color:       color,
			Description: in.Description,
			CreatedAt:   now,
		}
		doc.Tags = append(doc.Tags, created)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// List returns the project's tags with the number of tasks using each.
func (s *TagService) List(projectID string) ([]TagWithCount, error) {
	doc, err := s.repo.Require(projectID)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int, len(doc.Tags))
	for _, task := range doc.Tasks {
		for _, id := range uniqueTags(task.Tags) {
			counts[id]++
		}
	}

	result := make([]TagWithCount, 0, len(doc.Tags))
	for _, tag := range doc.Tags {
		result = append(result, TagWithCount{Tag: tag, TaskCount: counts[tag.ID]})
	}
	return result, nil
}

// Update changes a tag's name, color or description.
func (s *TagService) Update(projectID, tagID string, in UpdateTagInput) (*Tag, error) {
	var updated Tag
	_, err := s.repo.mutate(projectID, func(doc *ProjectData, _ string) error {
		idx := doc.findTag(tagID)
		if idx < 0 {
			return tagNotFound(projectID, tagID)
		}
		if in.IsEmpty() {
			return errEmptyUpdate
		}
		if in.Name != nil {
			if strings.TrimSpace(*in.Name) == "" {
				return Validationf("Tag name cannot be empty")
			}
			if findTagByName(doc, *in.Name, tagID) >= 0 {
				return Duplicatef("Tag with name '%s' already exists in this project", *in.Name)
			}
		}
		if in.Color != nil {
			if err := ValidateColor(*in.Color); err != nil {
				return err
			}
		}

		tag := &doc.Tags[idx]
		if in.Name != nil {
			tag.Name = *in.Name
		}
		if in.Color != nil {
			tag.Color = *in.Color
		}
		if in.Description != nil {
			tag.Description = *in.Description
		}
		updated = *tag
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes a tag and strips it from every task in the project.
func (s *TagService) Delete(projectID, tagID string) (*DeleteTagResult, error) {
	result := &DeleteTagResult{}
	_, err := s.repo.mutate(projectID, func(doc *ProjectData, now string) error {
		idx := doc.findTag(tagID)
		if idx < 0 {
			return tagNotFound(projectID, tagID)
		}
		result.Tag = doc.Tags[idx]
		doc.Tags = append(doc.Tags[:idx], doc.Tags[idx+1:]...)

		for i := range doc.Tasks {
			t := &doc.Tasks[i]
			if !t.HasTag(tagID) {
				continue
			}
			t.Tags = subtractTags(t.Tags, []string{tagID})
			t.UpdatedAt = now
			result.TasksUpdated++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	result.Deleted = true
	return result, nil
}

// TasksByTag returns every task carrying the tag with the given name.
func (s *TagService) TasksByTag(projectID, tagName string) (*TasksByTag, error) {
	doc, err := s.repo.Require(projectID)
	if err != nil {
		return nil, err
	}
	idx := findTagByName(doc, tagName, "")
	if idx < 0 {
		return nil, NotFoundf("Tag with name '%s' not found in project '%s'", tagName, projectID)
	}

	tag := doc.Tags[idx]
	tasks := []Task{}
	for _, task := range doc.Tasks {
		if task.HasTag(tag.ID) {
			tasks = append(tasks, task)
		}
	}
	return &TasksByTag{Tag: tag, Tasks: tasks, Count: len(tasks)}, nil
}
