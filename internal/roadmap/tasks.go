package roadmap

// TaskService implements task operations inside project documents.
type TaskService struct {
	repo *Repository
}

// NewTaskService creates a TaskService writing through repo.
func NewTaskService(repo *Repository) *TaskService {
	return &TaskService{repo: repo}
}

// Create appends a new todo task to the project.
func (s *TaskService) Create(projectID string, in CreateTaskInput) (*Task, error) {
	if in.Title == "" {
		return nil, Validationf("Task title is required")
	}
	priority := in.Priority
	if priority == "" {
		priority = PriorityMedium
	}
	if err := ValidateTaskPriority(priority); err != nil {
		return nil, err
	}
	if in.DueDate != nil {
		if err := ValidateDate("dueDate", *in.DueDate); err != nil {
			return nil, err
		}
	}

	var created Task
	_, err := s.repo.mutate(projectID, func(doc *ProjectData, now string) error {
		if err := checkTagRefs(doc, in.Tags); err != nil {
			return err
		}
		created = Task{
			ID:          newID("task"),
			ProjectID:   projectID,
			Title:       in.Title,
			Description: in.Description,
			Status:      StatusTodo,
			Priority:    priority,
			Tags:        uniqueTags(in.Tags),
			DueDate:     in.DueDate,
			Assignee:    in.Assignee,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		doc.Tasks = append(doc.Tasks, created)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// Get returns one task.
func (s *TaskService) Get(projectID, taskID string) (*Task, error) {
	doc, err := s.repo.Require(projectID)
	if err != nil {
		return nil, err
	}
	idx := doc.findTask(taskID)
	if idx < 0 {
		return nil, taskNotFound(projectID, taskID)
	}
	task := doc.Tasks[idx]
	return &task, nil
}

// Update applies a partial update to one task.
func (s *TaskService) Update(projectID, taskID string, in UpdateTaskInput) (*Task, error) {
	var updated Task
	_, err := s.repo.mutate(projectID, func(doc *ProjectData, now string) error {
		idx := doc.findTask(taskID)
		if idx < 0 {
			return taskNotFound(projectID, taskID)
		}
		if in.IsEmpty() {
			return errEmptyUpdate
		}
		if err := in.validate(); err != nil {
			return err
		}
		if in.SetTags {
			if err := checkTagRefs(doc, in.Tags); err != nil {
				return err
			}
		}

		t := &doc.Tasks[idx]
		if in.Title != nil {
			t.Title = *in.Title
		}
		if in.Description != nil {
			t.Description = *in.Description
		}
		if in.Priority != nil {
			t.Priority = *in.Priority
		}
		if in.SetTags {
			t.Tags = uniqueTags(in.Tags)
		}
		switch {
		case in.ClearDueDate:
			t.DueDate = nil
		case in.DueDate != nil:
			t.DueDate = in.DueDate
		}
		switch {
		case in.ClearAssignee:
			t.Assignee = nil
		case in.Assignee != nil:
			t.Assignee = in.Assignee
		}
		if in.Status != nil {
			setStatus(t, *in.Status, now)
		}
		t.UpdatedAt = now
		updated = *t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes a task and returns it.
func (s *TaskService) Delete(projectID, taskID string) (*Task, error) {
	var removed Task
	_, err := s.repo.mutate(projectID, func(doc *ProjectData, _ string) error {
		idx := doc.findTask(taskID)
		if idx < 0 {
			return taskNotFound(projectID, taskID)
		}
		removed = doc.Tasks[idx]
		doc.Tasks = append(doc.Tasks[:idx], doc.Tasks[idx+1:]...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &removed, nil
}

// List returns the bare tasks matching filters. Done tasks are left out
// unless the filters ask for them.
func (s *TaskService) List(filters SearchFilters) ([]Task, error) {
	hits, err := s.repo.SearchTasks(filters)
	if err != nil {
		return nil, err
	}
	hits = ExcludeCompleted(hits, filters)
	tasks := make([]Task, 0, len(hits))
	for _, hit := range hits {
		tasks = append(tasks, hit.Task)
	}
	return tasks, nil
}

// BatchUpdate applies the same change to several tasks in one write.
// Unknown task IDs are reported, not fatal, unless none of the IDs exist.
func (s *TaskService) BatchUpdate(projectID string, taskIDs []string, in BatchUpdateInput) (*BatchUpdateResult, error) {
	if len(taskIDs) == 0 {
		return nil, Validationf("At least one task ID is required")
	}
	if in.Status != nil {
		if err := ValidateTaskStatus(*in.Status); err != nil {
			return nil, err
		}
	}
	if in.Priority != nil {
		if err := ValidateTaskPriority(*in.Priority); err != nil {
			return nil, err
		}
	}
	op := in.TagOperation
	if op == "" {
		op = TagReplace
	}
	if op != TagAdd && op != TagRemove && op != TagReplace {
		return nil, Validationf("invalid tag operation %q: must be one of: add, remove, replace", op)
	}

	result := &BatchUpdateResult{UpdatedTasks: []Task{}}
	_, err := s.repo.mutate(projectID, func(doc *ProjectData, now string) error {
		if in.SetTags {
			if err := checkTagRefs(doc, in.Tags); err != nil {
				return err
			}
		}

		for _, taskID := range taskIDs {
			idx := doc.findTask(taskID)
			if idx < 0 {
				result.NotFoundIDs = append(result.NotFoundIDs, taskID)
				continue
			}

			t := &doc.Tasks[idx]
			if in.Status != nil {
				setStatus(t, *in.Status, now)
			}
			if in.Priority != nil {
				t.Priority = *in.Priority
			}
			if in.SetTags {
				switch op {
				case TagAdd:
					t.Tags = unionTags(t.Tags, in.Tags)
				case TagRemove:
					t.Tags = subtractTags(t.Tags, in.Tags)
				default:
					t.Tags = uniqueTags(in.Tags)
				}
			}
			t.UpdatedAt = now
			result.UpdatedTasks = append(result.UpdatedTasks, *t)
		}

		if len(result.UpdatedTasks) == 0 {
			return NotFoundf("No tasks were found to update")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	result.UpdatedCount = len(result.UpdatedTasks)
	return result, nil
}
