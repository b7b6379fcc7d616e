// Package roadmap implements the project-data core of the roadmap manager.
//
// Every project lives in a single ProjectData document holding the project,
// its milestones, tasks and tags. All mutations read the whole document,
// change it in memory and write it back through a Store.
//
// Layout:
// - types.go: entities and closed-set enums
// - errors.go: error kinds surfaced to callers
// - store.go: Store contract and the JSON FileStore
// - repository.go: project lifecycle and per-project write serialization
// - tasks.go, tags.go, search.go: entity operations
// - backup.go, progress.go: whole-dataset export/import and statistics
package roadmap

import "regexp"

// SchemaVersion is the current ProjectData document version.
const SchemaVersion = 1

// --- Project enums ---

// ProjectType is the presentation style of a project.
type ProjectType string

const (
	TypeRoadmap   ProjectType = "roadmap"
	TypeSkillTree ProjectType = "skill-tree"
	TypeKanban    ProjectType = "kanban"
)

var validProjectTypes = map[ProjectType]bool{
	TypeRoadmap:   true,
	TypeSkillTree: true,
	TypeKanban:    true,
}

// ValidateProjectType returns an error if the type is not recognized.
func ValidateProjectType(t ProjectType) error {
	if !validProjectTypes[t] {
		return Validationf("invalid project type %q: must be one of: roadmap, skill-tree, kanban", t)
	}
	return nil
}

// ProjectStatus is the lifecycle state of a project.
type ProjectStatus string

const (
	ProjectActive    ProjectStatus = "active"
	ProjectCompleted ProjectStatus = "completed"
	ProjectArchived  ProjectStatus = "archived"
)

var validProjectStatuses = map[ProjectStatus]bool{
	ProjectActive:    true,
	ProjectCompleted: true,
	ProjectArchived:  true,
}

// ValidateProjectStatus returns an error if the status is not recognized.
func ValidateProjectStatus(s ProjectStatus) error {
	if !validProjectStatuses[s] {
		return Validationf("invalid project status %q: must be one of: active, completed, archived", s)
	}
	return nil
}

// --- Task enums ---

// TaskStatus is the workflow state of a task. Any transition is allowed.
type TaskStatus string

const (
	StatusTodo       TaskStatus = "todo"
	StatusInProgress TaskStatus = "in-progress"
	StatusReview     TaskStatus = "review"
	StatusDone       TaskStatus = "done"
)

// TaskStatuses lists every status in board order.
var TaskStatuses = []TaskStatus{StatusTodo, StatusInProgress, StatusReview, StatusDone}

var validTaskStatuses = map[TaskStatus]bool{
	StatusTodo:       true,
	StatusInProgress: true,
	StatusReview:     true,
	StatusDone:       true,
}

// ValidateTaskStatus returns an error if the status is not recognized.
func ValidateTaskStatus(s TaskStatus) error {
	if !validTaskStatuses[s] {
		return Validationf("invalid task status %q: must be one of: todo, in-progress, review, done", s)
	}
	return nil
}

// TaskPriority ranks tasks.
type TaskPriority string

const (
	PriorityLow      TaskPriority = "low"
	PriorityMedium   TaskPriority = "medium"
	PriorityHigh     TaskPriority = "high"
	PriorityCritical TaskPriority = "critical"
)

// TaskPriorities lists every priority from most to least urgent.
var TaskPriorities = []TaskPriority{PriorityCritical, PriorityHigh, PriorityMedium, PriorityLow}

var validTaskPriorities = map[TaskPriority]bool{
	PriorityLow:      true,
	PriorityMedium:   true,
	PriorityHigh:     true,
	PriorityCritical: true,
}

// ValidateTaskPriority returns an error if the priority is not recognized.
func ValidateTaskPriority(p TaskPriority) error {
	if !validTaskPriorities[p] {
		return Validationf("invalid task priority %q: must be one of: low, medium, high, critical", p)
	}
	return nil
}

// --- Entities ---

// Project is the descriptive header of a project document.
type Project struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	ProjectType ProjectType   `json:"projectType"`
	Status      ProjectStatus `json:"status"`
	StartDate   string        `json:"startDate"`
	TargetDate  string        `json:"targetDate"`
	CreatedAt   string        `json:"createdAt"`
	UpdatedAt   string        `json:"updatedAt"`
}

// Task is a unit of work inside a project.
// CompletedAt is non-nil exactly when Status is done.
type Task struct {
	ID          string       `json:"id"`
	ProjectID   string       `json:"projectId"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Status      TaskStatus   `json:"status"`
	Priority    TaskPriority `json:"priority"`
	Tags        []string     `json:"tags"`
	DueDate     *string      `json:"dueDate"`
	Assignee    *string      `json:"assignee"`
	CreatedAt   string       `json:"createdAt"`
	UpdatedAt   string       `json:"updatedAt"`
	CompletedAt *string      `json:"completedAt"`
}

// HasTag reports whether the task references tagID.
func (t *Task) HasTag(tagID string) bool {
	for _, id := range t.Tags {
		if id == tagID {
			return true
		}
	}
	return false
}

// Tag labels tasks. Names are unique per project, ignoring case.
type Tag struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Color       string `json:"color"`
	Description string `json:"description"`
	CreatedAt   string `json:"createdAt"`
}

// Milestone is stored and returned as-is; no operation mutates it.
type Milestone struct {
	ID          string  `json:"id"`
	ProjectID   string  `json:"projectId"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	TargetDate  string  `json:"targetDate"`
	CompletedAt *string `json:"completedAt"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

// ProjectData is the unit of storage: one document per project.
type ProjectData struct {
	Version    int         `json:"version"`
	Project    Project     `json:"project"`
	Milestones []Milestone `json:"milestones"`
	Tasks      []Task      `json:"tasks"`
	Tags       []Tag       `json:"tags"`
}

// Normalize replaces nil collections with empty ones so documents always
// serialize as arrays.
func (d *ProjectData) Normalize() {
	if d.Milestones == nil {
		d.Milestones = []Milestone{}
	}
	if d.Tasks == nil {
		d.Tasks = []Task{}
	}
	if d.Tags == nil {
		d.Tags = []Tag{}
	}
	for i := range d.Tasks {
		if d.Tasks[i].Tags == nil {
			d.Tasks[i].Tags = []string{}
		}
	}
}

func (d *ProjectData) findTask(taskID string) int {
	for i := range d.Tasks {
		if d.Tasks[i].ID == taskID {
			return i
		}
	}
	return -1
}

func (d *ProjectData) findTag(tagID string) int {
	for i := range d.Tags {
		if d.Tags[i].ID == tagID {
			return i
		}
	}
	return -1
}

// --- Inputs ---

var dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ValidateDate checks the YYYY-MM-DD shape used for calendar dates.
func ValidateDate(field, value string) error {
	if !dateRe.MatchString(value) {
		return Validationf("%s must be in YYYY-MM-DD format, received '%s'", field, value)
	}
	return nil
}

// CreateProjectInput holds the fields for a new project.
type CreateProjectInput struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	ProjectType ProjectType `json:"projectType"`
	StartDate   string      `json:"startDate"`
	TargetDate  string      `json:"targetDate"`
}

// Validate checks required fields and enum values.
func (in CreateProjectInput) Validate() error {
	if in.Name == "" {
		return Validationf("Project name is required")
	}
	if err := ValidateProjectType(in.ProjectType); err != nil {
		return err
	}
	if err := ValidateDate("startDate", in.StartDate); err != nil {
		return err
	}
	return ValidateDate("targetDate", in.TargetDate)
}

// UpdateProjectInput is a partial update; nil fields are left unchanged.
type UpdateProjectInput struct {
	Name        *string        `json:"name,omitempty"`
	Description *string        `json:"description,omitempty"`
	ProjectType *ProjectType   `json:"projectType,omitempty"`
	Status      *ProjectStatus `json:"status,omitempty"`
	StartDate   *string        `json:"startDate,omitempty"`
	TargetDate  *string        `json:"targetDate,omitempty"`
}

// IsEmpty reports whether no field was supplied.
func (in UpdateProjectInput) IsEmpty() bool {
	return in.Name == nil && in.Description == nil && in.ProjectType == nil &&
		in.Status == nil && in.StartDate == nil && in.TargetDate == nil
}

// Validate checks every supplied field.
func (in UpdateProjectInput) Validate() error {
	if in.Name != nil && *in.Name == "" {
		return Validationf("Project name cannot be empty")
	}
	if in.ProjectType != nil {
		if err := ValidateProjectType(*in.ProjectType); err != nil {
			return err
		}
	}
	if in.Status != nil {
		if err := ValidateProjectStatus(*in.Status); err != nil {
			return err
		}
	}
	if in.StartDate != nil {
		if err := ValidateDate("startDate", *in.StartDate); err != nil {
			return err
		}
	}
	if in.TargetDate != nil {
		return ValidateDate("targetDate", *in.TargetDate)
	}
	return nil
}

func (in UpdateProjectInput) apply(p *Project) {
	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.ProjectType != nil {
		p.ProjectType = *in.ProjectType
	}
	if in.Status != nil {
		p.Status = *in.Status
	}
	if in.StartDate != nil {
		p.StartDate = *in.StartDate
	}
	if in.TargetDate != nil {
		p.TargetDate = *in.TargetDate
	}
}

// CreateTaskInput holds the fields for a new task. Empty Priority means medium.
type CreateTaskInput struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Priority    TaskPriority `json:"priority,omitempty"`
	Tags        []string     `json:"tags,omitempty"`
	DueDate     *string      `json:"dueDate,omitempty"`
	Assignee    *string      `json:"assignee,omitempty"`
}

// UpdateTaskInput is a partial task update. DueDate and Assignee can be
// cleared with ClearDueDate and ClearAssignee.
type UpdateTaskInput struct {
	Title         *string
	Description   *string
	Status        *TaskStatus
	Priority      *TaskPriority
	Tags          []string
	SetTags       bool
	DueDate       *string
	ClearDueDate  bool
	Assignee      *string
	ClearAssignee bool
}

// IsEmpty reports whether no field was supplied.
func (in UpdateTaskInput) IsEmpty() bool {
	return in.Title == nil && in.Description == nil && in.Status == nil &&
		in.Priority == nil && !in.SetTags && in.DueDate == nil && !in.ClearDueDate &&
		in.Assignee == nil && !in.ClearAssignee
}

func (in UpdateTaskInput) validate() error {
	if in.Title != nil && *in.Title == "" {
		return Validationf("Task title cannot be empty")
	}
	if in.Status != nil {
		if err := ValidateTaskStatus(*in.Status); err != nil {
			return err
		}
	}
	if in.Priority != nil {
		if err := ValidateTaskPriority(*in.Priority); err != nil {
			return err
		}
	}
	if in.DueDate != nil {
		return ValidateDate("dueDate", *in.DueDate)
	}
	return nil
}

// TagOperation selects how batch updates reconcile task tag sets.
type TagOperation string

const (
	TagAdd     TagOperation = "add"
	TagRemove  TagOperation = "remove"
	TagReplace TagOperation = "replace"
)

// BatchUpdateInput holds the fields applied to every task in a batch.
type BatchUpdateInput struct {
	Status       *TaskStatus
	Priority     *TaskPriority
	Tags         []string
	SetTags      bool
	TagOperation TagOperation
}

// BatchUpdateResult reports the outcome of a batch update.
type BatchUpdateResult struct {
	UpdatedTasks []Task   `json:"updatedTasks"`
	UpdatedCount int      `json:"updatedCount"`
	NotFoundIDs  []string `json:"notFoundIds,omitempty"`
}

// CreateTagInput holds the fields for a new tag. Empty Color means derived.
type CreateTagInput struct {
	Name        string `json:"name"`
	Color       string `json:"color,omitempty"`
	Description string `json:"description"`
}

// UpdateTagInput is a partial tag update.
type UpdateTagInput struct {
	Name        *string `json:"name,omitempty"`
	Color       *string `json:"color,omitempty"`
	Description *string `json:"description,omitempty"`
}

// IsEmpty reports whether no field was supplied.
func (in UpdateTagInput) IsEmpty() bool {
	return in.Name == nil && in.Color == nil && in.Description == nil
}

// --- Views ---

// ProjectSummary is one row of the project listing.
type ProjectSummary struct {
	Project        Project `json:"project"`
	TaskCount      int     `json:"taskCount"`
	MilestoneCount int     `json:"milestoneCount"`
}

// TagWithCount is a tag annotated with the number of tasks using it.
type TagWithCount struct {
	Tag
	TaskCount int `json:"taskCount"`
}

// DeleteTagResult reports a cascading tag deletion.
type DeleteTagResult struct {
	Deleted      bool `json:"deleted"`
	Tag          Tag  `json:"tag"`
	TasksUpdated int  `json:"tasksUpdated"`
}

// TasksByTag is the result of looking a tag up by name.
type TasksByTag struct {
	Tag   Tag    `json:"tag"`
	Tasks []Task `json:"tasks"`
	Count int    `json:"count"`
}

// TaskWithProject pairs a search hit with its owning project.
type TaskWithProject struct {
	Task    Task    `json:"task"`
	Project Project `json:"project"`
}

