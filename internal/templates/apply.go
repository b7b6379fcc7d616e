package templates

import (
	"github.com/HendryAvila/roadmap-skill/internal/roadmap"
)

// ApplyInput names the project created from a template. Empty dates
// default to today; an empty description uses the template's.
type ApplyInput struct {
	TemplateName string
	ProjectName  string
	Description  string
	StartDate    string
	TargetDate   string
}

// ApplyResult reports a project created from a template.
type ApplyResult struct {
	Project      roadmap.ProjectData `json:"project"`
	TasksCreated int                 `json:"tasksCreated"`
	TagsCreated  int                 `json:"tagsCreated"`
}

// Seed converts the template into a roadmap.Seed.
func (t *Template) Seed(in ApplyInput, today string) roadmap.Seed {
	seed := roadmap.Seed{
		Project: roadmap.CreateProjectInput{
			Name:        in.ProjectName,
			Description: in.Description,
			ProjectType: t.ProjectType,
			StartDate:   in.StartDate,
			TargetDate:  in.TargetDate,
		},
	}
	if seed.Project.Description == "" {
		seed.Project.Description = t.Description
	}
	if seed.Project.StartDate == "" {
		seed.Project.StartDate = today
	}
	if seed.Project.TargetDate == "" {
		seed.Project.TargetDate = today
	}

	for _, tag := range t.Tags {
		seed.Tags = append(seed.Tags, roadmap.CreateTagInput{Name: tag.Name, Color: tag.Color})
	}
	for _, task := range t.Tasks {
		seed.Tasks = append(seed.Tasks, roadmap.SeedTask{
			Title:       task.Title,
			Description: task.Description,
			Priority:    task.Priority,
			TagNames:    task.Tags,
		})
	}
	return seed
}

// Apply creates a project from the named template.
func (l *Library) Apply(repo *roadmap.Repository, in ApplyInput, today string) (*ApplyResult, error) {
	if in.ProjectName == "" {
		return nil, roadmap.Validationf("Project name is required")
	}
	tpl, err := l.Get(in.TemplateName)
	if err != nil {
		return nil, err
	}

	doc, err := repo.CreateSeeded(tpl.Seed(in, today))
	if err != nil {
		return nil, err
	}
	return &ApplyResult{
		Project:      *doc,
		TasksCreated: len(doc.Tasks),
		TagsCreated:  len(doc.Tags),
	}, nil
}
