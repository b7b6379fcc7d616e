package templates

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/HendryAvila/roadmap-skill/internal/roadmap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLibrary_ListEmbedded(t *testing.T) {
	lib := NewLibrary("")

	list, err := lib.List()
	require.NoError(t, err)

	names := []string{}
	for _, s := range list {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"kanban-sprint", "skill-learning", "web-app"}, names)
	assert.Equal(t, "Web Application", list[2].DisplayName)
	assert.Equal(t, 6, list[2].TaskCount)
	assert.Equal(t, 4, list[2].TagCount)
}

func TestLibrary_UserDirOverridesAndAdds(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "web-app.json"), []byte(
		`{"name":"Custom","description":"mine","projectType":"kanban","tasks":[],"tags":[]}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "reading.yml"), []byte(
		"name: Reading\nprojectType: skill-tree\ntasks:\n  - title: Pick a book\n    priority: low\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.yaml"), []byte("projectType: [\n"), 0o644))

	lib := NewLibrary(dir)

	tpl, err := lib.Get("web-app")
	require.NoError(t, err)
	assert.Equal(t, "Custom", tpl.Name)
	assert.Equal(t, roadmap.TypeKanban, tpl.ProjectType)

	list, err := lib.List()
	require.NoError(t, err)
	names := []string{}
	for _, s := range list {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"kanban-sprint", "reading", "skill-learning", "web-app"}, names)
}

func TestLibrary_GetMissing(t *testing.T) {
	lib := NewLibrary(t.TempDir())

	_, err := lib.Get("nope")
	require.Error(t, err)
	assert.Equal(t, roadmap.CodeNotFound, roadmap.CodeOf(err))
	assert.EqualError(t, err, "Template 'nope' not found")

	_, err = lib.Get("../etc/passwd")
	assert.Equal(t, roadmap.CodeValidation, roadmap.CodeOf(err))
}

func TestLibrary_Apply(t *testing.T) {
	repo := roadmap.NewRepository(roadmap.NewFileStore(t.TempDir()))
	lib := NewLibrary("")

	res, err := lib.Apply(repo, ApplyInput{TemplateName: "kanban-sprint", ProjectName: "Sprint 12"}, "2026-04-01")
	require.NoError(t, err)

	assert.Equal(t, 4, res.TasksCreated)
	assert.Equal(t, 3, res.TagsCreated)
	assert.Equal(t, "Sprint 12", res.Project.Project.Name)
	assert.Equal(t, "A two-week sprint board with planning, delivery and review.", res.Project.Project.Description)
	assert.Equal(t, "2026-04-01", res.Project.Project.StartDate)
	assert.Equal(t, roadmap.TypeKanban, res.Project.Project.ProjectType)

	bugTag := res.Project.Tags[1]
	assert.Equal(t, "bug", bugTag.Name)
	assert.Equal(t, []string{bugTag.ID}, res.Project.Tasks[1].Tags)

	stored, err := repo.Require(res.Project.Project.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Tasks, 4)
}

func TestLibrary_ApplyRequiresName(t *testing.T) {
	repo := roadmap.NewRepository(roadmap.NewFileStore(t.TempDir()))

	_, err := NewLibrary("").Apply(repo, ApplyInput{TemplateName: "web-app"}, "2026-04-01")
	assert.Equal(t, roadmap.CodeValidation, roadmap.CodeOf(err))
}
