package roadmap

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestServices(t *testing.T) (*Repository, *TaskService, *TagService) {
	t.Helper()
	repo := NewRepository(NewFileStore(t.TempDir()))
	return repo, NewTaskService(repo), NewTagService(repo)
}

// freezeTime pins timeNow to ts for the duration of the test.
func freezeTime(t *testing.T, ts time.Time) {
	t.Helper()
	orig := timeNow
	timeNow = func() time.Time { return ts }
	t.Cleanup(func() { timeNow = orig })
}

func createTestProject(t *testing.T, repo *Repository) *ProjectData {
	t.Helper()
	doc, err := repo.Create(CreateProjectInput{
		Name:        "Launch",
		Description: "Ship v1",
		ProjectType: TypeRoadmap,
		StartDate:   "2026-01-01",
		TargetDate:  "2026-12-31",
	})
	require.NoError(t, err)
	return doc
}

func strPtr(s string) *string { return &s }

func statusPtr(s TaskStatus) *TaskStatus { return &s }

func priorityPtr(p TaskPriority) *TaskPriority { return &p }

func requireCode(t *testing.T, err error, want Code) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, want, CodeOf(err), "error: %v", err)
}
