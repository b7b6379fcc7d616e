package roadmap

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportImport_RoundTrip(t *testing.T) {
	repo, tasks, tags := newTestServices(t)
	doc := createTestProject(t, repo)
	tag, err := tags.Create(doc.Project.ID, CreateTagInput{Name: "t"})
	require.NoError(t, err)
	_, err = tasks.Create(doc.Project.ID, CreateTaskInput{Title: "x", Tags: []string{tag.ID}})
	require.NoError(t, err)

	backup, err := repo.Export()
	require.NoError(t, err)
	assert.Equal(t, 1, backup.Version)
	require.Len(t, backup.Projects, 1)

	data, err := json.Marshal(backup)
	require.NoError(t, err)

	target := NewRepository(NewFileStore(filepath.Join(t.TempDir(), "restore")))
	parsed, err := ParseBackup(data)
	require.NoError(t, err)
	result, err := target.Import(parsed, false)
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, 1, result.Imported)

	restored, err := target.Require(doc.Project.ID)
	require.NoError(t, err)
	require.Len(t, restored.Tasks, 1)
	assert.Equal(t, []string{tag.ID}, restored.Tasks[0].Tags)
}

func TestImport_SkipsExistingUnlessOverwrite(t *testing.T) {
	repo, _, _ := newTestServices(t)
	doc := createTestProject(t, repo)

	incoming := *doc
	incoming.Project.Name = "From backup"
	backup := &Backup{Version: 1, Projects: []*ProjectData{&incoming, {Project: Project{}}}}

	result, err := repo.Import(backup, false)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Imported)
	assert.Equal(t, 2, result.Skipped)
	require.Len(t, result.Errors, 1)

	got, err := repo.Require(doc.Project.ID)
	require.NoError(t, err)
	assert.Equal(t, "Launch", got.Project.Name)

	result, err = repo.Import(backup, true)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)

	got, err = repo.Require(doc.Project.ID)
	require.NoError(t, err)
	assert.Equal(t, "From backup", got.Project.Name)
}

func TestParseBackup_Rejects(t *testing.T) {
	for name, body := range map[string]string{
		"not json":        `{`,
		"missing version": `{"projects": []}`,
		"wrong version":   `{"version": 2, "projects": []}`,
		"projects object": `{"version": 1, "projects": {}}`,
		"no projects":     `{"version": 1}`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ParseBackup([]byte(body))
			requireCode(t, err, CodeValidation)
		})
	}
}
