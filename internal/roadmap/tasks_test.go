package roadmap

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskService_CreateDefaults(t *testing.T) {
	repo, tasks, _ := newTestServices(t)
	doc := createTestProject(t, repo)

	task, err := tasks.Create(doc.Project.ID, CreateTaskInput{Title: "Write docs"})
	require.NoError(t, err)

	assert.Regexp(t, `^task_\d+_[0-9a-z]{7}$`, task.ID)
	assert.Equal(t, doc.Project.ID, task.ProjectID)
	assert.Equal(t, StatusTodo, task.Status)
	assert.Equal(t, PriorityMedium, task.Priority)
	assert.Equal(t, []string{}, task.Tags)
	assert.Nil(t, task.DueDate)
	assert.Nil(t, task.Assignee)
	assert.Nil(t, task.CompletedAt)
}

func TestTaskService_CreateBumpsProjectUpdatedAt(t *testing.T) {
	repo, tasks, _ := newTestServices(t)
	freezeTime(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	doc := createTestProject(t, repo)

	freezeTime(t, time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC))
	_, err := tasks.Create(doc.Project.ID, CreateTaskInput{Title: "x"})
	require.NoError(t, err)

	got, err := repo.Require(doc.Project.ID)
	require.NoError(t, err)
	assert.Equal(t, "2026-01-05T00:00:00.000Z", got.Project.UpdatedAt)
}

func TestTaskService_CreateMissingProject(t *testing.T) {
	_, tasks, _ := newTestServices(t)

	_, err := tasks.Create("proj_nope", CreateTaskInput{Title: "x"})
	requireCode(t, err, CodeNotFound)
	assert.EqualError(t, err, "Project with ID 'proj_nope' not found")
}

func TestTaskService_CreateRejectsUnknownTags(t *testing.T) {
	repo, tasks, _ := newTestServices(t)
	doc := createTestProject(t, repo)

	_, err := tasks.Create(doc.Project.ID, CreateTaskInput{Title: "x", Tags: []string{"bad1", "bad2"}})
	requireCode(t, err, CodeValidation)
	assert.EqualError(t, err, "Invalid tag IDs for project '"+doc.Project.ID+"': bad1, bad2")

	got, err := repo.Require(doc.Project.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Tasks)
}

func TestTaskService_Get(t *testing.T) {
	repo, tasks, _ := newTestServices(t)
	doc := createTestProject(t, repo)
	created, err := tasks.Create(doc.Project.ID, CreateTaskInput{Title: "x"})
	require.NoError(t, err)

	got, err := tasks.Get(doc.Project.ID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	_, err = tasks.Get(doc.Project.ID, "task_nope")
	requireCode(t, err, CodeNotFound)
	assert.EqualError(t, err, "Task with ID 'task_nope' not found in project '"+doc.Project.ID+"'")

	_, err = tasks.Get("proj_nope", created.ID)
	assert.EqualError(t, err, "Project with ID 'proj_nope' not found")
}

func TestTaskService_UpdateToDoneSetsCompletedAt(t *testing.T) {
	repo, tasks, _ := newTestServices(t)
	doc := createTestProject(t, repo)
	task, err := tasks.Create(doc.Project.ID, CreateTaskInput{Title: "x"})
	require.NoError(t, err)

	freezeTime(t, time.Date(2026, 6, 1, 12, 30, 0, 0, time.UTC))
	updated, err := tasks.Update(doc.Project.ID, task.ID, UpdateTaskInput{Status: statusPtr(StatusDone)})
	require.NoError(t, err)

	require.NotNil(t, updated.CompletedAt)
	assert.Equal(t, "2026-06-01T12:30:00.000Z", *updated.CompletedAt)
	assert.Equal(t, updated.UpdatedAt, *updated.CompletedAt)
}

func TestTaskService_CompletedAtTransitions(t *testing.T) {
	repo, tasks, _ := newTestServices(t)
	doc := createTestProject(t, repo)
	task, err := tasks.Create(doc.Project.ID, CreateTaskInput{Title: "x"})
	require.NoError(t, err)
	pid := doc.Project.ID

	freezeTime(t, time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC))
	done, err := tasks.Update(pid, task.ID, UpdateTaskInput{Status: statusPtr(StatusDone)})
	require.NoError(t, err)
	firstCompletion := *done.CompletedAt

	// done -> done keeps the original completion time.
	freezeTime(t, time.Date(2026, 6, 2, 0, 0, 0, 0, time.UTC))
	again, err := tasks.Update(pid, task.ID, UpdateTaskInput{Status: statusPtr(StatusDone)})
	require.NoError(t, err)
	assert.Equal(t, firstCompletion, *again.CompletedAt)

	// Non-status updates leave it alone.
	titled, err := tasks.Update(pid, task.ID, UpdateTaskInput{Title: strPtr("renamed")})
	require.NoError(t, err)
	assert.Equal(t, firstCompletion, *titled.CompletedAt)

	reopened, err := tasks.Update(pid, task.ID, UpdateTaskInput{Status: statusPtr(StatusReview)})
	require.NoError(t, err)
	assert.Nil(t, reopened.CompletedAt)

	moved, err := tasks.Update(pid, task.ID, UpdateTaskInput{Status: statusPtr(StatusInProgress)})
	require.NoError(t, err)
	assert.Nil(t, moved.CompletedAt)
}

func TestTaskService_UpdateEmptyFails(t *testing.T) {
	repo, tasks, _ := newTestServices(t)
	doc := createTestProject(t, repo)
	task, err := tasks.Create(doc.Project.ID, CreateTaskInput{Title: "x"})
	require.NoError(t, err)

	_, err = tasks.Update(doc.Project.ID, task.ID, UpdateTaskInput{})
	requireCode(t, err, CodeValidation)
	assert.EqualError(t, err, "At least one field to update is required")
}

func TestTaskService_UpdateIdenticalFieldsOnlyTouchesUpdatedAt(t *testing.T) {
	repo, tasks, _ := newTestServices(t)
	doc := createTestProject(t, repo)
	freezeTime(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	task, err := tasks.Create(doc.Project.ID, CreateTaskInput{Title: "same", Description: "d"})
	require.NoError(t, err)

	freezeTime(t, time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC))
	updated, err := tasks.Update(doc.Project.ID, task.ID, UpdateTaskInput{
		Title:       strPtr("same"),
		Description: strPtr("d"),
		Status:      statusPtr(StatusTodo),
	})
	require.NoError(t, err)

	assert.NotEqual(t, task.UpdatedAt, updated.UpdatedAt)
	expected := *task
	expected.UpdatedAt = updated.UpdatedAt
	assert.Equal(t, &expected, updated)
}

func TestTaskService_UpdateClearsNullableFields(t *testing.T) {
	repo, tasks, _ := newTestServices(t)
	doc := createTestProject(t, repo)
	task, err := tasks.Create(doc.Project.ID, CreateTaskInput{
		Title:    "x",
		DueDate:  strPtr("2026-05-01"),
		Assignee: strPtr("sam"),
	})
	require.NoError(t, err)

	updated, err := tasks.Update(doc.Project.ID, task.ID, UpdateTaskInput{ClearDueDate: true, ClearAssignee: true})
	require.NoError(t, err)
	assert.Nil(t, updated.DueDate)
	assert.Nil(t, updated.Assignee)
}

func TestTaskService_UpdateRejectsUnknownTags(t *testing.T) {
	repo, tasks, tags := newTestServices(t)
	doc := createTestProject(t, repo)
	tag, err := tags.Create(doc.Project.ID, CreateTagInput{Name: "ok"})
	require.NoError(t, err)
	task, err := tasks.Create(doc.Project.ID, CreateTaskInput{Title: "x", Tags: []string{tag.ID}})
	require.NoError(t, err)

	_, err = tasks.Update(doc.Project.ID, task.ID, UpdateTaskInput{Tags: []string{tag.ID, "ghost"}, SetTags: true})
	requireCode(t, err, CodeValidation)

	got, err := tasks.Get(doc.Project.ID, task.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{tag.ID}, got.Tags)
}

func TestTaskService_Delete(t *testing.T) {
	repo, tasks, _ := newTestServices(t)
	doc := createTestProject(t, repo)
	task, err := tasks.Create(doc.Project.ID, CreateTaskInput{Title: "x"})
	require.NoError(t, err)

	removed, err := tasks.Delete(doc.Project.ID, task.ID)
	require.NoError(t, err)
	assert.Equal(t, task.ID, removed.ID)

	_, err = tasks.Delete(doc.Project.ID, task.ID)
	requireCode(t, err, CodeNotFound)
}

func TestTaskService_BatchUpdatePartialNotFound(t *testing.T) {
	repo, tasks, _ := newTestServices(t)
	doc := createTestProject(t, repo)
	t1, err := tasks.Create(doc.Project.ID, CreateTaskInput{Title: "one"})
	require.NoError(t, err)

	result, err := tasks.BatchUpdate(doc.Project.ID, []string{t1.ID, "nonexistent"}, BatchUpdateInput{Status: statusPtr(StatusReview)})
	require.NoError(t, err)

	assert.Equal(t, 1, result.UpdatedCount)
	assert.Equal(t, []string{"nonexistent"}, result.NotFoundIDs)
	assert.Equal(t, StatusReview, result.UpdatedTasks[0].Status)
}

func TestTaskService_BatchUpdateNothingFound(t *testing.T) {
	repo, tasks, _ := newTestServices(t)
	doc := createTestProject(t, repo)

	_, err := tasks.BatchUpdate(doc.Project.ID, []string{"a", "b"}, BatchUpdateInput{Priority: priorityPtr(PriorityHigh)})
	requireCode(t, err, CodeNotFound)
	assert.EqualError(t, err, "No tasks were found to update")
}

func TestTaskService_BatchUpdateTagModes(t *testing.T) {
	repo, tasks, tags := newTestServices(t)
	doc := createTestProject(t, repo)
	pid := doc.Project.ID
	a, err := tags.Create(pid, CreateTagInput{Name: "a"})
	require.NoError(t, err)
	b, err := tags.Create(pid, CreateTagInput{Name: "b"})
	require.NoError(t, err)
	task, err := tasks.Create(pid, CreateTaskInput{Title: "x", Tags: []string{a.ID}})
	require.NoError(t, err)

	res, err := tasks.BatchUpdate(pid, []string{task.ID}, BatchUpdateInput{Tags: []string{a.ID, b.ID}, SetTags: true, TagOperation: TagAdd})
	require.NoError(t, err)
	assert.Equal(t, []string{a.ID, b.ID}, res.UpdatedTasks[0].Tags)

	res, err = tasks.BatchUpdate(pid, []string{task.ID}, BatchUpdateInput{Tags: []string{a.ID}, SetTags: true, TagOperation: TagRemove})
	require.NoError(t, err)
	assert.Equal(t, []string{b.ID}, res.UpdatedTasks[0].Tags)

	res, err = tasks.BatchUpdate(pid, []string{task.ID}, BatchUpdateInput{Tags: []string{a.ID}, SetTags: true})
	require.NoError(t, err)
	assert.Equal(t, []string{a.ID}, res.UpdatedTasks[0].Tags)
}

func TestTaskService_BatchUpdateValidatesTagsBeforeApplying(t *testing.T) {
	repo, tasks, _ := newTestServices(t)
	doc := createTestProject(t, repo)
	t1, err := tasks.Create(doc.Project.ID, CreateTaskInput{Title: "one"})
	require.NoError(t, err)

	_, err = tasks.BatchUpdate(doc.Project.ID, []string{t1.ID}, BatchUpdateInput{
		Status:  statusPtr(StatusDone),
		Tags:    []string{"ghost"},
		SetTags: true,
	})
	requireCode(t, err, CodeValidation)

	got, err := tasks.Get(doc.Project.ID, t1.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusTodo, got.Status)
}

func TestTaskService_BatchUpdateCompletedAtPerTask(t *testing.T) {
	repo, tasks, _ := newTestServices(t)
	doc := createTestProject(t, repo)
	pid := doc.Project.ID
	t1, err := tasks.Create(pid, CreateTaskInput{Title: "one"})
	require.NoError(t, err)
	t2, err := tasks.Create(pid, CreateTaskInput{Title: "two"})
	require.NoError(t, err)

	freezeTime(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC))
	_, err = tasks.Update(pid, t2.ID, UpdateTaskInput{Status: statusPtr(StatusDone)})
	require.NoError(t, err)

	freezeTime(t, time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC))
	res, err := tasks.BatchUpdate(pid, []string{t1.ID, t2.ID}, BatchUpdateInput{Status: statusPtr(StatusDone)})
	require.NoError(t, err)

	require.Len(t, res.UpdatedTasks, 2)
	assert.Equal(t, "2026-02-02T00:00:00.000Z", *res.UpdatedTasks[0].CompletedAt)
	assert.Equal(t, "2026-02-01T00:00:00.000Z", *res.UpdatedTasks[1].CompletedAt)
}

func TestTaskService_BatchUpdateRequiresIDs(t *testing.T) {
	repo, tasks, _ := newTestServices(t)
	doc := createTestProject(t, repo)

	_, err := tasks.BatchUpdate(doc.Project.ID, nil, BatchUpdateInput{})
	requireCode(t, err, CodeValidation)
}
