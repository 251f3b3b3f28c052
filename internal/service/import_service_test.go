package service

import (
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/gantry/internal/domain"
	"github.com/alexanderramin/gantry/internal/importer"
	"github.com/alexanderramin/gantry/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validImportSchema() *importer.ImportSchema {
	return &importer.ImportSchema{
		Project: importer.ProjectImport{
			ShortID:   "RBT01",
			Name:      "Rollback Test Project",
			StartDate: "2024-01-01",
			EndDate:   "2024-06-30",
		},
		Tasks: []importer.TaskImport{
			{Ref: "t1", Name: "Task 1", StartDate: "2024-01-01", EndDate: "2024-02-15", Progress: intPtr(50)},
			{Ref: "t2", Name: "Task 2", StartDate: "2024-02-01", EndDate: "2024-04-30", Status: "late"},
			{Ref: "t3", Name: "Task 3", StartDate: "2024-05-01", EndDate: "2024-06-30"},
		},
	}
}

func TestImportProject_FromFile(t *testing.T) {
	projects, tasks, uow, _ := setupRepos(t)
	obs := &recordingObserver{}
	svc := NewImportService(uow, obs)
	ctx := context.Background()

	result, err := svc.ImportProject(ctx, "../importer/testdata/riverside.yaml")
	require.NoError(t, err)
	assert.Equal(t, 3, result.TaskCount)
	assert.Empty(t, result.Warnings)

	stored, err := projects.GetByShortID(ctx, "TWR01")
	require.NoError(t, err)
	assert.Equal(t, "Riverside Tower", stored.Name)

	list, err := tasks.ListByProject(ctx, stored.ID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Excavation", list[0].Name)
	assert.True(t, list[1].CriticalPath)

	ev := obs.last()
	assert.Equal(t, "import-project", ev.Name)
	assert.Equal(t, 3, ev.Fields["task_count"])
}

func TestImportProject_MissingFile(t *testing.T) {
	_, _, uow, _ := setupRepos(t)
	_, err := NewImportService(uow).ImportProject(context.Background(), "testdata/absent.json")
	assert.ErrorContains(t, err, "loading import file")
}

func TestImportProject_ValidationErrorsListed(t *testing.T) {
	projects, _, uow, _ := setupRepos(t)
	svc := NewImportService(uow)
	ctx := context.Background()

	schema := validImportSchema()
	schema.Project.Name = ""
	schema.Tasks[1].Ref = "t1"

	_, err := svc.ImportProjectFromSchema(ctx, schema)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "import validation failed (2 errors)")
	assert.Contains(t, err.Error(), "project.name is required")
	assert.Contains(t, err.Error(), `duplicate ref "t1"`)

	list, err := projects.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestImportProject_UnknownStatusWarns(t *testing.T) {
	_, tasks, uow, _ := setupRepos(t)
	svc := NewImportService(uow)
	ctx := context.Background()

	schema := validImportSchema()
	schema.Tasks[2].Status = "waiting on council"

	result, err := svc.ImportProjectFromSchema(ctx, schema)
	require.NoError(t, err)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "tasks[2].status")

	list, err := tasks.ListByProject(ctx, result.Project.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDelayed, list[1].Status)
	assert.Equal(t, domain.StatusUnknown, list[2].Status)
}

func TestImportProject_RollbackOnTaskCreateFailure(t *testing.T) {
	projects, _, _, database := setupRepos(t)
	ctx := context.Background()
	injected := errors.New("injected task create failure")

	// Exec #1 is the project insert, #2 and #3 are the first two tasks.
	failUoW := &testutil.FailOnNthExecUoW{DB: database, FailOn: 3, Err: injected}
	svc := NewImportService(failUoW)

	_, err := svc.ImportProjectFromSchema(ctx, validImportSchema())
	require.ErrorIs(t, err, injected)
	assert.Contains(t, err.Error(), `creating task "Task 2"`)
	assert.Equal(t, 3, failUoW.Execs)

	list, err := projects.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list, "no projects should exist after rollback")
}

func TestImportProject_RollbackOnProjectCreateFailure(t *testing.T) {
	projects, _, _, database := setupRepos(t)
	ctx := context.Background()

	injected := errors.New("disk full")

	failUoW := &testutil.FailOnNthExecUoW{DB: database, FailOn: 1, Err: injected}
	_, err := NewImportService(failUoW).ImportProjectFromSchema(ctx, validImportSchema())
	require.ErrorIs(t, err, injected)
	assert.Contains(t, err.Error(), "creating project")
	assert.Equal(t, 1, failUoW.Execs)

	list, err := projects.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestImportProject_DuplicateShortID(t *testing.T) {
	_, _, uow, _ := setupRepos(t)
	svc := NewImportService(uow)
	ctx := context.Background()

	_, err := svc.ImportProjectFromSchema(ctx, validImportSchema())
	require.NoError(t, err)
	_, err = svc.ImportProjectFromSchema(ctx, validImportSchema())
	assert.ErrorContains(t, err, "creating project")
}
