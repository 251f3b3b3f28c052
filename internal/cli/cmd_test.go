package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/gantry/internal/config"
	"github.com/alexanderramin/gantry/internal/domain"
	"github.com/alexanderramin/gantry/internal/repository"
	"github.com/alexanderramin/gantry/internal/service"
	"github.com/alexanderramin/gantry/internal/testutil"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, time.February, 10, 9, 0, 0, 0, time.UTC)

// testApp wires a full App backed by an in-memory DB for CLI integration tests.
func testApp(t *testing.T) *App {
	t.Helper()
	database := testutil.NewTestDB(t)

	projRepo := repository.NewSQLiteProjectRepo(database)
	taskRepo := repository.NewSQLiteTaskRepo(database)

	return &App{
		Projects:      service.NewProjectService(projRepo),
		Tasks:         service.NewTaskService(taskRepo, projRepo),
		Import:        service.NewImportService(testutil.NewTestUoW(database)),
		Timeline:      service.NewTimelineService(projRepo, taskRepo),
		Config:        config.DefaultConfig(),
		IsInteractive: func() bool { return false },
		TerminalWidth: func() int { return 0 },
		Now:           func() time.Time { return fixedNow },
	}
}

// seedProject creates a Q1 2024 project with two overlapping tasks.
func seedProject(t *testing.T, app *App) *domain.Project {
	t.Helper()
	ctx := context.Background()

	proj := testutil.NewTestProject("Depot", testutil.WithShortID("DEP01"))
	require.NoError(t, app.Projects.Create(ctx, proj))

	dig := testutil.NewTestTask(proj.ID, "Dig",
		testutil.WithTaskDates(testutil.Date(2024, time.January, 8), testutil.Date(2024, time.January, 31)),
		testutil.WithProgress(50), testutil.WithTaskStatus(domain.StatusActive))
	frame := testutil.NewTestTask(proj.ID, "Frame",
		testutil.WithTaskDates(testutil.Date(2024, time.January, 20), testutil.Date(2024, time.February, 28)))
	require.NoError(t, app.Tasks.Create(ctx, dig))
	require.NoError(t, app.Tasks.Create(ctx, frame))

	return proj
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func writeImportFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

const riversideJSON = `{
  "project": {"short_id": "RIV02", "name": "Riverside Annex", "status": "planned",
              "start_date": "2024-02-01", "end_date": "2024-05-31"},
  "tasks": [
    {"ref": "a", "name": "Survey", "start_date": "2024-02-01", "end_date": "2024-02-20", "progress": 10},
    {"ref": "b", "name": "Permits", "status": "on hold", "start_date": "2024-02-15", "end_date": "2024-03-15"}
  ]
}`

// --- root ---

func TestRootCmd_NoArgs_ShowsHelp(t *testing.T) {
	app := testApp(t)

	output, err := executeCmd(t, app)
	require.NoError(t, err)
	assert.Contains(t, output, "gantry")
	assert.Contains(t, output, "timeline")
}

// --- project ---

func TestProjectAdd_WithFlags(t *testing.T) {
	app := testApp(t)

	output, err := executeCmd(t, app, "project", "add",
		"--id", "twr01", "--name", "Tower", "--start", "2024-03-01", "--end", "2024-09-30",
		"--status", "in progress", "--location", "Pier 4")
	require.NoError(t, err)
	assert.Contains(t, output, "Created project Tower [TWR01]")

	p, err := app.Projects.Resolve(context.Background(), "TWR01")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusActive, p.Status)
	assert.Equal(t, "Pier 4", p.Location)
	assert.Equal(t, testutil.Date(2024, time.September, 30), p.EndDate)
}

func TestProjectAdd_RejectsBadShortID(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "project", "add",
		"--id", "T1", "--name", "Tower", "--start", "2024-03-01", "--end", "2024-09-30")
	assert.Error(t, err)
}

func TestProjectAdd_RejectsBadDate(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "project", "add", "--name", "Tower", "--start", "03/01/2024")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "YYYY-MM-DD")
}

func TestProjectList(t *testing.T) {
	app := testApp(t)

	output, err := executeCmd(t, app, "project", "list")
	require.NoError(t, err)
	assert.Contains(t, output, "No projects yet")

	seedProject(t, app)
	output, err = executeCmd(t, app, "project", "list")
	require.NoError(t, err)
	assert.Contains(t, output, "Depot")
	assert.Contains(t, output, "DEP01")
}

func TestProjectInspect_ShowsTasksAndLanes(t *testing.T) {
	app := testApp(t)
	seedProject(t, app)

	output, err := executeCmd(t, app, "project", "inspect", "dep01")
	require.NoError(t, err)
	assert.Contains(t, output, "Dig")
	assert.Contains(t, output, "Frame")
	// Dig and Frame overlap, so Frame is stacked into the second lane.
	assert.Contains(t, ansi.Strip(output), "L2 ")
}

func TestProjectInspect_NotFound(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "project", "inspect", "NOPE99")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "project not found")
}

func TestProjectUpdate_OnlyChangedFields(t *testing.T) {
	app := testApp(t)
	seedProject(t, app)

	_, err := executeCmd(t, app, "project", "update", "DEP01", "--status", "delayed", "--end", "2024-04-30")
	require.NoError(t, err)

	p, err := app.Projects.Resolve(context.Background(), "DEP01")
	require.NoError(t, err)
	assert.Equal(t, "Depot", p.Name)
	assert.Equal(t, domain.StatusDelayed, p.Status)
	assert.Equal(t, testutil.Date(2024, time.April, 30), p.EndDate)
}

func TestProjectRemove_NeedsYesWhenNotInteractive(t *testing.T) {
	app := testApp(t)
	seedProject(t, app)

	_, err := executeCmd(t, app, "project", "remove", "DEP01")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--yes")

	output, err := executeCmd(t, app, "project", "remove", "DEP01", "--yes")
	require.NoError(t, err)
	assert.Contains(t, output, "Removed project Depot")

	projects, err := app.Projects.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, projects)
}

func TestProjectImport(t *testing.T) {
	app := testApp(t)
	path := writeImportFile(t, "riverside.json", riversideJSON)

	output, err := executeCmd(t, app, "project", "import", path)
	require.NoError(t, err)
	assert.Contains(t, output, "Riverside Annex")

	p, err := app.Projects.Resolve(context.Background(), "RIV02")
	require.NoError(t, err)
	tasks, err := app.Tasks.ListByProject(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Len(t, tasks, 2)
}

func TestProjectImport_DryRunSavesNothing(t *testing.T) {
	app := testApp(t)
	path := writeImportFile(t, "riverside.json", riversideJSON)

	output, err := executeCmd(t, app, "project", "import", path, "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, output, "Riverside Annex")
	assert.Contains(t, output, "dry run")

	projects, err := app.Projects.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, projects)
}

// --- task ---

func TestTaskAdd_AndList(t *testing.T) {
	app := testApp(t)
	seedProject(t, app)

	output, err := executeCmd(t, app, "task", "add", "DEP01",
		"--name", "Roof", "--start", "2024-02-01", "--end", "2024-03-10", "--critical")
	require.NoError(t, err)
	assert.Contains(t, output, `Added task "Roof" to DEP01`)

	output, err = executeCmd(t, app, "task", "list", "DEP01")
	require.NoError(t, err)
	assert.Contains(t, output, "Dig")
	assert.Contains(t, output, "Roof")
}

func TestTaskAdd_RequiresDates(t *testing.T) {
	app := testApp(t)
	seedProject(t, app)

	_, err := executeCmd(t, app, "task", "add", "DEP01", "--name", "Roof")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "start")
}

func TestTaskProgress_ByRowNumber(t *testing.T) {
	app := testApp(t)
	proj := seedProject(t, app)

	output, err := executeCmd(t, app, "task", "progress", "DEP01/2", "45%")
	require.NoError(t, err)
	assert.Contains(t, output, "Frame")

	tasks, err := app.Tasks.ListByProject(context.Background(), proj.ID)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, 45, tasks[1].Progress)
	assert.Equal(t, domain.StatusActive, tasks[1].Status)
}

func TestTaskProgress_Errors(t *testing.T) {
	app := testApp(t)
	seedProject(t, app)

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"row out of range", []string{"DEP01/3", "10"}, "no task #3"},
		{"row not a number", []string{"DEP01/x", "10"}, "positive integer"},
		{"unknown task id", []string{"nope", "10"}, "task not found"},
		{"bad percent", []string{"DEP01/1", "120"}, "0 to 100"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := executeCmd(t, app, append([]string{"task", "progress"}, tt.args...)...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestTaskRemove(t *testing.T) {
	app := testApp(t)
	proj := seedProject(t, app)

	_, err := executeCmd(t, app, "task", "remove", "DEP01/1")
	require.NoError(t, err)

	tasks, err := app.Tasks.ListByProject(context.Background(), proj.ID)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Frame", tasks[0].Name)
}

// --- timeline ---

func TestTimeline_EmptyState(t *testing.T) {
	app := testApp(t)

	output, err := executeCmd(t, app, "timeline")
	require.NoError(t, err)
	assert.Contains(t, output, "No projects with dates")
}

func TestTimeline_RendersChart(t *testing.T) {
	app := testApp(t)
	seedProject(t, app)

	output, err := executeCmd(t, app, "timeline", "--width", "120", "--legend")
	require.NoError(t, err)
	plain := ansi.Strip(output)
	assert.Contains(t, plain, "Jan 2024")
	assert.Contains(t, plain, "Depot")
	assert.Contains(t, plain, "Dig")
	assert.Contains(t, plain, "▲ today")
	assert.Contains(t, plain, "Completed")

	for _, line := range strings.Split(strings.TrimRight(plain, "\n"), "\n") {
		assert.LessOrEqual(t, len([]rune(line)), 120, "line too wide: %q", line)
	}
}

func TestTimeline_ExplicitWindow(t *testing.T) {
	app := testApp(t)
	seedProject(t, app)

	output, err := executeCmd(t, app, "timeline", "--from", "2024-02", "--to", "2024-03", "--width", "100")
	require.NoError(t, err)
	plain := ansi.Strip(output)
	assert.Contains(t, plain, "Feb 2024")
	assert.NotContains(t, plain, "Jan 2024")
}

func TestTimeline_FromAfterTo(t *testing.T) {
	app := testApp(t)
	seedProject(t, app)

	_, err := executeCmd(t, app, "timeline", "--from", "2024-05", "--to", "2024-02")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--from 2024-05 is after --to 2024-02")
}

func TestTimeline_UnknownProject(t *testing.T) {
	app := testApp(t)
	seedProject(t, app)

	_, err := executeCmd(t, app, "timeline", "--project", "NOPE01")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "project not found")
}

func TestTimeline_FilePreview(t *testing.T) {
	app := testApp(t)
	path := writeImportFile(t, "riverside.json", riversideJSON)

	output, err := executeCmd(t, app, "timeline", "--file", path, "--width", "120")
	require.NoError(t, err)
	plain := ansi.Strip(output)
	assert.Contains(t, plain, "Riverside Annex")
	assert.Contains(t, plain, "Survey")

	projects, err := app.Projects.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, projects, "preview must not touch the database")
}

// --- export ---

func TestExport_SVGToStdout(t *testing.T) {
	app := testApp(t)
	seedProject(t, app)

	output, err := executeCmd(t, app, "export", "--title", "Depot & Co")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(output, "<?xml"))
	assert.Contains(t, output, "Depot &amp; Co")
	assert.Contains(t, output, `class="task"`)
}

func TestExport_PDFFile(t *testing.T) {
	app := testApp(t)
	seedProject(t, app)
	out := filepath.Join(t.TempDir(), "plan.pdf")

	output, err := executeCmd(t, app, "export", "--out", out)
	require.NoError(t, err)
	assert.Contains(t, output, "Wrote "+out)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func TestExport_SVGFile(t *testing.T) {
	app := testApp(t)
	seedProject(t, app)
	out := filepath.Join(t.TempDir(), "plan.svg")

	_, err := executeCmd(t, app, "export", "--out", out)
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<svg")
}

func TestExport_Errors(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "export", "--format", "png")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown export format")

	_, err = executeCmd(t, app, "export", "--format", "pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--out")

	_, err = executeCmd(t, app, "export")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nothing to export")
}

func TestExportFormat(t *testing.T) {
	tests := []struct {
		format, out, want string
	}{
		{"", "", "svg"},
		{"", "plan.PDF", "pdf"},
		{"", "plan.svg", "svg"},
		{"SVG", "plan.pdf", "svg"},
	}
	for _, tt := range tests {
		got, err := exportFormat(tt.format, tt.out)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "format=%q out=%q", tt.format, tt.out)
	}
}

// --- view / config ---

func TestView_RequiresTerminal(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "view")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "interactive terminal")
}

func TestConfig_PrintsYAML(t *testing.T) {
	app := testApp(t)

	output, err := executeCmd(t, app, "config")
	require.NoError(t, err)
	assert.Contains(t, output, "db_path:")
	assert.Contains(t, output, "min_column_width_px: 60")
	assert.Contains(t, output, "cell_width_px: 8")
}
