package service

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/gantry/internal/domain"
	"github.com/alexanderramin/gantry/internal/repository"
	"github.com/alexanderramin/gantry/internal/testutil"
	"github.com/alexanderramin/gantry/internal/timeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedQuarter(t *testing.T, projects repository.ProjectRepo, tasks repository.TaskRepo) *domain.Project {
	t.Helper()
	ctx := context.Background()

	proj := testutil.NewTestProject("Quarter",
		testutil.WithProjectDates(testutil.Date(2024, time.January, 1), testutil.Date(2024, time.March, 31)))
	require.NoError(t, projects.Create(ctx, proj))

	fixtures := []*domain.Task{
		testutil.NewTestTask(proj.ID, "A", testutil.WithOrderIndex(0),
			testutil.WithTaskDates(testutil.Date(2024, time.January, 1), testutil.Date(2024, time.January, 31))),
		testutil.NewTestTask(proj.ID, "B", testutil.WithOrderIndex(1),
			testutil.WithTaskDates(testutil.Date(2024, time.January, 15), testutil.Date(2024, time.February, 15))),
		testutil.NewTestTask(proj.ID, "C", testutil.WithOrderIndex(2), testutil.WithCriticalPath(), testutil.WithProgress(30),
			testutil.WithTaskDates(testutil.Date(2024, time.February, 1), testutil.Date(2024, time.February, 28))),
	}
	for _, task := range fixtures {
		require.NoError(t, tasks.Create(ctx, task))
	}
	return proj
}

func TestTimelineService_Build(t *testing.T) {
	projects, tasks, _, _ := setupRepos(t)
	seedQuarter(t, projects, tasks)
	obs := &recordingObserver{}
	svc := NewTimelineService(projects, tasks, obs)

	layout, err := svc.Build(context.Background(), TimelineRequest{
		ContainerWidthPx: 600,
		Options:          timeline.DefaultOptions(),
	})
	require.NoError(t, err)

	// Q1 plus one month of padding.
	assert.Equal(t, "2024-01-01..2024-04-30", layout.Window.String())
	assert.Equal(t, 4, layout.Grid.Len())
	assert.InDelta(t, 150.0, layout.Grid.ColumnWidth, 1e-9)

	require.Len(t, layout.Projects, 1)
	row := layout.Projects[0]
	assert.Equal(t, 2, row.LaneCount)
	require.Len(t, row.Tasks, 3)

	lanes := map[string]int{}
	for _, tb := range row.Tasks {
		lanes[tb.Name] = tb.Bar.Lane
	}
	assert.Equal(t, map[string]int{"A": 0, "B": 1, "C": 0}, lanes)

	c := row.Tasks[2]
	assert.Equal(t, "C", c.Name)
	assert.True(t, c.CriticalPath)
	assert.Equal(t, 30, c.Progress)

	ev := obs.last()
	assert.Equal(t, "build-timeline", ev.Name)
	assert.Equal(t, 3, ev.Fields["tasks"])
}

func TestTimelineService_InclusiveEndDates(t *testing.T) {
	projects, tasks := repository.NewMemoryRepos()
	ctx := context.Background()

	proj := testutil.NewTestProject("Touching")
	require.NoError(t, projects.Create(ctx, proj))
	// B starts the day A ends, so both occupy Jan 10 and need two lanes.
	require.NoError(t, tasks.Create(ctx, testutil.NewTestTask(proj.ID, "A", testutil.WithOrderIndex(0),
		testutil.WithTaskDates(testutil.Date(2024, time.January, 1), testutil.Date(2024, time.January, 10)))))
	require.NoError(t, tasks.Create(ctx, testutil.NewTestTask(proj.ID, "B", testutil.WithOrderIndex(1),
		testutil.WithTaskDates(testutil.Date(2024, time.January, 10), testutil.Date(2024, time.January, 20)))))
	// C starts well after A ends and drops back into lane 0.
	require.NoError(t, tasks.Create(ctx, testutil.NewTestTask(proj.ID, "C", testutil.WithOrderIndex(2),
		testutil.WithTaskDates(testutil.Date(2024, time.January, 21), testutil.Date(2024, time.January, 25)))))

	layout, err := NewTimelineService(projects, tasks).Build(ctx, TimelineRequest{ContainerWidthPx: 800})
	require.NoError(t, err)

	row := layout.Projects[0]
	assert.Equal(t, 0, row.Tasks[0].Bar.Lane)
	assert.Equal(t, 1, row.Tasks[1].Bar.Lane)
	assert.Equal(t, 0, row.Tasks[2].Bar.Lane)
	assert.Equal(t, 2, row.LaneCount)
}

func TestTimelineService_ProjectFilterKeepsOrder(t *testing.T) {
	projects, tasks, _, _ := setupRepos(t)
	ctx := context.Background()

	first := testutil.NewTestProject("First")
	second := testutil.NewTestProject("Second")
	third := testutil.NewTestProject("Third")
	for _, p := range []*domain.Project{first, second, third} {
		require.NoError(t, projects.Create(ctx, p))
	}

	layout, err := NewTimelineService(projects, tasks).Build(ctx, TimelineRequest{
		ProjectIDs:       []string{third.ID, first.ID, third.ID},
		ContainerWidthPx: 400,
	})
	require.NoError(t, err)
	require.Len(t, layout.Projects, 2)
	assert.Equal(t, "Third", layout.Projects[0].Name)
	assert.Equal(t, "First", layout.Projects[1].Name)

	_, err = NewTimelineService(projects, tasks).Build(ctx, TimelineRequest{ProjectIDs: []string{"missing"}})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestTimelineService_ExplicitWindow(t *testing.T) {
	projects, tasks, _, _ := setupRepos(t)
	seedQuarter(t, projects, tasks)

	window := timeline.ViewWindow{Start: testutil.Date(2024, time.February, 1), End: testutil.Date(2024, time.February, 29)}
	layout, err := NewTimelineService(projects, tasks).Build(context.Background(), TimelineRequest{
		Window:           &window,
		ContainerWidthPx: 100,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, layout.Grid.Len())
	assert.InDelta(t, 100.0, layout.Grid.ColumnWidth, 1e-9)

	for _, tb := range layout.Projects[0].Tasks {
		assert.GreaterOrEqual(t, tb.Bar.LeftPx, 0.0)
		assert.LessOrEqual(t, tb.Bar.LeftPx, layout.TotalWidthPx())
	}
}

func TestTimelineService_NoData(t *testing.T) {
	projects, tasks, _, _ := setupRepos(t)
	obs := &recordingObserver{}

	_, err := NewTimelineService(projects, tasks, obs).Build(context.Background(), TimelineRequest{ContainerWidthPx: 800})
	assert.ErrorIs(t, err, timeline.ErrNoData)
	assert.False(t, obs.last().Success)
}

func TestTimelineService_InvertedWindow(t *testing.T) {
	projects, tasks, _, _ := setupRepos(t)
	seedQuarter(t, projects, tasks)

	window := timeline.ViewWindow{Start: testutil.Date(2024, time.June, 1), End: testutil.Date(2024, time.January, 1)}
	_, err := NewTimelineService(projects, tasks).Build(context.Background(), TimelineRequest{Window: &window})
	assert.ErrorIs(t, err, timeline.ErrInvalidWindow)
}
