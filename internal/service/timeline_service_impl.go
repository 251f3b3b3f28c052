package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/gantry/internal/domain"
	"github.com/alexanderramin/gantry/internal/repository"
	"github.com/alexanderramin/gantry/internal/timeline"
)

type timelineService struct {
	projects repository.ProjectRepo
	tasks    repository.TaskRepo
	observer UseCaseObserver
}

func NewTimelineService(projects repository.ProjectRepo, tasks repository.TaskRepo, observers ...UseCaseObserver) TimelineService {
	return &timelineService{projects: projects, tasks: tasks, observer: useCaseObserverOrNoop(observers)}
}

// Build loads the requested projects with their tasks and lays them out.
// Engine errors (timeline.ErrNoData and friends) come back wrapped.
func (s *timelineService) Build(ctx context.Context, req TimelineRequest) (layout *timeline.Layout, err error) {
	fields := map[string]any{"container_px": req.ContainerWidthPx}
	defer observe(ctx, s.observer, "build-timeline", time.Now(), &err, fields)

	var projects []*domain.Project
	projects, err = s.loadProjects(ctx, req.ProjectIDs)
	if err != nil {
		return nil, err
	}

	inputs := make([]timeline.ProjectInput, 0, len(projects))
	for _, p := range projects {
		var tasks []*domain.Task
		tasks, err = s.tasks.ListByProject(ctx, p.ID)
		if err != nil {
			return nil, fmt.Errorf("loading tasks for %s: %w", p.DisplayID(), err)
		}
		inputs = append(inputs, projectInput(p, tasks))
	}

	layout, err = timeline.Compute(timeline.Input{
		Projects:         inputs,
		ContainerWidthPx: req.ContainerWidthPx,
		Window:           req.Window,
		Options:          req.Options,
	})
	if err != nil {
		return nil, fmt.Errorf("building timeline: %w", err)
	}
	fields["projects"] = len(layout.Projects)
	fields["tasks"] = layout.TaskCount()
	fields["window"] = layout.Window.String()
	return layout, nil
}

// loadProjects keeps the caller's order when IDs are given.
func (s *timelineService) loadProjects(ctx context.Context, ids []string) ([]*domain.Project, error) {
	if len(ids) == 0 {
		projects, err := s.projects.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing projects: %w", err)
		}
		return projects, nil
	}
	seen := make(map[string]bool, len(ids))
	projects := make([]*domain.Project, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		p, err := s.projects.GetByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("loading project: %w", err)
		}
		projects = append(projects, p)
	}
	return projects, nil
}

func projectInput(p *domain.Project, tasks []*domain.Task) timeline.ProjectInput {
	in := timeline.ProjectInput{
		ID:       p.ID,
		Name:     p.Name,
		Status:   p.Status,
		Interval: timeline.NewInterval(p.StartDate, endOfDay(p.EndDate)),
		Tasks:    make([]timeline.TaskInput, 0, len(tasks)),
	}
	for _, t := range tasks {
		in.Tasks = append(in.Tasks, timeline.TaskInput{
			ID:           t.ID,
			Name:         t.Name,
			Status:       t.Status,
			Interval:     timeline.NewInterval(t.StartDate, endOfDay(t.EndDate)),
			Progress:     t.Progress,
			CriticalPath: t.CriticalPath,
		})
	}
	return in
}

// endOfDay makes a stored end date inclusive: a task ending on the 20th
// occupies the whole of the 20th, and a task starting on the 21st can share
// its lane.
func endOfDay(d time.Time) time.Time {
	return d.AddDate(0, 0, 1).Add(-time.Nanosecond)
}
