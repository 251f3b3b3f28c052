package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/gantry/internal/domain"
	"github.com/alexanderramin/gantry/internal/repository"
	"github.com/google/uuid"
)

type taskService struct {
	tasks    repository.TaskRepo
	projects repository.ProjectRepo
	observer UseCaseObserver
}

func NewTaskService(tasks repository.TaskRepo, projects repository.ProjectRepo, observers ...UseCaseObserver) TaskService {
	return &taskService{tasks: tasks, projects: projects, observer: useCaseObserverOrNoop(observers)}
}

// Create appends the task after the project's existing tasks unless an
// explicit OrderIndex is set.
func (s *taskService) Create(ctx context.Context, t *domain.Task) (err error) {
	defer observe(ctx, s.observer, "create-task", time.Now(), &err, map[string]any{"project_id": t.ProjectID})

	if _, err = s.projects.GetByID(ctx, t.ProjectID); err != nil {
		return fmt.Errorf("adding task %q: %w", t.Name, err)
	}
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	if t.Status == "" {
		t.Status = domain.StatusPlanned
	}
	if err = t.Validate(); err != nil {
		return err
	}
	if t.OrderIndex == 0 {
		var existing []*domain.Task
		existing, err = s.tasks.ListByProject(ctx, t.ProjectID)
		if err != nil {
			return err
		}
		for _, e := range existing {
			if e.OrderIndex >= t.OrderIndex {
				t.OrderIndex = e.OrderIndex + 1
			}
		}
	}
	now := time.Now().UTC().Truncate(time.Second)
	t.CreatedAt = now
	t.UpdatedAt = now
	return s.tasks.Create(ctx, t)
}

func (s *taskService) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	return s.tasks.GetByID(ctx, id)
}

func (s *taskService) ListByProject(ctx context.Context, projectID string) ([]*domain.Task, error) {
	return s.tasks.ListByProject(ctx, projectID)
}

func (s *taskService) Update(ctx context.Context, t *domain.Task) error {
	if err := t.Validate(); err != nil {
		return err
	}
	t.UpdatedAt = time.Now().UTC().Truncate(time.Second)
	return s.tasks.Update(ctx, t)
}

func (s *taskService) SetProgress(ctx context.Context, id string, pct int) (task *domain.Task, err error) {
	defer observe(ctx, s.observer, "set-progress", time.Now(), &err, map[string]any{"task_id": id, "progress": pct})

	task, err = s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err = task.SetProgress(pct, time.Now().UTC().Truncate(time.Second)); err != nil {
		return nil, err
	}
	if err = s.tasks.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *taskService) Delete(ctx context.Context, id string) error {
	return s.tasks.Delete(ctx, id)
}
