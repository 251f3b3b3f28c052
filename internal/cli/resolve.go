package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/gantry/internal/domain"
	"github.com/alexanderramin/gantry/internal/repository"
)

func resolveProject(ctx context.Context, app *App, ref string) (*domain.Project, error) {
	p, err := app.Projects.Resolve(ctx, ref)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("project not found: %q", ref)
	}
	return p, err
}

// resolveTask accepts a task ID or PROJECT/N, where N is the 1-based row
// number shown by `task list`.
func resolveTask(ctx context.Context, app *App, ref string) (*domain.Task, error) {
	projectRef, num, ok := strings.Cut(ref, "/")
	if !ok {
		t, err := app.Tasks.GetByID(ctx, ref)
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("task not found: %q (use PROJECT/N or a task ID)", ref)
		}
		return t, err
	}

	n, err := strconv.Atoi(num)
	if err != nil || n < 1 {
		return nil, fmt.Errorf("task number %q must be a positive integer", num)
	}
	p, err := resolveProject(ctx, app, projectRef)
	if err != nil {
		return nil, err
	}
	tasks, err := app.Tasks.ListByProject(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	if n > len(tasks) {
		return nil, fmt.Errorf("project %s has %d tasks, no task #%d", p.DisplayID(), len(tasks), n)
	}
	return tasks[n-1], nil
}

// resolveProjectIDs maps --project references to IDs, keeping their order.
func resolveProjectIDs(ctx context.Context, app *App, refs []string) ([]string, error) {
	ids := make([]string, 0, len(refs))
	for _, ref := range refs {
		p, err := resolveProject(ctx, app, ref)
		if err != nil {
			return nil, err
		}
		ids = append(ids, p.ID)
	}
	return ids, nil
}
