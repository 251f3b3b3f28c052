package service

import (
	"context"

	"github.com/alexanderramin/gantry/internal/domain"
	"github.com/alexanderramin/gantry/internal/importer"
	"github.com/alexanderramin/gantry/internal/timeline"
)

type ProjectService interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	// Resolve accepts a short ID (case-insensitive) or a full project ID.
	Resolve(ctx context.Context, ref string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id string) error
}

type TaskService interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.Task, error)
	Update(ctx context.Context, t *domain.Task) error
	SetProgress(ctx context.Context, id string, pct int) (*domain.Task, error)
	Delete(ctx context.Context, id string) error
}

// ImportResult holds the outcome of a project import.
type ImportResult struct {
	Project   *domain.Project
	TaskCount int
	Warnings  []string
}

type ImportService interface {
	ImportProject(ctx context.Context, filePath string) (*ImportResult, error)
	ImportProjectFromSchema(ctx context.Context, schema *importer.ImportSchema) (*ImportResult, error)
}

// TimelineRequest selects what to lay out. Empty ProjectIDs means every
// project; a nil Window is derived from the data.
type TimelineRequest struct {
	ProjectIDs       []string
	Window           *timeline.ViewWindow
	ContainerWidthPx float64
	Options          timeline.Options
}

type TimelineService interface {
	Build(ctx context.Context, req TimelineRequest) (*timeline.Layout, error)
}
