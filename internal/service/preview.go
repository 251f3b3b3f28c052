package service

import (
	"context"

	"github.com/alexanderramin/gantry/internal/importer"
	"github.com/alexanderramin/gantry/internal/repository"
)

// NewPreviewTimeline validates an import schema and loads it into in-memory
// repos, returning a TimelineService over them. Nothing touches the
// database, which lets `timeline --file` render a plan before importing it.
func NewPreviewTimeline(ctx context.Context, schema *importer.ImportSchema, observers ...UseCaseObserver) (TimelineService, *ImportResult, error) {
	converted, err := convertSchema(schema)
	if err != nil {
		return nil, nil, err
	}
	projects, tasks := repository.NewMemoryRepos()
	if err := persistConverted(ctx, projects, tasks, converted); err != nil {
		return nil, nil, err
	}
	result := &ImportResult{
		Project:   converted.Project,
		TaskCount: len(converted.Tasks),
		Warnings:  importer.Warnings(schema),
	}
	return NewTimelineService(projects, tasks, observers...), result, nil
}
