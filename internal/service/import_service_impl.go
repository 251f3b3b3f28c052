package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/gantry/internal/db"
	"github.com/alexanderramin/gantry/internal/importer"
	"github.com/alexanderramin/gantry/internal/repository"
)

type importService struct {
	uow      db.UnitOfWork
	observer UseCaseObserver
}

// NewImportService persists imports through tx-scoped SQLite repos so a
// failed import leaves nothing behind.
func NewImportService(uow db.UnitOfWork, observers ...UseCaseObserver) ImportService {
	return &importService{uow: uow, observer: useCaseObserverOrNoop(observers)}
}

func (s *importService) ImportProject(ctx context.Context, filePath string) (*ImportResult, error) {
	schema, err := importer.LoadImportSchema(filePath)
	if err != nil {
		return nil, fmt.Errorf("loading import file: %w", err)
	}
	return s.ImportProjectFromSchema(ctx, schema)
}

func (s *importService) ImportProjectFromSchema(ctx context.Context, schema *importer.ImportSchema) (result *ImportResult, err error) {
	fields := map[string]any{"project": schema.Project.Name}
	defer observe(ctx, s.observer, "import-project", time.Now(), &err, fields)

	var converted *importer.Converted
	converted, err = convertSchema(schema)
	if err != nil {
		return nil, err
	}
	fields["task_count"] = len(converted.Tasks)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txProjects := repository.NewSQLiteProjectRepo(tx)
		txTasks := repository.NewSQLiteTaskRepo(tx)
		return persistConverted(ctx, txProjects, txTasks, converted)
	})
	if err != nil {
		return nil, err
	}

	return &ImportResult{
		Project:   converted.Project,
		TaskCount: len(converted.Tasks),
		Warnings:  importer.Warnings(schema),
	}, nil
}

func convertSchema(schema *importer.ImportSchema) (*importer.Converted, error) {
	if errs := importer.ValidateImportSchema(schema); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}
	converted, err := importer.Convert(schema)
	if err != nil {
		return nil, fmt.Errorf("converting import schema: %w", err)
	}
	return converted, nil
}

func persistConverted(ctx context.Context, projects repository.ProjectRepo, tasks repository.TaskRepo, c *importer.Converted) error {
	if err := projects.Create(ctx, c.Project); err != nil {
		return fmt.Errorf("creating project: %w", err)
	}
	for _, t := range c.Tasks {
		if err := tasks.Create(ctx, t); err != nil {
			return fmt.Errorf("creating task %q: %w", t.Name, err)
		}
	}
	return nil
}

func formatValidationErrors(errs []error) error {
	var b strings.Builder
	fmt.Fprintf(&b, "import validation failed (%d errors):", len(errs))
	for _, e := range errs {
		b.WriteString("\n  - ")
		b.WriteString(e.Error())
	}
	return fmt.Errorf("%s", b.String())
}
