package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/gantry/internal/domain"
	"github.com/google/uuid"
)

// Converted holds domain objects produced from an import file.
type Converted struct {
	Project *domain.Project
	Tasks   []*domain.Task
}

// Convert transforms a validated ImportSchema into domain objects ready for persistence.
// Call ValidateImportSchema first; Convert assumes the schema is valid.
func Convert(schema *ImportSchema) (*Converted, error) {
	now := time.Now().UTC().Truncate(time.Second)

	project := &domain.Project{
		ID:        uuid.New().String(),
		ShortID:   toShortID(schema.Project.ShortID),
		Name:      strings.TrimSpace(schema.Project.Name),
		Status:    parseStatusOr(schema.Project.Status, domain.StatusPlanned),
		Location:  schema.Project.Location,
		Budget:    schema.Project.Budget,
		CreatedAt: now,
		UpdatedAt: now,
	}

	tasks := make([]*domain.Task, 0, len(schema.Tasks))
	for i, t := range schema.Tasks {
		start, err := time.Parse(domain.DateLayout, t.StartDate)
		if err != nil {
			return nil, fmt.Errorf("parsing tasks[%d].start_date: %w", i, err)
		}
		end, err := time.Parse(domain.DateLayout, t.EndDate)
		if err != nil {
			return nil, fmt.Errorf("parsing tasks[%d].end_date: %w", i, err)
		}

		task := &domain.Task{
			ID:           uuid.New().String(),
			ProjectID:    project.ID,
			Name:         strings.TrimSpace(t.Name),
			Status:       parseStatusOr(t.Status, domain.StatusPlanned),
			StartDate:    start,
			EndDate:      end,
			Progress:     domain.IntFromPtrWithDefault(0, t.Progress),
			CriticalPath: t.CriticalPath,
			OrderIndex:   i,
			Assignee:     t.Assignee,
			Description:  t.Description,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		tasks = append(tasks, task)
	}

	if err := setProjectDates(project, schema.Project, tasks); err != nil {
		return nil, err
	}

	return &Converted{Project: project, Tasks: tasks}, nil
}

// setProjectDates uses explicit dates where given and otherwise the span of
// the tasks. Inverted task intervals count by both endpoints.
func setProjectDates(p *domain.Project, in ProjectImport, tasks []*domain.Task) error {
	var lo, hi time.Time
	for _, t := range tasks {
		for _, d := range []time.Time{t.StartDate, t.EndDate} {
			if lo.IsZero() || d.Before(lo) {
				lo = d
			}
			if hi.IsZero() || d.After(hi) {
				hi = d
			}
		}
	}

	if in.StartDate != "" {
		d, err := time.Parse(domain.DateLayout, in.StartDate)
		if err != nil {
			return fmt.Errorf("parsing project.start_date: %w", err)
		}
		lo = d
	}
	if in.EndDate != "" {
		d, err := time.Parse(domain.DateLayout, in.EndDate)
		if err != nil {
			return fmt.Errorf("parsing project.end_date: %w", err)
		}
		hi = d
	}
	if lo.IsZero() || hi.IsZero() {
		return fmt.Errorf("project %q has no dates and no tasks to derive them from", p.Name)
	}
	if hi.Before(lo) {
		hi = lo
	}
	p.StartDate, p.EndDate = lo, hi
	return nil
}

func toShortID(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

func parseStatusOr(s string, fallback domain.Status) domain.Status {
	return domain.ParseStatus(domain.CoalesceStr(strings.TrimSpace(s), string(fallback)))
}
