package importer

import (
	"fmt"
	"time"

	"github.com/alexanderramin/gantry/internal/domain"
)

// ValidateImportSchema checks the import schema for errors before conversion.
// Returns a slice of all validation errors found.
func ValidateImportSchema(schema *ImportSchema) []error {
	var errs []error
	errs = append(errs, validateProject(&schema.Project, len(schema.Tasks) > 0)...)
	errs = append(errs, validateTasks(schema.Tasks)...)
	return errs
}

// Warnings lists problems that do not block an import: status strings that
// map to no known status are imported as "unknown".
func Warnings(schema *ImportSchema) []string {
	var warns []string
	if s := schema.Project.Status; s != "" && !domain.ParseStatus(s).Known() {
		warns = append(warns, fmt.Sprintf("project.status: unrecognised value %q, imported as unknown", s))
	}
	for i, t := range schema.Tasks {
		if t.Status != "" && !domain.ParseStatus(t.Status).Known() {
			warns = append(warns, fmt.Sprintf("tasks[%d].status: unrecognised value %q, imported as unknown", i, t.Status))
		}
	}
	return warns
}

func validateProject(p *ProjectImport, hasTasks bool) []error {
	var errs []error

	if p.ShortID == "" {
		errs = append(errs, fmt.Errorf("project.short_id is required"))
	} else {
		probe := domain.Project{ShortID: toShortID(p.ShortID)}
		if err := probe.ValidateShortID(); err != nil {
			errs = append(errs, fmt.Errorf("project.short_id: %w", err))
		}
	}
	if p.Name == "" {
		errs = append(errs, fmt.Errorf("project.name is required"))
	}
	if p.Budget < 0 {
		errs = append(errs, fmt.Errorf("project.budget must not be negative"))
	}

	if !hasTasks {
		if p.StartDate == "" {
			errs = append(errs, fmt.Errorf("project.start_date is required when there are no tasks"))
		}
		if p.EndDate == "" {
			errs = append(errs, fmt.Errorf("project.end_date is required when there are no tasks"))
		}
	}
	start, startErrs := validateOptionalDate("project.start_date", p.StartDate)
	end, endErrs := validateOptionalDate("project.end_date", p.EndDate)
	errs = append(errs, startErrs...)
	errs = append(errs, endErrs...)
	if start != nil && end != nil && end.Before(*start) {
		errs = append(errs, fmt.Errorf("project.end_date %q must not be before start_date %q", p.EndDate, p.StartDate))
	}

	return errs
}

func validateTasks(tasks []TaskImport) []error {
	var errs []error
	refs := make(map[string]bool, len(tasks))

	for i, t := range tasks {
		prefix := fmt.Sprintf("tasks[%d]", i)

		if t.Ref == "" {
			errs = append(errs, fmt.Errorf("%s.ref is required", prefix))
		} else if refs[t.Ref] {
			errs = append(errs, fmt.Errorf("%s.ref: duplicate ref %q", prefix, t.Ref))
		} else {
			refs[t.Ref] = true
		}

		if t.Name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		}

		if t.StartDate == "" {
			errs = append(errs, fmt.Errorf("%s.start_date is required", prefix))
		} else if _, dateErrs := validateOptionalDate(prefix+".start_date", t.StartDate); len(dateErrs) > 0 {
			errs = append(errs, dateErrs...)
		}
		if t.EndDate == "" {
			errs = append(errs, fmt.Errorf("%s.end_date is required", prefix))
		} else if _, dateErrs := validateOptionalDate(prefix+".end_date", t.EndDate); len(dateErrs) > 0 {
			errs = append(errs, dateErrs...)
		}

		if t.Progress != nil && (*t.Progress < 0 || *t.Progress > 100) {
			errs = append(errs, fmt.Errorf("%s.progress: %d is outside 0-100", prefix, *t.Progress))
		}
	}

	return errs
}

// validateOptionalDate parses a YYYY-MM-DD value. Empty input is not an error.
func validateOptionalDate(field, value string) (*time.Time, []error) {
	if value == "" {
		return nil, nil
	}
	d, err := time.Parse(domain.DateLayout, value)
	if err != nil {
		return nil, []error{fmt.Errorf("%s: invalid date format %q (expected YYYY-MM-DD)", field, value)}
	}
	return &d, nil
}
