package domain

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the calendar date format used for input and storage.
const DateLayout = "2006-01-02"

type Task struct {
	ID           string
	ProjectID    string
	Name         string
	Status       Status
	StartDate    time.Time
	EndDate      time.Time
	Progress     int // percent, 0-100
	CriticalPath bool
	OrderIndex   int

	// Pass-through fields; the timeline never reads them.
	Assignee    string
	Description string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks required fields and the progress range. A task whose end
// precedes its start is still accepted: the timeline draws it as a marker.
func (t *Task) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("task name is required")
	}
	if t.ProjectID == "" {
		return fmt.Errorf("task %q has no project", t.Name)
	}
	if t.StartDate.IsZero() || t.EndDate.IsZero() {
		return fmt.Errorf("task %q needs both a start and an end date", t.Name)
	}
	if t.Progress < 0 || t.Progress > 100 {
		return fmt.Errorf("task %q progress %d is outside 0-100", t.Name, t.Progress)
	}
	return nil
}

// SetProgress records progress and keeps Status consistent with it:
// reaching 100 completes the task, and moving off 100 reopens a completed
// task as active.
func (t *Task) SetProgress(pct int, now time.Time) error {
	if pct < 0 || pct > 100 {
		return fmt.Errorf("progress %d is outside 0-100", pct)
	}
	if t.Status == StatusCancelled {
		return fmt.Errorf("cannot update progress of cancelled task %q", t.Name)
	}
	t.Progress = pct
	switch {
	case pct == 100:
		t.Status = StatusCompleted
	case t.Status == StatusCompleted:
		t.Status = StatusActive
	case pct > 0 && t.Status == StatusPlanned:
		t.Status = StatusActive
	}
	t.UpdatedAt = now
	return nil
}
