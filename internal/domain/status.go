package domain

import "strings"

// Status is the schedule state of a project or task. The set is closed:
// anything that does not map onto a known value is StatusUnknown.
type Status string

const (
	StatusUnknown   Status = "unknown"
	StatusPlanned   Status = "planned"
	StatusActive    Status = "active"
	StatusOnHold    Status = "on_hold"
	StatusDelayed   Status = "delayed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// statusAliases maps normalized spellings onto the canonical statuses.
var statusAliases = map[string]Status{
	"planned":     StatusPlanned,
	"not_started": StatusPlanned,
	"todo":        StatusPlanned,
	"pending":     StatusPlanned,
	"scheduled":   StatusPlanned,

	"active":      StatusActive,
	"in_progress": StatusActive,
	"ongoing":     StatusActive,
	"started":     StatusActive,

	"on_hold": StatusOnHold,
	"paused":  StatusOnHold,
	"hold":    StatusOnHold,

	"delayed": StatusDelayed,
	"late":    StatusDelayed,
	"behind":  StatusDelayed,
	"overdue": StatusDelayed,

	"completed": StatusCompleted,
	"complete":  StatusCompleted,
	"done":      StatusCompleted,
	"finished":  StatusCompleted,

	"cancelled": StatusCancelled,
	"canceled":  StatusCancelled,
}

// ParseStatus maps free-form input such as "In Progress" or "on-hold" onto
// a Status. Matching is case-insensitive and treats spaces and hyphens as
// underscores.
func ParseStatus(s string) Status {
	if st, ok := statusAliases[normalizeStatus(s)]; ok {
		return st
	}
	return StatusUnknown
}

func normalizeStatus(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer(" ", "_", "-", "_").Replace(s)
	for strings.Contains(s, "__") {
		s = strings.ReplaceAll(s, "__", "_")
	}
	return s
}

// AllStatuses lists the known statuses in lifecycle order.
func AllStatuses() []Status {
	return []Status{
		StatusPlanned,
		StatusActive,
		StatusOnHold,
		StatusDelayed,
		StatusCompleted,
		StatusCancelled,
	}
}

// Known reports whether s is one of the canonical statuses.
func (s Status) Known() bool {
	for _, k := range AllStatuses() {
		if s == k {
			return true
		}
	}
	return false
}

// Terminal reports whether no further schedule changes are expected.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

func (s Status) String() string {
	if s == "" {
		return string(StatusUnknown)
	}
	return string(s)
}
