package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var shortIDPattern = regexp.MustCompile(`^[A-Z]{3,6}[0-9]{2,4}$`)

type Project struct {
	ID        string
	ShortID   string
	Name      string
	Status    Status
	StartDate time.Time
	EndDate   time.Time

	// Pass-through fields; the timeline never reads them.
	Location string
	Budget   float64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidateShortID checks that ShortID is non-empty and matches the required
// format: 3-6 uppercase letters followed by 2-4 digits (e.g. TWR01, BRDG0234).
func (p *Project) ValidateShortID() error {
	if p.ShortID == "" {
		return fmt.Errorf("short ID is required (use --id flag)")
	}
	if !shortIDPattern.MatchString(p.ShortID) {
		return fmt.Errorf("short ID %q must be 3-6 uppercase letters followed by 2-4 digits (e.g. TWR01)", p.ShortID)
	}
	return nil
}

// Validate checks the fields the timeline depends on.
func (p *Project) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("project name is required")
	}
	if err := p.ValidateShortID(); err != nil {
		return err
	}
	if p.StartDate.IsZero() || p.EndDate.IsZero() {
		return fmt.Errorf("project %q needs both a start and an end date", p.Name)
	}
	if p.EndDate.Before(p.StartDate) {
		return fmt.Errorf("project %q ends (%s) before it starts (%s)",
			p.Name, p.EndDate.Format(DateLayout), p.StartDate.Format(DateLayout))
	}
	return nil
}

// DisplayID returns the best short identifier for display.
// It prefers ShortID; if empty it truncates ID to 8 characters.
func (p *Project) DisplayID() string {
	if p.ShortID != "" {
		return p.ShortID
	}
	if len(p.ID) >= 8 {
		return p.ID[:8]
	}
	return p.ID
}
