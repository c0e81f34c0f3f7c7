package domain

import (
	"fmt"
	"regexp"
	"time"
)

var shortIDPattern = regexp.MustCompile(`^[A-Z]{3,6}[0-9]{2,4}$`)

type Project struct {
	ID          string
	ShortID     string
	Title       string
	Client      string
	Description string
	StatusID    string
	Priority    Priority
	Progress    int // percent, 0-100
	StartDate   *time.Time
	Deadline    *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate checks the fields a caller controls. The scoring core assumes
// Progress is already within [0,100]; writes are rejected otherwise.
func (p *Project) Validate() error {
	if p.Title == "" {
		return fmt.Errorf("project title is required")
	}
	if p.Progress < 0 || p.Progress > 100 {
		return fmt.Errorf("progress must be between 0 and 100, got %d", p.Progress)
	}
	if p.ShortID != "" {
		if err := p.ValidateShortID(); err != nil {
			return err
		}
	}
	if p.StartDate != nil && p.Deadline != nil && p.Deadline.Before(*p.StartDate) {
		return fmt.Errorf("deadline %s is before start date %s",
			p.Deadline.Format("2006-01-02"), p.StartDate.Format("2006-01-02"))
	}
	return nil
}

// ValidateShortID checks that ShortID matches the required format: 3-6
// uppercase letters followed by 2-4 digits (e.g. ERP01, SITE0234).
func (p *Project) ValidateShortID() error {
	if p.ShortID == "" {
		return fmt.Errorf("short ID is required (use --id flag)")
	}
	if !shortIDPattern.MatchString(p.ShortID) {
		return fmt.Errorf("short ID %q must be 3-6 uppercase letters followed by 2-4 digits (e.g. ERP01)", p.ShortID)
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
