package domain

import "time"

// ClientReport is a persisted narrative about the portfolio or a single
// project. ProjectID is empty for portfolio reports.
type ClientReport struct {
	ID         string
	ProjectID  string
	Title      string
	Summary    string
	Highlights []string
	Risks      []string
	Source     ReportSource
	CreatedAt  time.Time
}
