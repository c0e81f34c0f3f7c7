package app

import (
	"time"

	"github.com/alexanderramin/triage/internal/domain"
)

type ReportRequest struct {
	Now *time.Time
	// ProjectRef selects a single project by ID or short ID. Empty means the
	// whole active portfolio.
	ProjectRef string
	Title      string
}

type ReportResponse struct {
	Report *domain.ClientReport
	// Fallback is true when the narrative came from the deterministic writer
	// because the LLM was disabled or failed.
	Fallback       bool
	FallbackReason string
}
