package app

import (
	"context"

	"github.com/alexanderramin/triage/internal/domain"
	"github.com/alexanderramin/triage/internal/importer"
)

type BoardUseCase interface {
	GetBoard(ctx context.Context, req BoardRequest) (*BoardResponse, error)
}

type ImportResult struct {
	StatusCount int
	ProjectIDs  []string
	TaskCount   int
}

type ImportPortfolioUseCase interface {
	Import(ctx context.Context, filePath string) (*ImportResult, error)
	ImportFile(ctx context.Context, f *importer.ImportFile) (*ImportResult, error)
}

type ReportUseCase interface {
	Generate(ctx context.Context, req ReportRequest) (*ReportResponse, error)
	Get(ctx context.Context, id string) (*domain.ClientReport, error)
	List(ctx context.Context, projectRef string) ([]*domain.ClientReport, error)
}
