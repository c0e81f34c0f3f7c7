package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/triage/internal/app"
	"github.com/alexanderramin/triage/internal/db"
	"github.com/alexanderramin/triage/internal/importer"
	"github.com/alexanderramin/triage/internal/repository"
)

type importService struct {
	statuses repository.ProjectStatusRepo
	projects repository.ProjectRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewImportService(
	statuses repository.ProjectStatusRepo,
	projects repository.ProjectRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) ImportService {
	return &importService{
		statuses: statuses,
		projects: projects,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *importService) Import(ctx context.Context, filePath string) (*app.ImportResult, error) {
	f, err := importer.LoadImportFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("loading import file: %w", err)
	}
	return s.ImportFile(ctx, f)
}

func (s *importService) ImportFile(ctx context.Context, f *importer.ImportFile) (result *app.ImportResult, err error) {
	startedAt := time.Now()
	fields := map[string]any{}
	defer observe(ctx, s.observer, "import", startedAt, fields, &err)

	existing, err := s.statuses.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading statuses: %w", err)
	}
	if errs := importer.ValidateImportFile(f, existing); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}

	bundle, err := importer.Convert(f, existing, time.Now())
	if err != nil {
		return nil, fmt.Errorf("converting import file: %w", err)
	}

	// Everything lands in one transaction so a failed import leaves the
	// store untouched.
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		statusRepo := repository.NewSQLiteProjectStatusRepo(tx)
		projectRepo := repository.NewSQLiteProjectRepo(tx)
		taskRepo := repository.NewSQLiteTaskRepo(tx)

		for _, p := range bundle.Projects {
			if p.ShortID == "" {
				continue
			}
			_, err := projectRepo.GetByShortID(ctx, p.ShortID)
			if err == nil {
				return fmt.Errorf("short ID %s is already in use", p.ShortID)
			}
			if !errors.Is(err, repository.ErrNotFound) {
				return err
			}
		}

		for _, st := range bundle.Statuses {
			if err := statusRepo.Create(ctx, st); err != nil {
				return fmt.Errorf("creating status %q: %w", st.Name, err)
			}
		}
		for _, p := range bundle.Projects {
			if err := projectRepo.Create(ctx, p); err != nil {
				return fmt.Errorf("creating project %q: %w", p.Title, err)
			}
		}
		for _, t := range bundle.Tasks {
			if err := taskRepo.Create(ctx, t); err != nil {
				return fmt.Errorf("creating task %q: %w", t.Title, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	result = &app.ImportResult{
		StatusCount: len(bundle.Statuses),
		ProjectIDs:  make([]string, 0, len(bundle.Projects)),
		TaskCount:   len(bundle.Tasks),
	}
	for _, p := range bundle.Projects {
		result.ProjectIDs = append(result.ProjectIDs, p.ID)
	}
	fields["statuses"] = result.StatusCount
	fields["projects"] = len(result.ProjectIDs)
	fields["tasks"] = result.TaskCount
	return result, nil
}
