package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/triage/internal/db"
	"github.com/alexanderramin/triage/internal/domain"
	"github.com/alexanderramin/triage/internal/repository"
	"github.com/google/uuid"
)

// DefaultTaxonomy is the stock status list created by SeedDefaults, in
// lifecycle order.
var DefaultTaxonomy = []struct {
	Name  string
	Phase domain.StatusPhase
	Final bool
}{
	{"Ambiente", domain.PhaseEnvironment, false},
	{"POC", domain.PhasePOC, false},
	{"MVP", domain.PhaseMVP, false},
	{"Desenvolvimento", domain.PhaseDevelopment, false},
	{"Testes", domain.PhaseTesting, false},
	{"Homologação", domain.PhaseStaging, false},
	{"Produção", domain.PhaseProduction, false},
	{"Concluído", domain.PhaseCustom, true},
}

type projectStatusService struct {
	statuses repository.ProjectStatusRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewProjectStatusService(statuses repository.ProjectStatusRepo, uow db.UnitOfWork, observers ...UseCaseObserver) ProjectStatusService {
	return &projectStatusService{
		statuses: statuses,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *projectStatusService) Create(ctx context.Context, st *domain.ProjectStatus) error {
	st.Name = strings.TrimSpace(st.Name)
	if st.Name == "" {
		return fmt.Errorf("status name is required")
	}
	if _, err := s.statuses.GetByName(ctx, st.Name); err == nil {
		return fmt.Errorf("status %q already exists", st.Name)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return err
	}

	if st.ID == "" {
		st.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	st.CreatedAt = now
	st.UpdatedAt = now
	return s.statuses.Create(ctx, st)
}

func (s *projectStatusService) GetByID(ctx context.Context, id string) (*domain.ProjectStatus, error) {
	return s.statuses.GetByID(ctx, id)
}

func (s *projectStatusService) Resolve(ctx context.Context, ref string) (*domain.ProjectStatus, error) {
	ref = strings.TrimSpace(ref)
	st, err := s.statuses.GetByName(ctx, ref)
	if err == nil || !errors.Is(err, repository.ErrNotFound) {
		return st, err
	}
	st, err = s.statuses.GetByID(ctx, ref)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("status %q: %w", ref, repository.ErrNotFound)
	}
	return st, err
}

func (s *projectStatusService) List(ctx context.Context) ([]*domain.ProjectStatus, error) {
	return s.statuses.List(ctx)
}

func (s *projectStatusService) Update(ctx context.Context, st *domain.ProjectStatus) error {
	st.Name = strings.TrimSpace(st.Name)
	if st.Name == "" {
		return fmt.Errorf("status name is required")
	}
	if other, err := s.statuses.GetByName(ctx, st.Name); err == nil && other.ID != st.ID {
		return fmt.Errorf("status %q already exists", st.Name)
	}
	st.UpdatedAt = time.Now().UTC()
	return s.statuses.Update(ctx, st)
}

// Delete removes a status. Projects that referenced it keep existing with
// no status and are scored as active with the default status weight.
func (s *projectStatusService) Delete(ctx context.Context, id string) error {
	return s.statuses.Delete(ctx, id)
}

func (s *projectStatusService) SeedDefaults(ctx context.Context) (created int, err error) {
	fields := map[string]any{}
	defer observe(ctx, s.observer, "seed-statuses", time.Now(), fields, &err)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txStatuses := repository.NewSQLiteProjectStatusRepo(tx)
		now := time.Now().UTC()
		for i, def := range DefaultTaxonomy {
			_, getErr := txStatuses.GetByName(ctx, def.Name)
			if getErr == nil {
				continue
			}
			if !errors.Is(getErr, repository.ErrNotFound) {
				return getErr
			}
			if err := txStatuses.Create(ctx, &domain.ProjectStatus{
				ID:         uuid.New().String(),
				Name:       def.Name,
				Phase:      def.Phase,
				IsFinal:    def.Final,
				OrderIndex: i,
				CreatedAt:  now,
				UpdatedAt:  now,
			}); err != nil {
				return fmt.Errorf("creating status %q: %w", def.Name, err)
			}
			created++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	fields["created"] = created
	return created, nil
}
