package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"

	"github.com/alexanderramin/triage/internal/db"
	"github.com/alexanderramin/triage/internal/repository"
	"github.com/alexanderramin/triage/internal/scoring"
	"github.com/alexanderramin/triage/internal/testutil"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m, goleak.IgnoreTopFunction("database/sql.(*DB).connectionOpener"))
}

type testRepos struct {
	db       *sql.DB
	statuses repository.ProjectStatusRepo
	projects repository.ProjectRepo
	tasks    repository.TaskRepo
	reports  repository.ClientReportRepo
	uow      db.UnitOfWork
}

func setupRepos(t *testing.T) testRepos {
	t.Helper()
	database := testutil.NewTestDB(t)
	return testRepos{
		db:       database,
		statuses: repository.NewSQLiteProjectStatusRepo(database),
		projects: repository.NewSQLiteProjectRepo(database),
		tasks:    repository.NewSQLiteTaskRepo(database),
		reports:  repository.NewSQLiteClientReportRepo(database),
		uow:      testutil.NewTestUoW(database),
	}
}

func (r testRepos) boardService(observers ...UseCaseObserver) BoardService {
	return NewBoardService(r.statuses, r.projects, r.tasks, scoring.DefaultWeights(), observers...)
}

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, e)
}

func (o *recordingObserver) last() UseCaseEvent {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.events[len(o.events)-1]
}

func ptrStr(s string) *string { return &s }
func ptrInt(i int) *int       { return &i }
