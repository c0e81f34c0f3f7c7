package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/triage/internal/domain"
	"github.com/alexanderramin/triage/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectRepo_CreateAndGetByID(t *testing.T) {
	database := testutil.NewTestDB(t)
	statuses := NewSQLiteProjectStatusRepo(database)
	repo := NewSQLiteProjectRepo(database)
	ctx := context.Background()

	s := testutil.NewTestStatus("Desenvolvimento")
	require.NoError(t, statuses.Create(ctx, s))

	proj := testutil.NewTestProject("Portal",
		testutil.WithStatus(s),
		testutil.WithPriority(domain.PriorityHigh),
		testutil.WithProgress(40),
		testutil.WithClient("ACME"),
		testutil.WithStartDate(testutil.Date(2025, 1, 10)),
		testutil.WithDeadline(testutil.Date(2025, 6, 30)),
	)
	proj.Description = "Customer portal"
	require.NoError(t, repo.Create(ctx, proj))

	fetched, err := repo.GetByID(ctx, proj.ID)
	require.NoError(t, err)
	assert.Equal(t, proj, fetched)
}

func TestProjectRepo_OptionalFieldsRoundTripAsEmpty(t *testing.T) {
	repo := NewSQLiteProjectRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	proj := testutil.NewTestProject("Bare", testutil.WithShortID(""), testutil.WithPriority(""))
	require.NoError(t, repo.Create(ctx, proj))

	fetched, err := repo.GetByID(ctx, proj.ID)
	require.NoError(t, err)
	assert.Equal(t, "", fetched.StatusID)
	assert.Equal(t, domain.Priority(""), fetched.Priority)
	assert.Nil(t, fetched.StartDate)
	assert.Nil(t, fetched.Deadline)
}

func TestProjectRepo_GetByShortID(t *testing.T) {
	repo := NewSQLiteProjectRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	proj := testutil.NewTestProject("Billing", testutil.WithShortID("BIL01"))
	require.NoError(t, repo.Create(ctx, proj))

	fetched, err := repo.GetByShortID(ctx, "bil01")
	require.NoError(t, err)
	assert.Equal(t, proj.ID, fetched.ID)

	_, err = repo.GetByShortID(ctx, "")
	assert.ErrorIs(t, err, ErrNotFound, "empty short IDs never match")
}

func TestProjectRepo_GetByID_NotFound(t *testing.T) {
	repo := NewSQLiteProjectRepo(testutil.NewTestDB(t))

	_, err := repo.GetByID(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "not found")
}

func TestProjectRepo_Filter(t *testing.T) {
	database := testutil.NewTestDB(t)
	statuses := NewSQLiteProjectStatusRepo(database)
	repo := NewSQLiteProjectRepo(database)
	ctx := context.Background()

	dev := testutil.NewTestStatus("Desenvolvimento")
	poc := testutil.NewTestStatus("POC")
	require.NoError(t, statuses.Create(ctx, dev))
	require.NoError(t, statuses.Create(ctx, poc))

	a := testutil.NewTestProject("A", testutil.WithStatus(dev), testutil.WithPriority(domain.PriorityHigh), testutil.WithClient("ACME"))
	b := testutil.NewTestProject("B", testutil.WithStatus(dev), testutil.WithPriority(domain.PriorityLow), testutil.WithClient("Globex"))
	c := testutil.NewTestProject("C", testutil.WithStatus(poc), testutil.WithPriority(domain.PriorityHigh), testutil.WithClient("acme"))
	for _, p := range []*domain.Project{a, b, c} {
		require.NoError(t, repo.Create(ctx, p))
	}

	cases := []struct {
		name   string
		filter ProjectFilter
		want   []string
	}{
		{"no filter", ProjectFilter{}, []string{"A", "B", "C"}},
		{"by status", ProjectFilter{StatusID: dev.ID}, []string{"A", "B"}},
		{"by priority", ProjectFilter{Priority: domain.PriorityHigh}, []string{"A", "C"}},
		{"client ignores case", ProjectFilter{Client: "ACME"}, []string{"A", "C"}},
		{"combined", ProjectFilter{StatusID: dev.ID, Priority: domain.PriorityHigh}, []string{"A"}},
		{"no match", ProjectFilter{Client: "Initech"}, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			list, err := repo.Filter(ctx, tc.filter)
			require.NoError(t, err)
			var got []string
			for _, p := range list {
				got = append(got, p.Title)
			}
			assert.ElementsMatch(t, tc.want, got)
		})
	}
}

func TestProjectRepo_Update(t *testing.T) {
	repo := NewSQLiteProjectRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	proj := testutil.NewTestProject("Portal")
	require.NoError(t, repo.Create(ctx, proj))

	proj.Progress = 75
	proj.Priority = domain.PriorityUrgent
	deadline := testutil.Date(2025, 9, 1)
	proj.Deadline = &deadline
	require.NoError(t, repo.Update(ctx, proj))

	fetched, err := repo.GetByID(ctx, proj.ID)
	require.NoError(t, err)
	assert.Equal(t, 75, fetched.Progress)
	assert.Equal(t, domain.PriorityUrgent, fetched.Priority)
	require.NotNil(t, fetched.Deadline)
	assert.Equal(t, "2025-09-01", fetched.Deadline.Format("2006-01-02"))

	missing := testutil.NewTestProject("Ghost")
	assert.ErrorIs(t, repo.Update(ctx, missing), ErrNotFound)
}

func TestProjectRepo_DeleteCascadesToTasks(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(database)
	tasks := NewSQLiteTaskRepo(database)
	ctx := context.Background()

	proj := testutil.NewTestProject("Doomed")
	require.NoError(t, repo.Create(ctx, proj))
	require.NoError(t, tasks.Create(ctx, testutil.NewTestTask(proj.ID, "Task")))

	require.NoError(t, repo.Delete(ctx, proj.ID))

	_, err := repo.GetByID(ctx, proj.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	remaining, err := tasks.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, remaining)

	assert.ErrorIs(t, repo.Delete(ctx, proj.ID), ErrNotFound)
}
