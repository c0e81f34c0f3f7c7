package testutil

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/triage/internal/domain"
	"github.com/google/uuid"
)

var testShortIDCounter atomic.Int64

// Date returns midnight UTC of the given calendar day.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Status options
type StatusOption func(*domain.ProjectStatus)

func WithFinal() StatusOption {
	return func(s *domain.ProjectStatus) {
		s.IsFinal = true
	}
}

func WithPhase(p domain.StatusPhase) StatusOption {
	return func(s *domain.ProjectStatus) {
		s.Phase = p
	}
}

func WithStatusOrder(i int) StatusOption {
	return func(s *domain.ProjectStatus) {
		s.OrderIndex = i
	}
}

func NewTestStatus(name string, opts ...StatusOption) *domain.ProjectStatus {
	now := time.Now().UTC().Truncate(time.Second)
	s := &domain.ProjectStatus{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Project options
type ProjectOption func(*domain.Project)

func WithDeadline(d time.Time) ProjectOption {
	return func(p *domain.Project) {
		p.Deadline = &d
	}
}

func WithStartDate(d time.Time) ProjectOption {
	return func(p *domain.Project) {
		p.StartDate = &d
	}
}

func WithStatus(s *domain.ProjectStatus) ProjectOption {
	return func(p *domain.Project) {
		p.StatusID = s.ID
	}
}

func WithPriority(pr domain.Priority) ProjectOption {
	return func(p *domain.Project) {
		p.Priority = pr
	}
}

func WithProgress(n int) ProjectOption {
	return func(p *domain.Project) {
		p.Progress = n
	}
}

func WithClient(c string) ProjectOption {
	return func(p *domain.Project) {
		p.Client = c
	}
}

func WithShortID(id string) ProjectOption {
	return func(p *domain.Project) {
		p.ShortID = id
	}
}

func defaultShortID(title string) string {
	upper := strings.ToUpper(title)
	var letters []byte
	for i := 0; i < len(upper) && len(letters) < 3; i++ {
		if upper[i] >= 'A' && upper[i] <= 'Z' {
			letters = append(letters, upper[i])
		}
	}
	for len(letters) < 3 {
		letters = append(letters, 'X')
	}
	n := testShortIDCounter.Add(1)
	return fmt.Sprintf("%s%02d", string(letters), n%10000)
}

func NewTestProject(title string, opts ...ProjectOption) *domain.Project {
	now := time.Now().UTC().Truncate(time.Second)
	p := &domain.Project{
		ID:        uuid.New().String(),
		ShortID:   defaultShortID(title),
		Title:     title,
		Priority:  domain.PriorityMedium,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Task options
type TaskOption func(*domain.Task)

func WithTaskStatus(s domain.TaskStatus) TaskOption {
	return func(t *domain.Task) {
		t.Status = s
	}
}

func WithTaskDeadline(d time.Time) TaskOption {
	return func(t *domain.Task) {
		t.Deadline = &d
	}
}

func WithAssignee(a string) TaskOption {
	return func(t *domain.Task) {
		t.Assignee = a
	}
}

func NewTestTask(projectID, title string, opts ...TaskOption) *domain.Task {
	now := time.Now().UTC().Truncate(time.Second)
	t := &domain.Task{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		Title:     title,
		Status:    domain.TaskPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}
