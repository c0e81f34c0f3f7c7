package scoring

import (
	"fmt"
	"time"

	"github.com/alexanderramin/triage/internal/domain"
)

var testNow = time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

func daysFromNow(n int) *time.Time {
	d := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
	return &d
}

func status(name string, final bool) *domain.ProjectStatus {
	return &domain.ProjectStatus{ID: "st-" + name, Name: name, IsFinal: final}
}

func project(title string, priority domain.Priority) *domain.Project {
	return &domain.Project{ID: "p-" + title, Title: title, Priority: priority}
}

func tasks(projectID string, counts map[domain.TaskStatus]int) []*domain.Task {
	var out []*domain.Task
	for _, st := range []domain.TaskStatus{domain.TaskPending, domain.TaskInProgress, domain.TaskBlocked, domain.TaskCompleted} {
		for i := 0; i < counts[st]; i++ {
			out = append(out, &domain.Task{
				ID:        fmt.Sprintf("%s-%s-%d", projectID, st, i),
				ProjectID: projectID,
				Status:    st,
			})
		}
	}
	return out
}

func factorPoints(result CriticalityResult, code FactorCode) (int, bool) {
	for _, f := range result.Factors {
		if f.Code == code {
			return f.Points, true
		}
	}
	return 0, false
}
