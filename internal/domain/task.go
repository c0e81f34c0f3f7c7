package domain

import "time"

type Task struct {
	ID        string
	ProjectID string
	Title     string
	Status    TaskStatus
	Assignee  string
	Deadline  *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsCompleted reports whether the task is done.
func (t *Task) IsCompleted() bool { return t.Status == TaskCompleted }

// IsPending reports whether the task still has work left. Blocked and
// in-progress tasks count as pending.
func (t *Task) IsPending() bool { return t.Status != TaskCompleted }

// IsBlocked reports whether the task is blocked.
func (t *Task) IsBlocked() bool { return t.Status == TaskBlocked }

// IsOverdue reports whether the task has a deadline on a calendar day
// before today and is not completed.
func (t *Task) IsOverdue(now time.Time) bool {
	if t.Deadline == nil || t.IsCompleted() {
		return false
	}
	return DaysBetween(now, *t.Deadline) < 0
}

// DaysBetween returns the number of calendar days from from to to, using
// each value's own civil date. Negative when to is earlier.
func DaysBetween(from, to time.Time) int {
	a := civilDate(from)
	b := civilDate(to)
	return int(b.Sub(a).Hours() / 24)
}

func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
