package domain

import "time"

// TaskStatus is the lifecycle state of a task.
type TaskStatus string

const (
	StatusPending    TaskStatus = "pending"
	StatusInProgress TaskStatus = "in_progress"
	StatusCompleted  TaskStatus = "completed"
)

// Valid reports whether s is a known status.
func (s TaskStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// TaskPriority orders tasks by urgency.
type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

// Valid reports whether p is a known priority.
func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Task is a persisted task record, exclusively owned by one user. Ownership
// (UserID) is immutable after creation. CompletedAt is derived state: it is
// non-nil exactly when Status == StatusCompleted, maintained by ApplyStatus
// on every status write.
type Task struct {
	ID          string
	Title       string
	Description string
	Status      TaskStatus
	Priority    TaskPriority
	DueDate     *time.Time
	CompletedAt *time.Time
	UserID      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ApplyStatus writes a status transition onto t, restoring the CompletedAt
// invariant: entering completed stamps CompletedAt with now, leaving
// completed clears it. Callers must route every persisted status change
// through here, not only the dedicated complete flow.
func ApplyStatus(t *Task, status TaskStatus, now time.Time) {
	prev := t.Status
	t.Status = status

	switch {
	case status == StatusCompleted && prev != StatusCompleted:
		at := now.UTC()
		t.CompletedAt = &at
	case status != StatusCompleted:
		t.CompletedAt = nil
	}
}

// Overdue reports whether the task has a due date in the past and is not
// completed.
func (t *Task) Overdue(now time.Time) bool {
	return t.DueDate != nil && t.DueDate.Before(now) && t.Status != StatusCompleted
}
