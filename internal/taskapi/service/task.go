package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/taskdeck/taskdeck/internal/taskapi/domain"
	"github.com/taskdeck/taskdeck/internal/taskapi/store"
	"github.com/taskdeck/taskdeck/pkg/idx"
	"github.com/taskdeck/taskdeck/pkg/slogx"
)

// errTaskNotFound covers both a genuinely missing task and a task owned by
// someone else; the two are deliberately indistinguishable to a caller.
var errTaskNotFound = domain.NewNotFoundError("Task not found")

// errBlankTitle rejects titles that trim to nothing. Length validation at
// the transport layer counts whitespace, so this is checked after trimming.
var errBlankTitle = domain.NewValidationError("Validation failed",
	map[string]string{"title": "must not be blank"})

// Caller identifies who is acting on a task. Admins read and write any
// record; everyone else is scoped to their own.
type Caller struct {
	UserID string
	Admin  bool
}

// CreateTaskInput carries validated fields for a new task. Nil status and
// priority default to pending and medium.
type CreateTaskInput struct {
	Title       string
	Description string
	Status      *domain.TaskStatus
	Priority    *domain.TaskPriority
	DueDate     *time.Time
}

// UpdateTaskInput is a partial patch; nil fields are left untouched.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Status      *domain.TaskStatus
	Priority    *domain.TaskPriority
	DueDate     *time.Time
}

// BulkResult reports how a best-effort bulk operation went. Count is the
// number of ids that succeeded; FailedIDs lists the rest.
type BulkResult struct {
	Count     int
	FailedIDs []string
}

// TaskService owns task CRUD and lifecycle transitions.
type TaskService struct {
	Store store.Store
	Now   func() time.Time
}

func (s *TaskService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// Create inserts a new task owned by userID.
func (s *TaskService) Create(ctx context.Context, userID string, in CreateTaskInput) (domain.Task, error) {
	now := s.now()

	title := strings.TrimSpace(in.Title)
	if title == "" {
		return domain.Task{}, errBlankTitle
	}

	task := domain.Task{
		ID:          idx.New().String(),
		Title:       title,
		Description: in.Description,
		Status:      domain.StatusPending,
		Priority:    domain.PriorityMedium,
		DueDate:     in.DueDate,
		UserID:      userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if in.Priority != nil {
		task.Priority = *in.Priority
	}
	if in.Status != nil {
		domain.ApplyStatus(&task, *in.Status, now)
	}

	if err := s.Store.Tasks().CreateTask(ctx, task); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Task{}, domain.NewNotFoundError("User not found")
		}
		return domain.Task{}, domain.NewDatabaseError(err)
	}

	slogx.FromContext(ctx).Info("task created", "task_id", task.ID, "user_id", userID)
	return task, nil
}

// List returns the filtered page of the user's tasks plus the total match
// count across all pages.
func (s *TaskService) List(ctx context.Context, userID string, f store.TaskFilter) ([]domain.Task, int, error) {
	tasks, total, err := s.Store.Tasks().ListTasks(ctx, userID, f)
	if err != nil {
		return nil, 0, domain.NewDatabaseError(err)
	}
	return tasks, total, nil
}

// Get fetches a single task, ownership-scoped unless the caller is admin.
func (s *TaskService) Get(ctx context.Context, caller Caller, taskID string) (domain.Task, error) {
	return s.fetch(ctx, s.Store, caller, taskID)
}

// Update applies a partial patch. Status changes route through ApplyStatus
// so the completion stamp stays consistent. The load and write share a
// transaction so the patch applies to the row it read.
func (s *TaskService) Update(ctx context.Context, caller Caller, taskID string, in UpdateTaskInput) (domain.Task, error) {
	var task domain.Task
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		var err error
		task, err = s.fetch(ctx, tx, caller, taskID)
		if err != nil {
			return err
		}

		if in.Title != nil {
			title := strings.TrimSpace(*in.Title)
			if title == "" {
				return errBlankTitle
			}
			task.Title = title
		}
		if in.Description != nil {
			task.Description = *in.Description
		}
		if in.Priority != nil {
			task.Priority = *in.Priority
		}
		if in.DueDate != nil {
			task.DueDate = in.DueDate
		}
		if in.Status != nil {
			domain.ApplyStatus(&task, *in.Status, s.now())
		}
		task.UpdatedAt = s.now()

		if err := tx.Tasks().UpdateTask(ctx, task); err != nil {
			return domain.NewDatabaseError(err)
		}
		return nil
	})
	if err != nil {
		return domain.Task{}, err
	}
	return task, nil
}

// Complete marks the task completed. Completing an already-completed task
// is rejected rather than silently re-stamped.
func (s *TaskService) Complete(ctx context.Context, caller Caller, taskID string) (domain.Task, error) {
	var task domain.Task
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		var err error
		task, err = s.fetch(ctx, tx, caller, taskID)
		if err != nil {
			return err
		}
		if task.Status == domain.StatusCompleted {
			return domain.NewBadRequestError("Task is already completed")
		}

		now := s.now()
		domain.ApplyStatus(&task, domain.StatusCompleted, now)
		task.UpdatedAt = now

		if err := tx.Tasks().UpdateTask(ctx, task); err != nil {
			return domain.NewDatabaseError(err)
		}
		return nil
	})
	if err != nil {
		return domain.Task{}, err
	}
	return task, nil
}

// Delete removes the task permanently.
func (s *TaskService) Delete(ctx context.Context, caller Caller, taskID string) error {
	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		if _, err := s.fetch(ctx, tx, caller, taskID); err != nil {
			return err
		}
		if err := tx.Tasks().DeleteTask(ctx, taskID); err != nil {
			return domain.NewDatabaseError(err)
		}
		return nil
	})
}

// BulkUpdateStatus applies one status to many tasks, best effort. Each id
// succeeds or fails independently; a missing or foreign id lands in
// FailedIDs without aborting the rest.
func (s *TaskService) BulkUpdateStatus(ctx context.Context, caller Caller, ids []string, status domain.TaskStatus) (BulkResult, error) {
	res := BulkResult{FailedIDs: []string{}}
	for _, id := range ids {
		_, err := s.Update(ctx, caller, id, UpdateTaskInput{Status: &status})
		if err != nil {
			res.FailedIDs = append(res.FailedIDs, id)
			continue
		}
		res.Count++
	}
	return res, nil
}

// BulkDelete removes many tasks, best effort, with the same partial-success
// contract as BulkUpdateStatus.
func (s *TaskService) BulkDelete(ctx context.Context, caller Caller, ids []string) (BulkResult, error) {
	res := BulkResult{FailedIDs: []string{}}
	for _, id := range ids {
		if err := s.Delete(ctx, caller, id); err != nil {
			res.FailedIDs = append(res.FailedIDs, id)
			continue
		}
		res.Count++
	}
	return res, nil
}

// Stats aggregates the user's tasks by status and priority.
func (s *TaskService) Stats(ctx context.Context, userID string) (store.TaskStats, error) {
	stats, err := s.Store.Tasks().TaskStats(ctx, userID, s.now())
	if err != nil {
		return store.TaskStats{}, domain.NewDatabaseError(err)
	}
	return stats, nil
}

// fetch loads a task through the right scope for the caller, mapping a miss
// (or a foreign task, for non-admins) to the uniform not-found error.
func (s *TaskService) fetch(ctx context.Context, st store.Store, caller Caller, taskID string) (domain.Task, error) {
	var (
		task domain.Task
		err  error
	)
	if caller.Admin {
		task, err = st.Tasks().GetTaskByID(ctx, taskID)
	} else {
		task, err = st.Tasks().GetUserTaskByID(ctx, caller.UserID, taskID)
	}
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Task{}, errTaskNotFound
		}
		return domain.Task{}, domain.NewDatabaseError(err)
	}
	return task, nil
}
