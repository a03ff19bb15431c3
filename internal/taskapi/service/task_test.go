package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/taskdeck/taskdeck/internal/taskapi/domain"
	"github.com/taskdeck/taskdeck/internal/taskapi/service"
	"github.com/taskdeck/taskdeck/internal/taskapi/store"
)

func signupCaller(t *testing.T, env *testEnv, email string) service.Caller {
	t.Helper()
	res, err := env.Auth.Signup(context.Background(), email, "password123", "Test", "User")
	require.NoError(t, err)
	return service.Caller{UserID: res.User.ID}
}

func TestTaskCreate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	caller := signupCaller(t, env, "owner@example.com")

	t.Run("defaults to pending medium", func(t *testing.T) {
		task, err := env.Tasks.Create(ctx, caller.UserID, service.CreateTaskInput{Title: "  write report  "})
		require.NoError(t, err)
		require.Equal(t, "write report", task.Title)
		require.Equal(t, domain.StatusPending, task.Status)
		require.Equal(t, domain.PriorityMedium, task.Priority)
		require.Nil(t, task.CompletedAt)
		require.Equal(t, caller.UserID, task.UserID)
	})

	t.Run("created completed gets a completion stamp", func(t *testing.T) {
		status := domain.StatusCompleted
		task, err := env.Tasks.Create(ctx, caller.UserID, service.CreateTaskInput{Title: "done on arrival", Status: &status})
		require.NoError(t, err)
		require.Equal(t, domain.StatusCompleted, task.Status)
		require.NotNil(t, task.CompletedAt)
	})

	// A whitespace-only title passes length checks upstream but trims to
	// nothing; it must be rejected before it reaches the schema CHECK.
	t.Run("whitespace-only title rejected", func(t *testing.T) {
		_, err := env.Tasks.Create(ctx, caller.UserID, service.CreateTaskInput{Title: "   "})
		de := requireDomainCode(t, err, domain.CodeValidation)
		require.Contains(t, de.Details.(map[string]string), "title")
	})

	t.Run("unknown owner is not found", func(t *testing.T) {
		_, err := env.Tasks.Create(ctx, "01J00000000000000000000000", service.CreateTaskInput{Title: "orphan"})
		requireDomainCode(t, err, domain.CodeNotFound)
	})
}

func TestTaskOwnership(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := signupCaller(t, env, "owner@example.com")
	stranger := signupCaller(t, env, "stranger@example.com")
	admin := service.Caller{UserID: stranger.UserID, Admin: true}

	task, err := env.Tasks.Create(ctx, owner.UserID, service.CreateTaskInput{Title: "private"})
	require.NoError(t, err)

	t.Run("owner reads own task", func(t *testing.T) {
		got, err := env.Tasks.Get(ctx, owner, task.ID)
		require.NoError(t, err)
		require.Equal(t, task.ID, got.ID)
	})

	// A foreign task and a missing task produce the same not-found error.
	t.Run("stranger gets not found", func(t *testing.T) {
		_, foreign := env.Tasks.Get(ctx, stranger, task.ID)
		_, missing := env.Tasks.Get(ctx, stranger, "01J00000000000000000000000")

		fe := requireDomainCode(t, foreign, domain.CodeNotFound)
		me := requireDomainCode(t, missing, domain.CodeNotFound)
		require.Equal(t, me.Message, fe.Message)
	})

	t.Run("admin bypasses scope", func(t *testing.T) {
		got, err := env.Tasks.Get(ctx, admin, task.ID)
		require.NoError(t, err)
		require.Equal(t, task.ID, got.ID)
	})

	t.Run("stranger cannot update or delete", func(t *testing.T) {
		title := "hijacked"
		_, err := env.Tasks.Update(ctx, stranger, task.ID, service.UpdateTaskInput{Title: &title})
		requireDomainCode(t, err, domain.CodeNotFound)

		err = env.Tasks.Delete(ctx, stranger, task.ID)
		requireDomainCode(t, err, domain.CodeNotFound)
	})
}

func TestTaskUpdate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	caller := signupCaller(t, env, "owner@example.com")

	task, err := env.Tasks.Create(ctx, caller.UserID, service.CreateTaskInput{Title: "draft"})
	require.NoError(t, err)

	t.Run("patch leaves omitted fields alone", func(t *testing.T) {
		prio := domain.PriorityHigh
		got, err := env.Tasks.Update(ctx, caller, task.ID, service.UpdateTaskInput{Priority: &prio})
		require.NoError(t, err)
		require.Equal(t, "draft", got.Title)
		require.Equal(t, domain.PriorityHigh, got.Priority)
		require.Equal(t, domain.StatusPending, got.Status)
	})

	t.Run("blank title patch rejected, task untouched", func(t *testing.T) {
		blank := "  \t "
		_, err := env.Tasks.Update(ctx, caller, task.ID, service.UpdateTaskInput{Title: &blank})
		requireDomainCode(t, err, domain.CodeValidation)

		got, err := env.Tasks.Get(ctx, caller, task.ID)
		require.NoError(t, err)
		require.Equal(t, "draft", got.Title)
	})

	t.Run("status to completed stamps completion", func(t *testing.T) {
		status := domain.StatusCompleted
		got, err := env.Tasks.Update(ctx, caller, task.ID, service.UpdateTaskInput{Status: &status})
		require.NoError(t, err)
		require.NotNil(t, got.CompletedAt)
	})

	t.Run("reopening clears completion", func(t *testing.T) {
		status := domain.StatusInProgress
		got, err := env.Tasks.Update(ctx, caller, task.ID, service.UpdateTaskInput{Status: &status})
		require.NoError(t, err)
		require.Nil(t, got.CompletedAt)

		// Persisted, not just in the returned copy.
		stored, err := env.Tasks.Get(ctx, caller, task.ID)
		require.NoError(t, err)
		require.Nil(t, stored.CompletedAt)
	})
}

func TestTaskComplete(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	caller := signupCaller(t, env, "owner@example.com")

	task, err := env.Tasks.Create(ctx, caller.UserID, service.CreateTaskInput{Title: "finish me"})
	require.NoError(t, err)

	got, err := env.Tasks.Complete(ctx, caller, task.ID)
	require.NoError(t, err)
	require.Equal(t, domain.StatusCompleted, got.Status)
	require.NotNil(t, got.CompletedAt)

	t.Run("second completion rejected, stamp untouched", func(t *testing.T) {
		_, err := env.Tasks.Complete(ctx, caller, task.ID)
		requireDomainCode(t, err, domain.CodeBadRequest)

		stored, err := env.Tasks.Get(ctx, caller, task.ID)
		require.NoError(t, err)
		require.NotNil(t, stored.CompletedAt)
		require.True(t, stored.CompletedAt.Equal(*got.CompletedAt))
	})
}

func TestTaskDelete(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	caller := signupCaller(t, env, "owner@example.com")

	task, err := env.Tasks.Create(ctx, caller.UserID, service.CreateTaskInput{Title: "ephemeral"})
	require.NoError(t, err)

	require.NoError(t, env.Tasks.Delete(ctx, caller, task.ID))

	_, err = env.Tasks.Get(ctx, caller, task.ID)
	requireDomainCode(t, err, domain.CodeNotFound)

	err = env.Tasks.Delete(ctx, caller, task.ID)
	requireDomainCode(t, err, domain.CodeNotFound)
}

func TestTaskBulk(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	caller := signupCaller(t, env, "owner@example.com")
	stranger := signupCaller(t, env, "stranger@example.com")

	var ids []string
	for i := 0; i < 3; i++ {
		task, err := env.Tasks.Create(ctx, caller.UserID, service.CreateTaskInput{Title: "bulk"})
		require.NoError(t, err)
		ids = append(ids, task.ID)
	}
	foreign, err := env.Tasks.Create(ctx, stranger.UserID, service.CreateTaskInput{Title: "foreign"})
	require.NoError(t, err)

	t.Run("update is partial success", func(t *testing.T) {
		mixed := append([]string{}, ids...)
		mixed = append(mixed, foreign.ID, "01J00000000000000000000000")

		res, err := env.Tasks.BulkUpdateStatus(ctx, caller, mixed, domain.StatusInProgress)
		require.NoError(t, err)
		require.Equal(t, 3, res.Count)
		require.ElementsMatch(t, []string{foreign.ID, "01J00000000000000000000000"}, res.FailedIDs)

		got, err := env.Tasks.Get(ctx, caller, ids[0])
		require.NoError(t, err)
		require.Equal(t, domain.StatusInProgress, got.Status)

		// The foreign task is untouched.
		other, err := env.Tasks.Get(ctx, stranger, foreign.ID)
		require.NoError(t, err)
		require.Equal(t, domain.StatusPending, other.Status)
	})

	// The completion stamp invariant holds through the bulk path too.
	t.Run("bulk completion stamps and clears completedAt", func(t *testing.T) {
		res, err := env.Tasks.BulkUpdateStatus(ctx, caller, ids, domain.StatusCompleted)
		require.NoError(t, err)
		require.Equal(t, 3, res.Count)

		for _, id := range ids {
			got, err := env.Tasks.Get(ctx, caller, id)
			require.NoError(t, err)
			require.NotNil(t, got.CompletedAt)
		}

		res, err = env.Tasks.BulkUpdateStatus(ctx, caller, ids, domain.StatusPending)
		require.NoError(t, err)
		require.Equal(t, 3, res.Count)

		for _, id := range ids {
			got, err := env.Tasks.Get(ctx, caller, id)
			require.NoError(t, err)
			require.Nil(t, got.CompletedAt)
		}
	})

	t.Run("delete is partial success", func(t *testing.T) {
		res, err := env.Tasks.BulkDelete(ctx, caller, []string{ids[0], foreign.ID})
		require.NoError(t, err)
		require.Equal(t, 1, res.Count)
		require.Equal(t, []string{foreign.ID}, res.FailedIDs)
	})
}

func TestTaskListAndStats(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	caller := signupCaller(t, env, "owner@example.com")

	past := time.Now().UTC().Add(-24 * time.Hour)
	future := time.Now().UTC().Add(24 * time.Hour)

	mk := func(title string, status domain.TaskStatus, prio domain.TaskPriority, due *time.Time) {
		t.Helper()
		_, err := env.Tasks.Create(ctx, caller.UserID, service.CreateTaskInput{
			Title: title, Status: &status, Priority: &prio, DueDate: due,
		})
		require.NoError(t, err)
	}

	mk("overdue report", domain.StatusPending, domain.PriorityHigh, &past)
	mk("ongoing work", domain.StatusInProgress, domain.PriorityMedium, &future)
	mk("shipped", domain.StatusCompleted, domain.PriorityLow, &past)

	t.Run("filter by status", func(t *testing.T) {
		status := domain.StatusPending
		tasks, total, err := env.Tasks.List(ctx, caller.UserID, store.TaskFilter{Status: &status})
		require.NoError(t, err)
		require.Equal(t, 1, total)
		require.Len(t, tasks, 1)
		require.Equal(t, "overdue report", tasks[0].Title)
	})

	t.Run("stats aggregate", func(t *testing.T) {
		stats, err := env.Tasks.Stats(ctx, caller.UserID)
		require.NoError(t, err)
		require.Equal(t, 3, stats.Total)
		require.Equal(t, 1, stats.Pending)
		require.Equal(t, 1, stats.InProgress)
		require.Equal(t, 1, stats.Completed)
		require.Equal(t, 1, stats.High)
		require.Equal(t, 1, stats.Overdue)
	})
}

func TestUserService(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	res, err := env.Auth.Signup(ctx, "maria@example.com", "password123", "Maria", "Curie")
	require.NoError(t, err)

	t.Run("update profile", func(t *testing.T) {
		got, err := env.Users.UpdateProfile(ctx, res.User.ID, "Marie", "Skłodowska")
		require.NoError(t, err)
		require.Equal(t, "Marie", got.FirstName)
		require.Equal(t, "Skłodowska", got.LastName)
		require.Equal(t, "maria@example.com", got.Email)
	})

	t.Run("deactivate blocks identity resolution", func(t *testing.T) {
		_, err := env.Users.GetActiveUser(ctx, res.User.ID)
		require.NoError(t, err)

		require.NoError(t, env.Users.Deactivate(ctx, res.User.ID))

		_, err = env.Users.GetActiveUser(ctx, res.User.ID)
		requireDomainCode(t, err, domain.CodeAuthentication)
	})

	t.Run("list users pages", func(t *testing.T) {
		users, total, err := env.Users.ListUsers(ctx, 1, 10)
		require.NoError(t, err)
		require.Equal(t, 1, total)
		require.Len(t, users, 1)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := env.Users.GetUserByID(ctx, "01J00000000000000000000000")
		requireDomainCode(t, err, domain.CodeNotFound)
	})
}
