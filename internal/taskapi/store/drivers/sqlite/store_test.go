package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/taskdeck/taskdeck/internal/taskapi/domain"
	"github.com/taskdeck/taskdeck/internal/taskapi/store"
	"github.com/taskdeck/taskdeck/internal/taskapi/store/drivers/sqlite"
	"github.com/taskdeck/taskdeck/pkg/idx"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "test.db")
	st, err := sqlite.NewStore(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func newTestUser(t *testing.T, st store.Store, email string) domain.User {
	t.Helper()

	now := time.Now().UTC()
	u := domain.User{
		ID:           idx.New().String(),
		Email:        email,
		PasswordHash: "$2a$04$notarealhash",
		FirstName:    "Test",
		LastName:     "User",
		Role:         domain.RoleUser,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, st.Users().CreateUser(context.Background(), u))
	return u
}

func newTestTask(t *testing.T, st store.Store, userID string, mutate func(*domain.Task)) domain.Task {
	t.Helper()

	now := time.Now().UTC()
	task := domain.Task{
		ID:        idx.New().String(),
		Title:     "task " + idx.New().String(),
		Status:    domain.StatusPending,
		Priority:  domain.PriorityMedium,
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if mutate != nil {
		mutate(&task)
	}
	require.NoError(t, st.Tasks().CreateTask(context.Background(), task))
	return task
}

func TestPing(t *testing.T) {
	st := newTestStore(t)
	require.NoError(t, st.Ping(context.Background()))
}

func TestWithTx(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	u := newTestUser(t, st, "tx@example.com")

	t.Run("commits on nil", func(t *testing.T) {
		var id string
		err := st.WithTx(ctx, func(tx store.Tx) error {
			task := newTxTask(u.ID)
			id = task.ID
			return tx.Tasks().CreateTask(ctx, task)
		})
		require.NoError(t, err)

		_, err = st.Tasks().GetTaskByID(ctx, id)
		require.NoError(t, err)
	})

	t.Run("rolls back on error", func(t *testing.T) {
		var id string
		err := st.WithTx(ctx, func(tx store.Tx) error {
			task := newTxTask(u.ID)
			id = task.ID
			if err := tx.Tasks().CreateTask(ctx, task); err != nil {
				return err
			}
			return context.Canceled
		})
		require.ErrorIs(t, err, context.Canceled)

		_, err = st.Tasks().GetTaskByID(ctx, id)
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func newTxTask(userID string) domain.Task {
	now := time.Now().UTC()
	return domain.Task{
		ID:        idx.New().String(),
		Title:     "tx task",
		Status:    domain.StatusPending,
		Priority:  domain.PriorityMedium,
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
