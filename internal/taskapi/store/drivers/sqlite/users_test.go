package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/taskdeck/taskdeck/internal/taskapi/domain"
	"github.com/taskdeck/taskdeck/internal/taskapi/store"
)

func TestUsersCreateAndGet(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	u := newTestUser(t, st, "alice@example.com")

	got, err := st.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, u.Email, got.Email)
	require.Equal(t, domain.RoleUser, got.Role)
	require.True(t, got.IsActive)
	require.Nil(t, got.LastLoginAt)
}

func TestUsersEmailLookupIsCaseInsensitive(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	u := newTestUser(t, st, "Alice@Example.com")

	got, err := st.Users().GetUserByEmail(ctx, "alice@EXAMPLE.COM")
	require.NoError(t, err)
	require.Equal(t, u.ID, got.ID)
}

func TestUsersDuplicateEmail(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	first := newTestUser(t, st, "dup@example.com")

	dup := first
	dup.ID = "01JDUPLICATEUSERID0000000"
	dup.Email = "DUP@example.com" // differs only by case
	err := st.Users().CreateUser(ctx, dup)
	require.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestUsersUpdateLastLogin(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	u := newTestUser(t, st, "login@example.com")
	at := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	require.NoError(t, st.Users().UpdateLastLogin(ctx, u.ID, at))

	got, err := st.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, got.LastLoginAt)
	require.WithinDuration(t, at, *got.LastLoginAt, time.Second)
}

func TestUsersSetActive(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	u := newTestUser(t, st, "deact@example.com")

	require.NoError(t, st.Users().SetActive(ctx, u.ID, false))

	got, err := st.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.False(t, got.IsActive)
}

func TestUsersMissingRowsAreNotFound(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	_, err := st.Users().GetUserByID(ctx, "missing")
	require.ErrorIs(t, err, store.ErrNotFound)

	require.ErrorIs(t, st.Users().SetActive(ctx, "missing", false), store.ErrNotFound)
	require.ErrorIs(t, st.Users().UpdateProfile(ctx, "missing", "A", "B"), store.ErrNotFound)
	require.ErrorIs(t, st.Users().DeleteUser(ctx, "missing"), store.ErrNotFound)
}

func TestUsersDeleteCascadesTasks(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	u := newTestUser(t, st, "cascade@example.com")
	task := newTestTask(t, st, u.ID, nil)

	require.NoError(t, st.Users().DeleteUser(ctx, u.ID))

	_, err := st.Tasks().GetTaskByID(ctx, task.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestUsersList(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	for _, email := range []string{"u1@example.com", "u2@example.com", "u3@example.com"} {
		newTestUser(t, st, email)
	}

	users, total, err := st.Users().ListUsers(ctx, 1, 2)
	require.NoError(t, err)
	require.Equal(t, 3, total)
	require.Len(t, users, 2)

	users, total, err = st.Users().ListUsers(ctx, 2, 2)
	require.NoError(t, err)
	require.Equal(t, 3, total)
	require.Len(t, users, 1)
}
