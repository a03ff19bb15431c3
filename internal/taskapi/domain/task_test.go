package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/taskdeck/taskdeck/internal/taskapi/domain"
)

func TestApplyStatus(t *testing.T) {
	now := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

	t.Run("entering completed stamps completedAt", func(t *testing.T) {
		task := domain.Task{Status: domain.StatusPending}

		domain.ApplyStatus(&task, domain.StatusCompleted, now)

		require.Equal(t, domain.StatusCompleted, task.Status)
		require.NotNil(t, task.CompletedAt)
		require.Equal(t, now, *task.CompletedAt)
	})

	t.Run("leaving completed clears completedAt", func(t *testing.T) {
		at := now.Add(-time.Hour)
		task := domain.Task{Status: domain.StatusCompleted, CompletedAt: &at}

		domain.ApplyStatus(&task, domain.StatusInProgress, now)

		require.Equal(t, domain.StatusInProgress, task.Status)
		require.Nil(t, task.CompletedAt)
	})

	t.Run("completed to completed keeps original stamp", func(t *testing.T) {
		at := now.Add(-time.Hour)
		task := domain.Task{Status: domain.StatusCompleted, CompletedAt: &at}

		domain.ApplyStatus(&task, domain.StatusCompleted, now)

		require.NotNil(t, task.CompletedAt)
		require.Equal(t, at, *task.CompletedAt)
	})

	t.Run("pending to in_progress stays nil", func(t *testing.T) {
		task := domain.Task{Status: domain.StatusPending}

		domain.ApplyStatus(&task, domain.StatusInProgress, now)

		require.Nil(t, task.CompletedAt)
	})
}

func TestOverdue(t *testing.T) {
	now := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	past := now.Add(-24 * time.Hour)
	future := now.Add(24 * time.Hour)

	require.True(t, (&domain.Task{Status: domain.StatusPending, DueDate: &past}).Overdue(now))
	require.False(t, (&domain.Task{Status: domain.StatusCompleted, DueDate: &past}).Overdue(now))
	require.False(t, (&domain.Task{Status: domain.StatusPending, DueDate: &future}).Overdue(now))
	require.False(t, (&domain.Task{Status: domain.StatusPending}).Overdue(now))
}

func TestEnumValidity(t *testing.T) {
	require.True(t, domain.StatusPending.Valid())
	require.True(t, domain.StatusInProgress.Valid())
	require.True(t, domain.StatusCompleted.Valid())
	require.False(t, domain.TaskStatus("archived").Valid())

	require.True(t, domain.PriorityMedium.Valid())
	require.False(t, domain.TaskPriority("urgent").Valid())

	require.True(t, domain.RoleAdmin.Valid())
	require.False(t, domain.Role("superuser").Valid())
}
