package store

import (
	"context"
	"errors"
	"time"

	"github.com/taskdeck/taskdeck/internal/taskapi/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Pagination bounds for list queries. Limits outside [1, MaxPageSize] are
// clamped by drivers.
const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// SortField names a column tasks may be sorted by. Drivers map these to
// concrete columns; anything else is rejected, never interpolated.
type SortField string

const (
	SortByCreatedAt SortField = "createdAt"
	SortByUpdatedAt SortField = "updatedAt"
	SortByDueDate   SortField = "dueDate"
	SortByTitle     SortField = "title"
	SortByPriority  SortField = "priority"
	SortByStatus    SortField = "status"
)

// Valid reports whether f is a known sort field.
func (f SortField) Valid() bool {
	switch f {
	case SortByCreatedAt, SortByUpdatedAt, SortByDueDate, SortByTitle, SortByPriority, SortByStatus:
		return true
	}
	return false
}

// SortOrder is the direction of a sort.
type SortOrder string

const (
	SortAsc  SortOrder = "ASC"
	SortDesc SortOrder = "DESC"
)

// TaskFilter narrows and pages a task list query. The owning-user scope is
// a separate, mandatory argument to ListTasks; filters here are ANDed onto
// it. Search matches case-insensitively as a substring of title or
// description.
type TaskFilter struct {
	Status   *domain.TaskStatus
	Priority *domain.TaskPriority
	DueFrom  *time.Time
	DueTo    *time.Time
	Search   string

	Page      int // 1-based; values < 1 are treated as 1
	Limit     int // clamped to [1, MaxPageSize]; 0 means DefaultPageSize
	SortBy    SortField
	SortOrder SortOrder
}

// TaskStats is a per-user aggregate over task records.
type TaskStats struct {
	Total      int
	Pending    int
	InProgress int
	Completed  int
	Low        int
	Medium     int
	High       int
	Overdue    int
}

// Store is the root data access interface. Concrete drivers (sqlite)
// implement it. Sub-repositories keep concerns tidy and testable.
type Store interface {
	Users() Users
	Tasks() Tasks

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST Commit() or Rollback().
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction, committing on nil and
	// rolling back on error. Prefer this over Tx directly.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases the underlying connection pool.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. Nested transactions are not supported.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail looks a user up by email, case-insensitively.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a new user (id provided by the app via ULID).
	// Returns ErrAlreadyExists when the email is already taken.
	CreateUser(ctx context.Context, u domain.User) error

	// UpdateProfile mutates firstName/lastName and bumps updated_at.
	UpdateProfile(ctx context.Context, userID, firstName, lastName string) error

	// UpdateLastLogin stamps last_login_at.
	UpdateLastLogin(ctx context.Context, userID string, at time.Time) error

	// SetActive flips the soft-disable flag.
	SetActive(ctx context.Context, userID string, active bool) error

	// DeleteUser hard-deletes; tasks cascade per schema. Not used by normal
	// flows, which deactivate instead.
	DeleteUser(ctx context.Context, userID string) error

	// ListUsers returns a page of users (newest first) and the total count.
	ListUsers(ctx context.Context, page, limit int) ([]domain.User, int, error)
}

type Tasks interface {
	// CreateTask inserts a new task. Returns ErrNotFound when the owning
	// user id violates the foreign key.
	CreateTask(ctx context.Context, t domain.Task) error

	// GetTaskByID fetches a task by id alone, without ownership scope.
	// Reserved for admin callers.
	GetTaskByID(ctx context.Context, id string) (domain.Task, error)

	// GetUserTaskByID fetches a task matching both id and owning user.
	// This is the ownership enforcement point: a foreign task is
	// indistinguishable from a nonexistent one.
	GetUserTaskByID(ctx context.Context, userID, id string) (domain.Task, error)

	// ListTasks returns the filtered page of the user's tasks plus the
	// total row count across all pages of that filter.
	ListTasks(ctx context.Context, userID string, f TaskFilter) ([]domain.Task, int, error)

	// UpdateTask persists mutable fields (title, description, status,
	// priority, due_date, completed_at) and bumps updated_at.
	UpdateTask(ctx context.Context, t domain.Task) error

	// DeleteTask hard-deletes by id.
	DeleteTask(ctx context.Context, id string) error

	// TaskStats aggregates the user's tasks by status and priority, and
	// counts tasks overdue relative to now.
	TaskStats(ctx context.Context, userID string, now time.Time) (TaskStats, error)
}
