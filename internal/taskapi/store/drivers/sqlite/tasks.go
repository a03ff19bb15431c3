package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/taskdeck/taskdeck/internal/taskapi/domain"
	"github.com/taskdeck/taskdeck/internal/taskapi/store"
)

type tasksRepo struct {
	db querier
}

const taskColumns = `id, title, description, status, priority, due_date, completed_at, user_id, created_at, updated_at`

func scanTask(row interface{ Scan(...any) error }) (domain.Task, error) {
	var (
		t           domain.Task
		status      string
		priority    string
		dueDate     sql.NullTime
		completedAt sql.NullTime
	)
	err := row.Scan(
		&t.ID, &t.Title, &t.Description, &status, &priority,
		&dueDate, &completedAt, &t.UserID, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return domain.Task{}, mapConstraint(err)
	}
	t.Status = domain.TaskStatus(status)
	t.Priority = domain.TaskPriority(priority)
	t.DueDate = mapNullTimePtr(dueDate)
	t.CompletedAt = mapNullTimePtr(completedAt)
	return t, nil
}

func (r *tasksRepo) CreateTask(ctx context.Context, t domain.Task) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO tasks (id, title, description, status, priority, due_date, completed_at, user_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Title, t.Description, string(t.Status), string(t.Priority),
		mapOptionalTime(t.DueDate), mapOptionalTime(t.CompletedAt),
		t.UserID, t.CreatedAt.UTC(), t.UpdatedAt.UTC(),
	)
	return mapConstraint(err)
}

func (r *tasksRepo) GetTaskByID(ctx context.Context, id string) (domain.Task, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	return scanTask(row)
}

func (r *tasksRepo) GetUserTaskByID(ctx context.Context, userID, id string) (domain.Task, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE id = ? AND user_id = ?`, id, userID)
	return scanTask(row)
}

func (r *tasksRepo) ListTasks(ctx context.Context, userID string, f store.TaskFilter) ([]domain.Task, int, error) {
	page, limit := clampPage(f.Page, f.Limit)

	// Ownership scope first, filters ANDed onto it.
	where := []string{"user_id = ?"}
	args := []any{userID}

	if f.Status != nil {
		where = append(where, "status = ?")
		args = append(args, string(*f.Status))
	}
	if f.Priority != nil {
		where = append(where, "priority = ?")
		args = append(args, string(*f.Priority))
	}
	if f.DueFrom != nil {
		where = append(where, "due_date >= ?")
		args = append(args, f.DueFrom.UTC())
	}
	if f.DueTo != nil {
		where = append(where, "due_date <= ?")
		args = append(args, f.DueTo.UTC())
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		where = append(where, "(instr(lower(title), ?) > 0 OR instr(lower(description), ?) > 0)")
		needle := strings.ToLower(s)
		args = append(args, needle, needle)
	}

	cond := strings.Join(where, " AND ")

	var total int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM tasks WHERE `+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + taskColumns + ` FROM tasks WHERE ` + cond +
		` ORDER BY ` + sortExpr(f.SortBy) + ` ` + sortDir(f.SortOrder) +
		`, id ASC LIMIT ? OFFSET ?`
	args = append(args, limit, (page-1)*limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	tasks := make([]domain.Task, 0, limit)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, 0, err
		}
		tasks = append(tasks, t)
	}
	return tasks, total, rows.Err()
}

func (r *tasksRepo) UpdateTask(ctx context.Context, t domain.Task) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET title = ?, description = ?, status = ?, priority = ?,
		        due_date = ?, completed_at = ?, updated_at = ?
		 WHERE id = ?`,
		t.Title, t.Description, string(t.Status), string(t.Priority),
		mapOptionalTime(t.DueDate), mapOptionalTime(t.CompletedAt),
		t.UpdatedAt.UTC(), t.ID,
	)
	if err != nil {
		return mapConstraint(err)
	}
	return requireRowAffected(res)
}

func (r *tasksRepo) DeleteTask(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return mapConstraint(err)
	}
	return requireRowAffected(res)
}

func (r *tasksRepo) TaskStats(ctx context.Context, userID string, now time.Time) (store.TaskStats, error) {
	var s store.TaskStats
	row := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*),
		        COALESCE(SUM(status = 'pending'), 0),
		        COALESCE(SUM(status = 'in_progress'), 0),
		        COALESCE(SUM(status = 'completed'), 0),
		        COALESCE(SUM(priority = 'low'), 0),
		        COALESCE(SUM(priority = 'medium'), 0),
		        COALESCE(SUM(priority = 'high'), 0),
		        COALESCE(SUM(due_date IS NOT NULL AND due_date < ? AND status != 'completed'), 0)
		 FROM tasks WHERE user_id = ?`,
		now.UTC(), userID)
	err := row.Scan(
		&s.Total, &s.Pending, &s.InProgress, &s.Completed,
		&s.Low, &s.Medium, &s.High, &s.Overdue,
	)
	return s, err
}

// sortExpr maps a whitelisted sort field to a SQL expression. Priority and
// status sort by rank, not alphabetically. Unknown fields fall back to
// created_at; user input never reaches the SQL text directly.
func sortExpr(f store.SortField) string {
	switch f {
	case store.SortByUpdatedAt:
		return "updated_at"
	case store.SortByDueDate:
		return "due_date"
	case store.SortByTitle:
		return "title COLLATE NOCASE"
	case store.SortByPriority:
		return "CASE priority WHEN 'low' THEN 0 WHEN 'medium' THEN 1 ELSE 2 END"
	case store.SortByStatus:
		return "CASE status WHEN 'pending' THEN 0 WHEN 'in_progress' THEN 1 ELSE 2 END"
	default:
		return "created_at"
	}
}

func sortDir(o store.SortOrder) string {
	if o == store.SortAsc {
		return "ASC"
	}
	return "DESC"
}
