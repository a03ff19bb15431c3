package http

import (
	"context"
	"net/http"
	"time"

	"github.com/taskdeck/taskdeck/internal/taskapi/domain"
	"github.com/taskdeck/taskdeck/internal/taskapi/service"
	"github.com/taskdeck/taskdeck/internal/taskapi/store"
	"github.com/taskdeck/taskdeck/pkg/httpx"
	"github.com/taskdeck/taskdeck/pkg/slogx"
)

// writeServiceError is the single failure translation point: typed domain
// errors map onto the envelope as-is, anything else becomes an opaque 500.
// Causes are logged, never serialized.
func writeServiceError(ctx context.Context, w http.ResponseWriter, err error) {
	log := slogx.FromContext(ctx)

	if de := domain.AsError(err); de != nil {
		if de.Status >= http.StatusInternalServerError {
			log.Error("request failed", "code", de.Code, "err", err)
		}
		httpx.WriteError(w, de.Status, string(de.Code), de.Message, de.Details)
		return
	}

	log.Error("unhandled error", "err", err)
	httpx.WriteError(w, http.StatusInternalServerError, string(domain.CodeInternal), "An internal error occurred", nil)
}

// errMissingIdentity guards handlers registered behind the auth gate. The
// gate always attaches an identity, so reaching this is a wiring bug, but
// the response stays a plain 401.
func errMissingIdentity() error {
	return domain.NewAuthenticationError("Authentication required")
}

// callerFrom maps an authenticated identity to a task-service caller.
func callerFrom(id httpx.Identity) service.Caller {
	return service.Caller{UserID: id.ID, Admin: id.Role == string(domain.RoleAdmin)}
}

// UserPayload is the public projection of a user. The password hash has no
// field here, so it cannot leak through any handler.
type UserPayload struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	FirstName   string     `json:"firstName"`
	LastName    string     `json:"lastName"`
	Role        string     `json:"role"`
	IsActive    bool       `json:"isActive"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func toUserPayload(u domain.User) UserPayload {
	return UserPayload{
		ID:          u.ID,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Role:        string(u.Role),
		IsActive:    u.IsActive,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

// AuthPayload is returned by signup and login.
type AuthPayload struct {
	User         UserPayload `json:"user"`
	Token        string      `json:"token"`
	RefreshToken string      `json:"refreshToken"`
}

// TaskPayload is the public projection of a task.
type TaskPayload struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	UserID      string     `json:"userId"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func toTaskPayload(t domain.Task) TaskPayload {
	return TaskPayload{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		Priority:    string(t.Priority),
		DueDate:     t.DueDate,
		CompletedAt: t.CompletedAt,
		UserID:      t.UserID,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func toTaskPayloads(tasks []domain.Task) []TaskPayload {
	out := make([]TaskPayload, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, toTaskPayload(t))
	}
	return out
}

// StatsPayload is the per-user aggregate returned by the stats endpoint.
type StatsPayload struct {
	Total      int             `json:"total"`
	ByStatus   StatsByStatus   `json:"byStatus"`
	ByPriority StatsByPriority `json:"byPriority"`
	Overdue    int             `json:"overdue"`
}

type StatsByStatus struct {
	Pending    int `json:"pending"`
	InProgress int `json:"inProgress"`
	Completed  int `json:"completed"`
}

type StatsByPriority struct {
	Low    int `json:"low"`
	Medium int `json:"medium"`
	High   int `json:"high"`
}

func toStatsPayload(s store.TaskStats) StatsPayload {
	return StatsPayload{
		Total:      s.Total,
		ByStatus:   StatsByStatus{Pending: s.Pending, InProgress: s.InProgress, Completed: s.Completed},
		ByPriority: StatsByPriority{Low: s.Low, Medium: s.Medium, High: s.High},
		Overdue:    s.Overdue,
	}
}

// BulkPayload reports partial-success bulk results.
type BulkPayload struct {
	Count     int      `json:"count"`
	FailedIDs []string `json:"failedIds"`
}
