package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/taskdeck/taskdeck/internal/taskapi/domain"
	"github.com/taskdeck/taskdeck/internal/taskapi/store"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// decodeJSON parses and validates a request body into dst. Malformed JSON is
// a 400; a well-formed body that fails validation is a 422 with per-field
// details.
func decodeJSON(r *http.Request, dst any) error {
	defer func() { _, _ = io.Copy(io.Discard, r.Body) }()

	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		return domain.NewBadRequestError("Invalid request body").WithCause(err)
	}

	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			details := make(map[string]string, len(verrs))
			for _, fe := range verrs {
				details[fieldName(fe)] = validationMessage(fe)
			}
			return domain.NewValidationError("Validation failed", details)
		}
		return domain.NewBadRequestError("Invalid request body").WithCause(err)
	}
	return nil
}

// fieldName prefers the json tag casing over the Go field name.
func fieldName(fe validator.FieldError) string {
	name := fe.Field()
	if name == "" {
		return "body"
	}
	return strings.ToLower(name[:1]) + name[1:]
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	default:
		return "is invalid"
	}
}

// parsePage reads page/limit query params, defaulting and clamping so a
// hostile query string can't request an unbounded page.
func parsePage(r *http.Request) (page, limit int) {
	page, limit = 1, store.DefaultPageSize
	if v := r.URL.Query().Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			page = n
		}
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	if limit > store.MaxPageSize {
		limit = store.MaxPageSize
	}
	return page, limit
}

// parseTaskFilter builds the list query from the URL. Unknown enum values
// are rejected rather than silently ignored.
func parseTaskFilter(r *http.Request) (store.TaskFilter, error) {
	q := r.URL.Query()
	details := map[string]string{}

	f := store.TaskFilter{
		Search:    strings.TrimSpace(q.Get("search")),
		SortBy:    store.SortByCreatedAt,
		SortOrder: store.SortDesc,
	}
	f.Page, f.Limit = parsePage(r)

	if v := q.Get("status"); v != "" {
		s := domain.TaskStatus(v)
		if !s.Valid() {
			details["status"] = "must be one of: pending, in_progress, completed"
		}
		f.Status = &s
	}
	if v := q.Get("priority"); v != "" {
		p := domain.TaskPriority(v)
		if !p.Valid() {
			details["priority"] = "must be one of: low, medium, high"
		}
		f.Priority = &p
	}
	if v := q.Get("dueFrom"); v != "" {
		at, err := time.Parse(time.RFC3339, v)
		if err != nil {
			details["dueFrom"] = "must be an RFC 3339 timestamp"
		}
		f.DueFrom = &at
	}
	if v := q.Get("dueTo"); v != "" {
		at, err := time.Parse(time.RFC3339, v)
		if err != nil {
			details["dueTo"] = "must be an RFC 3339 timestamp"
		}
		f.DueTo = &at
	}
	if v := q.Get("sortBy"); v != "" {
		sb := store.SortField(v)
		if !sb.Valid() {
			details["sortBy"] = "must be one of: createdAt, updatedAt, dueDate, title, priority, status"
		}
		f.SortBy = sb
	}
	switch strings.ToLower(q.Get("sortOrder")) {
	case "", "desc":
		f.SortOrder = store.SortDesc
	case "asc":
		f.SortOrder = store.SortAsc
	default:
		details["sortOrder"] = "must be asc or desc"
	}

	if len(details) > 0 {
		return store.TaskFilter{}, domain.NewValidationError("Validation failed", details)
	}
	return f, nil
}
