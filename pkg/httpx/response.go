package httpx

import (
	"encoding/json"
	"net/http"
)

// Envelope is the uniform response wrapper: {success, message, data?, meta?}
// on success, {success:false, message, error, details?} on failure.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Meta    any    `json:"meta,omitempty"`
	Error   string `json:"error,omitempty"`
	Details any    `json:"details,omitempty"`
}

// PageMeta is the pagination block carried in list envelopes.
type PageMeta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// NewPageMeta computes totalPages = ceil(total/limit), independent of how
// many rows the requested page actually returned.
func NewPageMeta(page, limit, total int) PageMeta {
	pages := 0
	if limit > 0 {
		pages = (total + limit - 1) / limit
	}
	return PageMeta{Page: page, Limit: limit, Total: total, TotalPages: pages}
}

// WriteJSON writes v as JSON with the given status code.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// NoCache marks a response as uncacheable. Required for token responses.
func NoCache(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
}

// WriteSuccess writes a success envelope.
func WriteSuccess(w http.ResponseWriter, code int, message string, data any) {
	WriteJSON(w, code, Envelope{Success: true, Message: message, Data: data})
}

// WriteSuccessMeta writes a success envelope with a meta block.
func WriteSuccessMeta(w http.ResponseWriter, code int, message string, data, meta any) {
	WriteJSON(w, code, Envelope{Success: true, Message: message, Data: data, Meta: meta})
}

// WriteError writes a failure envelope with a stable error code.
func WriteError(w http.ResponseWriter, status int, errorCode, message string, details any) {
	WriteJSON(w, status, Envelope{Message: message, Error: errorCode, Details: details})
}
