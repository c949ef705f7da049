package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/cisclib/librarian/internal/catalog"
	"github.com/cisclib/librarian/internal/ingest"
	"github.com/cisclib/librarian/internal/logging"
)

// errorResponse is the JSON body for every error.
type errorResponse struct {
	Error string `json:"error"`
}

// respondJSON writes v as the JSON response body.
func respondJSON(w http.ResponseWriter, r *http.Request, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.FromContext(r.Context()).Error("encode response", "error", err)
	}
}

// respondError maps a domain error to its HTTP status and writes the
// JSON error body. Unknown errors become 500 and hide their detail.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusForError(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		logging.FromContext(r.Context()).Error("request failed", "error", err)
		msg = "internal server error"
	}
	respondJSON(w, r, status, errorResponse{Error: msg})
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, catalog.ErrDuplicateID),
		errors.Is(err, catalog.ErrNoCopiesAvailable),
		errors.Is(err, catalog.ErrAlreadyReturned),
		errors.Is(err, catalog.ErrAllCopiesAvailable),
		errors.Is(err, catalog.ErrBelowOutstandingLoans):
		return http.StatusConflict
	case errors.Is(err, catalog.ErrInvalidEmail),
		errors.Is(err, catalog.ErrInvalidPhone),
		errors.Is(err, catalog.ErrMissingField),
		errors.Is(err, catalog.ErrInvalidYear),
		errors.Is(err, catalog.ErrInvalidCopies),
		errors.Is(err, ingest.ErrWorkbookUnreadable):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// decodeBody parses a JSON request body into dst.
func decodeBody(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// badRequest writes a 400 with the given message.
func badRequest(w http.ResponseWriter, r *http.Request, msg string) {
	respondJSON(w, r, http.StatusBadRequest, errorResponse{Error: msg})
}
