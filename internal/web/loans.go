package web

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/cisclib/librarian/internal/catalog"
	"github.com/cisclib/librarian/internal/logging"
	"github.com/cisclib/librarian/internal/report"
)

// borrowRequest is the body for recording a loan.
type borrowRequest struct {
	BookID string `json:"book_id"`
	catalog.BorrowerFields
}

func loanID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "loanID"))
	return id, err == nil && id > 0
}

// loanFilters reads the date/status query parameters.
func loanFilters(r *http.Request) (catalog.DateFilter, catalog.StatusFilter, bool) {
	date := catalog.DateFilter(r.URL.Query().Get("date"))
	switch date {
	case catalog.FilterAll, catalog.FilterToday, catalog.FilterWeek, catalog.FilterMonth:
	default:
		return "", "", false
	}

	status := catalog.StatusFilter(r.URL.Query().Get("status"))
	switch status {
	case catalog.StatusAny, catalog.StatusReturned, catalog.StatusOutstanding:
	default:
		return "", "", false
	}
	return date, status, true
}

func (s *Server) handleListLoans(w http.ResponseWriter, r *http.Request) {
	date, status, ok := loanFilters(r)
	if !ok {
		badRequest(w, r, "invalid date or status filter")
		return
	}

	loans, err := s.store.ListLoans(r.Context(), date, status)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, loans)
}

func (s *Server) handleBorrow(w http.ResponseWriter, r *http.Request) {
	var req borrowRequest
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, r, "invalid request body: "+err.Error())
		return
	}

	id, err := s.store.Borrow(r.Context(), req.BookID, req.BorrowerFields)
	if err != nil {
		respondError(w, r, err)
		return
	}

	loan, err := s.store.GetLoan(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusCreated, loan)
}

func (s *Server) handleGetLoan(w http.ResponseWriter, r *http.Request) {
	id, ok := loanID(r)
	if !ok {
		badRequest(w, r, "invalid loan id")
		return
	}

	loan, err := s.store.GetLoan(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, loan)
}

func (s *Server) handleReturn(w http.ResponseWriter, r *http.Request) {
	id, ok := loanID(r)
	if !ok {
		badRequest(w, r, "invalid loan id")
		return
	}

	if err := s.store.Return(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}

	loan, err := s.store.GetLoan(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, loan)
}

func (s *Server) handleUpdateLoanBorrower(w http.ResponseWriter, r *http.Request) {
	id, ok := loanID(r)
	if !ok {
		badRequest(w, r, "invalid loan id")
		return
	}

	var fields catalog.BorrowerFields
	if err := decodeBody(r, &fields); err != nil {
		badRequest(w, r, "invalid request body: "+err.Error())
		return
	}

	if err := s.store.UpdateLoanBorrower(r.Context(), id, fields); err != nil {
		respondError(w, r, err)
		return
	}

	loan, err := s.store.GetLoan(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, loan)
}

func (s *Server) handleDeleteLoan(w http.ResponseWriter, r *http.Request) {
	id, ok := loanID(r)
	if !ok {
		badRequest(w, r, "invalid loan id")
		return
	}

	if err := s.store.DeleteLoan(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusNoContent, nil)
}

// handleExportLoans streams an xlsx download: either the loans named by
// an explicit ids list, or everything matching the usual date/status
// filters.
func (s *Server) handleExportLoans(w http.ResponseWriter, r *http.Request) {
	ids, err := exportIDs(r)
	if err != nil {
		badRequest(w, r, err.Error())
		return
	}

	var loans []*catalog.Loan
	if ids != nil {
		loans, err = s.store.ListLoansByIDs(r.Context(), ids)
	} else {
		date, status, ok := loanFilters(r)
		if !ok {
			badRequest(w, r, "invalid date or status filter")
			return
		}
		loans, err = s.store.ListLoans(r.Context(), date, status)
	}
	if err != nil {
		respondError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+report.Filename(time.Now())+`"`)
	if err := report.WriteLoans(w, loans); err != nil {
		// Headers are already written; nothing useful to send back.
		logging.FromContext(r.Context()).Error("export failed", "error", err)
	}
}

// exportIDs parses the comma-separated ids parameter, nil when absent.
func exportIDs(r *http.Request) ([]int, error) {
	raw := r.URL.Query().Get("ids")
	if raw == "" {
		return nil, nil
	}

	var ids []int
	for _, part := range strings.Split(raw, ",") {
		id, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("invalid loan id %q", part)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
