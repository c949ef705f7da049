package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cisclib/librarian/internal/catalog"
)

// addBookRequest is the body for creating a book manually.
type addBookRequest struct {
	ID string `json:"id"`
	catalog.BookFields
}

func (s *Server) handleListBooks(w http.ResponseWriter, r *http.Request) {
	books, err := s.store.ListBooks(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, books)
}

func (s *Server) handleAddBook(w http.ResponseWriter, r *http.Request) {
	var req addBookRequest
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, r, "invalid request body: "+err.Error())
		return
	}

	id, err := s.store.AddBook(r.Context(), req.ID, req.BookFields)
	if err != nil {
		respondError(w, r, err)
		return
	}

	book, err := s.store.GetBook(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusCreated, book)
}

func (s *Server) handleGetBook(w http.ResponseWriter, r *http.Request) {
	book, err := s.store.GetBook(r.Context(), chi.URLParam(r, "bookID"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, book)
}

func (s *Server) handleUpdateBook(w http.ResponseWriter, r *http.Request) {
	var fields catalog.BookFields
	if err := decodeBody(r, &fields); err != nil {
		badRequest(w, r, "invalid request body: "+err.Error())
		return
	}

	id := chi.URLParam(r, "bookID")
	if err := s.store.UpdateBook(r.Context(), id, fields); err != nil {
		respondError(w, r, err)
		return
	}

	book, err := s.store.GetBook(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, book)
}

func (s *Server) handleDeleteBook(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteBook(r.Context(), chi.URLParam(r, "bookID")); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusNoContent, nil)
}

func (s *Server) handleDeleteAllBooks(w http.ResponseWriter, r *http.Request) {
	// Destructive on the whole catalog; require explicit confirmation.
	if r.URL.Query().Get("confirm") != "true" {
		badRequest(w, r, "pass confirm=true to delete the entire catalog")
		return
	}
	if err := s.store.DeleteAllBooks(r.Context()); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusNoContent, nil)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.store.Stats(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, stats)
}
