// Package web exposes the catalog and lending ledger over a JSON HTTP
// API. It is a thin layer: handlers decode requests, call the store or
// importer, and map domain errors to statuses. All domain rules live in
// the catalog and ingest packages.
package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/cisclib/librarian/internal/catalog"
	"github.com/cisclib/librarian/internal/config"
	"github.com/cisclib/librarian/internal/ingest"
)

// Server holds the HTTP surface's collaborators.
type Server struct {
	store     *catalog.Store
	importer  *ingest.Importer
	cfg       config.ServerConfig
	importCfg config.ImportConfig
}

// NewServer wires the handlers to the store and importer.
func NewServer(store *catalog.Store, importer *ingest.Importer, cfg config.ServerConfig, importCfg config.ImportConfig) *Server {
	return &Server{store: store, importer: importer, cfg: cfg, importCfg: importCfg}
}

// Router builds the chi router with the full middleware stack and all
// API routes mounted under /api.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		// The SSE stream outlives the request timeout; everything else
		// gets the standard deadline.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(s.cfg.RequestTimeout))

			r.Route("/books", func(r chi.Router) {
				r.Get("/", s.handleListBooks)
				r.Post("/", s.handleAddBook)
				r.Delete("/", s.handleDeleteAllBooks)
				r.Route("/{bookID}", func(r chi.Router) {
					r.Get("/", s.handleGetBook)
					r.Put("/", s.handleUpdateBook)
					r.Delete("/", s.handleDeleteBook)
				})
			})

			r.Route("/loans", func(r chi.Router) {
				r.Get("/", s.handleListLoans)
				r.Post("/", s.handleBorrow)
				r.Route("/{loanID}", func(r chi.Router) {
					r.Get("/", s.handleGetLoan)
					r.Put("/", s.handleUpdateLoanBorrower)
					r.Delete("/", s.handleDeleteLoan)
					r.Post("/return", s.handleReturn)
				})
			})

			r.Get("/stats", s.handleStats)
			r.Get("/export/loans", s.handleExportLoans)
		})

		r.Post("/import", s.handleImport)
		r.Get("/events", s.handleEvents)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Pool().Ping(r.Context()); err != nil {
		respondJSON(w, r, http.StatusServiceUnavailable, map[string]string{"status": "down"})
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}
