package web

import (
	"context"
	"net/http"
	"os"
	"strings"

	"github.com/cisclib/librarian/internal/logging"
)

// importPathRequest asks the server to ingest a workbook it can reach on
// its own filesystem, for files too awkward to re-upload.
type importPathRequest struct {
	Path string `json:"path"`
}

// handleImport runs the full ingestion pipeline on a workbook. The
// workbook arrives either as a multipart upload under the "file" field
// or, with a JSON body, as a server-side path. The response is the run
// report; row-level failures are reported, not fatal.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), s.importCfg.Timeout)
	defer cancel()

	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		s.importFromPath(ctx, w, r)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.importCfg.MaxFileSize)

	file, header, err := r.FormFile("file")
	if err != nil {
		badRequest(w, r, "missing workbook upload: "+err.Error())
		return
	}
	defer file.Close()

	log := logging.WithFields(ctx, "filename", header.Filename, "size", header.Size)
	log.Info("import requested")

	rep, err := s.importer.Run(ctx, file)
	if err != nil {
		log.Error("import failed", "error", err)
		respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, rep)
}

func (s *Server) importFromPath(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	var req importPathRequest
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, r, "invalid request body: "+err.Error())
		return
	}
	if strings.TrimSpace(req.Path) == "" {
		badRequest(w, r, "path is required")
		return
	}

	f, err := os.Open(req.Path)
	if err != nil {
		badRequest(w, r, "cannot open workbook: "+err.Error())
		return
	}
	defer f.Close()

	log := logging.WithFields(ctx, "path", req.Path)
	log.Info("import requested")

	rep, err := s.importer.Run(ctx, f)
	if err != nil {
		log.Error("import failed", "error", err)
		respondError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, rep)
}
