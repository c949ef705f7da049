package web

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/cisclib/librarian/internal/logging"
)

// handleEvents streams catalog mutation events as server-sent events.
// Clients use it to refresh book lists and dashboards without polling.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		respondJSON(w, r, http.StatusInternalServerError,
			errorResponse{Error: "streaming unsupported"})
		return
	}

	events, cancel := s.store.Events().Subscribe()
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	log := logging.FromContext(r.Context())
	log.Debug("event stream opened", "remote", r.RemoteAddr)

	for {
		select {
		case <-r.Context().Done():
			log.Debug("event stream closed", "remote", r.RemoteAddr)
			return
		case ev := <-events:
			payload, err := json.Marshal(ev)
			if err != nil {
				log.Error("encode event", "error", err)
				continue
			}
			if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Kind, payload); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}
