package api

import (
	"encoding/json"
	"errors"
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// handleListResults lists all stored analysis results.
func (s *Server) handleListResults(w http.ResponseWriter, r *http.Request) {
	entries, err := s.orchestrator.Results().List()
	if err != nil {
		jsonError(w, "failed to list results: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"results": entries})
}

// handleGetResult returns one stored analysis result.
func (s *Server) handleGetResult(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "docID")
	result, err := s.orchestrator.Results().Load(docID)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			jsonError(w, "result not found", http.StatusNotFound)
			return
		}
		jsonError(w, "failed to load result: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// handleDeleteResult removes one stored analysis result.
func (s *Server) handleDeleteResult(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "docID")
	if err := s.orchestrator.Results().Delete(docID); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			jsonError(w, "result not found", http.StatusNotFound)
			return
		}
		jsonError(w, "failed to delete result: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"deleted": docID})
}
