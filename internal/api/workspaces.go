package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/naz3eh/zkp-service/internal/workspace"
)

// cloneWorkspaceRequest is the JSON body for POST /v1/workspaces.
type cloneWorkspaceRequest struct {
	RepoURL string `json:"repo_url"`
}

func (s *Server) handleCloneWorkspace(w http.ResponseWriter, r *http.Request) {
	var req cloneWorkspaceRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.RepoURL == "" {
		s.writeError(w, http.StatusBadRequest, "repo_url is required")
		return
	}

	ws, err := s.workspaces.Clone(r.Context(), req.RepoURL)
	if err != nil {
		var cloneErr *workspace.CloneError
		if errors.As(err, &cloneErr) {
			s.writeError(w, http.StatusBadGateway, cloneErr.Error())
			return
		}
		s.logger.Error("clone workspace", "repo_url", req.RepoURL, "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to clone repository")
		return
	}

	s.writeJSON(w, http.StatusCreated, ws)
}

func (s *Server) handleListWorkspaces(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, s.workspaces.List())
}

func (s *Server) handleRemoveWorkspace(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := s.workspaces.Remove(id); err != nil {
		if errors.Is(err, workspace.ErrNotFound) {
			s.writeError(w, http.StatusNotFound, "workspace not found")
			return
		}
		s.logger.Error("remove workspace", "workspace_id", id, "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to remove workspace")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
