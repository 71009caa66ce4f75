package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/naz3eh/zkp-service/internal/state"
)

// putStateRequest is the JSON body for PUT /v1/state/{key}.
type putStateRequest struct {
	Value string `json:"value"`
}

// stateResponse is the JSON shape for state reads and writes.
type stateResponse struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

func (s *Server) handlePutState(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	var req putStateRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := s.state.Put(r.Context(), key, req.Value); err != nil {
		s.logger.Error("put state", "key", key, "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to write state")
		return
	}

	s.writeJSON(w, http.StatusOK, stateResponse{Key: key, Value: req.Value})
}

func (s *Server) handleGetState(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	value, err := s.state.Get(r.Context(), key)
	if errors.Is(err, state.ErrNotFound) {
		s.writeError(w, http.StatusNotFound, "state key not found")
		return
	}
	if err != nil {
		s.logger.Error("get state", "key", key, "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to read state")
		return
	}

	s.writeJSON(w, http.StatusOK, stateResponse{Key: key, Value: value})
}

// createSubmissionRequest is the JSON body for POST /v1/submissions.
type createSubmissionRequest struct {
	Data string `json:"data"`
}

func (s *Server) handleCreateSubmission(w http.ResponseWriter, r *http.Request) {
	var req createSubmissionRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Data == "" {
		s.writeError(w, http.StatusBadRequest, "data is required")
		return
	}

	id, err := s.state.CreateSubmission(r.Context(), req.Data)
	if err != nil {
		s.logger.Error("create submission", "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to store submission")
		return
	}

	s.writeJSON(w, http.StatusCreated, map[string]string{"submission_id": id})
}
