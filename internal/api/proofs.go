package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/naz3eh/zkp-service/internal/engine"
	"github.com/naz3eh/zkp-service/internal/model"
	"github.com/naz3eh/zkp-service/internal/status"
)

const maxBodySize = 1 << 20 // 1 MB

// submitProofRequest is the JSON body for POST /v1/proofs.
type submitProofRequest struct {
	CircuitPath string          `json:"circuit_path"`
	Input       json.RawMessage `json:"input"`
	Mock        bool            `json:"mock"`
}

// proofResponse is the JSON shape for both submission and status polling.
type proofResponse struct {
	TaskID string `json:"task_id"`
	Status string `json:"status"`
	Proof  string `json:"proof,omitempty"`
	Error  string `json:"error,omitempty"`
}

func (s *Server) handleSubmitProof(w http.ResponseWriter, r *http.Request) {
	var req submitProofRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	id, err := s.engine.Submit(req.CircuitPath, req.Input, req.Mock)
	if errors.Is(err, engine.ErrMissingCircuit) {
		s.writeError(w, http.StatusBadRequest, "circuit_path is required")
		return
	}
	if errors.Is(err, engine.ErrQueueClosed) {
		s.writeError(w, http.StatusServiceUnavailable, "service is shutting down")
		return
	}
	if err != nil {
		s.logger.Error("submit proof", "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to submit proof job")
		return
	}

	s.writeJSON(w, http.StatusAccepted, proofResponse{
		TaskID: id,
		Status: model.StatusPending,
	})
}

func (s *Server) handleGetProof(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	st, err := s.status.Get(id)
	if errors.Is(err, status.ErrNotFound) {
		s.writeError(w, http.StatusNotFound, "proof job not found")
		return
	}
	if err != nil {
		s.logger.Error("get proof status", "task_id", id, "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to get proof status")
		return
	}

	s.writeJSON(w, http.StatusOK, proofResponse{
		TaskID: id,
		Status: st.State,
		Proof:  st.Proof,
		Error:  st.Error,
	})
}

// writeJSON writes a JSON response with the given status code.
func (s *Server) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response", "error", err)
	}
}

// writeError writes a JSON error response.
func (s *Server) writeError(w http.ResponseWriter, code int, message string) {
	s.writeJSON(w, code, map[string]string{"error": message})
}
