package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/naz3eh/zkp-service/internal/keys"
)

func (s *Server) handleGetPublicKey(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"public_key": s.signer.PublicKey(),
	})
}

// signRequest is the JSON body for POST /v1/keys/sign.
type signRequest struct {
	Message string `json:"message"`
}

func (s *Server) handleSign(w http.ResponseWriter, r *http.Request) {
	var req signRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Message == "" {
		s.writeError(w, http.StatusBadRequest, "message is required")
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]string{
		"signature": s.signer.Sign([]byte(req.Message)),
	})
}

// decodeInputRequest is the JSON body for POST /v1/keys/decode.
type decodeInputRequest struct {
	Data string `json:"data"`
}

func (s *Server) handleDecodeInput(w http.ResponseWriter, r *http.Request) {
	var req decodeInputRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	decoded, err := keys.DecodeInput(req.Data)
	if errors.Is(err, keys.ErrMalformedInput) {
		s.writeError(w, http.StatusBadRequest, "data is not valid hex")
		return
	}
	if err != nil {
		s.logger.Error("decode input", "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to decode input")
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]string{"decoded": decoded})
}
