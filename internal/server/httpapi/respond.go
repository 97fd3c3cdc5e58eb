package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pouchain/docstore/internal/common"
)

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps sentinel errors onto HTTP statuses. Anything unclassified
// is a 500 with a generic body; the detail goes to the log only.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, common.ErrorNotFound):
		http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
	case errors.Is(err, common.ErrorUnauthorized), errors.Is(err, common.ErrorInvalidToken):
		http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
	case errors.Is(err, common.ErrorForbidden):
		http.Error(w, `{"error":"forbidden"}`, http.StatusForbidden)
	case errors.Is(err, common.ErrorBadRequest):
		http.Error(w, `{"error":"bad request"}`, http.StatusBadRequest)
	case errors.Is(err, common.ErrorUpstreamUnavailable):
		http.Error(w, `{"error":"upstream unavailable"}`, http.StatusServiceUnavailable)
	default:
		s.log.Error(r.Context(), "request failed", "path", r.URL.Path, "error", err.Error())
		http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
	}
}

// decodeBody parses a JSON request body, mapping malformed input to 400.
func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, `{"error":"invalid json"}`, http.StatusBadRequest)
		return false
	}
	return true
}
