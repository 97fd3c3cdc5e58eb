package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"
)

func (s *Server) registerAdminAccess(r *mux.Router) {
	r.HandleFunc("/access/get", s.getAccess).Methods(http.MethodGet)
	r.HandleFunc("/access/set", s.setAccess).Methods(http.MethodPost)
	r.HandleFunc("/access/summary", s.accessSummary).Methods(http.MethodGet)
}

// getAccess returns the user ids granted on a path. An empty array means the
// path is unrestricted.
func (s *Server) getAccess(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		http.Error(w, `{"error":"missing path"}`, http.StatusBadRequest)
		return
	}

	userIDs, err := s.access.GetAccess(r.Context(), path)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if userIDs == nil {
		userIDs = []string{}
	}
	s.writeJSON(w, http.StatusOK, userIDs)
}

func (s *Server) setAccess(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Path    string   `json:"path"`
		UserIDs []string `json:"userIds"`
	}
	if !s.decodeBody(w, r, &req) {
		return
	}
	if req.Path == "" {
		http.Error(w, `{"error":"missing path"}`, http.StatusBadRequest)
		return
	}

	if err := s.access.SetAccess(r.Context(), req.Path, req.UserIDs); err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// accessSummary returns every restricted path with the display names of its
// granted users, for the dashboard's owner badges.
func (s *Server) accessSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.access.Summary(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, summary)
}
