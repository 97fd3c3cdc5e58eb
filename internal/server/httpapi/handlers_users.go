package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pouchain/docstore/internal/server/models"
)

func (s *Server) registerAdminUsers(r *mux.Router) {
	r.HandleFunc("/users", s.listUsers).Methods(http.MethodGet)
	r.HandleFunc("/users", s.createUser).Methods(http.MethodPost)
	r.HandleFunc("/users", s.deleteUser).Methods(http.MethodDelete)
	r.HandleFunc("/users/invite", s.inviteUser).Methods(http.MethodPost)
	r.HandleFunc("/users/reset", s.resetPassword).Methods(http.MethodPost)
	r.HandleFunc("/users/role", s.updateRole).Methods(http.MethodPut)
	r.HandleFunc("/users/profile", s.updateProfile).Methods(http.MethodPut)
}

func (s *Server) listUsers(w http.ResponseWriter, r *http.Request) {
	records, err := s.users.ListUsers(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if records == nil {
		records = []models.UserRecord{}
	}
	s.writeJSON(w, http.StatusOK, records)
}

func (s *Server) createUser(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email     string `json:"email"`
		Password  string `json:"password"`
		Role      string `json:"role"`
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
	}
	if !s.decodeBody(w, r, &req) {
		return
	}
	if req.Email == "" || req.Password == "" {
		http.Error(w, `{"error":"missing email or password"}`, http.StatusBadRequest)
		return
	}
	if req.Role == "" {
		req.Role = models.RoleUser
	}

	user, err := s.users.CreateUser(r.Context(), req.Email, req.Password, req.Role, req.FirstName, req.LastName)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"message": "created", "user": user})
}

func (s *Server) inviteUser(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email      string `json:"email"`
		Role       string `json:"role"`
		RedirectTo string `json:"redirectTo"`
		FirstName  string `json:"firstName"`
		LastName   string `json:"lastName"`
	}
	if !s.decodeBody(w, r, &req) {
		return
	}
	if req.Email == "" {
		http.Error(w, `{"error":"missing email"}`, http.StatusBadRequest)
		return
	}
	if req.Role == "" {
		req.Role = models.RoleUser
	}

	user, err := s.users.InviteUser(r.Context(), req.Email, req.Role, req.RedirectTo, req.FirstName, req.LastName)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"message": "invited", "user": user})
}

func (s *Server) resetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email      string `json:"email"`
		RedirectTo string `json:"redirectTo"`
	}
	if !s.decodeBody(w, r, &req) {
		return
	}
	if req.Email == "" {
		http.Error(w, `{"error":"missing email"}`, http.StatusBadRequest)
		return
	}

	if err := s.users.ResetPassword(r.Context(), req.Email, req.RedirectTo); err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"message": "recovery sent"})
}

func (s *Server) updateRole(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID   string `json:"id"`
		Role string `json:"role"`
	}
	if !s.decodeBody(w, r, &req) {
		return
	}
	if req.ID == "" || req.Role == "" {
		http.Error(w, `{"error":"missing id or role"}`, http.StatusBadRequest)
		return
	}

	if err := s.users.UpdateRole(r.Context(), req.ID, req.Role); err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"message": "role updated"})
}

func (s *Server) updateProfile(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID        string `json:"id"`
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
	}
	if !s.decodeBody(w, r, &req) {
		return
	}
	if req.ID == "" {
		http.Error(w, `{"error":"missing id"}`, http.StatusBadRequest)
		return
	}

	if err := s.users.UpdateProfile(r.Context(), req.ID, req.FirstName, req.LastName); err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"message": "profile updated"})
}

func (s *Server) deleteUser(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID string `json:"id"`
	}
	if !s.decodeBody(w, r, &req) {
		return
	}
	if req.ID == "" {
		http.Error(w, `{"error":"missing id"}`, http.StatusBadRequest)
		return
	}

	if err := s.users.DeleteUser(r.Context(), req.ID); err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"message": "deleted"})
}
