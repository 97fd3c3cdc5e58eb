package httpapi

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/pouchain/docstore/internal/mutate"
	"github.com/pouchain/docstore/internal/objstore"
)

func (s *Server) registerAdminFiles(r *mux.Router) {
	r.HandleFunc("/files/rename", s.renameFile).Methods(http.MethodPost)
	r.HandleFunc("/files/bulk-delete", s.bulkDelete).Methods(http.MethodPost)
	r.HandleFunc("/folders/create", s.createFolder).Methods(http.MethodPost)
	r.HandleFunc("/folders/rename", s.renameFolder).Methods(http.MethodPost)
	r.HandleFunc("/folders/delete", s.deleteFolder).Methods(http.MethodPost)
	r.HandleFunc("/folders/reorder", s.reorderFolder).Methods(http.MethodPost)
}

// listFiles returns the flat listing visible to the requester. The userId
// query parameter is optional; anonymous requesters see only unrestricted
// paths. An optional q parameter narrows to keys containing the substring.
func (s *Server) listFiles(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	query := r.URL.Query().Get("q")

	objects, err := s.files.List(r.Context(), userID, query)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if objects == nil {
		objects = []objstore.Object{}
	}
	s.writeJSON(w, http.StatusOK, objects)
}

// getFile streams the raw object bytes with the stored content type.
func (s *Server) getFile(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]

	body, err := s.files.Get(r.Context(), key)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if body.ContentType != "" {
		w.Header().Set("Content-Type", body.ContentType)
	} else {
		w.Header().Set("Content-Type", "application/octet-stream")
	}
	w.Header().Set("Content-Length", strconv.Itoa(len(body.Data)))
	_, _ = w.Write(body.Data)
}

func (s *Server) uploadFile(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		http.Error(w, `{"error":"invalid multipart form"}`, http.StatusBadRequest)
		return
	}

	key := r.FormValue("key")
	if key == "" {
		http.Error(w, `{"error":"missing key"}`, http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, `{"error":"missing file"}`, http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	body := &objstore.Body{Data: data, ContentType: header.Header.Get("Content-Type")}
	if err := s.files.Upload(r.Context(), key, body); err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"message": "uploaded", "key": key})
}

func (s *Server) deleteFile(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Key string `json:"key"`
	}
	if !s.decodeBody(w, r, &req) {
		return
	}
	if req.Key == "" {
		http.Error(w, `{"error":"missing key"}`, http.StatusBadRequest)
		return
	}

	if err := s.files.Delete(r.Context(), req.Key); err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"message": "deleted", "key": req.Key})
}

func (s *Server) renameFile(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OldKey string `json:"oldKey"`
		NewKey string `json:"newKey"`
	}
	if !s.decodeBody(w, r, &req) {
		return
	}
	if req.OldKey == "" || req.NewKey == "" {
		http.Error(w, `{"error":"missing oldKey or newKey"}`, http.StatusBadRequest)
		return
	}

	if err := s.files.RenameFile(r.Context(), req.OldKey, req.NewKey); err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"message": "renamed",
		"oldKey":  req.OldKey,
		"newKey":  req.NewKey,
	})
}

func (s *Server) bulkDelete(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Selection []mutate.Selection `json:"selection"`
	}
	if !s.decodeBody(w, r, &req) {
		return
	}
	if len(req.Selection) == 0 {
		http.Error(w, `{"error":"missing selection"}`, http.StatusBadRequest)
		return
	}

	count, err := s.files.BulkDelete(r.Context(), req.Selection)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"message": "deleted", "count": count})
}

func (s *Server) createFolder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if !s.decodeBody(w, r, &req) {
		return
	}
	if req.Name == "" {
		http.Error(w, `{"error":"missing name"}`, http.StatusBadRequest)
		return
	}

	if err := s.files.CreateFolder(r.Context(), req.Name); err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"message": "created", "name": req.Name})
}

func (s *Server) renameFolder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OldPrefix string `json:"oldPrefix"`
		NewPrefix string `json:"newPrefix"`
	}
	if !s.decodeBody(w, r, &req) {
		return
	}
	if req.OldPrefix == "" || req.NewPrefix == "" {
		http.Error(w, `{"error":"missing oldPrefix or newPrefix"}`, http.StatusBadRequest)
		return
	}

	count, err := s.files.RenameFolder(r.Context(), req.OldPrefix, req.NewPrefix)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"message": "renamed", "count": count})
}

func (s *Server) deleteFolder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Folder string `json:"folder"`
	}
	if !s.decodeBody(w, r, &req) {
		return
	}
	if req.Folder == "" {
		http.Error(w, `{"error":"missing folder"}`, http.StatusBadRequest)
		return
	}

	count, err := s.files.DeleteFolder(r.Context(), req.Folder)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"message": "deleted", "count": count})
}

func (s *Server) reorderFolder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name      string `json:"name"`
		TargetRow int    `json:"targetRow"`
		Before    string `json:"before"`
	}
	if !s.decodeBody(w, r, &req) {
		return
	}
	if req.Name == "" || req.TargetRow < 1 {
		http.Error(w, `{"error":"missing name or targetRow"}`, http.StatusBadRequest)
		return
	}

	if err := s.files.Reorder(r.Context(), req.Name, req.TargetRow, req.Before); err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"message": "reordered"})
}
