// Package httpapi exposes the gateway's HTTP JSON surface: public listing
// and download, token-gated upload and delete, and the admin panel routes
// for file, access-rule and user management.
package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pouchain/docstore/internal/logging"
	"github.com/pouchain/docstore/internal/server/services"
)

// Server wires the application services to gorilla/mux routes.
type Server struct {
	files     *services.FileService
	access    *services.AccessService
	users     *services.UserService
	jwtSecret []byte
	log       logging.Logger
}

func NewServer(files *services.FileService, access *services.AccessService, users *services.UserService, jwtSecret []byte, log logging.Logger) *Server {
	return &Server{
		files:     files,
		access:    access,
		users:     users,
		jwtSecret: jwtSecret,
		log:       log,
	}
}

// Router builds the full route table.
//
//	public:        GET /list, GET /get/{key}
//	bearer token:  PUT /upload, DELETE /delete
//	admin role:    everything under /admin/
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.cors, s.requestID)

	// CORS preflight for any path.
	r.PathPrefix("/").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}).Methods(http.MethodOptions)

	r.HandleFunc("/list", s.listFiles).Methods(http.MethodGet)
	r.HandleFunc("/get/{key:.+}", s.getFile).Methods(http.MethodGet)

	authed := r.NewRoute().Subrouter()
	authed.Use(s.authenticate)
	authed.HandleFunc("/upload", s.uploadFile).Methods(http.MethodPut)
	authed.HandleFunc("/delete", s.deleteFile).Methods(http.MethodDelete)

	admin := r.PathPrefix("/admin").Subrouter()
	admin.Use(s.authenticate, s.requireAdmin)
	s.registerAdminFiles(admin)
	s.registerAdminAccess(admin)
	s.registerAdminUsers(admin)

	return r
}
