package httpapi

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
)

func (s *Server) router() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.loggingMiddleware)

	r.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "OK")
	}).Methods("GET")

	r.HandleFunc("/api/users/login", s.loginHandler("user")).Methods("POST")
	r.HandleFunc("/api/users/register", s.registerHandler).Methods("POST")
	r.HandleFunc("/api/users/logout", s.logoutHandler).Methods("POST")
	r.HandleFunc("/api/admin/login", s.loginHandler("admin")).Methods("POST")

	// Everything below requires a valid bearer token.
	authed := r.NewRoute().Subrouter()
	authed.Use(s.authMiddleware)

	authed.HandleFunc("/api/admin/register", s.adminRegisterHandler).Methods("POST")
	authed.HandleFunc("/api/admin/privileges", s.adminPrivilegesHandler).Methods("PUT")
	authed.HandleFunc("/api/users/account", s.deleteAccountHandler).Methods("DELETE")
	authed.HandleFunc("/api/admin/account", s.deleteAccountHandler).Methods("DELETE")
	authed.HandleFunc("/api/users/profile", s.getProfileHandler).Methods("GET")
	authed.HandleFunc("/api/users/profile", s.updateProfileHandler).Methods("PUT")
	authed.HandleFunc("/api/users/attendance/history", s.historyHandler).Methods("GET")
	authed.HandleFunc("/api/users/attendance", s.markHandler).Methods("POST")

	return r
}
