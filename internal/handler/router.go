package handler

import (
	"github.com/gorilla/mux"

	"github.com/hirewire/jobboard/internal/middleware"
	"github.com/hirewire/jobboard/internal/service"
)

// NewRouter wires every route. Read endpoints are public; mutating routes
// sit behind the bearer-token middleware.
func NewRouter(h *Handler, svc *service.Service) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/healthz", h.Health).Methods("GET")
	r.HandleFunc("/sitemap.xml", h.Sitemap).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()

	// Public routes
	api.HandleFunc("/auth/register", h.Register).Methods("POST")
	api.HandleFunc("/auth/login", h.Login).Methods("POST")
	api.HandleFunc("/jobs", h.ListJobs).Methods("GET")
	api.HandleFunc("/jobs/{id}", h.GetJob).Methods("GET")
	api.HandleFunc("/applications", h.ListApplications).Methods("GET")
	api.HandleFunc("/applications/{id}", h.GetApplication).Methods("GET")
	api.HandleFunc("/users/{id}", h.GetUser).Methods("GET")
	api.HandleFunc("/users/{id}/jobs", h.GetUserJobs).Methods("GET")
	api.HandleFunc("/users/{id}/applications", h.GetUserApplications).Methods("GET")

	// Protected routes
	authRouter := api.PathPrefix("/").Subrouter()
	authRouter.Use(middleware.Auth(svc))
	authRouter.HandleFunc("/jobs", h.CreateJob).Methods("POST")
	authRouter.HandleFunc("/jobs/{id}", h.UpdateJob).Methods("PUT")
	authRouter.HandleFunc("/jobs/{id}", h.DeleteJob).Methods("DELETE")
	authRouter.HandleFunc("/applications", h.CreateApplication).Methods("POST")
	authRouter.HandleFunc("/applications/{id}", h.UpdateApplication).Methods("PUT")
	authRouter.HandleFunc("/applications/{id}/status", h.UpdateApplicationStatus).Methods("PUT")
	authRouter.HandleFunc("/applications/{id}", h.DeleteApplication).Methods("DELETE")

	return r
}
