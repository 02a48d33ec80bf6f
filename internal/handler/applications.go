package handler

import (
	"net/http"

	"github.com/hirewire/jobboard/internal/middleware"
)

type createApplicationRequest struct {
	JobID   int    `json:"job_id"`
	Message string `json:"message"`
}

type updateApplicationRequest struct {
	Message string `json:"message"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// CreateApplication handles applying to a job
func (h *Handler) CreateApplication(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing token")
		return
	}
	var req createApplicationRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.JobID <= 0 || req.Message == "" {
		writeError(w, http.StatusBadRequest, "job_id and message are required")
		return
	}

	app, err := h.svc.CreateApplication(user, req.JobID, req.Message)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create application")
		return
	}
	writeJSON(w, http.StatusOK, app)
}

// GetApplication returns one application
func (h *Handler) GetApplication(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	app, err := h.svc.GetApplication(id)
	if err != nil {
		respondServiceError(w, err, "application not found", "failed to get application")
		return
	}
	writeJSON(w, http.StatusOK, app)
}

// ListApplications returns every application
func (h *Handler) ListApplications(w http.ResponseWriter, r *http.Request) {
	apps, err := h.svc.ListApplications()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get applications")
		return
	}
	writeJSON(w, http.StatusOK, apps)
}

// UpdateApplication replaces the message; applicant only
func (h *Handler) UpdateApplication(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing token")
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req updateApplicationRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Message == "" {
		writeError(w, http.StatusBadRequest, "message is required")
		return
	}

	app, err := h.svc.UpdateApplication(user, id, req.Message)
	if err != nil {
		respondServiceError(w, err, "application not found", "failed to update application")
		return
	}
	writeJSON(w, http.StatusOK, app)
}

// UpdateApplicationStatus sets the status; employer of the job only
func (h *Handler) UpdateApplicationStatus(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing token")
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req updateStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Status == "" {
		writeError(w, http.StatusBadRequest, "status is required")
		return
	}

	app, err := h.svc.UpdateApplicationStatus(user, id, req.Status)
	if err != nil {
		respondServiceError(w, err, "application not found", "failed to update application status")
		return
	}
	writeJSON(w, http.StatusOK, app)
}

// DeleteApplication removes an application; applicant only
func (h *Handler) DeleteApplication(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing token")
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.svc.DeleteApplication(user, id); err != nil {
		respondServiceError(w, err, "application not found", "failed to delete application")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "application deleted"})
}
