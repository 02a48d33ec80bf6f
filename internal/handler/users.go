package handler

import (
	"net/http"
)

// GetUser returns a user's public profile. The password hash carries a
// `json:"-"` tag and is never serialized.
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	user, err := h.svc.GetUser(id)
	if err != nil {
		respondServiceError(w, err, "user not found", "failed to find user")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// GetUserJobs returns the jobs created by a user
func (h *Handler) GetUserJobs(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if _, err := h.svc.GetUser(id); err != nil {
		respondServiceError(w, err, "user not found", "failed to find jobs")
		return
	}
	jobs, err := h.svc.ListJobsByEmployer(id)
	if err != nil {
		writeError(w, http.StatusNotFound, "jobs not found")
		return
	}
	writeJSON(w, http.StatusOK, jobs)
}

// GetUserApplications returns the applications submitted by a user
func (h *Handler) GetUserApplications(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if _, err := h.svc.GetUser(id); err != nil {
		respondServiceError(w, err, "user not found", "failed to find applications")
		return
	}
	apps, err := h.svc.ListApplicationsByUser(id)
	if err != nil {
		writeError(w, http.StatusNotFound, "applications not found")
		return
	}
	writeJSON(w, http.StatusOK, apps)
}
