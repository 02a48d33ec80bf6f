package handler

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/hirewire/jobboard/internal/middleware"
	"github.com/hirewire/jobboard/internal/service"
)

type jobRequest struct {
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Location    string           `json:"location"`
	Salary      *decimal.Decimal `json:"salary"`
	Category    string           `json:"category"`
}

func (req *jobRequest) validate(w http.ResponseWriter) (service.JobInput, bool) {
	if req.Title == "" || req.Description == "" || req.Location == "" || req.Category == "" || req.Salary == nil {
		writeError(w, http.StatusBadRequest, "title, description, location, salary and category are required")
		return service.JobInput{}, false
	}
	if req.Salary.IsNegative() {
		writeError(w, http.StatusBadRequest, "salary must not be negative")
		return service.JobInput{}, false
	}
	return service.JobInput{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Salary:      *req.Salary,
		Category:    req.Category,
	}, true
}

// CreateJob handles job creation by the authenticated user
func (h *Handler) CreateJob(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing token")
		return
	}
	var req jobRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	in, ok := req.validate(w)
	if !ok {
		return
	}

	job, err := h.svc.CreateJob(user, in)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create job")
		return
	}
	writeJSON(w, http.StatusOK, job)
}

// GetJob returns one job posting
func (h *Handler) GetJob(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	job, err := h.svc.GetJob(id)
	if err != nil {
		respondServiceError(w, err, "job not found", "failed to find job")
		return
	}
	writeJSON(w, http.StatusOK, job)
}

// ListJobs returns every job posting
func (h *Handler) ListJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.svc.ListJobs()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to find jobs")
		return
	}
	writeJSON(w, http.StatusOK, jobs)
}

// UpdateJob replaces a job's mutable fields; owner only
func (h *Handler) UpdateJob(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing token")
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req jobRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	in, ok := req.validate(w)
	if !ok {
		return
	}

	job, err := h.svc.UpdateJob(user, id, in)
	if err != nil {
		respondServiceError(w, err, "job not found", "failed to update job")
		return
	}
	writeJSON(w, http.StatusOK, job)
}

// DeleteJob removes a job; owner only
func (h *Handler) DeleteJob(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing token")
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.svc.DeleteJob(user, id); err != nil {
		respondServiceError(w, err, "job not found", "failed to delete job")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "job deleted"})
}
