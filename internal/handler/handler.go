package handler

import (
	"github.com/hirewire/jobboard/internal/service"
)

// Pinger reports whether the backing database is reachable
type Pinger interface {
	Ping() error
}

// Handler holds the HTTP endpoints
type Handler struct {
	svc     *service.Service
	baseURL string
	db      Pinger
}

// NewHandler initializes a new handler. baseURL is the public base used in
// the sitemap; db may be nil, which disables the database health probe.
func NewHandler(svc *service.Service, baseURL string, db Pinger) *Handler {
	return &Handler{svc: svc, baseURL: baseURL, db: db}
}
