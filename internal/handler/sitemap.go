package handler

import (
	"fmt"
	"net/http"

	"github.com/beevik/etree"
)

// Sitemap serves an XML urlset of every job detail URL for crawlers
func (h *Handler) Sitemap(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.svc.ListJobs()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to build sitemap")
		return
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	urlset := doc.CreateElement("urlset")
	urlset.CreateAttr("xmlns", "http://www.sitemaps.org/schemas/sitemap/0.9")
	for _, job := range jobs {
		url := urlset.CreateElement("url")
		url.CreateElement("loc").SetText(fmt.Sprintf("%s/api/jobs/%d", h.baseURL, job.ID))
		url.CreateElement("lastmod").SetText(job.UpdatedAt.Format("2006-01-02"))
	}

	w.Header().Set("Content-Type", "application/xml")
	doc.Indent(2)
	if _, err := doc.WriteTo(w); err != nil {
		// Headers are already out; nothing left to do but log at the caller.
		return
	}
}
