package handlers

import (
	"fmt"
	"html/template"
	"net/http"

	"protein-explorer/logging"
	"protein-explorer/web"
)

// PageHandler serves the single embedded page; all data arrives through the
// JSON endpoints, so the UI layer stays decoupled from the fetch logic.
type PageHandler struct {
	tmpl *template.Template
}

func NewPageHandler() (*PageHandler, error) {
	tmpl, err := template.ParseFS(web.Templates, "templates/index.html")
	if err != nil {
		return nil, fmt.Errorf("parse index template: %w", err)
	}
	return &PageHandler{tmpl: tmpl}, nil
}

func (h *PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.tmpl.ExecuteTemplate(w, "index.html", nil); err != nil {
		logging.Logger.Errorf("Event ID: PAGE_RENDER_FAILED, Description: Failed to render index page: %v", err)
	}
}
