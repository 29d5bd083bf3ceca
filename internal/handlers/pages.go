package handlers

import (
	"net/http"

	"tripfront/internal/web"
)

// PagesHandler serves the static landing page
type PagesHandler struct {
	renderer *web.Renderer
}

// NewPagesHandler creates a new PagesHandler
func NewPagesHandler(renderer *web.Renderer) *PagesHandler {
	return &PagesHandler{renderer: renderer}
}

// Index handles GET /. The root pattern catches everything unmatched, so
// any other path is a 404.
func (h *PagesHandler) Index(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	h.renderer.Render(w, http.StatusOK, "index.html", nil)
}
