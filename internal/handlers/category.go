package handlers

import (
	"net/http"

	"github.com/crucial707/qa-forum/internal/repo"
)

type CategoryHandler struct {
	Repo *repo.CategoryRepo
}

// ListCategories returns every category ordered by name.
func (h *CategoryHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.Repo.List(r.Context())
	if err != nil {
		internalError(w, r, "list categories", err)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}
