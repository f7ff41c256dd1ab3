package audience

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/synthpanel/focusgroup/internal/model/persona"
	"github.com/synthpanel/focusgroup/pkg/utils"
)

// Handler serves the audience catalog.
type Handler struct {
	catalog persona.Catalog
}

// New creates an audience handler.
func New(catalog persona.Catalog) *Handler {
	return &Handler{catalog: catalog}
}

// RegisterRoutes mounts the audience routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/audiences", h.handleList)
	r.Get("/audiences/{audienceID}", h.handleGet)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.catalog.List()
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "failed to load audience catalog")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]any{"audiences": summaries})
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	audienceID := chi.URLParam(r, "audienceID")

	aud, err := h.catalog.Load(audienceID)
	if err != nil {
		var notFound *persona.NotFoundError
		if errors.As(err, &notFound) {
			utils.RespondError(w, http.StatusNotFound, notFound.Error())
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, "failed to load audience catalog")
		return
	}

	utils.RespondJSON(w, http.StatusOK, aud)
}
