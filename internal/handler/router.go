package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/synthpanel/focusgroup/internal/handler/ask"
	"github.com/synthpanel/focusgroup/internal/handler/audience"
	"github.com/synthpanel/focusgroup/internal/handler/stream"
	middlewarePkg "github.com/synthpanel/focusgroup/internal/middleware"
	personaModel "github.com/synthpanel/focusgroup/internal/model/persona"
	"github.com/synthpanel/focusgroup/internal/service/focusgroup"
	"github.com/synthpanel/focusgroup/pkg/utils"
)

// NewRouter wires HTTP routes to core services. fgSvc is nil when no model
// credentials are configured; the ask routes then answer 503 while the
// catalog routes keep working.
func NewRouter(catalog personaModel.Catalog, fgSvc *focusgroup.Service) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		utils.RespondJSON(w, http.StatusOK, map[string]string{
			"status":  "ok",
			"service": "focus-group-api",
			"version": "2.0.0",
			"mode":    "stateless",
		})
	})

	audienceHandler := audience.New(catalog)

	r.Route("/api", func(api chi.Router) {
		audienceHandler.RegisterRoutes(api)

		if fgSvc == nil {
			api.Post("/audiences/{audienceID}/ask", respondAIUnavailable)
			api.Post("/audiences/{audienceID}/ask/{personaID}", respondAIUnavailable)
			return
		}

		// chi matches the static /ask/stream segment ahead of /ask/{personaID}.
		stream.New(fgSvc).RegisterRoutes(api)
		ask.New(fgSvc).RegisterRoutes(api)
	})

	return r
}

func respondAIUnavailable(w http.ResponseWriter, _ *http.Request) {
	utils.RespondError(w, http.StatusServiceUnavailable, "model credentials not configured")
}
