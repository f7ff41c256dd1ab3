package ask

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/synthpanel/focusgroup/internal/model/conversation"
	"github.com/synthpanel/focusgroup/internal/model/persona"
	"github.com/synthpanel/focusgroup/internal/service/focusgroup"
	"github.com/synthpanel/focusgroup/pkg/utils"
)

// Request is the stateless ask payload: the moderator question plus the full
// prior transcript, which the client owns.
type Request struct {
	Question string               `json:"question"`
	History  []conversation.Entry `json:"history,omitempty"`
}

// GroupResponse answers a group ask.
type GroupResponse struct {
	Responses []conversation.Response `json:"responses"`
	History   []conversation.Entry    `json:"history"`
}

// PersonaResponse answers a direct ask.
type PersonaResponse struct {
	Response conversation.Response `json:"response"`
	History  []conversation.Entry  `json:"history"`
}

// Handler serves the stateless ask endpoints.
type Handler struct {
	svc *focusgroup.Service
}

// New creates an ask handler.
func New(svc *focusgroup.Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the ask routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/audiences/{audienceID}/ask", h.handleAskGroup)
	r.Post("/audiences/{audienceID}/ask/{personaID}", h.handleAskPersona)
}

func (h *Handler) handleAskGroup(w http.ResponseWriter, r *http.Request) {
	audienceID := chi.URLParam(r, "audienceID")

	req, ok := decodeRequest(w, r)
	if !ok {
		return
	}

	responses, history, err := h.svc.Ask(r.Context(), audienceID, req.Question, req.History)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	if responses == nil {
		responses = []conversation.Response{}
	}
	utils.RespondJSON(w, http.StatusOK, GroupResponse{Responses: responses, History: history})
}

func (h *Handler) handleAskPersona(w http.ResponseWriter, r *http.Request) {
	audienceID := chi.URLParam(r, "audienceID")

	personaID, err := strconv.Atoi(chi.URLParam(r, "personaID"))
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "persona id must be an integer")
		return
	}

	req, ok := decodeRequest(w, r)
	if !ok {
		return
	}

	response, history, err := h.svc.AskPersona(r.Context(), audienceID, personaID, req.Question, req.History)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, PersonaResponse{Response: response, History: history})
}

func decodeRequest(w http.ResponseWriter, r *http.Request) (Request, bool) {
	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return Request{}, false
	}
	if req.Question == "" {
		utils.RespondError(w, http.StatusBadRequest, "question is required")
		return Request{}, false
	}
	return req, true
}

func respondServiceError(w http.ResponseWriter, err error) {
	var notFound *persona.NotFoundError
	switch {
	case errors.Is(err, focusgroup.ErrQuestionRequired):
		utils.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &notFound):
		utils.RespondError(w, http.StatusNotFound, notFound.Error())
	default:
		log.Printf("[ask] turn failed: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "generation failed")
	}
}
