package stream

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/synthpanel/focusgroup/internal/model/conversation"
	"github.com/synthpanel/focusgroup/internal/model/persona"
	"github.com/synthpanel/focusgroup/internal/service/focusgroup"
	"github.com/synthpanel/focusgroup/pkg/utils"
)

// Handler streams group-ask replies over Server-Sent Events. Replies arrive
// from the engine one blocking call at a time, so each is forwarded as soon
// as it completes instead of buffering the whole turn.
type Handler struct {
	svc *focusgroup.Service
}

// New creates a stream handler.
func New(svc *focusgroup.Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the streaming ask route.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/audiences/{audienceID}/ask/stream", h.handleAskStream)
}

type request struct {
	Question string               `json:"question"`
	History  []conversation.Entry `json:"history,omitempty"`
}

func (h *Handler) handleAskStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		utils.RespondError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	audienceID := chi.URLParam(r, "audienceID")

	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Question == "" {
		utils.RespondError(w, http.StatusBadRequest, "question is required")
		return
	}

	utils.SetupSSEHeaders(w)

	_, history, err := h.svc.AskWithObserver(r.Context(), audienceID, req.Question, req.History, func(resp conversation.Response) {
		utils.SendSSEEvent(w, flusher, "response", resp)
	})
	if err != nil {
		var notFound *persona.NotFoundError
		if errors.As(err, &notFound) {
			utils.SendSSEEvent(w, flusher, "error", map[string]string{"error": notFound.Error()})
			return
		}
		log.Printf("[stream] turn failed: %v", err)
		utils.SendSSEEvent(w, flusher, "error", map[string]string{"error": "generation failed"})
		return
	}

	utils.SendSSEEvent(w, flusher, "history", history)
	utils.SendSSEEvent(w, flusher, "end", map[string]bool{"finished": true})
}
