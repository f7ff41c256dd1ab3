package focusgroup

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"

	"github.com/google/uuid"

	"github.com/synthpanel/focusgroup/internal/model/conversation"
	"github.com/synthpanel/focusgroup/internal/model/persona"
)

var ErrQuestionRequired = errors.New("question is required")

// Generator is the external text-generation capability the orchestrator
// delegates to. Tests substitute a deterministic stub.
type Generator interface {
	SelectResponders(ctx context.Context, question string, personas []persona.Persona, transcript []conversation.Entry, memory conversation.Memory) ([]int, error)
	GenerateReply(ctx context.Context, p persona.Persona, category string, ownStatements []string, transcript []conversation.Entry, question string) (string, error)
}

// Service drives stateless focus-group turns: every call receives the full
// prior transcript, rebuilds per-persona memory from it, and returns the new
// transcript. Nothing is retained between calls.
type Service struct {
	catalog persona.Catalog
	gen     Generator
}

// NewService wires the orchestrator to an audience catalog and a generator.
func NewService(catalog persona.Catalog, gen Generator) *Service {
	return &Service{catalog: catalog, gen: gen}
}

// Ask runs one group turn: append the moderator question, let the model pick
// 2-4 responders, and generate their replies in speaking order. Returns the
// replies and the updated transcript.
func (s *Service) Ask(ctx context.Context, audienceID, question string, history []conversation.Entry) ([]conversation.Response, []conversation.Entry, error) {
	return s.AskWithObserver(ctx, audienceID, question, history, nil)
}

// AskWithObserver is Ask with a per-reply callback, used by the SSE handler
// to forward each reply as soon as its blocking generation call returns.
func (s *Service) AskWithObserver(ctx context.Context, audienceID, question string, history []conversation.Entry, onResponse func(conversation.Response)) ([]conversation.Response, []conversation.Entry, error) {
	if question == "" {
		return nil, nil, ErrQuestionRequired
	}

	audience, err := s.catalog.Load(audienceID)
	if err != nil {
		return nil, nil, err
	}

	transcript := conversation.CloneEntries(history)
	memory := conversation.RebuildMemory(transcript, audience.Personas)

	transcript = append(transcript, conversation.Entry{
		Role: conversation.RoleModerator,
		Text: question,
	})

	responderIDs, err := s.gen.SelectResponders(ctx, question, audience.Personas, transcript, memory)
	if err != nil {
		return nil, nil, err
	}

	turn := uuid.NewString()
	log.Printf("[focusgroup] turn=%s audience=%s responders=%v", turn, audienceID, responderIDs)

	var responses []conversation.Response
	for _, id := range responderIDs {
		p, ok := findPersona(audience.Personas, id)
		if !ok {
			// Stale id from the selector; tolerate and move on.
			continue
		}

		text, err := s.gen.GenerateReply(ctx, p, audience.Category, memory[p.ID], transcript, question)
		if err != nil {
			// No retry and no rollback of earlier replies in this turn; the
			// error aborts the remaining loop iterations.
			return nil, nil, err
		}

		memory[p.ID] = append(memory[p.ID], text)
		transcript = append(transcript, conversation.Entry{
			Role:        conversation.RolePersona,
			PersonaID:   p.ID,
			PersonaName: p.Name,
			Text:        text,
		})

		response := conversation.Response{PersonaID: p.ID, PersonaName: p.Name, Text: text}
		responses = append(responses, response)
		if onResponse != nil {
			onResponse(response)
		}
	}

	log.Printf("[focusgroup] turn=%s completed responses=%d transcript=%d", turn, len(responses), len(transcript))
	return responses, transcript, nil
}

// AskPersona runs one directed turn against a single persona. The directed
// framing ("[To <Name>] <question>") is part of the persisted transcript, not
// display-only.
func (s *Service) AskPersona(ctx context.Context, audienceID string, personaID int, question string, history []conversation.Entry) (conversation.Response, []conversation.Entry, error) {
	if question == "" {
		return conversation.Response{}, nil, ErrQuestionRequired
	}

	audience, err := s.catalog.Load(audienceID)
	if err != nil {
		return conversation.Response{}, nil, err
	}

	p, ok := findPersona(audience.Personas, personaID)
	if !ok {
		return conversation.Response{}, nil, &persona.NotFoundError{Resource: "persona", ID: strconv.Itoa(personaID)}
	}

	transcript := conversation.CloneEntries(history)
	memory := conversation.RebuildMemory(transcript, audience.Personas)

	transcript = append(transcript, conversation.Entry{
		Role: conversation.RoleModerator,
		Text: fmt.Sprintf("[To %s] %s", p.Name, question),
	})

	turn := uuid.NewString()
	log.Printf("[focusgroup] turn=%s audience=%s direct persona=%d", turn, audienceID, personaID)

	text, err := s.gen.GenerateReply(ctx, p, audience.Category, memory[p.ID], transcript, question)
	if err != nil {
		return conversation.Response{}, nil, err
	}

	transcript = append(transcript, conversation.Entry{
		Role:        conversation.RolePersona,
		PersonaID:   p.ID,
		PersonaName: p.Name,
		Text:        text,
	})

	return conversation.Response{PersonaID: p.ID, PersonaName: p.Name, Text: text}, transcript, nil
}

func findPersona(personas []persona.Persona, id int) (persona.Persona, bool) {
	for _, p := range personas {
		if p.ID == id {
			return p, true
		}
	}
	return persona.Persona{}, false
}
