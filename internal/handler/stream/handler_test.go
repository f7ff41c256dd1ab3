package stream

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/synthpanel/focusgroup/internal/model/conversation"
	"github.com/synthpanel/focusgroup/internal/model/persona"
	"github.com/synthpanel/focusgroup/internal/service/focusgroup"
)

type stubGenerator struct {
	selectIDs []int
}

func (g *stubGenerator) SelectResponders(_ context.Context, _ string, _ []persona.Persona, _ []conversation.Entry, _ conversation.Memory) ([]int, error) {
	return g.selectIDs, nil
}

func (g *stubGenerator) GenerateReply(_ context.Context, p persona.Persona, _ string, _ []string, _ []conversation.Entry, _ string) (string, error) {
	return fmt.Sprintf("reply from %s", p.Name), nil
}

func setupRouter(gen *stubGenerator) *chi.Mux {
	svc := focusgroup.NewService(persona.NewMemoryCatalog(persona.Seed()), gen)
	handler := New(svc)

	r := chi.NewRouter()
	handler.RegisterRoutes(r)
	return r
}

func TestAskStreamEmitsEventsPerResponse(t *testing.T) {
	r := setupRouter(&stubGenerator{selectIDs: []int{1, 2}})

	body := []byte(`{"question": "What comes to mind?"}`)
	req := httptest.NewRequest(http.MethodPost, "/audiences/premium_chocolate/ask/stream", bytes.NewReader(body))
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if got := resp.Header().Get("Content-Type"); got != "text/event-stream" {
		t.Fatalf("unexpected content type: %s", got)
	}

	out := resp.Body.String()
	if got := strings.Count(out, "event: response\n"); got != 2 {
		t.Fatalf("expected 2 response events, got %d:\n%s", got, out)
	}
	if !strings.Contains(out, "event: history\n") {
		t.Fatalf("missing history event:\n%s", out)
	}
	if !strings.Contains(out, "event: end\n") {
		t.Fatalf("missing end event:\n%s", out)
	}
	if !strings.Contains(out, "reply from Marcus Webb") {
		t.Fatalf("missing reply payload:\n%s", out)
	}
}

func TestAskStreamUnknownAudience(t *testing.T) {
	r := setupRouter(&stubGenerator{})

	body := []byte(`{"question": "Q"}`)
	req := httptest.NewRequest(http.MethodPost, "/audiences/nope/ask/stream", bytes.NewReader(body))
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if !strings.Contains(resp.Body.String(), "event: error\n") {
		t.Fatalf("expected error event:\n%s", resp.Body.String())
	}
}

func TestAskStreamMissingQuestion(t *testing.T) {
	r := setupRouter(&stubGenerator{})

	req := httptest.NewRequest(http.MethodPost, "/audiences/premium_chocolate/ask/stream", bytes.NewReader([]byte(`{}`)))
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}
