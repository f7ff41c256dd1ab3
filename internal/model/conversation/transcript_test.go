package conversation_test

import (
	"reflect"
	"testing"

	"github.com/synthpanel/focusgroup/internal/model/conversation"
	"github.com/synthpanel/focusgroup/internal/model/persona"
)

func testPersonas() []persona.Persona {
	return []persona.Persona{
		{ID: 1, Name: "Marcus Webb"},
		{ID: 2, Name: "Jennifer Okafor"},
		{ID: 3, Name: "David Kim"},
	}
}

func TestRebuildMemoryOrderPreserving(t *testing.T) {
	transcript := []conversation.Entry{
		{Role: conversation.RoleModerator, Text: "Q1"},
		{Role: conversation.RolePersona, PersonaID: 1, PersonaName: "Marcus Webb", Text: "first"},
		{Role: conversation.RolePersona, PersonaID: 2, PersonaName: "Jennifer Okafor", Text: "one"},
		{Role: conversation.RoleModerator, Text: "Q2"},
		{Role: conversation.RolePersona, PersonaID: 1, PersonaName: "Marcus Webb", Text: "second"},
	}

	memory := conversation.RebuildMemory(transcript, testPersonas())

	if got := memory[1]; !reflect.DeepEqual(got, []string{"first", "second"}) {
		t.Fatalf("unexpected memory for persona 1: %v", got)
	}
	if got := memory[2]; !reflect.DeepEqual(got, []string{"one"}) {
		t.Fatalf("unexpected memory for persona 2: %v", got)
	}
	if got := memory[3]; len(got) != 0 {
		t.Fatalf("expected empty memory for silent persona, got %v", got)
	}
}

func TestRebuildMemoryInitializesEveryPersona(t *testing.T) {
	memory := conversation.RebuildMemory(nil, testPersonas())

	if len(memory) != 3 {
		t.Fatalf("expected 3 memory keys, got %d", len(memory))
	}
	for id, statements := range memory {
		if statements == nil || len(statements) != 0 {
			t.Fatalf("persona %d should start with an empty sequence, got %v", id, statements)
		}
	}
}

func TestRebuildMemoryIgnoresUnknownPersonaIDs(t *testing.T) {
	transcript := []conversation.Entry{
		{Role: conversation.RolePersona, PersonaID: 99, PersonaName: "Ghost", Text: "boo"},
		{Role: conversation.RolePersona, PersonaID: 1, PersonaName: "Marcus Webb", Text: "real"},
	}

	memory := conversation.RebuildMemory(transcript, testPersonas())

	if _, ok := memory[99]; ok {
		t.Fatal("unknown persona id must not create a memory key")
	}
	if got := memory[1]; !reflect.DeepEqual(got, []string{"real"}) {
		t.Fatalf("unexpected memory for persona 1: %v", got)
	}
}

func TestRebuildMemoryIdempotent(t *testing.T) {
	transcript := []conversation.Entry{
		{Role: conversation.RoleModerator, Text: "Q"},
		{Role: conversation.RolePersona, PersonaID: 2, PersonaName: "Jennifer Okafor", Text: "a"},
		{Role: conversation.RolePersona, PersonaID: 2, PersonaName: "Jennifer Okafor", Text: "b"},
	}

	first := conversation.RebuildMemory(transcript, testPersonas())
	second := conversation.RebuildMemory(transcript, testPersonas())

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("reconstruction not idempotent: %v vs %v", first, second)
	}
}

func TestCloneEntriesDoesNotAlias(t *testing.T) {
	original := []conversation.Entry{
		{Role: conversation.RoleModerator, Text: "Q"},
	}

	cloned := conversation.CloneEntries(original)
	cloned = append(cloned, conversation.Entry{Role: conversation.RoleModerator, Text: "Q2"})
	cloned[0].Text = "mutated"

	if original[0].Text != "Q" {
		t.Fatal("clone aliased the caller's transcript")
	}
	if len(original) != 1 {
		t.Fatalf("caller transcript length changed: %d", len(original))
	}
}

func TestCloneEntriesEmptyInput(t *testing.T) {
	if got := conversation.CloneEntries(nil); got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %v", got)
	}
}
