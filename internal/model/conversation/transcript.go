package conversation

import "github.com/synthpanel/focusgroup/internal/model/persona"

// Entry roles. The transcript is the sole persisted conversation state and
// round-trips between client and server on every call.
const (
	RoleModerator = "moderator"
	RolePersona   = "persona"
)

// Entry is one transcript line: either a moderator question or a persona reply.
type Entry struct {
	Role        string `json:"role"`
	Text        string `json:"text"`
	PersonaID   int    `json:"persona_id,omitempty"`
	PersonaName string `json:"persona_name,omitempty"`
}

// Response is one generated reply, returned to the caller alongside the
// updated transcript. It is never stored beyond its persona Entry.
type Response struct {
	PersonaID   int    `json:"persona_id"`
	PersonaName string `json:"persona_name"`
	Text        string `json:"text"`
}

// Memory maps persona id to that persona's own past utterances, in transcript
// order. It is always a derived index over the transcript, never an
// independent source of truth.
type Memory map[int][]string

// RebuildMemory derives per-persona memory from a transcript. Every loaded
// persona starts with an empty history; entries referencing unknown persona
// ids are ignored, which tolerates audience changes mid-session. The result
// depends only on transcript content, so rebuilding is idempotent.
func RebuildMemory(transcript []Entry, personas []persona.Persona) Memory {
	memory := make(Memory, len(personas))
	for _, p := range personas {
		memory[p.ID] = []string{}
	}

	for _, entry := range transcript {
		if entry.Role != RolePersona {
			continue
		}
		if _, known := memory[entry.PersonaID]; !known {
			continue
		}
		memory[entry.PersonaID] = append(memory[entry.PersonaID], entry.Text)
	}

	return memory
}

// CloneEntries copies a client-supplied transcript so the orchestrator can
// append to it without aliasing caller-owned state.
func CloneEntries(transcript []Entry) []Entry {
	if len(transcript) == 0 {
		return []Entry{}
	}
	copied := make([]Entry, len(transcript))
	copy(copied, transcript)
	return copied
}
