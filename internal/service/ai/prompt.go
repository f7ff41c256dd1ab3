package ai

import (
	"fmt"
	"strings"

	"github.com/synthpanel/focusgroup/internal/model/conversation"
	"github.com/synthpanel/focusgroup/internal/model/persona"
)

// Window sizes are deliberate prompt-size controls, not tunables: a persona is
// reminded of at most its last 5 statements, a reply sees the last 8 transcript
// entries, and the selector sees speakers from the last 6.
const (
	personaMemoryWindow = 5
	contextWindow       = 8
	recentSpeakerWindow = 6
)

// BuildPersonaSystemPrompt renders the character-grounding instruction block
// for one persona. ownStatements is that persona's prior utterances in
// transcript order; only the tail of the window is restated, with an explicit
// instruction not to contradict it.
func BuildPersonaSystemPrompt(p persona.Persona, category string, ownStatements []string) string {
	var history strings.Builder
	if len(ownStatements) > 0 {
		history.WriteString("\n\nWHAT YOU'VE ALREADY SAID IN THIS CONVERSATION:\n")
		start := len(ownStatements) - personaMemoryWindow
		if start < 0 {
			start = 0
		}
		for _, stmt := range ownStatements[start:] {
			history.WriteString(fmt.Sprintf("- %q\n", stmt))
		}
		history.WriteString("\nDo NOT contradict these. You can reference them naturally.")
	}

	topic := "THIS TOPIC"
	if category != "" {
		topic = strings.ToUpper(category)
	}

	return fmt.Sprintf(`You ARE %s. You are participating in a focus group discussion.

WHO YOU ARE:
- Name: %s
- Age: %d
- Occupation: %s
- Location: %s

YOUR STORY:
%s

YOUR RELATIONSHIP TO %s:
%s

YOUR PERSONALITY:
%s

HOW YOU SPEAK:
%s%s

---

CRITICAL INSTRUCTIONS:
1. Respond AS %s - stay in character completely
2. Use language natural to your background and personality
3. Reference your actual experiences and history
4. Don't sanitize your opinion - give your REAL view
5. Typical response: 2-4 sentences (but vary naturally - some answers are shorter)

NEVER DO THESE:
- Sound like a generic survey respondent
- Start with "I think..." every time (vary: "Honestly," "For me," "Look," "So," etc.)
- Use phrases like "quality matters to me" or "it depends"
- Contradict what you've already said
- Suddenly know things %s wouldn't know
- Use perfect grammar if that doesn't fit your character
- Use survey-speak like "I would say that..." or "In my opinion..."

Respond naturally and authentically as %s.`,
		p.Name,
		p.Name,
		p.Age,
		p.Occupation,
		p.Location,
		p.Backstory,
		topic,
		p.CategoryRelationship,
		strings.Join(p.PersonalityTraits, ", "),
		strings.Join(p.SpeechPatterns, ", "),
		history.String(),
		p.Name,
		p.Name,
		p.Name,
	)
}

// BuildContextualQuestion prefixes the question with the shared recency
// window: the last 8 transcript entries rendered one per line. An empty
// window sends the question bare.
func BuildContextualQuestion(transcript []conversation.Entry, question string) string {
	start := len(transcript) - contextWindow
	if start < 0 {
		start = 0
	}

	var recent strings.Builder
	for _, entry := range transcript[start:] {
		switch entry.Role {
		case conversation.RoleModerator:
			recent.WriteString(fmt.Sprintf("\nModerator: %s", entry.Text))
		case conversation.RolePersona:
			recent.WriteString(fmt.Sprintf("\n%s: %s", entry.PersonaName, entry.Text))
		}
	}

	if recent.Len() == 0 {
		return question
	}

	return fmt.Sprintf("[Recent conversation]%s\n\n---\n\nModerator's current question: %s", recent.String(), question)
}

const selectionUserPrompt = `You are moderating a focus group. The moderator just asked:

"{question}"

Here are the participants:
{participants}

Recent speakers (last few responses): {recent_speakers}

Select 2-4 participants who would NATURALLY respond to this question. Consider:
1. Who has relevant experience/opinions based on their profile?
2. Who hasn't spoken recently and might want to contribute?
3. Natural group dynamics - some people talk more than others
4. The question topic - who would this resonate with?

Return ONLY a JSON array of participant names who should respond, in the order they'd speak.
Example: ["Marcus", "Jennifer", "David"]

Do NOT include everyone. Real focus groups have natural turn-taking.`

// selectionInput assembles the template variables for the responder-selection
// chain: one summary line per persona and the distinct speakers from the
// transcript tail.
func selectionInput(question string, personas []persona.Persona, transcript []conversation.Entry, memory conversation.Memory) map[string]any {
	summaries := make([]string, 0, len(personas))
	for _, p := range personas {
		trait := "neutral"
		if len(p.PersonalityTraits) > 0 {
			trait = p.PersonalityTraits[0]
		}
		summaries = append(summaries, fmt.Sprintf("- %s (%d, %s): %s. Statements so far: %d",
			p.Name, p.Age, p.Occupation, trait, len(memory[p.ID])))
	}

	speakers := recentSpeakers(transcript)
	speakersText := "None yet"
	if len(speakers) > 0 {
		speakersText = strings.Join(speakers, ", ")
	}

	return map[string]any{
		"question":        question,
		"participants":    strings.Join(summaries, "\n"),
		"recent_speakers": speakersText,
	}
}

// recentSpeakers returns the distinct persona names in the transcript tail,
// in first-appearance order.
func recentSpeakers(transcript []conversation.Entry) []string {
	start := len(transcript) - recentSpeakerWindow
	if start < 0 {
		start = 0
	}

	seen := make(map[string]bool)
	var names []string
	for _, entry := range transcript[start:] {
		if entry.Role != conversation.RolePersona || seen[entry.PersonaName] {
			continue
		}
		seen[entry.PersonaName] = true
		names = append(names, entry.PersonaName)
	}
	return names
}
