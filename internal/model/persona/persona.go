package persona

// Persona captures one simulated focus-group participant. The narrative
// anchors (Backstory, CategoryRelationship) are what keep generated answers
// consistent across a session.
type Persona struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Age        int    `json:"age"`
	Occupation string `json:"occupation"`
	Location   string `json:"location"`

	Backstory            string `json:"backstory"`
	CategoryRelationship string `json:"category_relationship"`

	PersonalityTraits []string `json:"personality_traits"`
	SpeechPatterns    []string `json:"speech_patterns"`

	LikelyOpinions map[string]string `json:"likely_opinions,omitempty"`
}

// FirstName returns the leading word of the persona's name, used for loose
// name matching when the model refers to participants informally.
func (p Persona) FirstName() string {
	for i := 0; i < len(p.Name); i++ {
		if p.Name[i] == ' ' {
			return p.Name[:i]
		}
	}
	return p.Name
}

// Audience is a named panel of personas sharing a product/topic category.
type Audience struct {
	ID          string    `json:"id"`
	Category    string    `json:"category"`
	Description string    `json:"description,omitempty"`
	Personas    []Persona `json:"personas"`
}

// Summary is the lightweight audience listing returned by the catalog index.
type Summary struct {
	ID           string `json:"id"`
	Category     string `json:"category"`
	Description  string `json:"description"`
	PersonaCount int    `json:"persona_count"`
}
