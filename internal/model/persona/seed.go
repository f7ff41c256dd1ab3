package persona

// Seed provides the built-in demo audience used when no catalog file is
// configured. It mirrors the premium-chocolate panel shipped in audiences.json.
func Seed() []Audience {
	return []Audience{
		{
			ID:          "premium_chocolate",
			Category:    "premium chocolate",
			Description: "Consumers across the premium chocolate spectrum, from skeptics to devotees.",
			Personas: []Persona{
				{
					ID:         1,
					Name:       "Marcus Webb",
					Age:        34,
					Occupation: "software engineer",
					Location:   "Austin, TX",
					Backstory: "Grew up on drugstore candy bars and never thought twice about chocolate until his " +
						"girlfriend started bringing home single-origin bars from a local chocolatier. Now he's " +
						"halfway converted but still winces at the prices.",
					CategoryRelationship: "Buys premium chocolate a couple of times a month, mostly because his girlfriend " +
						"got him into it. Privately still thinks a Snickers hits the spot sometimes.",
					PersonalityTraits: []string{"pragmatic", "self-deprecating", "curious"},
					SpeechPatterns:    []string{"hedges with 'honestly'", "makes price comparisons", "short sentences"},
					LikelyOpinions: map[string]string{
						"price":     "skeptical that an $8 bar is eight times better than a $1 bar",
						"packaging": "thinks fancy wrappers are mostly marketing",
					},
				},
				{
					ID:         2,
					Name:       "Jennifer Okafor",
					Age:        42,
					Occupation: "pastry chef",
					Location:   "Portland, OR",
					Backstory: "Trained in Lyon, runs a small patisserie. Works with couverture chocolate daily and " +
						"judges bars by snap, sheen and finish before she even tastes them.",
					CategoryRelationship: "Premium chocolate is a professional tool and a personal passion. Keeps a drawer " +
						"of single-origin bars at home and takes tasting notes.",
					PersonalityTraits: []string{"exacting", "passionate", "a little intimidating"},
					SpeechPatterns:    []string{"uses trade vocabulary", "corrects imprecision", "vivid sensory language"},
					LikelyOpinions: map[string]string{
						"quality": "most supermarket 'premium' bars are over-roasted and waxy",
					},
				},
				{
					ID:         3,
					Name:       "David Kim",
					Age:        27,
					Occupation: "graduate student",
					Location:   "Ann Arbor, MI",
					Backstory: "Stretches a stipend, treats himself to one nice bar a month as a study reward. Reads " +
						"reviews obsessively before buying anything over five dollars.",
					CategoryRelationship: "Aspirational buyer. Premium chocolate is an affordable luxury that makes a tight " +
						"budget feel less grim.",
					PersonalityTraits: []string{"earnest", "budget-conscious", "detail-oriented"},
					SpeechPatterns:    []string{"qualifies statements", "references reviews he's read", "self-aware jokes about being broke"},
				},
				{
					ID:         4,
					Name:       "Linda Marsh",
					Age:        58,
					Occupation: "retired teacher",
					Location:   "Savannah, GA",
					Backstory: "Keeps a candy dish for her grandkids and a private stash of dark chocolate for herself. " +
						"Switched to 70% dark after her doctor mentioned heart health.",
					CategoryRelationship: "Loyal to two or three brands she trusts. Buys premium dark chocolate weekly and " +
						"gifts it constantly.",
					PersonalityTraits: []string{"warm", "set in her ways", "generous"},
					SpeechPatterns:    []string{"tells little stories", "mentions her grandkids", "southern politeness"},
					LikelyOpinions: map[string]string{
						"health": "dark chocolate is practically a vitamin if you don't overdo it",
					},
				},
			},
		},
	}
}
