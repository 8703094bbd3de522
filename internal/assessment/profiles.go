package assessment

import (
	"fmt"
)

// TypeProfile is the descriptive content attached to a type code.
type TypeProfile struct {
	Strengths   []string `json:"strengths"`
	Weaknesses  []string `json:"weaknesses"`
	WorkStyle   []string `json:"workStyle"`
	Description string   `json:"description"`
}

// Only a handful of types are curated. Everything else gets the generic
// profile with the code interpolated into the description.
var curatedProfiles = map[string]TypeProfile{
	"INTJ": {
		Strengths:   []string{"Strategic thinking", "Independent", "Determined", "Innovative"},
		Weaknesses:  []string{"Can be overly critical", "Impatient with inefficiency", "May ignore emotions"},
		WorkStyle:   []string{"Prefers autonomy", "Long-term planning", "Complex problem solving"},
		Description: "The Architect - Imaginative and strategic thinkers, with a plan for everything.",
	},
	"ENFP": {
		Strengths:   []string{"Enthusiastic", "Creative", "Flexible", "Good with people"},
		Weaknesses:  []string{"Can be unfocused", "Dislikes routine", "Overthinks criticism"},
		WorkStyle:   []string{"Collaborative", "Variety in tasks", "People-focused projects"},
		Description: "The Campaigner - Enthusiastic, creative and sociable free spirits.",
	},
}

// LookupProfile returns the profile for code, falling back to the generic
// profile for uncurated codes. The returned slices are owned by the caller.
func LookupProfile(code string) TypeProfile {
	if p, ok := curatedProfiles[code]; ok {
		return TypeProfile{
			Strengths:   cloneStrings(p.Strengths),
			Weaknesses:  cloneStrings(p.Weaknesses),
			WorkStyle:   cloneStrings(p.WorkStyle),
			Description: p.Description,
		}
	}
	return TypeProfile{
		Strengths:   []string{"Analytical", "Reliable", "Creative", "Empathetic"},
		Weaknesses:  []string{"Can be perfectionist", "May avoid conflict", "Sensitive to stress"},
		WorkStyle:   []string{"Balanced approach", "Team collaboration", "Quality focused"},
		Description: fmt.Sprintf("The %s type - A unique combination of traits and preferences.", code),
	}
}
