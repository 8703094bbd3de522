package assessment

import (
	"fmt"
	"math"
)

// Insight band thresholds. A score strictly above highBand is strong, strictly
// above moderateBand is moderate, anything else is a growth area.
const (
	highBand     = 70.0
	moderateBand = 40.0
)

// IkigaiScores holds the per-domain scores. With answers on the 1-5 scale the
// de facto range is [4, 100].
type IkigaiScores struct {
	Passion    float64 `json:"passion"`
	Mission    float64 `json:"mission"`
	Profession float64 `json:"profession"`
	Vocation   float64 `json:"vocation"`
}

// Get returns the score for d.
func (s IkigaiScores) Get(d Domain) float64 {
	switch d {
	case DomainPassion:
		return s.Passion
	case DomainMission:
		return s.Mission
	case DomainProfession:
		return s.Profession
	case DomainVocation:
		return s.Vocation
	}
	return 0
}

// IkigaiResult is the scored Ikigai questionnaire.
type IkigaiResult struct {
	Scores   IkigaiScores `json:"scores"`
	Insights []string     `json:"insights"`
}

// IsZero reports whether r is the zero result.
func (r IkigaiResult) IsZero() bool {
	return r.Scores == (IkigaiScores{}) && len(r.Insights) == 0
}

// Clone returns a deep copy of r.
func (r IkigaiResult) Clone() IkigaiResult {
	r.Insights = cloneStrings(r.Insights)
	return r
}

// ScoreIkigai scores a complete Ikigai answer set.
func ScoreIkigai(answers AnswerMap) (IkigaiResult, error) {
	if err := checkIkigai(answers); err != nil {
		return IkigaiResult{}, err
	}

	sums := make(map[Domain]float64, len(Domains))
	for _, q := range ikigaiCatalog {
		sums[q.Domain] += float64(answers[q.ID])
	}

	scores := IkigaiScores{
		Passion:    domainScore(sums[DomainPassion]),
		Mission:    domainScore(sums[DomainMission]),
		Profession: domainScore(sums[DomainProfession]),
		Vocation:   domainScore(sums[DomainVocation]),
	}

	insights := make([]string, 0, len(Domains))
	for _, d := range Domains {
		insights = append(insights, ikigaiInsight(d, scores.Get(d)))
	}

	return IkigaiResult{Scores: scores, Insights: insights}, nil
}

// domainScore maps the sum of five answers onto the reporting scale.
func domainScore(sum float64) float64 {
	return (sum / 5) * 20
}

type insightPhrases struct {
	template string
	high     string
	moderate string
	growth   string
}

var ikigaiPhrases = map[Domain]insightPhrases{
	DomainPassion: {
		template: "Your passion score of %d indicates %s with activities you love.",
		high:     "strong alignment",
		moderate: "moderate alignment",
		growth:   "areas for growth",
	},
	DomainMission: {
		template: "Your mission score of %d shows %s.",
		high:     "clear purpose",
		moderate: "developing purpose",
		growth:   "need for purpose exploration",
	},
	DomainProfession: {
		template: "Your profession score of %d reflects %s.",
		high:     "well-developed skills",
		moderate: "growing competencies",
		growth:   "skill development opportunities",
	},
	DomainVocation: {
		template: "Your vocation score of %d suggests %s.",
		high:     "strong market alignment",
		moderate: "moderate opportunities",
		growth:   "need for market exploration",
	},
}

func ikigaiInsight(d Domain, score float64) string {
	p := ikigaiPhrases[d]
	phrase := p.growth
	switch {
	case score > highBand:
		phrase = p.high
	case score > moderateBand:
		phrase = p.moderate
	}
	return fmt.Sprintf(p.template, int(math.Round(score)), phrase)
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
