package assessment

import (
	"fmt"
)

// Horizon is an action-plan time bucket.
type Horizon string

const (
	HorizonWeek    Horizon = "1w"
	HorizonMonth   Horizon = "1m"
	HorizonQuarter Horizon = "3m"
)

// Horizons is the required order of action-plan entries.
var Horizons = []Horizon{HorizonWeek, HorizonMonth, HorizonQuarter}

// ActionStep groups the steps for one horizon.
type ActionStep struct {
	Horizon Horizon  `json:"horizon"`
	Steps   []string `json:"steps"`
}

// CombinedResult is the unified profile built from both questionnaires.
type CombinedResult struct {
	Ikigai      IkigaiResult `json:"ikigai"`
	MBTI        MBTIResult   `json:"mbti"`
	Careers     []string     `json:"careers"`
	OptimalWork []string     `json:"optimalWork"`
	Blindspots  []string     `json:"blindspots"`
	ActionPlan  []ActionStep `json:"actionPlan"`
}

// Clone returns a deep copy of r.
func (r CombinedResult) Clone() CombinedResult {
	r.Ikigai = r.Ikigai.Clone()
	r.MBTI = r.MBTI.Clone()
	r.Careers = cloneStrings(r.Careers)
	r.OptimalWork = cloneStrings(r.OptimalWork)
	r.Blindspots = cloneStrings(r.Blindspots)
	if r.ActionPlan != nil {
		plan := make([]ActionStep, len(r.ActionPlan))
		for i, s := range r.ActionPlan {
			plan[i] = ActionStep{Horizon: s.Horizon, Steps: cloneStrings(s.Steps)}
		}
		r.ActionPlan = plan
	}
	return r
}

// ValidateActionPlan checks that plan has exactly one entry per horizon in
// 1w, 1m, 3m order.
func ValidateActionPlan(plan []ActionStep) error {
	if len(plan) != len(Horizons) {
		return fmt.Errorf("action plan has %d entries, want %d", len(plan), len(Horizons))
	}
	for i, h := range Horizons {
		if plan[i].Horizon != h {
			return fmt.Errorf("action plan entry %d has horizon %q, want %q", i, plan[i].Horizon, h)
		}
	}
	return nil
}

// Synthesizer builds a combined profile from the two questionnaire results.
type Synthesizer interface {
	Synthesize(ikigai IkigaiResult, mbti MBTIResult) (CombinedResult, error)
}

// SynthesizerFunc adapts a function to the Synthesizer interface.
type SynthesizerFunc func(ikigai IkigaiResult, mbti MBTIResult) (CombinedResult, error)

// Synthesize calls f after checking preconditions and validates its output.
func (f SynthesizerFunc) Synthesize(ikigai IkigaiResult, mbti MBTIResult) (CombinedResult, error) {
	if err := checkSynthesisInputs(ikigai, mbti); err != nil {
		return CombinedResult{}, err
	}
	out, err := f(ikigai, mbti)
	if err != nil {
		return CombinedResult{}, err
	}
	if err := ValidateActionPlan(out.ActionPlan); err != nil {
		return CombinedResult{}, fmt.Errorf("synthesizer output: %w", err)
	}
	return out, nil
}

// StaticSynthesizer returns a fixed illustrative profile. Careers, work notes,
// blind spots and the plan do not depend on the scores; the supplied results
// are carried through unchanged.
type StaticSynthesizer struct{}

// Synthesize implements Synthesizer.
func (StaticSynthesizer) Synthesize(ikigai IkigaiResult, mbti MBTIResult) (CombinedResult, error) {
	if err := checkSynthesisInputs(ikigai, mbti); err != nil {
		return CombinedResult{}, err
	}
	return CombinedResult{
		Ikigai:      ikigai.Clone(),
		MBTI:        mbti.Clone(),
		Careers:     []string{"UX Designer", "Marketing Manager", "Consultant", "Teacher"},
		OptimalWork: []string{"Creative projects", "Team collaboration", "Flexible schedules", "Meaningful impact"},
		Blindspots:  []string{"May avoid routine tasks", "Can struggle with details", "Needs structure for follow-through"},
		ActionPlan: []ActionStep{
			{
				Horizon: HorizonWeek,
				Steps:   []string{"Identify your top 3 passions", "Set up a daily reflection practice", "Connect with like-minded people"},
			},
			{
				Horizon: HorizonMonth,
				Steps:   []string{"Explore career opportunities", "Develop a skill-building plan", "Create accountability systems"},
			},
			{
				Horizon: HorizonQuarter,
				Steps:   []string{"Launch a passion project", "Build professional network", "Establish long-term goals"},
			},
		},
	}, nil
}

func checkSynthesisInputs(ikigai IkigaiResult, mbti MBTIResult) error {
	if ikigai.IsZero() {
		return fmt.Errorf("%w: ikigai result missing", ErrSynthesisPrecondition)
	}
	if mbti.IsZero() {
		return fmt.Errorf("%w: mbti result missing", ErrSynthesisPrecondition)
	}
	return nil
}
