package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidStage is returned for stage names outside the progression.
var ErrInvalidStage = errors.New("invalid stage")

// Stage is the user's position in the assessment flow.
type Stage string

const (
	StageOnboarding  Stage = "onboarding"
	StageIkigai      Stage = "ikigai"
	StagePersonality Stage = "personality"
	StageResults     Stage = "results"
	StageCompleted   Stage = "completed"
)

// StageOrder is the fixed forward order of the flow.
var StageOrder = []Stage{
	StageOnboarding,
	StageIkigai,
	StagePersonality,
	StageResults,
	StageCompleted,
}

// Index returns the ordinal position of s in StageOrder, or -1.
func (s Stage) Index() int {
	for i, st := range StageOrder {
		if st == s {
			return i
		}
	}
	return -1
}

// Validate returns an error if s is not a known stage.
func (s Stage) Validate() error {
	if s.Index() < 0 {
		return fmt.Errorf("%w %q: must be one of: onboarding, ikigai, personality, results, completed", ErrInvalidStage, s)
	}
	return nil
}

// ParseStage converts a raw name into a Stage.
func ParseStage(raw string) (Stage, error) {
	s := Stage(raw)
	if err := s.Validate(); err != nil {
		return "", err
	}
	return s, nil
}
