package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidProfile is returned when onboarding data fails validation.
var ErrInvalidProfile = errors.New("invalid user profile")

const (
	minNameLength = 2
	minAge        = 13
	maxAge        = 120
)

// MainGoals lists the goals offered during onboarding. Any non-empty goal is
// accepted; these are presented as defaults.
var MainGoals = []string{
	"Find my life purpose",
	"Improve career satisfaction",
	"Develop self-awareness",
	"Make better life decisions",
	"Understand my strengths",
	"Plan career change",
	"Increase motivation",
	"Other",
}

// UserProfile is the identity captured at onboarding.
type UserProfile struct {
	Name         string `json:"name"`
	Age          int    `json:"age"`
	MainGoal     string `json:"mainGoal"`
	ConsentGiven bool   `json:"consentGiven"`
}

// Validate checks the onboarding constraints.
func (p UserProfile) Validate() error {
	if len([]rune(strings.TrimSpace(p.Name))) < minNameLength {
		return fmt.Errorf("%w: name must be at least %d characters", ErrInvalidProfile, minNameLength)
	}
	if p.Age < minAge || p.Age > maxAge {
		return fmt.Errorf("%w: age must be between %d and %d", ErrInvalidProfile, minAge, maxAge)
	}
	if strings.TrimSpace(p.MainGoal) == "" {
		return fmt.Errorf("%w: main goal is required", ErrInvalidProfile)
	}
	if !p.ConsentGiven {
		return fmt.Errorf("%w: consent is required", ErrInvalidProfile)
	}
	return nil
}
