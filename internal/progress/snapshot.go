package progress

import (
	"github.com/ashureev/cemas/internal/assessment"
	"github.com/ashureev/cemas/internal/domain"
)

// Snapshot is the persisted view of a session. The chat transcript is not
// part of it.
type Snapshot struct {
	UserProfile    *domain.UserProfile        `json:"userProfile"`
	IkigaiAnswers  assessment.AnswerMap       `json:"ikigaiAnswers"`
	MBTIAnswers    assessment.AnswerMap       `json:"mbtiAnswers"`
	IkigaiResult   *assessment.IkigaiResult   `json:"ikigaiResult"`
	MBTIResult     *assessment.MBTIResult     `json:"mbtiResult"`
	CombinedResult *assessment.CombinedResult `json:"combinedResult"`
	CurrentStep    domain.Stage               `json:"currentStep"`
}

// Clone returns a deep copy of s.
func (s Snapshot) Clone() Snapshot {
	out := Snapshot{
		IkigaiAnswers: s.IkigaiAnswers.Clone(),
		MBTIAnswers:   s.MBTIAnswers.Clone(),
		CurrentStep:   s.CurrentStep,
	}
	if s.UserProfile != nil {
		p := *s.UserProfile
		out.UserProfile = &p
	}
	if s.IkigaiResult != nil {
		r := s.IkigaiResult.Clone()
		out.IkigaiResult = &r
	}
	if s.MBTIResult != nil {
		r := s.MBTIResult.Clone()
		out.MBTIResult = &r
	}
	if s.CombinedResult != nil {
		r := s.CombinedResult.Clone()
		out.CombinedResult = &r
	}
	return out
}

// Snapshot captures the persisted fields of the session.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	return Snapshot{
		UserProfile:    s.profile,
		IkigaiAnswers:  s.ikigaiAnswers,
		MBTIAnswers:    s.mbtiAnswers,
		IkigaiResult:   s.ikigaiResult,
		MBTIResult:     s.mbtiResult,
		CombinedResult: s.combined,
		CurrentStep:    s.stage,
	}.Clone()
}

// Restore replaces the persisted fields with snap. The chat transcript is left
// as is and the change hook does not fire. An empty step restores as
// onboarding and answers that no longer validate are dropped.
func (s *Session) Restore(snap Snapshot) error {
	stage := snap.CurrentStep
	if stage == "" {
		stage = domain.StageOnboarding
	}
	if err := stage.Validate(); err != nil {
		return err
	}

	snap = snap.Clone()
	dropInvalidAnswers(snap.IkigaiAnswers, assessment.ValidateIkigaiAnswer)
	dropInvalidAnswers(snap.MBTIAnswers, assessment.ValidateMBTIAnswer)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = snap.UserProfile
	s.ikigaiAnswers = snap.IkigaiAnswers
	s.mbtiAnswers = snap.MBTIAnswers
	s.ikigaiResult = snap.IkigaiResult
	s.mbtiResult = snap.MBTIResult
	s.combined = snap.CombinedResult
	s.stage = stage
	return nil
}

// dropInvalidAnswers removes answers that would fail validate, so a stale
// blob cannot block a later submit.
func dropInvalidAnswers(answers assessment.AnswerMap, validate func(string, int) error) {
	for id, v := range answers {
		if validate(id, v) != nil {
			delete(answers, id)
		}
	}
}
