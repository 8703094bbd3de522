package progress

import (
	"fmt"

	"github.com/ashureev/cemas/internal/assessment"
	"github.com/ashureev/cemas/internal/domain"
)

// CompleteOnboarding stores the profile and moves to the Ikigai stage.
func (s *Session) CompleteOnboarding(p domain.UserProfile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = &p
	s.stage = domain.StageIkigai
	s.changedLocked()
	return nil
}

// SubmitIkigai scores the recorded Ikigai answers, commits the result and
// moves to the personality stage.
func (s *Session) SubmitIkigai() (assessment.IkigaiResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := assessment.ScoreIkigai(s.ikigaiAnswers)
	if err != nil {
		return assessment.IkigaiResult{}, err
	}
	s.commitIkigaiLocked(res)
	s.stage = domain.StagePersonality
	s.changedLocked()
	return res.Clone(), nil
}

// SubmitMBTI scores the recorded MBTI answers, synthesizes the combined
// profile and commits both, then moves to the results stage. Nothing is
// committed on error.
func (s *Session) SubmitMBTI(synth assessment.Synthesizer) (assessment.CombinedResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	mbti, err := assessment.ScoreMBTI(s.mbtiAnswers)
	if err != nil {
		return assessment.CombinedResult{}, err
	}

	if s.ikigaiResult == nil {
		return assessment.CombinedResult{}, fmt.Errorf("%w: submit mbti", assessment.ErrSynthesisPrecondition)
	}
	combined, err := synth.Synthesize(s.ikigaiResult.Clone(), mbti)
	if err != nil {
		return assessment.CombinedResult{}, err
	}

	s.commitMBTILocked(mbti)
	// Both inputs are committed at this point, so this cannot fail.
	_ = s.commitCombinedLocked(combined)
	s.stage = domain.StageResults
	s.changedLocked()
	return combined.Clone(), nil
}

// Enter moves to target when its prerequisites are met and returns target.
// Otherwise the stage is left alone and the redirect stage is returned.
func (s *Session) Enter(target domain.Stage) (domain.Stage, error) {
	if err := target.Validate(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	required := RequiredStageFor(s.snapshotLocked(), target)
	if required != target {
		return required, nil
	}
	if s.stage != target {
		s.stage = target
		s.changedLocked()
	}
	return target, nil
}
