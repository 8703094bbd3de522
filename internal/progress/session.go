// Package progress holds the per-user assessment state machine: answers,
// results, the chat transcript and the current stage.
package progress

import (
	"fmt"
	"sync"
	"time"

	"github.com/ashureev/cemas/internal/assessment"
	"github.com/ashureev/cemas/internal/domain"
)

var timeNow = time.Now

// Session is one user's assessment state. All methods are safe for concurrent
// use. The zero value is not usable; call New.
type Session struct {
	mu sync.Mutex

	profile       *domain.UserProfile
	ikigaiAnswers assessment.AnswerMap
	mbtiAnswers   assessment.AnswerMap
	ikigaiResult  *assessment.IkigaiResult
	mbtiResult    *assessment.MBTIResult
	combined      *assessment.CombinedResult
	chat          []domain.ChatMessage
	stage         domain.Stage

	seq      uint64
	onChange func(Snapshot)
}

// New returns an empty session at the onboarding stage.
func New() *Session {
	return &Session{
		ikigaiAnswers: assessment.AnswerMap{},
		mbtiAnswers:   assessment.AnswerMap{},
		stage:         domain.StageOnboarding,
	}
}

// OnChange registers fn to receive a snapshot after every mutation of a
// persisted field. fn runs with the session locked, so calls arrive in
// mutation order; it must not call back into the session.
func (s *Session) OnChange(fn func(Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = fn
}

func (s *Session) changedLocked() {
	if s.onChange != nil {
		s.onChange(s.snapshotLocked())
	}
}

// SetUserProfile stores a validated profile. The stage is not changed.
func (s *Session) SetUserProfile(p domain.UserProfile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = &p
	s.changedLocked()
	return nil
}

// RecordIkigaiAnswer upserts one Ikigai answer.
func (s *Session) RecordIkigaiAnswer(id string, value int) error {
	if err := assessment.ValidateIkigaiAnswer(id, value); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ikigaiAnswers[id] = value
	s.changedLocked()
	return nil
}

// RecordMBTIAnswer upserts one MBTI answer.
func (s *Session) RecordMBTIAnswer(id string, value int) error {
	if err := assessment.ValidateMBTIAnswer(id, value); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mbtiAnswers[id] = value
	s.changedLocked()
	return nil
}

// CommitIkigaiResult stores a scored Ikigai result.
func (s *Session) CommitIkigaiResult(r assessment.IkigaiResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commitIkigaiLocked(r)
	s.changedLocked()
}

// CommitMBTIResult stores a scored MBTI result.
func (s *Session) CommitMBTIResult(r assessment.MBTIResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commitMBTILocked(r)
	s.changedLocked()
}

// CommitCombinedResult stores a combined result. Both underlying results must
// already be committed.
func (s *Session) CommitCombinedResult(r assessment.CombinedResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.commitCombinedLocked(r); err != nil {
		return err
	}
	s.changedLocked()
	return nil
}

func (s *Session) commitIkigaiLocked(r assessment.IkigaiResult) {
	r = r.Clone()
	s.ikigaiResult = &r
}

func (s *Session) commitMBTILocked(r assessment.MBTIResult) {
	r = r.Clone()
	s.mbtiResult = &r
}

func (s *Session) commitCombinedLocked(r assessment.CombinedResult) error {
	if s.ikigaiResult == nil || s.mbtiResult == nil {
		return fmt.Errorf("%w: commit combined result", assessment.ErrSynthesisPrecondition)
	}
	r = r.Clone()
	s.combined = &r
	return nil
}

// AppendChatMessage appends m to the transcript and returns the stored copy.
// A missing id or timestamp is filled in. Ids sort in append order.
func (s *Session) AppendChatMessage(m domain.ChatMessage) (domain.ChatMessage, error) {
	if err := m.Role.Validate(); err != nil {
		return domain.ChatMessage{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	if m.Timestamp.IsZero() {
		m.Timestamp = timeNow().UTC()
	}
	if m.ID == "" {
		m.ID = fmt.Sprintf("%d-%06d", m.Timestamp.UnixNano(), s.seq)
	}
	s.chat = append(s.chat, m)
	return m, nil
}

// ClearChat empties the transcript.
func (s *Session) ClearChat() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chat = nil
}

// SetStage moves the session to stage. Ordering is the caller's concern.
func (s *Session) SetStage(stage domain.Stage) error {
	if err := stage.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stage = stage
	s.changedLocked()
	return nil
}

// Reset clears answers, results and the transcript and returns to onboarding.
// The user profile is kept.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ikigaiAnswers = assessment.AnswerMap{}
	s.mbtiAnswers = assessment.AnswerMap{}
	s.ikigaiResult = nil
	s.mbtiResult = nil
	s.combined = nil
	s.chat = nil
	s.stage = domain.StageOnboarding
	s.changedLocked()
}

// Profile returns the stored profile, if any.
func (s *Session) Profile() (domain.UserProfile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.profile == nil {
		return domain.UserProfile{}, false
	}
	return *s.profile, true
}

// IkigaiAnswers returns a copy of the Ikigai answers.
func (s *Session) IkigaiAnswers() assessment.AnswerMap {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ikigaiAnswers.Clone()
}

// MBTIAnswers returns a copy of the MBTI answers.
func (s *Session) MBTIAnswers() assessment.AnswerMap {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mbtiAnswers.Clone()
}

// IkigaiResult returns the committed Ikigai result, if any.
func (s *Session) IkigaiResult() (assessment.IkigaiResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ikigaiResult == nil {
		return assessment.IkigaiResult{}, false
	}
	return s.ikigaiResult.Clone(), true
}

// MBTIResult returns the committed MBTI result, if any.
func (s *Session) MBTIResult() (assessment.MBTIResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mbtiResult == nil {
		return assessment.MBTIResult{}, false
	}
	return s.mbtiResult.Clone(), true
}

// CombinedResult returns the committed combined result, if any.
func (s *Session) CombinedResult() (assessment.CombinedResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.combined == nil {
		return assessment.CombinedResult{}, false
	}
	return s.combined.Clone(), true
}

// Chat returns a copy of the transcript.
func (s *Session) Chat() []domain.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.ChatMessage, len(s.chat))
	copy(out, s.chat)
	return out
}

// Stage returns the current stage.
func (s *Session) Stage() domain.Stage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stage
}
