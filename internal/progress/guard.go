package progress

import (
	"github.com/ashureev/cemas/internal/domain"
)

// RequiredStageFor returns the stage a user must actually be sent to when
// asking for target. It returns target itself when every prerequisite is met.
// Redirects are followed to a fixed point, so a request for results with no
// Ikigai result lands on ikigai rather than personality.
func RequiredStageFor(view Snapshot, target domain.Stage) domain.Stage {
	for {
		next := prerequisite(view, target)
		if next == target {
			return target
		}
		target = next
	}
}

func prerequisite(view Snapshot, target domain.Stage) domain.Stage {
	if target == domain.StageOnboarding {
		return target
	}
	if view.UserProfile == nil {
		return domain.StageOnboarding
	}
	switch target {
	case domain.StagePersonality:
		if view.IkigaiResult == nil {
			return domain.StageIkigai
		}
	case domain.StageResults, domain.StageCompleted:
		if view.MBTIResult == nil || view.CombinedResult == nil {
			return domain.StagePersonality
		}
	}
	return target
}

// RequiredStage applies RequiredStageFor to the current state.
func (s *Session) RequiredStage(target domain.Stage) domain.Stage {
	return RequiredStageFor(s.Snapshot(), target)
}

// ProgressPercent maps a stage to the dashboard completion figure.
func ProgressPercent(stage domain.Stage) int {
	switch stage {
	case domain.StageIkigai:
		return 25
	case domain.StagePersonality:
		return 50
	case domain.StageResults:
		return 75
	case domain.StageCompleted:
		return 100
	default:
		return 0
	}
}

// NextAction is the dashboard's suggested next step.
type NextAction struct {
	Label string       `json:"label"`
	Stage domain.Stage `json:"stage"`
	Path  string       `json:"path"`
}

// NextActionFor picks the next step from whichever result is missing first.
func NextActionFor(view Snapshot) NextAction {
	switch {
	case view.IkigaiResult == nil:
		return NextAction{Label: "Start Ikigai Assessment", Stage: domain.StageIkigai, Path: "/ikigai"}
	case view.MBTIResult == nil:
		return NextAction{Label: "Take Personality Test", Stage: domain.StagePersonality, Path: "/personality"}
	case view.CombinedResult == nil:
		return NextAction{Label: "View Results", Stage: domain.StageResults, Path: "/results"}
	default:
		return NextAction{Label: "Chat with AI Coach", Stage: domain.StageCompleted, Path: "/chat"}
	}
}
