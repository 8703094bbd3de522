package assessment

import (
	"strings"
)

// typeThreshold is the percentage a dimension must strictly exceed to take its
// high letter. A tie takes the low letter.
const typeThreshold = 50.0

// MBTIDimensionScores holds per-dimension percentages, range [20, 100].
type MBTIDimensionScores struct {
	EI float64 `json:"EI"`
	SN float64 `json:"SN"`
	TF float64 `json:"TF"`
	JP float64 `json:"JP"`
}

// Get returns the percentage for d.
func (s MBTIDimensionScores) Get(d Dimension) float64 {
	switch d {
	case DimensionEI:
		return s.EI
	case DimensionSN:
		return s.SN
	case DimensionTF:
		return s.TF
	case DimensionJP:
		return s.JP
	}
	return 0
}

// MBTIResult is the scored MBTI questionnaire with its type profile.
type MBTIResult struct {
	Type        string              `json:"type"`
	Dimensions  MBTIDimensionScores `json:"dimensions"`
	Strengths   []string            `json:"strengths"`
	Weaknesses  []string            `json:"weaknesses"`
	WorkStyle   []string            `json:"workStyle"`
	Description string              `json:"description"`
}

// IsZero reports whether r is the zero result.
func (r MBTIResult) IsZero() bool {
	return r.Type == "" && r.Dimensions == (MBTIDimensionScores{})
}

// Clone returns a deep copy of r.
func (r MBTIResult) Clone() MBTIResult {
	r.Strengths = cloneStrings(r.Strengths)
	r.Weaknesses = cloneStrings(r.Weaknesses)
	r.WorkStyle = cloneStrings(r.WorkStyle)
	return r
}

// letters maps each dimension to its {high, low} letters.
var letters = map[Dimension][2]byte{
	DimensionEI: {'E', 'I'},
	DimensionSN: {'N', 'S'},
	DimensionTF: {'F', 'T'},
	DimensionJP: {'P', 'J'},
}

// EffectiveScore applies reverse scoring to a raw answer.
func EffectiveScore(q MBTIQuestion, answer int) int {
	if q.Reverse {
		return 6 - answer
	}
	return answer
}

// ScoreMBTI scores a complete MBTI answer set and attaches the type profile.
func ScoreMBTI(answers AnswerMap) (MBTIResult, error) {
	if err := checkMBTI(answers); err != nil {
		return MBTIResult{}, err
	}

	sums := make(map[Dimension]float64, len(Dimensions))
	counts := make(map[Dimension]float64, len(Dimensions))
	for _, q := range mbtiCatalog {
		sums[q.Dimension] += float64(EffectiveScore(q, answers[q.ID]))
		counts[q.Dimension]++
	}

	dims := MBTIDimensionScores{
		EI: dimensionPercent(sums[DimensionEI], counts[DimensionEI]),
		SN: dimensionPercent(sums[DimensionSN], counts[DimensionSN]),
		TF: dimensionPercent(sums[DimensionTF], counts[DimensionTF]),
		JP: dimensionPercent(sums[DimensionJP], counts[DimensionJP]),
	}

	code := TypeCode(dims)
	profile := LookupProfile(code)

	return MBTIResult{
		Type:        code,
		Dimensions:  dims,
		Strengths:   profile.Strengths,
		Weaknesses:  profile.Weaknesses,
		WorkStyle:   profile.WorkStyle,
		Description: profile.Description,
	}, nil
}

func dimensionPercent(sum, count float64) float64 {
	if count == 0 {
		return 0
	}
	return (sum / count / 5) * 100
}

// TypeCode derives the four-letter code from dimension percentages.
func TypeCode(dims MBTIDimensionScores) string {
	var b strings.Builder
	for _, d := range Dimensions {
		pair := letters[d]
		if dims.Get(d) > typeThreshold {
			b.WriteByte(pair[0])
		} else {
			b.WriteByte(pair[1])
		}
	}
	return b.String()
}
