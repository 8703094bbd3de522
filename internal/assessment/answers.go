package assessment

import (
	"fmt"
)

// AnswerMap maps question id to a Likert value.
type AnswerMap map[string]int

// Clone returns an independent copy of m. A nil map clones to an empty map.
func (m AnswerMap) Clone() AnswerMap {
	out := make(AnswerMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// ValidateValue checks that v is on the Likert scale.
func ValidateValue(v int) error {
	if v < MinAnswer || v > MaxAnswer {
		return fmt.Errorf("%w: value %d outside %d-%d", ErrInvalidAnswer, v, MinAnswer, MaxAnswer)
	}
	return nil
}

// ValidateIkigaiAnswer checks a single Ikigai answer.
func ValidateIkigaiAnswer(id string, v int) error {
	if _, ok := ikigaiByID[id]; !ok {
		return fmt.Errorf("%w: unknown ikigai question %q", ErrInvalidAnswer, id)
	}
	return ValidateValue(v)
}

// ValidateMBTIAnswer checks a single MBTI answer.
func ValidateMBTIAnswer(id string, v int) error {
	if _, ok := mbtiByID[id]; !ok {
		return fmt.Errorf("%w: unknown mbti question %q", ErrInvalidAnswer, id)
	}
	return ValidateValue(v)
}

// MissingIkigai lists catalog ids not present in answers, in catalog order.
func MissingIkigai(answers AnswerMap) []string {
	var missing []string
	for _, q := range ikigaiCatalog {
		if _, ok := answers[q.ID]; !ok {
			missing = append(missing, q.ID)
		}
	}
	return missing
}

// MissingMBTI lists catalog ids not present in answers, in catalog order.
func MissingMBTI(answers AnswerMap) []string {
	var missing []string
	for _, q := range mbtiCatalog {
		if _, ok := answers[q.ID]; !ok {
			missing = append(missing, q.ID)
		}
	}
	return missing
}

func checkIkigai(answers AnswerMap) error {
	for id, v := range answers {
		if err := ValidateIkigaiAnswer(id, v); err != nil {
			return err
		}
	}
	if missing := MissingIkigai(answers); len(missing) > 0 {
		return newIncompleteError("ikigai", missing)
	}
	return nil
}

func checkMBTI(answers AnswerMap) error {
	for id, v := range answers {
		if err := ValidateMBTIAnswer(id, v); err != nil {
			return err
		}
	}
	if missing := MissingMBTI(answers); len(missing) > 0 {
		return newIncompleteError("mbti", missing)
	}
	return nil
}
