// Package assessment implements the questionnaire catalogs, the Ikigai and
// MBTI scorers, and the combined-result synthesizer. Everything here is pure:
// no I/O, no shared mutable state.
package assessment

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidAnswer is returned for an unknown question id or a value
	// outside the 1-5 Likert range.
	ErrInvalidAnswer = errors.New("invalid answer")
	// ErrIncompleteInput is returned when scoring runs before every catalog
	// item has been answered.
	ErrIncompleteInput = errors.New("incomplete answers")
	// ErrSynthesisPrecondition is returned when synthesis is attempted
	// without both underlying results.
	ErrSynthesisPrecondition = errors.New("synthesis requires both ikigai and mbti results")
)

// IncompleteError lists the question ids still missing. It matches
// ErrIncompleteInput under errors.Is.
type IncompleteError struct {
	Instrument string
	Missing    []string
}

func (e *IncompleteError) Error() string {
	return fmt.Sprintf("%s: %d unanswered (%s)", ErrIncompleteInput, len(e.Missing), strings.Join(e.Missing, ", "))
}

// Is reports whether target is ErrIncompleteInput.
func (e *IncompleteError) Is(target error) bool {
	return target == ErrIncompleteInput
}

func newIncompleteError(instrument string, missing []string) *IncompleteError {
	return &IncompleteError{Instrument: instrument, Missing: missing}
}
