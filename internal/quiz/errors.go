package quiz

import (
	"errors"
	"fmt"
)

// Kind classifies a quiz violation.
type Kind string

const (
	KindMarker     Kind = "marker"
	KindStructure  Kind = "structure"
	KindIndicator  Kind = "indicator"
	KindComparison Kind = "comparison"
)

var (
	ErrMultipleMarkers = errors.New("multiple question section indicators ('" + Marker + "') found")

	ErrNestedHeading    = errors.New("invalid question indication (multiple '#')")
	ErrAmbiguousHeading = errors.New("question heading nested inside another block")

	ErrNoAnswerOptions = errors.New("question without answer options")

	ErrMixedAnswerStyles     = errors.New("mixed single- and multi- answer options in one question")
	ErrNoAnswersFound        = errors.New("no answer options found")
	ErrMultipleSingleChecked = errors.New("multiple answers checked in a single-answer question")
	ErrNoSingleChecked       = errors.New("no answer checked in single-answer question")
	ErrNoMultiChecked        = errors.New("no answer checked in multi-answer question")
)

// Violation is a content defect found in a lesson's question section.
type Violation struct {
	Kind     Kind
	Question int // 1-based question number, 0 when not tied to a question
	Line     int // source line, 0 if unknown
	Err      error
}

func (v *Violation) Error() string {
	if v.Question > 0 {
		return fmt.Sprintf("question %d: %s", v.Question, v.Err)
	}
	return v.Err.Error()
}

func (v *Violation) Unwrap() error {
	return v.Err
}

// Warning is a non-fatal diagnostic about question content.
type Warning struct {
	Question int    `json:"question,omitempty"`
	Line     int    `json:"line,omitempty"`
	Message  string `json:"message"`
}

func (w Warning) String() string {
	if w.Question > 0 {
		return fmt.Sprintf("question %d: %s", w.Question, w.Message)
	}
	return w.Message
}
