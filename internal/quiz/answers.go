package quiz

import "regexp"

var (
	singleUnchecked = regexp.MustCompile(`^- \[ \]`)
	singleChecked   = regexp.MustCompile(`^- \[[xX]\]`)
	multiUnchecked  = regexp.MustCompile(`^\* \[ \]`)
	multiChecked    = regexp.MustCompile(`^\* \[[xX]\]`)
)

// Tally counts the answer options of one question by style and state.
// Options matching none of the checkbox patterns are not counted.
type Tally struct {
	SingleChecked   int `json:"single_checked"`
	SingleUnchecked int `json:"single_unchecked"`
	MultiChecked    int `json:"multi_checked"`
	MultiUnchecked  int `json:"multi_unchecked"`
}

func (t Tally) Single() int { return t.SingleChecked + t.SingleUnchecked }
func (t Tally) Multi() int  { return t.MultiChecked + t.MultiUnchecked }

// Classify tallies options by their rendered line.
func Classify(opts []AnswerOption) Tally {
	var t Tally
	for _, o := range opts {
		line := o.Rendered()
		switch {
		case singleChecked.MatchString(line):
			t.SingleChecked++
		case singleUnchecked.MatchString(line):
			t.SingleUnchecked++
		case multiChecked.MatchString(line):
			t.MultiChecked++
		case multiUnchecked.MatchString(line):
			t.MultiUnchecked++
		}
	}
	return t
}

// CheckTally applies the answer rules in order and returns the first broken
// one. Multi-answer questions may have any number of checked options.
func CheckTally(t Tally) error {
	if t.Single() > 0 && t.Multi() > 0 {
		return ErrMixedAnswerStyles
	}
	if t.Single() == 0 && t.Multi() == 0 {
		return ErrNoAnswersFound
	}
	if t.SingleChecked > 1 {
		return ErrMultipleSingleChecked
	} else if t.Single() > 0 && t.SingleChecked == 0 {
		return ErrNoSingleChecked
	}
	if t.Multi() > 0 && t.MultiChecked == 0 {
		return ErrNoMultiChecked
	}
	return nil
}

// ValidateAnswers classifies and checks the pooled options of one question.
func ValidateAnswers(opts []AnswerOption) (Tally, error) {
	t := Classify(opts)
	return t, CheckTally(t)
}
