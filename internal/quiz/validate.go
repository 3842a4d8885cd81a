package quiz

import (
	"github.com/dgallion1/coursecheck/internal/doctree"
)

// Options tunes document validation.
type Options struct {
	// StrictHeadings rejects questions whose heading is nested in another
	// block instead of only warning about them.
	StrictHeadings bool
}

// Question is a validated question of a lesson.
type Question struct {
	Number  int            `json:"number"`
	Heading string         `json:"heading"`
	Line    int            `json:"line,omitempty"`
	Options []AnswerOption `json:"options"`
	Tally   Tally          `json:"tally"`
}

// Result describes a lesson's question section.
type Result struct {
	HasQuiz   bool       `json:"has_quiz"`
	Questions []Question `json:"questions,omitempty"`
	Warnings  []Warning  `json:"warnings,omitempty"`
}

// ValidateDocument checks the question section of a parsed lesson. It stops
// at the first violation, returned as a *Violation. The partial result is
// returned alongside it.
func ValidateDocument(doc *doctree.Node, opts Options) (*Result, error) {
	res := &Result{}
	if doc == nil {
		return res, nil
	}

	section, ok, err := QuestionSection(doc.Children)
	if err != nil || !ok {
		return res, err
	}
	res.HasQuiz = true

	nodes := PrepareSection(section)
	if err := CheckIndicators(nodes); err != nil {
		return res, err
	}

	for _, w := range AmbiguousHeadings(nodes) {
		if opts.StrictHeadings {
			return res, &Violation{Kind: KindIndicator, Question: w.Question, Line: w.Line, Err: ErrAmbiguousHeading}
		}
		res.Warnings = append(res.Warnings, w)
	}

	groups, err := GroupQuestions(nodes)
	if err != nil {
		return res, err
	}
	if len(groups) == 0 {
		res.Warnings = append(res.Warnings, Warning{Message: "question section contains no questions"})
	}

	for qi, g := range groups {
		heading := nodes[g.Heading]
		q := Question{
			Number:  qi + 1,
			Heading: headingText(heading),
			Line:    heading.Line,
		}
		for _, idx := range g.Items {
			q.Options = append(q.Options, ExtractOptions(nodes[idx])...)
		}
		tally, err := ValidateAnswers(q.Options)
		q.Tally = tally
		res.Questions = append(res.Questions, q)
		if err != nil {
			return res, &Violation{Kind: KindComparison, Question: q.Number, Line: q.Line, Err: err}
		}
	}
	return res, nil
}
