package quiz

import (
	"strings"

	"github.com/dgallion1/coursecheck/internal/doctree"
)

// Run is a half-open index range [Start, End) of a sequence. Start is the
// index of the element that opened the run.
type Run struct {
	Start int
	End   int
}

// SplitRuns partitions seq into runs, each opened by an element satisfying
// isStart and extending to the next such element or the end of seq. Elements
// before the first opener belong to no run.
func SplitRuns[T any](seq []T, isStart func(T) bool) []Run {
	var runs []Run
	for i, v := range seq {
		if !isStart(v) {
			continue
		}
		if len(runs) > 0 {
			runs[len(runs)-1].End = i
		}
		runs = append(runs, Run{Start: i, End: len(seq)})
	}
	return runs
}

// Group is one question: a heading-bearing node and the item-bearing nodes
// that follow it. Indices refer to the prepared section.
type Group struct {
	Heading int
	Items   []int
}

func isHeading(n *doctree.Node) bool { return n.Is(doctree.KindHeading) }

// IsHeadingBearing reports whether n is a heading or has a heading among its
// immediate children.
func IsHeadingBearing(n *doctree.Node) bool {
	return isHeading(n) || n.HasChild(isHeading)
}

// IsItemBearing reports whether any immediate child of n carries bullet list
// metadata.
func IsItemBearing(n *doctree.Node) bool {
	return n.HasChild((*doctree.Node).IsBullet)
}

// PrepareSection strips code blocks and then empty paragraphs.
func PrepareSection(nodes []*doctree.Node) []*doctree.Node {
	nodes = doctree.FilterSeq(nodes, doctree.NotCodeBlock)
	return doctree.FilterSeq(nodes, doctree.NotEmptyParagraph)
}

// CheckIndicators rejects headings that nest another heading-bearing node.
func CheckIndicators(nodes []*doctree.Node) error {
	for _, n := range nodes {
		if isHeading(n) && n.HasChild(IsHeadingBearing) {
			return &Violation{Kind: KindIndicator, Line: n.Line, Err: ErrNestedHeading}
		}
	}
	return nil
}

// AmbiguousHeadings lists nodes that only count as questions because a child
// is a heading, such as a heading inside a block quote.
func AmbiguousHeadings(nodes []*doctree.Node) []Warning {
	var warnings []Warning
	q := 0
	for _, n := range nodes {
		if !IsHeadingBearing(n) {
			continue
		}
		q++
		if !isHeading(n) {
			warnings = append(warnings, Warning{
				Question: q,
				Line:     n.Line,
				Message:  "question heading is nested inside a " + string(n.Kind) + "; it still starts a new question",
			})
		}
	}
	return warnings
}

// GroupQuestions splits a prepared section into question groups. Every
// group must hold at least one item-bearing node.
func GroupQuestions(nodes []*doctree.Node) ([]Group, error) {
	runs := SplitRuns(nodes, IsHeadingBearing)
	groups := make([]Group, 0, len(runs))
	for qi, r := range runs {
		g := Group{Heading: r.Start}
		for i := r.Start + 1; i < r.End; i++ {
			if IsItemBearing(nodes[i]) {
				g.Items = append(g.Items, i)
			}
		}
		if len(g.Items) == 0 {
			return nil, &Violation{Kind: KindStructure, Question: qi + 1, Line: nodes[r.Start].Line, Err: ErrNoAnswerOptions}
		}
		groups = append(groups, g)
	}
	return groups, nil
}

// headingText renders the text of a heading-bearing node.
func headingText(n *doctree.Node) string {
	return strings.TrimSpace(strings.Join(doctree.Texts(n), ""))
}
