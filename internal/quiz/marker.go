package quiz

import (
	"github.com/dgallion1/coursecheck/internal/doctree"
)

// Marker separates a lesson's prose from its question section.
const Marker = "?---?"

// FindMarker returns the index of the top-level node holding the marker, or
// -1 when the document has no question section. The marker must appear once,
// in exactly one node.
func FindMarker(nodes []*doctree.Node) (int, error) {
	idx := -1
	for i, n := range nodes {
		count := doctree.CountText(n, Marker)
		if count > 1 || (count == 1 && idx >= 0) {
			return -1, &Violation{Kind: KindMarker, Line: n.Line, Err: ErrMultipleMarkers}
		}
		if count == 1 {
			idx = i
		}
	}
	return idx, nil
}

// QuestionSection returns the top-level nodes after the marker node. ok is
// false when the document has no marker.
func QuestionSection(nodes []*doctree.Node) (section []*doctree.Node, ok bool, err error) {
	idx, err := FindMarker(nodes)
	if err != nil {
		return nil, false, err
	}
	if idx < 0 {
		return nil, false, nil
	}
	return nodes[idx+1:], true, nil
}
