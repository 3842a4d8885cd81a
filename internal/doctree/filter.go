package doctree

// Predicate decides whether a node is kept as a child of its parent.
type Predicate func(*Node) bool

// Filter returns a copy of n in which every descendant failing pred has been
// removed. Children are filtered before their parent is tested, so a node
// emptied by filtering is seen empty by pred. n itself is never removed; use
// FilterSeq for a top-level sequence.
func Filter(n *Node, pred Predicate) *Node {
	if n == nil {
		return nil
	}
	out := *n
	if n.Children != nil {
		out.Children = make([]*Node, 0, len(n.Children))
		for _, c := range n.Children {
			fc := Filter(c, pred)
			if pred(fc) {
				out.Children = append(out.Children, fc)
			}
		}
	}
	return &out
}

// FilterSeq filters each node of a top-level sequence and drops the roots
// that fail pred themselves.
func FilterSeq(nodes []*Node, pred Predicate) []*Node {
	out := make([]*Node, 0, len(nodes))
	for _, n := range nodes {
		fn := Filter(n, pred)
		if pred(fn) {
			out = append(out, fn)
		}
	}
	return out
}

// NotCodeBlock rejects code blocks, nested ones included.
func NotCodeBlock(n *Node) bool {
	return n.Kind != KindCodeBlock
}

// NotEmptyParagraph rejects paragraphs without children. Other kinds are kept.
func NotEmptyParagraph(n *Node) bool {
	return n.Kind != KindParagraph || len(n.Children) > 0
}
