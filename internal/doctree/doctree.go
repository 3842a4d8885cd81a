package doctree

// Kind identifies the type of a document node. Values follow CommonMark node names.
type Kind string

const (
	KindDocument      Kind = "document"
	KindHeading       Kind = "heading"
	KindParagraph     Kind = "paragraph"
	KindList          Kind = "list"
	KindItem          Kind = "item"
	KindText          Kind = "text"
	KindSoftBreak     Kind = "softbreak"
	KindLineBreak     Kind = "linebreak"
	KindCode          Kind = "code"
	KindCodeBlock     Kind = "code_block"
	KindHTMLBlock     Kind = "html_block"
	KindHTMLInline    Kind = "html_inline"
	KindEmph          Kind = "emph"
	KindStrong        Kind = "strong"
	KindLink          Kind = "link"
	KindImage         Kind = "image"
	KindBlockQuote    Kind = "block_quote"
	KindThematicBreak Kind = "thematic_break"
)

// ListStyle distinguishes bullet lists from ordered lists.
type ListStyle string

const (
	ListBullet  ListStyle = "bullet"
	ListOrdered ListStyle = "ordered"
)

// ListInfo is carried by list and item nodes.
type ListInfo struct {
	Style      ListStyle `json:"style"`
	BulletChar byte      `json:"bullet_char,omitempty"` // '-', '*' or '+' for bullet lists
	Delimiter  byte      `json:"delimiter,omitempty"`   // '.' or ')' for ordered lists
	Start      int       `json:"start,omitempty"`
	Tight      bool      `json:"tight"`
}

// Node is one node of a parsed document. Children preserve document order.
type Node struct {
	Kind     Kind      `json:"type"`
	Children []*Node   `json:"children,omitempty"`
	Literal  string    `json:"literal,omitempty"`
	Level    int       `json:"level,omitempty"` // heading level
	List     *ListInfo `json:"list_data,omitempty"`
	Line     int       `json:"line,omitempty"` // 1-based source line, 0 if unknown
}

// Is reports whether n is of kind k.
func (n *Node) Is(k Kind) bool {
	return n != nil && n.Kind == k
}

// IsBullet reports whether n carries bullet list metadata.
func (n *Node) IsBullet() bool {
	return n != nil && n.List != nil && n.List.Style == ListBullet
}

// HasChild reports whether any immediate child satisfies pred.
func (n *Node) HasChild(pred func(*Node) bool) bool {
	for _, c := range n.Children {
		if pred(c) {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of n.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	cp := *n
	if n.List != nil {
		li := *n.List
		cp.List = &li
	}
	if n.Children != nil {
		cp.Children = make([]*Node, len(n.Children))
		for i, c := range n.Children {
			cp.Children[i] = c.Clone()
		}
	}
	return &cp
}

// Walk visits n and its descendants in document order (pre-order).
// Returning false from fn skips the node's children.
func Walk(n *Node, fn func(*Node) bool) {
	if n == nil {
		return
	}
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		Walk(c, fn)
	}
}

// Texts returns the literals of all text descendants of n (n included) in order.
func Texts(n *Node) []string {
	var out []string
	Walk(n, func(c *Node) bool {
		if c.Kind == KindText {
			out = append(out, c.Literal)
		}
		return true
	})
	return out
}

// CountText counts text descendants of n whose literal equals lit.
func CountText(n *Node, lit string) int {
	count := 0
	for _, t := range Texts(n) {
		if t == lit {
			count++
		}
	}
	return count
}
