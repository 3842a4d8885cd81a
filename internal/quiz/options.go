package quiz

import (
	"strings"

	"github.com/dgallion1/coursecheck/internal/doctree"
)

// AnswerOption is one answer line of a question.
type AnswerOption struct {
	Bullet byte   `json:"bullet"`
	Text   string `json:"text"`
	Line   int    `json:"line,omitempty"`
}

// Rendered reconstructs the option as authored, e.g. "- [x] Go".
func (o AnswerOption) Rendered() string {
	return string(o.Bullet) + " " + o.Text
}

// ExtractOptions returns one option per bullet item below an item-bearing node.
func ExtractOptions(n *doctree.Node) []AnswerOption {
	var opts []AnswerOption
	for _, c := range n.Children {
		if !c.IsBullet() {
			continue
		}
		if c.Kind == doctree.KindList {
			for _, item := range c.Children {
				opts = append(opts, optionFrom(item, c.List.BulletChar))
			}
			continue
		}
		opts = append(opts, optionFrom(c, c.List.BulletChar))
	}
	return opts
}

func optionFrom(item *doctree.Node, bullet byte) AnswerOption {
	if item.List != nil && item.List.BulletChar != 0 {
		bullet = item.List.BulletChar
	}
	return AnswerOption{
		Bullet: bullet,
		Text:   strings.Join(doctree.Texts(item), ""),
		Line:   item.Line,
	}
}
