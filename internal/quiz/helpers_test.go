package quiz

import (
	"github.com/dgallion1/coursecheck/internal/doctree"
	"github.com/dgallion1/coursecheck/internal/parser"
)

func txt(s string) *doctree.Node { return &doctree.Node{Kind: doctree.KindText, Literal: s} }

func para(children ...*doctree.Node) *doctree.Node {
	return &doctree.Node{Kind: doctree.KindParagraph, Children: children}
}

func heading(s string) *doctree.Node {
	return &doctree.Node{Kind: doctree.KindHeading, Level: 2, Children: []*doctree.Node{txt(s)}}
}

func bulletList(bullet byte, items ...string) *doctree.Node {
	li := &doctree.ListInfo{Style: doctree.ListBullet, BulletChar: bullet}
	list := &doctree.Node{Kind: doctree.KindList, List: li}
	for _, it := range items {
		list.Children = append(list.Children, &doctree.Node{
			Kind:     doctree.KindItem,
			List:     li,
			Children: []*doctree.Node{para(txt(it))},
		})
	}
	return list
}

func doc(children ...*doctree.Node) *doctree.Node {
	return &doctree.Node{Kind: doctree.KindDocument, Children: children}
}

func md(src string) *doctree.Node {
	return parser.ParseMarkdown([]byte(src))
}
