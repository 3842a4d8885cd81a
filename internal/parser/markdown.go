package parser

import (
	"bytes"
	"io"

	"github.com/dgallion1/coursecheck/internal/doctree"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownParser handles Markdown lessons using goldmark.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(r io.Reader, filename string) (*doctree.Node, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return ParseMarkdown(src), nil
}

// ParseMarkdown parses CommonMark source into a document tree.
func ParseMarkdown(src []byte) *doctree.Node {
	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(src))
	c := converter{src: src}
	return c.convert(doc, nil)
}

type converter struct {
	src []byte
}

// convert maps a goldmark node onto a doctree node. list is the metadata of
// the enclosing list, handed down to its items.
func (c *converter) convert(n ast.Node, list *doctree.ListInfo) *doctree.Node {
	out := &doctree.Node{Line: c.line(n)}

	switch node := n.(type) {
	case *ast.Document:
		out.Kind = doctree.KindDocument
	case *ast.Heading:
		out.Kind = doctree.KindHeading
		out.Level = node.Level
	case *ast.Paragraph, *ast.TextBlock:
		// Tight list items hold a TextBlock; CommonMark calls both paragraphs.
		out.Kind = doctree.KindParagraph
	case *ast.List:
		out.Kind = doctree.KindList
		out.List = listInfo(node)
		out.Children = c.children(n, out.List)
		return out
	case *ast.ListItem:
		out.Kind = doctree.KindItem
		if list != nil {
			li := *list
			out.List = &li
		}
	case *ast.Blockquote:
		out.Kind = doctree.KindBlockQuote
	case *ast.ThematicBreak:
		out.Kind = doctree.KindThematicBreak
		return out
	case *ast.FencedCodeBlock, *ast.CodeBlock:
		out.Kind = doctree.KindCodeBlock
		out.Literal = c.lines(n)
		return out
	case *ast.HTMLBlock:
		out.Kind = doctree.KindHTMLBlock
		out.Literal = c.lines(n)
		return out
	case *ast.Text:
		out.Kind = doctree.KindText
		out.Literal = string(node.Segment.Value(c.src))
		return out
	case *ast.String:
		out.Kind = doctree.KindText
		out.Literal = string(node.Value)
		return out
	case *ast.CodeSpan:
		out.Kind = doctree.KindCode
		out.Literal = c.inlineText(n)
		return out
	case *ast.RawHTML:
		out.Kind = doctree.KindHTMLInline
		var buf bytes.Buffer
		for i := 0; i < node.Segments.Len(); i++ {
			seg := node.Segments.At(i)
			buf.Write(seg.Value(c.src))
		}
		out.Literal = buf.String()
		return out
	case *ast.Emphasis:
		out.Kind = doctree.KindEmph
		if node.Level >= 2 {
			out.Kind = doctree.KindStrong
		}
	case *ast.Link:
		out.Kind = doctree.KindLink
	case *ast.AutoLink:
		out.Kind = doctree.KindLink
		out.Children = []*doctree.Node{{Kind: doctree.KindText, Literal: string(node.Label(c.src))}}
		return out
	case *ast.Image:
		out.Kind = doctree.KindImage
	default:
		out.Kind = doctree.Kind(n.Kind().String())
	}

	out.Children = c.children(n, nil)
	return out
}

func (c *converter) children(n ast.Node, list *doctree.ListInfo) []*doctree.Node {
	var out []*doctree.Node
	for ch := n.FirstChild(); ch != nil; ch = ch.NextSibling() {
		out = append(out, c.convert(ch, list))
		if t, ok := ch.(*ast.Text); ok {
			switch {
			case t.HardLineBreak():
				out = append(out, &doctree.Node{Kind: doctree.KindLineBreak})
			case t.SoftLineBreak():
				out = append(out, &doctree.Node{Kind: doctree.KindSoftBreak})
			}
		}
	}
	return out
}

func listInfo(l *ast.List) *doctree.ListInfo {
	li := &doctree.ListInfo{Tight: l.IsTight}
	if l.IsOrdered() {
		li.Style = doctree.ListOrdered
		li.Delimiter = l.Marker
		li.Start = l.Start
	} else {
		li.Style = doctree.ListBullet
		li.BulletChar = l.Marker
	}
	return li
}

// lines joins the raw lines of a block node.
func (c *converter) lines(n ast.Node) string {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		buf.Write(line.Value(c.src))
	}
	return buf.String()
}

// inlineText concatenates the text segments below an inline node.
func (c *converter) inlineText(n ast.Node) string {
	var buf bytes.Buffer
	for ch := n.FirstChild(); ch != nil; ch = ch.NextSibling() {
		if t, ok := ch.(*ast.Text); ok {
			buf.Write(t.Segment.Value(c.src))
		} else {
			buf.WriteString(c.inlineText(ch))
		}
	}
	return buf.String()
}

// line returns the 1-based source line of the first text a block node covers.
func (c *converter) line(n ast.Node) int {
	if n.Type() != ast.TypeBlock {
		return 0
	}
	if lines := n.Lines(); lines != nil && lines.Len() > 0 {
		return bytes.Count(c.src[:lines.At(0).Start], []byte{'\n'}) + 1
	}
	for ch := n.FirstChild(); ch != nil; ch = ch.NextSibling() {
		if l := c.line(ch); l > 0 {
			return l
		}
	}
	return 0
}
