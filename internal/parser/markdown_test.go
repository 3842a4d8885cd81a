package parser

import (
	"strings"
	"testing"

	"github.com/dgallion1/coursecheck/internal/doctree"
)

func joined(n *doctree.Node) string {
	return strings.Join(doctree.Texts(n), "")
}

func TestMarkdownParser_TopLevelBlocks(t *testing.T) {
	input := "# Q1\n?---?\n## Which is true?\n- [x] A\n- [ ] B\n"
	p := &MarkdownParser{}
	doc, err := p.Parse(strings.NewReader(input), "lesson.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if doc.Kind != doctree.KindDocument {
		t.Fatalf("expected document root, got %q", doc.Kind)
	}
	want := []doctree.Kind{doctree.KindHeading, doctree.KindParagraph, doctree.KindHeading, doctree.KindList}
	if len(doc.Children) != len(want) {
		t.Fatalf("expected %d top-level nodes, got %d", len(want), len(doc.Children))
	}
	for i, k := range want {
		if doc.Children[i].Kind != k {
			t.Errorf("child[%d]: expected %q, got %q", i, k, doc.Children[i].Kind)
		}
	}

	if doctree.CountText(doc.Children[1], "?---?") != 1 {
		t.Errorf("expected marker paragraph to hold one %q text, got %v", "?---?", doctree.Texts(doc.Children[1]))
	}
	if doc.Children[2].Level != 2 {
		t.Errorf("expected heading level 2, got %d", doc.Children[2].Level)
	}
	if got := joined(doc.Children[2]); got != "Which is true?" {
		t.Errorf("expected heading text %q, got %q", "Which is true?", got)
	}
}

func TestMarkdownParser_ListMetadata(t *testing.T) {
	input := "* [x] one\n* [ ] two\n\n1. first\n2. second\n"
	doc := ParseMarkdown([]byte(input))

	if len(doc.Children) != 2 {
		t.Fatalf("expected 2 lists, got %d", len(doc.Children))
	}

	bullet := doc.Children[0]
	if !bullet.IsBullet() || bullet.List.BulletChar != '*' {
		t.Fatalf("expected '*' bullet list, got %+v", bullet.List)
	}
	if len(bullet.Children) != 2 {
		t.Fatalf("expected 2 items, got %d", len(bullet.Children))
	}
	for i, item := range bullet.Children {
		if item.Kind != doctree.KindItem {
			t.Errorf("item[%d]: expected item kind, got %q", i, item.Kind)
		}
		if !item.IsBullet() || item.List.BulletChar != '*' {
			t.Errorf("item[%d]: expected bullet metadata copied from list", i)
		}
	}
	if got := joined(bullet.Children[0]); got != "[x] one" {
		t.Errorf("expected %q, got %q", "[x] one", got)
	}
	if got := joined(bullet.Children[1]); got != "[ ] two" {
		t.Errorf("expected %q, got %q", "[ ] two", got)
	}

	ordered := doc.Children[1]
	if ordered.IsBullet() || ordered.List.Style != doctree.ListOrdered {
		t.Errorf("expected ordered list, got %+v", ordered.List)
	}
	if ordered.List.Start != 1 || ordered.List.Delimiter != '.' {
		t.Errorf("expected start 1 with '.', got %d %q", ordered.List.Start, ordered.List.Delimiter)
	}
}

func TestMarkdownParser_CodeBlocks(t *testing.T) {
	input := "Intro.\n\n```go\nfmt.Println(\"?---?\")\n```\n\n    indented\n"
	doc := ParseMarkdown([]byte(input))

	if len(doc.Children) != 3 {
		t.Fatalf("expected 3 blocks, got %d", len(doc.Children))
	}
	fenced := doc.Children[1]
	if fenced.Kind != doctree.KindCodeBlock {
		t.Fatalf("expected code block, got %q", fenced.Kind)
	}
	if !strings.Contains(fenced.Literal, "fmt.Println") {
		t.Errorf("expected code literal, got %q", fenced.Literal)
	}
	// Code is not text: a marker inside it does not count.
	if doctree.CountText(fenced, "?---?") != 0 {
		t.Error("expected no text nodes inside code block")
	}
	if doc.Children[2].Kind != doctree.KindCodeBlock {
		t.Errorf("expected indented code block, got %q", doc.Children[2].Kind)
	}
}

func TestMarkdownParser_InlineKinds(t *testing.T) {
	doc := ParseMarkdown([]byte("Some *emph* and **strong** with `code` and [link](http://x).\n"))
	p := doc.Children[0]

	seen := map[doctree.Kind]bool{}
	doctree.Walk(p, func(n *doctree.Node) bool {
		seen[n.Kind] = true
		return true
	})
	for _, k := range []doctree.Kind{doctree.KindEmph, doctree.KindStrong, doctree.KindCode, doctree.KindLink} {
		if !seen[k] {
			t.Errorf("expected a %q node", k)
		}
	}
}

func TestMarkdownParser_SoftBreaks(t *testing.T) {
	doc := ParseMarkdown([]byte("line one\nline two\n"))
	p := doc.Children[0]
	found := false
	for _, c := range p.Children {
		if c.Kind == doctree.KindSoftBreak {
			found = true
		}
	}
	if !found {
		t.Error("expected a softbreak between lines")
	}
	if got := joined(p); got != "line oneline two" {
		t.Errorf("expected text literals without the break, got %q", got)
	}
}

func TestMarkdownParser_LineNumbers(t *testing.T) {
	doc := ParseMarkdown([]byte("# Title\n\ntext\n\n- item\n"))
	want := []int{1, 3, 5}
	for i, w := range want {
		if doc.Children[i].Line != w {
			t.Errorf("child[%d]: expected line %d, got %d", i, w, doc.Children[i].Line)
		}
	}
}

func TestMarkdownParser_EmptyInput(t *testing.T) {
	p := &MarkdownParser{}
	doc, err := p.Parse(strings.NewReader(""), "empty.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Children) != 0 {
		t.Errorf("expected 0 children for empty input, got %d", len(doc.Children))
	}
}

func TestForFile(t *testing.T) {
	tests := []struct {
		filename string
		wantErr  bool
	}{
		{"lesson.md", false},
		{"LESSON.MD", false},
		{"notes.markdown", false},
		{"index.json", true},
		{"noext", true},
	}
	for _, tt := range tests {
		_, err := ForFile(tt.filename)
		if (err != nil) != tt.wantErr {
			t.Errorf("ForFile(%q): wantErr=%v, got %v", tt.filename, tt.wantErr, err)
		}
		if IsSupportedExtension(tt.filename) == tt.wantErr {
			t.Errorf("IsSupportedExtension(%q): expected %v", tt.filename, !tt.wantErr)
		}
	}
}
