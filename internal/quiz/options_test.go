package quiz

import (
	"testing"

	"github.com/dgallion1/coursecheck/internal/doctree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractOptions_List(t *testing.T) {
	got := ExtractOptions(bulletList('-', "[x] A", "[ ] B"))
	require.Len(t, got, 2)
	assert.Equal(t, "- [x] A", got[0].Rendered())
	assert.Equal(t, "- [ ] B", got[1].Rendered())
}

func TestExtractOptions_InlineMarkup(t *testing.T) {
	item := &doctree.Node{
		Kind: doctree.KindItem,
		List: &doctree.ListInfo{Style: doctree.ListBullet, BulletChar: '*'},
		Children: []*doctree.Node{para(
			txt("["), txt("x"), txt("] "),
			&doctree.Node{Kind: doctree.KindStrong, Children: []*doctree.Node{txt("bold")}},
			txt(" answer"),
		)},
	}
	holder := &doctree.Node{Kind: doctree.KindList, List: item.List, Children: []*doctree.Node{item}}

	got := ExtractOptions(holder)
	require.Len(t, got, 1)
	assert.Equal(t, "* [x] bold answer", got[0].Rendered())
}

func TestExtractOptions_FromParsedMarkdown(t *testing.T) {
	d := md("* [x] `code` answer\n* [ ] *other*\n")
	got := ExtractOptions(d.Children[0])
	require.Len(t, got, 2)
	// Inline code is not a text leaf.
	assert.Equal(t, "* [x]  answer", got[0].Rendered())
	assert.Equal(t, "* [ ] other", got[1].Rendered())
	assert.Equal(t, 1, got[0].Line)
	assert.Equal(t, 2, got[1].Line)
}

func TestExtractOptions_SkipsNonBulletChildren(t *testing.T) {
	n := &doctree.Node{Kind: doctree.KindBlockQuote, Children: []*doctree.Node{
		para(txt("intro")),
		bulletList('-', "[x] A"),
	}}
	got := ExtractOptions(n)
	require.Len(t, got, 1)
	assert.Equal(t, "- [x] A", got[0].Rendered())
}

func TestExtractOptions_NestedListFoldsIntoParent(t *testing.T) {
	// A nested list belongs to its parent item's text; its own checkbox
	// is not a separate option.
	d := md("- [x] A\n  - [x] sub\n- [ ] B\n")
	got := ExtractOptions(d.Children[0])
	require.Len(t, got, 2)
	assert.Equal(t, "- [x] A[x] sub", got[0].Rendered())
	assert.Equal(t, "- [ ] B", got[1].Rendered())

	tally, err := ValidateAnswers(got)
	require.NoError(t, err)
	assert.Equal(t, 1, tally.SingleChecked)
}
