package wrap_test

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/on-the-ground/memo_ive_go/internal/wrap"
	"github.com/on-the-ground/memo_ive_go/memo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fox = "the quick brown fox jumps over the lazy dog"

func TestParagraph_Greedy(t *testing.T) {
	c := memo.NewCache()

	l := wrap.Paragraph(c, fox, 10)
	assert.Equal(t, []string{"the quick", "brown fox", "jumps over", "the lazy", "dog"}, l.Lines)
	assert.Equal(t, wrap.WidthRange{Min: 10, Max: 11}, l.Fits)

	l = wrap.Paragraph(c, fox, 100)
	assert.Equal(t, []string{fox}, l.Lines)
	assert.Equal(t, wrap.WidthRange{Min: len(fox), Max: wrap.Unbounded}, l.Fits)
}

func TestParagraph_LongWordsAndEdgeWidths(t *testing.T) {
	c := memo.NewCache()

	assert.Equal(t, []string{"a", "enormous", "b"}, wrap.Paragraph(c, "a enormous b", 3).Lines)
	assert.Equal(t, []string{"a", "b"}, wrap.Paragraph(c, "a b", 0).Lines, "widths below 1 count as 1")
	assert.Empty(t, wrap.Paragraph(c, "   ", 5).Lines)
	assert.Equal(t, []string{"héllo", "wörld"}, wrap.Paragraph(c, "héllo wörld", 5).Lines, "columns are runes")
}

func TestParagraph_ReusesLayoutInsideWidthRange(t *testing.T) {
	c := memo.NewCache()

	first := wrap.Paragraph(c, fox, 10)
	for w := first.Fits.Min; w <= first.Fits.Max; w++ {
		assert.Equal(t, first, wrap.Paragraph(c, fox, w))
	}
	assert.Equal(t, uint64(1), c.Stats().Misses)
	assert.Equal(t, uint64(first.Fits.Max-first.Fits.Min+1), c.Stats().Hits)

	wider := wrap.Paragraph(c, fox, first.Fits.Max+1)
	assert.NotEqual(t, first.Lines, wider.Lines)
	assert.Equal(t, uint64(2), c.Stats().Misses)
}

func TestParagraph_MemoizedMatchesFreshForEveryWidth(t *testing.T) {
	text := strings.Repeat("lorem ipsum dolor sit amet consectetur adipiscing elit ", 4)
	c := memo.NewCache()
	r := rand.New(rand.NewSource(1))

	for _, w := range r.Perm(80) {
		got := wrap.Paragraph(c, text, w)
		want := wrap.Paragraph(memo.NewCache(), text, w)
		require.Equal(t, want.Lines, got.Lines, "width %d", w)
		require.True(t, got.Fits.Contains(max(w, 1)), "width %d outside %v", w, got.Fits)
	}
	assert.Less(t, c.Stats().Misses, uint64(80), "some widths must have been reused")
}

func TestLay_WholeDocumentHit(t *testing.T) {
	c := memo.NewCache()
	text := fox + "\n\n\n" + "pack my box with five dozen liquor jugs"

	doc := wrap.Lay(c, text, 12)
	require.Len(t, doc.Paragraphs, 2)
	misses := c.Stats().Misses

	for w := 1; w <= 60; w++ {
		fits := true
		for _, p := range doc.Paragraphs {
			fits = fits && p.Fits.Contains(w)
		}
		if !fits {
			continue
		}
		assert.Equal(t, doc, wrap.Lay(c, text, w))
	}
	assert.Equal(t, misses, c.Stats().Misses, "widths inside every paragraph range hit the document entry")

	other := wrap.Lay(c, text, 30)
	assert.Equal(t, wrap.Lay(memo.NewCache(), text, 30), other)
}

func TestLay_ReturnsIndependentCopies(t *testing.T) {
	c := memo.NewCache()
	doc := wrap.Lay(c, fox, 10)
	doc.Paragraphs[0].Lines[0] = "mutated"

	assert.Equal(t, "the quick", wrap.Lay(c, fox, 10).Paragraphs[0].Lines[0])
}

func TestCountLines_SharesEntriesWithLay(t *testing.T) {
	c := memo.NewCache()
	doc := wrap.Lay(c, fox, 10)
	hits := c.Stats().Hits

	assert.Equal(t, doc.NumLines(), wrap.CountLines(c, fox, 10))
	assert.Equal(t, hits+1, c.Stats().Hits)
}

func TestDocument_String(t *testing.T) {
	doc := wrap.Lay(memo.NewCache(), "a b\n\nc", 1)
	assert.Equal(t, "a\nb\n\nc", doc.String())
}

func TestParagraphs(t *testing.T) {
	assert.Equal(t, []string{"a\nb", "c"}, wrap.Paragraphs("\na\nb\n  \n\nc\n"))
	assert.Empty(t, wrap.Paragraphs("\n \n"))
}
