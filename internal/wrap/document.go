package wrap

import (
	"strings"

	"github.com/on-the-ground/memo_ive_go/memo"
)

// Document is the layout of every paragraph of a text, in order.
type Document struct {
	Paragraphs []Layout
}

func (d Document) Clone() Document {
	ps := make([]Layout, len(d.Paragraphs))
	for i, p := range d.Paragraphs {
		ps[i] = p.Clone()
	}
	return Document{Paragraphs: ps}
}

// String renders the paragraphs separated by blank lines.
func (d Document) String() string {
	parts := make([]string, len(d.Paragraphs))
	for i, p := range d.Paragraphs {
		parts[i] = p.String()
	}
	return strings.Join(parts, "\n\n")
}

func (d Document) NumLines() int {
	n := 0
	for _, p := range d.Paragraphs {
		n += len(p.Lines)
	}
	return n
}

type documentInput = memo.Tuple3[memo.Ignore[*memo.Cache], memo.Exact[string], Region, memo.Unit, memo.Unit, WidthRange]
type documentConstraint = memo.Constraint3[memo.Unit, memo.Unit, WidthRange]

// Lay out every paragraph of text. Paragraphs are separated by blank lines.
//
// The document is memoized as a whole under the intersection of its
// paragraphs' width ranges, so a width change that moves no line break is a
// single cache hit. Otherwise each paragraph is still looked up on its own.
func Lay(c *memo.Cache, text string, width int) Document {
	return memo.Memoized(c, memo.Tuple3Of(memo.Ignored(c), memo.Exactly(text), Region{Width: clamp(width)}), layoutDocument)
}

func layoutDocument(in documentInput) (Document, documentConstraint) {
	c, width := in.V1.Value, in.V3.Width
	valid := WidthRange{Min: 1, Max: Unbounded}
	var doc Document
	for _, para := range Paragraphs(in.V2.Value) {
		l := Paragraph(c, para, width)
		doc.Paragraphs = append(doc.Paragraphs, l)
		valid = valid.intersect(l.Fits)
	}
	return doc, memo.Constraint3Of(memo.Unit{}, memo.Unit{}, valid)
}

// Paragraphs splits text on blank lines and drops empty paragraphs.
func Paragraphs(text string) []string {
	var paras []string
	var cur []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			if len(cur) > 0 {
				paras = append(paras, strings.Join(cur, "\n"))
				cur = nil
			}
			continue
		}
		cur = append(cur, line)
	}
	if len(cur) > 0 {
		paras = append(paras, strings.Join(cur, "\n"))
	}
	return paras
}

// CountLines is the number of lines Lay would produce. It shares cache
// entries with Lay and reads them without copying.
func CountLines(c *memo.Cache, text string, width int) int {
	return memo.MemoizedRef(c, memo.Tuple3Of(memo.Ignored(c), memo.Exactly(text), Region{Width: clamp(width)}), layoutDocument,
		func(d *Document) int { return d.NumLines() },
	)
}
