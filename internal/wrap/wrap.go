// Package wrap breaks text into lines of bounded width, memoizing each
// paragraph under the range of widths that leaves its line breaks unchanged.
package wrap

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/on-the-ground/memo_ive_go/memo"
)

// Unbounded is the Max of a WidthRange with no upper limit.
const Unbounded = math.MaxInt

// WidthRange is an inclusive range of widths.
type WidthRange struct {
	Min, Max int
}

func (r WidthRange) Contains(width int) bool {
	return width >= r.Min && width <= r.Max
}

func (r WidthRange) intersect(o WidthRange) WidthRange {
	return WidthRange{Min: max(r.Min, o.Min), Max: min(r.Max, o.Max)}
}

var _ memo.Trackable[WidthRange] = Region{}

// Region is the space available for layout. It never enters the key: any
// width inside the stored WidthRange reuses the cached layout.
type Region struct {
	Width int
}

func (Region) Key(*memo.Hasher) {}

func (r Region) Matches(c WidthRange) bool {
	return c.Contains(r.Width)
}

// Layout holds the lines of one paragraph and the widths that would break
// them identically.
type Layout struct {
	Lines []string
	Fits  WidthRange
}

func (l Layout) Clone() Layout {
	return Layout{Lines: append([]string(nil), l.Lines...), Fits: l.Fits}
}

func (l Layout) String() string {
	return strings.Join(l.Lines, "\n")
}

type paragraphInput = memo.Tuple2[memo.Exact[string], Region, memo.Unit, WidthRange]
type paragraphConstraint = memo.Constraint2[memo.Unit, WidthRange]

// Paragraph lays text out greedily in lines of at most width columns. A word
// wider than width gets a line of its own. Widths below 1 count as 1.
func Paragraph(c *memo.Cache, text string, width int) Layout {
	return memo.Memoized(c, memo.Tuple2Of(memo.Exactly(text), Region{Width: clamp(width)}), layoutParagraph)
}

func layoutParagraph(in paragraphInput) (Layout, paragraphConstraint) {
	lines, valid := breakLines(strings.Fields(in.V1.Value), in.V2.Width)
	return Layout{Lines: lines, Fits: valid}, memo.Constraint2Of(memo.Unit{}, valid)
}

// breakLines also returns the widths for which it would break the same way:
// every line holding several words must fit, and no line may have room for
// the first word of the next one.
func breakLines(words []string, width int) ([]string, WidthRange) {
	valid := WidthRange{Min: 1, Max: Unbounded}
	var lines []string
	var cur []string
	curLen := 0

	flush := func() {
		if len(cur) > 1 {
			valid.Min = max(valid.Min, curLen)
		}
		lines = append(lines, strings.Join(cur, " "))
	}

	for _, w := range words {
		wLen := utf8.RuneCountInString(w)
		if len(cur) == 0 {
			cur, curLen = []string{w}, wLen
			continue
		}
		joined := curLen + 1 + wLen
		if joined <= width {
			cur, curLen = append(cur, w), joined
			continue
		}
		valid.Max = min(valid.Max, joined-1)
		flush()
		cur, curLen = []string{w}, wLen
	}
	if len(cur) > 0 {
		flush()
	}
	return lines, valid
}

func clamp(width int) int {
	if width < 1 {
		return 1
	}
	return width
}
