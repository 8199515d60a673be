package wizardstring

import (
	"sort"
	"unicode/utf16"
	"unicode/utf8"
)

// Position is a zero-based line and column in a text. Columns count UTF-16
// code units, as source map consumers expect. Only '\n' ends a line.
type Position struct {
	Line   int
	Column int
}

// locator converts byte offsets into line and column positions.
type locator struct {
	text       string
	lineStarts []int
}

func newLocator(text string) *locator {
	starts := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &locator{text: text, lineStarts: starts}
}

// locate returns the position of the byte offset, which is clamped to the
// text.
func (l *locator) locate(offset int) Position {
	offset = max(0, min(offset, len(l.text)))
	line := sort.Search(len(l.lineStarts), func(i int) bool {
		return l.lineStarts[i] > offset
	}) - 1
	return Position{
		Line:   line,
		Column: utf16Len(l.text[l.lineStarts[line]:offset]),
	}
}

// utf16Len counts the UTF-16 code units needed to encode text. Invalid
// bytes count as one unit each.
func utf16Len(text string) int {
	n := 0
	for len(text) > 0 {
		r, size := utf8.DecodeRuneInString(text)
		text = text[size:]
		if w := utf16.RuneLen(r); w > 0 {
			n += w
		} else {
			n++
		}
	}
	return n
}
