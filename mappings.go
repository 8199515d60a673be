package wizardstring

import (
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// Resolution selects how densely original text is mapped.
type Resolution int

const (
	// LowRes maps the first character of every line of each chunk.
	LowRes Resolution = iota

	// HighRes maps every character except line breaks.
	HighRes

	// BoundaryRes maps the start of every word and every non-word character.
	BoundaryRes
)

// Segment is a decoded mapping: generated column, then optionally source
// index, original line and original column, then optionally a name index.
// All values are absolute and zero-based.
type Segment []int

// mappingBuilder accumulates segments while the output is walked. It keeps
// the generated line and column of the next character to be emitted.
type mappingBuilder struct {
	resolution Resolution
	anchors    map[int]struct{}

	line   int
	column int
	raw    [][]Segment
}

func newMappingBuilder(resolution Resolution, anchors map[int]struct{}) *mappingBuilder {
	return &mappingBuilder{
		resolution: resolution,
		anchors:    anchors,
		raw:        [][]Segment{nil},
	}
}

func (m *mappingBuilder) push(seg Segment) {
	m.raw[m.line] = append(m.raw[m.line], seg)
}

func (m *mappingBuilder) newLine() {
	m.line++
	m.column = 0
	m.raw = append(m.raw, nil)
}

// advance moves past generated text that has no origin.
func (m *mappingBuilder) advance(text string) {
	if text == "" {
		return
	}
	lines := strings.Split(text, "\n")
	for range lines[1:] {
		m.newLine()
	}
	m.column += utf16Len(lines[len(lines)-1])
}

// addEdit maps replacement text to the start of the original span it
// replaces: one segment at the start of every line of the text. A
// non-negative name index is attached to each segment.
func (m *mappingBuilder) addEdit(content string, loc Position, name int) {
	if content == "" {
		return
	}
	seg := func() Segment {
		s := Segment{m.column, 0, loc.Line, loc.Column}
		if name >= 0 {
			s = append(s, name)
		}
		return s
	}

	lineStart := 0
	for {
		nl := strings.IndexByte(content[lineStart:], '\n')
		// A trailing line break does not open a mapped line.
		if nl < 0 || lineStart+nl == len(content)-1 {
			break
		}
		m.push(seg())
		m.newLine()
		lineStart += nl + 1
	}
	m.push(seg())
	m.advance(content[lineStart:])
}

// addUnedited maps original text [start, end) character by character,
// emitting segments as the resolution and the anchors require.
func (m *mappingBuilder) addUnedited(original string, start, end int, loc Position) {
	first := true
	inWord := false

	for i := start; i < end; {
		r, size := utf8.DecodeRuneInString(original[i:])

		if r == '\n' {
			loc.Line++
			loc.Column = 0
			m.newLine()
			first = true
			inWord = false
			i += size
			continue
		}

		_, anchored := m.anchors[i]
		seg := Segment{m.column, 0, loc.Line, loc.Column}
		word := isWordRune(r)
		switch {
		case first || anchored || m.resolution == HighRes:
			m.push(seg)
		case m.resolution == BoundaryRes:
			if !word || !inWord {
				m.push(seg)
			}
		}
		inWord = word

		w := utf16.RuneLen(r)
		if w < 0 {
			w = 1
		}
		loc.Column += w
		m.column += w
		first = false
		i += size
	}
}

// isWordRune matches the ASCII word class [A-Za-z0-9_].
func isWordRune(r rune) bool {
	return r == '_' ||
		('a' <= r && r <= 'z') ||
		('A' <= r && r <= 'Z') ||
		('0' <= r && r <= '9')
}
