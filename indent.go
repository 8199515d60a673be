package wizardstring

import (
	"strings"
)

// IndentOptions configures Indent.
type IndentOptions struct {
	// Exclude lists [start, end) original ranges whose characters are not
	// indented, in addition to the ranges given at construction.
	Exclude [][2]int
}

// IndentString returns the indentation guessed from the original text: a
// tab when tab-indented lines are at least as common as lines indented with
// two or more spaces, otherwise the shortest such run of spaces. Text with
// no indented lines yields a tab.
func (s *WizardString) IndentString() string {
	if !s.indentGuessed {
		s.indentStr = guessIndent(s.original)
		s.indentGuessed = true
	}
	return s.indentStr
}

func guessIndent(text string) string {
	tabbed, spaced := 0, 0
	minSpaces := -1
	for line := range strings.SplitSeq(text, "\n") {
		switch {
		case strings.HasPrefix(line, "\t"):
			tabbed++
		case strings.HasPrefix(line, "  "):
			spaced++
			n := len(line) - len(strings.TrimLeft(line, " "))
			if minSpaces < 0 || n < minSpaces {
				minSpaces = n
			}
		}
	}
	if spaced == 0 || tabbed >= spaced {
		return "\t"
	}
	return strings.Repeat(" ", minSpaces)
}

// AutoIndent indents with IndentString.
func (s *WizardString) AutoIndent(opts IndentOptions) {
	s.Indent(s.IndentString(), opts)
}

// Indent prefixes every non-empty line of the rendered text with indentStr.
// Lines starting with an excluded original character are left alone. An
// indent in front of an original character is queued at the front of that
// character's right slot, so it moves with the character.
func (s *WizardString) Indent(indentStr string, opts IndentOptions) {
	if indentStr == "" {
		return
	}

	excluded := func(offset int) bool {
		for _, ranges := range [][][2]int{s.indentExclusionRanges, opts.Exclude} {
			for _, r := range ranges {
				if offset >= r[0] && offset < r[1] {
					return true
				}
			}
		}
		return false
	}

	ind := &indenter{prefix: indentStr, atLineStart: true}
	n := len(s.original)

	if b, ok := s.boundaries[0]; ok {
		ind.slots(b.leftSlots()...)
	}

	for id := s.first; id != noChunk; id = s.chunks[id].next {
		start, end := s.chunks[id].start, s.chunks[id].end

		if b, ok := s.boundaries[start]; ok {
			ind.slots(b.rightSlots()...)
		}

		if s.chunks[id].edited {
			if !excluded(start) && s.chunks[id].content != "" {
				s.chunks[id].content = ind.text(s.chunks[id].content)
			}
		} else {
			for i := start; i < end; i++ {
				if excluded(i) {
					continue
				}
				switch ch := s.original[i]; {
				case ch == '\n':
					ind.atLineStart = true
				case ch != '\r' && ind.atLineStart:
					ind.atLineStart = false
					if i != s.chunks[id].start {
						id = s.divide(id, i)
					}
					s.queueIndent(i, indentStr)
				}
			}
		}

		if b, ok := s.boundaries[end]; ok {
			ind.slots(b.leftSlots()...)
		}
	}

	if b, ok := s.boundaries[n]; ok {
		ind.slots(b.rightSlots()...)
	}
}

// queueIndent places an indent directly before the original character at
// offset. Text already queued there stays in front of the indent when it
// ends a line.
func (s *WizardString) queueIndent(offset int, indentStr string) {
	b := s.boundaryAt(offset)
	if len(b.innerRight) == 0 && len(b.outerRight) == 0 {
		b.innerRight = []string{indentStr}
		return
	}
	b.outerRight = append(b.outerRight, indentStr)
}

// indenter tracks line starts across the pieces of rendered text.
type indenter struct {
	prefix      string
	atLineStart bool
}

func (ind *indenter) slots(slots ...*[]string) {
	for _, slot := range slots {
		for i, t := range *slot {
			(*slot)[i] = ind.text(t)
		}
	}
}

// text indents the line starts of t. Empty lines are never indented.
func (ind *indenter) text(t string) string {
	if t == "" {
		return t
	}
	var sb strings.Builder
	for i := 0; i < len(t); i++ {
		lineStart := ind.atLineStart
		if i > 0 {
			lineStart = t[i-1] == '\n' || t[i-1] == '\r'
		}
		if lineStart && t[i] != '\n' && t[i] != '\r' {
			sb.WriteString(ind.prefix)
		}
		sb.WriteByte(t[i])
	}
	ind.atLineStart = t[len(t)-1] == '\n'
	return sb.String()
}
