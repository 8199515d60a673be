package wizardstring

import (
	"strings"
	"unicode"
)

func isLineBreak(r rune) bool {
	return r == '\r' || r == '\n'
}

// Trim removes leading and trailing whitespace from the rendered text.
func (s *WizardString) Trim() {
	s.trimStart(unicode.IsSpace)
	s.trimEnd(unicode.IsSpace)
}

// TrimStart removes leading whitespace from the rendered text.
func (s *WizardString) TrimStart() {
	s.trimStart(unicode.IsSpace)
}

// TrimEnd removes trailing whitespace from the rendered text.
func (s *WizardString) TrimEnd() {
	s.trimEnd(unicode.IsSpace)
}

// TrimLines removes leading and trailing line breaks, leaving other
// whitespace alone.
func (s *WizardString) TrimLines() {
	s.trimStart(isLineBreak)
	s.trimEnd(isLineBreak)
}

// trimmer cuts trimmable characters from one end of a run of slots.
type trimmer func(cut func(rune) bool, slots ...*[]string) bool

// trimFront cuts the leading run of trimmable characters across slots in
// render order. It reports whether any text is left.
func trimFront(cut func(rune) bool, slots ...*[]string) bool {
	for _, slot := range slots {
		for len(*slot) > 0 {
			if t := strings.TrimLeftFunc((*slot)[0], cut); t != "" {
				(*slot)[0] = t
				return true
			}
			*slot = (*slot)[1:]
		}
	}
	return false
}

// trimBack is trimFront from the other end.
func trimBack(cut func(rune) bool, slots ...*[]string) bool {
	for i := len(slots) - 1; i >= 0; i-- {
		slot := slots[i]
		for n := len(*slot); n > 0; n = len(*slot) {
			if t := strings.TrimRightFunc((*slot)[n-1], cut); t != "" {
				(*slot)[n-1] = t
				return true
			}
			*slot = (*slot)[:n-1]
		}
	}
	return false
}

// trimLeftHalf and trimRightHalf apply trim to one half of the boundary at
// offset, if there is one.
func (s *WizardString) trimLeftHalf(offset int, trim trimmer, cut func(rune) bool) bool {
	b, ok := s.boundaries[offset]
	if !ok {
		return false
	}
	return trim(cut, b.leftSlots()...)
}

func (s *WizardString) trimRightHalf(offset int, trim trimmer, cut func(rune) bool) bool {
	b, ok := s.boundaries[offset]
	if !ok {
		return false
	}
	return trim(cut, b.rightSlots()...)
}

// trimStart walks the output forwards, dropping trimmable text until some
// other character is found. Whitespace at the front of an original chunk is
// split off and removed; overwritten content is trimmed in place.
func (s *WizardString) trimStart(cut func(rune) bool) bool {
	if s.trimLeftHalf(0, trimFront, cut) {
		return true
	}

	for id := s.first; id != noChunk; id = s.chunks[id].next {
		start := s.chunks[id].start
		if s.trimRightHalf(start, trimFront, cut) {
			return true
		}

		c := &s.chunks[id]
		trimmed := strings.TrimLeftFunc(c.content, cut)
		if trimmed != "" {
			if trimmed != c.content {
				if c.edited {
					c.content = trimmed
				} else {
					s.divide(id, c.end-len(trimmed))
					s.chunks[id].content = ""
					s.chunks[id].edited = true
				}
			}
			return true
		}
		c.content = ""
		c.edited = true

		if s.trimLeftHalf(c.end, trimFront, cut) {
			return true
		}
	}

	return s.trimRightHalf(len(s.original), trimFront, cut)
}

// trimEnd mirrors trimStart from the end of the output.
func (s *WizardString) trimEnd(cut func(rune) bool) bool {
	if s.trimRightHalf(len(s.original), trimBack, cut) {
		return true
	}

	for id := s.last; id != noChunk; id = s.chunks[id].prev {
		end := s.chunks[id].end
		if s.trimLeftHalf(end, trimBack, cut) {
			return true
		}

		c := &s.chunks[id]
		trimmed := strings.TrimRightFunc(c.content, cut)
		if trimmed != "" {
			if trimmed != c.content {
				if c.edited {
					c.content = trimmed
				} else {
					tail := s.divide(id, c.start+len(trimmed))
					s.chunks[tail].content = ""
					s.chunks[tail].edited = true
				}
			}
			return true
		}
		c.content = ""
		c.edited = true

		if s.trimRightHalf(c.start, trimBack, cut) {
			return true
		}
	}

	return s.trimLeftHalf(0, trimBack, cut)
}
