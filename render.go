package wizardstring

import (
	"fmt"
	"strings"
)

// walk calls fn for every piece of rendered text in output order: the global
// intro, then each chunk's right queue, content and left queue, then the
// global outro.
func (s *WizardString) walk(fn func(text string)) {
	emit := func(slots ...[]string) {
		for _, slot := range slots {
			for _, text := range slot {
				fn(text)
			}
		}
	}
	n := len(s.original)

	if b, ok := s.boundaries[0]; ok {
		emit(b.outerLeft, b.innerLeft)
	}
	for id := s.first; id != noChunk; id = s.chunks[id].next {
		c := &s.chunks[id]
		if b, ok := s.boundaries[c.start]; ok {
			emit(b.innerRight, b.outerRight)
		}
		fn(c.content)
		if b, ok := s.boundaries[c.end]; ok {
			emit(b.outerLeft, b.innerLeft)
		}
	}
	if b, ok := s.boundaries[n]; ok {
		emit(b.innerRight, b.outerRight)
	}
}

// String renders the edited text.
func (s *WizardString) String() string {
	var sb strings.Builder
	s.walk(func(text string) {
		sb.WriteString(text)
	})
	return sb.String()
}

// Len returns the length in bytes of the rendered text.
func (s *WizardString) Len() int {
	n := 0
	s.walk(func(text string) {
		n += len(text)
	})
	return n
}

// IsEmpty reports whether the rendered text is empty.
func (s *WizardString) IsEmpty() bool {
	empty := true
	s.walk(func(text string) {
		if text != "" {
			empty = false
		}
	})
	return empty
}

// IsBlank reports whether the rendered text consists only of whitespace.
func (s *WizardString) IsBlank() bool {
	blank := true
	s.walk(func(text string) {
		if blank && strings.TrimSpace(text) != "" {
			blank = false
		}
	})
	return blank
}

// LastLine returns the rendered text after the final newline.
func (s *WizardString) LastLine() string {
	var pieces []string
	s.walk(func(text string) {
		pieces = append(pieces, text)
	})

	var tail []string
	for i := len(pieces) - 1; i >= 0; i-- {
		if idx := strings.LastIndexByte(pieces[i], '\n'); idx >= 0 {
			tail = append(tail, pieces[i][idx+1:])
			break
		}
		tail = append(tail, pieces[i])
	}

	var sb strings.Builder
	for i := len(tail) - 1; i >= 0; i-- {
		sb.WriteString(tail[i])
	}
	return sb.String()
}

// SliceFrom renders from the original offset start to the end of the
// original.
func (s *WizardString) SliceFrom(start int) (string, error) {
	return s.Slice(start, len(s.original))
}

// Slice renders the output generated for the original range [start, end),
// following physical order from the chunk containing start to the chunk
// containing end. Text queued at start is included only when start is a
// chunk boundary, likewise for end. Negative offsets count from the end.
//
// An anchor strictly inside an overwritten chunk fails with
// ErrAmbiguousAnchor.
func (s *WizardString) Slice(start, end int) (string, error) {
	start, end = s.normalize(start), s.normalize(end)

	var sb strings.Builder

	id := s.first
	for id != noChunk {
		c := &s.chunks[id]
		if c.start <= start && start < c.end {
			break
		}
		// The end was reached before the start.
		if c.start < end && c.end >= end {
			return sb.String(), nil
		}
		id = c.next
	}

	if id != noChunk {
		c := &s.chunks[id]
		if c.overwritten() && c.start != start {
			return "", fmt.Errorf("%w: cannot use replaced character %d as slice start anchor", ErrAmbiguousAnchor, start)
		}
	}

	startID := id
	for id != noChunk {
		c := &s.chunks[id]

		if id != startID || c.start == start {
			s.writeRight(&sb, c.start)
		}

		containsEnd := c.start < end && c.end >= end
		if containsEnd && c.overwritten() && c.end != end {
			return "", fmt.Errorf("%w: cannot use replaced character %d as slice end anchor", ErrAmbiguousAnchor, end)
		}

		if c.edited {
			sb.WriteString(c.content)
		} else {
			lo, hi := c.start, c.end
			if id == startID {
				lo = start
			}
			if containsEnd {
				hi = end
			}
			if lo < hi {
				sb.WriteString(s.original[lo:hi])
			}
		}

		if !containsEnd || c.end == end {
			s.writeLeft(&sb, c.end)
		}
		if containsEnd {
			break
		}
		id = c.next
	}
	return sb.String(), nil
}

