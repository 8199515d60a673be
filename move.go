package wizardstring

import (
	"fmt"
)

// Move relocates the original range [start, end) so that it renders
// immediately before the original offset to. Moving to the length of the
// original places the range at the end. Text queued on the range's chunks
// moves with them.
func (s *WizardString) Move(start, end, to int) error {
	n := len(s.original)
	if start < 0 || end > n || to < 0 || to > n {
		return fmt.Errorf("%w: move [%d,%d) to %d exceeds %d", ErrOutOfBounds, start, end, to, n)
	}
	if start >= end {
		return fmt.Errorf("%w: move range [%d,%d) is empty", ErrInvalidArgument, start, end)
	}
	if to >= start && to <= end {
		return fmt.Errorf("%w: cannot move a selection inside itself", ErrIllegalMove)
	}

	for _, off := range [...]int{start, end, to} {
		if err := s.split(off); err != nil {
			return err
		}
	}

	first := lookup(s.byStart, start)
	last := lookup(s.byEnd, end)
	target := lookup(s.byStart, to)

	// The range must still be one physical run, and the target outside it.
	for id := first; ; id = s.chunks[id].next {
		if id == noChunk {
			return fmt.Errorf("%w: cannot move [%d,%d) across a split point", ErrConflictingEdit, start, end)
		}
		if id == target {
			return fmt.Errorf("%w: target %d lies inside the moved chunks", ErrIllegalMove, to)
		}
		if id == last {
			break
		}
	}

	if s.chunks[last].next == target {
		return nil
	}

	oldLeft := s.chunks[first].prev
	oldRight := s.chunks[last].next
	if oldLeft != noChunk {
		s.chunks[oldLeft].next = oldRight
	} else {
		s.first = oldRight
	}
	if oldRight != noChunk {
		s.chunks[oldRight].prev = oldLeft
	} else {
		s.last = oldLeft
	}

	newLeft := s.last
	if target != noChunk {
		newLeft = s.chunks[target].prev
	}
	s.chunks[first].prev = newLeft
	s.chunks[last].next = target
	if newLeft != noChunk {
		s.chunks[newLeft].next = first
	} else {
		s.first = first
	}
	if target != noChunk {
		s.chunks[target].prev = last
	} else {
		s.last = last
	}

	s.logger.Debug("moved range", "start", start, "end", end, "to", to)
	return nil
}
