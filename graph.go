package wizardstring

import (
	"fmt"
)

// graph.go holds the structural primitives of the chunk list: finding the
// chunk that spans an offset, splitting it, merging a run and checking that
// the lookup maps still describe the list.

// split ensures a chunk boundary exists at offset.
func (s *WizardString) split(offset int) error {
	if offset < 0 || offset > len(s.original) {
		return fmt.Errorf("%w: %d", ErrOutOfBounds, offset)
	}
	if _, ok := s.byStart[offset]; ok {
		return nil
	}
	if _, ok := s.byEnd[offset]; ok {
		return nil
	}

	id := s.lastSearched
	if id == noChunk || s.chunks[id].dead {
		id = lookup(s.byStart, 0)
	}
	forward := id != noChunk && offset > s.chunks[id].end

	for id != noChunk {
		c := &s.chunks[id]
		if c.contains(offset) {
			_, err := s.splitChunk(id, offset)
			return err
		}
		if forward {
			id = lookup(s.byStart, c.end)
		} else {
			id = lookup(s.byEnd, c.start)
		}
	}
	return nil
}

// splitChunk divides chunk id at offset, refusing to cut through
// replacement text.
func (s *WizardString) splitChunk(id chunkID, offset int) (chunkID, error) {
	c := &s.chunks[id]
	if c.overwritten() {
		loc := s.locator().locate(offset)
		return noChunk, fmt.Errorf("%w: cannot split a chunk that has already been edited (%d:%d %q)",
			ErrConflictingEdit, loc.Line, loc.Column, s.original[c.start:c.end])
	}
	return s.divide(id, offset), nil
}

// divide splits chunk id at offset without any edit checks and returns the
// new right-hand chunk. The left half keeps the id.
func (s *WizardString) divide(id chunkID, offset int) chunkID {
	left := s.chunks[id]
	right := chunk{
		start: offset,
		end:   left.end,
		prev:  id,
		next:  left.next,
	}
	if left.edited {
		// Replacement text stays with the left half; the right half renders
		// nothing.
		right.edited = true
	} else {
		right.content = s.original[offset:left.end]
		left.content = s.original[left.start:offset]
	}
	left.end = offset

	nid := chunkID(len(s.chunks))
	left.next = nid
	s.chunks = append(s.chunks, right)
	s.chunks[id] = left

	if right.next != noChunk {
		s.chunks[right.next].prev = nid
	} else {
		s.last = nid
	}

	s.byEnd[offset] = id
	s.byStart[offset] = nid
	s.byEnd[right.end] = nid
	s.lastSearched = id

	s.logger.Debug("split chunk", "offset", offset, "left", left.start, "right", right.end)
	return nid
}

// adjacent walks chunks from start to end in original order and checks that
// each one is also followed physically by its original successor. It
// returns the first and last chunk of the run.
func (s *WizardString) adjacent(start, end int) (chunkID, chunkID, error) {
	first := lookup(s.byStart, start)
	last := lookup(s.byEnd, end)
	if first == noChunk || last == noChunk {
		return noChunk, noChunk, fmt.Errorf("%w: no boundary at %d or %d", ErrConflictingEdit, start, end)
	}

	for id := first; id != last; {
		c := &s.chunks[id]
		following := lookup(s.byStart, c.end)
		if following == noChunk || c.next != following {
			return noChunk, noChunk, fmt.Errorf("%w: cannot overwrite across a split point", ErrConflictingEdit)
		}
		id = following
	}
	return first, last, nil
}

// merge collapses the run covering [start, end) into its first chunk. The
// boundaries strictly inside the range disappear together with their queues.
func (s *WizardString) merge(start, end int) (chunkID, error) {
	first, last, err := s.adjacent(start, end)
	if err != nil {
		return noChunk, err
	}
	if first == last {
		return first, nil
	}

	for id := first; id != last; {
		c := &s.chunks[id]
		next := c.next
		delete(s.byEnd, c.end)
		delete(s.byStart, c.end)
		delete(s.boundaries, c.end)
		if id != first {
			c.dead = true
		}
		id = next
	}

	tail := s.chunks[last]
	s.chunks[last].dead = true

	head := &s.chunks[first]
	head.end = end
	head.content = s.original[start:end]
	head.next = tail.next
	if tail.next != noChunk {
		s.chunks[tail.next].prev = first
	} else {
		s.last = first
	}
	s.byEnd[end] = first
	s.lastSearched = first

	s.logger.Debug("merged chunks", "start", start, "end", end)
	return first, nil
}

// checkIntegrity verifies that the physical list and both lookup maps agree
// and that the chunks tile the original text.
func (s *WizardString) checkIntegrity() error {
	var prev chunkID = noChunk
	count := 0
	for id := s.first; id != noChunk; id = s.chunks[id].next {
		c := &s.chunks[id]
		if c.dead {
			return fmt.Errorf("dead chunk %d reachable", id)
		}
		if lookup(s.byStart, c.start) != id {
			return fmt.Errorf("byStart[%d] does not point at chunk %d", c.start, id)
		}
		if lookup(s.byEnd, c.end) != id {
			return fmt.Errorf("byEnd[%d] does not point at chunk %d", c.end, id)
		}
		if c.prev != prev {
			return fmt.Errorf("chunk %d has previous %d, want %d", id, c.prev, prev)
		}
		if c.start >= c.end {
			return fmt.Errorf("chunk %d is empty [%d,%d)", id, c.start, c.end)
		}
		prev = id
		count++
		if count > len(s.chunks) {
			return fmt.Errorf("cycle in chunk list")
		}
	}
	if prev != s.last {
		return fmt.Errorf("last chunk is %d, list ends at %d", s.last, prev)
	}
	if len(s.byStart) != count || len(s.byEnd) != count {
		return fmt.Errorf("lookup maps hold %d/%d entries for %d chunks", len(s.byStart), len(s.byEnd), count)
	}

	offset := 0
	for offset < len(s.original) {
		id := lookup(s.byStart, offset)
		if id == noChunk {
			return fmt.Errorf("gap at offset %d", offset)
		}
		offset = s.chunks[id].end
	}
	return nil
}
