package wizardstring

import (
	"fmt"
)

// OverwriteOptions configures Overwrite.
type OverwriteOptions struct {
	// StoreName records the replaced original text as a source map name.
	StoreName bool

	// ContentOnly keeps the text queued against the replaced range instead
	// of discarding it.
	ContentOnly bool
}

// UpdateOptions configures Update.
type UpdateOptions struct {
	// StoreName records the replaced original text as a source map name.
	StoreName bool

	// Overwrite discards the text queued against the replaced range.
	Overwrite bool
}

// Overwrite replaces the original range [start, end) with text. Text queued
// on the inside of the range (the right half at start and the left half at
// end) is discarded unless opts.ContentOnly is set. Negative offsets count
// from the end of the original.
func (s *WizardString) Overwrite(start, end int, text string, opts OverwriteOptions) error {
	return s.update(start, end, text, opts.StoreName, !opts.ContentOnly)
}

// Update replaces the original range [start, end) with text, keeping queued
// text unless opts.Overwrite is set.
func (s *WizardString) Update(start, end int, text string, opts UpdateOptions) error {
	return s.update(start, end, text, opts.StoreName, opts.Overwrite)
}

func (s *WizardString) update(start, end int, text string, storeName, discardQueues bool) error {
	start, end = s.normalize(start), s.normalize(end)

	if end > len(s.original) || start < 0 {
		return fmt.Errorf("%w: range [%d,%d) exceeds %d", ErrOutOfBounds, start, end, len(s.original))
	}
	if start == end {
		return fmt.Errorf("%w: cannot overwrite a zero-length range – use AppendLeft or PrependRight instead", ErrInvalidArgument)
	}
	if start > end {
		return fmt.Errorf("%w: end must be greater than start", ErrInvalidArgument)
	}

	if err := s.split(start); err != nil {
		return err
	}
	if err := s.split(end); err != nil {
		return err
	}
	id, err := s.merge(start, end)
	if err != nil {
		return err
	}

	if storeName {
		s.storeName(s.original[start:end])
	}
	c := &s.chunks[id]
	c.content = text
	c.edited = true
	c.storeName = storeName

	if discardQueues {
		s.clearRight(start)
		s.clearLeft(end)
	}
	return nil
}

// Remove deletes the original range [start, end) from the output together
// with the text queued inside it. The range may span chunks that have been
// moved apart. Empty and inverted ranges are ignored.
func (s *WizardString) Remove(start, end int) error {
	return s.walkRange(start, end, func(c *chunk) {
		c.content = ""
		c.edited = true
		c.storeName = false
	})
}

// Reset restores the original text of [start, end), undoing removals and
// overwrites that lie entirely inside the range. Queued text inside the
// range is discarded.
func (s *WizardString) Reset(start, end int) error {
	return s.walkRange(start, end, func(c *chunk) {
		c.content = s.original[c.start:c.end]
		c.edited = false
		c.storeName = false
	})
}

// walkRange splits at both ends and applies fn to every chunk of the range
// in original order, clearing the queues that face into it.
func (s *WizardString) walkRange(start, end int, fn func(c *chunk)) error {
	start, end = s.normalize(start), s.normalize(end)
	if start >= end {
		return nil
	}
	if start < 0 || end > len(s.original) {
		return fmt.Errorf("%w: range [%d,%d) exceeds %d", ErrOutOfBounds, start, end, len(s.original))
	}

	if err := s.split(start); err != nil {
		return err
	}
	if err := s.split(end); err != nil {
		return err
	}

	for id := lookup(s.byStart, start); id != noChunk; {
		c := &s.chunks[id]
		s.clearRight(c.start)
		s.clearLeft(c.end)
		fn(c)
		if c.end >= end {
			break
		}
		id = lookup(s.byStart, c.end)
	}
	return nil
}
