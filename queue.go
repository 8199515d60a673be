package wizardstring

import (
	"fmt"
	"slices"
	"strings"
)

// boundary holds the text queued at one original offset. The left half
// renders after the chunk ending here, the right half before the chunk
// starting here. Within each half the outer slot surrounds the inner one.
type boundary struct {
	outerLeft  []string
	innerLeft  []string
	innerRight []string
	outerRight []string
}

func (b *boundary) clone() *boundary {
	return &boundary{
		outerLeft:  slices.Clone(b.outerLeft),
		innerLeft:  slices.Clone(b.innerLeft),
		innerRight: slices.Clone(b.innerRight),
		outerRight: slices.Clone(b.outerRight),
	}
}

func (b *boundary) leftSlots() []*[]string {
	return []*[]string{&b.outerLeft, &b.innerLeft}
}

func (b *boundary) rightSlots() []*[]string {
	return []*[]string{&b.innerRight, &b.outerRight}
}

func (b *boundary) empty() bool {
	return len(b.outerLeft) == 0 && len(b.innerLeft) == 0 &&
		len(b.innerRight) == 0 && len(b.outerRight) == 0
}

func writeSlots(sb *strings.Builder, slots ...[]string) {
	for _, slot := range slots {
		for _, text := range slot {
			sb.WriteString(text)
		}
	}
}

// boundaryAt returns the boundary at offset, creating it if needed.
func (s *WizardString) boundaryAt(offset int) *boundary {
	b, ok := s.boundaries[offset]
	if !ok {
		b = &boundary{}
		s.boundaries[offset] = b
	}
	return b
}

// writeLeft renders the left half of the boundary at offset.
func (s *WizardString) writeLeft(sb *strings.Builder, offset int) {
	if b, ok := s.boundaries[offset]; ok {
		writeSlots(sb, b.outerLeft, b.innerLeft)
	}
}

// writeRight renders the right half of the boundary at offset.
func (s *WizardString) writeRight(sb *strings.Builder, offset int) {
	if b, ok := s.boundaries[offset]; ok {
		writeSlots(sb, b.innerRight, b.outerRight)
	}
}

func (s *WizardString) leftOf(offset int) string {
	var sb strings.Builder
	s.writeLeft(&sb, offset)
	return sb.String()
}

func (s *WizardString) rightOf(offset int) string {
	var sb strings.Builder
	s.writeRight(&sb, offset)
	return sb.String()
}

func (s *WizardString) clearLeft(offset int) {
	if b, ok := s.boundaries[offset]; ok {
		b.outerLeft, b.innerLeft = nil, nil
		if b.empty() {
			delete(s.boundaries, offset)
		}
	}
}

func (s *WizardString) clearRight(offset int) {
	if b, ok := s.boundaries[offset]; ok {
		b.innerRight, b.outerRight = nil, nil
		if b.empty() {
			delete(s.boundaries, offset)
		}
	}
}

// queueAt splits at offset and returns the boundary to insert into.
func (s *WizardString) queueAt(offset int) (*boundary, error) {
	if err := s.split(offset); err != nil {
		return nil, err
	}
	return s.boundaryAt(offset), nil
}

// AppendLeft queues text at the back of the inner left slot of offset. It
// renders after the chunk ending at offset and moves with it.
func (s *WizardString) AppendLeft(offset int, text string) error {
	b, err := s.queueAt(offset)
	if err != nil {
		return err
	}
	b.innerLeft = append(b.innerLeft, text)
	return nil
}

// PrependLeft queues text at the front of the outer left slot of offset.
func (s *WizardString) PrependLeft(offset int, text string) error {
	b, err := s.queueAt(offset)
	if err != nil {
		return err
	}
	b.outerLeft = slices.Insert(b.outerLeft, 0, text)
	return nil
}

// PrependRight queues text at the front of the inner right slot of offset.
// It renders before the chunk starting at offset and moves with it.
func (s *WizardString) PrependRight(offset int, text string) error {
	b, err := s.queueAt(offset)
	if err != nil {
		return err
	}
	b.innerRight = slices.Insert(b.innerRight, 0, text)
	return nil
}

// AppendRight queues text at the back of the outer right slot of offset.
func (s *WizardString) AppendRight(offset int, text string) error {
	b, err := s.queueAt(offset)
	if err != nil {
		return err
	}
	b.outerRight = append(b.outerRight, text)
	return nil
}

// Append adds text to the end of the output.
func (s *WizardString) Append(text string) {
	b := s.boundaryAt(len(s.original))
	b.outerRight = append(b.outerRight, text)
}

// Prepend adds text to the start of the output.
func (s *WizardString) Prepend(text string) {
	b := s.boundaryAt(0)
	b.outerLeft = slices.Insert(b.outerLeft, 0, text)
}

// Insert always fails.
//
// Deprecated: use PrependLeft, PrependRight, AppendLeft or AppendRight, which
// say which neighbouring chunk the text travels with.
func (s *WizardString) Insert(offset int, text string) error {
	return fmt.Errorf("%w: Insert is deprecated, use PrependLeft, PrependRight, AppendLeft or AppendRight", ErrDeprecated)
}
