package wizardstring

// chunkID addresses a chunk inside the owning WizardString's arena.
type chunkID int32

// noChunk marks the absence of a neighbour or lookup hit.
const noChunk chunkID = -1

// chunk is a span [start, end) of the original text that has not been
// subdivided by an edit. Chunks are linked in physical (rendered) order,
// which diverges from original order once a range has been moved.
type chunk struct {
	start int
	end   int

	// content is what the chunk renders. It equals the original span until
	// the chunk is edited; an edited chunk with empty content is removed.
	content string
	edited  bool

	// storeName asks the map generator to attach the original span as a name.
	storeName bool

	prev chunkID
	next chunkID

	// dead chunks were absorbed by a merge and are unreachable.
	dead bool
}

// removed reports whether the chunk was edited down to nothing.
func (c *chunk) removed() bool {
	return c.edited && c.content == ""
}

// overwritten reports whether the chunk carries replacement text. Such a
// chunk is atomic: it can be neither split nor used as a slice anchor.
func (c *chunk) overwritten() bool {
	return c.edited && c.content != ""
}

// contains reports whether offset lies strictly inside the chunk.
func (c *chunk) contains(offset int) bool {
	return c.start < offset && offset < c.end
}

// lookup returns the chunk registered at offset in m, or noChunk.
func lookup(m map[int]chunkID, offset int) chunkID {
	if id, ok := m[offset]; ok {
		return id
	}
	return noChunk
}
