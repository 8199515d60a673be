package wizardstring

import (
	"log/slog"
	"slices"
)

// Options configures a WizardString.
type Options struct {
	// Filename is reported by Filename and used by callers composing maps.
	Filename string

	// IgnoreList marks the source as third-party code; generated maps then
	// carry x_google_ignoreList: [0].
	IgnoreList bool

	// IndentExclusionRanges lists [start, end) original ranges whose
	// characters are never indented. Each Indent call adds its own ranges to
	// these.
	IndentExclusionRanges [][2]int

	// Logger receives debug records for structural mutations.
	// Nil discards them.
	Logger *slog.Logger
}

// WizardString is an edit graph over an immutable original text.
//
// The original is divided into chunks that are split on demand. Text can be
// queued at any chunk boundary, chunks can be overwritten, removed and
// relocated, and the result can be rendered or described by a source map at
// any time. A WizardString is not safe for concurrent use; clone it per
// goroutine instead.
type WizardString struct {
	original              string
	filename              string
	ignoreList            bool
	indentExclusionRanges [][2]int
	logger                *slog.Logger

	// Chunk arena and its indexes
	chunks       []chunk
	first        chunkID
	last         chunkID
	byStart      map[int]chunkID
	byEnd        map[int]chunkID
	lastSearched chunkID

	// Insertion queues keyed by original offset
	boundaries map[int]*boundary

	storedNames        []string
	sourcemapLocations map[int]struct{}

	// Lazily computed from the immutable original
	indentGuessed bool
	indentStr     string
	loc           *locator
}

// New creates a WizardString over source.
func New(source string, opts Options) *WizardString {
	s := &WizardString{
		original:              source,
		filename:              opts.Filename,
		ignoreList:            opts.IgnoreList,
		indentExclusionRanges: slices.Clone(opts.IndentExclusionRanges),
		logger:                opts.Logger,
		first:                 noChunk,
		last:                  noChunk,
		lastSearched:          noChunk,
		byStart:               make(map[int]chunkID),
		byEnd:                 make(map[int]chunkID),
		boundaries:            make(map[int]*boundary),
		sourcemapLocations:    make(map[int]struct{}),
	}
	if s.logger == nil {
		s.logger = slog.New(slog.DiscardHandler)
	}

	if len(source) > 0 {
		s.chunks = append(s.chunks, chunk{
			start:   0,
			end:     len(source),
			content: source,
			prev:    noChunk,
			next:    noChunk,
		})
		s.first, s.last, s.lastSearched = 0, 0, 0
		s.byStart[0] = 0
		s.byEnd[len(source)] = 0
	}
	return s
}

// Clone returns a deep, independent copy. Dead arena slots are dropped.
func (s *WizardString) Clone() *WizardString {
	c := &WizardString{
		original:              s.original,
		filename:              s.filename,
		ignoreList:            s.ignoreList,
		indentExclusionRanges: slices.Clone(s.indentExclusionRanges),
		logger:                s.logger,
		first:                 noChunk,
		last:                  noChunk,
		lastSearched:          noChunk,
		byStart:               make(map[int]chunkID, len(s.byStart)),
		byEnd:                 make(map[int]chunkID, len(s.byEnd)),
		boundaries:            make(map[int]*boundary, len(s.boundaries)),
		storedNames:           slices.Clone(s.storedNames),
		sourcemapLocations:    make(map[int]struct{}, len(s.sourcemapLocations)),
		indentGuessed:         s.indentGuessed,
		indentStr:             s.indentStr,
		loc:                   s.loc,
	}

	// Renumber live chunks densely, preserving physical order.
	renumber := make(map[chunkID]chunkID, len(s.byStart))
	for id := s.first; id != noChunk; id = s.chunks[id].next {
		renumber[id] = chunkID(len(c.chunks))
		c.chunks = append(c.chunks, s.chunks[id])
	}
	for i := range c.chunks {
		ch := &c.chunks[i]
		ch.prev = remap(renumber, ch.prev)
		ch.next = remap(renumber, ch.next)
		c.byStart[ch.start] = chunkID(i)
		c.byEnd[ch.end] = chunkID(i)
	}
	if n := len(c.chunks); n > 0 {
		c.first, c.last, c.lastSearched = 0, chunkID(n-1), 0
	}

	for off, b := range s.boundaries {
		c.boundaries[off] = b.clone()
	}
	for off := range s.sourcemapLocations {
		c.sourcemapLocations[off] = struct{}{}
	}
	return c
}

func remap(m map[chunkID]chunkID, id chunkID) chunkID {
	if id == noChunk {
		return noChunk
	}
	return m[id]
}

// Snip returns a clone with everything outside [start, end) removed. Offsets
// in the clone still refer to the full original text.
func (s *WizardString) Snip(start, end int) (*WizardString, error) {
	c := s.Clone()
	if err := c.Remove(0, start); err != nil {
		return nil, err
	}
	if err := c.Remove(end, len(c.original)); err != nil {
		return nil, err
	}
	return c, nil
}

// Original returns the unedited source text.
func (s *WizardString) Original() string {
	return s.original
}

// Filename returns the filename given at construction.
func (s *WizardString) Filename() string {
	return s.filename
}

// IgnoreList reports whether generated maps mark the source as ignored.
func (s *WizardString) IgnoreList() bool {
	return s.ignoreList
}

// IndentExclusionRanges returns a copy of the construction-time exclusion
// ranges.
func (s *WizardString) IndentExclusionRanges() [][2]int {
	return slices.Clone(s.indentExclusionRanges)
}

// StoredNames returns the original spans recorded by StoreName edits, in
// first-use order.
func (s *WizardString) StoredNames() []string {
	return slices.Clone(s.storedNames)
}

// AddSourcemapLocation forces a mapping segment at the original offset in
// every generated map, whatever the resolution.
func (s *WizardString) AddSourcemapLocation(offset int) {
	s.sourcemapLocations[offset] = struct{}{}
}

// HasChanged reports whether the rendered text differs from the original.
func (s *WizardString) HasChanged() bool {
	return s.String() != s.original
}

// normalize maps a negative offset to one counted from the end of the
// original text.
func (s *WizardString) normalize(offset int) int {
	n := len(s.original)
	for offset < 0 && n > 0 {
		offset += n
	}
	return offset
}

func (s *WizardString) storeName(name string) {
	if !slices.Contains(s.storedNames, name) {
		s.storedNames = append(s.storedNames, name)
	}
}

func (s *WizardString) locator() *locator {
	if s.loc == nil {
		s.loc = newLocator(s.original)
	}
	return s.loc
}
