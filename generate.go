package wizardstring

import (
	"slices"
	"strings"
)

// MapOptions configures GenerateMap.
type MapOptions struct {
	// File is the path of the generated file. Its base name becomes the
	// map's file field and its directory anchors the relative source path.
	File string

	// Source is the path of the original file.
	Source string

	// IncludeContent embeds the original text as sourcesContent.
	IncludeContent bool

	// Hires selects the mapping density.
	Hires Resolution
}

// GenerateMap describes the current output as a version 3 source map with a
// single source.
func (s *WizardString) GenerateMap(opts MapOptions) *SourceMap {
	loc := s.locator()
	b := newMappingBuilder(opts.Hires, s.sourcemapLocations)

	b.advance(s.leftOf(0))
	for id := s.first; id != noChunk; id = s.chunks[id].next {
		c := &s.chunks[id]
		pos := loc.locate(c.start)

		b.advance(s.rightOf(c.start))
		if c.edited {
			name := -1
			if c.storeName {
				name = slices.Index(s.storedNames, s.original[c.start:c.end])
			}
			b.addEdit(c.content, pos, name)
		} else {
			b.addUnedited(s.original, c.start, c.end, pos)
		}
		b.advance(s.leftOf(c.end))
	}
	b.advance(s.rightOf(len(s.original)))

	sm := &SourceMap{
		Sources:  []string{mapSource(opts.File, opts.Source)},
		Names:    slices.Clone(s.storedNames),
		Mappings: b.raw,
	}
	if opts.File != "" {
		sm.File = baseName(opts.File)
	}
	if opts.IncludeContent {
		sm.SourcesContent = []string{s.original}
	}
	if s.ignoreList {
		sm.IgnoreList = []int{0}
	}

	s.logger.Debug("generated source map",
		"file", sm.File,
		"lines", len(sm.Mappings),
		"names", len(sm.Names))
	return sm
}

func baseName(p string) string {
	parts := splitPath(p)
	return parts[len(parts)-1]
}

func mapSource(file, source string) string {
	if source == "" {
		return file
	}
	return relativePath(file, source)
}

// relativePath expresses to relative to the directory containing from. Both
// are treated as slash- or backslash-separated paths. Empty segments are
// kept, so an absolute to stays absolute when from has no directory.
func relativePath(from, to string) string {
	fromParts := splitPath(from)
	toParts := splitPath(to)
	fromParts = fromParts[:len(fromParts)-1]

	for len(fromParts) > 0 && len(toParts) > 0 && fromParts[0] == toParts[0] {
		fromParts = fromParts[1:]
		toParts = toParts[1:]
	}

	parts := make([]string, 0, len(fromParts)+len(toParts))
	for range fromParts {
		parts = append(parts, "..")
	}
	return strings.Join(append(parts, toParts...), "/")
}

func splitPath(p string) []string {
	return strings.Split(strings.ReplaceAll(p, `\`, "/"), "/")
}
