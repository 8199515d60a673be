package wizardstring

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"sort"
)

// Version is the source map format version produced and accepted.
const Version = 3

// SourceMap is a version 3 source map with decoded mappings. It can be
// generated by GenerateMap, parsed with ParseSourceMap or built directly.
type SourceMap struct {
	File           string
	Sources        []string
	SourcesContent []string
	Names          []string

	// Mappings holds one slice of segments per generated line.
	Mappings [][]Segment

	// IgnoreList holds indexes into Sources that debuggers should skip.
	IgnoreList []int
}

// sourceMapJSON fixes the serialized key order.
type sourceMapJSON struct {
	Version        int      `json:"version"`
	File           string   `json:"file,omitempty"`
	Sources        []string `json:"sources"`
	SourcesContent []string `json:"sourcesContent,omitempty"`
	Names          []string `json:"names"`
	Mappings       string   `json:"mappings"`
	IgnoreList     []int    `json:"x_google_ignoreList,omitempty"`
}

// EncodedMappings returns the VLQ form of Mappings.
func (sm *SourceMap) EncodedMappings() string {
	return EncodeMappings(sm.Mappings)
}

// MarshalJSON renders the canonical JSON form without HTML escaping.
func (sm *SourceMap) MarshalJSON() ([]byte, error) {
	out := sourceMapJSON{
		Version:        Version,
		File:           sm.File,
		Sources:        sm.Sources,
		SourcesContent: sm.SourcesContent,
		Names:          sm.Names,
		Mappings:       sm.EncodedMappings(),
		IgnoreList:     sm.IgnoreList,
	}
	if out.Sources == nil {
		out.Sources = []string{}
	}
	if out.Names == nil {
		out.Names = []string{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(out); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// String returns the JSON form of the map.
func (sm *SourceMap) String() string {
	data, err := sm.MarshalJSON()
	if err != nil {
		// Only strings and ints are encoded.
		panic(err)
	}
	return string(data)
}

// URL returns the map as a base64 data URL, suitable for an inline
// sourceMappingURL comment.
func (sm *SourceMap) URL() string {
	return "data:application/json;charset=utf-8;base64," +
		base64.StdEncoding.EncodeToString([]byte(sm.String()))
}

// ParseSourceMap decodes a version 3 source map.
func ParseSourceMap(data []byte) (*SourceMap, error) {
	var raw sourceMapJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: parse source map: %w", ErrInvalidArgument, err)
	}
	if raw.Version != Version {
		return nil, fmt.Errorf("%w: unsupported source map version %d", ErrInvalidArgument, raw.Version)
	}
	mappings, err := DecodeMappings(raw.Mappings)
	if err != nil {
		return nil, err
	}
	return &SourceMap{
		File:           raw.File,
		Sources:        raw.Sources,
		SourcesContent: raw.SourcesContent,
		Names:          raw.Names,
		Mappings:       mappings,
		IgnoreList:     raw.IgnoreList,
	}, nil
}

// OriginalPosition is the result of a reverse lookup. Line is one-based and
// Column zero-based, matching the usual consumer conventions.
type OriginalPosition struct {
	Source string
	Line   int
	Column int
	Name   string
}

// OriginalPositionFor finds the segment covering the generated position
// (one-based line, zero-based column): the last segment on that line that
// starts at or before column. It reports false when there is none or when
// that segment carries no source.
func (sm *SourceMap) OriginalPositionFor(line, column int) (OriginalPosition, bool) {
	if line < 1 || line > len(sm.Mappings) {
		return OriginalPosition{}, false
	}
	segments := sm.Mappings[line-1]

	i := sort.Search(len(segments), func(i int) bool {
		return segments[i][0] > column
	})
	if i == 0 {
		return OriginalPosition{}, false
	}
	seg := segments[i-1]
	if len(seg) < 4 {
		return OriginalPosition{}, false
	}

	pos := OriginalPosition{Line: seg[2] + 1, Column: seg[3]}
	if seg[1] >= 0 && seg[1] < len(sm.Sources) {
		pos.Source = sm.Sources[seg[1]]
	}
	if len(seg) >= 5 && seg[4] >= 0 && seg[4] < len(sm.Names) {
		pos.Name = sm.Names[seg[4]]
	}
	return pos, true
}
