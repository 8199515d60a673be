// Package wizardstring provides an edit graph over an immutable source text:
// many small, composable edits (insert, replace, delete, relocate) that can be
// rendered to a string and described by a version 3 source map at any time.
package wizardstring

import "errors"

// Argument errors
var (
	// ErrInvalidArgument indicates a malformed request, such as a zero-length
	// overwrite range or a non-global pattern passed to ReplaceAll.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrOutOfBounds indicates that an offset lies outside the original text.
	ErrOutOfBounds = errors.New("character is out of bounds")
)

// Edit errors
var (
	// ErrConflictingEdit indicates that an edit would split an already
	// overwritten chunk, or merge chunks that are no longer adjacent.
	ErrConflictingEdit = errors.New("conflicting edit")

	// ErrIllegalMove indicates that a move target lies inside the moved range.
	ErrIllegalMove = errors.New("illegal move")
)

// Rendering errors
var (
	// ErrAmbiguousAnchor indicates that a slice endpoint falls strictly inside
	// an overwritten chunk, where no original position exists.
	ErrAmbiguousAnchor = errors.New("ambiguous slice anchor")
)

// Legacy API errors
var (
	// ErrDeprecated is returned by operations kept only to point callers at
	// their replacements.
	ErrDeprecated = errors.New("deprecated")
)
