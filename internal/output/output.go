// Package output writes rendered text and its source map to disk.
package output

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/zeebo/blake3"

	"github.com/phroun/wizardstring"
)

// hashLen is the number of hex digits of the content hash kept in names.
const hashLen = 8

// Options controls how a result is written.
type Options struct {
	// Dir is the output directory.
	Dir string

	// InlineMap embeds the map as a data URL instead of writing a .map file.
	InlineMap bool

	// HashNames inserts a content hash before the extension, e.g.
	// main.3f2a9c1d.js.
	HashNames bool

	// IncludeContent embeds the original text in the map.
	IncludeContent bool

	// Resolution is the mapping density.
	Resolution wizardstring.Resolution
}

// Result describes written files.
type Result struct {
	CodePath string
	MapPath  string // empty for inline maps
	Hash     string // full content hash of the rendered text
	Size     int    // bytes written to CodePath
}

// Hash returns the hex BLAKE3 hash of data.
func Hash(data []byte) string {
	h := blake3.Sum256(data)
	return hex.EncodeToString(h[:])
}

// HashedName inserts the first hash digits before the extension of name.
func HashedName(name, hash string) string {
	ext := filepath.Ext(name)
	return strings.TrimSuffix(name, ext) + "." + hash[:hashLen] + ext
}

// Write renders ws into opts.Dir under name and writes its map next to it.
// sourcePath is the original file; the map refers to it relative to the
// output.
func Write(ws *wizardstring.WizardString, sourcePath, name string, opts Options) (Result, error) {
	code := ws.String()
	res := Result{Hash: Hash([]byte(code))}

	if opts.HashNames {
		name = HashedName(name, res.Hash)
	}
	res.CodePath = filepath.Join(opts.Dir, name)

	file, err := filepath.Abs(res.CodePath)
	if err != nil {
		return Result{}, err
	}
	source, err := filepath.Abs(sourcePath)
	if err != nil {
		return Result{}, err
	}
	m := ws.GenerateMap(wizardstring.MapOptions{
		File:           filepath.ToSlash(file),
		Source:         filepath.ToSlash(source),
		IncludeContent: opts.IncludeContent,
		Hires:          opts.Resolution,
	})

	if err := os.MkdirAll(filepath.Dir(res.CodePath), 0o755); err != nil {
		return Result{}, fmt.Errorf("create output directory: %w", err)
	}

	if opts.InlineMap {
		code += "\n//# sourceMappingURL=" + m.URL()
	} else {
		res.MapPath = res.CodePath + ".map"
		if err := os.WriteFile(res.MapPath, []byte(m.String()), 0o644); err != nil {
			return Result{}, fmt.Errorf("write map: %w", err)
		}
		code += "\n//# sourceMappingURL=" + filepath.Base(res.MapPath)
	}

	if err := os.WriteFile(res.CodePath, []byte(code), 0o644); err != nil {
		return Result{}, fmt.Errorf("write output: %w", err)
	}
	res.Size = len(code)
	return res, nil
}
