// Package script reads YAML edit scripts and applies them to a WizardString.
//
// A script names its options and lists edits in order:
//
//	filename: main.js
//	edits:
//	  - op: overwrite
//	    start: 9
//	    end: 12
//	    text: Bar
//	    storeName: true
//	  - op: move
//	    start: 0
//	    end: 3
//	    to: 12
//	  - op: replaceAll
//	    pattern: '(\d+)px'
//	    regexp: true
//	    text: '$1em'
package script

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/phroun/wizardstring"
)

// ErrInvalidScript is returned for scripts that parse but cannot be applied.
var ErrInvalidScript = errors.New("invalid script")

// Op names an edit operation.
type Op string

// Edit operations.
const (
	OpAppendLeft   Op = "appendLeft"
	OpAppendRight  Op = "appendRight"
	OpPrependLeft  Op = "prependLeft"
	OpPrependRight Op = "prependRight"
	OpAppend       Op = "append"
	OpPrepend      Op = "prepend"
	OpOverwrite    Op = "overwrite"
	OpUpdate       Op = "update"
	OpRemove       Op = "remove"
	OpReset        Op = "reset"
	OpMove         Op = "move"
	OpReplace      Op = "replace"
	OpReplaceAll   Op = "replaceAll"
	OpIndent       Op = "indent"
	OpTrim         Op = "trim"
	OpTrimStart    Op = "trimStart"
	OpTrimEnd      Op = "trimEnd"
	OpTrimLines    Op = "trimLines"
	OpAnchor       Op = "anchor"
)

// Range is a half-open span of original offsets.
type Range struct {
	Start int `yaml:"start"`
	End   int `yaml:"end"`
}

// Edit is one step of a script. Which fields matter depends on Op.
type Edit struct {
	Op    Op     `yaml:"op"`
	At    int    `yaml:"at"`
	Start int    `yaml:"start"`
	End   int    `yaml:"end"`
	To    int    `yaml:"to"`
	Text  string `yaml:"text"`

	StoreName   bool `yaml:"storeName"`
	ContentOnly bool `yaml:"contentOnly"`
	Overwrite   bool `yaml:"overwrite"`

	// Pattern is matched literally unless Regexp is set. Global makes a
	// regexp replace rewrite every match.
	Pattern string `yaml:"pattern"`
	Regexp  bool   `yaml:"regexp"`
	Global  bool   `yaml:"global"`

	// Exclude lists ranges an indent leaves alone.
	Exclude []Range `yaml:"exclude"`

	line int
	re   *regexp.Regexp
}

// UnmarshalYAML records the line of the edit for error messages.
func (e *Edit) UnmarshalYAML(value *yaml.Node) error {
	type plain Edit
	var p plain
	if err := value.Decode(&p); err != nil {
		return err
	}
	*e = Edit(p)
	e.line = value.Line
	return nil
}

// Line returns the line of the script the edit starts on.
func (e Edit) Line() int {
	return e.line
}

// Script is a parsed edit script.
type Script struct {
	Filename              string  `yaml:"filename"`
	IgnoreList            bool    `yaml:"ignoreList"`
	IndentExclusionRanges []Range `yaml:"indentExclusionRanges"`
	Edits                 []Edit  `yaml:"edits"`
}

// Parse decodes and checks a script.
func Parse(r io.Reader) (*Script, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var s Script
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return &s, nil
		}
		return nil, fmt.Errorf("decode script: %w", err)
	}
	for i := range s.Edits {
		if err := s.Edits[i].check(); err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrInvalidScript, s.Edits[i].line, err)
		}
	}
	return &s, nil
}

// ParseFile reads and parses the script at path.
func ParseFile(path string) (*Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	s, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

func (e *Edit) check() error {
	switch e.Op {
	case OpAppendLeft, OpAppendRight, OpPrependLeft, OpPrependRight,
		OpAppend, OpPrepend, OpOverwrite, OpUpdate, OpRemove, OpReset,
		OpMove, OpIndent, OpTrim, OpTrimStart, OpTrimEnd, OpTrimLines, OpAnchor:
		return nil
	case OpReplace, OpReplaceAll:
		if e.Pattern == "" {
			return fmt.Errorf("%s needs a pattern", e.Op)
		}
		if !e.Regexp {
			return nil
		}
		re, err := regexp.Compile(e.Pattern)
		if err != nil {
			return err
		}
		e.re = re
		return nil
	case "":
		return errors.New("missing op")
	default:
		return fmt.Errorf("unknown op %q", e.Op)
	}
}

// Options returns the construction options the script asks for.
func (s *Script) Options(logger *slog.Logger) wizardstring.Options {
	opts := wizardstring.Options{
		Filename:   s.Filename,
		IgnoreList: s.IgnoreList,
		Logger:     logger,
	}
	for _, r := range s.IndentExclusionRanges {
		opts.IndentExclusionRanges = append(opts.IndentExclusionRanges, [2]int{r.Start, r.End})
	}
	return opts
}

// Build creates a WizardString over source and applies the script to it.
func (s *Script) Build(source string, logger *slog.Logger) (*wizardstring.WizardString, error) {
	ws := wizardstring.New(source, s.Options(logger))
	if err := s.Apply(ws); err != nil {
		return nil, err
	}
	return ws, nil
}

// Apply runs the edits in order, stopping at the first failure.
func (s *Script) Apply(ws *wizardstring.WizardString) error {
	for i, e := range s.Edits {
		if err := e.apply(ws); err != nil {
			return fmt.Errorf("edit %d (%s, line %d): %w", i+1, e.Op, e.line, err)
		}
	}
	return nil
}

func (e Edit) apply(ws *wizardstring.WizardString) error {
	switch e.Op {
	case OpAppendLeft:
		return ws.AppendLeft(e.At, e.Text)
	case OpAppendRight:
		return ws.AppendRight(e.At, e.Text)
	case OpPrependLeft:
		return ws.PrependLeft(e.At, e.Text)
	case OpPrependRight:
		return ws.PrependRight(e.At, e.Text)
	case OpAppend:
		ws.Append(e.Text)
	case OpPrepend:
		ws.Prepend(e.Text)
	case OpOverwrite:
		return ws.Overwrite(e.Start, e.End, e.Text, wizardstring.OverwriteOptions{
			StoreName:   e.StoreName,
			ContentOnly: e.ContentOnly,
		})
	case OpUpdate:
		return ws.Update(e.Start, e.End, e.Text, wizardstring.UpdateOptions{
			StoreName: e.StoreName,
			Overwrite: e.Overwrite,
		})
	case OpRemove:
		return ws.Remove(e.Start, e.End)
	case OpReset:
		return ws.Reset(e.Start, e.End)
	case OpMove:
		return ws.Move(e.Start, e.End, e.To)
	case OpReplace:
		_, err := ws.Replace(e.pattern(), e.Text)
		return err
	case OpReplaceAll:
		_, err := ws.ReplaceAll(e.pattern(), e.Text)
		return err
	case OpIndent:
		opts := wizardstring.IndentOptions{}
		for _, r := range e.Exclude {
			opts.Exclude = append(opts.Exclude, [2]int{r.Start, r.End})
		}
		if e.Text == "" {
			ws.AutoIndent(opts)
		} else {
			ws.Indent(e.Text, opts)
		}
	case OpTrim:
		ws.Trim()
	case OpTrimStart:
		ws.TrimStart()
	case OpTrimEnd:
		ws.TrimEnd()
	case OpTrimLines:
		ws.TrimLines()
	case OpAnchor:
		ws.AddSourcemapLocation(e.At)
	default:
		return fmt.Errorf("%w: unknown op %q", ErrInvalidScript, e.Op)
	}
	return nil
}

// pattern builds the replace pattern. A replaceAll regexp is always global.
func (e Edit) pattern() wizardstring.Pattern {
	switch {
	case e.re == nil:
		return wizardstring.Literal(e.Pattern)
	case e.Global || e.Op == OpReplaceAll:
		return wizardstring.GlobalRegexp(e.re)
	default:
		return wizardstring.Regexp(e.re)
	}
}
