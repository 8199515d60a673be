package wizardstring

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Pattern selects the original text that a replace call rewrites.
type Pattern struct {
	literal string
	re      *regexp.Regexp
	global  bool
}

// Literal matches s verbatim.
func Literal(s string) Pattern {
	return Pattern{literal: s}
}

// Regexp matches the first match of re.
func Regexp(re *regexp.Regexp) Pattern {
	return Pattern{re: re}
}

// GlobalRegexp matches every match of re.
func GlobalRegexp(re *regexp.Regexp) Pattern {
	return Pattern{re: re, global: true}
}

// Match describes one match handed to a replacement function.
type Match struct {
	Text   string   // The matched text
	Groups []string // Capture groups; unmatched groups are empty
	Start  int      // Byte offset of the match in the original
}

// match is a span of the original with its capture groups.
type match struct {
	start, end int
	groups     []string
}

// find returns up to n non-empty matches in the original, left to right.
// n < 0 means all.
func (p Pattern) find(text string, n int) []match {
	var out []match
	if p.re == nil {
		if p.literal == "" {
			return nil
		}
		offset := 0
		for n < 0 || len(out) < n {
			i := strings.Index(text[offset:], p.literal)
			if i < 0 {
				break
			}
			start := offset + i
			out = append(out, match{start: start, end: start + len(p.literal)})
			offset = start + len(p.literal)
		}
		return out
	}

	for _, loc := range p.re.FindAllStringSubmatchIndex(text, -1) {
		if loc[0] == loc[1] {
			continue
		}
		m := match{start: loc[0], end: loc[1]}
		for g := 2; g < len(loc); g += 2 {
			if loc[g] < 0 {
				m.groups = append(m.groups, "")
				continue
			}
			m.groups = append(m.groups, text[loc[g]:loc[g+1]])
		}
		out = append(out, m)
		if n >= 0 && len(out) == n {
			break
		}
	}
	return out
}

// Replace overwrites the first match of p, or every match for a
// GlobalRegexp, with replacement. For regular expressions replacement may
// refer to the match: $$ is a dollar sign, $& the whole match and $n the
// nth capture group. Literal patterns use replacement verbatim. Matches whose
// replacement equals the matched text are left untouched. It returns the
// number of matches overwritten.
func (s *WizardString) Replace(p Pattern, replacement string) (int, error) {
	return s.replace(p, p.global, p.expander(replacement))
}

// ReplaceFunc is Replace with the replacement computed per match.
func (s *WizardString) ReplaceFunc(p Pattern, fn func(Match) string) (int, error) {
	return s.replace(p, p.global, funcReplacer(fn))
}

// ReplaceAll overwrites every match of p. A regular expression pattern must
// be global.
func (s *WizardString) ReplaceAll(p Pattern, replacement string) (int, error) {
	if p.re != nil && !p.global {
		return 0, fmt.Errorf("%w: ReplaceAll called with a non-global regular expression", ErrInvalidArgument)
	}
	return s.replace(p, true, p.expander(replacement))
}

// ReplaceAllFunc is ReplaceAll with the replacement computed per match.
func (s *WizardString) ReplaceAllFunc(p Pattern, fn func(Match) string) (int, error) {
	if p.re != nil && !p.global {
		return 0, fmt.Errorf("%w: ReplaceAll called with a non-global regular expression", ErrInvalidArgument)
	}
	return s.replace(p, true, funcReplacer(fn))
}

func (s *WizardString) replace(p Pattern, all bool, fn func(text string, m match) string) (int, error) {
	n := 1
	if all {
		n = -1
	}
	count := 0
	for _, m := range p.find(s.original, n) {
		original := s.original[m.start:m.end]
		text := fn(original, m)
		if text == original {
			continue
		}
		if err := s.Overwrite(m.start, m.end, text, OverwriteOptions{}); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

func funcReplacer(fn func(Match) string) func(string, match) string {
	return func(text string, m match) string {
		return fn(Match{Text: text, Groups: m.groups, Start: m.start})
	}
}

func (p Pattern) expander(replacement string) func(string, match) string {
	if p.re == nil {
		return func(string, match) string {
			return replacement
		}
	}
	return func(text string, m match) string {
		return expand(replacement, text, m.groups)
	}
}

// expand substitutes $$, $& and $n in replacement, where $0 is the whole
// match. A $n naming a group that does not exist is kept literally.
func expand(replacement, text string, groups []string) string {
	if !strings.Contains(replacement, "$") {
		return replacement
	}
	var sb strings.Builder
	for i := 0; i < len(replacement); i++ {
		ch := replacement[i]
		if ch != '$' || i+1 == len(replacement) {
			sb.WriteByte(ch)
			continue
		}
		switch next := replacement[i+1]; {
		case next == '$':
			sb.WriteByte('$')
			i++
		case next == '&':
			sb.WriteString(text)
			i++
		case next >= '0' && next <= '9':
			j := i + 1
			for j < len(replacement) && replacement[j] >= '0' && replacement[j] <= '9' {
				j++
			}
			num, err := strconv.Atoi(replacement[i+1 : j])
			if err == nil && num <= len(groups) {
				if num == 0 {
					sb.WriteString(text)
				} else {
					sb.WriteString(groups[num-1])
				}
				i = j - 1
			} else {
				sb.WriteByte('$')
			}
		default:
			sb.WriteByte('$')
		}
	}
	return sb.String()
}
