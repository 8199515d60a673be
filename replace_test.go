package wizardstring

import (
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func capitalize(m Match) string {
	return strings.ToUpper(m.Groups[0]) + m.Groups[1]
}

func TestReplace(t *testing.T) {
	cases := []struct {
		name        string
		src         string
		pattern     Pattern
		replacement string
		want        string
		count       int
	}{
		{"literal", "1 2 1 2", Literal("2"), "3", "1 3 1 2", 1},
		{"literal is not a regexp", "1234", Literal("."), "*", "1234", 0},
		{"literal substitution is verbatim", "11", Literal("1"), "$0$1", "$0$11", 1},
		{"does not search back", "122121", Literal("12"), "21", "212121", 1},
		{"global regexp", "1 2 3 4 a b c", GlobalRegexp(regexp.MustCompile(`(\d)`)), "xx$1$10", "xx1$10 xx2$10 xx3$10 xx4$10 a b c", 4},
		{"escaped dollar", "1 2 3 4 a b c", GlobalRegexp(regexp.MustCompile(`(\d)`)), "$$", "$ $ $ $ a b c", 4},
		{"first regexp match only", "1 2 3", Regexp(regexp.MustCompile(`\d`)), "<$&>", "<1> 2 3", 1},
		{"whole match as group zero", "abc", Regexp(regexp.MustCompile(`b`)), "[$0]", "a[b]c", 1},
		{"empty literal", "abc", Literal(""), "x", "abc", 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := newChecked(t, tc.src)
			n, err := s.Replace(tc.pattern, tc.replacement)
			require.NoError(t, err)
			s.verify()
			assert.Equal(t, tc.count, n)
			assert.Equal(t, tc.want, s.String())
		})
	}
}

func TestReplaceUnchangedMatches(t *testing.T) {
	t.Run("keeps queued text", func(t *testing.T) {
		s := newChecked(t, "abc")
		s.prependRight(1, "^")
		n, err := s.Replace(Literal("b"), "b")
		require.NoError(t, err)
		assert.Equal(t, 0, n)
		assert.Equal(t, "a^bc", s.String())
	})

	t.Run("leaves the match splittable", func(t *testing.T) {
		s := newChecked(t, "foo bar")
		n, err := s.ReplaceAll(GlobalRegexp(regexp.MustCompile(`\w+`)), "$&")
		require.NoError(t, err)
		assert.Equal(t, 0, n)
		assert.False(t, s.HasChanged())

		s.overwrite(0, 1, "F")
		assert.Equal(t, "Foo bar", s.String())
	})

	t.Run("counts only changed matches", func(t *testing.T) {
		s := newChecked(t, "a1b2c3")
		n, err := s.ReplaceAllFunc(GlobalRegexp(regexp.MustCompile(`\d`)), func(m Match) string {
			if m.Text == "2" {
				return "two"
			}
			return m.Text
		})
		require.NoError(t, err)
		assert.Equal(t, 1, n)
		assert.Equal(t, "a1btwoc3", s.String())
	})
}

func TestReplaceFunc(t *testing.T) {
	t.Run("global regexp", func(t *testing.T) {
		s := newChecked(t, "hey this is magic")
		n, err := s.ReplaceFunc(GlobalRegexp(regexp.MustCompile(`(\w)(\w+)`)), capitalize)
		require.NoError(t, err)
		assert.Equal(t, 4, n)
		assert.Equal(t, "Hey This Is Magic", s.String())
	})

	t.Run("match details", func(t *testing.T) {
		const code = "abc12345#$*%"
		s := newChecked(t, code)
		_, err := s.ReplaceFunc(Regexp(regexp.MustCompile(`([^\d]*)(\d*)([^\w]*)`)), func(m Match) string {
			parts := append([]string{m.Text}, m.Groups...)
			return strings.Join(append(parts, strconv.Itoa(m.Start)), " - ")
		})
		require.NoError(t, err)
		assert.Equal(t, "abc12345#$*% - abc - 12345 - #$*% - 0", s.String())
	})

	t.Run("offsets of later matches", func(t *testing.T) {
		s := newChecked(t, "a1b22c333")
		var starts []int
		_, err := s.ReplaceFunc(GlobalRegexp(regexp.MustCompile(`\d+`)), func(m Match) string {
			starts = append(starts, m.Start)
			return strconv.Itoa(len(m.Text))
		})
		require.NoError(t, err)
		assert.Equal(t, []int{1, 3, 6}, starts)
		assert.Equal(t, "a1b2c3", s.String())
	})
}

func TestReplaceAll(t *testing.T) {
	t.Run("literal", func(t *testing.T) {
		cases := []struct{ src, pattern, replacement, want string }{
			{"1212", "2", "3", "1313"},
			{"1234", ".", "*", "1234"},
			{"11", "1", "$0$1", "$0$1$0$1"},
			{"121212", "12", "21", "212121"},
		}
		for _, tc := range cases {
			s := newChecked(t, tc.src)
			_, err := s.ReplaceAll(Literal(tc.pattern), tc.replacement)
			require.NoError(t, err)
			assert.Equal(t, tc.want, s.String(), "%q in %q", tc.pattern, tc.src)
		}
	})

	t.Run("global regexp matches Replace", func(t *testing.T) {
		re := GlobalRegexp(regexp.MustCompile(`(\d)`))
		for _, replacement := range []string{"xx$1$10", "$$"} {
			s1 := newChecked(t, "1 2 3 4 a b c")
			s2 := newChecked(t, "1 2 3 4 a b c")
			_, err := s1.ReplaceAll(re, replacement)
			require.NoError(t, err)
			_, err = s2.Replace(re, replacement)
			require.NoError(t, err)
			assert.Equal(t, s2.String(), s1.String())
		}

		words := GlobalRegexp(regexp.MustCompile(`(\w)(\w+)`))
		s1 := newChecked(t, "hey this is magic")
		s2 := newChecked(t, "hey this is magic")
		_, err := s1.ReplaceAllFunc(words, capitalize)
		require.NoError(t, err)
		_, err = s2.ReplaceFunc(words, capitalize)
		require.NoError(t, err)
		assert.Equal(t, s2.String(), s1.String())
	})

	t.Run("rejects non-global regexp", func(t *testing.T) {
		s := New("123", Options{})
		_, err := s.ReplaceAll(Regexp(regexp.MustCompile(`.`)), "")
		assert.ErrorIs(t, err, ErrInvalidArgument)

		_, err = s.ReplaceAllFunc(Regexp(regexp.MustCompile(`.`)), capitalize)
		assert.ErrorIs(t, err, ErrInvalidArgument)
		assert.Equal(t, "123", s.String())
	})

	t.Run("stops at a conflicting edit", func(t *testing.T) {
		s := newChecked(t, "abcabc")
		s.overwrite(1, 5, "X")
		n, err := s.ReplaceAll(Literal("c"), "C")
		assert.ErrorIs(t, err, ErrConflictingEdit)
		assert.Equal(t, 0, n)
		assert.Equal(t, "aXc", s.String())
	})
}

func TestExpand(t *testing.T) {
	groups := []string{"a", "b"}
	cases := []struct{ replacement, want string }{
		{"plain", "plain"},
		{"$1-$2", "a-b"},
		{"$&", "ab"},
		{"$0", "ab"},
		{"$3", "$3"},
		{"$", "$"},
		{"$x", "$x"},
		{"$$1", "$1"},
		{"$99999999999999999999", "$99999999999999999999"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, expand(tc.replacement, "ab", groups), tc.replacement)
	}
}
