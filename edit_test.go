package wizardstring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverwrite(t *testing.T) {
	t.Run("replaces characters", func(t *testing.T) {
		s := newChecked(t, "abcdefghijkl")
		s.overwrite(5, 8, "FGH")
		assert.Equal(t, "abcdeFGHijkl", s.String())
	})

	t.Run("rejects overlapping replacements", func(t *testing.T) {
		s := newChecked(t, "abcdefghijkl")
		s.overwrite(7, 11, "xx")

		err := s.Overwrite(8, 12, "yy", OverwriteOptions{})
		require.ErrorIs(t, err, ErrConflictingEdit)
		assert.Contains(t, err.Error(), "cannot split a chunk that has already been edited")
		s.verify()
		assert.Equal(t, "abcdefgxxl", s.String())

		s.overwrite(6, 12, "yes")
		assert.Equal(t, "abcdefyes", s.String())
	})

	t.Run("allows contiguous replacements", func(t *testing.T) {
		s := newChecked(t, "abcdefghijkl")
		s.overwrite(3, 6, "DEF")
		assert.Equal(t, "abcDEFghijkl", s.String())
		s.overwrite(6, 9, "GHI")
		assert.Equal(t, "abcDEFGHIjkl", s.String())
		s.overwrite(0, 3, "ABC")
		assert.Equal(t, "ABCDEFGHIjkl", s.String())
		s.overwrite(9, 12, "JKL")
		assert.Equal(t, "ABCDEFGHIJKL", s.String())
	})

	t.Run("keeps inserts before the start", func(t *testing.T) {
		s := newChecked(t, "abcdefghijkl")
		s.remove(0, 6).appendLeft(6, "DEF").overwrite(6, 9, "GHI")
		assert.Equal(t, "DEFGHIjkl", s.String())
	})

	t.Run("replaces zero-length inserts inside", func(t *testing.T) {
		s := newChecked(t, "abcdefghijkl")
		s.appendLeft(6, "XXX").overwrite(3, 9, "DEFGHI")
		assert.Equal(t, "abcDEFGHIjkl", s.String())
	})

	t.Run("replaces earlier overwrites inside", func(t *testing.T) {
		s := newChecked(t, "abcdefghijkl")
		s.overwrite(3, 4, "XXX").overwrite(3, 5, "DE")
		assert.Equal(t, "abcDEfghijkl", s.String())
		s.overwrite(7, 8, "YYY").overwrite(6, 8, "GH")
		assert.Equal(t, "abcDEfGHijkl", s.String())
	})

	t.Run("rejects zero-length ranges", func(t *testing.T) {
		s := newChecked(t, "x")
		err := s.Overwrite(0, 0, "anything", OverwriteOptions{})
		require.ErrorIs(t, err, ErrInvalidArgument)
		assert.Contains(t, err.Error(), "cannot overwrite a zero-length range – use AppendLeft or PrependRight instead")
	})

	t.Run("rejects inverted and out of range offsets", func(t *testing.T) {
		s := newChecked(t, "abcdefghijkl")
		assert.ErrorIs(t, s.Overwrite(6, 3, "x", OverwriteOptions{}), ErrInvalidArgument)
		assert.ErrorIs(t, s.Overwrite(3, 13, "x", OverwriteOptions{}), ErrOutOfBounds)
		assert.ErrorIs(t, New("", Options{}).Overwrite(0, 1, "x", OverwriteOptions{}), ErrOutOfBounds)
		assert.Equal(t, "abcdefghijkl", s.String())
	})

	t.Run("counts negative offsets from the end", func(t *testing.T) {
		s := newChecked(t, "abcdefghijkl")
		s.overwrite(-3, -1, "XY")
		assert.Equal(t, "abcdefghiXYl", s.String())
	})

	t.Run("discards interior inserts", func(t *testing.T) {
		s := newChecked(t, "abcdefghijkl")
		s.appendLeft(1, "&").prependRight(1, "^").appendLeft(3, "!").prependRight(3, "?")
		s.overwrite(1, 3, "...")
		assert.Equal(t, "a&...?defghijkl", s.String())
	})

	t.Run("keeps interior inserts with ContentOnly", func(t *testing.T) {
		s := newChecked(t, "abcdefghijkl")
		s.appendLeft(1, "&").prependRight(1, "^").appendLeft(3, "!").prependRight(3, "?")
		s.overwrite(1, 3, "...", OverwriteOptions{ContentOnly: true})
		assert.Equal(t, "a&^...!?defghijkl", s.String())
	})

	t.Run("slot matrix", func(t *testing.T) {
		fill := func(s *checked) {
			for _, off := range []int{1, 3} {
				n := string(rune('0' + off))
				s.must(s.PrependLeft(off, "<"+n))
				s.must(s.AppendLeft(off, "["+n))
				s.must(s.PrependRight(off, "("+n))
				s.must(s.AppendRight(off, "{"+n))
			}
		}

		s := newChecked(t, "abcdefghijkl")
		fill(s)
		assert.Equal(t, "a<1[1(1{1bc<3[3(3{3defghijkl", s.String())
		s.overwrite(1, 3, "...")
		assert.Equal(t, "a<1[1...(3{3defghijkl", s.String())

		s = newChecked(t, "abcdefghijkl")
		fill(s)
		s.overwrite(1, 3, "...", OverwriteOptions{ContentOnly: true})
		assert.Equal(t, "a<1[1(1{1...<3[3(3{3defghijkl", s.String())
	})

	t.Run("rejects ranges split by a move", func(t *testing.T) {
		for _, tc := range []struct {
			name       string
			start, end int
			extra      func(s *checked)
		}{
			{name: "partial overlap", start: 5, end: 7},
			{name: "surrounding", start: 4, end: 11},
			{name: "surrounding with split", start: 4, end: 11, extra: func(s *checked) { s.appendLeft(5, "foo") }},
		} {
			t.Run(tc.name, func(t *testing.T) {
				s := newChecked(t, "abcdefghijkl")
				s.move(6, 9, 3)
				if tc.extra != nil {
					tc.extra(s)
				}
				before := s.String()
				err := s.Overwrite(tc.start, tc.end, "XX", OverwriteOptions{})
				require.ErrorIs(t, err, ErrConflictingEdit)
				assert.Contains(t, err.Error(), "cannot overwrite across a split point")
				s.verify()
				assert.Equal(t, before, s.String())
			})
		}
	})

	t.Run("allows later insertions at the end", func(t *testing.T) {
		s := newChecked(t, "abcdefg")
		s.appendLeft(4, "(").overwrite(2, 7, "").appendLeft(7, "h")
		assert.Equal(t, "abh", s.String())
	})

	t.Run("stores names once", func(t *testing.T) {
		s := newChecked(t, "foo(foo)")
		s.overwrite(0, 3, "bar", OverwriteOptions{StoreName: true})
		s.overwrite(4, 7, "bar", OverwriteOptions{StoreName: true})
		assert.Equal(t, []string{"foo"}, s.StoredNames())
		assert.Equal(t, "bar(bar)", s.String())
	})
}

func TestUpdate(t *testing.T) {
	t.Run("replaces characters", func(t *testing.T) {
		s := newChecked(t, "abcdefghijkl")
		s.update(5, 8, "FGH")
		assert.Equal(t, "abcdeFGHijkl", s.String())
	})

	t.Run("keeps interior inserts by default", func(t *testing.T) {
		s := newChecked(t, "abcdefghijkl")
		s.appendLeft(1, "&").prependRight(1, "^").appendLeft(3, "!").prependRight(3, "?")
		s.update(1, 3, "...")
		assert.Equal(t, "a&^...!?defghijkl", s.String())
	})

	t.Run("discards interior inserts with Overwrite", func(t *testing.T) {
		s := newChecked(t, "abcdefghijkl")
		s.appendLeft(1, "&").prependRight(1, "^").appendLeft(3, "!").prependRight(3, "?")
		s.update(1, 3, "...", UpdateOptions{Overwrite: true})
		assert.Equal(t, "a&...?defghijkl", s.String())
	})

	t.Run("replaces zero-length inserts inside with Overwrite", func(t *testing.T) {
		s := newChecked(t, "abcdefghijkl")
		s.appendLeft(6, "XXX").update(3, 9, "DEFGHI", UpdateOptions{Overwrite: true})
		assert.Equal(t, "abcDEFGHIjkl", s.String())
	})

	t.Run("rejects zero-length ranges", func(t *testing.T) {
		s := newChecked(t, "x")
		assert.ErrorIs(t, s.Update(0, 0, "anything", UpdateOptions{}), ErrInvalidArgument)
	})

	t.Run("allows later insertions at the end with Overwrite", func(t *testing.T) {
		s := newChecked(t, "abcdefg")
		s.appendLeft(4, "(").update(2, 7, "", UpdateOptions{Overwrite: true}).appendLeft(7, "h")
		assert.Equal(t, "abh", s.String())
	})
}

func TestRemove(t *testing.T) {
	t.Run("removes characters", func(t *testing.T) {
		s := newChecked(t, "abcdefghijkl")
		s.remove(1, 5)
		assert.Equal(t, "afghijkl", s.String())
		s.remove(9, 12)
		assert.Equal(t, "afghi", s.String())
	})

	t.Run("from the start and end", func(t *testing.T) {
		assert.Equal(t, "ghijkl", newChecked(t, "abcdefghijkl").remove(0, 6).String())
		assert.Equal(t, "abcdef", newChecked(t, "abcdefghijkl").remove(6, 12).String())
	})

	t.Run("ignores empty and inverted ranges", func(t *testing.T) {
		s := newChecked(t, "abcdefghijkl")
		s.remove(0, 0).remove(6, 6).remove(9, -3).remove(8, 2)
		assert.Equal(t, "abcdefghijkl", s.String())
	})

	t.Run("unions overlapping ranges", func(t *testing.T) {
		assert.Equal(t, "abcjkl", newChecked(t, "abcdefghijkl").remove(3, 7).remove(5, 9).String())
		assert.Equal(t, "abchijkl", newChecked(t, "abcdefghijkl").remove(3, 7).remove(4, 6).String())
		assert.Equal(t, "acde", newChecked(t, "abccde").remove(2, 3).remove(1, 3).String())
	})

	t.Run("removes overwritten ranges", func(t *testing.T) {
		s := newChecked(t, "abcdefghi")
		s.overwrite(3, 6, "DEF").remove(2, 7)
		assert.Equal(t, "bh", s.slice(1, 8))
		assert.Equal(t, "abhi", s.String())
	})

	t.Run("keeps inserts outside the range", func(t *testing.T) {
		s := newChecked(t, "ab.c;")
		s.prependRight(0, "(").prependRight(4, ")").remove(2, 4)
		assert.Equal(t, "(ab);", s.String())
	})

	t.Run("removes interior inserts", func(t *testing.T) {
		s := newChecked(t, "abc;")
		s.appendLeft(1, "[").prependRight(1, "(").appendLeft(2, ")").prependRight(2, "]")
		s.remove(1, 2)
		assert.Equal(t, "a[]c;", s.String())
	})

	t.Run("refuses to split an overwrite", func(t *testing.T) {
		s := newChecked(t, "abcdefghijkl")
		s.overwrite(5, 7, "XX")
		err := s.Remove(4, 6)
		require.ErrorIs(t, err, ErrConflictingEdit)
		assert.Contains(t, err.Error(), "cannot split a chunk that has already been edited")
	})

	t.Run("works across moved content", func(t *testing.T) {
		s := newChecked(t, "abcdefghijkl")
		s.move(6, 9, 3).remove(5, 7)
		assert.Equal(t, "abchidejkl", s.String())
	})

	t.Run("splits removed chunks", func(t *testing.T) {
		s := newChecked(t, "abcdefghijkl")
		s.remove(2, 8).appendLeft(5, "X")
		assert.Equal(t, "abXijkl", s.String())
	})
}

func TestReset(t *testing.T) {
	s := newChecked(t, "abcdefghijkl")
	s.remove(2, 8)
	require.Equal(t, "abijkl", s.String())

	s.must(s.Reset(4, 6))
	assert.Equal(t, "abefijkl", s.String())

	s.overwrite(0, 2, "AB")
	s.must(s.Reset(0, 12))
	assert.Equal(t, "abcdefghijkl", s.String())
	assert.False(t, s.HasChanged())

	s.overwrite(3, 9, "X")
	assert.ErrorIs(t, s.Reset(4, 6), ErrConflictingEdit)
}
