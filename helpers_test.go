package wizardstring

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// checked wraps a WizardString so that every mutation in a test is followed
// by a structural check of the chunk graph.
type checked struct {
	*WizardString
	t *testing.T
}

func newChecked(t *testing.T, source string, opts ...Options) *checked {
	t.Helper()
	var o Options
	if len(opts) > 0 {
		o = opts[0]
	}
	c := &checked{WizardString: New(source, o), t: t}
	c.verify()
	return c
}

func (c *checked) verify() {
	c.t.Helper()
	require.NoError(c.t, c.checkIntegrity())
}

func (c *checked) must(err error) *checked {
	c.t.Helper()
	require.NoError(c.t, err)
	c.verify()
	return c
}

func (c *checked) appendLeft(offset int, text string) *checked {
	c.t.Helper()
	return c.must(c.AppendLeft(offset, text))
}

func (c *checked) appendRight(offset int, text string) *checked {
	c.t.Helper()
	return c.must(c.AppendRight(offset, text))
}

func (c *checked) prependLeft(offset int, text string) *checked {
	c.t.Helper()
	return c.must(c.PrependLeft(offset, text))
}

func (c *checked) prependRight(offset int, text string) *checked {
	c.t.Helper()
	return c.must(c.PrependRight(offset, text))
}

func (c *checked) overwrite(start, end int, text string, opts ...OverwriteOptions) *checked {
	c.t.Helper()
	var o OverwriteOptions
	if len(opts) > 0 {
		o = opts[0]
	}
	return c.must(c.Overwrite(start, end, text, o))
}

func (c *checked) update(start, end int, text string, opts ...UpdateOptions) *checked {
	c.t.Helper()
	var o UpdateOptions
	if len(opts) > 0 {
		o = opts[0]
	}
	return c.must(c.Update(start, end, text, o))
}

func (c *checked) remove(start, end int) *checked {
	c.t.Helper()
	return c.must(c.Remove(start, end))
}

func (c *checked) move(start, end, to int) *checked {
	c.t.Helper()
	return c.must(c.Move(start, end, to))
}

func (c *checked) slice(start, end int) string {
	c.t.Helper()
	out, err := c.Slice(start, end)
	require.NoError(c.t, err)
	return out
}
