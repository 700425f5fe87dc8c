package source_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"erbindent/internal/source"
)

func TestRangeInvariants(t *testing.T) {
	r := source.NewRange(3, 7)
	assert.Equal(t, 4, r.Len())
	assert.False(t, r.Empty())
	assert.Equal(t, source.NewRange(8, 12), r.Shift(5))
	assert.True(t, r.Contains(source.NewRange(4, 6)))
	assert.False(t, r.Contains(source.NewRange(2, 6)))

	empty := source.NewRange(5, 5)
	assert.True(t, empty.Empty())
	assert.Equal(t, 0, empty.Len())
}

func TestNewRangePanicsOnInverted(t *testing.T) {
	assert.Panics(t, func() { source.NewRange(5, 2) })
}

func TestBufferPosition(t *testing.T) {
	buf := source.NewBuffer("x.erb", "abc\ndef\nghi")

	cases := []struct {
		offset int
		want   source.Position
	}{
		{0, source.Position{Line: 1, Column: 0}},
		{2, source.Position{Line: 1, Column: 2}},
		{4, source.Position{Line: 2, Column: 0}},
		{7, source.Position{Line: 2, Column: 3}},
		{8, source.Position{Line: 3, Column: 0}},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, buf.Position(c.offset))
	}
}

func TestBufferLineStripsTrailingNewline(t *testing.T) {
	buf := source.NewBuffer("x.erb", "first\r\nsecond\nthird")
	assert.Equal(t, "first", buf.Line(1))
	assert.Equal(t, "second", buf.Line(2))
	assert.Equal(t, "third", buf.Line(3))
	assert.Equal(t, "", buf.Line(4))
}

func TestBufferSlice(t *testing.T) {
	buf := source.NewBuffer("x.erb", "hello world")
	require.Equal(t, "hello", buf.Slice(source.NewRange(0, 5)))
	assert.Equal(t, "world", buf.Slice(source.NewRange(6, 11)))
}
