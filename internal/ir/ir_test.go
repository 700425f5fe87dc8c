package ir_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"erbindent/internal/ir"
	"erbindent/internal/source"
	"erbindent/internal/sourcemap"
)

func TestIRTranslateDelegatesToMap(t *testing.T) {
	src := source.NewBuffer("t.erb", "<div>")
	m := sourcemap.New()
	m.Add(source.NewRange(0, 3), source.NewRange(0, 3))

	bundle := ir.New(src, "tag", m)
	assert.Equal(t, src, bundle.Source)
	assert.Equal(t, "tag", bundle.Text)

	got, ok := bundle.Translate(source.NewRange(0, 3))
	require.True(t, ok)
	assert.Equal(t, source.NewRange(0, 3), got)

	_, ok = bundle.Translate(source.NewRange(10, 20))
	assert.False(t, ok)
}
