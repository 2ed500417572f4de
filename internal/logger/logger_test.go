package logger

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	l := New("test")
	require.NotNil(t, l)
}

func TestNop(t *testing.T) {
	l := Nop()
	require.NotNil(t, l)
	// Must not panic and must produce nothing.
	l.Info().Msg("discarded")
	assert.Equal(t, zerolog.Disabled, l.GetLevel())
}

func TestField(t *testing.T) {
	parent := Nop()
	child := parent.Field("server", "example.org")
	require.NotNil(t, child)
	assert.NotSame(t, parent, child)
}
