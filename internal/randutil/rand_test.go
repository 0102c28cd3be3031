package randutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIsDeterministic(t *testing.T) {
	a, b := New(42), New(42)
	for range 16 {
		assert.Equal(t, a.Uint64(), b.Uint64())
	}
	assert.NotEqual(t, New(1).Uint64(), New(2).Uint64())
}

func TestSeed(t *testing.T) {
	s, err := Seed(99)
	require.NoError(t, err)
	assert.Equal(t, int64(99), s)

	s, err = Seed(0)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, s, int64(0))
}
