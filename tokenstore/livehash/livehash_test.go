package livehash

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetAddContains(t *testing.T) {
	s := New()
	require.False(t, s.Contains(5))

	s.Add(5)
	s.Add(-5)
	s.Add(0)

	require.True(t, s.Contains(5))
	require.True(t, s.Contains(-5))
	require.True(t, s.Contains(0))
	require.False(t, s.Contains(6))
	require.Equal(t, 3, s.Len())
}

func TestSetAddIsIdempotent(t *testing.T) {
	s := New()
	s.Add(42)
	s.Add(42)
	require.Equal(t, 1, s.Len())
}

func TestSetHandlesFullInt64Range(t *testing.T) {
	s := New()
	s.Add(int64(-1) << 63) // math.MinInt64
	s.Add((int64(1) << 63) - 1) // math.MaxInt64
	require.Equal(t, 2, s.Len())
	require.True(t, s.Contains(int64(-1)<<63))
	require.True(t, s.Contains((int64(1)<<63)-1))
}
