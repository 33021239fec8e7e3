package bitmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isMissingInt(v int) bool { return v == -1 }

func TestBuild_BasicBitmap(t *testing.T) {
	values := []int{1, -1, 3, -1, 5}
	bm, nonMissing := Build(values, isMissingInt)

	require.Len(t, bm, 1)
	assert.Equal(t, []int{1, 3, 5}, nonMissing)
	assert.True(t, Get(bm, 0))
	assert.False(t, Get(bm, 1))
	assert.True(t, Get(bm, 2))
	assert.False(t, Get(bm, 3))
	assert.True(t, Get(bm, 4))
	assert.Equal(t, 3, Popcount(bm))
}

func TestSize(t *testing.T) {
	assert.Equal(t, 0, Size(0))
	assert.Equal(t, 1, Size(1))
	assert.Equal(t, 1, Size(8))
	assert.Equal(t, 2, Size(9))
}

func TestInterleave_RoundTrip(t *testing.T) {
	values := []int{1, -1, 3, -1, 5}
	bm, nonMissing := Build(values, isMissingInt)

	out := Interleave(bm, len(values), nonMissing, func() int { return -1 })
	assert.Equal(t, values, out)
}

func TestBuild_AllMissing(t *testing.T) {
	values := []int{-1, -1, -1}
	bm, nonMissing := Build(values, isMissingInt)
	assert.Empty(t, nonMissing)
	assert.Equal(t, 0, Popcount(bm))
}
