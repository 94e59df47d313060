package rwc

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSampleSize(t *testing.T) {
	tests := []struct {
		percent float64
		n       int
		want    int
	}{
		{1.0, 10, 10},
		{0.5, 10, 5},
		{0.3, 10, 3},
		{0.7, 10, 7},
		{0.25, 3, 0},
		{0.0, 10, 0},
		{0.99, 1, 0},
		{1.0, 0, 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, SampleSize(tt.percent, tt.n), "percent=%v n=%d", tt.percent, tt.n)
	}
}

func TestSampleWithReplacement(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	side := []int{3, 5, 9}

	sample := SampleWithReplacement(rng, side, 50)
	assert.Len(t, sample, 50)

	seen := make(map[int]int)
	for _, node := range sample {
		assert.Contains(t, side, node)
		seen[node]++
	}
	// 50 draws from 3 nodes must repeat
	assert.Less(t, len(seen), 50)

	assert.Empty(t, SampleWithReplacement(rng, side, 0))
	assert.Empty(t, SampleWithReplacement(rng, nil, 4))
}

func TestSampleWithReplacementDeterministic(t *testing.T) {
	side := []int{0, 1, 2, 3, 4, 5}
	a := SampleWithReplacement(rand.New(rand.NewSource(11)), side, 20)
	b := SampleWithReplacement(rand.New(rand.NewSource(11)), side, 20)
	assert.Equal(t, a, b)
}

func TestTerminalsExclusionByPosition(t *testing.T) {
	terms := NewTerminals([]int{1, 1, 2})
	assert.Equal(t, 3, terms.Len())
	assert.True(t, terms.Contains(1))
	assert.False(t, terms.Contains(0))
	assert.False(t, terms.Contains(7))

	// one occurrence of 1 remains after excluding the start position
	without := terms.Without(1)
	assert.True(t, without.Contains(1))
	assert.Equal(t, 2, without.Len())

	without = terms.Without(2)
	assert.False(t, without.Contains(2))
	assert.True(t, without.Contains(1))

	// the receiver is unchanged
	assert.True(t, terms.Contains(2))
}

func TestTerminalsSizedBySample(t *testing.T) {
	terms := NewTerminals([]int{900_000, 900_000, 12})
	assert.Len(t, terms.counts, 2)
	assert.True(t, terms.Contains(900_000))
	assert.False(t, terms.Contains(13))

	empty := NewTerminals(nil)
	assert.Equal(t, 0, empty.Len())
	assert.False(t, empty.Without(3).Contains(3))
}
