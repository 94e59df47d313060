package rwc

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunBatchSampleSizeConservation(t *testing.T) {
	// equal sides keep at least one sample per side for every percent
	g, side1, side2 := completeBipartite(t, 10, 10)
	walker := NewWalker(g, 10_000)

	for _, percent := range []float64{0.1, 0.3, 0.5, 0.75, 1.0} {
		params := BatchParams{
			Side1:           indices(t, g, side1...),
			Side1SampleSize: SampleSize(percent, len(side1)),
			Side2:           indices(t, g, side2...),
			Side2SampleSize: SampleSize(percent, len(side2)),
		}

		tally, err := RunBatch(context.Background(), walker, params, rand.New(rand.NewSource(5)))
		require.NoError(t, err, "percent=%v", percent)
		assert.Equal(t, params.Side1SampleSize, tally.RowSum(Side1), "percent=%v", percent)
		assert.Equal(t, params.Side2SampleSize, tally.RowSum(Side2), "percent=%v", percent)
	}
}

func TestRunBatchLoneSampleWithoutOppositeFails(t *testing.T) {
	g, side1, side2 := completeBipartite(t, 10, 7)
	params := BatchParams{
		Side1:           indices(t, g, side1...),
		Side1SampleSize: SampleSize(0.1, len(side1)),
		Side2:           indices(t, g, side2...),
		Side2SampleSize: SampleSize(0.1, len(side2)),
	}
	require.Equal(t, 1, params.Side1SampleSize)
	require.Equal(t, 0, params.Side2SampleSize)

	_, err := RunBatch(context.Background(), NewWalker(g, 10_000), params, rand.New(rand.NewSource(5)))
	assert.ErrorIs(t, err, ErrNonConvergentWalk)
}

func TestRunBatchConvergentPair(t *testing.T) {
	g := buildGraph(t, [2]string{"A", "C"}, [2]string{"C", "A"})
	params := BatchParams{
		Side1:           indices(t, g, "A"),
		Side1SampleSize: 1,
		Side2:           indices(t, g, "C"),
		Side2SampleSize: 1,
	}

	tally, err := RunBatch(context.Background(), NewWalker(g, 10), params, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	assert.Equal(t, Tally{Side1: FrequencyRow{Side1: 0, Side2: 1}, Side2: FrequencyRow{Side1: 1, Side2: 0}}, tally)
}

func TestRunBatchZeroSamples(t *testing.T) {
	g, side1, side2 := completeBipartite(t, 3, 3)
	params := BatchParams{
		Side1: indices(t, g, side1...),
		Side2: indices(t, g, side2...),
	}

	tally, err := RunBatch(context.Background(), NewWalker(g, 10), params, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	assert.Equal(t, Tally{}, tally)
}

func TestRunBatchDeterministicWithSeed(t *testing.T) {
	g, side1, side2 := twoCliques(t, 6)
	params := BatchParams{
		Side1:           indices(t, g, side1...),
		Side1SampleSize: 4,
		Side2:           indices(t, g, side2...),
		Side2SampleSize: 4,
	}
	walker := NewWalker(g, 100_000)

	first, err := RunBatch(context.Background(), walker, params, rand.New(rand.NewSource(99)))
	require.NoError(t, err)
	second, err := RunBatch(context.Background(), walker, params, rand.New(rand.NewSource(99)))
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRunBatchPropagatesWalkError(t *testing.T) {
	g := buildGraph(t, [2]string{"A", "B"}, [2]string{"B", "D"}, [2]string{"C", "D"})
	params := BatchParams{
		Side1:           indices(t, g, "A"),
		Side1SampleSize: 1,
		Side2:           indices(t, g, "C"),
		Side2SampleSize: 1,
	}

	_, err := RunBatch(context.Background(), NewWalker(g, 100), params, rand.New(rand.NewSource(1)))
	assert.ErrorIs(t, err, ErrNonConvergentWalk)
}

func BenchmarkRunBatch(b *testing.B) {
	g, side1, side2 := twoCliques(b, 50)
	params := BatchParams{
		Side1:           indices(b, g, side1...),
		Side1SampleSize: 25,
		Side2:           indices(b, g, side2...),
		Side2SampleSize: 25,
	}
	walker := NewWalker(g, DefaultMaxSteps)
	rng := rand.New(rand.NewSource(1))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := RunBatch(context.Background(), walker, params, rng); err != nil {
			b.Fatal(err)
		}
	}
}
