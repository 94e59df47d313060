package rwc

import (
	"context"
	"math/rand"
)

// BatchParams describes the sides and sample sizes of one simulation
type BatchParams struct {
	Side1           []int
	Side1SampleSize int
	Side2           []int
	Side2SampleSize int
}

// RunBatch runs one simulation: it samples starting nodes for both sides with
// replacement and runs one walk per sampled position. The returned tally has
// row sums equal to the two sample sizes.
func RunBatch(ctx context.Context, walker *Walker, params BatchParams, rng *rand.Rand) (Tally, error) {
	sample1 := SampleWithReplacement(rng, params.Side1, params.Side1SampleSize)
	sample2 := SampleWithReplacement(rng, params.Side2, params.Side2SampleSize)

	terminals1 := NewTerminals(sample1)
	terminals2 := NewTerminals(sample2)

	var tally Tally
	if err := walkSample(ctx, walker, rng, Side1, sample1, terminals1, terminals2, &tally); err != nil {
		return Tally{}, err
	}
	if err := walkSample(ctx, walker, rng, Side2, sample2, terminals2, terminals1, &tally); err != nil {
		return Tally{}, err
	}

	return tally, nil
}

func walkSample(ctx context.Context, walker *Walker, rng *rand.Rand, side Side, sample []int, own, other Terminals, tally *Tally) error {
	for _, start := range sample {
		if err := ctx.Err(); err != nil {
			return err
		}

		result, err := walker.Walk(ctx, rng, start, own.Without(start), other)
		if err != nil {
			return err
		}

		if result.State == LandedOwnSide {
			tally.Record(side, side)
		} else {
			tally.Record(side, side.Other())
		}
	}
	return nil
}
