package rwc

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Result is the outcome of a complete RWC estimation
type Result struct {
	RunID           string        `json:"run_id"`
	Score           float64       `json:"rwc_score"`
	Tally           Tally         `json:"frequencies"`
	Probabilities   Probabilities `json:"probabilities"`
	Simulations     int           `json:"simulations"`
	Side1SampleSize int           `json:"side1_sample_size"`
	Side2SampleSize int           `json:"side2_sample_size"`
	RuntimeMS       int64         `json:"runtime_ms"`
	Diagnostics     Diagnostics   `json:"diagnostics"`
}

// Report returns the summary in its external shape
func (r *Result) Report() Report {
	return Report{
		RWCScore:      r.Score,
		Frequencies:   r.Tally,
		Probabilities: r.Probabilities,
	}
}

// ProgressCallback is invoked once per completed simulation with the running count.
// Calls are serialized and follow completion order.
type ProgressCallback func(completed int)

type options struct {
	maxWorkers      int
	seed            int64
	maxSteps        int
	timeout         time.Duration
	onBatchComplete ProgressCallback
	logProgress     bool
	logger          zerolog.Logger
}

// Option configures Compute
type Option func(*options)

// WithMaxWorkers bounds the number of simulations running at once; n <= 0 uses runtime.NumCPU()
func WithMaxWorkers(n int) Option {
	return func(o *options) { o.maxWorkers = n }
}

// WithSeed fixes the run seed. Batch seeds are derived from it, so a given seed
// produces the same tally for any worker count.
func WithSeed(seed int64) Option {
	return func(o *options) { o.seed = seed }
}

// WithMaxSteps bounds every walk; exceeding it fails the run with ErrNonConvergentWalk
func WithMaxSteps(n int) Option {
	return func(o *options) { o.maxSteps = n }
}

// WithTimeout aborts the run after d; zero means no timeout
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// WithOnBatchComplete registers a progress callback
func WithOnBatchComplete(fn ProgressCallback) Option {
	return func(o *options) { o.onBatchComplete = fn }
}

// WithProgressLogging logs every completed simulation at info level instead of debug
func WithProgressLogging(enabled bool) Option {
	return func(o *options) { o.logProgress = enabled }
}

// WithLogger sets the logger used for run events
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// Run computes RWC with the parameters held by config
func Run(ctx context.Context, graph *Graph, side1, side2 []string, config *Config) (*Result, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	opts := append(config.Options(), WithLogger(config.CreateLogger()))
	return Compute(ctx, graph, side1, side2, config.Percent(), config.Simulations(), opts...)
}

// Compute estimates the Random Walk Controversy score of graph for the partition
// (side1, side2). Each of the n simulations samples floor(percent*|side|) starting
// nodes per side and walks from every one of them. Simulations run in parallel;
// the first failure cancels the remaining ones and is returned wrapped in
// ErrWorkerFailure.
func Compute(ctx context.Context, graph *Graph, side1, side2 []string, percent float64, n int, opts ...Option) (*Result, error) {
	startTime := time.Now()

	o := options{
		seed:   time.Now().UnixNano(),
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.maxWorkers <= 0 {
		o.maxWorkers = runtime.NumCPU()
	}

	if err := validateParameters(graph, side1, side2, percent, n); err != nil {
		return nil, err
	}

	idx1, idx2, err := resolvePartition(graph, side1, side2)
	if err != nil {
		return nil, err
	}

	params := BatchParams{
		Side1:           idx1,
		Side1SampleSize: SampleSize(percent, len(idx1)),
		Side2:           idx2,
		Side2SampleSize: SampleSize(percent, len(idx2)),
	}

	runID := uuid.New().String()
	logger := o.logger.With().Str("run_id", runID).Logger()

	logger.Info().
		Int("nodes", graph.NumNodes).
		Int("edges", graph.NumEdges).
		Int("side1_nodes", len(side1)).
		Int("side2_nodes", len(side2)).
		Int("side1_sample", params.Side1SampleSize).
		Int("side2_sample", params.Side2SampleSize).
		Int("simulations", n).
		Int("workers", o.maxWorkers).
		Int64("seed", o.seed).
		Msg("Starting RWC estimation")

	diagnostics := Diagnose(graph, idx1, idx2)
	if !diagnostics.Empty() {
		logger.Warn().
			Int("dangling", len(diagnostics.DanglingNodes)).
			Int("side1_isolated", len(diagnostics.Side1Isolated)).
			Int("side2_isolated", len(diagnostics.Side2Isolated)).
			Msg("Some side nodes may produce non-convergent walks")
	}

	if o.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}

	total, err := runSimulations(ctx, NewWalker(graph, o.maxSteps), params, n, o, logger)
	if err != nil {
		logger.Error().Err(err).Msg("RWC estimation failed")
		return nil, err
	}

	score, probabilities := Score(total)

	result := &Result{
		RunID:           runID,
		Score:           score,
		Tally:           total,
		Probabilities:   probabilities,
		Simulations:     n,
		Side1SampleSize: params.Side1SampleSize,
		Side2SampleSize: params.Side2SampleSize,
		RuntimeMS:       time.Since(startTime).Milliseconds(),
		Diagnostics:     diagnostics,
	}

	logger.Info().
		Float64("rwc_score", result.Score).
		Int("walks", total.Total()).
		Int64("runtime_ms", result.RuntimeMS).
		Msg("RWC estimation completed")

	return result, nil
}

// runSimulations fans n batches out to at most o.maxWorkers goroutines and
// returns the sum of their tallies. Memory use does not depend on n.
func runSimulations(ctx context.Context, walker *Walker, params BatchParams, n int, o options, logger zerolog.Logger) (Tally, error) {
	// Seeds are drawn in dispatch order so each batch's stream depends only on its index.
	seeder := rand.New(rand.NewSource(o.seed))

	var (
		mu        sync.Mutex
		total     Tally
		completed int
	)
	done := func(tally Tally) {
		mu.Lock()
		defer mu.Unlock()
		total = Combine(total, tally)
		completed++

		event := logger.Debug()
		if o.logProgress {
			event = logger.Info()
		}
		event.Int("simulation", completed).Msgf("Simulation #%d completed", completed)

		if o.onBatchComplete != nil {
			o.onBatchComplete(completed)
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.maxWorkers)

	for i := 0; i < n; i++ {
		if gctx.Err() != nil {
			break
		}

		batch := i
		seed := seeder.Int63()
		g.Go(func() error {
			rng := rand.New(rand.NewSource(seed))
			tally, err := RunBatch(gctx, walker, params, rng)
			if err != nil {
				return &BatchError{Batch: batch, Err: err}
			}
			done(tally)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Tally{}, fmt.Errorf("%w: %w", ErrWorkerFailure, err)
	}
	if err := ctx.Err(); err != nil {
		return Tally{}, fmt.Errorf("%w: %w", ErrWorkerFailure, err)
	}

	return total, nil
}

func validateParameters(graph *Graph, side1, side2 []string, percent float64, n int) error {
	if graph == nil || graph.NumNodes == 0 {
		return fmt.Errorf("%w: graph is empty", ErrInvalidParameter)
	}
	if err := graph.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidParameter, err)
	}
	if math.IsNaN(percent) || percent < 0 || percent > 1 {
		return fmt.Errorf("%w: percent must be in [0,1], got %v", ErrInvalidParameter, percent)
	}
	if n <= 0 {
		return fmt.Errorf("%w: number of simulations must be positive, got %d", ErrInvalidParameter, n)
	}
	if len(side1) == 0 {
		return fmt.Errorf("%w: side1 is empty", ErrInvalidParameter)
	}
	if len(side2) == 0 {
		return fmt.Errorf("%w: side2 is empty", ErrInvalidParameter)
	}
	return nil
}

// resolvePartition maps both sides to node indices, rejecting unknown and shared nodes
func resolvePartition(graph *Graph, side1, side2 []string) ([]int, []int, error) {
	idx1, err := resolveSide(graph, "side1", side1)
	if err != nil {
		return nil, nil, err
	}
	idx2, err := resolveSide(graph, "side2", side2)
	if err != nil {
		return nil, nil, err
	}

	inSide1 := make(map[int]bool, len(idx1))
	for _, node := range idx1 {
		inSide1[node] = true
	}
	for _, node := range idx2 {
		if inSide1[node] {
			return nil, nil, fmt.Errorf("%w: %q", ErrOverlappingPartitions, graph.ID(node))
		}
	}

	return idx1, idx2, nil
}

func resolveSide(graph *Graph, name string, side []string) ([]int, error) {
	indices := make([]int, len(side))
	for i, id := range side {
		idx, ok := graph.Index(id)
		if !ok {
			return nil, fmt.Errorf("%w: %q in %s", ErrUnknownNode, id, name)
		}
		indices[i] = idx
	}
	return indices, nil
}
