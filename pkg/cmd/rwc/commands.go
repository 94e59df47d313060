package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/gilchrisn/random-walk-controversy/pkg/parser"
	"github.com/gilchrisn/random-walk-controversy/pkg/rwc"
)

type rootFlags struct {
	verbose    bool
	logBatches bool
	jsonOutput bool
	configFile string
	logLevel   string
	workers    int
	seed       int64
	maxSteps   int
	timeout    time.Duration
}

func newRootCommand() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "rwc edgelist community1_nodelist community2_nodelist percent n",
		Short: "Estimate the Random Walk Controversy score of a partitioned graph",
		Long: `rwc runs n Monte-Carlo simulations of random walks over a directed graph
split into two communities and reports the Random Walk Controversy score.

The edge list holds one "node1,node2,weight" edge per line; each node list
holds one node identifier per line. percent (0.0 - 1.0) is the share of each
community used as starting points in every simulation.`,
		Args:          cobra.ExactArgs(5),
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompute(cmd, args, flags)
		},
	}

	f := cmd.Flags()
	f.BoolVarP(&flags.verbose, "verbose", "v", false, "print the full report (frequencies and probabilities)")
	f.BoolVarP(&flags.logBatches, "log", "l", false, "log every completed simulation")
	f.BoolVar(&flags.jsonOutput, "json", false, "print the report as JSON")
	f.StringVar(&flags.configFile, "config", "", "path to a configuration file (yaml, json, toml)")
	f.StringVar(&flags.logLevel, "log-level", "", "log level (debug, info, warn, error, disabled)")
	f.IntVar(&flags.workers, "workers", 0, "maximum number of parallel simulations (default: number of CPUs)")
	f.Int64Var(&flags.seed, "seed", 0, "random seed for reproducible runs")
	f.IntVar(&flags.maxSteps, "max-steps", 0, "maximum steps of a single walk before it is reported as non-convergent")
	f.DurationVar(&flags.timeout, "timeout", 0, "abort the computation after this duration")

	cmd.AddCommand(newServeCommand())
	return cmd
}

func runCompute(cmd *cobra.Command, args []string, flags *rootFlags) error {
	percent, err := strconv.ParseFloat(args[3], 64)
	if err != nil {
		return fmt.Errorf("invalid percent %q: %w", args[3], err)
	}
	n, err := strconv.Atoi(args[4])
	if err != nil {
		return fmt.Errorf("invalid number of simulations %q: %w", args[4], err)
	}

	// plain runs print only the score; --log needs info level for the completion lines
	defaultLevel := "warn"
	if flags.logBatches {
		defaultLevel = "info"
	}
	config, err := loadConfig(flags.configFile, flags.logLevel, defaultLevel)
	if err != nil {
		return err
	}
	config.Set("algorithm.percent", percent)
	config.Set("algorithm.simulations", n)
	if cmd.Flags().Changed("workers") {
		config.Set("performance.num_workers", flags.workers)
	}
	if cmd.Flags().Changed("seed") {
		config.Set("algorithm.random_seed", flags.seed)
	}
	if cmd.Flags().Changed("max-steps") {
		config.Set("algorithm.max_steps", flags.maxSteps)
	}
	if cmd.Flags().Changed("timeout") {
		config.Set("algorithm.timeout", flags.timeout)
	}
	if flags.logBatches {
		config.Set("logging.enable_progress", true)
	}
	if err := config.Validate(); err != nil {
		return err
	}

	if err := parser.ValidateInputFiles(args[0], args[1], args[2]); err != nil {
		return err
	}

	graph, err := parser.LoadEdgeList(args[0])
	if err != nil {
		return err
	}
	side1, err := parser.LoadNodeList(args[1])
	if err != nil {
		return err
	}
	side2, err := parser.LoadNodeList(args[2])
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := append(config.Options(), rwc.WithLogger(config.CreateLoggerTo(cmd.ErrOrStderr())))
	result, err := rwc.Compute(ctx, graph, side1, side2, config.Percent(), config.Simulations(), opts...)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch {
	case flags.jsonOutput:
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(result.Report())
	case flags.verbose:
		printReport(out, graph, side1, side2, result)
	default:
		fmt.Fprintf(out, "RWC: %s\n", formatFloat(result.Score))
	}
	return nil
}

// loadConfig creates the run configuration, reading configFile when given.
// defaultLevel applies when neither a flag, a file nor RWC_LOGGING_LEVEL sets the log level.
func loadConfig(configFile, logLevel, defaultLevel string) (*rwc.Config, error) {
	config := rwc.NewConfig()
	if configFile != "" {
		if err := config.LoadFromFile(configFile); err != nil {
			return nil, err
		}
	}
	switch {
	case logLevel != "":
		config.Set("logging.level", logLevel)
	case configFile == "" && os.Getenv("RWC_LOGGING_LEVEL") == "":
		config.Set("logging.level", defaultLevel)
	}
	return config, nil
}
