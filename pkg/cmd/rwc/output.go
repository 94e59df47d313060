package main

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/gilchrisn/random-walk-controversy/pkg/rwc"
)

const (
	frequencyHeader   = "Frequency - Number of times the random walker started in a community and ended up in the same / another"
	probabilityHeader = "Probability - Conditional probabilities that the random walker starts in community A and ends up in community B"
)

// printReport writes the human readable report of a run
func printReport(out io.Writer, graph *rwc.Graph, side1, side2 []string, result *rwc.Result) {
	fmt.Fprintf(out, "Nodes: %d\n", graph.NumNodes)
	fmt.Fprintf(out, "Community 1 nodes: %d\n", len(side1))
	fmt.Fprintf(out, "Community 2 nodes: %d\n", len(side2))
	fmt.Fprintf(out, "RWC score: %s\n", formatFloat(result.Score))

	fmt.Fprintln(out, frequencyHeader)
	for _, from := range []rwc.Side{rwc.Side1, rwc.Side2} {
		for _, to := range []rwc.Side{rwc.Side1, rwc.Side2} {
			fmt.Fprintf(out, "\t%s to %s: %d\n", from, to, result.Tally.Count(from, to))
		}
	}

	p := result.Probabilities
	fmt.Fprintln(out, probabilityHeader)
	fmt.Fprintf(out, "\tcommunity1 to community1: %s\n", formatFloat(p.Community1.Community1))
	fmt.Fprintf(out, "\tcommunity1 to community2: %s\n", formatFloat(p.Community1.Community2))
	fmt.Fprintf(out, "\tcommunity2 to community1: %s\n", formatFloat(p.Community2.Community1))
	fmt.Fprintf(out, "\tcommunity2 to community2: %s\n", formatFloat(p.Community2.Community2))
}

// formatFloat prints the shortest representation that round-trips,
// always keeping a fractional part ("1.0", "-0.25", "1e-05").
func formatFloat(f float64) string {
	if f != 0 && math.Abs(f) < 1e-4 {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".NI") {
		s += ".0"
	}
	return s
}
