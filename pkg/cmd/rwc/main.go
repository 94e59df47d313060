// Command rwc estimates the Random Walk Controversy score of a partitioned graph.
//
// Usage:
//
//	rwc edgelist community1_nodelist community2_nodelist percent n [--verbose] [--log]
//	rwc serve [--addr :8080]
package main

import (
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
