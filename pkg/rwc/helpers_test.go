package rwc

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

// buildGraph creates a graph from "from->to" pairs
func buildGraph(t testing.TB, edges ...[2]string) *Graph {
	t.Helper()
	g := NewGraph()
	for _, e := range edges {
		require.NoError(t, g.AddEdge(e[0], e[1], 1.0))
	}
	return g
}

// completeBipartite creates a bipartite graph with edges in both directions between the sides
func completeBipartite(t testing.TB, n1, n2 int) (*Graph, []string, []string) {
	t.Helper()
	g := NewGraph()
	side1 := make([]string, n1)
	side2 := make([]string, n2)
	for i := range side1 {
		side1[i] = fmt.Sprintf("a%d", i)
	}
	for j := range side2 {
		side2[j] = fmt.Sprintf("b%d", j)
	}
	for _, u := range side1 {
		for _, v := range side2 {
			require.NoError(t, g.AddEdge(u, v, 1.0))
			require.NoError(t, g.AddEdge(v, u, 1.0))
		}
	}
	return g, side1, side2
}

// twoCliques creates two dense groups joined by a single pair of edges
func twoCliques(t testing.TB, size int) (*Graph, []string, []string) {
	t.Helper()
	g := NewGraph()
	side1 := make([]string, size)
	side2 := make([]string, size)
	for i := 0; i < size; i++ {
		side1[i] = fmt.Sprintf("l%d", i)
		side2[i] = fmt.Sprintf("r%d", i)
	}
	for _, side := range [][]string{side1, side2} {
		for _, u := range side {
			for _, v := range side {
				if u != v {
					require.NoError(t, g.AddEdge(u, v, 1.0))
				}
			}
		}
	}
	require.NoError(t, g.AddEdge(side1[0], side2[0], 1.0))
	require.NoError(t, g.AddEdge(side2[0], side1[0], 1.0))
	return g, side1, side2
}

func indices(t testing.TB, g *Graph, ids ...string) []int {
	t.Helper()
	out := make([]int, len(ids))
	for i, id := range ids {
		idx, ok := g.Index(id)
		require.True(t, ok, "node %s missing", id)
		out[i] = idx
	}
	return out
}
