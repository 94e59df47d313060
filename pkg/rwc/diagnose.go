package rwc

import (
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/traverse"
)

// Diagnostics lists side nodes that put walk convergence at risk.
// Nodes listed here do not fail a run by themselves: a walk from them may
// still land on its own side, or may never be sampled.
type Diagnostics struct {
	DanglingNodes []string `json:"dangling_nodes,omitempty"` // side nodes without outbound edges
	Side1Isolated []string `json:"side1_isolated,omitempty"` // side1 nodes with no path to side2
	Side2Isolated []string `json:"side2_isolated,omitempty"` // side2 nodes with no path to side1
}

// Empty reports whether no hazard was found
func (d Diagnostics) Empty() bool {
	return len(d.DanglingNodes) == 0 && len(d.Side1Isolated) == 0 && len(d.Side2Isolated) == 0
}

// Diagnose inspects the graph around the two sides. Reachability is found with
// one multi-source breadth-first search per side over the reversed graph.
func Diagnose(g *Graph, side1, side2 []int) Diagnostics {
	var d Diagnostics

	seen := make(map[int]bool)
	for _, side := range [][]int{side1, side2} {
		for _, node := range side {
			if seen[node] {
				continue
			}
			seen[node] = true
			if g.OutDegree(node) == 0 {
				d.DanglingNodes = append(d.DanglingNodes, g.ID(node))
			}
		}
	}

	reversed := reversedGonumGraph(g)
	d.Side1Isolated = unreachable(g, reversed, side1, side2)
	d.Side2Isolated = unreachable(g, reversed, side2, side1)

	return d
}

// unreachable returns the nodes of from that have no path to any node of to
func unreachable(g *Graph, reversed *simple.DirectedGraph, from, to []int) []string {
	var bf traverse.BreadthFirst
	for _, target := range to {
		node := simple.Node(int64(target))
		if bf.Visited(node) {
			continue
		}
		bf.Walk(reversed, node, nil)
	}

	var isolated []string
	reported := make(map[int]bool)
	for _, node := range from {
		if reported[node] || bf.Visited(simple.Node(int64(node))) {
			continue
		}
		reported[node] = true
		isolated = append(isolated, g.ID(node))
	}
	return isolated
}

// reversedGonumGraph converts g into a gonum directed graph with every edge flipped.
// Self-loops carry no reachability information and are skipped.
func reversedGonumGraph(g *Graph) *simple.DirectedGraph {
	dg := simple.NewDirectedGraph()
	for i := 0; i < g.NumNodes; i++ {
		dg.AddNode(simple.Node(int64(i)))
	}

	for from, neighbors := range g.Adjacency {
		for _, to := range neighbors {
			if from == to {
				continue
			}
			dg.SetEdge(simple.Edge{F: simple.Node(int64(to)), T: simple.Node(int64(from))})
		}
	}
	return dg
}
