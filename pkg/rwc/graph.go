package rwc

import (
	"fmt"
	"math"
)

// Graph is a directed graph with dense integer node indices.
// Node identifiers are kept as strings at the boundary; the walk only
// ever sees indices.
type Graph struct {
	NumNodes  int
	NodeIDs   []string
	Adjacency [][]int     // adjacency[i] = out-neighbors of node i
	Weights   [][]float64 // weights[i][j] = weight of edge i -> adjacency[i][j]
	NumEdges  int

	index map[string]int
	edges map[[2]int]int // (from, to) -> position in adjacency[from]
}

// NewGraph creates an empty directed graph
func NewGraph() *Graph {
	return &Graph{
		NodeIDs:   make([]string, 0),
		Adjacency: make([][]int, 0),
		Weights:   make([][]float64, 0),
		index:     make(map[string]int),
		edges:     make(map[[2]int]int),
	}
}

// AddNode adds a node if it does not exist yet and returns its index
func (g *Graph) AddNode(id string) int {
	if idx, exists := g.index[id]; exists {
		return idx
	}

	idx := g.NumNodes
	g.index[id] = idx
	g.NodeIDs = append(g.NodeIDs, id)
	g.Adjacency = append(g.Adjacency, nil)
	g.Weights = append(g.Weights, nil)
	g.NumNodes++
	return idx
}

// AddEdge adds a directed edge from -> to, creating missing nodes.
// A repeated edge keeps a single adjacency entry and takes the latest weight.
func (g *Graph) AddEdge(from, to string, weight float64) error {
	if math.IsNaN(weight) || math.IsInf(weight, 0) {
		return fmt.Errorf("edge %s->%s has non-finite weight %v", from, to, weight)
	}

	u := g.AddNode(from)
	v := g.AddNode(to)

	key := [2]int{u, v}
	if pos, exists := g.edges[key]; exists {
		g.Weights[u][pos] = weight
		return nil
	}

	g.edges[key] = len(g.Adjacency[u])
	g.Adjacency[u] = append(g.Adjacency[u], v)
	g.Weights[u] = append(g.Weights[u], weight)
	g.NumEdges++
	return nil
}

// Index returns the index of a node identifier
func (g *Graph) Index(id string) (int, bool) {
	idx, ok := g.index[id]
	return idx, ok
}

// ID returns the identifier of the node at index i
func (g *Graph) ID(i int) string {
	if i < 0 || i >= g.NumNodes {
		return ""
	}
	return g.NodeIDs[i]
}

// Neighbors returns the out-neighbors of a node. The slice is shared and must not be modified.
func (g *Graph) Neighbors(node int) []int {
	if node < 0 || node >= g.NumNodes {
		return nil
	}
	return g.Adjacency[node]
}

// OutDegree returns the number of distinct out-neighbors of a node
func (g *Graph) OutDegree(node int) int {
	return len(g.Neighbors(node))
}

// Validate checks graph consistency
func (g *Graph) Validate() error {
	if g.NumNodes <= 0 {
		return fmt.Errorf("graph has no nodes")
	}

	if len(g.NodeIDs) != g.NumNodes || len(g.Adjacency) != g.NumNodes || len(g.Weights) != g.NumNodes {
		return fmt.Errorf("graph arrays inconsistent with %d nodes", g.NumNodes)
	}

	for i := 0; i < g.NumNodes; i++ {
		if len(g.Adjacency[i]) != len(g.Weights[i]) {
			return fmt.Errorf("adjacency and weights arrays inconsistent for node %s", g.NodeIDs[i])
		}

		for _, neighbor := range g.Adjacency[i] {
			if neighbor < 0 || neighbor >= g.NumNodes {
				return fmt.Errorf("invalid neighbor %d for node %s", neighbor, g.NodeIDs[i])
			}
		}
	}

	return nil
}
