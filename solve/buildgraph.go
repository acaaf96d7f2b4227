package solve

import (
	"github.com/TristanCacqueray/disco/internal/graph"
	"github.com/TristanCacqueray/disco/types"
)

// buildGraph is the third stage: project the atomic pairs surviving
// Simplify into a directed graph whose nodes are atoms and whose edges
// are exactly the surviving subtype pairs.
func buildGraph[B comparable](atomic []types.AtomPair[B]) *graph.Graph[types.Atom[B]] {
	g := graph.New[types.Atom[B]]()
	for _, p := range atomic {
		g.AddEdge(p.Lo, p.Hi)
	}
	return g
}
