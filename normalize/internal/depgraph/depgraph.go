// Package depgraph builds a dependency graph over the TypeIDs that
// survive normalization and offers a topological sort over it, used to
// verify the binding graph is acyclic and to hand downstream
// object-creation code a ready-made construction order.
package depgraph

import (
	"fmt"

	"github.com/bindgraph/dicore"
)

// Graph is an adjacency-list dependency graph over TypeIDs: Edges[a]
// lists every b that depends on a, indexed by the depended-upon node
// rather than the dependent one.
type Graph struct {
	Edges map[dicore.TypeID][]dicore.TypeID
	nodes map[dicore.TypeID]bool
}

// New returns an empty dependency graph.
func New() *Graph {
	return &Graph{
		Edges: make(map[dicore.TypeID][]dicore.TypeID),
		nodes: make(map[dicore.TypeID]bool),
	}
}

// AddNode registers id even if it has no dependencies, so it still
// appears in TopologicalSort's output.
func (g *Graph) AddNode(id dicore.TypeID) {
	g.nodes[id] = true
}

// AddEdge records that dependent depends on dependsOn.
func (g *Graph) AddEdge(dependent, dependsOn dicore.TypeID) {
	g.AddNode(dependent)
	g.AddNode(dependsOn)
	g.Edges[dependsOn] = append(g.Edges[dependsOn], dependent)
}

// TopologicalSort returns nodes in dependency order (dependencies
// first), via Kahn's algorithm. Returns an error if a cycle exists.
func (g *Graph) TopologicalSort() ([]dicore.TypeID, error) {
	inDegree := make(map[dicore.TypeID]int, len(g.nodes))
	for n := range g.nodes {
		inDegree[n] = 0
	}
	for _, dependents := range g.Edges {
		for _, d := range dependents {
			inDegree[d]++
		}
	}

	var queue []dicore.TypeID
	for n, deg := range inDegree {
		if deg == 0 {
			queue = append(queue, n)
		}
	}

	var result []dicore.TypeID
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		result = append(result, n)

		for _, dependent := range g.Edges[n] {
			inDegree[dependent]--
			if inDegree[dependent] == 0 {
				queue = append(queue, dependent)
			}
		}
	}

	if len(result) != len(g.nodes) {
		return nil, fmt.Errorf("depgraph: cycle detected among %d unresolved nodes", len(g.nodes)-len(result))
	}
	return result, nil
}

// IsAcyclic reports whether the graph built so far has no cycles.
func (g *Graph) IsAcyclic() bool {
	_, err := g.TopologicalSort()
	return err == nil
}
