// Package graph provides the labeled, undirected graph that GNN datasets use
// to describe molecules: nodes carry an x feature and edges an edge_attr
// feature.  Iteration order is insertion order.
package graph

import (
	"fmt"

	"github.com/turtacn/molgraph/pkg/errors"
	mtypes "github.com/turtacn/molgraph/pkg/types/molecule"
)

// Node is a node key with its x feature.
type Node[K comparable] struct {
	Key K
	X   Feature
}

// Edge is an undirected edge with its edge_attr feature.  U and V keep the
// orientation of the first insertion.
type Edge[K comparable] struct {
	U, V K
	Attr Feature
}

type pair[K comparable] struct{ u, v K }

// Graph is a labeled undirected graph keyed by K.
//
// Re-adding a node or an edge replaces its feature but keeps its position.
// (v, u) names the same edge as (u, v).  Edges may reference keys that were
// never added as nodes; Graph does not check this.
type Graph[K comparable] struct {
	nodes   []Node[K]
	nodeIdx map[K]int
	edges   []Edge[K]
	edgeIdx map[pair[K]]int
}

// New returns an empty graph.
func New[K comparable]() *Graph[K] {
	return &Graph[K]{
		nodeIdx: make(map[K]int),
		edgeIdx: make(map[pair[K]]int),
	}
}

// AddNode adds key with feature x, or replaces the feature of an existing key.
func (g *Graph[K]) AddNode(key K, x Feature) {
	if i, ok := g.nodeIdx[key]; ok {
		g.nodes[i].X = x
		return
	}
	g.nodeIdx[key] = len(g.nodes)
	g.nodes = append(g.nodes, Node[K]{Key: key, X: x})
}

// AddEdge adds the undirected edge {u, v} with feature attr, or replaces the
// feature of an existing edge.
func (g *Graph[K]) AddEdge(u, v K, attr Feature) {
	if i, ok := g.edgeIndex(u, v); ok {
		g.edges[i].Attr = attr
		return
	}
	g.edgeIdx[pair[K]{u, v}] = len(g.edges)
	g.edges = append(g.edges, Edge[K]{U: u, V: v, Attr: attr})
}

func (g *Graph[K]) edgeIndex(u, v K) (int, bool) {
	if i, ok := g.edgeIdx[pair[K]{u, v}]; ok {
		return i, true
	}
	i, ok := g.edgeIdx[pair[K]{v, u}]
	return i, ok
}

// HasNode reports whether key was added as a node.
func (g *Graph[K]) HasNode(key K) bool {
	_, ok := g.nodeIdx[key]
	return ok
}

// Node returns the x feature of key.
func (g *Graph[K]) Node(key K) (Feature, bool) {
	i, ok := g.nodeIdx[key]
	if !ok {
		return Feature{}, false
	}
	return g.nodes[i].X, true
}

// Edge returns the edge_attr feature of {u, v}.
func (g *Graph[K]) Edge(u, v K) (Feature, bool) {
	i, ok := g.edgeIndex(u, v)
	if !ok {
		return Feature{}, false
	}
	return g.edges[i].Attr, true
}

// NumNodes returns the number of nodes.
func (g *Graph[K]) NumNodes() int { return len(g.nodes) }

// NumEdges returns the number of undirected edges.
func (g *Graph[K]) NumEdges() int { return len(g.edges) }

// Nodes returns the nodes in insertion order.
func (g *Graph[K]) Nodes() []Node[K] { return append([]Node[K](nil), g.nodes...) }

// Edges returns the edges in insertion order.
func (g *Graph[K]) Edges() []Edge[K] { return append([]Edge[K](nil), g.edges...) }

// Neighbors returns the keys adjacent to key, in edge order.
func (g *Graph[K]) Neighbors(key K) []K {
	var out []K
	for _, e := range g.edges {
		switch key {
		case e.U:
			out = append(out, e.V)
		case e.V:
			out = append(out, e.U)
		}
	}
	return out
}

// ─────────────────────────────────────────────────────────────────────────────
// Wire conversion
// ─────────────────────────────────────────────────────────────────────────────

// FromDTO builds a string-keyed graph from its wire form.  Empty keys and
// empty vector features fail with ErrCodeInvalidGraph.
func FromDTO(dto mtypes.GraphDTO) (*Graph[string], error) {
	g := New[string]()
	for i, n := range dto.Nodes {
		if n.Key == "" {
			return nil, errors.New(errors.ErrCodeInvalidGraph, "node key is empty").WithDetailf("node=%d", i)
		}
		if len(n.X.Values) == 0 {
			return nil, errors.New(errors.ErrCodeInvalidGraph, "node feature is empty").WithDetailf("node=%s", n.Key)
		}
		g.AddNode(n.Key, FeatureFromDTO(n.X))
	}
	for i, e := range dto.Edges {
		if e.Source == "" || e.Target == "" {
			return nil, errors.New(errors.ErrCodeInvalidGraph, "edge endpoint is empty").WithDetailf("edge=%d", i)
		}
		if len(e.EdgeAttr.Values) == 0 {
			return nil, errors.New(errors.ErrCodeInvalidGraph, "edge feature is empty").
				WithDetailf("edge=%s-%s", e.Source, e.Target)
		}
		g.AddEdge(e.Source, e.Target, FeatureFromDTO(e.EdgeAttr))
	}
	return g, nil
}

// ToDTO returns the wire form of g.  Keys are rendered with fmt.
func ToDTO[K comparable](g *Graph[K]) mtypes.GraphDTO {
	dto := mtypes.GraphDTO{
		Nodes: make([]mtypes.NodeDTO, 0, len(g.nodes)),
		Edges: make([]mtypes.EdgeDTO, 0, len(g.edges)),
	}
	for _, n := range g.nodes {
		dto.Nodes = append(dto.Nodes, mtypes.NodeDTO{Key: fmt.Sprint(n.Key), X: n.X.ToDTO()})
	}
	for _, e := range g.edges {
		dto.Edges = append(dto.Edges, mtypes.EdgeDTO{
			Source:   fmt.Sprint(e.U),
			Target:   fmt.Sprint(e.V),
			EdgeAttr: e.Attr.ToDTO(),
		})
	}
	return dto
}

//Personal.AI order the ending
