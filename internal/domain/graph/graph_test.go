package graph

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/molgraph/pkg/errors"
	mtypes "github.com/turtacn/molgraph/pkg/types/molecule"
)

func TestGraph_InsertionOrder(t *testing.T) {
	g := New[string]()
	g.AddNode("c", Scalar(2))
	g.AddNode("a", Scalar(3))
	g.AddNode("b", Scalar(4))

	keys := []string{}
	for _, n := range g.Nodes() {
		keys = append(keys, n.Key)
	}
	assert.Equal(t, []string{"c", "a", "b"}, keys)
}

func TestGraph_ReAddNodeKeepsPosition(t *testing.T) {
	g := New[int]()
	g.AddNode(7, Scalar(1))
	g.AddNode(3, Scalar(1))
	g.AddNode(7, Scalar(5))

	require.Equal(t, 2, g.NumNodes())
	nodes := g.Nodes()
	assert.Equal(t, 7, nodes[0].Key)
	assert.Equal(t, 5.0, nodes[0].X.At(0))
}

func TestGraph_EdgesAreUndirected(t *testing.T) {
	g := New[int]()
	g.AddEdge(0, 1, Scalar(1))
	g.AddEdge(1, 0, Scalar(2))
	g.AddEdge(1, 2, Vector(0, 1))

	require.Equal(t, 2, g.NumEdges())
	attr, ok := g.Edge(0, 1)
	require.True(t, ok)
	assert.Equal(t, 2.0, attr.At(0))

	edges := g.Edges()
	assert.Equal(t, 0, edges[0].U)
	assert.Equal(t, 1, edges[0].V)

	_, ok = g.Edge(2, 1)
	assert.True(t, ok)
	_, ok = g.Edge(0, 2)
	assert.False(t, ok)
}

func TestGraph_EdgeMayReferenceMissingNode(t *testing.T) {
	g := New[string]()
	g.AddNode("a", Scalar(0))
	g.AddEdge("a", "ghost", Scalar(1))
	assert.Equal(t, 1, g.NumEdges())
	assert.False(t, g.HasNode("ghost"))
}

func TestGraph_Neighbors(t *testing.T) {
	g := New[int]()
	g.AddEdge(0, 1, Scalar(1))
	g.AddEdge(2, 0, Scalar(1))
	g.AddEdge(1, 2, Scalar(1))
	assert.Equal(t, []int{1, 2}, g.Neighbors(0))
	assert.Nil(t, g.Neighbors(9))
}

func TestGraph_AccessorsReturnCopies(t *testing.T) {
	g := New[int]()
	g.AddNode(0, Vector(1, 0))
	nodes := g.Nodes()
	nodes[0].Key = 9
	assert.True(t, g.HasNode(0))

	x, _ := g.Node(0)
	vals := x.Values()
	vals[0] = 7
	x, _ = g.Node(0)
	assert.Equal(t, 1.0, x.At(0))
}

func TestFeature(t *testing.T) {
	s := Scalar(3)
	assert.True(t, s.IsScalar())
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, "3", s.String())

	v := Vector(0, 1)
	assert.False(t, v.IsScalar())
	assert.Equal(t, 2, v.Len())
	assert.Equal(t, "[0 1]", v.String())
}

func TestFromDTO(t *testing.T) {
	var dto mtypes.GraphDTO
	require.NoError(t, json.Unmarshal([]byte(`{
		"nodes": [{"key": "n1", "x": [0, 0, 1]}, {"key": "n2", "x": 3}],
		"edges": [{"source": "n1", "target": "n2", "edge_attr": [0, 1, 0, 0]}]
	}`), &dto))

	g, err := FromDTO(dto)
	require.NoError(t, err)
	assert.Equal(t, 2, g.NumNodes())
	x, ok := g.Node("n2")
	require.True(t, ok)
	assert.True(t, x.IsScalar())

	attr, ok := g.Edge("n2", "n1")
	require.True(t, ok)
	assert.Equal(t, []float64{0, 1, 0, 0}, attr.Values())

	back := ToDTO(g)
	assert.Equal(t, dto, back)
}

func TestFromDTO_Invalid(t *testing.T) {
	cases := map[string]mtypes.GraphDTO{
		"empty key":       {Nodes: []mtypes.NodeDTO{{Key: "", X: mtypes.FeatureDTO{Values: []float64{1}, Scalar: true}}}},
		"empty feature":   {Nodes: []mtypes.NodeDTO{{Key: "a"}}},
		"empty endpoint":  {Edges: []mtypes.EdgeDTO{{Source: "a", EdgeAttr: mtypes.FeatureDTO{Values: []float64{1}}}}},
		"empty edge attr": {Edges: []mtypes.EdgeDTO{{Source: "a", Target: "b"}}},
	}
	for name, dto := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := FromDTO(dto)
			assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidGraph))
		})
	}
}

func TestFromDTO_NullFeaturesRejected(t *testing.T) {
	cases := map[string]string{
		"node":  `{"nodes":[{"key":"a","x":null},{"key":"b","x":[0,0,1]}],"edges":[]}`,
		"edge":  `{"nodes":[{"key":"a","x":[0,0,1]},{"key":"b","x":[0,0,1]}],"edges":[{"source":"a","target":"b","edge_attr":null}]}`,
		"empty": `{"nodes":[{"key":"a","x":[]}],"edges":[]}`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			var dto mtypes.GraphDTO
			require.NoError(t, json.Unmarshal([]byte(raw), &dto))
			_, err := FromDTO(dto)
			assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidGraph), "%v", err)
		})
	}
}

func TestToDTO_IntKeys(t *testing.T) {
	g := New[int]()
	g.AddNode(0, Scalar(2))
	g.AddNode(1, Scalar(3))
	g.AddEdge(0, 1, Scalar(1))

	dto := ToDTO(g)
	assert.Equal(t, "0", dto.Nodes[0].Key)
	assert.Equal(t, "1", dto.Edges[0].Target)
}

//Personal.AI order the ending
