package conversion

import (
	"github.com/turtacn/molgraph/internal/domain/graph"
	"github.com/turtacn/molgraph/internal/domain/molecule"
	"github.com/turtacn/molgraph/internal/domain/onehot"
	"github.com/turtacn/molgraph/internal/domain/vocabulary"
	"github.com/turtacn/molgraph/pkg/errors"
)

// MoleculeToGraph encodes m as an integer-keyed graph: node i is atom i and
// edges follow bond order.  With a one-hot vocabulary node and edge features
// are one-hot vectors of width NodeWidth and EdgeWidth; otherwise node
// features are one-component vectors and edge features scalars holding the
// code.  GraphToMolecule(MoleculeToGraph(m)) yields m's atoms and bonds.
func MoleculeToGraph(m *molecule.Molecule, vocab *vocabulary.Vocabulary) (*graph.Graph[int], error) {
	if m == nil || vocab == nil {
		return nil, errors.InvalidParam("molecule and vocabulary are required")
	}

	g := graph.New[int]()
	for _, a := range m.Atoms() {
		code, ok := vocab.NodeCode(a.Symbol)
		if !ok {
			return nil, errors.New(errors.ErrCodeUnknownAtomType, "element not in vocabulary").
				WithDetailf("vocabulary=%s atom=%d symbol=%s", vocab.Name(), a.Index, a.Symbol)
		}
		x, err := encodeCode(code, vocab.OneHot(), vocab.NodeWidth(), false)
		if err != nil {
			return nil, err
		}
		g.AddNode(a.Index, x)
	}

	for _, b := range m.Bonds() {
		code, ok := vocab.EdgeCode(b.Type)
		if !ok {
			return nil, errors.New(errors.ErrCodeUnknownBondType, "bond type not implemented").
				WithDetailf("vocabulary=%s bond=(%d, %d) type=%s", vocab.Name(), b.Begin, b.End, b.Type)
		}
		attr, err := encodeCode(code, vocab.OneHot(), vocab.EdgeWidth(), true)
		if err != nil {
			return nil, err
		}
		g.AddEdge(b.Begin, b.End, attr)
	}

	return g, nil
}

func encodeCode(code int, oneHot bool, width int, scalar bool) (graph.Feature, error) {
	if oneHot {
		v, err := onehot.Encode(code, width)
		if err != nil {
			return graph.Feature{}, err
		}
		return graph.Vector(v...), nil
	}
	if scalar {
		return graph.Scalar(float64(code)), nil
	}
	return graph.Vector(float64(code)), nil
}

//Personal.AI order the ending
