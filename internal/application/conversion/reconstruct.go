// Package conversion converts between labeled graphs and molecules using a
// dataset vocabulary.  GraphToMolecule and MoleculeToGraph are pure functions;
// Service adds vocabulary resolution by name, logging and metrics.
package conversion

import (
	"github.com/turtacn/molgraph/internal/domain/graph"
	"github.com/turtacn/molgraph/internal/domain/molecule"
	"github.com/turtacn/molgraph/internal/domain/vocabulary"
	"github.com/turtacn/molgraph/pkg/errors"
)

// GraphToMolecule rebuilds a molecule from g.
//
// Nodes are visited in graph order and become atoms 0, 1, 2, ... in that
// order.  Edges are then visited in graph order and become bonds between the
// atoms of their endpoints.  An edge whose endpoint is not a node fails with
// ErrCodeNodeNotVisited; a node code missing from vocab fails with
// ErrCodeUnknownAtomType and an edge code missing from vocab with
// ErrCodeUnknownBondType.  g is not modified.
func GraphToMolecule[K comparable](g *graph.Graph[K], vocab *vocabulary.Vocabulary) (*molecule.Molecule, error) {
	if g == nil || vocab == nil {
		return nil, errors.InvalidParam("graph and vocabulary are required")
	}

	b := molecule.NewBuilder()
	atomOf := make(map[K]int, g.NumNodes())

	for _, n := range g.Nodes() {
		code, err := decodeCode(n.X, vocab.OneHot())
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeUnknown, "failed to decode node feature").
				WithDetailf("node=%v", n.Key)
		}
		symbol, ok := vocab.Element(code)
		if !ok {
			return nil, errors.New(errors.ErrCodeUnknownAtomType, "atom code not in vocabulary").
				WithDetailf("vocabulary=%s node=%v code=%d", vocab.Name(), n.Key, code)
		}
		idx, err := b.AddAtom(symbol)
		if err != nil {
			return nil, err
		}
		atomOf[n.Key] = idx
	}

	for _, e := range g.Edges() {
		begin, okU := atomOf[e.U]
		end, okV := atomOf[e.V]
		if !okU || !okV {
			return nil, errors.New(errors.ErrCodeNodeNotVisited, "edge references a node without an atom").
				WithDetailf("edge=(%v, %v)", e.U, e.V)
		}
		code, err := decodeCode(e.Attr, vocab.OneHot())
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeUnknown, "failed to decode edge feature").
				WithDetailf("edge=(%v, %v)", e.U, e.V)
		}
		bond, ok := vocab.Bond(code)
		if !ok {
			return nil, errors.New(errors.ErrCodeUnknownBondType, "bond type not implemented").
				WithDetailf("vocabulary=%s edge=(%v, %v) code=%d", vocab.Name(), e.U, e.V, code)
		}
		if _, err := b.AddBond(begin, end, bond); err != nil {
			return nil, errors.Wrap(err, errors.CodeUnknown, "failed to add bond").
				WithDetailf("edge=(%v, %v)", e.U, e.V)
		}
	}

	return b.Build(), nil
}

//Personal.AI order the ending
