// Package molecule provides the molecule value built from a labeled graph: an
// ordered atom list plus a bond list.  A Builder is the only mutable form;
// Build finalizes it into an immutable Molecule.
package molecule

import (
	"github.com/turtacn/molgraph/pkg/errors"
	mtypes "github.com/turtacn/molgraph/pkg/types/molecule"
)

// Atom is one atom of a molecule.  Index is its position in the atom list.
type Atom struct {
	Index  int
	Symbol string
}

// Bond connects two atoms by index.
type Bond struct {
	Begin int
	End   int
	Type  mtypes.BondType
}

type atomPair struct{ a, b int }

func orderedPair(a, b int) atomPair {
	if a > b {
		a, b = b, a
	}
	return atomPair{a, b}
}

// Builder accumulates atoms and bonds.  The zero value is ready to use.
// A Builder is not safe for concurrent use.
type Builder struct {
	atoms  []Atom
	bonds  []Bond
	bonded map[atomPair]struct{}
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// AddAtom appends an atom of the given element and returns its index.
// Indices are assigned sequentially from 0.
func (b *Builder) AddAtom(symbol string) (int, error) {
	if !mtypes.IsElement(symbol) {
		return -1, errors.New(errors.ErrCodeUnknownElement, "unknown element symbol").
			WithDetailf("symbol=%q", symbol)
	}
	idx := len(b.atoms)
	b.atoms = append(b.atoms, Atom{Index: idx, Symbol: symbol})
	return idx, nil
}

// AddBond adds a bond between two existing atoms and returns the bond's
// index.  Self-bonds, out-of-range atoms and a second bond between the same
// pair fail with ErrCodeInvalidBond.
func (b *Builder) AddBond(begin, end int, t mtypes.BondType) (int, error) {
	if !t.IsValid() {
		return -1, errors.New(errors.ErrCodeUnknownBondType, "bond type not implemented").
			WithDetailf("type=%q", t)
	}
	if begin < 0 || begin >= len(b.atoms) || end < 0 || end >= len(b.atoms) {
		return -1, errors.New(errors.ErrCodeInvalidBond, "bond atom index out of range").
			WithDetailf("begin=%d end=%d atoms=%d", begin, end, len(b.atoms))
	}
	if begin == end {
		return -1, errors.New(errors.ErrCodeInvalidBond, "atom cannot bond to itself").
			WithDetailf("atom=%d", begin)
	}
	if b.bonded == nil {
		b.bonded = make(map[atomPair]struct{})
	}
	key := orderedPair(begin, end)
	if _, dup := b.bonded[key]; dup {
		return -1, errors.New(errors.ErrCodeInvalidBond, "bond already exists").
			WithDetailf("begin=%d end=%d", begin, end)
	}
	b.bonded[key] = struct{}{}
	b.bonds = append(b.bonds, Bond{Begin: begin, End: end, Type: t})
	return len(b.bonds) - 1, nil
}

// NumAtoms returns the number of atoms added so far.
func (b *Builder) NumAtoms() int { return len(b.atoms) }

// NumBonds returns the number of bonds added so far.
func (b *Builder) NumBonds() int { return len(b.bonds) }

// Build returns an immutable Molecule holding a copy of the builder's atoms
// and bonds.  The builder stays usable.
func (b *Builder) Build() *Molecule {
	return newMolecule(b.atoms, b.bonds)
}

//Personal.AI order the ending
