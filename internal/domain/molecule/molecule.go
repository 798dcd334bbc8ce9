package molecule

import (
	"fmt"
	"sort"
	"strings"

	"github.com/turtacn/molgraph/pkg/errors"
	"github.com/turtacn/molgraph/pkg/types/common"
	mtypes "github.com/turtacn/molgraph/pkg/types/molecule"
)

// Molecule is an immutable atom and bond list.  Atom order is the order in
// which atoms were added to the Builder.
type Molecule struct {
	id        common.ID
	atoms     []Atom
	bonds     []Bond
	neighbors [][]int
	bondIdx   map[atomPair]int
}

func newMolecule(atoms []Atom, bonds []Bond) *Molecule {
	m := &Molecule{
		id:        common.NewID(),
		atoms:     append([]Atom(nil), atoms...),
		bonds:     append([]Bond(nil), bonds...),
		neighbors: make([][]int, len(atoms)),
		bondIdx:   make(map[atomPair]int, len(bonds)),
	}
	for i, b := range m.bonds {
		m.neighbors[b.Begin] = append(m.neighbors[b.Begin], b.End)
		m.neighbors[b.End] = append(m.neighbors[b.End], b.Begin)
		m.bondIdx[orderedPair(b.Begin, b.End)] = i
	}
	return m
}

// ID returns the identifier assigned when the molecule was built.
func (m *Molecule) ID() common.ID { return m.id }

// NumAtoms returns the number of atoms.
func (m *Molecule) NumAtoms() int { return len(m.atoms) }

// NumBonds returns the number of bonds.
func (m *Molecule) NumBonds() int { return len(m.bonds) }

// Atom returns atom i.
func (m *Molecule) Atom(i int) Atom { return m.atoms[i] }

// Bond returns bond i.
func (m *Molecule) Bond(i int) Bond { return m.bonds[i] }

// Atoms returns a copy of the atom list.
func (m *Molecule) Atoms() []Atom { return append([]Atom(nil), m.atoms...) }

// Bonds returns a copy of the bond list.
func (m *Molecule) Bonds() []Bond { return append([]Bond(nil), m.bonds...) }

// Symbols returns the element symbols in atom order.
func (m *Molecule) Symbols() []string {
	out := make([]string, len(m.atoms))
	for i, a := range m.atoms {
		out[i] = a.Symbol
	}
	return out
}

// Neighbors returns the indices of atoms bonded to atom i, in bond order.
func (m *Molecule) Neighbors(i int) []int {
	return append([]int(nil), m.neighbors[i]...)
}

// BondBetween returns the bond joining atoms a and b, in either direction.
func (m *Molecule) BondBetween(a, b int) (Bond, bool) {
	i, ok := m.bondIdx[orderedPair(a, b)]
	if !ok {
		return Bond{}, false
	}
	return m.bonds[i], true
}

// Formula returns the Hill-system formula of the explicit atoms: carbon
// first, hydrogen second, then the remaining elements alphabetically.  With no
// carbon every element is alphabetical.  Implicit hydrogens are not counted.
func (m *Molecule) Formula() string {
	counts := make(map[string]int)
	for _, a := range m.atoms {
		counts[a.Symbol]++
	}

	var order []string
	if counts["C"] > 0 {
		order = append(order, "C")
		if counts["H"] > 0 {
			order = append(order, "H")
		}
	}
	rest := make([]string, 0, len(counts))
	for s := range counts {
		if counts["C"] > 0 && (s == "C" || s == "H") {
			continue
		}
		rest = append(rest, s)
	}
	sort.Strings(rest)
	order = append(order, rest...)

	var sb strings.Builder
	for _, s := range order {
		sb.WriteString(s)
		if n := counts[s]; n > 1 {
			fmt.Fprintf(&sb, "%d", n)
		}
	}
	return sb.String()
}

// ─────────────────────────────────────────────────────────────────────────────
// DTO conversion
// ─────────────────────────────────────────────────────────────────────────────

// ToDTO converts the molecule to its wire form.
func (m *Molecule) ToDTO() mtypes.MoleculeDTO {
	dto := mtypes.MoleculeDTO{
		ID:      m.id.String(),
		Formula: m.Formula(),
		Atoms:   make([]mtypes.AtomDTO, len(m.atoms)),
		Bonds:   make([]mtypes.BondDTO, len(m.bonds)),
	}
	for i, a := range m.atoms {
		dto.Atoms[i] = mtypes.AtomDTO{Index: a.Index, Symbol: a.Symbol}
	}
	for i, b := range m.bonds {
		dto.Bonds[i] = mtypes.BondDTO{Begin: b.Begin, End: b.End, Type: b.Type}
	}
	return dto
}

// FromDTO rebuilds a molecule from its wire form through a Builder, so the
// same validation applies.  Atoms must be listed in index order.  A valid ID
// in the DTO is kept.
func FromDTO(dto mtypes.MoleculeDTO) (*Molecule, error) {
	b := NewBuilder()
	for i, a := range dto.Atoms {
		if a.Index != i {
			return nil, errors.New(errors.ErrCodeInvalidGraph, "atoms must be listed in index order").
				WithDetailf("position=%d index=%d", i, a.Index)
		}
		if _, err := b.AddAtom(a.Symbol); err != nil {
			return nil, err
		}
	}
	for _, bd := range dto.Bonds {
		if _, err := b.AddBond(bd.Begin, bd.End, bd.Type); err != nil {
			return nil, err
		}
	}
	m := b.Build()
	if id := common.ID(dto.ID); id.Validate() == nil {
		m.id = id
	}
	return m, nil
}

//Personal.AI order the ending
