// Package molecule defines the molecule-domain enumerations and Data Transfer
// Objects shared by every layer of molgraph.  No domain logic lives here, only
// plain data types that are safe to import from any layer without creating
// circular dependencies.
package molecule

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// ─────────────────────────────────────────────────────────────────────────────
// BondType: chemical bond order / character
// ─────────────────────────────────────────────────────────────────────────────

// BondType is the categorical tag describing a bond's order or character.
type BondType string

const (
	// BondSingle is a single covalent bond.
	BondSingle BondType = "SINGLE"

	// BondDouble is a double covalent bond.
	BondDouble BondType = "DOUBLE"

	// BondTriple is a triple covalent bond.
	BondTriple BondType = "TRIPLE"

	// BondAromatic is a delocalised aromatic bond.
	BondAromatic BondType = "AROMATIC"
)

// BondTypes lists every supported bond type.
var BondTypes = []BondType{BondSingle, BondDouble, BondTriple, BondAromatic}

// IsValid reports whether b is one of the supported bond types.
func (b BondType) IsValid() bool {
	switch b {
	case BondSingle, BondDouble, BondTriple, BondAromatic:
		return true
	}
	return false
}

// String implements fmt.Stringer.
func (b BondType) String() string { return string(b) }

// ParseBondType converts a case-insensitive bond name into a BondType.
func ParseBondType(s string) (BondType, error) {
	b := BondType(strings.ToUpper(strings.TrimSpace(s)))
	if !b.IsValid() {
		return "", fmt.Errorf("unknown bond type %q", s)
	}
	return b, nil
}

// UnmarshalText implements encoding.TextUnmarshaler so bond types decode from
// JSON and YAML in any letter case.
func (b *BondType) UnmarshalText(text []byte) error {
	parsed, err := ParseBondType(string(text))
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Element symbols
// ─────────────────────────────────────────────────────────────────────────────

// elementSymbols holds the periodic table symbols H..Og in atomic-number order.
var elementSymbols = []string{
	"H", "He",
	"Li", "Be", "B", "C", "N", "O", "F", "Ne",
	"Na", "Mg", "Al", "Si", "P", "S", "Cl", "Ar",
	"K", "Ca", "Sc", "Ti", "V", "Cr", "Mn", "Fe", "Co", "Ni", "Cu", "Zn",
	"Ga", "Ge", "As", "Se", "Br", "Kr",
	"Rb", "Sr", "Y", "Zr", "Nb", "Mo", "Tc", "Ru", "Rh", "Pd", "Ag", "Cd",
	"In", "Sn", "Sb", "Te", "I", "Xe",
	"Cs", "Ba", "La", "Ce", "Pr", "Nd", "Pm", "Sm", "Eu", "Gd", "Tb", "Dy",
	"Ho", "Er", "Tm", "Yb", "Lu", "Hf", "Ta", "W", "Re", "Os", "Ir", "Pt",
	"Au", "Hg", "Tl", "Pb", "Bi", "Po", "At", "Rn",
	"Fr", "Ra", "Ac", "Th", "Pa", "U", "Np", "Pu", "Am", "Cm", "Bk", "Cf",
	"Es", "Fm", "Md", "No", "Lr", "Rf", "Db", "Sg", "Bh", "Hs", "Mt", "Ds",
	"Rg", "Cn", "Nh", "Fl", "Mc", "Lv", "Ts", "Og",
}

var elements = func() map[string]struct{} {
	m := make(map[string]struct{}, len(elementSymbols))
	for _, s := range elementSymbols {
		m[s] = struct{}{}
	}
	return m
}()

// IsElement reports whether symbol is a periodic table element symbol.
// Symbols are case-sensitive ("Cl", not "CL").
func IsElement(symbol string) bool {
	_, ok := elements[symbol]
	return ok
}

// ─────────────────────────────────────────────────────────────────────────────
// DTOs
// ─────────────────────────────────────────────────────────────────────────────

// AtomDTO is the wire form of a single atom.
type AtomDTO struct {
	Index  int    `json:"index"`
	Symbol string `json:"symbol"`
}

// BondDTO is the wire form of a single bond.
type BondDTO struct {
	Begin int      `json:"begin"`
	End   int      `json:"end"`
	Type  BondType `json:"type"`
}

// MoleculeDTO is the canonical molecule representation passed to the CLI and
// HTTP layers.
type MoleculeDTO struct {
	ID      string    `json:"id"`
	Formula string    `json:"formula"`
	Atoms   []AtomDTO `json:"atoms"`
	Bonds   []BondDTO `json:"bonds"`
}

// FeatureDTO is a node or edge feature on the wire: either a bare number (a
// direct vocabulary code) or an array of numbers.
type FeatureDTO struct {
	Values []float64
	Scalar bool
}

// MarshalJSON implements json.Marshaler.
func (f FeatureDTO) MarshalJSON() ([]byte, error) {
	if f.Scalar && len(f.Values) == 1 {
		return json.Marshal(f.Values[0])
	}
	if f.Values == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(f.Values)
}

// UnmarshalJSON implements json.Unmarshaler.  A null feature decodes as
// empty; a null inside an array is an error.
func (f *FeatureDTO) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		f.Values = nil
		f.Scalar = false
		return nil
	}
	var scalar float64
	if err := json.Unmarshal(data, &scalar); err == nil {
		f.Values = []float64{scalar}
		f.Scalar = true
		return nil
	}
	var raw []*float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("feature must be a number or an array of numbers: %w", err)
	}
	values := make([]float64, len(raw))
	for i, v := range raw {
		if v == nil {
			return fmt.Errorf("feature component %d is null", i)
		}
		values[i] = *v
	}
	f.Values = values
	f.Scalar = false
	return nil
}

// NodeDTO is a labeled graph node on the wire.
type NodeDTO struct {
	Key string     `json:"key"`
	X   FeatureDTO `json:"x"`
}

// EdgeDTO is a labeled graph edge on the wire.
type EdgeDTO struct {
	Source   string     `json:"source"`
	Target   string     `json:"target"`
	EdgeAttr FeatureDTO `json:"edge_attr"`
}

// GraphDTO is a labeled graph on the wire.  Node and edge order is significant:
// atoms are numbered in node order.
type GraphDTO struct {
	Nodes []NodeDTO `json:"nodes"`
	Edges []EdgeDTO `json:"edges"`
}

// RegisterEntryDTO is one entry of a register-matching collection.  ID is only
// meaningful for compiled entries.
type RegisterEntryDTO struct {
	ID     string      `json:"id,omitempty"`
	Coords [][]float64 `json:"coords"`
}

// VocabularyDTO is the wire form of a vocabulary.
type VocabularyDTO struct {
	Name   string           `json:"name"`
	OneHot bool             `json:"one_hot"`
	Nodes  map[int]string   `json:"nodes"`
	Edges  map[int]BondType `json:"edges"`
}

//Personal.AI order the ending
