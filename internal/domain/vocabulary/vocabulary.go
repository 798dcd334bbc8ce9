// Package vocabulary maps the small integer codes used in graph feature
// vectors to element symbols and bond types.  A Vocabulary is immutable once
// constructed; a Registry resolves vocabularies by dataset name.
package vocabulary

import (
	"sort"

	"github.com/turtacn/molgraph/pkg/errors"
	mtypes "github.com/turtacn/molgraph/pkg/types/molecule"
)

// Vocabulary is the code table of one dataset.
type Vocabulary struct {
	name   string
	oneHot bool

	nodes map[int]string
	edges map[int]mtypes.BondType

	// reverse tables; the lowest code wins when a symbol or bond type repeats
	symbolCodes map[string]int
	bondCodes   map[mtypes.BondType]int
}

// New validates the tables and returns an immutable Vocabulary.  The maps are
// copied, so later changes by the caller have no effect.
func New(name string, nodes map[int]string, edges map[int]mtypes.BondType, oneHot bool) (*Vocabulary, error) {
	if name == "" {
		return nil, errors.New(errors.ErrCodeVocabularyInvalid, "vocabulary name is empty")
	}
	if len(nodes) == 0 {
		return nil, errors.New(errors.ErrCodeVocabularyInvalid, "vocabulary has no node codes").
			WithDetailf("vocabulary=%s", name)
	}

	v := &Vocabulary{
		name:        name,
		oneHot:      oneHot,
		nodes:       make(map[int]string, len(nodes)),
		edges:       make(map[int]mtypes.BondType, len(edges)),
		symbolCodes: make(map[string]int, len(nodes)),
		bondCodes:   make(map[mtypes.BondType]int, len(edges)),
	}

	for _, code := range sortedCodes(nodes) {
		symbol := nodes[code]
		if code < 0 {
			return nil, errors.New(errors.ErrCodeVocabularyInvalid, "negative node code").
				WithDetailf("vocabulary=%s code=%d", name, code)
		}
		if !mtypes.IsElement(symbol) {
			return nil, errors.New(errors.ErrCodeUnknownElement, "unknown element symbol").
				WithDetailf("vocabulary=%s code=%d symbol=%q", name, code, symbol)
		}
		v.nodes[code] = symbol
		if _, seen := v.symbolCodes[symbol]; !seen {
			v.symbolCodes[symbol] = code
		}
	}

	for _, code := range sortedCodes(edges) {
		bond := edges[code]
		if code < 0 {
			return nil, errors.New(errors.ErrCodeVocabularyInvalid, "negative edge code").
				WithDetailf("vocabulary=%s code=%d", name, code)
		}
		if !bond.IsValid() {
			return nil, errors.New(errors.ErrCodeUnknownBondType, "bond type not implemented").
				WithDetailf("vocabulary=%s code=%d bond=%q", name, code, bond)
		}
		v.edges[code] = bond
		if _, seen := v.bondCodes[bond]; !seen {
			v.bondCodes[bond] = code
		}
	}

	return v, nil
}

// Name returns the dataset name the vocabulary is registered under.
func (v *Vocabulary) Name() string { return v.name }

// OneHot reports whether feature vectors of this dataset are one-hot encoded.
func (v *Vocabulary) OneHot() bool { return v.oneHot }

// Element returns the element symbol for a node code.
func (v *Vocabulary) Element(code int) (string, bool) {
	s, ok := v.nodes[code]
	return s, ok
}

// Bond returns the bond type for an edge code.
func (v *Vocabulary) Bond(code int) (mtypes.BondType, bool) {
	b, ok := v.edges[code]
	return b, ok
}

// NodeCode returns the node code of an element symbol.
func (v *Vocabulary) NodeCode(symbol string) (int, bool) {
	c, ok := v.symbolCodes[symbol]
	return c, ok
}

// EdgeCode returns the edge code of a bond type.
func (v *Vocabulary) EdgeCode(bond mtypes.BondType) (int, bool) {
	c, ok := v.bondCodes[bond]
	return c, ok
}

// NodeWidth is the length of a one-hot node vector: the largest node code + 1.
func (v *Vocabulary) NodeWidth() int { return width(v.nodes) }

// EdgeWidth is the length of a one-hot edge vector: the largest edge code + 1.
func (v *Vocabulary) EdgeWidth() int { return width(v.edges) }

// ToDTO returns the wire form of the vocabulary.
func (v *Vocabulary) ToDTO() mtypes.VocabularyDTO {
	dto := mtypes.VocabularyDTO{
		Name:   v.name,
		OneHot: v.oneHot,
		Nodes:  make(map[int]string, len(v.nodes)),
		Edges:  make(map[int]mtypes.BondType, len(v.edges)),
	}
	for c, s := range v.nodes {
		dto.Nodes[c] = s
	}
	for c, b := range v.edges {
		dto.Edges[c] = b
	}
	return dto
}

func width[T any](m map[int]T) int {
	w := 0
	for c := range m {
		if c+1 > w {
			w = c + 1
		}
	}
	return w
}

func sortedCodes[T any](m map[int]T) []int {
	codes := make([]int, 0, len(m))
	for c := range m {
		codes = append(codes, c)
	}
	sort.Ints(codes)
	return codes
}

//Personal.AI order the ending
