package vocabulary

import (
	mtypes "github.com/turtacn/molgraph/pkg/types/molecule"
)

// PTCFM is the name of the built-in PTC_FM vocabulary (Predictive Toxicology
// Challenge, female mice).
const PTCFM = "PTC_FM"

var ptcFMNodes = map[int]string{
	0: "In", 1: "P", 2: "C", 3: "O", 4: "N", 5: "Cl", 6: "S", 7: "Br", 8: "Na",
	9: "F", 10: "As", 11: "K", 12: "Cu", 13: "I", 14: "Ba", 15: "Sn", 16: "Pb", 17: "Ca",
}

var ptcFMEdges = map[int]mtypes.BondType{
	0: mtypes.BondTriple,
	1: mtypes.BondSingle,
	2: mtypes.BondDouble,
	3: mtypes.BondAromatic,
}

// NewPTCFM returns the built-in PTC_FM vocabulary.  Its features are one-hot.
func NewPTCFM() *Vocabulary {
	v, err := New(PTCFM, ptcFMNodes, ptcFMEdges, true)
	if err != nil {
		panic(err)
	}
	return v
}

// DefaultRegistry returns a Registry holding the built-in vocabularies.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(NewPTCFM())
	if err != nil {
		panic(err)
	}
	return r
}

//Personal.AI order the ending
