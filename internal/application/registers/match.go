package registers

import (
	"github.com/samber/lo"
)

// Registered is anything carrying a coordinate register.
type Registered interface {
	Register() *Register
}

// Identified is a Registered entry with an identifier, the shape of a
// compiled-collection record.
type Identified interface {
	Registered
	ID() string
}

// Entry is the plain Identified implementation.
type Entry struct {
	id  string
	reg *Register
}

// NewEntry builds an Entry from raw coordinates.
func NewEntry(id string, coords [][]float64) (*Entry, error) {
	reg, err := NewRegister(coords)
	if err != nil {
		return nil, err
	}
	return &Entry{id: id, reg: reg}, nil
}

// EntryOf wraps an existing register.
func EntryOf(id string, reg *Register) *Entry {
	return &Entry{id: id, reg: reg}
}

// ID returns the entry identifier.
func (e *Entry) ID() string { return e.id }

// Register returns the entry's register.
func (e *Entry) Register() *Register { return e.reg }

// Correspondence maps a processed-collection index to the IDs of the compiled
// entries whose signature equals that entry's signature, in compiled order.
type Correspondence map[int][]string

// Matched returns how many processed indices have at least one match.
func (c Correspondence) Matched() int {
	return len(lo.PickBy(c, func(_ int, ids []string) bool { return len(ids) > 0 }))
}

// Match computes the correspondence between processed and compiled.  Every
// processed index appears in the result, with an empty list when nothing
// matches.  Each signature is derived once; compiled entries are indexed by
// signature.
func Match[P Registered, C Identified](processed []P, compiled []C) Correspondence {
	index := make(map[string][]string, len(compiled))
	for _, c := range compiled {
		k := c.Register().Signature().key()
		index[k] = append(index[k], c.ID())
	}

	out := make(Correspondence, len(processed))
	for i, p := range processed {
		ids := index[p.Register().Signature().key()]
		out[i] = append([]string{}, ids...)
	}
	return out
}

//Personal.AI order the ending
