package vocabulary

import (
	"sort"
	"sync"

	"github.com/samber/lo"

	"github.com/turtacn/molgraph/pkg/errors"
	mtypes "github.com/turtacn/molgraph/pkg/types/molecule"
)

// Registry resolves vocabularies by dataset name.  It is safe for concurrent
// use; vocabularies themselves are immutable.
type Registry struct {
	mu     sync.RWMutex
	vocabs map[string]*Vocabulary
}

// NewRegistry returns a Registry holding vocabs.  Duplicate names fail with
// ErrCodeVocabularyExists.
func NewRegistry(vocabs ...*Vocabulary) (*Registry, error) {
	r := &Registry{vocabs: make(map[string]*Vocabulary, len(vocabs))}
	for _, v := range vocabs {
		if err := r.Register(v); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds v under its name.
func (r *Registry) Register(v *Vocabulary) error {
	if v == nil {
		return errors.New(errors.ErrCodeVocabularyInvalid, "vocabulary is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.vocabs[v.name]; exists {
		return errors.New(errors.ErrCodeVocabularyExists, "vocabulary already registered").
			WithDetailf("vocabulary=%s", v.name)
	}
	r.vocabs[v.name] = v
	return nil
}

// Resolve returns the vocabulary registered under name, or an
// ErrCodeVocabularyNotFound error.
func (r *Registry) Resolve(name string) (*Vocabulary, error) {
	r.mu.RLock()
	v, ok := r.vocabs[name]
	r.mu.RUnlock()
	if !ok {
		return nil, errors.New(errors.ErrCodeVocabularyNotFound, "vocabulary not registered").
			WithDetailf("vocabulary=%s", name)
	}
	return v, nil
}

// Names returns the registered dataset names in lexical order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	names := lo.Keys(r.vocabs)
	r.mu.RUnlock()
	sort.Strings(names)
	return names
}

// ─────────────────────────────────────────────────────────────────────────────
// Configuration-driven vocabularies
// ─────────────────────────────────────────────────────────────────────────────

// NodeEntry maps a node code to an element symbol.
type NodeEntry struct {
	Code   int    `mapstructure:"code" yaml:"code" json:"code"`
	Symbol string `mapstructure:"symbol" yaml:"symbol" json:"symbol"`
}

// EdgeEntry maps an edge code to a bond type name.
type EdgeEntry struct {
	Code int    `mapstructure:"code" yaml:"code" json:"code"`
	Bond string `mapstructure:"bond" yaml:"bond" json:"bond"`
}

// Definition is the configuration form of a vocabulary.
type Definition struct {
	Name   string      `mapstructure:"name" yaml:"name" json:"name"`
	OneHot bool        `mapstructure:"one_hot" yaml:"one_hot" json:"one_hot"`
	Nodes  []NodeEntry `mapstructure:"nodes" yaml:"nodes" json:"nodes"`
	Edges  []EdgeEntry `mapstructure:"edges" yaml:"edges" json:"edges"`
}

// Build converts the definition into a Vocabulary.  Repeated codes fail with
// ErrCodeVocabularyInvalid.
func (d Definition) Build() (*Vocabulary, error) {
	nodes := make(map[int]string, len(d.Nodes))
	for _, n := range d.Nodes {
		if _, dup := nodes[n.Code]; dup {
			return nil, errors.New(errors.ErrCodeVocabularyInvalid, "duplicate node code").
				WithDetailf("vocabulary=%s code=%d", d.Name, n.Code)
		}
		nodes[n.Code] = n.Symbol
	}

	edges := make(map[int]mtypes.BondType, len(d.Edges))
	for _, e := range d.Edges {
		if _, dup := edges[e.Code]; dup {
			return nil, errors.New(errors.ErrCodeVocabularyInvalid, "duplicate edge code").
				WithDetailf("vocabulary=%s code=%d", d.Name, e.Code)
		}
		bond, err := mtypes.ParseBondType(e.Bond)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeUnknownBondType, "bond type not implemented").
				WithDetailf("vocabulary=%s code=%d", d.Name, e.Code)
		}
		edges[e.Code] = bond
	}

	return New(d.Name, nodes, edges, d.OneHot)
}

// FromConfig returns the default registry extended with defs.  A definition
// reusing a built-in name fails with ErrCodeVocabularyExists.
func FromConfig(defs []Definition) (*Registry, error) {
	r := DefaultRegistry()
	for _, d := range defs {
		v, err := d.Build()
		if err != nil {
			return nil, err
		}
		if err := r.Register(v); err != nil {
			return nil, err
		}
	}
	return r, nil
}

//Personal.AI order the ending
