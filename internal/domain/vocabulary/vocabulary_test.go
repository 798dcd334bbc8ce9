package vocabulary

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/molgraph/pkg/errors"
	mtypes "github.com/turtacn/molgraph/pkg/types/molecule"
)

func TestNewPTCFM_Tables(t *testing.T) {
	v := NewPTCFM()

	assert.Equal(t, PTCFM, v.Name())
	assert.True(t, v.OneHot())
	assert.Equal(t, 18, v.NodeWidth())
	assert.Equal(t, 4, v.EdgeWidth())

	nodes := map[int]string{
		0: "In", 1: "P", 2: "C", 3: "O", 4: "N", 5: "Cl", 6: "S", 7: "Br", 8: "Na",
		9: "F", 10: "As", 11: "K", 12: "Cu", 13: "I", 14: "Ba", 15: "Sn", 16: "Pb", 17: "Ca",
	}
	for code, symbol := range nodes {
		got, ok := v.Element(code)
		require.True(t, ok, "code %d", code)
		assert.Equal(t, symbol, got)

		back, ok := v.NodeCode(symbol)
		require.True(t, ok)
		assert.Equal(t, code, back)
	}
	_, ok := v.Element(18)
	assert.False(t, ok)

	edges := map[int]mtypes.BondType{
		0: mtypes.BondTriple, 1: mtypes.BondSingle, 2: mtypes.BondDouble, 3: mtypes.BondAromatic,
	}
	for code, bond := range edges {
		got, ok := v.Bond(code)
		require.True(t, ok)
		assert.Equal(t, bond, got)

		back, ok := v.EdgeCode(bond)
		require.True(t, ok)
		assert.Equal(t, code, back)
	}
	_, ok = v.Bond(4)
	assert.False(t, ok)
}

func TestNew_Validation(t *testing.T) {
	cases := []struct {
		name  string
		vname string
		nodes map[int]string
		edges map[int]mtypes.BondType
		code  errors.ErrorCode
	}{
		{"empty name", "", map[int]string{0: "C"}, nil, errors.ErrCodeVocabularyInvalid},
		{"no nodes", "X", nil, nil, errors.ErrCodeVocabularyInvalid},
		{"negative node code", "X", map[int]string{-1: "C"}, nil, errors.ErrCodeVocabularyInvalid},
		{"bad symbol", "X", map[int]string{0: "Xx"}, nil, errors.ErrCodeUnknownElement},
		{"negative edge code", "X", map[int]string{0: "C"}, map[int]mtypes.BondType{-2: mtypes.BondSingle}, errors.ErrCodeVocabularyInvalid},
		{"bad bond", "X", map[int]string{0: "C"}, map[int]mtypes.BondType{0: "IONIC"}, errors.ErrCodeUnknownBondType},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.vname, tc.nodes, tc.edges, false)
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, tc.code), err.Error())
		})
	}
}

func TestNew_CopiesTables(t *testing.T) {
	nodes := map[int]string{0: "C", 1: "O"}
	v, err := New("X", nodes, nil, false)
	require.NoError(t, err)

	nodes[0] = "N"
	got, _ := v.Element(0)
	assert.Equal(t, "C", got)

	dto := v.ToDTO()
	dto.Nodes[1] = "S"
	got, _ = v.Element(1)
	assert.Equal(t, "O", got)
}

func TestNew_RepeatedSymbolReverseLookupUsesLowestCode(t *testing.T) {
	v, err := New("X", map[int]string{4: "C", 2: "C", 7: "O"}, nil, false)
	require.NoError(t, err)
	code, ok := v.NodeCode("C")
	require.True(t, ok)
	assert.Equal(t, 2, code)
	assert.Equal(t, 8, v.NodeWidth())
	assert.Equal(t, 0, v.EdgeWidth())
}

func TestRegistry_Resolve(t *testing.T) {
	r := DefaultRegistry()

	v, err := r.Resolve(PTCFM)
	require.NoError(t, err)
	assert.Equal(t, PTCFM, v.Name())

	_, err = r.Resolve("PTC_MR")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeVocabularyNotFound))
	assert.True(t, errors.IsNotFound(err))
}

func TestRegistry_RegisterDuplicate(t *testing.T) {
	r := DefaultRegistry()
	err := r.Register(NewPTCFM())
	assert.True(t, errors.IsCode(err, errors.ErrCodeVocabularyExists))

	err = r.Register(nil)
	assert.True(t, errors.IsCode(err, errors.ErrCodeVocabularyInvalid))

	_, err = NewRegistry(NewPTCFM(), NewPTCFM())
	assert.True(t, errors.IsCode(err, errors.ErrCodeVocabularyExists))
}

func TestRegistry_NamesSorted(t *testing.T) {
	b, err := New("B", map[int]string{0: "C"}, nil, false)
	require.NoError(t, err)
	a, err := New("A", map[int]string{0: "C"}, nil, false)
	require.NoError(t, err)

	r, err := NewRegistry(b, a)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, r.Names())
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	r := DefaultRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := New(string(rune('a'+i)), map[int]string{0: "C"}, nil, false)
			if err == nil {
				_ = r.Register(v)
			}
			_, _ = r.Resolve(PTCFM)
			_ = r.Names()
		}(i)
	}
	wg.Wait()
	assert.Len(t, r.Names(), 17)
}

func TestFromConfig(t *testing.T) {
	defs := []Definition{{
		Name:   "MUTAG",
		OneHot: true,
		Nodes: []NodeEntry{
			{Code: 0, Symbol: "C"}, {Code: 1, Symbol: "N"}, {Code: 2, Symbol: "O"},
		},
		Edges: []EdgeEntry{
			{Code: 0, Bond: "aromatic"}, {Code: 1, Bond: "SINGLE"},
		},
	}}

	r, err := FromConfig(defs)
	require.NoError(t, err)
	assert.Equal(t, []string{"MUTAG", PTCFM}, r.Names())

	v, err := r.Resolve("MUTAG")
	require.NoError(t, err)
	b, ok := v.Bond(0)
	require.True(t, ok)
	assert.Equal(t, mtypes.BondAromatic, b)
}

func TestFromConfig_Errors(t *testing.T) {
	cases := []struct {
		name string
		def  Definition
		code errors.ErrorCode
	}{
		{"duplicate node", Definition{Name: "X", Nodes: []NodeEntry{{0, "C"}, {0, "O"}}}, errors.ErrCodeVocabularyInvalid},
		{"duplicate edge", Definition{Name: "X", Nodes: []NodeEntry{{0, "C"}}, Edges: []EdgeEntry{{0, "SINGLE"}, {0, "DOUBLE"}}}, errors.ErrCodeVocabularyInvalid},
		{"bad bond", Definition{Name: "X", Nodes: []NodeEntry{{0, "C"}}, Edges: []EdgeEntry{{0, "DATIVE"}}}, errors.ErrCodeUnknownBondType},
		{"builtin name", Definition{Name: PTCFM, Nodes: []NodeEntry{{0, "C"}}}, errors.ErrCodeVocabularyExists},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := FromConfig([]Definition{tc.def})
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, tc.code), err.Error())
		})
	}
}

//Personal.AI order the ending
