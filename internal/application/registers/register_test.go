package registers

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/turtacn/molgraph/pkg/errors"
)

func TestNewRegister_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		coords [][]float64
	}{
		{"empty", nil},
		{"zero dimension", [][]float64{{}, {}}},
		{"ragged", [][]float64{{0, 0}, {1}}},
		{"nan", [][]float64{{0, math.NaN()}}},
		{"inf", [][]float64{{math.Inf(-1), 0}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRegister(tt.coords)
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.ErrCodeRegisterInvalid))
		})
	}
}

func TestRegister_Accessors(t *testing.T) {
	coords := [][]float64{{0, 0, 0}, {1, 2, 2}}
	r, err := NewRegister(coords)
	require.NoError(t, err)

	assert.Equal(t, 2, r.Len())
	assert.Equal(t, 3, r.Dim())
	assert.Equal(t, []float64{1, 2, 2}, r.Point(1))
	assert.Equal(t, coords, r.Coords())

	coords[1][0] = 99
	assert.Equal(t, 1.0, r.Point(1)[0], "register must copy its input")
}

func TestRegister_DistanceMatrix(t *testing.T) {
	r, err := NewRegister([][]float64{{0, 0}, {3, 4}, {0, 4}})
	require.NoError(t, err)

	want := mat.NewDense(3, 3, []float64{
		0, 5, 4,
		5, 0, 3,
		4, 3, 0,
	})
	assert.True(t, mat.Equal(want, r.DistanceMatrix()))
}

func TestRegister_Signature(t *testing.T) {
	r, err := NewRegister([][]float64{{0, 0}, {1, 0}})
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1}, r.Signature().Values())

	single, err := NewRegister([][]float64{{7, 7}})
	require.NoError(t, err)
	assert.Equal(t, []float64{0}, single.Signature().Values())
}

func TestSignature_InvariantUnderReorderingAndTranslation(t *testing.T) {
	a, err := NewRegister([][]float64{{0, 0}, {1, 0}, {1, 1}})
	require.NoError(t, err)
	b, err := NewRegister([][]float64{{11, 11}, {10, 10}, {11, 10}})
	require.NoError(t, err)

	assert.True(t, a.Signature().Equal(b.Signature()))
	assert.Equal(t, a.Signature().key(), b.Signature().key())
}

func TestSignature_Equal(t *testing.T) {
	s := newSignature([]float64{1, 0, 1, 0})
	assert.Equal(t, 2, s.Len())
	assert.True(t, s.Equal(newSignature([]float64{0, 1})))
	assert.False(t, s.Equal(newSignature([]float64{0, 2})))
	assert.False(t, s.Equal(newSignature([]float64{0, 1, 2})))
	assert.False(t, s.Equal(newSignature([]float64{0, 1 + 1e-15})), "equality is exact")
	assert.Equal(t, newSignature([]float64{0}).key(), newSignature([]float64{math.Copysign(0, -1)}).key())
}

func TestRegisterFromMatrix(t *testing.T) {
	r, err := RegisterFromMatrix(mat.NewDense(2, 2, []float64{0, 0, 1, 0}))
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{0, 0}, {1, 0}}, r.Coords())
}

//Personal.AI order the ending
