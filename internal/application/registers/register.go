// Package registers matches dataset records to their re-embedded counterparts
// by comparing coordinate-register signatures.
//
// A register is an ordered set of points of one dimension.  Its signature is
// the set of all pairwise Euclidean distances between its points, the zero
// self-distances included.  Two registers match when their signatures are
// equal as sets of float64 values.  Equality is exact: registers computed in
// different reference frames, or with rounding noise, will not match.
package registers

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/turtacn/molgraph/pkg/errors"
)

// ─────────────────────────────────────────────────────────────────────────────
// Register
// ─────────────────────────────────────────────────────────────────────────────

// Register is an immutable K×D coordinate matrix.
type Register struct {
	points *mat.Dense
}

// NewRegister validates coords and copies them into a Register.  Every point
// must have the same non-zero dimension and finite components, and at least
// one point is required.
func NewRegister(coords [][]float64) (*Register, error) {
	if len(coords) == 0 {
		return nil, errors.New(errors.ErrCodeRegisterInvalid, "register has no points")
	}
	dim := len(coords[0])
	if dim == 0 {
		return nil, errors.New(errors.ErrCodeRegisterInvalid, "register points have no components")
	}

	data := make([]float64, 0, len(coords)*dim)
	for i, p := range coords {
		if len(p) != dim {
			return nil, errors.New(errors.ErrCodeRegisterInvalid, "register is ragged").
				WithDetailf("point=%d dim=%d want=%d", i, len(p), dim)
		}
		for _, v := range p {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, errors.New(errors.ErrCodeRegisterInvalid, "register coordinate is not finite").
					WithDetailf("point=%d", i)
			}
		}
		data = append(data, p...)
	}
	return &Register{points: mat.NewDense(len(coords), dim, data)}, nil
}

// RegisterFromMatrix copies m into a Register.  Rows are points.
func RegisterFromMatrix(m mat.Matrix) (*Register, error) {
	r, _ := m.Dims()
	coords := make([][]float64, r)
	for i := range coords {
		coords[i] = mat.Row(nil, i, m)
	}
	return NewRegister(coords)
}

// Len returns the number of points.
func (r *Register) Len() int {
	n, _ := r.points.Dims()
	return n
}

// Dim returns the dimension of every point.
func (r *Register) Dim() int {
	_, d := r.points.Dims()
	return d
}

// Point returns a copy of point i.
func (r *Register) Point(i int) []float64 {
	return mat.Row(nil, i, r.points)
}

// Coords returns a copy of all points.
func (r *Register) Coords() [][]float64 {
	out := make([][]float64, r.Len())
	for i := range out {
		out[i] = r.Point(i)
	}
	return out
}

// DistanceMatrix returns the symmetric K×K matrix of Euclidean distances.
func (r *Register) DistanceMatrix() *mat.Dense {
	n := r.Len()
	d := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		pi := r.points.RawRowView(i)
		for j := i + 1; j < n; j++ {
			dist := floats.Distance(pi, r.points.RawRowView(j), 2)
			d.Set(i, j, dist)
			d.Set(j, i, dist)
		}
	}
	return d
}

// Signature returns the set of values of DistanceMatrix.
func (r *Register) Signature() Signature {
	n := r.Len()
	return newSignature(r.DistanceMatrix().RawMatrix().Data[:n*n])
}

// ─────────────────────────────────────────────────────────────────────────────
// Signature
// ─────────────────────────────────────────────────────────────────────────────

// Signature is a set of distances, held sorted and without duplicates.
type Signature struct {
	values []float64
}

func newSignature(distances []float64) Signature {
	vals := append([]float64(nil), distances...)
	sort.Float64s(vals)

	out := vals[:0]
	for i, v := range vals {
		if i == 0 || v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	return Signature{values: out}
}

// Values returns the distinct distances in ascending order.
func (s Signature) Values() []float64 {
	return append([]float64(nil), s.values...)
}

// Len returns the number of distinct distances.
func (s Signature) Len() int { return len(s.values) }

// Equal reports exact set equality.
func (s Signature) Equal(o Signature) bool {
	if len(s.values) != len(o.values) {
		return false
	}
	for i := range s.values {
		if s.values[i] != o.values[i] {
			return false
		}
	}
	return true
}

// key is a hashable form of the signature; equal keys iff Equal.
func (s Signature) key() string {
	var sb strings.Builder
	for i, v := range s.values {
		if i > 0 {
			sb.WriteByte(',')
		}
		if v == 0 {
			v = 0 // fold -0
		}
		sb.WriteString(strconv.FormatUint(math.Float64bits(v), 16))
	}
	return sb.String()
}

//Personal.AI order the ending
