// Package onehot decodes and encodes one-hot indicator arrays.
//
// Inverse deliberately reports every position equal to 1.0.  It does not
// enforce that exactly one position matches; callers decide what zero or
// several matches mean.
package onehot

import (
	"gonum.org/v1/gonum/mat"

	"github.com/turtacn/molgraph/pkg/errors"
)

// Array is a dense row-major numeric array of arbitrary rank.
type Array struct {
	data  []float64
	shape []int
}

// NewArray wraps data with the given shape.  With no shape the array is 1-D.
// The product of shape must equal len(data).
func NewArray(data []float64, shape ...int) (*Array, error) {
	if len(shape) == 0 {
		shape = []int{len(data)}
	}
	size := 1
	for _, d := range shape {
		if d < 0 {
			return nil, errors.InvalidParam("negative dimension").WithDetailf("shape=%v", shape)
		}
		size *= d
	}
	if size != len(data) {
		return nil, errors.InvalidParam("shape does not match data length").
			WithDetailf("shape=%v len=%d", shape, len(data))
	}
	return &Array{
		data:  append([]float64(nil), data...),
		shape: append([]int(nil), shape...),
	}, nil
}

// Vector returns a 1-D array holding v.
func Vector(v ...float64) *Array {
	return &Array{data: append([]float64(nil), v...), shape: []int{len(v)}}
}

// FromMatrix copies a gonum matrix into a 2-D array.
func FromMatrix(m mat.Matrix) *Array {
	r, c := m.Dims()
	data := make([]float64, 0, r*c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			data = append(data, m.At(i, j))
		}
	}
	return &Array{data: data, shape: []int{r, c}}
}

// Shape returns a copy of the array's dimensions.
func (a *Array) Shape() []int { return append([]int(nil), a.shape...) }

// Rank returns the number of dimensions.
func (a *Array) Rank() int { return len(a.shape) }

// Len returns the number of elements.
func (a *Array) Len() int { return len(a.data) }

// Inverse returns, for every element exactly equal to 1.0, its coordinate
// along axis dim, in row-major order.  No tolerance is applied.  The result
// is empty when nothing matches and may hold several indices.  A dim outside
// [0, rank) fails with ErrCodeBadRequest.
func Inverse(a *Array, dim int) ([]int, error) {
	if dim < 0 || dim >= len(a.shape) {
		return nil, errors.InvalidParam("axis out of range").
			WithDetailf("dim=%d rank=%d", dim, len(a.shape))
	}

	stride := 1
	for _, d := range a.shape[dim+1:] {
		stride *= d
	}
	extent := a.shape[dim]

	out := []int{}
	for i, v := range a.data {
		if v == 1.0 {
			out = append(out, (i/stride)%extent)
		}
	}
	return out, nil
}

// Encode returns a vector of the given width with a single 1.0 at index.
func Encode(index, width int) ([]float64, error) {
	if index < 0 || index >= width {
		return nil, errors.InvalidParam("one-hot index out of range").
			WithDetailf("index=%d width=%d", index, width)
	}
	v := make([]float64, width)
	v[index] = 1.0
	return v, nil
}

//Personal.AI order the ending
