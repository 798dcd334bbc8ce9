package graph

import (
	"fmt"

	mtypes "github.com/turtacn/molgraph/pkg/types/molecule"
)

// Feature is the value attached to a node (x) or an edge (edge_attr): either a
// direct scalar code or a numeric vector.
type Feature struct {
	values []float64
	scalar bool
}

// Scalar returns a scalar feature holding a direct code.
func Scalar(v float64) Feature {
	return Feature{values: []float64{v}, scalar: true}
}

// Vector returns a vector feature.  The values are copied.
func Vector(v ...float64) Feature {
	return Feature{values: append([]float64{}, v...)}
}

// IsScalar reports whether the feature is a scalar.
func (f Feature) IsScalar() bool { return f.scalar }

// Len returns the number of components; 1 for a scalar.
func (f Feature) Len() int { return len(f.values) }

// At returns component i.
func (f Feature) At(i int) float64 { return f.values[i] }

// Values returns a copy of the components.
func (f Feature) Values() []float64 { return append([]float64{}, f.values...) }

func (f Feature) String() string {
	if f.scalar {
		return fmt.Sprint(f.values[0])
	}
	return fmt.Sprint(f.values)
}

// FeatureFromDTO converts the wire form of a feature.
func FeatureFromDTO(dto mtypes.FeatureDTO) Feature {
	if dto.Scalar && len(dto.Values) == 1 {
		return Scalar(dto.Values[0])
	}
	return Vector(dto.Values...)
}

// ToDTO returns the wire form of the feature.
func (f Feature) ToDTO() mtypes.FeatureDTO {
	return mtypes.FeatureDTO{Values: f.Values(), Scalar: f.scalar}
}

//Personal.AI order the ending
