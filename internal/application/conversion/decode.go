package conversion

import (
	"math"

	"github.com/turtacn/molgraph/internal/domain/graph"
	"github.com/turtacn/molgraph/internal/domain/onehot"
	"github.com/turtacn/molgraph/pkg/errors"
)

// decodeCode turns a node or edge feature into a vocabulary code.
//
//   - a scalar feature is the code itself;
//   - a vector feature of a one-hot dataset yields the first position equal
//     to 1.0; if several positions match the first one wins, if none match
//     decoding fails;
//   - a vector feature of a direct-code dataset yields component 0.
//
// Direct codes must be integral.
func decodeCode(f graph.Feature, oneHot bool) (int, error) {
	if f.Len() == 0 {
		return 0, errors.New(errors.ErrCodeFeatureDecodeFailed, "feature is empty")
	}

	if !f.IsScalar() && oneHot {
		idx, err := onehot.Inverse(onehot.Vector(f.Values()...), 0)
		if err != nil {
			return 0, errors.Wrap(err, errors.ErrCodeFeatureDecodeFailed, "failed to decode feature vector")
		}
		if len(idx) == 0 {
			return 0, errors.New(errors.ErrCodeFeatureDecodeFailed, "one-hot vector has no component equal to 1").
				WithDetailf("x=%s", f)
		}
		return idx[0], nil
	}

	v := f.At(0)
	if math.IsNaN(v) || math.IsInf(v, 0) || v != math.Trunc(v) {
		return 0, errors.New(errors.ErrCodeFeatureDecodeFailed, "direct code is not an integer").
			WithDetailf("x=%s", f)
	}
	return int(v), nil
}

//Personal.AI order the ending
