package dataset

import (
	"encoding/binary"
	"io"
	"math"
	"strings"

	"github.com/sbinet/npyio"
	"gonum.org/v1/gonum/mat"

	"github.com/turtacn/molgraph/pkg/errors"
)

// array is a decoded .npy payload, widened to float64, row-major.
type array struct {
	data  []float64
	shape []int
}

func (a *array) rank() int { return len(a.shape) }

func (a *array) row(i int) []float64 {
	cols := a.shape[1]
	return a.data[i*cols : (i+1)*cols]
}

func nativeOrder() binary.ByteOrder {
	v := uint16(1)
	if byte(v>>8) == 1 {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// dtype splits a numpy type string such as "<f8" into byte order and kind.
func dtype(descr string) (binary.ByteOrder, string) {
	if descr == "bool" {
		return nativeOrder(), "b1"
	}
	order := nativeOrder()
	switch descr[0] {
	case '<':
		order = binary.LittleEndian
	case '>':
		order = binary.BigEndian
	}
	return order, strings.TrimLeft(descr, "<>|=")
}

// readArray decodes a C-ordered .npy stream of rank 0, 1 or 2.  The header is
// parsed by npyio; the payload is read in one batch.
func readArray(r io.Reader) (*array, error) {
	nr, err := npyio.NewReader(r)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatasetFormatUnsupported, "invalid npy header")
	}
	descr := nr.Header.Descr
	if descr.Fortran {
		return nil, errors.New(errors.ErrCodeDatasetFormatUnsupported, "fortran-ordered arrays are not supported")
	}
	if len(descr.Shape) > 2 {
		return nil, errors.New(errors.ErrCodeDatasetFormatUnsupported, "array rank above 2").
			WithDetailf("shape=%v", descr.Shape)
	}
	if descr.Type == "" {
		return nil, errors.New(errors.ErrCodeDatasetFormatUnsupported, "array dtype missing")
	}

	n := 1
	for _, d := range descr.Shape {
		n *= d
	}
	out := &array{shape: append([]int{}, descr.Shape...), data: make([]float64, n)}

	order, kind := dtype(descr.Type)
	if err := decode(r, order, kind, out.data); err != nil {
		return nil, err
	}
	return out, nil
}

func decode(r io.Reader, order binary.ByteOrder, kind string, dst []float64) error {
	n := len(dst)
	var err error
	switch kind {
	case "f8":
		err = binary.Read(r, order, dst)
	case "f4":
		buf := make([]float32, n)
		if err = binary.Read(r, order, buf); err == nil {
			for i, v := range buf {
				dst[i] = float64(v)
			}
		}
	case "i8":
		buf := make([]int64, n)
		if err = binary.Read(r, order, buf); err == nil {
			for i, v := range buf {
				dst[i] = float64(v)
			}
		}
	case "i4":
		buf := make([]int32, n)
		if err = binary.Read(r, order, buf); err == nil {
			for i, v := range buf {
				dst[i] = float64(v)
			}
		}
	case "u1":
		buf := make([]uint8, n)
		if err = binary.Read(r, order, buf); err == nil {
			for i, v := range buf {
				dst[i] = float64(v)
			}
		}
	case "b1":
		buf := make([]bool, n)
		if err = binary.Read(r, order, buf); err == nil {
			for i, v := range buf {
				if v {
					dst[i] = 1
				}
			}
		}
	default:
		return errors.New(errors.ErrCodeDatasetFormatUnsupported, "unsupported array dtype").
			WithDetailf("dtype=%s", kind)
	}
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeDatasetLoadFailed, "failed to read array payload")
	}
	return nil
}

// writeArray encodes data with the given shape as little-endian float64.
// Rank 2 goes through mat.Dense; rank 1 (including empty) as a slice.
func writeArray(w io.Writer, data []float64, shape ...int) error {
	var err error
	switch {
	case len(shape) == 2 && shape[0] > 0 && shape[1] > 0:
		err = npyio.Write(w, mat.NewDense(shape[0], shape[1], data))
	default:
		err = npyio.Write(w, data)
	}
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeSerialization, "failed to write npy array")
	}
	return nil
}

func isIndex(v float64) bool {
	return v >= 0 && v == math.Trunc(v) && v <= math.MaxInt32
}

//Personal.AI order the ending
