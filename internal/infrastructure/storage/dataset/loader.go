// Package dataset reads and writes graph datasets stored as NumPy .npy files,
// one directory per graph:
//
//	x.npy           node features, N×F (one-hot or codes) or N (codes)
//	edge_index.npy  2×E endpoint indices
//	edge_attr.npy   optional, E×B or E
//	pos.npy         optional coordinate register, K×D
//
// Nodes are keyed 0..N-1.  edge_index usually lists every bond in both
// directions; the graph collapses the pair into one undirected edge.
package dataset

import (
	"context"
	"io"
	"path"
	"sort"
	"strconv"

	"gonum.org/v1/gonum/mat"

	"github.com/turtacn/molgraph/internal/domain/graph"
	"github.com/turtacn/molgraph/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/molgraph/internal/infrastructure/storage"
	"github.com/turtacn/molgraph/pkg/errors"
)

// File names inside a graph directory.
const (
	FileX         = "x.npy"
	FileEdgeIndex = "edge_index.npy"
	FileEdgeAttr  = "edge_attr.npy"
	FilePos       = "pos.npy"
)

// Metrics receives dataset load observations.
type Metrics interface {
	RecordDatasetLoad(source string, err error)
}

type nopMetrics struct{}

func (nopMetrics) RecordDatasetLoad(string, error) {}

// Loader reads graphs from a storage.Source.
type Loader struct {
	src     storage.Source
	logger  logging.Logger
	metrics Metrics
}

// NewLoader creates a Loader.
func NewLoader(src storage.Source, logger logging.Logger, metrics Metrics) *Loader {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	if metrics == nil {
		metrics = nopMetrics{}
	}
	return &Loader{src: src, logger: logger.Named("dataset"), metrics: metrics}
}

func (l *Loader) read(ctx context.Context, name string) (*array, error) {
	rc, err := l.src.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	a, err := readArray(rc)
	if err != nil {
		var ae *errors.AppError
		if errors.As(err, &ae) {
			detail := "file=" + name
			if ae.Detail != "" {
				detail = ae.Detail + " " + detail
			}
			return nil, ae.WithDetail(detail)
		}
		return nil, err
	}
	return a, nil
}

// LoadGraph reads the graph stored in dir.
func (l *Loader) LoadGraph(ctx context.Context, dir string) (g *graph.Graph[int], err error) {
	defer func() {
		l.metrics.RecordDatasetLoad(l.src.Kind(), err)
		if err != nil {
			l.logger.WithContext(ctx).WithError(err).Warn("graph load failed", logging.String("dir", dir))
		}
	}()

	x, err := l.read(ctx, path.Join(dir, FileX))
	if err != nil {
		return nil, err
	}
	if x.rank() != 1 && x.rank() != 2 {
		return nil, errors.New(errors.ErrCodeDatasetFormatUnsupported, "x must be N or N×F").
			WithDetailf("shape=%v", x.shape)
	}

	ei, err := l.read(ctx, path.Join(dir, FileEdgeIndex))
	if err != nil {
		return nil, err
	}
	numEdges, err := edgeCount(ei)
	if err != nil {
		return nil, err
	}

	attr, err := l.read(ctx, path.Join(dir, FileEdgeAttr))
	switch {
	case errors.IsNotFound(err):
		attr = nil
	case err != nil:
		return nil, err
	case attr.rank() < 1 || attr.rank() > 2 || attr.shape[0] != numEdges:
		return nil, errors.New(errors.ErrCodeDatasetFormatUnsupported, "edge_attr must be E or E×B").
			WithDetailf("shape=%v edges=%d", attr.shape, numEdges)
	}

	g = graph.New[int]()
	for i := 0; i < x.shape[0]; i++ {
		if x.rank() == 1 {
			g.AddNode(i, graph.Scalar(x.data[i]))
		} else {
			g.AddNode(i, graph.Vector(x.row(i)...))
		}
	}
	for e := 0; e < numEdges; e++ {
		u, v := ei.data[e], ei.data[numEdges+e]
		if !isIndex(u) || !isIndex(v) {
			return nil, errors.New(errors.ErrCodeDatasetFormatUnsupported, "edge_index holds a non-index value").
				WithDetailf("edge=%d u=%v v=%v", e, u, v)
		}
		var f graph.Feature
		switch {
		case attr == nil:
			f = graph.Vector()
		case attr.rank() == 1:
			f = graph.Scalar(attr.data[e])
		default:
			f = graph.Vector(attr.row(e)...)
		}
		g.AddEdge(int(u), int(v), f)
	}

	l.logger.WithContext(ctx).Debug("graph loaded",
		logging.String("dir", dir),
		logging.Int("nodes", g.NumNodes()),
		logging.Int("edges", g.NumEdges()),
	)
	return g, nil
}

func edgeCount(ei *array) (int, error) {
	switch {
	case ei.rank() == 2 && ei.shape[0] == 2:
		return ei.shape[1], nil
	case ei.rank() == 1 && ei.shape[0] == 0:
		return 0, nil
	}
	return 0, errors.New(errors.ErrCodeDatasetFormatUnsupported, "edge_index must be 2×E").
		WithDetailf("shape=%v", ei.shape)
}

// LoadCoords reads the coordinate register stored in dir.
func (l *Loader) LoadCoords(ctx context.Context, dir string) (m *mat.Dense, err error) {
	defer func() { l.metrics.RecordDatasetLoad(l.src.Kind(), err) }()

	pos, err := l.read(ctx, path.Join(dir, FilePos))
	if err != nil {
		return nil, err
	}
	if pos.rank() != 2 || pos.shape[0] == 0 || pos.shape[1] == 0 {
		return nil, errors.New(errors.ErrCodeDatasetFormatUnsupported, "pos must be K×D").
			WithDetailf("shape=%v", pos.shape)
	}
	return mat.NewDense(pos.shape[0], pos.shape[1], pos.data), nil
}

// GraphDirs lists the graph directories below root.  Numeric names sort
// numerically, the rest after them lexically.
func (l *Loader) GraphDirs(ctx context.Context, root string) ([]string, error) {
	names, err := l.src.List(ctx, root)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(names, func(i, j int) bool {
		a, errA := strconv.Atoi(names[i])
		b, errB := strconv.Atoi(names[j])
		switch {
		case errA == nil && errB == nil:
			return a < b
		case errA == nil:
			return true
		case errB == nil:
			return false
		}
		return names[i] < names[j]
	})
	dirs := make([]string, len(names))
	for i, n := range names {
		dirs[i] = path.Join(root, n)
	}
	return dirs, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Writing
// ─────────────────────────────────────────────────────────────────────────────

// SaveGraph writes g to dir in the layout LoadGraph reads.  Node keys are
// renumbered 0..N-1 in node order.  All node features must share one shape,
// as must all edge features.
func SaveGraph[K comparable](ctx context.Context, sink storage.Sink, dir string, g *graph.Graph[K]) error {
	nodes := g.Nodes()
	index := make(map[K]int, len(nodes))
	xs := make([]graph.Feature, len(nodes))
	for i, n := range nodes {
		index[n.Key] = i
		xs[i] = n.X
	}
	xData, xShape, err := stack(xs, "x")
	if err != nil {
		return err
	}

	edges := g.Edges()
	ei := make([]float64, 2*len(edges))
	attrs := make([]graph.Feature, len(edges))
	for e, edge := range edges {
		u, okU := index[edge.U]
		v, okV := index[edge.V]
		if !okU || !okV {
			return errors.New(errors.ErrCodeInvalidGraph, "edge endpoint is not a node").
				WithDetailf("edge=(%v, %v)", edge.U, edge.V)
		}
		ei[e], ei[len(edges)+e] = float64(u), float64(v)
		attrs[e] = edge.Attr
	}
	attrData, attrShape, err := stack(attrs, "edge_attr")
	if err != nil {
		return err
	}

	if err := put(ctx, sink, path.Join(dir, FileX), xData, xShape...); err != nil {
		return err
	}
	if err := put(ctx, sink, path.Join(dir, FileEdgeIndex), ei, 2, len(edges)); err != nil {
		return err
	}
	if len(edges) > 0 && len(attrShape) > 0 && attrShape[len(attrShape)-1] > 0 {
		return put(ctx, sink, path.Join(dir, FileEdgeAttr), attrData, attrShape...)
	}
	return nil
}

// SaveCoords writes a coordinate register to dir.
func SaveCoords(ctx context.Context, sink storage.Sink, dir string, m mat.Matrix) error {
	r, c := m.Dims()
	return put(ctx, sink, path.Join(dir, FilePos), mat.DenseCopyOf(m).RawMatrix().Data[:r*c], r, c)
}

// stack lays out features as a 1-D array when every feature is a scalar and
// as a 2-D array otherwise.
func stack(fs []graph.Feature, what string) ([]float64, []int, error) {
	if len(fs) == 0 {
		return nil, []int{0}, nil
	}
	scalar, width := fs[0].IsScalar(), fs[0].Len()
	data := make([]float64, 0, len(fs)*width)
	for i, f := range fs {
		if f.IsScalar() != scalar || f.Len() != width {
			return nil, nil, errors.New(errors.ErrCodeInvalidGraph, "features differ in shape").
				WithDetailf("array=%s index=%d", what, i)
		}
		data = append(data, f.Values()...)
	}
	if scalar {
		return data, []int{len(fs)}, nil
	}
	return data, []int{len(fs), width}, nil
}

func put(ctx context.Context, sink storage.Sink, name string, data []float64, shape ...int) error {
	w, err := sink.Create(ctx, name)
	if err != nil {
		return err
	}
	if err := writeArray(w, data, shape...); err != nil {
		_ = w.Close()
		return err
	}
	return closeErr(w)
}

func closeErr(c io.Closer) error {
	if err := c.Close(); err != nil {
		return errors.Wrap(err, errors.CodeUnknown, "failed to finish dataset file")
	}
	return nil
}

//Personal.AI order the ending
