package conversion

import (
	"context"
	"time"

	"github.com/turtacn/molgraph/internal/domain/graph"
	"github.com/turtacn/molgraph/internal/domain/molecule"
	"github.com/turtacn/molgraph/internal/domain/vocabulary"
	"github.com/turtacn/molgraph/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/molgraph/pkg/errors"
	"github.com/turtacn/molgraph/pkg/types/common"
	mtypes "github.com/turtacn/molgraph/pkg/types/molecule"
)

// Service defines the conversion operations exposed to the CLI and HTTP layers.
type Service interface {
	// ReconstructIndexed rebuilds a molecule from an integer-keyed graph, the
	// shape produced by dataset loaders.
	ReconstructIndexed(ctx context.Context, dataset string, g *graph.Graph[int]) (*molecule.Molecule, error)

	// ReconstructKeyed rebuilds a molecule from a string-keyed graph, the
	// shape received over the wire.
	ReconstructKeyed(ctx context.Context, dataset string, g *graph.Graph[string]) (*molecule.Molecule, error)

	// ReconstructBatch rebuilds every graph and reports per-item failures
	// without stopping.
	ReconstructBatch(ctx context.Context, dataset string, graphs []*graph.Graph[int]) common.BatchResponse[mtypes.MoleculeDTO]

	// Encode converts a molecule into the dataset's graph encoding.
	Encode(ctx context.Context, dataset string, m *molecule.Molecule) (*graph.Graph[int], error)

	// Vocabulary resolves a dataset vocabulary.
	Vocabulary(dataset string) (*vocabulary.Vocabulary, error)

	// Datasets lists the registered dataset names.
	Datasets() []string
}

// Metrics receives conversion observations.  *prometheus.GraphMetrics
// satisfies it.
type Metrics interface {
	RecordReconstruction(dataset string, atoms int, duration time.Duration, err error)
	RecordEncoding(dataset string, err error)
}

type nopMetrics struct{}

func (nopMetrics) RecordReconstruction(string, int, time.Duration, error) {}
func (nopMetrics) RecordEncoding(string, error)                           {}

type serviceImpl struct {
	registry *vocabulary.Registry
	logger   logging.Logger
	metrics  Metrics
}

// NewService creates a conversion service over registry.  A nil metrics
// discards observations.
func NewService(registry *vocabulary.Registry, logger logging.Logger, metrics Metrics) Service {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	if metrics == nil {
		metrics = nopMetrics{}
	}
	return &serviceImpl{
		registry: registry,
		logger:   logger.Named("conversion"),
		metrics:  metrics,
	}
}

func (s *serviceImpl) ReconstructIndexed(ctx context.Context, dataset string, g *graph.Graph[int]) (*molecule.Molecule, error) {
	return reconstruct(ctx, s, dataset, g)
}

func (s *serviceImpl) ReconstructKeyed(ctx context.Context, dataset string, g *graph.Graph[string]) (*molecule.Molecule, error) {
	return reconstruct(ctx, s, dataset, g)
}

// reconstruct is the shared body of the Reconstruct methods; Go methods cannot
// carry their own type parameters.
func reconstruct[K comparable](ctx context.Context, s *serviceImpl, dataset string, g *graph.Graph[K]) (*molecule.Molecule, error) {
	log := s.logger.WithContext(ctx).With(logging.Dataset(dataset))
	start := time.Now()

	vocab, err := s.registry.Resolve(dataset)
	if err != nil {
		log.WithError(err).Warn("vocabulary lookup failed")
		s.metrics.RecordReconstruction(dataset, 0, time.Since(start), err)
		return nil, err
	}

	m, err := GraphToMolecule(g, vocab)
	elapsed := time.Since(start)
	if err != nil {
		log.WithError(err).Warn("reconstruction failed")
		s.metrics.RecordReconstruction(dataset, 0, elapsed, err)
		return nil, err
	}

	s.metrics.RecordReconstruction(dataset, m.NumAtoms(), elapsed, nil)
	log.Debug("molecule reconstructed",
		logging.String("molecule_id", m.ID().String()),
		logging.Int(logging.FieldAtoms, m.NumAtoms()),
		logging.Int(logging.FieldBonds, m.NumBonds()),
		logging.Duration("elapsed", elapsed),
	)
	return m, nil
}

func (s *serviceImpl) ReconstructBatch(ctx context.Context, dataset string, graphs []*graph.Graph[int]) common.BatchResponse[mtypes.MoleculeDTO] {
	start := time.Now()
	resp := common.BatchResponse[mtypes.MoleculeDTO]{
		Succeeded: make([]mtypes.MoleculeDTO, 0, len(graphs)),
		Failed:    []common.BatchError{},
	}
	for i, g := range graphs {
		if err := ctx.Err(); err != nil {
			resp.Failed = append(resp.Failed, batchError(i, errors.Wrap(err, errors.ErrCodeServiceUnavailable, "batch cancelled")))
			continue
		}
		m, err := s.ReconstructIndexed(ctx, dataset, g)
		if err != nil {
			resp.Failed = append(resp.Failed, batchError(i, err))
			continue
		}
		resp.Succeeded = append(resp.Succeeded, m.ToDTO())
	}
	resp.TotalProcessed = len(graphs)
	logging.LogOperationDuration(s.logger.WithContext(ctx), "conversion.reconstruct_batch", start,
		logging.Dataset(dataset),
		logging.Int("succeeded", len(resp.Succeeded)),
		logging.Int("failed", len(resp.Failed)),
	)
	return resp
}

func batchError(i int, err error) common.BatchError {
	detail := common.ErrorDetail{Code: string(errors.GetCode(err)), Message: err.Error()}
	var ae *errors.AppError
	if errors.As(err, &ae) {
		detail.Message = ae.Message
		detail.Detail = ae.Detail
	}
	return common.BatchError{Index: i, Error: detail}
}

func (s *serviceImpl) Encode(ctx context.Context, dataset string, m *molecule.Molecule) (*graph.Graph[int], error) {
	log := s.logger.WithContext(ctx).With(logging.Dataset(dataset))

	vocab, err := s.registry.Resolve(dataset)
	if err != nil {
		s.metrics.RecordEncoding(dataset, err)
		log.WithError(err).Warn("vocabulary lookup failed")
		return nil, err
	}

	g, err := MoleculeToGraph(m, vocab)
	s.metrics.RecordEncoding(dataset, err)
	if err != nil {
		log.WithError(err).Warn("encoding failed")
		return nil, err
	}
	log.Debug("molecule encoded", logging.Int("nodes", g.NumNodes()), logging.Int("edges", g.NumEdges()))
	return g, nil
}

func (s *serviceImpl) Vocabulary(dataset string) (*vocabulary.Vocabulary, error) {
	return s.registry.Resolve(dataset)
}

func (s *serviceImpl) Datasets() []string {
	return s.registry.Names()
}

//Personal.AI order the ending
