package conversion

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/turtacn/molgraph/internal/domain/graph"
	"github.com/turtacn/molgraph/internal/domain/molecule"
	"github.com/turtacn/molgraph/internal/infrastructure/monitoring/logging"
	mtypes "github.com/turtacn/molgraph/pkg/types/molecule"
)

// ResultCache stores reconstructed molecules.  The redis cache satisfies it.
type ResultCache interface {
	GetOrLoad(ctx context.Context, key string, dest interface{}, load func(context.Context) (interface{}, error)) error
}

// cachedService memoises reconstruction.  Every other operation goes straight
// to the wrapped Service.
type cachedService struct {
	Service
	cache  ResultCache
	logger logging.Logger
}

// NewCachedService wraps svc so that reconstructing an identical graph for the
// same dataset is served from cache.  Cached molecules keep the ID of the
// first reconstruction.  ReconstructBatch is not cached.
func NewCachedService(svc Service, cache ResultCache, logger logging.Logger) Service {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &cachedService{Service: svc, cache: cache, logger: logger.Named("conversion.cache")}
}

func (s *cachedService) ReconstructIndexed(ctx context.Context, dataset string, g *graph.Graph[int]) (*molecule.Molecule, error) {
	return s.reconstruct(ctx, dataset, graph.ToDTO(g), func(ctx context.Context) (*molecule.Molecule, error) {
		return s.Service.ReconstructIndexed(ctx, dataset, g)
	})
}

func (s *cachedService) ReconstructKeyed(ctx context.Context, dataset string, g *graph.Graph[string]) (*molecule.Molecule, error) {
	return s.reconstruct(ctx, dataset, graph.ToDTO(g), func(ctx context.Context) (*molecule.Molecule, error) {
		return s.Service.ReconstructKeyed(ctx, dataset, g)
	})
}

func (s *cachedService) reconstruct(ctx context.Context, dataset string, dto mtypes.GraphDTO, load func(context.Context) (*molecule.Molecule, error)) (*molecule.Molecule, error) {
	key, err := graphKey(dataset, dto)
	if err != nil {
		return load(ctx)
	}

	var cached mtypes.MoleculeDTO
	err = s.cache.GetOrLoad(ctx, key, &cached, func(ctx context.Context) (interface{}, error) {
		m, err := load(ctx)
		if err != nil {
			return nil, err
		}
		return m.ToDTO(), nil
	})
	if err != nil {
		return nil, err
	}

	m, err := molecule.FromDTO(cached)
	if err != nil {
		s.logger.WithContext(ctx).WithError(err).Warn("cached molecule rejected; reconstructing", logging.String("key", key))
		return load(ctx)
	}
	return m, nil
}

// graphKey derives the cache key from the dataset and the wire form of the
// graph.  Node order is part of the key because it fixes atom numbering.
func graphKey(dataset string, dto mtypes.GraphDTO) (string, error) {
	data, err := json.Marshal(dto)
	if err != nil {
		return "", err
	}
	h := sha256.New()
	h.Write([]byte(dataset))
	h.Write([]byte{0})
	h.Write(data)
	return "reconstruct:" + dataset + ":" + hex.EncodeToString(h.Sum(nil)), nil
}

//Personal.AI order the ending
