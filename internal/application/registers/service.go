package registers

import (
	"context"
	"time"

	"github.com/turtacn/molgraph/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/molgraph/pkg/errors"
	mtypes "github.com/turtacn/molgraph/pkg/types/molecule"
)

// Service runs register matching for the CLI and HTTP layers.
type Service interface {
	// Match matches already-built entries.
	Match(ctx context.Context, processed []Registered, compiled []Identified) Correspondence

	// MatchDTO validates wire entries and matches them.  Every compiled entry
	// needs an ID.
	MatchDTO(ctx context.Context, processed, compiled []mtypes.RegisterEntryDTO) (Correspondence, error)
}

// Metrics receives matching observations.
type Metrics interface {
	RecordRegisterMatch(matched int, duration time.Duration, err error)
}

type nopMetrics struct{}

func (nopMetrics) RecordRegisterMatch(int, time.Duration, error) {}

type serviceImpl struct {
	logger  logging.Logger
	metrics Metrics
}

// NewService returns a register matching Service.
func NewService(logger logging.Logger, metrics Metrics) Service {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	if metrics == nil {
		metrics = nopMetrics{}
	}
	return &serviceImpl{logger: logger.Named("registers"), metrics: metrics}
}

func (s *serviceImpl) Match(ctx context.Context, processed []Registered, compiled []Identified) Correspondence {
	start := time.Now()
	out := Match(processed, compiled)
	matched := out.Matched()

	elapsed := logging.LogOperationDuration(s.logger.WithContext(ctx), "registers.match", start,
		logging.Int("processed", len(processed)),
		logging.Int("compiled", len(compiled)),
		logging.Int("matched", matched),
	)
	s.metrics.RecordRegisterMatch(matched, elapsed, nil)
	return out
}

func (s *serviceImpl) MatchDTO(ctx context.Context, processed, compiled []mtypes.RegisterEntryDTO) (Correspondence, error) {
	p := make([]Registered, 0, len(processed))
	for i, dto := range processed {
		e, err := NewEntry(dto.ID, dto.Coords)
		if err != nil {
			return nil, s.fail(ctx, errors.Wrap(err, errors.CodeUnknown, "invalid processed entry").WithDetailf("index=%d", i))
		}
		p = append(p, e)
	}

	c := make([]Identified, 0, len(compiled))
	for i, dto := range compiled {
		if dto.ID == "" {
			return nil, s.fail(ctx, errors.New(errors.ErrCodeRegisterInvalid, "compiled entry has no id").WithDetailf("index=%d", i))
		}
		e, err := NewEntry(dto.ID, dto.Coords)
		if err != nil {
			return nil, s.fail(ctx, errors.Wrap(err, errors.CodeUnknown, "invalid compiled entry").WithDetailf("index=%d id=%s", i, dto.ID))
		}
		c = append(c, e)
	}

	return s.Match(ctx, p, c), nil
}

func (s *serviceImpl) fail(ctx context.Context, err error) error {
	s.metrics.RecordRegisterMatch(0, 0, err)
	s.logger.WithContext(ctx).WithError(err).Warn("register matching rejected")
	return err
}

//Personal.AI order the ending
