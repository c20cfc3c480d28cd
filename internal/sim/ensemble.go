package sim

import (
	"context"

	"github.com/san-kum/spheredrop/internal/config"
	"github.com/san-kum/spheredrop/internal/dynamo"
	"golang.org/x/sync/errgroup"
)

// MetricFactory builds a fresh metric set for one run; metrics hold state
// and cannot be shared between goroutines.
type MetricFactory func(*Simulation) []dynamo.Metric

// Ensemble runs several independent scenes concurrently. Each run owns its
// own world, so no state is shared.
type Ensemble struct {
	configs []*config.Config
	metrics MetricFactory
	limit   int
}

func NewEnsemble(configs []*config.Config, metrics MetricFactory) *Ensemble {
	return &Ensemble{configs: configs, metrics: metrics, limit: 4}
}

// SetLimit caps the number of runs in flight. n <= 0 removes the cap.
func (e *Ensemble) SetLimit(n int) {
	if n <= 0 {
		n = -1
	}
	e.limit = n
}

// Run simulates cfg.Loop.Frames steps for every config. Results are in the
// same order as the configs. The first failure cancels the remaining runs.
func (e *Ensemble) Run(ctx context.Context) ([]*dynamo.Result, error) {
	results := make([]*dynamo.Result, len(e.configs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.limit)
	for i, cfg := range e.configs {
		i, cfg := i, cfg
		g.Go(func() error {
			s, err := New(cfg)
			if err != nil {
				return err
			}
			runner := NewSimulator(s)
			if e.metrics != nil {
				for _, m := range e.metrics(s) {
					runner.AddMetric(m)
				}
			}
			res, err := runner.Run(ctx, DefaultRunConfig(cfg.Loop.Frames))
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
