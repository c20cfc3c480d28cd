package sim

import (
	"context"
	"fmt"

	"github.com/san-kum/spheredrop/internal/dynamo"
)

type RunConfig struct {
	Steps         int
	ValidateState bool
}

func DefaultRunConfig(steps int) RunConfig {
	return RunConfig{Steps: steps, ValidateState: true}
}

// Simulator runs a Simulation headless for a fixed number of steps and
// records every sample.
type Simulator struct {
	sim       *Simulation
	metrics   []dynamo.Metric
	observers []dynamo.Observer
}

func NewSimulator(s *Simulation) *Simulator {
	return &Simulator{
		sim:       s,
		metrics:   make([]dynamo.Metric, 0),
		observers: make([]dynamo.Observer, 0),
	}
}

func (s *Simulator) AddMetric(m dynamo.Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o dynamo.Observer) { s.observers = append(s.observers, o) }
func (s *Simulator) Simulation() *Simulation       { return s.sim }

func (s *Simulator) Run(ctx context.Context, cfg RunConfig) (*dynamo.Result, error) {
	if cfg.Steps <= 0 {
		return nil, fmt.Errorf("steps must be positive, got %d: %w", cfg.Steps, dynamo.ErrParameterBounds)
	}

	result := &dynamo.Result{
		Samples: make([]dynamo.Sample, 0, cfg.Steps+1),
		Metrics: make(map[string]float64),
		Errors:  make([]error, 0),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	s.record(result, s.sim.Sample())

	for i := 0; i < cfg.Steps; i++ {
		select {
		case <-ctx.Done():
			s.collect(result)
			return result, fmt.Errorf("%w: %w", dynamo.ErrContextCanceled, ctx.Err())
		default:
		}

		s.sim.Advance()
		sample := s.sim.Sample()

		if cfg.ValidateState && !sample.IsValid() {
			result.Errors = append(result.Errors, &dynamo.SimulationError{
				Step:    sample.Step,
				Time:    sample.Time,
				Wrapped: dynamo.ErrInvalidState,
			})
			break
		}

		result.StepsTaken++
		s.record(result, sample)
	}

	s.collect(result)
	return result, nil
}

func (s *Simulator) record(result *dynamo.Result, sample dynamo.Sample) {
	for _, m := range s.metrics {
		m.Observe(sample)
	}
	for _, obs := range s.observers {
		obs.OnStep(sample)
	}
	result.Samples = append(result.Samples, sample)
}

func (s *Simulator) collect(result *dynamo.Result) {
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}
