// Package scorer scales an aligned row, runs the model and applies the
// plausibility clamp.
package scorer

import (
	"fmt"
	"math"

	apperrors "salary-predictor/internal/common/errors"
	"salary-predictor/internal/common/logger"
	"salary-predictor/internal/pipeline/aligner"
)

// Scaler applies a fitted transform. It must not refit.
type Scaler interface {
	Transform(x []float64) ([]float64, error)
}

// Model returns a single prediction for a scaled row.
type Model interface {
	Predict(x []float64) (float64, error)
}

// Bound tells which side of the clamp, if any, a value was truncated to.
type Bound string

const (
	BoundNone  Bound = ""
	BoundLower Bound = "lower"
	BoundUpper Bound = "upper"
)

// Default plausibility range for predicted salaries.
const (
	DefaultMinSalary = 20000.0
	DefaultMaxSalary = 150000.0
)

// ClampPolicy truncates model output to [Min, Max]. A disabled policy passes
// values through.
type ClampPolicy struct {
	Enabled bool
	Min     float64
	Max     float64
}

func DefaultClampPolicy() ClampPolicy {
	return ClampPolicy{Enabled: true, Min: DefaultMinSalary, Max: DefaultMaxSalary}
}

// Apply returns the clamped value and the bound it hit.
func (p ClampPolicy) Apply(v float64) (float64, Bound) {
	if !p.Enabled {
		return v, BoundNone
	}
	switch {
	case v < p.Min:
		return p.Min, BoundLower
	case v > p.Max:
		return p.Max, BoundUpper
	default:
		return v, BoundNone
	}
}

// Result carries the model output before and after clamping.
type Result struct {
	Raw     float64
	Value   float64
	Clamped Bound
}

type Scorer struct {
	policy ClampPolicy
	logger logger.Logger
}

func New(policy ClampPolicy, log logger.Logger) *Scorer {
	return &Scorer{
		policy: policy,
		logger: log.WithFields(map[string]interface{}{"component": "scorer"}),
	}
}

// Policy is the clamp the scorer applies.
func (s *Scorer) Policy() ClampPolicy {
	return s.policy
}

// Score scales row, runs model and clamps the output. Any failure here means
// the artifacts disagree with each other or with the aligner, so it is logged
// as an invariant violation and returned wrapped in ErrScoring.
func (s *Scorer) Score(row aligner.AlignedRow, scaler Scaler, model Model) (Result, error) {
	raw, err := s.Raw(row, scaler, model)
	if err != nil {
		return Result{}, err
	}

	value, bound := s.policy.Apply(raw)
	return Result{Raw: raw, Value: value, Clamped: bound}, nil
}

// Raw runs scaling and inference without the clamp.
func (s *Scorer) Raw(row aligner.AlignedRow, scaler Scaler, model Model) (float64, error) {
	scaled, err := scaler.Transform(row.Values)
	if err != nil {
		return 0, s.fail("scale", row, err)
	}

	raw, err := model.Predict(scaled)
	if err != nil {
		return 0, s.fail("predict", row, err)
	}
	if math.IsNaN(raw) || math.IsInf(raw, 0) {
		return 0, s.fail("predict", row, fmt.Errorf("model returned %v", raw))
	}
	return raw, nil
}

func (s *Scorer) fail(stage string, row aligner.AlignedRow, cause error) error {
	s.logger.Error("Scoring invariant violated", map[string]interface{}{
		"stage":   stage,
		"columns": len(row.Columns),
		"values":  len(row.Values),
		"error":   cause,
	})
	return fmt.Errorf("%w: %s: %v", apperrors.ErrScoring, stage, cause)
}
