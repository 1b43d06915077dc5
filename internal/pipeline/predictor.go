// Package pipeline composes the artifact loader, encoder, aligner and scorer
// into the single prediction entry point used by the service and the CLI.
package pipeline

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	apperrors "salary-predictor/internal/common/errors"
	"salary-predictor/internal/common/logger"
	"salary-predictor/internal/common/metrics"
	"salary-predictor/internal/models"
	"salary-predictor/internal/pipeline/aligner"
	"salary-predictor/internal/pipeline/artifacts"
	"salary-predictor/internal/pipeline/encoder"
	"salary-predictor/internal/pipeline/scorer"
)

// ArtifactSource is satisfied by *artifacts.Loader.
type ArtifactSource interface {
	Load(ctx context.Context) (*artifacts.Artifacts, error)
	Loaded() bool
	Err() error
}

// ScoreCache stores raw model outputs. Implementations are best effort: the
// predictor logs and ignores their errors.
type ScoreCache interface {
	Get(ctx context.Context, key string) (*models.CachedScore, bool, error)
	Set(ctx context.Context, key string, score models.CachedScore) error
}

// Recorder receives one call per prediction.
type Recorder interface {
	RecordPrediction(ctx context.Context, duration time.Duration, outcome string)
}

type Options struct {
	Clamp scorer.ClampPolicy
	// StrictCategories rejects records whose categorical values have no
	// indicator column instead of scoring them with an all-zero group.
	StrictCategories bool
	Cache            ScoreCache
	Recorder         Recorder
}

// Prediction is the outcome of one Predict call.
type Prediction struct {
	Raw     float64
	Value   float64
	Clamped scorer.Bound
	Unknown []models.UnknownCategory
	Cached  bool
}

// Trace exposes every intermediate stage for the CLI.
type Trace struct {
	Encoded encoder.EncodedRow
	Aligned aligner.AlignedRow
	Unknown []models.UnknownCategory
	Result  scorer.Result
}

type Predictor struct {
	source   ArtifactSource
	scorer   *scorer.Scorer
	strict   bool
	cache    ScoreCache
	recorder Recorder
	logger   logger.Logger
}

func New(source ArtifactSource, opts Options, log logger.Logger) *Predictor {
	return &Predictor{
		source:   source,
		scorer:   scorer.New(opts.Clamp, log),
		strict:   opts.StrictCategories,
		cache:    opts.Cache,
		recorder: opts.Recorder,
		logger:   log.WithFields(map[string]interface{}{"component": "predictor"}),
	}
}

// Ready reports whether the artifacts are loaded.
func (p *Predictor) Ready() bool {
	return p.source.Loaded()
}

// Artifacts returns the loaded artifacts, loading them if needed.
func (p *Predictor) Artifacts(ctx context.Context) (*artifacts.Artifacts, error) {
	return p.source.Load(ctx)
}

// ClampPolicy is the policy applied to every prediction.
func (p *Predictor) ClampPolicy() scorer.ClampPolicy {
	return p.scorer.Policy()
}

// Predict scores an already validated record.
func (p *Predictor) Predict(ctx context.Context, rec models.Record) (*Prediction, error) {
	start := time.Now()

	pred, err := p.predict(ctx, rec)
	p.observe(ctx, start, err)
	if err != nil {
		return nil, err
	}
	return pred, nil
}

func (p *Predictor) predict(ctx context.Context, rec models.Record) (*Prediction, error) {
	a, err := p.source.Load(ctx)
	if err != nil {
		return nil, err
	}

	row, unknown := a.Index.Align(rec)
	if err := p.checkUnknown(unknown); err != nil {
		return nil, err
	}

	raw, cached, err := p.raw(ctx, a, rec, row)
	if err != nil {
		return nil, err
	}

	value, bound := p.scorer.Policy().Apply(raw)
	if bound != scorer.BoundNone {
		metrics.PredictionsClamped.WithLabelValues(string(bound)).Inc()
	}

	return &Prediction{
		Raw:     raw,
		Value:   value,
		Clamped: bound,
		Unknown: unknown,
		Cached:  cached,
	}, nil
}

func (p *Predictor) raw(ctx context.Context, a *artifacts.Artifacts, rec models.Record, row aligner.AlignedRow) (float64, bool, error) {
	if p.cache == nil {
		raw, err := p.scorer.Raw(row, a.Scaler, a.Model)
		return raw, false, err
	}

	key := CacheKey(a.Fingerprint, rec)
	hit, ok, err := p.cache.Get(ctx, key)
	switch {
	case err != nil:
		metrics.PredictionCacheRequests.WithLabelValues("error").Inc()
		p.logger.Warn("Prediction cache read failed", map[string]interface{}{
			"key":   key,
			"error": err,
		})
	case ok:
		metrics.PredictionCacheRequests.WithLabelValues("hit").Inc()
		return hit.Raw, true, nil
	default:
		metrics.PredictionCacheRequests.WithLabelValues("miss").Inc()
	}

	raw, err := p.scorer.Raw(row, a.Scaler, a.Model)
	if err != nil {
		return 0, false, err
	}

	if err := p.cache.Set(ctx, key, models.CachedScore{Raw: raw, ModelType: a.Model.ModelType}); err != nil {
		p.logger.Warn("Prediction cache write failed", map[string]interface{}{
			"key":   key,
			"error": err,
		})
	}
	return raw, false, nil
}

// Trace runs the stages one by one, without the slot index or the cache, and
// returns every intermediate result.
func (p *Predictor) Trace(ctx context.Context, rec models.Record) (*Trace, error) {
	start := time.Now()

	tr, err := p.trace(ctx, rec)
	p.observe(ctx, start, err)
	if err != nil {
		return nil, err
	}
	return tr, nil
}

func (p *Predictor) trace(ctx context.Context, rec models.Record) (*Trace, error) {
	a, err := p.source.Load(ctx)
	if err != nil {
		return nil, err
	}

	encoded := encoder.Encode(rec, a.CategoricalColumns)
	aligned, unknown, err := aligner.Align(encoded, a.FeatureNames)
	if err != nil {
		return nil, err
	}
	if err := p.checkUnknown(unknown); err != nil {
		return nil, err
	}

	res, err := p.scorer.Score(aligned, a.Scaler, a.Model)
	if err != nil {
		return nil, err
	}
	if res.Clamped != scorer.BoundNone {
		metrics.PredictionsClamped.WithLabelValues(string(res.Clamped)).Inc()
	}

	return &Trace{
		Encoded: encoded,
		Aligned: aligned,
		Unknown: unknown,
		Result:  res,
	}, nil
}

func (p *Predictor) checkUnknown(unknown []models.UnknownCategory) error {
	if len(unknown) == 0 {
		return nil
	}

	parts := make([]string, len(unknown))
	for i, u := range unknown {
		metrics.UnknownCategories.WithLabelValues(u.Field).Inc()
		parts[i] = fmt.Sprintf("%s=%q", u.Field, u.Value)
	}

	if p.strict {
		return fmt.Errorf("%w: no indicator column for %s", apperrors.ErrUnknownCategory, strings.Join(parts, ", "))
	}

	p.logger.Warn("Category not seen during training, indicator group left at zero", map[string]interface{}{
		"unknown": unknown,
	})
	return nil
}

func (p *Predictor) observe(ctx context.Context, start time.Time, err error) {
	elapsed := time.Since(start)
	outcome := outcomeOf(err)

	metrics.PredictionsTotal.WithLabelValues(outcome).Inc()
	metrics.PredictionDuration.WithLabelValues(outcome).Observe(elapsed.Seconds())
	if p.recorder != nil {
		p.recorder.RecordPrediction(ctx, elapsed, outcome)
	}
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case apperrors.IsUnavailable(err):
		return metrics.OutcomeUnavailable
	case apperrors.Normalize(err).Code == apperrors.ErrCodeUnknownCategory:
		return metrics.OutcomeRejected
	default:
		return metrics.OutcomeFailed
	}
}

// CacheKey identifies a record scored by one set of artifacts.
func CacheKey(fingerprint string, rec models.Record) string {
	data, _ := json.Marshal(rec)
	sum := sha256.Sum256(data)

	fp := fingerprint
	if len(fp) > 16 {
		fp = fp[:16]
	}
	return fp + ":" + hex.EncodeToString(sum[:16])
}
