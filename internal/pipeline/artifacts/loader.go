package artifacts

import (
	"context"
	"crypto/sha256"
	"embed"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	apperrors "salary-predictor/internal/common/errors"
	"salary-predictor/internal/common/logger"
	"salary-predictor/internal/common/metrics"
	"salary-predictor/internal/common/validation"
	"salary-predictor/internal/pipeline/aligner"
)

//go:embed schemas/*.json
var schemaFS embed.FS

var schemas = map[string]*validation.Schema{
	ModelFile:              mustSchema("model.schema.json"),
	ScalerFile:             mustSchema("scaler.schema.json"),
	FeatureNamesFile:       mustSchema("feature_names.schema.json"),
	CategoricalColumnsFile: mustSchema("categorical_columns.schema.json"),
}

func mustSchema(name string) *validation.Schema {
	data, err := schemaFS.ReadFile("schemas/" + name)
	if err != nil {
		panic(err)
	}
	return validation.MustCompile(name, data)
}

// Observer is notified once per load attempt.
type Observer interface {
	RecordArtifactLoad(ctx context.Context, err error)
}

type Option func(*Loader)

// WithObserver reports the load outcome to o.
func WithObserver(o Observer) Option {
	return func(l *Loader) {
		l.observer = o
	}
}

type state struct {
	artifacts *Artifacts
	err       error
}

// Loader reads the artifact directory at most once per process. The first
// Load builds a complete Artifacts value and publishes it with a single
// pointer store, so concurrent callers never see a partial result. The
// outcome is sticky: after a failure every Load returns the same error
// without touching the filesystem again.
type Loader struct {
	dir      string
	logger   logger.Logger
	observer Observer

	once  sync.Once
	state atomic.Pointer[state]
}

func NewLoader(dir string, log logger.Logger, opts ...Option) *Loader {
	l := &Loader{
		dir:    dir,
		logger: log.WithFields(map[string]interface{}{"component": "artifact-loader"}),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Dir is the artifact directory the loader reads from.
func (l *Loader) Dir() string {
	return l.dir
}

// Load returns the cached artifacts, loading them on the first call.
func (l *Loader) Load(ctx context.Context) (*Artifacts, error) {
	if s := l.state.Load(); s != nil {
		return s.artifacts, s.err
	}

	l.once.Do(func() {
		start := time.Now()
		a, err := l.load()
		l.record(ctx, err, time.Since(start))
		l.state.Store(&state{artifacts: a, err: err})
	})

	s := l.state.Load()
	return s.artifacts, s.err
}

// Loaded reports whether a load has succeeded.
func (l *Loader) Loaded() bool {
	s := l.state.Load()
	return s != nil && s.artifacts != nil
}

// Err returns the sticky load error, or nil when nothing has failed yet.
func (l *Loader) Err() error {
	if s := l.state.Load(); s != nil {
		return s.err
	}
	return nil
}

func (l *Loader) record(ctx context.Context, err error, elapsed time.Duration) {
	if l.observer != nil {
		l.observer.RecordArtifactLoad(ctx, err)
	}

	if err != nil {
		code := apperrors.Normalize(err).Code
		metrics.ArtifactsLoaded.Set(0)
		metrics.ArtifactLoadFailures.WithLabelValues(string(code)).Inc()
		l.logger.Error("Failed to load model components", map[string]interface{}{
			"dir":       l.dir,
			"errorCode": string(code),
			"error":     err,
		})
		return
	}

	metrics.ArtifactsLoaded.Set(1)
	l.logger.Info("Model components loaded successfully", map[string]interface{}{
		"dir":        l.dir,
		"durationMs": elapsed.Milliseconds(),
	})
}

func (l *Loader) load() (*Artifacts, error) {
	var missing []string
	for _, name := range Files {
		if _, err := os.Stat(filepath.Join(l.dir, name)); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				l.logger.Warn("Artifact not accessible", map[string]interface{}{
					"file":  name,
					"error": err,
				})
			}
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s not found in %s",
			apperrors.ErrArtifactMissing, strings.Join(missing, ", "), l.dir)
	}

	hash := sha256.New()
	a := &Artifacts{
		Model:  &LinearModel{},
		Scaler: &StandardScaler{},
	}
	targets := map[string]interface{}{
		ModelFile:              a.Model,
		ScalerFile:             a.Scaler,
		FeatureNamesFile:       &a.FeatureNames,
		CategoricalColumnsFile: &a.CategoricalColumns,
	}

	for _, name := range Files {
		data, err := os.ReadFile(filepath.Join(l.dir, name))
		if err != nil {
			return nil, fmt.Errorf("%w: read %s: %v", apperrors.ErrArtifactCorrupt, name, err)
		}
		if err := decode(name, data, targets[name]); err != nil {
			return nil, err
		}
		hash.Write([]byte(name))
		hash.Write(data)
	}

	if err := a.validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrArtifactCorrupt, err)
	}

	idx, err := aligner.NewIndex(a.FeatureNames, a.CategoricalColumns)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrArtifactCorrupt, err)
	}
	a.Index = idx
	a.Fingerprint = hex.EncodeToString(hash.Sum(nil))
	a.LoadedAt = time.Now().UTC()

	l.logger.Debug("Artifacts decoded", map[string]interface{}{
		"modelType":          a.Model.ModelType,
		"features":           len(a.FeatureNames),
		"categoricalColumns": a.CategoricalColumns,
		"fingerprint":        a.Fingerprint,
	})

	return a, nil
}

func decode(name string, data []byte, target interface{}) error {
	result, err := schemas[name].ValidateBytes(data)
	if err != nil {
		return fmt.Errorf("%w: %s is not valid JSON: %v", apperrors.ErrArtifactCorrupt, name, err)
	}
	if !result.Valid {
		return fmt.Errorf("%w: %s: %s", apperrors.ErrArtifactCorrupt, name, result.Summary())
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("%w: decode %s: %v", apperrors.ErrArtifactCorrupt, name, err)
	}
	return nil
}
