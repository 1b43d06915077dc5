package scorer

import (
	"errors"
	"math"
	"testing"

	apperrors "salary-predictor/internal/common/errors"
	"salary-predictor/internal/common/logger"
	"salary-predictor/internal/models"
	"salary-predictor/internal/pipeline/aligner"
	"salary-predictor/internal/pipeline/artifacts"
	"salary-predictor/internal/pipeline/encoder"
	"salary-predictor/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubModel struct {
	out float64
	err error
}

func (m stubModel) Predict(x []float64) (float64, error) {
	return m.out, m.err
}

type identityScaler struct{}

func (identityScaler) Transform(x []float64) ([]float64, error) {
	return x, nil
}

type failingScaler struct{}

func (failingScaler) Transform(x []float64) ([]float64, error) {
	return nil, errors.New("shape mismatch")
}

func stubRow() aligner.AlignedRow {
	return aligner.AlignedRow{Columns: []string{"Age"}, Values: []float64{30}}
}

func TestScore_ClampsStubOutput(t *testing.T) {
	tests := []struct {
		name     string
		out      float64
		expected float64
		bound    Bound
	}{
		{name: "below range", out: 0, expected: 20000, bound: BoundLower},
		{name: "above range", out: 1000000, expected: 150000, bound: BoundUpper},
		{name: "within range", out: 75000, expected: 75000, bound: BoundNone},
		{name: "lower edge", out: 20000, expected: 20000, bound: BoundNone},
		{name: "upper edge", out: 150000, expected: 150000, bound: BoundNone},
	}

	s := New(DefaultClampPolicy(), logger.NewTestLogger(t))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := s.Score(stubRow(), identityScaler{}, stubModel{out: tt.out})
			require.NoError(t, err)
			assert.Equal(t, tt.expected, res.Value)
			assert.Equal(t, tt.out, res.Raw)
			assert.Equal(t, tt.bound, res.Clamped)
		})
	}
}

func TestClampPolicy_Disabled(t *testing.T) {
	p := ClampPolicy{Enabled: false, Min: 20000, Max: 150000}

	v, bound := p.Apply(-5)
	assert.Equal(t, -5.0, v)
	assert.Equal(t, BoundNone, bound)

	s := New(p, logger.NewNoOpLogger())
	res, err := s.Score(stubRow(), identityScaler{}, stubModel{out: 1e6})
	require.NoError(t, err)
	assert.Equal(t, 1e6, res.Value)
}

func TestClampPolicy_Custom(t *testing.T) {
	p := ClampPolicy{Enabled: true, Min: 30000, Max: 90000}

	v, bound := p.Apply(25000)
	assert.Equal(t, 30000.0, v)
	assert.Equal(t, BoundLower, bound)

	v, bound = p.Apply(95000)
	assert.Equal(t, 90000.0, v)
	assert.Equal(t, BoundUpper, bound)
}

func TestScore_FailuresAreScoringErrors(t *testing.T) {
	tests := []struct {
		name   string
		scaler Scaler
		model  Model
	}{
		{name: "scaler error", scaler: failingScaler{}, model: stubModel{out: 1}},
		{name: "model error", scaler: identityScaler{}, model: stubModel{err: errors.New("bad shape")}},
		{name: "nan output", scaler: identityScaler{}, model: stubModel{out: math.NaN()}},
		{name: "inf output", scaler: identityScaler{}, model: stubModel{out: math.Inf(1)}},
	}

	s := New(DefaultClampPolicy(), logger.NewTestLogger(t))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Score(stubRow(), tt.scaler, tt.model)
			require.Error(t, err)
			assert.True(t, errors.Is(err, apperrors.ErrScoring))
		})
	}
}

func TestScore_ReferenceArtifacts(t *testing.T) {
	low := models.Record{
		EducationLevel:       models.EducationDiploma,
		FieldOfStudy:         models.FieldArts,
		LanguageProficiency:  models.LanguageBasic,
		VisaType:             models.VisaStudent,
		UniversityRanking:    models.RankingLow,
		RegionOfStudy:        models.RegionEU,
		Age:                  18,
		YearsSinceGraduation: 0,
	}
	high := models.Record{
		EducationLevel:       models.EducationPhD,
		FieldOfStudy:         models.FieldIT,
		LanguageProficiency:  models.LanguageFluent,
		VisaType:             models.VisaPermanentResidency,
		UniversityRanking:    models.RankingHigh,
		RegionOfStudy:        models.RegionCanada,
		Age:                  65,
		YearsSinceGraduation: 40,
	}

	tests := []struct {
		name  string
		rec   models.Record
		raw   float64
		value float64
	}{
		{name: "reference profile", rec: models.ReferenceRecord(), raw: testutil.ReferenceRaw, value: testutil.ReferenceRaw},
		{name: "low profile clamps", rec: low, raw: testutil.LowProfileRaw, value: DefaultMinSalary},
		{name: "high profile", rec: high, raw: testutil.HighProfileRaw, value: testutil.HighProfileRaw},
	}

	model := &artifacts.LinearModel{Coefficients: testutil.Coefficients, Intercept: testutil.Intercept}
	scaler := &artifacts.StandardScaler{Mean: testutil.Mean, Scale: testutil.Scale}
	s := New(DefaultClampPolicy(), logger.NewTestLogger(t))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row, unknown, err := aligner.Align(encoder.Encode(tt.rec, testutil.CategoricalColumns), testutil.FeatureNames)
			require.NoError(t, err)
			require.Empty(t, unknown)

			res, err := s.Score(row, scaler, model)
			require.NoError(t, err)
			assert.InDelta(t, tt.raw, res.Raw, 1e-6)
			assert.InDelta(t, tt.value, res.Value, 1e-6)
		})
	}
}

func TestScore_ShapeMismatchWithRealArtifacts(t *testing.T) {
	model := &artifacts.LinearModel{Coefficients: testutil.Coefficients, Intercept: testutil.Intercept}
	scaler := &artifacts.StandardScaler{Mean: testutil.Mean, Scale: testutil.Scale}
	s := New(DefaultClampPolicy(), logger.NewTestLogger(t))

	_, err := s.Score(stubRow(), scaler, model)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrScoring))
}
