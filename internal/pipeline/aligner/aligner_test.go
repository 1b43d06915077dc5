package aligner

import (
	"errors"
	"strings"
	"testing"

	apperrors "salary-predictor/internal/common/errors"
	"salary-predictor/internal/models"
	"salary-predictor/internal/pipeline/encoder"
	"salary-predictor/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func referenceIndex(t *testing.T) *Index {
	t.Helper()
	idx, err := NewIndex(testutil.FeatureNames, testutil.CategoricalColumns)
	require.NoError(t, err)
	return idx
}

// allRecords enumerates every combination of enum values at a fixed age.
func allRecords() []models.Record {
	var out []models.Record
	for _, edu := range models.EducationLevels {
		for _, field := range models.FieldsOfStudy {
			for _, lang := range models.LanguageProficiencies {
				for _, visa := range models.VisaTypes {
					for _, rank := range models.UniversityRankings {
						for _, region := range models.RegionsOfStudy {
							out = append(out, models.Record{
								EducationLevel:       edu,
								FieldOfStudy:         field,
								LanguageProficiency:  lang,
								VisaType:             visa,
								UniversityRanking:    rank,
								RegionOfStudy:        region,
								Age:                  30,
								YearsSinceGraduation: 5,
							})
						}
					}
				}
			}
		}
	}
	return out
}

func TestAlign_EveryPermutationMatchesFeatureOrder(t *testing.T) {
	idx := referenceIndex(t)
	records := allRecords()
	require.Len(t, records, 4*6*4*4*3*4)

	for _, r := range records {
		encoded := encoder.Encode(r, testutil.CategoricalColumns)
		row, unknown, err := Align(encoded, testutil.FeatureNames)
		require.NoError(t, err)
		require.Empty(t, unknown)
		require.Equal(t, len(testutil.FeatureNames), row.Width())
		require.Equal(t, testutil.FeatureNames, row.Columns)

		var ones int
		for _, v := range row.Values[2:] {
			if v == 1 {
				ones++
			}
		}
		require.Equal(t, len(testutil.CategoricalColumns), ones)

		fast, fastUnknown := idx.Align(r)
		require.Equal(t, row.Values, fast.Values)
		require.Equal(t, row.Columns, fast.Columns)
		require.Empty(t, fastUnknown)
	}
}

func TestAlign_ReferenceRow(t *testing.T) {
	row, unknown, err := Align(encoder.Encode(models.ReferenceRecord(), testutil.CategoricalColumns), testutil.FeatureNames)
	require.NoError(t, err)
	assert.Empty(t, unknown)

	expected := make([]float64, len(testutil.FeatureNames))
	expected[0] = 28
	expected[1] = 3
	for i, name := range testutil.FeatureNames {
		switch name {
		case "Education_Level_Master's", "Field_of_Study_Engineering", "Language_Proficiency_Fluent",
			"Visa_Type_Post-study", "University_Ranking_High", "Region_of_Study_UK":
			expected[i] = 1
		}
	}
	assert.Equal(t, expected, row.Values)
}

func TestAlign_Idempotent(t *testing.T) {
	r := models.ReferenceRecord()

	first, _, err := Align(encoder.Encode(r, testutil.CategoricalColumns), testutil.FeatureNames)
	require.NoError(t, err)
	second, _, err := Align(encoder.Encode(r, testutil.CategoricalColumns), testutil.FeatureNames)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	idx := referenceIndex(t)
	a, _ := idx.Align(r)
	b, _ := idx.Align(r)
	assert.Equal(t, a, b)
}

func TestAlign_UnknownCategoryZeroesGroup(t *testing.T) {
	r := models.ReferenceRecord()
	r.RegionOfStudy = "Mars"

	row, unknown, err := Align(encoder.Encode(r, testutil.CategoricalColumns), testutil.FeatureNames)
	require.NoError(t, err)
	require.Equal(t, []models.UnknownCategory{{Field: "Region_of_Study", Value: "Mars"}}, unknown)
	require.Len(t, row.Values, len(testutil.FeatureNames))

	for i, name := range testutil.FeatureNames {
		if strings.HasPrefix(name, "Region_of_Study_") {
			assert.Equal(t, 0.0, row.Values[i], name)
		}
	}

	fast, fastUnknown := referenceIndex(t).Align(r)
	assert.Equal(t, row.Values, fast.Values)
	assert.Equal(t, unknown, fastUnknown)
}

func TestAlign_DropsExtraAndFillsMissing(t *testing.T) {
	features := []string{"Visa_Type_Work", "Age", "Bonus"}
	row, unknown, err := Align(encoder.Encode(models.ReferenceRecord(), testutil.CategoricalColumns), features)
	require.NoError(t, err)

	assert.Equal(t, features, row.Columns)
	assert.Equal(t, []float64{0, 28, 0}, row.Values)
	// none of the present indicators is in the feature list
	assert.Len(t, unknown, 6)
}

func TestAlign_TextColumnIsScoringError(t *testing.T) {
	features := []string{"Age", "Region_of_Study"}
	encoded := encoder.Encode(models.ReferenceRecord(), []string{"Education_Level"})

	_, _, err := Align(encoded, features)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrScoring))
}

func TestNewIndex(t *testing.T) {
	idx := referenceIndex(t)

	assert.Equal(t, 27, idx.Width())
	assert.Equal(t, testutil.FeatureNames, idx.FeatureNames())

	slot, ok := idx.Slot("Field_of_Study", "Social Sciences")
	require.True(t, ok)
	assert.Equal(t, "Field_of_Study_Social Sciences", testutil.FeatureNames[slot])

	_, ok = idx.Slot("Field_of_Study", "Law")
	assert.False(t, ok)

	assert.Equal(t, []string{"High", "Low", "Medium"}, idx.Known("University_Ranking"))
}

func TestNewIndex_Rejects(t *testing.T) {
	tests := []struct {
		name        string
		features    []string
		categorical []string
	}{
		{
			name:        "duplicate feature",
			features:    []string{"Age", "Age"},
			categorical: []string{"Visa_Type"},
		},
		{
			name:        "unknown categorical column",
			features:    []string{"Age"},
			categorical: []string{"Salary"},
		},
		{
			name:        "duplicate categorical column",
			features:    []string{"Age"},
			categorical: []string{"Visa_Type", "Visa_Type"},
		},
		{
			name:        "text feature",
			features:    []string{"Age", "Visa_Type"},
			categorical: []string{"Region_of_Study"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewIndex(tt.features, tt.categorical)
			assert.Error(t, err)
		})
	}
}
