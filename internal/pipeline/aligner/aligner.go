// Package aligner reconciles encoded rows with the feature list a model was
// trained on.
package aligner

import (
	"fmt"
	"strings"

	apperrors "salary-predictor/internal/common/errors"
	"salary-predictor/internal/models"
	"salary-predictor/internal/pipeline/encoder"
)

// AlignedRow has exactly one value per training feature. Columns[i] names
// Values[i] and equals featureNames[i].
type AlignedRow struct {
	Columns []string
	Values  []float64
}

// Width is the number of columns.
func (r AlignedRow) Width() int {
	return len(r.Values)
}

// Align selects and reorders the encoded columns to featureNames. Features the
// row does not carry are filled with 0 and encoded columns the model does not
// know are dropped. Indicators that were dropped are reported as unknown
// categories, since their whole group ends up zero.
//
// A text column that featureNames asks for cannot be fed to the model; that is
// a schema drift between the artifacts and is returned as a scoring error.
func Align(row encoder.EncodedRow, featureNames []string) (AlignedRow, []models.UnknownCategory, error) {
	byName := make(map[string]encoder.Cell, len(row.Cells))
	for _, c := range row.Cells {
		byName[c.Name] = c
	}

	out := AlignedRow{
		Columns: append([]string(nil), featureNames...),
		Values:  make([]float64, len(featureNames)),
	}

	wanted := make(map[string]bool, len(featureNames))
	for i, name := range featureNames {
		wanted[name] = true

		cell, ok := byName[name]
		if !ok {
			continue
		}
		if !cell.Numeric {
			return AlignedRow{}, nil, fmt.Errorf("%w: feature %q is a non-encoded text column (value %q)",
				apperrors.ErrScoring, name, cell.Text)
		}
		out.Values[i] = cell.Value
	}

	var unknown []models.UnknownCategory
	for _, c := range row.Cells {
		if c.IsIndicator() && !wanted[c.Name] {
			unknown = append(unknown, models.UnknownCategory{Field: c.Field, Value: c.Category})
		}
	}

	return out, unknown, nil
}

type slotKey struct {
	field string
	value string
}

// Index is the load-time mapping from (source column, value) to a fixed slot
// in the feature list. Aligning through it is a direct fill and never builds
// an intermediate row.
type Index struct {
	featureNames []string
	categorical  []string
	numeric      map[string]int
	indicators   map[slotKey]int
	groups       map[string][]string
}

// NewIndex derives the slot mapping. Every feature name must be a numeric
// source column, an indicator of one of categoricalColumns, or an unrelated
// column that stays at zero. Duplicate feature names, categorical columns that
// are not source columns, and features that name a non-encoded categorical
// column are rejected.
func NewIndex(featureNames, categoricalColumns []string) (*Index, error) {
	idx := &Index{
		featureNames: append([]string(nil), featureNames...),
		numeric:      make(map[string]int),
		indicators:   make(map[slotKey]int),
		groups:       make(map[string][]string),
	}

	seenCol := make(map[string]bool, len(categoricalColumns))
	for _, col := range categoricalColumns {
		if !encoder.IsCategorical(col) {
			return nil, fmt.Errorf("categorical column %q is not a categorical source column", col)
		}
		if seenCol[col] {
			return nil, fmt.Errorf("categorical column %q listed twice", col)
		}
		seenCol[col] = true
		idx.categorical = append(idx.categorical, col)
	}

	seen := make(map[string]bool, len(featureNames))
	for i, name := range featureNames {
		if seen[name] {
			return nil, fmt.Errorf("feature %q listed twice", name)
		}
		seen[name] = true

		if encoder.IsNumeric(name) {
			idx.numeric[name] = i
			continue
		}
		if encoder.IsCategorical(name) {
			return nil, fmt.Errorf("feature %q is a categorical column that was not one-hot encoded", name)
		}
		for _, col := range idx.categorical {
			prefix := col + "_"
			if strings.HasPrefix(name, prefix) {
				value := strings.TrimPrefix(name, prefix)
				idx.indicators[slotKey{field: col, value: value}] = i
				idx.groups[col] = append(idx.groups[col], value)
				break
			}
		}
	}

	return idx, nil
}

// FeatureNames returns the feature list the index was built from. Callers
// must not modify it.
func (x *Index) FeatureNames() []string {
	return x.featureNames
}

// Width is len(FeatureNames()).
func (x *Index) Width() int {
	return len(x.featureNames)
}

// Slot returns the position of the indicator for value in field.
func (x *Index) Slot(field, value string) (int, bool) {
	i, ok := x.indicators[slotKey{field: field, value: value}]
	return i, ok
}

// Known lists the values of field that have an indicator, in feature order.
func (x *Index) Known(field string) []string {
	return x.groups[field]
}

// Align fills the row for r. It produces the same result as Encode followed by
// the package-level Align.
func (x *Index) Align(r models.Record) (AlignedRow, []models.UnknownCategory) {
	values := make([]float64, len(x.featureNames))
	for col, i := range x.numeric {
		v, _ := encoder.NumericValue(r, col)
		values[i] = v
	}

	var unknown []models.UnknownCategory
	for _, col := range x.categorical {
		v, _ := encoder.CategoricalValue(r, col)
		i, ok := x.Slot(col, v)
		if !ok {
			unknown = append(unknown, models.UnknownCategory{Field: col, Value: v})
			continue
		}
		values[i] = 1
	}

	return AlignedRow{Columns: x.featureNames, Values: values}, unknown
}
