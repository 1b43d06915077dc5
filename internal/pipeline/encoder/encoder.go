// Package encoder turns a Record into a single one-hot encoded row named
// after the training-time source columns.
package encoder

import (
	"salary-predictor/internal/models"
)

// Training-time source column names.
const (
	ColEducationLevel       = "Education_Level"
	ColFieldOfStudy         = "Field_of_Study"
	ColLanguageProficiency  = "Language_Proficiency"
	ColVisaType             = "Visa_Type"
	ColUniversityRanking    = "University_Ranking"
	ColRegionOfStudy        = "Region_of_Study"
	ColAge                  = "Age"
	ColYearsSinceGraduation = "Years_Since_Graduation"
)

// CategoricalColumns are the source columns holding enum values, in source
// order. A model's categorical column list must be a subset of these.
var CategoricalColumns = []string{
	ColEducationLevel,
	ColFieldOfStudy,
	ColLanguageProficiency,
	ColVisaType,
	ColUniversityRanking,
	ColRegionOfStudy,
}

// NumericColumns pass through encoding unchanged.
var NumericColumns = []string{ColAge, ColYearsSinceGraduation}

// IsCategorical reports whether name is one of the categorical source columns.
func IsCategorical(name string) bool {
	for _, c := range CategoricalColumns {
		if c == name {
			return true
		}
	}
	return false
}

// IsNumeric reports whether name is one of the numeric source columns.
func IsNumeric(name string) bool {
	return name == ColAge || name == ColYearsSinceGraduation
}

// IndicatorName is the one-hot column name for a categorical value.
func IndicatorName(field, value string) string {
	return field + "_" + value
}

// CategoricalValue returns the record's value for a categorical source
// column.
func CategoricalValue(r models.Record, column string) (string, bool) {
	switch column {
	case ColEducationLevel:
		return r.EducationLevel, true
	case ColFieldOfStudy:
		return r.FieldOfStudy, true
	case ColLanguageProficiency:
		return r.LanguageProficiency, true
	case ColVisaType:
		return r.VisaType, true
	case ColUniversityRanking:
		return r.UniversityRanking, true
	case ColRegionOfStudy:
		return r.RegionOfStudy, true
	}
	return "", false
}

// NumericValue returns the record's value for a numeric source column.
func NumericValue(r models.Record, column string) (float64, bool) {
	switch column {
	case ColAge:
		return float64(r.Age), true
	case ColYearsSinceGraduation:
		return float64(r.YearsSinceGraduation), true
	}
	return 0, false
}

// Cell is one column of an encoded row. Categorical source columns that were
// not one-hot encoded keep their text value and are not numeric.
type Cell struct {
	Name    string
	Value   float64
	Text    string
	Numeric bool

	// Set on indicator cells: the source column and category they expand.
	Field    string
	Category string
}

// IsIndicator reports whether the cell came from one-hot expansion.
func (c Cell) IsIndicator() bool {
	return c.Field != ""
}

// EncodedRow is the ordered result of encoding one record.
type EncodedRow struct {
	Cells []Cell
}

// Columns lists the column names in order.
func (r EncodedRow) Columns() []string {
	out := make([]string, len(r.Cells))
	for i, c := range r.Cells {
		out[i] = c.Name
	}
	return out
}

// Lookup finds a column by name.
func (r EncodedRow) Lookup(name string) (Cell, bool) {
	for _, c := range r.Cells {
		if c.Name == name {
			return c, true
		}
	}
	return Cell{}, false
}

// Encode builds the row. Columns that are not expanded keep source order and
// come first; indicator columns follow, one per expanded field, in the order
// of categoricalColumns. Only the indicator for the present value is emitted;
// the aligner backfills the rest of each group with zero. Names in
// categoricalColumns that are not categorical source columns are ignored.
func Encode(r models.Record, categoricalColumns []string) EncodedRow {
	expand := make(map[string]bool, len(categoricalColumns))
	for _, c := range categoricalColumns {
		if IsCategorical(c) {
			expand[c] = true
		}
	}

	cells := make([]Cell, 0, len(CategoricalColumns)+len(NumericColumns))
	for _, col := range CategoricalColumns {
		if expand[col] {
			continue
		}
		v, _ := CategoricalValue(r, col)
		cells = append(cells, Cell{Name: col, Text: v})
	}
	for _, col := range NumericColumns {
		v, _ := NumericValue(r, col)
		cells = append(cells, Cell{Name: col, Value: v, Numeric: true})
	}

	seen := make(map[string]bool, len(expand))
	for _, col := range categoricalColumns {
		if !expand[col] || seen[col] {
			continue
		}
		seen[col] = true

		v, _ := CategoricalValue(r, col)
		cells = append(cells, Cell{
			Name:     IndicatorName(col, v),
			Value:    1,
			Numeric:  true,
			Field:    col,
			Category: v,
		})
	}

	return EncodedRow{Cells: cells}
}
