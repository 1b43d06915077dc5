package predictsalary

import (
	"encoding/json"
	"fmt"

	apperrors "salary-predictor/internal/common/errors"
	"salary-predictor/internal/common/validation"
	"salary-predictor/internal/models"
)

var inputSchema = validation.MustCompile("PredictionInput", models.RecordSchema())

// payload shadows the integer fields of Input with floats. The schema accepts
// whole numbers written as 28.0, which encoding/json refuses to put in an int.
type payload struct {
	models.Record
	Age                  float64 `json:"age"`
	YearsSinceGraduation float64 `json:"years_since_graduation"`
}

// ValidatePayload checks a raw request body against the input schema and
// decodes it. Unparseable bodies are malformed requests; schema violations
// are invalid input carrying per-field errors.
func ValidatePayload(body []byte) (*Input, error) {
	result, err := inputSchema.ValidateBytes(body)
	if err != nil {
		return nil, apperrors.NewMalformedRequestError(err)
	}
	if !result.Valid {
		return nil, apperrors.NewInvalidInputError(result.Summary(), result.Errors)
	}

	var p payload
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, apperrors.NewInvalidInputError(err.Error(), nil)
	}

	input := p.Record
	input.Age = int(p.Age)
	input.YearsSinceGraduation = int(p.YearsSinceGraduation)
	return &input, nil
}

// ValidateRecord applies the same schema to a record built in code, such as
// one assembled from CLI flags.
func ValidateRecord(rec models.Record) error {
	result, err := inputSchema.ValidateValue(rec)
	if err != nil {
		return fmt.Errorf("validate record: %w", err)
	}
	if !result.Valid {
		return apperrors.NewInvalidInputError(result.Summary(), result.Errors)
	}
	return nil
}
