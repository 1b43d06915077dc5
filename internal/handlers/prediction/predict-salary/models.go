// internal/handlers/prediction/predict-salary/models.go
package predictsalary

import "salary-predictor/internal/models"

// Input is the validated request body.
type Input = models.Record

type Output = models.PredictionOutput
