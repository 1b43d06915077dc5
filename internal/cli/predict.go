package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"salary-predictor/internal/common/config"
	apphttp "salary-predictor/internal/common/http"
	"salary-predictor/internal/common/logger"
	predictsalary "salary-predictor/internal/handlers/prediction/predict-salary"
	"salary-predictor/internal/models"
	"salary-predictor/internal/pipeline"
	"salary-predictor/internal/pipeline/artifacts"
	"salary-predictor/internal/pipeline/encoder"
	"salary-predictor/internal/pipeline/scorer"
	"salary-predictor/pkg/modelcard"

	urfave "github.com/urfave/cli/v3"
)

const rule = "============================================================"

type runner struct {
	out io.Writer
	cfg *config.Config
	log logger.Logger
}

func (r *runner) printf(format string, args ...interface{}) {
	fmt.Fprintf(r.out, format+"\n", args...)
}

func (r *runner) run(ctx context.Context, cmd *urfave.Command) error {
	rec := recordFromFlags(cmd)
	if err := predictsalary.ValidateRecord(rec); err != nil {
		return err
	}

	card := r.card()

	r.printf(rule)
	r.printf("INTERNATIONAL GRADUATES SALARY PREDICTION")
	r.printf("Using BEST PERFORMING MODEL: %s", card.BestModel)
	r.printf("Selection Criteria: %s (%s)", card.SelectionCriteria, modelcard.FormatMSE(card.Metrics.TestMSE))
	r.printf(rule)

	if cmd.Bool(compareFlag) {
		r.printComparison(card)
	}

	if url := cmd.String(remoteFlag); url != "" {
		client := apphttp.NewClient(cmd.Duration(timeoutFlag))
		return r.remote(ctx, client, url, rec)
	}

	dir := cmd.String(modelsFlag)
	if dir == "" {
		dir = r.cfg.Artifacts.Path
	}
	return r.local(ctx, dir, rec, card)
}

func (r *runner) card() *modelcard.ModelCard {
	if r.cfg.Artifacts.ModelCard == "" {
		return modelcard.Default()
	}
	card, err := modelcard.Load(r.cfg.Artifacts.ModelCard)
	if err != nil {
		r.log.Warn("Using built-in model card", map[string]interface{}{
			"path":  r.cfg.Artifacts.ModelCard,
			"error": err.Error(),
		})
		return modelcard.Default()
	}
	return card
}

func (r *runner) printComparison(card *modelcard.ModelCard) {
	r.printf("")
	r.printf(rule)
	r.printf("VERIFYING BEST MODEL SELECTION")
	r.printf(rule)
	r.printf("Model Performance Comparison:")
	for _, c := range card.Comparison {
		r.printf("%-19s Test MSE = %s, Test R² = %s", c.Name+":", modelcard.FormatMSE(c.TestMSE), modelcard.FormatR2(c.TestR2))
	}
	r.printf("")
	r.printf("SELECTION CRITERIA: %s", card.SelectionCriteria)
	if best, ok := card.Best(); ok {
		r.printf("SELECTED MODEL: %s (MSE: %s)", best.Name, modelcard.FormatMSE(best.TestMSE))
		if best.Name != card.BestModel {
			r.printf("WARNING: model card names %s as best", card.BestModel)
		}
	}
}

func (r *runner) local(ctx context.Context, dir string, rec models.Record, card *modelcard.ModelCard) error {
	loader := artifacts.NewLoader(dir, r.log)
	a, err := loader.Load(ctx)
	if err != nil {
		return fmt.Errorf("load model artifacts from %s: %w", loader.Dir(), err)
	}

	r.printf("")
	r.printf("Model components loaded successfully:")
	r.printf("Model: %s", a.Model.ModelType)
	r.printf("Scaler: %s", a.Scaler.ScalerType)
	r.printf("Features: %d", len(a.FeatureNames))
	r.printf("Categorical columns: %d", len(a.CategoricalColumns))

	predictor := pipeline.New(loader, pipeline.Options{
		Clamp: scorer.ClampPolicy{
			Enabled: r.cfg.Pipeline.Clamp.Enabled,
			Min:     r.cfg.Pipeline.Clamp.Min,
			Max:     r.cfg.Pipeline.Clamp.Max,
		},
		StrictCategories: r.cfg.Pipeline.StrictCategories,
	}, r.log)

	r.printf("Input data created:")
	for _, col := range encoder.CategoricalColumns {
		v, _ := encoder.CategoricalValue(rec, col)
		r.printf("%s: %s", col, v)
	}
	for _, col := range encoder.NumericColumns {
		v, _ := encoder.NumericValue(rec, col)
		r.printf("%s: %g", col, v)
	}

	tr, err := predictor.Trace(ctx, rec)
	if err != nil {
		return fmt.Errorf("prediction failed: %w", err)
	}

	r.printf("After encoding: %d features", len(tr.Encoded.Cells))
	r.printf("Features reordered to match training data: %d features", tr.Aligned.Width())
	for _, u := range tr.Unknown {
		r.printf("Warning: %s %q has no indicator column, scored as all zeros (known: %s)",
			u.Field, u.Value, strings.Join(a.Index.Known(u.Field), ", "))
	}
	r.printf("Input data scaled successfully")
	r.printf("Raw prediction: %s", modelcard.FormatSalary(tr.Result.Raw))
	if tr.Result.Clamped != scorer.BoundNone {
		r.printf("Clamped to %s bound", tr.Result.Clamped)
	}

	r.printProfile(rec, tr.Result.Value, card.DisplayName, card)
	return nil
}

func (r *runner) remote(ctx context.Context, client *apphttp.Client, baseURL string, rec models.Record) error {
	url := strings.TrimRight(baseURL, "/") + "/predict"
	r.printf("")
	r.printf("Requesting prediction from %s", url)

	var out models.PredictionOutput
	if err := client.PostJSON(ctx, url, rec, &out); err != nil {
		var statusErr *apphttp.StatusError
		if errors.As(err, &statusErr) {
			var body struct {
				Detail string `json:"detail"`
			}
			if json.Unmarshal(statusErr.Body, &body) == nil && body.Detail != "" {
				return fmt.Errorf("service returned %d: %s", statusErr.StatusCode, body.Detail)
			}
		}
		return err
	}

	r.printf("Model Performance: %s", out.ModelPerformance)
	r.printProfile(rec, out.PredictedSalary, out.ModelUsed, nil)
	return nil
}

func (r *runner) printProfile(rec models.Record, value float64, modelUsed string, card *modelcard.ModelCard) {
	r.printf("")
	r.printf("Input Profile:")
	r.printf("Education: %s in %s", rec.EducationLevel, rec.FieldOfStudy)
	r.printf("Language: %s", rec.LanguageProficiency)
	r.printf("Visa: %s", rec.VisaType)
	r.printf("University: %s ranking", rec.UniversityRanking)
	r.printf("Region: %s", rec.RegionOfStudy)
	r.printf("Age: %d", rec.Age)
	r.printf("Experience: %d years since graduation", rec.YearsSinceGraduation)
	r.printf("Predicted Annual Salary: %s", modelcard.FormatSalary(value))
	r.printf("Model Used: %s", modelUsed)
	if card != nil {
		r.printf("Model Performance: R² = %s, MSE = %s", modelcard.FormatR2(card.Metrics.TestR2), modelcard.FormatMSE(card.Metrics.TestMSE))
	}
}
