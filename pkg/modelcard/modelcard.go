// pkg/modelcard/modelcard.go
package modelcard

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Default is the card of the linear regression shipped in models/.
func Default() *ModelCard {
	return &ModelCard{
		Version:           "1.0.0",
		BestModel:         "Linear Regression",
		DisplayName:       "Linear Regression (Best Performing)",
		SelectionCriteria: "Lowest Test MSE (Least Loss)",
		Metrics: Metrics{
			TestR2:   0.8877,
			TestMSE:  36009030,
			TestRMSE: 6000.75,
		},
		Comparison: []Candidate{
			{Key: "linear_regression", Name: "Linear Regression", TestMSE: 36009030, TestR2: 0.8877},
			{Key: "random_forest", Name: "Random Forest", TestMSE: 36058265, TestR2: 0.8875},
			{Key: "sgd_regressor", Name: "SGD Regressor", TestMSE: 36202098, TestR2: 0.8871},
			{Key: "decision_tree", Name: "Decision Tree", TestMSE: 36682082, TestR2: 0.8856},
		},
		Training: Training{
			TrainingSamples: 125315,
			TestSamples:     31329,
		},
	}
}

// Load reads a card from a JSON file.
func Load(path string) (*ModelCard, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var card ModelCard
	if err := json.Unmarshal(data, &card); err != nil {
		return nil, fmt.Errorf("decode model card %s: %w", path, err)
	}
	if err := card.Validate(); err != nil {
		return nil, fmt.Errorf("model card %s: %w", path, err)
	}
	return &card, nil
}

func (c *ModelCard) Validate() error {
	if c.BestModel == "" {
		return errors.New("bestModel is required")
	}
	if c.DisplayName == "" {
		c.DisplayName = c.BestModel
	}
	if c.Metrics.TestMSE < 0 || c.Metrics.TestRMSE < 0 {
		return errors.New("metrics must not be negative")
	}
	seen := make(map[string]bool, len(c.Comparison))
	for _, cand := range c.Comparison {
		if cand.Key == "" {
			return errors.New("comparison entry without key")
		}
		if seen[cand.Key] {
			return fmt.Errorf("comparison key %q listed twice", cand.Key)
		}
		seen[cand.Key] = true
	}
	return nil
}

// Best returns the candidate with the lowest test MSE.
func (c *ModelCard) Best() (Candidate, bool) {
	if len(c.Comparison) == 0 {
		return Candidate{}, false
	}
	best := c.Comparison[0]
	for _, cand := range c.Comparison[1:] {
		if cand.TestMSE < best.TestMSE {
			best = cand
		}
	}
	return best, true
}

// FormatMSE renders an error value with thousands separators.
func FormatMSE(v float64) string {
	return printer.Sprintf("%d", int64(v+0.5))
}

// FormatSalary renders an amount in dollars with two decimals, e.g.
// "$61,163.49".
func FormatSalary(v float64) string {
	return printer.Sprintf("$%.2f", v)
}

// FormatR2 renders a coefficient of determination with four decimals.
func FormatR2(v float64) string {
	return fmt.Sprintf("%.4f", v)
}

// VarianceExplained is R² as a percentage, e.g. "88.77%".
func (c *ModelCard) VarianceExplained() string {
	return fmt.Sprintf("%.2f%%", c.Metrics.TestR2*100)
}

// PerformanceSummary is the one-line performance reported with predictions.
func (c *ModelCard) PerformanceSummary() string {
	return fmt.Sprintf("R²: %s, MSE: %s (Lowest Loss)", FormatR2(c.Metrics.TestR2), FormatMSE(c.Metrics.TestMSE))
}

// TestPerformanceSummary is PerformanceSummary labelled with the split.
func (c *ModelCard) TestPerformanceSummary() string {
	return fmt.Sprintf("Test R²: %s, Test MSE: %s (Lowest Loss)", FormatR2(c.Metrics.TestR2), FormatMSE(c.Metrics.TestMSE))
}
