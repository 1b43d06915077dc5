// pkg/modelcard/update.go
package modelcard

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Save writes the card as indented JSON, creating the directory if needed.
func (c *ModelCard) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal model card: %w", err)
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write model card: %w", err)
	}
	return nil
}

// AddCandidate appends a model to the comparison table.
func (c *ModelCard) AddCandidate(cand Candidate) error {
	if cand.Key == "" || cand.Name == "" {
		return fmt.Errorf("candidate key and name are required")
	}
	for _, existing := range c.Comparison {
		if existing.Key == cand.Key {
			return fmt.Errorf("candidate with key %s already exists", cand.Key)
		}
	}
	c.Comparison = append(c.Comparison, cand)
	return nil
}

// Set updates one top-level field by its JSON name.
func (c *ModelCard) Set(field, value string) error {
	switch field {
	case "version":
		c.Version = value
	case "bestModel":
		c.BestModel = value
	case "displayName":
		c.DisplayName = value
	case "selectionCriteria":
		c.SelectionCriteria = value
	case "testR2", "testMSE", "testRMSE":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid %s value: %w", field, err)
		}
		switch field {
		case "testR2":
			c.Metrics.TestR2 = v
		case "testMSE":
			c.Metrics.TestMSE = v
		default:
			c.Metrics.TestRMSE = v
		}
	case "trainingSamples", "testSamples":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid %s value: %w", field, err)
		}
		if field == "trainingSamples" {
			c.Training.TrainingSamples = n
		} else {
			c.Training.TestSamples = n
		}
	default:
		return fmt.Errorf("unknown field: %s", field)
	}
	return nil
}

// CheckSelection verifies that the card's best model is the comparison
// entry with the lowest test MSE and that the headline metrics are that
// entry's.
func (c *ModelCard) CheckSelection() error {
	best, ok := c.Best()
	if !ok {
		return nil
	}
	if best.Name != c.BestModel {
		return fmt.Errorf("bestModel is %q but %q has the lowest test MSE (%s)",
			c.BestModel, best.Name, FormatMSE(best.TestMSE))
	}
	if best.TestMSE != c.Metrics.TestMSE || best.TestR2 != c.Metrics.TestR2 {
		return fmt.Errorf("metrics (R² %s, MSE %s) do not match comparison entry %s (R² %s, MSE %s)",
			FormatR2(c.Metrics.TestR2), FormatMSE(c.Metrics.TestMSE),
			best.Key, FormatR2(best.TestR2), FormatMSE(best.TestMSE))
	}
	return nil
}
