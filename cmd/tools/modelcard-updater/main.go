// cmd/tools/modelcard-updater/main.go
package main

import (
	"context"
	"fmt"
	"os"

	"salary-predictor/internal/common/logger"
	"salary-predictor/internal/pipeline/artifacts"
	"salary-predictor/pkg/modelcard"

	urfave "github.com/urfave/cli/v3"
)

const defaultCardPath = "models/model_card.json"

func main() {
	pathFlag := &urfave.StringFlag{
		Name:  "path",
		Usage: "Path to the model card file",
		Value: defaultCardPath,
	}

	cmd := &urfave.Command{
		Name:  "modelcard-updater",
		Usage: "Maintain the model card shipped with the artifacts",
		Flags: []urfave.Flag{pathFlag},
		Commands: []*urfave.Command{
			{
				Name:  "add",
				Usage: "Add a candidate to the model comparison",
				Flags: []urfave.Flag{
					&urfave.StringFlag{Name: "key", Usage: "Candidate key (e.g., ridge_regression)", Required: true},
					&urfave.StringFlag{Name: "name", Usage: "Display name (e.g., Ridge Regression)", Required: true},
					&urfave.FloatFlag{Name: "mse", Usage: "Test MSE", Required: true},
					&urfave.FloatFlag{Name: "r2", Usage: "Test R²", Required: true},
				},
				Action: func(ctx context.Context, c *urfave.Command) error {
					path := c.String(pathFlag.Name)
					card, err := loadOrDefault(path)
					if err != nil {
						return err
					}
					cand := modelcard.Candidate{
						Key:     c.String("key"),
						Name:    c.String("name"),
						TestMSE: c.Float("mse"),
						TestR2:  c.Float("r2"),
					}
					if err := card.AddCandidate(cand); err != nil {
						return fmt.Errorf("error adding candidate: %w", err)
					}
					if err := card.Save(path); err != nil {
						return err
					}
					fmt.Printf("Added candidate: %s\n", cand.Key)
					return nil
				},
			},
			{
				Name:  "update",
				Usage: "Update a field of the model card",
				Flags: []urfave.Flag{
					&urfave.StringFlag{Name: "field", Usage: "Field to update (displayName, testMSE, ...)", Required: true},
					&urfave.StringFlag{Name: "value", Usage: "New value for the field", Required: true},
				},
				Action: func(ctx context.Context, c *urfave.Command) error {
					path := c.String(pathFlag.Name)
					card, err := modelcard.Load(path)
					if err != nil {
						return fmt.Errorf("failed to load model card: %w", err)
					}
					field, value := c.String("field"), c.String("value")
					if err := card.Set(field, value); err != nil {
						return err
					}
					if err := card.Save(path); err != nil {
						return err
					}
					fmt.Printf("Updated model card field %s to %s\n", field, value)
					return nil
				},
			},
			{
				Name:  "validate",
				Usage: "Validate the model card against its comparison table and the artifacts",
				Flags: []urfave.Flag{
					&urfave.StringFlag{Name: "models", Usage: "Artifact directory to check (optional)"},
				},
				Action: func(ctx context.Context, c *urfave.Command) error {
					card, err := modelcard.Load(c.String(pathFlag.Name))
					if err != nil {
						return fmt.Errorf("failed to load model card: %w", err)
					}
					if err := card.CheckSelection(); err != nil {
						return fmt.Errorf("model card validation failed: %w", err)
					}

					if dir := c.String("models"); dir != "" {
						loader := artifacts.NewLoader(dir, logger.NewStructured("warn", "console", "stderr"))
						a, err := loader.Load(ctx)
						if err != nil {
							return fmt.Errorf("artifact validation failed: %w", err)
						}
						fmt.Printf("Artifacts OK: %s with %d features (fingerprint %.12s)\n",
							a.Model.ModelType, len(a.FeatureNames), a.Fingerprint)
					}

					fmt.Printf("Model card validation passed. %s selected from %d candidates.\n",
						card.BestModel, len(card.Comparison))
					return nil
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func loadOrDefault(path string) (*modelcard.ModelCard, error) {
	card, err := modelcard.Load(path)
	if err == nil {
		return card, nil
	}
	if os.IsNotExist(err) {
		return modelcard.Default(), nil
	}
	return nil, fmt.Errorf("failed to load model card: %w", err)
}
