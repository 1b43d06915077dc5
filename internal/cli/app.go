// Package cli implements the predict-salary command: it scores one profile
// given as flags, either locally against the artifact directory or through a
// running salary-api.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"salary-predictor/internal/common/config"
	"salary-predictor/internal/common/logger"
	"salary-predictor/internal/models"

	urfave "github.com/urfave/cli/v3"
)

const (
	educationLevelFlag       = "education-level"
	fieldOfStudyFlag         = "field-of-study"
	languageProficiencyFlag  = "language-proficiency"
	visaTypeFlag             = "visa-type"
	universityRankingFlag    = "university-ranking"
	regionOfStudyFlag        = "region-of-study"
	ageFlag                  = "age"
	yearsSinceGraduationFlag = "years-since-graduation"

	modelsFlag  = "models"
	configFlag  = "config"
	debugFlag   = "debug"
	compareFlag = "compare"
	remoteFlag  = "remote"
	timeoutFlag = "timeout"
)

var version = "v1.0.0"

// Execute runs the command with the process arguments and exits 1 on error.
func Execute() {
	cmd := NewCommand(os.Stdout)
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// NewCommand builds the command. Progress is written to out.
func NewCommand(out io.Writer) *urfave.Command {
	ref := models.ReferenceRecord()
	r := &runner{out: out}

	return &urfave.Command{
		Name:    "predict-salary",
		Version: version,
		Usage:   "Predict the annual salary of an international graduate",
		Writer:  out,
		Flags: []urfave.Flag{
			&urfave.StringFlag{Name: educationLevelFlag, Usage: "Education level", Value: ref.EducationLevel},
			&urfave.StringFlag{Name: fieldOfStudyFlag, Usage: "Field of study", Value: ref.FieldOfStudy},
			&urfave.StringFlag{Name: languageProficiencyFlag, Usage: "Language proficiency", Value: ref.LanguageProficiency},
			&urfave.StringFlag{Name: visaTypeFlag, Usage: "Visa type", Value: ref.VisaType},
			&urfave.StringFlag{Name: universityRankingFlag, Usage: "University ranking", Value: ref.UniversityRanking},
			&urfave.StringFlag{Name: regionOfStudyFlag, Usage: "Region of study", Value: ref.RegionOfStudy},
			&urfave.IntFlag{Name: ageFlag, Usage: "Age in years (18-65)", Value: int64(ref.Age)},
			&urfave.IntFlag{Name: yearsSinceGraduationFlag, Usage: "Years since graduation (0-40)", Value: int64(ref.YearsSinceGraduation)},
			&urfave.StringFlag{
				Name:  modelsFlag,
				Usage: "Artifact directory (optional, defaults to artifacts.path from the config)",
			},
			&urfave.StringFlag{
				Name:  configFlag,
				Usage: "Path to a config file (optional, defaults to configs/config.yaml when present)",
			},
			&urfave.BoolFlag{
				Name:  debugFlag,
				Usage: "Prints verbose logs (optional, default: false)",
			},
			&urfave.BoolFlag{
				Name:  compareFlag,
				Usage: "Prints the model comparison used to select the best model",
			},
			&urfave.StringFlag{
				Name:  remoteFlag,
				Usage: "Base URL of a running salary-api; scores remotely instead of loading artifacts",
			},
			&urfave.DurationFlag{
				Name:  timeoutFlag,
				Usage: "Request timeout for --remote",
				Value: 10 * time.Second,
			},
		},
		Before: func(ctx context.Context, cmd *urfave.Command) (context.Context, error) {
			level := "warn"
			if cmd.Bool(debugFlag) {
				level = "debug"
			}
			r.log = logger.NewStructured(level, "console", "stderr")

			cfg, err := loadConfig(cmd.String(configFlag))
			if err != nil {
				return ctx, err
			}
			r.cfg = cfg
			return ctx, nil
		},
		Action: r.run,
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFromFile(path)
	}
	return config.Load()
}

func recordFromFlags(cmd *urfave.Command) models.Record {
	return models.Record{
		EducationLevel:       cmd.String(educationLevelFlag),
		FieldOfStudy:         cmd.String(fieldOfStudyFlag),
		LanguageProficiency:  cmd.String(languageProficiencyFlag),
		VisaType:             cmd.String(visaTypeFlag),
		UniversityRanking:    cmd.String(universityRankingFlag),
		RegionOfStudy:        cmd.String(regionOfStudyFlag),
		Age:                  int(cmd.Int(ageFlag)),
		YearsSinceGraduation: int(cmd.Int(yearsSinceGraduationFlag)),
	}
}
