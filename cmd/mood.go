package cmd

import (
	"github.com/spf13/cobra"

	"github.com/RyanBlaney/sonido-mood/mood"
)

var moodCmd = &cobra.Command{
	Use:   "mood <file>",
	Short: "Classify the mood of an audio file",
	Long: `Decodes and analyzes an audio file, scores it against every mood
category, and prints the classification with confidence, keywords and the
full score breakdown.`,
	Args: cobra.ExactArgs(1),
	RunE: runMood,
}

func init() {
	rootCmd.AddCommand(moodCmd)
}

// moodReport is the printable classification result
type moodReport struct {
	File       string             `json:"file" yaml:"file"`
	Mood       string             `json:"mood" yaml:"mood"`
	Confidence float64            `json:"confidence" yaml:"confidence"`
	Keywords   []string           `json:"keywords" yaml:"keywords"`
	Scores     map[string]float64 `json:"scores" yaml:"scores"`
}

func runMood(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	feats, err := analyzeFile(cmd, cfg, args[0])
	if err != nil {
		return err
	}

	engine := mood.NewEngine(mood.Config{
		ConfidenceThreshold: cfg.Mood.ConfidenceThreshold,
		StabilityFactor:     cfg.Mood.StabilityFactor,
		HistorySize:         cfg.Mood.HistorySize,
	})

	detected, confidence := engine.DetectMood(feats)

	scores := make(map[string]float64, len(mood.All()))
	for _, m := range mood.All() {
		scores[m.String()] = mood.Score(m, feats)
	}

	return writeOutput(cfg.OutputFormat, moodReport{
		File:       args[0],
		Mood:       detected.String(),
		Confidence: confidence,
		Keywords:   detected.Keywords(),
		Scores:     scores,
	})
}
