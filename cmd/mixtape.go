package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/RyanBlaney/sonido-mood/mood"
	"github.com/RyanBlaney/sonido-mood/personality"
	"github.com/RyanBlaney/sonido-mood/recommend"
)

var (
	mixtapeMood  string
	mixtapeLimit int
)

var mixtapeCmd = &cobra.Command{
	Use:   "mixtape <candidates.yaml>",
	Short: "Build a mood-matched mixtape from analyzed candidates",
	Long: `Reads a YAML file of candidate songs with pre-extracted features
(as produced by 'analyze'), ranks them against the target mood, and prints
the assembled mixtape.`,
	Args: cobra.ExactArgs(1),
	RunE: runMixtape,
}

func init() {
	mixtapeCmd.Flags().StringVarP(&mixtapeMood, "mood", "m", "energetic",
		"target mood (energetic, relaxed, happy, melancholic, focused, angry, neutral)")
	mixtapeCmd.Flags().IntVarP(&mixtapeLimit, "limit", "l", 0,
		"maximum number of tracks (0 uses the configured default)")

	rootCmd.AddCommand(mixtapeCmd)
}

func runMixtape(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	target := mood.Mood(mixtapeMood)
	if !target.Valid() {
		return fmt.Errorf("unknown mood %q", mixtapeMood)
	}

	limit := mixtapeLimit
	if limit <= 0 {
		limit = cfg.Recommend.Limit
	}

	songs, err := loadCandidates(args[0])
	if err != nil {
		return err
	}

	engine := recommend.NewEngine(
		personality.NewEngine(0),
		cfg.Recommend.Seed,
	)

	tape, err := engine.BuildMixtape(songs, target, limit)
	if err != nil {
		return err
	}

	return writeOutput(cfg.OutputFormat, tape)
}

// loadCandidates reads candidate songs with features from a YAML file
func loadCandidates(filename string) ([]recommend.Song, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("read candidates: %w", err)
	}

	var songs []recommend.Song
	if err := yaml.Unmarshal(data, &songs); err != nil {
		return nil, fmt.Errorf("parse candidates: %w", err)
	}

	if len(songs) == 0 {
		return nil, fmt.Errorf("no candidates in %s", filename)
	}

	return songs, nil
}
