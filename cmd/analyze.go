package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/RyanBlaney/sonido-mood/config"
	"github.com/RyanBlaney/sonido-mood/extraction"
	"github.com/RyanBlaney/sonido-mood/logging"
	"github.com/RyanBlaney/sonido-mood/transcode"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Extract audio features from a file",
	Long: `Decodes an audio file to mono PCM and runs the full feature
extraction chain over it, printing the averaged feature descriptor.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	feats, err := analyzeFile(cmd, cfg, args[0])
	if err != nil {
		return err
	}

	return writeOutput(cfg.OutputFormat, feats)
}

// analyzeFile decodes one file and extracts averaged features from it
func analyzeFile(cmd *cobra.Command, cfg *config.Config, filename string) (extraction.AudioFeatures, error) {
	decoderConfig := transcode.DefaultDecoderConfig()
	decoderConfig.TargetSampleRate = cfg.Audio.SampleRate

	decoder := transcode.NewDecoder(decoderConfig)
	logging.Debug("decoder configured", logging.Fields(decoder.GetConfig()))

	audio, err := decoder.DecodeFile(cmd.Context(), filename)
	if err != nil {
		return extraction.AudioFeatures{}, fmt.Errorf("decode %s: %w", filename, err)
	}

	extractor, err := extraction.NewFeatureExtractor(extraction.Config{
		SampleRate:  cfg.Audio.SampleRate,
		FrameSize:   cfg.Audio.FrameSize,
		HopSize:     cfg.Audio.HopSize,
		PoolSize:    cfg.Audio.PoolSize,
		HistorySize: cfg.Audio.HistorySize,
		EnableMFCC:  cfg.Audio.EnableMFCC,
		MFCCCount:   cfg.Audio.MFCCCount,
	})
	if err != nil {
		return extraction.AudioFeatures{}, err
	}

	pcm := extraction.DownmixInterleaved(audio.PCM, audio.Channels)

	feats, err := extractor.ExtractBuffer(cmd.Context(), pcm)
	if err != nil {
		return extraction.AudioFeatures{}, fmt.Errorf("extract %s: %w", filename, err)
	}

	return feats, nil
}

// writeOutput encodes v to stdout in the configured format
func writeOutput(format string, v any) error {
	switch format {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	default:
		enc := yaml.NewEncoder(os.Stdout)
		defer enc.Close()
		return enc.Encode(v)
	}
}
