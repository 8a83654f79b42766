package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config represents the full analysis configuration
type Config struct {
	// Application settings
	Verbose      bool   `mapstructure:"verbose"`
	LogLevel     string `mapstructure:"log_level"`
	OutputFormat string `mapstructure:"output_format"`

	// Audio analysis configuration
	Audio AudioConfig `mapstructure:"audio"`

	// Mood engine configuration
	Mood MoodConfig `mapstructure:"mood"`

	// Personality engine configuration
	Personality PersonalityConfig `mapstructure:"personality"`

	// Recommendation engine configuration
	Recommend RecommendConfig `mapstructure:"recommend"`
}

// AudioConfig contains frame geometry and extraction settings
type AudioConfig struct {
	SampleRate  int     `mapstructure:"sample_rate"`
	FrameSize   int     `mapstructure:"frame_size"`
	HopSize     int     `mapstructure:"hop_size"`
	PoolSize    int     `mapstructure:"pool_size"`
	HistorySize int     `mapstructure:"history_size"`
	EnableMFCC  bool    `mapstructure:"enable_mfcc"`
	MFCCCount   int     `mapstructure:"mfcc_count"`
	TempoMinBPM float64 `mapstructure:"tempo_min_bpm"`
	TempoMaxBPM float64 `mapstructure:"tempo_max_bpm"`
}

// MoodConfig contains mood engine thresholds
type MoodConfig struct {
	ConfidenceThreshold float64 `mapstructure:"confidence_threshold"`
	StabilityFactor     float64 `mapstructure:"stability_factor"`
	HistorySize         int     `mapstructure:"history_size"`
}

// PersonalityConfig contains personality engine settings
type PersonalityConfig struct {
	CooldownSeconds int `mapstructure:"cooldown_seconds"`
}

// RecommendConfig contains recommendation engine settings
type RecommendConfig struct {
	Limit int   `mapstructure:"limit"`
	Seed  int64 `mapstructure:"seed"`
}

// LoadConfig loads configuration from viper
func LoadConfig() (*Config, error) {
	config := &Config{}

	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("unable to decode configuration: %w", err)
	}

	return config, nil
}

// ValidateConfig validates the configuration
func ValidateConfig(config *Config) error {
	if config.Audio.SampleRate <= 0 {
		return fmt.Errorf("audio sample rate must be positive")
	}

	if config.Audio.FrameSize <= 0 || config.Audio.FrameSize&(config.Audio.FrameSize-1) != 0 {
		return fmt.Errorf("audio frame size must be a power of two")
	}

	if config.Audio.HopSize <= 0 {
		return fmt.Errorf("audio hop size must be positive")
	}

	if config.Audio.TempoMinBPM >= config.Audio.TempoMaxBPM {
		return fmt.Errorf("tempo range is empty: min %v >= max %v",
			config.Audio.TempoMinBPM, config.Audio.TempoMaxBPM)
	}

	if config.Mood.ConfidenceThreshold < 0 || config.Mood.ConfidenceThreshold > 1 {
		return fmt.Errorf("mood confidence threshold must be between 0 and 1")
	}

	if config.Mood.StabilityFactor < 0 || config.Mood.StabilityFactor > 1 {
		return fmt.Errorf("mood stability factor must be between 0 and 1")
	}

	if config.Personality.CooldownSeconds < 0 {
		return fmt.Errorf("personality cooldown cannot be negative")
	}

	return nil
}
