package config

import (
	"github.com/spf13/viper"
)

// SetDefaults sets default configuration values for all components
func SetDefaults(v *viper.Viper) {
	// Application defaults
	v.SetDefault("verbose", false)
	v.SetDefault("log_level", "info")
	v.SetDefault("output_format", "yaml")

	// Audio analysis defaults
	v.SetDefault("audio.sample_rate", 44100)
	v.SetDefault("audio.frame_size", 2048)
	v.SetDefault("audio.hop_size", 512)
	v.SetDefault("audio.pool_size", 8)
	v.SetDefault("audio.history_size", 20)
	v.SetDefault("audio.enable_mfcc", true)
	v.SetDefault("audio.mfcc_count", 13)
	v.SetDefault("audio.tempo_min_bpm", 40.0)
	v.SetDefault("audio.tempo_max_bpm", 240.0)

	// Mood engine defaults
	v.SetDefault("mood.confidence_threshold", 0.15)
	v.SetDefault("mood.stability_factor", 0.7)
	v.SetDefault("mood.history_size", 20)

	// Personality engine defaults
	v.SetDefault("personality.cooldown_seconds", 3600)

	// Recommendation engine defaults
	v.SetDefault("recommend.limit", 10)
	v.SetDefault("recommend.seed", 1)
}
