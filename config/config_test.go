package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadDefaultConfig(t *testing.T) *Config {
	t.Helper()

	v := viper.New()
	SetDefaults(v)

	cfg := &Config{}
	require.NoError(t, v.Unmarshal(cfg))
	return cfg
}

func TestDefaults(t *testing.T) {
	cfg := loadDefaultConfig(t)

	assert.Equal(t, 44100, cfg.Audio.SampleRate)
	assert.Equal(t, 2048, cfg.Audio.FrameSize)
	assert.Equal(t, 512, cfg.Audio.HopSize)
	assert.Equal(t, 13, cfg.Audio.MFCCCount)
	assert.Equal(t, 40.0, cfg.Audio.TempoMinBPM)
	assert.Equal(t, 240.0, cfg.Audio.TempoMaxBPM)

	assert.Equal(t, 0.15, cfg.Mood.ConfidenceThreshold)
	assert.Equal(t, 0.7, cfg.Mood.StabilityFactor)
	assert.Equal(t, 20, cfg.Mood.HistorySize)

	assert.Equal(t, 3600, cfg.Personality.CooldownSeconds)
	assert.Equal(t, 10, cfg.Recommend.Limit)

	assert.NoError(t, ValidateConfig(cfg))
}

func TestValidateRejectsBadFrameSize(t *testing.T) {
	cfg := loadDefaultConfig(t)

	cfg.Audio.FrameSize = 1000
	assert.Error(t, ValidateConfig(cfg))

	cfg.Audio.FrameSize = 0
	assert.Error(t, ValidateConfig(cfg))
}

func TestValidateRejectsEmptyTempoRange(t *testing.T) {
	cfg := loadDefaultConfig(t)

	cfg.Audio.TempoMinBPM = 240
	cfg.Audio.TempoMaxBPM = 40
	assert.Error(t, ValidateConfig(cfg))
}

func TestValidateRejectsBadThresholds(t *testing.T) {
	cfg := loadDefaultConfig(t)

	cfg.Mood.ConfidenceThreshold = 1.5
	assert.Error(t, ValidateConfig(cfg))

	cfg = loadDefaultConfig(t)
	cfg.Mood.StabilityFactor = -0.1
	assert.Error(t, ValidateConfig(cfg))

	cfg = loadDefaultConfig(t)
	cfg.Personality.CooldownSeconds = -1
	assert.Error(t, ValidateConfig(cfg))
}
