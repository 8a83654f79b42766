package transcode

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFFprobeOutput(t *testing.T) {
	d := NewDecoder(nil)

	jsonData := []byte(`{
		"streams": [{
			"codec_type": "audio",
			"codec_name": "mp3",
			"sample_rate": "48000",
			"channels": 2,
			"duration": "180.5",
			"bit_rate": "192000"
		}]
	}`)

	meta, err := d.parseFFprobeOutput(jsonData)
	require.NoError(t, err)

	assert.Equal(t, 48000, meta.SampleRate)
	assert.Equal(t, 2, meta.Channels)
	assert.Equal(t, "mp3", meta.Codec)
	assert.Equal(t, 180.5, meta.Duration)
	assert.Equal(t, 192000, meta.Bitrate)
}

func TestParseFFprobeOutputNoStreams(t *testing.T) {
	d := NewDecoder(nil)

	_, err := d.parseFFprobeOutput([]byte(`{"streams": []}`))
	assert.Error(t, err)
}

func TestParseFFprobeOutputNonAudio(t *testing.T) {
	d := NewDecoder(nil)

	jsonData := []byte(`{"streams": [{"codec_type": "video", "channels": 1}]}`)
	_, err := d.parseFFprobeOutput(jsonData)
	assert.Error(t, err)
}

func TestParseFFprobeOutputInvalidChannels(t *testing.T) {
	d := NewDecoder(nil)

	jsonData := []byte(`{"streams": [{"codec_type": "audio", "sample_rate": "44100", "channels": 0}]}`)
	_, err := d.parseFFprobeOutput(jsonData)
	assert.Error(t, err)
}

func TestBytesToFloat64(t *testing.T) {
	d := NewDecoder(nil)

	want := []float64{0.0, 0.5, -1.0, 0.25}
	data := make([]byte, len(want)*8)
	for i, v := range want {
		binary.LittleEndian.PutUint64(data[i*8:], math.Float64bits(v))
	}

	got := d.bytesToFloat64(data)
	assert.Equal(t, want, got)
}

func TestBytesToFloat64TrimsPartialSample(t *testing.T) {
	d := NewDecoder(nil)

	data := make([]byte, 12) // one sample plus a partial tail
	got := d.bytesToFloat64(data)
	assert.Len(t, got, 1)

	assert.Nil(t, d.bytesToFloat64(nil))
	assert.Nil(t, d.bytesToFloat64(make([]byte, 5)))
}

func TestValidateConfigBounds(t *testing.T) {
	d := NewDecoder(&DecoderConfig{TargetSampleRate: 0})
	assert.Error(t, d.ValidateConfig())

	d = NewDecoder(&DecoderConfig{TargetSampleRate: 44100, TargetChannels: 9})
	assert.Error(t, d.ValidateConfig())

	d = NewDecoder(&DecoderConfig{TargetSampleRate: 44100, TargetChannels: 1, Timeout: 0})
	assert.Error(t, d.ValidateConfig())
}

func TestDefaultDecoderConfig(t *testing.T) {
	cfg := DefaultDecoderConfig()

	assert.Equal(t, 44100, cfg.TargetSampleRate)
	assert.Equal(t, 1, cfg.TargetChannels)
	assert.Equal(t, "ffmpeg", cfg.FFmpegPath)
}
