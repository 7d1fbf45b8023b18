// Package config resolves, parses, validates, and defaults animalese configuration.
package config

import "github.com/rbright/animalese/internal/voice"

// Config is the fully materialized runtime configuration used by animalese.
type Config struct {
	Enabled       bool
	Voice         string
	Pitch         float64
	Volume        float64
	SpecialSounds bool
	Debug         bool
	AssetsDir     string
	Audio         AudioConfig
	Indicator     IndicatorConfig
	Health        HealthConfig
	Metrics       MetricsConfig
}

// AudioConfig controls which sinks play sounds.
type AudioConfig struct {
	Player CommandConfig
	Pulse  bool
	Device string
}

// IndicatorConfig controls the visual fallback cue.
type IndicatorConfig struct {
	Enable         bool
	Backend        string
	DesktopAppName string
	FlashMS        int
}

// HealthConfig controls the optional gRPC health endpoint.
type HealthConfig struct {
	GRPCAddr string
}

// MetricsConfig controls the optional Prometheus scrape endpoint.
type MetricsConfig struct {
	Listen string
}

// CommandConfig stores a raw command string and its parsed argv form.
type CommandConfig struct {
	Raw  string
	Argv []string
}

// Warning is a non-fatal parse/validation message.
type Warning struct {
	Line    int
	Message string
}

// VoiceConfig returns the clamped playback snapshot for cfg.
// An unparseable voice falls back to the default voice; Validate rejects it earlier.
func (c Config) VoiceConfig() voice.Config {
	v, err := voice.Parse(c.Voice)
	if err != nil {
		v = voice.Default
	}
	return voice.NewConfig(v, c.Pitch, c.Volume, c.SpecialSounds)
}
