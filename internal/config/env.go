package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix prefixes every environment override, e.g. ANIMALESE_VOICE.
const EnvPrefix = "ANIMALESE"

// envOverrides holds ANIMALESE_* variables. Unset variables stay nil.
type envOverrides struct {
	Enabled          *bool    `envconfig:"ENABLED"`
	Voice            *string  `envconfig:"VOICE"`
	Pitch            *float64 `envconfig:"PITCH"`
	Volume           *float64 `envconfig:"VOLUME"`
	SpecialSounds    *bool    `envconfig:"SPECIAL_SOUNDS"`
	Debug            *bool    `envconfig:"DEBUG"`
	AssetsDir        *string  `envconfig:"ASSETS_DIR"`
	PlayerCmd        *string  `envconfig:"PLAYER_CMD"`
	Pulse            *bool    `envconfig:"PULSE"`
	AudioDevice      *string  `envconfig:"AUDIO_DEVICE"`
	IndicatorBackend *string  `envconfig:"INDICATOR_BACKEND"`
	HealthGRPCAddr   *string  `envconfig:"HEALTH_GRPC_ADDR"`
	MetricsListen    *string  `envconfig:"METRICS_LISTEN"`
}

func readEnvOverrides() (fileConfig, error) {
	var env envOverrides
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return fileConfig{}, fmt.Errorf("read %s_* environment: %w", EnvPrefix, err)
	}

	payload := fileConfig{
		Enabled:       env.Enabled,
		Voice:         env.Voice,
		Pitch:         env.Pitch,
		Volume:        env.Volume,
		SpecialSounds: env.SpecialSounds,
		Debug:         env.Debug,
		AssetsDir:     env.AssetsDir,
	}
	if env.PlayerCmd != nil || env.Pulse != nil || env.AudioDevice != nil {
		payload.Audio = &fileAudio{PlayerCmd: env.PlayerCmd, Pulse: env.Pulse, Device: env.AudioDevice}
	}
	if env.IndicatorBackend != nil {
		payload.Indicator = &fileIndicator{Backend: env.IndicatorBackend}
	}
	if env.HealthGRPCAddr != nil {
		payload.Health = &fileHealth{GRPCAddr: env.HealthGRPCAddr}
	}
	if env.MetricsListen != nil {
		payload.Metrics = &fileMetrics{Listen: env.MetricsListen}
	}
	return payload, nil
}
