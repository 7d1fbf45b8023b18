package config

import (
	"fmt"
	"strings"
)

// fileConfig is the on-disk shape shared by JSONC and YAML files.
// Pointer fields distinguish "unset" from zero values.
type fileConfig struct {
	Enabled       *bool          `json:"enabled" yaml:"enabled"`
	Voice         *string        `json:"voice" yaml:"voice"`
	Pitch         *float64       `json:"pitch" yaml:"pitch"`
	Volume        *float64       `json:"volume" yaml:"volume"`
	SpecialSounds *bool          `json:"special_sounds" yaml:"special_sounds"`
	Debug         *bool          `json:"debug" yaml:"debug"`
	AssetsDir     *string        `json:"assets_dir" yaml:"assets_dir"`
	Audio         *fileAudio     `json:"audio" yaml:"audio"`
	Indicator     *fileIndicator `json:"indicator" yaml:"indicator"`
	Health        *fileHealth    `json:"health" yaml:"health"`
	Metrics       *fileMetrics   `json:"metrics" yaml:"metrics"`
}

type fileAudio struct {
	PlayerCmd *string `json:"player_cmd" yaml:"player_cmd"`
	Pulse     *bool   `json:"pulse" yaml:"pulse"`
	Device    *string `json:"device" yaml:"device"`
}

type fileIndicator struct {
	Enable         *bool   `json:"enable" yaml:"enable"`
	Backend        *string `json:"backend" yaml:"backend"`
	DesktopAppName *string `json:"desktop_app_name" yaml:"desktop_app_name"`
	FlashMS        *int    `json:"flash_ms" yaml:"flash_ms"`
}

type fileHealth struct {
	GRPCAddr *string `json:"grpc_addr" yaml:"grpc_addr"`
}

type fileMetrics struct {
	Listen *string `json:"listen" yaml:"listen"`
}

func (payload fileConfig) applyTo(cfg *Config) ([]Warning, error) {
	warnings := make([]Warning, 0)

	if payload.Enabled != nil {
		cfg.Enabled = *payload.Enabled
	}
	if payload.Voice != nil {
		cfg.Voice = strings.TrimSpace(*payload.Voice)
	}
	if payload.Pitch != nil {
		cfg.Pitch = *payload.Pitch
	}
	if payload.Volume != nil {
		cfg.Volume = *payload.Volume
	}
	if payload.SpecialSounds != nil {
		cfg.SpecialSounds = *payload.SpecialSounds
	}
	if payload.Debug != nil {
		cfg.Debug = *payload.Debug
	}
	if payload.AssetsDir != nil {
		cfg.AssetsDir = strings.TrimSpace(*payload.AssetsDir)
	}

	if payload.Audio != nil {
		if payload.Audio.PlayerCmd != nil {
			player, err := commandConfig(*payload.Audio.PlayerCmd)
			if err != nil {
				return nil, fmt.Errorf("invalid audio.player_cmd: %w", err)
			}
			cfg.Audio.Player = player
		}
		if payload.Audio.Pulse != nil {
			cfg.Audio.Pulse = *payload.Audio.Pulse
		}
		if payload.Audio.Device != nil {
			cfg.Audio.Device = strings.TrimSpace(*payload.Audio.Device)
		}
	}

	if payload.Indicator != nil {
		if payload.Indicator.Enable != nil {
			cfg.Indicator.Enable = *payload.Indicator.Enable
		}
		if payload.Indicator.Backend != nil {
			cfg.Indicator.Backend = strings.TrimSpace(*payload.Indicator.Backend)
		}
		if payload.Indicator.DesktopAppName != nil {
			cfg.Indicator.DesktopAppName = strings.TrimSpace(*payload.Indicator.DesktopAppName)
		}
		if payload.Indicator.FlashMS != nil {
			cfg.Indicator.FlashMS = *payload.Indicator.FlashMS
		}
	}

	if payload.Health != nil && payload.Health.GRPCAddr != nil {
		cfg.Health.GRPCAddr = strings.TrimSpace(*payload.Health.GRPCAddr)
	}
	if payload.Metrics != nil && payload.Metrics.Listen != nil {
		cfg.Metrics.Listen = strings.TrimSpace(*payload.Metrics.Listen)
	}

	return warnings, nil
}

func commandConfig(raw string) (CommandConfig, error) {
	argv, err := parseArgv(raw)
	if err != nil {
		return CommandConfig{}, err
	}
	return CommandConfig{Raw: raw, Argv: argv}, nil
}
