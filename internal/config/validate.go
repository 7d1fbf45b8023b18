package config

import (
	"fmt"
	"net"
	"strings"

	"github.com/rbright/animalese/internal/voice"
)

// Validate enforces config invariants and returns non-fatal warnings.
func Validate(cfg Config) ([]Warning, error) {
	warnings := make([]Warning, 0)

	if _, err := voice.Parse(cfg.Voice); err != nil {
		return nil, err
	}
	if clamped := voice.ClampPitch(cfg.Pitch); clamped != cfg.Pitch {
		warnings = append(warnings, Warning{Message: fmt.Sprintf("pitch %v outside [%v, %v]; using %v", cfg.Pitch, voice.MinPitch, voice.MaxPitch, clamped)})
	}
	if clamped := voice.ClampVolume(cfg.Volume); clamped != cfg.Volume {
		warnings = append(warnings, Warning{Message: fmt.Sprintf("volume %v outside [%v, %v]; using %v", cfg.Volume, voice.MinVolume, voice.MaxVolume, clamped)})
	}

	backend := strings.ToLower(strings.TrimSpace(cfg.Indicator.Backend))
	if backend == "" {
		return nil, fmt.Errorf("indicator.backend must not be empty")
	}
	if backend != "bell" && backend != "hypr" && backend != "desktop" {
		return nil, fmt.Errorf("indicator.backend must be one of: bell, hypr, desktop")
	}
	if backend == "desktop" && strings.TrimSpace(cfg.Indicator.DesktopAppName) == "" {
		return nil, fmt.Errorf("indicator.desktop_app_name must not be empty when indicator.backend=desktop")
	}
	if cfg.Indicator.FlashMS < 0 {
		return nil, fmt.Errorf("indicator.flash_ms must be >= 0")
	}

	if cfg.Audio.Player.Raw != "" && len(cfg.Audio.Player.Argv) == 0 {
		return nil, fmt.Errorf("audio.player_cmd is configured but empty")
	}
	if len(cfg.Audio.Player.Argv) == 0 && !cfg.Audio.Pulse {
		warnings = append(warnings, Warning{Message: "audio.player_cmd is unset and audio.pulse=false; only the visual fallback will sound"})
	}

	if err := validateAddr("health.grpc_addr", cfg.Health.GRPCAddr); err != nil {
		return nil, err
	}
	if err := validateAddr("metrics.listen", cfg.Metrics.Listen); err != nil {
		return nil, err
	}

	return warnings, nil
}

func validateAddr(key string, addr string) error {
	if strings.TrimSpace(addr) == "" {
		return nil
	}
	if _, _, err := net.SplitHostPort(addr); err != nil {
		return fmt.Errorf("%s %q must be host:port: %w", key, addr, err)
	}
	return nil
}
