package config

import (
	"path/filepath"
	"strings"
)

// Format selects the file syntax.
type Format int

const (
	FormatJSONC Format = iota
	FormatYAML
)

// FormatForPath picks YAML for .yaml/.yml files and JSONC otherwise.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSONC
	}
}

// Parse reads configuration content in format, overlays it onto base, and validates the result.
func Parse(content string, base Config, format Format) (Config, []Warning, error) {
	payload, err := decode(content, format)
	if err != nil {
		return Config{}, nil, err
	}

	return overlay(base, payload)
}

func decode(content string, format Format) (fileConfig, error) {
	if strings.TrimSpace(content) == "" {
		return fileConfig{}, nil
	}
	switch format {
	case FormatYAML:
		return decodeYAML(content)
	default:
		return decodeJSONC(content)
	}
}

// overlay applies payloads in order onto base and validates the result once.
func overlay(base Config, payloads ...fileConfig) (Config, []Warning, error) {
	cfg := base
	warnings := make([]Warning, 0)
	for _, payload := range payloads {
		applied, err := payload.applyTo(&cfg)
		if err != nil {
			return Config{}, nil, err
		}
		warnings = append(warnings, applied...)
	}

	validatedWarnings, err := Validate(cfg)
	if err != nil {
		return Config{}, nil, err
	}
	warnings = append(warnings, validatedWarnings...)
	return cfg, warnings, nil
}
