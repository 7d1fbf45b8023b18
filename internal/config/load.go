package config

import (
	"errors"
	"fmt"
	"os"
)

// Loaded captures resolved config path, parsed values, and non-fatal warnings.
type Loaded struct {
	Path     string
	Config   Config
	Warnings []Warning
	Exists   bool
}

// Load resolves, reads, parses, and validates the runtime configuration.
// ANIMALESE_* environment variables are applied on top of the file.
func Load(explicitPath string) (Loaded, error) {
	resolvedPath, err := ResolvePath(explicitPath)
	if err != nil {
		return Loaded{}, err
	}

	content, err := os.ReadFile(resolvedPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return Loaded{}, fmt.Errorf("read config %q: %w", resolvedPath, err)
		}
		loaded, err := loadContent(resolvedPath, nil)
		if err != nil {
			return Loaded{}, err
		}
		loaded.Exists = false
		loaded.Warnings = append([]Warning{{
			Message: fmt.Sprintf("config file %q not found; using defaults", resolvedPath),
		}}, loaded.Warnings...)
		return loaded, nil
	}

	return loadContent(resolvedPath, content)
}

func loadContent(path string, content []byte) (Loaded, error) {
	filePayload, err := decode(string(content), FormatForPath(path))
	if err != nil {
		return Loaded{}, fmt.Errorf("parse config %q: %w", path, err)
	}

	envPayload, err := readEnvOverrides()
	if err != nil {
		return Loaded{}, err
	}

	cfg, warnings, err := overlay(Default(), filePayload, envPayload)
	if err != nil {
		return Loaded{}, fmt.Errorf("parse config %q: %w", path, err)
	}

	return Loaded{
		Path:     path,
		Config:   cfg,
		Warnings: warnings,
		Exists:   true,
	}, nil
}
