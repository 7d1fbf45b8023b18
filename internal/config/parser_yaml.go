package config

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

func decodeYAML(content string) (fileConfig, error) {
	dec := yaml.NewDecoder(strings.NewReader(content))
	dec.KnownFields(true)

	var payload fileConfig
	if err := dec.Decode(&payload); err != nil {
		if errors.Is(err, io.EOF) {
			return fileConfig{}, nil
		}
		return fileConfig{}, fmt.Errorf("decode yaml: %w", err)
	}

	var extra yaml.Node
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		if err == nil {
			return fileConfig{}, errors.New("multiple YAML documents are not allowed")
		}
		return fileConfig{}, fmt.Errorf("decode yaml: %w", err)
	}
	return payload, nil
}
