package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// loadYAML reads a YAML config. A missing file is reported as
// os.ErrNotExist so the caller can fall through to the next source.
func loadYAML(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
