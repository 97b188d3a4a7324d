// Package config loads the optional ~/.simplesh.yaml settings file.
package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

const FileName = ".simplesh.yaml"

type Config struct {
	HistoryFile      string            `yaml:"history_file" validate:"required"`
	HistorySize      int               `yaml:"history_size" validate:"gte=0"`
	Prompt           string            `yaml:"prompt"`
	EnableColors     bool              `yaml:"enable_colors"`
	EnableCompletion bool              `yaml:"enable_completion"`
	Aliases          map[string]string `yaml:"aliases"`
}

func New() *Config {
	return &Config{
		HistoryFile:      "~/.simplesh_history",
		HistorySize:      1000,
		Prompt:           "$ ",
		EnableColors:     true,
		EnableCompletion: true,
	}
}

// Validate checks the configuration for semantic errors.
func (c *Config) Validate() error {
	return validator.New().Struct(c)
}

// Load reads the configuration at path, layered over the defaults. A missing
// file is not an error; the defaults are returned.
func Load(fs afero.Fs, path string) (*Config, error) {
	cfg := New()

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", path, err)
	}

	return cfg, nil
}
