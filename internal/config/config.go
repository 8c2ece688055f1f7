// Package config loads the pipeline configuration, merging a YAML file with
// environment overrides (prefix `CURIE__`, delimiter `__`).
package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// SupportedSchema is the config schema this build understands.
const SupportedSchema = "v1"

// LoggingCfg selects log level and encoding.
type LoggingCfg struct {
	Level string `koanf:"level"`
	JSON  bool   `koanf:"json"`
}

// Pipeline describes a transform chain: which record keys hold images,
// which hold label masks, and how the batch runner executes.
type Pipeline struct {
	SchemaVersion string `koanf:"schema_version"`

	ImageKeys  []string `koanf:"image_keys"`
	LabelKeys  []string `koanf:"label_keys"`
	LabelValue float64  `koanf:"label_value"` // replacement for positive label elements
	Reader     string   `koanf:"reader"`      // reader hint; empty = dispatch by file extension
	Workers    int      `koanf:"workers"`     // 0 = one per CPU

	Logging LoggingCfg `koanf:"logging"`
}

// Load merges YAML (if present) with env-vars.
func Load(path string) (Pipeline, error) {
	k := koanf.New(".")
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil &&
			!errors.Is(err, fs.ErrNotExist) {
			return Pipeline{}, err
		}
	}
	// schema version check (only when YAML is present)
	sv := k.String("schema_version")
	if sv != "" && sv != SupportedSchema {
		return Pipeline{}, fmt.Errorf("pipeline schema_version %q not supported (want %q)", sv, SupportedSchema)
	}

	_ = k.Load(env.Provider("CURIE__", "__", nil), nil)

	var cfg Pipeline
	if err := k.Unmarshal("", &cfg); err != nil {
		return cfg, err
	}
	applyDefaults(&cfg)
	return cfg, nil
}

func applyDefaults(c *Pipeline) {
	if c.SchemaVersion == "" {
		c.SchemaVersion = SupportedSchema
	}
	if len(c.ImageKeys) == 0 {
		c.ImageKeys = []string{"image"}
	}
	if c.LabelValue == 0 {
		c.LabelValue = 1
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}
