package main

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/obamify/pixelmorph/assignment"
)

// daemonConfig is the top-level config.yaml shape: where the http server
// listens, where the on-disk preset store lives, and an optional default
// GenerationSettings profile applied to "process" requests that omit one.
type daemonConfig struct {
	Host       string `mapstructure:"host" yaml:"host"`
	Port       string `mapstructure:"port" yaml:"port"`
	PresetsDir string `mapstructure:"presetsDir" yaml:"presetsDir"`

	DefaultGeneration    assignment.GenerationSettings
	HasDefaultGeneration bool
}

// generationEnvelope is the "defaultGeneration" section's on-disk shape:
// a Kind selector plus an untyped Def blob, mirroring the teacher's
// OuterConfig{Kind, Def interface{}}/FromYaml envelope so a future second
// settings shape (e.g. per-algorithm tunables) can be added under the same
// key without breaking existing config files.
type generationEnvelope struct {
	Kind string      `mapstructure:"kind"`
	Def  interface{} `mapstructure:"def"`
}

// rawConfig is what viper decodes config.yaml into before the
// defaultGeneration envelope gets its second, yaml-based decode pass.
type rawConfig struct {
	Host              string              `mapstructure:"host"`
	Port              string              `mapstructure:"port"`
	PresetsDir        string              `mapstructure:"presetsDir"`
	DefaultGeneration *generationEnvelope `mapstructure:"defaultGeneration"`
}

func defaultConfig() daemonConfig {
	return daemonConfig{Port: "8080", PresetsDir: "./presets"}
}

// loadConfig reads path via viper, same as the teacher's FromYaml: config
// loading is optional, so a missing file falls back to defaultConfig
// rather than erroring. Like FromYaml, the defaultGeneration section is
// decoded twice: once generically by viper into an untyped Def blob (so
// the envelope's Kind can select among future settings shapes), then
// re-marshaled and decoded a second time via yaml.v3 into the concrete
// assignment.GenerationSettings.
func loadConfig(path string) (daemonConfig, error) {
	cfg := defaultConfig()

	vp := viper.New()
	vp.SetConfigFile(path)
	vp.SetConfigType("yaml")
	vp.AddConfigPath(filepath.Dir(path))

	if err := vp.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); notFound || errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, err
	}

	var raw rawConfig
	if err := vp.Unmarshal(&raw); err != nil {
		return cfg, err
	}

	if raw.Host != "" {
		cfg.Host = raw.Host
	}
	if raw.Port != "" {
		cfg.Port = raw.Port
	}
	if raw.PresetsDir != "" {
		cfg.PresetsDir = raw.PresetsDir
	}

	if raw.DefaultGeneration != nil {
		settings, err := decodeGenerationEnvelope(*raw.DefaultGeneration)
		if err != nil {
			return cfg, fmt.Errorf("pixelmorphd: decode defaultGeneration: %w", err)
		}
		cfg.DefaultGeneration = settings
		cfg.HasDefaultGeneration = true
	}

	return cfg, nil
}

func decodeGenerationEnvelope(env generationEnvelope) (assignment.GenerationSettings, error) {
	spec, err := yaml.Marshal(env.Def)
	if err != nil {
		return assignment.GenerationSettings{}, err
	}

	var settings assignment.GenerationSettings
	if err := yaml.Unmarshal(spec, &settings); err != nil {
		return assignment.GenerationSettings{}, err
	}
	if env.Kind != "" {
		settings.Algorithm = assignment.Algorithm(env.Kind)
	}
	return settings.WithDefaults(), nil
}
