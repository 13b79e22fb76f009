// Package config resolves imagen settings from defaults, an optional YAML
// file, an optional .env file and the process environment.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/1broseidon/imagen/client"
	"github.com/1broseidon/imagen/common"
	"github.com/1broseidon/imagen/models"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables read by Load.
const (
	EnvAPIKey   = "GEMINI_API_KEY"
	EnvModel    = "IMAGEN_MODEL"
	EnvLogLevel = "IMAGEN_LOG_LEVEL"
	EnvEndpoint = "GEMINI_ENDPOINT"
)

// Config holds everything needed to build a client and a request.
type Config struct {
	// APIKey only ever comes from the environment.
	APIKey     string                `yaml:"-"`
	Model      string                `yaml:"model"`
	Endpoint   string                `yaml:"endpoint"`
	OutputPath string                `yaml:"output_path"`
	Size       string                `yaml:"size"`
	LogLevel   string                `yaml:"log_level"`
	Sampling   models.SamplingConfig `yaml:"sampling"`
}

// LookupFunc matches os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Model:      client.DefaultModel,
		OutputPath: models.DefaultOutputPath,
		Size:       models.DefaultSize,
		LogLevel:   common.DisabledLevel.String(),
		Sampling:   models.DefaultSamplingConfig(),
	}
}

// Load builds a Config from defaults, then the YAML file at path (skipped
// when path is empty), then the variables visible through lookup.
func Load(path string, lookup LookupFunc) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if lookup == nil {
		lookup = os.LookupEnv
	}
	if v, ok := lookup(EnvAPIKey); ok {
		cfg.APIKey = v
	}
	if v, ok := lookup(EnvModel); ok && v != "" {
		cfg.Model = v
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		cfg.LogLevel = v
	}
	if v, ok := lookup(EnvEndpoint); ok && v != "" {
		cfg.Endpoint = v
	}

	if _, err := common.ParseLogLevel(cfg.LogLevel); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Level returns the parsed log level. Load has already validated it.
func (c Config) Level() common.LogLevel {
	level, _ := common.ParseLogLevel(c.LogLevel)
	return level
}

// ClientOptions translates the config into client options.
func (c Config) ClientOptions() []client.ClientOption {
	return []client.ClientOption{
		client.WithAPIKey(c.APIKey),
		client.WithModel(c.Model),
		client.WithEndpoint(c.Endpoint),
		client.WithLogLevel(c.Level()),
	}
}

// LoadDotEnv loads environment variables from path. If the file does not exist
// it is silently ignored so that .env files remain optional. Variables that
// are already set are not overridden.
func LoadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	err := godotenv.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
