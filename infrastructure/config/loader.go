package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file looked up when --config is not given
const DefaultPath = "ytbatch.yaml"

// Config represents the complete application configuration
type Config struct {
	Download DownloadConfig `yaml:"download"`
	YTDLP    YTDLPConfig    `yaml:"ytdlp"`
}

// DownloadConfig contains the per-run download options
type DownloadConfig struct {
	OutputDirectory string `yaml:"output_directory" env:"YTBATCH_OUTPUT_DIR" env-default:"./downloads" validate:"required"`
	Quality         string `yaml:"quality" env:"YTBATCH_QUALITY" env-default:"best" validate:"required"`
	AudioOnly       bool   `yaml:"audio_only" env:"YTBATCH_AUDIO_ONLY"`
	Format          string `yaml:"format,omitempty" env:"YTBATCH_FORMAT"`
}

// YTDLPConfig contains settings for the yt-dlp engine
type YTDLPConfig struct {
	Executable string `yaml:"executable,omitempty" env:"YTBATCH_YTDLP_PATH"`
	Install    bool   `yaml:"install" env:"YTBATCH_YTDLP_INSTALL"`
}

var validate = validator.New()

// Default returns the configuration built from defaults and environment only
func Default() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	return &cfg, nil
}

// Load reads the YAML file at path, then applies environment overrides
// and defaults for anything left empty
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadOrDefault loads path when it exists. A missing file is only an error
// when the caller asked for it explicitly.
func LoadOrDefault(path string, explicit bool) (*Config, error) {
	cfg, err := Load(path)
	if err == nil {
		return cfg, nil
	}
	if !explicit && errors.Is(err, fs.ErrNotExist) {
		return Default()
	}
	return nil, err
}

// Validate checks required fields
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// Marshal serializes the configuration as YAML
func Marshal(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize config: %w", err)
	}
	return data, nil
}

// Save writes the configuration to the specified YAML file
func Save(cfg *Config, path string) error {
	data, err := Marshal(cfg)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
