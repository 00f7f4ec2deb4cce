package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// FailurePolicy decides what the batch does after a file fails to transcribe.
type FailurePolicy string

const (
	FailFast FailurePolicy = "fail-fast"
	Continue FailurePolicy = "continue"
)

type Config struct {
	Engine     EngineConfig     `yaml:"engine"`
	Batch      BatchConfig      `yaml:"batch"`
	Logging    LoggingConfig    `yaml:"logging"`
	Watch      WatchConfig      `yaml:"watch"`
	Summarizer SummarizerConfig `yaml:"summarizer"`
}

type EngineConfig struct {
	WhisperBinary  string `yaml:"whisper_binary"`
	WhisperXBinary string `yaml:"whisperx_binary"`
	TokenEnv       string `yaml:"token_env"`
	Device         string `yaml:"device"`
	OutputFormat   string `yaml:"output_format"`
}

type BatchConfig struct {
	FailurePolicy    FailurePolicy `yaml:"failure_policy"`
	PrimaryExtension string        `yaml:"primary_extension"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
	Dir   string `yaml:"dir"`
}

type WatchConfig struct {
	SettleDelay time.Duration `yaml:"settle_delay"`
}

type SummarizerConfig struct {
	Model      string `yaml:"model"`
	APIKeysEnv string `yaml:"api_keys_env"`
}

// Default returns the settings used when no config file is given.
func Default() Config {
	var c Config
	_ = c.Validate()
	return c
}

// Load reads a YAML settings file and fills in defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c *Config) Validate() error {
	if c.Engine.WhisperBinary == "" {
		c.Engine.WhisperBinary = "whisper"
	}
	if c.Engine.WhisperXBinary == "" {
		c.Engine.WhisperXBinary = "whisperx"
	}
	if c.Engine.TokenEnv == "" {
		c.Engine.TokenEnv = "HF_TOKEN"
	}
	if c.Engine.OutputFormat == "" {
		c.Engine.OutputFormat = "all"
	}

	c.Engine.Device = strings.ToLower(c.Engine.Device)
	switch c.Engine.Device {
	case "":
		c.Engine.Device = "auto"
	case "auto", "cpu", "cuda":
	default:
		return fmt.Errorf("engine.device must be auto, cpu or cuda (got %q)", c.Engine.Device)
	}

	switch c.Batch.FailurePolicy {
	case "":
		c.Batch.FailurePolicy = FailFast
	case FailFast, Continue:
	default:
		return fmt.Errorf("batch.failure_policy must be %s or %s (got %q)", FailFast, Continue, c.Batch.FailurePolicy)
	}

	c.Batch.PrimaryExtension = strings.TrimPrefix(c.Batch.PrimaryExtension, ".")
	if c.Batch.PrimaryExtension == "" {
		c.Batch.PrimaryExtension = "txt"
	}

	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Watch.SettleDelay <= 0 {
		c.Watch.SettleDelay = 3 * time.Second
	}
	if c.Summarizer.Model == "" {
		c.Summarizer.Model = "gemini-2.5-flash"
	}
	if c.Summarizer.APIKeysEnv == "" {
		c.Summarizer.APIKeysEnv = "GEMINI_API_KEYS"
	}

	return nil
}
