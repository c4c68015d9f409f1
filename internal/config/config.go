// SPDX-License-Identifier: EPL-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/ik5/swarantara/internal/pipeline"
	"github.com/ik5/swarantara/utils"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g.
// SWARANTARA_SERVICE_API_KEY.
const EnvPrefix = "SWARANTARA_"

var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	Audio     AudioConfig    `yaml:"audio" envPrefix:"AUDIO_"`
	Service   ServiceConfig  `yaml:"service" envPrefix:"SERVICE_"`
	Google    GoogleConfig   `yaml:"google" envPrefix:"GOOGLE_"`
	Languages LanguageConfig `yaml:"languages" envPrefix:"LANG_"`
	Output    OutputConfig   `yaml:"output" envPrefix:"OUTPUT_"`
	Log       LogConfig      `yaml:"log" envPrefix:"LOG_"`
}

type AudioConfig struct {
	// Source is "file" or "microphone".
	Source      string        `yaml:"source" env:"SOURCE"`
	SampleRate  int           `yaml:"sample_rate" env:"SAMPLE_RATE"`
	CaptureRate int           `yaml:"capture_rate" env:"CAPTURE_RATE"`
	Rounding    string        `yaml:"rounding" env:"ROUNDING"`
	MaxDuration time.Duration `yaml:"max_duration" env:"MAX_DURATION"`
}

type ServiceConfig struct {
	// SpeechBackend is "http" or "google".
	SpeechBackend string        `yaml:"speech_backend" env:"SPEECH_BACKEND"`
	BaseURL       string        `yaml:"base_url" env:"BASE_URL"`
	APIKey        string        `yaml:"api_key" env:"API_KEY"`
	KeyHeader     string        `yaml:"key_header" env:"KEY_HEADER"`
	Timeout       time.Duration `yaml:"timeout" env:"TIMEOUT"`
	SpeechModel   string        `yaml:"speech_model" env:"SPEECH_MODEL"`
	Speaker       string        `yaml:"speaker" env:"SPEAKER"`
	Retry         RetryConfig   `yaml:"retry" envPrefix:"RETRY_"`
}

type RetryConfig struct {
	MaxAttempts  int           `yaml:"max_attempts" env:"MAX_ATTEMPTS"`
	InitialDelay time.Duration `yaml:"initial_delay" env:"INITIAL_DELAY"`
	MaxDelay     time.Duration `yaml:"max_delay" env:"MAX_DELAY"`
	Multiplier   float64       `yaml:"multiplier" env:"MULTIPLIER"`
}

type GoogleConfig struct {
	ProjectID       string `yaml:"project_id" env:"PROJECT_ID"`
	CredentialsJSON string `yaml:"credentials_json" env:"CREDENTIALS_JSON"`
	Location        string `yaml:"location" env:"LOCATION"`
	Model           string `yaml:"model" env:"MODEL"`
}

type LanguageConfig struct {
	Source string `yaml:"source" env:"SOURCE"`
	Target string `yaml:"target" env:"TARGET"`
}

type OutputConfig struct {
	Play bool   `yaml:"play" env:"PLAY"`
	Dir  string `yaml:"dir" env:"DIR"`
	// MetricsFile receives Prometheus metrics after each run when set.
	MetricsFile string `yaml:"metrics_file" env:"METRICS_FILE"`
}

type LogConfig struct {
	Level  string `yaml:"level" env:"LEVEL"`
	Format string `yaml:"format" env:"FORMAT"`
}

// Load reads path (skipped when empty), expands ${VARS} inside it, applies
// SWARANTARA_* environment overrides and defaults, then validates.
func Load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}

		expanded := os.ExpandEnv(string(data))
		if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("environment overrides: %w", err)
	}

	cfg.setDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) setDefaults() {
	if c.Audio.Source == "" {
		c.Audio.Source = "file"
	}
	if c.Audio.SampleRate == 0 {
		c.Audio.SampleRate = 16000
	}
	if c.Audio.CaptureRate == 0 {
		c.Audio.CaptureRate = 16000
	}
	if c.Audio.Rounding == "" {
		c.Audio.Rounding = utils.Truncate.String()
	}
	if c.Audio.MaxDuration == 0 {
		c.Audio.MaxDuration = 30 * time.Second
	}
	if c.Service.SpeechBackend == "" {
		c.Service.SpeechBackend = "http"
	}
	if c.Service.Timeout == 0 {
		c.Service.Timeout = 30 * time.Second
	}
	if c.Service.Retry.MaxAttempts == 0 {
		c.Service.Retry.MaxAttempts = 1
	}
	if c.Service.Retry.InitialDelay == 0 {
		c.Service.Retry.InitialDelay = 200 * time.Millisecond
	}
	if c.Service.Retry.MaxDelay == 0 {
		c.Service.Retry.MaxDelay = 5 * time.Second
	}
	if c.Service.Retry.Multiplier == 0 {
		c.Service.Retry.Multiplier = 2
	}
	if c.Google.Location == "" {
		c.Google.Location = "global"
	}
	if c.Languages.Source == "" {
		c.Languages.Source = pipeline.DefaultSourceLanguage
	}
	if c.Languages.Target == "" {
		c.Languages.Target = pipeline.DefaultTargetLanguage
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate reports the first setting that cannot work.
func (c *Config) Validate() error {
	switch c.Audio.Source {
	case "file", "microphone":
	default:
		return fmt.Errorf("%w: audio.source %q (want file or microphone)", ErrInvalidConfig, c.Audio.Source)
	}
	if c.Audio.SampleRate <= 0 || c.Audio.CaptureRate <= 0 {
		return fmt.Errorf("%w: sample rates must be positive", ErrInvalidConfig)
	}
	if _, err := utils.ParseRounding(c.Audio.Rounding); err != nil {
		return fmt.Errorf("%w: audio.rounding: %w", ErrInvalidConfig, err)
	}
	if c.Audio.MaxDuration < 0 {
		return fmt.Errorf("%w: audio.max_duration must not be negative", ErrInvalidConfig)
	}

	switch c.Service.SpeechBackend {
	case "http":
	case "google":
		if c.Google.ProjectID == "" {
			return fmt.Errorf("%w: google.project_id is required for the google speech backend", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: service.speech_backend %q (want http or google)", ErrInvalidConfig, c.Service.SpeechBackend)
	}
	if c.Service.BaseURL == "" {
		return fmt.Errorf("%w: service.base_url is required", ErrInvalidConfig)
	}
	if c.Service.Retry.MaxAttempts < 1 || c.Service.Retry.Multiplier < 1 {
		return fmt.Errorf("%w: service.retry needs max_attempts >= 1 and multiplier >= 1", ErrInvalidConfig)
	}

	if _, ok := pipeline.LookupLanguage(c.Languages.Source); !ok {
		return fmt.Errorf("%w: languages.source %q", ErrInvalidConfig, c.Languages.Source)
	}
	if _, ok := pipeline.LookupLanguage(c.Languages.Target); !ok {
		return fmt.Errorf("%w: languages.target %q", ErrInvalidConfig, c.Languages.Target)
	}
	if c.Languages.Source == c.Languages.Target {
		return fmt.Errorf("%w: source and target language are both %q", ErrInvalidConfig, c.Languages.Source)
	}

	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log.format %q (want text or json)", ErrInvalidConfig, c.Log.Format)
	}

	return nil
}

// Rounding returns the parsed audio.rounding setting.
func (c *Config) Rounding() utils.Rounding {
	r, _ := utils.ParseRounding(c.Audio.Rounding)
	return r
}
