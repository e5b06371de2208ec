package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/jharder01/Huntarr.io/internal/models"
)

type (
	// Config is the client configuration stored in ~/.huntarr/config.yaml.
	// Every field can be overridden from the environment.
	Config struct {
		Server Server `yaml:"server"`
		Stream Stream `yaml:"stream"`
		Log    Log    `yaml:"log"`
		UI     UI     `yaml:"ui"`
	}

	Server struct {
		URL     string        `yaml:"url" env:"HUNTARR_URL" env-default:"http://localhost:9705"`
		APIKey  string        `yaml:"api_key,omitempty" env:"HUNTARR_API_KEY"`
		Timeout time.Duration `yaml:"timeout" env:"HUNTARR_TIMEOUT" env-default:"10s"`
	}

	Stream struct {
		Path       string        `yaml:"path" env:"HUNTARR_STREAM_PATH" env-default:"/logs"`
		RetryDelay time.Duration `yaml:"retry_delay" env:"HUNTARR_STREAM_RETRY_DELAY" env-default:"5s"`
		Buffer     int           `yaml:"buffer" env:"HUNTARR_STREAM_BUFFER" env-default:"1000"`
	}

	Log struct {
		Level string `yaml:"level" env:"HUNTARR_LOG_LEVEL" env-default:"info"`
		File  string `yaml:"file,omitempty" env:"HUNTARR_LOG_FILE"`
	}

	UI struct {
		DefaultSource   string `yaml:"default_source" env:"HUNTARR_DEFAULT_SOURCE" env-default:"all"`
		HistoryPageSize int    `yaml:"history_page_size" env:"HUNTARR_HISTORY_PAGE_SIZE" env-default:"20"`
	}
)

// DotEnvFile is loaded into the environment before the config is read,
// when present in the working directory.
const DotEnvFile = ".env"

// Load reads the config file (if any) and applies environment overrides
// and defaults.
func Load() (*Config, error) {
	if err := godotenv.Load(DotEnvFile); err == nil {
		log.WithField("file", DotEnvFile).Debug("Loaded environment file")
	}

	path, err := ConfigFile()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads the config at path. A missing file is not an error: the
// config is then built from the environment and defaults alone.
func LoadFrom(path string) (*Config, error) {
	cfg := &Config{}
	if FileExists(path) {
		if err := cleanenv.ReadConfig(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	} else {
		log.WithField("path", path).Debug("Config file not found, using environment and defaults")
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("failed to read config from environment: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config to the default location.
func Save(cfg *Config) error {
	path, err := ConfigFile()
	if err != nil {
		return err
	}
	return SaveYAML(path, cfg)
}

// Validate checks the fields a client cannot work without.
func (c *Config) Validate() error {
	if _, err := NormalizeServerURL(c.Server.URL); err != nil {
		return err
	}
	if c.Stream.RetryDelay <= 0 {
		return fmt.Errorf("stream.retry_delay must be positive, got %s", c.Stream.RetryDelay)
	}
	if c.Stream.Buffer < 1 {
		return fmt.Errorf("stream.buffer must be at least 1, got %d", c.Stream.Buffer)
	}
	if _, err := models.ParseSource(c.UI.DefaultSource); err != nil {
		return fmt.Errorf("ui.default_source: %w", err)
	}
	return nil
}

// DefaultSource returns the configured initial stream filter.
func (c *Config) DefaultSource() models.Source {
	src, err := models.ParseSource(c.UI.DefaultSource)
	if err != nil {
		return models.SourceAll
	}
	return src
}

// NormalizeServerURL adds a missing scheme and strips trailing slashes.
func NormalizeServerURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("server url is empty")
	}
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		raw = "http://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid server url %q: %w", raw, err)
	}
	if u.Host == "" {
		return "", fmt.Errorf("invalid server url %q: missing host", raw)
	}
	return strings.TrimRight(u.String(), "/"), nil
}
