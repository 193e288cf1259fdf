package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
)

// Config captures everything the Karm client and server read at startup.
type Config struct {
	BaseURL        string        `toml:"base_url" validate:"required,url"`
	RequestTimeout time.Duration `toml:"request_timeout" validate:"gte=0"`
	PollInterval   time.Duration `toml:"poll_interval" validate:"gte=0"`
	Theme          string        `toml:"theme" validate:"oneof=light dark"`
	LogFile        string        `toml:"log_file"`
	Server         ServerConfig  `toml:"server"`
}

// ServerConfig configures `karm serve`.
type ServerConfig struct {
	Addr        string `toml:"addr" validate:"required"`
	AnswersFile string `toml:"answers_file"`
}

// Overrides carry command-line values that win over the file and environment.
// Zero values leave the loaded setting untouched.
type Overrides struct {
	BaseURL        string
	RequestTimeout time.Duration
	PollInterval   time.Duration
	Theme          string
	LogFile        string
	ServerAddr     string
	AnswersFile    string
}

const (
	defaultConfigPath   = "~/.config/karm/config.toml"
	defaultBaseURL      = "http://127.0.0.1:5000"
	defaultPollInterval = 5 * time.Second
	defaultTheme        = "light"
	defaultLogFile      = "~/.local/state/karm/karm.log"
	defaultServerAddr   = ":5000"

	envBaseURL = "KARM_BASE_URL"
	envLogFile = "KARM_LOG_FILE"
)

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		BaseURL:      defaultBaseURL,
		PollInterval: defaultPollInterval,
		Theme:        defaultTheme,
		LogFile:      mustExpand(defaultLogFile),
		Server:       ServerConfig{Addr: defaultServerAddr},
	}
}

// LoadDotEnv populates unset environment variables from .env files, the
// working directory's .env when no paths are given. Missing files are ignored.
func LoadDotEnv(paths ...string) error {
	if err := godotenv.Load(paths...); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

// Load reads the config file, falling back to defaults when it is missing,
// then applies environment overrides and validates the result.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()
	if err := loadFile(resolved, &cfg); err != nil {
		return Config{}, err
	}

	if env := strings.TrimSpace(os.Getenv(envBaseURL)); env != "" {
		cfg.BaseURL = env
	}
	if env := strings.TrimSpace(os.Getenv(envLogFile)); env != "" {
		cfg.LogFile = mustExpand(env)
	}

	cfg.BaseURL = normalizeBaseURL(cfg.BaseURL)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// WithOverrides returns a copy of c with the non-zero overrides applied and
// validates it again.
func (c Config) WithOverrides(o Overrides) (Config, error) {
	if v := strings.TrimSpace(o.BaseURL); v != "" {
		c.BaseURL = normalizeBaseURL(v)
	}
	if o.RequestTimeout != 0 {
		c.RequestTimeout = o.RequestTimeout
	}
	if o.PollInterval != 0 {
		c.PollInterval = o.PollInterval
	}
	if v := strings.TrimSpace(o.Theme); v != "" {
		c.Theme = strings.ToLower(v)
	}
	if v := strings.TrimSpace(o.LogFile); v != "" {
		c.LogFile = mustExpand(v)
	}
	if v := strings.TrimSpace(o.ServerAddr); v != "" {
		c.Server.Addr = v
	}
	if v := strings.TrimSpace(o.AnswersFile); v != "" {
		c.Server.AnswersFile = mustExpand(v)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func loadFile(path string, cfg *Config) error {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("open config: %w", err)
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		BaseURL        string `toml:"base_url"`
		RequestTimeout string `toml:"request_timeout"`
		PollInterval   string `toml:"poll_interval"`
		Theme          string `toml:"theme"`
		LogFile        string `toml:"log_file"`
		Server         struct {
			Addr        string `toml:"addr"`
			AnswersFile string `toml:"answers_file"`
		} `toml:"server"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.BaseURL); v != "" {
		cfg.BaseURL = v
	}
	if v := strings.TrimSpace(raw.RequestTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parse config: request_timeout: %w", err)
		}
		cfg.RequestTimeout = d
	}
	if v := strings.TrimSpace(raw.PollInterval); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parse config: poll_interval: %w", err)
		}
		cfg.PollInterval = d
	}
	if v := strings.TrimSpace(raw.Theme); v != "" {
		cfg.Theme = strings.ToLower(v)
	}
	if v := strings.TrimSpace(raw.LogFile); v != "" {
		cfg.LogFile = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.Server.Addr); v != "" {
		cfg.Server.Addr = v
	}
	if v := strings.TrimSpace(raw.Server.AnswersFile); v != "" {
		cfg.Server.AnswersFile = mustExpand(v)
	}
	return nil
}

func normalizeBaseURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return trimmed
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	return strings.TrimRight(trimmed, "/")
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
