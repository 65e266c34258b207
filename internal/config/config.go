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

// Config captures everything blogfront needs to reach the blog API and present it.
type Config struct {
	APIURL         string
	APIPrefix      string
	Listen         string
	Locale         string
	PageSize       int
	RecentLimit    int
	RequestTimeout time.Duration
	RefreshEvery   time.Duration
	LogLevel       string
	LogFormat      string
	LogFile        string
	TraceStdout    bool
}

const (
	defaultConfigPath     = "~/.config/blogfront/config.toml"
	defaultLogFile        = "~/.local/share/blogfront/blogfront.log"
	defaultAPIURL         = "http://127.0.0.1:8000"
	defaultAPIPrefix      = "/api/v1"
	defaultListen         = "127.0.0.1:8080"
	defaultLocale         = "ko"
	defaultPageSize       = 10
	defaultRecentLimit    = 5
	defaultRequestTimeout = 10 * time.Second
	defaultLogLevel       = "info"
	defaultLogFormat      = "console"
)

// Environment overrides, applied after the TOML file.
const (
	EnvAPIURL   = "BLOGFRONT_API_URL"
	EnvListen   = "BLOGFRONT_LISTEN"
	EnvLocale   = "BLOGFRONT_LOCALE"
	EnvLogLevel = "BLOGFRONT_LOG_LEVEL"
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		APIURL:         defaultAPIURL,
		APIPrefix:      defaultAPIPrefix,
		Listen:         defaultListen,
		Locale:         defaultLocale,
		PageSize:       defaultPageSize,
		RecentLimit:    defaultRecentLimit,
		RequestTimeout: defaultRequestTimeout,
		LogLevel:       defaultLogLevel,
		LogFormat:      defaultLogFormat,
		LogFile:        mustExpand(defaultLogFile),
	}
}

type rawConfig struct {
	APIURL         string `toml:"api_url"`
	APIPrefix      string `toml:"api_prefix"`
	Listen         string `toml:"listen"`
	Locale         string `toml:"locale"`
	PageSize       int    `toml:"page_size"`
	RecentLimit    int    `toml:"recent_limit"`
	RequestTimeout string `toml:"request_timeout"`
	RefreshEvery   string `toml:"refresh_every"`
	LogLevel       string `toml:"log_level"`
	LogFormat      string `toml:"log_format"`
	LogFile        string `toml:"log_file"`
	TraceStdout    bool   `toml:"trace_stdout"`
}

// LoadDotEnv loads .env.local and .env from the working directory when present.
// Variables already set in the process environment are never overwritten.
func LoadDotEnv() []string {
	var loaded []string
	for _, name := range []string{".env.local", ".env"} {
		if _, err := os.Stat(name); err == nil {
			loaded = append(loaded, name)
		}
	}
	if len(loaded) > 0 {
		_ = godotenv.Load(loaded...)
	}
	return loaded
}

// Load locates and parses the blogfront config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			applyEnv(&cfg)
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw rawConfig
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg.APIURL = orDefault(raw.APIURL, defaultAPIURL)
	cfg.APIPrefix = orDefault(raw.APIPrefix, defaultAPIPrefix)
	cfg.Listen = orDefault(raw.Listen, defaultListen)
	cfg.Locale = orDefault(raw.Locale, defaultLocale)
	cfg.LogLevel = strings.ToLower(orDefault(raw.LogLevel, defaultLogLevel))
	cfg.LogFormat = strings.ToLower(orDefault(raw.LogFormat, defaultLogFormat))
	cfg.LogFile = mustExpand(orDefault(raw.LogFile, defaultLogFile))
	cfg.TraceStdout = raw.TraceStdout

	if raw.PageSize > 0 {
		cfg.PageSize = raw.PageSize
	}
	if raw.RecentLimit > 0 {
		cfg.RecentLimit = raw.RecentLimit
	}
	if cfg.RequestTimeout, err = parseDuration(raw.RequestTimeout, defaultRequestTimeout); err != nil {
		return Config{}, fmt.Errorf("parse request_timeout: %w", err)
	}
	if cfg.RefreshEvery, err = parseDuration(raw.RefreshEvery, 0); err != nil {
		return Config{}, fmt.Errorf("parse refresh_every: %w", err)
	}
	if cfg.LogFormat != "console" && cfg.LogFormat != "json" {
		return Config{}, fmt.Errorf("log_format %q: want console or json", raw.LogFormat)
	}

	applyEnv(&cfg)
	return cfg, nil
}

// APIBase returns the API origin joined with the versioned prefix.
func (c Config) APIBase() string {
	origin := strings.TrimRight(strings.TrimSpace(c.APIURL), "/")
	if origin == "" {
		origin = defaultAPIURL
	}
	prefix := strings.TrimSpace(c.APIPrefix)
	if prefix == "" {
		prefix = defaultAPIPrefix
	}
	return origin + "/" + strings.Trim(prefix, "/")
}

func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(EnvAPIURL)); v != "" {
		cfg.APIURL = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvListen)); v != "" {
		cfg.Listen = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLocale)); v != "" {
		cfg.Locale = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
}

func orDefault(value, fallback string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback
	}
	return value
}

func parseDuration(value string, fallback time.Duration) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("negative duration %q", value)
	}
	return d, nil
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
