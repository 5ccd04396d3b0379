package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds the settings strip reads from config.toml.
type Config struct {
	BaseURL        string
	URLStyle       string
	RandomMode     string
	RequestTimeout time.Duration
	RefreshEvery   time.Duration
	ImagePreview   bool
	LogPath        string
	LogLevel       string
	LogMaxSizeMB   int
	LogMaxBackups  int
}

const (
	defaultConfigPath    = "~/.config/strip/config.toml"
	defaultBaseURL       = "https://xkcd.com"
	defaultURLStyle      = "xkcd"
	defaultRandomMode    = "move"
	defaultLogPath       = "~/.local/share/strip/strip.log"
	defaultLogLevel      = "info"
	defaultLogMaxSizeMB  = 10
	defaultLogMaxBackups = 3
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		BaseURL:       defaultBaseURL,
		URLStyle:      defaultURLStyle,
		RandomMode:    defaultRandomMode,
		ImagePreview:  true,
		LogPath:       mustExpand(defaultLogPath),
		LogLevel:      defaultLogLevel,
		LogMaxSizeMB:  defaultLogMaxSizeMB,
		LogMaxBackups: defaultLogMaxBackups,
	}
}

// Load locates and parses the strip config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		BaseURL        string `toml:"base_url"`
		URLStyle       string `toml:"url_style"`
		RandomMode     string `toml:"random_mode"`
		RequestTimeout string `toml:"request_timeout"`
		RefreshEvery   string `toml:"refresh_every"`
		ImagePreview   *bool  `toml:"image_preview"`
		LogPath        string `toml:"log_path"`
		LogLevel       string `toml:"log_level"`
		LogMaxSize     int    `toml:"log_max_size"`
		LogMaxBackups  int    `toml:"log_max_backups"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.BaseURL); v != "" {
		cfg.BaseURL = v
	}
	if v := strings.ToLower(strings.TrimSpace(raw.URLStyle)); v != "" {
		cfg.URLStyle = v
	}
	if v := strings.ToLower(strings.TrimSpace(raw.RandomMode)); v != "" {
		cfg.RandomMode = v
	}
	if cfg.RequestTimeout, err = parseDuration("request_timeout", raw.RequestTimeout); err != nil {
		return Config{}, err
	}
	if cfg.RefreshEvery, err = parseDuration("refresh_every", raw.RefreshEvery); err != nil {
		return Config{}, err
	}
	if raw.ImagePreview != nil {
		cfg.ImagePreview = *raw.ImagePreview
	}
	if v := strings.TrimSpace(raw.LogPath); v != "" {
		cfg.LogPath = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.LogLevel); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if raw.LogMaxSize > 0 {
		cfg.LogMaxSizeMB = raw.LogMaxSize
	}
	if raw.LogMaxBackups > 0 {
		cfg.LogMaxBackups = raw.LogMaxBackups
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects values the rest of strip cannot use.
func (c Config) Validate() error {
	switch c.URLStyle {
	case "xkcd", "path":
	default:
		return fmt.Errorf("invalid url_style %q: want xkcd or path", c.URLStyle)
	}
	switch c.RandomMode {
	case "move", "peek":
	default:
		return fmt.Errorf("invalid random_mode %q: want move or peek", c.RandomMode)
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("request_timeout must not be negative")
	}
	if c.RefreshEvery < 0 {
		return fmt.Errorf("refresh_every must not be negative")
	}
	return nil
}

func parseDuration(field, value string) (time.Duration, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(trimmed)
	if err != nil {
		return 0, fmt.Errorf("parse config: %s: %w", field, err)
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
