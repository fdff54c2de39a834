// Package config loads runtime settings from the environment.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// Environment variables read by FromEnv.
const (
	EnvLogLevel    = "IMAGE_FX_LOG_LEVEL"
	EnvImagesDir   = "IMAGE_FX_IMAGES_DIR"
	EnvJPEGQuality = "IMAGE_FX_JPEG_QUALITY"
)

// DefaultJPEGQuality is used when IMAGE_FX_JPEG_QUALITY is unset.
const DefaultJPEGQuality = 95

// Config holds the server and CLI settings.
type Config struct {
	// LogLevel is the minimum level written to stderr.
	LogLevel slog.Level
	// ImagesDir, when set, is loaded into the catalog at startup.
	ImagesDir string
	// JPEGQuality is used when re-encoding JPEG images (1-100).
	JPEGQuality int
}

// Default returns the configuration used when no variables are set.
func Default() Config {
	return Config{
		LogLevel:    slog.LevelInfo,
		JPEGQuality: DefaultJPEGQuality,
	}
}

// FromEnv reads the configuration from the process environment.
func FromEnv() (Config, error) {
	return fromLookup(os.LookupEnv)
}

func fromLookup(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()

	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		level, err := ParseLevel(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvLogLevel, err)
		}
		cfg.LogLevel = level
	}

	if v, ok := lookup(EnvImagesDir); ok {
		cfg.ImagesDir = strings.TrimSpace(v)
	}

	if v, ok := lookup(EnvJPEGQuality); ok && v != "" {
		q, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil || q < 1 || q > 100 {
			return Config{}, fmt.Errorf("%s: expected an integer between 1 and 100, got %q", EnvJPEGQuality, v)
		}
		cfg.JPEGQuality = q
	}

	return cfg, nil
}

// ParseLevel parses debug, info, warn or error (case-insensitive).
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("invalid log level %q", s)
	}
	return level, nil
}
