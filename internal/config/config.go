// Package config loads edgebin settings from an optional TOML file and
// EDGEBIN_* environment variables. Environment values win.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"

	"github.com/alfredjeanlab/edgebin/internal/edge"
)

type Config struct {
	Extension  string `toml:"extension" json:"extension,omitempty"`   // EDGEBIN_EXTENSION (default ".bin")
	ByteOrder  string `toml:"byte_order" json:"byte_order,omitempty"` // EDGEBIN_BYTE_ORDER (default "native")
	Undirected bool   `toml:"undirected" json:"undirected,omitempty"` // EDGEBIN_UNDIRECTED
	LogLevel   string `toml:"log_level" json:"log_level,omitempty"`   // EDGEBIN_LOG_LEVEL (default "warn")

	NATSURL     string `toml:"nats_url" json:"nats_url,omitempty"`         // EDGEBIN_NATS_URL (optional, empty = no events)
	DatabaseURL string `toml:"database_url" json:"database_url,omitempty"` // EDGEBIN_DATABASE_URL (optional, empty = no ledger)

	// Upload settings
	S3Bucket   string `toml:"s3_bucket" json:"s3_bucket,omitempty"`     // EDGEBIN_S3_BUCKET (enables upload when set)
	S3Prefix   string `toml:"s3_prefix" json:"s3_prefix,omitempty"`     // EDGEBIN_S3_PREFIX
	S3Region   string `toml:"s3_region" json:"s3_region,omitempty"`     // EDGEBIN_S3_REGION (default "us-east-1")
	S3Endpoint string `toml:"s3_endpoint" json:"s3_endpoint,omitempty"` // EDGEBIN_S3_ENDPOINT (custom endpoint for MinIO)

	// Path is the file the settings were read from; empty when none was found.
	Path string `toml:"-" json:"path,omitempty"`
}

func defaults() *Config {
	return &Config{
		Extension: ".bin",
		ByteOrder: "native",
		LogLevel:  "warn",
		S3Region:  "us-east-1",
	}
}

// Load reads the config file named by EDGEBIN_CONFIG, or the default file
// under the user config directory, then applies environment overrides.
func Load() (*Config, error) {
	if path := os.Getenv("EDGEBIN_CONFIG"); path != "" {
		return LoadFile(path, true)
	}
	path, err := DefaultPath()
	if err != nil {
		return LoadFile("", false)
	}
	return LoadFile(path, false)
}

// DefaultPath returns ~/.config/edgebin/config.toml (or the platform equivalent).
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "edgebin", "config.toml"), nil
}

// LoadFile reads path (when non-empty) and applies environment overrides.
// A missing file is an error only when required is set.
func LoadFile(path string, required bool) (*Config, error) {
	c := defaults()
	if path != "" {
		if _, err := toml.DecodeFile(path, c); err != nil {
			if !errors.Is(err, fs.ErrNotExist) || required {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
		} else {
			c.Path = path
		}
	}

	c.Extension = envOrDefault("EDGEBIN_EXTENSION", c.Extension)
	c.ByteOrder = envOrDefault("EDGEBIN_BYTE_ORDER", c.ByteOrder)
	c.LogLevel = envOrDefault("EDGEBIN_LOG_LEVEL", c.LogLevel)
	c.NATSURL = envOrDefault("EDGEBIN_NATS_URL", c.NATSURL)
	c.DatabaseURL = envOrDefault("EDGEBIN_DATABASE_URL", c.DatabaseURL)
	c.S3Bucket = envOrDefault("EDGEBIN_S3_BUCKET", c.S3Bucket)
	c.S3Prefix = envOrDefault("EDGEBIN_S3_PREFIX", c.S3Prefix)
	c.S3Region = envOrDefault("EDGEBIN_S3_REGION", c.S3Region)
	c.S3Endpoint = envOrDefault("EDGEBIN_S3_ENDPOINT", c.S3Endpoint)

	if v := os.Getenv("EDGEBIN_UNDIRECTED"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("EDGEBIN_UNDIRECTED: %w", err)
		}
		c.Undirected = b
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks the values that have a fixed vocabulary.
func (c *Config) Validate() error {
	if _, err := edge.ParseByteOrder(c.ByteOrder); err != nil {
		return fmt.Errorf("byte_order: %w", err)
	}
	if _, err := c.Level(); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	if c.Extension == "" || c.Extension == "." {
		return fmt.Errorf("extension must not be empty")
	}
	return nil
}

// Level returns the configured slog level.
func (c *Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return l, err
	}
	return l, nil
}

// Redacted returns a copy safe to print: credentials in URLs are masked.
func (c *Config) Redacted() Config {
	out := *c
	out.DatabaseURL = redactURL(c.DatabaseURL)
	out.NATSURL = redactURL(c.NATSURL)
	return out
}

func redactURL(raw string) string {
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return raw
	}
	return u.Redacted()
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
