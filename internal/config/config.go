package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/tidwall/jsonc"
)

const DefaultSource = "assets/people.json"

// Config holds user preferences for roster. Every field can also be set by
// an environment variable or a command-line flag; flags win.
type Config struct {
	// Source is where people are read from (path, URL, s3://, sqlite://, postgres://).
	Source string `json:"source,omitempty"`
	// Locale is the BCP 47 tag used for name ordering ("" = root collation).
	Locale string `json:"locale,omitempty"`
	// Glyphs selects "unicode" or "ascii" icons in the TUI.
	Glyphs string `json:"glyphs,omitempty"`

	LogFile  string `json:"logFile,omitempty"`
	LogLevel string `json:"logLevel,omitempty"`

	// SQLTable is the table read by SQL sources.
	SQLTable string   `json:"sqlTable,omitempty"`
	S3       S3Config `json:"s3,omitempty"`

	// Watch reloads a file source when it changes on disk.
	Watch bool `json:"watch,omitempty"`
}

// S3Config tunes s3:// sources. Static keys are optional; without them the
// AWS default credential chain applies.
type S3Config struct {
	Region          string `json:"region,omitempty"`
	Endpoint        string `json:"endpoint,omitempty"`
	PathStyle       bool   `json:"pathStyle,omitempty"`
	AccessKeyID     string `json:"accessKeyId,omitempty"`
	SecretAccessKey string `json:"secretAccessKey,omitempty"`
}

func Default() Config {
	return Config{
		Source:   DefaultSource,
		Glyphs:   "unicode",
		LogLevel: "info",
		SQLTable: "people",
	}
}

func Dir() (string, error) {
	// Test/advanced override (keeps unit tests from touching ~/.roster).
	if v := strings.TrimSpace(os.Getenv("ROSTER_CONFIG_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".roster"), nil
}

func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load returns defaults overlaid with the config file (if any) and then the
// ROSTER_* environment. A missing file is not an error.
func Load() (Config, error) {
	cfg := Default()

	path, err := Path()
	if err != nil {
		return cfg, err
	}
	b, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return cfg, fmt.Errorf("read config: %w", err)
	default:
		if err := json.Unmarshal(jsonc.ToJSON(b), &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	strs := map[string]*string{
		"ROSTER_SOURCE":      &cfg.Source,
		"ROSTER_LOCALE":      &cfg.Locale,
		"ROSTER_GLYPHS":      &cfg.Glyphs,
		"ROSTER_LOG_FILE":    &cfg.LogFile,
		"ROSTER_LOG_LEVEL":   &cfg.LogLevel,
		"ROSTER_SQL_TABLE":   &cfg.SQLTable,
		"ROSTER_S3_REGION":   &cfg.S3.Region,
		"ROSTER_S3_ENDPOINT": &cfg.S3.Endpoint,

		"ROSTER_S3_ACCESS_KEY_ID":     &cfg.S3.AccessKeyID,
		"ROSTER_S3_SECRET_ACCESS_KEY": &cfg.S3.SecretAccessKey,
	}
	for k, dst := range strs {
		if v := strings.TrimSpace(os.Getenv(k)); v != "" {
			*dst = v
		}
	}

	bools := map[string]*bool{
		"ROSTER_WATCH":         &cfg.Watch,
		"ROSTER_S3_PATH_STYLE": &cfg.S3.PathStyle,
	}
	for k, dst := range bools {
		v := strings.TrimSpace(os.Getenv(k))
		if v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", k, err)
		}
		*dst = b
	}
	return nil
}
