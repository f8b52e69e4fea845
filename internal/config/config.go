package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the resolved CLI configuration. It is assembled once per
// invocation by Resolve and treated as read-only afterwards; the only way to
// change it is the explicit set operation, which rewrites the config file for
// future invocations.
type Config struct {
	APIURL     string `yaml:"api_url"`
	GCSBucket  string `yaml:"gcs_bucket"`
	UserEmail  string `yaml:"user_email,omitempty"`
	DBHost     string `yaml:"db_host"`
	DBPort     int    `yaml:"db_port"`
	DBName     string `yaml:"db_name"`
	DBUser     string `yaml:"db_user"`
	DBPassword string `yaml:"db_password,omitempty"`
	CLIAPIKey  string `yaml:"cli_api_key,omitempty"`
}

// ConfigError reports a malformed or unreadable config file, or a bad key in
// a set operation. File absence is never a ConfigError; defaults apply.
type ConfigError struct {
	Path string
	Key  string
	Err  error
}

func (e *ConfigError) Error() string {
	switch {
	case e.Key != "" && e.Err != nil:
		return fmt.Sprintf("config key %q: %v", e.Key, e.Err)
	case e.Key != "":
		return fmt.Sprintf("unknown config key: %q", e.Key)
	case e.Path != "":
		return fmt.Sprintf("config file %s: %v", e.Path, e.Err)
	default:
		return e.Err.Error()
	}
}

func (e *ConfigError) Unwrap() error { return e.Err }

func defaults() Config {
	return Config{
		APIURL:    "https://pam-production-service-925072200586.us-central1.run.app",
		GCSBucket: "pam-context-files",
		DBHost:    "localhost",
		DBPort:    5433,
		DBName:    "pam_pm_knowledge",
		DBUser:    "postgres",
	}
}

// Resolve merges compiled-in defaults, the config file, and PAM_* environment
// variables into one snapshot, lowest to highest precedence.
//
// explicitPath selects the config file; when empty the platform default from
// DefaultPath is used. A missing file is fine. A file that exists but cannot
// be read or parsed is a *ConfigError naming the path — resolution never
// falls back to defaults silently once a file was found.
func Resolve(explicitPath string) (Config, error) {
	cfg := defaults()

	path := explicitPath
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return Config{}, err
		}
		path = p
	}

	if err := applyFile(&cfg, path); err != nil {
		return Config{}, err
	}

	applyEnvOverrides(&cfg)
	return cfg, nil
}

func applyFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return &ConfigError{Path: path, Err: err}
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return &ConfigError{Path: path, Err: err}
	}
	return nil
}

// DefaultPath returns the platform-standard config file location,
// e.g. ~/.config/pam/config.yaml on Linux.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("determining config directory: %w", err)
	}
	return filepath.Join(dir, "pam", "config.yaml"), nil
}
