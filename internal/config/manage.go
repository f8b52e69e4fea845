package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// KeyInfo describes a config key for display purposes.
type KeyInfo struct {
	Key    string
	EnvVar string
	Value  string
}

// ShowAll returns the non-secret config key/value pairs from cfg.
func ShowAll(cfg Config) []KeyInfo {
	var result []KeyInfo
	for _, s := range specs {
		if s.secret {
			continue
		}
		result = append(result, KeyInfo{
			Key:    s.key,
			EnvVar: s.env,
			Value:  fmt.Sprintf("%v", s.extract(cfg)),
		})
	}
	return result
}

// ValidKeys returns the list of settable config key names.
func ValidKeys() []string {
	var keys []string
	for _, s := range specs {
		if !s.secret {
			keys = append(keys, s.key)
		}
	}
	return keys
}

// SetKey loads the persisted configuration from the file at path (defaults
// when the file does not exist — environment variables are not consulted),
// sets exactly one recognized field, and writes the file back. This is a
// read-modify-write against the file; two concurrent invocations race and
// the last writer wins.
func SetKey(path, key, value string) error {
	path, err := resolvePath(path)
	if err != nil {
		return err
	}

	cfg := defaults()
	if err := applyFile(&cfg, path); err != nil {
		return err
	}

	for _, s := range specs {
		if s.key != key {
			continue
		}
		if s.secret {
			return &ConfigError{Key: key, Err: fmt.Errorf("secret values are set via environment variable %s, not the config file", s.hint)}
		}
		switch s.typ {
		case kString:
			s.apply(&cfg, value)
		case kInt:
			i, err := strconv.Atoi(value)
			if err != nil {
				return &ConfigError{Key: key, Err: fmt.Errorf("invalid integer value %q", value)}
			}
			s.apply(&cfg, i)
		}
		return Persist(cfg, path)
	}

	return &ConfigError{Key: key}
}

// Persist serializes cfg to the config file at path ("" for the default
// location), creating the directory as needed.
func Persist(cfg Config, path string) error {
	path, err := resolvePath(path)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return &ConfigError{Path: path, Err: err}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return &ConfigError{Path: path, Err: err}
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return &ConfigError{Path: path, Err: err}
	}
	return nil
}

// Init writes a fresh default config file at path ("" for the default
// location), refusing to overwrite an existing file unless force is set.
func Init(path string, force bool) (string, error) {
	path, err := resolvePath(path)
	if err != nil {
		return "", err
	}

	if _, err := os.Stat(path); err == nil && !force {
		return "", &ConfigError{Path: path, Err: fmt.Errorf("already exists; use --force to overwrite")}
	}

	if err := Persist(defaults(), path); err != nil {
		return "", err
	}
	return path, nil
}

func resolvePath(path string) (string, error) {
	if path != "" {
		return path, nil
	}
	return DefaultPath()
}
