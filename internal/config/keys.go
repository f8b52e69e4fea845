package config

import (
	"os"
	"strconv"
)

type keyType int

const (
	kString keyType = iota
	kInt
)

type keySpec struct {
	key     string
	typ     keyType
	env     string
	secret  bool
	hint    string // env var suggested when a secret set is rejected
	apply   func(cfg *Config, v any)
	extract func(cfg Config) any
}

var specs = []keySpec{
	{
		key: "api_url", typ: kString, env: "PAM_API_URL",
		apply:   func(cfg *Config, v any) { cfg.APIURL = v.(string) },
		extract: func(cfg Config) any { return cfg.APIURL },
	},
	{
		key: "gcs_bucket", typ: kString, env: "PAM_GCS_BUCKET",
		apply:   func(cfg *Config, v any) { cfg.GCSBucket = v.(string) },
		extract: func(cfg Config) any { return cfg.GCSBucket },
	},
	{
		key: "user_email", typ: kString, env: "PAM_USER_EMAIL",
		apply:   func(cfg *Config, v any) { cfg.UserEmail = v.(string) },
		extract: func(cfg Config) any { return cfg.UserEmail },
	},
	{
		key: "db_host", typ: kString, env: "PAM_DB_HOST",
		apply:   func(cfg *Config, v any) { cfg.DBHost = v.(string) },
		extract: func(cfg Config) any { return cfg.DBHost },
	},
	{
		key: "db_port", typ: kInt, env: "PAM_DB_PORT",
		apply:   func(cfg *Config, v any) { cfg.DBPort = v.(int) },
		extract: func(cfg Config) any { return cfg.DBPort },
	},
	{
		key: "db_name", typ: kString,
		apply:   func(cfg *Config, v any) { cfg.DBName = v.(string) },
		extract: func(cfg Config) any { return cfg.DBName },
	},
	{
		key: "db_user", typ: kString,
		apply:   func(cfg *Config, v any) { cfg.DBUser = v.(string) },
		extract: func(cfg Config) any { return cfg.DBUser },
	},
	{
		key: "db_password", typ: kString, env: "PAM_DB_PASSWORD", secret: true, hint: "PAM_DB_PASSWORD",
		apply:   func(cfg *Config, v any) { cfg.DBPassword = v.(string) },
		extract: func(cfg Config) any { return cfg.DBPassword },
	},
	{
		key: "cli_api_key", typ: kString, secret: true, hint: "PAM_CLI_API_KEY",
		apply:   func(cfg *Config, v any) { cfg.CLIAPIKey = v.(string) },
		extract: func(cfg Config) any { return cfg.CLIAPIKey },
	},
}

// applyEnvOverrides applies recognized PAM_* variables on top of cfg. An
// unparsable integer keeps the current value rather than aborting.
func applyEnvOverrides(cfg *Config) {
	for _, s := range specs {
		if s.env == "" {
			continue
		}
		raw := os.Getenv(s.env)
		if raw == "" {
			continue
		}
		switch s.typ {
		case kString:
			s.apply(cfg, raw)
		case kInt:
			if i, err := strconv.Atoi(raw); err == nil {
				s.apply(cfg, i)
			}
		}
	}
}
