package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/sdulaney/pam/internal/api"
	"github.com/sdulaney/pam/internal/config"
)

var version = "dev"

// anonymousUser is the identity used when no user is configured anywhere.
// Commands that fall back to it announce the fallback so the result is
// never mistaken for a configured identity.
const anonymousUser = "unknown@mergeworld.com"

var (
	configPath string
	verbose    bool
	noColor    bool
)

var rootCmd = &cobra.Command{
	Use:           "pam",
	Short:         "PAM chief-of-staff assistant CLI",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path (also env PAM_CONFIG)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose diagnostics on stderr")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(memoryCmd)
	rootCmd.AddCommand(skillsCmd)
	rootCmd.AddCommand(contextCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(reflectCmd)
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(mcpCmd)
}

// loadConfig resolves the configuration for this invocation. The --config
// flag wins over the PAM_CONFIG env var, which wins over the default path.
func loadConfig() (config.Config, error) {
	path := configPath
	if path == "" {
		path = os.Getenv("PAM_CONFIG")
	}
	cfg, err := config.Resolve(path)
	if err != nil {
		return config.Config{}, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// newClient is the composition root for the API client: one client, one
// HTTP pool, shared by everything the command does.
var newClient = func() (*api.Client, config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, config.Config{}, err
	}
	slog.Debug("using PAM service", "url", cfg.APIURL)
	return api.New(cfg.APIURL), cfg, nil
}

// resolveUser picks the acting identity: explicit --user flag, then the
// configured user_email, then the announced anonymous fallback.
func resolveUser(flagUser string, cfg config.Config) string {
	if flagUser != "" {
		return flagUser
	}
	if cfg.UserEmail != "" {
		return cfg.UserEmail
	}
	printWarning("no user configured; acting as %s (set user_email or pass --user)", anonymousUser)
	return anonymousUser
}
