package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sdulaney/pam/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or update CLI configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		for _, k := range config.ShowAll(cfg) {
			fmt.Printf("  %s = %s", colorize(ansiBold, k.Key), k.Value)
			if k.EnvVar != "" && os.Getenv(k.EnvVar) != "" {
				fmt.Printf("  (from %s)", k.EnvVar)
			}
			fmt.Println()
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: fmt.Sprintf(`Set a configuration value in the config file.

Valid keys: %v

Secrets (db_password, cli_api_key) are never written to the file; set them
via their environment variables instead.`, config.ValidKeys()),
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]

		path := configPath
		if path == "" {
			path = os.Getenv("PAM_CONFIG")
		}

		if err := config.SetKey(path, key, value); err != nil {
			return err
		}

		printSuccess("Set %s = %s", key, value)
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a fresh default config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")

		path := configPath
		if path == "" {
			path = os.Getenv("PAM_CONFIG")
		}

		written, err := config.Init(path, force)
		if err != nil {
			return err
		}

		printSuccess("Wrote %s", written)
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path in use",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if path == "" {
			path = os.Getenv("PAM_CONFIG")
		}
		if path == "" {
			p, err := config.DefaultPath()
			if err != nil {
				return err
			}
			path = p
		}
		fmt.Println(path)
		return nil
	},
}

func init() {
	configInitCmd.Flags().Bool("force", false, "overwrite an existing config file")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
}
