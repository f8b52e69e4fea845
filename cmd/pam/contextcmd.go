package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// contextFileAlias maps friendly names to the documents the service tracks,
// so `pam context show jira` works without remembering file names.
var contextFileAlias = map[string]string{
	"github":      "github_ai_garage.md",
	"jira":        "jira_summary.md",
	"daily":       "daily_ambitions_summary.md",
	"strategic":   "strategic_summary.md",
	"tactical":    "tactical_summary.md",
	"operational": "operational_summary.md",
	"database":    "database_summary.md",
}

var contextCmd = &cobra.Command{
	Use:   "context",
	Short: "Inspect and refresh the assistant's work context documents",
}

var contextStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show context subsystem status",
	RunE: func(cmd *cobra.Command, args []string) error {
		freshness, _ := cmd.Flags().GetBool("freshness")

		client, _, err := newClient()
		if err != nil {
			return err
		}

		status, err := client.ContextStatus(cmd.Context())
		if err != nil {
			return err
		}

		printStatus("Status", "%s", status.Status)
		printStatus("Bucket", "%s", status.Bucket)
		printStatus("Last sync", "%s", status.LastSync)
		if freshness {
			for _, f := range status.Files {
				marker := colorize(ansiGreen, "fresh")
				if f.Stale {
					marker = colorize(ansiYellow, "stale")
				}
				fmt.Printf("  %s  %s  (updated %s)\n", marker, f.Name, f.UpdatedAt)
			}
		}
		return nil
	},
}

var contextRefreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Regenerate context documents on the service",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := newClient()
		if err != nil {
			return err
		}

		printStep("Refreshing context documents...")
		result, err := client.RefreshContext(cmd.Context())
		if err != nil {
			return err
		}

		for _, name := range result.Refreshed {
			printSuccess("Refreshed %s", name)
		}
		for _, name := range result.Skipped {
			printStatus("Skipped", "%s", name)
		}
		for _, msg := range result.Errors {
			printError("%s", msg)
		}
		return nil
	},
}

var contextShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Print one context document",
	Long: `Print one context document.

Accepts either a file name (jira_summary.md) or a friendly alias
(jira, github, daily, strategic, tactical, operational, database).`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		if alias, ok := contextFileAlias[name]; ok {
			name = alias
		}

		client, _, err := newClient()
		if err != nil {
			return err
		}

		text, err := client.ContextFile(cmd.Context(), name)
		if err != nil {
			return err
		}

		fmt.Print(text)
		return nil
	},
}

var contextListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tracked context documents",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := newClient()
		if err != nil {
			return err
		}

		files, err := client.ListContextFiles(cmd.Context())
		if err != nil {
			return err
		}

		if len(files) == 0 {
			fmt.Println("No context documents tracked.")
			return nil
		}

		for _, f := range files {
			fmt.Printf("%s  %6d bytes  updated %s\n", colorize(ansiCyan, f.Name), f.SizeBytes, f.UpdatedAt)
		}
		return nil
	},
}

var contextStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show context usage statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := newClient()
		if err != nil {
			return err
		}

		stats, err := client.ContextStats(cmd.Context())
		if err != nil {
			return err
		}

		printStatus("Files", "%d", stats.TotalFiles)
		printStatus("Total size", "%d bytes", stats.TotalSizeBytes)
		for name, count := range stats.ReadCounts {
			fmt.Printf("  %s: read %d times\n", name, count)
		}
		return nil
	},
}

func init() {
	contextStatusCmd.Flags().Bool("freshness", false, "show per-file freshness")

	contextCmd.AddCommand(contextStatusCmd)
	contextCmd.AddCommand(contextRefreshCmd)
	contextCmd.AddCommand(contextShowCmd)
	contextCmd.AddCommand(contextListCmd)
	contextCmd.AddCommand(contextStatsCmd)
}
