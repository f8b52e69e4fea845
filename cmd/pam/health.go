package main

import (
	"github.com/spf13/cobra"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the PAM service's health",
	RunE: func(cmd *cobra.Command, args []string) error {
		deep, _ := cmd.Flags().GetBool("deep")

		client, cfg, err := newClient()
		if err != nil {
			return err
		}

		printStep("Checking %s", cfg.APIURL)
		if err := client.Health(cmd.Context()); err != nil {
			printError("Service unreachable or unhealthy: %v", err)
			return err
		}
		printSuccess("Service healthy")

		if !deep {
			return nil
		}

		// Deep mode probes the heavier endpoints one by one so a single
		// broken dependency is easy to spot.
		if err := client.HealthDetailed(cmd.Context()); err != nil {
			printError("Detailed health: %v", err)
		} else {
			printSuccess("Detailed health OK")
		}

		if status, err := client.ContextStatus(cmd.Context()); err != nil {
			printError("Context subsystem: %v", err)
		} else {
			printSuccess("Context subsystem %s (%d files)", status.Status, len(status.Files))
		}

		if status, err := client.MemoryStatus(cmd.Context()); err != nil {
			printError("Memory subsystem: %v", err)
		} else {
			printSuccess("Memory subsystem %s (%d entries)", status.Status, status.TotalEntries)
		}
		return nil
	},
}

func init() {
	healthCmd.Flags().Bool("deep", false, "also probe detailed health, context, and memory")
}
