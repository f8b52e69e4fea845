package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/sdulaney/pam/internal/api"
)

var reflectCmd = &cobra.Command{
	Use:   "reflect",
	Short: "Generate and save an end-of-day reflection",
	Long: `Generate and save an end-of-day reflection.

Without --session, reflects over all of today's sessions. The reflection is
printed, optionally exported as markdown, and saved on the service. Export
and save failures after a successful generation are warnings only; the
content has already been shown.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		flagUser, _ := cmd.Flags().GetString("user")
		sessions, _ := cmd.Flags().GetStringSlice("session")
		export, _ := cmd.Flags().GetBool("export")

		client, cfg, err := newClient()
		if err != nil {
			return err
		}
		user := resolveUser(flagUser, cfg)

		return runReflection(cmd, client, user, sessions, export)
	},
}

// runReflection is the shared workflow behind `pam reflect` and the chat
// loop's /reflect command.
func runReflection(cmd *cobra.Command, client *api.Client, user string, sessions []string, export bool) error {
	if len(sessions) == 0 {
		printStep("Collecting today's sessions for %s", user)
		today, err := client.TodaySessions(cmd.Context(), user)
		if err != nil {
			return err
		}
		if len(today) == 0 {
			printWarning("No sessions today; nothing to reflect on.")
			return nil
		}
		sessions = today
	}

	printStep("Generating reflection over %d session(s)", len(sessions))
	reflection, err := client.GenerateReflection(cmd.Context(), user, sessions)
	if err != nil {
		return err
	}

	printReflection(reflection)

	if export {
		path := fmt.Sprintf("reflection_%s.md", time.Now().UTC().Format("2006-01-02"))
		if err := os.WriteFile(path, []byte(reflectionMarkdown(reflection)), 0o644); err != nil {
			printWarning("Export failed: %v", err)
		} else {
			printSuccess("Exported to %s", path)
		}
	}

	id, err := client.SaveReflection(cmd.Context(), user, reflection)
	if err != nil {
		printWarning("Save failed: %v", err)
		return nil
	}
	printSuccess("Saved reflection %s", id)
	return nil
}

func reflectionMarkdown(r api.Reflection) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# Reflection %s\n", time.Now().UTC().Format("2006-01-02")))
	section := func(title string, items []string) {
		if len(items) == 0 {
			return
		}
		sb.WriteString("\n## " + title + "\n\n")
		for _, item := range items {
			sb.WriteString("- " + item + "\n")
		}
	}
	section("What worked", r.WhatWorked)
	section("What failed", r.WhatFailed)
	section("Learnings", r.Learnings)
	section("Action items", r.ActionItems)
	return sb.String()
}

func init() {
	reflectCmd.Flags().String("user", "", "act as this user")
	reflectCmd.Flags().StringSlice("session", nil, "reflect over these session ids instead of today's")
	reflectCmd.Flags().Bool("export", false, "also export the reflection as markdown")
}
