package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sdulaney/pam/internal/session"
)

// defaultTestParams are canned parameters for `skills test` so known skills
// can be smoke-tested without hand-writing JSON.
var defaultTestParams = map[string]string{
	"jira-query":     `{"jql": "assignee = currentUser() AND resolution = Unresolved ORDER BY updated DESC", "max_results": 5}`,
	"github-commits": `{"days": 1}`,
	"daily-ambition": `{}`,
	"web-fetch":      `{"url": "https://example.com"}`,
	"pam-memory":     `{"action": "search", "query": "test", "limit": 3}`,
	"freebusy":       `{"days": 1}`,
	"jira-create":    `{"summary": "Test issue from pam CLI", "dry_run": true}`,
}

var skillsCmd = &cobra.Command{
	Use:   "skills",
	Short: "List, test, and invoke remote skills",
}

var skillsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available skills",
	RunE: func(cmd *cobra.Command, args []string) error {
		detailed, _ := cmd.Flags().GetBool("detailed")

		client, _, err := newClient()
		if err != nil {
			return err
		}

		skills, err := client.ListSkills(cmd.Context())
		if err != nil {
			return err
		}

		if len(skills) == 0 {
			fmt.Println("No skills available.")
			return nil
		}

		for _, s := range skills {
			marker := colorize(ansiGreen, "●")
			if !s.Enabled {
				marker = colorize(ansiRed, "○")
			}
			fmt.Printf("%s %s", marker, colorize(ansiBold, s.Key))
			if detailed {
				fmt.Printf("  [%s, risk: %s]\n    %s\n", s.Category, s.RiskLevel, s.Description)
			} else {
				fmt.Println()
			}
		}
		return nil
	},
}

var skillsTestCmd = &cobra.Command{
	Use:   "test <skill>",
	Short: "Run a skill with safe canned parameters",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		skill := args[0]
		params, _ := cmd.Flags().GetString("params")

		if params == "" {
			if canned, ok := defaultTestParams[skill]; ok {
				params = canned
				printStep("Using default test params for %s", skill)
			} else {
				params = "{}"
			}
		}

		return runSkill(cmd, skill, params, "")
	},
}

var skillsInvokeCmd = &cobra.Command{
	Use:   "invoke <skill>",
	Short: "Invoke a skill with explicit parameters",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		params, _ := cmd.Flags().GetString("params")
		user, _ := cmd.Flags().GetString("user")
		return runSkill(cmd, args[0], params, user)
	},
}

func runSkill(cmd *cobra.Command, skill, params, flagUser string) error {
	client, cfg, err := newClient()
	if err != nil {
		return err
	}

	user := resolveUser(flagUser, cfg)
	printStep("Invoking %s as %s", skill, user)

	result, err := client.InvokeSkill(cmd.Context(), skill, params, user, session.New())
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

var skillsLogCmd = &cobra.Command{
	Use:   "log",
	Short: "Show recent skill invocations",
	RunE: func(cmd *cobra.Command, args []string) error {
		skill, _ := cmd.Flags().GetString("skill")
		limit, _ := cmd.Flags().GetInt("limit")

		client, _, err := newClient()
		if err != nil {
			return err
		}

		entries, err := client.SkillLog(cmd.Context(), skill, limit)
		if err != nil {
			return err
		}

		if len(entries) == 0 {
			fmt.Println("No skill invocations recorded.")
			return nil
		}

		for _, e := range entries {
			status := colorize(ansiGreen, e.Status)
			if e.Status != "success" {
				status = colorize(ansiRed, e.Status)
			}
			fmt.Printf("%s  %s  %s  %dms\n", e.Timestamp, colorize(ansiBold, e.Skill), status, e.DurationMS)
			if e.Error != "" {
				fmt.Printf("    %s\n", e.Error)
			}
		}
		return nil
	},
}

func init() {
	skillsListCmd.Flags().Bool("detailed", false, "show category and description")
	skillsTestCmd.Flags().String("params", "", "JSON parameters (default: canned per-skill params)")
	skillsInvokeCmd.Flags().String("params", "{}", "JSON parameters")
	skillsInvokeCmd.Flags().String("user", "", "act as this user")
	skillsLogCmd.Flags().String("skill", "", "filter by skill key")
	skillsLogCmd.Flags().Int("limit", 20, "maximum number of log entries")

	skillsCmd.AddCommand(skillsListCmd)
	skillsCmd.AddCommand(skillsTestCmd)
	skillsCmd.AddCommand(skillsInvokeCmd)
	skillsCmd.AddCommand(skillsLogCmd)
}
