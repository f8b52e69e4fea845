package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sdulaney/pam/internal/extract"
)

var memoryCmd = &cobra.Command{
	Use:   "memory",
	Short: "Search and manage the assistant's long-term memory",
}

var memoryStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show memory subsystem status",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := newClient()
		if err != nil {
			return err
		}

		status, err := client.MemoryStatus(cmd.Context())
		if err != nil {
			return err
		}

		printStatus("Status", "%s", status.Status)
		printStatus("Entries", "%d", status.TotalEntries)
		for _, table := range status.Tables {
			fmt.Printf("  %s: %d rows\n", colorize(ansiCyan, table.Name), table.RowCount)
		}
		return nil
	},
}

var memorySearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Semantic search over stored memories",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")
		limit, _ := cmd.Flags().GetInt("limit")
		user, _ := cmd.Flags().GetString("user")

		client, cfg, err := newClient()
		if err != nil {
			return err
		}

		results, err := client.SearchMemories(cmd.Context(), query, limit, resolveUser(user, cfg))
		if err != nil {
			return err
		}

		if len(results) == 0 {
			fmt.Println("No memories found.")
			return nil
		}

		for i, r := range results {
			fmt.Printf("\n%s [similarity: %.3f]\n", colorize(ansiBold, fmt.Sprintf("Result %d", i+1)), r.Similarity)
			if len(r.Tags) > 0 {
				fmt.Printf("  Tags: %s\n", strings.Join(r.Tags, ", "))
			}
			fmt.Printf("  %s\n", truncate(r.Content, 500))
		}
		return nil
	},
}

var memoryIndexCmd = &cobra.Command{
	Use:   "index [content]",
	Short: "Store content into memory",
	Long: `Store content into memory.

Examples:
  pam memory index "decision: ship the Q3 plan" --tags decision
  pam memory index --file ./notes.pdf --tags notes
  pam memory index --url https://example.com/postmortem --tags incident
  cat notes.md | pam memory index`,
	RunE: func(cmd *cobra.Command, args []string) error {
		file, _ := cmd.Flags().GetString("file")
		url, _ := cmd.Flags().GetString("url")
		tagsStr, _ := cmd.Flags().GetString("tags")

		var tags []string
		if tagsStr != "" {
			tags = strings.Split(tagsStr, ",")
			for i := range tags {
				tags[i] = strings.TrimSpace(tags[i])
			}
		}

		client, _, err := newClient()
		if err != nil {
			return err
		}

		var content string
		switch {
		case len(args) > 0:
			content = strings.Join(args, " ")
		case file != "":
			content, err = extract.FromFile(file)
			if err != nil {
				return err
			}
		case url != "":
			content, err = extract.FromURL(cmd.Context(), client.HTTPClient(), url)
			if err != nil {
				return err
			}
		default:
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("reading stdin: %w", err)
			}
			content = string(data)
		}

		if strings.TrimSpace(content) == "" {
			return fmt.Errorf("nothing to index: provide content, --file, --url, or pipe stdin")
		}

		id, err := client.IndexMemory(cmd.Context(), content, tags)
		if err != nil {
			return err
		}

		printSuccess("Indexed memory %s", id)
		return nil
	},
}

var memoryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent memories",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		user, _ := cmd.Flags().GetString("user")

		client, cfg, err := newClient()
		if err != nil {
			return err
		}

		entries, err := client.ListMemories(cmd.Context(), limit, resolveUser(user, cfg))
		if err != nil {
			return err
		}

		if len(entries) == 0 {
			fmt.Println("No memories stored.")
			return nil
		}

		for _, e := range entries {
			id := e.ID
			if len(id) > 8 {
				id = id[:8]
			}
			fmt.Printf("%s  %s  %s\n", colorize(ansiCyan, id), e.CreatedAt, truncate(e.Content, 80))
		}
		return nil
	},
}

var memoryClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all of a user's memories",
	RunE: func(cmd *cobra.Command, args []string) error {
		user, _ := cmd.Flags().GetString("user")
		force, _ := cmd.Flags().GetBool("force")

		if user == "" {
			return fmt.Errorf("--user is required for clear")
		}

		if !force {
			fmt.Printf("This will delete ALL memories for %s. Type 'yes' to continue: ", user)
			reader := bufio.NewReader(os.Stdin)
			line, _ := reader.ReadString('\n')
			if strings.TrimSpace(line) != "yes" {
				printWarning("Aborted.")
				return nil
			}
		}

		client, _, err := newClient()
		if err != nil {
			return err
		}

		deleted, err := client.ClearMemories(cmd.Context(), user)
		if err != nil {
			return err
		}

		printSuccess("Deleted %d memories for %s", deleted, user)
		return nil
	},
}

func init() {
	memorySearchCmd.Flags().Int("limit", 10, "maximum number of results")
	memorySearchCmd.Flags().String("user", "", "search another user's memories")
	memoryIndexCmd.Flags().String("file", "", "file to extract and index (PDF or plain text)")
	memoryIndexCmd.Flags().String("url", "", "URL to fetch, strip to text, and index")
	memoryIndexCmd.Flags().String("tags", "", "comma-separated tags")
	memoryListCmd.Flags().Int("limit", 20, "maximum number of entries")
	memoryListCmd.Flags().String("user", "", "list another user's memories")
	memoryClearCmd.Flags().String("user", "", "user whose memories to delete")
	memoryClearCmd.Flags().Bool("force", false, "skip confirmation prompt")

	memoryCmd.AddCommand(memoryStatusCmd)
	memoryCmd.AddCommand(memorySearchCmd)
	memoryCmd.AddCommand(memoryIndexCmd)
	memoryCmd.AddCommand(memoryListCmd)
	memoryCmd.AddCommand(memoryClearCmd)
}
