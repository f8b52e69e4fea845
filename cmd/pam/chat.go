package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sdulaney/pam/internal/api"
	"github.com/sdulaney/pam/internal/session"
)

var chatCmd = &cobra.Command{
	Use:   "chat [message]",
	Short: "Talk to the assistant",
	Long: `Talk to the assistant.

With a message argument, sends one message and prints the reply. Without
arguments, starts an interactive loop. --continue resumes your most recent
conversation instead of starting a new one.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		flagUser, _ := cmd.Flags().GetString("user")
		cont, _ := cmd.Flags().GetBool("continue")

		client, cfg, err := newClient()
		if err != nil {
			return err
		}
		user := resolveUser(flagUser, cfg)

		sessionID := session.New()
		if cont {
			var continued bool
			sessionID, continued = session.ContinueOrNew(cmd.Context(), client, user)
			if continued {
				printStep("Continuing session %s", sessionID)
			} else {
				printStep("No previous session found, starting fresh")
			}
		}

		if len(args) > 0 {
			reply, err := client.Chat(cmd.Context(), strings.Join(args, " "), user, sessionID)
			if err != nil {
				return err
			}
			fmt.Println(reply)
			return nil
		}

		return chatLoop(cmd, client, user, sessionID, os.Stdin)
	},
}

// chatLoop is the interactive mode. Local commands (quit, clear, help,
// /reflect, /status) are handled in the loop; /reflect covers the live
// session only and never saves, since the conversation is still going.
func chatLoop(cmd *cobra.Command, client *api.Client, user, sessionID string, in io.Reader) error {
	fmt.Printf("Chatting as %s (session %s). Type 'help' for commands.\n", colorize(ansiBold, user), sessionID)

	reader := bufio.NewReader(in)
	for {
		fmt.Print(colorize(ansiCyan, "you> "))
		line, err := reader.ReadString('\n')
		if err != nil {
			fmt.Println()
			return nil
		}
		line = strings.TrimSpace(line)

		switch line {
		case "":
			continue
		case "quit", "exit", "q":
			return nil
		case "clear":
			sessionID = session.New()
			printStep("Started new session %s", sessionID)
			continue
		case "help":
			fmt.Println("  quit/exit/q  leave the chat")
			fmt.Println("  clear        start a new session")
			fmt.Println("  /reflect     reflect on this session so far")
			fmt.Println("  /status      show session info and check service health")
			continue
		case "/status":
			printStatus("Session", "%s", sessionID)
			printStatus("User", "%s", user)
			if err := client.Health(cmd.Context()); err != nil {
				printError("Service unhealthy: %v", err)
			} else {
				printSuccess("Service healthy")
			}
			continue
		case "/reflect":
			reflection, err := client.GenerateReflection(cmd.Context(), user, []string{sessionID})
			if err != nil {
				printError("Reflection failed: %v", err)
				continue
			}
			printReflection(reflection)
			continue
		}

		reply, err := client.Chat(cmd.Context(), line, user, sessionID)
		if err != nil {
			printError("%v", err)
			continue
		}
		fmt.Printf("%s %s\n", colorize(ansiBold, "pam>"), reply)
	}
}

func init() {
	chatCmd.Flags().String("user", "", "act as this user")
	chatCmd.Flags().Bool("continue", false, "resume the most recent session")
}
