package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/sdulaney/pam/internal/mcp"
	"github.com/sdulaney/pam/internal/session"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve PAM capabilities as MCP tools over stdio",
	Long: `Serve PAM capabilities as MCP tools over stdio.

Exposes search_memory, index_memory, invoke_skill, and read_context to a
local MCP client (e.g. an editor agent). One session id covers the whole
server process.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		flagUser, _ := cmd.Flags().GetString("user")

		client, cfg, err := newClient()
		if err != nil {
			return err
		}
		user := resolveUser(flagUser, cfg)

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		srv := mcp.NewServer(mcp.Deps{
			Client:    client,
			UserEmail: user,
			SessionID: session.New(),
		})

		g, ctx := errgroup.WithContext(ctx)
		stdio := server.NewStdioServer(srv)
		g.Go(func() error {
			return stdio.Listen(ctx, os.Stdin, os.Stdout)
		})

		err = g.Wait()
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	},
}

func init() {
	mcpCmd.Flags().String("user", "", "act as this user")
}
