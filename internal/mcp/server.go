// Package mcp exposes the remote PAM capabilities as MCP tools so local
// agents can search memory, run skills, and read context documents over
// stdio.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/sdulaney/pam/internal/api"
)

// Deps holds what the tool handlers need. One session id covers the whole
// server process so skill invocations correlate on the service side.
type Deps struct {
	Client    *api.Client
	UserEmail string
	SessionID string
}

// NewServer creates an MCP server with all PAM tools registered.
func NewServer(deps Deps) *server.MCPServer {
	s := server.NewMCPServer(
		"pam",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions("pam — chief-of-staff assistant: semantic memory, skills, and live work context."),
		server.WithRecovery(),
	)

	s.AddTool(
		mcp.NewTool("search_memory",
			mcp.WithDescription("Semantically search the assistant's long-term memory."),
			mcp.WithString("query", mcp.Description("Search query"), mcp.Required()),
			mcp.WithNumber("limit", mcp.Description("Maximum number of results (default 5)")),
		),
		toolSearchMemory(deps),
	)

	s.AddTool(
		mcp.NewTool("index_memory",
			mcp.WithDescription("Store a piece of content into the assistant's long-term memory."),
			mcp.WithString("content", mcp.Description("The text content to store"), mcp.Required()),
			mcp.WithArray("tags", mcp.Description("Optional tags for categorization")),
		),
		toolIndexMemory(deps),
	)

	s.AddTool(
		mcp.NewTool("invoke_skill",
			mcp.WithDescription("Execute a named skill on the assistant service."),
			mcp.WithString("skill", mcp.Description("Skill key, e.g. jira-query"), mcp.Required()),
			mcp.WithString("params", mcp.Description("Skill parameters as a JSON object (default {})")),
		),
		toolInvokeSkill(deps),
	)

	s.AddTool(
		mcp.NewTool("read_context",
			mcp.WithDescription("Read one of the assistant's context documents as plain text."),
			mcp.WithString("name", mcp.Description("Document file name, e.g. jira_summary.md"), mcp.Required()),
		),
		toolReadContext(deps),
	)

	return s
}

func toolSearchMemory(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query, err := req.RequireString("query")
		if err != nil {
			return mcpError("query is required"), nil
		}

		limit := req.GetInt("limit", 5)
		if limit <= 0 {
			limit = 5
		}
		if limit > 50 {
			limit = 50
		}

		results, err := deps.Client.SearchMemories(ctx, query, limit, deps.UserEmail)
		if err != nil {
			return mcpError(fmt.Sprintf("search failed: %v", err)), nil
		}
		if len(results) == 0 {
			return mcpText("[]"), nil
		}

		b, err := json.Marshal(results)
		if err != nil {
			return mcpError(fmt.Sprintf("failed to marshal results: %v", err)), nil
		}
		return mcpText(string(b)), nil
	}
}

func toolIndexMemory(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		content, err := req.RequireString("content")
		if err != nil {
			return mcpError("content is required"), nil
		}

		tags := req.GetStringSlice("tags", nil)

		id, err := deps.Client.IndexMemory(ctx, content, tags)
		if err != nil {
			return mcpError(fmt.Sprintf("index failed: %v", err)), nil
		}
		return mcpText(fmt.Sprintf("Indexed memory %s", id)), nil
	}
}

func toolInvokeSkill(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		skill, err := req.RequireString("skill")
		if err != nil {
			return mcpError("skill is required"), nil
		}

		params := req.GetString("params", "{}")

		result, err := deps.Client.InvokeSkill(ctx, skill, params, deps.UserEmail, deps.SessionID)
		if err != nil {
			return mcpError(fmt.Sprintf("skill %s failed: %v", skill, err)), nil
		}

		b, err := json.Marshal(result)
		if err != nil {
			return mcpError(fmt.Sprintf("failed to marshal result: %v", err)), nil
		}
		return mcpText(string(b)), nil
	}
}

func toolReadContext(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		name, err := req.RequireString("name")
		if err != nil {
			return mcpError("name is required"), nil
		}

		text, err := deps.Client.ContextFile(ctx, name)
		if err != nil {
			return mcpError(fmt.Sprintf("reading %s failed: %v", name, err)), nil
		}
		return mcpText(text), nil
	}
}

func mcpText(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: text},
		},
	}
}

func mcpError(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: msg},
		},
		IsError: true,
	}
}
