package main

import (
	"context"

	"github.com/spf13/cobra"

	"odooctl/internal/logging"
	mcpserver "odooctl/internal/mcp"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server over stdio",
	Long: `Starts an MCP server over stdin/stdout exposing the Odoo gateway as
tools: version lookup, search-read, record CRUD and generic execute_kw.

The server monitors for parent process death. When the host editor or agent
disconnects, the server self-terminates to prevent zombie processes.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	srv := mcpserver.NewServer(client, version)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	mcpserver.WatchParent(ctx, 0, cancel)

	logging.New("mcp").Info("starting odooctl MCP server over stdio (parent watchdog active)")
	return srv.MCPServer.Run(ctx, &sdkmcp.StdioTransport{})
}
