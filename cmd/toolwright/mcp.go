package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/soundmesh/toolwright"
	"github.com/soundmesh/toolwright/pkg/adapters/mcp"
	"github.com/soundmesh/toolwright/pkg/registry"
	"github.com/soundmesh/toolwright/pkg/tools"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Starts the embedded tool catalog as an MCP Server. Tool schemas are
derived from the extracted definitions, so advertised parameter domains
always match the guards in the tool bodies. Delegation targets are wired
to echo handlers unless a real backend is connected.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	Run: func(cmd *cobra.Command, args []string) {
		transport, _ := cmd.Flags().GetString("transport")
		port, _ := cmd.Flags().GetInt("port")

		logger := newLogger(cmd)
		slog.SetDefault(logger)

		suite := toolwright.New(toolwright.WithLogger(logger))
		srv, err := buildMCPServer(suite, logger)
		if err != nil {
			log.Fatalf("Error building MCP server: %v", err)
		}

		switch transport {
		case "stdio":
			// Ensure logs don't corrupt JSON-RPC on Stdout
			log.SetOutput(os.Stderr)
			slog.Info("Starting Toolwright MCP Server (Stdio)...")
			if err := srv.ServeStdio(); err != nil {
				slog.Error("MCP Server execution failed", "error", err)
				os.Exit(1)
			}
		case "sse":
			slog.Info("Starting Toolwright MCP Server (SSE)", "port", port)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := srv.ServeSSE(ctx, port); err != nil {
				if err != http.ErrServerClosed {
					slog.Error("MCP Server execution failed", "error", err)
					os.Exit(1)
				}
			}
			slog.Info("MCP Server stopped gracefully")
		default:
			log.Fatalf("Unknown transport: %s. Supported: stdio, sse", transport)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)

	mcpCmd.Flags().String("transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
	mcpCmd.Flags().Int("port", 8080, "Port to listen on (only for SSE)")
}

func buildMCPServer(suite *toolwright.Suite, logger *slog.Logger) (*mcp.Server, error) {
	reg := registry.New()
	reg.SetBackend(registry.Echo("backend"))

	srv := mcp.NewServer("toolwright-mcp", toolwright.Version, reg, mcp.WithLogger(logger))

	for _, src := range tools.Sources() {
		defs, err := suite.Extract(src)
		if err != nil {
			return nil, err
		}
		for _, def := range defs {
			if def.Handler != "" {
				reg.Register(def.Handler, registry.Echo(def.Handler))
			}
		}
		if err := srv.RegisterAll(defs, tools.Lookup); err != nil {
			return nil, err
		}
	}
	return srv, nil
}
