package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aretw0/patchbay"
	mcpAdapter "github.com/aretw0/patchbay/pkg/adapters/mcp"
	"github.com/aretw0/patchbay/pkg/sessionfile"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Starts the engine as an MCP server so AI agents can inspect the
classified port groups as tools.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	Run: func(cmd *cobra.Command, args []string) {
		sessionPath, _ := cmd.Flags().GetString("session")
		if sessionPath == "" && len(args) > 0 {
			sessionPath = args[0]
		}
		transport, _ := cmd.Flags().GetString("transport")
		port, _ := cmd.Flags().GetInt("port")

		if sessionPath == "" {
			fmt.Println("Error: a session file is required (--session)")
			os.Exit(1)
		}

		session, err := sessionfile.Load(sessionPath)
		if err != nil {
			log.Fatalf("Error loading session: %v", err)
		}
		eng, err := patchbay.New(session, patchbay.WithLogger(slog.Default()))
		if err != nil {
			log.Fatalf("Error initializing patchbay: %v", err)
		}
		eng.Rebuild(context.Background())

		srv := mcpAdapter.NewServer(eng)

		switch transport {
		case "stdio":
			// Ensure logs don't corrupt JSON-RPC on Stdout
			log.SetOutput(os.Stderr)
			slog.Info("Starting Patchbay MCP server (stdio)")
			if err := srv.ServeStdio(); err != nil {
				slog.Error("MCP server execution failed", "error", err)
				os.Exit(1)
			}
		case "sse":
			slog.Info("Starting Patchbay MCP server (SSE)", "port", port)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := srv.ServeSSE(ctx, port); err != nil {
				if err != http.ErrServerClosed {
					slog.Error("MCP server execution failed", "error", err)
					os.Exit(1)
				}
			}
			slog.Info("MCP server stopped gracefully")
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
