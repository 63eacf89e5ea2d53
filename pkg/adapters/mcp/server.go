// Package mcp exposes classification results to model-context-protocol
// clients over stdio or SSE.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aretw0/patchbay"
	"github.com/aretw0/patchbay/pkg/domain"
	"github.com/aretw0/patchbay/pkg/routing"
	"github.com/aretw0/patchbay/pkg/snapshot"
)

// GroupsResponse carries one classification snapshot.
type GroupsResponse struct {
	Snapshot *snapshot.Snapshot `json:"snapshot" jsonschema_description:"The classified port groups for one direction"`
}

// PortResponse describes one raw port.
type PortResponse struct {
	Name       string `json:"name" jsonschema_description:"Fully-qualified port name"`
	PrettyName string `json:"pretty_name,omitempty" jsonschema_description:"Human-readable display name, when the backend provides one"`
	Type       string `json:"type" jsonschema_description:"Data type carried by the port (audio or midi)"`
	Direction  string `json:"direction" jsonschema_description:"Side of the matrix the port belongs to"`
	Physical   bool   `json:"physical" jsonschema_description:"True for hardware-backed ports"`
	Hidden     bool   `json:"hidden" jsonschema_description:"True for ports excluded from user-facing listings"`
}

// TotalsResponse sums one classification result.
type TotalsResponse struct {
	Direction string `json:"direction" jsonschema_description:"Side of the matrix that was counted"`
	Groups    int    `json:"groups" jsonschema_description:"Number of non-empty groups"`
	Bundles   int    `json:"bundles" jsonschema_description:"Number of bundles across all groups"`
	Audio     int    `json:"audio" jsonschema_description:"Total audio channels"`
	MIDI      int    `json:"midi" jsonschema_description:"Total MIDI channels"`
}

// Engine defines the interface required by the MCP server. The root
// patchbay.Engine satisfies it.
type Engine interface {
	Rebuild(ctx context.Context)
	Snapshot(dir domain.Direction) *snapshot.Snapshot
	Generation() uint64
	Source() routing.Source
}

// Server wraps a classification engine and exposes it as an MCP server.
type Server struct {
	engine    Engine
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP server instance.
func NewServer(engine Engine) *Server {
	s := &Server{
		engine:    engine,
		mcpServer: server.NewMCPServer("patchbay-mcp", strings.TrimSpace(patchbay.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)

	go func() {
		slog.Info("MCP server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		fmt.Println("\nShutdown signal received, shutting down server...")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		slog.Debug("CORS middleware", "method", r.Method, "path", r.URL.Path)
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	// TOOL: list_groups
	groupsTool := mcp.NewTool("list_groups",
		mcp.WithDescription("List the classified port groups for one side of the routing matrix."),
		mcp.WithString("direction", mcp.Description("Side to list: input or output (default input)")),
		mcp.WithOutputSchema[GroupsResponse](),
	)
	s.mcpServer.AddTool(groupsTool, mcp.NewStructuredToolHandler(s.handleListGroups))

	// TOOL: lookup_port
	portTool := mcp.NewTool("lookup_port",
		mcp.WithDescription("Resolve one raw port name to its metadata."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Fully-qualified port name, e.g. system:capture_1")),
		mcp.WithOutputSchema[PortResponse](),
	)
	s.mcpServer.AddTool(portTool, mcp.NewStructuredToolHandler(s.handleLookupPort))

	// TOOL: total_channels
	totalsTool := mcp.NewTool("total_channels",
		mcp.WithDescription("Count groups, bundles and channels for one side of the matrix."),
		mcp.WithString("direction", mcp.Description("Side to count: input or output (default input)")),
		mcp.WithOutputSchema[TotalsResponse](),
	)
	s.mcpServer.AddTool(totalsTool, mcp.NewStructuredToolHandler(s.handleTotalChannels))

	// TOOL: gather
	s.mcpServer.AddTool(mcp.NewTool("gather",
		mcp.WithDescription("Re-gather both directions from the routing source and report the new generation."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		s.engine.Rebuild(ctx)
		jsonBytes, _ := json.Marshal(map[string]uint64{"generation": s.engine.Generation()})
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})
}

// Handler methods for structured tools

func (s *Server) handleListGroups(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (GroupsResponse, error) {
	dir, err := directionArg(args)
	if err != nil {
		return GroupsResponse{}, err
	}
	return GroupsResponse{Snapshot: s.engine.Snapshot(dir)}, nil
}

func (s *Server) handleLookupPort(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (PortResponse, error) {
	name, _ := args["name"].(string)
	if name == "" {
		return PortResponse{}, fmt.Errorf("name is required")
	}

	p, ok := s.engine.Source().Engine().LookupPort(name)
	if !ok {
		return PortResponse{}, fmt.Errorf("unknown port %q", name)
	}

	return PortResponse{
		Name:       p.Name,
		PrettyName: p.PrettyName,
		Type:       p.Type.String(),
		Direction:  flagsDirection(p.Flags),
		Physical:   p.Flags.IsPhysical(),
		Hidden:     p.Flags.IsHidden(),
	}, nil
}

func (s *Server) handleTotalChannels(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (TotalsResponse, error) {
	dir, err := directionArg(args)
	if err != nil {
		return TotalsResponse{}, err
	}

	snap := s.engine.Snapshot(dir)
	totals := snap.TotalChannels()
	return TotalsResponse{
		Direction: snap.Direction,
		Groups:    len(snap.Groups),
		Bundles:   snap.BundleCount(),
		Audio:     totals.Audio,
		MIDI:      totals.MIDI,
	}, nil
}

func (s *Server) registerResources() {
	// EXPOSE: patchbay://groups
	s.mcpServer.AddResource(mcp.NewResource("patchbay://groups", "Current Port Groups",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		payload := map[string]*snapshot.Snapshot{
			"input":  s.engine.Snapshot(domain.DirInput),
			"output": s.engine.Snapshot(domain.DirOutput),
		}
		jsonBytes, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal groups: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "patchbay://groups",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}

func directionArg(args map[string]interface{}) (domain.Direction, error) {
	q, _ := args["direction"].(string)
	if q == "" {
		return domain.DirInput, nil
	}
	return domain.ParseDirection(q)
}

func flagsDirection(f domain.PortFlags) string {
	in := f.Matches(domain.DirInput)
	out := f.Matches(domain.DirOutput)
	switch {
	case in && out:
		return "both"
	case out:
		return "output"
	default:
		return "input"
	}
}
