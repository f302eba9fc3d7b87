package control

import (
	"context"
	"errors"
	"fmt"

	"github.com/louisbranch/scenebridge/internal/assets"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// serverName identifies this MCP server to clients.
const serverName = "scenebridge"

// serverVersion identifies the MCP server version.
const serverVersion = "0.1.0"

// Server hosts the MCP tool surface over stdio.
type Server struct {
	mcpServer *mcp.Server
}

// NewServer creates the MCP server and registers every tool against the
// given bridge, viewpoint store, and analyzer.
func NewServer(commander Commander, store ViewpointStore, analyzer assets.Analyzer) *Server {
	mcpServer := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, &mcp.ServerOptions{
		Instructions: "Controls a live 3D scene: query and mutate objects, drive the camera, and manage saved viewpoints.",
	})

	mcp.AddTool(mcpServer, SceneSnapshotTool(), SceneSnapshotHandler(commander))
	mcp.AddTool(mcpServer, ObjectFindTool(), ObjectFindHandler(commander))
	mcp.AddTool(mcpServer, CameraGetTool(), CameraGetHandler(commander))
	mcp.AddTool(mcpServer, ObjectTransformTool(), ObjectTransformHandler(commander))
	mcp.AddTool(mcpServer, ObjectVisibilityTool(), ObjectVisibilityHandler(commander))
	mcp.AddTool(mcpServer, ObjectSpawnTool(), ObjectSpawnHandler(commander))
	mcp.AddTool(mcpServer, ObjectDuplicateTool(), ObjectDuplicateHandler(commander))
	mcp.AddTool(mcpServer, ObjectRemoveTool(), ObjectRemoveHandler(commander))
	mcp.AddTool(mcpServer, CameraSetTool(), CameraSetHandler(commander))
	mcp.AddTool(mcpServer, CameraTransitionTool(), CameraTransitionHandler(commander))
	mcp.AddTool(mcpServer, SpinStartTool(), SpinStartHandler(commander))
	mcp.AddTool(mcpServer, SpinStopTool(), SpinStopHandler(commander))
	mcp.AddTool(mcpServer, ViewpointSaveTool(), ViewpointSaveHandler(commander, store))
	mcp.AddTool(mcpServer, ViewpointApplyTool(), ViewpointApplyHandler(commander, store))
	mcp.AddTool(mcpServer, ViewpointListTool(), ViewpointListHandler(store))
	mcp.AddTool(mcpServer, ViewpointDeleteTool(), ViewpointDeleteHandler(store))
	mcp.AddTool(mcpServer, SceneAnalyzeTool(), SceneAnalyzeHandler(commander, analyzer))
	mcp.AddTool(mcpServer, RuntimeStatusTool(), RuntimeStatusHandler(commander))

	return &Server{mcpServer: mcpServer}
}

// Serve runs the MCP server on stdio and blocks until it stops or the
// context ends.
func (s *Server) Serve(ctx context.Context) error {
	if s == nil || s.mcpServer == nil {
		return fmt.Errorf("MCP server is not configured")
	}
	err := s.mcpServer.Run(ctx, &mcp.StdioTransport{})
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		err = nil
	}
	if err != nil {
		return fmt.Errorf("serve MCP: %w", err)
	}
	return nil
}
