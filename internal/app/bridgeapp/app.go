// Package bridgeapp wires the control-plane binary: the MCP tool surface on
// stdio plus the websocket endpoint the runtime dials into.
package bridgeapp

import (
	"context"
	"fmt"
	"log"

	"github.com/louisbranch/scenebridge/internal/assets"
	"github.com/louisbranch/scenebridge/internal/bridge"
	"github.com/louisbranch/scenebridge/internal/control"
	"github.com/louisbranch/scenebridge/internal/platform/config"
	"github.com/louisbranch/scenebridge/internal/viewpoints"
	"gopkg.in/natefinch/lumberjack.v2"
)

// App owns the control-plane components for one process lifetime.
type App struct {
	bridge    *bridge.Bridge
	wsServer  *bridge.Server
	store     *viewpoints.Store
	mcpServer *control.Server
}

// New builds the app from configuration. Logging is redirected to the
// configured file because stdout belongs to the MCP transport.
func New(cfg config.Config) (*App, error) {
	if cfg.LogFile != "" {
		log.SetOutput(&lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
		})
	}

	b := bridge.New(cfg.CommandTimeout())

	wsServer, err := bridge.NewServer(cfg.Host, cfg.Port, b.Manager())
	if err != nil {
		b.Close()
		return nil, err
	}

	store, err := viewpoints.Open(cfg.StorePath)
	if err != nil {
		b.Close()
		return nil, fmt.Errorf("open viewpoint store: %w", err)
	}

	return &App{
		bridge:    b,
		wsServer:  wsServer,
		store:     store,
		mcpServer: control.NewServer(b, store, assets.NewMeshAnalyzer()),
	}, nil
}

// Bridge exposes the command bridge, mainly for tests.
func (a *App) Bridge() *bridge.Bridge {
	return a.bridge
}

// Serve runs the websocket endpoint and the MCP server until either stops or
// the context ends.
func (a *App) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	log.Printf("bridge listening at %s", a.wsServer.Addr())
	serveErr := make(chan error, 2)
	go func() {
		serveErr <- a.wsServer.Serve(ctx)
	}()
	go func() {
		serveErr <- a.mcpServer.Serve(ctx)
	}()

	// Either exiting brings the process down; the canceled context unwinds
	// the other.
	err := <-serveErr
	cancel()
	if second := <-serveErr; err == nil {
		err = second
	}

	if closeErr := a.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	return err
}

// Close releases the bridge and the viewpoint store.
func (a *App) Close() error {
	err := a.bridge.Close()
	if storeErr := a.store.Close(); storeErr != nil && err == nil {
		err = storeErr
	}
	return err
}
