package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/louisbranch/scenebridge/internal/app/bridgeapp"
	"github.com/louisbranch/scenebridge/internal/platform/config"
)

var configPath = flag.String("config", "", "path to a scenebridge.toml config file")

// main starts the MCP control plane on stdio and the runtime endpoint.
func main() {
	flag.Parse()
	log.SetPrefix("[bridge] ")

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	app, err := bridgeapp.New(cfg)
	if err != nil {
		log.Fatalf("failed to initialize bridge: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Serve(ctx); err != nil {
		log.Fatalf("failed to serve: %v", err)
	}
}
