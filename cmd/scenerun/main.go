package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/louisbranch/scenebridge/internal/app/runtimeapp"
	"github.com/louisbranch/scenebridge/internal/platform/config"
)

var configPath = flag.String("config", "", "path to a scenebridge.toml config file")

// main starts the headless scene runtime and keeps it dialing the bridge.
func main() {
	flag.Parse()
	log.SetPrefix("[runtime] ")

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := runtimeapp.New(cfg).Serve(ctx); err != nil {
		log.Fatalf("failed to serve: %v", err)
	}
}
