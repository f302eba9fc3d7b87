// Package runtimeapp wires the headless runtime binary: the scene graph, the
// frame loop, and the outbound link to the bridge.
package runtimeapp

import (
	"context"
	"errors"
	"log"

	"github.com/louisbranch/scenebridge/internal/platform/config"
	"github.com/louisbranch/scenebridge/internal/runtime"
	"github.com/louisbranch/scenebridge/internal/scene"
	"github.com/louisbranch/scenebridge/internal/scene/transition"
	"gopkg.in/natefinch/lumberjack.v2"
)

// App owns the runtime components for one process lifetime.
type App struct {
	loop   *runtime.Loop
	client *runtime.Client
}

// New builds the runtime app: a default stage, the frame loop driving it,
// and the client that dials the bridge.
func New(cfg config.Config) *App {
	if cfg.LogFile != "" {
		log.SetOutput(&lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
		})
	}

	root := scene.NewRoot()
	scene.DefaultStage(root)
	registry := scene.NewRegistry(root)
	camera := scene.NewCamera()
	scheduler := transition.NewScheduler(camera)
	spinner := runtime.NewSpinner()

	app := &App{}
	loop := runtime.NewLoop(registry, camera, scheduler, spinner, nil, cfg.FrameRate, cfg.SnapshotKeepalive())
	client := runtime.NewClient(cfg.BridgeURL(), loop)
	loop.SetSender(client)

	app.loop = loop
	app.client = client
	return app
}

// Serve runs the frame loop and the bridge link until the context ends.
func (a *App) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	serveErr := make(chan error, 2)
	go func() {
		serveErr <- a.loop.Run(ctx)
	}()
	go func() {
		serveErr <- a.client.Run(ctx)
	}()

	err := <-serveErr
	cancel()
	if second := <-serveErr; err == nil {
		err = second
	}
	if errors.Is(err, context.Canceled) {
		err = nil
	}
	return err
}
