package runtime

import (
	"context"
	"log"
	"time"

	"github.com/louisbranch/scenebridge/internal/protocol"
	"github.com/louisbranch/scenebridge/internal/scene"
	"github.com/louisbranch/scenebridge/internal/scene/transition"
)

// Sender transmits one outbound frame to the bridge. A sender with no live
// connection reports an error and the frame is dropped.
type Sender interface {
	Send(data []byte) error
}

// Loop drives the scene at a fixed frame rate. It is the single owner of the
// scene graph: inbound frames are queued from the connection goroutine and
// interpreted here, between transition ticks and effect advances.
type Loop struct {
	interp    *Interpreter
	registry  *scene.Registry
	camera    *scene.Camera
	scheduler *transition.Scheduler
	spinner   *Spinner
	sender    Sender

	commands  chan []byte
	interval  time.Duration
	keepalive time.Duration
}

// NewLoop creates a frame loop over the given scene state, pushing frames
// through sender. frameRate is in frames per second; keepalive is the maximum
// quiet interval between scene pushes.
func NewLoop(registry *scene.Registry, camera *scene.Camera, scheduler *transition.Scheduler, spinner *Spinner, sender Sender, frameRate int, keepalive time.Duration) *Loop {
	if frameRate <= 0 {
		frameRate = 60
	}
	return &Loop{
		interp:    NewInterpreter(registry, camera, scheduler, spinner),
		registry:  registry,
		camera:    camera,
		scheduler: scheduler,
		spinner:   spinner,
		sender:    sender,
		commands:  make(chan []byte, 64),
		interval:  time.Second / time.Duration(frameRate),
		keepalive: keepalive,
	}
}

// SetSender wires the outbound link. It must be called before Run; the loop
// and the client reference each other, so one side is attached late.
func (l *Loop) SetSender(sender Sender) {
	l.sender = sender
}

// Submit queues one inbound frame for the next tick. A full queue drops the
// frame; the bridge side resolves the loss by timeout.
func (l *Loop) Submit(data []byte) {
	select {
	case l.commands <- data:
	default:
		log.Printf("runtime: command queue full, dropping frame")
	}
}

// Run ticks the scene until the context ends.
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	last := time.Now()
	var lastPush time.Time
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			dirty := l.drain()
			if l.scheduler.Active() {
				l.scheduler.Tick(now)
				dirty = true
			}
			if l.spinner.Advance(now.Sub(last)) {
				dirty = true
			}
			last = now

			if dirty || (l.keepalive > 0 && now.Sub(lastPush) >= l.keepalive) {
				l.push()
				lastPush = now
			}
		}
	}
}

// drain interprets every queued frame and reports whether any of them
// mutated the scene.
func (l *Loop) drain() bool {
	dirty := false
	for {
		select {
		case data := <-l.commands:
			if l.handleFrame(data) {
				dirty = true
			}
		default:
			return dirty
		}
	}
}

// handleFrame decodes and executes one inbound frame, answering correlated
// commands even when decoding fails. It reports whether the scene changed.
func (l *Loop) handleFrame(data []byte) bool {
	cmd, err := protocol.DecodeCommand(data)
	if err != nil {
		log.Printf("runtime: %v", err)
		if cmd.RequestID != "" {
			l.respond(cmd.RequestID, failResult(err))
		}
		return false
	}

	res := l.interp.Execute(cmd)
	if cmd.RequestID != "" {
		l.respond(cmd.RequestID, res)
	}
	return res.Success && Mutating(cmd.Action)
}

func (l *Loop) respond(requestID string, res protocol.Result) {
	data, err := protocol.EncodeResponse(requestID, res)
	if err != nil {
		log.Printf("runtime: encode response %s: %v", requestID, err)
		return
	}
	if err := l.sender.Send(data); err != nil {
		log.Printf("runtime: send response %s: %v", requestID, err)
	}
}

// push transmits one coalesced scene frame. At most one push leaves per tick
// regardless of how many commands mutated the scene.
func (l *Loop) push() {
	data, err := protocol.EncodePush(BuildScene(l.registry, l.camera, l.scheduler))
	if err != nil {
		log.Printf("runtime: encode scene push: %v", err)
		return
	}
	if err := l.sender.Send(data); err != nil {
		log.Printf("runtime: send scene push: %v", err)
	}
}
