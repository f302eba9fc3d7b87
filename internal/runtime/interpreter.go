// Package runtime is the scene-side half of the command-correlation core:
// it interprets decoded command envelopes against the object registry and
// the transition scheduler, advances per-frame effects, and pushes scene
// state back over the bridge link.
//
// Everything in this package runs on the frame-loop goroutine; handlers are
// synchronous and must never block, or they stall rendering.
package runtime

import (
	"encoding/json"
	"time"

	"cogentcore.org/core/math32"
	"github.com/louisbranch/scenebridge/internal/errors"
	"github.com/louisbranch/scenebridge/internal/protocol"
	"github.com/louisbranch/scenebridge/internal/scene"
	"github.com/louisbranch/scenebridge/internal/scene/transition"
)

// Interpreter dispatches command envelopes to their handlers.
type Interpreter struct {
	registry  *scene.Registry
	camera    *scene.Camera
	scheduler *transition.Scheduler
	spinner   *Spinner

	handlers map[string]func(any) protocol.Result
	now      func() time.Time
}

// NewInterpreter creates an interpreter over the given scene state. All
// collaborators are explicit; nothing is reached through globals.
func NewInterpreter(registry *scene.Registry, camera *scene.Camera, scheduler *transition.Scheduler, spinner *Spinner) *Interpreter {
	it := &Interpreter{
		registry:  registry,
		camera:    camera,
		scheduler: scheduler,
		spinner:   spinner,
		now:       time.Now,
	}
	it.handlers = map[string]func(any) protocol.Result{
		protocol.ActionSceneSnapshot:    it.handleSnapshot,
		protocol.ActionObjectFind:       it.handleFind,
		protocol.ActionCameraGet:        it.handleCameraGet,
		protocol.ActionObjectTransform:  it.handleTransform,
		protocol.ActionObjectVisibility: it.handleVisibility,
		protocol.ActionObjectSpawn:      it.handleSpawn,
		protocol.ActionObjectDuplicate:  it.handleDuplicate,
		protocol.ActionObjectRemove:     it.handleRemove,
		protocol.ActionCameraSet:        it.handleCameraSet,
		protocol.ActionCameraTransition: it.handleCameraTransition,
		protocol.ActionSpinStart:        it.handleSpinStart,
		protocol.ActionSpinStop:         it.handleSpinStop,
	}
	return it
}

// Execute runs exactly one handler for the command and returns its
// structured result. Unknown actions fail structurally, never by panic or
// dropped frame.
func (it *Interpreter) Execute(cmd protocol.Command) protocol.Result {
	handler, ok := it.handlers[cmd.Action]
	if !ok {
		return failResult(errors.New(errors.CodeUnknownAction, "unknown action %q", cmd.Action))
	}
	return handler(cmd.Payload)
}

// Mutating reports whether the action changes scene state, which drives
// push coalescing in the frame loop.
func Mutating(action string) bool {
	switch action {
	case protocol.ActionSceneSnapshot, protocol.ActionObjectFind, protocol.ActionCameraGet:
		return false
	}
	return true
}

func (it *Interpreter) handleSnapshot(any) protocol.Result {
	return okResult(BuildScene(it.registry, it.camera, it.scheduler))
}

func (it *Interpreter) handleFind(payload any) protocol.Result {
	q, ok := payload.(protocol.FindQuery)
	if !ok {
		return failResult(errors.New(errors.CodeInvalidArgument, "malformed find query"))
	}
	if q.Name == "" && q.Contains == "" && q.Kind == "" {
		return failResult(errors.New(errors.CodeInvalidArgument, "find requires a selector"))
	}
	nodes := it.registry.Find(q.Name, q.Contains, scene.Kind(q.Kind))
	states := make([]protocol.ObjectState, 0, len(nodes))
	for _, n := range nodes {
		states = append(states, objectState(n))
	}
	return okResult(map[string]any{"objects": states})
}

func (it *Interpreter) handleCameraGet(any) protocol.Result {
	return okResult(cameraState(it.camera, it.scheduler))
}

func (it *Interpreter) handleTransform(payload any) protocol.Result {
	cmd, ok := payload.(protocol.TransformCmd)
	if !ok {
		return failResult(errors.New(errors.CodeInvalidArgument, "malformed transform command"))
	}
	n, err := it.registry.Get(cmd.Target)
	if err != nil {
		return failResult(err)
	}
	if cmd.Position != nil {
		n.Position = toVec3(*cmd.Position)
	}
	if cmd.Rotation != nil {
		n.Rotation = toVec3(*cmd.Rotation)
	}
	if cmd.Scale != nil {
		n.Scale = toVec3(*cmd.Scale)
	}
	return okResult(objectState(n))
}

func (it *Interpreter) handleVisibility(payload any) protocol.Result {
	cmd, ok := payload.(protocol.VisibilityCmd)
	if !ok {
		return failResult(errors.New(errors.CodeInvalidArgument, "malformed visibility command"))
	}
	n, err := it.registry.Get(cmd.Target)
	if err != nil {
		return failResult(err)
	}
	n.Visible = cmd.Visible
	return okResult(objectState(n))
}

func (it *Interpreter) handleSpawn(payload any) protocol.Result {
	cmd, ok := payload.(protocol.SpawnCmd)
	if !ok {
		return failResult(errors.New(errors.CodeInvalidArgument, "malformed spawn command"))
	}
	var parent *scene.Node
	if cmd.Parent != "" {
		p, err := it.registry.Get(cmd.Parent)
		if err != nil {
			return failResult(err)
		}
		parent = p
	}
	var color *[4]float32
	if cmd.Color != nil {
		c := [4]float32(*cmd.Color)
		color = &c
	}
	n, err := scene.NewPrimitive(cmd.Name, scene.Kind(cmd.Kind), vecPtr(cmd.Position), vecPtr(cmd.Rotation), vecPtr(cmd.Scale), color)
	if err != nil {
		return failResult(err)
	}
	it.registry.Create(cmd.Name, n, parent)
	return okResult(objectState(n))
}

func (it *Interpreter) handleDuplicate(payload any) protocol.Result {
	cmd, ok := payload.(protocol.DuplicateCmd)
	if !ok {
		return failResult(errors.New(errors.CodeInvalidArgument, "malformed duplicate command"))
	}
	var offset math32.Vector3
	if cmd.Offset != nil {
		offset = toVec3(*cmd.Offset)
	}
	clone, err := it.registry.Duplicate(cmd.Source, cmd.NewName, offset)
	if err != nil {
		return failResult(err)
	}
	return okResult(objectState(clone))
}

func (it *Interpreter) handleRemove(payload any) protocol.Result {
	cmd, ok := payload.(protocol.RemoveCmd)
	if !ok {
		return failResult(errors.New(errors.CodeInvalidArgument, "malformed remove command"))
	}
	n, err := it.registry.Remove(cmd.Target)
	if err != nil {
		return failResult(err)
	}
	// A removed object takes its per-frame animation entry with it.
	it.spinner.Stop(n.Name)
	return okResult(map[string]any{"removed": n.Name})
}

func (it *Interpreter) handleCameraSet(payload any) protocol.Result {
	cmd, ok := payload.(protocol.CameraSetCmd)
	if !ok {
		return failResult(errors.New(errors.CodeInvalidArgument, "malformed camera command"))
	}
	if cmd.Position != nil {
		it.camera.Position = toVec3(*cmd.Position)
	}
	if cmd.Aim != nil {
		aim := toVec3(*cmd.Aim)
		it.camera.LookAt(aim)
		it.scheduler.NoteAim(aim)
	}
	if cmd.Lens != nil {
		applyLens(it.camera, *cmd.Lens)
	}
	return okResult(cameraState(it.camera, it.scheduler))
}

func (it *Interpreter) handleCameraTransition(payload any) protocol.Result {
	cmd, ok := payload.(protocol.CameraTransitionCmd)
	if !ok {
		return failResult(errors.New(errors.CodeInvalidArgument, "malformed transition command"))
	}
	if cmd.DurationMs < 0 {
		return failResult(errors.New(errors.CodeInvalidArgument, "duration must be non-negative"))
	}
	var aim *math32.Vector3
	if cmd.Aim != nil {
		v := toVec3(*cmd.Aim)
		aim = &v
	}
	lens := transition.Lens{}
	if cmd.Lens != nil {
		lens = transition.Lens{FovDeg: cmd.Lens.FovDeg, Near: cmd.Lens.Near, Far: cmd.Lens.Far}
	}
	duration := time.Duration(cmd.DurationMs * float64(time.Millisecond))
	it.scheduler.Begin(it.now(), toVec3(cmd.To), aim, lens, duration, cmd.Animate)
	return okResult(map[string]any{"animating": it.scheduler.Active()})
}

func (it *Interpreter) handleSpinStart(payload any) protocol.Result {
	cmd, ok := payload.(protocol.SpinStartCmd)
	if !ok {
		return failResult(errors.New(errors.CodeInvalidArgument, "malformed spin command"))
	}
	n, err := it.registry.Get(cmd.Target)
	if err != nil {
		return failResult(err)
	}
	it.spinner.Start(n.Name, n, toVec3(cmd.RateDps))
	return okResult(map[string]any{"spinning": n.Name})
}

func (it *Interpreter) handleSpinStop(payload any) protocol.Result {
	cmd, ok := payload.(protocol.SpinStopCmd)
	if !ok {
		return failResult(errors.New(errors.CodeInvalidArgument, "malformed spin command"))
	}
	n, err := it.registry.Get(cmd.Target)
	if err != nil {
		return failResult(err)
	}
	stopped := it.spinner.Stop(n.Name)
	return okResult(map[string]any{"stopped": stopped})
}

func applyLens(cam *scene.Camera, lens protocol.LensPatch) {
	if lens.FovDeg != nil {
		cam.FovDeg = *lens.FovDeg
	}
	if lens.Near != nil {
		cam.Near = *lens.Near
	}
	if lens.Far != nil {
		cam.Far = *lens.Far
	}
}

func okResult(data any) protocol.Result {
	raw, err := json.Marshal(data)
	if err != nil {
		return failResult(errors.Wrap(errors.CodeUnknown, err, "encode result"))
	}
	return protocol.Result{Success: true, Data: raw}
}

func failResult(err error) protocol.Result {
	return protocol.Result{
		Success: false,
		Error:   &protocol.WireError{Code: string(errors.CodeOf(err)), Message: err.Error()},
	}
}

func toVec3(v protocol.Vec) math32.Vector3 {
	return math32.Vec3(v[0], v[1], v[2])
}

func vecPtr(v *protocol.Vec) *math32.Vector3 {
	if v == nil {
		return nil
	}
	out := toVec3(*v)
	return &out
}
