package runtime

import (
	"encoding/json"
	"testing"
	"time"

	"cogentcore.org/core/math32"
	"github.com/louisbranch/scenebridge/internal/protocol"
	"github.com/louisbranch/scenebridge/internal/scene"
	"github.com/louisbranch/scenebridge/internal/scene/transition"
)

type testWorld struct {
	interp    *Interpreter
	registry  *scene.Registry
	camera    *scene.Camera
	scheduler *transition.Scheduler
	spinner   *Spinner
}

func newTestWorld() *testWorld {
	root := scene.NewRoot()
	scene.DefaultStage(root)
	registry := scene.NewRegistry(root)
	camera := scene.NewCamera()
	scheduler := transition.NewScheduler(camera)
	spinner := NewSpinner()
	return &testWorld{
		interp:    NewInterpreter(registry, camera, scheduler, spinner),
		registry:  registry,
		camera:    camera,
		scheduler: scheduler,
		spinner:   spinner,
	}
}

func (w *testWorld) run(t *testing.T, action string, payload any) protocol.Result {
	t.Helper()
	return w.interp.Execute(protocol.Command{Action: action, Payload: payload})
}

func (w *testWorld) mustRun(t *testing.T, action string, payload any) protocol.Result {
	t.Helper()
	res := w.run(t, action, payload)
	if !res.Success {
		t.Fatalf("%s failed: %+v", action, res.Error)
	}
	return res
}

func decodeData(t *testing.T, res protocol.Result, out any) {
	t.Helper()
	if err := json.Unmarshal(res.Data, out); err != nil {
		t.Fatalf("decode result data: %v", err)
	}
}

func vec(x, y, z float32) *protocol.Vec {
	v := protocol.Vec{x, y, z}
	return &v
}

func TestUnknownActionFailsStructurally(t *testing.T) {
	w := newTestWorld()
	res := w.run(t, "scene_teleport", nil)
	if res.Success {
		t.Fatal("expected failure")
	}
	if res.Error == nil || res.Error.Code != "UNKNOWN_ACTION" {
		t.Fatalf("expected UNKNOWN_ACTION, got %+v", res.Error)
	}
}

func TestSnapshotReportsStageAndCamera(t *testing.T) {
	w := newTestWorld()
	res := w.mustRun(t, protocol.ActionSceneSnapshot, protocol.SnapshotQuery{})

	var state protocol.SceneState
	decodeData(t, res, &state)

	names := map[string]bool{}
	for _, obj := range state.Objects {
		names[obj.Name] = true
	}
	for _, want := range []string{"stage", "ground", "key-light"} {
		if !names[want] {
			t.Errorf("snapshot missing %q", want)
		}
	}
	if state.Camera.FovDeg != 60 {
		t.Errorf("expected default fov 60, got %v", state.Camera.FovDeg)
	}
	if state.Camera.Projection != scene.ProjectionPerspective {
		t.Errorf("unexpected projection %q", state.Camera.Projection)
	}
}

func TestFindSelectors(t *testing.T) {
	w := newTestWorld()
	w.mustRun(t, protocol.ActionObjectSpawn, protocol.SpawnCmd{Name: "crate-a", Kind: "box"})
	w.mustRun(t, protocol.ActionObjectSpawn, protocol.SpawnCmd{Name: "crate-b", Kind: "box"})

	var found struct {
		Objects []protocol.ObjectState `json:"objects"`
	}

	t.Run("by name", func(t *testing.T) {
		res := w.mustRun(t, protocol.ActionObjectFind, protocol.FindQuery{Name: "crate-a"})
		decodeData(t, res, &found)
		if len(found.Objects) != 1 || found.Objects[0].Name != "crate-a" {
			t.Fatalf("unexpected matches: %+v", found.Objects)
		}
	})

	t.Run("by substring", func(t *testing.T) {
		res := w.mustRun(t, protocol.ActionObjectFind, protocol.FindQuery{Contains: "crate"})
		decodeData(t, res, &found)
		if len(found.Objects) != 2 {
			t.Fatalf("expected 2 matches, got %d", len(found.Objects))
		}
	})

	t.Run("by kind", func(t *testing.T) {
		res := w.mustRun(t, protocol.ActionObjectFind, protocol.FindQuery{Kind: "plane"})
		decodeData(t, res, &found)
		if len(found.Objects) != 1 || found.Objects[0].Name != "ground" {
			t.Fatalf("unexpected matches: %+v", found.Objects)
		}
	})

	t.Run("no selector", func(t *testing.T) {
		res := w.run(t, protocol.ActionObjectFind, protocol.FindQuery{})
		if res.Success || res.Error.Code != "INVALID_ARGUMENT" {
			t.Fatalf("expected INVALID_ARGUMENT, got %+v", res)
		}
	})
}

func TestTransformPatchesOnlyGivenFields(t *testing.T) {
	w := newTestWorld()
	w.mustRun(t, protocol.ActionObjectSpawn, protocol.SpawnCmd{
		Name: "cube", Kind: "box", Position: vec(1, 2, 3), Scale: vec(2, 2, 2),
	})

	res := w.mustRun(t, protocol.ActionObjectTransform, protocol.TransformCmd{
		Target: "cube", Position: vec(9, 9, 9),
	})

	var obj protocol.ObjectState
	decodeData(t, res, &obj)
	if obj.Position != (protocol.Vec{9, 9, 9}) {
		t.Errorf("position not applied: %v", obj.Position)
	}
	if obj.Scale != (protocol.Vec{2, 2, 2}) {
		t.Errorf("scale must be untouched: %v", obj.Scale)
	}
}

func TestTransformMissingTarget(t *testing.T) {
	w := newTestWorld()
	res := w.run(t, protocol.ActionObjectTransform, protocol.TransformCmd{Target: "ghost", Position: vec(0, 0, 0)})
	if res.Success || res.Error.Code != "OBJECT_NOT_FOUND" {
		t.Fatalf("expected OBJECT_NOT_FOUND, got %+v", res)
	}
}

func TestVisibilityToggle(t *testing.T) {
	w := newTestWorld()
	w.mustRun(t, protocol.ActionObjectSpawn, protocol.SpawnCmd{Name: "cube", Kind: "box"})

	res := w.mustRun(t, protocol.ActionObjectVisibility, protocol.VisibilityCmd{Target: "cube", Visible: false})
	var obj protocol.ObjectState
	decodeData(t, res, &obj)
	if obj.Visible {
		t.Fatal("expected hidden object")
	}
}

func TestSpawnValidation(t *testing.T) {
	w := newTestWorld()

	t.Run("unknown kind", func(t *testing.T) {
		res := w.run(t, protocol.ActionObjectSpawn, protocol.SpawnCmd{Name: "x", Kind: "torus"})
		if res.Success || res.Error.Code != "INVALID_ARGUMENT" {
			t.Fatalf("expected INVALID_ARGUMENT, got %+v", res)
		}
	})

	t.Run("missing parent", func(t *testing.T) {
		res := w.run(t, protocol.ActionObjectSpawn, protocol.SpawnCmd{Name: "x", Kind: "box", Parent: "ghost"})
		if res.Success || res.Error.Code != "OBJECT_NOT_FOUND" {
			t.Fatalf("expected OBJECT_NOT_FOUND, got %+v", res)
		}
	})

	t.Run("under path parent", func(t *testing.T) {
		res := w.mustRun(t, protocol.ActionObjectSpawn, protocol.SpawnCmd{Name: "prop", Kind: "sphere", Parent: "/stage"})
		var obj protocol.ObjectState
		decodeData(t, res, &obj)
		if obj.Path != "/stage/prop" {
			t.Fatalf("unexpected path %q", obj.Path)
		}
	})
}

func TestDuplicateOffsetsClone(t *testing.T) {
	w := newTestWorld()
	w.mustRun(t, protocol.ActionObjectSpawn, protocol.SpawnCmd{Name: "cube", Kind: "box", Position: vec(1, 0, 0)})

	res := w.mustRun(t, protocol.ActionObjectDuplicate, protocol.DuplicateCmd{
		Source: "cube", NewName: "cube-2", Offset: vec(3, 0, 0),
	})
	var obj protocol.ObjectState
	decodeData(t, res, &obj)
	if obj.Name != "cube-2" || obj.Position != (protocol.Vec{4, 0, 0}) {
		t.Fatalf("unexpected clone: %+v", obj)
	}
}

func TestRemoveClearsSpinEntry(t *testing.T) {
	w := newTestWorld()
	w.mustRun(t, protocol.ActionObjectSpawn, protocol.SpawnCmd{Name: "cube", Kind: "box"})
	w.mustRun(t, protocol.ActionSpinStart, protocol.SpinStartCmd{Target: "cube", RateDps: protocol.Vec{0, 90, 0}})
	if w.spinner.Active() != 1 {
		t.Fatal("spin entry not registered")
	}

	w.mustRun(t, protocol.ActionObjectRemove, protocol.RemoveCmd{Target: "cube"})

	if w.spinner.Active() != 0 {
		t.Fatal("remove must drop the animation entry")
	}
	res := w.run(t, protocol.ActionObjectFind, protocol.FindQuery{Name: "cube"})
	var found struct {
		Objects []protocol.ObjectState `json:"objects"`
	}
	decodeData(t, res, &found)
	if len(found.Objects) != 0 {
		t.Fatalf("removed object still findable: %+v", found.Objects)
	}
}

func TestCameraSetAimBecomesTransitionBaseline(t *testing.T) {
	w := newTestWorld()
	w.mustRun(t, protocol.ActionCameraSet, protocol.CameraSetCmd{
		Position: vec(0, 0, 10),
		Aim:      vec(0, 0, 0),
	})

	res := w.mustRun(t, protocol.ActionCameraGet, protocol.CameraQuery{})
	var cam protocol.CameraState
	decodeData(t, res, &cam)
	if cam.Aim != (protocol.Vec{0, 0, 0}) {
		t.Fatalf("expected recorded aim, got %v", cam.Aim)
	}
	if w.camera.Facing().Z >= 0 {
		t.Fatal("camera must face the aim point")
	}
}

func TestCameraSetLensPatch(t *testing.T) {
	w := newTestWorld()
	fov := float32(30)
	res := w.mustRun(t, protocol.ActionCameraSet, protocol.CameraSetCmd{Lens: &protocol.LensPatch{FovDeg: &fov}})

	var cam protocol.CameraState
	decodeData(t, res, &cam)
	if cam.FovDeg != 30 {
		t.Errorf("fov not applied: %v", cam.FovDeg)
	}
	if cam.Near != 0.1 || cam.Far != 1000 {
		t.Errorf("untouched lens fields changed: near=%v far=%v", cam.Near, cam.Far)
	}
}

func TestCameraTransitionImmediateWhenNotAnimated(t *testing.T) {
	w := newTestWorld()
	res := w.mustRun(t, protocol.ActionCameraTransition, protocol.CameraTransitionCmd{
		To: protocol.Vec{1, 2, 3}, DurationMs: 4000, Animate: false,
	})

	var out struct {
		Animating bool `json:"animating"`
	}
	decodeData(t, res, &out)
	if out.Animating {
		t.Fatal("non-animated transition must complete synchronously")
	}
	if w.camera.Position != math32.Vec3(1, 2, 3) {
		t.Fatalf("camera not moved: %v", w.camera.Position)
	}
}

func TestCameraTransitionAnimatedStaysActive(t *testing.T) {
	w := newTestWorld()
	res := w.mustRun(t, protocol.ActionCameraTransition, protocol.CameraTransitionCmd{
		To: protocol.Vec{0, 0, 0}, DurationMs: 2000, Animate: true,
	})

	var out struct {
		Animating bool `json:"animating"`
	}
	decodeData(t, res, &out)
	if !out.Animating {
		t.Fatal("expected an in-flight transition")
	}
	w.scheduler.Tick(time.Now().Add(3 * time.Second))
	if w.scheduler.Active() {
		t.Fatal("transition must finish after its duration")
	}
}

func TestCameraTransitionRejectsNegativeDuration(t *testing.T) {
	w := newTestWorld()
	res := w.run(t, protocol.ActionCameraTransition, protocol.CameraTransitionCmd{
		To: protocol.Vec{0, 0, 0}, DurationMs: -1, Animate: true,
	})
	if res.Success || res.Error.Code != "INVALID_ARGUMENT" {
		t.Fatalf("expected INVALID_ARGUMENT, got %+v", res)
	}
}

func TestSpinStopReportsWhetherEntryExisted(t *testing.T) {
	w := newTestWorld()
	w.mustRun(t, protocol.ActionObjectSpawn, protocol.SpawnCmd{Name: "cube", Kind: "box"})

	var out struct {
		Stopped bool `json:"stopped"`
	}
	res := w.mustRun(t, protocol.ActionSpinStop, protocol.SpinStopCmd{Target: "cube"})
	decodeData(t, res, &out)
	if out.Stopped {
		t.Fatal("nothing was spinning yet")
	}

	w.mustRun(t, protocol.ActionSpinStart, protocol.SpinStartCmd{Target: "cube", RateDps: protocol.Vec{0, 180, 0}})
	res = w.mustRun(t, protocol.ActionSpinStop, protocol.SpinStopCmd{Target: "cube"})
	decodeData(t, res, &out)
	if !out.Stopped {
		t.Fatal("expected the entry to be removed")
	}
}

func TestSpinStartMissingTarget(t *testing.T) {
	w := newTestWorld()
	res := w.run(t, protocol.ActionSpinStart, protocol.SpinStartCmd{Target: "ghost", RateDps: protocol.Vec{0, 90, 0}})
	if res.Success || res.Error.Code != "OBJECT_NOT_FOUND" {
		t.Fatalf("expected OBJECT_NOT_FOUND, got %+v", res)
	}
}
