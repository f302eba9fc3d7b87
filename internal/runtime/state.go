package runtime

import (
	"cogentcore.org/core/math32"
	"github.com/louisbranch/scenebridge/internal/protocol"
	"github.com/louisbranch/scenebridge/internal/scene"
	"github.com/louisbranch/scenebridge/internal/scene/transition"
)

// BuildScene flattens the live graph into the wire-level scene description.
// The root itself is structural and not reported.
func BuildScene(registry *scene.Registry, cam *scene.Camera, scheduler *transition.Scheduler) protocol.SceneState {
	objects := []protocol.ObjectState{}
	registry.Root().Walk(func(n *scene.Node) {
		if n.IsRoot() {
			return
		}
		objects = append(objects, objectState(n))
	})
	return protocol.SceneState{
		Objects: objects,
		Camera:  cameraState(cam, scheduler),
	}
}

func objectState(n *scene.Node) protocol.ObjectState {
	return protocol.ObjectState{
		Name:     n.Name,
		Kind:     string(n.Kind),
		Path:     n.Path(),
		Position: fromVec3(n.Position),
		Rotation: fromVec3(n.Rotation),
		Scale:    fromVec3(n.Scale),
		Visible:  n.Visible,
		Color:    protocol.Color(n.Material.Color),
	}
}

func cameraState(cam *scene.Camera, scheduler *transition.Scheduler) protocol.CameraState {
	return protocol.CameraState{
		Position:   fromVec3(cam.Position),
		Aim:        fromVec3(scheduler.AimPoint()),
		FovDeg:     cam.FovDeg,
		Near:       cam.Near,
		Far:        cam.Far,
		Projection: cam.Projection,
	}
}

func fromVec3(v math32.Vector3) protocol.Vec {
	return protocol.Vec{v.X, v.Y, v.Z}
}
