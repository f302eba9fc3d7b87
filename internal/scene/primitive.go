package scene

import (
	"cogentcore.org/core/math32"
	"github.com/louisbranch/scenebridge/internal/errors"
)

// NewPrimitive constructs a spawnable primitive node. The transform pointers
// follow the wire contract: nil leaves the identity default in place.
func NewPrimitive(name string, kind Kind, pos, rot, scale *math32.Vector3, color *[4]float32) (*Node, error) {
	if name == "" {
		return nil, errors.New(errors.CodeInvalidArgument, "primitive requires a name")
	}
	if !ValidPrimitive(kind) {
		return nil, errors.New(errors.CodeInvalidArgument, "unknown primitive kind %q", kind)
	}
	n := NewNode(name, kind)
	if pos != nil {
		n.Position = *pos
	}
	if rot != nil {
		n.Rotation = *rot
	}
	if scale != nil {
		n.Scale = *scale
	}
	if color != nil {
		n.Material.Color = *color
	}
	return n, nil
}

// DefaultStage builds the graph the runtime boots with: a ground plane, a
// light placeholder, and a camera marker, parented under a stage group. None
// of these are name-registered, so they are only reachable through the path
// tier, which keeps that tier exercised by real objects.
func DefaultStage(root *Node) {
	stage := NewNode("stage", KindGroup)
	root.AddChild(stage)

	ground := NewNode("ground", KindPlane)
	ground.Scale = math32.Vec3(20, 1, 20)
	ground.Material.Color = [4]float32{0.4, 0.4, 0.4, 1}
	stage.AddChild(ground)

	light := NewNode("key-light", KindLight)
	light.Position = math32.Vec3(5, 10, 5)
	stage.AddChild(light)

	marker := NewNode("camera", KindCamera)
	marker.Position = math32.Vec3(0, 5, 10)
	stage.AddChild(marker)
}
