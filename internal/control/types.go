// Package control is the MCP surface of the bridge: one tool per scene
// operation, each translating between tool input and the wire command it
// issues against the runtime.
package control

// SceneSnapshotInput represents the MCP tool input for scene snapshots.
type SceneSnapshotInput struct{}

// SceneSnapshotResult represents the MCP tool output for scene snapshots.
type SceneSnapshotResult struct {
	Objects []ObjectInfo `json:"objects" jsonschema:"every object in the scene"`
	Camera  CameraInfo   `json:"camera" jsonschema:"active camera state"`
	Stale   bool         `json:"stale,omitempty" jsonschema:"true when served from the last known state instead of the live runtime"`
}

// ObjectFindInput represents the MCP tool input for object searches. Exactly
// one selector applies; name wins over contains over kind.
type ObjectFindInput struct {
	Name     string `json:"name,omitempty" jsonschema:"exact object name"`
	Contains string `json:"contains,omitempty" jsonschema:"name substring"`
	Kind     string `json:"kind,omitempty" jsonschema:"object kind (box, sphere, plane, cylinder, cone, group, camera, light)"`
}

// ObjectFindResult represents the MCP tool output for object searches.
type ObjectFindResult struct {
	Objects []ObjectInfo `json:"objects" jsonschema:"matching objects"`
	Stale   bool         `json:"stale,omitempty" jsonschema:"true when served from the last known state"`
}

// ObjectInfo describes one scene object in tool results.
type ObjectInfo struct {
	Name     string     `json:"name" jsonschema:"object name"`
	Kind     string     `json:"kind" jsonschema:"object kind"`
	Path     string     `json:"path" jsonschema:"hierarchical path from the scene root"`
	Position [3]float32 `json:"position" jsonschema:"local position (x, y, z)"`
	Rotation [3]float32 `json:"rotation" jsonschema:"Euler rotation in degrees"`
	Scale    [3]float32 `json:"scale" jsonschema:"per-axis scale"`
	Visible  bool       `json:"visible" jsonschema:"whether the object renders"`
	Color    [4]float32 `json:"color" jsonschema:"RGBA material color"`
}

// CameraInfo describes the active camera in tool results.
type CameraInfo struct {
	Position   [3]float32 `json:"position" jsonschema:"camera position"`
	Aim        [3]float32 `json:"aim" jsonschema:"point the camera looks at"`
	FovDeg     float32    `json:"fov_deg" jsonschema:"vertical field of view in degrees"`
	Near       float32    `json:"near" jsonschema:"near clip distance"`
	Far        float32    `json:"far" jsonschema:"far clip distance"`
	Projection string     `json:"projection" jsonschema:"projection kind (perspective, orthographic)"`
}

// CameraGetInput represents the MCP tool input for camera queries.
type CameraGetInput struct{}

// CameraGetResult represents the MCP tool output for camera queries.
type CameraGetResult struct {
	Camera CameraInfo `json:"camera" jsonschema:"active camera state"`
}

// ObjectTransformInput represents the MCP tool input for transform patches.
// Omitted fields are left untouched.
type ObjectTransformInput struct {
	Target   string      `json:"target" jsonschema:"object name or hierarchical path"`
	Position *[3]float32 `json:"position,omitempty" jsonschema:"optional new position"`
	Rotation *[3]float32 `json:"rotation,omitempty" jsonschema:"optional new Euler rotation in degrees"`
	Scale    *[3]float32 `json:"scale,omitempty" jsonschema:"optional new per-axis scale"`
}

// ObjectTransformResult represents the MCP tool output for transform patches.
type ObjectTransformResult struct {
	Object ObjectInfo `json:"object" jsonschema:"object state after the patch"`
}

// ObjectVisibilityInput represents the MCP tool input for visibility toggles.
type ObjectVisibilityInput struct {
	Target  string `json:"target" jsonschema:"object name or hierarchical path"`
	Visible bool   `json:"visible" jsonschema:"whether the object should render"`
}

// ObjectVisibilityResult represents the MCP tool output for visibility toggles.
type ObjectVisibilityResult struct {
	Object ObjectInfo `json:"object" jsonschema:"object state after the toggle"`
}

// ObjectSpawnInput represents the MCP tool input for primitive creation.
type ObjectSpawnInput struct {
	Name     string      `json:"name" jsonschema:"name for the new object"`
	Kind     string      `json:"kind" jsonschema:"primitive kind (box, sphere, plane, cylinder, cone, group)"`
	Position *[3]float32 `json:"position,omitempty" jsonschema:"optional initial position"`
	Rotation *[3]float32 `json:"rotation,omitempty" jsonschema:"optional initial Euler rotation in degrees"`
	Scale    *[3]float32 `json:"scale,omitempty" jsonschema:"optional initial per-axis scale"`
	Color    *[4]float32 `json:"color,omitempty" jsonschema:"optional RGBA material color"`
	Parent   string      `json:"parent,omitempty" jsonschema:"optional parent object name or path; defaults to the scene root"`
}

// ObjectSpawnResult represents the MCP tool output for primitive creation.
type ObjectSpawnResult struct {
	Object ObjectInfo `json:"object" jsonschema:"the created object"`
}

// ObjectDuplicateInput represents the MCP tool input for object duplication.
type ObjectDuplicateInput struct {
	Source  string      `json:"source" jsonschema:"object to clone, by name or path"`
	NewName string      `json:"new_name" jsonschema:"name for the clone"`
	Offset  *[3]float32 `json:"offset,omitempty" jsonschema:"optional position offset applied to the clone"`
}

// ObjectDuplicateResult represents the MCP tool output for object duplication.
type ObjectDuplicateResult struct {
	Object ObjectInfo `json:"object" jsonschema:"the created clone"`
}

// ObjectRemoveInput represents the MCP tool input for object removal.
type ObjectRemoveInput struct {
	Target string `json:"target" jsonschema:"object name or hierarchical path"`
}

// ObjectRemoveResult represents the MCP tool output for object removal.
type ObjectRemoveResult struct {
	Removed string `json:"removed" jsonschema:"name of the removed object"`
}

// LensInput selects the optional lens parameters of a camera change.
type LensInput struct {
	FovDeg *float32 `json:"fov_deg,omitempty" jsonschema:"optional vertical field of view in degrees"`
	Near   *float32 `json:"near,omitempty" jsonschema:"optional near clip distance"`
	Far    *float32 `json:"far,omitempty" jsonschema:"optional far clip distance"`
}

// CameraSetInput represents the MCP tool input for immediate camera changes.
type CameraSetInput struct {
	Position *[3]float32 `json:"position,omitempty" jsonschema:"optional new camera position"`
	Aim      *[3]float32 `json:"aim,omitempty" jsonschema:"optional point to look at"`
	Lens     *LensInput  `json:"lens,omitempty" jsonschema:"optional lens parameters"`
}

// CameraSetResult represents the MCP tool output for immediate camera changes.
type CameraSetResult struct {
	Camera CameraInfo `json:"camera" jsonschema:"camera state after the change"`
}

// CameraTransitionInput represents the MCP tool input for animated camera
// moves.
type CameraTransitionInput struct {
	To         [3]float32  `json:"to" jsonschema:"destination camera position"`
	Aim        *[3]float32 `json:"aim,omitempty" jsonschema:"optional point to look at during and after the move"`
	Lens       *LensInput  `json:"lens,omitempty" jsonschema:"optional lens parameters to interpolate"`
	DurationMs float64     `json:"duration_ms,omitempty" jsonschema:"transition duration in milliseconds"`
	Animate    bool        `json:"animate,omitempty" jsonschema:"animate over the duration instead of jumping immediately"`
}

// CameraTransitionResult represents the MCP tool output for animated camera
// moves.
type CameraTransitionResult struct {
	Animating bool `json:"animating" jsonschema:"true while the transition is still in flight"`
}

// SpinStartInput represents the MCP tool input for starting a rotation effect.
type SpinStartInput struct {
	Target  string     `json:"target" jsonschema:"object name or hierarchical path"`
	RateDps [3]float32 `json:"rate_dps" jsonschema:"per-axis rotation rate in degrees per second"`
}

// SpinStartResult represents the MCP tool output for starting a rotation
// effect.
type SpinStartResult struct {
	Spinning string `json:"spinning" jsonschema:"name of the spinning object"`
}

// SpinStopInput represents the MCP tool input for stopping a rotation effect.
type SpinStopInput struct {
	Target string `json:"target" jsonschema:"object name or hierarchical path"`
}

// SpinStopResult represents the MCP tool output for stopping a rotation
// effect.
type SpinStopResult struct {
	Stopped bool `json:"stopped" jsonschema:"whether an effect was actually removed"`
}

// ViewpointSaveInput represents the MCP tool input for saving the current
// camera as a named viewpoint.
type ViewpointSaveInput struct {
	Name string `json:"name" jsonschema:"name for the viewpoint"`
}

// ViewpointSaveResult represents the MCP tool output for viewpoint saves.
type ViewpointSaveResult struct {
	Name   string     `json:"name" jsonschema:"viewpoint name"`
	Camera CameraInfo `json:"camera" jsonschema:"the saved camera state"`
}

// ViewpointApplyInput represents the MCP tool input for applying a saved
// viewpoint.
type ViewpointApplyInput struct {
	Name       string  `json:"name" jsonschema:"viewpoint name"`
	DurationMs float64 `json:"duration_ms,omitempty" jsonschema:"transition duration in milliseconds"`
	Animate    bool    `json:"animate,omitempty" jsonschema:"animate toward the viewpoint instead of jumping"`
}

// ViewpointApplyResult represents the MCP tool output for applying a saved
// viewpoint.
type ViewpointApplyResult struct {
	Name      string `json:"name" jsonschema:"viewpoint name"`
	Animating bool   `json:"animating" jsonschema:"true while the transition is still in flight"`
}

// ViewpointListInput represents the MCP tool input for listing viewpoints.
type ViewpointListInput struct{}

// ViewpointEntry describes one saved viewpoint.
type ViewpointEntry struct {
	Name    string     `json:"name" jsonschema:"viewpoint name"`
	Camera  CameraInfo `json:"camera" jsonschema:"saved camera state"`
	SavedAt string     `json:"saved_at" jsonschema:"RFC3339 timestamp when the viewpoint was saved"`
}

// ViewpointListResult represents the MCP tool output for listing viewpoints.
type ViewpointListResult struct {
	Viewpoints []ViewpointEntry `json:"viewpoints" jsonschema:"every saved viewpoint"`
}

// ViewpointDeleteInput represents the MCP tool input for deleting a viewpoint.
type ViewpointDeleteInput struct {
	Name string `json:"name" jsonschema:"viewpoint name"`
}

// ViewpointDeleteResult represents the MCP tool output for deleting a
// viewpoint.
type ViewpointDeleteResult struct {
	Deleted string `json:"deleted" jsonschema:"name of the deleted viewpoint"`
}

// SceneAnalyzeInput represents the MCP tool input for scene analysis.
type SceneAnalyzeInput struct{}

// SceneAnalyzeResult represents the MCP tool output for scene analysis.
type SceneAnalyzeResult struct {
	ObjectCount  int            `json:"object_count" jsonschema:"total objects in the scene"`
	VisibleCount int            `json:"visible_count" jsonschema:"objects that currently render"`
	Triangles    int            `json:"triangles" jsonschema:"estimated triangle budget of the visible objects"`
	ByKind       map[string]int `json:"by_kind" jsonschema:"object count per kind"`
	BoundsMin    [3]float32     `json:"bounds_min" jsonschema:"minimum corner of the visible extent"`
	BoundsMax    [3]float32     `json:"bounds_max" jsonschema:"maximum corner of the visible extent"`
	Stale        bool           `json:"stale,omitempty" jsonschema:"true when analyzed from the last known state"`
}

// RuntimeStatusInput represents the MCP tool input for bridge status queries.
type RuntimeStatusInput struct{}

// RuntimeStatusResult represents the MCP tool output for bridge status
// queries.
type RuntimeStatusResult struct {
	Connected   bool   `json:"connected" jsonschema:"whether a runtime is attached"`
	Pending     int    `json:"pending" jsonschema:"commands currently in flight"`
	HasScene    bool   `json:"has_scene" jsonschema:"whether any scene state was ever received"`
	LastSceneAt string `json:"last_scene_at,omitempty" jsonschema:"RFC3339 timestamp of the newest scene state"`
	LastError   string `json:"last_error,omitempty" jsonschema:"most recent connection error"`
}
