package protocol

// ObjectState describes one scene-graph node in a snapshot.
type ObjectState struct {
	Name     string `json:"name"`
	Kind     string `json:"kind"`
	Path     string `json:"path"`
	Position Vec    `json:"position"`
	Rotation Vec    `json:"rotation"`
	Scale    Vec    `json:"scale"`
	Visible  bool   `json:"visible"`
	Color    Color  `json:"color"`
}

// CameraState describes the active camera in a snapshot.
type CameraState struct {
	Position   Vec     `json:"position"`
	Aim        Vec     `json:"aim"`
	FovDeg     float32 `json:"fovDeg"`
	Near       float32 `json:"near"`
	Far        float32 `json:"far"`
	Projection string  `json:"projection"`
}

// SceneState is the full scene description carried by snapshots and pushes.
type SceneState struct {
	Objects []ObjectState `json:"objects"`
	Camera  CameraState   `json:"camera"`
}
