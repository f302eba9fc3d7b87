package protocol

// Vec is a 3-component vector on the wire, ordered x, y, z.
type Vec [3]float32

// Color is an RGBA color on the wire, components in [0,1].
type Color [4]float32

// LensPatch selects the lens parameters a command touches. Nil fields are
// left untouched by the runtime, never interpolated toward themselves.
type LensPatch struct {
	FovDeg *float32 `json:"fovDeg,omitempty"`
	Near   *float32 `json:"near,omitempty"`
	Far    *float32 `json:"far,omitempty"`
}

// SnapshotQuery requests a full scene description.
type SnapshotQuery struct{}

// FindQuery searches objects by exact name, name substring, or kind tag.
// Exactly one selector should be set; name wins over contains over kind.
type FindQuery struct {
	Name     string `json:"name,omitempty"`
	Contains string `json:"contains,omitempty"`
	Kind     string `json:"kind,omitempty"`
}

// CameraQuery requests the active camera transform and lens parameters.
type CameraQuery struct{}

// TransformCmd updates any subset of an object's local transform.
type TransformCmd struct {
	Target   string `json:"target"`
	Position *Vec   `json:"position,omitempty"`
	Rotation *Vec   `json:"rotation,omitempty"`
	Scale    *Vec   `json:"scale,omitempty"`
}

// VisibilityCmd toggles an object's visibility.
type VisibilityCmd struct {
	Target  string `json:"target"`
	Visible bool   `json:"visible"`
}

// SpawnCmd creates a named primitive and registers it.
type SpawnCmd struct {
	Name     string `json:"name"`
	Kind     string `json:"kind"`
	Position *Vec   `json:"position,omitempty"`
	Rotation *Vec   `json:"rotation,omitempty"`
	Scale    *Vec   `json:"scale,omitempty"`
	Color    *Color `json:"color,omitempty"`
	Parent   string `json:"parent,omitempty"`
}

// DuplicateCmd deep-clones an object under a new name. The offset is applied
// to the clone's local position once, at clone time.
type DuplicateCmd struct {
	Source  string `json:"source"`
	NewName string `json:"newName"`
	Offset  *Vec   `json:"offset,omitempty"`
}

// RemoveCmd detaches an object from the graph and deregisters it.
type RemoveCmd struct {
	Target string `json:"target"`
}

// CameraSetCmd applies an immediate camera change.
type CameraSetCmd struct {
	Position *Vec       `json:"position,omitempty"`
	Aim      *Vec       `json:"aim,omitempty"`
	Lens     *LensPatch `json:"lens,omitempty"`
}

// CameraTransitionCmd starts a timed camera transition. Animate false or a
// zero duration completes the transition synchronously.
type CameraTransitionCmd struct {
	To         Vec        `json:"to"`
	Aim        *Vec       `json:"aim,omitempty"`
	Lens       *LensPatch `json:"lens,omitempty"`
	DurationMs float64    `json:"durationMs"`
	Animate    bool       `json:"animate"`
}

// SpinStartCmd begins a continuous per-frame rotation of an object at fixed
// per-axis rates in degrees per second.
type SpinStartCmd struct {
	Target  string `json:"target"`
	RateDps Vec    `json:"rateDps"`
}

// SpinStopCmd stops a continuous rotation.
type SpinStopCmd struct {
	Target string `json:"target"`
}
