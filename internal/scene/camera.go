package scene

import "cogentcore.org/core/math32"

// Projection kinds for the active camera. Lens interpolation only applies to
// the perspective projection.
const (
	ProjectionPerspective  = "perspective"
	ProjectionOrthographic = "orthographic"
)

// Camera is the active viewpoint. Its aim point is not a persistent
// property of the camera itself: the transition scheduler caches the last
// explicit aim across transitions, and Facing derives a direction from the
// Euler rotation when no aim was ever given.
type Camera struct {
	Position   math32.Vector3
	Rotation   math32.Vector3 // Euler degrees
	FovDeg     float32
	Near       float32
	Far        float32
	Projection string
}

// NewCamera returns a perspective camera with conventional defaults.
func NewCamera() *Camera {
	return &Camera{
		Position:   math32.Vec3(0, 5, 10),
		FovDeg:     60,
		Near:       0.1,
		Far:        1000,
		Projection: ProjectionPerspective,
	}
}

// Facing returns the unit view direction derived from the camera rotation.
// An unrotated camera looks down -Z.
func (c *Camera) Facing() math32.Vector3 {
	var q math32.Quat
	q.SetFromEuler(c.Rotation.MulScalar(math32.DegToRadFactor))
	return math32.Vec3(0, 0, -1).MulQuat(q)
}

// LookAt rotates the camera in place to face the aim point.
func (c *Camera) LookAt(aim math32.Vector3) {
	dir := aim.Sub(c.Position)
	length := math32.Sqrt(dir.Dot(dir))
	if length == 0 {
		return
	}
	dir = dir.MulScalar(1 / length)
	yaw := math32.Atan2(-dir.X, -dir.Z)
	pitch := math32.Asin(math32.Clamp(dir.Y, -1, 1))
	c.Rotation = math32.Vec3(pitch, yaw, 0).MulScalar(math32.RadToDegFactor)
}
