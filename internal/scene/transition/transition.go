// Package transition advances the single active, cancelable camera
// transition. Begin and Tick are only ever called from the goroutine that
// owns the scene graph, so the scheduler carries no locks.
package transition

import (
	"time"

	"cogentcore.org/core/math32"
	"github.com/louisbranch/scenebridge/internal/scene"
)

// Lens selects the lens parameters a transition interpolates. Nil fields are
// left untouched, never interpolated toward themselves.
type Lens struct {
	FovDeg *float32
	Near   *float32
	Far    *float32
}

// active is the in-flight transition state. At most one exists; starting a
// new transition silently replaces it with no queuing and no cross-fade.
type active struct {
	start    time.Time
	duration time.Duration

	fromPos math32.Vector3
	toPos   math32.Vector3

	fromAim math32.Vector3
	toAim   math32.Vector3
	hasAim  bool

	fromLens Lens
	toLens   Lens
}

// Scheduler interpolates camera position, aim point, and lens parameters
// over wall-clock time. It also caches the last resolved aim point: the aim
// is not a persistent camera property, so a completed transition's target
// becomes the baseline for the next interpolation start.
type Scheduler struct {
	cam     *scene.Camera
	current *active

	lastAim    math32.Vector3
	hasLastAim bool
}

// NewScheduler creates a scheduler driving cam.
func NewScheduler(cam *scene.Camera) *Scheduler {
	return &Scheduler{cam: cam}
}

// Active reports whether a transition is in flight.
func (s *Scheduler) Active() bool {
	return s.current != nil
}

// AimPoint returns the camera's effective look target: the last explicit aim
// if one was ever resolved, otherwise a point along the camera's current
// facing direction.
func (s *Scheduler) AimPoint() math32.Vector3 {
	if s.hasLastAim {
		return s.lastAim
	}
	return s.cam.Position.Add(s.cam.Facing().MulScalar(10))
}

// NoteAim records an aim point applied outside the scheduler, such as an
// immediate camera reposition, so the next transition interpolates from it.
func (s *Scheduler) NoteAim(aim math32.Vector3) {
	s.lastAim = aim
	s.hasLastAim = true
}

// Begin starts a transition toward toPos at now, replacing any in-flight
// transition: the camera's in-progress state becomes the new from. When
// animate is false or duration is zero the transition completes immediately
// and synchronously.
func (s *Scheduler) Begin(now time.Time, toPos math32.Vector3, aim *math32.Vector3, lens Lens, duration time.Duration, animate bool) {
	next := &active{
		start:    now,
		duration: duration,
		fromPos:  s.cam.Position,
		toPos:    toPos,
		fromLens: s.snapshotLens(lens),
		toLens:   lens,
	}
	if aim != nil {
		next.hasAim = true
		next.fromAim = s.AimPoint()
		next.toAim = *aim
	}
	s.current = next

	if !animate || duration <= 0 {
		s.apply(1)
		s.finish()
		return
	}
}

// Tick advances the active transition to wall-clock time now. The runtime
// calls it once per rendering frame; it is a no-op with no transition in
// flight. t is monotonic non-decreasing and clamped to [0,1]; at t=1 the
// transition state is cleared.
func (s *Scheduler) Tick(now time.Time) {
	if s.current == nil {
		return
	}
	t := math32.Clamp(float32(now.Sub(s.current.start))/float32(s.current.duration), 0, 1)
	s.apply(t)
	if t >= 1 {
		s.finish()
	}
}

// apply writes the interpolated state at parameter t onto the camera.
func (s *Scheduler) apply(t float32) {
	cur := s.current
	s.cam.Position = lerp(cur.fromPos, cur.toPos, t)
	if cur.hasAim {
		aim := lerp(cur.fromAim, cur.toAim, t)
		s.cam.LookAt(aim)
	}
	// Lens parameters interpolate only for a perspective camera, and only
	// the subset the transition explicitly requested.
	if s.cam.Projection != scene.ProjectionPerspective {
		return
	}
	if cur.toLens.FovDeg != nil {
		s.cam.FovDeg = lerpScalar(*cur.fromLens.FovDeg, *cur.toLens.FovDeg, t)
	}
	if cur.toLens.Near != nil {
		s.cam.Near = lerpScalar(*cur.fromLens.Near, *cur.toLens.Near, t)
	}
	if cur.toLens.Far != nil {
		s.cam.Far = lerpScalar(*cur.fromLens.Far, *cur.toLens.Far, t)
	}
}

// finish clears the transition and retains its resolved aim point as the
// baseline for the next interpolation.
func (s *Scheduler) finish() {
	if s.current.hasAim {
		s.lastAim = s.current.toAim
		s.hasLastAim = true
	}
	s.current = nil
}

// snapshotLens captures the current values of exactly the lens parameters
// the transition will touch.
func (s *Scheduler) snapshotLens(requested Lens) Lens {
	var from Lens
	if requested.FovDeg != nil {
		v := s.cam.FovDeg
		from.FovDeg = &v
	}
	if requested.Near != nil {
		v := s.cam.Near
		from.Near = &v
	}
	if requested.Far != nil {
		v := s.cam.Far
		from.Far = &v
	}
	return from
}

func lerp(from, to math32.Vector3, t float32) math32.Vector3 {
	return from.Add(to.Sub(from).MulScalar(t))
}

func lerpScalar(from, to, t float32) float32 {
	return from + (to-from)*t
}
