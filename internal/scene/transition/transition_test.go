package transition

import (
	"testing"
	"time"

	"cogentcore.org/core/math32"
	"github.com/louisbranch/scenebridge/internal/scene"
)

func newTestScheduler() (*scene.Camera, *Scheduler) {
	cam := scene.NewCamera()
	cam.Position = math32.Vec3(0, 0, 0)
	return cam, NewScheduler(cam)
}

func TestHalfwaySample(t *testing.T) {
	cam, s := newTestScheduler()
	start := time.Now()
	s.Begin(start, math32.Vec3(10, 20, -30), nil, Lens{}, 2000*time.Millisecond, true)

	s.Tick(start.Add(1000 * time.Millisecond))
	want := math32.Vec3(5, 10, -15)
	if cam.Position != want {
		t.Fatalf("expected halfway position %v, got %v", want, cam.Position)
	}
	if !s.Active() {
		t.Fatal("expected transition still in flight at t=0.5")
	}

	s.Tick(start.Add(2500 * time.Millisecond))
	if cam.Position != math32.Vec3(10, 20, -30) {
		t.Fatalf("expected final position, got %v", cam.Position)
	}
	if s.Active() {
		t.Fatal("expected transition cleared past its duration")
	}
}

func TestClampBeforeStart(t *testing.T) {
	cam, s := newTestScheduler()
	start := time.Now()
	s.Begin(start, math32.Vec3(8, 0, 0), nil, Lens{}, time.Second, true)

	// A tick observed before the recorded start clamps t to 0.
	s.Tick(start.Add(-100 * time.Millisecond))
	if cam.Position != math32.Vec3(0, 0, 0) {
		t.Fatalf("expected clamped start position, got %v", cam.Position)
	}
}

func TestImmediateCompletion(t *testing.T) {
	for _, tc := range []struct {
		name     string
		duration time.Duration
		animate  bool
	}{
		{"animate false", time.Second, false},
		{"zero duration", 0, true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			cam, s := newTestScheduler()
			s.Begin(time.Now(), math32.Vec3(1, 2, 3), nil, Lens{}, tc.duration, tc.animate)
			if s.Active() {
				t.Fatal("expected synchronous completion")
			}
			if cam.Position != math32.Vec3(1, 2, 3) {
				t.Fatalf("expected final position, got %v", cam.Position)
			}
		})
	}
}

func TestReplacementDiscardsInFlight(t *testing.T) {
	cam, s := newTestScheduler()
	start := time.Now()
	s.Begin(start, math32.Vec3(10, 0, 0), nil, Lens{}, time.Second, true)

	// Advance A to t=0.4.
	s.Tick(start.Add(400 * time.Millisecond))
	if cam.Position != math32.Vec3(4, 0, 0) {
		t.Fatalf("expected A at t=0.4, got %v", cam.Position)
	}

	// B starts from A's in-progress position; A never completes.
	bStart := start.Add(400 * time.Millisecond)
	s.Begin(bStart, math32.Vec3(4, 10, 0), nil, Lens{}, time.Second, true)
	s.Tick(bStart.Add(500 * time.Millisecond))
	want := math32.Vec3(4, 5, 0)
	if cam.Position != want {
		t.Fatalf("expected B halfway from A's position %v, got %v", want, cam.Position)
	}

	// Ticks past B's own duration finish B, not A.
	s.Tick(bStart.Add(time.Second))
	if cam.Position != math32.Vec3(4, 10, 0) {
		t.Fatalf("expected B's target, got %v", cam.Position)
	}
	if s.Active() {
		t.Fatal("expected no transition in flight")
	}
}

func TestLensSubsetInterpolation(t *testing.T) {
	cam, s := newTestScheduler()
	cam.FovDeg = 60
	cam.Near = 0.1
	cam.Far = 1000

	fov := float32(30)
	start := time.Now()
	s.Begin(start, math32.Vec3(0, 0, 0), nil, Lens{FovDeg: &fov}, 2*time.Second, true)
	s.Tick(start.Add(time.Second))

	if cam.FovDeg != 45 {
		t.Fatalf("expected fov halfway at 45, got %v", cam.FovDeg)
	}
	// Unrequested lens parameters stay untouched.
	if cam.Near != 0.1 || cam.Far != 1000 {
		t.Fatalf("expected near/far untouched, got %v/%v", cam.Near, cam.Far)
	}
}

func TestLensIgnoredForOrthographic(t *testing.T) {
	cam, s := newTestScheduler()
	cam.Projection = scene.ProjectionOrthographic
	cam.FovDeg = 60

	fov := float32(30)
	s.Begin(time.Now(), math32.Vec3(0, 0, 0), nil, Lens{FovDeg: &fov}, 0, false)
	if cam.FovDeg != 60 {
		t.Fatalf("expected fov untouched for orthographic camera, got %v", cam.FovDeg)
	}
}

func TestAimPointRetainedAcrossTransitions(t *testing.T) {
	cam, s := newTestScheduler()
	aim := math32.Vec3(0, 0, -5)
	s.Begin(time.Now(), math32.Vec3(0, 0, 5), &aim, Lens{}, 0, false)

	if got := s.AimPoint(); got != aim {
		t.Fatalf("expected retained aim %v, got %v", aim, got)
	}

	// The retained aim is the next transition's interpolation start.
	start := time.Now()
	nextAim := math32.Vec3(10, 0, -5)
	s.Begin(start, cam.Position, &nextAim, Lens{}, 2*time.Second, true)
	s.Tick(start.Add(time.Second))

	// Halfway between the old and new aim is (5,0,-5); the camera at
	// (0,0,5) looking there has a positive-X, negative-Z facing.
	facing := cam.Facing()
	if facing.X <= 0 || facing.Z >= 0 {
		t.Fatalf("expected facing toward (5,0,-5), got %v", facing)
	}
}

func TestAimPointDefaultsToFacing(t *testing.T) {
	cam, s := newTestScheduler()
	got := s.AimPoint()
	// Unrotated camera at the origin looks down -Z.
	want := cam.Position.Add(math32.Vec3(0, 0, -10))
	if math32.Abs(got.X-want.X) > 1e-4 || math32.Abs(got.Y-want.Y) > 1e-4 || math32.Abs(got.Z-want.Z) > 1e-4 {
		t.Fatalf("expected facing-derived aim %v, got %v", want, got)
	}
}
