package runtime

import (
	"testing"
	"time"

	"cogentcore.org/core/math32"
	"github.com/louisbranch/scenebridge/internal/scene"
)

func TestSpinnerAdvanceScalesWithElapsedTime(t *testing.T) {
	s := NewSpinner()
	cube := scene.NewNode("cube", scene.KindBox)
	s.Start("cube", cube, math32.Vec3(0, 90, 0))

	if !s.Advance(500 * time.Millisecond) {
		t.Fatal("advance with entries must report movement")
	}
	if got := cube.Rotation.Y; math32.Abs(got-45) > 1e-3 {
		t.Fatalf("expected 45 degrees after half a second, got %v", got)
	}

	s.Advance(500 * time.Millisecond)
	if got := cube.Rotation.Y; math32.Abs(got-90) > 1e-3 {
		t.Fatalf("expected 90 degrees after a full second, got %v", got)
	}
}

func TestSpinnerAdvanceEmptyIsNoMovement(t *testing.T) {
	s := NewSpinner()
	if s.Advance(time.Second) {
		t.Fatal("empty spinner must not report movement")
	}
}

func TestSpinnerStartReplacesRate(t *testing.T) {
	s := NewSpinner()
	cube := scene.NewNode("cube", scene.KindBox)
	s.Start("cube", cube, math32.Vec3(0, 90, 0))
	s.Start("cube", cube, math32.Vec3(0, 0, 360))

	if s.Active() != 1 {
		t.Fatalf("expected one entry, got %d", s.Active())
	}
	s.Advance(time.Second)
	if cube.Rotation.Y != 0 {
		t.Errorf("old rate still applied: %v", cube.Rotation)
	}
	if math32.Abs(cube.Rotation.Z-360) > 1e-3 {
		t.Errorf("new rate not applied: %v", cube.Rotation)
	}
}

func TestSpinnerStop(t *testing.T) {
	s := NewSpinner()
	cube := scene.NewNode("cube", scene.KindBox)
	s.Start("cube", cube, math32.Vec3(0, 90, 0))

	if !s.Stop("cube") {
		t.Fatal("expected the entry to exist")
	}
	if s.Stop("cube") {
		t.Fatal("second stop must report no entry")
	}
	s.Advance(time.Second)
	if cube.Rotation.Y != 0 {
		t.Fatalf("stopped node still rotating: %v", cube.Rotation)
	}
}
